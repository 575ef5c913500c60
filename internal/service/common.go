// Package service holds the application logic: ownership-checked access to
// recipes, comments and profiles, record enrichment, toggles and admin tools.
//
// Every operation takes the acting user as a *uuid.UUID; nil means the caller
// is not authenticated.
package service

import (
	"context"
	"errors"
	"io"

	"github.com/google/uuid"

	"github.com/pageza/recipeshare/backend/internal/apperrors"
	"github.com/pageza/recipeshare/backend/internal/repository"
)

// Upload is an image received from a client.
type Upload struct {
	Filename    string
	ContentType string
	Size        int64
	Body        io.Reader
}

func requireActor(actor *uuid.UUID) (uuid.UUID, error) {
	if actor == nil || *actor == uuid.Nil {
		return uuid.Nil, apperrors.Unauthorized("authentication required")
	}
	return *actor, nil
}

// lookupErr maps a single-row lookup failure.
func lookupErr(err error, notFound string) error {
	if repository.IsNotFound(err) {
		return apperrors.NotFound(notFound)
	}
	return apperrors.Store(err)
}

// isAdmin reads the admin flag from the store; it is never cached.
func isAdmin(ctx context.Context, profiles ProfileStore, userID uuid.UUID) (bool, error) {
	profile, err := profiles.GetByID(ctx, userID)
	if err != nil {
		if repository.IsNotFound(err) {
			return false, nil
		}
		return false, apperrors.Store(err)
	}
	return profile.IsAdmin, nil
}

// authorizeOwner allows the owner, or an admin, to modify a row.
func authorizeOwner(ctx context.Context, profiles ProfileStore, actor, owner uuid.UUID, msg string) error {
	if actor == owner {
		return nil
	}
	admin, err := isAdmin(ctx, profiles, actor)
	if err != nil {
		return err
	}
	if !admin {
		return apperrors.Forbidden(msg)
	}
	return nil
}

var errStorageDisabled = errors.New("file storage is not configured")
