package service

import (
	"context"

	"github.com/google/uuid"

	"github.com/pageza/recipeshare/backend/internal/apperrors"
	"github.com/pageza/recipeshare/backend/internal/repository"
)

// ToggleResult is the state of a (user, target) pair after a toggle.
type ToggleResult struct {
	Active bool   `json:"active"`
	Count  *int64 `json:"count,omitempty"`
}

// Toggler flips a row's existence in a join table with a composite unique
// index on (user, target).
type Toggler struct {
	rows ToggleStore
}

func NewToggler(rows ToggleStore) *Toggler {
	return &Toggler{rows: rows}
}

// Toggle deletes the row if present and inserts it if absent. An insert that
// hits the unique index means a concurrent toggle already inserted the row, so
// the state is re-read instead of failing or duplicating it.
func (t *Toggler) Toggle(ctx context.Context, userID, targetID uuid.UUID) (ToggleResult, error) {
	exists, err := t.rows.Exists(ctx, userID, targetID)
	if err != nil {
		return ToggleResult{}, apperrors.Store(err)
	}

	if exists {
		if _, err := t.rows.Remove(ctx, userID, targetID); err != nil {
			return ToggleResult{}, apperrors.Store(err)
		}
		return ToggleResult{Active: false}, nil
	}

	err = t.rows.Insert(ctx, userID, targetID)
	if err == nil {
		return ToggleResult{Active: true}, nil
	}
	if !repository.IsUniqueViolation(err) {
		return ToggleResult{}, apperrors.Store(err)
	}

	exists, err = t.rows.Exists(ctx, userID, targetID)
	if err != nil {
		return ToggleResult{}, apperrors.Store(err)
	}
	return ToggleResult{Active: exists}, nil
}
