package service

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/pageza/recipeshare/backend/internal/apperrors"
	"github.com/pageza/recipeshare/backend/internal/models"
	"github.com/pageza/recipeshare/backend/internal/repository"
	"github.com/pageza/recipeshare/backend/internal/validation"
)

// ErrUsernameTaken is returned whenever a username is already in use.
var ErrUsernameTaken = apperrors.Conflict("username already taken")

type ProfileInput struct {
	Username string `json:"username" validate:"required,username"`
}

// ProfilePatch carries the fields of a profile update; nil fields are left unchanged.
type ProfilePatch struct {
	Username  *string `json:"username" validate:"omitempty,username"`
	AvatarURL *string `json:"avatar_url" validate:"omitempty,url,max=512"`
}

// ProfileService handles user profile operations
type ProfileService struct {
	profiles ProfileStore
	images   ImageStore
	log      zerolog.Logger
}

// Ensure ProfileService implements IProfileService
var _ IProfileService = (*ProfileService)(nil)

// NewProfileService creates a new ProfileService instance
func NewProfileService(profiles ProfileStore, images ImageStore, log zerolog.Logger) *ProfileService {
	return &ProfileService{
		profiles: profiles,
		images:   images,
		log:      log,
	}
}

func (s *ProfileService) Get(ctx context.Context, id uuid.UUID) (*models.Profile, error) {
	profile, err := s.profiles.GetByID(ctx, id)
	if err != nil {
		return nil, lookupErr(err, "profile not found")
	}
	return profile, nil
}

// Create makes the caller's profile. The username availability check is only
// a hint; the unique index decides.
func (s *ProfileService) Create(ctx context.Context, actor *uuid.UUID, in ProfileInput) (*models.Profile, error) {
	owner, err := requireActor(actor)
	if err != nil {
		return nil, err
	}
	in.Username = strings.TrimSpace(in.Username)
	if err := validation.Struct(in); err != nil {
		return nil, err
	}

	if _, err := s.profiles.GetByID(ctx, owner); err == nil {
		return nil, apperrors.Conflict("profile already exists")
	} else if !repository.IsNotFound(err) {
		return nil, apperrors.Store(err)
	}

	available, err := s.UsernameAvailable(ctx, in.Username)
	if err != nil {
		return nil, err
	}
	if !available {
		return nil, ErrUsernameTaken
	}

	profile := &models.Profile{ID: owner, Username: strings.ToLower(in.Username)}
	if err := s.profiles.Create(ctx, profile); err != nil {
		if repository.IsUniqueViolation(err) {
			return nil, ErrUsernameTaken
		}
		return nil, apperrors.Store(err)
	}
	return profile, nil
}

// Update changes the caller's own profile.
func (s *ProfileService) Update(ctx context.Context, actor *uuid.UUID, id uuid.UUID, patch ProfilePatch) (*models.Profile, error) {
	caller, err := requireActor(actor)
	if err != nil {
		return nil, err
	}
	if caller != id {
		return nil, apperrors.Forbidden("you can only edit your own profile")
	}
	if patch.Username != nil {
		name := strings.TrimSpace(*patch.Username)
		patch.Username = &name
	}
	if err := validation.Struct(patch); err != nil {
		return nil, err
	}

	current, err := s.profiles.GetByID(ctx, id)
	if err != nil {
		return nil, lookupErr(err, "profile not found")
	}

	fields := map[string]interface{}{}
	if patch.Username != nil {
		name := strings.ToLower(*patch.Username)
		if name != current.Username {
			available, err := s.UsernameAvailable(ctx, name)
			if err != nil {
				return nil, err
			}
			if !available {
				return nil, ErrUsernameTaken
			}
			fields["username"] = name
		}
	}
	if patch.AvatarURL != nil {
		fields["avatar_url"] = *patch.AvatarURL
	}

	updated, err := s.profiles.Update(ctx, id, fields)
	if err != nil {
		if repository.IsUniqueViolation(err) {
			return nil, ErrUsernameTaken
		}
		return nil, lookupErr(err, "profile not found")
	}
	return updated, nil
}

// UsernameAvailable reports whether no profile holds username, ignoring case.
func (s *ProfileService) UsernameAvailable(ctx context.Context, username string) (bool, error) {
	if err := validation.Username(username); err != nil {
		return false, err
	}
	_, err := s.profiles.GetByUsername(ctx, strings.ToLower(username))
	if err == nil {
		return false, nil
	}
	if repository.IsNotFound(err) {
		return true, nil
	}
	return false, apperrors.Store(err)
}

// UploadAvatar stores a new avatar image for the caller's profile.
func (s *ProfileService) UploadAvatar(ctx context.Context, actor *uuid.UUID, id uuid.UUID, upload Upload) (*models.Profile, error) {
	caller, err := requireActor(actor)
	if err != nil {
		return nil, err
	}
	if caller != id {
		return nil, apperrors.Forbidden("you can only edit your own profile")
	}
	if _, err := s.profiles.GetByID(ctx, id); err != nil {
		return nil, lookupErr(err, "profile not found")
	}

	url, err := uploadImage(ctx, s.images, "avatars", id, upload)
	if err != nil {
		return nil, err
	}
	profile, err := s.profiles.Update(ctx, id, map[string]interface{}{"avatar_url": url})
	if err != nil {
		return nil, lookupErr(err, "profile not found")
	}
	s.log.Info().Str("user_id", id.String()).Msg("avatar updated")
	return profile, nil
}
