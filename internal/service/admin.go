package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/pageza/recipeshare/backend/internal/apperrors"
	"github.com/pageza/recipeshare/backend/internal/banlist"
	"github.com/pageza/recipeshare/backend/internal/models"
	"github.com/pageza/recipeshare/backend/internal/repository"
	"github.com/pageza/recipeshare/backend/internal/validation"
)

// AdminUser is a profile as shown on the admin users page.
type AdminUser struct {
	ID        uuid.UUID `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email,omitempty"`
	AvatarURL string    `json:"avatar_url,omitempty"`
	IsAdmin   bool      `json:"is_admin"`
	CreatedAt time.Time `json:"created_at"`
	Banned    bool      `json:"banned"`
	BanReason string    `json:"ban_reason,omitempty"`
}

type BanInput struct {
	Email  string `json:"email" validate:"required,email,max=255"`
	Reason string `json:"reason" validate:"max=500"`
}

// AdminService runs admin-only operations. Every call re-reads the caller's
// admin flag from the store.
type AdminService struct {
	profiles ProfileStore
	users    IdentityStore
	recipes  RecipeStore
	bans     BanStore
	log      zerolog.Logger
}

var _ IAdminService = (*AdminService)(nil)

func NewAdminService(profiles ProfileStore, users IdentityStore, recipes RecipeStore, bans BanStore, log zerolog.Logger) *AdminService {
	return &AdminService{
		profiles: profiles,
		users:    users,
		recipes:  recipes,
		bans:     bans,
		log:      log,
	}
}

func (s *AdminService) requireAdmin(ctx context.Context, actor *uuid.UUID) (uuid.UUID, error) {
	caller, err := requireActor(actor)
	if err != nil {
		return uuid.Nil, err
	}
	admin, err := isAdmin(ctx, s.profiles, caller)
	if err != nil {
		return uuid.Nil, err
	}
	if !admin {
		return uuid.Nil, apperrors.Forbidden("admin access required")
	}
	return caller, nil
}

// ListUsers returns every profile annotated with its ban status. The email
// comes from the identity store; when it cannot be read the username fallback
// is used.
func (s *AdminService) ListUsers(ctx context.Context, actor *uuid.UUID) ([]AdminUser, error) {
	if _, err := s.requireAdmin(ctx, actor); err != nil {
		return nil, err
	}

	profiles, err := s.profiles.List(ctx)
	if err != nil {
		return nil, apperrors.Store(err)
	}
	bans, err := s.bans.List(ctx)
	if err != nil {
		return nil, apperrors.Store(err)
	}

	ids := make([]uuid.UUID, len(profiles))
	for i, p := range profiles {
		ids[i] = p.ID
	}
	emails := make(map[uuid.UUID]string, len(profiles))
	users, err := s.users.FindByIDs(ctx, ids)
	if err != nil {
		s.log.Warn().Err(err).Msg("identity lookup failed, using username ban check")
	}
	for _, u := range users {
		emails[u.ID] = u.Email
	}

	out := make([]AdminUser, 0, len(profiles))
	for _, p := range profiles {
		u := AdminUser{
			ID:        p.ID,
			Username:  p.Username,
			Email:     emails[p.ID],
			AvatarURL: p.AvatarURL,
			IsAdmin:   p.IsAdmin,
			CreatedAt: p.CreatedAt,
		}
		var m banlist.Match
		if u.Email != "" {
			m = banlist.MatchEmail(u.Email, bans)
		} else {
			m = banlist.MatchUsername(u.Username, bans)
		}
		u.Banned, u.BanReason = m.Banned, m.Reason
		out = append(out, u)
	}
	return out, nil
}

// DeleteUser removes the user's recipes, then their comments, likes and
// bookmarks elsewhere, then the profile, then the identity record, stopping at
// the first failure.
func (s *AdminService) DeleteUser(ctx context.Context, actor *uuid.UUID, userID uuid.UUID) error {
	caller, err := s.requireAdmin(ctx, actor)
	if err != nil {
		return err
	}
	if caller == userID {
		return apperrors.Validation("admins cannot delete their own account")
	}

	users, err := s.users.FindByIDs(ctx, []uuid.UUID{userID})
	if err != nil {
		return apperrors.Store(err)
	}
	if len(users) == 0 {
		return apperrors.NotFound("user not found")
	}

	removed, err := s.recipes.DeleteByOwner(ctx, userID)
	if err != nil {
		return apperrors.Store(err)
	}
	if err := s.recipes.DeleteActivityBy(ctx, userID); err != nil {
		return apperrors.Store(err)
	}
	if err := s.profiles.Delete(ctx, userID); err != nil {
		return apperrors.Store(err)
	}
	if err := s.users.Delete(ctx, userID); err != nil {
		return apperrors.Store(err)
	}

	s.log.Info().
		Str("user_id", userID.String()).
		Str("by", caller.String()).
		Int("recipes", removed).
		Msg("user deleted")
	return nil
}

// DeleteRecipe removes any recipe regardless of owner.
func (s *AdminService) DeleteRecipe(ctx context.Context, actor *uuid.UUID, recipeID uuid.UUID) error {
	caller, err := s.requireAdmin(ctx, actor)
	if err != nil {
		return err
	}
	if _, err := s.recipes.GetByID(ctx, recipeID); err != nil {
		return lookupErr(err, "recipe not found")
	}
	if err := s.recipes.Delete(ctx, recipeID); err != nil {
		return apperrors.Store(err)
	}
	s.log.Info().Str("recipe_id", recipeID.String()).Str("by", caller.String()).Msg("recipe deleted by admin")
	return nil
}

func (s *AdminService) ListBans(ctx context.Context, actor *uuid.UUID) ([]models.BannedEmail, error) {
	if _, err := s.requireAdmin(ctx, actor); err != nil {
		return nil, err
	}
	bans, err := s.bans.List(ctx)
	if err != nil {
		return nil, apperrors.Store(err)
	}
	return bans, nil
}

// Ban adds an email to the ban list.
func (s *AdminService) Ban(ctx context.Context, actor *uuid.UUID, in BanInput) (*models.BannedEmail, error) {
	caller, err := s.requireAdmin(ctx, actor)
	if err != nil {
		return nil, err
	}
	in.Email = banlist.Normalize(in.Email)
	if err := validation.Struct(in); err != nil {
		return nil, err
	}

	entry := &models.BannedEmail{Email: in.Email, Reason: in.Reason}
	if err := s.bans.Create(ctx, entry); err != nil {
		if repository.IsUniqueViolation(err) {
			return nil, apperrors.Conflict("email is already banned")
		}
		return nil, apperrors.Store(err)
	}
	s.log.Info().Str("email", entry.Email).Str("by", caller.String()).Msg("email banned")
	return entry, nil
}

func (s *AdminService) Unban(ctx context.Context, actor *uuid.UUID, id uuid.UUID) error {
	if _, err := s.requireAdmin(ctx, actor); err != nil {
		return err
	}
	deleted, err := s.bans.Delete(ctx, id)
	if err != nil {
		return apperrors.Store(err)
	}
	if !deleted {
		return apperrors.NotFound("ban not found")
	}
	return nil
}
