package service

import (
	"context"
	"io"

	"github.com/google/uuid"

	"github.com/pageza/recipeshare/backend/internal/models"
	"github.com/pageza/recipeshare/backend/internal/repository"
)

// Store interfaces are satisfied by the gorm repositories in internal/repository
// and by the testify mocks in internal/mocks.

type RecipeStore interface {
	List(ctx context.Context, f repository.RecipeFilter) ([]models.Recipe, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.Recipe, error)
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]models.Recipe, error)
	FirstBySlug(ctx context.Context, slug string) (*models.Recipe, error)
	SlugTaken(ctx context.Context, slug string, exceptID uuid.UUID) (bool, error)
	Create(ctx context.Context, recipe *models.Recipe) error
	Update(ctx context.Context, id uuid.UUID, fields map[string]interface{}) (*models.Recipe, error)
	Delete(ctx context.Context, id uuid.UUID) error
	DeleteByOwner(ctx context.Context, userID uuid.UUID) (int, error)
	DeleteActivityBy(ctx context.Context, userID uuid.UUID) error
}

type ProfileStore interface {
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]models.Profile, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.Profile, error)
	GetByUsername(ctx context.Context, username string) (*models.Profile, error)
	List(ctx context.Context) ([]models.Profile, error)
	Create(ctx context.Context, profile *models.Profile) error
	Update(ctx context.Context, id uuid.UUID, fields map[string]interface{}) (*models.Profile, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type CommentStore interface {
	ListByRecipe(ctx context.Context, recipeID uuid.UUID) ([]models.Comment, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.Comment, error)
	CountByRecipes(ctx context.Context, recipeIDs []uuid.UUID) (map[uuid.UUID]int64, error)
	Create(ctx context.Context, comment *models.Comment) error
	UpdateContent(ctx context.Context, id uuid.UUID, content string) (*models.Comment, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// ToggleStore is a (user, target) join table such as bookmarks or likes.
type ToggleStore interface {
	Exists(ctx context.Context, userID, targetID uuid.UUID) (bool, error)
	Insert(ctx context.Context, userID, targetID uuid.UUID) error
	Remove(ctx context.Context, userID, targetID uuid.UUID) (int64, error)
	Count(ctx context.Context, targetID uuid.UUID) (int64, error)
	CountByTargets(ctx context.Context, targetIDs []uuid.UUID) (map[uuid.UUID]int64, error)
	TargetsForUser(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error)
	TargetsAmong(ctx context.Context, userID uuid.UUID, targetIDs []uuid.UUID) (map[uuid.UUID]bool, error)
}

type BanStore interface {
	List(ctx context.Context) ([]models.BannedEmail, error)
	Create(ctx context.Context, entry *models.BannedEmail) error
	Delete(ctx context.Context, id uuid.UUID) (bool, error)
}

// IdentityStore is the part of the identity provider the admin tools need.
type IdentityStore interface {
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]models.User, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// ImageStore persists uploaded images and returns their public URL.
type ImageStore interface {
	Upload(ctx context.Context, key, contentType string, body io.Reader, size int64) (string, error)
}

var (
	_ RecipeStore   = (*repository.RecipeRepository)(nil)
	_ ProfileStore  = (*repository.ProfileRepository)(nil)
	_ CommentStore  = (*repository.CommentRepository)(nil)
	_ ToggleStore   = (*repository.ToggleTable)(nil)
	_ BanStore      = (*repository.BannedEmailRepository)(nil)
	_ IdentityStore = (*repository.UserRepository)(nil)
)

// IRecipeService defines the interface for recipe operations
type IRecipeService interface {
	List(ctx context.Context, actor *uuid.UUID, f ListFilter) ([]EnrichedRecipe, error)
	Get(ctx context.Context, actor *uuid.UUID, id uuid.UUID) (*RecipeDetail, error)
	GetBySlug(ctx context.Context, actor *uuid.UUID, slug string) (*RecipeDetail, error)
	Create(ctx context.Context, actor *uuid.UUID, in RecipeInput) (*models.Recipe, error)
	Update(ctx context.Context, actor *uuid.UUID, id uuid.UUID, patch RecipePatch) (*models.Recipe, error)
	Delete(ctx context.Context, actor *uuid.UUID, id uuid.UUID) error
	SetImage(ctx context.Context, actor *uuid.UUID, id uuid.UUID, upload Upload) (*models.Recipe, error)
}

// ICommentService defines the interface for comment operations
type ICommentService interface {
	List(ctx context.Context, actor *uuid.UUID, recipeID uuid.UUID) ([]EnrichedComment, error)
	Create(ctx context.Context, actor *uuid.UUID, recipeID uuid.UUID, in CommentInput) (*models.Comment, error)
	Update(ctx context.Context, actor *uuid.UUID, id uuid.UUID, in CommentInput) (*models.Comment, error)
	Delete(ctx context.Context, actor *uuid.UUID, id uuid.UUID) error
}

// IProfileService defines the interface for user profile operations
type IProfileService interface {
	Get(ctx context.Context, id uuid.UUID) (*models.Profile, error)
	Create(ctx context.Context, actor *uuid.UUID, in ProfileInput) (*models.Profile, error)
	Update(ctx context.Context, actor *uuid.UUID, id uuid.UUID, patch ProfilePatch) (*models.Profile, error)
	UsernameAvailable(ctx context.Context, username string) (bool, error)
	UploadAvatar(ctx context.Context, actor *uuid.UUID, id uuid.UUID, upload Upload) (*models.Profile, error)
}

// IBookmarkService defines the interface for bookmark operations
type IBookmarkService interface {
	Toggle(ctx context.Context, actor *uuid.UUID, recipeID uuid.UUID) (ToggleResult, error)
	List(ctx context.Context, actor *uuid.UUID) ([]EnrichedRecipe, error)
}

// ILikeService defines the interface for recipe and comment likes
type ILikeService interface {
	ToggleRecipe(ctx context.Context, actor *uuid.UUID, recipeID uuid.UUID) (ToggleResult, error)
	ToggleComment(ctx context.Context, actor *uuid.UUID, commentID uuid.UUID) (ToggleResult, error)
}

// IAdminService defines the interface for admin-only operations
type IAdminService interface {
	ListUsers(ctx context.Context, actor *uuid.UUID) ([]AdminUser, error)
	DeleteUser(ctx context.Context, actor *uuid.UUID, userID uuid.UUID) error
	DeleteRecipe(ctx context.Context, actor *uuid.UUID, recipeID uuid.UUID) error
	ListBans(ctx context.Context, actor *uuid.UUID) ([]models.BannedEmail, error)
	Ban(ctx context.Context, actor *uuid.UUID, in BanInput) (*models.BannedEmail, error)
	Unban(ctx context.Context, actor *uuid.UUID, id uuid.UUID) error
}
