package service

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/pageza/recipeshare/backend/internal/apperrors"
	"github.com/pageza/recipeshare/backend/internal/models"
	"github.com/pageza/recipeshare/backend/internal/repository"
	"github.com/pageza/recipeshare/backend/internal/slug"
	"github.com/pageza/recipeshare/backend/internal/storage"
	"github.com/pageza/recipeshare/backend/internal/validation"
)

const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// ListFilter selects recipes. Mine requires an authenticated caller.
type ListFilter struct {
	Mine   bool
	Tag    string
	Query  string
	Limit  int
	Offset int
}

// RecipeInput is the body of a create request.
type RecipeInput struct {
	Title        string   `json:"title" validate:"required,max=200"`
	Description  string   `json:"description" validate:"max=5000"`
	Ingredients  string   `json:"ingredients" validate:"max=20000"`
	Instructions string   `json:"instructions" validate:"max=20000"`
	Tags         []string `json:"tags" validate:"max=20,dive,max=50"`
	IsPublic     *bool    `json:"is_public"`
}

// RecipePatch carries the fields of an update; nil fields are left unchanged.
type RecipePatch struct {
	Title        *string   `json:"title" validate:"omitempty,min=1,max=200"`
	Description  *string   `json:"description" validate:"omitempty,max=5000"`
	Ingredients  *string   `json:"ingredients" validate:"omitempty,max=20000"`
	Instructions *string   `json:"instructions" validate:"omitempty,max=20000"`
	Tags         *[]string `json:"tags" validate:"omitempty,max=20,dive,max=50"`
	IsPublic     *bool     `json:"is_public"`
}

// RecipeService handles recipe operations
type RecipeService struct {
	recipes  RecipeStore
	profiles ProfileStore
	enricher *Enricher
	images   ImageStore
	log      zerolog.Logger
}

var _ IRecipeService = (*RecipeService)(nil)

// NewRecipeService creates a new RecipeService instance. images may be nil
// when file storage is not configured.
func NewRecipeService(recipes RecipeStore, profiles ProfileStore, enricher *Enricher, images ImageStore, log zerolog.Logger) *RecipeService {
	return &RecipeService{
		recipes:  recipes,
		profiles: profiles,
		enricher: enricher,
		images:   images,
		log:      log,
	}
}

// List returns enriched recipes, newest first. Anonymous callers see public
// recipes only; authenticated callers also see their own private ones.
func (s *RecipeService) List(ctx context.Context, actor *uuid.UUID, f ListFilter) ([]EnrichedRecipe, error) {
	filter := repository.RecipeFilter{
		Tag:    f.Tag,
		Query:  f.Query,
		Limit:  f.Limit,
		Offset: f.Offset,
	}
	if filter.Limit <= 0 {
		filter.Limit = DefaultPageSize
	}
	if filter.Limit > MaxPageSize {
		filter.Limit = MaxPageSize
	}
	if filter.Offset < 0 {
		filter.Offset = 0
	}

	switch {
	case f.Mine:
		id, err := requireActor(actor)
		if err != nil {
			return nil, err
		}
		filter.OwnerID = &id
	case actor != nil:
		filter.VisibleTo = actor
	default:
		filter.PublicOnly = true
	}

	rows, err := s.recipes.List(ctx, filter)
	if err != nil {
		return nil, apperrors.Store(err)
	}
	return s.enricher.EnrichRecipes(ctx, rows)
}

func (s *RecipeService) Get(ctx context.Context, actor *uuid.UUID, id uuid.UUID) (*RecipeDetail, error) {
	recipe, err := s.visible(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	return s.enricher.EnrichRecipe(ctx, recipe)
}

// GetBySlug returns the oldest recipe carrying slug.
func (s *RecipeService) GetBySlug(ctx context.Context, actor *uuid.UUID, value string) (*RecipeDetail, error) {
	recipe, err := s.recipes.FirstBySlug(ctx, value)
	if err != nil {
		return nil, lookupErr(err, "recipe not found")
	}
	if !canView(actor, recipe) {
		return nil, apperrors.NotFound("recipe not found")
	}
	return s.enricher.EnrichRecipe(ctx, recipe)
}

func (s *RecipeService) Create(ctx context.Context, actor *uuid.UUID, in RecipeInput) (*models.Recipe, error) {
	owner, err := requireActor(actor)
	if err != nil {
		return nil, err
	}
	in.Title = strings.TrimSpace(in.Title)
	if err := validation.Struct(in); err != nil {
		return nil, err
	}

	recipe := &models.Recipe{
		ID:           uuid.New(),
		Title:        in.Title,
		Description:  strings.TrimSpace(in.Description),
		Ingredients:  in.Ingredients,
		Instructions: in.Instructions,
		Tags:         models.NewStringSet(in.Tags),
		IsPublic:     true,
		UserID:       owner,
	}
	if in.IsPublic != nil {
		recipe.IsPublic = *in.IsPublic
	}

	recipe.Slug, err = s.assignSlug(ctx, recipe.ID, recipe.Title)
	if err != nil {
		return nil, err
	}
	err = s.recipes.Create(ctx, recipe)
	if repository.IsUniqueViolation(err) {
		// lost a race for the base slug
		recipe.Slug = suffixed(slug.Make(recipe.Title), recipe.ID)
		err = s.recipes.Create(ctx, recipe)
	}
	if err != nil {
		return nil, apperrors.Store(err)
	}

	s.log.Info().Str("recipe_id", recipe.ID.String()).Str("slug", recipe.Slug).Msg("recipe created")
	return recipe, nil
}

// Update applies patch after checking ownership. A new title re-derives the slug.
func (s *RecipeService) Update(ctx context.Context, actor *uuid.UUID, id uuid.UUID, patch RecipePatch) (*models.Recipe, error) {
	caller, err := requireActor(actor)
	if err != nil {
		return nil, err
	}
	if patch.Title != nil {
		title := strings.TrimSpace(*patch.Title)
		patch.Title = &title
	}
	if err := validation.Struct(patch); err != nil {
		return nil, err
	}

	recipe, err := s.recipes.GetByID(ctx, id)
	if err != nil {
		return nil, lookupErr(err, "recipe not found")
	}
	if err := authorizeOwner(ctx, s.profiles, caller, recipe.UserID, "you can only edit your own recipes"); err != nil {
		return nil, err
	}

	fields := map[string]interface{}{}
	if patch.Title != nil && *patch.Title != recipe.Title {
		fields["title"] = *patch.Title
		newSlug, err := s.assignSlug(ctx, recipe.ID, *patch.Title)
		if err != nil {
			return nil, err
		}
		fields["slug"] = newSlug
	}
	if patch.Description != nil {
		fields["description"] = strings.TrimSpace(*patch.Description)
	}
	if patch.Ingredients != nil {
		fields["ingredients"] = *patch.Ingredients
	}
	if patch.Instructions != nil {
		fields["instructions"] = *patch.Instructions
	}
	if patch.Tags != nil {
		fields["tags"] = models.NewStringSet(*patch.Tags)
	}
	if patch.IsPublic != nil {
		fields["is_public"] = *patch.IsPublic
	}

	updated, err := s.recipes.Update(ctx, id, fields)
	if _, renamed := fields["slug"]; renamed && repository.IsUniqueViolation(err) {
		fields["slug"] = suffixed(slug.Make(*patch.Title), recipe.ID)
		updated, err = s.recipes.Update(ctx, id, fields)
	}
	if err != nil {
		return nil, lookupErr(err, "recipe not found")
	}
	return updated, nil
}

// Delete removes the recipe with its comments, likes and bookmarks.
func (s *RecipeService) Delete(ctx context.Context, actor *uuid.UUID, id uuid.UUID) error {
	caller, err := requireActor(actor)
	if err != nil {
		return err
	}
	recipe, err := s.recipes.GetByID(ctx, id)
	if err != nil {
		return lookupErr(err, "recipe not found")
	}
	if err := authorizeOwner(ctx, s.profiles, caller, recipe.UserID, "you can only delete your own recipes"); err != nil {
		return err
	}
	if err := s.recipes.Delete(ctx, id); err != nil {
		return apperrors.Store(err)
	}
	s.log.Info().Str("recipe_id", id.String()).Str("by", caller.String()).Msg("recipe deleted")
	return nil
}

// SetImage uploads a picture for the recipe and stores its URL.
func (s *RecipeService) SetImage(ctx context.Context, actor *uuid.UUID, id uuid.UUID, upload Upload) (*models.Recipe, error) {
	caller, err := requireActor(actor)
	if err != nil {
		return nil, err
	}
	recipe, err := s.recipes.GetByID(ctx, id)
	if err != nil {
		return nil, lookupErr(err, "recipe not found")
	}
	if err := authorizeOwner(ctx, s.profiles, caller, recipe.UserID, "you can only edit your own recipes"); err != nil {
		return nil, err
	}
	url, err := uploadImage(ctx, s.images, "recipes", recipe.ID, upload)
	if err != nil {
		return nil, err
	}
	updated, err := s.recipes.Update(ctx, id, map[string]interface{}{"image_url": url})
	if err != nil {
		return nil, lookupErr(err, "recipe not found")
	}
	return updated, nil
}

func (s *RecipeService) visible(ctx context.Context, actor *uuid.UUID, id uuid.UUID) (*models.Recipe, error) {
	recipe, err := s.recipes.GetByID(ctx, id)
	if err != nil {
		return nil, lookupErr(err, "recipe not found")
	}
	if !canView(actor, recipe) {
		return nil, apperrors.NotFound("recipe not found")
	}
	return recipe, nil
}

// assignSlug derives the slug for a title, appending an id-based suffix when
// another recipe already holds the base slug.
func (s *RecipeService) assignSlug(ctx context.Context, id uuid.UUID, title string) (string, error) {
	base := slug.Make(title)
	if base == "" {
		return suffixed(base, id), nil
	}
	taken, err := s.recipes.SlugTaken(ctx, base, id)
	if err != nil {
		return "", apperrors.Store(err)
	}
	if taken {
		return suffixed(base, id), nil
	}
	return base, nil
}

func suffixed(base string, id uuid.UUID) string {
	return slug.WithSuffix(base, id.String()[:8])
}

func canView(actor *uuid.UUID, recipe *models.Recipe) bool {
	return recipe.IsPublic || (actor != nil && *actor == recipe.UserID)
}

func uploadImage(ctx context.Context, images ImageStore, prefix string, owner uuid.UUID, upload Upload) (string, error) {
	if images == nil {
		return "", apperrors.Store(errStorageDisabled)
	}
	ext, ok := storage.ImageExtension(upload.ContentType)
	if !ok {
		return "", apperrors.ValidationWithDetails("invalid upload", map[string]string{"file": "must be a JPEG, PNG, GIF or WebP image"})
	}
	if upload.Size > storage.MaxImageSize {
		return "", apperrors.ValidationWithDetails("invalid upload", map[string]string{"file": "must be at most 5 MB"})
	}
	url, err := images.Upload(ctx, storage.ImageKey(prefix, owner, ext), upload.ContentType, upload.Body, upload.Size)
	if err != nil {
		return "", apperrors.Store(err)
	}
	return url, nil
}
