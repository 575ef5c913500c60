package service

import (
	"context"

	"github.com/google/uuid"

	"github.com/pageza/recipeshare/backend/internal/apperrors"
	"github.com/pageza/recipeshare/backend/internal/models"
)

// BookmarkService handles bookmark operations
type BookmarkService struct {
	bookmarks ToggleStore
	toggler   *Toggler
	recipes   RecipeStore
	enricher  *Enricher
}

var _ IBookmarkService = (*BookmarkService)(nil)

func NewBookmarkService(bookmarks ToggleStore, recipes RecipeStore, enricher *Enricher) *BookmarkService {
	return &BookmarkService{
		bookmarks: bookmarks,
		toggler:   NewToggler(bookmarks),
		recipes:   recipes,
		enricher:  enricher,
	}
}

func (s *BookmarkService) Toggle(ctx context.Context, actor *uuid.UUID, recipeID uuid.UUID) (ToggleResult, error) {
	userID, err := requireActor(actor)
	if err != nil {
		return ToggleResult{}, err
	}
	recipe, err := s.recipes.GetByID(ctx, recipeID)
	if err != nil {
		return ToggleResult{}, lookupErr(err, "recipe not found")
	}
	if !canView(actor, recipe) {
		return ToggleResult{}, apperrors.NotFound("recipe not found")
	}
	return s.toggler.Toggle(ctx, userID, recipeID)
}

// List returns the caller's bookmarked recipes, most recently bookmarked
// first. Recipes that have since become private are left out.
func (s *BookmarkService) List(ctx context.Context, actor *uuid.UUID) ([]EnrichedRecipe, error) {
	userID, err := requireActor(actor)
	if err != nil {
		return nil, err
	}
	ids, err := s.bookmarks.TargetsForUser(ctx, userID)
	if err != nil {
		return nil, apperrors.Store(err)
	}
	if len(ids) == 0 {
		return []EnrichedRecipe{}, nil
	}

	rows, err := s.recipes.FindByIDs(ctx, ids)
	if err != nil {
		return nil, apperrors.Store(err)
	}
	byID := make(map[uuid.UUID]models.Recipe, len(rows))
	for _, r := range rows {
		byID[r.ID] = r
	}

	ordered := make([]models.Recipe, 0, len(rows))
	for _, id := range ids {
		r, ok := byID[id]
		if !ok || !canView(actor, &r) {
			continue
		}
		ordered = append(ordered, r)
	}
	return s.enricher.EnrichRecipes(ctx, ordered)
}
