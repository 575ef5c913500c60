package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/pageza/recipeshare/backend/internal/apperrors"
)

// LikeService toggles likes on recipes and comments.
type LikeService struct {
	recipeLikes  ToggleStore
	commentLikes ToggleStore
	recipes      RecipeStore
	comments     CommentStore
	log          zerolog.Logger
}

var _ ILikeService = (*LikeService)(nil)

func NewLikeService(recipeLikes, commentLikes ToggleStore, recipes RecipeStore, comments CommentStore, log zerolog.Logger) *LikeService {
	return &LikeService{
		recipeLikes:  recipeLikes,
		commentLikes: commentLikes,
		recipes:      recipes,
		comments:     comments,
		log:          log,
	}
}

// ToggleRecipe flips the caller's like on a visible recipe and reports the new total.
func (s *LikeService) ToggleRecipe(ctx context.Context, actor *uuid.UUID, recipeID uuid.UUID) (ToggleResult, error) {
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
	return s.toggle(ctx, s.recipeLikes, userID, recipeID)
}

// ToggleComment flips the caller's like on a comment of a visible recipe.
func (s *LikeService) ToggleComment(ctx context.Context, actor *uuid.UUID, commentID uuid.UUID) (ToggleResult, error) {
	userID, err := requireActor(actor)
	if err != nil {
		return ToggleResult{}, err
	}
	comment, err := s.comments.GetByID(ctx, commentID)
	if err != nil {
		return ToggleResult{}, lookupErr(err, "comment not found")
	}
	recipe, err := s.recipes.GetByID(ctx, comment.RecipeID)
	if err != nil {
		return ToggleResult{}, lookupErr(err, "comment not found")
	}
	if !canView(actor, recipe) {
		return ToggleResult{}, apperrors.NotFound("comment not found")
	}
	return s.toggle(ctx, s.commentLikes, userID, commentID)
}

func (s *LikeService) toggle(ctx context.Context, rows ToggleStore, userID, targetID uuid.UUID) (ToggleResult, error) {
	result, err := NewToggler(rows).Toggle(ctx, userID, targetID)
	if err != nil {
		return result, err
	}
	count, err := rows.Count(ctx, targetID)
	if err != nil {
		// the toggle itself succeeded
		s.log.Warn().Err(err).Str("target_id", targetID.String()).Msg("like count lookup failed")
		return result, nil
	}
	result.Count = &count
	return result, nil
}
