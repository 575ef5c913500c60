package service

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/pageza/recipeshare/backend/internal/apperrors"
	"github.com/pageza/recipeshare/backend/internal/models"
	"github.com/pageza/recipeshare/backend/internal/validation"
)

type CommentInput struct {
	Content string `json:"content" validate:"required,max=2000"`
}

// CommentService handles comment operations
type CommentService struct {
	comments CommentStore
	recipes  RecipeStore
	profiles ProfileStore
	enricher *Enricher
	log      zerolog.Logger
}

var _ ICommentService = (*CommentService)(nil)

func NewCommentService(comments CommentStore, recipes RecipeStore, profiles ProfileStore, enricher *Enricher, log zerolog.Logger) *CommentService {
	return &CommentService{
		comments: comments,
		recipes:  recipes,
		profiles: profiles,
		enricher: enricher,
		log:      log,
	}
}

// List returns the comments of a visible recipe, oldest first.
func (s *CommentService) List(ctx context.Context, actor *uuid.UUID, recipeID uuid.UUID) ([]EnrichedComment, error) {
	if _, err := s.visibleRecipe(ctx, actor, recipeID); err != nil {
		return nil, err
	}
	comments, err := s.comments.ListByRecipe(ctx, recipeID)
	if err != nil {
		return nil, apperrors.Store(err)
	}
	return s.enricher.EnrichComments(ctx, comments)
}

func (s *CommentService) Create(ctx context.Context, actor *uuid.UUID, recipeID uuid.UUID, in CommentInput) (*models.Comment, error) {
	author, err := requireActor(actor)
	if err != nil {
		return nil, err
	}
	in.Content = strings.TrimSpace(in.Content)
	if err := validation.Struct(in); err != nil {
		return nil, err
	}
	if _, err := s.visibleRecipe(ctx, actor, recipeID); err != nil {
		return nil, err
	}

	comment := &models.Comment{RecipeID: recipeID, UserID: author, Content: in.Content}
	if err := s.comments.Create(ctx, comment); err != nil {
		return nil, apperrors.Store(err)
	}
	return comment, nil
}

func (s *CommentService) Update(ctx context.Context, actor *uuid.UUID, id uuid.UUID, in CommentInput) (*models.Comment, error) {
	caller, err := requireActor(actor)
	if err != nil {
		return nil, err
	}
	in.Content = strings.TrimSpace(in.Content)
	if err := validation.Struct(in); err != nil {
		return nil, err
	}
	comment, err := s.comments.GetByID(ctx, id)
	if err != nil {
		return nil, lookupErr(err, "comment not found")
	}
	if err := authorizeOwner(ctx, s.profiles, caller, comment.UserID, "you can only edit your own comments"); err != nil {
		return nil, err
	}
	updated, err := s.comments.UpdateContent(ctx, id, in.Content)
	if err != nil {
		return nil, lookupErr(err, "comment not found")
	}
	return updated, nil
}

func (s *CommentService) Delete(ctx context.Context, actor *uuid.UUID, id uuid.UUID) error {
	caller, err := requireActor(actor)
	if err != nil {
		return err
	}
	comment, err := s.comments.GetByID(ctx, id)
	if err != nil {
		return lookupErr(err, "comment not found")
	}
	if err := authorizeOwner(ctx, s.profiles, caller, comment.UserID, "you can only delete your own comments"); err != nil {
		return err
	}
	if err := s.comments.Delete(ctx, id); err != nil {
		return apperrors.Store(err)
	}
	return nil
}

func (s *CommentService) visibleRecipe(ctx context.Context, actor *uuid.UUID, id uuid.UUID) (*models.Recipe, error) {
	recipe, err := s.recipes.GetByID(ctx, id)
	if err != nil {
		return nil, lookupErr(err, "recipe not found")
	}
	if !canView(actor, recipe) {
		return nil, apperrors.NotFound("recipe not found")
	}
	return recipe, nil
}
