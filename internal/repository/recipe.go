package repository

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/pageza/recipeshare/backend/internal/models"
)

// likeEscaper makes user input match literally inside a LIKE pattern.
var likeEscaper = strings.NewReplacer(`\`, `\\`, "%", `\%`, "_", `\_`)

// RecipeFilter narrows a recipe listing. Visibility is decided by the caller:
// PublicOnly restricts to public rows, VisibleTo allows public rows plus that
// user's own, OwnerID restricts to one owner regardless of visibility.
type RecipeFilter struct {
	OwnerID    *uuid.UUID
	VisibleTo  *uuid.UUID
	PublicOnly bool
	Tag        string
	Query      string
	Limit      int
	Offset     int
}

type RecipeRepository struct {
	db *gorm.DB
}

func NewRecipeRepository(db *gorm.DB) *RecipeRepository {
	return &RecipeRepository{db: db}
}

// List returns recipes newest first.
func (r *RecipeRepository) List(ctx context.Context, f RecipeFilter) ([]models.Recipe, error) {
	q := r.db.WithContext(ctx).Model(&models.Recipe{})

	if f.OwnerID != nil {
		q = q.Where("user_id = ?", *f.OwnerID)
	}
	if f.PublicOnly {
		q = q.Where("is_public = ?", true)
	} else if f.VisibleTo != nil {
		q = q.Where("is_public = ? OR user_id = ?", true, *f.VisibleTo)
	}
	if tag := strings.ToLower(strings.TrimSpace(f.Tag)); tag != "" {
		if r.db.Dialector.Name() == "postgres" {
			q = q.Where("tags @> jsonb_build_array(?::text)", tag)
		} else {
			q = q.Where("EXISTS (SELECT 1 FROM json_each(recipes.tags) WHERE json_each.value = ?)", tag)
		}
	}
	if query := strings.ToLower(strings.TrimSpace(f.Query)); query != "" {
		like := "%" + likeEscaper.Replace(query) + "%"
		q = q.Where(`LOWER(title) LIKE ? ESCAPE '\' OR LOWER(description) LIKE ? ESCAPE '\'`, like, like)
	}
	if f.Limit > 0 {
		q = q.Limit(f.Limit)
	}
	if f.Offset > 0 {
		q = q.Offset(f.Offset)
	}

	var recipes []models.Recipe
	if err := q.Order("created_at DESC").Order("id").Find(&recipes).Error; err != nil {
		return nil, err
	}
	return recipes, nil
}

func (r *RecipeRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Recipe, error) {
	var recipe models.Recipe
	if err := r.db.WithContext(ctx).First(&recipe, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &recipe, nil
}

// FindByIDs returns the recipes matching ids in no particular order.
func (r *RecipeRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]models.Recipe, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var recipes []models.Recipe
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&recipes).Error; err != nil {
		return nil, err
	}
	return recipes, nil
}

// FirstBySlug returns the oldest recipe carrying slug.
func (r *RecipeRepository) FirstBySlug(ctx context.Context, slug string) (*models.Recipe, error) {
	var recipe models.Recipe
	err := r.db.WithContext(ctx).
		Where("slug = ?", slug).
		Order("created_at ASC").
		Limit(1).
		Take(&recipe).Error
	if err != nil {
		return nil, err
	}
	return &recipe, nil
}

// SlugTaken reports whether a recipe other than exceptID holds slug.
func (r *RecipeRepository) SlugTaken(ctx context.Context, slug string, exceptID uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Recipe{}).
		Where("slug = ? AND id <> ?", slug, exceptID).
		Count(&count).Error
	return count > 0, err
}

func (r *RecipeRepository) Create(ctx context.Context, recipe *models.Recipe) error {
	return r.db.WithContext(ctx).Create(recipe).Error
}

// Update writes fields to the recipe and returns the stored row.
func (r *RecipeRepository) Update(ctx context.Context, id uuid.UUID, fields map[string]interface{}) (*models.Recipe, error) {
	if len(fields) > 0 {
		res := r.db.WithContext(ctx).Model(&models.Recipe{}).Where("id = ?", id).Updates(fields)
		if res.Error != nil {
			return nil, res.Error
		}
	}
	return r.GetByID(ctx, id)
}

// Delete removes a recipe with its comments, comment likes, likes and bookmarks.
func (r *RecipeRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return deleteRecipes(tx, []uuid.UUID{id})
	})
}

// DeleteByOwner removes every recipe owned by userID the same way Delete does
// and returns how many were removed.
func (r *RecipeRepository) DeleteByOwner(ctx context.Context, userID uuid.UUID) (int, error) {
	var removed int
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var ids []uuid.UUID
		if err := tx.Model(&models.Recipe{}).Where("user_id = ?", userID).Pluck("id", &ids).Error; err != nil {
			return err
		}
		removed = len(ids)
		return deleteRecipes(tx, ids)
	})
	return removed, err
}

// DeleteActivityBy removes what userID left on other people's recipes: their
// comments with the likes on them, and their own recipe likes, comment likes
// and bookmarks. Postgres would cascade these from the profile row; SQLite
// does not, so both drivers go through here.
func (r *RecipeRepository) DeleteActivityBy(ctx context.Context, userID uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		commentIDs := tx.Model(&models.Comment{}).Select("id").Where("user_id = ?", userID)
		if err := tx.Where("comment_id IN (?) OR user_id = ?", commentIDs, userID).Delete(&models.CommentLike{}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", userID).Delete(&models.Comment{}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", userID).Delete(&models.RecipeLike{}).Error; err != nil {
			return err
		}
		return tx.Where("user_id = ?", userID).Delete(&models.Bookmark{}).Error
	})
}

func deleteRecipes(tx *gorm.DB, ids []uuid.UUID) error {
	if len(ids) == 0 {
		return nil
	}
	commentIDs := tx.Model(&models.Comment{}).Select("id").Where("recipe_id IN ?", ids)
	if err := tx.Where("comment_id IN (?)", commentIDs).Delete(&models.CommentLike{}).Error; err != nil {
		return err
	}
	if err := tx.Where("recipe_id IN ?", ids).Delete(&models.Comment{}).Error; err != nil {
		return err
	}
	if err := tx.Where("recipe_id IN ?", ids).Delete(&models.RecipeLike{}).Error; err != nil {
		return err
	}
	if err := tx.Where("recipe_id IN ?", ids).Delete(&models.Bookmark{}).Error; err != nil {
		return err
	}
	return tx.Where("id IN ?", ids).Delete(&models.Recipe{}).Error
}
