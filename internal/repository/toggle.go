package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/pageza/recipeshare/backend/internal/models"
)

// ToggleTable is a join table whose rows mean "user has toggled target on".
type ToggleTable struct {
	db           *gorm.DB
	targetColumn string
	newRow       func(userID, targetID uuid.UUID) interface{}
	model        func() interface{}
}

func NewBookmarkTable(db *gorm.DB) *ToggleTable {
	return &ToggleTable{
		db:           db,
		targetColumn: "recipe_id",
		newRow: func(userID, targetID uuid.UUID) interface{} {
			return &models.Bookmark{UserID: userID, RecipeID: targetID}
		},
		model: func() interface{} { return &models.Bookmark{} },
	}
}

func NewRecipeLikeTable(db *gorm.DB) *ToggleTable {
	return &ToggleTable{
		db:           db,
		targetColumn: "recipe_id",
		newRow: func(userID, targetID uuid.UUID) interface{} {
			return &models.RecipeLike{UserID: userID, RecipeID: targetID}
		},
		model: func() interface{} { return &models.RecipeLike{} },
	}
}

func NewCommentLikeTable(db *gorm.DB) *ToggleTable {
	return &ToggleTable{
		db:           db,
		targetColumn: "comment_id",
		newRow: func(userID, targetID uuid.UUID) interface{} {
			return &models.CommentLike{UserID: userID, CommentID: targetID}
		},
		model: func() interface{} { return &models.CommentLike{} },
	}
}

func (t *ToggleTable) where(ctx context.Context, userID, targetID uuid.UUID) *gorm.DB {
	return t.db.WithContext(ctx).Model(t.model()).
		Where("user_id = ? AND "+t.targetColumn+" = ?", userID, targetID)
}

func (t *ToggleTable) Exists(ctx context.Context, userID, targetID uuid.UUID) (bool, error) {
	var count int64
	if err := t.where(ctx, userID, targetID).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Insert adds the row; a second insert for the same pair fails with a unique violation.
func (t *ToggleTable) Insert(ctx context.Context, userID, targetID uuid.UUID) error {
	return t.db.WithContext(ctx).Create(t.newRow(userID, targetID)).Error
}

// Remove deletes the row and reports how many rows went away.
func (t *ToggleTable) Remove(ctx context.Context, userID, targetID uuid.UUID) (int64, error) {
	res := t.db.WithContext(ctx).
		Where("user_id = ? AND "+t.targetColumn+" = ?", userID, targetID).
		Delete(t.model())
	return res.RowsAffected, res.Error
}

func (t *ToggleTable) Count(ctx context.Context, targetID uuid.UUID) (int64, error) {
	var count int64
	err := t.db.WithContext(ctx).Model(t.model()).Where(t.targetColumn+" = ?", targetID).Count(&count).Error
	return count, err
}

// CountByTargets counts rows per target in one grouped query.
func (t *ToggleTable) CountByTargets(ctx context.Context, targetIDs []uuid.UUID) (map[uuid.UUID]int64, error) {
	return countGrouped(ctx, t.db, t.model(), t.targetColumn, targetIDs)
}

// TargetsForUser lists the user's targets, most recently toggled first.
func (t *ToggleTable) TargetsForUser(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	err := t.db.WithContext(ctx).Model(t.model()).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Pluck(t.targetColumn, &ids).Error
	return ids, err
}

// TargetsAmong returns which of targetIDs the user has toggled on.
func (t *ToggleTable) TargetsAmong(ctx context.Context, userID uuid.UUID, targetIDs []uuid.UUID) (map[uuid.UUID]bool, error) {
	out := make(map[uuid.UUID]bool, len(targetIDs))
	if len(targetIDs) == 0 {
		return out, nil
	}
	var ids []uuid.UUID
	err := t.db.WithContext(ctx).Model(t.model()).
		Where("user_id = ? AND "+t.targetColumn+" IN ?", userID, targetIDs).
		Pluck(t.targetColumn, &ids).Error
	if err != nil {
		return nil, err
	}
	for _, id := range ids {
		out[id] = true
	}
	return out, nil
}
