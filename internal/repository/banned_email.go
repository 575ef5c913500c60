package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/pageza/recipeshare/backend/internal/models"
)

type BannedEmailRepository struct {
	db *gorm.DB
}

func NewBannedEmailRepository(db *gorm.DB) *BannedEmailRepository {
	return &BannedEmailRepository{db: db}
}

// List returns the whole ban list, newest first.
func (r *BannedEmailRepository) List(ctx context.Context) ([]models.BannedEmail, error) {
	var list []models.BannedEmail
	if err := r.db.WithContext(ctx).Order("created_at DESC").Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

func (r *BannedEmailRepository) Create(ctx context.Context, entry *models.BannedEmail) error {
	return r.db.WithContext(ctx).Create(entry).Error
}

// Delete removes an entry and reports whether it existed.
func (r *BannedEmailRepository) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.BannedEmail{})
	return res.RowsAffected > 0, res.Error
}
