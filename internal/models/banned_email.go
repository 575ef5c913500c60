package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// BannedEmail is an administratively maintained deny-list entry.
// Email is stored trimmed and lower-cased.
type BannedEmail struct {
	ID        uuid.UUID `gorm:"type:varchar(36);primarykey" json:"id"`
	Email     string    `gorm:"size:255;not null;uniqueIndex" json:"email"`
	Reason    string    `gorm:"type:text" json:"reason"`
	CreatedAt time.Time `json:"created_at"`
}

func (b *BannedEmail) BeforeCreate(tx *gorm.DB) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	return nil
}

// All returns every model managed by AutoMigrate, in dependency order.
func All() []interface{} {
	return []interface{}{
		&User{},
		&Profile{},
		&Recipe{},
		&Comment{},
		&Bookmark{},
		&RecipeLike{},
		&CommentLike{},
		&BannedEmail{},
	}
}
