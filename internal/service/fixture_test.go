package service

import (
	"testing"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/pageza/recipeshare/backend/internal/logger"
	"github.com/pageza/recipeshare/backend/internal/repository"
	"github.com/pageza/recipeshare/backend/internal/testhelpers"
)

// fixture wires every service to a fresh SQLite database.
type fixture struct {
	db        *gorm.DB
	recipes   *RecipeService
	comments  *CommentService
	profiles  *ProfileService
	bookmarks *BookmarkService
	likes     *LikeService
	admin     *AdminService
}

func newFixture(t *testing.T, images ImageStore) *fixture {
	t.Helper()
	db := testhelpers.SetupTestDB(t)
	log := logger.Nop()

	recipes := repository.NewRecipeRepository(db)
	profiles := repository.NewProfileRepository(db)
	comments := repository.NewCommentRepository(db)
	users := repository.NewUserRepository(db)
	bans := repository.NewBannedEmailRepository(db)
	bookmarks := repository.NewBookmarkTable(db)
	recipeLikes := repository.NewRecipeLikeTable(db)
	commentLikes := repository.NewCommentLikeTable(db)

	enricher := NewEnricher(profiles, comments, recipeLikes, commentLikes, log)
	return &fixture{
		db:        db,
		recipes:   NewRecipeService(recipes, profiles, enricher, images, log),
		comments:  NewCommentService(comments, recipes, profiles, enricher, log),
		profiles:  NewProfileService(profiles, images, log),
		bookmarks: NewBookmarkService(bookmarks, recipes, enricher),
		likes:     NewLikeService(recipeLikes, commentLikes, recipes, comments, log),
		admin:     NewAdminService(profiles, users, recipes, bans, log),
	}
}

func (f *fixture) user(t *testing.T, username string) *uuid.UUID {
	t.Helper()
	u, _ := testhelpers.CreateTestUser(t, f.db, username)
	id := u.ID
	return &id
}

func (f *fixture) adminUser(t *testing.T, username string) *uuid.UUID {
	t.Helper()
	u, _ := testhelpers.CreateTestAdmin(t, f.db, username)
	id := u.ID
	return &id
}

func ptr[T any](v T) *T {
	return &v
}
