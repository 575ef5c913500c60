package testhelpers

import (
	"encoding/json"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/pageza/recipeshare/backend/internal/models"
	"github.com/pageza/recipeshare/backend/internal/slug"
)

// TestPassword is the password of every user created by CreateTestUser.
const TestPassword = "testpassword123"

// CreateTestUser creates an identity record and its profile.
func CreateTestUser(t *testing.T, db *gorm.DB, username string) (*models.User, *models.Profile) {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte(TestPassword), bcrypt.MinCost)
	require.NoError(t, err, "failed to hash password")

	user := &models.User{
		Email:        fmt.Sprintf("%s@example.com", strings.ToLower(username)),
		PasswordHash: string(hash),
	}
	require.NoError(t, db.Create(user).Error, "failed to create test user")

	profile := &models.Profile{ID: user.ID, Username: strings.ToLower(username)}
	require.NoError(t, db.Create(profile).Error, "failed to create test profile")
	return user, profile
}

// CreateTestAdmin creates a user whose profile carries the admin flag.
func CreateTestAdmin(t *testing.T, db *gorm.DB, username string) (*models.User, *models.Profile) {
	t.Helper()
	user, profile := CreateTestUser(t, db, username)
	require.NoError(t, db.Model(profile).Update("is_admin", true).Error)
	profile.IsAdmin = true
	return user, profile
}

// RecipeOption tweaks a recipe before CreateTestRecipe inserts it.
type RecipeOption func(*models.Recipe)

func Private() RecipeOption {
	return func(r *models.Recipe) { r.IsPublic = false }
}

func WithTags(tags ...string) RecipeOption {
	return func(r *models.Recipe) { r.Tags = models.NewStringSet(tags) }
}

func CreatedAt(ts time.Time) RecipeOption {
	return func(r *models.Recipe) { r.CreatedAt = ts }
}

// CreateTestRecipe inserts a public recipe whose slug is derived from title.
func CreateTestRecipe(t *testing.T, db *gorm.DB, ownerID uuid.UUID, title string, opts ...RecipeOption) *models.Recipe {
	t.Helper()
	recipe := &models.Recipe{
		Title:        title,
		Slug:         slug.Make(title),
		Description:  "A test recipe",
		Ingredients:  "ingredient1\ningredient2",
		Instructions: "step1\nstep2",
		IsPublic:     true,
		UserID:       ownerID,
	}
	for _, opt := range opts {
		opt(recipe)
	}
	require.NoError(t, db.Create(recipe).Error, "failed to create test recipe")
	return recipe
}

// CreateTestComment inserts a comment by authorID on recipeID.
func CreateTestComment(t *testing.T, db *gorm.DB, recipeID, authorID uuid.UUID, content string) *models.Comment {
	t.Helper()
	comment := &models.Comment{RecipeID: recipeID, UserID: authorID, Content: content}
	require.NoError(t, db.Create(comment).Error, "failed to create test comment")
	return comment
}

// JSONMarshal is a helper function to marshal JSON for testing
func JSONMarshal(t *testing.T, v interface{}) []byte {
	t.Helper()
	data, err := json.Marshal(v)
	require.NoError(t, err, "failed to marshal JSON")
	return data
}
