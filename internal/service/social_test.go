package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/pageza/recipeshare/backend/internal/apperrors"
	"github.com/pageza/recipeshare/backend/internal/logger"
	"github.com/pageza/recipeshare/backend/internal/mocks"
	"github.com/pageza/recipeshare/backend/internal/models"
	"github.com/pageza/recipeshare/backend/internal/testhelpers"
)

func TestBookmarkListOrderAndVisibility(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()
	alice := f.user(t, "alice")
	bob := f.user(t, "bob")

	older := testhelpers.CreateTestRecipe(t, f.db, *alice, "Older")
	newer := testhelpers.CreateTestRecipe(t, f.db, *alice, "Newer")
	hidden := testhelpers.CreateTestRecipe(t, f.db, *alice, "Hidden")

	base := time.Now().Add(-time.Hour)
	for i, id := range []uuid.UUID{older.ID, newer.ID, hidden.ID} {
		row := models.Bookmark{UserID: *bob, RecipeID: id, CreatedAt: base.Add(time.Duration(i) * time.Minute)}
		require.NoError(t, f.db.Create(&row).Error)
	}
	require.NoError(t, f.db.Model(&models.Recipe{}).Where("id = ?", hidden.ID).Update("is_public", false).Error)

	list, err := f.bookmarks.List(ctx, bob)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, newer.ID, list[0].ID)
	assert.Equal(t, older.ID, list[1].ID)
	assert.Equal(t, "alice", list[0].Author.Username)

	empty, err := f.bookmarks.List(ctx, alice)
	require.NoError(t, err)
	assert.Empty(t, empty)
	assert.NotNil(t, empty)

	_, err = f.bookmarks.List(ctx, nil)
	assert.ErrorIs(t, err, apperrors.ErrUnauthorized)
}

func TestBookmarkToggleRequiresVisibleRecipe(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()
	alice := f.user(t, "alice")
	bob := f.user(t, "bob")
	private := testhelpers.CreateTestRecipe(t, f.db, *alice, "Secret", testhelpers.Private())

	_, err := f.bookmarks.Toggle(ctx, bob, private.ID)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)

	_, err = f.bookmarks.Toggle(ctx, bob, uuid.New())
	assert.ErrorIs(t, err, apperrors.ErrNotFound)

	res, err := f.bookmarks.Toggle(ctx, alice, private.ID)
	require.NoError(t, err)
	assert.True(t, res.Active)
	assert.Nil(t, res.Count)
}

func TestLikeTogglesReportCounts(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()
	alice := f.user(t, "alice")
	bob := f.user(t, "bob")
	recipe := testhelpers.CreateTestRecipe(t, f.db, *alice, "Soup")
	comment := testhelpers.CreateTestComment(t, f.db, recipe.ID, *alice, "first")

	res, err := f.likes.ToggleRecipe(ctx, bob, recipe.ID)
	require.NoError(t, err)
	assert.True(t, res.Active)
	require.NotNil(t, res.Count)
	assert.Equal(t, int64(1), *res.Count)

	res, err = f.likes.ToggleRecipe(ctx, alice, recipe.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), *res.Count)

	res, err = f.likes.ToggleRecipe(ctx, bob, recipe.ID)
	require.NoError(t, err)
	assert.False(t, res.Active)
	assert.Equal(t, int64(1), *res.Count)

	res, err = f.likes.ToggleComment(ctx, bob, comment.ID)
	require.NoError(t, err)
	assert.True(t, res.Active)
	assert.Equal(t, int64(1), *res.Count)

	detail, err := f.recipes.Get(ctx, nil, recipe.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), detail.LikesCount)
	require.Len(t, detail.Comments, 1)
	assert.Equal(t, int64(1), detail.Comments[0].LikesCount)

	_, err = f.likes.ToggleRecipe(ctx, nil, recipe.ID)
	assert.ErrorIs(t, err, apperrors.ErrUnauthorized)
	_, err = f.likes.ToggleComment(ctx, bob, uuid.New())
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestLikeOnCommentOfPrivateRecipe(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()
	alice := f.user(t, "alice")
	bob := f.user(t, "bob")
	recipe := testhelpers.CreateTestRecipe(t, f.db, *alice, "Secret", testhelpers.Private())
	comment := testhelpers.CreateTestComment(t, f.db, recipe.ID, *alice, "hidden")

	_, err := f.likes.ToggleComment(ctx, bob, comment.ID)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestLikeCountFailureKeepsToggle(t *testing.T) {
	recipeLikes := new(mocks.MockToggleStore)
	recipes := new(mocks.MockRecipeStore)
	svc := NewLikeService(recipeLikes, nil, recipes, nil, logger.Nop())
	user := uuid.New()
	recipe := &models.Recipe{ID: uuid.New(), UserID: uuid.New(), IsPublic: true}

	recipes.On("GetByID", mock.Anything, recipe.ID).Return(recipe, nil)
	recipeLikes.On("Exists", mock.Anything, user, recipe.ID).Return(false, nil)
	recipeLikes.On("Insert", mock.Anything, user, recipe.ID).Return(nil)
	recipeLikes.On("Count", mock.Anything, recipe.ID).Return(int64(0), errors.New("timeout"))

	res, err := svc.ToggleRecipe(context.Background(), &user, recipe.ID)
	require.NoError(t, err)
	assert.True(t, res.Active)
	assert.Nil(t, res.Count)
}
