package service

import (
	"context"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/pageza/recipeshare/backend/internal/apperrors"
	"github.com/pageza/recipeshare/backend/internal/logger"
	"github.com/pageza/recipeshare/backend/internal/mocks"
	"github.com/pageza/recipeshare/backend/internal/models"
)

func TestCreateProfile(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()

	var user models.User
	user.Email = "new@example.com"
	user.PasswordHash = "x"
	require.NoError(t, f.db.Create(&user).Error)

	profile, err := f.profiles.Create(ctx, &user.ID, ProfileInput{Username: "Chef_Mo"})
	require.NoError(t, err)
	assert.Equal(t, user.ID, profile.ID)
	assert.Equal(t, "chef_mo", profile.Username)

	_, err = f.profiles.Create(ctx, &user.ID, ProfileInput{Username: "another"})
	assert.ErrorIs(t, err, apperrors.ErrConflict)

	_, err = f.profiles.Create(ctx, nil, ProfileInput{Username: "anon"})
	assert.ErrorIs(t, err, apperrors.ErrUnauthorized)
}

func TestUsernameRules(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()
	alice := f.user(t, "alice")
	bob := f.user(t, "bob")

	available, err := f.profiles.UsernameAvailable(ctx, "ALICE")
	require.NoError(t, err)
	assert.False(t, available, "case-insensitive")

	available, err = f.profiles.UsernameAvailable(ctx, "newname")
	require.NoError(t, err)
	assert.True(t, available)

	_, err = f.profiles.UsernameAvailable(ctx, "no")
	assert.ErrorIs(t, err, apperrors.ErrValidation)

	_, err = f.profiles.Update(ctx, bob, *bob, ProfilePatch{Username: ptr("Alice")})
	assert.ErrorIs(t, err, apperrors.ErrConflict)

	_, err = f.profiles.Update(ctx, bob, *bob, ProfilePatch{Username: ptr("this-is-not-valid")})
	assert.ErrorIs(t, err, apperrors.ErrValidation)

	_, err = f.profiles.Update(ctx, bob, *alice, ProfilePatch{Username: ptr("bobby")})
	assert.ErrorIs(t, err, apperrors.ErrForbidden)

	updated, err := f.profiles.Update(ctx, bob, *bob, ProfilePatch{Username: ptr("Bobby_2")})
	require.NoError(t, err)
	assert.Equal(t, "bobby_2", updated.Username)

	unchanged, err := f.profiles.Update(ctx, alice, *alice, ProfilePatch{Username: ptr("ALICE")})
	require.NoError(t, err, "renaming to your own name in another case is not a conflict")
	assert.Equal(t, "alice", unchanged.Username)
}

func TestUsernameRaceIsConflict(t *testing.T) {
	profiles := new(mocks.MockProfileStore)
	svc := NewProfileService(profiles, nil, logger.Nop())
	actor := uuid.New()

	profiles.On("GetByID", mock.Anything, actor).Return(nil, gorm.ErrRecordNotFound)
	profiles.On("GetByUsername", mock.Anything, "racer").Return(nil, gorm.ErrRecordNotFound)
	profiles.On("Create", mock.Anything, mock.Anything).Return(gorm.ErrDuplicatedKey)

	_, err := svc.Create(context.Background(), &actor, ProfileInput{Username: "racer"})
	require.ErrorIs(t, err, apperrors.ErrConflict)
	assert.Equal(t, "username already taken", err.Error())
}

func TestUploadAvatar(t *testing.T) {
	images := new(mocks.MockImageStore)
	f := newFixture(t, images)
	ctx := context.Background()
	alice := f.user(t, "alice")
	bob := f.user(t, "bob")

	images.On("Upload", mock.Anything, mock.MatchedBy(func(key string) bool {
		return strings.HasPrefix(key, "avatars/"+alice.String()+"/") && strings.HasSuffix(key, ".png")
	}), "image/png", mock.Anything, int64(3)).Return("https://cdn/avatars/a.png", nil).Once()

	upload := Upload{Filename: "me.png", ContentType: "image/png", Size: 3, Body: strings.NewReader("png")}
	profile, err := f.profiles.UploadAvatar(ctx, alice, *alice, upload)
	require.NoError(t, err)
	assert.Equal(t, "https://cdn/avatars/a.png", profile.AvatarURL)

	_, err = f.profiles.UploadAvatar(ctx, bob, *alice, upload)
	assert.ErrorIs(t, err, apperrors.ErrForbidden)

	_, err = f.profiles.UploadAvatar(ctx, alice, *alice, Upload{ContentType: "image/png", Size: 10 << 20, Body: strings.NewReader("")})
	assert.ErrorIs(t, err, apperrors.ErrValidation)

	images.AssertNumberOfCalls(t, "Upload", 1)
}

func TestUploadAvatarWithoutStorage(t *testing.T) {
	f := newFixture(t, nil)
	alice := f.user(t, "alice")

	_, err := f.profiles.UploadAvatar(context.Background(), alice, *alice, Upload{ContentType: "image/png", Body: strings.NewReader("x")})
	assert.ErrorIs(t, err, apperrors.ErrStore)
}
