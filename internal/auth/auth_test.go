package auth

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/pageza/recipeshare/backend/internal/apperrors"
	"github.com/pageza/recipeshare/backend/internal/logger"
	"github.com/pageza/recipeshare/backend/internal/models"
	"github.com/pageza/recipeshare/backend/internal/testhelpers"
)

const testSecret = "test-secret"

func newTestService(t *testing.T) *Service {
	t.Helper()
	s := NewService(testhelpers.SetupTestDB(t), testSecret, time.Hour, logger.Nop())
	s.bcryptCost = bcrypt.MinCost
	return s
}

func TestRegisterAndLogin(t *testing.T) {
	s := newTestService(t)
	ctx := context.Background()

	token, user, err := s.Register(ctx, RegisterInput{Email: " Cook@Example.com ", Password: "password123", Username: "Cook_1"})
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Equal(t, "cook@example.com", user.Email)

	var profile models.Profile
	require.NoError(t, s.db.First(&profile, "id = ?", user.ID).Error)
	assert.Equal(t, "cook_1", profile.Username)
	assert.False(t, profile.IsAdmin)

	identity, err := s.CurrentUser(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, identity.ID)

	loginToken, _, err := s.Login(ctx, LoginInput{Email: "COOK@example.com", Password: "password123"})
	require.NoError(t, err)
	claims, err := s.ValidateToken(loginToken)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)
	assert.Equal(t, user.ID.String(), claims.Subject)

	_, _, err = s.Login(ctx, LoginInput{Email: "cook@example.com", Password: "wrong-password"})
	assert.ErrorIs(t, err, apperrors.ErrUnauthorized)
	_, _, err = s.Login(ctx, LoginInput{Email: "nobody@example.com", Password: "password123"})
	assert.ErrorIs(t, err, apperrors.ErrUnauthorized)
}

func TestRegisterConflictsAndValidation(t *testing.T) {
	s := newTestService(t)
	ctx := context.Background()

	_, _, err := s.Register(ctx, RegisterInput{Email: "a@example.com", Password: "password123", Username: "first"})
	require.NoError(t, err)

	_, _, err = s.Register(ctx, RegisterInput{Email: "A@example.com", Password: "password123", Username: "second"})
	require.ErrorIs(t, err, apperrors.ErrConflict)
	assert.Equal(t, "email already registered", err.Error())

	_, _, err = s.Register(ctx, RegisterInput{Email: "b@example.com", Password: "password123", Username: "FIRST"})
	require.ErrorIs(t, err, apperrors.ErrConflict)
	assert.Equal(t, "username already taken", err.Error())

	var count int64
	require.NoError(t, s.db.Model(&models.User{}).Where("email = ?", "b@example.com").Count(&count).Error)
	assert.Zero(t, count, "identity is rolled back with the profile")

	_, _, err = s.Register(ctx, RegisterInput{Email: "c@example.com", Password: "short", Username: "third"})
	assert.ErrorIs(t, err, apperrors.ErrValidation)
	_, _, err = s.Register(ctx, RegisterInput{Email: "not-an-email", Password: "password123", Username: "third"})
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestRegisterRejectsBannedEmail(t *testing.T) {
	s := newTestService(t)
	require.NoError(t, s.db.Create(&models.BannedEmail{Email: "spam@example.com", Reason: "spam"}).Error)

	_, _, err := s.Register(context.Background(), RegisterInput{Email: "SPAM@example.com ", Password: "password123", Username: "spammer"})
	assert.ErrorIs(t, err, apperrors.ErrForbidden)
}

func TestValidateToken(t *testing.T) {
	s := newTestService(t)
	user := &models.User{ID: uuid.New(), Email: "x@example.com"}

	token, err := s.Issue(user)
	require.NoError(t, err)
	_, err = s.ValidateToken(token)
	require.NoError(t, err)

	other := NewService(s.db, "another-secret", time.Hour, logger.Nop())
	_, err = other.ValidateToken(token)
	assert.ErrorIs(t, err, apperrors.ErrUnauthorized, "wrong key")

	s.now = func() time.Time { return time.Now().Add(2 * time.Hour) }
	_, err = s.ValidateToken(token)
	assert.ErrorIs(t, err, apperrors.ErrUnauthorized, "expired")

	none := jwt.NewWithClaims(jwt.SigningMethodNone, Claims{UserID: user.ID})
	unsigned, err := none.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)
	_, err = other.ValidateToken(unsigned)
	assert.ErrorIs(t, err, apperrors.ErrUnauthorized, "alg none")

	_, err = s.ValidateToken("garbage")
	assert.ErrorIs(t, err, apperrors.ErrUnauthorized)
}

func TestCurrentUserRequiresExistingIdentity(t *testing.T) {
	s := newTestService(t)
	ghost := &models.User{ID: uuid.New(), Email: "ghost@example.com"}
	token, err := s.Issue(ghost)
	require.NoError(t, err)

	_, err = s.CurrentUser(context.Background(), token)
	assert.ErrorIs(t, err, apperrors.ErrUnauthorized)
}
