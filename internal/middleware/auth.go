package middleware

import (
	"context"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/pageza/recipeshare/backend/internal/apperrors"
	"github.com/pageza/recipeshare/backend/internal/auth"
)

const (
	userIDKey = "user_id"
	emailKey  = "email"
)

// TokenValidator resolves a bearer token to the identity it was issued for.
type TokenValidator interface {
	CurrentUser(ctx context.Context, token string) (*auth.Identity, error)
}

// RequireAuth rejects requests without a valid bearer token.
func RequireAuth(validator TokenValidator) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := bearerToken(c)
		if !ok {
			abortWithError(c, apperrors.Unauthorized("missing or malformed authorization header"))
			return
		}
		if !authenticate(c, validator, token) {
			return
		}
		c.Next()
	}
}

// OptionalAuth identifies the caller when a token is sent. A request without
// one continues anonymously; a bad token is still rejected.
func OptionalAuth(validator TokenValidator) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetHeader("Authorization") == "" {
			c.Next()
			return
		}
		token, ok := bearerToken(c)
		if !ok {
			abortWithError(c, apperrors.Unauthorized("malformed authorization header"))
			return
		}
		if !authenticate(c, validator, token) {
			return
		}
		c.Next()
	}
}

func authenticate(c *gin.Context, validator TokenValidator, token string) bool {
	identity, err := validator.CurrentUser(c.Request.Context(), token)
	if err != nil {
		abortWithError(c, err)
		return false
	}
	c.Set(userIDKey, identity.ID)
	c.Set(emailKey, identity.Email)
	return true
}

func bearerToken(c *gin.Context) (string, bool) {
	parts := strings.Fields(c.GetHeader("Authorization"))
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", false
	}
	return parts[1], true
}

// UserID returns the authenticated caller, or nil for anonymous requests.
func UserID(c *gin.Context) *uuid.UUID {
	v, ok := c.Get(userIDKey)
	if !ok {
		return nil
	}
	id, ok := v.(uuid.UUID)
	if !ok || id == uuid.Nil {
		return nil
	}
	return &id
}

// Email returns the authenticated caller's email.
func Email(c *gin.Context) string {
	return c.GetString(emailKey)
}
