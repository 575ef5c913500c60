package api

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pageza/recipeshare/backend/internal/apperrors"
	"github.com/pageza/recipeshare/backend/internal/auth"
	"github.com/pageza/recipeshare/backend/internal/middleware"
	"github.com/pageza/recipeshare/backend/internal/models"
	"github.com/pageza/recipeshare/backend/internal/service"
)

// Authenticator is the identity provider as seen by the HTTP layer.
type Authenticator interface {
	Register(ctx context.Context, in auth.RegisterInput) (string, *models.User, error)
	Login(ctx context.Context, in auth.LoginInput) (string, *models.User, error)
}

// AuthResponse is returned by register and login.
type AuthResponse struct {
	Token string         `json:"token"`
	User  *auth.Identity `json:"user"`
}

// MeResponse describes the authenticated caller.
type MeResponse struct {
	auth.Identity
	Profile *models.Profile `json:"profile"`
}

type AuthHandler struct {
	auth     Authenticator
	profiles service.IProfileService
}

func NewAuthHandler(authenticator Authenticator, profiles service.IProfileService) *AuthHandler {
	return &AuthHandler{auth: authenticator, profiles: profiles}
}

func (h *AuthHandler) Register(c *gin.Context) {
	var in auth.RegisterInput
	if !bindJSON(c, &in) {
		return
	}
	token, user, err := h.auth.Register(c.Request.Context(), in)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, AuthResponse{Token: token, User: &auth.Identity{ID: user.ID, Email: user.Email}})
}

func (h *AuthHandler) Login(c *gin.Context) {
	var in auth.LoginInput
	if !bindJSON(c, &in) {
		return
	}
	token, user, err := h.auth.Login(c.Request.Context(), in)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, AuthResponse{Token: token, User: &auth.Identity{ID: user.ID, Email: user.Email}})
}

// Me returns the caller's identity and, when it exists, their profile.
func (h *AuthHandler) Me(c *gin.Context) {
	id := middleware.UserID(c)
	if id == nil {
		fail(c, apperrors.Unauthorized("authentication required"))
		return
	}
	resp := MeResponse{Identity: auth.Identity{ID: *id, Email: middleware.Email(c)}}

	profile, err := h.profiles.Get(c.Request.Context(), *id)
	switch {
	case err == nil:
		resp.Profile = profile
	case apperrors.CodeOf(err) != apperrors.CodeNotFound:
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
