// Package api holds the gin handlers of the REST surface. Handlers translate
// HTTP to service calls and report failures with c.Error; the error
// middleware renders them.
package api

import (
	"gorm.io/gorm"

	"github.com/pageza/recipeshare/backend/internal/service"
)

// Services are the dependencies of the handlers.
type Services struct {
	Auth      Authenticator
	Recipes   service.IRecipeService
	Comments  service.ICommentService
	Profiles  service.IProfileService
	Bookmarks service.IBookmarkService
	Likes     service.ILikeService
	Admin     service.IAdminService
}

// Handlers groups every HTTP handler.
type Handlers struct {
	Health   *HealthHandler
	Auth     *AuthHandler
	Recipes  *RecipeHandler
	Comments *CommentHandler
	Social   *SocialHandler
	Profiles *ProfileHandler
	Admin    *AdminHandler
}

func NewHandlers(db *gorm.DB, s Services) Handlers {
	return Handlers{
		Health:   NewHealthHandler(db),
		Auth:     NewAuthHandler(s.Auth, s.Profiles),
		Recipes:  NewRecipeHandler(s.Recipes),
		Comments: NewCommentHandler(s.Comments),
		Social:   NewSocialHandler(s.Bookmarks, s.Likes),
		Profiles: NewProfileHandler(s.Profiles),
		Admin:    NewAdminHandler(s.Admin),
	}
}
