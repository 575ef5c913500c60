package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/pageza/recipeshare/backend/internal/apperrors"
	"github.com/pageza/recipeshare/backend/internal/middleware"
	"github.com/pageza/recipeshare/backend/internal/service"
)

// SocialHandler serves likes and bookmarks.
type SocialHandler struct {
	bookmarks service.IBookmarkService
	likes     service.ILikeService
}

func NewSocialHandler(bookmarks service.IBookmarkService, likes service.ILikeService) *SocialHandler {
	return &SocialHandler{bookmarks: bookmarks, likes: likes}
}

type bookmarkToggleRequest struct {
	RecipeID string `json:"recipeId"`
}

func (h *SocialHandler) ListBookmarks(c *gin.Context) {
	recipes, err := h.bookmarks.List(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"recipes": recipes})
}

func (h *SocialHandler) ToggleBookmark(c *gin.Context) {
	var req bookmarkToggleRequest
	if !bindJSON(c, &req) {
		return
	}
	recipeID, err := uuid.Parse(req.RecipeID)
	if err != nil {
		fail(c, apperrors.ValidationWithDetails("invalid input", map[string]string{"recipeId": "must be a valid UUID"}))
		return
	}
	result, err := h.bookmarks.Toggle(c.Request.Context(), middleware.UserID(c), recipeID)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h *SocialHandler) ToggleRecipeLike(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	result, err := h.likes.ToggleRecipe(c.Request.Context(), middleware.UserID(c), id)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h *SocialHandler) ToggleCommentLike(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	result, err := h.likes.ToggleComment(c.Request.Context(), middleware.UserID(c), id)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}
