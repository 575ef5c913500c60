package router

import (
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/pageza/recipeshare/backend/internal/api"
	"github.com/pageza/recipeshare/backend/internal/middleware"
)

// Options configures SetupRouter. Limiter may be nil.
type Options struct {
	Handlers    api.Handlers
	Validator   middleware.TokenValidator
	Limiter     *middleware.RateLimiter
	CORSOrigins []string
	Log         zerolog.Logger
}

// SetupRouter configures the application routes
func SetupRouter(opts Options) *gin.Engine {
	router := gin.New()
	router.Use(
		middleware.RequestID(),
		middleware.RequestLogger(opts.Log),
		middleware.Recovery(opts.Log),
		middleware.CORS(opts.CORSOrigins),
		middleware.ErrorHandler(opts.Log),
	)

	h := opts.Handlers
	router.GET("/health", h.Health.HealthCheck)

	requireAuth := middleware.RequireAuth(opts.Validator)
	optionalAuth := middleware.OptionalAuth(opts.Validator)
	limit := func(c *gin.Context) { c.Next() }
	if opts.Limiter != nil {
		limit = opts.Limiter.Middleware()
	}

	v1 := router.Group("/api")

	// Auth routes
	authRoutes := v1.Group("/auth")
	{
		authRoutes.POST("/register", limit, h.Auth.Register)
		authRoutes.POST("/login", limit, h.Auth.Login)
		authRoutes.GET("/me", requireAuth, h.Auth.Me)
	}

	// Recipe routes
	recipes := v1.Group("/recipes")
	{
		recipes.GET("", optionalAuth, h.Recipes.ListRecipes)
		recipes.GET("/slug/:slug", optionalAuth, h.Recipes.GetRecipeBySlug)
		recipes.GET("/:id", optionalAuth, h.Recipes.GetRecipe)
		recipes.POST("", requireAuth, limit, h.Recipes.CreateRecipe)
		recipes.PUT("/:id", requireAuth, limit, h.Recipes.UpdateRecipe)
		recipes.DELETE("/:id", requireAuth, h.Recipes.DeleteRecipe)
		recipes.POST("/:id/image", requireAuth, limit, h.Recipes.UploadImage)
		recipes.GET("/:id/comments", optionalAuth, h.Comments.ListComments)
		recipes.POST("/:id/comments", requireAuth, limit, h.Comments.CreateComment)
		recipes.POST("/:id/like/toggle", requireAuth, limit, h.Social.ToggleRecipeLike)
	}

	comments := v1.Group("/comments", requireAuth)
	{
		comments.PUT("/:id", limit, h.Comments.UpdateComment)
		comments.DELETE("/:id", h.Comments.DeleteComment)
		comments.POST("/:id/like/toggle", limit, h.Social.ToggleCommentLike)
	}

	bookmarks := v1.Group("/bookmarks", requireAuth)
	{
		bookmarks.GET("", h.Social.ListBookmarks)
		bookmarks.POST("/toggle", limit, h.Social.ToggleBookmark)
	}

	profiles := v1.Group("/profiles")
	{
		profiles.GET("/username/:username/available", h.Profiles.UsernameAvailable)
		profiles.GET("/:id", h.Profiles.GetProfile)
		profiles.POST("", requireAuth, limit, h.Profiles.CreateProfile)
		profiles.PUT("/:id", requireAuth, limit, h.Profiles.UpdateProfile)
		profiles.POST("/:id/avatar", requireAuth, limit, h.Profiles.UploadAvatar)
	}

	admin := v1.Group("/admin", requireAuth)
	{
		admin.GET("/users", h.Admin.ListUsers)
		admin.DELETE("/users/:id", h.Admin.DeleteUser)
		admin.DELETE("/recipes/:id", h.Admin.DeleteRecipe)
		admin.GET("/banned-emails", h.Admin.ListBans)
		admin.POST("/banned-emails", h.Admin.Ban)
		admin.DELETE("/banned-emails/:id", h.Admin.Unban)
	}

	return router
}
