package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/pageza/recipeshare/backend/config"
	"github.com/pageza/recipeshare/backend/internal/api"
	"github.com/pageza/recipeshare/backend/internal/auth"
	"github.com/pageza/recipeshare/backend/internal/middleware"
	"github.com/pageza/recipeshare/backend/internal/repository"
	"github.com/pageza/recipeshare/backend/internal/router"
	"github.com/pageza/recipeshare/backend/internal/service"
)

// Deps are the clients built once at startup and shared by every request.
// Redis and Images are optional.
type Deps struct {
	DB     *gorm.DB
	Redis  *redis.Client
	Images service.ImageStore
	Log    zerolog.Logger
}

// Server represents the HTTP server
type Server struct {
	router *gin.Engine
	http   *http.Server
	log    zerolog.Logger
}

// New wires repositories, services and handlers onto one router.
func New(cfg *config.Config, deps Deps) *Server {
	if cfg.Env == config.Production {
		gin.SetMode(gin.ReleaseMode)
	}
	db, log := deps.DB, deps.Log

	recipeRepo := repository.NewRecipeRepository(db)
	profileRepo := repository.NewProfileRepository(db)
	commentRepo := repository.NewCommentRepository(db)
	userRepo := repository.NewUserRepository(db)
	banRepo := repository.NewBannedEmailRepository(db)
	bookmarks := repository.NewBookmarkTable(db)
	recipeLikes := repository.NewRecipeLikeTable(db)
	commentLikes := repository.NewCommentLikeTable(db)

	authService := auth.NewService(db, cfg.JWTSecret, cfg.TokenTTL, log)
	enricher := service.NewEnricher(profileRepo, commentRepo, recipeLikes, commentLikes, log)

	handlers := api.NewHandlers(db, api.Services{
		Auth:      authService,
		Recipes:   service.NewRecipeService(recipeRepo, profileRepo, enricher, deps.Images, log),
		Comments:  service.NewCommentService(commentRepo, recipeRepo, profileRepo, enricher, log),
		Profiles:  service.NewProfileService(profileRepo, deps.Images, log),
		Bookmarks: service.NewBookmarkService(bookmarks, recipeRepo, enricher),
		Likes:     service.NewLikeService(recipeLikes, commentLikes, recipeRepo, commentRepo, log),
		Admin:     service.NewAdminService(profileRepo, userRepo, recipeRepo, banRepo, log),
	})

	var limiter *middleware.RateLimiter
	if cfg.RateLimitWrites > 0 {
		limiter = middleware.NewWriteRateLimiter(deps.Redis, cfg.RateLimitWrites, cfg.RateLimitWindow, log)
	}

	r := router.SetupRouter(router.Options{
		Handlers:    handlers,
		Validator:   authService,
		Limiter:     limiter,
		CORSOrigins: cfg.CORSOrigins,
		Log:         log,
	})

	return &Server{
		router: r,
		http: &http.Server{
			Addr:              cfg.Addr(),
			Handler:           r,
			ReadHeaderTimeout: 10 * time.Second,
		},
		log: log,
	}
}

// Handler exposes the router for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start serves until Shutdown is called.
func (s *Server) Start() error {
	s.log.Info().Str("addr", s.http.Addr).Msg("starting server")
	if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown gracefully stops the HTTP server
func (s *Server) Shutdown(ctx context.Context) error {
	return s.http.Shutdown(ctx)
}
