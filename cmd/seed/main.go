// Command seed fills a development database with demo users and recipes.
// Running it twice is harmless: existing users and recipes are skipped.
package main

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/pageza/recipeshare/backend/config"
	"github.com/pageza/recipeshare/backend/internal/apperrors"
	"github.com/pageza/recipeshare/backend/internal/auth"
	"github.com/pageza/recipeshare/backend/internal/database"
	"github.com/pageza/recipeshare/backend/internal/logger"
	"github.com/pageza/recipeshare/backend/internal/repository"
	"github.com/pageza/recipeshare/backend/internal/service"
	"github.com/pageza/recipeshare/backend/internal/slug"
)

const seedPassword = "testpassword123"

type seedUser struct {
	email    string
	username string
	admin    bool
}

var users = []seedUser{
	{email: "john.doe@example.com", username: "johndoe"},
	{email: "jane.smith@example.com", username: "janesmith"},
	{email: "bob.wilson@example.com", username: "bobwilson"},
	{email: "admin@example.com", username: "admin", admin: true},
}

type seedRecipe struct {
	owner  string
	public bool
	input  service.RecipeInput
}

var recipes = []seedRecipe{
	{owner: "johndoe", public: true, input: service.RecipeInput{
		Title:        "Grandma's Apple Pie",
		Description:  "A flaky crust around cinnamon apples.",
		Ingredients:  "6 apples\n1 cup sugar\n2 tsp cinnamon\n2 pie crusts",
		Instructions: "Slice the apples\nToss with sugar and cinnamon\nFill the crust and bake at 190C for 50 minutes",
		Tags:         []string{"dessert", "baking"},
	}},
	{owner: "janesmith", public: true, input: service.RecipeInput{
		Title:        "Weeknight Chickpea Curry",
		Description:  "Pantry staples, thirty minutes.",
		Ingredients:  "2 cans chickpeas\n1 can coconut milk\n1 onion\n2 tbsp curry paste",
		Instructions: "Soften the onion\nFry the curry paste\nAdd chickpeas and coconut milk and simmer",
		Tags:         []string{"vegan", "dinner", "quick"},
	}},
	{owner: "janesmith", public: false, input: service.RecipeInput{
		Title:        "Secret Tomato Sauce",
		Ingredients:  "2 cans tomatoes\n4 cloves garlic\nolive oil",
		Instructions: "Cook the garlic gently\nAdd tomatoes and reduce for an hour",
		Tags:         []string{"sauce"},
	}},
	{owner: "bobwilson", public: true, input: service.RecipeInput{
		Title:        "Overnight Oats",
		Ingredients:  "1 cup oats\n1 cup milk\n1 tbsp honey",
		Instructions: "Mix everything\nRefrigerate overnight",
		Tags:         []string{"breakfast", "quick"},
	}},
}

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		bootLog := logger.New(logger.Options{})
		bootLog.Fatal().Err(err).Msg("failed to load configuration")
	}
	log := logger.New(logger.Options{Level: cfg.LogLevel, Format: cfg.LogFormat})
	if cfg.Env.IsProduction() {
		log.Fatal().Msg("refusing to seed a production database")
	}

	db, err := database.Open(cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	if err := database.RunMigrations(db, cfg.MigrationsDir, log); err != nil {
		log.Fatal().Err(err).Msg("failed to run migrations")
	}

	ctx := context.Background()
	authService := auth.NewService(db, cfg.JWTSecret, cfg.TokenTTL, log)
	recipeRepo := repository.NewRecipeRepository(db)
	profileRepo := repository.NewProfileRepository(db)
	userRepo := repository.NewUserRepository(db)
	enricher := service.NewEnricher(profileRepo, repository.NewCommentRepository(db),
		repository.NewRecipeLikeTable(db), repository.NewCommentLikeTable(db), log)
	recipeService := service.NewRecipeService(recipeRepo, profileRepo, enricher, nil, log)

	ids := make(map[string]uuid.UUID, len(users))
	for _, u := range users {
		id, err := ensureUser(ctx, authService, userRepo, profileRepo, u)
		if err != nil {
			log.Fatal().Err(err).Str("email", u.email).Msg("failed to seed user")
		}
		ids[u.username] = id
	}

	for _, r := range recipes {
		if _, err := recipeRepo.FirstBySlug(ctx, slug.Make(r.input.Title)); err == nil {
			log.Debug().Str("title", r.input.Title).Msg("recipe exists, skipping")
			continue
		}
		owner := ids[r.owner]
		in := r.input
		in.IsPublic = &r.public
		if _, err := recipeService.Create(ctx, &owner, in); err != nil {
			log.Fatal().Err(err).Str("title", in.Title).Msg("failed to seed recipe")
		}
	}

	log.Info().Int("users", len(users)).Int("recipes", len(recipes)).Str("password", seedPassword).Msg("seed complete")
}

// ensureUser registers u, or looks it up when the email is already taken.
func ensureUser(ctx context.Context, authService *auth.Service, users *repository.UserRepository, profiles *repository.ProfileRepository, u seedUser) (uuid.UUID, error) {
	var id uuid.UUID
	_, user, err := authService.Register(ctx, auth.RegisterInput{Email: u.email, Password: seedPassword, Username: u.username})
	switch {
	case err == nil:
		id = user.ID
	case errors.Is(err, apperrors.ErrConflict):
		existing, err := users.GetByEmail(ctx, u.email)
		if err != nil {
			return uuid.Nil, err
		}
		id = existing.ID
	default:
		return uuid.Nil, err
	}

	if u.admin {
		if _, err := profiles.Update(ctx, id, map[string]interface{}{"is_admin": true}); err != nil {
			return uuid.Nil, err
		}
	}
	return id, nil
}
