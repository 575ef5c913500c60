package api

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/pageza/recipeshare/backend/internal/models"
	"github.com/pageza/recipeshare/backend/internal/service"
)

// mockRecipeService is a mock implementation of service.IRecipeService
type mockRecipeService struct {
	mock.Mock
}

var _ service.IRecipeService = (*mockRecipeService)(nil)

func (m *mockRecipeService) List(ctx context.Context, actor *uuid.UUID, f service.ListFilter) ([]service.EnrichedRecipe, error) {
	args := m.Called(ctx, actor, f)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]service.EnrichedRecipe), args.Error(1)
}

func (m *mockRecipeService) Get(ctx context.Context, actor *uuid.UUID, id uuid.UUID) (*service.RecipeDetail, error) {
	args := m.Called(ctx, actor, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.RecipeDetail), args.Error(1)
}

func (m *mockRecipeService) GetBySlug(ctx context.Context, actor *uuid.UUID, slug string) (*service.RecipeDetail, error) {
	args := m.Called(ctx, actor, slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.RecipeDetail), args.Error(1)
}

func (m *mockRecipeService) Create(ctx context.Context, actor *uuid.UUID, in service.RecipeInput) (*models.Recipe, error) {
	args := m.Called(ctx, actor, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Recipe), args.Error(1)
}

func (m *mockRecipeService) Update(ctx context.Context, actor *uuid.UUID, id uuid.UUID, patch service.RecipePatch) (*models.Recipe, error) {
	args := m.Called(ctx, actor, id, patch)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Recipe), args.Error(1)
}

func (m *mockRecipeService) Delete(ctx context.Context, actor *uuid.UUID, id uuid.UUID) error {
	args := m.Called(ctx, actor, id)
	return args.Error(0)
}

func (m *mockRecipeService) SetImage(ctx context.Context, actor *uuid.UUID, id uuid.UUID, upload service.Upload) (*models.Recipe, error) {
	args := m.Called(ctx, actor, id, upload)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Recipe), args.Error(1)
}

// mockProfileService is a mock implementation of service.IProfileService
type mockProfileService struct {
	mock.Mock
}

var _ service.IProfileService = (*mockProfileService)(nil)

func (m *mockProfileService) Get(ctx context.Context, id uuid.UUID) (*models.Profile, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Profile), args.Error(1)
}

func (m *mockProfileService) Create(ctx context.Context, actor *uuid.UUID, in service.ProfileInput) (*models.Profile, error) {
	args := m.Called(ctx, actor, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Profile), args.Error(1)
}

func (m *mockProfileService) Update(ctx context.Context, actor *uuid.UUID, id uuid.UUID, patch service.ProfilePatch) (*models.Profile, error) {
	args := m.Called(ctx, actor, id, patch)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Profile), args.Error(1)
}

func (m *mockProfileService) UsernameAvailable(ctx context.Context, username string) (bool, error) {
	args := m.Called(ctx, username)
	return args.Bool(0), args.Error(1)
}

func (m *mockProfileService) UploadAvatar(ctx context.Context, actor *uuid.UUID, id uuid.UUID, upload service.Upload) (*models.Profile, error) {
	args := m.Called(ctx, actor, id, upload)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Profile), args.Error(1)
}
