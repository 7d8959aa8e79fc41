package services

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/recipe-app/api/internal/models"
	"github.com/recipe-app/api/internal/repository"
	"github.com/recipe-app/api/pkg/logger"
)

type RecipeService interface {
	ListRecipes(ctx context.Context, owner uuid.UUID, filter repository.RecipeFilter) ([]models.Recipe, error)
	GetRecipe(ctx context.Context, owner, id uuid.UUID) (*models.Recipe, error)
	CreateRecipe(ctx context.Context, owner uuid.UUID, in repository.RecipeFields) (*models.Recipe, error)
	UpdateRecipe(ctx context.Context, owner, id uuid.UUID, in repository.RecipeFields) (*models.Recipe, error)
	DeleteRecipe(ctx context.Context, owner, id uuid.UUID) error
}

type recipeService struct {
	recipeRepo repository.RecipeRepository
}

func NewRecipeService(recipeRepo repository.RecipeRepository) RecipeService {
	return &recipeService{recipeRepo: recipeRepo}
}

var _ RecipeService = (*recipeService)(nil)

func (s *recipeService) ListRecipes(ctx context.Context, owner uuid.UUID, filter repository.RecipeFilter) ([]models.Recipe, error) {
	return s.recipeRepo.ListByOwner(ctx, owner, filter)
}

// GetRecipe answers not_found both for missing recipes and for recipes owned
// by another user.
func (s *recipeService) GetRecipe(ctx context.Context, owner, id uuid.UUID) (*models.Recipe, error) {
	return s.recipeRepo.GetOwned(ctx, owner, id)
}

func (s *recipeService) CreateRecipe(ctx context.Context, owner uuid.UUID, in repository.RecipeFields) (*models.Recipe, error) {
	r, err := s.recipeRepo.Create(ctx, owner, in)
	if err != nil {
		return nil, err
	}
	logger.L().Info("recipe created", zap.String("recipe_id", r.ID.String()), zap.String("user_id", owner.String()))
	return r, nil
}

func (s *recipeService) UpdateRecipe(ctx context.Context, owner, id uuid.UUID, in repository.RecipeFields) (*models.Recipe, error) {
	r, err := s.recipeRepo.Update(ctx, owner, id, in)
	if err != nil {
		return nil, err
	}
	logger.L().Info("recipe updated", zap.String("recipe_id", id.String()), zap.String("user_id", owner.String()))
	return r, nil
}

func (s *recipeService) DeleteRecipe(ctx context.Context, owner, id uuid.UUID) error {
	if err := s.recipeRepo.DeleteOwned(ctx, owner, id); err != nil {
		return err
	}
	logger.L().Info("recipe deleted", zap.String("recipe_id", id.String()), zap.String("user_id", owner.String()))
	return nil
}
