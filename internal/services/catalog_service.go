package services

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/recipe-app/api/internal/models"
	"github.com/recipe-app/api/internal/repository"
	"github.com/recipe-app/api/pkg/logger"
)

// CatalogService manages one kind of named per-user record (tags or
// ingredients) on behalf of the authenticated caller.
type CatalogService[T any] interface {
	List(ctx context.Context, owner uuid.UUID, assignedOnly bool) ([]T, error)
	Get(ctx context.Context, owner, id uuid.UUID) (*T, error)
	Create(ctx context.Context, owner uuid.UUID, name string) (*T, error)
	Rename(ctx context.Context, owner, id uuid.UUID, name string) (*T, error)
	Delete(ctx context.Context, owner, id uuid.UUID) error
}

type catalogService[T any] struct {
	repo   repository.OwnedRepository[T]
	entity string
}

func NewCatalogService[T any](repo repository.OwnedRepository[T], entity string) CatalogService[T] {
	return &catalogService[T]{repo: repo, entity: entity}
}

func NewTagService(repo repository.OwnedRepository[models.Tag]) CatalogService[models.Tag] {
	return NewCatalogService(repo, "tag")
}

func NewIngredientService(repo repository.OwnedRepository[models.Ingredient]) CatalogService[models.Ingredient] {
	return NewCatalogService(repo, "ingredient")
}

func (s *catalogService[T]) List(ctx context.Context, owner uuid.UUID, assignedOnly bool) ([]T, error) {
	if assignedOnly {
		return s.repo.ListAssignedByOwner(ctx, owner)
	}
	return s.repo.ListByOwner(ctx, owner)
}

func (s *catalogService[T]) Get(ctx context.Context, owner, id uuid.UUID) (*T, error) {
	return s.repo.GetOwned(ctx, owner, id)
}

func (s *catalogService[T]) Create(ctx context.Context, owner uuid.UUID, name string) (*T, error) {
	obj, err := s.repo.Create(ctx, owner, name)
	if err != nil {
		return nil, err
	}
	logger.L().Info(s.entity+" created", zap.String("user_id", owner.String()), zap.String("name", name))
	return obj, nil
}

func (s *catalogService[T]) Rename(ctx context.Context, owner, id uuid.UUID, name string) (*T, error) {
	obj, err := s.repo.Rename(ctx, owner, id, name)
	if err != nil {
		return nil, err
	}
	logger.L().Info(s.entity+" renamed", zap.String("user_id", owner.String()), zap.String("id", id.String()))
	return obj, nil
}

func (s *catalogService[T]) Delete(ctx context.Context, owner, id uuid.UUID) error {
	if err := s.repo.DeleteOwned(ctx, owner, id); err != nil {
		return err
	}
	logger.L().Info(s.entity+" deleted", zap.String("user_id", owner.String()), zap.String("id", id.String()))
	return nil
}
