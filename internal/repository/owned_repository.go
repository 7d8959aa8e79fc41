package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/recipe-app/api/internal/models"
	appErr "github.com/recipe-app/api/pkg/errors"
)

// OwnedRepository stores the simple named records (tags, ingredients) that
// belong to exactly one user. Every method is scoped by owner.
type OwnedRepository[T any] interface {
	ListByOwner(ctx context.Context, owner uuid.UUID) ([]T, error)
	// ListAssignedByOwner returns the owner's records referenced by at least
	// one of the owner's recipes, each at most once.
	ListAssignedByOwner(ctx context.Context, owner uuid.UUID) ([]T, error)
	GetOwned(ctx context.Context, owner, id uuid.UUID) (*T, error)
	Create(ctx context.Context, owner uuid.UUID, name string) (*T, error)
	Rename(ctx context.Context, owner, id uuid.UUID, name string) (*T, error)
	DeleteOwned(ctx context.Context, owner, id uuid.UUID) error
}

type ownedRepository[T any, PT models.Owned[T]] struct {
	db     *gorm.DB
	entity string
}

// NewOwnedRepository builds the repository for one named record type, e.g.
// NewOwnedRepository[models.Tag](db, "tag").
func NewOwnedRepository[T any, PT models.Owned[T]](db *gorm.DB, entity string) OwnedRepository[T] {
	return &ownedRepository[T, PT]{db: db, entity: entity}
}

func NewTagRepository(db *gorm.DB) OwnedRepository[models.Tag] {
	return NewOwnedRepository[models.Tag](db, "tag")
}

func NewIngredientRepository(db *gorm.DB) OwnedRepository[models.Ingredient] {
	return NewOwnedRepository[models.Ingredient](db, "ingredient")
}

func (r *ownedRepository[T, PT]) ListByOwner(ctx context.Context, owner uuid.UUID) ([]T, error) {
	out := []T{}
	if err := r.db.WithContext(ctx).Where("user_id = ?", owner).Order("name DESC").Find(&out).Error; err != nil {
		return nil, appErr.Wrap(err, appErr.CodeInternal, "list "+r.entity+"s failed")
	}
	return out, nil
}

func (r *ownedRepository[T, PT]) ListAssignedByOwner(ctx context.Context, owner uuid.UUID) ([]T, error) {
	var zero T
	join := PT(&zero).JoinTable()
	col := PT(&zero).JoinColumn()

	db := r.db.WithContext(ctx)
	assigned := db.Table(join).
		Select(fmt.Sprintf("%s.%s", join, col)).
		Joins(fmt.Sprintf("JOIN recipes ON recipes.id = %s.recipe_id", join)).
		Where("recipes.user_id = ?", owner)

	out := []T{}
	if err := db.Where("user_id = ? AND id IN (?)", owner, assigned).Order("name DESC").Find(&out).Error; err != nil {
		return nil, appErr.Wrap(err, appErr.CodeInternal, "list assigned "+r.entity+"s failed")
	}
	return out, nil
}

func (r *ownedRepository[T, PT]) GetOwned(ctx context.Context, owner, id uuid.UUID) (*T, error) {
	var out T
	if err := r.db.WithContext(ctx).Where("id = ? AND user_id = ?", id, owner).First(&out).Error; err != nil {
		return nil, notFoundOr(err, r.entity, "get")
	}
	return &out, nil
}

func (r *ownedRepository[T, PT]) Create(ctx context.Context, owner uuid.UUID, name string) (*T, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, appErr.Invalid("name", "this field may not be blank")
	}
	var obj T
	rec := PT(&obj).Record()
	rec.UserID = owner
	rec.Name = name
	if err := r.db.WithContext(ctx).Create(&obj).Error; err != nil {
		return nil, appErr.Wrap(err, appErr.CodeInternal, "create "+r.entity+" failed")
	}
	return &obj, nil
}

func (r *ownedRepository[T, PT]) Rename(ctx context.Context, owner, id uuid.UUID, name string) (*T, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, appErr.Invalid("name", "this field may not be blank")
	}
	obj, err := r.GetOwned(ctx, owner, id)
	if err != nil {
		return nil, err
	}
	PT(obj).Record().Name = name
	if err := r.db.WithContext(ctx).Model(obj).Update("name", name).Error; err != nil {
		return nil, appErr.Wrap(err, appErr.CodeInternal, "update "+r.entity+" failed")
	}
	return obj, nil
}

// DeleteOwned removes the record and its recipe links. Recipes themselves are
// left untouched.
func (r *ownedRepository[T, PT]) DeleteOwned(ctx context.Context, owner, id uuid.UUID) error {
	var zero T
	join := PT(&zero).JoinTable()
	col := PT(&zero).JoinColumn()

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var found T
		if err := tx.Where("id = ? AND user_id = ?", id, owner).First(&found).Error; err != nil {
			return notFoundOr(err, r.entity, "get")
		}
		// Links go first: the join table holds foreign keys to the record.
		if err := tx.Exec(fmt.Sprintf("DELETE FROM %s WHERE %s = ?", join, col), id).Error; err != nil {
			return appErr.Wrap(err, appErr.CodeInternal, "unlink "+r.entity+" failed")
		}
		if err := tx.Delete(&found).Error; err != nil {
			return appErr.Wrap(err, appErr.CodeInternal, "delete "+r.entity+" failed")
		}
		return nil
	})
}
