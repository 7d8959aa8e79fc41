package repository

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/recipe-app/api/internal/models"
	appErr "github.com/recipe-app/api/pkg/errors"
)

// RecipeFilter narrows ListByOwner to recipes carrying any of the given tags
// or ingredients. Empty slices don't filter.
type RecipeFilter struct {
	TagIDs        []uuid.UUID
	IngredientIDs []uuid.UUID
}

// RecipeFields is the writable part of a recipe. A nil pointer leaves the
// stored value unchanged on update; on create every field except Link, TagIDs
// and IngredientIDs is required.
type RecipeFields struct {
	Title         *string
	TimeMinutes   *int
	Price         *decimal.Decimal
	Link          *string
	TagIDs        *[]uuid.UUID
	IngredientIDs *[]uuid.UUID
}

type RecipeRepository interface {
	ListByOwner(ctx context.Context, owner uuid.UUID, filter RecipeFilter) ([]models.Recipe, error)
	GetOwned(ctx context.Context, owner, id uuid.UUID) (*models.Recipe, error)
	Create(ctx context.Context, owner uuid.UUID, fields RecipeFields) (*models.Recipe, error)
	Update(ctx context.Context, owner, id uuid.UUID, fields RecipeFields) (*models.Recipe, error)
	DeleteOwned(ctx context.Context, owner, id uuid.UUID) error
}

type recipeRepository struct {
	db *gorm.DB
}

func NewRecipeRepository(db *gorm.DB) RecipeRepository {
	return &recipeRepository{db: db}
}

func (r *recipeRepository) preload(db *gorm.DB) *gorm.DB {
	return db.
		Preload("Tags", func(db *gorm.DB) *gorm.DB { return db.Order("name DESC") }).
		Preload("Ingredients", func(db *gorm.DB) *gorm.DB { return db.Order("name DESC") })
}

func (r *recipeRepository) ListByOwner(ctx context.Context, owner uuid.UUID, filter RecipeFilter) ([]models.Recipe, error) {
	db := r.db.WithContext(ctx)
	q := r.preload(db).Where("user_id = ?", owner)
	if len(filter.TagIDs) > 0 {
		q = q.Where("id IN (?)", db.Table("recipe_tags").Select("recipe_id").Where("tag_id IN ?", filter.TagIDs))
	}
	if len(filter.IngredientIDs) > 0 {
		q = q.Where("id IN (?)", db.Table("recipe_ingredients").Select("recipe_id").Where("ingredient_id IN ?", filter.IngredientIDs))
	}

	out := []models.Recipe{}
	if err := q.Order("title DESC").Find(&out).Error; err != nil {
		return nil, appErr.Wrap(err, appErr.CodeInternal, "list recipes failed")
	}
	return out, nil
}

func (r *recipeRepository) GetOwned(ctx context.Context, owner, id uuid.UUID) (*models.Recipe, error) {
	return r.getOwned(r.db.WithContext(ctx), owner, id)
}

func (r *recipeRepository) getOwned(db *gorm.DB, owner, id uuid.UUID) (*models.Recipe, error) {
	var out models.Recipe
	if err := r.preload(db).Where("id = ? AND user_id = ?", id, owner).First(&out).Error; err != nil {
		return nil, notFoundOr(err, "recipe", "get")
	}
	return &out, nil
}

func (r *recipeRepository) Create(ctx context.Context, owner uuid.UUID, fields RecipeFields) (*models.Recipe, error) {
	if err := validateRecipeFields(fields, true); err != nil {
		return nil, err
	}

	rec := models.Recipe{UserID: owner}
	applyScalars(&rec, fields)

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := resolveRefs(tx, owner, fields, &rec); err != nil {
			return err
		}
		// Tags and ingredients already exist; only the links are written.
		if err := tx.Omit("Tags.*", "Ingredients.*").Create(&rec).Error; err != nil {
			return appErr.Wrap(err, appErr.CodeInternal, "create recipe failed")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return r.GetOwned(ctx, owner, rec.ID)
}

func (r *recipeRepository) Update(ctx context.Context, owner, id uuid.UUID, fields RecipeFields) (*models.Recipe, error) {
	if err := validateRecipeFields(fields, false); err != nil {
		return nil, err
	}

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		rec, err := r.getOwned(tx, owner, id)
		if err != nil {
			return err
		}
		applyScalars(rec, fields)
		if err := resolveRefs(tx, owner, fields, rec); err != nil {
			return err
		}

		if err := tx.Omit(clause.Associations).Save(rec).Error; err != nil {
			return appErr.Wrap(err, appErr.CodeInternal, "update recipe failed")
		}
		if fields.TagIDs != nil {
			if err := replaceLinks(tx.Model(rec).Association("Tags"), rec.Tags); err != nil {
				return appErr.Wrap(err, appErr.CodeInternal, "update recipe tags failed")
			}
		}
		if fields.IngredientIDs != nil {
			if err := replaceLinks(tx.Model(rec).Association("Ingredients"), rec.Ingredients); err != nil {
				return appErr.Wrap(err, appErr.CodeInternal, "update recipe ingredients failed")
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return r.GetOwned(ctx, owner, id)
}

func (r *recipeRepository) DeleteOwned(ctx context.Context, owner, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var rec models.Recipe
		if err := tx.Where("id = ? AND user_id = ?", id, owner).First(&rec).Error; err != nil {
			return notFoundOr(err, "recipe", "get")
		}
		// Select(Associations) clears the join rows before the recipe row.
		if err := tx.Select(clause.Associations).Delete(&rec).Error; err != nil {
			return appErr.Wrap(err, appErr.CodeInternal, "delete recipe failed")
		}
		return nil
	})
}

var maxPrice = decimal.NewFromInt(1_000_000)

func validateRecipeFields(f RecipeFields, create bool) error {
	e := appErr.New(appErr.CodeInvalid, "validation failed")
	switch {
	case f.Title == nil && create:
		e.WithField("title", "this field is required")
	case f.Title != nil && strings.TrimSpace(*f.Title) == "":
		e.WithField("title", "this field may not be blank")
	}
	switch {
	case f.TimeMinutes == nil && create:
		e.WithField("time_minutes", "this field is required")
	case f.TimeMinutes != nil && *f.TimeMinutes <= 0:
		e.WithField("time_minutes", "ensure this value is greater than 0")
	}
	switch {
	case f.Price == nil && create:
		e.WithField("price", "this field is required")
	case f.Price != nil && f.Price.IsNegative():
		e.WithField("price", "ensure this value is greater than or equal to 0")
	case f.Price != nil && f.Price.GreaterThanOrEqual(maxPrice):
		e.WithField("price", "ensure that there are no more than 8 digits in total")
	case f.Price != nil && !f.Price.Equal(f.Price.Round(2)):
		e.WithField("price", "ensure that there are no more than 2 decimal places")
	}
	if len(e.Fields) > 0 {
		return e
	}
	return nil
}

func applyScalars(rec *models.Recipe, f RecipeFields) {
	if f.Title != nil {
		rec.Title = strings.TrimSpace(*f.Title)
	}
	if f.TimeMinutes != nil {
		rec.TimeMinutes = *f.TimeMinutes
	}
	if f.Price != nil {
		rec.Price = *f.Price
	}
	if f.Link != nil {
		rec.Link = strings.TrimSpace(*f.Link)
	}
}

func replaceLinks[T any](assoc *gorm.Association, items []T) error {
	if len(items) == 0 {
		return assoc.Clear()
	}
	return assoc.Replace(items)
}

// resolveRefs loads the referenced tags and ingredients, rejecting any id the
// owner doesn't own.
func resolveRefs(tx *gorm.DB, owner uuid.UUID, f RecipeFields, rec *models.Recipe) error {
	if f.TagIDs != nil {
		ids := dedupe(*f.TagIDs)
		tags := []models.Tag{}
		if len(ids) > 0 {
			if err := tx.Where("user_id = ? AND id IN ?", owner, ids).Find(&tags).Error; err != nil {
				return appErr.Wrap(err, appErr.CodeInternal, "load tags failed")
			}
		}
		if len(tags) != len(ids) {
			return appErr.Invalid("tags", "one or more tags do not exist")
		}
		rec.Tags = tags
	}
	if f.IngredientIDs != nil {
		ids := dedupe(*f.IngredientIDs)
		ingredients := []models.Ingredient{}
		if len(ids) > 0 {
			if err := tx.Where("user_id = ? AND id IN ?", owner, ids).Find(&ingredients).Error; err != nil {
				return appErr.Wrap(err, appErr.CodeInternal, "load ingredients failed")
			}
		}
		if len(ingredients) != len(ids) {
			return appErr.Invalid("ingredients", "one or more ingredients do not exist")
		}
		rec.Ingredients = ingredients
	}
	return nil
}

func dedupe(ids []uuid.UUID) []uuid.UUID {
	seen := make(map[uuid.UUID]struct{}, len(ids))
	out := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
