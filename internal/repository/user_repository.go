package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/recipe-app/api/internal/models"
	appErr "github.com/recipe-app/api/pkg/errors"
)

type UserRepository interface {
	BaseRepository[models.User]
	GetByEmail(ctx context.Context, email string, dest *models.User) error
	List(ctx context.Context) ([]models.User, error)
	// DeleteCascade removes the user together with every tag, ingredient and
	// recipe they own, in one transaction.
	DeleteCascade(ctx context.Context, userID uuid.UUID) error
}

type userRepository struct {
	BaseRepository[models.User]
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{BaseRepository: NewBaseRepository[models.User](db, "user"), db: db}
}

// Create reports a duplicate email as a validation error on the email field.
func (r *userRepository) Create(ctx context.Context, u *models.User) error {
	if err := r.db.WithContext(ctx).Create(u).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return appErr.Invalid("email", "user with this email already exists")
		}
		return appErr.Wrap(err, appErr.CodeInternal, "create user failed")
	}
	return nil
}

func (r *userRepository) GetByEmail(ctx context.Context, email string, dest *models.User) error {
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(dest).Error; err != nil {
		return notFoundOr(err, "user", "get")
	}
	return nil
}

func (r *userRepository) List(ctx context.Context) ([]models.User, error) {
	out := []models.User{}
	if err := r.db.WithContext(ctx).Order("email ASC").Find(&out).Error; err != nil {
		return nil, appErr.Wrap(err, appErr.CodeInternal, "list users failed")
	}
	return out, nil
}

func (r *userRepository) DeleteCascade(ctx context.Context, userID uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		recipes := tx.Model(&models.Recipe{}).Select("id").Where("user_id = ?", userID)
		tags := tx.Model(&models.Tag{}).Select("id").Where("user_id = ?", userID)
		ingredients := tx.Model(&models.Ingredient{}).Select("id").Where("user_id = ?", userID)

		steps := []struct {
			what string
			run  func() error
		}{
			{"recipe tag links", func() error {
				return tx.Exec("DELETE FROM recipe_tags WHERE recipe_id IN (?) OR tag_id IN (?)", recipes, tags).Error
			}},
			{"recipe ingredient links", func() error {
				return tx.Exec("DELETE FROM recipe_ingredients WHERE recipe_id IN (?) OR ingredient_id IN (?)", recipes, ingredients).Error
			}},
			{"recipes", func() error { return tx.Where("user_id = ?", userID).Delete(&models.Recipe{}).Error }},
			{"tags", func() error { return tx.Where("user_id = ?", userID).Delete(&models.Tag{}).Error }},
			{"ingredients", func() error { return tx.Where("user_id = ?", userID).Delete(&models.Ingredient{}).Error }},
		}
		for _, s := range steps {
			if err := s.run(); err != nil {
				return appErr.Wrap(err, appErr.CodeInternal, "delete "+s.what+" failed")
			}
		}

		res := tx.Delete(&models.User{}, "id = ?", userID)
		if res.Error != nil {
			return appErr.Wrap(res.Error, appErr.CodeInternal, "delete user failed")
		}
		if res.RowsAffected == 0 {
			return appErr.NotFound("user")
		}
		return nil
	})
}
