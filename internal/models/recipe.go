package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Recipe is owned by one user and references any number of that user's tags
// and ingredients.
type Recipe struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey"`
	UserID      uuid.UUID       `gorm:"type:uuid;index;not null"`
	Title       string          `gorm:"type:varchar(255);not null"`
	TimeMinutes int             `gorm:"not null"`
	Price       decimal.Decimal `gorm:"type:decimal(8,2);not null"`
	Link        string          `gorm:"type:varchar(255)"`
	Tags        []Tag           `gorm:"many2many:recipe_tags"`
	Ingredients []Ingredient    `gorm:"many2many:recipe_ingredients"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (r *Recipe) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}
