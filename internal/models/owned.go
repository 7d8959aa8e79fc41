package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// NamedRecord is the shape shared by the simple per-user records (tags and
// ingredients): a name and the user that owns it.
type NamedRecord struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID    uuid.UUID `gorm:"type:uuid;index;not null" json:"-"`
	Name      string    `gorm:"type:varchar(255);not null" json:"name"`
	CreatedAt time.Time `json:"-"`
}

// Record gives generic code access to the embedded fields.
func (n *NamedRecord) Record() *NamedRecord { return n }

func (n *NamedRecord) BeforeCreate(tx *gorm.DB) error {
	if n.ID == uuid.Nil {
		n.ID = uuid.New()
	}
	return nil
}

// Owned is satisfied by pointers to the named record types. JoinTable and
// JoinColumn name the recipe association table that references the record.
type Owned[T any] interface {
	*T
	Record() *NamedRecord
	JoinTable() string
	JoinColumn() string
}

// Tag labels recipes, e.g. "vegan" or "dessert".
type Tag struct {
	NamedRecord
}

func (Tag) JoinTable() string  { return "recipe_tags" }
func (Tag) JoinColumn() string { return "tag_id" }

// Ingredient is something a recipe uses.
type Ingredient struct {
	NamedRecord
}

func (Ingredient) JoinTable() string  { return "recipe_ingredients" }
func (Ingredient) JoinColumn() string { return "ingredient_id" }
