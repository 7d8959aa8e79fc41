package repository

import (
	"gorm.io/gorm"

	"github.com/recipe-app/api/internal/models"
)

// registeredModels returns all models that need migration
func registeredModels() []interface{} {
	return []interface{}{
		&models.User{},
		&models.Tag{},
		&models.Ingredient{},
		&models.Recipe{},
	}
}

// AutoMigrate creates or updates the schema, including the recipe association
// tables, and then applies the hand-written index migrations.
func AutoMigrate(db *gorm.DB) error {
	if err := db.AutoMigrate(registeredModels()...); err != nil {
		return err
	}
	return runCustomMigrations(db)
}

// runCustomMigrations handles schema changes AutoMigrate can't handle
func runCustomMigrations(db *gorm.DB) error {
	migrations := []func(*gorm.DB) error{
		addOwnerOrderingIndexes,
	}
	for _, migration := range migrations {
		if err := migration(db); err != nil {
			return err
		}
	}
	return nil
}

// addOwnerOrderingIndexes backs the per-user listings, which always sort by
// the display field.
func addOwnerOrderingIndexes(db *gorm.DB) error {
	stmts := []string{
		`CREATE INDEX IF NOT EXISTS idx_tags_user_name ON tags(user_id, name)`,
		`CREATE INDEX IF NOT EXISTS idx_ingredients_user_name ON ingredients(user_id, name)`,
		`CREATE INDEX IF NOT EXISTS idx_recipes_user_title ON recipes(user_id, title)`,
	}
	for _, s := range stmts {
		if err := db.Exec(s).Error; err != nil {
			return err
		}
	}
	return nil
}
