package schema

import (
	"gorm.io/gorm"
)

// AllModels returns all schema models for GORM AutoMigrate.
func AllModels() []any {
	return []any{
		&Judgment{},
		&Principle{},
	}
}

// Searchable returns models that have a full-text index.
func Searchable() []Model {
	return []Model{
		Judgment{},
		Principle{},
	}
}

// Migrate runs GORM AutoMigrate to create or update schema.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(AllModels()...)
}
