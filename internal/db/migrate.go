package db

import (
	"fmt"

	"github.com/zulandar/workboard/internal/models"
	"gorm.io/gorm"
)

// AllModels returns every GORM model in dependency order, parents first.
func AllModels() []interface{} {
	return []interface{}{
		&models.Board{},
		&models.List{},
		&models.Card{},
		&models.Comment{},
		&models.ActivityLog{},
	}
}

// AutoMigrate creates or updates all tables.
func AutoMigrate(db *gorm.DB) error {
	if err := db.AutoMigrate(AllModels()...); err != nil {
		return fmt.Errorf("db: auto-migrate: %w", err)
	}
	return nil
}

// DropAll drops every Workboard table, children first.
func DropAll(db *gorm.DB) error {
	all := AllModels()
	for i := len(all) - 1; i >= 0; i-- {
		if err := db.Migrator().DropTable(all[i]); err != nil {
			return fmt.Errorf("db: drop %T: %w", all[i], err)
		}
	}
	return nil
}
