package database

import (
	"fmt"

	"github.com/timz-app/timz-api/internal/model"
	"gorm.io/gorm"
)

// AutoMigrate creates or updates the schema for all domain models.
func AutoMigrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&model.User{},
		&model.ProfileClient{},
		&model.ProfilePro{},
		&model.Category{},
		&model.ServiceGroup{},
		&model.Service{},
	); err != nil {
		return fmt.Errorf("auto migration failed: %w", err)
	}
	return nil
}
