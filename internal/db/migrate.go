package db

import (
	"fmt"

	"github.com/uiplatform/sidebar-cleanup/internal/models"
	"gorm.io/gorm"
)

// Migrate creates or updates the sidebar_configurations table.
//
// Production databases already carry the table; this exists for tests and for
// pointing the tool at a fresh local database.
func Migrate(conn *gorm.DB) error {
	if conn == nil {
		return fmt.Errorf("db: nil connection")
	}
	if errMigrate := conn.AutoMigrate(&models.SidebarConfiguration{}); errMigrate != nil {
		return fmt.Errorf("db: migrate: %w", errMigrate)
	}
	return nil
}
