package models

import (
	"time"

	"gorm.io/datatypes"
)

// SidebarConfiguration stores one sidebar configuration document.
type SidebarConfiguration struct {
	ID   string `gorm:"type:uuid;primaryKey"`       // Row identifier.
	Name string `gorm:"type:varchar(255);not null"` // Display name.

	ConfigurationData datatypes.JSON `gorm:"type:jsonb;not null;default:'{}'"` // Sidebar document.

	CreatedAt time.Time `gorm:"not null;autoCreateTime"` // Creation timestamp.
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime"` // Last update timestamp.
}

// TableName overrides the default table name.
func (SidebarConfiguration) TableName() string {
	return "sidebar_configurations"
}
