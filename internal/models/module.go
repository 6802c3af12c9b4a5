package models

import (
	"time"

	"gorm.io/gorm"
)

// ModuleState represents a module's persisted enablement state. Modules that
// have never been toggled have no row and fall back to their registered
// default.
type ModuleState struct {
	ID        uint           `gorm:"primarykey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	ModuleKey string `gorm:"uniqueIndex;not null" json:"module_key"`
	Enabled   bool   `gorm:"default:false" json:"enabled"`
}

// SettingValue represents the persisted value of a single module setting. The
// value is stored JSON encoded so that booleans, numbers and strings survive a
// round trip unchanged.
type SettingValue struct {
	ID        uint           `gorm:"primarykey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	ModuleKey string `gorm:"uniqueIndex:idx_module_input;not null" json:"module_key"`
	Input     string `gorm:"uniqueIndex:idx_module_input;not null" json:"input"`
	Value     string `gorm:"type:text" json:"value"` // JSON encoded value
}
