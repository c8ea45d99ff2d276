package models

import (
	"time"

	"gorm.io/gorm"
)

// Location is a named place a post may reference.
type Location struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	Name        string         `gorm:"type:varchar(256)" json:"name" validate:"required,min=1,max=256"`
	IsPublished bool           `gorm:"default:true" json:"is_published"`
	CreatedAt   time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName specifies the table name for the Location model
func (Location) TableName() string {
	return "locations"
}
