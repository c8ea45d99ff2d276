package models

import (
	"time"

	"github.com/go-playground/validator/v10"
	"gorm.io/gorm"
)

// Category groups posts under a unique URL slug. An unpublished category
// hides every post assigned to it.
type Category struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	Title       string         `gorm:"type:varchar(256)" json:"title" validate:"required,min=1,max=256"`
	Slug        string         `gorm:"uniqueIndex;type:varchar(256)" json:"slug" validate:"required,min=1,max=256"`
	Description string         `gorm:"type:text" json:"description" validate:"required"`
	IsPublished bool           `gorm:"default:true" json:"is_published"`
	CreatedAt   time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}

func (c *Category) Validate() error {
	v := validator.New()
	return v.Struct(c)
}

// TableName specifies the table name for the Category model
func (Category) TableName() string {
	return "categories"
}
