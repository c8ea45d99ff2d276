package models

import (
	"time"

	"github.com/go-playground/validator/v10"
	"gorm.io/gorm"
)

// Post is a blog entry. AuthorID is nullable: deleting a user severs
// authorship instead of cascading into their posts. CategoryID and
// LocationID are nulled when the referenced row is deleted.
//
// Storage order is pub_date ascending; listings re-sort descending.
type Post struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	Title       string         `gorm:"type:varchar(256)" json:"title" validate:"required,min=1,max=256"`
	Text        string         `gorm:"type:text" json:"text" validate:"required"`
	PubDate     time.Time      `gorm:"index" json:"pub_date"`
	IsPublished bool           `gorm:"default:true" json:"is_published"`
	AuthorID    *uint          `gorm:"index" json:"author_id"`
	Author      *User          `gorm:"foreignKey:AuthorID" json:"author,omitempty"`
	CategoryID  *uint          `gorm:"index" json:"category_id"`
	Category    *Category      `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
	LocationID  *uint          `json:"location_id"`
	Location    *Location      `gorm:"foreignKey:LocationID" json:"location,omitempty"`
	ImagePath   string         `gorm:"type:varchar(255)" json:"image_path"`
	CreatedAt   time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`

	// CommentCount is a read-only listing annotation, not a column.
	CommentCount int64 `gorm:"->;-:migration" json:"comment_count"`
}

func (p *Post) Validate() error {
	v := validator.New()
	return v.Struct(p)
}

// TableName specifies the table name for the Post model
func (Post) TableName() string {
	return "posts"
}

// IsOwnedBy reports whether the post still has an author and it is userID.
// A severed (nulled) author matches nobody.
func (p *Post) IsOwnedBy(userID uint) bool {
	return p.AuthorID != nil && *p.AuthorID == userID
}
