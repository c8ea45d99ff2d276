package models

import (
	"time"

	"github.com/go-playground/validator/v10"
	"gorm.io/gorm"
)

// Comment belongs to exactly one post and is removed together with it.
// AuthorID is nullable so that deleting a user keeps their comments.
type Comment struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	PostID    uint           `gorm:"index" json:"post_id"`
	Post      *Post          `gorm:"foreignKey:PostID" json:"post,omitempty"`
	AuthorID  *uint          `gorm:"index" json:"author_id"`
	Author    *User          `gorm:"foreignKey:AuthorID" json:"author,omitempty"`
	Text      string         `gorm:"type:text" json:"text" validate:"required,min=1"`
	CreatedAt time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (c *Comment) Validate() error {
	v := validator.New()
	return v.Struct(c)
}

// TableName specifies the table name for the Comment model. The raw
// comment-count subquery in the post repository depends on it.
func (Comment) TableName() string {
	return "comments"
}

// IsOwnedBy reports whether the comment still has an author and it is userID.
func (c *Comment) IsOwnedBy(userID uint) bool {
	return c.AuthorID != nil && *c.AuthorID == userID
}
