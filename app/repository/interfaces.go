package repository

import (
	"time"

	"gorm.io/gorm"

	"blogium/app/models"
)

// PostFilter describes the predicates Query Assembly may ask for. When
// PublicOnly is set the repository applies the publish/time/category
// conjunction; Now defaults to time.Now when zero.
type PostFilter struct {
	AuthorID   *uint
	CategoryID *uint
	PublicOnly bool
	Now        time.Time
}

// PostRepository defines the interface for post-related database operations
type PostRepository interface {
	Create(post *models.Post) error
	GetByID(id uint) (*models.Post, error)
	List(filter PostFilter, offset, limit int) ([]models.Post, error)
	Count(filter PostFilter) (int64, error)
	Update(post *models.Post) error
	Delete(id uint) error
}

// CategoryRepository defines the interface for category-related operations
type CategoryRepository interface {
	Create(category *models.Category) error
	GetByID(id uint) (*models.Category, error)
	GetBySlug(slug string) (*models.Category, error)
	GetPublished() ([]models.Category, error)
	SlugExists(slug string) (bool, error)
	Update(category *models.Category) error
	Delete(id uint) error
}

// LocationRepository defines the interface for location-related operations
type LocationRepository interface {
	Create(location *models.Location) error
	GetByID(id uint) (*models.Location, error)
	GetPublished() ([]models.Location, error)
	Update(location *models.Location) error
	Delete(id uint) error
}

// CommentRepository defines the interface for comment-related operations
type CommentRepository interface {
	Create(comment *models.Comment) error
	GetByID(id uint) (*models.Comment, error)
	ListByPost(postID uint) ([]models.Comment, error)
	CountByPost(postID uint) (int64, error)
	Update(comment *models.Comment) error
	Delete(id uint) error
}

// UserRepository defines the interface for user-related database operations
type UserRepository interface {
	Create(user *models.User) error
	GetByID(id uint) (*models.User, error)
	GetByUsername(username string) (*models.User, error)
	GetByEmail(email string) (*models.User, error)
	Update(user *models.User) error
	Delete(id uint) error
}

// Repositories struct holds all repository instances
type Repositories struct {
	Post     PostRepository
	Category CategoryRepository
	Location LocationRepository
	Comment  CommentRepository
	User     UserRepository
}

// NewRepositories creates a new instance of all repositories
func NewRepositories(db *gorm.DB) *Repositories {
	return &Repositories{
		Post:     NewPostRepository(db),
		Category: NewCategoryRepository(db),
		Location: NewLocationRepository(db),
		Comment:  NewCommentRepository(db),
		User:     NewUserRepository(db),
	}
}
