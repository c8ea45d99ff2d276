package repository

import (
	"time"

	"gorm.io/gorm"

	"blogium/app/models"
)

// commentCountSelect annotates each row with its live comment count.
const commentCountSelect = "posts.*, (SELECT COUNT(*) FROM comments WHERE comments.post_id = posts.id AND comments.deleted_at IS NULL) AS comment_count"

// postRepository implements the PostRepository interface
type postRepository struct {
	db *gorm.DB
}

// NewPostRepository creates a new post repository instance
func NewPostRepository(db *gorm.DB) PostRepository {
	return &postRepository{db: db}
}

// Create creates a new post in the database
func (r *postRepository) Create(post *models.Post) error {
	return r.db.Create(post).Error
}

// GetByID retrieves a post by its ID with author, category and location
// preloaded. No visibility filter is applied here: callers run the policy
// against the loaded row.
func (r *postRepository) GetByID(id uint) (*models.Post, error) {
	var post models.Post
	err := r.db.
		Select(commentCountSelect).
		Preload("Author").Preload("Category").Preload("Location").
		First(&post, id).Error
	if err != nil {
		return nil, err
	}
	return &post, nil
}

// applyFilter translates a PostFilter into WHERE clauses. The PublicOnly
// conjunction must match policy.PubliclyVisible exactly.
func (r *postRepository) applyFilter(query *gorm.DB, filter PostFilter) *gorm.DB {
	if filter.AuthorID != nil {
		query = query.Where("posts.author_id = ?", *filter.AuthorID)
	}
	if filter.CategoryID != nil {
		query = query.Where("posts.category_id = ?", *filter.CategoryID)
	}
	if filter.PublicOnly {
		now := filter.Now
		if now.IsZero() {
			now = time.Now()
		}
		query = query.
			Where("posts.is_published = ?", true).
			Where("posts.pub_date <= ?", now).
			Where("posts.category_id IS NULL OR EXISTS (SELECT 1 FROM categories WHERE categories.id = posts.category_id AND categories.is_published = ? AND categories.deleted_at IS NULL)", true)
	}
	return query
}

// List retrieves filtered posts ordered by pub_date descending, annotated
// with their comment counts.
func (r *postRepository) List(filter PostFilter, offset, limit int) ([]models.Post, error) {
	var posts []models.Post
	query := r.applyFilter(r.db.Model(&models.Post{}), filter)
	err := query.
		Select(commentCountSelect).
		Preload("Author").Preload("Category").Preload("Location").
		Order("posts.pub_date DESC").
		Offset(offset).Limit(limit).
		Find(&posts).Error
	return posts, err
}

// Count returns the number of posts matching the filter
func (r *postRepository) Count(filter PostFilter) (int64, error) {
	var count int64
	query := r.applyFilter(r.db.Model(&models.Post{}), filter)
	err := query.Count(&count).Error
	return count, err
}

// Update updates an existing post in the database
func (r *postRepository) Update(post *models.Post) error {
	return r.db.Save(post).Error
}

// Delete removes a post together with all of its comments. Comments go
// first so a failed commit never leaves orphans.
func (r *postRepository) Delete(id uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("post_id = ?", id).Delete(&models.Comment{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Post{}, id).Error
	})
}
