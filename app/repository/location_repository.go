package repository

import (
	"gorm.io/gorm"

	"blogium/app/models"
)

// locationRepository implements the LocationRepository interface
type locationRepository struct {
	db *gorm.DB
}

// NewLocationRepository creates a new location repository instance
func NewLocationRepository(db *gorm.DB) LocationRepository {
	return &locationRepository{db: db}
}

// Create creates a new location in the database
func (r *locationRepository) Create(location *models.Location) error {
	return r.db.Create(location).Error
}

// GetByID retrieves a location by its ID
func (r *locationRepository) GetByID(id uint) (*models.Location, error) {
	var location models.Location
	err := r.db.First(&location, id).Error
	if err != nil {
		return nil, err
	}
	return &location, nil
}

// GetPublished retrieves all published locations for form selects
func (r *locationRepository) GetPublished() ([]models.Location, error) {
	var locations []models.Location
	err := r.db.Where("is_published = ?", true).Order("name ASC").Find(&locations).Error
	return locations, err
}

// Update updates an existing location in the database
func (r *locationRepository) Update(location *models.Location) error {
	return r.db.Save(location).Error
}

// Delete removes a location and nulls the reference on dependent posts.
func (r *locationRepository) Delete(id uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Post{}).Where("location_id = ?", id).Update("location_id", nil).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Location{}, id).Error
	})
}
