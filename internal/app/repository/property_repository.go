package repository

import (
	"github.com/rentease/rentease-backend/internal/app/model"
	"github.com/rentease/rentease-backend/pkg/logger"
	"gorm.io/gorm"
)

// propertyColumns are the mutable listing fields written by UpdateOwned. The
// owner and verified flag are deliberately absent: ownership is immutable and
// verification is not client-controlled.
var propertyColumns = []string{
	"type", "title", "location", "price", "deposit", "description",
	"beds", "baths", "sq_ft", "gender", "furnishing", "availability",
	"max_guests", "available_from", "available_to",
	"phone", "whatsapp", "amenities", "images",
}

type PropertyRepository interface {
	Create(property *model.Property) error
	FindAll() ([]model.Property, error)
	FindByID(id uint) (*model.Property, error)
	FindByUserID(userID uint) ([]model.Property, error)
	FindByIDAndOwner(id, userID uint) (*model.Property, error)
	UpdateOwned(property *model.Property) (bool, error)
	DeleteOwned(id, userID uint) (bool, error)
}

type propertyRepository struct {
	db *gorm.DB
}

func NewPropertyRepository(db *gorm.DB) PropertyRepository {
	return &propertyRepository{db: db}
}

func (r *propertyRepository) Create(property *model.Property) error {
	logger.Debug("Creating property in database", map[string]interface{}{
		"user_id": property.UserID,
		"title":   property.Title,
	})

	if err := r.db.Create(property).Error; err != nil {
		logger.Error("Failed to create property in database", err, map[string]interface{}{
			"user_id": property.UserID,
		})
		return err
	}

	logger.Debug("Property created in database", map[string]interface{}{
		"property_id": property.ID,
		"user_id":     property.UserID,
	})
	return nil
}

func (r *propertyRepository) FindAll() ([]model.Property, error) {
	var properties []model.Property
	if err := r.db.Order("created_at DESC").Find(&properties).Error; err != nil {
		return nil, err
	}
	return properties, nil
}

func (r *propertyRepository) FindByID(id uint) (*model.Property, error) {
	var property model.Property
	if err := r.db.First(&property, id).Error; err != nil {
		return nil, err
	}
	return &property, nil
}

func (r *propertyRepository) FindByUserID(userID uint) ([]model.Property, error) {
	var properties []model.Property
	if err := r.db.Where("user_id = ?", userID).Order("created_at DESC").Find(&properties).Error; err != nil {
		return nil, err
	}
	return properties, nil
}

func (r *propertyRepository) FindByIDAndOwner(id, userID uint) (*model.Property, error) {
	var property model.Property
	err := r.db.Where("id = ? AND user_id = ?", id, userID).First(&property).Error
	if err != nil {
		return nil, err
	}
	return &property, nil
}

// UpdateOwned replaces all mutable fields of a listing in one conditional
// statement filtered by id and owner. The returned bool reports whether a row
// matched, which closes the check-then-write gap against a concurrent delete.
func (r *propertyRepository) UpdateOwned(property *model.Property) (bool, error) {
	result := r.db.Model(&model.Property{}).
		Where("id = ? AND user_id = ?", property.ID, property.UserID).
		Select(propertyColumns).
		Updates(property)
	if result.Error != nil {
		logger.Error("Failed to update property in database", result.Error, map[string]interface{}{
			"property_id": property.ID,
			"user_id":     property.UserID,
		})
		return false, result.Error
	}

	logger.Debug("Property updated in database", map[string]interface{}{
		"property_id":   property.ID,
		"user_id":       property.UserID,
		"rows_affected": result.RowsAffected,
	})
	return result.RowsAffected > 0, nil
}

// DeleteOwned removes a listing in one conditional statement filtered by id
// and owner. The returned bool reports whether a row matched.
func (r *propertyRepository) DeleteOwned(id, userID uint) (bool, error) {
	result := r.db.Where("id = ? AND user_id = ?", id, userID).Delete(&model.Property{})
	if result.Error != nil {
		logger.Error("Failed to delete property from database", result.Error, map[string]interface{}{
			"property_id": id,
			"user_id":     userID,
		})
		return false, result.Error
	}

	logger.Debug("Property deleted from database", map[string]interface{}{
		"property_id":   id,
		"user_id":       userID,
		"rows_affected": result.RowsAffected,
	})
	return result.RowsAffected > 0, nil
}
