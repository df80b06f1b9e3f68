package service

import (
	"context"
	"errors"
	"mime/multipart"
	"time"

	"github.com/rentease/rentease-backend/internal/app/model"
	"github.com/rentease/rentease-backend/internal/app/repository"
	"github.com/rentease/rentease-backend/internal/storage"
	"github.com/rentease/rentease-backend/pkg/logger"
	"gorm.io/gorm"
)

var (
	// ErrPropertyNotFound is returned both when a listing does not exist
	// and when it belongs to another user, so mutations never disclose
	// whether a foreign record exists
	ErrPropertyNotFound = errors.New("property not found")
	ErrTooManyImages    = errors.New("a listing can hold at most 5 images")
	ErrInvalidCategory  = errors.New("invalid property category")
	ErrUploadFailed     = errors.New("image upload failed")
)

// MediaStore is the object-storage surface the listing service needs.
// *storage.S3Storage satisfies it; tests substitute a recording fake.
type MediaStore interface {
	Upload(ctx context.Context, file *multipart.FileHeader) (string, error)
	Delete(ctx context.Context, objectID string) error
}

// PropertyInput carries the client-controlled scalar fields of a listing
type PropertyInput struct {
	Type          model.PropertyCategory
	Title         string
	Location      string
	Price         string
	Deposit       string
	Description   string
	Beds          int
	Baths         int
	SqFt          string
	Gender        model.GenderPreference
	Furnishing    string
	Availability  string
	MaxGuests     *int
	AvailableFrom *time.Time
	AvailableTo   *time.Time
	Phone         string
	Whatsapp      string
	Amenities     []string
}

type PropertyService interface {
	Create(ctx context.Context, userID uint, input PropertyInput, uploads []*multipart.FileHeader) (*model.Property, error)
	Update(ctx context.Context, userID, id uint, input PropertyInput, keptImages []string, uploads []*multipart.FileHeader) (*model.Property, error)
	Delete(ctx context.Context, userID, id uint) error
	GetAll() ([]model.Property, error)
	GetByID(id uint) (*model.Property, error)
	GetByOwner(userID uint) ([]model.Property, error)
}

type propertyService struct {
	propertyRepo repository.PropertyRepository
	media        MediaStore
}

func NewPropertyService(propertyRepo repository.PropertyRepository, media MediaStore) PropertyService {
	return &propertyService{
		propertyRepo: propertyRepo,
		media:        media,
	}
}

func (s *propertyService) Create(ctx context.Context, userID uint, input PropertyInput, uploads []*multipart.FileHeader) (*model.Property, error) {
	logger.Info("Creating property", map[string]interface{}{
		"user_id": userID,
		"title":   input.Title,
		"uploads": len(uploads),
	})

	if !model.ValidCategory(input.Type) {
		return nil, ErrInvalidCategory
	}
	if len(uploads) > model.MaxPropertyImages {
		return nil, ErrTooManyImages
	}

	imageURLs, err := s.uploadAll(ctx, uploads)
	if err != nil {
		return nil, err
	}

	property := &model.Property{UserID: userID}
	applyInput(property, input)
	property.Images = imageURLs

	if err := s.propertyRepo.Create(property); err != nil {
		logger.Error("Failed to create property", err, map[string]interface{}{
			"user_id": userID,
		})
		return nil, err
	}

	logger.Info("Property created", map[string]interface{}{
		"property_id": property.ID,
		"user_id":     userID,
		"images":      len(property.Images),
	})

	return property, nil
}

// Update replaces the scalar fields of an owned listing and reconciles its
// image set: the client-declared kept URLs plus any new uploads become the
// stored list, and every previously stored URL absent from that list is
// deleted from the media store best-effort. Removal is always derived
// server-side from the stored list, never taken from a client delete list.
func (s *propertyService) Update(ctx context.Context, userID, id uint, input PropertyInput, keptImages []string, uploads []*multipart.FileHeader) (*model.Property, error) {
	logger.Info("Updating property", map[string]interface{}{
		"property_id": id,
		"user_id":     userID,
		"kept_images": len(keptImages),
		"uploads":     len(uploads),
	})

	if !model.ValidCategory(input.Type) {
		return nil, ErrInvalidCategory
	}
	if len(keptImages)+len(uploads) > model.MaxPropertyImages {
		return nil, ErrTooManyImages
	}

	existing, err := s.propertyRepo.FindByIDAndOwner(id, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			logger.Warn("Property not found or not owned by requester", map[string]interface{}{
				"property_id": id,
				"user_id":     userID,
			})
			return nil, ErrPropertyNotFound
		}
		logger.Error("Failed to load property for update", err, map[string]interface{}{
			"property_id": id,
		})
		return nil, err
	}

	newURLs, err := s.uploadAll(ctx, uploads)
	if err != nil {
		return nil, err
	}

	// Kept images first, new uploads appended, order preserved
	finalImages := make([]string, 0, len(keptImages)+len(newURLs))
	finalImages = append(finalImages, keptImages...)
	finalImages = append(finalImages, newURLs...)

	removed := subtractURLs(existing.Images, finalImages)

	updated := &model.Property{ID: id, UserID: userID}
	applyInput(updated, input)
	updated.Images = finalImages

	ok, err := s.propertyRepo.UpdateOwned(updated)
	if err != nil {
		return nil, err
	}
	if !ok {
		// deleted concurrently since the load above
		return nil, ErrPropertyNotFound
	}

	// Storage cleanup never blocks or fails the metadata update
	s.removeImages(ctx, removed)

	result, err := s.propertyRepo.FindByIDAndOwner(id, userID)
	if err != nil {
		return nil, err
	}

	logger.Info("Property updated", map[string]interface{}{
		"property_id":    id,
		"user_id":        userID,
		"final_images":   len(finalImages),
		"removed_images": len(removed),
	})

	return result, nil
}

func (s *propertyService) Delete(ctx context.Context, userID, id uint) error {
	logger.Info("Deleting property", map[string]interface{}{
		"property_id": id,
		"user_id":     userID,
	})

	existing, err := s.propertyRepo.FindByIDAndOwner(id, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			logger.Warn("Property not found or not owned by requester", map[string]interface{}{
				"property_id": id,
				"user_id":     userID,
			})
			return ErrPropertyNotFound
		}
		logger.Error("Failed to load property for delete", err, map[string]interface{}{
			"property_id": id,
		})
		return err
	}

	ok, err := s.propertyRepo.DeleteOwned(id, userID)
	if err != nil {
		return err
	}
	if !ok {
		return ErrPropertyNotFound
	}

	// Metadata is gone; image cleanup is best-effort
	s.removeImages(ctx, existing.Images)

	logger.Info("Property deleted", map[string]interface{}{
		"property_id": id,
		"user_id":     userID,
		"images":      len(existing.Images),
	})

	return nil
}

func (s *propertyService) GetAll() ([]model.Property, error) {
	properties, err := s.propertyRepo.FindAll()
	if err != nil {
		logger.Error("Failed to list properties", err)
		return nil, err
	}
	return properties, nil
}

func (s *propertyService) GetByID(id uint) (*model.Property, error) {
	property, err := s.propertyRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPropertyNotFound
		}
		logger.Error("Failed to fetch property", err, map[string]interface{}{
			"property_id": id,
		})
		return nil, err
	}
	return property, nil
}

func (s *propertyService) GetByOwner(userID uint) ([]model.Property, error) {
	properties, err := s.propertyRepo.FindByUserID(userID)
	if err != nil {
		logger.Error("Failed to list owned properties", err, map[string]interface{}{
			"user_id": userID,
		})
		return nil, err
	}
	return properties, nil
}

func (s *propertyService) uploadAll(ctx context.Context, uploads []*multipart.FileHeader) ([]string, error) {
	urls := make([]string, 0, len(uploads))
	for _, file := range uploads {
		url, err := s.media.Upload(ctx, file)
		if err != nil {
			logger.Error("Failed to upload image", err, map[string]interface{}{
				"filename": file.Filename,
			})
			return nil, ErrUploadFailed
		}
		urls = append(urls, url)
	}
	return urls, nil
}

// removeImages requests deletion of each URL's object. Failures are logged
// and swallowed: listing availability takes priority over storage cleanup.
func (s *propertyService) removeImages(ctx context.Context, urls []string) {
	for _, url := range urls {
		objectID := storage.ObjectIDFromURL(url)
		if err := s.media.Delete(ctx, objectID); err != nil {
			logger.Error("Failed to delete image from media store", err, map[string]interface{}{
				"url":       url,
				"object_id": objectID,
			})
		}
	}
}

// subtractURLs returns the members of old not present in final, in old's
// order. Comparison is by exact URL.
func subtractURLs(old, final []string) []string {
	keep := make(map[string]struct{}, len(final))
	for _, url := range final {
		keep[url] = struct{}{}
	}

	var removed []string
	for _, url := range old {
		if _, ok := keep[url]; !ok {
			removed = append(removed, url)
		}
	}
	return removed
}

func applyInput(p *model.Property, in PropertyInput) {
	p.Type = in.Type
	p.Title = in.Title
	p.Location = in.Location
	p.Price = in.Price
	p.Deposit = in.Deposit
	p.Description = in.Description
	p.Beds = in.Beds
	p.Baths = in.Baths
	p.SqFt = in.SqFt
	p.Gender = in.Gender
	p.Furnishing = in.Furnishing
	p.Availability = in.Availability
	p.MaxGuests = in.MaxGuests
	p.AvailableFrom = in.AvailableFrom
	p.AvailableTo = in.AvailableTo
	p.Phone = in.Phone
	p.Whatsapp = in.Whatsapp
	p.Amenities = in.Amenities

	if p.Gender == "" {
		p.Gender = model.GenderAny
	}
	if p.Availability == "" {
		p.Availability = "Available"
	}
}
