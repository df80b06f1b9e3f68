package model

import (
	"time"

	"gorm.io/gorm"
)

type PropertyCategory string

const (
	CategoryPG        PropertyCategory = "PG"
	CategoryFlat      PropertyCategory = "Flat"
	CategoryApartment PropertyCategory = "Apartment"
	CategoryHomestay  PropertyCategory = "Homestay"
	CategoryVilla     PropertyCategory = "Villa"
	CategoryOther     PropertyCategory = "Other"
)

// ValidCategory reports whether c is one of the supported listing categories
func ValidCategory(c PropertyCategory) bool {
	switch c {
	case CategoryPG, CategoryFlat, CategoryApartment, CategoryHomestay, CategoryVilla, CategoryOther:
		return true
	}
	return false
}

type GenderPreference string

const (
	GenderMale   GenderPreference = "Male"
	GenderFemale GenderPreference = "Female"
	GenderAny    GenderPreference = "Any"
	GenderFamily GenderPreference = "Family"
)

// MaxPropertyImages caps the image list on a listing
const MaxPropertyImages = 5

type Property struct {
	ID       uint             `gorm:"primarykey" json:"id"`
	UserID   uint             `gorm:"index;not null" json:"user_id"` // owner, immutable once set
	Type     PropertyCategory `gorm:"type:varchar(20);not null" json:"type"`
	Title    string           `gorm:"not null" json:"title"`
	Location string           `gorm:"not null" json:"location"`

	// Price, deposit and area are free-form strings ("12,000/mo", "850 sq ft")
	Price       string `gorm:"not null" json:"price"`
	Deposit     string `json:"deposit"`
	Description string `gorm:"type:text" json:"description"`

	Beds         int              `gorm:"default:0" json:"beds"`
	Baths        int              `gorm:"default:0" json:"baths"`
	SqFt         string           `json:"sq_ft"`
	Gender       GenderPreference `gorm:"type:varchar(10);default:'Any'" json:"gender"`
	Furnishing   string           `json:"furnishing"`
	Availability string           `gorm:"default:'Available'" json:"availability"`

	// Homestay-specific fields
	MaxGuests     *int       `json:"max_guests,omitempty"`
	AvailableFrom *time.Time `json:"available_from,omitempty"`
	AvailableTo   *time.Time `json:"available_to,omitempty"`

	Phone    string `json:"phone"`
	Whatsapp string `json:"whatsapp"`

	// Ordered lists, serialized as JSON so the model runs on both the
	// postgres and sqlite drivers
	Amenities []string `gorm:"serializer:json" json:"amenities"`
	Images    []string `gorm:"serializer:json" json:"images"`

	Verified  bool           `gorm:"default:false" json:"verified"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Property) TableName() string {
	return "properties"
}
