package main

import (
	"errors"
	"fmt"
	"log"

	"github.com/rentease/rentease-backend/config"
	"github.com/rentease/rentease-backend/internal/app/model"
	"github.com/rentease/rentease-backend/internal/app/repository"
	"github.com/rentease/rentease-backend/internal/db"
	"github.com/rentease/rentease-backend/pkg/util"
	"gorm.io/gorm"
)

const (
	demoUserName     = "Demo Lister"
	demoUserEmail    = "demo@rentease.in"
	demoUserPassword = "demo1234"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load config:", err)
	}

	if err := db.Initialize(&cfg.Database); err != nil {
		log.Fatal("Failed to connect to database:", err)
	}
	defer db.Close()

	if err := db.Migrate(); err != nil {
		log.Fatal("Failed to run migrations:", err)
	}

	userRepo := repository.NewUserRepository(db.GetDB())
	propertyRepo := repository.NewPropertyRepository(db.GetDB())

	fmt.Print("This replaces all existing properties with demo data. Proceed? (yes/no): ")
	var confirm string
	fmt.Scanln(&confirm)
	if confirm != "yes" && confirm != "y" {
		fmt.Println("Seed cancelled.")
		return
	}

	owner, err := ensureDemoUser(userRepo)
	if err != nil {
		log.Fatal("Failed to create demo user:", err)
	}

	// Wipe existing listings, demo data owns the catalog
	if err := db.GetDB().Session(&gorm.Session{AllowGlobalUpdate: true}).
		Unscoped().Delete(&model.Property{}).Error; err != nil {
		log.Fatal("Failed to clear properties:", err)
	}

	properties := demoProperties(owner.ID)
	for i := range properties {
		if err := propertyRepo.Create(&properties[i]); err != nil {
			log.Fatal("Failed to create property:", err)
		}
	}

	fmt.Printf("Seeded %d properties owned by %s\n", len(properties), demoUserEmail)
}

func ensureDemoUser(userRepo repository.UserRepository) (*model.User, error) {
	user, err := userRepo.FindByEmail(demoUserEmail)
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	hash, err := util.HashPassword(demoUserPassword)
	if err != nil {
		return nil, err
	}

	user = &model.User{
		Name:         demoUserName,
		Email:        demoUserEmail,
		PasswordHash: hash,
	}
	if err := userRepo.Create(user); err != nil {
		return nil, err
	}
	return user, nil
}

func demoProperties(ownerID uint) []model.Property {
	return []model.Property{
		{
			UserID:       ownerID,
			Type:         model.CategoryPG,
			Title:        "Comfortable PG in Koramangala",
			Location:     "5th Block, Koramangala, Near Forum Mall",
			Price:        "₹12,000/month",
			Deposit:      "₹24,000",
			Description:  "Well-maintained PG with all modern amenities.",
			Beds:         1,
			Baths:        1,
			SqFt:         "200",
			Gender:       model.GenderFemale,
			Furnishing:   "Fully Furnished",
			Availability: "Available",
			Phone:        "9876543210",
			Whatsapp:     "9876543210",
			Amenities:    []string{"WiFi", "Parking", "Security", "Food", "Laundry"},
			Images: []string{
				"https://images.unsplash.com/photo-1555041469-a586c61ea9bc?w=900&q=80",
				"https://images.unsplash.com/photo-1560448204-e02f11c3d0e2?w=900&q=80",
			},
		},
		{
			UserID:       ownerID,
			Type:         model.CategoryApartment,
			Title:        "Spacious 2BHK Apartment in BTM Layout",
			Location:     "BTM Layout, Bangalore",
			Price:        "₹25,000/month",
			Deposit:      "₹50,000",
			Description:  "Spacious 2BHK with balcony, near IT hubs.",
			Beds:         2,
			Baths:        2,
			SqFt:         "950",
			Gender:       model.GenderFamily,
			Furnishing:   "Semi Furnished",
			Availability: "Available",
			Phone:        "9123456789",
			Whatsapp:     "9123456789",
			Amenities:    []string{"WiFi", "Parking", "Balcony"},
			Images: []string{
				"https://images.unsplash.com/photo-1570129477492-45c003edd2be?w=900&q=80",
				"https://images.unsplash.com/photo-1600607687939-ce8a6c25118c?w=900&q=80",
			},
		},
		{
			UserID:       ownerID,
			Type:         model.CategoryHomestay,
			Title:        "Kumarichiga Homestay Retreat",
			Location:     "Indiranagar, Bangalore",
			Price:        "₹2,000/day",
			Description:  "Cozy homestay perfect for short visits.",
			Beds:         1,
			Baths:        1,
			SqFt:         "300",
			Gender:       model.GenderAny,
			Furnishing:   "Furnished",
			Availability: "Available",
			Phone:        "9001234567",
			Whatsapp:     "9001234567",
			Amenities:    []string{"WiFi", "Parking", "Kitchen Access"},
			Images: []string{
				"https://images.unsplash.com/photo-1613977257363-707ba9348227?w=900&q=80",
				"https://images.unsplash.com/photo-1620121692029-d088224ddc74?w=900&q=80",
			},
		},
		{
			UserID:       ownerID,
			Type:         model.CategoryVilla,
			Title:        "Luxury Villa in Whitefield",
			Location:     "Whitefield, Bangalore",
			Price:        "₹60,000/month",
			Deposit:      "₹1,00,000",
			Description:  "Lavish villa with private pool and garden.",
			Beds:         4,
			Baths:        3,
			SqFt:         "2500",
			Gender:       model.GenderFamily,
			Furnishing:   "Luxury Furnished",
			Availability: "Available",
			Phone:        "9876501234",
			Whatsapp:     "9876501234",
			Amenities:    []string{"Pool", "Garden", "WiFi", "Parking"},
			Images: []string{
				"https://images.unsplash.com/photo-1580587771525-78b9dba3b914?w=900&q=80",
				"https://images.unsplash.com/photo-1502673530728-f79b4cab31b1?w=900&q=80",
			},
		},
	}
}
