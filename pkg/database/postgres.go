package database

import (
	"log"

	"github.com/gatherly/gatherly-backend/internal/models"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func NewDatabase(databaseURL string) *gorm.DB {
	if databaseURL == "" {
		log.Fatal("DATABASE_URL is not set")
	}

	db, err := gorm.Open(postgres.Open(databaseURL), &gorm.Config{})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if err := RunMigrations(db); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	return db
}

func RunMigrations(db *gorm.DB) error {
	err := db.AutoMigrate(
		&models.User{},
		&models.Hobby{},
		&models.UserAvailability{},
		&models.PayPalAccount{},
		&models.GuestPricing{},
		&models.Cart{},
		&models.CartItem{},
		&models.Event{},
		&models.NotificationPreference{},
		&models.EventPayment{},
		&models.EventAttendeePayment{},
		&models.EventAttendance{},
		&models.Medal{},
	)
	if err != nil {
		return err
	}

	return seedGuestPricing(db)
}

// seedGuestPricing inserts the guest pricing tiers if missing. The seeded
// ranges must stay non-overlapping and cover 0..150 guests.
func seedGuestPricing(db *gorm.DB) error {
	for _, tier := range models.DefaultGuestPricing {
		var count int64
		db.Model(&models.GuestPricing{}).
			Where("min_guests = ? AND max_guests = ?", tier.MinGuests, tier.MaxGuests).
			Count(&count)
		if count == 0 {
			if err := db.Create(&tier).Error; err != nil {
				return err
			}
		}
	}
	return nil
}
