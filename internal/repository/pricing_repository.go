package repository

import (
	"errors"

	"github.com/gatherly/gatherly-backend/internal/models"
	"gorm.io/gorm"
)

type PricingRepository struct {
	db *gorm.DB
}

func NewPricingRepository(db *gorm.DB) *PricingRepository {
	return &PricingRepository{db: db}
}

// Resolve finds the unique tier whose range contains the guest count.
// (nil, nil) means the count is outside the supported domain.
func (r *PricingRepository) Resolve(guests int) (*models.GuestPricing, error) {
	var tier models.GuestPricing
	err := r.db.Where("min_guests <= ? AND max_guests >= ?", guests, guests).First(&tier).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &tier, nil
}

func (r *PricingRepository) GetAll() ([]models.GuestPricing, error) {
	var tiers []models.GuestPricing
	err := r.db.Order("min_guests").Find(&tiers).Error
	return tiers, err
}
