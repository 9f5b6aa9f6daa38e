package repository

import (
	"time"

	"github.com/gatherly/gatherly-backend/internal/models"
	"gorm.io/gorm"
)

type AvailabilityRepository struct {
	db *gorm.DB
}

func NewAvailabilityRepository(db *gorm.DB) *AvailabilityRepository {
	return &AvailabilityRepository{db: db}
}

func (r *AvailabilityRepository) Create(slot *models.UserAvailability) error {
	return r.db.Create(slot).Error
}

func (r *AvailabilityRepository) GetUserSlots(userID uint) ([]models.UserAvailability, error) {
	var slots []models.UserAvailability
	err := r.db.Where("user_id = ?", userID).Order("start_time").Find(&slots).Error
	return slots, err
}

// Windows returns the user's declared unavailability windows for conflict
// checking.
func (r *AvailabilityRepository) Windows(userID uint) ([][2]time.Time, error) {
	slots, err := r.GetUserSlots(userID)
	if err != nil {
		return nil, err
	}
	windows := make([][2]time.Time, 0, len(slots))
	for _, s := range slots {
		windows = append(windows, [2]time.Time{s.StartTime, s.EndTime})
	}
	return windows, nil
}
