package repository

import (
	"time"

	"github.com/gatherly/gatherly-backend/internal/models"
	"gorm.io/gorm"
)

type MedalRepository struct {
	db *gorm.DB
}

func NewMedalRepository(db *gorm.DB) *MedalRepository {
	return &MedalRepository{db: db}
}

func (r *MedalRepository) Create(medal *models.Medal) error {
	return r.db.Create(medal).Error
}

func (r *MedalRepository) GetUserMedals(userID uint) ([]models.Medal, error) {
	var medals []models.Medal
	err := r.db.Where("user_id = ?", userID).Order("awarded_at DESC").Find(&medals).Error
	return medals, err
}

// CountForPeriod counts medals of one type already granted in the period
// anchored at periodStart.
func (r *MedalRepository) CountForPeriod(userID uint, periodStart time.Time, medalType models.MedalType) (int, error) {
	var count int64
	err := r.db.Model(&models.Medal{}).
		Where("user_id = ? AND period_start = ? AND medal_type = ?", userID, periodStart, medalType).
		Count(&count).Error
	return int(count), err
}

// CountQualifyingEvents counts distinct active events the user created or
// attends whose start time falls inside the period. Union, not sum: an event
// both created and attended counts once.
func (r *MedalRepository) CountQualifyingEvents(userID uint, periodStart, periodEnd time.Time) (int, error) {
	var count int64
	err := r.db.Model(&models.Event{}).
		Joins("LEFT JOIN event_attendances ON event_attendances.event_id = events.id AND event_attendances.user_id = ?", userID).
		Where("(events.creator_id = ? OR event_attendances.user_id IS NOT NULL)", userID).
		Where("events.start_time >= ? AND events.start_time <= ?", periodStart, periodEnd).
		Where("events.is_active = ?", true).
		Distinct("events.id").
		Count(&count).Error
	return int(count), err
}
