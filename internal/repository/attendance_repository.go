package repository

import (
	"github.com/gatherly/gatherly-backend/internal/models"
	"github.com/gatherly/gatherly-backend/pkg/apperr"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type AttendanceRepository struct {
	db *gorm.DB
}

func NewAttendanceRepository(db *gorm.DB) *AttendanceRepository {
	return &AttendanceRepository{db: db}
}

func (r *AttendanceRepository) Exists(eventID uint, userID uint) (bool, error) {
	var count int64
	err := r.db.Model(&models.EventAttendance{}).
		Where("event_id = ? AND user_id = ?", eventID, userID).
		Count(&count).Error
	return count > 0, err
}

// CreateWithCapacity inserts the attendance row after re-validating capacity
// against a locked snapshot of the event. The row lock serializes concurrent
// joins so the count cannot overshoot max_guests; the unique (event_id,
// user_id) index rejects duplicate joins at the store level.
func (r *AttendanceRepository) CreateWithCapacity(eventID uint, userID uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		return createAttendanceLocked(tx, eventID, userID)
	})
}

func createAttendanceLocked(tx *gorm.DB, eventID uint, userID uint) error {
	var event models.Event
	if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&event, eventID).Error; err != nil {
		return err
	}

	var count int64
	if err := tx.Model(&models.EventAttendance{}).Where("event_id = ?", eventID).Count(&count).Error; err != nil {
		return err
	}
	if count >= int64(event.MaxGuests) {
		return apperr.Conflict("event is full")
	}

	return tx.Create(&models.EventAttendance{EventID: eventID, UserID: userID}).Error
}
