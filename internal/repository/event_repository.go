package repository

import (
	"errors"
	"time"

	"github.com/gatherly/gatherly-backend/internal/models"
	"github.com/gatherly/gatherly-backend/pkg/apperr"
	"gorm.io/gorm"
)

type EventRepository struct {
	db *gorm.DB
}

func NewEventRepository(db *gorm.DB) *EventRepository {
	return &EventRepository{db: db}
}

func (r *EventRepository) GetByID(id uint) (*models.Event, error) {
	var event models.Event
	err := r.db.First(&event, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &event, nil
}

// ActivateFromCart is the single activation command shared by the free and
// card paths. In one transaction it deletes the cart (the exactly-once guard:
// a concurrent duplicate confirmation finds no cart row and fails), creates
// the event already active, its notification preference, and the creation
// payment receipt when one applies.
func (r *EventRepository) ActivateFromCart(cartID uint, event *models.Event, pref *models.NotificationPreference, payment *models.EventPayment) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		res := tx.Delete(&models.Cart{}, cartID)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return apperr.NotFound("cart not found")
		}
		if err := tx.Where("cart_id = ?", cartID).Delete(&models.CartItem{}).Error; err != nil {
			return err
		}

		event.IsActive = true
		if err := tx.Create(event).Error; err != nil {
			return err
		}
		if pref != nil {
			pref.EventID = event.ID
			if err := tx.Create(pref).Error; err != nil {
				return err
			}
		}
		if payment != nil {
			payment.EventID = event.ID
			if err := tx.Create(payment).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// ActiveWindows returns [start,end) windows of the creator's active events,
// for conflict checking.
func (r *EventRepository) ActiveWindows(creatorID uint) ([][2]time.Time, error) {
	var events []models.Event
	err := r.db.Select("start_time", "end_time").
		Where("creator_id = ? AND is_active = ?", creatorID, true).
		Find(&events).Error
	if err != nil {
		return nil, err
	}
	windows := make([][2]time.Time, 0, len(events))
	for _, e := range events {
		windows = append(windows, [2]time.Time{e.StartTime, e.EndTime})
	}
	return windows, nil
}

func (r *EventRepository) CountAttendees(eventID uint) (int64, error) {
	var count int64
	err := r.db.Model(&models.EventAttendance{}).Where("event_id = ?", eventID).Count(&count).Error
	return count, err
}

func (r *EventRepository) AllUpcoming(now time.Time) ([]models.Event, error) {
	var events []models.Event
	err := r.db.Where("is_active = ? AND start_time > ?", true, now).
		Order("start_time").Find(&events).Error
	return events, err
}

func (r *EventRepository) ByCreator(creatorID uint) ([]models.Event, error) {
	var events []models.Event
	err := r.db.Where("creator_id = ? AND is_active = ?", creatorID, true).
		Order("created_at DESC").Find(&events).Error
	return events, err
}

func (r *EventRepository) PastByCreator(creatorID uint, now time.Time) ([]models.Event, error) {
	var events []models.Event
	err := r.db.Where("creator_id = ? AND is_active = ? AND start_time < ?", creatorID, true, now).
		Order("start_time DESC").Find(&events).Error
	return events, err
}

// JoinedBy lists active events the user attends.
func (r *EventRepository) JoinedBy(userID uint) ([]models.Event, error) {
	var events []models.Event
	err := r.db.Joins("JOIN event_attendances ON event_attendances.event_id = events.id").
		Where("event_attendances.user_id = ? AND events.is_active = ?", userID, true).
		Order("events.start_time").Find(&events).Error
	return events, err
}
