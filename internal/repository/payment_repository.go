package repository

import (
	"errors"
	"time"

	"github.com/gatherly/gatherly-backend/internal/models"
	"github.com/gatherly/gatherly-backend/pkg/apperr"
	"gorm.io/gorm"
)

type PaymentRepository struct {
	db *gorm.DB
}

func NewPaymentRepository(db *gorm.DB) *PaymentRepository {
	return &PaymentRepository{db: db}
}

func (r *PaymentRepository) CreateAttendeePayment(payment *models.EventAttendeePayment) error {
	return r.db.Create(payment).Error
}

// GetPendingAttendeePayment returns the most recent unpaid row for the
// (event, user, order) triple; that row is the authoritative pending order.
func (r *PaymentRepository) GetPendingAttendeePayment(eventID, userID uint, orderID string) (*models.EventAttendeePayment, error) {
	var payment models.EventAttendeePayment
	err := r.db.Where("event_id = ? AND user_id = ? AND transaction_id = ? AND is_paid = ?",
		eventID, userID, orderID, false).
		Order("created_at DESC").First(&payment).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &payment, nil
}

// CaptureAttendeePayment flips the pending row to paid and creates the
// attendance in one transaction. The guarded UPDATE (id + is_paid=false)
// makes capture idempotent: a replay affects zero rows and fails with "no
// pending payment" instead of double-joining. Capacity is re-validated under
// the same event row lock used by direct joins.
func (r *PaymentRepository) CaptureAttendeePayment(paymentID uint, captureID string, paidAt time.Time, eventID, userID uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.EventAttendeePayment{}).
			Where("id = ? AND is_paid = ?", paymentID, false).
			Updates(map[string]interface{}{
				"is_paid":        true,
				"transaction_id": captureID,
				"payment_date":   paidAt,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return apperr.Conflict("no pending payment found")
		}
		return createAttendanceLocked(tx, eventID, userID)
	})
}

// EarningsByMonth sums captured attendee payments per event for the creator.
func (r *PaymentRepository) EarningsByMonth(creatorID uint, from, to time.Time) ([]models.EventEarnings, error) {
	var earnings []models.EventEarnings
	err := r.db.Model(&models.EventAttendeePayment{}).
		Select("events.id AS event_id, events.name AS event_name, SUM(event_attendee_payments.amount) AS earnings").
		Joins("JOIN events ON events.id = event_attendee_payments.event_id").
		Where("events.creator_id = ? AND event_attendee_payments.is_paid = ?", creatorID, true).
		Where("event_attendee_payments.payment_date >= ? AND event_attendee_payments.payment_date < ?", from, to).
		Group("events.id, events.name").
		Scan(&earnings).Error
	return earnings, err
}
