package service

import (
	"context"
	"errors"
	"time"

	"github.com/gatherly/gatherly-backend/internal/models"
	"github.com/gatherly/gatherly-backend/pkg/apperr"
	"github.com/gatherly/gatherly-backend/pkg/payment"
	"go.uber.org/zap"
)

// EventStore reads events for the join flow.
type EventStore interface {
	GetByID(id uint) (*models.Event, error)
	CountAttendees(eventID uint) (int64, error)
}

// AttendanceStore persists the canonical joined fact.
type AttendanceStore interface {
	Exists(eventID uint, userID uint) (bool, error)
	CreateWithCapacity(eventID uint, userID uint) error
}

// AttendeePaymentStore tracks pending and captured marketplace orders.
type AttendeePaymentStore interface {
	CreateAttendeePayment(p *models.EventAttendeePayment) error
	GetPendingAttendeePayment(eventID, userID uint, orderID string) (*models.EventAttendeePayment, error)
	CaptureAttendeePayment(paymentID uint, captureID string, paidAt time.Time, eventID, userID uint) error
}

// EscrowProvider is the marketplace order collaborator. Orders route funds to
// the creator's connected account.
type EscrowProvider interface {
	CreateOrder(ctx context.Context, amount float64, payeeAccountID string, eventID uint) (*payment.Order, error)
	CaptureOrder(ctx context.Context, orderID string) (*payment.Capture, error)
}

// AttendanceService runs the attendee side of the pipeline: joins, escrow
// orders for paid events, and idempotent capture.
type AttendanceService struct {
	events      EventStore
	attendances AttendanceStore
	payments    AttendeePaymentStore
	escrow      EscrowProvider
	users       UserDirectory
	medals      ActivityRecorder
	logger      *zap.Logger
	now         func() time.Time
}

func NewAttendanceService(
	events EventStore,
	attendances AttendanceStore,
	payments AttendeePaymentStore,
	escrow EscrowProvider,
	users UserDirectory,
	medals ActivityRecorder,
	logger *zap.Logger,
) *AttendanceService {
	return &AttendanceService{
		events:      events,
		attendances: attendances,
		payments:    payments,
		escrow:      escrow,
		users:       users,
		medals:      medals,
		logger:      logger,
		now:         time.Now,
	}
}

// JoinEvent checks the join preconditions in order and either joins the user
// directly (free/cash events) or creates a pending marketplace order. In the
// escrow case no attendance exists until capture.
func (s *AttendanceService) JoinEvent(ctx context.Context, userID uint, eventID uint) (*models.JoinResult, error) {
	event, err := s.joinableEvent(eventID)
	if err != nil {
		return nil, err
	}

	if event.CreatorID == userID {
		return nil, apperr.Validation("creators cannot join their own event")
	}

	joined, err := s.attendances.Exists(eventID, userID)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	if joined {
		return nil, apperr.Conflict("you already joined this event")
	}

	count, err := s.events.CountAttendees(eventID)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	if count >= int64(event.MaxGuests) {
		return nil, apperr.Conflict("event is full or has started")
	}

	if event.PaymentType == models.PaymentTypeCard && event.Price > 0 {
		return s.createOrder(ctx, userID, event)
	}

	if err := s.createAttendance(eventID, userID); err != nil {
		return nil, err
	}
	return &models.JoinResult{Joined: true}, nil
}

func (s *AttendanceService) createOrder(ctx context.Context, userID uint, event *models.Event) (*models.JoinResult, error) {
	account, err := s.users.GetActivePayPalAccount(event.CreatorID)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	if account == nil {
		return nil, apperr.Validation("event creator has no connected payout account")
	}

	order, err := s.escrow.CreateOrder(ctx, event.Price, account.AccountID, event.ID)
	if err != nil {
		s.logger.Error("failed to create escrow order",
			zap.Uint("event_id", event.ID), zap.Error(err))
		return nil, apperr.Provider(err, "failed to initiate payment, try again")
	}

	pending := &models.EventAttendeePayment{
		EventID:       event.ID,
		UserID:        userID,
		Amount:        event.Price,
		IsPaid:        false,
		TransactionID: order.ID,
	}
	if err := s.payments.CreateAttendeePayment(pending); err != nil {
		return nil, apperr.Internal(err)
	}

	return &models.JoinResult{
		Joined:      false,
		OrderID:     order.ID,
		ApprovalURL: order.ApprovalURL,
	}, nil
}

// CaptureOrder captures a previously created order and converts it into an
// attendance exactly once. Capturing an already-paid or unknown order fails
// with "no pending payment" rather than double-joining.
func (s *AttendanceService) CaptureOrder(ctx context.Context, userID uint, eventID uint, orderID string) (*models.JoinResult, error) {
	if _, err := s.joinableEvent(eventID); err != nil {
		return nil, err
	}

	pending, err := s.payments.GetPendingAttendeePayment(eventID, userID, orderID)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	if pending == nil {
		return nil, apperr.NotFound("no pending payment found")
	}

	capture, err := s.escrow.CaptureOrder(ctx, orderID)
	if err != nil {
		s.logger.Error("failed to capture escrow order",
			zap.String("order_id", orderID), zap.Error(err))
		return nil, apperr.Provider(err, "failed to capture payment, try again")
	}
	if capture.Status != "COMPLETED" {
		return nil, apperr.Provider(nil, "payment not completed")
	}

	err = s.payments.CaptureAttendeePayment(pending.ID, capture.CaptureID, s.now(), eventID, userID)
	if err != nil {
		var ae *apperr.Error
		if errors.As(err, &ae) {
			return nil, err
		}
		return nil, apperr.Internal(err)
	}

	s.medals.RecordActivity(userID)
	return &models.JoinResult{Joined: true}, nil
}

func (s *AttendanceService) joinableEvent(eventID uint) (*models.Event, error) {
	event, err := s.events.GetByID(eventID)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	if event == nil || !event.IsActive || !event.StartTime.After(s.now()) {
		return nil, apperr.NotFound("event not found or inactive")
	}
	return event, nil
}

func (s *AttendanceService) createAttendance(eventID uint, userID uint) error {
	if err := s.attendances.CreateWithCapacity(eventID, userID); err != nil {
		var ae *apperr.Error
		if errors.As(err, &ae) {
			return err
		}
		return apperr.Internal(err)
	}
	s.medals.RecordActivity(userID)
	return nil
}
