package service

import (
	"encoding/json"
	"errors"
	"time"

	"github.com/gatherly/gatherly-backend/internal/models"
	"github.com/gatherly/gatherly-backend/pkg/apperr"
	"github.com/gatherly/gatherly-backend/pkg/payment"
	"go.uber.org/zap"
)

// SmallEventMaxGuests is the free-path threshold: events at or below this
// capacity activate without checkout even when a fee tier would apply.
// The threshold only waives the creator's checkout, never attendee escrow.
const SmallEventMaxGuests = 6

// EventActivator performs the atomic cart-to-event conversion shared by the
// free and card paths.
type EventActivator interface {
	ActivateFromCart(cartID uint, event *models.Event, pref *models.NotificationPreference, payment *models.EventPayment) error
}

// CardCheckoutProvider is the card checkout collaborator.
type CardCheckoutProvider interface {
	CreateSession(amount float64, eventName string, cartID uint) (*payment.CheckoutSession, error)
	GetSession(sessionID string) (*payment.CheckoutSession, error)
}

// ActivityRecorder feeds the loyalty engine. Implemented by MedalService.
type ActivityRecorder interface {
	RecordActivity(userID uint)
}

// Mailer sends the pipeline's transactional mails. May be nil in tests.
type Mailer interface {
	SendEventLiveEmail(to, fullName, eventName string, startTime time.Time) error
	SendMedalEmail(to, fullName, medalType string, discount float64) error
}

// EarningsStore reports captured attendee payments per event.
type EarningsStore interface {
	EarningsByMonth(creatorID uint, from, to time.Time) ([]models.EventEarnings, error)
}

// PaymentService orchestrates event creation payments: it decides between
// the synchronous free path and the card checkout path, and converts a staged
// cart into an active event exactly once.
type PaymentService struct {
	carts    CartStore
	events   EventActivator
	checkout CardCheckoutProvider
	earnings EarningsStore
	users    UserDirectory
	medals   ActivityRecorder
	mailer   Mailer
	logger   *zap.Logger
	now      func() time.Time
}

func NewPaymentService(
	carts CartStore,
	events EventActivator,
	checkout CardCheckoutProvider,
	earnings EarningsStore,
	users UserDirectory,
	medals ActivityRecorder,
	mailer Mailer,
	logger *zap.Logger,
) *PaymentService {
	return &PaymentService{
		carts:    carts,
		events:   events,
		checkout: checkout,
		earnings: earnings,
		users:    users,
		medals:   medals,
		mailer:   mailer,
		logger:   logger,
		now:      time.Now,
	}
}

// InitiatePayment resolves the cart and either activates the event
// synchronously (zero total or small event) or opens a card checkout session
// tagged with the cart id. On the paid path no event exists yet.
func (s *PaymentService) InitiatePayment(userID uint, cartID uint) (*models.PaymentInitiation, error) {
	cart, draft, err := s.resolveCart(userID, cartID)
	if err != nil {
		return nil, err
	}

	total := cart.TotalCost()
	if total == 0 || draft.MaxGuests <= SmallEventMaxGuests {
		event, err := s.activate(userID, cart, draft, nil)
		if err != nil {
			return nil, err
		}
		resp := models.NewEventResponse(event, 0)
		return &models.PaymentInitiation{Event: &resp}, nil
	}

	session, err := s.checkout.CreateSession(total, draft.Name, cart.ID)
	if err != nil {
		s.logger.Error("failed to create checkout session",
			zap.Uint("cart_id", cart.ID), zap.Error(err))
		return nil, apperr.Provider(err, "failed to initiate payment, try again")
	}

	return &models.PaymentInitiation{
		SessionID:   session.ID,
		CheckoutURL: session.URL,
		CartID:      cart.ID,
	}, nil
}

// ConfirmPayment finishes the paid path. The cart must still exist: a second
// confirmation against an already-activated cart fails closed instead of
// re-creating the event. Activation and the payment receipt are one atomic
// unit inside the activator.
func (s *PaymentService) ConfirmPayment(userID uint, cartID uint, sessionID string) (*models.PaymentConfirmation, error) {
	cart, draft, err := s.resolveCart(userID, cartID)
	if err != nil {
		return nil, err
	}

	session, err := s.checkout.GetSession(sessionID)
	if err != nil {
		s.logger.Error("failed to verify checkout session",
			zap.String("session_id", sessionID), zap.Error(err))
		return nil, apperr.Provider(err, "payment failed, try again")
	}
	if !session.Paid {
		return nil, apperr.Validation("payment not completed")
	}

	paidAt := s.now()
	receipt := &models.EventPayment{
		UserID:        userID,
		Amount:        cart.TotalCost(),
		IsPaid:        true,
		PaymentDate:   &paidAt,
		TransactionID: session.TransactionID,
	}

	event, err := s.activate(userID, cart, draft, receipt)
	if err != nil {
		return nil, err
	}

	return &models.PaymentConfirmation{
		Event:   models.NewEventResponse(event, 0),
		Payment: *receipt,
	}, nil
}

func (s *PaymentService) resolveCart(userID uint, cartID uint) (*models.Cart, models.DraftEvent, error) {
	var draft models.DraftEvent

	cart, err := s.carts.GetForUser(cartID, userID)
	if err != nil {
		return nil, draft, apperr.Internal(err)
	}
	if cart == nil {
		return nil, draft, apperr.NotFound("cart not found")
	}

	eventItem := cart.Item(models.CartItemEvent)
	if eventItem == nil {
		return nil, draft, apperr.Validation("no event in cart")
	}
	if err := json.Unmarshal(eventItem.EventData, &draft); err != nil {
		return nil, draft, apperr.Internal(err)
	}
	return cart, draft, nil
}

// activate is the single activation command for every creation path.
func (s *PaymentService) activate(userID uint, cart *models.Cart, draft models.DraftEvent, receipt *models.EventPayment) (*models.Event, error) {
	var pref *models.NotificationPreference
	if item := cart.Item(models.CartItemNotification); item != nil {
		pref = &models.NotificationPreference{
			NotificationType: item.NotificationType,
			Cost:             item.Cost,
		}
	}

	event := draft.Event(userID)
	if err := s.events.ActivateFromCart(cart.ID, event, pref, receipt); err != nil {
		var ae *apperr.Error
		if errors.As(err, &ae) {
			return nil, err
		}
		return nil, apperr.Internal(err)
	}

	s.medals.RecordActivity(userID)
	s.notifyActivation(userID, event)

	return event, nil
}

func (s *PaymentService) notifyActivation(userID uint, event *models.Event) {
	if s.mailer == nil {
		return
	}
	user, err := s.users.GetByID(userID)
	if err != nil {
		s.logger.Warn("skipping activation email", zap.Uint("user_id", userID), zap.Error(err))
		return
	}
	go s.mailer.SendEventLiveEmail(user.Email, user.FullName, event.Name, event.StartTime)
}

// GetUserEarnings sums the creator's captured attendee payments for a month.
func (s *PaymentService) GetUserEarnings(userID uint, year int, month time.Month) (*models.UserEarnings, error) {
	from := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 1, 0)

	events, err := s.earnings.EarningsByMonth(userID, from, to)
	if err != nil {
		return nil, apperr.Internal(err)
	}

	var total float64
	for _, e := range events {
		total += e.Earnings
	}

	return &models.UserEarnings{
		Month:         from.Format("January 2006"),
		TotalEarnings: total,
		Events:        events,
	}, nil
}
