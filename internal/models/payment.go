package models

import (
	"time"
)

// EventPayment is the one-to-one receipt for the event creation charge.
// It only exists for events activated through the paid path.
type EventPayment struct {
	ID            uint       `json:"id" gorm:"primaryKey"`
	EventID       uint       `json:"event_id" gorm:"uniqueIndex;not null"`
	UserID        uint       `json:"user_id" gorm:"not null"`
	Amount        float64    `json:"amount" gorm:"not null"`
	IsPaid        bool       `json:"is_paid" gorm:"default:false"`
	PaymentDate   *time.Time `json:"payment_date"`
	TransactionID string     `json:"transaction_id"`
}

// EventAttendeePayment tracks a marketplace order for joining a paid event.
// It is created pending (is_paid=false) with the provider order id and
// updated in place on capture with the capture transaction id.
type EventAttendeePayment struct {
	ID            uint       `json:"id" gorm:"primaryKey"`
	EventID       uint       `json:"event_id" gorm:"index;not null"`
	UserID        uint       `json:"user_id" gorm:"index;not null"`
	Amount        float64    `json:"amount" gorm:"not null"`
	IsPaid        bool       `json:"is_paid" gorm:"default:false"`
	PaymentDate   *time.Time `json:"payment_date"`
	TransactionID string     `json:"transaction_id" gorm:"index"`
	CreatedAt     time.Time  `json:"created_at"`
}

// EventAttendance is the canonical "joined" fact, unique per (event, user).
type EventAttendance struct {
	ID       uint      `json:"id" gorm:"primaryKey"`
	EventID  uint      `json:"event_id" gorm:"uniqueIndex:idx_event_attendee;not null"`
	UserID   uint      `json:"user_id" gorm:"uniqueIndex:idx_event_attendee;not null"`
	JoinedAt time.Time `json:"joined_at" gorm:"autoCreateTime"`
}

type InitiatePaymentRequest struct {
	CartID uint `json:"cart_id" validate:"required"`
}

type ConfirmPaymentRequest struct {
	CartID    uint   `json:"cart_id" validate:"required"`
	SessionID string `json:"session_id" validate:"required"`
}

// PaymentInitiation is the orchestrator's answer to an initiate call. Either
// the event was activated synchronously (free path) or a checkout session
// must be completed first.
type PaymentInitiation struct {
	Event       *EventResponse `json:"event,omitempty"`
	SessionID   string         `json:"session_id,omitempty"`
	CheckoutURL string         `json:"checkout_url,omitempty"`
	CartID      uint           `json:"cart_id,omitempty"`
}

type PaymentConfirmation struct {
	Event   EventResponse `json:"event"`
	Payment EventPayment  `json:"payment"`
}

type JoinEventRequest struct {
	EventID uint `json:"event_id" validate:"required"`
}

type CaptureOrderRequest struct {
	EventID uint   `json:"event_id" validate:"required"`
	OrderID string `json:"order_id" validate:"required"`
}

// JoinResult either records an immediate join or hands back the approval URL
// for the pending marketplace order.
type JoinResult struct {
	Joined      bool   `json:"joined"`
	OrderID     string `json:"order_id,omitempty"`
	ApprovalURL string `json:"approval_url,omitempty"`
}

type EventEarnings struct {
	EventID   uint    `json:"event_id"`
	EventName string  `json:"event_name"`
	Earnings  float64 `json:"earnings"`
}

type UserEarnings struct {
	Month         string          `json:"month"`
	TotalEarnings float64         `json:"total_earnings"`
	Events        []EventEarnings `json:"events"`
}
