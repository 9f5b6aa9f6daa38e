package models

import (
	"time"
)

type PaymentType string

const (
	PaymentTypeFree PaymentType = "FREE"
	PaymentTypeCard PaymentType = "CARD"
	PaymentTypeCash PaymentType = "CASH"
)

type Event struct {
	ID            uint        `json:"id" gorm:"primaryKey"`
	CreatorID     uint        `json:"creator_id" gorm:"not null;index"`
	CategoryID    uint        `json:"category_id" gorm:"index"`
	Name          string      `json:"name" gorm:"not null"`
	Subtitle      string      `json:"subtitle"`
	Description   string      `json:"description" gorm:"type:text"`
	ImageURL      string      `json:"image_url"`
	StartTime     time.Time   `json:"start_time" gorm:"not null;index"`
	EndTime       time.Time   `json:"end_time" gorm:"not null"`
	DurationHours float64     `json:"duration_hours"`
	AgeRangeMin   int         `json:"age_range_min"`
	AgeRangeMax   int         `json:"age_range_max"`
	MaxGuests     int         `json:"max_guests" gorm:"not null"`
	Price         float64     `json:"price" gorm:"default:0"`
	PaymentType   PaymentType `json:"payment_type" gorm:"type:varchar(10);default:'FREE'"`
	Street        string      `json:"street"`
	HomeNumber    string      `json:"home_number"`
	District      string      `json:"district"`
	PostalCode    string      `json:"postal_code"`
	State         string      `json:"state"`
	IsActive      bool        `json:"is_active" gorm:"default:false"`
	CreatedAt     time.Time   `json:"created_at"`
}

// GuestPricing maps a guest-count range to the event creation fee. Ranges are
// seeded non-overlapping and together cover 0..150 guests.
type GuestPricing struct {
	ID        uint    `json:"id" gorm:"primaryKey"`
	MinGuests int     `json:"min_guests" gorm:"uniqueIndex:idx_guest_range"`
	MaxGuests int     `json:"max_guests" gorm:"uniqueIndex:idx_guest_range"`
	Price     float64 `json:"price" gorm:"not null"`
}

// DefaultGuestPricing is seeded on startup. Events up to 6 guests are free to
// create, which is also the threshold for the synchronous free creation path.
var DefaultGuestPricing = []GuestPricing{
	{MinGuests: 0, MaxGuests: 6, Price: 0.00},
	{MinGuests: 7, MaxGuests: 20, Price: 10.00},
	{MinGuests: 21, MaxGuests: 50, Price: 25.00},
	{MinGuests: 51, MaxGuests: 100, Price: 50.00},
	{MinGuests: 101, MaxGuests: 150, Price: 80.00},
}

// ResolveGuestPricing finds the tier containing guests. The bool reports
// whether the count falls inside the supported domain.
func ResolveGuestPricing(tiers []GuestPricing, guests int) (GuestPricing, bool) {
	if guests < 0 {
		return GuestPricing{}, false
	}
	for _, t := range tiers {
		if guests >= t.MinGuests && guests <= t.MaxGuests {
			return t, true
		}
	}
	return GuestPricing{}, false
}

type NotificationType string

const (
	Notification24Hours NotificationType = "24_HOURS"
	Notification48Hours NotificationType = "48_HOURS"
	Notification7Days   NotificationType = "7_DAYS"
)

// NotificationCost is the add-on fee for the reminder window.
func NotificationCost(t NotificationType) float64 {
	switch t {
	case Notification48Hours:
		return 6.00
	case Notification7Days:
		return 13.70
	default:
		return 0.00
	}
}

// NotificationPreference is persisted with the event at activation time.
type NotificationPreference struct {
	ID               uint             `json:"id" gorm:"primaryKey"`
	EventID          uint             `json:"event_id" gorm:"uniqueIndex;not null"`
	NotificationType NotificationType `json:"notification_type" gorm:"type:varchar(20);default:'24_HOURS'"`
	Cost             float64          `json:"cost" gorm:"default:0"`
}

// EventRequest is the staging payload. It is validated up front and stored in
// the cart as a typed DraftEvent, never as a loose document.
type EventRequest struct {
	CategoryID       uint             `json:"category_id" validate:"required"`
	Name             string           `json:"name" validate:"required,max=200"`
	Subtitle         string           `json:"subtitle" validate:"max=200"`
	Description      string           `json:"description" validate:"required"`
	ImageURL         string           `json:"image_url"`
	StartTime        time.Time        `json:"start_time" validate:"required"`
	EndTime          time.Time        `json:"end_time" validate:"required"`
	DurationHours    float64          `json:"duration_hours"`
	AgeRangeMin      int              `json:"age_range_min" validate:"min=0"`
	AgeRangeMax      int              `json:"age_range_max" validate:"min=0"`
	MaxGuests        int              `json:"max_guests" validate:"min=0"`
	Price            float64          `json:"price" validate:"min=0"`
	PaymentType      PaymentType      `json:"payment_type" validate:"payment_type"`
	Street           string           `json:"street" validate:"required"`
	HomeNumber       string           `json:"home_number"`
	District         string           `json:"district" validate:"required"`
	PostalCode       string           `json:"postal_code"`
	State            string           `json:"state" validate:"required"`
	NotificationType NotificationType `json:"notification_type" validate:"omitempty,notification_type"`
}

type EventResponse struct {
	ID               uint        `json:"id"`
	CreatorID        uint        `json:"creator_id"`
	CategoryID       uint        `json:"category_id"`
	Name             string      `json:"name"`
	Subtitle         string      `json:"subtitle"`
	Description      string      `json:"description"`
	ImageURL         string      `json:"image_url"`
	StartTime        time.Time   `json:"start_time"`
	EndTime          time.Time   `json:"end_time"`
	DurationHours    float64     `json:"duration_hours"`
	AgeRangeMin      int         `json:"age_range_min"`
	AgeRangeMax      int         `json:"age_range_max"`
	MaxGuests        int         `json:"max_guests"`
	CurrentAttendees int         `json:"current_attendees"`
	IsJoinable       bool        `json:"is_joinable"`
	Price            float64     `json:"price"`
	PaymentType      PaymentType `json:"payment_type"`
	Street           string      `json:"street"`
	HomeNumber       string      `json:"home_number"`
	District         string      `json:"district"`
	PostalCode       string      `json:"postal_code"`
	State            string      `json:"state"`
	IsActive         bool        `json:"is_active"`
	CreatedAt        time.Time   `json:"created_at"`
}

func NewEventResponse(event *Event, attendees int) EventResponse {
	return EventResponse{
		ID:               event.ID,
		CreatorID:        event.CreatorID,
		CategoryID:       event.CategoryID,
		Name:             event.Name,
		Subtitle:         event.Subtitle,
		Description:      event.Description,
		ImageURL:         event.ImageURL,
		StartTime:        event.StartTime,
		EndTime:          event.EndTime,
		DurationHours:    event.DurationHours,
		AgeRangeMin:      event.AgeRangeMin,
		AgeRangeMax:      event.AgeRangeMax,
		MaxGuests:        event.MaxGuests,
		CurrentAttendees: attendees,
		IsJoinable:       attendees < event.MaxGuests,
		Price:            event.Price,
		PaymentType:      event.PaymentType,
		Street:           event.Street,
		HomeNumber:       event.HomeNumber,
		District:         event.District,
		PostalCode:       event.PostalCode,
		State:            event.State,
		IsActive:         event.IsActive,
		CreatedAt:        event.CreatedAt,
	}
}
