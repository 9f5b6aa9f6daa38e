package models

import (
	"time"
)

type CartItemType string

const (
	CartItemEvent        CartItemType = "EVENT"
	CartItemNotification CartItemType = "NOTIFICATION"
)

// Cart holds a user's single staged event draft plus its notification add-on.
// It is transient working state: re-staging replaces its items wholesale and
// successful activation deletes it.
type Cart struct {
	ID        uint       `json:"id" gorm:"primaryKey"`
	UserID    uint       `json:"user_id" gorm:"index;not null"`
	Items     []CartItem `json:"items" gorm:"constraint:OnDelete:CASCADE"`
	CreatedAt time.Time  `json:"created_at"`
}

func (c *Cart) TotalCost() float64 {
	var total float64
	for _, item := range c.Items {
		total += item.Cost
	}
	return total
}

func (c *Cart) Item(t CartItemType) *CartItem {
	for i := range c.Items {
		if c.Items[i].ItemType == t {
			return &c.Items[i]
		}
	}
	return nil
}

type CartItem struct {
	ID               uint             `json:"id" gorm:"primaryKey"`
	CartID           uint             `json:"cart_id" gorm:"index;not null"`
	ItemType         CartItemType     `json:"item_type" gorm:"type:varchar(20);not null"`
	EventData        []byte           `json:"-" gorm:"type:jsonb"`
	NotificationType NotificationType `json:"notification_type,omitempty" gorm:"type:varchar(20)"`
	Cost             float64          `json:"cost" gorm:"not null"`
}

// DraftEvent is the typed snapshot stored in an EVENT cart item. It carries
// everything needed to create the Event once payment succeeds.
type DraftEvent struct {
	CategoryID    uint        `json:"category_id"`
	Name          string      `json:"name"`
	Subtitle      string      `json:"subtitle"`
	Description   string      `json:"description"`
	ImageURL      string      `json:"image_url"`
	StartTime     time.Time   `json:"start_time"`
	EndTime       time.Time   `json:"end_time"`
	DurationHours float64     `json:"duration_hours"`
	AgeRangeMin   int         `json:"age_range_min"`
	AgeRangeMax   int         `json:"age_range_max"`
	MaxGuests     int         `json:"max_guests"`
	Price         float64     `json:"price"`
	PaymentType   PaymentType `json:"payment_type"`
	Street        string      `json:"street"`
	HomeNumber    string      `json:"home_number"`
	District      string      `json:"district"`
	PostalCode    string      `json:"postal_code"`
	State         string      `json:"state"`
}

// Event materializes the draft into the durable record for creator.
func (d DraftEvent) Event(creatorID uint) *Event {
	return &Event{
		CreatorID:     creatorID,
		CategoryID:    d.CategoryID,
		Name:          d.Name,
		Subtitle:      d.Subtitle,
		Description:   d.Description,
		ImageURL:      d.ImageURL,
		StartTime:     d.StartTime,
		EndTime:       d.EndTime,
		DurationHours: d.DurationHours,
		AgeRangeMin:   d.AgeRangeMin,
		AgeRangeMax:   d.AgeRangeMax,
		MaxGuests:     d.MaxGuests,
		Price:         d.Price,
		PaymentType:   d.PaymentType,
		Street:        d.Street,
		HomeNumber:    d.HomeNumber,
		District:      d.District,
		PostalCode:    d.PostalCode,
		State:         d.State,
	}
}

type StageResult struct {
	CartID    uint    `json:"cart_id"`
	TotalCost float64 `json:"total_cost"`
}

type EventPreview struct {
	ImageURL         string       `json:"image_url,omitempty"`
	Category         string       `json:"category"`
	Name             string       `json:"name"`
	Description      string       `json:"description"`
	Price            float64      `json:"price"`
	Time             string       `json:"time"`
	Guests           string       `json:"guests"`
	StartsIn         string       `json:"starts_in"`
	Location         string       `json:"location"`
	Host             PreviewHost  `json:"host"`
	NotificationType string       `json:"notification_type"`
	NotificationCost float64      `json:"notification_cost"`
	TotalCost        float64      `json:"total_cost"`
}

type PreviewHost struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}
