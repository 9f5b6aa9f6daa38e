package models

import (
	"time"
)

type User struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	FullName  string    `json:"full_name" gorm:"not null"`
	Username  string    `json:"username" gorm:"unique"`
	Email     string    `json:"email" gorm:"unique;not null"`
	Password  string    `json:"-" gorm:"not null"`
	Bio       string    `json:"bio" gorm:"type:text"`
	Hobbies   []Hobby   `json:"hobbies,omitempty" gorm:"many2many:user_hobbies"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Hobby is the interest catalog; events are categorized by the creator's hobbies.
type Hobby struct {
	ID   uint   `json:"id" gorm:"primaryKey"`
	Name string `json:"name" gorm:"unique;not null"`
}

// UserAvailability is a declared busy window. The availability checker treats
// these like active events when looking for conflicts.
type UserAvailability struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	UserID    uint      `json:"user_id" gorm:"not null;index"`
	StartTime time.Time `json:"start_time" gorm:"not null"`
	EndTime   time.Time `json:"end_time" gorm:"not null"`
}

// PayPalAccount is a creator's connected merchant account. Attendee payments
// for that creator's paid events are routed to AccountID.
type PayPalAccount struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	UserID    uint      `json:"user_id" gorm:"uniqueIndex;not null"`
	Email     string    `json:"email" gorm:"not null"`
	AccountID string    `json:"account_id" gorm:"not null"`
	IsActive  bool      `json:"is_active" gorm:"default:true"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type AvailabilityRequest struct {
	StartTime time.Time `json:"start_time" validate:"required"`
	EndTime   time.Time `json:"end_time" validate:"required"`
}

type AvailabilityResult struct {
	Available bool   `json:"available"`
	Message   string `json:"message"`
}
