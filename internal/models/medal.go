package models

import (
	"time"
)

type MedalType string

const (
	MedalGold   MedalType = "GOLD"
	MedalSilver MedalType = "SILVER"
	MedalBronze MedalType = "BRONZE"
)

// Medal is an additive loyalty ledger entry. SILVER and BRONZE are granted at
// most once per accrual period; GOLD repeats as activity crosses each new
// multiple of three. Entries are never revoked.
type Medal struct {
	ID                 uint       `json:"id" gorm:"primaryKey"`
	UserID             uint       `json:"user_id" gorm:"index;not null"`
	MedalType          MedalType  `json:"medal_type" gorm:"type:varchar(10);not null"`
	DiscountPercentage float64    `json:"discount_percentage" gorm:"default:0"`
	DiscountExpiresAt  *time.Time `json:"discount_expires_at"`
	PeriodStart        time.Time  `json:"period_start" gorm:"index;not null"`
	PeriodEnd          time.Time  `json:"period_end" gorm:"not null"`
	AwardedAt          time.Time  `json:"awarded_at" gorm:"autoCreateTime"`
}
