package service

import (
	"time"

	"github.com/gatherly/gatherly-backend/internal/models"
	"github.com/gatherly/gatherly-backend/pkg/apperr"
)

// EventWindowStore exposes the creator's active event time windows.
type EventWindowStore interface {
	ActiveWindows(creatorID uint) ([][2]time.Time, error)
}

// AvailabilityStore holds declared unavailability windows.
type AvailabilityStore interface {
	Windows(userID uint) ([][2]time.Time, error)
	Create(slot *models.UserAvailability) error
	GetUserSlots(userID uint) ([]models.UserAvailability, error)
}

type AvailabilityService struct {
	events EventWindowStore
	slots  AvailabilityStore
}

func NewAvailabilityService(events EventWindowStore, slots AvailabilityStore) *AvailabilityService {
	return &AvailabilityService{
		events: events,
		slots:  slots,
	}
}

// Check runs the two conflict tests in order, first match wins: the creator's
// own active events, then declared unavailability. Read-only.
func (s *AvailabilityService) Check(userID uint, start, end time.Time) (*models.AvailabilityResult, error) {
	if start.IsZero() || end.IsZero() {
		return nil, apperr.Validation("start time and end time are required")
	}
	if !end.After(start) {
		return nil, apperr.Validation("end time must be after start time")
	}

	eventWindows, err := s.events.ActiveWindows(userID)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	for _, w := range eventWindows {
		if overlaps(start, end, w[0], w[1]) {
			return &models.AvailabilityResult{
				Available: false,
				Message:   "You have a conflicting event during this time.",
			}, nil
		}
	}

	busyWindows, err := s.slots.Windows(userID)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	for _, w := range busyWindows {
		if overlaps(start, end, w[0], w[1]) {
			return &models.AvailabilityResult{
				Available: false,
				Message:   "You are not available during this time.",
			}, nil
		}
	}

	return &models.AvailabilityResult{
		Available: true,
		Message:   "You are available during this time.",
	}, nil
}

// overlaps is the strict interval test: touching endpoints do not conflict.
func overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
	return aStart.Before(bEnd) && aEnd.After(bStart)
}

func (s *AvailabilityService) DeclareUnavailability(userID uint, req models.AvailabilityRequest) (*models.UserAvailability, error) {
	if !req.EndTime.After(req.StartTime) {
		return nil, apperr.Validation("end time must be after start time")
	}

	slot := &models.UserAvailability{
		UserID:    userID,
		StartTime: req.StartTime,
		EndTime:   req.EndTime,
	}
	if err := s.slots.Create(slot); err != nil {
		return nil, apperr.Internal(err)
	}
	return slot, nil
}

func (s *AvailabilityService) ListUnavailability(userID uint) ([]models.UserAvailability, error) {
	slots, err := s.slots.GetUserSlots(userID)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	return slots, nil
}
