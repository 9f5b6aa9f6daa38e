package service

import (
	"time"

	"github.com/gatherly/gatherly-backend/internal/models"
	"github.com/gatherly/gatherly-backend/pkg/apperr"
)

// EventListStore serves the read endpoints around the pipeline.
type EventListStore interface {
	EventStore
	AllUpcoming(now time.Time) ([]models.Event, error)
	ByCreator(creatorID uint) ([]models.Event, error)
	PastByCreator(creatorID uint, now time.Time) ([]models.Event, error)
	JoinedBy(userID uint) ([]models.Event, error)
}

type EventService struct {
	events EventListStore
	users  UserDirectory
	now    func() time.Time
}

func NewEventService(events EventListStore, users UserDirectory) *EventService {
	return &EventService{
		events: events,
		users:  users,
		now:    time.Now,
	}
}

func (s *EventService) GetEvent(eventID uint) (*models.EventResponse, error) {
	event, err := s.events.GetByID(eventID)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	if event == nil {
		return nil, apperr.NotFound("event not found")
	}
	return s.respond(event)
}

// AllEvents lists active future events, soonest first.
func (s *EventService) AllEvents() ([]models.EventResponse, error) {
	events, err := s.events.AllUpcoming(s.now())
	if err != nil {
		return nil, apperr.Internal(err)
	}
	return s.respondAll(events)
}

func (s *EventService) OwnEvents(userID uint) ([]models.EventResponse, error) {
	events, err := s.events.ByCreator(userID)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	return s.respondAll(events)
}

// MatchedEvents lists active events the user has joined.
func (s *EventService) MatchedEvents(userID uint) ([]models.EventResponse, error) {
	events, err := s.events.JoinedBy(userID)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	return s.respondAll(events)
}

// UserPastEvents lists another user's finished events, for their public
// profile.
func (s *EventService) UserPastEvents(targetUserID uint) ([]models.EventResponse, error) {
	if _, err := s.users.GetByID(targetUserID); err != nil {
		return nil, apperr.NotFound("user not found")
	}

	events, err := s.events.PastByCreator(targetUserID, s.now())
	if err != nil {
		return nil, apperr.Internal(err)
	}
	return s.respondAll(events)
}

func (s *EventService) respond(event *models.Event) (*models.EventResponse, error) {
	count, err := s.events.CountAttendees(event.ID)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	resp := models.NewEventResponse(event, int(count))
	return &resp, nil
}

func (s *EventService) respondAll(events []models.Event) ([]models.EventResponse, error) {
	responses := make([]models.EventResponse, 0, len(events))
	for i := range events {
		resp, err := s.respond(&events[i])
		if err != nil {
			return nil, err
		}
		responses = append(responses, *resp)
	}
	return responses, nil
}
