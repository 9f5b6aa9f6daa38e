package service

import (
	"testing"
	"time"

	"github.com/gatherly/gatherly-backend/internal/models"
	"github.com/gatherly/gatherly-backend/pkg/apperr"
)

func newEventFixture(t *testing.T) (*EventService, *fakeEvents, *fakeUsers) {
	t.Helper()
	events := newFakeEvents()
	users := newFakeUsers()
	svc := NewEventService(events, users)
	svc.now = func() time.Time { return date(2026, time.August, 30) }
	return svc, events, users
}

func TestGetEvent(t *testing.T) {
	svc, events, _ := newEventFixture(t)
	events.add(&models.Event{
		ID: 1, CreatorID: 10, Name: "Board Game Night", MaxGuests: 5, IsActive: true,
		StartTime: date(2026, time.September, 1), EndTime: date(2026, time.September, 2),
	})
	events.CreateWithCapacity(1, 2)
	events.CreateWithCapacity(1, 3)

	resp, err := svc.GetEvent(1)
	if err != nil {
		t.Fatalf("GetEvent: %v", err)
	}
	if resp.CurrentAttendees != 2 {
		t.Errorf("attendees = %d, want 2", resp.CurrentAttendees)
	}
	if !resp.IsJoinable {
		t.Error("event with free seats should be joinable")
	}

	_, err = svc.GetEvent(99)
	if apperr.KindOf(err) != apperr.KindNotFound {
		t.Fatalf("unknown event err = %v, want not found", err)
	}
}

func TestGetEventFull(t *testing.T) {
	svc, events, _ := newEventFixture(t)
	events.add(&models.Event{
		ID: 1, CreatorID: 10, MaxGuests: 1, IsActive: true,
		StartTime: date(2026, time.September, 1), EndTime: date(2026, time.September, 2),
	})
	events.CreateWithCapacity(1, 2)

	resp, err := svc.GetEvent(1)
	if err != nil {
		t.Fatalf("GetEvent: %v", err)
	}
	if resp.IsJoinable {
		t.Error("full event should not be joinable")
	}
}

func TestAllEvents(t *testing.T) {
	svc, events, _ := newEventFixture(t)
	events.add(&models.Event{
		ID: 1, CreatorID: 10, IsActive: true,
		StartTime: date(2026, time.September, 5), EndTime: date(2026, time.September, 6),
	})
	// Already started.
	events.add(&models.Event{
		ID: 2, CreatorID: 10, IsActive: true,
		StartTime: date(2026, time.August, 1), EndTime: date(2026, time.August, 2),
	})
	// Not yet activated.
	events.add(&models.Event{
		ID: 3, CreatorID: 10, IsActive: false,
		StartTime: date(2026, time.September, 5), EndTime: date(2026, time.September, 6),
	})

	listed, err := svc.AllEvents()
	if err != nil {
		t.Fatalf("AllEvents: %v", err)
	}
	if len(listed) != 1 || listed[0].ID != 1 {
		t.Fatalf("listed = %+v, want only the upcoming active event", listed)
	}
}

func TestMatchedEvents(t *testing.T) {
	svc, events, _ := newEventFixture(t)
	events.add(&models.Event{
		ID: 1, CreatorID: 10, MaxGuests: 5, IsActive: true,
		StartTime: date(2026, time.September, 5), EndTime: date(2026, time.September, 6),
	})
	events.add(&models.Event{
		ID: 2, CreatorID: 10, MaxGuests: 5, IsActive: true,
		StartTime: date(2026, time.September, 7), EndTime: date(2026, time.September, 8),
	})
	events.CreateWithCapacity(1, 2)

	matched, err := svc.MatchedEvents(2)
	if err != nil {
		t.Fatalf("MatchedEvents: %v", err)
	}
	if len(matched) != 1 || matched[0].ID != 1 {
		t.Fatalf("matched = %+v, want only the joined event", matched)
	}
}

func TestUserPastEvents(t *testing.T) {
	svc, events, users := newEventFixture(t)
	users.addUser(10, date(2026, time.January, 1))
	events.add(&models.Event{
		ID: 1, CreatorID: 10, IsActive: true,
		StartTime: date(2026, time.July, 1), EndTime: date(2026, time.July, 2),
	})
	events.add(&models.Event{
		ID: 2, CreatorID: 10, IsActive: true,
		StartTime: date(2026, time.September, 5), EndTime: date(2026, time.September, 6),
	})

	past, err := svc.UserPastEvents(10)
	if err != nil {
		t.Fatalf("UserPastEvents: %v", err)
	}
	if len(past) != 1 || past[0].ID != 1 {
		t.Fatalf("past = %+v, want only the finished event", past)
	}

	_, err = svc.UserPastEvents(99)
	if apperr.KindOf(err) != apperr.KindNotFound {
		t.Fatalf("unknown user err = %v, want not found", err)
	}
}
