package service

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/gatherly/gatherly-backend/internal/models"
	"github.com/gatherly/gatherly-backend/pkg/apperr"
)

type cartFixture struct {
	carts *fakeCarts
	users *fakeUsers
	svc   *CartService
	now   time.Time
}

func newCartFixture(t *testing.T) *cartFixture {
	t.Helper()
	f := &cartFixture{
		carts: newFakeCarts(),
		users: newFakeUsers(),
		now:   date(2026, time.August, 30),
	}
	f.users.addUser(1, date(2026, time.January, 1))
	f.users.addHobby(1, 7, "Board Games")
	f.svc = NewCartService(f.carts, fakePricing{}, f.users)
	f.svc.now = func() time.Time { return f.now }
	return f
}

func (f *cartFixture) request() models.EventRequest {
	return models.EventRequest{
		CategoryID:  7,
		Name:        "Board Game Night",
		Description: "Bring your own snacks",
		StartTime:   f.now.Add(48 * time.Hour),
		EndTime:     f.now.Add(52 * time.Hour),
		AgeRangeMin: 18,
		AgeRangeMax: 60,
		MaxGuests:   30,
		Price:       15,
		PaymentType: models.PaymentTypeCard,
		Street:      "Main St",
		District:    "Centrum",
		PostalCode:  "1011AB",
		State:       "NH",
	}
}

func TestStage(t *testing.T) {
	f := newCartFixture(t)
	req := f.request()
	req.NotificationType = models.Notification48Hours

	result, err := f.svc.Stage(1, req)
	if err != nil {
		t.Fatalf("Stage: %v", err)
	}
	// 30 guests is the 25.00 tier, plus the 6.00 reminder add-on.
	if result.TotalCost != 31.00 {
		t.Errorf("total = %v, want 31.00", result.TotalCost)
	}

	cart, _ := f.carts.GetForUser(result.CartID, 1)
	if cart == nil {
		t.Fatal("staged cart not found")
	}
	if len(cart.Items) != 2 {
		t.Fatalf("cart has %d items, want 2", len(cart.Items))
	}

	eventItem := cart.Item(models.CartItemEvent)
	if eventItem == nil {
		t.Fatal("cart has no event item")
	}
	var draft models.DraftEvent
	if err := json.Unmarshal(eventItem.EventData, &draft); err != nil {
		t.Fatalf("unmarshal draft: %v", err)
	}
	if draft.Name != req.Name || draft.MaxGuests != 30 {
		t.Errorf("draft = %+v, want the staged request", draft)
	}

	notifItem := cart.Item(models.CartItemNotification)
	if notifItem == nil || notifItem.NotificationType != models.Notification48Hours {
		t.Errorf("notification item = %+v, want 48_HOURS", notifItem)
	}
}

func TestStageDefaultsNotification(t *testing.T) {
	f := newCartFixture(t)

	result, err := f.svc.Stage(1, f.request())
	if err != nil {
		t.Fatalf("Stage: %v", err)
	}

	cart, _ := f.carts.GetForUser(result.CartID, 1)
	item := cart.Item(models.CartItemNotification)
	if item.NotificationType != models.Notification24Hours {
		t.Errorf("notification = %s, want default 24_HOURS", item.NotificationType)
	}
	if item.Cost != 0 {
		t.Errorf("default notification cost = %v, want 0", item.Cost)
	}
}

func TestStageReplacesPreviousDraft(t *testing.T) {
	f := newCartFixture(t)

	first, err := f.svc.Stage(1, f.request())
	if err != nil {
		t.Fatalf("first Stage: %v", err)
	}

	req := f.request()
	req.Name = "Pottery Workshop"
	req.MaxGuests = 4
	second, err := f.svc.Stage(1, req)
	if err != nil {
		t.Fatalf("second Stage: %v", err)
	}

	if first.CartID != second.CartID {
		t.Errorf("restage moved the cart from %d to %d", first.CartID, second.CartID)
	}
	if second.TotalCost != 0 {
		t.Errorf("restaged total = %v, want the free tier", second.TotalCost)
	}

	cart, _ := f.carts.GetForUser(second.CartID, 1)
	if len(cart.Items) != 2 {
		t.Fatalf("cart has %d items after restage, want 2", len(cart.Items))
	}
	var draft models.DraftEvent
	json.Unmarshal(cart.Item(models.CartItemEvent).EventData, &draft)
	if draft.Name != "Pottery Workshop" {
		t.Errorf("draft = %q, want the newer one", draft.Name)
	}
}

func TestStageValidation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(req *models.EventRequest)
	}{
		{
			name:   "start time in the past",
			mutate: func(req *models.EventRequest) { req.StartTime = date(2026, time.August, 1) },
		},
		{
			name: "end before start",
			mutate: func(req *models.EventRequest) {
				req.EndTime = req.StartTime.Add(-time.Hour)
			},
		},
		{
			name:   "age range inverted",
			mutate: func(req *models.EventRequest) { req.AgeRangeMin, req.AgeRangeMax = 60, 18 },
		},
		{
			name:   "category not among hobbies",
			mutate: func(req *models.EventRequest) { req.CategoryID = 8 },
		},
		{
			name:   "guest count above the last tier",
			mutate: func(req *models.EventRequest) { req.MaxGuests = 151 },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newCartFixture(t)
			req := f.request()
			tt.mutate(&req)

			_, err := f.svc.Stage(1, req)
			if apperr.KindOf(err) != apperr.KindValidation {
				t.Fatalf("err = %v, want validation", err)
			}
		})
	}
}

func TestPreview(t *testing.T) {
	f := newCartFixture(t)
	f.users.users[1].Bio = "Longtime host"
	req := f.request()
	req.NotificationType = models.Notification7Days

	staged, err := f.svc.Stage(1, req)
	if err != nil {
		t.Fatalf("Stage: %v", err)
	}

	preview, err := f.svc.Preview(1, staged.CartID)
	if err != nil {
		t.Fatalf("Preview: %v", err)
	}
	if preview.Name != req.Name {
		t.Errorf("name = %q, want %q", preview.Name, req.Name)
	}
	if preview.Category != "Board Games" {
		t.Errorf("category = %q, want Board Games", preview.Category)
	}
	if preview.Guests != "30 guests" {
		t.Errorf("guests = %q, want 30 guests", preview.Guests)
	}
	if preview.StartsIn != "Starts in 48hrs" {
		t.Errorf("starts in = %q, want Starts in 48hrs", preview.StartsIn)
	}
	if preview.Location != "1011AB, Centrum" {
		t.Errorf("location = %q", preview.Location)
	}
	if preview.Host.Name != "Test User" || preview.Host.Description != "Longtime host" {
		t.Errorf("host = %+v", preview.Host)
	}
	if preview.NotificationType != string(models.Notification7Days) {
		t.Errorf("notification = %q, want 7_DAYS", preview.NotificationType)
	}
	if preview.NotificationCost != 13.70 {
		t.Errorf("notification cost = %v, want 13.70", preview.NotificationCost)
	}
	if preview.TotalCost != staged.TotalCost {
		t.Errorf("total = %v, want %v", preview.TotalCost, staged.TotalCost)
	}
}

func TestPreviewUnknownCart(t *testing.T) {
	f := newCartFixture(t)

	_, err := f.svc.Preview(1, 42)
	if apperr.KindOf(err) != apperr.KindNotFound {
		t.Fatalf("err = %v, want not found", err)
	}
}
