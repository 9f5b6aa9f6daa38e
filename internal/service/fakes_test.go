package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/gatherly/gatherly-backend/internal/models"
	"github.com/gatherly/gatherly-backend/pkg/apperr"
	"github.com/gatherly/gatherly-backend/pkg/payment"
)

// In-memory fakes for the service-level stores and providers. They mirror the
// transactional guarantees of the real repositories (guarded deletes and
// updates, capacity checks under a lock) so the idempotency and concurrency
// behavior of the services can be exercised without a database.

type fakeUsers struct {
	users   map[uint]*models.User
	hobbies map[uint]map[uint]bool
	names   map[uint]string
	paypal  map[uint]*models.PayPalAccount
}

func newFakeUsers() *fakeUsers {
	return &fakeUsers{
		users:   make(map[uint]*models.User),
		hobbies: make(map[uint]map[uint]bool),
		names:   make(map[uint]string),
		paypal:  make(map[uint]*models.PayPalAccount),
	}
}

func (f *fakeUsers) addUser(id uint, joined time.Time) *models.User {
	user := &models.User{ID: id, FullName: "Test User", Email: "user@example.com", CreatedAt: joined}
	f.users[id] = user
	return user
}

func (f *fakeUsers) addHobby(userID, hobbyID uint, name string) {
	if f.hobbies[userID] == nil {
		f.hobbies[userID] = make(map[uint]bool)
	}
	f.hobbies[userID][hobbyID] = true
	f.names[hobbyID] = name
}

func (f *fakeUsers) GetByID(id uint) (*models.User, error) {
	user, ok := f.users[id]
	if !ok {
		return nil, errors.New("user not found")
	}
	return user, nil
}

func (f *fakeUsers) HasHobby(userID uint, hobbyID uint) (bool, error) {
	return f.hobbies[userID][hobbyID], nil
}

func (f *fakeUsers) GetHobby(hobbyID uint) (*models.Hobby, error) {
	name, ok := f.names[hobbyID]
	if !ok {
		return nil, errors.New("hobby not found")
	}
	return &models.Hobby{ID: hobbyID, Name: name}, nil
}

func (f *fakeUsers) GetActivePayPalAccount(userID uint) (*models.PayPalAccount, error) {
	return f.paypal[userID], nil
}

type fakePricing struct{}

func (fakePricing) Resolve(guests int) (*models.GuestPricing, error) {
	tier, ok := models.ResolveGuestPricing(models.DefaultGuestPricing, guests)
	if !ok {
		return nil, nil
	}
	return &tier, nil
}

type fakeCarts struct {
	mu     sync.Mutex
	nextID uint
	carts  map[uint]*models.Cart
}

func newFakeCarts() *fakeCarts {
	return &fakeCarts{carts: make(map[uint]*models.Cart)}
}

func (f *fakeCarts) Replace(userID uint, items []models.CartItem) (*models.Cart, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var cart *models.Cart
	for _, c := range f.carts {
		if c.UserID == userID {
			cart = c
			break
		}
	}
	if cart == nil {
		f.nextID++
		cart = &models.Cart{ID: f.nextID, UserID: userID}
		f.carts[cart.ID] = cart
	}
	for i := range items {
		items[i].CartID = cart.ID
	}
	cart.Items = items
	return cart, nil
}

func (f *fakeCarts) GetForUser(cartID uint, userID uint) (*models.Cart, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	cart, ok := f.carts[cartID]
	if !ok || cart.UserID != userID {
		return nil, nil
	}
	return cart, nil
}

func (f *fakeCarts) delete(cartID uint) bool {
	if _, ok := f.carts[cartID]; !ok {
		return false
	}
	delete(f.carts, cartID)
	return true
}

// fakeActivator implements EventActivator with the same exactly-once guard as
// the real transaction: the cart delete decides the winner.
type fakeActivator struct {
	mu       sync.Mutex
	carts    *fakeCarts
	nextID   uint
	events   []*models.Event
	prefs    []*models.NotificationPreference
	payments []*models.EventPayment
}

func newFakeActivator(carts *fakeCarts) *fakeActivator {
	return &fakeActivator{carts: carts}
}

func (f *fakeActivator) ActivateFromCart(cartID uint, event *models.Event, pref *models.NotificationPreference, receipt *models.EventPayment) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.carts.mu.Lock()
	deleted := f.carts.delete(cartID)
	f.carts.mu.Unlock()
	if !deleted {
		return apperr.NotFound("cart not found")
	}

	f.nextID++
	event.ID = f.nextID
	event.IsActive = true
	f.events = append(f.events, event)
	if pref != nil {
		pref.EventID = event.ID
		f.prefs = append(f.prefs, pref)
	}
	if receipt != nil {
		receipt.EventID = event.ID
		f.payments = append(f.payments, receipt)
	}
	return nil
}

type fakeRecorder struct {
	mu    sync.Mutex
	calls []uint
}

func (f *fakeRecorder) RecordActivity(userID uint) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, userID)
}

type fakeCheckout struct {
	session    *payment.CheckoutSession
	createErr  error
	getSession *payment.CheckoutSession
	getErr     error
	created    int
}

func (f *fakeCheckout) CreateSession(amount float64, eventName string, cartID uint) (*payment.CheckoutSession, error) {
	f.created++
	if f.createErr != nil {
		return nil, f.createErr
	}
	return f.session, nil
}

func (f *fakeCheckout) GetSession(sessionID string) (*payment.CheckoutSession, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.getSession, nil
}

// fakeEvents backs EventStore, EventListStore, EventWindowStore and
// AttendanceStore at once, with capacity enforced under its lock.
type fakeEvents struct {
	mu        sync.Mutex
	events    map[uint]*models.Event
	attendees map[uint]map[uint]bool
}

func newFakeEvents() *fakeEvents {
	return &fakeEvents{
		events:    make(map[uint]*models.Event),
		attendees: make(map[uint]map[uint]bool),
	}
}

func (f *fakeEvents) add(event *models.Event) {
	f.events[event.ID] = event
}

func (f *fakeEvents) GetByID(id uint) (*models.Event, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.events[id], nil
}

func (f *fakeEvents) CountAttendees(eventID uint) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return int64(len(f.attendees[eventID])), nil
}

func (f *fakeEvents) ActiveWindows(creatorID uint) ([][2]time.Time, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var windows [][2]time.Time
	for _, e := range f.events {
		if e.CreatorID == creatorID && e.IsActive {
			windows = append(windows, [2]time.Time{e.StartTime, e.EndTime})
		}
	}
	return windows, nil
}

func (f *fakeEvents) Exists(eventID uint, userID uint) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.attendees[eventID][userID], nil
}

func (f *fakeEvents) CreateWithCapacity(eventID uint, userID uint) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	event, ok := f.events[eventID]
	if !ok {
		return errors.New("event not found")
	}
	if f.attendees[eventID][userID] {
		return apperr.Conflict("already joined")
	}
	if len(f.attendees[eventID]) >= event.MaxGuests {
		return apperr.Conflict("event is full")
	}
	if f.attendees[eventID] == nil {
		f.attendees[eventID] = make(map[uint]bool)
	}
	f.attendees[eventID][userID] = true
	return nil
}

func (f *fakeEvents) AllUpcoming(now time.Time) ([]models.Event, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.Event
	for _, e := range f.events {
		if e.IsActive && e.StartTime.After(now) {
			out = append(out, *e)
		}
	}
	return out, nil
}

func (f *fakeEvents) ByCreator(creatorID uint) ([]models.Event, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.Event
	for _, e := range f.events {
		if e.CreatorID == creatorID && e.IsActive {
			out = append(out, *e)
		}
	}
	return out, nil
}

func (f *fakeEvents) PastByCreator(creatorID uint, now time.Time) ([]models.Event, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.Event
	for _, e := range f.events {
		if e.CreatorID == creatorID && e.IsActive && e.StartTime.Before(now) {
			out = append(out, *e)
		}
	}
	return out, nil
}

func (f *fakeEvents) JoinedBy(userID uint) ([]models.Event, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.Event
	for id, users := range f.attendees {
		if users[userID] {
			if e, ok := f.events[id]; ok && e.IsActive {
				out = append(out, *e)
			}
		}
	}
	return out, nil
}

// fakeAttendeePayments implements AttendeePaymentStore with the guarded
// pending-row update the real repository performs.
type fakeAttendeePayments struct {
	mu     sync.Mutex
	nextID uint
	rows   []*models.EventAttendeePayment
	events *fakeEvents
}

func newFakeAttendeePayments(events *fakeEvents) *fakeAttendeePayments {
	return &fakeAttendeePayments{events: events}
}

func (f *fakeAttendeePayments) CreateAttendeePayment(p *models.EventAttendeePayment) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	p.ID = f.nextID
	p.CreatedAt = time.Now()
	f.rows = append(f.rows, p)
	return nil
}

func (f *fakeAttendeePayments) GetPendingAttendeePayment(eventID, userID uint, orderID string) (*models.EventAttendeePayment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var latest *models.EventAttendeePayment
	for _, row := range f.rows {
		if row.EventID == eventID && row.UserID == userID && row.TransactionID == orderID && !row.IsPaid {
			latest = row
		}
	}
	return latest, nil
}

func (f *fakeAttendeePayments) CaptureAttendeePayment(paymentID uint, captureID string, paidAt time.Time, eventID, userID uint) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, row := range f.rows {
		if row.ID == paymentID && !row.IsPaid {
			if err := f.events.CreateWithCapacity(eventID, userID); err != nil {
				return err
			}
			row.IsPaid = true
			row.TransactionID = captureID
			row.PaymentDate = &paidAt
			return nil
		}
	}
	return apperr.Conflict("no pending payment found")
}

type fakeEarnings struct {
	rows []models.EventEarnings
}

func (f *fakeEarnings) EarningsByMonth(creatorID uint, from, to time.Time) ([]models.EventEarnings, error) {
	return f.rows, nil
}

type fakeEscrow struct {
	order      *payment.Order
	orderErr   error
	capture    *payment.Capture
	captureErr error
	captures   int
}

func (f *fakeEscrow) CreateOrder(ctx context.Context, amount float64, payeeAccountID string, eventID uint) (*payment.Order, error) {
	if f.orderErr != nil {
		return nil, f.orderErr
	}
	return f.order, nil
}

func (f *fakeEscrow) CaptureOrder(ctx context.Context, orderID string) (*payment.Capture, error) {
	f.captures++
	if f.captureErr != nil {
		return nil, f.captureErr
	}
	return f.capture, nil
}

type fakeSlots struct {
	slots []models.UserAvailability
}

func (f *fakeSlots) Windows(userID uint) ([][2]time.Time, error) {
	var windows [][2]time.Time
	for _, s := range f.slots {
		if s.UserID == userID {
			windows = append(windows, [2]time.Time{s.StartTime, s.EndTime})
		}
	}
	return windows, nil
}

func (f *fakeSlots) Create(slot *models.UserAvailability) error {
	slot.ID = uint(len(f.slots) + 1)
	f.slots = append(f.slots, *slot)
	return nil
}

func (f *fakeSlots) GetUserSlots(userID uint) ([]models.UserAvailability, error) {
	var out []models.UserAvailability
	for _, s := range f.slots {
		if s.UserID == userID {
			out = append(out, s)
		}
	}
	return out, nil
}

// fakeMedalStore scripts the qualifying-event count and stores grants.
type fakeMedalStore struct {
	qualifying int
	medals     []models.Medal
}

func (f *fakeMedalStore) Create(medal *models.Medal) error {
	medal.ID = uint(len(f.medals) + 1)
	f.medals = append(f.medals, *medal)
	return nil
}

func (f *fakeMedalStore) GetUserMedals(userID uint) ([]models.Medal, error) {
	var out []models.Medal
	for _, m := range f.medals {
		if m.UserID == userID {
			out = append(out, m)
		}
	}
	return out, nil
}

func (f *fakeMedalStore) CountForPeriod(userID uint, periodStart time.Time, medalType models.MedalType) (int, error) {
	count := 0
	for _, m := range f.medals {
		if m.UserID == userID && m.MedalType == medalType && m.PeriodStart.Equal(periodStart) {
			count++
		}
	}
	return count, nil
}

func (f *fakeMedalStore) CountQualifyingEvents(userID uint, periodStart, periodEnd time.Time) (int, error) {
	return f.qualifying, nil
}
