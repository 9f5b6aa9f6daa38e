package service

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/gatherly/gatherly-backend/internal/models"
	"github.com/gatherly/gatherly-backend/pkg/apperr"
)

// CartStore is the staging store: one cart per user, replaced wholesale on
// every re-stage.
type CartStore interface {
	Replace(userID uint, items []models.CartItem) (*models.Cart, error)
	GetForUser(cartID uint, userID uint) (*models.Cart, error)
}

// PricingStore resolves a guest count to its creation fee tier; nil means the
// count is outside the supported domain.
type PricingStore interface {
	Resolve(guests int) (*models.GuestPricing, error)
}

// UserDirectory is the identity collaborator: users, their interest set, and
// their connected payout account.
type UserDirectory interface {
	GetByID(id uint) (*models.User, error)
	HasHobby(userID uint, hobbyID uint) (bool, error)
	GetHobby(hobbyID uint) (*models.Hobby, error)
	GetActivePayPalAccount(userID uint) (*models.PayPalAccount, error)
}

type CartService struct {
	carts   CartStore
	pricing PricingStore
	users   UserDirectory
	now     func() time.Time
}

func NewCartService(carts CartStore, pricing PricingStore, users UserDirectory) *CartService {
	return &CartService{
		carts:   carts,
		pricing: pricing,
		users:   users,
		now:     time.Now,
	}
}

// Stage validates the draft, prices it, and stages it into the user's cart.
// Any previously staged draft is deleted: a cart always ends up with exactly
// one EVENT item and one NOTIFICATION item.
func (s *CartService) Stage(userID uint, req models.EventRequest) (*models.StageResult, error) {
	now := s.now()
	if !req.StartTime.After(now) {
		return nil, apperr.Validation("event start time must be in the future")
	}
	if !req.EndTime.After(req.StartTime) {
		return nil, apperr.Validation("event end time must be after start time")
	}
	if req.AgeRangeMax <= req.AgeRangeMin {
		return nil, apperr.Validation("maximum age must be greater than minimum age")
	}

	ok, err := s.users.HasHobby(userID, req.CategoryID)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	if !ok {
		return nil, apperr.Validation("category must be one of your hobbies")
	}

	tier, err := s.pricing.Resolve(req.MaxGuests)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	if tier == nil {
		return nil, apperr.Validation("invalid number of guests, must be between 0 and 150")
	}

	notificationType := req.NotificationType
	if notificationType == "" {
		notificationType = models.Notification24Hours
	}

	draft := models.DraftEvent{
		CategoryID:    req.CategoryID,
		Name:          req.Name,
		Subtitle:      req.Subtitle,
		Description:   req.Description,
		ImageURL:      req.ImageURL,
		StartTime:     req.StartTime,
		EndTime:       req.EndTime,
		DurationHours: req.DurationHours,
		AgeRangeMin:   req.AgeRangeMin,
		AgeRangeMax:   req.AgeRangeMax,
		MaxGuests:     req.MaxGuests,
		Price:         req.Price,
		PaymentType:   req.PaymentType,
		Street:        req.Street,
		HomeNumber:    req.HomeNumber,
		District:      req.District,
		PostalCode:    req.PostalCode,
		State:         req.State,
	}
	raw, err := json.Marshal(draft)
	if err != nil {
		return nil, apperr.Internal(err)
	}

	items := []models.CartItem{
		{
			ItemType:  models.CartItemEvent,
			EventData: raw,
			Cost:      tier.Price,
		},
		{
			ItemType:         models.CartItemNotification,
			NotificationType: notificationType,
			Cost:             models.NotificationCost(notificationType),
		},
	}

	cart, err := s.carts.Replace(userID, items)
	if err != nil {
		return nil, apperr.Internal(err)
	}

	return &models.StageResult{
		CartID:    cart.ID,
		TotalCost: cart.TotalCost(),
	}, nil
}

// Preview renders the staged draft for the confirmation screen. Read-only.
func (s *CartService) Preview(userID uint, cartID uint) (*models.EventPreview, error) {
	cart, err := s.carts.GetForUser(cartID, userID)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	if cart == nil {
		return nil, apperr.NotFound("cart not found")
	}

	eventItem := cart.Item(models.CartItemEvent)
	if eventItem == nil {
		return nil, apperr.NotFound("event data not found in cart")
	}

	var draft models.DraftEvent
	if err := json.Unmarshal(eventItem.EventData, &draft); err != nil {
		return nil, apperr.Internal(err)
	}

	user, err := s.users.GetByID(userID)
	if err != nil {
		return nil, apperr.Internal(err)
	}

	categoryName := ""
	if hobby, err := s.users.GetHobby(draft.CategoryID); err == nil {
		categoryName = hobby.Name
	}

	startsIn := "Started"
	if hours := draft.StartTime.Sub(s.now()).Hours(); hours > 0 {
		startsIn = fmt.Sprintf("Starts in %dhrs", int(hours))
	}

	preview := &models.EventPreview{
		ImageURL:    draft.ImageURL,
		Category:    categoryName,
		Name:        draft.Name,
		Description: draft.Description,
		Price:       draft.Price,
		Time:        fmt.Sprintf("%s - %s", draft.StartTime.Format("03:04PM"), draft.EndTime.Format("03:04PM")),
		Guests:      fmt.Sprintf("%d guests", draft.MaxGuests),
		StartsIn:    startsIn,
		Location:    fmt.Sprintf("%s, %s", draft.PostalCode, draft.District),
		Host: models.PreviewHost{
			Name:        user.FullName,
			Description: user.Bio,
		},
		NotificationType: string(models.Notification24Hours),
		TotalCost:        cart.TotalCost(),
	}

	if item := cart.Item(models.CartItemNotification); item != nil {
		preview.NotificationType = string(item.NotificationType)
		preview.NotificationCost = item.Cost
	}

	return preview, nil
}
