package handler

import (
	"strconv"

	"github.com/gatherly/gatherly-backend/internal/models"
	"github.com/gatherly/gatherly-backend/internal/service"
	"github.com/gatherly/gatherly-backend/pkg/utils"
	"github.com/gofiber/fiber/v2"
)

type EventHandler struct {
	cartService         *service.CartService
	eventService        *service.EventService
	availabilityService *service.AvailabilityService
	validator           *utils.Validator
}

func NewEventHandler(
	cartService *service.CartService,
	eventService *service.EventService,
	availabilityService *service.AvailabilityService,
	validator *utils.Validator,
) *EventHandler {
	return &EventHandler{
		cartService:         cartService,
		eventService:        eventService,
		availabilityService: availabilityService,
		validator:           validator,
	}
}

// CreateEvent stages a draft event into the user's cart. Nothing durable is
// created until payment completes.
func (h *EventHandler) CreateEvent(c *fiber.Ctx) error {
	userID, ok := currentUserID(c)
	if !ok {
		return unauthorized(c)
	}

	var req models.EventRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse("Invalid request body"))
	}
	if err := h.validator.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse(err.Error()))
	}

	result, err := h.cartService.Stage(userID, req)
	if err != nil {
		return fail(c, err)
	}

	return c.JSON(models.SuccessResponse(result, "Event staged, proceed to preview"))
}

func (h *EventHandler) PreviewEvent(c *fiber.Ctx) error {
	userID, ok := currentUserID(c)
	if !ok {
		return unauthorized(c)
	}

	cartID, err := strconv.ParseUint(c.Query("cart_id"), 10, 32)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse("Invalid cart ID"))
	}

	preview, err := h.cartService.Preview(userID, uint(cartID))
	if err != nil {
		return fail(c, err)
	}

	return c.JSON(models.SuccessResponse(preview, ""))
}

func (h *EventHandler) CheckAvailability(c *fiber.Ctx) error {
	userID, ok := currentUserID(c)
	if !ok {
		return unauthorized(c)
	}

	var req models.AvailabilityRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse("Invalid request body"))
	}
	if err := h.validator.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse(err.Error()))
	}

	result, err := h.availabilityService.Check(userID, req.StartTime, req.EndTime)
	if err != nil {
		return fail(c, err)
	}

	return c.JSON(models.SuccessResponse(result, result.Message))
}

func (h *EventHandler) DeclareUnavailability(c *fiber.Ctx) error {
	userID, ok := currentUserID(c)
	if !ok {
		return unauthorized(c)
	}

	var req models.AvailabilityRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse("Invalid request body"))
	}
	if err := h.validator.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse(err.Error()))
	}

	slot, err := h.availabilityService.DeclareUnavailability(userID, req)
	if err != nil {
		return fail(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(models.SuccessResponse(slot, "Unavailability saved"))
}

func (h *EventHandler) GetUnavailability(c *fiber.Ctx) error {
	userID, ok := currentUserID(c)
	if !ok {
		return unauthorized(c)
	}

	slots, err := h.availabilityService.ListUnavailability(userID)
	if err != nil {
		return fail(c, err)
	}

	return c.JSON(models.SuccessResponse(slots, ""))
}

func (h *EventHandler) GetAllEvents(c *fiber.Ctx) error {
	events, err := h.eventService.AllEvents()
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(models.SuccessResponse(events, ""))
}

func (h *EventHandler) GetEvent(c *fiber.Ctx) error {
	eventID, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse("Invalid event ID"))
	}

	event, err := h.eventService.GetEvent(uint(eventID))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(models.SuccessResponse(event, ""))
}

func (h *EventHandler) GetOwnEvents(c *fiber.Ctx) error {
	userID, ok := currentUserID(c)
	if !ok {
		return unauthorized(c)
	}

	events, err := h.eventService.OwnEvents(userID)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(models.SuccessResponse(events, ""))
}

func (h *EventHandler) GetMatchedEvents(c *fiber.Ctx) error {
	userID, ok := currentUserID(c)
	if !ok {
		return unauthorized(c)
	}

	events, err := h.eventService.MatchedEvents(userID)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(models.SuccessResponse(events, ""))
}

func (h *EventHandler) GetUserPastEvents(c *fiber.Ctx) error {
	targetID, err := strconv.ParseUint(c.Params("userId"), 10, 32)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse("Invalid user ID"))
	}

	events, err := h.eventService.UserPastEvents(uint(targetID))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(models.SuccessResponse(events, ""))
}
