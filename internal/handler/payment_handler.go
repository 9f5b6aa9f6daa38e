package handler

import (
	"strconv"
	"time"

	"github.com/gatherly/gatherly-backend/internal/models"
	"github.com/gatherly/gatherly-backend/internal/service"
	"github.com/gatherly/gatherly-backend/pkg/utils"
	"github.com/gofiber/fiber/v2"
)

type PaymentHandler struct {
	paymentService *service.PaymentService
	validator      *utils.Validator
}

func NewPaymentHandler(paymentService *service.PaymentService, validator *utils.Validator) *PaymentHandler {
	return &PaymentHandler{
		paymentService: paymentService,
		validator:      validator,
	}
}

// ProcessPayment starts the creation payment for a staged cart: free-path
// carts come back with the created event, everything else with a checkout
// session to complete.
func (h *PaymentHandler) ProcessPayment(c *fiber.Ctx) error {
	userID, ok := currentUserID(c)
	if !ok {
		return unauthorized(c)
	}

	var req models.InitiatePaymentRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse("Invalid request body"))
	}
	if err := h.validator.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse(err.Error()))
	}

	result, err := h.paymentService.InitiatePayment(userID, req.CartID)
	if err != nil {
		return fail(c, err)
	}

	if result.Event != nil {
		return c.Status(fiber.StatusCreated).JSON(models.SuccessResponse(result, "Event created successfully"))
	}
	return c.JSON(models.SuccessResponse(result, "Payment initiated"))
}

// ConfirmPayment verifies the checkout session and activates the event.
func (h *PaymentHandler) ConfirmPayment(c *fiber.Ctx) error {
	userID, ok := currentUserID(c)
	if !ok {
		return unauthorized(c)
	}

	var req models.ConfirmPaymentRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse("Invalid request body"))
	}
	if err := h.validator.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse(err.Error()))
	}

	result, err := h.paymentService.ConfirmPayment(userID, req.CartID, req.SessionID)
	if err != nil {
		return fail(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(models.SuccessResponse(result, "Payment processed and event created"))
}

func (h *PaymentHandler) GetUserEarnings(c *fiber.Ctx) error {
	userID, ok := currentUserID(c)
	if !ok {
		return unauthorized(c)
	}

	now := time.Now()
	year := now.Year()
	month := int(now.Month())

	if q := c.Query("year"); q != "" {
		v, err := strconv.Atoi(q)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse("Invalid year"))
		}
		year = v
	}
	if q := c.Query("month"); q != "" {
		v, err := strconv.Atoi(q)
		if err != nil || v < 1 || v > 12 {
			return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse("Invalid month"))
		}
		month = v
	}

	earnings, err := h.paymentService.GetUserEarnings(userID, year, time.Month(month))
	if err != nil {
		return fail(c, err)
	}

	return c.JSON(models.SuccessResponse(earnings, ""))
}
