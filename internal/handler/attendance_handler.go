package handler

import (
	"github.com/gatherly/gatherly-backend/internal/models"
	"github.com/gatherly/gatherly-backend/internal/service"
	"github.com/gatherly/gatherly-backend/pkg/utils"
	"github.com/gofiber/fiber/v2"
)

type AttendanceHandler struct {
	attendanceService *service.AttendanceService
	validator         *utils.Validator
}

func NewAttendanceHandler(attendanceService *service.AttendanceService, validator *utils.Validator) *AttendanceHandler {
	return &AttendanceHandler{
		attendanceService: attendanceService,
		validator:         validator,
	}
}

// JoinEvent joins the user directly for free/cash events; paid card events
// come back with an approval URL for the pending order instead.
func (h *AttendanceHandler) JoinEvent(c *fiber.Ctx) error {
	userID, ok := currentUserID(c)
	if !ok {
		return unauthorized(c)
	}

	var req models.JoinEventRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse("Invalid request body"))
	}
	if err := h.validator.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse(err.Error()))
	}

	result, err := h.attendanceService.JoinEvent(c.UserContext(), userID, req.EventID)
	if err != nil {
		return fail(c, err)
	}

	if !result.Joined {
		return c.JSON(models.SuccessResponse(result, "Payment required to join"))
	}
	return c.Status(fiber.StatusCreated).JSON(models.SuccessResponse(result, "Joined event successfully"))
}

// CapturePayment finalizes a pending order and records the attendance.
func (h *AttendanceHandler) CapturePayment(c *fiber.Ctx) error {
	userID, ok := currentUserID(c)
	if !ok {
		return unauthorized(c)
	}

	var req models.CaptureOrderRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse("Invalid request body"))
	}
	if err := h.validator.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse(err.Error()))
	}

	result, err := h.attendanceService.CaptureOrder(c.UserContext(), userID, req.EventID, req.OrderID)
	if err != nil {
		return fail(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(models.SuccessResponse(result, "Payment captured and joined event"))
}
