package handler

import (
	"github.com/gatherly/gatherly-backend/internal/models"
	"github.com/gatherly/gatherly-backend/pkg/apperr"
	"github.com/gofiber/fiber/v2"
)

// currentUserID reads the authenticated user id set by the auth middleware.
func currentUserID(c *fiber.Ctx) (uint, bool) {
	userID, ok := c.Locals("userID").(uint)
	return userID, ok
}

func unauthorized(c *fiber.Ctx) error {
	return c.Status(fiber.StatusUnauthorized).JSON(models.ErrorResponse("User not authenticated"))
}

// fail maps the error taxonomy onto HTTP status codes. Provider internals
// never reach the client; apperr.Message already hides them.
func fail(c *fiber.Ctx, err error) error {
	status := fiber.StatusInternalServerError
	switch apperr.KindOf(err) {
	case apperr.KindValidation:
		status = fiber.StatusBadRequest
	case apperr.KindNotFound:
		status = fiber.StatusNotFound
	case apperr.KindConflict:
		status = fiber.StatusConflict
	case apperr.KindProvider:
		status = fiber.StatusBadGateway
	}
	return c.Status(status).JSON(models.ErrorResponse(apperr.Message(err)))
}
