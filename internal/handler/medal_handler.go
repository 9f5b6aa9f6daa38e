package handler

import (
	"github.com/gatherly/gatherly-backend/internal/models"
	"github.com/gatherly/gatherly-backend/internal/service"
	"github.com/gofiber/fiber/v2"
)

type MedalHandler struct {
	medalService *service.MedalService
}

func NewMedalHandler(medalService *service.MedalService) *MedalHandler {
	return &MedalHandler{
		medalService: medalService,
	}
}

func (h *MedalHandler) GetMyMedals(c *fiber.Ctx) error {
	userID, ok := currentUserID(c)
	if !ok {
		return unauthorized(c)
	}

	medals, err := h.medalService.GetUserMedals(userID)
	if err != nil {
		return fail(c, err)
	}

	return c.JSON(models.SuccessResponse(medals, ""))
}
