package handlers

import (
	"khazina/internal/services/sharia"
	"khazina/internal/utils"

	"github.com/gofiber/fiber/v2"
)

type ShariaHandler struct {
	shariaService sharia.Service
}

func NewShariaHandler(shariaService sharia.Service) *ShariaHandler {
	return &ShariaHandler{shariaService: shariaService}
}

func (h *ShariaHandler) Get(c *fiber.Ctx) error {
	claims, err := extractUserClaims(c)
	if err != nil {
		return utils.Unauthorized(c, "invalid claims")
	}

	accepted, err := h.shariaService.Status(c.Context(), claims.UserID)
	if err != nil {
		return utils.InternalError(c, "Failed to load acceptance status")
	}
	return utils.Success(c, fiber.Map{"accepted": accepted})
}

func (h *ShariaHandler) Accept(c *fiber.Ctx) error {
	claims, err := extractUserClaims(c)
	if err != nil {
		return utils.Unauthorized(c, "invalid claims")
	}

	var input struct {
		Accepted bool `json:"accepted"`
	}
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Invalid request format")
	}

	if err := h.shariaService.SetAcceptance(c.Context(), claims.UserID, input.Accepted); err != nil {
		return utils.InternalError(c, "Failed to save acceptance")
	}
	return utils.Success(c, fiber.Map{
		"message":  "Acceptance saved",
		"accepted": input.Accepted,
	})
}
