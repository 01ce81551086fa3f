package handlers

import (
	"errors"

	"khazina/internal/services/alert"
	"khazina/internal/utils"

	"github.com/gofiber/fiber/v2"
)

type AlertHandler struct {
	alertService alert.Service
}

func NewAlertHandler(alertService alert.Service) *AlertHandler {
	return &AlertHandler{alertService: alertService}
}

func (h *AlertHandler) Create(c *fiber.Ctx) error {
	claims, err := extractUserClaims(c)
	if err != nil {
		return utils.Unauthorized(c, "invalid claims")
	}

	var input struct {
		Karat       int     `json:"karat"`
		TargetPrice float64 `json:"target_price"`
		AlertType   string  `json:"alert_type"`
	}
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Invalid request format")
	}

	a, err := h.alertService.Create(c.Context(), claims.UserID, claims.PublicID, input.Karat, input.TargetPrice, input.AlertType)
	if err != nil {
		switch {
		case errors.Is(err, alert.ErrInvalidKarat):
			return utils.BadRequest(c, "Karat must be one of 24, 22, 21, 18")
		case errors.Is(err, alert.ErrInvalidAlertType):
			return utils.BadRequest(c, "Alert type must be above or below")
		case errors.Is(err, alert.ErrInvalidTarget):
			return utils.BadRequest(c, "Target price must be greater than 0")
		default:
			return utils.InternalError(c, "Failed to create alert")
		}
	}
	return utils.Respond(c, fiber.StatusCreated, fiber.Map{"alert": a})
}

func (h *AlertHandler) List(c *fiber.Ctx) error {
	claims, err := extractUserClaims(c)
	if err != nil {
		return utils.Unauthorized(c, "invalid claims")
	}

	alerts, err := h.alertService.List(c.Context(), claims.UserID)
	if err != nil {
		return utils.InternalError(c, "Failed to load alerts")
	}
	return utils.Success(c, fiber.Map{"alerts": alerts})
}

func (h *AlertHandler) Delete(c *fiber.Ctx) error {
	claims, err := extractUserClaims(c)
	if err != nil {
		return utils.Unauthorized(c, "invalid claims")
	}

	alertID := c.Params("id")
	if err := h.alertService.Delete(c.Context(), alertID, claims.UserID); err != nil {
		if errors.Is(err, alert.ErrAlertNotFound) {
			return utils.NotFound(c, "Alert not found")
		}
		return utils.InternalError(c, "Failed to delete alert")
	}
	return utils.Success(c, fiber.Map{"message": "Alert deleted"})
}
