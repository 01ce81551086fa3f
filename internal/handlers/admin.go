package handlers

import (
	"khazina/internal/services/admin"
	"khazina/internal/utils"

	"github.com/gofiber/fiber/v2"
)

type AdminHandler struct {
	adminService admin.Service
}

func NewAdminHandler(adminService admin.Service) *AdminHandler {
	return &AdminHandler{adminService: adminService}
}

func (h *AdminHandler) Stats(c *fiber.Ctx) error {
	stats, err := h.adminService.Stats(c.Context())
	if err != nil {
		return utils.InternalError(c, "Failed to load stats")
	}
	return utils.Success(c, fiber.Map{"stats": stats})
}
