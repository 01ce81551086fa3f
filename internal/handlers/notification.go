package handlers

import (
	"khazina/internal/services/notification"
	"khazina/internal/utils"

	"github.com/gofiber/fiber/v2"
)

type NotificationHandler struct {
	notificationService notification.Service
}

func NewNotificationHandler(notificationService notification.Service) *NotificationHandler {
	return &NotificationHandler{notificationService: notificationService}
}

func (h *NotificationHandler) List(c *fiber.Ctx) error {
	claims, err := extractUserClaims(c)
	if err != nil {
		return utils.Unauthorized(c, "invalid claims")
	}

	notifications, unread, err := h.notificationService.List(c.Context(), claims.UserID)
	if err != nil {
		return utils.InternalError(c, "Failed to load notifications")
	}
	return utils.Success(c, fiber.Map{
		"notifications": notifications,
		"unread_count":  unread,
	})
}

func (h *NotificationHandler) MarkRead(c *fiber.Ctx) error {
	claims, err := extractUserClaims(c)
	if err != nil {
		return utils.Unauthorized(c, "invalid claims")
	}

	if err := h.notificationService.MarkRead(c.Context(), c.Params("id"), claims.UserID); err != nil {
		return utils.InternalError(c, "Failed to mark notification read")
	}
	return utils.Success(c, fiber.Map{"message": "Notification marked read"})
}

func (h *NotificationHandler) MarkAllRead(c *fiber.Ctx) error {
	claims, err := extractUserClaims(c)
	if err != nil {
		return utils.Unauthorized(c, "invalid claims")
	}

	if err := h.notificationService.MarkAllRead(c.Context(), claims.UserID); err != nil {
		return utils.InternalError(c, "Failed to mark notifications read")
	}
	return utils.Success(c, fiber.Map{"message": "All notifications marked read"})
}
