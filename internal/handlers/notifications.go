package handlers

import (
	"errors"
	"strconv"

	"aikit/internal/repositories"
	"aikit/internal/services/notification"
	"aikit/internal/utils"

	"github.com/gofiber/fiber/v2"
)

type NotificationsHandler struct {
	notificationService notification.Service
}

func NewNotificationsHandler(notificationService notification.Service) *NotificationsHandler {
	return &NotificationsHandler{notificationService: notificationService}
}

// Inbox returns the authenticated user's notifications, unread first.
func (h *NotificationsHandler) Inbox(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)
	limit, _ := strconv.Atoi(c.Query("limit", "20"))

	items, err := h.notificationService.Inbox(c.UserContext(), userID, limit)
	if err != nil {
		return utils.InternalError(c, "failed to load notifications")
	}
	return utils.Success(c, fiber.Map{"notifications": items})
}

// MarkRead marks one of the caller's notifications as read.
func (h *NotificationsHandler) MarkRead(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return utils.BadRequest(c, "invalid notification id")
	}

	userID := c.Locals("userID").(uint)
	if err := h.notificationService.MarkRead(c.UserContext(), userID, uint(id)); err != nil {
		if errors.Is(err, repositories.ErrNotificationNotFound) {
			return utils.NotFound(c, "notification not found")
		}
		return utils.InternalError(c, "failed to mark notification read")
	}
	return utils.Success(c, fiber.Map{"message": "marked read"})
}
