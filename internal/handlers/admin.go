package handlers

import (
	"errors"
	"strconv"

	"aikit/internal/models"
	"aikit/internal/repositories"
	"aikit/internal/services/ledger"
	"aikit/internal/services/notification"
	"aikit/internal/services/topup"
	"aikit/internal/utils"
	"aikit/internal/utils/pagination"

	"github.com/gofiber/fiber/v2"
)

type AdminHandler struct {
	topupService        topup.Service
	notificationService notification.Service
	ledgerService       ledger.Service
	users               repositories.UserRepository
	ledgerRepo          repositories.LedgerRepository
}

func NewAdminHandler(
	topupService topup.Service,
	notificationService notification.Service,
	ledgerService ledger.Service,
	users repositories.UserRepository,
	ledgerRepo repositories.LedgerRepository,
) *AdminHandler {
	return &AdminHandler{
		topupService:        topupService,
		notificationService: notificationService,
		ledgerService:       ledgerService,
		users:               users,
		ledgerRepo:          ledgerRepo,
	}
}

// Me confirms admin access and echoes the caller's identity. The front
// office uses it to decide whether to show back-office navigation.
func (h *AdminHandler) Me(c *fiber.Ctx) error {
	claims := c.Locals("claims").(*models.UserClaims)
	return utils.Success(c, fiber.Map{
		"id":    claims.UserID,
		"email": claims.Email,
		"admin": true,
	})
}

// ListTopups returns top-ups filtered by status, paginated.
func (h *AdminHandler) ListTopups(c *fiber.Ctx) error {
	status := c.Query("status", models.TopupStatusPending)
	params := pagination.ParseFromRequest(c)

	topups, total, err := h.topupService.List(c.UserContext(), status, params.Limit, params.Offset())
	if err != nil {
		return utils.InternalError(c, "failed to load top-ups")
	}
	return utils.Success(c, pagination.NewResponse(topups, params, total))
}

// DecideTopup approves or rejects a pending top-up.
func (h *AdminHandler) DecideTopup(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return utils.BadRequest(c, "invalid top-up id")
	}

	var input struct {
		Action string `json:"action"`
		Note   string `json:"note"`
	}
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "invalid request body")
	}

	claims := c.Locals("claims").(*models.UserClaims)
	decided, err := h.topupService.Decide(c.UserContext(), claims.UserID, uint(id), input.Action, input.Note)
	if err != nil {
		switch {
		case errors.Is(err, topup.ErrInvalidAction):
			return utils.BadRequest(c, err.Error())
		case errors.Is(err, repositories.ErrTopupNotFound):
			return utils.NotFound(c, "top-up not found")
		case errors.Is(err, repositories.ErrTopupNotPending):
			return utils.Conflict(c, "top-up has already been decided")
		}
		return utils.InternalError(c, "failed to decide top-up")
	}
	return utils.Success(c, fiber.Map{"topup": decided})
}

// ListUsers returns the user directory, paginated.
func (h *AdminHandler) ListUsers(c *fiber.Ctx) error {
	params := pagination.ParseFromRequest(c)

	users, total, err := h.users.ListPaginated(c.UserContext(), params.Limit, params.Offset())
	if err != nil {
		return utils.InternalError(c, "failed to load users")
	}

	items := make([]fiber.Map, 0, len(users))
	for i := range users {
		items = append(items, adminUserPayload(&users[i]))
	}
	return utils.Success(c, pagination.NewResponse(items, params, total))
}

// UserDetail returns one user with their wallet, monthly quota state,
// top-up history and recent usage events.
func (h *AdminHandler) UserDetail(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return utils.BadRequest(c, "invalid user id")
	}
	ctx := c.UserContext()

	user, err := h.users.GetByID(ctx, uint(id))
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return utils.NotFound(c, "user not found")
		}
		return utils.InternalError(c, "failed to load user")
	}

	summary, err := h.ledgerService.GetSummary(ctx, user.ID)
	if err != nil {
		return utils.InternalError(c, "failed to load credit summary")
	}

	topups, err := h.ledgerRepo.ApprovedTopups(ctx, user.ID)
	if err != nil {
		return utils.InternalError(c, "failed to load top-ups")
	}

	events, err := h.ledgerRepo.RecentUsageEvents(ctx, user.ID, 50)
	if err != nil {
		return utils.InternalError(c, "failed to load usage events")
	}

	return utils.Success(c, fiber.Map{
		"user":            adminUserPayload(user),
		"credits":         summary,
		"approved_topups": topups,
		"recent_usage":    events,
	})
}

// Broadcast publishes a notification to every user, or to one target user.
func (h *AdminHandler) Broadcast(c *fiber.Ctx) error {
	var input notification.BroadcastInput
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "invalid request body")
	}

	claims := c.Locals("claims").(*models.UserClaims)
	created, err := h.notificationService.Broadcast(c.UserContext(), claims.UserID, input)
	if err != nil {
		switch {
		case errors.Is(err, notification.ErrEmptyMessage):
			return utils.BadRequest(c, err.Error())
		case errors.Is(err, repositories.ErrUserNotFound):
			return utils.NotFound(c, "target user not found")
		}
		return utils.InternalError(c, "failed to send notification")
	}
	return utils.Created(c, fiber.Map{"notification": created})
}

// ListBroadcasts returns previously sent notifications, paginated.
func (h *AdminHandler) ListBroadcasts(c *fiber.Ctx) error {
	params := pagination.ParseFromRequest(c)

	items, total, err := h.notificationService.ListBroadcasts(c.UserContext(), params.Limit, params.Offset())
	if err != nil {
		return utils.InternalError(c, "failed to load notifications")
	}
	return utils.Success(c, pagination.NewResponse(items, params, total))
}

// UpdateBroadcast edits the title or body of a sent notification.
func (h *AdminHandler) UpdateBroadcast(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return utils.BadRequest(c, "invalid notification id")
	}

	var input struct {
		Title string `json:"title"`
		Body  string `json:"body"`
	}
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "invalid request body")
	}

	updated, err := h.notificationService.UpdateBroadcast(c.UserContext(), uint(id), input.Title, input.Body)
	if err != nil {
		switch {
		case errors.Is(err, notification.ErrEmptyMessage):
			return utils.BadRequest(c, err.Error())
		case errors.Is(err, repositories.ErrNotificationNotFound):
			return utils.NotFound(c, "notification not found")
		}
		return utils.InternalError(c, "failed to update notification")
	}
	return utils.Success(c, fiber.Map{"notification": updated})
}

func adminUserPayload(user *models.User) fiber.Map {
	return fiber.Map{
		"id":            user.ID,
		"email":         user.Email,
		"name":          user.Name,
		"role":          user.Role,
		"status":        user.Status,
		"created_at":    user.CreatedAt,
		"last_login_at": user.LastLoginAt,
	}
}
