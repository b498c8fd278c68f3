package handlers

import (
	"errors"

	"aikit/internal/repositories"
	"aikit/internal/services/topup"
	"aikit/internal/utils"

	"github.com/gofiber/fiber/v2"
)

type TopupHandler struct {
	topupService topup.Service
}

func NewTopupHandler(topupService topup.Service) *TopupHandler {
	return &TopupHandler{topupService: topupService}
}

// Submit records a manual payment claim for admin review.
func (h *TopupHandler) Submit(c *fiber.Ctx) error {
	var input topup.SubmitInput
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "invalid request body")
	}

	userID := c.Locals("userID").(uint)
	created, err := h.topupService.Submit(c.UserContext(), userID, input)
	if err != nil {
		switch {
		case errors.Is(err, repositories.ErrPackageNotFound):
			return utils.NotFound(c, "credit package not found")
		case errors.Is(err, topup.ErrInvalidTxHash),
			errors.Is(err, topup.ErrInvalidNetwork),
			errors.Is(err, topup.ErrPackageInactive):
			return utils.BadRequest(c, err.Error())
		}
		return utils.InternalError(c, "failed to submit top-up")
	}

	return utils.Created(c, fiber.Map{"topup": created})
}

// ListMine returns the caller's top-up history and wallet balance.
func (h *TopupHandler) ListMine(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	result, err := h.topupService.ListMine(c.UserContext(), userID)
	if err != nil {
		return utils.InternalError(c, "failed to load top-ups")
	}
	return utils.Success(c, result)
}
