package handlers

import (
	"aikit/internal/repositories"
	"aikit/internal/services/ledger"
	"aikit/internal/utils"

	"github.com/gofiber/fiber/v2"
)

type CreditsHandler struct {
	ledgerService ledger.Service
	packages      repositories.PackageRepository
}

func NewCreditsHandler(ledgerService ledger.Service, packages repositories.PackageRepository) *CreditsHandler {
	return &CreditsHandler{
		ledgerService: ledgerService,
		packages:      packages,
	}
}

// Summary returns the authenticated user's credit summary: free quota,
// wallet balance, usage this month and plan classification.
func (h *CreditsHandler) Summary(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	summary, err := h.ledgerService.GetSummary(c.UserContext(), userID)
	if err != nil {
		return utils.InternalError(c, "failed to load credit summary")
	}
	return utils.Success(c, summary)
}

// Packages lists the purchasable credit packages.
func (h *CreditsHandler) Packages(c *fiber.Ctx) error {
	packages, err := h.packages.ListActive(c.UserContext())
	if err != nil {
		return utils.InternalError(c, "failed to load packages")
	}
	return utils.Success(c, fiber.Map{"packages": packages})
}
