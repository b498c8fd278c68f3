package handlers

import (
	"errors"
	"strconv"

	"aikit/internal/models"
	"aikit/internal/repositories"
	"aikit/internal/services/prompt"
	"aikit/internal/utils"

	"github.com/gofiber/fiber/v2"
)

type PromptsHandler struct {
	promptService prompt.Service
}

func NewPromptsHandler(promptService prompt.Service) *PromptsHandler {
	return &PromptsHandler{promptService: promptService}
}

// List returns prompt templates. Admins see inactive templates too.
func (h *PromptsHandler) List(c *fiber.Ctx) error {
	includeInactive := c.QueryBool("include_inactive", false)

	items, err := h.promptService.List(c.UserContext(), includeInactive)
	if err != nil {
		return utils.InternalError(c, "failed to load prompt templates")
	}
	return utils.Success(c, fiber.Map{"templates": items})
}

// Create registers a new prompt template.
func (h *PromptsHandler) Create(c *fiber.Ctx) error {
	var input prompt.CreateInput
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "invalid request body")
	}

	claims := c.Locals("claims").(*models.UserClaims)
	created, err := h.promptService.Create(c.UserContext(), claims.UserID, input)
	if err != nil {
		if errors.Is(err, prompt.ErrInvalidTemplate) {
			return utils.BadRequest(c, err.Error())
		}
		return utils.InternalError(c, "failed to create prompt template")
	}
	return utils.Created(c, fiber.Map{"template": created})
}

// Update edits an existing prompt template.
func (h *PromptsHandler) Update(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return utils.BadRequest(c, "invalid template id")
	}

	var input prompt.UpdateInput
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "invalid request body")
	}

	claims := c.Locals("claims").(*models.UserClaims)
	updated, err := h.promptService.Update(c.UserContext(), claims.UserID, uint(id), input)
	if err != nil {
		if errors.Is(err, repositories.ErrPromptNotFound) {
			return utils.NotFound(c, "prompt template not found")
		}
		return utils.InternalError(c, "failed to update prompt template")
	}
	return utils.Success(c, fiber.Map{"template": updated})
}
