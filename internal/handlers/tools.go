package handlers

import (
	"errors"

	"aikit/internal/providers"
	"aikit/internal/services/ledger"
	"aikit/internal/services/tools"
	"aikit/internal/utils"

	"github.com/gofiber/fiber/v2"
)

type ToolsHandler struct {
	toolsService tools.Service
}

func NewToolsHandler(toolsService tools.Service) *ToolsHandler {
	return &ToolsHandler{toolsService: toolsService}
}

// Summarize condenses user-provided text.
func (h *ToolsHandler) Summarize(c *fiber.Ctx) error {
	var input struct {
		Text string `json:"text"`
	}
	if err := c.BodyParser(&input); err != nil || input.Text == "" {
		return utils.BadRequest(c, "text is required")
	}

	result, err := h.toolsService.Summarize(c.UserContext(), c.Locals("userID").(uint), input.Text)
	if err != nil {
		return h.toolError(c, err)
	}
	return utils.Success(c, result)
}

// RedesignPrompt rewrites a user prompt into a stronger one.
func (h *ToolsHandler) RedesignPrompt(c *fiber.Ctx) error {
	var input struct {
		Prompt string `json:"prompt"`
	}
	if err := c.BodyParser(&input); err != nil || input.Prompt == "" {
		return utils.BadRequest(c, "prompt is required")
	}

	result, err := h.toolsService.RedesignPrompt(c.UserContext(), c.Locals("userID").(uint), input.Prompt)
	if err != nil {
		return h.toolError(c, err)
	}
	return utils.Success(c, result)
}

// TranscribeYouTube transcribes a YouTube video and returns the text.
func (h *ToolsHandler) TranscribeYouTube(c *fiber.Ctx) error {
	var input struct {
		VideoURL string `json:"video_url"`
	}
	if err := c.BodyParser(&input); err != nil || input.VideoURL == "" {
		return utils.BadRequest(c, "video_url is required")
	}

	result, err := h.toolsService.TranscribeYouTube(c.UserContext(), c.Locals("userID").(uint), input.VideoURL)
	if err != nil {
		return h.toolError(c, err)
	}
	return utils.Success(c, result)
}

// ImageToVideoStatus reads the state of a provider-side video job. Status
// reads are not charged.
func (h *ToolsHandler) ImageToVideoStatus(c *fiber.Ctx) error {
	jobID := c.Params("jobID")
	if jobID == "" {
		return utils.BadRequest(c, "job id is required")
	}

	status, err := h.toolsService.ImageToVideoStatus(c.UserContext(), jobID)
	if err != nil {
		return h.toolError(c, err)
	}
	return utils.Success(c, status)
}

// toolError maps tool pipeline failures to HTTP responses.
func (h *ToolsHandler) toolError(c *fiber.Ctx, err error) error {
	if ice, ok := ledger.IsInsufficientCredits(err); ok {
		return utils.PaymentRequired(c, fiber.Map{
			"error":     "insufficient credits",
			"required":  ice.Required,
			"remaining": ice.Remaining,
		})
	}

	var exhausted *providers.ExhaustedError
	if errors.As(err, &exhausted) {
		return utils.Respond(c, fiber.StatusBadGateway, fiber.Map{
			"error":    "all provider keys failed",
			"attempts": len(exhausted.Attempts),
		})
	}
	if errors.Is(err, providers.ErrNoKeys) {
		return utils.Error(c, fiber.StatusServiceUnavailable, "tool is not configured")
	}
	if errors.Is(err, providers.ErrPollTimeout) {
		return utils.Error(c, fiber.StatusGatewayTimeout, "provider did not finish in time")
	}

	var provErr *providers.ProviderError
	if errors.As(err, &provErr) {
		return utils.Error(c, fiber.StatusBadGateway, "provider request failed")
	}

	return utils.InternalError(c, "tool execution failed")
}
