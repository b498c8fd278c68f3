// Package tools gates AI tool invocations behind the credit ledger.
//
// Every endpoint follows the same three-phase contract: authorize via
// CheckCredits (no provider call on failure), invoke the provider through
// its rotating key pool, then record the outcome via LogUsageAndCharge —
// always, regardless of provider success.
package tools

import (
	"context"
	"errors"
	"log"
	"strings"

	"aikit/internal/models"
	"aikit/internal/providers"
	"aikit/internal/repositories"
	"aikit/internal/services/ledger"
)

type Service interface {
	Summarize(ctx context.Context, userID uint, text string) (*Result, error)
	RedesignPrompt(ctx context.Context, userID uint, prompt string) (*Result, error)
	TranscribeYouTube(ctx context.Context, userID uint, videoURL string) (*Result, error)
	ImageToVideoStatus(ctx context.Context, jobID string) (*providers.JobStatus, error)
}

type service struct {
	ledger      ledger.Service
	prompts     repositories.PromptRepository
	text        TextGenerator
	transcriber Transcriber
	video       VideoJobs
}

func NewService(
	ledgerSvc ledger.Service,
	prompts repositories.PromptRepository,
	text TextGenerator,
	transcriber Transcriber,
	video VideoJobs,
) Service {
	if ledgerSvc == nil {
		panic("ledger service is required")
	}
	return &service{
		ledger:      ledgerSvc,
		prompts:     prompts,
		text:        text,
		transcriber: transcriber,
		video:       video,
	}
}

const (
	fallbackSummarize = "Summarize the following content. Be concise and keep the key facts."
	fallbackRedesign  = "Rewrite the following prompt to be clearer, more specific, and better structured for a large language model."
)

func (s *service) Summarize(ctx context.Context, userID uint, text string) (*Result, error) {
	return s.runTextTool(ctx, userID, ToolSummarize, fallbackSummarize, text)
}

func (s *service) RedesignPrompt(ctx context.Context, userID uint, prompt string) (*Result, error) {
	return s.runTextTool(ctx, userID, ToolRedesignPrompt, fallbackRedesign, prompt)
}

func (s *service) runTextTool(ctx context.Context, userID uint, tool, fallback, input string) (*Result, error) {
	auth, err := s.ledger.CheckCredits(ctx, userID, tool)
	if err != nil {
		return nil, err
	}

	out, attempts, provErr := s.text.Generate(ctx, s.buildPrompt(ctx, tool, fallback, input))
	s.record(ctx, userID, tool, "", provErr, auth.Cost, attempts)
	if provErr != nil {
		return nil, provErr
	}

	return &Result{
		Tool:           tool,
		Output:         out,
		CreditsCharged: auth.Cost,
		Attempts:       attempts,
	}, nil
}

func (s *service) TranscribeYouTube(ctx context.Context, userID uint, videoURL string) (*Result, error) {
	auth, err := s.ledger.CheckCredits(ctx, userID, ToolTranscribeYouTube)
	if err != nil {
		return nil, err
	}

	transcript, attempts, provErr := s.transcriber.TranscribeYouTube(ctx, videoURL)
	s.record(ctx, userID, ToolTranscribeYouTube, videoURL, provErr, auth.Cost, attempts)
	if provErr != nil {
		return nil, provErr
	}

	return &Result{
		Tool:           ToolTranscribeYouTube,
		Output:         transcript.Text,
		CreditsCharged: auth.Cost,
		Attempts:       attempts,
	}, nil
}

// ImageToVideoStatus is a read of an existing provider job; it is not a new
// invocation and is not charged.
func (s *service) ImageToVideoStatus(ctx context.Context, jobID string) (*providers.JobStatus, error) {
	status, _, err := s.video.JobStatus(ctx, jobID)
	return status, err
}

// buildPrompt prefers the operator-managed template for the tool, falling
// back to the built-in instruction.
func (s *service) buildPrompt(ctx context.Context, slug, fallback, input string) string {
	instruction := fallback
	if s.prompts != nil {
		if tpl, err := s.prompts.GetBySlug(ctx, slug); err == nil && tpl.Active {
			instruction = tpl.Body
		}
	}
	var sb strings.Builder
	sb.WriteString(instruction)
	sb.WriteString("\n\n")
	sb.WriteString(input)
	return sb.String()
}

// record writes the usage event for an invocation outcome. Charge failures
// after a recorded event are reconciled later; they never fail the request.
func (s *service) record(ctx context.Context, userID uint, tool, action string, provErr error, cost, attempts int) {
	status := models.UsageStatusSuccess
	credits := cost
	meta := models.JSON{"attempts": attempts}
	if provErr != nil {
		status = models.UsageStatusError
		credits = 0
		meta["error"] = provErr.Error()
	}

	if _, err := s.ledger.LogUsageAndCharge(ctx, userID, tool, action, status, credits, meta); err != nil {
		if errors.Is(err, ledger.ErrChargeIncomplete) {
			log.Printf("charge incomplete for user %d tool %s: %v", userID, tool, err)
			return
		}
		log.Printf("failed to record usage for user %d tool %s: %v", userID, tool, err)
	}
}
