package tools

import (
	"context"

	"aikit/internal/providers"
)

// Tool names as they appear in the cost table and the usage ledger.
const (
	ToolSummarize         = "summarize"
	ToolRedesignPrompt    = "redesign-prompt"
	ToolTranscribeYouTube = "transcribe-youtube"
	ToolImageToVideo      = "image-to-video"
)

// TextGenerator produces text for a prompt, reporting attempts made across
// the provider key pool.
type TextGenerator interface {
	Generate(ctx context.Context, prompt string) (string, int, error)
}

// Transcriber runs a provider-side transcription job to completion.
type Transcriber interface {
	TranscribeYouTube(ctx context.Context, videoURL string) (*providers.Transcript, int, error)
}

// VideoJobs reads image-to-video job status from the provider.
type VideoJobs interface {
	JobStatus(ctx context.Context, jobID string) (*providers.JobStatus, int, error)
}

// Result is the outcome of one successful tool invocation.
type Result struct {
	Tool           string `json:"tool"`
	Output         string `json:"output"`
	CreditsCharged int    `json:"credits_charged"`
	Attempts       int    `json:"attempts"`
}
