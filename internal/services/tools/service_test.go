package tools

import (
	"context"
	"testing"

	"aikit/internal/models"
	"aikit/internal/providers"
	"aikit/internal/services/ledger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type MockLedger struct {
	mock.Mock
}

func (m *MockLedger) GetSummary(ctx context.Context, userID uint) (*ledger.Summary, error) {
	args := m.Called(ctx, userID)
	if s := args.Get(0); s != nil {
		return s.(*ledger.Summary), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockLedger) CheckCredits(ctx context.Context, userID uint, tool string) (*ledger.Authorization, error) {
	args := m.Called(ctx, userID, tool)
	if a := args.Get(0); a != nil {
		return a.(*ledger.Authorization), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockLedger) LogUsageAndCharge(ctx context.Context, userID uint, tool, action, status string, credits int, meta models.JSON) (*models.UsageEvent, error) {
	args := m.Called(ctx, userID, tool, action, status, credits, meta)
	if ev := args.Get(0); ev != nil {
		return ev.(*models.UsageEvent), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockLedger) ToolCost(tool string) int {
	args := m.Called(tool)
	return args.Int(0)
}

func (m *MockLedger) MonthlyQuota() int {
	args := m.Called()
	return args.Int(0)
}

type MockText struct {
	mock.Mock
}

func (m *MockText) Generate(ctx context.Context, prompt string) (string, int, error) {
	args := m.Called(ctx, prompt)
	return args.String(0), args.Int(1), args.Error(2)
}

type MockTranscriber struct {
	mock.Mock
}

func (m *MockTranscriber) TranscribeYouTube(ctx context.Context, videoURL string) (*providers.Transcript, int, error) {
	args := m.Called(ctx, videoURL)
	if tr := args.Get(0); tr != nil {
		return tr.(*providers.Transcript), args.Int(1), args.Error(2)
	}
	return nil, args.Int(1), args.Error(2)
}

type MockVideo struct {
	mock.Mock
}

func (m *MockVideo) JobStatus(ctx context.Context, jobID string) (*providers.JobStatus, int, error) {
	args := m.Called(ctx, jobID)
	if s := args.Get(0); s != nil {
		return s.(*providers.JobStatus), args.Int(1), args.Error(2)
	}
	return nil, args.Int(1), args.Error(2)
}

func TestSummarize(t *testing.T) {
	t.Run("charges on success", func(t *testing.T) {
		ledgerSvc := new(MockLedger)
		text := new(MockText)
		svc := NewService(ledgerSvc, nil, text, new(MockTranscriber), new(MockVideo))

		ledgerSvc.On("CheckCredits", mock.Anything, uint(1), ToolSummarize).
			Return(&ledger.Authorization{Tool: ToolSummarize, Cost: 3}, nil)
		text.On("Generate", mock.Anything, mock.Anything).Return("a short summary", 1, nil)
		ledgerSvc.On("LogUsageAndCharge", mock.Anything, uint(1), ToolSummarize, "", models.UsageStatusSuccess, 3, mock.Anything).
			Return(&models.UsageEvent{Credits: 3}, nil)

		result, err := svc.Summarize(context.Background(), 1, "long input text")
		assert.NoError(t, err)
		assert.Equal(t, "a short summary", result.Output)
		assert.Equal(t, 3, result.CreditsCharged)
		assert.Equal(t, 1, result.Attempts)
		ledgerSvc.AssertExpectations(t)
	})

	t.Run("insufficient credits short-circuits before the provider", func(t *testing.T) {
		ledgerSvc := new(MockLedger)
		text := new(MockText)
		svc := NewService(ledgerSvc, nil, text, new(MockTranscriber), new(MockVideo))

		ledgerSvc.On("CheckCredits", mock.Anything, uint(1), ToolSummarize).
			Return(nil, &ledger.InsufficientCreditsError{Required: 3, Remaining: 1})

		_, err := svc.Summarize(context.Background(), 1, "long input text")
		_, ok := ledger.IsInsufficientCredits(err)
		assert.True(t, ok)
		text.AssertNotCalled(t, "Generate", mock.Anything, mock.Anything)
	})

	t.Run("provider failure records a zero-credit error event", func(t *testing.T) {
		ledgerSvc := new(MockLedger)
		text := new(MockText)
		svc := NewService(ledgerSvc, nil, text, new(MockTranscriber), new(MockVideo))

		provErr := &providers.ProviderError{StatusCode: 500, Body: "boom"}
		ledgerSvc.On("CheckCredits", mock.Anything, uint(1), ToolSummarize).
			Return(&ledger.Authorization{Tool: ToolSummarize, Cost: 3}, nil)
		text.On("Generate", mock.Anything, mock.Anything).Return("", 1, provErr)
		ledgerSvc.On("LogUsageAndCharge", mock.Anything, uint(1), ToolSummarize, "", models.UsageStatusError, 0, mock.Anything).
			Return(&models.UsageEvent{}, nil)

		_, err := svc.Summarize(context.Background(), 1, "long input text")
		assert.ErrorIs(t, err, provErr)
		ledgerSvc.AssertExpectations(t)
	})
}

func TestTranscribeYouTube(t *testing.T) {
	ledgerSvc := new(MockLedger)
	transcriber := new(MockTranscriber)
	svc := NewService(ledgerSvc, nil, new(MockText), transcriber, new(MockVideo))

	url := "https://youtu.be/dQw4w9WgXcQ"
	ledgerSvc.On("CheckCredits", mock.Anything, uint(2), ToolTranscribeYouTube).
		Return(&ledger.Authorization{Tool: ToolTranscribeYouTube, Cost: 25}, nil)
	transcriber.On("TranscribeYouTube", mock.Anything, url).
		Return(&providers.Transcript{Text: "never gonna give you up"}, 2, nil)
	ledgerSvc.On("LogUsageAndCharge", mock.Anything, uint(2), ToolTranscribeYouTube, url, models.UsageStatusSuccess, 25, mock.Anything).
		Return(&models.UsageEvent{Credits: 25}, nil)

	result, err := svc.TranscribeYouTube(context.Background(), 2, url)
	assert.NoError(t, err)
	assert.Equal(t, "never gonna give you up", result.Output)
	assert.Equal(t, 25, result.CreditsCharged)
	assert.Equal(t, 2, result.Attempts)
}

func TestImageToVideoStatus_NotCharged(t *testing.T) {
	ledgerSvc := new(MockLedger)
	video := new(MockVideo)
	svc := NewService(ledgerSvc, nil, new(MockText), new(MockTranscriber), video)

	video.On("JobStatus", mock.Anything, "job-42").
		Return(&providers.JobStatus{JobID: "job-42", Status: "processing"}, 1, nil)

	status, err := svc.ImageToVideoStatus(context.Background(), "job-42")
	assert.NoError(t, err)
	assert.Equal(t, "processing", status.Status)
	ledgerSvc.AssertNotCalled(t, "CheckCredits", mock.Anything, mock.Anything, mock.Anything)
	ledgerSvc.AssertNotCalled(t, "LogUsageAndCharge",
		mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}
