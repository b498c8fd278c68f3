package providers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

const (
	defaultPollInterval = 5 * time.Second
	defaultMaxPolls     = 60
)

// Transcript is a finished provider-side transcription job.
type Transcript struct {
	JobID string `json:"job_id"`
	Text  string `json:"text"`
}

// TranscribeConfig configures the transcription provider client.
type TranscribeConfig struct {
	BaseURL      string
	Keys         []string
	PollInterval time.Duration
	MaxPolls     int
}

// TranscribeClient submits YouTube transcription jobs and polls them to
// completion on a fixed interval with a bounded attempt count.
type TranscribeClient struct {
	pool         *KeyPool
	baseURL      string
	http         *http.Client
	pollInterval time.Duration
	maxPolls     int
}

func NewTranscribeClient(cfg TranscribeConfig) *TranscribeClient {
	if cfg.PollInterval <= 0 {
		cfg.PollInterval = defaultPollInterval
	}
	if cfg.MaxPolls <= 0 {
		cfg.MaxPolls = defaultMaxPolls
	}
	return &TranscribeClient{
		pool:         NewKeyPool(cfg.Keys),
		baseURL:      cfg.BaseURL,
		http:         &http.Client{Timeout: 30 * time.Second},
		pollInterval: cfg.PollInterval,
		maxPolls:     cfg.MaxPolls,
	}
}

// TranscribeYouTube runs the submit-then-poll flow. Submit failures with a
// retryable status rotate to the next key; poll timeouts do not.
func (c *TranscribeClient) TranscribeYouTube(ctx context.Context, videoURL string) (*Transcript, int, error) {
	if c.baseURL == "" {
		return nil, 0, errors.New("transcription provider URL not configured")
	}

	var result *Transcript
	attempts, err := c.pool.Do(ctx, func(ctx context.Context, key string) error {
		jobID, err := c.submit(ctx, key, videoURL)
		if err != nil {
			return err
		}
		transcript, err := c.poll(ctx, key, jobID)
		if err != nil {
			return err
		}
		result = transcript
		return nil
	}, RetryableStatus)
	return result, attempts, err
}

func (c *TranscribeClient) submit(ctx context.Context, key, videoURL string) (string, error) {
	payload, _ := json.Marshal(map[string]string{"source_url": videoURL})
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/transcripts", bytes.NewReader(payload))
	if err != nil {
		return "", err
	}
	req.Header.Set("Authorization", "Bearer "+key)
	req.Header.Set("Content-Type", "application/json")

	var out struct {
		ID string `json:"id"`
	}
	if err := c.doJSON(req, &out); err != nil {
		return "", err
	}
	if out.ID == "" {
		return "", errors.New("provider returned no job id")
	}
	return out.ID, nil
}

func (c *TranscribeClient) poll(ctx context.Context, key, jobID string) (*Transcript, error) {
	ticker := time.NewTicker(c.pollInterval)
	defer ticker.Stop()

	for i := 0; i < c.maxPolls; i++ {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/v1/transcripts/"+jobID, nil)
		if err != nil {
			return nil, err
		}
		req.Header.Set("Authorization", "Bearer "+key)

		var out struct {
			ID     string `json:"id"`
			Status string `json:"status"`
			Text   string `json:"text"`
			Error  string `json:"error"`
		}
		if err := c.doJSON(req, &out); err != nil {
			return nil, err
		}

		switch out.Status {
		case "completed":
			return &Transcript{JobID: jobID, Text: out.Text}, nil
		case "failed", "error":
			return nil, fmt.Errorf("transcription job failed: %s", out.Error)
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-ticker.C:
		}
	}
	return nil, ErrPollTimeout
}

func (c *TranscribeClient) doJSON(req *http.Request, dest interface{}) error {
	res, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer res.Body.Close()

	body, err := io.ReadAll(io.LimitReader(res.Body, 1<<20))
	if err != nil {
		return err
	}
	if res.StatusCode < 200 || res.StatusCode >= 300 {
		return &ProviderError{StatusCode: res.StatusCode, Body: string(body)}
	}
	return json.Unmarshal(body, dest)
}
