package providers

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"
)

// JobStatus is a provider-side image-to-video job snapshot.
type JobStatus struct {
	JobID    string  `json:"job_id"`
	Status   string  `json:"status"`
	Progress float64 `json:"progress"`
	VideoURL string  `json:"video_url,omitempty"`
}

// FramesConfig configures the image-to-video provider client.
type FramesConfig struct {
	BaseURL string
	Keys    []string
}

// FramesClient reads image-to-video job status from the provider.
type FramesClient struct {
	pool    *KeyPool
	baseURL string
	http    *http.Client
}

func NewFramesClient(cfg FramesConfig) *FramesClient {
	return &FramesClient{
		pool:    NewKeyPool(cfg.Keys),
		baseURL: cfg.BaseURL,
		http:    &http.Client{Timeout: 15 * time.Second},
	}
}

// JobStatus fetches the current state of one job; retryable vendor failures
// rotate to the next key.
func (c *FramesClient) JobStatus(ctx context.Context, jobID string) (*JobStatus, int, error) {
	if c.baseURL == "" {
		return nil, 0, errors.New("image-to-video provider URL not configured")
	}

	var result *JobStatus
	attempts, err := c.pool.Do(ctx, func(ctx context.Context, key string) error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/v1/jobs/"+jobID, nil)
		if err != nil {
			return err
		}
		req.Header.Set("Authorization", "Bearer "+key)

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

		var status JobStatus
		if err := json.Unmarshal(body, &status); err != nil {
			return err
		}
		if status.JobID == "" {
			status.JobID = jobID
		}
		result = &status
		return nil
	}, RetryableStatus)
	return result, attempts, err
}
