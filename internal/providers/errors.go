package providers

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

var (
	// ErrNoKeys means the credential pool for a provider is empty.
	ErrNoKeys = errors.New("no provider API keys configured")

	// ErrPollTimeout means a provider-side job did not finish within the
	// bounded attempt count.
	ErrPollTimeout = errors.New("provider job polling timed out")
)

// ProviderError is a non-2xx response from an AI vendor.
type ProviderError struct {
	StatusCode int
	Body       string
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("provider returned %d: %s", e.StatusCode, e.Body)
}

// RetryableStatus reports whether err is a provider response worth retrying
// with the next credential: rate limits and key-level auth failures.
func RetryableStatus(err error) bool {
	var pe *ProviderError
	if !errors.As(err, &pe) {
		return false
	}
	switch pe.StatusCode {
	case http.StatusTooManyRequests, http.StatusUnauthorized, http.StatusForbidden:
		return true
	}
	return false
}

// Attempt records one failed try against one credential.
type Attempt struct {
	Key string
	Err error
}

// ExhaustedError aggregates the failures after every credential in the pool
// has been tried.
type ExhaustedError struct {
	Attempts []Attempt
}

func (e *ExhaustedError) Error() string {
	parts := make([]string, 0, len(e.Attempts))
	for _, a := range e.Attempts {
		parts = append(parts, fmt.Sprintf("key %s: %v", a.Key, a.Err))
	}
	return fmt.Sprintf("all %d provider keys failed: %s", len(e.Attempts), strings.Join(parts, "; "))
}

func (e *ExhaustedError) Unwrap() error {
	if len(e.Attempts) == 0 {
		return nil
	}
	return e.Attempts[len(e.Attempts)-1].Err
}

// maskKey keeps only the tail of a credential for log and error output.
func maskKey(key string) string {
	if len(key) <= 4 {
		return "****"
	}
	return "****" + key[len(key)-4:]
}
