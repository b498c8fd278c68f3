package ledger

import (
	"errors"
	"fmt"
)

// Service errors
var (
	// ErrChargeIncomplete reports that the usage event was recorded but the
	// quota/wallet deduction did not fully apply. Callers treat this as a
	// reconcile-later condition, not a request failure.
	ErrChargeIncomplete = errors.New("usage recorded but charge incomplete")
)

// InsufficientCreditsError signals that a tool costs more than the user's
// current spending power.
type InsufficientCreditsError struct {
	Required  int
	Remaining float64
}

func (e *InsufficientCreditsError) Error() string {
	return fmt.Sprintf("insufficient credits: need %d, have %.2f", e.Required, e.Remaining)
}

// IsInsufficientCredits reports whether err is an InsufficientCreditsError
// and returns it when so.
func IsInsufficientCredits(err error) (*InsufficientCreditsError, bool) {
	var ice *InsufficientCreditsError
	if errors.As(err, &ice) {
		return ice, true
	}
	return nil, false
}
