package validation

import (
	"errors"
	"strings"
)

// MinTxHashLength is the minimum plausible length for a payment transaction
// hash. Anything shorter is rejected before a row is created.
const MinTxHashLength = 16

// TxHash checks that a submitted transaction hash is plausibly real.
func TxHash(hash string) error {
	if len(strings.TrimSpace(hash)) < MinTxHashLength {
		return errors.New("transaction hash too short")
	}
	return nil
}
