package topup

import "errors"

// Service errors
var (
	ErrInvalidTxHash   = errors.New("transaction hash is too short to be plausible")
	ErrInvalidNetwork  = errors.New("wallet network is required")
	ErrInvalidAction   = errors.New("action must be approve or reject")
	ErrPackageInactive = errors.New("credit package is not available")
)
