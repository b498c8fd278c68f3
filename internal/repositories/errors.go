package repositories

import "errors"

var (
	ErrUserNotFound         = errors.New("user not found")
	ErrWalletNotFound       = errors.New("wallet not found")
	ErrInsufficientBalance  = errors.New("insufficient wallet balance")
	ErrPackageNotFound      = errors.New("credit package not found")
	ErrTopupNotFound        = errors.New("top-up not found")
	ErrTopupNotPending      = errors.New("top-up is not pending")
	ErrNotificationNotFound = errors.New("notification not found")
	ErrPromptNotFound       = errors.New("prompt template not found")
)
