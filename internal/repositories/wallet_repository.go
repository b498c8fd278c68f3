package repositories

import (
	"context"

	"aikit/internal/models"
)

// WalletRepository defines persistence operations for wallet balances.
// Balance mutations are single-statement server-side updates so concurrent
// charges and approvals cannot lose updates.
type WalletRepository interface {
	GetByUserID(ctx context.Context, userID uint) (*models.Wallet, error)

	// AddBalance credits the wallet, creating the row if it does not exist.
	AddBalance(ctx context.Context, userID uint, amount float64) error

	// Deduct debits the wallet only when the balance covers the amount.
	// Returns ErrInsufficientBalance otherwise (including when no row exists).
	Deduct(ctx context.Context, userID uint, amount float64) error
}
