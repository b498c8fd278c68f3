package topup

import (
	"context"

	"aikit/internal/models"
)

// Decision actions
const (
	ActionApprove = "approve"
	ActionReject  = "reject"
)

// SubmitInput is a user-submitted manual payment claim.
type SubmitInput struct {
	PackageID     uint    `json:"package_id"`
	WalletNetwork string  `json:"wallet_network"`
	TxHash        string  `json:"tx_hash"`
	FromAddress   string  `json:"from_address"`
	Amount        float64 `json:"amount"`
}

// UserTopups pairs a user's top-up history with their current wallet balance.
type UserTopups struct {
	Topups        []models.CreditTopup `json:"topups"`
	WalletBalance float64              `json:"wallet_balance"`
}

// Cache is the subset of the cache service the workflow needs: summary
// invalidation after an approval changes a user's spending power.
type Cache interface {
	Delete(ctx context.Context, keys ...string) error
}
