package ledger

import "context"

// LedgerConfig holds the accounting configuration. Zero values fall back to
// the package defaults at construction time.
type LedgerConfig struct {
	// MonthlyQuota is the free credit allotment implied for any month with no
	// materialized row. Shared by the summary and admin user-detail paths.
	MonthlyQuota int

	// ToolCosts maps tool name to credit cost; unknown tools cost
	// DefaultToolCost.
	ToolCosts       map[string]int
	DefaultToolCost int

	// EntryPackCode marks the package whose purchase alone classifies a user
	// as pro.
	EntryPackCode string

	// Lifetime purchase thresholds for the pro plan.
	ProUSDThreshold     float64
	ProCreditsThreshold int

	// UsageScanLimit bounds the month usage-event scan.
	UsageScanLimit int
}

// Summary is the read-only view of a user's standing.
type Summary struct {
	Month            string  `json:"month"`
	MonthlyQuota     int     `json:"monthly_quota"`
	FreeUsed         int     `json:"free_used"`
	FreeRemaining    int     `json:"free_remaining"`
	WalletBalance    float64 `json:"wallet_balance"`
	PaidUsedMonth    int     `json:"paid_used_month"`
	TotalUsedMonth   int     `json:"total_used_month"`
	TotalAvailable   float64 `json:"total_available"`
	Plan             string  `json:"plan"`
	LifetimeUsed     int64   `json:"lifetime_used"`
	PurchasedCredits int     `json:"purchased_credits"`
	PurchasedUSD     float64 `json:"purchased_usd"`
}

// Authorization is the result of a successful CheckCredits call. It carries
// the resolved cost; no ledger row has been mutated yet.
type Authorization struct {
	Tool           string  `json:"tool"`
	Cost           int     `json:"cost"`
	FreeRemaining  int     `json:"free_remaining"`
	WalletBalance  float64 `json:"wallet_balance"`
	TotalAvailable float64 `json:"total_available"`
}

// CacheOperator is the subset of the cache service the ledger needs.
type CacheOperator interface {
	Get(ctx context.Context, key string, dest interface{}) (bool, error)
	Set(ctx context.Context, key string, value interface{}) error
	Delete(ctx context.Context, keys ...string) error
}
