package ledger

// Plan classifications derived from lifetime purchase history.
const (
	PlanFree     = "free"
	PlanStandard = "standard"
	PlanPro      = "pro"
)

// Default configuration values
const (
	DefaultMonthlyQuota        = 100
	DefaultCost                = 1
	DefaultEntryPackCode       = "starter"
	DefaultProUSDThreshold     = 10.0
	DefaultProCreditsThreshold = 6000
	DefaultUsageScanLimit      = 5000
)

// Cache keys
const (
	SummaryCachePrefix = "ledger:summary:"
)
