package ledger

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"aikit/internal/models"
	"aikit/internal/repositories"

	"github.com/google/uuid"
)

// Service is the credit ledger interface.
type Service interface {
	GetSummary(ctx context.Context, userID uint) (*Summary, error)
	CheckCredits(ctx context.Context, userID uint, tool string) (*Authorization, error)
	LogUsageAndCharge(ctx context.Context, userID uint, tool, action, status string, credits int, meta models.JSON) (*models.UsageEvent, error)
	ToolCost(tool string) int
	MonthlyQuota() int
}

type service struct {
	repo    repositories.LedgerRepository
	wallets repositories.WalletRepository
	cache   CacheOperator
	config  LedgerConfig
	metrics MetricsCollector
}

// NewService creates a new ledger service
func NewService(
	repo repositories.LedgerRepository,
	wallets repositories.WalletRepository,
	cache CacheOperator,
	config LedgerConfig,
	metrics MetricsCollector,
) Service {
	if repo == nil {
		panic("ledger repo is required")
	}
	if wallets == nil {
		panic("wallet repo is required")
	}

	if config.MonthlyQuota <= 0 {
		config.MonthlyQuota = DefaultMonthlyQuota
	}
	if config.DefaultToolCost <= 0 {
		config.DefaultToolCost = DefaultCost
	}
	if config.EntryPackCode == "" {
		config.EntryPackCode = DefaultEntryPackCode
	}
	if config.ProUSDThreshold <= 0 {
		config.ProUSDThreshold = DefaultProUSDThreshold
	}
	if config.ProCreditsThreshold <= 0 {
		config.ProCreditsThreshold = DefaultProCreditsThreshold
	}
	if config.UsageScanLimit <= 0 {
		config.UsageScanLimit = DefaultUsageScanLimit
	}

	// Metrics is optional, create no-op collector if nil
	if metrics == nil {
		metrics = &NoopMetricsCollector{}
	}

	return &service{
		repo:    repo,
		wallets: wallets,
		cache:   cache,
		config:  config,
		metrics: metrics,
	}
}

// SummaryCacheKey returns the cache key for a user's ledger summary.
func SummaryCacheKey(userID uint) string {
	return fmt.Sprintf("%s%d", SummaryCachePrefix, userID)
}

// MonthStart returns the first day of the month containing t, at 00:00 UTC.
func MonthStart(t time.Time) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), 1, 0, 0, 0, 0, time.UTC)
}

func (s *service) ToolCost(tool string) int {
	if cost, ok := s.config.ToolCosts[tool]; ok && cost > 0 {
		return cost
	}
	return s.config.DefaultToolCost
}

func (s *service) MonthlyQuota() int {
	return s.config.MonthlyQuota
}

// availability reads the two balances a charge draws from. A missing monthly
// row means the default quota with zero used; a missing wallet means zero.
func (s *service) availability(ctx context.Context, userID uint, monthStart time.Time) (quota, used int, balance float64, err error) {
	mc, err := s.repo.GetMonthlyCredit(ctx, userID, monthStart)
	if err != nil {
		return 0, 0, 0, err
	}
	quota = s.config.MonthlyQuota
	if mc != nil {
		quota = mc.MonthlyQuota
		used = mc.Used
	}

	wallet, err := s.wallets.GetByUserID(ctx, userID)
	if err != nil {
		if !errors.Is(err, repositories.ErrWalletNotFound) {
			return 0, 0, 0, err
		}
	} else if wallet.Balance > 0 {
		balance = wallet.Balance
	}
	return quota, used, balance, nil
}

func freeRemaining(quota, used int) int {
	if remaining := quota - used; remaining > 0 {
		return remaining
	}
	return 0
}

func (s *service) GetSummary(ctx context.Context, userID uint) (*Summary, error) {
	start := time.Now()
	defer func() { s.metrics.RecordOperationDuration("get_summary", time.Since(start)) }()

	key := SummaryCacheKey(userID)
	if s.cache != nil {
		var cached Summary
		if ok, err := s.cache.Get(ctx, key, &cached); err == nil && ok {
			s.metrics.RecordCacheHit(key)
			return &cached, nil
		}
		s.metrics.RecordCacheMiss(key)
	}

	monthStart := MonthStart(time.Now())
	quota, used, balance, err := s.availability(ctx, userID, monthStart)
	if err != nil {
		s.metrics.RecordError("get_summary", "availability")
		return nil, fmt.Errorf("failed to compute availability: %w", err)
	}
	remaining := freeRemaining(quota, used)

	events, err := s.repo.ListUsageEvents(ctx, userID, monthStart, s.config.UsageScanLimit)
	if err != nil {
		s.metrics.RecordError("get_summary", "usage_scan")
		return nil, fmt.Errorf("failed to scan usage events: %w", err)
	}
	totalUsedMonth := 0
	paidUsedMonth := 0
	for _, ev := range events {
		if ev.Credits > 0 {
			totalUsedMonth += ev.Credits
		}
		if charge := metaWalletCharge(ev.Meta); charge > 0 {
			paidUsedMonth += charge
		}
	}

	lifetime, err := s.repo.LifetimeUsedTotal(ctx, userID)
	if err != nil {
		s.metrics.RecordError("get_summary", "lifetime_total")
		return nil, fmt.Errorf("failed to aggregate lifetime usage: %w", err)
	}

	topups, err := s.repo.ApprovedTopups(ctx, userID)
	if err != nil {
		s.metrics.RecordError("get_summary", "topup_scan")
		return nil, fmt.Errorf("failed to scan approved top-ups: %w", err)
	}
	purchasedCredits := 0
	purchasedUSD := 0.0
	entryPack := false
	for _, t := range topups {
		if t.Package == nil {
			continue
		}
		purchasedCredits += t.Package.Credits
		purchasedUSD += t.Package.USDPrice
		if t.Package.Code == s.config.EntryPackCode {
			entryPack = true
		}
	}

	summary := &Summary{
		Month:            monthStart.Format("2006-01-02"),
		MonthlyQuota:     quota,
		FreeUsed:         used,
		FreeRemaining:    remaining,
		WalletBalance:    balance,
		PaidUsedMonth:    paidUsedMonth,
		TotalUsedMonth:   totalUsedMonth,
		TotalAvailable:   float64(remaining) + balance,
		Plan:             s.classifyPlan(len(topups), entryPack, purchasedUSD, purchasedCredits),
		LifetimeUsed:     lifetime,
		PurchasedCredits: purchasedCredits,
		PurchasedUSD:     purchasedUSD,
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, key, summary); err != nil {
			log.Printf("failed to cache ledger summary for user %d: %v", userID, err)
		}
	}
	return summary, nil
}

func (s *service) classifyPlan(approvedCount int, entryPack bool, usd float64, credits int) string {
	if approvedCount == 0 {
		return PlanFree
	}
	if entryPack || usd >= s.config.ProUSDThreshold || credits >= s.config.ProCreditsThreshold {
		return PlanPro
	}
	return PlanStandard
}

func (s *service) CheckCredits(ctx context.Context, userID uint, tool string) (*Authorization, error) {
	cost := s.ToolCost(tool)

	monthStart := MonthStart(time.Now())
	quota, used, balance, err := s.availability(ctx, userID, monthStart)
	if err != nil {
		s.metrics.RecordError("check_credits", "availability")
		return nil, fmt.Errorf("failed to compute availability: %w", err)
	}
	remaining := freeRemaining(quota, used)
	total := float64(remaining) + balance

	if total < float64(cost) {
		s.metrics.RecordError("check_credits", "insufficient")
		return nil, &InsufficientCreditsError{Required: cost, Remaining: total}
	}

	return &Authorization{
		Tool:           tool,
		Cost:           cost,
		FreeRemaining:  remaining,
		WalletBalance:  balance,
		TotalAvailable: total,
	}, nil
}

func (s *service) LogUsageAndCharge(ctx context.Context, userID uint, tool, action, status string, credits int, meta models.JSON) (*models.UsageEvent, error) {
	if credits < 0 {
		credits = 0
	}
	if meta == nil {
		meta = models.JSON{}
	}

	monthStart := MonthStart(time.Now())

	// Compute the free/wallet split up front so the event carries
	// meta.walletCharge from the moment it is written.
	freeCharge := 0
	walletCharge := 0
	quota := s.config.MonthlyQuota
	if status == models.UsageStatusSuccess && credits > 0 {
		var used int
		var err error
		quota, used, _, err = s.availability(ctx, userID, monthStart)
		if err != nil {
			s.metrics.RecordError("log_usage", "availability")
			return nil, fmt.Errorf("failed to compute availability: %w", err)
		}
		freeCharge = credits
		if remaining := freeRemaining(quota, used); freeCharge > remaining {
			freeCharge = remaining
		}
		walletCharge = credits - freeCharge
		if walletCharge > 0 {
			meta["walletCharge"] = walletCharge
		}
	}

	ev := &models.UsageEvent{
		RequestID: uuid.NewString(),
		UserID:    userID,
		Tool:      tool,
		Action:    action,
		Status:    status,
		Credits:   credits,
		Meta:      meta,
	}
	if err := s.repo.CreateUsageEvent(ctx, ev); err != nil {
		s.metrics.RecordError("log_usage", "event_write")
		return nil, err
	}

	if freeCharge == 0 && walletCharge == 0 {
		return ev, nil
	}

	// The event is the durable audit trail; a charge failure past this point
	// is reported as ErrChargeIncomplete and reconciled later rather than
	// failing the caller's request.
	if freeCharge > 0 {
		if err := s.repo.AddMonthlyUsage(ctx, userID, monthStart, quota, freeCharge); err != nil {
			s.metrics.RecordError("log_usage", "quota_charge")
			log.Printf("quota charge failed for user %d event %s: %v", userID, ev.RequestID, err)
			return ev, fmt.Errorf("%w: %v", ErrChargeIncomplete, err)
		}
	}
	if walletCharge > 0 {
		if err := s.wallets.Deduct(ctx, userID, float64(walletCharge)); err != nil {
			s.metrics.RecordError("log_usage", "wallet_charge")
			log.Printf("wallet charge failed for user %d event %s: %v", userID, ev.RequestID, err)
			return ev, fmt.Errorf("%w: %v", ErrChargeIncomplete, err)
		}
	}

	s.metrics.RecordCharge(tool, credits)
	if s.cache != nil {
		if err := s.cache.Delete(ctx, SummaryCacheKey(userID)); err != nil {
			log.Printf("failed to invalidate summary cache for user %d: %v", userID, err)
		}
	}
	return ev, nil
}

// metaWalletCharge extracts a positive walletCharge from event meta. JSONB
// numbers scan back as float64.
func metaWalletCharge(meta models.JSON) int {
	if meta == nil {
		return 0
	}
	switch v := meta["walletCharge"].(type) {
	case float64:
		return int(v)
	case int:
		return v
	default:
		return 0
	}
}
