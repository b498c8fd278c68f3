package repositories

import (
	"context"
	"fmt"
	"time"

	"aikit/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// LedgerRepository defines the persistence operations backing the credit
// ledger: monthly free-quota rows, the usage-event ledger, and the approved
// purchase history used for plan classification.
type LedgerRepository interface {
	// GetMonthlyCredit returns the row for (userID, monthStart), or nil when
	// no row has been materialized yet.
	GetMonthlyCredit(ctx context.Context, userID uint, monthStart time.Time) (*models.MonthlyCredit, error)

	// AddMonthlyUsage increments Used for (userID, monthStart), creating the
	// row with the given quota if absent. Single-statement upsert.
	AddMonthlyUsage(ctx context.Context, userID uint, monthStart time.Time, quota, amount int) error

	CreateUsageEvent(ctx context.Context, ev *models.UsageEvent) error
	SetUsageEventMeta(ctx context.Context, eventID uint, meta models.JSON) error

	// ListUsageEvents returns events created at or after since, newest first,
	// bounded by limit.
	ListUsageEvents(ctx context.Context, userID uint, since time.Time, limit int) ([]models.UsageEvent, error)
	RecentUsageEvents(ctx context.Context, userID uint, limit int) ([]models.UsageEvent, error)
	LifetimeUsedTotal(ctx context.Context, userID uint) (int64, error)

	// ApprovedTopups returns every approved top-up with its package preloaded.
	ApprovedTopups(ctx context.Context, userID uint) ([]models.CreditTopup, error)
}

type ledgerRepository struct {
	db *gorm.DB
}

func NewLedgerRepository(db *gorm.DB) LedgerRepository {
	return &ledgerRepository{db: db}
}

func (r *ledgerRepository) GetMonthlyCredit(ctx context.Context, userID uint, monthStart time.Time) (*models.MonthlyCredit, error) {
	var mc models.MonthlyCredit
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND month_start = ?", userID, monthStart).
		First(&mc).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get monthly credit: %w", err)
	}
	return &mc, nil
}

func (r *ledgerRepository) AddMonthlyUsage(ctx context.Context, userID uint, monthStart time.Time, quota, amount int) error {
	result := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}, {Name: "month_start"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"used":       gorm.Expr("monthly_credits.used + ?", amount),
			"updated_at": time.Now(),
		}),
	}).Create(&models.MonthlyCredit{
		UserID:       userID,
		MonthStart:   monthStart,
		MonthlyQuota: quota,
		Used:         amount,
	})
	if result.Error != nil {
		return fmt.Errorf("failed to add monthly usage: %w", result.Error)
	}
	return nil
}

func (r *ledgerRepository) CreateUsageEvent(ctx context.Context, ev *models.UsageEvent) error {
	if err := r.db.WithContext(ctx).Create(ev).Error; err != nil {
		return fmt.Errorf("failed to create usage event: %w", err)
	}
	return nil
}

func (r *ledgerRepository) SetUsageEventMeta(ctx context.Context, eventID uint, meta models.JSON) error {
	err := r.db.WithContext(ctx).Model(&models.UsageEvent{}).
		Where("id = ?", eventID).
		Update("meta", meta).Error
	if err != nil {
		return fmt.Errorf("failed to update usage event meta: %w", err)
	}
	return nil
}

func (r *ledgerRepository) ListUsageEvents(ctx context.Context, userID uint, since time.Time, limit int) ([]models.UsageEvent, error) {
	var events []models.UsageEvent
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND created_at >= ?", userID, since).
		Order("created_at DESC").
		Limit(limit).
		Find(&events).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list usage events: %w", err)
	}
	return events, nil
}

func (r *ledgerRepository) RecentUsageEvents(ctx context.Context, userID uint, limit int) ([]models.UsageEvent, error) {
	var events []models.UsageEvent
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Find(&events).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list usage events: %w", err)
	}
	return events, nil
}

func (r *ledgerRepository) LifetimeUsedTotal(ctx context.Context, userID uint) (int64, error) {
	var total int64
	err := r.db.WithContext(ctx).Model(&models.UsageEvent{}).
		Where("user_id = ? AND credits > 0", userID).
		Select("COALESCE(SUM(credits), 0)").
		Scan(&total).Error
	if err != nil {
		return 0, fmt.Errorf("failed to sum lifetime usage: %w", err)
	}
	return total, nil
}

func (r *ledgerRepository) ApprovedTopups(ctx context.Context, userID uint) ([]models.CreditTopup, error) {
	var topups []models.CreditTopup
	err := r.db.WithContext(ctx).
		Preload("Package").
		Where("user_id = ? AND status = ?", userID, models.TopupStatusApproved).
		Find(&topups).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list approved top-ups: %w", err)
	}
	return topups, nil
}
