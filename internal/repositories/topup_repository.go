package repositories

import (
	"context"
	"fmt"
	"time"

	"aikit/internal/models"

	"gorm.io/gorm"
)

// TopupRepository defines persistence for the top-up approval workflow.
type TopupRepository interface {
	Create(ctx context.Context, topup *models.CreditTopup) error
	GetByID(ctx context.Context, id uint) (*models.CreditTopup, error)
	ListByUser(ctx context.Context, userID uint) ([]models.CreditTopup, error)
	ListByStatus(ctx context.Context, status string, limit, offset int) ([]models.CreditTopup, int64, error)

	// MarkDecided flips a pending top-up to a terminal status. The update is
	// guarded on status = pending; ErrTopupNotPending when another decision won.
	MarkDecided(ctx context.Context, id uint, status string, adminID uint, note string) error

	// ExecuteInTransaction runs fn with repositories bound to one database
	// transaction, so the approve path's wallet credit and status flip commit
	// together.
	ExecuteInTransaction(fn func(topups TopupRepository, wallets WalletRepository) error) error
}

type topupRepository struct {
	db *gorm.DB
}

func NewTopupRepository(db *gorm.DB) TopupRepository {
	return &topupRepository{db: db}
}

func (r *topupRepository) Create(ctx context.Context, topup *models.CreditTopup) error {
	if err := r.db.WithContext(ctx).Create(topup).Error; err != nil {
		return fmt.Errorf("failed to create top-up: %w", err)
	}
	return nil
}

func (r *topupRepository) GetByID(ctx context.Context, id uint) (*models.CreditTopup, error) {
	var topup models.CreditTopup
	if err := r.db.WithContext(ctx).Preload("Package").First(&topup, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrTopupNotFound
		}
		return nil, fmt.Errorf("failed to get top-up: %w", err)
	}
	return &topup, nil
}

func (r *topupRepository) ListByUser(ctx context.Context, userID uint) ([]models.CreditTopup, error) {
	var topups []models.CreditTopup
	err := r.db.WithContext(ctx).
		Preload("Package").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&topups).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list top-ups: %w", err)
	}
	return topups, nil
}

func (r *topupRepository) ListByStatus(ctx context.Context, status string, limit, offset int) ([]models.CreditTopup, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.CreditTopup{})
	if status != "" {
		query = query.Where("status = ?", status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count top-ups: %w", err)
	}

	var topups []models.CreditTopup
	err := query.
		Preload("Package").
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&topups).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list top-ups: %w", err)
	}
	return topups, total, nil
}

func (r *topupRepository) MarkDecided(ctx context.Context, id uint, status string, adminID uint, note string) error {
	now := time.Now().UTC()
	result := r.db.WithContext(ctx).Model(&models.CreditTopup{}).
		Where("id = ? AND status = ?", id, models.TopupStatusPending).
		Updates(map[string]interface{}{
			"status":      status,
			"admin_note":  note,
			"approved_by": adminID,
			"approved_at": now,
		})
	if result.Error != nil {
		return fmt.Errorf("failed to decide top-up: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrTopupNotPending
	}
	return nil
}

func (r *topupRepository) ExecuteInTransaction(fn func(TopupRepository, WalletRepository) error) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		return fn(&topupRepository{db: tx}, &walletRepository{db: tx})
	})
}
