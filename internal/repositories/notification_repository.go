package repositories

import (
	"context"
	"fmt"
	"time"

	"aikit/internal/models"

	"gorm.io/gorm"
)

// NotificationRepository persists the broadcast log and per-user inboxes.
type NotificationRepository interface {
	CreateBroadcast(ctx context.Context, n *models.AdminNotification, inbox []models.UserNotification) error
	ListBroadcasts(ctx context.Context, limit, offset int) ([]models.AdminNotification, int64, error)
	UpdateBroadcast(ctx context.Context, n *models.AdminNotification) error
	GetBroadcast(ctx context.Context, id uint) (*models.AdminNotification, error)

	ListInbox(ctx context.Context, userID uint, limit int) ([]models.UserNotification, error)
	MarkRead(ctx context.Context, userID, notificationID uint) error
}

type notificationRepository struct {
	db *gorm.DB
}

func NewNotificationRepository(db *gorm.DB) NotificationRepository {
	return &notificationRepository{db: db}
}

func (r *notificationRepository) CreateBroadcast(ctx context.Context, n *models.AdminNotification, inbox []models.UserNotification) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(n).Error; err != nil {
			return fmt.Errorf("failed to create notification: %w", err)
		}
		for i := range inbox {
			inbox[i].NotificationID = n.ID
		}
		if len(inbox) > 0 {
			if err := tx.CreateInBatches(inbox, 500).Error; err != nil {
				return fmt.Errorf("failed to fan out notification: %w", err)
			}
		}
		return nil
	})
}

func (r *notificationRepository) ListBroadcasts(ctx context.Context, limit, offset int) ([]models.AdminNotification, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&models.AdminNotification{}).Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count notifications: %w", err)
	}

	var notifications []models.AdminNotification
	err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&notifications).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list notifications: %w", err)
	}
	return notifications, total, nil
}

func (r *notificationRepository) UpdateBroadcast(ctx context.Context, n *models.AdminNotification) error {
	if err := r.db.WithContext(ctx).Save(n).Error; err != nil {
		return fmt.Errorf("failed to update notification: %w", err)
	}
	return nil
}

func (r *notificationRepository) GetBroadcast(ctx context.Context, id uint) (*models.AdminNotification, error) {
	var n models.AdminNotification
	if err := r.db.WithContext(ctx).First(&n, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrNotificationNotFound
		}
		return nil, fmt.Errorf("failed to get notification: %w", err)
	}
	return &n, nil
}

func (r *notificationRepository) ListInbox(ctx context.Context, userID uint, limit int) ([]models.UserNotification, error) {
	var inbox []models.UserNotification
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("read_at ASC NULLS FIRST, created_at DESC").
		Limit(limit).
		Find(&inbox).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list inbox: %w", err)
	}
	return inbox, nil
}

func (r *notificationRepository) MarkRead(ctx context.Context, userID, notificationID uint) error {
	// Ownership is part of the WHERE clause so a user cannot mark another
	// user's rows as read.
	result := r.db.WithContext(ctx).Model(&models.UserNotification{}).
		Where("id = ? AND user_id = ?", notificationID, userID).
		Update("read_at", time.Now().UTC())
	if result.Error != nil {
		return fmt.Errorf("failed to mark notification read: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotificationNotFound
	}
	return nil
}
