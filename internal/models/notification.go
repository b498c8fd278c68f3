package models

import "time"

// AdminNotification is the broadcast log entry written when an operator
// sends a notification to one user or to everyone.
type AdminNotification struct {
	ID         uint      `gorm:"primarykey" json:"id"`
	Title      string    `gorm:"not null" json:"title"`
	Body       string    `gorm:"not null" json:"body"`
	TargetUser *uint     `json:"target_user,omitempty"` // nil means broadcast to all
	CreatedBy  uint      `gorm:"not null" json:"created_by"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// UserNotification is one inbox row. Append-only except for ReadAt.
type UserNotification struct {
	ID             uint       `gorm:"primarykey" json:"id"`
	UserID         uint       `gorm:"index;not null" json:"user_id"`
	NotificationID uint       `gorm:"index;not null" json:"notification_id"`
	Title          string     `gorm:"not null" json:"title"`
	Body           string     `gorm:"not null" json:"body"`
	ReadAt         *time.Time `json:"read_at,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
}
