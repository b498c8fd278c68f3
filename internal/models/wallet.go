package models

import "time"

// Wallet holds a user's paid credit balance. A row is created lazily on the
// first approved top-up; absence of a row means a balance of zero.
type Wallet struct {
	ID        uint    `gorm:"primarykey" json:"id"`
	UserID    uint    `gorm:"uniqueIndex;not null" json:"user_id"`
	Balance   float64 `gorm:"not null;default:0" json:"balance"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
