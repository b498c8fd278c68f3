package models

import "time"

// Top-up statuses
const (
	TopupStatusPending  = "pending"
	TopupStatusApproved = "approved"
	TopupStatusRejected = "rejected"
)

// Usage event statuses
const (
	UsageStatusSuccess = "success"
	UsageStatusError   = "error"
	UsageStatusPending = "pending"
)

// MonthlyCredit tracks free-quota consumption for one user in one calendar
// month. Keyed by (user_id, month_start); a missing row means the default
// quota with zero used.
type MonthlyCredit struct {
	ID           uint      `gorm:"primarykey" json:"id"`
	UserID       uint      `gorm:"not null;uniqueIndex:idx_user_month" json:"user_id"`
	MonthStart   time.Time `gorm:"not null;uniqueIndex:idx_user_month" json:"month_start"`
	MonthlyQuota int       `gorm:"not null" json:"monthly_quota"`
	Used         int       `gorm:"not null;default:0" json:"used"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// CreditPackage is a purchasable SKU. The catalog is read-only to the ledger
// and the top-up workflow; operators manage it out-of-band.
type CreditPackage struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	Code      string    `gorm:"uniqueIndex;not null" json:"code"`
	Name      string    `gorm:"not null" json:"name"`
	USDPrice  float64   `gorm:"not null" json:"usd_price"`
	Credits   int       `gorm:"not null" json:"credits"`
	Active    bool      `gorm:"not null;default:true" json:"active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CreditTopup is a user-submitted manual payment claim. Lifecycle:
// created pending, exactly one admin decision, then terminal.
type CreditTopup struct {
	ID            uint           `gorm:"primarykey" json:"id"`
	UserID        uint           `gorm:"index;not null" json:"user_id"`
	PackageID     uint           `gorm:"not null" json:"package_id"`
	Package       *CreditPackage `gorm:"foreignKey:PackageID" json:"package,omitempty"`
	WalletNetwork string         `gorm:"not null" json:"wallet_network"`
	TxHash        string         `gorm:"not null" json:"tx_hash"`
	FromAddress   string         `json:"from_address,omitempty"`
	Amount        float64        `json:"amount,omitempty"`
	Status        string         `gorm:"not null;default:'pending';index" json:"status"`
	AdminNote     string         `json:"admin_note,omitempty"`
	ApprovedBy    *uint          `json:"approved_by,omitempty"`
	ApprovedAt    *time.Time     `json:"approved_at,omitempty"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
}

// UsageEvent is an append-only ledger row recording one tool invocation
// attempt, written regardless of tool success or failure, never mutated.
type UsageEvent struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	RequestID string    `gorm:"index" json:"request_id"`
	UserID    uint      `gorm:"index;not null" json:"user_id"`
	Tool      string    `gorm:"not null;index" json:"tool"`
	Action    string    `json:"action,omitempty"`
	Status    string    `gorm:"not null" json:"status"`
	Credits   int       `gorm:"not null;default:0" json:"credits"`
	Meta      JSON      `gorm:"type:jsonb" json:"meta,omitempty"`
	CreatedAt time.Time `gorm:"index" json:"created_at"`
}
