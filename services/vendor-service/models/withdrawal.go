package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	WithdrawalStatusPending   = "pending"
	WithdrawalStatusApproved  = "approved"
	WithdrawalStatusRejected  = "rejected"
	WithdrawalStatusCompleted = "completed"
)

// Withdrawal is a vendor payout request. It moves through
// pending -> approved -> completed, or pending -> rejected; every
// transition is admin-triggered and records who acted and when.
type Withdrawal struct {
	ID            uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	VendorID      string    `gorm:"type:varchar(128);index" json:"vendor_id"`
	Amount        int64     `gorm:"not null" json:"amount"`
	Currency      string    `gorm:"type:varchar(8);default:'cad'" json:"currency"`
	BankName      string    `gorm:"type:varchar(256)" json:"bank_name"`
	AccountNumber string    `gorm:"type:varchar(64)" json:"account_number"`
	AccountHolder string    `gorm:"type:varchar(256)" json:"account_holder"`
	RoutingNumber string    `gorm:"type:varchar(64)" json:"routing_number"`

	Status       string     `gorm:"type:varchar(16);index;default:'pending'" json:"status"`
	RejectReason string     `gorm:"type:text" json:"reject_reason,omitempty"`
	RequestedAt  time.Time  `json:"requested_at"`
	ReviewedAt   *time.Time `json:"reviewed_at,omitempty"`
	ReviewedBy   string     `gorm:"type:varchar(128)" json:"reviewed_by,omitempty"`
	CompletedAt  *time.Time `json:"completed_at,omitempty"`
	CompletedBy  string     `gorm:"type:varchar(128)" json:"completed_by,omitempty"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// Terminal reports whether the request reached a final outcome.
func (w *Withdrawal) Terminal() bool {
	return w.Status == WithdrawalStatusRejected || w.Status == WithdrawalStatusCompleted
}
