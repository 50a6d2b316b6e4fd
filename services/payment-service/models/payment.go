package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Payment statuses. Succeeded and failed are terminal.
const (
	PaymentStatusPending   = "pending"
	PaymentStatusSucceeded = "succeeded"
	PaymentStatusFailed    = "failed"
)

// Payment is the persisted record of a payment-intent attempt. The
// provider owns the intent lifecycle; this row tracks what the platform
// learned about it, updated by webhook events.
type Payment struct {
	ID                 uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	OwnerID            string    `gorm:"type:varchar(128);index" json:"owner_id"`
	Amount             int64     `gorm:"not null" json:"amount"` // minor currency units
	Currency           string    `gorm:"type:varchar(10);not null" json:"currency"`
	Status             string    `gorm:"type:varchar(20);not null;default:'pending'" json:"status"`
	StripePaymentID    string    `gorm:"type:varchar(256);uniqueIndex" json:"stripe_payment_id"`
	StripeEventPayload *string   `gorm:"type:jsonb" json:"-"` // raw webhook payload for audit
	SucceededAt        *time.Time
	FailedAt           *time.Time
	CreatedAt          time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt          time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt          gorm.DeletedAt `gorm:"index" json:"-"`
}

// Terminal reports whether the payment reached a final status.
func (p *Payment) Terminal() bool {
	return p.Status == PaymentStatusSucceeded || p.Status == PaymentStatusFailed
}
