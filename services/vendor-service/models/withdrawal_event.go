package models

import "time"

// WithdrawalEvent is published to SNS on every lifecycle transition.
type WithdrawalEvent struct {
	Type         string    `json:"type"`
	WithdrawalID string    `json:"withdrawal_id"`
	VendorID     string    `json:"vendor_id"`
	Amount       int64     `json:"amount"`
	Currency     string    `json:"currency"`
	Actor        string    `json:"actor,omitempty"`
	Timestamp    time.Time `json:"timestamp"`
}
