package models

import "time"

// PaymentEvent is published to SNS when a payment reaches a terminal
// status.
type PaymentEvent struct {
	Type      string    `json:"type"` // payment_succeeded | payment_failed
	PaymentID string    `json:"payment_id"`
	OwnerID   string    `json:"owner_id"`
	Amount    int64     `json:"amount"`
	Currency  string    `json:"currency"`
	Timestamp time.Time `json:"timestamp"`
}
