package models

import "time"

// CheckoutEvent is published to Kafka when a cart is checked out.
type CheckoutEvent struct {
	Event     string         `json:"event"` // "checkout.requested"
	OwnerID   string         `json:"owner_id"`
	Items     []CartLineItem `json:"items"`
	Total     float64        `json:"total"`
	Timestamp time.Time      `json:"timestamp"`
}
