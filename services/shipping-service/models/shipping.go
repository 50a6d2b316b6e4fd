package models

// Address is the shipping destination. Only the postal code is required
// to quote rates; the rest improves carrier accuracy.
type Address struct {
	Name       string `json:"name,omitempty"`
	Street1    string `json:"street1,omitempty"`
	Street2    string `json:"street2,omitempty"`
	City       string `json:"city,omitempty"`
	Province   string `json:"province,omitempty"`
	PostalCode string `json:"postal_code"`
	Country    string `json:"country,omitempty"` // ISO 3166-1 alpha-2
}

// CartItem is the slice of a cart line the rate calculation needs.
type CartItem struct {
	ProductID string  `json:"product_id"`
	Quantity  int     `json:"quantity"`
	WeightKg  float64 `json:"weight_kg,omitempty"`
	Price     float64 `json:"price,omitempty"`
}

// Rate pricing sources.
const (
	SourceStallion = "stallion" // live carrier quote
	SourceFallback = "fallback" // static estimate
)

// RateOption is a single shipping option. Ephemeral: computed per request,
// never persisted.
type RateOption struct {
	Carrier       string  `json:"carrier"`
	Service       string  `json:"service"`
	Cost          float64 `json:"cost"`
	Currency      string  `json:"currency"`
	EstimatedDays int     `json:"estimated_days,omitempty"`
	Source        string  `json:"source"`
	Selected      bool    `json:"selected"`
}

// RatesRequest is the payload for POST /api/shipping/rates.
type RatesRequest struct {
	CartItems       []CartItem `json:"cartItems"`
	ShippingAddress Address    `json:"shippingAddress"`
}

// RatesResult is the rate resolution outcome. NeedsAddress is set when
// the destination has no postal code; no lookup is attempted in that case.
type RatesResult struct {
	Success      bool         `json:"success"`
	NeedsAddress bool         `json:"needs_address,omitempty"`
	Rates        []RateOption `json:"rates"`
	Source       string       `json:"source,omitempty"`
}
