package models

import "time"

// Variation identifies the chosen product variant for a line item.
type Variation struct {
	SKU        string            `json:"sku" bson:"sku"`
	Image      string            `json:"image,omitempty" bson:"image,omitempty"`
	Attributes map[string]string `json:"attributes,omitempty" bson:"attributes,omitempty"`
}

// CartLineItem is one product entry in a cart. Variation is the current
// shape; the flat Size/Weight/RAM fields are kept for documents written
// before variations existed.
type CartLineItem struct {
	ItemID    string     `json:"item_id" bson:"item_id"`
	ProductID string     `json:"product_id" bson:"product_id" binding:"required"`
	Variation *Variation `json:"variation,omitempty" bson:"variation,omitempty"`

	// Legacy flat variant fields.
	Size   string `json:"size,omitempty" bson:"size,omitempty"`
	Weight string `json:"weight,omitempty" bson:"weight,omitempty"`
	RAM    string `json:"ram,omitempty" bson:"ram,omitempty"`

	Quantity int     `json:"quantity" bson:"quantity" binding:"required,min=1"`
	Price    float64 `json:"price" bson:"price" binding:"required,gt=0"`
	Subtotal float64 `json:"subtotal" bson:"subtotal"`
}

// VariationSKU returns the variation SKU, or "" for legacy items.
func (i *CartLineItem) VariationSKU() string {
	if i.Variation != nil {
		return i.Variation.SKU
	}
	return ""
}

// Cart is the persisted cart document, keyed by owner (user or guest
// session).
type Cart struct {
	OwnerID   string         `json:"owner_id" bson:"_id"`
	Items     []CartLineItem `json:"items" bson:"items"`
	UpdatedAt time.Time      `json:"updated_at" bson:"updated_at"`
}

// Total returns the sum of line subtotals.
func (c *Cart) Total() float64 {
	var total float64
	for _, item := range c.Items {
		total += item.Subtotal
	}
	return total
}
