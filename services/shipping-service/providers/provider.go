package providers

import (
	"context"

	"github.com/vendora-platform/backend/services/shipping-service/models"
)

// RateProvider is implemented by live carrier integrations.
type RateProvider interface {
	// GetRates returns available shipping options for the given total
	// weight and destination.
	GetRates(ctx context.Context, weightKg float64, destination models.Address) ([]models.RateOption, error)
}
