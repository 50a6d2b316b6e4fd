package providers

import (
	"github.com/vendora-platform/backend/services/shipping-service/models"
)

// FallbackEstimator produces static rate estimates when the live carrier
// cannot be reached. Estimates are weight-banded and deliberately
// conservative so a fallback quote never undercharges badly.
type FallbackEstimator struct{}

func NewFallbackEstimator() *FallbackEstimator {
	return &FallbackEstimator{}
}

type weightBand struct {
	maxKg    float64
	standard float64
	express  float64
}

var fallbackBands = []weightBand{
	{maxKg: 0.5, standard: 9.99, express: 19.99},
	{maxKg: 2.0, standard: 14.99, express: 27.99},
	{maxKg: 5.0, standard: 22.99, express: 39.99},
	{maxKg: 10.0, standard: 34.99, express: 54.99},
}

// heavy parcels above the last band
const (
	heavyStandard = 49.99
	heavyExpress  = 79.99
)

// Estimate returns standard and express options for the given weight.
func (f *FallbackEstimator) Estimate(weightKg float64) []models.RateOption {
	standard, express := heavyStandard, heavyExpress
	for _, band := range fallbackBands {
		if weightKg <= band.maxKg {
			standard, express = band.standard, band.express
			break
		}
	}

	return []models.RateOption{
		{
			Carrier:       "Standard Shipping",
			Service:       "Ground",
			Cost:          standard,
			Currency:      "CAD",
			EstimatedDays: 7,
			Source:        models.SourceFallback,
		},
		{
			Carrier:       "Express Shipping",
			Service:       "Expedited",
			Cost:          express,
			Currency:      "CAD",
			EstimatedDays: 2,
			Source:        models.SourceFallback,
		},
	}
}
