package services

import (
	"context"
	"net/http"
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/vendora-platform/backend/services/shipping-service/models"
	"github.com/vendora-platform/backend/services/shipping-service/providers"
)

// ServiceError is a typed error with an HTTP status code.
type ServiceError struct {
	StatusCode int
	Message    string
}

func (e *ServiceError) Error() string { return e.Message }

// defaultItemWeightKg is assumed for cart lines without weight data.
const defaultItemWeightKg = 0.5

// ShippingService resolves shipping rates for a cart and destination.
type ShippingService interface {
	ResolveRates(ctx context.Context, req *models.RatesRequest) (*models.RatesResult, *ServiceError)
}

type shippingServiceImpl struct {
	provider providers.RateProvider
	fallback *providers.FallbackEstimator
	logger   *zap.Logger
}

// NewShippingService creates a ShippingService. provider may be nil when
// no live carrier is configured; fallback may be nil to disable the
// static estimator.
func NewShippingService(provider providers.RateProvider, fallback *providers.FallbackEstimator, logger *zap.Logger) ShippingService {
	return &shippingServiceImpl{provider: provider, fallback: fallback, logger: logger}
}

// ResolveRates returns rate options cheapest-first with the first entry
// pre-selected. A live lookup failure degrades to the static estimator
// rather than failing the request; only when both are unavailable does
// the caller see an error.
func (s *shippingServiceImpl) ResolveRates(ctx context.Context, req *models.RatesRequest) (*models.RatesResult, *ServiceError) {
	if len(req.CartItems) == 0 {
		return nil, &ServiceError{StatusCode: http.StatusBadRequest, Message: "cart is empty"}
	}

	if strings.TrimSpace(req.ShippingAddress.PostalCode) == "" {
		// Not an error: the storefront shows a "provide address" state.
		return &models.RatesResult{
			Success:      false,
			NeedsAddress: true,
			Rates:        []models.RateOption{},
		}, nil
	}

	weight := totalWeight(req.CartItems)

	var rates []models.RateOption
	if s.provider != nil {
		live, err := s.provider.GetRates(ctx, weight, req.ShippingAddress)
		if err != nil || len(live) == 0 {
			s.logger.Warn("live rate lookup failed, using fallback",
				zap.Float64("weight_kg", weight),
				zap.Error(err),
			)
		} else {
			rates = live
		}
	}

	if rates == nil {
		if s.fallback == nil {
			return nil, &ServiceError{
				StatusCode: http.StatusBadGateway,
				Message:    "shipping rates are temporarily unavailable, please retry",
			}
		}
		rates = s.fallback.Estimate(weight)
	}

	sort.SliceStable(rates, func(i, j int) bool {
		return rates[i].Cost < rates[j].Cost
	})
	rates[0].Selected = true

	return &models.RatesResult{
		Success: true,
		Rates:   rates,
		Source:  rates[0].Source,
	}, nil
}

func totalWeight(items []models.CartItem) float64 {
	var total float64
	for _, item := range items {
		qty := item.Quantity
		if qty < 1 {
			qty = 1
		}
		w := item.WeightKg
		if w <= 0 {
			w = defaultItemWeightKg
		}
		total += w * float64(qty)
	}
	return total
}
