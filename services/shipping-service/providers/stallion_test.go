package providers_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/vendora-platform/backend/services/shipping-service/models"
	"github.com/vendora-platform/backend/services/shipping-service/providers"
)

func caAddress() models.Address {
	return models.Address{
		Name:       "Jordan Wells",
		Street1:    "100 King St W",
		City:       "Toronto",
		Province:   "ON",
		PostalCode: "M5X 1A9",
		Country:    "CA",
	}
}

func TestGetRates_MapsProviderResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/rates", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))

		var req map[string]interface{}
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "M5X 1A9", req["postal_code"])
		assert.Equal(t, "kg", req["weight_unit"])

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"success": true,
			"rates": [
				{"postage_type": "Ground", "total": 12.49, "delivery_days": 5},
				{"postage_type": "Express", "carrier": "UPS", "total": "24.99", "delivery_days": 2}
			]
		}`))
	}))
	defer srv.Close()

	p := providers.NewStallionProvider("test-key", srv.URL)
	rates, err := p.GetRates(context.Background(), 1.5, caAddress())

	assert.NoError(t, err)
	assert.Len(t, rates, 2)

	assert.Equal(t, "Stallion Express", rates[0].Carrier) // default when omitted
	assert.Equal(t, 12.49, rates[0].Cost)
	assert.Equal(t, models.SourceStallion, rates[0].Source)

	// string-typed totals must parse too
	assert.Equal(t, "UPS", rates[1].Carrier)
	assert.Equal(t, 24.99, rates[1].Cost)
	assert.Equal(t, 2, rates[1].EstimatedDays)
}

func TestGetRates_ProviderErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, `{"message":"invalid api key"}`, http.StatusUnauthorized)
	}))
	defer srv.Close()

	p := providers.NewStallionProvider("bad-key", srv.URL)
	rates, err := p.GetRates(context.Background(), 1.0, caAddress())

	assert.Error(t, err)
	assert.Nil(t, rates)
}

func TestGetRates_UnsuccessfulBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"success": false, "message": "no rates for destination"}`))
	}))
	defer srv.Close()

	p := providers.NewStallionProvider("test-key", srv.URL)
	_, err := p.GetRates(context.Background(), 1.0, caAddress())

	assert.ErrorContains(t, err, "no rates for destination")
}
