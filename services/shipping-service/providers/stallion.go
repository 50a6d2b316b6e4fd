package providers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/vendora-platform/backend/services/shipping-service/models"
)

const stallionBaseURL = "https://ship.stallionexpress.ca/api/v3"

// StallionProvider implements RateProvider using the Stallion Express API.
type StallionProvider struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

// NewStallionProvider creates a new StallionProvider. baseURL overrides
// the production endpoint when non-empty (used for tests and sandboxes).
func NewStallionProvider(apiKey, baseURL string) *StallionProvider {
	if baseURL == "" {
		baseURL = stallionBaseURL
	}
	return &StallionProvider{
		apiKey:  apiKey,
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
}

// ---- Stallion API request/response structs ----

type stallionRateRequest struct {
	Name       string  `json:"name,omitempty"`
	Address1   string  `json:"address1,omitempty"`
	City       string  `json:"city,omitempty"`
	ProvCode   string  `json:"province_code,omitempty"`
	PostalCode string  `json:"postal_code"`
	Country    string  `json:"country_code"`
	Weight     float64 `json:"weight"`
	WeightUnit string  `json:"weight_unit"`
	Currency   string  `json:"currency"`
}

type stallionRate struct {
	PostageType  string          `json:"postage_type"`
	Carrier      string          `json:"carrier"`
	Total        json.RawMessage `json:"total"` // number or numeric string depending on API version
	DeliveryDays int             `json:"delivery_days"`
}

type stallionRateResponse struct {
	Success bool           `json:"success"`
	Rates   []stallionRate `json:"rates"`
	Message string         `json:"message,omitempty"`
}

// GetRates quotes live rates from Stallion for the given destination.
func (s *StallionProvider) GetRates(ctx context.Context, weightKg float64, destination models.Address) ([]models.RateOption, error) {
	country := destination.Country
	if country == "" {
		country = "CA"
	}
	reqBody := stallionRateRequest{
		Name:       destination.Name,
		Address1:   destination.Street1,
		City:       destination.City,
		ProvCode:   destination.Province,
		PostalCode: destination.PostalCode,
		Country:    country,
		Weight:     weightKg,
		WeightUnit: "kg",
		Currency:   "CAD",
	}

	var resp stallionRateResponse
	if err := s.doRequest(ctx, http.MethodPost, "/rates", reqBody, &resp); err != nil {
		return nil, fmt.Errorf("stallion GetRates: %w", err)
	}
	if !resp.Success {
		return nil, fmt.Errorf("stallion GetRates: %s", resp.Message)
	}

	rates := make([]models.RateOption, 0, len(resp.Rates))
	for _, r := range resp.Rates {
		carrier := r.Carrier
		if carrier == "" {
			carrier = "Stallion Express"
		}
		rates = append(rates, models.RateOption{
			Carrier:       carrier,
			Service:       r.PostageType,
			Cost:          parseAmount(r.Total),
			Currency:      "CAD",
			EstimatedDays: r.DeliveryDays,
			Source:        models.SourceStallion,
		})
	}
	return rates, nil
}

// parseAmount tolerates both numeric and string totals.
func parseAmount(raw json.RawMessage) float64 {
	var f float64
	if err := json.Unmarshal(raw, &f); err == nil {
		return f
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		if v, err := strconv.ParseFloat(s, 64); err == nil {
			return v
		}
	}
	return 0
}

// ---- HTTP helper ----

func (s *StallionProvider) doRequest(ctx context.Context, method, path string, body interface{}, out interface{}) error {
	var reqBody io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
		reqBody = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, s.baseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+s.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("http do: %w", err)
	}
	defer resp.Body.Close()

	respBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("stallion API error (status %d): %s", resp.StatusCode, string(respBytes))
	}

	if out != nil {
		if err := json.Unmarshal(respBytes, out); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
	}
	return nil
}
