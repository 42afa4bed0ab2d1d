package fx

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/shopspring/decimal"

	"github.com/arthadash/artha/internal/domain"
)

// Client fetches the current USD→IDR exchange rate from a currency-rate
// provider. The provider returns a JSON rates map keyed by currency code;
// only the IDR entry is consumed.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// NewClient creates a rate API client. The request timeout bounds how long a
// refresh can stall an aggregation that is waiting on it.
func NewClient(baseURL, apiKey string) *Client {
	return &Client{
		baseURL:    baseURL,
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: 15 * time.Second},
	}
}

// FetchRate requests the latest USD→IDR rate.
func (c *Client) FetchRate(ctx context.Context) (decimal.Decimal, error) {
	q := url.Values{}
	q.Set("apikey", c.apiKey)
	q.Set("base", "USD")
	q.Set("symbols", "IDR")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+q.Encode(), nil)
	if err != nil {
		return decimal.Zero, fmt.Errorf("creating rate request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return decimal.Zero, fmt.Errorf("rate request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return decimal.Zero, fmt.Errorf("reading rate response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return decimal.Zero, fmt.Errorf("rate API HTTP %d: %s", resp.StatusCode, string(body))
	}

	// The provider quotes rates as strings: {"rates":{"IDR":"16234.50"}}.
	// Some mirrors quote plain numbers, so both shapes are accepted.
	var raw struct {
		Rates map[string]any `json:"rates"`
	}
	if err := json.Unmarshal(body, &raw); err != nil {
		return decimal.Zero, fmt.Errorf("parsing rate response: %w", err)
	}

	v, ok := raw.Rates["IDR"]
	if !ok {
		return decimal.Zero, fmt.Errorf("rate response missing IDR")
	}

	var rate decimal.Decimal
	switch t := v.(type) {
	case string:
		rate = domain.SafeParse(t)
	case float64:
		rate = decimal.NewFromFloat(t)
	}
	if !rate.IsPositive() {
		return decimal.Zero, fmt.Errorf("rate response has invalid IDR rate: %v", v)
	}
	return rate, nil
}
