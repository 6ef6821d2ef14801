package location

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
)

const defaultIPAPIBaseURL = "http://ip-api.com/json"

// IPAPILocator implements IPLocator against the ip-api.com service.
type IPAPILocator struct {
	client  *http.Client
	baseURL string
}

// NewIPAPILocator creates an IPAPILocator using the shared HTTP client.
func NewIPAPILocator(client *http.Client) *IPAPILocator {
	return &IPAPILocator{client: client, baseURL: defaultIPAPIBaseURL}
}

// Lookup implements IPLocator.
func (l *IPAPILocator) Lookup(ctx context.Context) (Place, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, l.baseURL, nil)
	if err != nil {
		return Place{}, err
	}
	resp, err := l.client.Do(req)
	if err != nil {
		return Place{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Place{}, fmt.Errorf("ip-api returned status %d", resp.StatusCode)
	}

	var payload struct {
		Status  string `json:"status"`
		Message string `json:"message"`
		City    string `json:"city"`
		Country string `json:"country"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return Place{}, err
	}
	if payload.Status == "fail" {
		return Place{}, fmt.Errorf("ip-api lookup failed: %s", payload.Message)
	}
	return Place{City: payload.City, Country: payload.Country}, nil
}
