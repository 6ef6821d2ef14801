// Package client is the HTTP consumer of the emergency-assistant API. It
// satisfies both the panel controller's fetcher contract and the location
// resolver's remote-store contract, so the core engine can run against a
// remote service instead of the in-process aggregator.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/emergencyai/emergency-assistant/internal/emergency"
	"github.com/emergencyai/emergency-assistant/internal/location"
)

// Client calls the emergency-assistant HTTP API.
type Client struct {
	httpClient *http.Client
	baseURL    string
}

// New creates a Client rooted at baseURL.
func New(httpClient *http.Client, baseURL string) *Client {
	return &Client{
		httpClient: httpClient,
		baseURL:    strings.TrimRight(baseURL, "/"),
	}
}

// Fetch implements the panel fetcher contract: GET /<category>?city&country.
// Any non-2xx response becomes an *emergency.AggregationError carrying the
// body's error field when present, else a status-derived message.
func (c *Client) Fetch(ctx context.Context, category emergency.Category, loc location.Location) (*emergency.CategoryResult, error) {
	values := url.Values{}
	values.Set("city", loc.City)
	if loc.Country != "" {
		values.Set("country", loc.Country)
	}

	u := fmt.Sprintf("%s/%s?%s", c.baseURL, category, values.Encode())
	body, err := c.get(ctx, u, category)
	if err != nil {
		return nil, err
	}

	result := &emergency.CategoryResult{Category: category}
	switch category {
	case emergency.CategoryAlerts:
		result.Alerts = &emergency.AlertResult{}
		err = json.Unmarshal(body, result.Alerts)
	case emergency.CategoryForecast:
		result.Forecast = &emergency.ForecastResult{}
		err = json.Unmarshal(body, result.Forecast)
	case emergency.CategoryRecommendations:
		result.Recommendations = &emergency.RecommendationResult{}
		err = json.Unmarshal(body, result.Recommendations)
	case emergency.CategoryFirstAid:
		result.FirstAid = &emergency.FirstAidResult{}
		err = json.Unmarshal(body, result.FirstAid)
	case emergency.CategoryResources:
		result.Resources = &emergency.ResourceResult{}
		err = json.Unmarshal(body, result.Resources)
	case emergency.CategoryNews:
		result.News = &emergency.NewsResult{}
		err = json.Unmarshal(body, result.News)
	default:
		return nil, fmt.Errorf("unknown category %q", category)
	}
	if err != nil {
		return nil, &emergency.AggregationError{
			Category: category,
			Message:  fmt.Sprintf("malformed response: %v", err),
			Err:      err,
		}
	}
	return result, nil
}

// Save implements location.RemoteStore: POST /save-location {city, country}.
func (c *Client) Save(ctx context.Context, loc location.Location) error {
	payload, err := json.Marshal(loc)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/save-location", bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
		return fmt.Errorf("save-location failed: %s", errorText(body, resp.StatusCode))
	}
	return nil
}

func (c *Client) get(ctx context.Context, u string, category emergency.Category) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &emergency.AggregationError{Category: category, Message: err.Error(), Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, &emergency.AggregationError{Category: category, Message: err.Error(), Err: err}
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &emergency.AggregationError{
			Category: category,
			Message:  errorText(body, resp.StatusCode),
		}
	}
	return body, nil
}

// errorText reads the error field the API puts in failure bodies, falling
// back to a status-derived message.
func errorText(body []byte, status int) string {
	var payload struct {
		Error string `json:"error"`
	}
	if json.Unmarshal(body, &payload) == nil && payload.Error != "" {
		return payload.Error
	}
	return fmt.Sprintf("HTTP error! Status: %d", status)
}
