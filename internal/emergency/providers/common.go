// Package providers implements the upstream data sources behind the
// aggregator's category collaborator contracts.
package providers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"net/http"
	"time"

	"github.com/sony/gobreaker"

	"github.com/emergencyai/emergency-assistant/internal/emergency"
)

const maxBodyBytes = 1 << 20

// Backoff controls exponential retry pacing for upstream calls.
type Backoff struct {
	MaxRetries      int
	InitialInterval time.Duration
	MaxInterval     time.Duration
}

var (
	errRateLimited = errors.New("rate limited")
	errServerError = errors.New("server error")
	errCircuitOpen = errors.New("circuit breaker open")
)

// upstream bundles the HTTP client, retry policy and circuit breaker shared
// by a provider's calls.
type upstream struct {
	client  *http.Client
	backoff Backoff
	circuit *gobreaker.CircuitBreaker
}

func newUpstream(name string, client *http.Client) upstream {
	cb := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        name,
		MaxRequests: 5,
		Interval:    1 * time.Minute,
		Timeout:     2 * time.Minute,
	})
	return upstream{
		client: client,
		backoff: Backoff{
			MaxRetries:      3,
			InitialInterval: 500 * time.Millisecond,
			MaxInterval:     5 * time.Second,
		},
		circuit: cb,
	}
}

// getJSON performs a GET with retries, exponential backoff and the circuit
// breaker, decoding a 2xx JSON body into out. Rate limits and 5xx responses
// are retried; any other non-2xx response becomes a definitive
// *emergency.UpstreamError carrying the body's own error text when present.
func (u upstream) getJSON(ctx context.Context, url string, out any) error {
	var attempt int
	for {
		if ctx.Err() != nil {
			return ctx.Err()
		}

		result, err := u.circuit.Execute(func() (interface{}, error) {
			req, reqErr := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
			if reqErr != nil {
				return nil, reqErr
			}
			resp, doErr := u.client.Do(req)
			if doErr != nil {
				return nil, doErr
			}
			defer resp.Body.Close()

			body, readErr := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
			if readErr != nil {
				return nil, readErr
			}

			switch {
			case resp.StatusCode == http.StatusTooManyRequests:
				return nil, errRateLimited
			case resp.StatusCode >= 500:
				return nil, errServerError
			case resp.StatusCode < 200 || resp.StatusCode >= 300:
				return nil, &emergency.UpstreamError{
					StatusCode: resp.StatusCode,
					Message:    errorMessage(body, resp.StatusCode),
				}
			}
			return body, nil
		})

		if err == nil {
			body, ok := result.([]byte)
			if !ok {
				return fmt.Errorf("unexpected result type from circuit breaker")
			}
			return json.Unmarshal(body, out)
		}

		// Definitive rejections and an open circuit propagate immediately.
		var ue *emergency.UpstreamError
		if errors.As(err, &ue) {
			return err
		}
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return fmt.Errorf("%w: %v", errCircuitOpen, err)
		}

		if attempt >= u.backoff.MaxRetries {
			return err
		}

		delay := u.backoff.InitialInterval * time.Duration(math.Pow(2, float64(attempt)))
		if u.backoff.MaxInterval > 0 && delay > u.backoff.MaxInterval {
			delay = u.backoff.MaxInterval
		}

		timer := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}
		attempt++
	}
}

// errorMessage pulls the upstream's own error text out of a failure body.
// WeatherAPI nests it under error.message; NewsAPI uses a top-level message.
func errorMessage(body []byte, status int) string {
	var payload struct {
		Error   json.RawMessage `json:"error"`
		Message string          `json:"message"`
	}
	if json.Unmarshal(body, &payload) == nil {
		if len(payload.Error) > 0 {
			var flat string
			if json.Unmarshal(payload.Error, &flat) == nil && flat != "" {
				return flat
			}
			var nested struct {
				Message string `json:"message"`
			}
			if json.Unmarshal(payload.Error, &nested) == nil && nested.Message != "" {
				return nested.Message
			}
		}
		if payload.Message != "" {
			return payload.Message
		}
	}
	return fmt.Sprintf("unexpected status code %d", status)
}
