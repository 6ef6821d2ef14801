package emergency

import (
	"errors"
	"fmt"
)

// ErrShapeViolation marks an upstream payload missing a field that is never
// expected to be absent (city or condition on weather categories).
var ErrShapeViolation = errors.New("upstream payload shape violation")

// UpstreamError is a definitive non-2xx rejection from an upstream provider.
// Message is the provider's own error text when the body carried one, else a
// status-derived message. Definitive rejections are never retried.
type UpstreamError struct {
	StatusCode int
	Message    string
}

func (e *UpstreamError) Error() string {
	return e.Message
}

// AggregationError reports a failed fetch for one category. It moves only the
// affected panel to its errored state; other panels are never involved.
type AggregationError struct {
	Category Category
	Message  string
	Err      error
}

func (e *AggregationError) Error() string {
	return fmt.Sprintf("fetching %s: %s", e.Category, e.Message)
}

func (e *AggregationError) Unwrap() error {
	return e.Err
}

// aggError wraps an upstream failure into an AggregationError, preferring the
// provider's own error text.
func aggError(category Category, err error) *AggregationError {
	msg := err.Error()
	var ue *UpstreamError
	if errors.As(err, &ue) {
		msg = ue.Message
	}
	return &AggregationError{Category: category, Message: msg, Err: err}
}
