package scheduler

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/emergencyai/emergency-assistant/internal/alert"
	"github.com/emergencyai/emergency-assistant/internal/emergency"
	"github.com/emergencyai/emergency-assistant/internal/location"
	"github.com/emergencyai/emergency-assistant/internal/store"
)

type fakeSource struct {
	condition string
	err       error
	seen      []location.Location
}

func (f *fakeSource) Fetch(_ context.Context, _ emergency.Category, loc location.Location) (*emergency.CategoryResult, error) {
	f.seen = append(f.seen, loc)
	if f.err != nil {
		return nil, f.err
	}
	return &emergency.CategoryResult{
		Category: emergency.CategoryAlerts,
		Alerts: &emergency.AlertResult{
			City:      loc.City,
			Condition: f.condition,
			Alert:     alert.Classify(f.condition),
		},
	}, nil
}

type fakeNotifier struct {
	alerts []alert.Alert
	err    error
}

func (f *fakeNotifier) Notify(a alert.Alert, _ location.Location) error {
	f.alerts = append(f.alerts, a)
	return f.err
}

func TestRunOnceNotifiesOnSevereAlert(t *testing.T) {
	source := &fakeSource{condition: "Severe thunderstorm"}
	notifier := &fakeNotifier{}
	s := New(source, store.NewMemoryLocationStore(10), location.Default, 0, notifier)

	s.RunOnce(context.Background())

	require.Len(t, notifier.alerts, 1)
	assert.Equal(t, alert.SeverityStorm, notifier.alerts[0].Severity)
}

func TestRunOnceQuietOnCalmConditions(t *testing.T) {
	source := &fakeSource{condition: "Partly cloudy"}
	notifier := &fakeNotifier{}
	s := New(source, store.NewMemoryLocationStore(10), location.Default, 0, notifier)

	s.RunOnce(context.Background())
	assert.Empty(t, notifier.alerts)
}

// TestRunOncePrefersSavedLocation verifies the job refreshes the most
// recently saved location and only falls back when none exists.
func TestRunOncePrefersSavedLocation(t *testing.T) {
	source := &fakeSource{condition: "Clear"}
	locations := store.NewMemoryLocationStore(10)
	s := New(source, locations, location.Default, 0, &fakeNotifier{})

	s.RunOnce(context.Background())
	require.Len(t, source.seen, 1)
	assert.Equal(t, location.Default, source.seen[0])

	require.NoError(t, locations.Save(context.Background(), store.SavedLocation{City: "Darwin", Country: "Australia"}))
	s.RunOnce(context.Background())
	require.Len(t, source.seen, 2)
	assert.Equal(t, "Darwin", source.seen[1].City)
}

func TestRunOnceFetchFailure(t *testing.T) {
	source := &fakeSource{err: errors.New("upstream down")}
	notifier := &fakeNotifier{}
	s := New(source, store.NewMemoryLocationStore(10), location.Default, 0, notifier)

	s.RunOnce(context.Background())
	assert.Empty(t, notifier.alerts)
}
