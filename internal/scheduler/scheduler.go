// Package scheduler periodically re-fetches weather alerts for the saved
// location and pushes severe classifications through a notifier.
package scheduler

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/go-co-op/gocron"

	"github.com/emergencyai/emergency-assistant/internal/alert"
	"github.com/emergencyai/emergency-assistant/internal/emergency"
	"github.com/emergencyai/emergency-assistant/internal/location"
	"github.com/emergencyai/emergency-assistant/internal/store"
)

// AlertSource fetches normalized category data; satisfied by the aggregator
// service.
type AlertSource interface {
	Fetch(ctx context.Context, category emergency.Category, loc location.Location) (*emergency.CategoryResult, error)
}

// Notifier delivers severe weather alerts. Delivery is fire-and-forget:
// failures are logged and never alter the data model.
type Notifier interface {
	Notify(a alert.Alert, loc location.Location) error
}

// LogNotifier writes notifications to the process log.
type LogNotifier struct{}

// Notify implements Notifier.
func (LogNotifier) Notify(a alert.Alert, loc location.Location) error {
	log.Printf("ALERT: %s: %s", loc, a.Message)
	return nil
}

// Scheduler runs the periodic alert-refresh job.
type Scheduler struct {
	scheduler *gocron.Scheduler
	source    AlertSource
	locations store.LocationStore
	fallback  location.Location
	interval  time.Duration
	notifier  Notifier
}

// New creates a Scheduler. fallback is used while no location has been saved.
func New(source AlertSource, locations store.LocationStore, fallback location.Location, interval time.Duration, notifier Notifier) *Scheduler {
	return &Scheduler{
		scheduler: gocron.NewScheduler(time.UTC),
		source:    source,
		locations: locations,
		fallback:  fallback,
		interval:  interval,
		notifier:  notifier,
	}
}

// Start schedules the periodic job and starts the underlying scheduler.
func (s *Scheduler) Start() error {
	minutes := int(s.interval.Minutes())
	if minutes <= 0 {
		minutes = 15
	}

	_, err := s.scheduler.Every(minutes).Minutes().Do(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		s.RunOnce(ctx)
	})
	if err != nil {
		return err
	}

	s.scheduler.StartAsync()
	return nil
}

// RunOnce refreshes alerts for the most recently saved location (or the
// fallback) and notifies when the classification is severe.
func (s *Scheduler) RunOnce(ctx context.Context) {
	loc := s.fallback
	saved, err := s.locations.Latest(ctx)
	switch {
	case err == nil:
		loc = location.Location{City: saved.City, Country: saved.Country}
	case !errors.Is(err, store.ErrNotFound):
		log.Printf("ERROR: scheduler: reading saved location: %v", err)
	}

	res, err := s.source.Fetch(ctx, emergency.CategoryAlerts, loc)
	if err != nil {
		log.Printf("ERROR: scheduler: alert refresh failed for %s: %v", loc.Key(), err)
		return
	}
	if res.Alerts == nil || !res.Alerts.Alert.Severe() {
		return
	}
	if err := s.notifier.Notify(res.Alerts.Alert, loc); err != nil {
		log.Printf("ERROR: scheduler: notification failed: %v", err)
	}
}

// Stop stops the scheduler and cancels any future jobs.
func (s *Scheduler) Stop() {
	if s.scheduler != nil {
		s.scheduler.Stop()
	}
}
