package location

import (
	"context"
	"fmt"
	"log"
	"strings"
	"sync"

	"github.com/emergencyai/emergency-assistant/internal/store"
)

// Geolocator reports the device's current position.
type Geolocator interface {
	CurrentPosition(ctx context.Context) (Coordinates, error)
}

// ReverseGeocoder resolves coordinates to a city/country pair.
type ReverseGeocoder interface {
	ReverseGeocode(ctx context.Context, pos Coordinates) (Place, error)
}

// IPLocator guesses a city/country pair from the network address. It is the
// detection path when no device geolocation capability exists.
type IPLocator interface {
	Lookup(ctx context.Context) (Place, error)
}

// RemoteStore mirrors adopted locations to the backend. Writes are
// best-effort: a failure is logged and never rolls back the local adoption.
type RemoteStore interface {
	Save(ctx context.Context, loc Location) error
}

// Resolver owns the process-wide current location. Every successful
// resolution replaces it wholesale, writes it to local storage, and mirrors
// it to the remote store, in that order.
type Resolver struct {
	geo    Geolocator
	rev    ReverseGeocoder
	ip     IPLocator
	remote RemoteStore
	local  store.KV

	mu      sync.RWMutex
	current Location
	subs    []func(Location)
}

// NewResolver creates a Resolver seeded from local storage, or from Default
// when nothing has been stored yet. Any collaborator except local may be nil
// if the corresponding resolution path is never used.
func NewResolver(geo Geolocator, rev ReverseGeocoder, ip IPLocator, remote RemoteStore, local store.KV) *Resolver {
	r := &Resolver{
		geo:     geo,
		rev:     rev,
		ip:      ip,
		remote:  remote,
		local:   local,
		current: Default,
	}
	var saved Location
	if ok, err := local.Get(store.KeyLocation, &saved); err != nil {
		log.Printf("ERROR: reading stored location: %v", err)
	} else if ok && saved.City != "" {
		r.current = saved
	}
	return r
}

// Current returns the location in effect right now. Operations scoped to a
// location must capture this value when they start, not when they complete.
func (r *Resolver) Current() Location {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.current
}

// Subscribe registers a change-notification callback, invoked after every
// successful adoption with the new location.
func (r *Resolver) Subscribe(fn func(Location)) {
	r.mu.Lock()
	r.subs = append(r.subs, fn)
	r.mu.Unlock()
}

// DetectByDevice resolves the location from device geolocation plus a reverse
// geocode. A failure anywhere in that chain surfaces as a GeolocationError
// with no state mutation; there is no silent fallback to other paths.
func (r *Resolver) DetectByDevice(ctx context.Context) (Location, error) {
	if r.geo == nil || r.rev == nil {
		return Location{}, &GeolocationError{Err: fmt.Errorf("no geolocation capability")}
	}
	pos, err := r.geo.CurrentPosition(ctx)
	if err != nil {
		return Location{}, &GeolocationError{Err: err}
	}
	place, err := r.rev.ReverseGeocode(ctx, pos)
	if err != nil {
		return Location{}, &GeolocationError{Err: err}
	}
	loc := placeOrDefault(place)
	if err := r.adopt(ctx, loc); err != nil {
		return Location{}, err
	}
	return loc, nil
}

// DetectByNetwork resolves the location from the IP-location collaborator,
// substituting the default location's fields for anything missing.
func (r *Resolver) DetectByNetwork(ctx context.Context) (Location, error) {
	if r.ip == nil {
		return Location{}, fmt.Errorf("no ip-location capability")
	}
	place, err := r.ip.Lookup(ctx)
	if err != nil {
		return Location{}, fmt.Errorf("ip lookup failed: %w", err)
	}
	loc := placeOrDefault(place)
	if err := r.adopt(ctx, loc); err != nil {
		return Location{}, err
	}
	return loc, nil
}

// SetManual adopts a user-entered location. City is required; country may be
// empty and defaults to "Unknown". On validation failure the current location
// is untouched.
func (r *Resolver) SetManual(ctx context.Context, city, country string) (Location, error) {
	city = strings.TrimSpace(city)
	country = strings.TrimSpace(country)
	if city == "" {
		return Location{}, &ValidationError{Message: "city is required"}
	}
	loc := Location{City: city, Country: country}
	if err := r.adopt(ctx, loc); err != nil {
		return Location{}, err
	}
	return r.Current(), nil
}

// adopt commits loc: in-memory first, then local storage, then a best-effort
// remote write. The in-memory value and local storage never diverge beyond
// the single pending local write below.
func (r *Resolver) adopt(ctx context.Context, loc Location) error {
	if loc.Country == "" {
		loc.Country = "Unknown"
	}

	r.mu.Lock()
	r.current = loc
	subs := make([]func(Location), len(r.subs))
	copy(subs, r.subs)
	r.mu.Unlock()

	if err := r.local.Set(store.KeyLocation, loc); err != nil {
		return &PersistenceWriteError{Store: "local", Err: err}
	}

	if r.remote != nil {
		if err := r.remote.Save(ctx, loc); err != nil {
			// Local-first durability: remote failure is logged only.
			log.Printf("ERROR: remote location save failed for %s: %v", loc.Key(), err)
		}
	}

	for _, fn := range subs {
		fn(loc)
	}
	return nil
}

func placeOrDefault(p Place) Location {
	loc := Default
	if p.City != "" {
		loc.City = p.City
	}
	if p.Country != "" {
		loc.Country = p.Country
	}
	return loc
}
