package providers

import (
	"context"

	"github.com/emergencyai/emergency-assistant/internal/emergency"
	"github.com/emergencyai/emergency-assistant/internal/location"
)

// StaticResourceDirectory serves a fixed resource list with fixed map
// coordinates. The city echoes the requested location; the coordinates stay
// on the directory's seed point until a live directory replaces this.
type StaticResourceDirectory struct {
	lat, lon  float64
	resources []emergency.Resource
}

// NewStaticResourceDirectory creates the directory with its seed data.
func NewStaticResourceDirectory() *StaticResourceDirectory {
	return &StaticResourceDirectory{
		lat: -37.8136,
		lon: 144.9631,
		resources: []emergency.Resource{
			{Type: "Pharmacy", Status: "Main St Pharmacy: Open 24/7"},
			{Type: "Shelter", Status: "City Center Shelter: 100 beds available"},
			{Type: "Hospital", Status: "General Hospital: Emergency services active"},
		},
	}
}

// Nearby implements emergency.ResourceDirectory.
func (d *StaticResourceDirectory) Nearby(_ context.Context, loc location.Location) (emergency.ResourceResult, error) {
	resources := make([]emergency.Resource, len(d.resources))
	copy(resources, d.resources)
	return emergency.ResourceResult{
		City:      loc.City,
		Lat:       d.lat,
		Lon:       d.lon,
		Resources: resources,
	}, nil
}

// StaticFirstAidLibrary serves the fixed first-aid tip set.
type StaticFirstAidLibrary struct {
	tips []emergency.Tip
}

// NewStaticFirstAidLibrary creates the library with its seed tips.
func NewStaticFirstAidLibrary() *StaticFirstAidLibrary {
	return &StaticFirstAidLibrary{
		tips: []emergency.Tip{
			{Message: "For cuts, clean the wound with water and apply antiseptic."},
			{Message: "For burns, run cold water over the burn for 10 minutes."},
			{Message: "Learn CPR and keep emergency numbers handy."},
		},
	}
}

// Tips implements emergency.FirstAidLibrary.
func (l *StaticFirstAidLibrary) Tips(_ context.Context) ([]emergency.Tip, error) {
	tips := make([]emergency.Tip, len(l.tips))
	copy(tips, l.tips)
	return tips, nil
}
