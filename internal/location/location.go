// Package location resolves and tracks the active location all emergency
// information is scoped to.
package location

// Location is a normalized city/country pair. City is required; an unknown
// country is stored as "Unknown".
type Location struct {
	City    string `json:"city"`
	Country string `json:"country"`
}

// Default is adopted on first run when nothing has been stored yet.
var Default = Location{City: "Melbourne", Country: "Australia"}

// Key returns a canonical string key for indexing this location.
func (l Location) Key() string {
	return l.City + ":" + l.Country
}

func (l Location) String() string {
	if l.Country == "" {
		return l.City
	}
	return l.City + ", " + l.Country
}

// Coordinates is a latitude/longitude pair from a geolocation collaborator.
type Coordinates struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Place is a possibly-incomplete city/country pair returned by lookup
// collaborators. Missing fields take the default location's fields.
type Place struct {
	City    string
	Country string
}
