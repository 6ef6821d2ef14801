package location

import (
	"context"

	"github.com/kelvins/geocoder"
)

// GoogleReverseGeocoder resolves coordinates through the Google Geocoding API
// via the kelvins/geocoder client.
type GoogleReverseGeocoder struct{}

// NewGoogleReverseGeocoder configures the geocoder API key and returns the
// adapter. The key is package-global in the underlying client.
func NewGoogleReverseGeocoder(apiKey string) *GoogleReverseGeocoder {
	geocoder.ApiKey = apiKey
	return &GoogleReverseGeocoder{}
}

// ReverseGeocode implements ReverseGeocoder. Missing city falls back to the
// county field, mirroring the city-or-town preference of address payloads.
func (g *GoogleReverseGeocoder) ReverseGeocode(_ context.Context, pos Coordinates) (Place, error) {
	addresses, err := geocoder.GeocodingReverse(geocoder.Location{
		Latitude:  pos.Latitude,
		Longitude: pos.Longitude,
	})
	if err != nil {
		return Place{}, err
	}
	if len(addresses) == 0 {
		return Place{}, nil
	}
	a := addresses[0]
	city := a.City
	if city == "" {
		city = a.County
	}
	return Place{City: city, Country: a.Country}, nil
}
