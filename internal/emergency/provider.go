package emergency

import (
	"context"

	"github.com/emergencyai/emergency-assistant/internal/location"
)

// CurrentConditions is a weather provider's raw current-conditions payload.
// Optional numeric fields are pointers so an absent field can be told apart
// from a zero value and rendered as a placeholder.
type CurrentConditions struct {
	City      string
	Region    string
	Country   string
	Condition string
	TempC     *float64
	Humidity  *float64
	WindKph   *float64
	Lat       float64
	Lon       float64
}

// ForecastDayRaw is one raw forecast day from a weather provider.
type ForecastDayRaw struct {
	Date         string
	Condition    string
	MaxTempC     *float64
	MinTempC     *float64
	ChanceOfRain *int
}

// ForecastConditions is a weather provider's raw multi-day forecast payload.
type ForecastConditions struct {
	City    string
	Country string
	Days    []ForecastDayRaw
}

// WeatherProvider abstracts the upstream weather source.
type WeatherProvider interface {
	Current(ctx context.Context, loc location.Location) (CurrentConditions, error)
	Forecast(ctx context.Context, loc location.Location, days int) (ForecastConditions, error)
}

// NewsProvider abstracts the upstream emergency-news source. Articles keep
// provider order.
type NewsProvider interface {
	Headlines(ctx context.Context) ([]Article, error)
}

// ResourceDirectory abstracts the emergency-resource lookup for a location.
type ResourceDirectory interface {
	Nearby(ctx context.Context, loc location.Location) (ResourceResult, error)
}

// FirstAidLibrary abstracts the first-aid tip source. Tips are
// location-independent.
type FirstAidLibrary interface {
	Tips(ctx context.Context) ([]Tip, error)
}
