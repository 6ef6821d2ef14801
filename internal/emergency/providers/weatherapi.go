package providers

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/emergencyai/emergency-assistant/internal/emergency"
	"github.com/emergencyai/emergency-assistant/internal/location"
)

const defaultWeatherAPIBaseURL = "https://api.weatherapi.com/v1"

// WeatherAPIProvider implements emergency.WeatherProvider for WeatherAPI.com.
type WeatherAPIProvider struct {
	apiKey  string
	baseURL string
	up      upstream
}

// NewWeatherAPIProvider creates a WeatherAPI provider sharing the given HTTP
// client.
func NewWeatherAPIProvider(client *http.Client, apiKey string) *WeatherAPIProvider {
	return &WeatherAPIProvider{
		apiKey:  apiKey,
		baseURL: defaultWeatherAPIBaseURL,
		up:      newUpstream("weatherapi", client),
	}
}

// query builds WeatherAPI's "q" value: "city" or "city,country".
func query(loc location.Location) string {
	if loc.Country == "" {
		return loc.City
	}
	return loc.City + "," + loc.Country
}

// Current implements emergency.WeatherProvider.
func (p *WeatherAPIProvider) Current(ctx context.Context, loc location.Location) (emergency.CurrentConditions, error) {
	if p.apiKey == "" {
		return emergency.CurrentConditions{}, fmt.Errorf("weatherapi key missing")
	}

	values := url.Values{}
	values.Set("key", p.apiKey)
	values.Set("q", query(loc))
	values.Set("aqi", "no")

	var payload struct {
		Location struct {
			Name    string  `json:"name"`
			Region  string  `json:"region"`
			Country string  `json:"country"`
			Lat     float64 `json:"lat"`
			Lon     float64 `json:"lon"`
		} `json:"location"`
		Current struct {
			TempC     *float64 `json:"temp_c"`
			Humidity  *float64 `json:"humidity"`
			WindKph   *float64 `json:"wind_kph"`
			Condition struct {
				Text string `json:"text"`
			} `json:"condition"`
		} `json:"current"`
	}

	u := fmt.Sprintf("%s/current.json?%s", p.baseURL, values.Encode())
	if err := p.up.getJSON(ctx, u, &payload); err != nil {
		return emergency.CurrentConditions{}, err
	}

	return emergency.CurrentConditions{
		City:      payload.Location.Name,
		Region:    payload.Location.Region,
		Country:   payload.Location.Country,
		Condition: payload.Current.Condition.Text,
		TempC:     payload.Current.TempC,
		Humidity:  payload.Current.Humidity,
		WindKph:   payload.Current.WindKph,
		Lat:       payload.Location.Lat,
		Lon:       payload.Location.Lon,
	}, nil
}

// Forecast implements emergency.WeatherProvider.
func (p *WeatherAPIProvider) Forecast(ctx context.Context, loc location.Location, days int) (emergency.ForecastConditions, error) {
	if p.apiKey == "" {
		return emergency.ForecastConditions{}, fmt.Errorf("weatherapi key missing")
	}

	values := url.Values{}
	values.Set("key", p.apiKey)
	values.Set("q", query(loc))
	values.Set("days", fmt.Sprintf("%d", days))
	values.Set("aqi", "no")
	values.Set("alerts", "no")

	var payload struct {
		Location struct {
			Name    string `json:"name"`
			Country string `json:"country"`
		} `json:"location"`
		Forecast struct {
			ForecastDay []struct {
				Date string `json:"date"`
				Day  struct {
					MaxTempC     *float64 `json:"maxtemp_c"`
					MinTempC     *float64 `json:"mintemp_c"`
					ChanceOfRain *int     `json:"daily_chance_of_rain"`
					Condition    struct {
						Text string `json:"text"`
					} `json:"condition"`
				} `json:"day"`
			} `json:"forecastday"`
		} `json:"forecast"`
	}

	u := fmt.Sprintf("%s/forecast.json?%s", p.baseURL, values.Encode())
	if err := p.up.getJSON(ctx, u, &payload); err != nil {
		return emergency.ForecastConditions{}, err
	}

	fc := emergency.ForecastConditions{
		City:    payload.Location.Name,
		Country: payload.Location.Country,
	}
	for _, d := range payload.Forecast.ForecastDay {
		fc.Days = append(fc.Days, emergency.ForecastDayRaw{
			Date:         d.Date,
			Condition:    d.Day.Condition.Text,
			MaxTempC:     d.Day.MaxTempC,
			MinTempC:     d.Day.MinTempC,
			ChanceOfRain: d.Day.ChanceOfRain,
		})
	}
	return fc, nil
}
