package emergency

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/emergencyai/emergency-assistant/internal/alert"
	"github.com/emergencyai/emergency-assistant/internal/location"
)

type fakeWeather struct {
	current     CurrentConditions
	currentErr  error
	forecast    ForecastConditions
	forecastErr error
}

func (f *fakeWeather) Current(context.Context, location.Location) (CurrentConditions, error) {
	return f.current, f.currentErr
}

func (f *fakeWeather) Forecast(context.Context, location.Location, int) (ForecastConditions, error) {
	return f.forecast, f.forecastErr
}

type fakeNews struct {
	articles []Article
	err      error
}

func (f *fakeNews) Headlines(context.Context) ([]Article, error) {
	return f.articles, f.err
}

type fakeResources struct {
	result ResourceResult
	err    error
}

func (f *fakeResources) Nearby(context.Context, location.Location) (ResourceResult, error) {
	return f.result, f.err
}

type fakeFirstAid struct {
	tips []Tip
	err  error
}

func (f *fakeFirstAid) Tips(context.Context) ([]Tip, error) {
	return f.tips, f.err
}

func ptr[T any](v T) *T { return &v }

var testLoc = location.Location{City: "Melbourne", Country: "Australia"}

func TestFetchAlertsNormalizes(t *testing.T) {
	weather := &fakeWeather{current: CurrentConditions{
		City:      "Melbourne",
		Region:    "Victoria",
		Country:   "Australia",
		Condition: "Thunderstorm",
		TempC:     ptr(21.5),
		Humidity:  ptr(80.0),
		WindKph:   ptr(32.0),
		Lat:       -37.81,
		Lon:       144.96,
	}}
	svc := NewService(weather, nil, nil, nil)

	res, err := svc.Fetch(context.Background(), CategoryAlerts, testLoc)
	require.NoError(t, err)
	require.NotNil(t, res.Alerts)

	got := res.Alerts
	assert.Equal(t, "21.5 °C", got.Temperature)
	assert.Equal(t, "80%", got.Humidity)
	assert.Equal(t, "32 km/h", got.WindSpeed)
	assert.Equal(t, alert.SeverityStorm, got.Alert.Severity)
	assert.Equal(t, "Severe storm warning: Take immediate shelter.", got.Alert.Message)

	coords, ok := res.Coordinates()
	require.True(t, ok)
	assert.Equal(t, Coordinates{Lat: -37.81, Lon: 144.96}, coords)
}

// TestFetchAlertsPlaceholders verifies absent optional numeric fields render
// as the placeholder, never as zero.
func TestFetchAlertsPlaceholders(t *testing.T) {
	weather := &fakeWeather{current: CurrentConditions{
		City:      "Melbourne",
		Condition: "Clear",
	}}
	svc := NewService(weather, nil, nil, nil)

	res, err := svc.Fetch(context.Background(), CategoryAlerts, testLoc)
	require.NoError(t, err)
	assert.Equal(t, Placeholder, res.Alerts.Temperature)
	assert.Equal(t, Placeholder, res.Alerts.Humidity)
	assert.Equal(t, Placeholder, res.Alerts.WindSpeed)
	assert.Equal(t, alert.NoAlertMessage, res.Alerts.Alert.Message)
}

func TestFetchAlertsShapeViolation(t *testing.T) {
	weather := &fakeWeather{current: CurrentConditions{City: "Melbourne"}}
	svc := NewService(weather, nil, nil, nil)

	_, err := svc.Fetch(context.Background(), CategoryAlerts, testLoc)
	assert.ErrorIs(t, err, ErrShapeViolation)
}

// TestFetchAlertsUpstreamError verifies the provider's own error text rides
// inside the aggregation error.
func TestFetchAlertsUpstreamError(t *testing.T) {
	weather := &fakeWeather{currentErr: &UpstreamError{StatusCode: 403, Message: "API key disabled."}}
	svc := NewService(weather, nil, nil, nil)

	_, err := svc.Fetch(context.Background(), CategoryAlerts, testLoc)

	var aggErr *AggregationError
	require.ErrorAs(t, err, &aggErr)
	assert.Equal(t, CategoryAlerts, aggErr.Category)
	assert.Equal(t, "API key disabled.", aggErr.Message)

	var ue *UpstreamError
	assert.ErrorAs(t, err, &ue)
}

// TestFetchForecastSortsAndTruncates verifies days come back chronological
// and capped at three even when the provider returns more, out of order.
func TestFetchForecastSortsAndTruncates(t *testing.T) {
	weather := &fakeWeather{forecast: ForecastConditions{
		City:    "Melbourne",
		Country: "Australia",
		Days: []ForecastDayRaw{
			{Date: "2026-09-03", Condition: "Sunny", MaxTempC: ptr(25.0), MinTempC: ptr(14.0), ChanceOfRain: ptr(0)},
			{Date: "2026-09-01", Condition: "Rain", MaxTempC: ptr(18.0), MinTempC: ptr(11.0), ChanceOfRain: ptr(90)},
			{Date: "2026-09-04", Condition: "Cloudy"},
			{Date: "2026-09-02", Condition: "Storm", MaxTempC: ptr(20.0), MinTempC: ptr(12.0), ChanceOfRain: ptr(70)},
		},
	}}
	svc := NewService(weather, nil, nil, nil)

	res, err := svc.Fetch(context.Background(), CategoryForecast, testLoc)
	require.NoError(t, err)
	require.NotNil(t, res.Forecast)

	days := res.Forecast.Forecast
	require.Len(t, days, 3)
	assert.Equal(t, "2026-09-01", days[0].Date)
	assert.Equal(t, "2026-09-02", days[1].Date)
	assert.Equal(t, "2026-09-03", days[2].Date)
	assert.Equal(t, "90%", days[0].ChanceOfRain)
	assert.Equal(t, "18 °C", days[0].MaxTemp)
}

func TestFetchForecastTooFewDays(t *testing.T) {
	weather := &fakeWeather{forecast: ForecastConditions{
		City: "Melbourne",
		Days: []ForecastDayRaw{{Date: "2026-09-01"}, {Date: "2026-09-02"}},
	}}
	svc := NewService(weather, nil, nil, nil)

	_, err := svc.Fetch(context.Background(), CategoryForecast, testLoc)
	assert.ErrorIs(t, err, ErrShapeViolation)
}

func TestFetchRecommendations(t *testing.T) {
	weather := &fakeWeather{current: CurrentConditions{
		City:      "Melbourne",
		Country:   "Australia",
		Condition: "Heavy rain",
		Lat:       -37.81,
		Lon:       144.96,
	}}
	svc := NewService(weather, nil, nil, nil)

	res, err := svc.Fetch(context.Background(), CategoryRecommendations, testLoc)
	require.NoError(t, err)
	require.NotNil(t, res.Recommendations)
	require.Len(t, res.Recommendations.Recommendations, 2)
	assert.Equal(t, "Stay indoors and avoid flooded roads.", res.Recommendations.Recommendations[0].Message)
}

// TestFetchNewsDescriptionDefault verifies a missing description is replaced
// and article order is preserved.
func TestFetchNewsDescriptionDefault(t *testing.T) {
	news := &fakeNews{articles: []Article{
		{Title: "Flood latest", Description: "Rivers rising."},
		{Title: "Storm update"},
	}}
	svc := NewService(nil, news, nil, nil)

	res, err := svc.Fetch(context.Background(), CategoryNews, testLoc)
	require.NoError(t, err)
	require.Len(t, res.News.Articles, 2)
	assert.Equal(t, "Rivers rising.", res.News.Articles[0].Description)
	assert.Equal(t, noDescription, res.News.Articles[1].Description)
}

func TestFetchNewsUpstreamError(t *testing.T) {
	news := &fakeNews{err: errors.New("connection refused")}
	svc := NewService(nil, news, nil, nil)

	_, err := svc.Fetch(context.Background(), CategoryNews, testLoc)

	var aggErr *AggregationError
	require.ErrorAs(t, err, &aggErr)
	assert.Equal(t, CategoryNews, aggErr.Category)
	assert.Equal(t, "connection refused", aggErr.Message)
}

func TestFetchFirstAidIgnoresLocation(t *testing.T) {
	firstAid := &fakeFirstAid{tips: []Tip{{Message: "Apply pressure to stop bleeding."}}}
	svc := NewService(nil, nil, nil, firstAid)

	res, err := svc.Fetch(context.Background(), CategoryFirstAid, location.Location{})
	require.NoError(t, err)
	require.Len(t, res.FirstAid.Tips, 1)

	_, ok := res.Coordinates()
	assert.False(t, ok)
}

func TestFetchResources(t *testing.T) {
	resources := &fakeResources{result: ResourceResult{
		City: "Melbourne",
		Lat:  -37.8136,
		Lon:  144.9631,
		Resources: []Resource{
			{Type: "Pharmacy", Status: "Open"},
		},
	}}
	svc := NewService(nil, nil, resources, nil)

	res, err := svc.Fetch(context.Background(), CategoryResources, testLoc)
	require.NoError(t, err)
	require.NotNil(t, res.Resources)

	coords, ok := res.Coordinates()
	require.True(t, ok)
	assert.Equal(t, -37.8136, coords.Lat)
}

func TestFetchUnknownCategory(t *testing.T) {
	svc := NewService(nil, nil, nil, nil)
	_, err := svc.Fetch(context.Background(), Category("bogus"), testLoc)
	assert.Error(t, err)
}

func TestParseCategory(t *testing.T) {
	for _, c := range Categories {
		got, err := ParseCategory(string(c))
		require.NoError(t, err)
		assert.Equal(t, c, got)
	}
	_, err := ParseCategory("weather")
	assert.Error(t, err)
}
