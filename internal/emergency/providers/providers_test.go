package providers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/emergencyai/emergency-assistant/internal/emergency"
	"github.com/emergencyai/emergency-assistant/internal/location"
)

var melbourne = location.Location{City: "Melbourne", Country: "Australia"}

func fastBackoff() Backoff {
	return Backoff{MaxRetries: 2, InitialInterval: time.Millisecond, MaxInterval: 5 * time.Millisecond}
}

func TestWeatherAPICurrent(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/current.json", r.URL.Path)
		assert.Equal(t, "Melbourne,Australia", r.URL.Query().Get("q"))
		assert.Equal(t, "test-key", r.URL.Query().Get("key"))
		assert.Equal(t, "no", r.URL.Query().Get("aqi"))
		w.Write([]byte(`{
			"location": {"name": "Melbourne", "region": "Victoria", "country": "Australia", "lat": -37.81, "lon": 144.96},
			"current": {"temp_c": 18.5, "humidity": 65, "wind_kph": 20.2, "condition": {"text": "Partly cloudy"}}
		}`))
	}))
	defer srv.Close()

	p := NewWeatherAPIProvider(srv.Client(), "test-key")
	p.baseURL = srv.URL

	cur, err := p.Current(context.Background(), melbourne)
	require.NoError(t, err)
	assert.Equal(t, "Melbourne", cur.City)
	assert.Equal(t, "Partly cloudy", cur.Condition)
	require.NotNil(t, cur.TempC)
	assert.Equal(t, 18.5, *cur.TempC)
	assert.Equal(t, -37.81, cur.Lat)
}

// TestWeatherAPICurrentMissingFields verifies absent numeric fields decode to
// nil pointers rather than zeros.
func TestWeatherAPICurrentMissingFields(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"location": {"name": "Melbourne"}, "current": {"condition": {"text": "Clear"}}}`))
	}))
	defer srv.Close()

	p := NewWeatherAPIProvider(srv.Client(), "test-key")
	p.baseURL = srv.URL

	cur, err := p.Current(context.Background(), melbourne)
	require.NoError(t, err)
	assert.Nil(t, cur.TempC)
	assert.Nil(t, cur.Humidity)
	assert.Nil(t, cur.WindKph)
}

// TestWeatherAPIUpstreamError verifies a 4xx rejection surfaces the body's
// nested error message without retrying.
func TestWeatherAPIUpstreamError(t *testing.T) {
	var calls int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"error": {"code": 1006, "message": "No matching location found."}}`))
	}))
	defer srv.Close()

	p := NewWeatherAPIProvider(srv.Client(), "test-key")
	p.baseURL = srv.URL

	_, err := p.Current(context.Background(), melbourne)

	var ue *emergency.UpstreamError
	require.ErrorAs(t, err, &ue)
	assert.Equal(t, http.StatusBadRequest, ue.StatusCode)
	assert.Equal(t, "No matching location found.", ue.Message)
	assert.Equal(t, 1, calls, "definitive rejections must not be retried")
}

// TestWeatherAPIRetriesServerErrors verifies transient 5xx responses retry
// until a 2xx comes back.
func TestWeatherAPIRetriesServerErrors(t *testing.T) {
	var calls int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		if calls < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.Write([]byte(`{"location": {"name": "Melbourne"}, "current": {"condition": {"text": "Clear"}}}`))
	}))
	defer srv.Close()

	p := NewWeatherAPIProvider(srv.Client(), "test-key")
	p.baseURL = srv.URL
	p.up.backoff = fastBackoff()

	cur, err := p.Current(context.Background(), melbourne)
	require.NoError(t, err)
	assert.Equal(t, "Melbourne", cur.City)
	assert.Equal(t, 3, calls)
}

func TestWeatherAPIMissingKey(t *testing.T) {
	p := NewWeatherAPIProvider(http.DefaultClient, "")
	_, err := p.Current(context.Background(), melbourne)
	assert.Error(t, err)
	_, err = p.Forecast(context.Background(), melbourne, 3)
	assert.Error(t, err)
}

func TestWeatherAPIForecast(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/forecast.json", r.URL.Path)
		assert.Equal(t, "3", r.URL.Query().Get("days"))
		assert.Equal(t, "no", r.URL.Query().Get("alerts"))
		w.Write([]byte(`{
			"location": {"name": "Melbourne", "country": "Australia"},
			"forecast": {"forecastday": [
				{"date": "2026-09-01", "day": {"maxtemp_c": 19.0, "mintemp_c": 10.0, "daily_chance_of_rain": 80, "condition": {"text": "Rain"}}},
				{"date": "2026-09-02", "day": {"maxtemp_c": 21.0, "mintemp_c": 11.0, "daily_chance_of_rain": 10, "condition": {"text": "Sunny"}}},
				{"date": "2026-09-03", "day": {"condition": {"text": "Cloudy"}}}
			]}
		}`))
	}))
	defer srv.Close()

	p := NewWeatherAPIProvider(srv.Client(), "test-key")
	p.baseURL = srv.URL

	fc, err := p.Forecast(context.Background(), melbourne, 3)
	require.NoError(t, err)
	assert.Equal(t, "Melbourne", fc.City)
	require.Len(t, fc.Days, 3)
	assert.Equal(t, "Rain", fc.Days[0].Condition)
	require.NotNil(t, fc.Days[0].ChanceOfRain)
	assert.Equal(t, 80, *fc.Days[0].ChanceOfRain)
	assert.Nil(t, fc.Days[2].MaxTempC)
}

func TestNewsAPIHeadlines(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/everything", r.URL.Path)
		assert.Equal(t, "emergency", r.URL.Query().Get("q"))
		assert.Equal(t, "publishedAt", r.URL.Query().Get("sortBy"))
		assert.Equal(t, "5", r.URL.Query().Get("pageSize"))
		w.Write([]byte(`{"articles": [
			{"title": "Flood latest", "description": "Rivers rising.", "url": "https://example.com/1", "source": {"name": "Example News"}, "publishedAt": "2026-08-31T01:00:00Z"},
			{"title": "Storm update", "url": "https://example.com/2", "source": {"name": "Example News"}, "publishedAt": "2026-08-31T00:00:00Z"}
		]}`))
	}))
	defer srv.Close()

	p := NewNewsAPIProvider(srv.Client(), "test-key")
	p.baseURL = srv.URL

	articles, err := p.Headlines(context.Background())
	require.NoError(t, err)
	require.Len(t, articles, 2)
	assert.Equal(t, "Flood latest", articles[0].Title)
	assert.Equal(t, "Example News", articles[0].Source)
	assert.Empty(t, articles[1].Description)
}

// TestNewsAPIErrorMessage verifies NewsAPI's top-level message field is used
// as the rejection text.
func TestNewsAPIErrorMessage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"status": "error", "code": "apiKeyInvalid", "message": "Your API key is invalid."}`))
	}))
	defer srv.Close()

	p := NewNewsAPIProvider(srv.Client(), "bad-key")
	p.baseURL = srv.URL

	_, err := p.Headlines(context.Background())

	var ue *emergency.UpstreamError
	require.ErrorAs(t, err, &ue)
	assert.Equal(t, "Your API key is invalid.", ue.Message)
}

func TestErrorMessageShapes(t *testing.T) {
	assert.Equal(t, "flat text", errorMessage([]byte(`{"error": "flat text"}`), 400))
	assert.Equal(t, "nested text", errorMessage([]byte(`{"error": {"message": "nested text"}}`), 400))
	assert.Equal(t, "top level", errorMessage([]byte(`{"message": "top level"}`), 400))
	assert.Equal(t, "unexpected status code 418", errorMessage([]byte(`not json`), 418))
}

func TestStaticResourceDirectory(t *testing.T) {
	d := NewStaticResourceDirectory()

	res, err := d.Nearby(context.Background(), location.Location{City: "Sydney"})
	require.NoError(t, err)
	assert.Equal(t, "Sydney", res.City)
	assert.Equal(t, -37.8136, res.Lat)
	assert.Equal(t, 144.9631, res.Lon)
	require.Len(t, res.Resources, 3)
	assert.Equal(t, "Pharmacy", res.Resources[0].Type)
	assert.Equal(t, "City Center Shelter: 100 beds available", res.Resources[1].Status)
}

func TestStaticFirstAidLibrary(t *testing.T) {
	l := NewStaticFirstAidLibrary()

	tips, err := l.Tips(context.Background())
	require.NoError(t, err)
	require.Len(t, tips, 3)
	assert.Equal(t, "For cuts, clean the wound with water and apply antiseptic.", tips[0].Message)

	// Callers get a copy.
	tips[0].Message = "mutated"
	fresh, _ := l.Tips(context.Background())
	assert.Equal(t, "For cuts, clean the wound with water and apply antiseptic.", fresh[0].Message)
}
