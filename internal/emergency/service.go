package emergency

import (
	"context"
	"fmt"
	"sort"

	"github.com/emergencyai/emergency-assistant/internal/alert"
	"github.com/emergencyai/emergency-assistant/internal/location"
)

// Placeholder is rendered for optional payload fields the upstream omitted.
const Placeholder = "N/A"

// forecastDays is the fixed length of the forecast view.
const forecastDays = 3

// noDescription substitutes a missing article description.
const noDescription = "No description available."

// Service is the data aggregator: it fans a category request out to the
// matching provider and normalizes the response into the category's fixed
// result shape.
type Service struct {
	weather   WeatherProvider
	news      NewsProvider
	resources ResourceDirectory
	firstAid  FirstAidLibrary
}

// NewService creates a Service over the four category collaborators.
func NewService(weather WeatherProvider, news NewsProvider, resources ResourceDirectory, firstAid FirstAidLibrary) *Service {
	return &Service{
		weather:   weather,
		news:      news,
		resources: resources,
		firstAid:  firstAid,
	}
}

// Fetch retrieves and normalizes one category for the given location. The
// first-aid category ignores the location entirely. Upstream failures surface
// as *AggregationError carrying the provider's own error text when present.
func (s *Service) Fetch(ctx context.Context, category Category, loc location.Location) (*CategoryResult, error) {
	switch category {
	case CategoryAlerts:
		return s.fetchAlerts(ctx, loc)
	case CategoryForecast:
		return s.fetchForecast(ctx, loc)
	case CategoryRecommendations:
		return s.fetchRecommendations(ctx, loc)
	case CategoryFirstAid:
		return s.fetchFirstAid(ctx)
	case CategoryResources:
		return s.fetchResources(ctx, loc)
	case CategoryNews:
		return s.fetchNews(ctx)
	default:
		return nil, fmt.Errorf("unknown category %q", category)
	}
}

func (s *Service) fetchAlerts(ctx context.Context, loc location.Location) (*CategoryResult, error) {
	cur, err := s.weather.Current(ctx, loc)
	if err != nil {
		return nil, aggError(CategoryAlerts, err)
	}
	if cur.City == "" || cur.Condition == "" {
		return nil, fmt.Errorf("%w: current conditions missing city or condition", ErrShapeViolation)
	}

	result := AlertResult{
		City:        cur.City,
		Region:      cur.Region,
		Country:     cur.Country,
		Condition:   cur.Condition,
		Temperature: formatUnit(cur.TempC, "°C"),
		Humidity:    formatPercent(cur.Humidity),
		WindSpeed:   formatUnit(cur.WindKph, "km/h"),
		Alert:       alert.Classify(cur.Condition),
		Lat:         cur.Lat,
		Lon:         cur.Lon,
	}
	return &CategoryResult{Category: CategoryAlerts, Alerts: &result}, nil
}

func (s *Service) fetchForecast(ctx context.Context, loc location.Location) (*CategoryResult, error) {
	fc, err := s.weather.Forecast(ctx, loc, forecastDays)
	if err != nil {
		return nil, aggError(CategoryForecast, err)
	}
	if fc.City == "" {
		return nil, fmt.Errorf("%w: forecast missing city", ErrShapeViolation)
	}
	if len(fc.Days) < forecastDays {
		return nil, fmt.Errorf("%w: forecast has %d days, want %d", ErrShapeViolation, len(fc.Days), forecastDays)
	}

	days := make([]ForecastDayRaw, len(fc.Days))
	copy(days, fc.Days)
	sort.Slice(days, func(i, j int) bool { return days[i].Date < days[j].Date })
	days = days[:forecastDays]

	result := ForecastResult{City: fc.City, Country: fc.Country}
	for _, d := range days {
		condition := d.Condition
		if condition == "" {
			condition = Placeholder
		}
		result.Forecast = append(result.Forecast, ForecastDay{
			Date:         d.Date,
			Condition:    condition,
			MaxTemp:      formatUnit(d.MaxTempC, "°C"),
			MinTemp:      formatUnit(d.MinTempC, "°C"),
			ChanceOfRain: formatChance(d.ChanceOfRain),
		})
	}
	return &CategoryResult{Category: CategoryForecast, Forecast: &result}, nil
}

func (s *Service) fetchRecommendations(ctx context.Context, loc location.Location) (*CategoryResult, error) {
	cur, err := s.weather.Current(ctx, loc)
	if err != nil {
		return nil, aggError(CategoryRecommendations, err)
	}
	if cur.City == "" || cur.Condition == "" {
		return nil, fmt.Errorf("%w: current conditions missing city or condition", ErrShapeViolation)
	}

	result := RecommendationResult{
		City:            cur.City,
		Region:          cur.Region,
		Country:         cur.Country,
		Condition:       cur.Condition,
		Recommendations: alert.Recommendations(cur.Condition),
		Lat:             cur.Lat,
		Lon:             cur.Lon,
	}
	return &CategoryResult{Category: CategoryRecommendations, Recommendations: &result}, nil
}

func (s *Service) fetchFirstAid(ctx context.Context) (*CategoryResult, error) {
	tips, err := s.firstAid.Tips(ctx)
	if err != nil {
		return nil, aggError(CategoryFirstAid, err)
	}
	return &CategoryResult{Category: CategoryFirstAid, FirstAid: &FirstAidResult{Tips: tips}}, nil
}

func (s *Service) fetchResources(ctx context.Context, loc location.Location) (*CategoryResult, error) {
	res, err := s.resources.Nearby(ctx, loc)
	if err != nil {
		return nil, aggError(CategoryResources, err)
	}
	return &CategoryResult{Category: CategoryResources, Resources: &res}, nil
}

func (s *Service) fetchNews(ctx context.Context) (*CategoryResult, error) {
	articles, err := s.news.Headlines(ctx)
	if err != nil {
		return nil, aggError(CategoryNews, err)
	}
	normalized := make([]Article, 0, len(articles))
	for _, a := range articles {
		if a.Description == "" {
			a.Description = noDescription
		}
		normalized = append(normalized, a)
	}
	return &CategoryResult{Category: CategoryNews, News: &NewsResult{Articles: normalized}}, nil
}

func formatUnit(v *float64, unit string) string {
	if v == nil {
		return Placeholder
	}
	return fmt.Sprintf("%g %s", *v, unit)
}

func formatPercent(v *float64) string {
	if v == nil {
		return Placeholder
	}
	return fmt.Sprintf("%g%%", *v)
}

func formatChance(v *int) string {
	if v == nil {
		return Placeholder
	}
	return fmt.Sprintf("%d%%", *v)
}
