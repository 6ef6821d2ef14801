// Package emergency aggregates location-scoped emergency information from
// upstream providers into a closed set of normalized result shapes.
package emergency

import (
	"fmt"

	"github.com/emergencyai/emergency-assistant/internal/alert"
)

// Category is one of the six fixed emergency-information request types.
type Category string

const (
	CategoryAlerts          Category = "alerts"
	CategoryForecast        Category = "forecast"
	CategoryRecommendations Category = "recommendations"
	CategoryFirstAid        Category = "first-aid"
	CategoryResources       Category = "resources"
	CategoryNews            Category = "news"
)

// Categories lists every category in a fixed order.
var Categories = []Category{
	CategoryAlerts,
	CategoryForecast,
	CategoryRecommendations,
	CategoryFirstAid,
	CategoryResources,
	CategoryNews,
}

// ParseCategory validates a raw category string.
func ParseCategory(s string) (Category, error) {
	for _, c := range Categories {
		if string(c) == s {
			return c, nil
		}
	}
	return "", fmt.Errorf("unknown category %q", s)
}

// HasCoordinates reports whether results for this category carry coordinates
// for the map view to recentre on.
func (c Category) HasCoordinates() bool {
	switch c {
	case CategoryAlerts, CategoryRecommendations, CategoryResources:
		return true
	default:
		return false
	}
}

// Coordinates is a latitude/longitude pair attached to map-bearing results.
type Coordinates struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// AlertResult is the normalized current-conditions view with a derived alert.
type AlertResult struct {
	City        string      `json:"city"`
	Region      string      `json:"region,omitempty"`
	Country     string      `json:"country"`
	Condition   string      `json:"condition"`
	Temperature string      `json:"temperature"`
	Humidity    string      `json:"humidity"`
	WindSpeed   string      `json:"windSpeed"`
	Alert       alert.Alert `json:"alert"`
	Lat         float64     `json:"lat"`
	Lon         float64     `json:"lon"`
}

// ForecastDay is one normalized day of a forecast, chronological within
// ForecastResult.
type ForecastDay struct {
	Date         string `json:"date"`
	Condition    string `json:"condition"`
	MaxTemp      string `json:"maxTemp"`
	MinTemp      string `json:"minTemp"`
	ChanceOfRain string `json:"chanceOfRain"`
}

// ForecastResult carries exactly three chronological forecast days.
type ForecastResult struct {
	City     string        `json:"city"`
	Country  string        `json:"country"`
	Forecast []ForecastDay `json:"forecast"`
}

// RecommendationResult carries condition-derived safety recommendations.
type RecommendationResult struct {
	City            string                 `json:"city"`
	Region          string                 `json:"region,omitempty"`
	Country         string                 `json:"country"`
	Condition       string                 `json:"condition"`
	Recommendations []alert.Recommendation `json:"recommendations"`
	Lat             float64                `json:"lat"`
	Lon             float64                `json:"lon"`
}

// Resource is a single emergency resource with its live status line.
type Resource struct {
	Type   string `json:"type"`
	Status string `json:"status"`
}

// ResourceResult lists nearby emergency resources in provider order.
type ResourceResult struct {
	City      string     `json:"city"`
	Lat       float64    `json:"lat"`
	Lon       float64    `json:"lon"`
	Resources []Resource `json:"resources"`
}

// Article is one emergency news article.
type Article struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	URL         string `json:"url"`
	Source      string `json:"source"`
	PublishedAt string `json:"publishedAt"`
}

// NewsResult lists emergency news articles in provider order.
type NewsResult struct {
	Articles []Article `json:"articles"`
}

// Tip is a single first-aid tip.
type Tip struct {
	Message string `json:"message"`
}

// FirstAidResult lists first-aid tips; tips are location-independent.
type FirstAidResult struct {
	Tips []Tip `json:"tips"`
}

// CategoryResult is the tagged union of the six result shapes. Exactly one of
// the pointer fields matching Category is set.
type CategoryResult struct {
	Category        Category              `json:"category"`
	Alerts          *AlertResult          `json:"alerts,omitempty"`
	Forecast        *ForecastResult       `json:"forecast,omitempty"`
	Recommendations *RecommendationResult `json:"recommendations,omitempty"`
	FirstAid        *FirstAidResult       `json:"firstAid,omitempty"`
	Resources       *ResourceResult       `json:"resources,omitempty"`
	News            *NewsResult           `json:"news,omitempty"`
}

// Payload returns the inner result shape for serialization.
func (r *CategoryResult) Payload() any {
	switch r.Category {
	case CategoryAlerts:
		return r.Alerts
	case CategoryForecast:
		return r.Forecast
	case CategoryRecommendations:
		return r.Recommendations
	case CategoryFirstAid:
		return r.FirstAid
	case CategoryResources:
		return r.Resources
	case CategoryNews:
		return r.News
	default:
		return nil
	}
}

// Coordinates returns the map recentre point for map-bearing categories.
func (r *CategoryResult) Coordinates() (Coordinates, bool) {
	switch r.Category {
	case CategoryAlerts:
		if r.Alerts != nil {
			return Coordinates{Lat: r.Alerts.Lat, Lon: r.Alerts.Lon}, true
		}
	case CategoryRecommendations:
		if r.Recommendations != nil {
			return Coordinates{Lat: r.Recommendations.Lat, Lon: r.Recommendations.Lon}, true
		}
	case CategoryResources:
		if r.Resources != nil {
			return Coordinates{Lat: r.Resources.Lat, Lon: r.Resources.Lon}, true
		}
	}
	return Coordinates{}, false
}
