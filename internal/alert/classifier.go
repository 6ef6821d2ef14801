package alert

import (
	"github.com/emergencyai/emergency-assistant/internal/common"
)

// Severity tags a classified weather alert.
type Severity string

const (
	SeverityNone  Severity = "none"
	SeverityStorm Severity = "storm"
	SeverityRain  Severity = "rain"
	SeverityHeat  Severity = "heat"
)

// NoAlertMessage is returned when no trigger word matches the condition.
const NoAlertMessage = "No severe weather alerts at the moment."

// Alert is a severity-tagged message derived from a raw condition description.
type Alert struct {
	Severity Severity `json:"severity"`
	Message  string   `json:"message"`
}

// Severe reports whether the alert warrants prominent presentation
// (banner/modal rather than inline text).
func (a Alert) Severe() bool {
	return a.Severity != SeverityNone
}

// Recommendation is a single safety recommendation message.
type Recommendation struct {
	Message string `json:"message"`
}

// alertRules are checked in order; the first keyword contained in the
// condition wins. Condition strings routinely mention several trigger words
// ("thunderstorm with heavy rain"), so the order is the tie-break:
// storm beats rain beats hot.
var alertRules = []struct {
	keyword  string
	severity Severity
	message  string
}{
	{"storm", SeverityStorm, "Severe storm warning: Take immediate shelter."},
	{"rain", SeverityRain, "Heavy rain warning: Avoid low-lying areas."},
	{"hot", SeverityHeat, "Heatwave warning: Stay indoors and hydrate."},
}

// Classify maps a raw weather-condition description to an alert.
// Matching is a case-insensitive substring check; no numeric thresholds.
func Classify(condition string) Alert {
	for _, r := range alertRules {
		if common.HasAny(condition, r.keyword) {
			return Alert{Severity: r.severity, Message: r.message}
		}
	}
	return Alert{Severity: SeverityNone, Message: NoAlertMessage}
}

// Recommendations derives an ordered pair of safety recommendations from the
// condition, using the same keyword priority as Classify. Storm and rain share
// the shelter-and-road pair.
func Recommendations(condition string) []Recommendation {
	switch {
	case common.HasAny(condition, "storm", "rain"):
		return []Recommendation{
			{Message: "Stay indoors and avoid flooded roads."},
			{Message: "Check weather advisories."},
		}
	case common.HasAny(condition, "hot"):
		return []Recommendation{
			{Message: "Stay hydrated and avoid sun exposure."},
			{Message: "Check on vulnerable individuals."},
		}
	default:
		return []Recommendation{
			{Message: "Stay updated with weather reports."},
			{Message: "Keep an emergency kit ready."},
		}
	}
}
