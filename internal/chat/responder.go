// Package chat implements the canned-response assistant for the chat panel.
// Answers are fully local; no model or network is involved.
package chat

import "github.com/emergencyai/emergency-assistant/internal/common"

// DefaultReply is returned when no keyword matches the query.
const DefaultReply = "Try asking about shelters or disasters."

// responses map trigger keywords to canned answers. The list order is the
// tie-break when a query mentions several keywords: first entry wins.
var responses = []struct {
	keyword string
	reply   string
}{
	{"earthquake", "Drop, cover, and hold on during shaking."},
	{"shelter", "Nearest shelter: City Center (check map)."},
	{"hospital", "Nearest hospital: General Hospital (check map)."},
}

// Reply answers a free-text query with the first matching canned response.
func Reply(query string) string {
	for _, r := range responses {
		if common.HasAny(query, r.keyword) {
			return r.reply
		}
	}
	return DefaultReply
}
