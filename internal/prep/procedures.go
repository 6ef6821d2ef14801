package prep

// Procedure is a step-by-step guide for one emergency type.
type Procedure struct {
	Type  string   `json:"type"`
	Steps []string `json:"steps"`
}

var procedures = []Procedure{
	{Type: "Earthquake", Steps: []string{
		"Drop, cover, and hold on.",
		"Stay away from windows.",
		"After shaking stops, evacuate if needed.",
	}},
	{Type: "Fire", Steps: []string{
		"Evacuate immediately.",
		"Stay low to avoid smoke.",
		"Call emergency services once safe.",
	}},
	{Type: "Flood", Steps: []string{
		"Move to higher ground.",
		"Avoid walking through floodwater.",
		"Listen to local alerts.",
	}},
}

// Procedures returns the emergency procedures guide in fixed order.
func Procedures() []Procedure {
	out := make([]Procedure, len(procedures))
	copy(out, procedures)
	return out
}
