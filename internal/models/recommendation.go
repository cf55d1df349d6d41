package models

// SuggestionPriority ranks a suggestion
type SuggestionPriority string

const (
	PriorityHigh   SuggestionPriority = "high"
	PriorityMedium SuggestionPriority = "medium"
	PriorityLow    SuggestionPriority = "low"
)

// Suggestion is one emitted recommendation. Suggestions are returned in
// fixed rule-evaluation order, not sorted by priority; consumers that want
// a different ordering re-sort on their side.
type Suggestion struct {
	ID              string             `json:"id"`
	Priority        SuggestionPriority `json:"priority"`
	Title           string             `json:"title"`
	Description     string             `json:"description"`
	SuggestedAction string             `json:"suggested_action"`
	EstimatedImpact string             `json:"estimated_impact"`
	// AutoApplicable is true when applying the suggestion has an automatic
	// remedy (amenity toggle or area placement); otherwise applying it
	// reports that manual action is required.
	AutoApplicable bool `json:"auto_applicable"`
}

// RecommendationInput is the aggregate state the rule battery evaluates
type RecommendationInput struct {
	TotalSeats  int
	SeatsByZone map[ZoneKey]int
	Amenities   map[string]bool
	Areas       []Area
}

// AreaCount returns how many areas of the given type exist
func (in RecommendationInput) AreaCount(t AreaType) int {
	n := 0
	for _, a := range in.Areas {
		if a.Type == t {
			n++
		}
	}
	return n
}
