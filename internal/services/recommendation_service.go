package services

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/seatlabs/library-layout-backend/internal/models"
)

// ErrManualActionRequired is returned when a suggestion has no automatic
// remedy: the caller must surface "manual action required" instead of
// silently doing nothing.
var ErrManualActionRequired = errors.New("suggestion requires manual action")

// ErrSuggestionNotApplicable is returned when a suggestion is applied but its
// rule no longer fires against the current layout state.
var ErrSuggestionNotApplicable = errors.New("suggestion no longer applies to this layout")

// Rule IDs, stable across releases so clients can key on them
const (
	SuggestIncreasePremium = "increase-premium-seats"
	SuggestAddAC           = "add-air-conditioning"
	SuggestAddLockers      = "add-lockers"
	SuggestAddWashroom     = "add-washroom"
	SuggestAddLunchArea    = "add-lunch-area"
	SuggestIncreaseSilent  = "increase-silent-zone"
	SuggestAddCCTV         = "add-cctv"
	SuggestGreatSetup      = "great-setup"
)

// RecommendationService evaluates a fixed battery of independent rules
// against a layout's aggregate state. All matching rules fire; results keep
// the rule-evaluation order rather than being sorted by priority.
type RecommendationService struct{}

// NewRecommendationService creates a new recommendation service
func NewRecommendationService() *RecommendationService {
	return &RecommendationService{}
}

// rule is one entry in the battery: a predicate over the aggregate state and
// the suggestion it emits when the predicate holds.
type rule struct {
	matches func(in models.RecommendationInput) bool
	emit    func(in models.RecommendationInput) models.Suggestion
}

var ruleBattery = []rule{
	{
		matches: func(in models.RecommendationInput) bool {
			return float64(in.SeatsByZone[models.ZonePremium]) < 0.2*float64(in.TotalSeats) && in.TotalSeats > 30
		},
		emit: func(in models.RecommendationInput) models.Suggestion {
			return models.Suggestion{
				ID:              SuggestIncreasePremium,
				Priority:        models.PriorityHigh,
				Title:           "Increase premium seating",
				Description:     fmt.Sprintf("Only %d of %d seats are premium. Libraries this size usually dedicate at least 20%% of seats to the premium zone.", in.SeatsByZone[models.ZonePremium], in.TotalSeats),
				SuggestedAction: "Reassign a block of seats near the entrance to the premium zone",
				EstimatedImpact: "Up to 25% higher revenue per occupied seat",
			}
		},
	},
	{
		matches: func(in models.RecommendationInput) bool {
			return !in.Amenities["ac"] && in.TotalSeats >= 40
		},
		emit: func(in models.RecommendationInput) models.Suggestion {
			return models.Suggestion{
				ID:              SuggestAddAC,
				Priority:        models.PriorityHigh,
				Title:           "Add air conditioning",
				Description:     "Libraries with 40 or more seats retain members significantly better when air conditioned.",
				SuggestedAction: "Enable the air conditioning amenity",
				EstimatedImpact: "Around 30% longer average study sessions",
				AutoApplicable:  true,
			}
		},
	},
	{
		matches: func(in models.RecommendationInput) bool {
			return !in.Amenities["locker"] && in.TotalSeats >= 60
		},
		emit: func(in models.RecommendationInput) models.Suggestion {
			return models.Suggestion{
				ID:              SuggestAddLockers,
				Priority:        models.PriorityMedium,
				Title:           "Add personal lockers",
				Description:     "At 60+ seats, members expect somewhere to leave their books overnight.",
				SuggestedAction: "Enable the locker amenity",
				EstimatedImpact: "Roughly 15% more monthly subscriptions",
				AutoApplicable:  true,
			}
		},
	},
	{
		matches: func(in models.RecommendationInput) bool {
			return in.TotalSeats > 60 && in.AreaCount(models.AreaWashroom) < 2
		},
		emit: func(in models.RecommendationInput) models.Suggestion {
			return models.Suggestion{
				ID:              SuggestAddWashroom,
				Priority:        models.PriorityHigh,
				Title:           "Add a second washroom",
				Description:     fmt.Sprintf("%d seats share %d washroom(s). Two or more are recommended above 60 seats.", in.TotalSeats, in.AreaCount(models.AreaWashroom)),
				SuggestedAction: "Place an additional washroom area on the floor plan",
				EstimatedImpact: "Fewer complaints during peak hours",
				AutoApplicable:  true,
			}
		},
	},
	{
		matches: func(in models.RecommendationInput) bool {
			return in.TotalSeats > 50 && in.AreaCount(models.AreaLunch) == 0
		},
		emit: func(in models.RecommendationInput) models.Suggestion {
			return models.Suggestion{
				ID:              SuggestAddLunchArea,
				Priority:        models.PriorityMedium,
				Title:           "Add a lunch area",
				Description:     "Members studying full days need a place to eat without leaving the library.",
				SuggestedAction: "Place a lunch area on the floor plan",
				EstimatedImpact: "Longer day-pass stays and fewer midday departures",
				AutoApplicable:  true,
			}
		},
	},
	{
		matches: func(in models.RecommendationInput) bool {
			return float64(in.SeatsByZone[models.ZoneSilent]) < 0.15*float64(in.TotalSeats) && in.TotalSeats > 40
		},
		emit: func(in models.RecommendationInput) models.Suggestion {
			return models.Suggestion{
				ID:              SuggestIncreaseSilent,
				Priority:        models.PriorityMedium,
				Title:           "Increase the silent zone",
				Description:     fmt.Sprintf("Only %d seats are in the silent zone. Serious students gravitate to silent seating first.", in.SeatsByZone[models.ZoneSilent]),
				SuggestedAction: "Reassign a quiet corner of the floor to the silent zone",
				EstimatedImpact: "Better reviews from exam-season members",
			}
		},
	},
	{
		matches: func(in models.RecommendationInput) bool {
			return in.TotalSeats >= 80 && !in.Amenities["cctv"]
		},
		emit: func(in models.RecommendationInput) models.Suggestion {
			return models.Suggestion{
				ID:              SuggestAddCCTV,
				Priority:        models.PriorityHigh,
				Title:           "Add CCTV coverage",
				Description:     "Libraries with 80+ seats should monitor entrances and locker areas.",
				SuggestedAction: "Enable the CCTV amenity",
				EstimatedImpact: "Lower theft risk and easier dispute resolution",
				AutoApplicable:  true,
			}
		},
	},
	{
		matches: func(in models.RecommendationInput) bool {
			return len(in.Amenities) >= 5 && float64(in.SeatsByZone[models.ZonePremium]) > 0.25*float64(in.TotalSeats)
		},
		emit: func(in models.RecommendationInput) models.Suggestion {
			return models.Suggestion{
				ID:              SuggestGreatSetup,
				Priority:        models.PriorityLow,
				Title:           "Great setup",
				Description:     "A rich amenity set with generous premium seating. No corrective action needed.",
				SuggestedAction: "",
				EstimatedImpact: "Keep doing what you are doing",
			}
		},
	},
}

// Evaluate runs the full battery and returns every matching suggestion in
// rule order
func (s *RecommendationService) Evaluate(in models.RecommendationInput) []models.Suggestion {
	suggestions := make([]models.Suggestion, 0, len(ruleBattery))
	for _, r := range ruleBattery {
		if r.matches(in) {
			suggestions = append(suggestions, r.emit(in))
		}
	}
	return suggestions
}

// Apply executes a suggestion's automatic remedy against the layout. It
// mutates the amenity set or area list directly, which removes the suggestion
// from the next Evaluate result. Suggestions without an automatic remedy
// return ErrManualActionRequired.
func (s *RecommendationService) Apply(layout *models.Layout, suggestionID string) error {
	in := models.RecommendationInput{
		TotalSeats:  len(layout.Seats),
		SeatsByZone: countByZone(layout.Seats),
		Amenities:   layout.AmenitySet(),
		Areas:       layout.Areas,
	}

	found := false
	for _, sug := range s.Evaluate(in) {
		if sug.ID == suggestionID {
			found = true
			break
		}
	}
	if !found {
		return ErrSuggestionNotApplicable
	}

	switch suggestionID {
	case SuggestAddAC:
		layout.Amenities["ac"] = true
	case SuggestAddLockers:
		layout.Amenities["locker"] = true
	case SuggestAddCCTV:
		layout.Amenities["cctv"] = true
	case SuggestAddWashroom:
		layout.Areas = append(layout.Areas, models.Area{
			ID:     uuid.NewString(),
			Type:   models.AreaWashroom,
			Name:   fmt.Sprintf("Washroom %d", in.AreaCount(models.AreaWashroom)+1),
			Width:  80,
			Height: 60,
		})
	case SuggestAddLunchArea:
		layout.Areas = append(layout.Areas, models.Area{
			ID:     uuid.NewString(),
			Type:   models.AreaLunch,
			Name:   "Lunch Area",
			Width:  120,
			Height: 100,
		})
	default:
		return ErrManualActionRequired
	}

	return nil
}

func countByZone(seats []models.Seat) map[models.ZoneKey]int {
	counts := make(map[models.ZoneKey]int)
	for i := range seats {
		counts[seats[i].Zone]++
	}
	return counts
}
