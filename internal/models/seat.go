package models

import "fmt"

// ZoneKey identifies a seat zone. It is deliberately an open string key
// rather than a closed enum: the zone catalog can grow without a code change.
type ZoneKey string

// Built-in zones shipped with the default catalog.
const (
	ZonePremium    ZoneKey = "premium"
	ZoneSilent     ZoneKey = "silent"
	ZoneExamPrep   ZoneKey = "exam-prep"
	ZoneReading    ZoneKey = "reading"
	ZoneDiscussion ZoneKey = "discussion"
)

// SeatStatus represents the availability state of a seat
type SeatStatus string

const (
	SeatAvailable SeatStatus = "available"
	SeatOccupied  SeatStatus = "occupied"
	SeatSelected  SeatStatus = "selected"
	SeatBlocked   SeatStatus = "blocked"
)

// BillingDuration is one of the four supported billing periods
type BillingDuration string

const (
	DurationHourly  BillingDuration = "hourly"
	DurationDaily   BillingDuration = "daily"
	DurationWeekly  BillingDuration = "weekly"
	DurationMonthly BillingDuration = "monthly"
)

// BillingDurations lists all supported durations in display order
var BillingDurations = []BillingDuration{
	DurationHourly, DurationDaily, DurationWeekly, DurationMonthly,
}

// IsValid reports whether d is one of the supported billing durations
func (d BillingDuration) IsValid() bool {
	switch d {
	case DurationHourly, DurationDaily, DurationWeekly, DurationMonthly:
		return true
	}
	return false
}

// PricingTable maps a billing duration to a non-negative price.
// A seat's pricing is a snapshot copied from the zone catalog at generation
// time, so later catalog edits never retroactively change generated seats.
type PricingTable map[BillingDuration]float64

// Clone returns an independent copy of the pricing table
func (p PricingTable) Clone() PricingTable {
	out := make(PricingTable, len(p))
	for k, v := range p {
		out[k] = v
	}
	return out
}

// FeatureKey identifies a per-seat feature flag
type FeatureKey string

const (
	FeatureWindow         FeatureKey = "window"
	FeaturePower          FeatureKey = "power"
	FeatureWiFi           FeatureKey = "wifi"
	FeatureLocker         FeatureKey = "locker"
	FeatureAC             FeatureKey = "ac"
	FeatureNaturalLight   FeatureKey = "naturalLight"
	FeatureCushionedChair FeatureKey = "cushionedChair"
)

// FeatureKeys lists all per-seat features in display order
var FeatureKeys = []FeatureKey{
	FeatureWindow, FeaturePower, FeatureWiFi, FeatureLocker,
	FeatureAC, FeatureNaturalLight, FeatureCushionedChair,
}

// SeatFeatures holds the derived per-seat feature flags
type SeatFeatures struct {
	Window         bool `json:"window"`
	Power          bool `json:"power"`
	WiFi           bool `json:"wifi"`
	Locker         bool `json:"locker"`
	AC             bool `json:"ac"`
	NaturalLight   bool `json:"naturalLight"`
	CushionedChair bool `json:"cushionedChair"`
}

// Has reports whether the named feature flag is set
func (f SeatFeatures) Has(key FeatureKey) bool {
	switch key {
	case FeatureWindow:
		return f.Window
	case FeaturePower:
		return f.Power
	case FeatureWiFi:
		return f.WiFi
	case FeatureLocker:
		return f.Locker
	case FeatureAC:
		return f.AC
	case FeatureNaturalLight:
		return f.NaturalLight
	case FeatureCushionedChair:
		return f.CushionedChair
	}
	return false
}

// Position is the rendered position of a seat, derived from its grid
// coordinates and the configured spacing. Presentation-only.
type Position struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Seat is a single generated seat. IDs are stable for the lifetime of a
// layout and derived deterministically from the grid coordinates.
type Seat struct {
	ID            string       `json:"id"`
	Row           int          `json:"row"`
	Col           int          `json:"col"`
	DisplayNumber string       `json:"display_number"`
	Zone          ZoneKey      `json:"zone"`
	Position      Position     `json:"position"`
	Status        SeatStatus   `json:"status"`
	Capacity      int          `json:"capacity"`
	Features      SeatFeatures `json:"features"`
	Pricing       PricingTable `json:"pricing"`
}

// SeatID builds the canonical "row-col" seat identifier
func SeatID(row, col int) string {
	return fmt.Sprintf("%d-%d", row, col)
}
