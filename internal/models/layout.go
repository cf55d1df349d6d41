package models

import (
	"sort"
	"time"

	"github.com/google/uuid"
)

// NumberingStyle selects how display numbers are assigned to seats
type NumberingStyle string

const (
	// NumberingRowBased numbers seats "A1", "A2", ... per row
	NumberingRowBased NumberingStyle = "row-based"
	// NumberingSequential numbers seats "S1", "S2", ... across the grid
	NumberingSequential NumberingStyle = "sequential"
)

// BandingStrategy selects how generated seats are assigned to zones
type BandingStrategy string

const (
	// BandingRowFraction assigns zones by row-fraction thresholds
	BandingRowFraction BandingStrategy = "row-fraction"
	// BandingTemplateCounts walks seats row-major and fills explicit
	// per-zone count targets, falling back to the reading zone
	BandingTemplateCounts BandingStrategy = "template-counts"
)

// LayoutConfig is the shape configuration the generator consumes
type LayoutConfig struct {
	Rows           int            `json:"rows" binding:"required,min=1"`
	Cols           int            `json:"cols" binding:"required,min=1"`
	SeatWidth      float64        `json:"seat_width"`
	SeatHeight     float64        `json:"seat_height"`
	RowSpacing     float64        `json:"row_spacing"`
	ColSpacing     float64        `json:"col_spacing"`
	OriginX        float64        `json:"origin_x"`
	OriginY        float64        `json:"origin_y"`
	NumberingStyle NumberingStyle `json:"numbering_style"`
	StartingNumber int            `json:"starting_number"`
	// AisleCols are column indices removed before generation to form walkways
	AisleCols []int `json:"aisle_cols,omitempty"`
}

// AreaType identifies a kind of non-seat functional space
type AreaType string

const (
	AreaWashroom   AreaType = "washroom"
	AreaLunch      AreaType = "lunch"
	AreaCafeteria  AreaType = "cafeteria"
	AreaDiscussion AreaType = "discussion-room"
	AreaReception  AreaType = "reception"
)

// Area is a non-seat space placed independently of the seat grid
type Area struct {
	ID     string   `json:"id"`
	Type   AreaType `json:"type"`
	Name   string   `json:"name"`
	X      float64  `json:"x"`
	Y      float64  `json:"y"`
	Width  float64  `json:"width"`
	Height float64  `json:"height"`
}

// ZoneOverlay is a rectangular zone marker drawn over the floor plan
type ZoneOverlay struct {
	ID     string  `json:"id"`
	Zone   ZoneKey `json:"zone"`
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Layout is the aggregate floor plan: seats, areas, overlays, amenities and
// the configuration that produced the seats. There is one logical writer at
// a time; mutations go through the layout service.
type Layout struct {
	ID          uuid.UUID       `json:"id"`
	OwnerID     uuid.UUID       `json:"owner_id"`
	Name        string          `json:"name"`
	Seats       []Seat          `json:"seats"`
	Areas       []Area          `json:"areas"`
	MarkedZones []ZoneOverlay   `json:"marked_zones"`
	Amenities   map[string]bool `json:"amenities"`
	Config      LayoutConfig    `json:"config"`
	Selected    map[string]bool `json:"selected,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// SeatByID returns a pointer to the seat with the given ID, or nil
func (l *Layout) SeatByID(id string) *Seat {
	for i := range l.Seats {
		if l.Seats[i].ID == id {
			return &l.Seats[i]
		}
	}
	return nil
}

// AmenitySet returns the enabled amenity keys
func (l *Layout) AmenitySet() map[string]bool {
	out := make(map[string]bool, len(l.Amenities))
	for k, on := range l.Amenities {
		if on {
			out[k] = true
		}
	}
	return out
}

// SelectedIDs returns the currently selected seat IDs
func (l *Layout) SelectedIDs() map[string]bool {
	out := make(map[string]bool, len(l.Selected))
	for id, on := range l.Selected {
		if on {
			out[id] = true
		}
	}
	return out
}

// LayoutTemplate is a named preset: a shape configuration plus explicit
// per-zone seat count targets and pre-placed areas
type LayoutTemplate struct {
	Name        string       `json:"name"`
	Description string       `json:"description"`
	Config      LayoutConfig `json:"config"`
	ZoneCounts  []ZoneCount  `json:"zone_counts"`
	Areas       []Area       `json:"areas"`
	Amenities   []string     `json:"amenities"`
}

// ZoneCount is one explicit per-zone seat target within a template.
// Order matters: targets are exhausted in declaration order.
type ZoneCount struct {
	Zone  ZoneKey `json:"zone"`
	Count int     `json:"count"`
}

// TotalZoneCount sums the explicit per-zone targets
func (t *LayoutTemplate) TotalZoneCount() int {
	total := 0
	for _, zc := range t.ZoneCounts {
		total += zc.Count
	}
	return total
}

// LayoutSnapshot is the full-value serialization written to the snapshot
// store on save. It round-trips through JSON without loss; versioning of the
// blob is out of scope.
type LayoutSnapshot struct {
	Name        string        `json:"name"`
	Seats       []Seat        `json:"seats"`
	Areas       []Area        `json:"areas"`
	MarkedZones []ZoneOverlay `json:"markedZones"`
	Amenities   []string      `json:"amenities"`
	Config      LayoutConfig  `json:"config"`
	CreatedAt   time.Time     `json:"createdAt"`
}

// GenerateLayoutRequest is the request body for layout generation.
// ZoneCounts is only consulted by the template-counts strategy.
type GenerateLayoutRequest struct {
	Name          string          `json:"name" binding:"required"`
	Config        LayoutConfig    `json:"config" binding:"required"`
	Strategy      BandingStrategy `json:"strategy"`
	ZoneCounts    []ZoneCount     `json:"zone_counts,omitempty"`
	DemoOccupancy bool            `json:"demo_occupancy"`
}

// ApplyTemplateRequest generates a layout from a named template
type ApplyTemplateRequest struct {
	Name     string `json:"name"`
	Template string `json:"template" binding:"required"`
}

// AssignZoneRequest bulk-reassigns seats to a zone
type AssignZoneRequest struct {
	SeatIDs []string `json:"seat_ids" binding:"required,min=1"`
	Zone    ZoneKey  `json:"zone" binding:"required"`
}

// AddAreaRequest places a new non-seat area on the floor plan
type AddAreaRequest struct {
	Type   AreaType `json:"type" binding:"required"`
	Name   string   `json:"name" binding:"required"`
	X      float64  `json:"x"`
	Y      float64  `json:"y"`
	Width  float64  `json:"width" binding:"required,gt=0"`
	Height float64  `json:"height" binding:"required,gt=0"`
}

// MarkZoneRequest draws a rectangular zone overlay on the floor plan
type MarkZoneRequest struct {
	Zone   ZoneKey `json:"zone" binding:"required"`
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width" binding:"required,gt=0"`
	Height float64 `json:"height" binding:"required,gt=0"`
}

// SeatStatusRequest updates a single seat's availability state
type SeatStatusRequest struct {
	Status SeatStatus `json:"status" binding:"required"`
}

// NewSnapshot builds the full-value serialization of a layout
func NewSnapshot(l *Layout) LayoutSnapshot {
	amenities := make([]string, 0, len(l.Amenities))
	for _, a := range sortedKeys(l.Amenities) {
		amenities = append(amenities, a)
	}
	return LayoutSnapshot{
		Name:        l.Name,
		Seats:       l.Seats,
		Areas:       l.Areas,
		MarkedZones: l.MarkedZones,
		Amenities:   amenities,
		Config:      l.Config,
		CreatedAt:   l.CreatedAt,
	}
}

// ToLayout reconstructs a layout from a snapshot. The selection set is
// transient client state and starts empty after a reload.
func (s LayoutSnapshot) ToLayout(id, ownerID uuid.UUID) *Layout {
	amenities := make(map[string]bool, len(s.Amenities))
	for _, a := range s.Amenities {
		amenities[a] = true
	}
	return &Layout{
		ID:          id,
		OwnerID:     ownerID,
		Name:        s.Name,
		Seats:       s.Seats,
		Areas:       s.Areas,
		MarkedZones: s.MarkedZones,
		Amenities:   amenities,
		Config:      s.Config,
		Selected:    make(map[string]bool),
		CreatedAt:   s.CreatedAt,
		UpdatedAt:   s.CreatedAt,
	}
}

func sortedKeys(m map[string]bool) []string {
	keys := make([]string, 0, len(m))
	for k, on := range m {
		if on {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	return keys
}

// LayoutRecord is the persisted form of a saved layout: the snapshot blob
// plus the columns the list view needs
type LayoutRecord struct {
	ID         uuid.UUID `json:"id" db:"id"`
	OwnerID    uuid.UUID `json:"owner_id" db:"owner_id"`
	Name       string    `json:"name" db:"name"`
	TotalSeats int       `json:"total_seats" db:"total_seats"`
	Data       []byte    `json:"-" db:"data"`
	CreatedAt  time.Time `json:"created_at" db:"created_at"`
	UpdatedAt  time.Time `json:"updated_at" db:"updated_at"`
}

// LayoutSummary is the list-view projection of a saved layout
type LayoutSummary struct {
	ID         uuid.UUID `json:"id" db:"id"`
	Name       string    `json:"name" db:"name"`
	TotalSeats int       `json:"total_seats" db:"total_seats"`
	CreatedAt  time.Time `json:"created_at" db:"created_at"`
	UpdatedAt  time.Time `json:"updated_at" db:"updated_at"`
}

// LayoutStats is the aggregate view consumed by dashboards
type LayoutStats struct {
	TotalSeats     int                `json:"total_seats"`
	TotalCapacity  int                `json:"total_capacity"`
	SeatsByZone    map[ZoneKey]int    `json:"seats_by_zone"`
	SeatsByStatus  map[SeatStatus]int `json:"seats_by_status"`
	SeatsByFeature map[FeatureKey]int `json:"available_by_feature"`
}
