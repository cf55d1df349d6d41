package services

import (
	"fmt"
	"math/rand"

	"github.com/seatlabs/library-layout-backend/internal/models"
)

// ConfigError represents an invalid shape configuration. Generation is
// all-or-nothing: a rejected configuration never produces a partial seat list.
type ConfigError struct {
	Field   string
	Message string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("invalid layout configuration: %s: %s", e.Field, e.Message)
}

// BandFunc maps a grid position to a zone key
type BandFunc func(row, col, rows, cols int) models.ZoneKey

// Default rendering geometry applied when the caller leaves fields zero
const (
	defaultSeatWidth  = 40.0
	defaultSeatHeight = 40.0
	defaultRowSpacing = 60.0
	defaultColSpacing = 50.0
)

// GeneratorService deterministically produces seat lists from shape
// configurations. It holds no mutable state: identical inputs always yield
// identical output, including IDs, ordering and zone assignments.
type GeneratorService struct {
	catalog *CatalogService
}

// NewGeneratorService creates a new generator service
func NewGeneratorService(catalog *CatalogService) *GeneratorService {
	return &GeneratorService{
		catalog: catalog,
	}
}

// Normalize fills defaulted fields and validates the configuration
func (s *GeneratorService) Normalize(cfg models.LayoutConfig) (models.LayoutConfig, error) {
	if cfg.Rows <= 0 {
		return cfg, &ConfigError{Field: "rows", Message: "must be greater than zero"}
	}
	if cfg.Cols <= 0 {
		return cfg, &ConfigError{Field: "cols", Message: "must be greater than zero"}
	}
	if cfg.SeatWidth == 0 {
		cfg.SeatWidth = defaultSeatWidth
	}
	if cfg.SeatHeight == 0 {
		cfg.SeatHeight = defaultSeatHeight
	}
	if cfg.RowSpacing == 0 {
		cfg.RowSpacing = defaultRowSpacing
	}
	if cfg.ColSpacing == 0 {
		cfg.ColSpacing = defaultColSpacing
	}
	if cfg.RowSpacing < 0 || cfg.ColSpacing < 0 {
		return cfg, &ConfigError{Field: "spacing", Message: "must be greater than zero"}
	}
	if cfg.SeatWidth < 0 || cfg.SeatHeight < 0 {
		return cfg, &ConfigError{Field: "seat_size", Message: "must be greater than zero"}
	}
	if cfg.NumberingStyle == "" {
		cfg.NumberingStyle = models.NumberingRowBased
	}
	if cfg.NumberingStyle != models.NumberingRowBased && cfg.NumberingStyle != models.NumberingSequential {
		return cfg, &ConfigError{Field: "numbering_style", Message: fmt.Sprintf("unknown style %q", cfg.NumberingStyle)}
	}
	if cfg.StartingNumber == 0 {
		cfg.StartingNumber = 1
	}
	if cfg.StartingNumber < 1 {
		return cfg, &ConfigError{Field: "starting_number", Message: "must be at least 1"}
	}
	for _, aisle := range cfg.AisleCols {
		if aisle < 0 || aisle >= cfg.Cols {
			return cfg, &ConfigError{Field: "aisle_cols", Message: fmt.Sprintf("column %d is outside the grid", aisle)}
		}
	}
	return cfg, nil
}

// Generate produces a seat list using the default row-fraction banding:
// the first ~20% of rows are premium, then silent, exam-prep and discussion
// bands of ~20% each, with every remaining row zoned reading. In the
// discussion band every third seat of a row becomes a double-occupancy desk.
func (s *GeneratorService) Generate(cfg models.LayoutConfig) ([]models.Seat, error) {
	return s.GenerateWithBanding(cfg, RowFractionBanding)
}

// GenerateWithBanding produces a seat list with a caller-supplied banding
// policy. Aisle columns are removed before generation, so the result length
// is rows*cols minus rows seats per excluded column.
func (s *GeneratorService) GenerateWithBanding(cfg models.LayoutConfig, band BandFunc) ([]models.Seat, error) {
	cfg, err := s.Normalize(cfg)
	if err != nil {
		return nil, err
	}

	aisles := make(map[int]bool, len(cfg.AisleCols))
	for _, col := range cfg.AisleCols {
		aisles[col] = true
	}

	seats := make([]models.Seat, 0, cfg.Rows*cfg.Cols)
	sequence := cfg.StartingNumber

	for row := 0; row < cfg.Rows; row++ {
		seatInRow := 0
		for col := 0; col < cfg.Cols; col++ {
			if aisles[col] {
				continue
			}
			seatInRow++

			zone := band(row, col, cfg.Rows, cfg.Cols)
			pricing, ok := s.catalog.PricingFor(zone)
			if !ok {
				return nil, fmt.Errorf("banding produced zone %q which is not in the catalog", zone)
			}

			seat := models.Seat{
				ID:       models.SeatID(row, col),
				Row:      row,
				Col:      col,
				Zone:     zone,
				Status:   models.SeatAvailable,
				Capacity: 1,
				Position: models.Position{
					X: cfg.OriginX + float64(col)*cfg.ColSpacing,
					Y: cfg.OriginY + float64(row)*cfg.RowSpacing,
				},
				Features: deriveFeatures(row, col, cfg.Cols, zone),
				Pricing:  pricing,
			}

			switch cfg.NumberingStyle {
			case models.NumberingSequential:
				seat.DisplayNumber = fmt.Sprintf("S%d", sequence)
				sequence++
			default:
				seat.DisplayNumber = fmt.Sprintf("%s%d", rowLabel(row+1), col+1)
			}

			// Discussion rows get a shared double desk at every third seat
			if zone == models.ZoneDiscussion && seatInRow%3 == 0 {
				seat.Capacity = 2
			}

			seats = append(seats, seat)
		}
	}

	return seats, nil
}

// GenerateFromTemplate produces a seat list using a template's explicit
// per-zone count targets. Seats are walked in row-major order and assigned to
// the next zone whose target is unmet; once all targets are exhausted the
// remaining seats fall back to the reading zone. A template whose counts sum
// to more than the grid's seat capacity, after aisle columns are removed, is
// rejected outright rather than truncated.
func (s *GeneratorService) GenerateFromTemplate(tpl *models.LayoutTemplate) ([]models.Seat, error) {
	cfg, err := s.Normalize(tpl.Config)
	if err != nil {
		return nil, err
	}

	// Aisle columns hold no seats, so capacity is less than rows*cols
	aisles := make(map[int]bool, len(cfg.AisleCols))
	for _, col := range cfg.AisleCols {
		aisles[col] = true
	}
	capacity := cfg.Rows * (cfg.Cols - len(aisles))

	total := tpl.TotalZoneCount()
	if total > capacity {
		return nil, &ConfigError{
			Field:   "zone_counts",
			Message: fmt.Sprintf("targets sum to %d but the grid only holds %d seats", total, capacity),
		}
	}
	for _, zc := range tpl.ZoneCounts {
		if zc.Count < 0 {
			return nil, &ConfigError{Field: "zone_counts", Message: fmt.Sprintf("zone %q has a negative target", zc.Zone)}
		}
		if !s.catalog.HasZone(zc.Zone) {
			return nil, fmt.Errorf("template zone %q is not in the catalog", zc.Zone)
		}
	}
	if !s.catalog.HasZone(models.ZoneReading) {
		return nil, fmt.Errorf("template fallback zone %q is not in the catalog", models.ZoneReading)
	}

	remaining := make([]models.ZoneCount, len(tpl.ZoneCounts))
	copy(remaining, tpl.ZoneCounts)
	next := 0

	band := func(row, col, rows, cols int) models.ZoneKey {
		for next < len(remaining) && remaining[next].Count == 0 {
			next++
		}
		if next >= len(remaining) {
			return models.ZoneReading
		}
		remaining[next].Count--
		return remaining[next].Zone
	}

	return s.GenerateWithBanding(cfg, band)
}

// SeedOccupancy marks roughly rate*len(seats) available seats as occupied,
// for demo layouts only. Real occupancy comes from the booking collaborator.
// The randomness source is injected so generation itself stays deterministic.
func (s *GeneratorService) SeedOccupancy(seats []models.Seat, rate float64, rng *rand.Rand) {
	if rate <= 0 || rng == nil {
		return
	}
	for i := range seats {
		if seats[i].Status != models.SeatAvailable {
			continue
		}
		if rng.Float64() < rate {
			seats[i].Status = models.SeatOccupied
		}
	}
}

// RowFractionBanding is the default banding policy: zones are assigned by
// the row's fractional position within the grid.
func RowFractionBanding(row, col, rows, cols int) models.ZoneKey {
	frac := float64(row) / float64(rows)
	switch {
	case frac < 0.2:
		return models.ZonePremium
	case frac < 0.4:
		return models.ZoneSilent
	case frac < 0.6:
		return models.ZoneExamPrep
	case frac < 0.8:
		return models.ZoneDiscussion
	default:
		return models.ZoneReading
	}
}

// deriveFeatures applies the fixed feature derivation policy
func deriveFeatures(row, col, cols int, zone models.ZoneKey) models.SeatFeatures {
	window := col == 0 || col == cols-1
	return models.SeatFeatures{
		Window:         window,
		Power:          col%2 == 0,
		WiFi:           true,
		AC:             zone == models.ZonePremium || zone == models.ZoneSilent || zone == models.ZoneExamPrep,
		Locker:         zone == models.ZonePremium || zone == models.ZoneExamPrep,
		NaturalLight:   row < 3 || window,
		CushionedChair: zone == models.ZonePremium || zone == models.ZoneExamPrep || zone == models.ZoneSilent,
	}
}

// rowLabel converts a 1-based row number to an alphabetic label (1->A, 2->B).
// Rows beyond 26 continue with AA, AB and so on.
func rowLabel(rowNumber int) string {
	if rowNumber <= 0 {
		return "A"
	}
	if rowNumber <= 26 {
		return string(rune('A' + rowNumber - 1))
	}
	first := (rowNumber - 1) / 26
	second := (rowNumber - 1) % 26
	return string(rune('A'+first-1)) + string(rune('A'+second))
}
