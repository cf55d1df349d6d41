package services

import (
	"fmt"

	"github.com/seatlabs/library-layout-backend/internal/models"
)

// SelectionService computes price totals and descriptive statistics over a
// seat list plus a selection set. Every method tolerates stale seat IDs in
// the selection: after a regenerate the UI may still hold IDs that no longer
// exist, and that is not an error.
type SelectionService struct {
	catalog *CatalogService
}

// NewSelectionService creates a new selection service
func NewSelectionService(catalog *CatalogService) *SelectionService {
	return &SelectionService{
		catalog: catalog,
	}
}

// Toggle flips a seat's membership in the selection set and returns whether
// the seat is selected afterwards. Toggling is a pure set operation keyed by
// presence, so a double invocation restores the original state. Occupied and
// blocked seats cannot be selected; toggling them is a silent no-op.
func (s *SelectionService) Toggle(seats []models.Seat, selected map[string]bool, seatID string) bool {
	if selected[seatID] {
		delete(selected, seatID)
		return false
	}

	for i := range seats {
		if seats[i].ID != seatID {
			continue
		}
		if seats[i].Status == models.SeatOccupied || seats[i].Status == models.SeatBlocked {
			return false
		}
		selected[seatID] = true
		return true
	}

	// Unknown seat ID: nothing to select
	return false
}

// TotalPrice sums the selected seats' price for the chosen billing duration.
// Selected IDs that match no seat are ignored.
func (s *SelectionService) TotalPrice(seats []models.Seat, selected map[string]bool, duration models.BillingDuration) (float64, error) {
	if !duration.IsValid() {
		return 0, fmt.Errorf("unknown billing duration %q", duration)
	}

	total := 0.0
	for i := range seats {
		if !selected[seats[i].ID] {
			continue
		}
		total += seats[i].Pricing[duration]
	}
	return total, nil
}

// StatsByZone counts seats per zone. Zones present in the catalog but absent
// from the layout are reported with an explicit zero so consumers can render
// "0" instead of omitting the row.
func (s *SelectionService) StatsByZone(seats []models.Seat) map[models.ZoneKey]int {
	counts := make(map[models.ZoneKey]int)
	for _, key := range s.catalog.ZoneKeys() {
		counts[key] = 0
	}
	for i := range seats {
		counts[seats[i].Zone]++
	}
	return counts
}

// StatsByStatus counts seats per availability state
func (s *SelectionService) StatsByStatus(seats []models.Seat) map[models.SeatStatus]int {
	counts := map[models.SeatStatus]int{
		models.SeatAvailable: 0,
		models.SeatOccupied:  0,
		models.SeatSelected:  0,
		models.SeatBlocked:   0,
	}
	for i := range seats {
		counts[seats[i].Status]++
	}
	return counts
}

// StatsByFeature counts, per feature flag, the seats that are still
// available. This answers "how many available window seats are left" for the
// designer's sidebar.
func (s *SelectionService) StatsByFeature(seats []models.Seat) map[models.FeatureKey]int {
	counts := make(map[models.FeatureKey]int, len(models.FeatureKeys))
	for _, key := range models.FeatureKeys {
		counts[key] = 0
	}
	for i := range seats {
		if seats[i].Status == models.SeatOccupied || seats[i].Status == models.SeatBlocked {
			continue
		}
		for _, key := range models.FeatureKeys {
			if seats[i].Features.Has(key) {
				counts[key]++
			}
		}
	}
	return counts
}

// Stats assembles the full aggregate view for a layout
func (s *SelectionService) Stats(layout *models.Layout) models.LayoutStats {
	capacity := 0
	for i := range layout.Seats {
		capacity += layout.Seats[i].Capacity
	}
	return models.LayoutStats{
		TotalSeats:     len(layout.Seats),
		TotalCapacity:  capacity,
		SeatsByZone:    s.StatsByZone(layout.Seats),
		SeatsByStatus:  s.StatsByStatus(layout.Seats),
		SeatsByFeature: s.StatsByFeature(layout.Seats),
	}
}
