package services

import (
	"testing"

	"github.com/seatlabs/library-layout-backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func selectionFixture(t *testing.T) ([]models.Seat, *SelectionService) {
	t.Helper()
	catalog := NewCatalogService()
	gen := NewGeneratorService(catalog)
	seats, err := gen.Generate(models.LayoutConfig{Rows: 5, Cols: 8})
	require.NoError(t, err)
	return seats, NewSelectionService(catalog)
}

func TestToggle_Idempotent(t *testing.T) {
	seats, svc := selectionFixture(t)
	selected := map[string]bool{}

	assert.True(t, svc.Toggle(seats, selected, "0-0"))
	assert.True(t, selected["0-0"])

	assert.False(t, svc.Toggle(seats, selected, "0-0"))
	assert.Empty(t, selected)
}

func TestToggle_UnselectableSeats(t *testing.T) {
	seats, svc := selectionFixture(t)
	seats[0].Status = models.SeatOccupied
	seats[1].Status = models.SeatBlocked
	selected := map[string]bool{}

	assert.False(t, svc.Toggle(seats, selected, seats[0].ID))
	assert.False(t, svc.Toggle(seats, selected, seats[1].ID))
	assert.False(t, svc.Toggle(seats, selected, "99-99"))
	assert.Empty(t, selected)
}

func TestTotalPrice(t *testing.T) {
	seats, svc := selectionFixture(t)

	t.Run("empty selection is zero", func(t *testing.T) {
		total, err := svc.TotalPrice(seats, map[string]bool{}, models.DurationMonthly)
		require.NoError(t, err)
		assert.Zero(t, total)
	})

	t.Run("all seats sum their monthly prices", func(t *testing.T) {
		all := map[string]bool{}
		expected := 0.0
		for _, seat := range seats {
			all[seat.ID] = true
			expected += seat.Pricing[models.DurationMonthly]
		}
		total, err := svc.TotalPrice(seats, all, models.DurationMonthly)
		require.NoError(t, err)
		assert.Equal(t, expected, total)
	})

	t.Run("stale IDs are ignored", func(t *testing.T) {
		withStale := map[string]bool{"0-0": true, "99-99": true}
		validOnly := map[string]bool{"0-0": true}

		a, err := svc.TotalPrice(seats, withStale, models.DurationHourly)
		require.NoError(t, err)
		b, err := svc.TotalPrice(seats, validOnly, models.DurationHourly)
		require.NoError(t, err)
		assert.Equal(t, b, a)
	})

	t.Run("invalid duration", func(t *testing.T) {
		_, err := svc.TotalPrice(seats, map[string]bool{}, "fortnightly")
		assert.Error(t, err)
	})
}

func TestStatsByZone_ZeroEntries(t *testing.T) {
	_, svc := selectionFixture(t)

	// A premium-only seat list still reports every catalog zone
	seats := []models.Seat{
		{ID: "0-0", Zone: models.ZonePremium, Status: models.SeatAvailable, Capacity: 1},
	}
	counts := svc.StatsByZone(seats)

	assert.Equal(t, 1, counts[models.ZonePremium])
	assert.Contains(t, counts, models.ZoneSilent)
	assert.Equal(t, 0, counts[models.ZoneSilent])
	assert.Equal(t, 0, counts[models.ZoneReading])
	assert.Len(t, counts, 5)
}

func TestStatsByStatus(t *testing.T) {
	_, svc := selectionFixture(t)

	seats := []models.Seat{
		{ID: "0-0", Status: models.SeatAvailable},
		{ID: "0-1", Status: models.SeatAvailable},
		{ID: "0-2", Status: models.SeatOccupied},
		{ID: "0-3", Status: models.SeatBlocked},
	}
	counts := svc.StatsByStatus(seats)

	assert.Equal(t, 2, counts[models.SeatAvailable])
	assert.Equal(t, 1, counts[models.SeatOccupied])
	assert.Equal(t, 1, counts[models.SeatBlocked])
	assert.Equal(t, 0, counts[models.SeatSelected])
}

func TestStatsByFeature_SkipsUnavailable(t *testing.T) {
	_, svc := selectionFixture(t)

	seats := []models.Seat{
		{ID: "0-0", Status: models.SeatAvailable, Features: models.SeatFeatures{Window: true, WiFi: true}},
		{ID: "0-1", Status: models.SeatOccupied, Features: models.SeatFeatures{Window: true, WiFi: true}},
		{ID: "0-2", Status: models.SeatBlocked, Features: models.SeatFeatures{Power: true}},
	}
	counts := svc.StatsByFeature(seats)

	assert.Equal(t, 1, counts[models.FeatureWindow])
	assert.Equal(t, 1, counts[models.FeatureWiFi])
	assert.Equal(t, 0, counts[models.FeaturePower])
}

func TestStats_Capacity(t *testing.T) {
	seats, svc := selectionFixture(t)

	layout := &models.Layout{Seats: seats}
	stats := svc.Stats(layout)

	assert.Equal(t, 40, stats.TotalSeats)

	// 5x8 row-fraction: row 3 is discussion, seats 3, 6 in the row double up
	doubles := 0
	for _, seat := range seats {
		if seat.Capacity == 2 {
			doubles++
		}
	}
	assert.Equal(t, 40+doubles, stats.TotalCapacity)
	assert.Equal(t, 2, doubles)
	assert.Equal(t, 40, stats.SeatsByStatus[models.SeatAvailable])
}
