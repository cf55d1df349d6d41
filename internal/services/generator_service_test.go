package services

import (
	"math/rand"
	"testing"

	"github.com/seatlabs/library-layout-backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newGeneratorForTest(t *testing.T) *GeneratorService {
	t.Helper()
	return NewGeneratorService(NewCatalogService())
}

func TestGenerate_SeatCardinality(t *testing.T) {
	gen := newGeneratorForTest(t)

	tests := []struct {
		name     string
		config   models.LayoutConfig
		expected int
	}{
		{
			name:     "full grid",
			config:   models.LayoutConfig{Rows: 5, Cols: 8},
			expected: 40,
		},
		{
			name:     "single seat",
			config:   models.LayoutConfig{Rows: 1, Cols: 1},
			expected: 1,
		},
		{
			name:     "one aisle column",
			config:   models.LayoutConfig{Rows: 4, Cols: 6, AisleCols: []int{2}},
			expected: 20,
		},
		{
			name:     "two aisle columns",
			config:   models.LayoutConfig{Rows: 10, Cols: 16, AisleCols: []int{5, 10}},
			expected: 140,
		},
		{
			name:     "duplicate aisle column counted once",
			config:   models.LayoutConfig{Rows: 4, Cols: 6, AisleCols: []int{2, 2}},
			expected: 20,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			seats, err := gen.Generate(tt.config)
			require.NoError(t, err)
			assert.Len(t, seats, tt.expected)
		})
	}
}

func TestGenerate_Deterministic(t *testing.T) {
	gen := newGeneratorForTest(t)
	cfg := models.LayoutConfig{Rows: 8, Cols: 12, AisleCols: []int{6}}

	first, err := gen.Generate(cfg)
	require.NoError(t, err)
	second, err := gen.Generate(cfg)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestGenerate_RowFractionBanding(t *testing.T) {
	gen := newGeneratorForTest(t)

	// 10 rows maps cleanly onto the five bands, two rows each
	seats, err := gen.Generate(models.LayoutConfig{Rows: 10, Cols: 4})
	require.NoError(t, err)

	zoneForRow := map[int]models.ZoneKey{}
	for _, seat := range seats {
		if existing, ok := zoneForRow[seat.Row]; ok {
			assert.Equal(t, existing, seat.Zone, "zone must be uniform within row %d", seat.Row)
			continue
		}
		zoneForRow[seat.Row] = seat.Zone
	}

	assert.Equal(t, models.ZonePremium, zoneForRow[0])
	assert.Equal(t, models.ZonePremium, zoneForRow[1])
	assert.Equal(t, models.ZoneSilent, zoneForRow[2])
	assert.Equal(t, models.ZoneSilent, zoneForRow[3])
	assert.Equal(t, models.ZoneExamPrep, zoneForRow[4])
	assert.Equal(t, models.ZoneExamPrep, zoneForRow[5])
	assert.Equal(t, models.ZoneDiscussion, zoneForRow[6])
	assert.Equal(t, models.ZoneDiscussion, zoneForRow[7])
	assert.Equal(t, models.ZoneReading, zoneForRow[8])
	assert.Equal(t, models.ZoneReading, zoneForRow[9])
}

func TestGenerate_FiveByEightExample(t *testing.T) {
	gen := newGeneratorForTest(t)

	seats, err := gen.Generate(models.LayoutConfig{Rows: 5, Cols: 8})
	require.NoError(t, err)
	require.Len(t, seats, 40)

	first := seats[0]
	assert.Equal(t, "0-0", first.ID)
	assert.Equal(t, "A1", first.DisplayNumber)
	assert.Equal(t, models.ZonePremium, first.Zone)
	assert.True(t, first.Features.Window)
	assert.True(t, first.Features.Power)
	assert.True(t, first.Features.NaturalLight)

	// frac boundaries for rows=5: premium, silent, exam-prep, discussion, reading
	byRow := map[int]models.ZoneKey{}
	for _, seat := range seats {
		byRow[seat.Row] = seat.Zone
	}
	assert.Equal(t, models.ZonePremium, byRow[0])
	assert.Equal(t, models.ZoneSilent, byRow[1])
	assert.Equal(t, models.ZoneExamPrep, byRow[2])
	assert.Equal(t, models.ZoneDiscussion, byRow[3])
	assert.Equal(t, models.ZoneReading, byRow[4])
}

func TestGenerate_FeatureDerivation(t *testing.T) {
	gen := newGeneratorForTest(t)

	seats, err := gen.Generate(models.LayoutConfig{Rows: 10, Cols: 6})
	require.NoError(t, err)

	for _, seat := range seats {
		window := seat.Col == 0 || seat.Col == 5
		assert.Equal(t, window, seat.Features.Window, "seat %s window", seat.ID)
		assert.Equal(t, seat.Col%2 == 0, seat.Features.Power, "seat %s power", seat.ID)
		assert.True(t, seat.Features.WiFi, "seat %s wifi", seat.ID)
		assert.Equal(t, seat.Row < 3 || window, seat.Features.NaturalLight, "seat %s natural light", seat.ID)

		ac := seat.Zone == models.ZonePremium || seat.Zone == models.ZoneSilent || seat.Zone == models.ZoneExamPrep
		locker := seat.Zone == models.ZonePremium || seat.Zone == models.ZoneExamPrep
		cushioned := seat.Zone == models.ZonePremium || seat.Zone == models.ZoneExamPrep || seat.Zone == models.ZoneSilent
		assert.Equal(t, ac, seat.Features.AC, "seat %s ac", seat.ID)
		assert.Equal(t, locker, seat.Features.Locker, "seat %s locker", seat.ID)
		assert.Equal(t, cushioned, seat.Features.CushionedChair, "seat %s cushioned chair", seat.ID)
	}
}

func TestGenerate_DiscussionDoubleDesks(t *testing.T) {
	gen := newGeneratorForTest(t)

	// rows 6 and 7 of a 10-row grid are the discussion band
	seats, err := gen.Generate(models.LayoutConfig{Rows: 10, Cols: 9})
	require.NoError(t, err)

	for _, seat := range seats {
		if seat.Zone != models.ZoneDiscussion {
			assert.Equal(t, 1, seat.Capacity, "seat %s", seat.ID)
			continue
		}
		// every third seat within the row
		if (seat.Col+1)%3 == 0 {
			assert.Equal(t, 2, seat.Capacity, "seat %s", seat.ID)
		} else {
			assert.Equal(t, 1, seat.Capacity, "seat %s", seat.ID)
		}
	}
}

func TestGenerate_PositionsAndSpacing(t *testing.T) {
	gen := newGeneratorForTest(t)

	cfg := models.LayoutConfig{
		Rows: 2, Cols: 3,
		OriginX: 100, OriginY: 200,
		ColSpacing: 50, RowSpacing: 60,
	}
	seats, err := gen.Generate(cfg)
	require.NoError(t, err)
	require.Len(t, seats, 6)

	last := seats[5]
	assert.Equal(t, "1-2", last.ID)
	assert.Equal(t, 100.0+2*50, last.Position.X)
	assert.Equal(t, 200.0+1*60, last.Position.Y)
}

func TestGenerate_SequentialNumbering(t *testing.T) {
	gen := newGeneratorForTest(t)

	cfg := models.LayoutConfig{
		Rows: 2, Cols: 3,
		NumberingStyle: models.NumberingSequential,
		StartingNumber: 5,
		AisleCols:      []int{1},
	}
	seats, err := gen.Generate(cfg)
	require.NoError(t, err)
	require.Len(t, seats, 4)

	assert.Equal(t, "S5", seats[0].DisplayNumber)
	assert.Equal(t, "S6", seats[1].DisplayNumber)
	assert.Equal(t, "S7", seats[2].DisplayNumber)
	assert.Equal(t, "S8", seats[3].DisplayNumber)
}

func TestGenerate_PricingSnapshotIsIndependent(t *testing.T) {
	catalog := NewCatalogService()
	gen := NewGeneratorService(catalog)

	seats, err := gen.Generate(models.LayoutConfig{Rows: 2, Cols: 2})
	require.NoError(t, err)

	seats[0].Pricing[models.DurationHourly] = 9999
	catalogPricing, ok := catalog.PricingFor(seats[0].Zone)
	require.True(t, ok)
	assert.NotEqual(t, 9999.0, catalogPricing[models.DurationHourly])
}

func TestGenerate_InvalidConfig(t *testing.T) {
	gen := newGeneratorForTest(t)

	tests := []struct {
		name   string
		config models.LayoutConfig
		field  string
	}{
		{"zero rows", models.LayoutConfig{Rows: 0, Cols: 5}, "rows"},
		{"negative cols", models.LayoutConfig{Rows: 5, Cols: -1}, "cols"},
		{"aisle out of range", models.LayoutConfig{Rows: 5, Cols: 5, AisleCols: []int{5}}, "aisle_cols"},
		{"negative aisle", models.LayoutConfig{Rows: 5, Cols: 5, AisleCols: []int{-1}}, "aisle_cols"},
		{"bad numbering style", models.LayoutConfig{Rows: 5, Cols: 5, NumberingStyle: "roman"}, "numbering_style"},
		{"negative starting number", models.LayoutConfig{Rows: 5, Cols: 5, NumberingStyle: models.NumberingSequential, StartingNumber: -2}, "starting_number"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := gen.Generate(tt.config)
			require.Error(t, err)
			var cfgErr *ConfigError
			require.ErrorAs(t, err, &cfgErr)
			assert.Equal(t, tt.field, cfgErr.Field)
		})
	}
}

func TestGenerateFromTemplate_CountConformance(t *testing.T) {
	gen := newGeneratorForTest(t)

	tpl := &models.LayoutTemplate{
		Config: models.LayoutConfig{Rows: 5, Cols: 8},
		ZoneCounts: []models.ZoneCount{
			{Zone: models.ZonePremium, Count: 8},
			{Zone: models.ZoneSilent, Count: 8},
			{Zone: models.ZoneExamPrep, Count: 8},
			{Zone: models.ZoneDiscussion, Count: 8},
		},
	}

	seats, err := gen.GenerateFromTemplate(tpl)
	require.NoError(t, err)
	require.Len(t, seats, 40)

	counts := map[models.ZoneKey]int{}
	for _, seat := range seats {
		counts[seat.Zone]++
	}
	assert.Equal(t, 8, counts[models.ZonePremium])
	assert.Equal(t, 8, counts[models.ZoneSilent])
	assert.Equal(t, 8, counts[models.ZoneExamPrep])
	assert.Equal(t, 8, counts[models.ZoneDiscussion])
	assert.Equal(t, 8, counts[models.ZoneReading], "remainder falls back to reading")

	// targets fill in row-major order
	assert.Equal(t, models.ZonePremium, seats[0].Zone)
	assert.Equal(t, models.ZonePremium, seats[7].Zone)
	assert.Equal(t, models.ZoneSilent, seats[8].Zone)
}

func TestGenerateFromTemplate_CountsFillAisleCapacity(t *testing.T) {
	gen := newGeneratorForTest(t)

	// 2x3 grid with one aisle column holds 4 seats, not 6
	tpl := &models.LayoutTemplate{
		Config:     models.LayoutConfig{Rows: 2, Cols: 3, AisleCols: []int{1}},
		ZoneCounts: []models.ZoneCount{{Zone: models.ZonePremium, Count: 4}},
	}

	seats, err := gen.GenerateFromTemplate(tpl)
	require.NoError(t, err)
	require.Len(t, seats, 4)
	for _, seat := range seats {
		assert.Equal(t, models.ZonePremium, seat.Zone)
	}
}

func TestGenerateFromTemplate_Rejections(t *testing.T) {
	gen := newGeneratorForTest(t)

	tests := []struct {
		name string
		tpl  *models.LayoutTemplate
	}{
		{
			name: "counts exceed grid",
			tpl: &models.LayoutTemplate{
				Config:     models.LayoutConfig{Rows: 2, Cols: 2},
				ZoneCounts: []models.ZoneCount{{Zone: models.ZonePremium, Count: 5}},
			},
		},
		{
			name: "counts exceed grid with aisles",
			tpl: &models.LayoutTemplate{
				Config:     models.LayoutConfig{Rows: 2, Cols: 3, AisleCols: []int{1}},
				ZoneCounts: []models.ZoneCount{{Zone: models.ZonePremium, Count: 5}},
			},
		},
		{
			name: "negative count",
			tpl: &models.LayoutTemplate{
				Config:     models.LayoutConfig{Rows: 2, Cols: 2},
				ZoneCounts: []models.ZoneCount{{Zone: models.ZonePremium, Count: -1}},
			},
		},
		{
			name: "unknown zone",
			tpl: &models.LayoutTemplate{
				Config:     models.LayoutConfig{Rows: 2, Cols: 2},
				ZoneCounts: []models.ZoneCount{{Zone: "vip-lounge", Count: 1}},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := gen.GenerateFromTemplate(tt.tpl)
			assert.Error(t, err)
		})
	}
}

func TestSeedOccupancy(t *testing.T) {
	gen := newGeneratorForTest(t)

	seats, err := gen.Generate(models.LayoutConfig{Rows: 10, Cols: 10})
	require.NoError(t, err)

	rng := rand.New(rand.NewSource(42))
	gen.SeedOccupancy(seats, 0.3, rng)

	occupied := 0
	for _, seat := range seats {
		if seat.Status == models.SeatOccupied {
			occupied++
		}
	}
	assert.Greater(t, occupied, 0)
	assert.Less(t, occupied, 100)

	// same seed, same outcome
	again, err := gen.Generate(models.LayoutConfig{Rows: 10, Cols: 10})
	require.NoError(t, err)
	gen.SeedOccupancy(again, 0.3, rand.New(rand.NewSource(42)))
	assert.Equal(t, seats, again)
}

func TestSeedOccupancy_NilRand(t *testing.T) {
	gen := newGeneratorForTest(t)

	seats, err := gen.Generate(models.LayoutConfig{Rows: 2, Cols: 2})
	require.NoError(t, err)

	gen.SeedOccupancy(seats, 0.5, nil)
	for _, seat := range seats {
		assert.Equal(t, models.SeatAvailable, seat.Status)
	}
}

func TestBuiltinTemplates(t *testing.T) {
	gen := newGeneratorForTest(t)

	templates := gen.Templates()
	require.Len(t, templates, 3)

	for _, tpl := range templates {
		t.Run(tpl.Name, func(t *testing.T) {
			seats, err := gen.GenerateFromTemplate(&tpl)
			require.NoError(t, err)
			assert.NotEmpty(t, seats)
		})
	}

	_, ok := gen.TemplateByName("Medium Library")
	assert.True(t, ok)
	_, ok = gen.TemplateByName("Colossal Library")
	assert.False(t, ok)
}

func TestRowLabel(t *testing.T) {
	tests := []struct {
		row      int
		expected string
	}{
		{1, "A"},
		{2, "B"},
		{26, "Z"},
		{27, "AA"},
		{28, "AB"},
		{52, "AZ"},
		{53, "BA"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, rowLabel(tt.row), "row %d", tt.row)
	}
}
