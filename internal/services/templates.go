package services

import "github.com/seatlabs/library-layout-backend/internal/models"

// builtinTemplates are the named layout presets offered by the designer.
// Each carries an explicit per-zone seat count walked in declaration order;
// whatever the targets do not cover falls back to the reading zone.
var builtinTemplates = []models.LayoutTemplate{
	{
		Name:        "Small Library",
		Description: "40 seats in a 5x8 grid for compact reading rooms",
		Config: models.LayoutConfig{
			Rows:           5,
			Cols:           8,
			NumberingStyle: models.NumberingRowBased,
		},
		ZoneCounts: []models.ZoneCount{
			{Zone: models.ZonePremium, Count: 8},
			{Zone: models.ZoneSilent, Count: 8},
			{Zone: models.ZoneExamPrep, Count: 8},
			{Zone: models.ZoneDiscussion, Count: 8},
		},
		Areas: []models.Area{
			{ID: "tpl-washroom-1", Type: models.AreaWashroom, Name: "Washroom", X: 420, Y: 20, Width: 80, Height: 60},
		},
		Amenities: []string{"wifi", "water"},
	},
	{
		Name:        "Medium Library",
		Description: "80 seats in an 8x12 grid with a central walkway",
		Config: models.LayoutConfig{
			Rows:           8,
			Cols:           12,
			NumberingStyle: models.NumberingRowBased,
			AisleCols:      []int{6, 7},
		},
		ZoneCounts: []models.ZoneCount{
			{Zone: models.ZonePremium, Count: 16},
			{Zone: models.ZoneSilent, Count: 20},
			{Zone: models.ZoneExamPrep, Count: 16},
			{Zone: models.ZoneDiscussion, Count: 12},
		},
		Areas: []models.Area{
			{ID: "tpl-washroom-1", Type: models.AreaWashroom, Name: "Washroom", X: 640, Y: 20, Width: 80, Height: 60},
			{ID: "tpl-reception-1", Type: models.AreaReception, Name: "Reception", X: 20, Y: 20, Width: 100, Height: 60},
		},
		Amenities: []string{"wifi", "ac", "water"},
	},
	{
		Name:        "Large Library",
		Description: "140 seats in a 10x16 grid with two walkways",
		Config: models.LayoutConfig{
			Rows:           10,
			Cols:           16,
			NumberingStyle: models.NumberingSequential,
			StartingNumber: 1,
			AisleCols:      []int{5, 10},
		},
		ZoneCounts: []models.ZoneCount{
			{Zone: models.ZonePremium, Count: 30},
			{Zone: models.ZoneSilent, Count: 36},
			{Zone: models.ZoneExamPrep, Count: 28},
			{Zone: models.ZoneDiscussion, Count: 20},
		},
		Areas: []models.Area{
			{ID: "tpl-washroom-1", Type: models.AreaWashroom, Name: "Washroom A", X: 840, Y: 20, Width: 80, Height: 60},
			{ID: "tpl-washroom-2", Type: models.AreaWashroom, Name: "Washroom B", X: 840, Y: 120, Width: 80, Height: 60},
			{ID: "tpl-lunch-1", Type: models.AreaLunch, Name: "Lunch Area", X: 840, Y: 220, Width: 120, Height: 100},
			{ID: "tpl-reception-1", Type: models.AreaReception, Name: "Reception", X: 20, Y: 20, Width: 100, Height: 60},
		},
		Amenities: []string{"wifi", "ac", "locker", "water", "power-backup"},
	},
}

// Templates returns the built-in layout templates
func (s *GeneratorService) Templates() []models.LayoutTemplate {
	out := make([]models.LayoutTemplate, len(builtinTemplates))
	copy(out, builtinTemplates)
	return out
}

// TemplateByName looks up a built-in template. The second return value is
// false when no template with that name exists.
func (s *GeneratorService) TemplateByName(name string) (*models.LayoutTemplate, bool) {
	for i := range builtinTemplates {
		if builtinTemplates[i].Name == name {
			tpl := builtinTemplates[i]
			return &tpl, true
		}
	}
	return nil, false
}
