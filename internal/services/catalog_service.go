package services

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/seatlabs/library-layout-backend/internal/models"
	"github.com/seatlabs/library-layout-backend/pkg/validator"
)

// CatalogService provides the zone and amenity lookup tables. The catalog is
// loaded once at startup and treated as immutable for the session; seats copy
// pricing out of it at generation time rather than referencing it live.
type CatalogService struct {
	zones        map[models.ZoneKey]models.ZoneInfo
	zoneOrder    []models.ZoneKey
	amenities    map[string]models.AmenityInfo
	amenityOrder []string
}

// defaultZones is the built-in zone catalog, in display order
var defaultZones = []models.ZoneInfo{
	{
		Zone:  models.ZonePremium,
		Label: "Premium Zone",
		Color: "#8b5cf6",
		Pricing: models.PricingTable{
			models.DurationHourly:  50,
			models.DurationDaily:   300,
			models.DurationWeekly:  1500,
			models.DurationMonthly: 4500,
		},
	},
	{
		Zone:  models.ZoneSilent,
		Label: "Silent Study Zone",
		Color: "#3b82f6",
		Pricing: models.PricingTable{
			models.DurationHourly:  40,
			models.DurationDaily:   250,
			models.DurationWeekly:  1200,
			models.DurationMonthly: 3500,
		},
	},
	{
		Zone:  models.ZoneExamPrep,
		Label: "Exam Prep Zone",
		Color: "#f59e0b",
		Pricing: models.PricingTable{
			models.DurationHourly:  45,
			models.DurationDaily:   280,
			models.DurationWeekly:  1300,
			models.DurationMonthly: 3800,
		},
	},
	{
		Zone:  models.ZoneReading,
		Label: "Reading Zone",
		Color: "#10b981",
		Pricing: models.PricingTable{
			models.DurationHourly:  30,
			models.DurationDaily:   180,
			models.DurationWeekly:  900,
			models.DurationMonthly: 2500,
		},
	},
	{
		Zone:  models.ZoneDiscussion,
		Label: "Discussion Zone",
		Color: "#ec4899",
		Pricing: models.PricingTable{
			models.DurationHourly:  35,
			models.DurationDaily:   200,
			models.DurationWeekly:  1000,
			models.DurationMonthly: 2800,
		},
	},
}

// defaultAmenities is the built-in amenity catalog, in display order
var defaultAmenities = []models.AmenityInfo{
	{Key: "wifi", Label: "High-Speed WiFi", Icon: "wifi"},
	{Key: "ac", Label: "Air Conditioning", Icon: "ac_unit"},
	{Key: "locker", Label: "Personal Lockers", Icon: "lock"},
	{Key: "cctv", Label: "CCTV Surveillance", Icon: "videocam"},
	{Key: "power-backup", Label: "Power Backup", Icon: "bolt"},
	{Key: "water", Label: "Drinking Water", Icon: "water_drop"},
	{Key: "parking", Label: "Parking", Icon: "local_parking"},
	{Key: "printing", Label: "Printing & Scanning", Icon: "print"},
}

// NewCatalogService creates a catalog service with the built-in defaults
func NewCatalogService() *CatalogService {
	s := &CatalogService{
		zones:     make(map[models.ZoneKey]models.ZoneInfo),
		amenities: make(map[string]models.AmenityInfo),
	}
	for _, z := range defaultZones {
		s.zones[z.Zone] = z
		s.zoneOrder = append(s.zoneOrder, z.Zone)
	}
	for _, a := range defaultAmenities {
		s.amenities[a.Key] = a
		s.amenityOrder = append(s.amenityOrder, a.Key)
	}
	return s
}

// NewCatalogServiceFromFile loads a catalog override from a JSON file.
// Every zone entry must carry a valid hex color and all four duration prices.
func NewCatalogServiceFromFile(path string) (*CatalogService, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog file: %w", err)
	}

	var file models.CatalogFile
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse catalog file: %w", err)
	}

	if len(file.Zones) == 0 {
		return nil, fmt.Errorf("catalog file defines no zones")
	}

	colorValidator := validator.NewColorValidator()
	s := &CatalogService{
		zones:     make(map[models.ZoneKey]models.ZoneInfo),
		amenities: make(map[string]models.AmenityInfo),
	}

	for _, z := range file.Zones {
		if z.Zone == "" {
			return nil, fmt.Errorf("catalog zone entry with empty key")
		}
		color, err := colorValidator.Validate(z.Color)
		if err != nil {
			return nil, fmt.Errorf("zone %q has invalid color: %w", z.Zone, err)
		}
		z.Color = color
		for _, d := range models.BillingDurations {
			if _, ok := z.Pricing[d]; !ok {
				return nil, fmt.Errorf("zone %q is missing %s pricing", z.Zone, d)
			}
			if z.Pricing[d] < 0 {
				return nil, fmt.Errorf("zone %q has negative %s price", z.Zone, d)
			}
		}
		if _, dup := s.zones[z.Zone]; dup {
			return nil, fmt.Errorf("duplicate zone key %q in catalog file", z.Zone)
		}
		s.zones[z.Zone] = z
		s.zoneOrder = append(s.zoneOrder, z.Zone)
	}

	amenities := file.Amenities
	if len(amenities) == 0 {
		amenities = defaultAmenities
	}
	for _, a := range amenities {
		if a.Key == "" {
			return nil, fmt.Errorf("catalog amenity entry with empty key")
		}
		s.amenities[a.Key] = a
		s.amenityOrder = append(s.amenityOrder, a.Key)
	}

	return s, nil
}

// Zone returns the catalog entry for a zone key
func (s *CatalogService) Zone(key models.ZoneKey) (models.ZoneInfo, bool) {
	z, ok := s.zones[key]
	return z, ok
}

// HasZone reports whether the zone key exists in the catalog
func (s *CatalogService) HasZone(key models.ZoneKey) bool {
	_, ok := s.zones[key]
	return ok
}

// Zones returns all zone entries in catalog order
func (s *CatalogService) Zones() []models.ZoneInfo {
	out := make([]models.ZoneInfo, 0, len(s.zoneOrder))
	for _, key := range s.zoneOrder {
		out = append(out, s.zones[key])
	}
	return out
}

// ZoneKeys returns all zone keys in catalog order
func (s *CatalogService) ZoneKeys() []models.ZoneKey {
	out := make([]models.ZoneKey, len(s.zoneOrder))
	copy(out, s.zoneOrder)
	return out
}

// Amenity returns the catalog entry for an amenity key
func (s *CatalogService) Amenity(key string) (models.AmenityInfo, bool) {
	a, ok := s.amenities[key]
	return a, ok
}

// Amenities returns all amenity entries in catalog order
func (s *CatalogService) Amenities() []models.AmenityInfo {
	out := make([]models.AmenityInfo, 0, len(s.amenityOrder))
	for _, key := range s.amenityOrder {
		out = append(out, s.amenities[key])
	}
	return out
}

// PricingFor returns an independent copy of a zone's pricing table, suitable
// for snapshotting onto a generated seat
func (s *CatalogService) PricingFor(key models.ZoneKey) (models.PricingTable, bool) {
	z, ok := s.zones[key]
	if !ok {
		return nil, false
	}
	return z.Pricing.Clone(), true
}
