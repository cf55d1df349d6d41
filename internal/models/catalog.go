package models

// ZoneInfo is one zone catalog entry: display metadata plus the pricing
// table copied onto seats at generation time. Static reference data.
type ZoneInfo struct {
	Zone    ZoneKey      `json:"zone"`
	Label   string       `json:"label"`
	Color   string       `json:"color"`
	Pricing PricingTable `json:"pricing"`
}

// AmenityInfo is one amenity catalog entry. Amenities are library-wide
// feature flags, distinct from per-seat features.
type AmenityInfo struct {
	Key   string `json:"key"`
	Label string `json:"label"`
	Icon  string `json:"icon"`
}

// CatalogFile is the on-disk override format for the zone/amenity catalog
type CatalogFile struct {
	Zones     []ZoneInfo    `json:"zones"`
	Amenities []AmenityInfo `json:"amenities"`
}
