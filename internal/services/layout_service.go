package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/seatlabs/library-layout-backend/internal/models"
	"github.com/sirupsen/logrus"
)

var (
	// ErrLayoutNotFound indicates the layout ID matches no draft or saved layout
	ErrLayoutNotFound = errors.New("layout not found")

	// ErrSeatNotFound indicates the seat ID matches no seat in the layout
	ErrSeatNotFound = errors.New("seat not found")

	// ErrAreaNotFound indicates the area ID matches no area in the layout
	ErrAreaNotFound = errors.New("area not found")

	// ErrOverlayNotFound indicates the overlay ID matches no marked zone
	ErrOverlayNotFound = errors.New("zone overlay not found")

	// ErrUnknownAmenity indicates the amenity key is not in the catalog
	ErrUnknownAmenity = errors.New("unknown amenity")

	// ErrUnknownZone indicates the zone key is not in the catalog
	ErrUnknownZone = errors.New("unknown zone")

	// ErrUnknownTemplate indicates no built-in template has that name
	ErrUnknownTemplate = errors.New("unknown template")

	// ErrInvalidSeatStatus indicates a status outside the known set
	ErrInvalidSeatStatus = errors.New("invalid seat status")
)

// LayoutStore persists saved layouts as full-value records
type LayoutStore interface {
	Save(ctx context.Context, rec *models.LayoutRecord) error
	Get(ctx context.Context, id uuid.UUID) (*models.LayoutRecord, error)
	List(ctx context.Context, ownerID uuid.UUID) ([]models.LayoutSummary, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// SnapshotStore mirrors saved layouts into the external key-value store
type SnapshotStore interface {
	Put(ctx context.Context, id uuid.UUID, snap models.LayoutSnapshot) error
	Get(ctx context.Context, id uuid.UUID) (*models.LayoutSnapshot, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// LayoutService owns the mutable layout state. Every mutation the designer
// can perform is a method here, executed under a single lock: there is one
// logical writer at a time, and each mutation is a complete, synchronous
// transformation of the layout value. The generator, aggregator and
// recommender stay pure; this service is the only place state lives.
type LayoutService struct {
	mu     sync.Mutex
	drafts map[uuid.UUID]*models.Layout

	catalog     *CatalogService
	generator   *GeneratorService
	selection   *SelectionService
	recommender *RecommendationService
	store       LayoutStore
	snapshots   SnapshotStore
	logger      *logrus.Logger

	demoRate float64
	rng      *rand.Rand
}

// NewLayoutService creates the layout controller. The randomness source is
// injected so demo occupancy stays reproducible in tests; pass nil to
// disable demo seeding entirely.
func NewLayoutService(
	catalog *CatalogService,
	generator *GeneratorService,
	selection *SelectionService,
	recommender *RecommendationService,
	store LayoutStore,
	snapshots SnapshotStore,
	logger *logrus.Logger,
	demoRate float64,
	rng *rand.Rand,
) *LayoutService {
	return &LayoutService{
		drafts:      make(map[uuid.UUID]*models.Layout),
		catalog:     catalog,
		generator:   generator,
		selection:   selection,
		recommender: recommender,
		store:       store,
		snapshots:   snapshots,
		logger:      logger,
		demoRate:    demoRate,
		rng:         rng,
	}
}

// Generate creates a new draft layout from a shape configuration using the
// requested banding strategy (row-fraction by default)
func (s *LayoutService) Generate(req *models.GenerateLayoutRequest, ownerID uuid.UUID) (*models.Layout, error) {
	var seats []models.Seat
	var err error

	switch req.Strategy {
	case "", models.BandingRowFraction:
		seats, err = s.generator.Generate(req.Config)
	case models.BandingTemplateCounts:
		tpl := &models.LayoutTemplate{Config: req.Config, ZoneCounts: req.ZoneCounts}
		seats, err = s.generator.GenerateFromTemplate(tpl)
	default:
		err = &ConfigError{Field: "strategy", Message: fmt.Sprintf("unknown banding strategy %q", req.Strategy)}
	}
	if err != nil {
		return nil, err
	}

	cfg, err := s.generator.Normalize(req.Config)
	if err != nil {
		return nil, err
	}

	if req.DemoOccupancy {
		s.generator.SeedOccupancy(seats, s.demoRate, s.rng)
	}

	now := time.Now().UTC()
	layout := &models.Layout{
		ID:        uuid.New(),
		OwnerID:   ownerID,
		Name:      req.Name,
		Seats:     seats,
		Areas:     []models.Area{},
		Amenities: map[string]bool{"wifi": true},
		Config:    cfg,
		Selected:  make(map[string]bool),
		CreatedAt: now,
		UpdatedAt: now,
	}

	s.mu.Lock()
	s.drafts[layout.ID] = layout
	s.mu.Unlock()

	s.logger.WithFields(logrus.Fields{
		"layout_id": layout.ID,
		"owner_id":  ownerID,
		"seats":     len(seats),
		"strategy":  req.Strategy,
	}).Info("Layout generated")

	return layout, nil
}

// ApplyTemplate creates a new draft layout from a built-in template,
// including its pre-placed areas and amenity presets
func (s *LayoutService) ApplyTemplate(req *models.ApplyTemplateRequest, ownerID uuid.UUID) (*models.Layout, error) {
	tpl, ok := s.generator.TemplateByName(req.Template)
	if !ok {
		return nil, ErrUnknownTemplate
	}

	seats, err := s.generator.GenerateFromTemplate(tpl)
	if err != nil {
		return nil, err
	}

	cfg, err := s.generator.Normalize(tpl.Config)
	if err != nil {
		return nil, err
	}

	name := req.Name
	if name == "" {
		name = tpl.Name
	}

	amenities := make(map[string]bool, len(tpl.Amenities))
	for _, a := range tpl.Amenities {
		amenities[a] = true
	}
	areas := make([]models.Area, len(tpl.Areas))
	copy(areas, tpl.Areas)

	now := time.Now().UTC()
	layout := &models.Layout{
		ID:        uuid.New(),
		OwnerID:   ownerID,
		Name:      name,
		Seats:     seats,
		Areas:     areas,
		Amenities: amenities,
		Config:    cfg,
		Selected:  make(map[string]bool),
		CreatedAt: now,
		UpdatedAt: now,
	}

	s.mu.Lock()
	s.drafts[layout.ID] = layout
	s.mu.Unlock()

	s.logger.WithFields(logrus.Fields{
		"layout_id": layout.ID,
		"owner_id":  ownerID,
		"template":  tpl.Name,
		"seats":     len(seats),
	}).Info("Template applied")

	return layout, nil
}

// Get returns a layout by ID, loading it from the store when it is not a
// working draft
func (s *LayoutService) Get(ctx context.Context, id uuid.UUID) (*models.Layout, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loadLocked(ctx, id)
}

// loadLocked returns the working draft for id, reloading a saved layout from
// the store when the draft has been evicted. Every read and mutation goes
// through here so an evicted-but-saved layout is indistinguishable from a
// resident one. The caller must hold s.mu.
func (s *LayoutService) loadLocked(ctx context.Context, id uuid.UUID) (*models.Layout, error) {
	if layout, ok := s.drafts[id]; ok {
		return layout, nil
	}

	if s.store == nil {
		return nil, ErrLayoutNotFound
	}

	rec, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	var snap models.LayoutSnapshot
	if err := json.Unmarshal(rec.Data, &snap); err != nil {
		return nil, fmt.Errorf("failed to decode saved layout: %w", err)
	}

	layout := snap.ToLayout(rec.ID, rec.OwnerID)
	layout.UpdatedAt = rec.UpdatedAt
	s.drafts[id] = layout
	return layout, nil
}

// List returns summaries of the owner's saved layouts
func (s *LayoutService) List(ctx context.Context, ownerID uuid.UUID) ([]models.LayoutSummary, error) {
	if s.store == nil {
		return []models.LayoutSummary{}, nil
	}
	return s.store.List(ctx, ownerID)
}

// ToggleSeat flips a seat's selection state and returns the new state.
// Occupied and blocked seats are unselectable; toggling them is a no-op.
func (s *LayoutService) ToggleSeat(ctx context.Context, id uuid.UUID, seatID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	layout, err := s.loadLocked(ctx, id)
	if err != nil {
		return false, err
	}

	selected := s.selection.Toggle(layout.Seats, layout.Selected, seatID)
	return selected, nil
}

// AssignZone bulk-reassigns seats to a catalog zone. Zone-dependent features
// are re-derived and pricing is re-snapshotted from the catalog; unknown seat
// IDs in the request are ignored.
func (s *LayoutService) AssignZone(ctx context.Context, id uuid.UUID, req *models.AssignZoneRequest) (int, error) {
	if !s.catalog.HasZone(req.Zone) {
		return 0, ErrUnknownZone
	}
	pricing, _ := s.catalog.PricingFor(req.Zone)

	s.mu.Lock()
	defer s.mu.Unlock()

	layout, err := s.loadLocked(ctx, id)
	if err != nil {
		return 0, err
	}

	wanted := make(map[string]bool, len(req.SeatIDs))
	for _, seatID := range req.SeatIDs {
		wanted[seatID] = true
	}

	changed := 0
	for i := range layout.Seats {
		seat := &layout.Seats[i]
		if !wanted[seat.ID] {
			continue
		}
		seat.Zone = req.Zone
		seat.Features = deriveFeatures(seat.Row, seat.Col, layout.Config.Cols, req.Zone)
		seat.Pricing = pricing.Clone()
		changed++
	}

	if changed > 0 {
		layout.UpdatedAt = time.Now().UTC()
	}
	return changed, nil
}

// DeleteSeat removes a seat from the layout and drops it from the selection
func (s *LayoutService) DeleteSeat(ctx context.Context, id uuid.UUID, seatID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	layout, err := s.loadLocked(ctx, id)
	if err != nil {
		return err
	}

	for i := range layout.Seats {
		if layout.Seats[i].ID == seatID {
			layout.Seats = append(layout.Seats[:i], layout.Seats[i+1:]...)
			delete(layout.Selected, seatID)
			layout.UpdatedAt = time.Now().UTC()
			return nil
		}
	}
	return ErrSeatNotFound
}

// AddArea places a new non-seat area on the floor plan
func (s *LayoutService) AddArea(ctx context.Context, id uuid.UUID, req *models.AddAreaRequest) (*models.Area, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	layout, err := s.loadLocked(ctx, id)
	if err != nil {
		return nil, err
	}

	area := models.Area{
		ID:     uuid.NewString(),
		Type:   req.Type,
		Name:   req.Name,
		X:      req.X,
		Y:      req.Y,
		Width:  req.Width,
		Height: req.Height,
	}
	layout.Areas = append(layout.Areas, area)
	layout.UpdatedAt = time.Now().UTC()
	return &area, nil
}

// RemoveArea deletes an area from the floor plan
func (s *LayoutService) RemoveArea(ctx context.Context, id uuid.UUID, areaID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	layout, err := s.loadLocked(ctx, id)
	if err != nil {
		return err
	}

	for i := range layout.Areas {
		if layout.Areas[i].ID == areaID {
			layout.Areas = append(layout.Areas[:i], layout.Areas[i+1:]...)
			layout.UpdatedAt = time.Now().UTC()
			return nil
		}
	}
	return ErrAreaNotFound
}

// MarkZone draws a rectangular zone overlay on the floor plan. Overlays are
// visual markers only; they never change seat zone assignments.
func (s *LayoutService) MarkZone(ctx context.Context, id uuid.UUID, req *models.MarkZoneRequest) (*models.ZoneOverlay, error) {
	if !s.catalog.HasZone(req.Zone) {
		return nil, ErrUnknownZone
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	layout, err := s.loadLocked(ctx, id)
	if err != nil {
		return nil, err
	}

	overlay := models.ZoneOverlay{
		ID:     uuid.NewString(),
		Zone:   req.Zone,
		X:      req.X,
		Y:      req.Y,
		Width:  req.Width,
		Height: req.Height,
	}
	layout.MarkedZones = append(layout.MarkedZones, overlay)
	layout.UpdatedAt = time.Now().UTC()
	return &overlay, nil
}

// UnmarkZone removes a zone overlay from the floor plan
func (s *LayoutService) UnmarkZone(ctx context.Context, id uuid.UUID, overlayID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	layout, err := s.loadLocked(ctx, id)
	if err != nil {
		return err
	}

	for i := range layout.MarkedZones {
		if layout.MarkedZones[i].ID == overlayID {
			layout.MarkedZones = append(layout.MarkedZones[:i], layout.MarkedZones[i+1:]...)
			layout.UpdatedAt = time.Now().UTC()
			return nil
		}
	}
	return ErrOverlayNotFound
}

// ToggleAmenity flips a library-wide amenity flag and returns the new state
func (s *LayoutService) ToggleAmenity(ctx context.Context, id uuid.UUID, key string) (bool, error) {
	if _, ok := s.catalog.Amenity(key); !ok {
		return false, ErrUnknownAmenity
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	layout, err := s.loadLocked(ctx, id)
	if err != nil {
		return false, err
	}

	enabled := !layout.Amenities[key]
	if enabled {
		layout.Amenities[key] = true
	} else {
		delete(layout.Amenities, key)
	}
	layout.UpdatedAt = time.Now().UTC()
	return enabled, nil
}

// SetSeatStatus applies an external availability change to a seat. A seat
// that becomes occupied or blocked is dropped from the selection set.
func (s *LayoutService) SetSeatStatus(ctx context.Context, id uuid.UUID, seatID string, status models.SeatStatus) error {
	switch status {
	case models.SeatAvailable, models.SeatOccupied, models.SeatBlocked:
	default:
		return fmt.Errorf("%w: %q", ErrInvalidSeatStatus, status)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	layout, err := s.loadLocked(ctx, id)
	if err != nil {
		return err
	}

	seat := layout.SeatByID(seatID)
	if seat == nil {
		return ErrSeatNotFound
	}

	seat.Status = status
	if status == models.SeatOccupied || status == models.SeatBlocked {
		delete(layout.Selected, seatID)
	}
	layout.UpdatedAt = time.Now().UTC()
	return nil
}

// Stats returns the aggregate statistics for a layout
func (s *LayoutService) Stats(ctx context.Context, id uuid.UUID) (models.LayoutStats, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	layout, err := s.loadLocked(ctx, id)
	if err != nil {
		return models.LayoutStats{}, err
	}
	return s.selection.Stats(layout), nil
}

// Price returns the total price of the current selection for a duration
func (s *LayoutService) Price(ctx context.Context, id uuid.UUID, duration models.BillingDuration) (float64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	layout, err := s.loadLocked(ctx, id)
	if err != nil {
		return 0, err
	}
	return s.selection.TotalPrice(layout.Seats, layout.Selected, duration)
}

// Recommendations evaluates the rule battery against the layout
func (s *LayoutService) Recommendations(ctx context.Context, id uuid.UUID) ([]models.Suggestion, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	layout, err := s.loadLocked(ctx, id)
	if err != nil {
		return nil, err
	}

	in := models.RecommendationInput{
		TotalSeats:  len(layout.Seats),
		SeatsByZone: countByZone(layout.Seats),
		Amenities:   layout.AmenitySet(),
		Areas:       layout.Areas,
	}
	return s.recommender.Evaluate(in), nil
}

// ApplySuggestion executes a suggestion's automatic remedy. Suggestions with
// no remedy surface ErrManualActionRequired to the caller.
func (s *LayoutService) ApplySuggestion(ctx context.Context, id uuid.UUID, suggestionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	layout, err := s.loadLocked(ctx, id)
	if err != nil {
		return err
	}

	if err := s.recommender.Apply(layout, suggestionID); err != nil {
		return err
	}
	layout.UpdatedAt = time.Now().UTC()
	return nil
}

// Save persists the layout to the database and mirrors the snapshot into the
// key-value store. The write is always a full-value serialization.
func (s *LayoutService) Save(ctx context.Context, id uuid.UUID) error {
	s.mu.Lock()
	layout, err := s.loadLocked(ctx, id)
	s.mu.Unlock()
	if err != nil {
		return err
	}

	snap := models.NewSnapshot(layout)
	data, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("failed to serialize layout: %w", err)
	}

	if s.store != nil {
		rec := &models.LayoutRecord{
			ID:         layout.ID,
			OwnerID:    layout.OwnerID,
			Name:       layout.Name,
			TotalSeats: len(layout.Seats),
			Data:       data,
		}
		if err := s.store.Save(ctx, rec); err != nil {
			return fmt.Errorf("failed to save layout: %w", err)
		}
	}

	if s.snapshots != nil {
		if err := s.snapshots.Put(ctx, layout.ID, snap); err != nil {
			// The database copy is authoritative; a snapshot miss is logged
			// and the save still counts.
			s.logger.WithError(err).WithField("layout_id", layout.ID).Warn("Failed to write layout snapshot")
		}
	}

	s.logger.WithFields(logrus.Fields{
		"layout_id": layout.ID,
		"name":      layout.Name,
		"seats":     len(layout.Seats),
	}).Info("Layout saved")
	return nil
}

// Delete removes a layout from the working set, the database and the
// snapshot store
func (s *LayoutService) Delete(ctx context.Context, id uuid.UUID) error {
	s.mu.Lock()
	_, draft := s.drafts[id]
	delete(s.drafts, id)
	s.mu.Unlock()

	if s.store != nil {
		if err := s.store.Delete(ctx, id); err != nil {
			if !draft {
				return err
			}
		}
	}
	if s.snapshots != nil {
		if err := s.snapshots.Delete(ctx, id); err != nil {
			s.logger.WithError(err).WithField("layout_id", id).Warn("Failed to delete layout snapshot")
		}
	}
	return nil
}

// EvictStaleDrafts drops in-memory drafts untouched for longer than maxAge
// and returns how many were evicted. Saved layouts are unaffected: an evicted
// draft that was saved reloads from the store on the next access. An unsaved
// draft past maxAge is abandoned work and is discarded.
func (s *LayoutService) EvictStaleDrafts(maxAge time.Duration) int {
	cutoff := time.Now().UTC().Add(-maxAge)

	s.mu.Lock()
	defer s.mu.Unlock()

	evicted := 0
	for id, layout := range s.drafts {
		if layout.UpdatedAt.Before(cutoff) {
			delete(s.drafts, id)
			evicted++
		}
	}
	return evicted
}
