package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/seatlabs/library-layout-backend/internal/models"
)

// ErrLayoutNotFound indicates no saved layout row matches the given ID
var ErrLayoutNotFound = errors.New("layout not found")

// LayoutRepository handles saved-layout database operations. Layouts are
// stored as full-value JSONB documents: every save overwrites the complete
// serialized layout rather than patching individual seats.
type LayoutRepository struct {
	db DB
}

// NewLayoutRepository creates a new layout repository
func NewLayoutRepository(db DB) *LayoutRepository {
	return &LayoutRepository{
		db: db,
	}
}

// Save upserts a layout record. The created_at of an existing row is
// preserved; updated_at always moves forward.
func (r *LayoutRepository) Save(ctx context.Context, rec *models.LayoutRecord) error {
	now := time.Now()

	query := `
		INSERT INTO layouts (
			id, owner_id, name, total_seats, data, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (id) DO UPDATE SET
			name = EXCLUDED.name,
			total_seats = EXCLUDED.total_seats,
			data = EXCLUDED.data,
			updated_at = EXCLUDED.updated_at
	`

	_, err := r.db.ExecContext(
		ctx,
		query,
		rec.ID,
		rec.OwnerID,
		rec.Name,
		rec.TotalSeats,
		rec.Data,
		now,
		now,
	)
	if err != nil {
		return fmt.Errorf("failed to save layout: %w", err)
	}

	rec.UpdatedAt = now
	return nil
}

// Get retrieves a saved layout by ID
func (r *LayoutRepository) Get(ctx context.Context, id uuid.UUID) (*models.LayoutRecord, error) {
	var rec models.LayoutRecord

	query := `
		SELECT id, owner_id, name, total_seats, data, created_at, updated_at
		FROM layouts
		WHERE id = $1
	`

	err := r.db.GetContext(ctx, &rec, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrLayoutNotFound
		}
		return nil, fmt.Errorf("failed to get layout: %w", err)
	}

	return &rec, nil
}

// List retrieves summaries of an owner's saved layouts, newest first
func (r *LayoutRepository) List(ctx context.Context, ownerID uuid.UUID) ([]models.LayoutSummary, error) {
	summaries := []models.LayoutSummary{}

	query := `
		SELECT id, name, total_seats, created_at, updated_at
		FROM layouts
		WHERE owner_id = $1
		ORDER BY updated_at DESC
	`

	err := r.db.SelectContext(ctx, &summaries, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list layouts: %w", err)
	}

	return summaries, nil
}

// Delete removes a saved layout by ID
func (r *LayoutRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM layouts WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete layout: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check delete result: %w", err)
	}
	if rows == 0 {
		return ErrLayoutNotFound
	}

	return nil
}
