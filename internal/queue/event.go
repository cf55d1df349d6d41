// Package queue defines message payloads exchanged over the message broker.
package queue

import (
	"time"

	"github.com/google/uuid"
	"github.com/seatlabs/library-layout-backend/internal/models"
)

// SeatAvailabilityEvent is published by the booking collaborator whenever a
// seat's availability changes. It carries enough to update the floor plan
// without querying the booking database.
type SeatAvailabilityEvent struct {
	LayoutID   uuid.UUID         `json:"layout_id"`
	SeatID     string            `json:"seat_id"`
	Status     models.SeatStatus `json:"status"`
	BookingID  string            `json:"booking_id,omitempty"`
	OccurredAt time.Time         `json:"occurred_at"`
}
