package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/seatlabs/library-layout-backend/internal/database"
	"github.com/seatlabs/library-layout-backend/internal/models"
	"github.com/seatlabs/library-layout-backend/internal/services"
	"github.com/sirupsen/logrus"
)

// AvailabilityHandler receives seat-availability pushes from the booking
// collaborator over HTTP. This is the synchronous alternative to the queue
// consumer; both paths end in the same SetSeatStatus call.
type AvailabilityHandler struct {
	service *services.LayoutService
	logger  *logrus.Logger
}

// NewAvailabilityHandler creates a new availability handler
func NewAvailabilityHandler(service *services.LayoutService, logger *logrus.Logger) *AvailabilityHandler {
	return &AvailabilityHandler{
		service: service,
		logger:  logger,
	}
}

// UpdateSeatStatusRequest is the internal availability push payload
type UpdateSeatStatusRequest struct {
	LayoutID  uuid.UUID         `json:"layout_id" binding:"required"`
	SeatID    string            `json:"seat_id" binding:"required"`
	Status    models.SeatStatus `json:"status" binding:"required"`
	BookingID string            `json:"booking_id"`
}

// UpdateSeatStatus handles POST /internal/v1/availability
func (h *AvailabilityHandler) UpdateSeatStatus(c *gin.Context) {
	var req UpdateSeatStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "invalid_request",
			Message: "Invalid request body: " + err.Error(),
			Code:    "INVALID_BODY",
		})
		return
	}

	if err := h.service.SetSeatStatus(c.Request.Context(), req.LayoutID, req.SeatID, req.Status); err != nil {
		h.logger.WithError(err).WithFields(logrus.Fields{
			"layout_id": req.LayoutID,
			"seat_id":   req.SeatID,
		}).Warn("Failed to apply availability push")

		status := http.StatusBadRequest
		code := "INVALID_SEAT_STATUS"
		if errors.Is(err, services.ErrLayoutNotFound) || errors.Is(err, database.ErrLayoutNotFound) || errors.Is(err, services.ErrSeatNotFound) {
			status = http.StatusNotFound
			code = "SEAT_STATUS_NOT_APPLIED"
		}
		c.JSON(status, ErrorResponse{
			Error:   "seat_status_rejected",
			Message: err.Error(),
			Code:    code,
		})
		return
	}

	h.logger.WithFields(logrus.Fields{
		"layout_id":  req.LayoutID,
		"seat_id":    req.SeatID,
		"status":     req.Status,
		"booking_id": req.BookingID,
	}).Info("Applied seat availability push")

	c.JSON(http.StatusOK, gin.H{"applied": true})
}
