package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/seatlabs/library-layout-backend/internal/database"
	"github.com/seatlabs/library-layout-backend/internal/middleware"
	"github.com/seatlabs/library-layout-backend/internal/models"
	"github.com/seatlabs/library-layout-backend/internal/services"
	"github.com/sirupsen/logrus"
)

// ErrorResponse is the common error envelope
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

// LayoutHandler handles HTTP requests for layout design operations
type LayoutHandler struct {
	service *services.LayoutService
	logger  *logrus.Logger
}

// NewLayoutHandler creates a new layout handler
func NewLayoutHandler(service *services.LayoutService, logger *logrus.Logger) *LayoutHandler {
	return &LayoutHandler{
		service: service,
		logger:  logger,
	}
}

func parseLayoutID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "invalid_request",
			Message: "Invalid layout ID",
			Code:    "INVALID_LAYOUT_ID",
		})
		return uuid.Nil, false
	}
	return id, true
}

// respondLayoutError maps service errors onto HTTP statuses
func (h *LayoutHandler) respondLayoutError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrLayoutNotFound) || errors.Is(err, database.ErrLayoutNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{
			Error:   "not_found",
			Message: "Layout not found",
			Code:    "LAYOUT_NOT_FOUND",
		})
	case errors.Is(err, services.ErrSeatNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{
			Error:   "not_found",
			Message: "Seat not found in this layout",
			Code:    "SEAT_NOT_FOUND",
		})
	case errors.Is(err, services.ErrAreaNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{
			Error:   "not_found",
			Message: "Area not found in this layout",
			Code:    "AREA_NOT_FOUND",
		})
	case errors.Is(err, services.ErrOverlayNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{
			Error:   "not_found",
			Message: "Zone overlay not found in this layout",
			Code:    "OVERLAY_NOT_FOUND",
		})
	case errors.Is(err, services.ErrUnknownZone):
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "invalid_request",
			Message: "Zone is not in the catalog",
			Code:    "UNKNOWN_ZONE",
		})
	case errors.Is(err, services.ErrUnknownAmenity):
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "invalid_request",
			Message: "Amenity is not in the catalog",
			Code:    "UNKNOWN_AMENITY",
		})
	case errors.Is(err, services.ErrInvalidSeatStatus):
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "invalid_request",
			Message: err.Error(),
			Code:    "INVALID_SEAT_STATUS",
		})
	case errors.Is(err, services.ErrUnknownTemplate):
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "invalid_request",
			Message: "No template with that name",
			Code:    "UNKNOWN_TEMPLATE",
		})
	case errors.Is(err, services.ErrManualActionRequired):
		c.JSON(http.StatusConflict, ErrorResponse{
			Error:   "manual_action_required",
			Message: "This suggestion has no automatic remedy",
			Code:    "MANUAL_ACTION_REQUIRED",
		})
	case errors.Is(err, services.ErrSuggestionNotApplicable):
		c.JSON(http.StatusConflict, ErrorResponse{
			Error:   "not_applicable",
			Message: "The suggestion no longer applies to this layout",
			Code:    "SUGGESTION_NOT_APPLICABLE",
		})
	default:
		var cfgErr *services.ConfigError
		if errors.As(err, &cfgErr) {
			c.JSON(http.StatusBadRequest, ErrorResponse{
				Error:   "invalid_configuration",
				Message: cfgErr.Error(),
				Code:    "INVALID_LAYOUT_CONFIG",
			})
			return
		}
		h.logger.WithError(err).Error("Layout operation failed")
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error:   "internal_error",
			Message: "Something went wrong",
			Code:    "INTERNAL_ERROR",
		})
	}
}

// GenerateLayout handles POST /api/v1/layouts/generate
func (h *LayoutHandler) GenerateLayout(c *gin.Context) {
	var req models.GenerateLayoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "invalid_request",
			Message: "Invalid request body: " + err.Error(),
			Code:    "INVALID_BODY",
		})
		return
	}

	userCtx := middleware.MustGetUserContext(c)
	layout, err := h.service.Generate(&req, userCtx.UserID)
	if err != nil {
		h.respondLayoutError(c, err)
		return
	}

	c.JSON(http.StatusCreated, layout)
}

// ApplyTemplate handles POST /api/v1/layouts/from-template
func (h *LayoutHandler) ApplyTemplate(c *gin.Context) {
	var req models.ApplyTemplateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "invalid_request",
			Message: "Invalid request body: " + err.Error(),
			Code:    "INVALID_BODY",
		})
		return
	}

	userCtx := middleware.MustGetUserContext(c)
	layout, err := h.service.ApplyTemplate(&req, userCtx.UserID)
	if err != nil {
		h.respondLayoutError(c, err)
		return
	}

	c.JSON(http.StatusCreated, layout)
}

// ListLayouts handles GET /api/v1/layouts
func (h *LayoutHandler) ListLayouts(c *gin.Context) {
	userCtx := middleware.MustGetUserContext(c)

	summaries, err := h.service.List(c.Request.Context(), userCtx.UserID)
	if err != nil {
		h.respondLayoutError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"layouts": summaries,
		"count":   len(summaries),
	})
}

// GetLayout handles GET /api/v1/layouts/:id
func (h *LayoutHandler) GetLayout(c *gin.Context) {
	id, ok := parseLayoutID(c)
	if !ok {
		return
	}

	layout, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		h.respondLayoutError(c, err)
		return
	}

	c.JSON(http.StatusOK, layout)
}

// SaveLayout handles POST /api/v1/layouts/:id/save
func (h *LayoutHandler) SaveLayout(c *gin.Context) {
	id, ok := parseLayoutID(c)
	if !ok {
		return
	}

	if err := h.service.Save(c.Request.Context(), id); err != nil {
		h.respondLayoutError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"saved": true})
}

// DeleteLayout handles DELETE /api/v1/layouts/:id
func (h *LayoutHandler) DeleteLayout(c *gin.Context) {
	id, ok := parseLayoutID(c)
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		h.respondLayoutError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"deleted": true})
}

// ToggleSeat handles POST /api/v1/layouts/:id/seats/:seatId/toggle
func (h *LayoutHandler) ToggleSeat(c *gin.Context) {
	id, ok := parseLayoutID(c)
	if !ok {
		return
	}

	selected, err := h.service.ToggleSeat(c.Request.Context(), id, c.Param("seatId"))
	if err != nil {
		h.respondLayoutError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"seat_id": c.Param("seatId"), "selected": selected})
}

// DeleteSeat handles DELETE /api/v1/layouts/:id/seats/:seatId
func (h *LayoutHandler) DeleteSeat(c *gin.Context) {
	id, ok := parseLayoutID(c)
	if !ok {
		return
	}

	if err := h.service.DeleteSeat(c.Request.Context(), id, c.Param("seatId")); err != nil {
		h.respondLayoutError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"deleted": true})
}

// SetSeatStatus handles PUT /api/v1/layouts/:id/seats/:seatId/status
func (h *LayoutHandler) SetSeatStatus(c *gin.Context) {
	id, ok := parseLayoutID(c)
	if !ok {
		return
	}

	var req models.SeatStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "invalid_request",
			Message: "Invalid request body: " + err.Error(),
			Code:    "INVALID_BODY",
		})
		return
	}

	if err := h.service.SetSeatStatus(c.Request.Context(), id, c.Param("seatId"), req.Status); err != nil {
		h.respondLayoutError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"seat_id": c.Param("seatId"), "status": req.Status})
}

// AssignZone handles POST /api/v1/layouts/:id/zones/assign
func (h *LayoutHandler) AssignZone(c *gin.Context) {
	id, ok := parseLayoutID(c)
	if !ok {
		return
	}

	var req models.AssignZoneRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "invalid_request",
			Message: "Invalid request body: " + err.Error(),
			Code:    "INVALID_BODY",
		})
		return
	}

	changed, err := h.service.AssignZone(c.Request.Context(), id, &req)
	if err != nil {
		h.respondLayoutError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"zone": req.Zone, "seats_changed": changed})
}

// AddArea handles POST /api/v1/layouts/:id/areas
func (h *LayoutHandler) AddArea(c *gin.Context) {
	id, ok := parseLayoutID(c)
	if !ok {
		return
	}

	var req models.AddAreaRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "invalid_request",
			Message: "Invalid request body: " + err.Error(),
			Code:    "INVALID_BODY",
		})
		return
	}

	area, err := h.service.AddArea(c.Request.Context(), id, &req)
	if err != nil {
		h.respondLayoutError(c, err)
		return
	}

	c.JSON(http.StatusCreated, area)
}

// RemoveArea handles DELETE /api/v1/layouts/:id/areas/:areaId
func (h *LayoutHandler) RemoveArea(c *gin.Context) {
	id, ok := parseLayoutID(c)
	if !ok {
		return
	}

	if err := h.service.RemoveArea(c.Request.Context(), id, c.Param("areaId")); err != nil {
		h.respondLayoutError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"deleted": true})
}

// MarkZone handles POST /api/v1/layouts/:id/marked-zones
func (h *LayoutHandler) MarkZone(c *gin.Context) {
	id, ok := parseLayoutID(c)
	if !ok {
		return
	}

	var req models.MarkZoneRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "invalid_request",
			Message: "Invalid request body: " + err.Error(),
			Code:    "INVALID_BODY",
		})
		return
	}

	overlay, err := h.service.MarkZone(c.Request.Context(), id, &req)
	if err != nil {
		h.respondLayoutError(c, err)
		return
	}

	c.JSON(http.StatusCreated, overlay)
}

// UnmarkZone handles DELETE /api/v1/layouts/:id/marked-zones/:overlayId
func (h *LayoutHandler) UnmarkZone(c *gin.Context) {
	id, ok := parseLayoutID(c)
	if !ok {
		return
	}

	if err := h.service.UnmarkZone(c.Request.Context(), id, c.Param("overlayId")); err != nil {
		h.respondLayoutError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"deleted": true})
}

// ToggleAmenity handles POST /api/v1/layouts/:id/amenities/:key/toggle
func (h *LayoutHandler) ToggleAmenity(c *gin.Context) {
	id, ok := parseLayoutID(c)
	if !ok {
		return
	}

	enabled, err := h.service.ToggleAmenity(c.Request.Context(), id, c.Param("key"))
	if err != nil {
		h.respondLayoutError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"amenity": c.Param("key"), "enabled": enabled})
}

// GetStats handles GET /api/v1/layouts/:id/stats
func (h *LayoutHandler) GetStats(c *gin.Context) {
	id, ok := parseLayoutID(c)
	if !ok {
		return
	}

	stats, err := h.service.Stats(c.Request.Context(), id)
	if err != nil {
		h.respondLayoutError(c, err)
		return
	}

	c.JSON(http.StatusOK, stats)
}

// GetPrice handles GET /api/v1/layouts/:id/price?duration=monthly
func (h *LayoutHandler) GetPrice(c *gin.Context) {
	id, ok := parseLayoutID(c)
	if !ok {
		return
	}

	duration := models.BillingDuration(c.DefaultQuery("duration", string(models.DurationHourly)))
	if !duration.IsValid() {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "invalid_request",
			Message: "Unknown billing duration",
			Code:    "INVALID_DURATION",
		})
		return
	}

	total, err := h.service.Price(c.Request.Context(), id, duration)
	if err != nil {
		h.respondLayoutError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"duration": duration, "total": total})
}

// GetRecommendations handles GET /api/v1/layouts/:id/recommendations
func (h *LayoutHandler) GetRecommendations(c *gin.Context) {
	id, ok := parseLayoutID(c)
	if !ok {
		return
	}

	suggestions, err := h.service.Recommendations(c.Request.Context(), id)
	if err != nil {
		h.respondLayoutError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"suggestions": suggestions,
		"count":       len(suggestions),
	})
}

// ApplySuggestion handles POST /api/v1/layouts/:id/recommendations/:suggestionId/apply
func (h *LayoutHandler) ApplySuggestion(c *gin.Context) {
	id, ok := parseLayoutID(c)
	if !ok {
		return
	}

	if err := h.service.ApplySuggestion(c.Request.Context(), id, c.Param("suggestionId")); err != nil {
		h.respondLayoutError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"applied": true})
}
