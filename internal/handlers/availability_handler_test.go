package handlers

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/seatlabs/library-layout-backend/internal/middleware"
	"github.com/seatlabs/library-layout-backend/internal/models"
	"github.com/seatlabs/library-layout-backend/internal/services"
	"github.com/seatlabs/library-layout-backend/internal/utils"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupAvailabilityRouter(t *testing.T) (*gin.Engine, *services.LayoutService, string) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	logger := logrus.New()
	logger.SetOutput(io.Discard)

	svc := newLayoutServiceForHandlerTest()
	handler := NewAvailabilityHandler(svc, logger)

	const apiKey = "booking-service-key"
	hash, err := utils.HashAPIKey(apiKey, 4)
	require.NoError(t, err)

	router := gin.New()
	router.POST("/internal/v1/availability", middleware.InternalAPIKey(hash), handler.UpdateSeatStatus)
	return router, svc, apiKey
}

func TestUpdateSeatStatusEndpoint(t *testing.T) {
	router, svc, apiKey := setupAvailabilityRouter(t)

	layout, err := svc.Generate(&models.GenerateLayoutRequest{
		Name:   "Availability Test",
		Config: models.LayoutConfig{Rows: 2, Cols: 2},
	}, uuid.New())
	require.NoError(t, err)

	push := func(t *testing.T, body interface{}, key string) *httptest.ResponseRecorder {
		t.Helper()
		data, err := json.Marshal(body)
		require.NoError(t, err)
		req := httptest.NewRequest(http.MethodPost, "/internal/v1/availability", bytes.NewReader(data))
		req.Header.Set("Content-Type", "application/json")
		if key != "" {
			req.Header.Set("X-API-Key", key)
		}
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		return w
	}

	t.Run("Applies Push", func(t *testing.T) {
		w := push(t, UpdateSeatStatusRequest{
			LayoutID:  layout.ID,
			SeatID:    "0-0",
			Status:    models.SeatOccupied,
			BookingID: "bk-42",
		}, apiKey)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		seat := layout.SeatByID("0-0")
		assert.Equal(t, models.SeatOccupied, seat.Status)
	})

	t.Run("Requires API Key", func(t *testing.T) {
		w := push(t, UpdateSeatStatusRequest{
			LayoutID: layout.ID,
			SeatID:   "0-0",
			Status:   models.SeatAvailable,
		}, "")
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("Unknown Layout", func(t *testing.T) {
		w := push(t, UpdateSeatStatusRequest{
			LayoutID: uuid.New(),
			SeatID:   "0-0",
			Status:   models.SeatOccupied,
		}, apiKey)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("Invalid Status", func(t *testing.T) {
		w := push(t, UpdateSeatStatusRequest{
			LayoutID: layout.ID,
			SeatID:   "0-0",
			Status:   "hovering",
		}, apiKey)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("Missing Fields", func(t *testing.T) {
		w := push(t, gin.H{"seat_id": "0-0"}, apiKey)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}
