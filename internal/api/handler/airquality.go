package handler

import (
	"context"
	"net/http"
	"strconv"

	"github.com/ChiiKang/BlueBreathe/internal/airquality"
	"github.com/ChiiKang/BlueBreathe/internal/api/response"
)

// pointLookup fetches an air-quality reading for a coordinate.
type pointLookup interface {
	Reading(ctx context.Context, lat, lon float64) (airquality.Reading, error)
}

// AirQualityHandler handles the point air-quality endpoint.
type AirQualityHandler struct {
	lookup pointLookup
}

// NewAirQualityHandler creates a new AirQualityHandler.
func NewAirQualityHandler(lookup pointLookup) *AirQualityHandler {
	return &AirQualityHandler{lookup: lookup}
}

// GetAirQuality handles GET /api/air-quality - the reading nearest to a point.
func (h *AirQualityHandler) GetAirQuality(w http.ResponseWriter, r *http.Request) {
	latParam := r.URL.Query().Get("lat")
	lonParam := r.URL.Query().Get("lon")

	if latParam == "" || lonParam == "" {
		response.BadRequest(w, r, "missing lat or lon")
		return
	}

	lat, err := strconv.ParseFloat(latParam, 64)
	if err != nil {
		response.BadRequest(w, r, "invalid lat or lon")
		return
	}
	lon, err := strconv.ParseFloat(lonParam, 64)
	if err != nil {
		response.BadRequest(w, r, "invalid lat or lon")
		return
	}

	reading, err := h.lookup.Reading(r.Context(), lat, lon)
	if err != nil {
		response.InternalError(w, r, "air quality lookup failed")
		return
	}

	response.JSON(w, r, http.StatusOK, reading)
}
