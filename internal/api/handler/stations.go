package handler

import (
	"context"
	"net/http"
	"net/url"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/ChiiKang/BlueBreathe/internal/api/response"
	"github.com/ChiiKang/BlueBreathe/internal/stations"
)

// stationStore serves station listings and per-station windows.
type stationStore interface {
	Stations(ctx context.Context) ([]string, error)
	StationData(ctx context.Context, station string) (stations.StationData, error)
}

// StationHandler handles the station data endpoints.
type StationHandler struct {
	store stationStore
}

// NewStationHandler creates a new StationHandler.
func NewStationHandler(store stationStore) *StationHandler {
	return &StationHandler{store: store}
}

// ListStations handles GET /stations - all station names with records.
func (h *StationHandler) ListStations(w http.ResponseWriter, r *http.Request) {
	names, err := h.store.Stations(r.Context())
	if err != nil {
		response.InternalError(w, r, "could not list stations")
		return
	}

	response.JSON(w, r, http.StatusOK, names)
}

// GetStationData handles GET /data/{station} - a station's recent history
// and forecast.
func (h *StationHandler) GetStationData(w http.ResponseWriter, r *http.Request) {
	station := chi.URLParam(r, "station")
	if unescaped, err := url.PathUnescape(station); err == nil {
		station = unescaped
	}
	station = strings.TrimSpace(station)

	data, err := h.store.StationData(r.Context(), station)
	if err != nil {
		response.InternalError(w, r, "could not load station data")
		return
	}

	response.JSON(w, r, http.StatusOK, data)
}
