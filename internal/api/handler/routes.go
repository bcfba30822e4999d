package handler

import (
	"context"
	"net/http"

	"github.com/ChiiKang/BlueBreathe/internal/api/models"
	"github.com/ChiiKang/BlueBreathe/internal/api/response"
	"github.com/ChiiKang/BlueBreathe/internal/exposure"
	"github.com/ChiiKang/BlueBreathe/internal/geocoding"
	"github.com/ChiiKang/BlueBreathe/internal/routing"
)

// geocoder resolves free-form addresses to coordinates.
type geocoder interface {
	Geocode(ctx context.Context, address string) (geocoding.Result, error)
}

// routePlanner computes driving route alternatives.
type routePlanner interface {
	Routes(ctx context.Context, origin, destination routing.Coordinate) ([]routing.Route, error)
}

// routeRanker scores and orders route alternatives by air quality.
type routeRanker interface {
	Rank(ctx context.Context, routes []routing.Route) []exposure.RankedRoute
}

// RouteHandler handles the route planning endpoint.
type RouteHandler struct {
	geocoder geocoder
	planner  routePlanner
	ranker   routeRanker
}

// NewRouteHandler creates a new RouteHandler.
func NewRouteHandler(g geocoder, p routePlanner, r routeRanker) *RouteHandler {
	return &RouteHandler{
		geocoder: g,
		planner:  p,
		ranker:   r,
	}
}

// GetRoutes handles GET /api/routes - air-quality-ranked driving routes
// between two addresses.
func (h *RouteHandler) GetRoutes(w http.ResponseWriter, r *http.Request) {
	origin := r.URL.Query().Get("origin")
	destination := r.URL.Query().Get("destination")

	if origin == "" || destination == "" {
		response.BadRequest(w, r, "missing origin or destination")
		return
	}

	ctx := r.Context()

	originResult, err := h.geocoder.Geocode(ctx, origin)
	if err != nil {
		response.BadRequest(w, r, "could not geocode locations")
		return
	}
	destinationResult, err := h.geocoder.Geocode(ctx, destination)
	if err != nil {
		response.BadRequest(w, r, "could not geocode locations")
		return
	}

	routes, err := h.planner.Routes(ctx,
		routing.Coordinate{Lat: originResult.Lat, Lon: originResult.Lon},
		routing.Coordinate{Lat: destinationResult.Lat, Lon: destinationResult.Lon},
	)
	if err != nil {
		response.BadRequest(w, r, err.Error())
		return
	}
	if len(routes) == 0 {
		response.NotFound(w, r, "no routes found")
		return
	}

	ranked := h.ranker.Rank(ctx, routes)

	response.JSON(w, r, http.StatusOK, models.RoutesResponse{
		Origin: models.Endpoint{
			Name:   origin,
			Coords: [2]float64{originResult.Lat, originResult.Lon},
		},
		Destination: models.Endpoint{
			Name:   destination,
			Coords: [2]float64{destinationResult.Lat, destinationResult.Lon},
		},
		Routes: ranked,
	})
}
