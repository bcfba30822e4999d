package models

import "github.com/ChiiKang/BlueBreathe/internal/exposure"

// Endpoint is a named trip endpoint with its resolved coordinate.
// Coords is [lat, lon].
type Endpoint struct {
	Name   string     `json:"name"`
	Coords [2]float64 `json:"coords"`
}

// RoutesResponse is the payload for the route planning endpoint.
type RoutesResponse struct {
	Origin      Endpoint               `json:"origin"`
	Destination Endpoint               `json:"destination"`
	Routes      []exposure.RankedRoute `json:"routes"`
}
