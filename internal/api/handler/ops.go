// Package handler provides HTTP handlers for the BlueBreathe API.
package handler

import (
	"net/http"

	"github.com/ChiiKang/BlueBreathe/internal/api/models"
	"github.com/ChiiKang/BlueBreathe/internal/api/response"
	"github.com/ChiiKang/BlueBreathe/internal/provider/resilience"
)

// OpsHandler handles operational endpoints.
type OpsHandler struct {
	registry *resilience.Registry
}

// NewOpsHandler creates a new OpsHandler.
func NewOpsHandler(registry *resilience.Registry) *OpsHandler {
	return &OpsHandler{registry: registry}
}

// Home handles GET / - the API welcome message.
func (h *OpsHandler) Home(w http.ResponseWriter, r *http.Request) {
	response.JSON(w, r, http.StatusOK, models.Welcome{
		Message: "Welcome to BlueBreathe API",
		Status:  "running",
	})
}

// HealthCheck handles GET /health - liveness plus provider circuit state.
func (h *OpsHandler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	health := models.Health{Status: models.HealthStatusOK}

	if h.registry != nil {
		health.Providers = make(map[string]models.ProviderHealth)
		for _, p := range h.registry.GetAllHealth() {
			health.Providers[p.Name] = models.ProviderHealth{
				Healthy:   p.IsHealthy(),
				State:     p.CircuitState.String(),
				LastError: p.LastError,
			}
		}
	}

	response.JSON(w, r, http.StatusOK, health)
}
