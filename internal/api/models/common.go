// Package models defines the API request and response shapes.
package models

// Welcome is the root endpoint payload.
type Welcome struct {
	Message string `json:"message"`
	Status  string `json:"status"`
}

// Health is the health endpoint payload.
type Health struct {
	Status    string                    `json:"status"`
	Providers map[string]ProviderHealth `json:"providers,omitempty"`
}

// ProviderHealth summarizes an upstream provider's recent behavior.
type ProviderHealth struct {
	Healthy   bool   `json:"healthy"`
	State     string `json:"state"`
	LastError string `json:"lastError,omitempty"`
}

// HealthStatusOK is the status reported when the service is up.
const HealthStatusOK = "ok"
