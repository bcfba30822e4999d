package waqi

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ChiiKang/BlueBreathe/internal/airquality"
)

const feedFixture = `{
	"status": "ok",
	"data": {
		"aqi": 87,
		"city": {"name": "Batu Muda, Kuala Lumpur"},
		"iaqi": {
			"pm25": {"v": 87},
			"pm10": {"v": 45},
			"o3": {"v": 12.4},
			"no2": {"v": 8.1},
			"t": {"v": 31.5},
			"h": {"v": 74}
		}
	}
}`

func TestClient_Reading_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/feed/geo:3.212400;101.680900/", r.URL.Path)
		assert.Equal(t, "test-token", r.URL.Query().Get("token"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(feedFixture))
	}))
	defer server.Close()

	client := NewClient(ClientConfig{
		Token:      "test-token",
		BaseURL:    server.URL,
		HTTPClient: server.Client(),
	})

	reading, err := client.Reading(context.Background(), 3.2124, 101.6809)
	require.NoError(t, err)

	assert.Equal(t, 87.0, reading.AQI)
	assert.Equal(t, "Batu Muda, Kuala Lumpur", reading.Station)

	// Only tracked pollutant codes survive; temperature and humidity
	// readings in iaqi are dropped.
	assert.Equal(t, map[string]float64{
		"pm25": 87,
		"pm10": 45,
		"o3":   12.4,
		"no2":  8.1,
	}, reading.Pollutants)
}

func TestClient_Reading_DashAQIDefaultsToNeutral(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"status": "ok", "data": {"aqi": "-", "city": {"name": "Quiet Station"}, "iaqi": {"pm10": {"v": 18}}}}`))
	}))
	defer server.Close()

	client := NewClient(ClientConfig{
		Token:      "test-token",
		BaseURL:    server.URL,
		HTTPClient: server.Client(),
	})

	// A station without a computed index still surfaces its name and
	// pollutants; only the overall AQI falls back to neutral.
	reading, err := client.Reading(context.Background(), 3.2124, 101.6809)
	require.NoError(t, err)
	assert.Equal(t, 50.0, reading.AQI)
	assert.Equal(t, "Quiet Station", reading.Station)
	assert.Equal(t, map[string]float64{"pm10": 18}, reading.Pollutants)
}

func TestClient_Reading_MissingAQIDefaultsToNeutral(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"status": "ok", "data": {"city": {"name": "Quiet Station"}}}`))
	}))
	defer server.Close()

	client := NewClient(ClientConfig{
		Token:      "test-token",
		BaseURL:    server.URL,
		HTTPClient: server.Client(),
	})

	reading, err := client.Reading(context.Background(), 3.2124, 101.6809)
	require.NoError(t, err)
	assert.Equal(t, 50.0, reading.AQI)
	assert.Equal(t, "Quiet Station", reading.Station)
}

func TestClient_Reading_ErrorStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"status": "error", "data": null}`))
	}))
	defer server.Close()

	client := NewClient(ClientConfig{
		Token:      "test-token",
		BaseURL:    server.URL,
		HTTPClient: server.Client(),
	})

	_, err := client.Reading(context.Background(), 3.2124, 101.6809)
	assert.ErrorIs(t, err, airquality.ErrNoData)
}

func TestClient_Reading_MissingStationNameDefaults(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"status": "ok", "data": {"aqi": 55, "iaqi": {}}}`))
	}))
	defer server.Close()

	client := NewClient(ClientConfig{
		Token:      "test-token",
		BaseURL:    server.URL,
		HTTPClient: server.Client(),
	})

	reading, err := client.Reading(context.Background(), 3.2124, 101.6809)
	require.NoError(t, err)
	assert.Equal(t, airquality.StationUnknown, reading.Station)
}

func TestClient_Reading_TransportError(t *testing.T) {
	client := NewClient(ClientConfig{
		Token:      "test-token",
		BaseURL:    "http://127.0.0.1:1",
		HTTPClient: &failingDoer{},
	})

	_, err := client.Reading(context.Background(), 3.2124, 101.6809)
	require.Error(t, err)
	assert.NotErrorIs(t, err, airquality.ErrNoData)
}

type failingDoer struct{}

func (d *failingDoer) Do(_ *http.Request) (*http.Response, error) {
	return nil, errors.New("connection refused")
}
