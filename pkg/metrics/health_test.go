package metrics

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func resetHealth(t *testing.T) {
	t.Helper()
	healthChecker = newHealthChecker()
}

func TestGetHealth_AllHealthy(t *testing.T) {
	resetHealth(t)
	SetVersion("1.0.0")

	UpdateComponent(ComponentConnectivity, true, "")
	UpdateComponent(ComponentFreshness, true, "")

	health := GetHealth()

	assert.Equal(t, "healthy", health.Status)
	assert.Len(t, health.Components, 2)
	assert.Equal(t, "1.0.0", health.Version)
	assert.Nil(t, health.LastCycle)
}

func TestGetHealth_OneUnhealthy(t *testing.T) {
	resetHealth(t)

	UpdateComponent(ComponentConnectivity, true, "")
	UpdateComponent(ComponentFreshness, false, "no wind data for the last 15min in the archive")

	health := GetHealth()

	assert.Equal(t, "unhealthy", health.Status)
	assert.Equal(t, "unhealthy: no wind data for the last 15min in the archive", health.Components[ComponentFreshness])
}

func TestGetHealth_Recovers(t *testing.T) {
	resetHealth(t)

	UpdateComponent(ComponentConnectivity, false, "all ping attempts have failed")
	UpdateComponent(ComponentConnectivity, true, "")

	assert.Equal(t, "healthy", GetHealth().Status)
}

func TestGetReadiness(t *testing.T) {
	resetHealth(t)

	readiness := GetReadiness()
	assert.Equal(t, "not_ready", readiness.Status)
	assert.NotEmpty(t, readiness.Message)

	UpdateComponent(ComponentConnectivity, false, "all ping attempts have failed")
	assert.Equal(t, "not_ready", GetReadiness().Status)

	// A failing check still counts as ready: the monitor is doing its job
	UpdateComponent(ComponentFreshness, false, "no records")
	assert.Equal(t, "ready", GetReadiness().Status)
}

func TestMarkCycle(t *testing.T) {
	resetHealth(t)
	at := time.Date(2024, 8, 24, 12, 0, 0, 0, time.UTC)

	MarkCycle(at)

	health := GetHealth()
	require.NotNil(t, health.LastCycle)
	assert.True(t, at.Equal(*health.LastCycle))
}

func TestHealthHandler(t *testing.T) {
	tests := []struct {
		name    string
		healthy bool
		code    int
		status  string
	}{
		{"healthy", true, http.StatusOK, "healthy"},
		{"unhealthy", false, http.StatusServiceUnavailable, "unhealthy"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resetHealth(t)
			SetVersion("test")
			UpdateComponent(ComponentFreshness, tt.healthy, "broken")

			w := httptest.NewRecorder()
			HealthHandler()(w, httptest.NewRequest("GET", "/health", nil))

			assert.Equal(t, tt.code, w.Code)
			assert.Equal(t, "application/json", w.Header().Get("Content-Type"))

			var health HealthStatus
			require.NoError(t, json.NewDecoder(w.Body).Decode(&health))
			assert.Equal(t, tt.status, health.Status)
			assert.Equal(t, "test", health.Version)
		})
	}
}

func TestServeMux(t *testing.T) {
	resetHealth(t)
	mux := NewServeMux()

	tests := []struct {
		path string
		code int
	}{
		{"/metrics", http.StatusOK},
		{"/health", http.StatusOK},
		{"/ready", http.StatusServiceUnavailable},
		{"/live", http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			w := httptest.NewRecorder()
			mux.ServeHTTP(w, httptest.NewRequest("GET", tt.path, nil))
			assert.Equal(t, tt.code, w.Code)
		})
	}
}
