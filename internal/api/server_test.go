package api_test

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eshaffer321/room-allocation/internal/api"
	"github.com/eshaffer321/room-allocation/internal/api/dto"
	"github.com/eshaffer321/room-allocation/internal/api/middleware"
	"github.com/eshaffer321/room-allocation/internal/application/service"
	"github.com/eshaffer321/room-allocation/internal/infrastructure/config"
)

func newTestServer(t *testing.T, cfg api.Config) (*api.Server, *service.AllocationService) {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
	svc := service.NewAllocationService(nil, logger)
	t.Cleanup(svc.Stop)
	return api.NewServer(cfg, svc, logger), svc
}

const sampleBody = `{
	"guest": {"adult": 4, "child": 3},
	"rooms": [
		{"name": "Deluxe", "room_price": 100, "adult_price": 50, "child_price": 20, "capacity": 4},
		{"name": "Suite", "room_price": 150, "adult_price": 60, "child_price": 30, "capacity": 3}
	]
}`

func TestServer_HealthEndpoint(t *testing.T) {
	server, _ := newTestServer(t, api.DefaultConfig())

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()

	server.Router().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.NotEmpty(t, rec.Header().Get(middleware.RequestIDHeader))

	var response dto.HealthResponse
	err := json.NewDecoder(rec.Body).Decode(&response)
	require.NoError(t, err)
	assert.Equal(t, "ok", response.Status)
}

func TestServer_SearchEndpoint(t *testing.T) {
	server, _ := newTestServer(t, api.DefaultConfig())

	req := httptest.NewRequest(http.MethodPost, "/api/allocations/search", bytes.NewBufferString(sampleBody))
	rec := httptest.NewRecorder()

	server.Router().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var response dto.SearchResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&response))
	assert.True(t, response.Feasible)
	assert.Equal(t, 540.0, response.TotalPrice)
}

func TestServer_UnknownRoute(t *testing.T) {
	server, _ := newTestServer(t, api.DefaultConfig())

	req := httptest.NewRequest(http.MethodGet, "/api/orders", nil)
	rec := httptest.NewRecorder()

	server.Router().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestServer_CORS(t *testing.T) {
	server, _ := newTestServer(t, api.DefaultConfig())

	t.Run("sets CORS headers for allowed origin", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/health", nil)
		req.Header.Set("Origin", "http://localhost:3000")
		rec := httptest.NewRecorder()

		server.Router().ServeHTTP(rec, req)

		assert.Equal(t, "http://localhost:3000", rec.Header().Get("Access-Control-Allow-Origin"))
		assert.Equal(t, middleware.RequestIDHeader, rec.Header().Get("Access-Control-Expose-Headers"))
	})

	t.Run("handles OPTIONS preflight", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodOptions, "/api/sessions", nil)
		req.Header.Set("Origin", "http://localhost:3000")
		rec := httptest.NewRecorder()

		server.Router().ServeHTTP(rec, req)

		assert.Equal(t, http.StatusNoContent, rec.Code)
	})
}

func TestServer_RateLimit(t *testing.T) {
	cfg := api.DefaultConfig()
	cfg.RateLimit = middleware.RateLimitConfig{RequestsPerMinute: 1, Burst: 1}
	server, _ := newTestServer(t, cfg)

	get := func() int {
		req := httptest.NewRequest(http.MethodGet, "/health", nil)
		req.RemoteAddr = "203.0.113.9:4000"
		rec := httptest.NewRecorder()
		server.Router().ServeHTTP(rec, req)
		return rec.Code
	}

	assert.Equal(t, http.StatusOK, get())
	assert.Equal(t, http.StatusTooManyRequests, get())
}

func TestConfigFrom(t *testing.T) {
	cfg := config.Defaults()
	cfg.Server.Port = 9090
	cfg.Server.AllowedOrigins = []string{"https://rooms.example.com"}

	out := api.ConfigFrom(cfg)

	assert.Equal(t, 9090, out.Port)
	assert.Equal(t, []string{"https://rooms.example.com"}, out.AllowedOrigins)
	assert.Equal(t, config.DefaultRateLimitPerMinute, out.RateLimit.RequestsPerMinute)
	assert.Equal(t, config.DefaultRateLimitBurst, out.RateLimit.Burst)
}

func TestConfigFrom_KeepsDefaultOrigins(t *testing.T) {
	cfg := config.Defaults()
	cfg.Server.AllowedOrigins = nil

	out := api.ConfigFrom(cfg)

	assert.Equal(t, api.DefaultConfig().AllowedOrigins, out.AllowedOrigins)
}
