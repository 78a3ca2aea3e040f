package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/eshaffer321/room-allocation/internal/api/dto"
)

// SessionCounter reports the number of open sessions.
type SessionCounter interface {
	SessionCount() int
}

// HealthHandler handles health check requests.
type HealthHandler struct {
	sessions SessionCounter
}

// NewHealthHandler creates a new health handler. sessions may be nil.
func NewHealthHandler(sessions SessionCounter) *HealthHandler {
	return &HealthHandler{sessions: sessions}
}

// ServeHTTP handles the health check request.
func (h *HealthHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)

	count := 0
	if h.sessions != nil {
		count = h.sessions.SessionCount()
	}

	response := dto.NewHealthResponse(count)
	_ = json.NewEncoder(w).Encode(response)
}
