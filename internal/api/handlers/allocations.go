package handlers

import (
	"log/slog"
	"net/http"

	"github.com/eshaffer321/room-allocation/internal/api/dto"
	"github.com/eshaffer321/room-allocation/internal/application/service"
)

// AllocationsHandler serves one-shot allocation searches.
type AllocationsHandler struct {
	*Base
}

// NewAllocationsHandler creates a new allocations handler.
func NewAllocationsHandler(svc *service.AllocationService, logger *slog.Logger) *AllocationsHandler {
	return &AllocationsHandler{
		Base: NewBase(svc, logger),
	}
}

// Search handles POST /api/allocations/search - returns the cheapest
// allocation. An infeasible party is a successful response with
// feasible=false.
func (h *AllocationsHandler) Search(w http.ResponseWriter, r *http.Request) {
	var req dto.SearchRequest
	if !h.DecodeJSON(w, r, &req) {
		return
	}

	result, err := h.svc.Search(r.Context(), req.Guest, req.Rooms)
	if err != nil {
		h.WriteServiceError(w, r, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, dto.NewSearchResponse(result))
}
