package handlers

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/eshaffer321/room-allocation/internal/api/dto"
	"github.com/eshaffer321/room-allocation/internal/application/service"
	"github.com/eshaffer321/room-allocation/internal/domain/editor"
	"github.com/eshaffer321/room-allocation/internal/domain/stepper"
)

// SessionsHandler handles editing-session HTTP requests.
type SessionsHandler struct {
	*Base
}

// NewSessionsHandler creates a new sessions handler.
func NewSessionsHandler(svc *service.AllocationService, logger *slog.Logger) *SessionsHandler {
	return &SessionsHandler{
		Base: NewBase(svc, logger),
	}
}

// Create handles POST /api/sessions - searches and opens a session on the result.
func (h *SessionsHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateSessionRequest
	if !h.DecodeJSON(w, r, &req) {
		return
	}

	snap, err := h.svc.CreateSession(r.Context(), req.Guest, req.Rooms)
	if err != nil {
		h.WriteServiceError(w, r, err)
		return
	}

	w.Header().Set("Location", "/api/sessions/"+snap.ID)
	h.WriteJSON(w, http.StatusCreated, dto.NewSessionResponse(snap))
}

// List handles GET /api/sessions - lists open sessions, oldest first.
func (h *SessionsHandler) List(w http.ResponseWriter, r *http.Request) {
	sessions := h.svc.ListSessions()

	// Count stays the number of open sessions even when limit trims the page.
	response := dto.SessionListResponse{Count: len(sessions)}
	if limit := ParseIntParam(r, "limit", 0); limit > 0 && limit < len(sessions) {
		sessions = sessions[:limit]
	}
	response.Sessions = make([]dto.SessionResponse, 0, len(sessions))
	for _, snap := range sessions {
		response.Sessions = append(response.Sessions, dto.NewSessionResponse(snap))
	}

	h.WriteJSON(w, http.StatusOK, response)
}

// Get handles GET /api/sessions/{id}.
func (h *SessionsHandler) Get(w http.ResponseWriter, r *http.Request) {
	snap, err := h.svc.GetSession(chi.URLParam(r, "id"))
	if err != nil {
		h.WriteServiceError(w, r, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, dto.NewSessionResponse(snap))
}

// Delete handles DELETE /api/sessions/{id}.
func (h *SessionsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.DeleteSession(chi.URLParam(r, "id")); err != nil {
		h.WriteServiceError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// UpdateRoom handles PUT /api/sessions/{id}/rooms/{index} - sets one
// head-count. Rejected edits answer 422 and leave the session unchanged.
func (h *SessionsHandler) UpdateRoom(w http.ResponseWriter, r *http.Request) {
	index, ok := h.roomIndex(w, r)
	if !ok {
		return
	}

	var req dto.UpdateOccupancyRequest
	if !h.DecodeJSON(w, r, &req) {
		return
	}
	if req.Value == nil {
		h.WriteError(w, http.StatusBadRequest, dto.BadRequestError("value is required"))
		return
	}

	kind, err := editor.ParseKind(req.Kind)
	if err != nil {
		h.WriteServiceError(w, r, err)
		return
	}

	snap, err := h.svc.UpdateOccupancy(chi.URLParam(r, "id"), index, kind, *req.Value)
	if err != nil {
		h.WriteServiceError(w, r, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, dto.NewSessionResponse(snap))
}

// StepRoom handles POST /api/sessions/{id}/rooms/{index}/step - presses a
// plus or minus button. A step the field or the editor refuses is reported
// with accepted=false, not as an error.
func (h *SessionsHandler) StepRoom(w http.ResponseWriter, r *http.Request) {
	index, ok := h.roomIndex(w, r)
	if !ok {
		return
	}

	var req dto.StepRequest
	if !h.DecodeJSON(w, r, &req) {
		return
	}

	var dir stepper.Direction
	switch req.Direction {
	case "up":
		dir = stepper.Up
	case "down":
		dir = stepper.Down
	default:
		h.WriteError(w, http.StatusBadRequest, dto.BadRequestError(`direction must be "up" or "down"`))
		return
	}

	kind, err := editor.ParseKind(req.Kind)
	if err != nil {
		h.WriteServiceError(w, r, err)
		return
	}

	res, err := h.svc.StepOccupancy(chi.URLParam(r, "id"), index, kind, dir)
	if err != nil {
		h.WriteServiceError(w, r, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, dto.NewStepResponse(res))
}

// InputRoom handles POST /api/sessions/{id}/rooms/{index}/input - types
// free text into a room's field.
func (h *SessionsHandler) InputRoom(w http.ResponseWriter, r *http.Request) {
	index, ok := h.roomIndex(w, r)
	if !ok {
		return
	}

	var req dto.InputRequest
	if !h.DecodeJSON(w, r, &req) {
		return
	}

	kind, err := editor.ParseKind(req.Kind)
	if err != nil {
		h.WriteServiceError(w, r, err)
		return
	}

	res, err := h.svc.InputOccupancy(chi.URLParam(r, "id"), index, kind, req.Text)
	if err != nil {
		h.WriteServiceError(w, r, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, dto.NewStepResponse(res))
}

func (h *SessionsHandler) roomIndex(w http.ResponseWriter, r *http.Request) (int, bool) {
	index, err := ParseIndexParam(r, "index")
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, dto.BadRequestError(err.Error()))
		return 0, false
	}
	return index, true
}
