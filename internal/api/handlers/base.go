package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/eshaffer321/room-allocation/internal/api/dto"
	"github.com/eshaffer321/room-allocation/internal/api/middleware"
	"github.com/eshaffer321/room-allocation/internal/application/service"
	"github.com/eshaffer321/room-allocation/internal/domain/allocator"
	"github.com/eshaffer321/room-allocation/internal/domain/editor"
)

// maxBodyBytes caps request bodies.
const maxBodyBytes = 1 << 20

// Base provides shared functionality for all handlers.
type Base struct {
	svc    *service.AllocationService
	logger *slog.Logger
}

// NewBase creates a new base handler backed by svc.
func NewBase(svc *service.AllocationService, logger *slog.Logger) *Base {
	if logger == nil {
		logger = slog.Default()
	}
	return &Base{svc: svc, logger: logger}
}

// WriteJSON writes a JSON response with the given status code.
func (b *Base) WriteJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

// WriteError writes an error response with the given status code.
func (b *Base) WriteError(w http.ResponseWriter, status int, err dto.APIError) {
	b.WriteJSON(w, status, err)
}

// WriteServiceError maps an error returned by the allocation service to a
// status code and error body.
func (b *Base) WriteServiceError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, service.ErrSessionNotFound):
		b.WriteError(w, http.StatusNotFound, dto.NotFoundError("session"))
	case errors.Is(err, allocator.ErrInvalidInput),
		errors.Is(err, editor.ErrMismatchedRooms),
		errors.Is(err, editor.ErrUnknownKind),
		errors.Is(err, editor.ErrRoomIndex):
		b.WriteError(w, http.StatusBadRequest, dto.BadRequestError(err.Error()))
	case errors.Is(err, service.ErrLimitExceeded):
		b.WriteError(w, http.StatusUnprocessableEntity, dto.NewAPIError(dto.ErrCodeLimitExceeded, err.Error()))
	case errors.Is(err, editor.ErrOutOfBounds),
		errors.Is(err, editor.ErrUnaccompaniedChildren),
		errors.Is(err, editor.ErrExceedsGuestTotal):
		b.WriteError(w, http.StatusUnprocessableEntity, dto.ValidationError(err.Error()))
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled):
		b.WriteError(w, http.StatusGatewayTimeout, dto.NewAPIError(dto.ErrCodeTimeout, "request timed out"))
	default:
		b.logger.Error("request failed",
			"request_id", middleware.RequestID(r.Context()),
			"path", r.URL.Path,
			"error", err,
		)
		b.WriteError(w, http.StatusInternalServerError, dto.InternalError())
	}
}

// DecodeJSON reads a JSON request body into v. On failure it writes a 400
// and returns false.
func (b *Base) DecodeJSON(w http.ResponseWriter, r *http.Request, v interface{}) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		b.WriteError(w, http.StatusBadRequest, dto.BadRequestError("invalid request body"))
		return false
	}
	return true
}

// ParseIndexParam parses a non-negative integer URL parameter.
func ParseIndexParam(r *http.Request, name string) (int, error) {
	val := chi.URLParam(r, name)
	parsed, err := strconv.Atoi(val)
	if err != nil || parsed < 0 {
		return 0, fmt.Errorf("invalid %s %q", name, val)
	}
	return parsed, nil
}

// ParseIntParam parses an integer query parameter with a default value.
func ParseIntParam(r *http.Request, name string, defaultVal int) int {
	val := r.URL.Query().Get(name)
	if val == "" {
		return defaultVal
	}
	parsed, err := strconv.Atoi(val)
	if err != nil {
		return defaultVal
	}
	return parsed
}
