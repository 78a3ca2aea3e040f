package dto

import (
	"time"

	"github.com/eshaffer321/room-allocation/internal/application/service"
	"github.com/eshaffer321/room-allocation/internal/domain/allocator"
)

// HealthResponse is returned by the health check endpoint.
type HealthResponse struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
	Sessions  int    `json:"sessions"`
}

// NewHealthResponse creates a health response with current timestamp.
func NewHealthResponse(sessions int) HealthResponse {
	return HealthResponse{
		Status:    "ok",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Sessions:  sessions,
	}
}

// SearchResponse is the cheapest allocation found for a party.
type SearchResponse struct {
	Allocations []allocator.Allocation `json:"allocations"`
	TotalPrice  float64                `json:"total_price"`
	Feasible    bool                   `json:"feasible"`
}

// NewSearchResponse converts a search result.
func NewSearchResponse(r *allocator.Result) SearchResponse {
	return SearchResponse{
		Allocations: r.Allocations,
		TotalPrice:  r.TotalPrice,
		Feasible:    r.Feasible,
	}
}

// RoomResponse is one room of a session together with its editable range.
type RoomResponse struct {
	Index     int     `json:"index"`
	Name      string  `json:"name,omitempty"`
	Capacity  int     `json:"capacity"`
	Adult     int     `json:"adult"`
	Child     int     `json:"child"`
	Price     float64 `json:"price"`
	Booked    bool    `json:"booked"`
	MinAdult  int     `json:"min_adult"`
	MaxAdult  int     `json:"max_adult"`
	MinChild  int     `json:"min_child"`
	MaxChild  int     `json:"max_child"`
	Occupants int     `json:"occupants"`
}

// SessionResponse represents an editing session in API responses.
type SessionResponse struct {
	ID         string          `json:"id"`
	Guest      allocator.Guest `json:"guest"`
	Rooms      []RoomResponse  `json:"rooms"`
	Unassigned allocator.Guest `json:"unassigned"`
	Complete   bool            `json:"complete"`
	Feasible   bool            `json:"feasible"`
	TotalPrice float64         `json:"total_price"`
	Revision   int64           `json:"revision"`
	CreatedAt  string          `json:"created_at"`
	UpdatedAt  string          `json:"updated_at"`
}

// NewSessionResponse converts a session snapshot.
func NewSessionResponse(s *service.SessionSnapshot) SessionResponse {
	rooms := make([]RoomResponse, len(s.Allocations))
	for i, a := range s.Allocations {
		b := s.Bounds[i]
		rooms[i] = RoomResponse{
			Index:     i,
			Name:      s.Rooms[i].Name,
			Capacity:  a.Capacity,
			Adult:     a.Adult,
			Child:     a.Child,
			Price:     a.Price,
			Booked:    a.Occupied(),
			MinAdult:  b.MinAdult,
			MaxAdult:  b.MaxAdult,
			MinChild:  b.MinChild,
			MaxChild:  b.MaxChild,
			Occupants: a.Adult + a.Child,
		}
	}

	return SessionResponse{
		ID:         s.ID,
		Guest:      s.Guest,
		Rooms:      rooms,
		Unassigned: s.Unassigned,
		Complete:   s.Complete,
		Feasible:   s.Feasible,
		TotalPrice: s.TotalPrice,
		Revision:   s.Revision,
		CreatedAt:  s.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt:  s.UpdatedAt.UTC().Format(time.RFC3339),
	}
}

// SessionListResponse is returned when listing sessions.
type SessionListResponse struct {
	Sessions []SessionResponse `json:"sessions"`
	Count    int               `json:"count"`
}

// StepResponse reports whether a stepper edit was applied.
type StepResponse struct {
	Accepted bool            `json:"accepted"`
	Reason   string          `json:"reason,omitempty"`
	Session  SessionResponse `json:"session"`
}

// NewStepResponse converts a step result.
func NewStepResponse(r *service.StepResult) StepResponse {
	resp := StepResponse{
		Accepted: r.Accepted,
		Session:  NewSessionResponse(r.Session),
	}
	if r.Reason != nil {
		resp.Reason = r.Reason.Error()
	}
	return resp
}
