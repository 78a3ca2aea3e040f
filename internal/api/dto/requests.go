package dto

import "github.com/eshaffer321/room-allocation/internal/domain/allocator"

// SearchRequest asks for the cheapest allocation of a party.
type SearchRequest struct {
	Guest allocator.Guest  `json:"guest"`
	Rooms []allocator.Room `json:"rooms"`
}

// CreateSessionRequest opens an editing session. It carries the same fields
// as a search.
type CreateSessionRequest = SearchRequest

// UpdateOccupancyRequest sets one head-count of a room.
type UpdateOccupancyRequest struct {
	Kind  string `json:"kind"`
	Value *int   `json:"value"`
}

// StepRequest presses a room's plus or minus button.
type StepRequest struct {
	Kind      string `json:"kind"`
	Direction string `json:"direction"` // "up" or "down"
}

// InputRequest types free text into a room's field.
type InputRequest struct {
	Kind string `json:"kind"`
	Text string `json:"text"`
}
