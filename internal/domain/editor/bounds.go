package editor

import (
	"fmt"
	"strings"

	"github.com/eshaffer321/room-allocation/internal/domain/allocator"
)

// Kind selects which head-count of a room is edited.
type Kind string

const (
	Adult Kind = "adult"
	Child Kind = "child"
)

// ParseKind converts user input into a Kind.
func ParseKind(s string) (Kind, error) {
	switch Kind(strings.ToLower(strings.TrimSpace(s))) {
	case Adult:
		return Adult, nil
	case Child:
		return Child, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownKind, s)
	}
}

// Bounds is the editable range of one room's head-counts.
type Bounds struct {
	MinAdult int `json:"min_adult"`
	MaxAdult int `json:"max_adult"`
	MinChild int `json:"min_child"`
	MaxChild int `json:"max_child"`
}

// Range returns the bounds for kind.
func (b Bounds) Range(kind Kind) (int, int) {
	if kind == Child {
		return b.MinChild, b.MaxChild
	}
	return b.MinAdult, b.MaxAdult
}

// ComputeBounds derives the editable range of room index from the guests
// already placed in the other rooms and the room's own capacity.
//
// The result depends on every sibling, so it must be recomputed after any
// change to allocs.
func ComputeBounds(allocs []allocator.Allocation, index int, guest allocator.Guest) Bounds {
	var otherAdults, otherChildren int
	for i, a := range allocs {
		if i == index {
			continue
		}
		otherAdults += a.Adult
		otherChildren += a.Child
	}

	room := allocs[index]
	b := Bounds{
		MaxAdult: min(guest.Adult-otherAdults, room.Capacity-room.Child),
		MaxChild: min(guest.Child-otherChildren, room.Capacity-room.Adult),
	}
	if room.Child > 0 {
		b.MinAdult = 1
	}

	return b
}
