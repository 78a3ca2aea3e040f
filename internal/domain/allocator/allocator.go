// Package allocator finds the cheapest way to place a party of guests into rooms.
//
// Every room has a flat booking price, a price per adult, a price per child
// and a capacity. The price of one room for a given occupancy is:
//
//	price = room_price + adult_price * adults + child_price * children
//
// A distribution is valid when every guest is placed, no room exceeds its
// capacity and no room holds children without at least one adult. Rooms that
// end up empty are not booked and do not count toward the total.
package allocator

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidInput is returned when guests or rooms cannot describe a real booking.
var ErrInvalidInput = errors.New("invalid input")

// Room is the static definition of a bookable room.
type Room struct {
	Name       string  `json:"name,omitempty" yaml:"name,omitempty"`
	RoomPrice  float64 `json:"room_price" yaml:"room_price"`
	AdultPrice float64 `json:"adult_price" yaml:"adult_price"`
	ChildPrice float64 `json:"child_price" yaml:"child_price"`
	Capacity   int     `json:"capacity" yaml:"capacity"`
}

// Guest holds the head counts that must be placed.
type Guest struct {
	Adult int `json:"adult" yaml:"adult"`
	Child int `json:"child" yaml:"child"`
}

// Total returns the number of people in the party.
func (g Guest) Total() int {
	return g.Adult + g.Child
}

// Allocation is the occupancy of one room. Allocation sets are parallel to
// the room list they were computed from.
type Allocation struct {
	Adult    int     `json:"adult"`
	Child    int     `json:"child"`
	Price    float64 `json:"price"`
	Capacity int     `json:"capacity"`
}

// Occupied reports whether anyone is placed in the room.
func (a Allocation) Occupied() bool {
	return a.Adult+a.Child > 0
}

// Result contains the outcome of a search.
type Result struct {
	Allocations []Allocation `json:"allocations"`
	TotalPrice  float64      `json:"total_price"`
	// Feasible is false when no valid distribution exists. Allocations then
	// holds the empty default for every room.
	Feasible bool `json:"feasible"`
}

// Price returns the cost of a room holding the given occupants.
func Price(room Room, adults, children int) float64 {
	return room.RoomPrice + room.AdultPrice*float64(adults) + room.ChildPrice*float64(children)
}

// IsValid reports whether no room holds children without an adult.
func IsValid(allocs []Allocation) bool {
	for _, a := range allocs {
		if a.Child > 0 && a.Adult == 0 {
			return false
		}
	}
	return true
}

// TotalPrice sums the price of every booked (occupied) room.
func TotalPrice(allocs []Allocation) float64 {
	var total float64
	for _, a := range allocs {
		if a.Occupied() {
			total += a.Price
		}
	}
	return total
}

// Empty returns the unbooked default allocation for each room.
func Empty(rooms []Room) []Allocation {
	allocs := make([]Allocation, len(rooms))
	for i, room := range rooms {
		allocs[i] = Allocation{
			Price:    room.RoomPrice,
			Capacity: room.Capacity,
		}
	}
	return allocs
}

// Validate rejects inputs the search cannot give a meaningful answer for.
func Validate(guest Guest, rooms []Room) error {
	if len(rooms) == 0 {
		return fmt.Errorf("%w: no rooms", ErrInvalidInput)
	}
	if guest.Adult < 0 {
		return fmt.Errorf("%w: adult count cannot be negative", ErrInvalidInput)
	}
	if guest.Child < 0 {
		return fmt.Errorf("%w: child count cannot be negative", ErrInvalidInput)
	}

	for i, room := range rooms {
		if room.Capacity < 0 {
			return fmt.Errorf("%w: room %d capacity cannot be negative", ErrInvalidInput, i)
		}
		prices := []struct {
			name  string
			value float64
		}{
			{"room_price", room.RoomPrice},
			{"adult_price", room.AdultPrice},
			{"child_price", room.ChildPrice},
		}
		for _, p := range prices {
			if math.IsNaN(p.value) || math.IsInf(p.value, 0) {
				return fmt.Errorf("%w: room %d %s is not a number", ErrInvalidInput, i, p.name)
			}
			if p.value < 0 {
				return fmt.Errorf("%w: room %d %s cannot be negative", ErrInvalidInput, i, p.name)
			}
		}
	}

	return nil
}
