// Package scenario reads party and room definitions from YAML files.
//
// Example file:
//
//	guest:
//	  adult: 4
//	  child: 3
//	rooms:
//	  - name: Deluxe
//	    room_price: 100
//	    adult_price: 50
//	    child_price: 20
//	    capacity: 4
//	edits:
//	  - room: 0
//	    kind: adult
//	    value: 2
package scenario

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/eshaffer321/room-allocation/internal/domain/allocator"
	"github.com/eshaffer321/room-allocation/internal/domain/editor"
)

// Scenario is a party, the rooms on offer and an optional list of edits to
// replay on top of the cheapest allocation.
type Scenario struct {
	Party     allocator.Guest  `yaml:"guest"`
	RoomList  []allocator.Room `yaml:"rooms"`
	EditSteps []Edit           `yaml:"edits"`
}

// Edit is one manual change to a room's head-count.
type Edit struct {
	Room  int    `yaml:"room"`
	Kind  string `yaml:"kind"`
	Value int    `yaml:"value"`
}

// Load reads a scenario from path.
func Load(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read scenario: %w", err)
	}

	s, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}

// Parse decodes and validates a scenario document.
func Parse(data []byte) (*Scenario, error) {
	var s Scenario
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parse scenario: %w", err)
	}

	if err := allocator.Validate(s.Party, s.RoomList); err != nil {
		return nil, err
	}
	for i, e := range s.EditSteps {
		if _, err := editor.ParseKind(e.Kind); err != nil {
			return nil, fmt.Errorf("edit %d: %w", i, err)
		}
		if e.Room < 0 || e.Room >= len(s.RoomList) {
			return nil, fmt.Errorf("edit %d: %w: %d", i, editor.ErrRoomIndex, e.Room)
		}
	}

	for i := range s.RoomList {
		if s.RoomList[i].Name == "" {
			s.RoomList[i].Name = fmt.Sprintf("Room %d", i+1)
		}
	}

	return &s, nil
}

// Guest returns the party.
func (s *Scenario) Guest() allocator.Guest {
	return s.Party
}

// Rooms returns a copy of the rooms.
func (s *Scenario) Rooms() []allocator.Room {
	return append([]allocator.Room(nil), s.RoomList...)
}

// Edits returns the edits in file order.
func (s *Scenario) Edits() []Edit {
	return append([]Edit(nil), s.EditSteps...)
}
