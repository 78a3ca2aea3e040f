package scenario

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eshaffer321/room-allocation/internal/domain/allocator"
	"github.com/eshaffer321/room-allocation/internal/domain/editor"
)

func TestLoad(t *testing.T) {
	s, err := Load(filepath.Join("testdata", "family.yaml"))
	require.NoError(t, err)

	assert.Equal(t, allocator.Guest{Adult: 4, Child: 3}, s.Guest())
	assert.Equal(t, []allocator.Room{
		{Name: "Deluxe", RoomPrice: 100, AdultPrice: 50, ChildPrice: 20, Capacity: 4},
		{Name: "Suite", RoomPrice: 150, AdultPrice: 60, ChildPrice: 30, Capacity: 3},
	}, s.Rooms())

	edits := s.Edits()
	require.Len(t, edits, 4)
	assert.Equal(t, Edit{Room: 1, Kind: "adult", Value: 2}, edits[0])
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestParse_DefaultsRoomNames(t *testing.T) {
	s, err := Parse([]byte(`
guest: {adult: 1, child: 0}
rooms:
  - {room_price: 10, adult_price: 5, child_price: 1, capacity: 2}
  - {name: Attic, room_price: 10, adult_price: 5, child_price: 1, capacity: 2}
`))
	require.NoError(t, err)

	rooms := s.Rooms()
	assert.Equal(t, "Room 1", rooms[0].Name)
	assert.Equal(t, "Attic", rooms[1].Name)
	assert.Empty(t, s.Edits())
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name    string
		doc     string
		wantErr error
		wantMsg string
	}{
		{
			name:    "malformed yaml",
			doc:     "guest: [",
			wantMsg: "parse scenario",
		},
		{
			name:    "no rooms",
			doc:     "guest: {adult: 1}",
			wantErr: allocator.ErrInvalidInput,
		},
		{
			name: "negative price",
			doc: `
guest: {adult: 1}
rooms: [{room_price: -1, capacity: 2}]`,
			wantErr: allocator.ErrInvalidInput,
		},
		{
			name: "unknown edit kind",
			doc: `
guest: {adult: 1}
rooms: [{room_price: 1, capacity: 2}]
edits: [{room: 0, kind: pet, value: 1}]`,
			wantErr: editor.ErrUnknownKind,
		},
		{
			name: "edit room out of range",
			doc: `
guest: {adult: 1}
rooms: [{room_price: 1, capacity: 2}]
edits: [{room: 3, kind: adult, value: 1}]`,
			wantErr: editor.ErrRoomIndex,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.doc))
			require.Error(t, err)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			}
			if tt.wantMsg != "" {
				assert.Contains(t, err.Error(), tt.wantMsg)
			}
		})
	}
}

func TestScenario_RoomsIsACopy(t *testing.T) {
	s, err := Load(filepath.Join("testdata", "family.yaml"))
	require.NoError(t, err)

	rooms := s.Rooms()
	rooms[0].Capacity = 99
	assert.Equal(t, 4, s.Rooms()[0].Capacity)
}
