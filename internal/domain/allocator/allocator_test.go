package allocator

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPrice(t *testing.T) {
	room := Room{RoomPrice: 100, AdultPrice: 50, ChildPrice: 20, Capacity: 4}

	tests := []struct {
		name     string
		adults   int
		children int
		want     float64
	}{
		{"empty room", 0, 0, 100},
		{"one adult", 1, 0, 150},
		{"family", 2, 2, 240},
		{"full of adults", 4, 0, 300},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Price(room, tt.adults, tt.children))
		})
	}
}

func TestIsValid(t *testing.T) {
	assert.True(t, IsValid(nil))
	assert.True(t, IsValid([]Allocation{{Adult: 1, Child: 2}, {}}))
	assert.True(t, IsValid([]Allocation{{Adult: 2}}))
	assert.False(t, IsValid([]Allocation{{Adult: 1, Child: 1}, {Child: 1}}))
}

func TestTotalPrice_SkipsEmptyRooms(t *testing.T) {
	allocs := []Allocation{
		{Adult: 1, Child: 1, Price: 170},
		{Price: 150},
		{Adult: 2, Price: 270},
	}

	assert.Equal(t, 440.0, TotalPrice(allocs))
	assert.Equal(t, 0.0, TotalPrice(nil))
}

func TestEmpty(t *testing.T) {
	allocs := Empty(sampleRooms())

	assert.Equal(t, []Allocation{
		{Price: 100, Capacity: 4},
		{Price: 150, Capacity: 3},
	}, allocs)
}

func TestValidate(t *testing.T) {
	valid := sampleRooms()

	tests := []struct {
		name    string
		guest   Guest
		rooms   []Room
		wantErr string
	}{
		{"valid input", Guest{Adult: 2, Child: 1}, valid, ""},
		{"zero guests", Guest{}, valid, ""},
		{"no rooms", Guest{Adult: 1}, nil, "no rooms"},
		{"negative adults", Guest{Adult: -1}, valid, "adult count"},
		{"negative children", Guest{Child: -2}, valid, "child count"},
		{"negative capacity", Guest{Adult: 1}, []Room{{Capacity: -1}}, "room 0 capacity"},
		{"negative room price", Guest{Adult: 1}, []Room{{RoomPrice: -5, Capacity: 2}}, "room_price cannot be negative"},
		{"negative adult price", Guest{Adult: 1}, []Room{{AdultPrice: -1, Capacity: 2}}, "adult_price"},
		{"negative child price", Guest{Adult: 1}, []Room{{ChildPrice: -1, Capacity: 2}}, "child_price"},
		{"nan price", Guest{Adult: 1}, []Room{{RoomPrice: math.NaN(), Capacity: 2}}, "not a number"},
		{"infinite price", Guest{Adult: 1}, []Room{{AdultPrice: math.Inf(1), Capacity: 2}}, "not a number"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(tt.guest, tt.rooms)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, ErrInvalidInput)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestGuest_Total(t *testing.T) {
	assert.Equal(t, 7, Guest{Adult: 4, Child: 3}.Total())
}
