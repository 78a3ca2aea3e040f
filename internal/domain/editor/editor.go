// Package editor lets a host adjust a computed room allocation one field at a
// time while keeping every room within its capacity, every child with an
// adult, and the placed head-count within the guest totals.
package editor

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"

	"github.com/eshaffer321/room-allocation/internal/domain/allocator"
)

var (
	ErrRoomIndex             = errors.New("room index out of range")
	ErrOutOfBounds           = errors.New("value outside editable range")
	ErrUnaccompaniedChildren = errors.New("children must share a room with an adult")
	ErrExceedsGuestTotal     = errors.New("more guests placed than in the party")
	ErrMismatchedRooms       = errors.New("allocations do not match rooms")
	ErrUnknownKind           = errors.New("unknown occupant kind")
)

// ChangeFunc receives a copy of the full allocation set after a change.
type ChangeFunc func([]allocator.Allocation)

// Option configures an Editor.
type Option func(*Editor)

// WithOnChange registers the host callback fired after every accepted edit.
func WithOnChange(fn ChangeFunc) Option {
	return func(e *Editor) {
		e.onChange = fn
	}
}

// WithLogger sets the logger used for edit tracing.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Editor) {
		if logger != nil {
			e.logger = logger
		}
	}
}

type subscriber struct {
	id int
	fn ChangeFunc
}

// Editor holds the live allocation for one party. It is safe for concurrent
// use; callbacks run outside the lock and may read from the editor.
type Editor struct {
	mu     sync.Mutex
	guest  allocator.Guest
	rooms  []allocator.Room
	allocs []allocator.Allocation

	onChange    ChangeFunc
	subscribers []subscriber
	nextID      int

	logger *slog.Logger
}

// New creates an editor over allocs, which must hold one entry per room. A
// nil allocs starts every room empty.
func New(guest allocator.Guest, rooms []allocator.Room, allocs []allocator.Allocation, opts ...Option) (*Editor, error) {
	if err := allocator.Validate(guest, rooms); err != nil {
		return nil, err
	}
	if allocs == nil {
		allocs = allocator.Empty(rooms)
	}
	if len(allocs) != len(rooms) {
		return nil, fmt.Errorf("%w: %d allocations for %d rooms", ErrMismatchedRooms, len(allocs), len(rooms))
	}

	e := &Editor{
		guest:  guest,
		rooms:  append([]allocator.Room(nil), rooms...),
		allocs: append([]allocator.Allocation(nil), allocs...),
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(e)
	}

	return e, nil
}

// SetOccupancy sets the adult or child count of room index and returns the
// updated allocation set.
//
// The value must lie within the room's live bounds. Edits that would leave
// children alone or place more guests than the party holds are rejected and
// leave the allocation unchanged. Setting the current value is a no-op and
// notifies nobody.
func (e *Editor) SetOccupancy(index int, kind Kind, value int) ([]allocator.Allocation, error) {
	e.mu.Lock()

	if index < 0 || index >= len(e.allocs) {
		e.mu.Unlock()
		return nil, fmt.Errorf("%w: %d (have %d rooms)", ErrRoomIndex, index, len(e.allocs))
	}
	if kind != Adult && kind != Child {
		e.mu.Unlock()
		return nil, fmt.Errorf("%w: %q", ErrUnknownKind, kind)
	}

	current := e.allocs[index]
	if count(current, kind) == value {
		out := e.snapshotLocked()
		e.mu.Unlock()
		return out, nil
	}

	if err := e.checkLocked(index, kind, value); err != nil {
		e.mu.Unlock()
		e.logger.Debug("edit rejected",
			"room", index,
			"kind", kind,
			"value", value,
			"error", err)
		return nil, err
	}

	next := current
	if kind == Adult {
		next.Adult = value
	} else {
		next.Child = value
	}
	next.Price = allocator.Price(e.rooms[index], next.Adult, next.Child)
	e.allocs[index] = next

	out := e.snapshotLocked()
	listeners := e.listenersLocked()
	e.mu.Unlock()

	e.logger.Debug("edit applied",
		"room", index,
		"kind", kind,
		"value", value,
		"price", next.Price)

	for _, fn := range listeners {
		fn(copyAllocations(out))
	}

	return out, nil
}

func (e *Editor) checkLocked(index int, kind Kind, value int) error {
	room := e.allocs[index]

	if value < 0 {
		return fmt.Errorf("%w: %s count %d is negative", ErrOutOfBounds, kind, value)
	}
	if kind == Adult && value == 0 && room.Child > 0 {
		return fmt.Errorf("%w: room %d holds %d children", ErrUnaccompaniedChildren, index, room.Child)
	}
	if kind == Child && value > 0 && room.Adult == 0 {
		return fmt.Errorf("%w: room %d has no adult", ErrUnaccompaniedChildren, index)
	}

	other := room.Child
	if kind == Child {
		other = room.Adult
	}
	if value+other > room.Capacity {
		return fmt.Errorf("%w: room %d holds at most %d guests", ErrOutOfBounds, index, room.Capacity)
	}

	// Re-check the party totals at commit time rather than trusting the
	// bounds the caller last saw.
	placed := value
	for i, a := range e.allocs {
		if i != index {
			placed += count(a, kind)
		}
	}
	if total := partyCount(e.guest, kind); placed > total {
		return fmt.Errorf("%w: %s count %d exceeds party total %d", ErrExceedsGuestTotal, kind, placed, total)
	}

	return nil
}

// Subscribe registers fn for change notifications and returns a function that
// removes it.
func (e *Editor) Subscribe(fn ChangeFunc) func() {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.nextID++
	id := e.nextID
	e.subscribers = append(e.subscribers, subscriber{id: id, fn: fn})

	var once sync.Once
	return func() {
		once.Do(func() {
			e.mu.Lock()
			defer e.mu.Unlock()
			for i, s := range e.subscribers {
				if s.id == id {
					e.subscribers = append(e.subscribers[:i], e.subscribers[i+1:]...)
					return
				}
			}
		})
	}
}

// Allocations returns a copy of the current allocation set.
func (e *Editor) Allocations() []allocator.Allocation {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.snapshotLocked()
}

// Bounds returns the live editable range of room index.
func (e *Editor) Bounds(index int) (Bounds, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if index < 0 || index >= len(e.allocs) {
		return Bounds{}, fmt.Errorf("%w: %d", ErrRoomIndex, index)
	}
	return ComputeBounds(e.allocs, index, e.guest), nil
}

// Unassigned returns the guests not yet placed in any room.
func (e *Editor) Unassigned() allocator.Guest {
	e.mu.Lock()
	defer e.mu.Unlock()

	left := e.guest
	for _, a := range e.allocs {
		left.Adult -= a.Adult
		left.Child -= a.Child
	}
	return left
}

// Complete reports whether every guest is placed and no child is alone.
func (e *Editor) Complete() bool {
	left := e.Unassigned()
	if left.Adult != 0 || left.Child != 0 {
		return false
	}
	return allocator.IsValid(e.Allocations())
}

// TotalPrice is the cost of the booked rooms.
func (e *Editor) TotalPrice() float64 {
	return allocator.TotalPrice(e.Allocations())
}

// Guest returns the party being allocated.
func (e *Editor) Guest() allocator.Guest {
	return e.guest
}

// Rooms returns a copy of the rooms.
func (e *Editor) Rooms() []allocator.Room {
	return append([]allocator.Room(nil), e.rooms...)
}

// Len is the number of rooms.
func (e *Editor) Len() int {
	return len(e.rooms)
}

func (e *Editor) snapshotLocked() []allocator.Allocation {
	return copyAllocations(e.allocs)
}

func (e *Editor) listenersLocked() []ChangeFunc {
	listeners := make([]ChangeFunc, 0, len(e.subscribers)+1)
	if e.onChange != nil {
		listeners = append(listeners, e.onChange)
	}
	for _, s := range e.subscribers {
		listeners = append(listeners, s.fn)
	}
	return listeners
}

func copyAllocations(allocs []allocator.Allocation) []allocator.Allocation {
	return append([]allocator.Allocation(nil), allocs...)
}

func count(a allocator.Allocation, kind Kind) int {
	if kind == Child {
		return a.Child
	}
	return a.Adult
}

func partyCount(g allocator.Guest, kind Kind) int {
	if kind == Child {
		return g.Child
	}
	return g.Adult
}
