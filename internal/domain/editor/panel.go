package editor

import (
	"fmt"
	"sync"
	"time"

	"github.com/eshaffer321/room-allocation/internal/domain/allocator"
	"github.com/eshaffer321/room-allocation/internal/domain/stepper"
)

// Summary is what a panel displays for its room.
type Summary struct {
	Index     int
	Name      string
	Capacity  int
	Occupants int
	Adult     int
	Child     int
	Price     float64
	Bounds    Bounds
}

// Panel binds one room of an Editor to an adult and a child stepper field.
//
// Field changes are committed through the editor. After any change to any
// room the panel pulls fresh bounds and values back into its fields, so a
// rejected edit snaps the field back to the committed value.
type Panel struct {
	editor *Editor
	index  int
	adult  *stepper.Field
	child  *stepper.Field

	unsubscribe func()

	mu      sync.Mutex
	lastErr error
}

// NewPanel creates the panel for room index. interval sets the press-and-hold
// repeat rate; zero uses the stepper default.
func NewPanel(e *Editor, index int, interval time.Duration) (*Panel, error) {
	if index < 0 || index >= e.Len() {
		return nil, fmt.Errorf("%w: %d", ErrRoomIndex, index)
	}

	p := &Panel{editor: e, index: index}
	p.adult = stepper.NewField(stepper.Config{
		Name:           fmt.Sprintf("adult-%d", index),
		Step:           1,
		RepeatInterval: interval,
		OnChange: func(_ string, v int) {
			p.commit(Adult, v)
		},
	})
	p.child = stepper.NewField(stepper.Config{
		Name:           fmt.Sprintf("child-%d", index),
		Step:           1,
		RepeatInterval: interval,
		OnChange: func(_ string, v int) {
			p.commit(Child, v)
		},
	})

	// A room nobody can enter is not editable.
	if e.rooms[index].Capacity == 0 {
		p.adult.SetDisabled(true)
		p.child.SetDisabled(true)
	}

	p.refresh()
	p.unsubscribe = e.Subscribe(func([]allocator.Allocation) {
		p.refresh()
	})

	return p, nil
}

// Index is the room this panel edits.
func (p *Panel) Index() int {
	return p.index
}

// Field returns the stepper for kind.
func (p *Panel) Field(kind Kind) *stepper.Field {
	if kind == Child {
		return p.child
	}
	return p.adult
}

// Err returns the reason the most recent edit was rejected, or nil when it
// was accepted.
func (p *Panel) Err() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.lastErr
}

// Summary describes the room as currently committed.
func (p *Panel) Summary() Summary {
	allocs := p.editor.Allocations()
	a := allocs[p.index]
	room := p.editor.rooms[p.index]

	return Summary{
		Index:     p.index,
		Name:      room.Name,
		Capacity:  a.Capacity,
		Occupants: a.Adult + a.Child,
		Adult:     a.Adult,
		Child:     a.Child,
		Price:     a.Price,
		Bounds:    ComputeBounds(allocs, p.index, p.editor.Guest()),
	}
}

// Close stops any held button and detaches the panel from the editor.
func (p *Panel) Close() {
	p.adult.Release()
	p.child.Release()
	p.unsubscribe()
}

func (p *Panel) commit(kind Kind, value int) {
	_, err := p.editor.SetOccupancy(p.index, kind, value)

	p.mu.Lock()
	p.lastErr = err
	p.mu.Unlock()

	if err != nil {
		p.refresh()
	}
}

func (p *Panel) refresh() {
	allocs := p.editor.Allocations()
	a := allocs[p.index]
	b := ComputeBounds(allocs, p.index, p.editor.Guest())

	p.adult.SetBounds(b.MinAdult, b.MaxAdult)
	p.adult.Reset(a.Adult)
	p.child.SetBounds(b.MinChild, b.MaxChild)
	p.child.Reset(a.Child)
}
