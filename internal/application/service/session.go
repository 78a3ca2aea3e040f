package service

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/eshaffer321/room-allocation/internal/domain/allocator"
	"github.com/eshaffer321/room-allocation/internal/domain/editor"
	"github.com/eshaffer321/room-allocation/internal/domain/stepper"
)

// Session is one party's allocation being edited.
type Session struct {
	ID        string
	CreatedAt time.Time

	mu          sync.Mutex
	editor      *editor.Editor
	panels      []*editor.Panel
	feasible    bool
	revision    int64
	updatedAt   time.Time
	lastAccess  time.Time
	unsubscribe func()
}

// SessionSnapshot is a consistent view of a session.
type SessionSnapshot struct {
	ID          string
	Guest       allocator.Guest
	Rooms       []allocator.Room
	Allocations []allocator.Allocation
	Bounds      []editor.Bounds
	Unassigned  allocator.Guest
	Complete    bool
	Feasible    bool // whether the initial search found a valid allocation
	TotalPrice  float64
	Revision    int64
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// StepResult reports the outcome of a stepper-driven edit.
type StepResult struct {
	Session  *SessionSnapshot
	Accepted bool
	// Reason is set when the field accepted the value but the editor did not.
	Reason error
}

// CreateSession searches for the cheapest allocation and opens an editing
// session on it. An infeasible party still gets a session starting from
// empty rooms.
func (s *AllocationService) CreateSession(ctx context.Context, guest allocator.Guest, rooms []allocator.Room) (*SessionSnapshot, error) {
	result, err := s.Search(ctx, guest, rooms)
	if err != nil {
		return nil, err
	}

	now := s.now()
	sess := &Session{
		ID:         uuid.New().String(),
		CreatedAt:  now,
		feasible:   result.Feasible,
		updatedAt:  now,
		lastAccess: now,
	}

	ed, err := editor.New(guest, rooms, result.Allocations, editor.WithLogger(s.logger.With("session_id", sess.ID)))
	if err != nil {
		return nil, err
	}
	sess.editor = ed

	// Notifications only fire inside SetOccupancy, which runs with sess.mu held.
	sess.unsubscribe = ed.Subscribe(func([]allocator.Allocation) {
		sess.revision++
		sess.updatedAt = s.now()
	})

	for i := range rooms {
		p, err := editor.NewPanel(ed, i, s.cfg.Stepper.RepeatInterval)
		if err != nil {
			sess.close()
			return nil, err
		}
		sess.panels = append(sess.panels, p)
	}

	s.sessionsMutex.Lock()
	s.sessions[sess.ID] = sess
	s.sessionsMutex.Unlock()

	s.logger.Info("session created",
		"session_id", sess.ID,
		"rooms", len(rooms),
		"adults", guest.Adult,
		"children", guest.Child,
		"feasible", result.Feasible,
	)

	return sess.snapshot(), nil
}

// GetSession returns the current state of a session.
func (s *AllocationService) GetSession(id string) (*SessionSnapshot, error) {
	sess, err := s.lookup(id)
	if err != nil {
		return nil, err
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()
	sess.lastAccess = s.now()

	return sess.snapshotLocked(), nil
}

// ListSessions returns every open session, oldest first.
func (s *AllocationService) ListSessions() []*SessionSnapshot {
	s.sessionsMutex.RLock()
	sessions := make([]*Session, 0, len(s.sessions))
	for _, sess := range s.sessions {
		sessions = append(sessions, sess)
	}
	s.sessionsMutex.RUnlock()

	sort.Slice(sessions, func(i, j int) bool {
		if sessions[i].CreatedAt.Equal(sessions[j].CreatedAt) {
			return sessions[i].ID < sessions[j].ID
		}
		return sessions[i].CreatedAt.Before(sessions[j].CreatedAt)
	})

	out := make([]*SessionSnapshot, len(sessions))
	for i, sess := range sessions {
		out[i] = sess.snapshot()
	}
	return out
}

// UpdateOccupancy sets one room's adult or child count.
func (s *AllocationService) UpdateOccupancy(id string, index int, kind editor.Kind, value int) (*SessionSnapshot, error) {
	sess, err := s.lookup(id)
	if err != nil {
		return nil, err
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()
	sess.lastAccess = s.now()

	if _, err := sess.editor.SetOccupancy(index, kind, value); err != nil {
		return nil, fmt.Errorf("update session %s: %w", id, err)
	}

	s.logger.Debug("session updated",
		"session_id", id,
		"room", index,
		"kind", kind,
		"value", value,
		"revision", sess.revision,
	)

	return sess.snapshotLocked(), nil
}

// StepOccupancy presses the plus or minus button of one room's field. A step
// past the field bounds is ignored rather than reported as an error.
func (s *AllocationService) StepOccupancy(id string, index int, kind editor.Kind, dir stepper.Direction) (*StepResult, error) {
	return s.withField(id, index, kind, func(f *stepper.Field) bool {
		if dir == stepper.Down {
			return f.Decrement()
		}
		return f.Increment()
	})
}

// InputOccupancy types raw text into one room's field. Text without a number
// selects the field minimum; values outside the bounds are ignored.
func (s *AllocationService) InputOccupancy(id string, index int, kind editor.Kind, raw string) (*StepResult, error) {
	return s.withField(id, index, kind, func(f *stepper.Field) bool {
		return f.Input(raw)
	})
}

func (s *AllocationService) withField(id string, index int, kind editor.Kind, apply func(*stepper.Field) bool) (*StepResult, error) {
	sess, err := s.lookup(id)
	if err != nil {
		return nil, err
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()
	sess.lastAccess = s.now()

	if index < 0 || index >= len(sess.panels) {
		return nil, fmt.Errorf("update session %s: %w: %d", id, editor.ErrRoomIndex, index)
	}
	if kind != editor.Adult && kind != editor.Child {
		return nil, fmt.Errorf("update session %s: %w: %q", id, editor.ErrUnknownKind, kind)
	}

	panel := sess.panels[index]
	res := &StepResult{Accepted: apply(panel.Field(kind))}
	if res.Accepted {
		// The field committed through the editor; surface its verdict.
		if err := panel.Err(); err != nil {
			res.Accepted = false
			res.Reason = err
		}
	}
	res.Session = sess.snapshotLocked()

	return res, nil
}

// RoomSummaries returns what each room panel of a session currently shows.
func (s *AllocationService) RoomSummaries(id string) ([]editor.Summary, error) {
	sess, err := s.lookup(id)
	if err != nil {
		return nil, err
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()
	sess.lastAccess = s.now()

	out := make([]editor.Summary, len(sess.panels))
	for i, p := range sess.panels {
		out[i] = p.Summary()
	}
	return out, nil
}

// DeleteSession closes and removes a session.
func (s *AllocationService) DeleteSession(id string) error {
	s.sessionsMutex.Lock()
	sess, exists := s.sessions[id]
	if exists {
		delete(s.sessions, id)
	}
	s.sessionsMutex.Unlock()

	if !exists {
		return fmt.Errorf("%w: %s", ErrSessionNotFound, id)
	}

	sess.close()
	s.logger.Info("session deleted", "session_id", id)
	return nil
}

// CleanupIdleSessions removes sessions not touched for longer than maxIdle.
func (s *AllocationService) CleanupIdleSessions(maxIdle time.Duration) int {
	cutoff := s.now().Add(-maxIdle)

	s.sessionsMutex.Lock()
	var idle []*Session
	for id, sess := range s.sessions {
		sess.mu.Lock()
		last := sess.lastAccess
		sess.mu.Unlock()

		if last.Before(cutoff) {
			delete(s.sessions, id)
			idle = append(idle, sess)
		}
	}
	s.sessionsMutex.Unlock()

	for _, sess := range idle {
		sess.close()
	}

	if len(idle) > 0 {
		s.logger.Debug("cleaned up idle sessions", "removed", len(idle))
	}
	return len(idle)
}

// SessionCount returns the number of open sessions.
func (s *AllocationService) SessionCount() int {
	s.sessionsMutex.RLock()
	defer s.sessionsMutex.RUnlock()
	return len(s.sessions)
}

func (s *AllocationService) lookup(id string) (*Session, error) {
	s.sessionsMutex.RLock()
	defer s.sessionsMutex.RUnlock()

	sess, exists := s.sessions[id]
	if !exists {
		return nil, fmt.Errorf("%w: %s", ErrSessionNotFound, id)
	}
	return sess, nil
}

func (sess *Session) snapshot() *SessionSnapshot {
	sess.mu.Lock()
	defer sess.mu.Unlock()
	return sess.snapshotLocked()
}

func (sess *Session) snapshotLocked() *SessionSnapshot {
	ed := sess.editor
	allocs := ed.Allocations()

	bounds := make([]editor.Bounds, len(allocs))
	for i := range allocs {
		bounds[i] = editor.ComputeBounds(allocs, i, ed.Guest())
	}

	return &SessionSnapshot{
		ID:          sess.ID,
		Guest:       ed.Guest(),
		Rooms:       ed.Rooms(),
		Allocations: allocs,
		Bounds:      bounds,
		Unassigned:  ed.Unassigned(),
		Complete:    ed.Complete(),
		Feasible:    sess.feasible,
		TotalPrice:  ed.TotalPrice(),
		Revision:    sess.revision,
		CreatedAt:   sess.CreatedAt,
		UpdatedAt:   sess.updatedAt,
	}
}

// close releases held buttons and detaches every listener.
func (sess *Session) close() {
	for _, p := range sess.panels {
		p.Close()
	}
	if sess.unsubscribe != nil {
		sess.unsubscribe()
	}
}
