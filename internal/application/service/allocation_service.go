// Package service hosts the allocation search and the interactive editing
// sessions behind the CLI and the HTTP API.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/eshaffer321/room-allocation/internal/domain/allocator"
	"github.com/eshaffer321/room-allocation/internal/infrastructure/config"
	"github.com/eshaffer321/room-allocation/internal/infrastructure/logging"
)

var (
	// ErrLimitExceeded is returned when a search is larger than the
	// configured bounds allow.
	ErrLimitExceeded = errors.New("search limit exceeded")

	// ErrSessionNotFound is returned for unknown or expired session IDs.
	ErrSessionNotFound = errors.New("session not found")
)

// AllocationService runs bounded searches and manages editing sessions.
type AllocationService struct {
	cfg    *config.Config
	logger *slog.Logger

	cache  *resultCache
	flight singleflight.Group

	// Session management
	sessions      map[string]*Session
	sessionsMutex sync.RWMutex

	// Background cleanup
	cleanupStop chan struct{}
	cleanupDone chan struct{}

	now func() time.Time
}

// NewAllocationService creates a new allocation service. A nil cfg uses
// defaults; a nil logger discards output.
func NewAllocationService(cfg *config.Config, logger *slog.Logger) *AllocationService {
	if cfg == nil {
		cfg = config.Defaults()
	}
	if logger == nil {
		logger = logging.Discard()
	}

	return &AllocationService{
		cfg:      cfg,
		logger:   logger,
		cache:    newResultCache(cfg.Search.CacheSize),
		sessions: make(map[string]*Session),
		now:      time.Now,
	}
}

// Search returns the cheapest allocation of guest over rooms.
//
// Identical searches share one computation and later ones are answered from
// the cache. The search itself cannot be interrupted; a cancelled ctx only
// stops the caller from waiting for it.
func (s *AllocationService) Search(ctx context.Context, guest allocator.Guest, rooms []allocator.Room) (*allocator.Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := allocator.Validate(guest, rooms); err != nil {
		return nil, err
	}
	if err := s.checkLimits(guest, rooms); err != nil {
		return nil, err
	}

	key := searchKey(guest, rooms)
	if cached, ok := s.cache.Get(key); ok {
		s.logger.Debug("search cache hit", "rooms", len(rooms), "guests", guest.Total())
		return cached, nil
	}

	ch := s.flight.DoChan(key, func() (interface{}, error) {
		start := time.Now()
		result, err := allocator.Search(guest, rooms)
		if err != nil {
			return nil, err
		}

		s.cache.Set(key, result)
		s.logger.Debug("search finished",
			"rooms", len(rooms),
			"adults", guest.Adult,
			"children", guest.Child,
			"feasible", result.Feasible,
			"total_price", result.TotalPrice,
			"duration", time.Since(start),
		)
		return result, nil
	})

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		return copyResult(res.Val.(*allocator.Result)), nil
	}
}

// checkLimits keeps the exhaustive search to sizes it can finish quickly.
func (s *AllocationService) checkLimits(guest allocator.Guest, rooms []allocator.Room) error {
	limits := s.cfg.Search

	if limits.MaxRooms > 0 && len(rooms) > limits.MaxRooms {
		return fmt.Errorf("%w: %d rooms (max %d)", ErrLimitExceeded, len(rooms), limits.MaxRooms)
	}
	if limits.MaxGuests > 0 && guest.Total() > limits.MaxGuests {
		return fmt.Errorf("%w: %d guests (max %d)", ErrLimitExceeded, guest.Total(), limits.MaxGuests)
	}
	if limits.MaxCapacity > 0 {
		for i, r := range rooms {
			if r.Capacity > limits.MaxCapacity {
				return fmt.Errorf("%w: room %d capacity %d (max %d)", ErrLimitExceeded, i, r.Capacity, limits.MaxCapacity)
			}
		}
	}
	return nil
}

// CachedResults returns the number of memoised searches.
func (s *AllocationService) CachedResults() int {
	return s.cache.Size()
}

// StartCleanup starts a background goroutine that evicts sessions idle for
// longer than the configured timeout. Call Stop to end it.
func (s *AllocationService) StartCleanup(checkInterval time.Duration) {
	s.cleanupStop = make(chan struct{})
	s.cleanupDone = make(chan struct{})

	idle := s.cfg.Sessions.IdleTimeout

	go func() {
		defer close(s.cleanupDone)

		ticker := time.NewTicker(checkInterval)
		defer ticker.Stop()

		s.logger.Info("session cleanup started",
			"check_interval", checkInterval,
			"idle_timeout", idle,
		)

		for {
			select {
			case <-s.cleanupStop:
				s.logger.Info("session cleanup stopped")
				return
			case <-ticker.C:
				if removed := s.CleanupIdleSessions(idle); removed > 0 {
					s.logger.Info("evicted idle sessions", "count", removed)
				}
			}
		}
	}()
}

// Stop stops the cleanup goroutine, closes every session and blocks until
// the goroutine has exited.
func (s *AllocationService) Stop() {
	if s.cleanupStop != nil {
		close(s.cleanupStop)
		<-s.cleanupDone
		s.cleanupStop = nil
	}

	s.sessionsMutex.Lock()
	defer s.sessionsMutex.Unlock()
	for id, sess := range s.sessions {
		sess.close()
		delete(s.sessions, id)
	}
}
