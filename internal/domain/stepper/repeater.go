package stepper

import (
	"sync"
	"time"
)

// DefaultRepeatInterval is how often a held button fires.
const DefaultRepeatInterval = 100 * time.Millisecond

// Repeater invokes a function periodically until stopped.
//
// Once Stop returns the function is never invoked again: an invocation that
// is already running finishes first and a pending tick is dropped. The
// function must not call Stop on its own repeater.
type Repeater struct {
	mu      sync.Mutex
	stopped bool

	stop     chan struct{}
	done     chan struct{}
	stopOnce sync.Once
}

// StartRepeater starts calling fn every interval. The first call happens one
// interval after the start, never immediately.
func StartRepeater(interval time.Duration, fn func()) *Repeater {
	if interval <= 0 {
		interval = DefaultRepeatInterval
	}

	r := &Repeater{
		stop: make(chan struct{}),
		done: make(chan struct{}),
	}
	go r.run(interval, fn)

	return r
}

func (r *Repeater) run(interval time.Duration, fn func()) {
	defer close(r.done)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-r.stop:
			return
		case <-ticker.C:
			r.mu.Lock()
			if r.stopped {
				r.mu.Unlock()
				return
			}
			fn()
			r.mu.Unlock()
		}
	}
}

// Stop cancels the repeater. It is safe to call more than once.
func (r *Repeater) Stop() {
	r.mu.Lock()
	r.stopped = true
	r.mu.Unlock()

	r.stopOnce.Do(func() {
		close(r.stop)
	})
}

// Done is closed once the repeater goroutine has exited.
func (r *Repeater) Done() <-chan struct{} {
	return r.done
}
