// Package stepper implements a bounded integer field with minus and plus
// buttons, free-text input and press-and-hold repeat.
//
// The field never reports errors. Values outside [min, max] are ignored,
// non-numeric text falls back to the minimum, and a disabled field ignores
// every change.
package stepper

import (
	"math"
	"regexp"
	"strconv"
	"strings"
	"sync"
	"time"
)

// Direction selects which button is pressed.
type Direction int

const (
	Down Direction = -1
	Up   Direction = 1
)

// Config holds the initial properties of a field.
type Config struct {
	Name           string
	Min            int
	Max            int
	Step           int // defaults to 1
	Value          int
	Disabled       bool
	RepeatInterval time.Duration // defaults to DefaultRepeatInterval

	// OnChange is called after every accepted change, outside the field lock.
	OnChange func(name string, value int)
	// OnBlur is called when the field loses focus.
	OnBlur func(name string)
}

// Field is a bounded integer input. It is safe for concurrent use; a held
// button changes the value from its own goroutine.
type Field struct {
	mu       sync.Mutex
	name     string
	min      int
	max      int
	step     int
	value    int
	disabled bool
	interval time.Duration
	onChange func(string, int)
	onBlur   func(string)
	repeater *Repeater
}

// NewField creates a field from cfg.
func NewField(cfg Config) *Field {
	step := cfg.Step
	if step <= 0 {
		step = 1
	}
	interval := cfg.RepeatInterval
	if interval <= 0 {
		interval = DefaultRepeatInterval
	}

	return &Field{
		name:     cfg.Name,
		min:      cfg.Min,
		max:      cfg.Max,
		step:     step,
		value:    cfg.Value,
		disabled: cfg.Disabled,
		interval: interval,
		onChange: cfg.OnChange,
		onBlur:   cfg.OnBlur,
	}
}

// Name returns the field name passed to callbacks.
func (f *Field) Name() string {
	return f.name
}

// Value returns the current value.
func (f *Field) Value() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.value
}

// Bounds returns the current minimum and maximum.
func (f *Field) Bounds() (int, int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.min, f.max
}

// Disabled reports whether the field ignores changes.
func (f *Field) Disabled() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.disabled
}

// SetBounds replaces the editable range. The current value is left alone
// even when it falls outside the new range.
func (f *Field) SetBounds(min, max int) {
	f.mu.Lock()
	f.min = min
	f.max = max
	f.mu.Unlock()
}

// SetDisabled toggles the field. Disabling releases a held button.
func (f *Field) SetDisabled(disabled bool) {
	f.mu.Lock()
	f.disabled = disabled
	f.mu.Unlock()

	if disabled {
		f.Release()
	}
}

// Reset adopts a value pushed from outside without range checks or
// notification.
func (f *Field) Reset(value int) {
	f.mu.Lock()
	f.value = value
	f.mu.Unlock()
}

// Set changes the value when it lies within the bounds. It reports whether
// the change was accepted.
func (f *Field) Set(value int) bool {
	f.mu.Lock()
	if f.disabled || value < f.min || value > f.max {
		f.mu.Unlock()
		return false
	}
	f.value = value
	onChange := f.onChange
	name := f.name
	f.mu.Unlock()

	if onChange != nil {
		onChange(name, value)
	}
	return true
}

// Input applies typed text. Text without a leading number is read as the
// minimum; a fractional part is dropped.
func (f *Field) Input(raw string) bool {
	parsed, ok := parseNumber(raw)

	f.mu.Lock()
	min, max := f.min, f.max
	f.mu.Unlock()

	if !ok {
		return f.Set(min)
	}

	parsed = math.Trunc(parsed)
	if parsed < float64(min) || parsed > float64(max) {
		return false
	}
	return f.Set(int(parsed))
}

// Increment adds one step.
func (f *Field) Increment() bool {
	return f.stepBy(Up)
}

// Decrement subtracts one step.
func (f *Field) Decrement() bool {
	return f.stepBy(Down)
}

func (f *Field) stepBy(dir Direction) bool {
	f.mu.Lock()
	next := f.value + int(dir)*f.step
	f.mu.Unlock()

	return f.Set(next)
}

// Hold starts repeating steps in dir until Release or Blur. A hold already in
// progress is replaced.
func (f *Field) Hold(dir Direction) {
	f.Release()

	f.mu.Lock()
	defer f.mu.Unlock()

	if f.disabled {
		return
	}
	f.repeater = StartRepeater(f.interval, func() {
		f.stepBy(dir)
	})
}

// Holding reports whether a button is being held.
func (f *Field) Holding() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.repeater != nil
}

// Release stops a held button. No step fires after Release returns.
func (f *Field) Release() {
	f.mu.Lock()
	r := f.repeater
	f.repeater = nil
	f.mu.Unlock()

	if r != nil {
		r.Stop()
	}
}

// Blur releases any held button and reports focus loss.
func (f *Field) Blur() {
	f.Release()

	f.mu.Lock()
	onBlur := f.onBlur
	name := f.name
	f.mu.Unlock()

	if onBlur != nil {
		onBlur(name)
	}
}

var numberPrefix = regexp.MustCompile(`^[+-]?(\d+\.?\d*|\.\d+)([eE][+-]?\d+)?`)

// parseNumber reads the longest leading decimal number in s.
func parseNumber(s string) (float64, bool) {
	match := numberPrefix.FindString(strings.TrimSpace(s))
	if match == "" {
		return 0, false
	}

	v, err := strconv.ParseFloat(match, 64)
	if err != nil && !isRangeErr(err) {
		return 0, false
	}
	return v, true
}

func isRangeErr(err error) bool {
	numErr, ok := err.(*strconv.NumError)
	return ok && numErr.Err == strconv.ErrRange
}
