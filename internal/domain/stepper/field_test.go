package stepper

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type changeRecorder struct {
	mu     sync.Mutex
	values []int
	names  []string
}

func (r *changeRecorder) record(name string, value int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.names = append(r.names, name)
	r.values = append(r.values, value)
}

func (r *changeRecorder) snapshot() []int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]int(nil), r.values...)
}

func newTestField(rec *changeRecorder, min, max, value int) *Field {
	return NewField(Config{
		Name:           "adult",
		Min:            min,
		Max:            max,
		Value:          value,
		RepeatInterval: 5 * time.Millisecond,
		OnChange:       rec.record,
	})
}

func TestNewField_Defaults(t *testing.T) {
	f := NewField(Config{Name: "child", Max: 3})

	assert.Equal(t, "child", f.Name())
	assert.Equal(t, 0, f.Value())
	assert.Equal(t, 1, f.step)
	assert.Equal(t, DefaultRepeatInterval, f.interval)
	assert.False(t, f.Disabled())
}

func TestField_Set(t *testing.T) {
	rec := &changeRecorder{}
	f := newTestField(rec, 0, 10, 5)

	assert.True(t, f.Set(7))
	assert.Equal(t, 7, f.Value())

	assert.False(t, f.Set(15), "above max is ignored")
	assert.False(t, f.Set(-1), "below min is ignored")
	assert.Equal(t, 7, f.Value())

	assert.Equal(t, []int{7}, rec.snapshot())
	assert.Equal(t, []string{"adult"}, rec.names)
}

func TestField_SetAcceptsBoundaries(t *testing.T) {
	rec := &changeRecorder{}
	f := newTestField(rec, 1, 4, 2)

	assert.True(t, f.Set(1))
	assert.True(t, f.Set(4))
	assert.Equal(t, []int{1, 4}, rec.snapshot())
}

func TestField_Input(t *testing.T) {
	tests := []struct {
		name      string
		raw       string
		min       int
		max       int
		start     int
		wantOK    bool
		wantValue int
	}{
		{"plain number", "3", 0, 10, 0, true, 3},
		{"non-numeric falls back to min", "abc", 1, 10, 5, true, 1},
		{"empty falls back to min", "", 0, 10, 5, true, 0},
		{"numeric prefix", "7kg", 0, 10, 0, true, 7},
		{"surrounding spaces", "  4 ", 0, 10, 0, true, 4},
		{"fraction truncated", "3.9", 0, 10, 0, true, 3},
		{"out of range ignored", "15", 0, 10, 5, false, 5},
		{"negative ignored", "-2", 0, 10, 5, false, 5},
		{"huge number ignored", "1e400", 0, 10, 5, false, 5},
		{"min outside collapsed range", "x", 1, 0, 0, false, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := &changeRecorder{}
			f := newTestField(rec, tt.min, tt.max, tt.start)

			assert.Equal(t, tt.wantOK, f.Input(tt.raw))
			assert.Equal(t, tt.wantValue, f.Value())
			if tt.wantOK {
				assert.Equal(t, []int{tt.wantValue}, rec.snapshot())
			} else {
				assert.Empty(t, rec.snapshot())
			}
		})
	}
}

func TestField_IncrementDecrement(t *testing.T) {
	rec := &changeRecorder{}
	f := newTestField(rec, 0, 2, 1)

	assert.True(t, f.Increment())
	assert.False(t, f.Increment(), "already at max")
	assert.Equal(t, 2, f.Value())

	assert.True(t, f.Decrement())
	assert.True(t, f.Decrement())
	assert.False(t, f.Decrement(), "already at min")
	assert.Equal(t, 0, f.Value())

	assert.Equal(t, []int{2, 1, 0}, rec.snapshot())
}

func TestField_CustomStep(t *testing.T) {
	f := NewField(Config{Min: 0, Max: 10, Step: 3})

	assert.True(t, f.Increment())
	assert.True(t, f.Increment())
	assert.True(t, f.Increment())
	assert.False(t, f.Increment())
	assert.Equal(t, 9, f.Value())
}

func TestField_Disabled(t *testing.T) {
	rec := &changeRecorder{}
	f := newTestField(rec, 0, 10, 2)
	f.SetDisabled(true)

	assert.False(t, f.Set(3))
	assert.False(t, f.Input("4"))
	assert.False(t, f.Increment())
	f.Hold(Up)
	assert.False(t, f.Holding())

	assert.Equal(t, 2, f.Value())
	assert.Empty(t, rec.snapshot())
}

func TestField_SetBoundsKeepsValue(t *testing.T) {
	f := NewField(Config{Min: 0, Max: 10, Value: 8})

	f.SetBounds(0, 5)
	min, max := f.Bounds()
	assert.Equal(t, 0, min)
	assert.Equal(t, 5, max)
	assert.Equal(t, 8, f.Value())

	assert.False(t, f.Decrement(), "7 is outside the new range")
	assert.True(t, f.Set(5))
}

func TestField_ResetDoesNotNotify(t *testing.T) {
	rec := &changeRecorder{}
	f := newTestField(rec, 0, 3, 0)

	f.Reset(9)
	assert.Equal(t, 9, f.Value())
	assert.Empty(t, rec.snapshot())
}

func TestField_HoldRepeatsUntilRelease(t *testing.T) {
	rec := &changeRecorder{}
	f := newTestField(rec, 0, 100, 0)

	f.Hold(Up)
	assert.True(t, f.Holding())

	require.Eventually(t, func() bool {
		return f.Value() >= 3
	}, time.Second, time.Millisecond)

	f.Release()
	assert.False(t, f.Holding())

	stopped := f.Value()
	time.Sleep(30 * time.Millisecond)
	assert.Equal(t, stopped, f.Value(), "no steps after release")
	assert.Equal(t, stopped, len(rec.snapshot()))
}

func TestField_HoldStopsAtBound(t *testing.T) {
	rec := &changeRecorder{}
	f := newTestField(rec, 0, 3, 2)

	f.Hold(Down)
	require.Eventually(t, func() bool {
		return f.Value() == 0
	}, time.Second, time.Millisecond)

	time.Sleep(20 * time.Millisecond)
	f.Release()

	assert.Equal(t, []int{1, 0}, rec.snapshot())
}

func TestField_BlurReleasesHold(t *testing.T) {
	blurred := make(chan string, 1)
	f := NewField(Config{
		Name:           "child",
		Max:            1000,
		RepeatInterval: 5 * time.Millisecond,
		OnBlur:         func(name string) { blurred <- name },
	})

	f.Hold(Up)
	require.Eventually(t, func() bool { return f.Value() > 0 }, time.Second, time.Millisecond)

	f.Blur()
	assert.False(t, f.Holding())
	assert.Equal(t, "child", <-blurred)

	v := f.Value()
	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, v, f.Value())
}

func TestField_HoldReplacesPreviousHold(t *testing.T) {
	f := NewField(Config{Max: 1000, Value: 500, RepeatInterval: 5 * time.Millisecond})

	f.Hold(Up)
	f.Hold(Down)

	require.Eventually(t, func() bool { return f.Value() < 500 }, time.Second, time.Millisecond)
	f.Release()
}

func TestParseNumber(t *testing.T) {
	tests := []struct {
		in     string
		want   float64
		wantOK bool
	}{
		{"12", 12, true},
		{"+5", 5, true},
		{"-3", -3, true},
		{".5", 0.5, true},
		{"2.", 2, true},
		{"1e2", 100, true},
		{"4 rooms", 4, true},
		{"abc", 0, false},
		{"-", 0, false},
		{"", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := parseNumber(tt.in)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}
