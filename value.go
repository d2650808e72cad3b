package delayed

import (
	"sync"
	"time"
)

// Value holds the latest value accepted through a debounced or throttled
// gate. Set feeds a candidate value through the underlying invoker, and Get
// returns the value most recently accepted by it. This is the typical
// "debounce a changing input" adapter: rapid Sets coalesce, and Get keeps
// returning the previous value until the gate lets a new one through.
//
// All methods are safe for concurrent use.
type Value[T any] struct {
	mu  sync.RWMutex
	cur T
	inv Invoker[T]
}

// NewDebouncedValue returns a Value starting at initial whose Set is
// debounced by wait. By default only the trailing edge is enabled, so Get
// settles to the most recent Set once updates go quiet for wait.
func NewDebouncedValue[T any](
	initial T,
	wait time.Duration,
	opts ...Option,
) *Value[T] {
	v := &Value[T]{cur: initial}
	v.inv = NewDebouncer(wait, v.store, opts...)

	return v
}

// NewThrottledValue returns a Value starting at initial whose Set is
// throttled to one accepted update per wait. By default both edges are
// enabled, so the first Set is accepted immediately and later Sets within
// the window coalesce into one trailing update.
func NewThrottledValue[T any](
	initial T,
	wait time.Duration,
	opts ...Option,
) *Value[T] {
	v := &Value[T]{cur: initial}
	v.inv = NewThrottler(wait, v.store, opts...)

	return v
}

// Set offers x as the new value, subject to the configured policy.
func (v *Value[T]) Set(x T) {
	v.inv.Invoke(x)
}

// Get returns the most recently accepted value.
func (v *Value[T]) Get() T {
	v.mu.RLock()
	defer v.mu.RUnlock()

	return v.cur
}

// Flush immediately accepts the pending value, if any.
func (v *Value[T]) Flush() {
	v.inv.Flush()
}

// Cancel discards the pending value, if any, keeping the current one.
func (v *Value[T]) Cancel() {
	v.inv.Cancel()
}

// Stop discards the pending value and permanently disables Set. It must be
// called when the owner is done with the Value to release its timers.
func (v *Value[T]) Stop() {
	v.inv.Stop()
}

func (v *Value[T]) store(x T) {
	v.mu.Lock()
	v.cur = x
	v.mu.Unlock()
}
