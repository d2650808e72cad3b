package delayed

import (
	"sync"
	"time"

	"github.com/zoobzio/clockz"
)

// Throttler invokes a function at most once per wait interval. With the
// leading edge enabled, a call arriving with the window closed invokes
// immediately; with the trailing edge enabled, calls arriving inside the
// window coalesce into one invocation at the end of it, carrying the
// arguments of the most recent call. No two invocations ever occur less than
// wait apart, except the first under a leading edge.
//
// A Throttler owns its state exclusively; independent instances wrapping the
// same function are uncoordinated. All methods are safe for concurrent use.
type Throttler[T any] struct {
	wait     time.Duration
	leading  bool
	trailing bool
	clock    clockz.Clock
	fn       func(T)

	mu         sync.Mutex
	pending    bool
	pendingArg T
	lastInvoke time.Time
	armed      bool
	stopped    bool
	timer      clockz.Timer
}

// NewThrottler creates a Throttler that invokes f according to wait and the
// given options. If neither Leading nor Trailing is given, both are enabled.
// A wait of zero or less disables throttling entirely, making every call
// invoke f directly.
func NewThrottler[T any](
	wait time.Duration,
	f func(T),
	opts ...Option,
) *Throttler[T] {
	var s settings
	s.apply(opts)

	return newThrottler(wait, f, s)
}

func newThrottler[T any](
	wait time.Duration,
	f func(T),
	s settings,
) *Throttler[T] {
	if wait < 0 {
		wait = 0
	}
	if !s.edges {
		s.leading = true
		s.trailing = true
	}
	if s.clock == nil {
		s.clock = clockz.RealClock
	}

	t := &Throttler[T]{
		wait:     wait,
		leading:  s.leading,
		trailing: s.trailing,
		clock:    s.clock,
		fn:       f,
	}
	t.timer = stoppedTimer(t.clock, t.windowExpired)

	return t
}

// Invoke records v as the pending arguments and either invokes f, schedules
// a trailing invocation for the end of the current window, or drops the call
// if the window is open and the trailing edge is disabled.
func (t *Throttler[T]) Invoke(v T) {
	t.mu.Lock()

	if t.stopped {
		t.mu.Unlock()
		return
	}

	if t.wait <= 0 {
		f := t.fn
		t.mu.Unlock()
		f(v)

		return
	}

	t.pendingArg, t.pending = v, true

	now := t.clock.Now()

	// A zero lastInvoke (never invoked, or reset by Cancel) and a clock
	// that moved backwards both count as a fresh window.
	elapsed := t.wait
	if !t.lastInvoke.IsZero() {
		if e := now.Sub(t.lastInvoke); e >= 0 && e < t.wait {
			elapsed = e
		}
	}

	var run bool
	var arg T
	switch {
	case elapsed >= t.wait:
		if t.leading {
			arg = t.takeLocked()
			t.lastInvoke = now
			run = true
		} else if t.trailing && !t.armed {
			t.timer.Reset(t.wait)
			t.armed = true
		}
	case t.trailing:
		// Inside the window. One timer fires at the end of it; calls
		// arriving meanwhile only overwrite the pending arguments.
		if !t.armed {
			t.timer.Reset(t.wait - elapsed)
			t.armed = true
		}
	default:
		// Inside the window with the trailing edge disabled: the call is
		// dropped outright.
		t.takeLocked()
	}

	f := t.fn
	t.mu.Unlock()

	if run {
		f(arg)
	}
}

// Flush immediately invokes f with the pending arguments, clears the
// trailing timer, and advances the rate window. If nothing is pending, Flush
// is a no-op.
func (t *Throttler[T]) Flush() {
	t.mu.Lock()

	if t.stopped || !t.pending {
		t.mu.Unlock()
		return
	}

	arg := t.takeLocked()
	t.timer.Stop()
	t.armed = false
	t.lastInvoke = t.clock.Now()
	f := t.fn
	t.mu.Unlock()

	f(arg)
}

// Cancel discards any pending invocation and resets the rate window, so the
// next call is treated as a fresh first call. Calling Cancel with nothing
// pending is a no-op beyond the window reset.
func (t *Throttler[T]) Cancel() {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.clearLocked()
}

// IsPending reports whether a trailing invocation is currently queued.
func (t *Throttler[T]) IsPending() bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	return t.pending
}

// Stop cancels any pending invocation and permanently disables the
// Throttler. Further calls to Invoke are no-ops.
func (t *Throttler[T]) Stop() {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.stopped = true
	t.clearLocked()
}

// windowExpired is called when the trailing timer fires. It invokes f with
// the latest pending arguments and starts the next rate window.
func (t *Throttler[T]) windowExpired() {
	t.mu.Lock()

	t.armed = false

	if t.stopped || !t.pending {
		t.mu.Unlock()
		return
	}

	arg := t.takeLocked()
	t.lastInvoke = t.clock.Now()
	f := t.fn
	t.mu.Unlock()

	f(arg)
}

// takeLocked clears and returns the pending arguments. It must only be
// called while the mutex is held.
func (t *Throttler[T]) takeLocked() T {
	arg := t.pendingArg

	var zero T
	t.pendingArg = zero
	t.pending = false

	return arg
}

// clearLocked stops the trailing timer, discards any pending arguments, and
// zeroes the rate window. It must only be called while the mutex is held.
func (t *Throttler[T]) clearLocked() {
	t.timer.Stop()
	t.armed = false
	t.lastInvoke = time.Time{}

	if t.pending {
		t.takeLocked()
	}
}
