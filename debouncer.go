package delayed

import (
	"sync"
	"time"

	"github.com/zoobzio/clockz"
)

// Debouncer invokes a function once a quiet period of wait has elapsed since
// the last call, carrying the arguments of the most recent call. With the
// leading edge enabled, the first call of a burst invokes immediately. An
// optional max wait bounds how long invocation can be deferred under
// sustained activity.
//
// A Debouncer owns its state exclusively; independent instances wrapping the
// same function are uncoordinated. All methods are safe for concurrent use.
type Debouncer[T any] struct {
	wait     time.Duration
	maxWait  time.Duration
	leading  bool
	trailing bool
	clock    clockz.Clock
	fn       func(T)

	mu         sync.Mutex
	pending    bool
	pendingArg T
	settling   bool // settle timer armed; the leading edge is gated on this
	maxArmed   bool
	stopped    bool
	timer      clockz.Timer
	maxTimer   clockz.Timer
}

// NewDebouncer creates a Debouncer that invokes f according to wait and the
// given options. If neither Leading nor Trailing is given, trailing is
// enabled. A wait of zero or less disables debouncing entirely, making every
// call invoke f directly.
func NewDebouncer[T any](
	wait time.Duration,
	f func(T),
	opts ...Option,
) *Debouncer[T] {
	var s settings
	s.apply(opts)

	return newDebouncer(wait, f, s)
}

func newDebouncer[T any](
	wait time.Duration,
	f func(T),
	s settings,
) *Debouncer[T] {
	if wait < 0 {
		wait = 0
	}
	if s.maxWait < 0 {
		s.maxWait = 0
	}
	if !s.edges {
		s.trailing = true
	}
	if s.clock == nil {
		s.clock = clockz.RealClock
	}

	d := &Debouncer[T]{
		wait:     wait,
		maxWait:  s.maxWait,
		leading:  s.leading,
		trailing: s.trailing,
		clock:    s.clock,
		fn:       f,
	}
	d.timer = stoppedTimer(d.clock, d.settleExpired)
	d.maxTimer = stoppedTimer(d.clock, d.ceilingExpired)

	return d
}

// Invoke records v as the pending arguments and restarts the settle window.
// With the leading edge enabled and no window open, f is invoked immediately
// with v.
func (d *Debouncer[T]) Invoke(v T) {
	d.mu.Lock()

	if d.stopped {
		d.mu.Unlock()
		return
	}

	if d.wait <= 0 {
		f := d.fn
		d.mu.Unlock()
		f(v)

		return
	}

	d.pendingArg, d.pending = v, true

	var lead bool
	var arg T
	if d.leading && !d.settling {
		arg = d.takeLocked()
		lead = true
	}

	// Every call restarts the settle window, even when the leading edge
	// consumed the arguments; the window closing is what re-arms the
	// leading edge.
	d.timer.Reset(d.wait)
	d.settling = true

	// The max wait ceiling is anchored to the first call of the burst that
	// left arguments pending. It is not renewed by subsequent calls, and a
	// leading invocation never arms it for the arguments it consumed.
	if d.maxWait > 0 && d.pending && !d.maxArmed {
		d.maxTimer.Reset(d.maxWait)
		d.maxArmed = true
	}

	// A snapshot that neither the trailing edge nor the ceiling will ever
	// consume is discarded now, so IsPending does not report a call that
	// cannot fire.
	if d.pending && !d.trailing && d.maxWait <= 0 {
		d.takeLocked()
	}

	f := d.fn
	d.mu.Unlock()

	if lead {
		f(arg)
	}
}

// Flush immediately invokes f with the pending arguments and clears all
// timers. If nothing is pending, for example because the leading edge
// already consumed the only call of the burst, Flush is a no-op.
func (d *Debouncer[T]) Flush() {
	d.mu.Lock()

	if d.stopped || !d.pending {
		d.mu.Unlock()
		return
	}

	arg := d.takeLocked()
	d.timer.Stop()
	d.maxTimer.Stop()
	d.settling = false
	d.maxArmed = false
	f := d.fn
	d.mu.Unlock()

	f(arg)
}

// Cancel discards any pending invocation and closes the settle window, so
// the next call is treated as the start of a fresh burst. Calling Cancel
// with nothing pending is a no-op.
func (d *Debouncer[T]) Cancel() {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.clearLocked()
}

// IsPending reports whether an invocation is currently queued.
func (d *Debouncer[T]) IsPending() bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	return d.pending
}

// Stop cancels any pending invocation and permanently disables the
// Debouncer. Further calls to Invoke are no-ops.
func (d *Debouncer[T]) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.stopped = true
	d.clearLocked()
}

// settleExpired is called when the settle timer fires, closing the current
// window. It invokes f on the trailing edge if new arguments arrived since
// the leading invocation, and otherwise only resets burst state.
func (d *Debouncer[T]) settleExpired() {
	d.mu.Lock()

	d.settling = false

	run := !d.stopped && d.trailing && d.pending
	var arg T
	if run {
		arg = d.takeLocked()
	} else if d.pending {
		// Trailing invocations are disabled; the burst is over, so the
		// snapshot is discarded and the leading edge re-arms.
		d.takeLocked()
	}
	d.maxTimer.Stop()
	d.maxArmed = false
	f := d.fn
	d.mu.Unlock()

	if run {
		f(arg)
	}
}

// ceilingExpired is called when the max wait timer fires. It forces an
// invocation with whatever is pending, guaranteeing execution under
// sustained activity. The settle timer stays armed and later closes the
// window without re-invoking, since nothing is pending by then.
func (d *Debouncer[T]) ceilingExpired() {
	d.mu.Lock()

	d.maxArmed = false

	if d.stopped || !d.pending {
		d.mu.Unlock()
		return
	}

	arg := d.takeLocked()
	f := d.fn
	d.mu.Unlock()

	f(arg)
}

// takeLocked clears and returns the pending arguments. It must only be
// called while the mutex is held and pending is true.
func (d *Debouncer[T]) takeLocked() T {
	arg := d.pendingArg

	var zero T
	d.pendingArg = zero
	d.pending = false

	return arg
}

// clearLocked stops all timers and discards any pending arguments. It must
// only be called while the mutex is held.
func (d *Debouncer[T]) clearLocked() {
	d.timer.Stop()
	d.maxTimer.Stop()
	d.settling = false
	d.maxArmed = false

	if d.pending {
		d.takeLocked()
	}
}
