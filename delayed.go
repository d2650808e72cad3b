// Package delayed provides debounce and throttle primitives that collapse
// rapid bursts of calls into a bounded number of invocations.
//
// Debouncing defers invocation until a quiet period has elapsed since the
// last call, which is useful when calls may be triggered rapidly, such as in
// response to user input, but the underlying operation is expensive and only
// needs to be performed once per batch of calls. Throttling instead caps
// invocation frequency to at most once per interval, which is useful for
// periodic work like progress reporting or scroll handling.
//
// Both primitives support leading and trailing edge invocation, carry the
// most recent argument payload to the invoked function (later calls
// overwrite earlier pending ones, there is no queueing), and expose Flush,
// Cancel, IsPending and Stop as escape hatches.
package delayed

import (
	"time"
)

// Invoker is the interface shared by Debouncer and Throttler.
//
// All methods are safe for concurrent use. The wrapped function runs on the
// goroutine that triggered the invocation: the caller of Invoke or Flush for
// immediate paths, or the timer goroutine for deferred paths. Internal state
// is fully settled before the function runs, so a function that panics, or
// that calls back into the same Invoker, cannot corrupt it.
type Invoker[T any] interface {
	// Invoke records v as the pending arguments and invokes, schedules or
	// coalesces an invocation of the wrapped function according to the
	// configured policy.
	Invoke(v T)

	// Flush immediately invokes the wrapped function with the pending
	// arguments, if any, and clears all timers. It is a no-op when nothing
	// is pending.
	Flush()

	// Cancel discards any pending invocation without invoking the wrapped
	// function, and resets the invoker so the next call starts a fresh
	// window. It is a no-op when nothing is pending.
	Cancel()

	// IsPending reports whether an invocation is currently queued.
	IsPending() bool

	// Stop cancels any pending invocation and permanently disables the
	// invoker; further calls to Invoke are no-ops. It must be called when
	// the owner is done with the invoker, otherwise up to one timer per
	// outstanding pending call is leaked.
	Stop()
}

// NewInvoker returns an Invoker for the given config and function, selecting
// the implementation from conf.Mode.
func NewInvoker[T any](conf Config, f func(T)) Invoker[T] {
	if conf.Mode == ModeThrottle {
		return newThrottler(conf.Wait, f, conf.settings())
	}

	return newDebouncer(conf.Wait, f, conf.settings())
}

// Debounce returns a debounced function that delays invoking f until after
// wait time has elapsed since the last time the debounced function was
// called, along with a cancel function that discards any pending invocation.
//
// This is the bare-delay shorthand over NewDebouncer for functions without
// arguments. By default only the trailing edge is enabled; use Leading and
// Trailing to change the edges.
//
// Both returned functions are safe for concurrent use and can be called
// multiple times. The cancel function is not required to be called, so it
// can be ignored if not needed, but doing so may leak a pending timer.
func Debounce(
	wait time.Duration,
	f func(),
	opts ...Option,
) (debounced func(), cancel func()) {
	d := NewDebouncer(wait, func(struct{}) { f() }, opts...)

	return func() { d.Invoke(struct{}{}) }, d.Cancel
}

// Throttle returns a throttled function that invokes f at most once per wait
// interval, along with a cancel function that discards any pending trailing
// invocation.
//
// This is the bare-delay shorthand over NewThrottler for functions without
// arguments. By default both the leading and trailing edges are enabled; use
// Leading and Trailing to change the edges.
//
// Both returned functions are safe for concurrent use and can be called
// multiple times. The cancel function is not required to be called, so it
// can be ignored if not needed, but doing so may leak a pending timer.
func Throttle(
	wait time.Duration,
	f func(),
	opts ...Option,
) (throttled func(), cancel func()) {
	t := NewThrottler(wait, func(struct{}) { f() }, opts...)

	return func() { t.Invoke(struct{}{}) }, t.Cancel
}
