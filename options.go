package delayed

import (
	"time"

	"github.com/zoobzio/clockz"
)

// Option configures a Debouncer or Throttler at creation time.
type Option func(*settings)

// settings holds the resolved configuration shared by both invoker kinds.
// edges records whether any edge option was given, so constructors know when
// to apply mode-specific defaults.
type settings struct {
	leading  bool
	trailing bool
	edges    bool
	maxWait  time.Duration
	clock    clockz.Clock
}

func (s *settings) apply(opts []Option) {
	for _, opt := range opts {
		opt(s)
	}
}

// Leading returns an option that enables the leading edge, causing the first
// call of a burst to invoke the function immediately.
//
// When only leading is used, a burst of calls immediately invokes the
// function, and any subsequent calls are ignored until the wait duration has
// passed.
func Leading() Option {
	return func(s *settings) {
		s.leading = true
		s.edges = true
	}
}

// Trailing returns an option that enables the trailing edge, causing the
// function to be invoked with the most recent arguments once the wait
// duration has passed.
//
// If both Leading and Trailing are used, a burst of calls immediately invokes
// the function, followed by another invocation at the end of the burst. If
// only a single call is made, only one invocation occurs.
func Trailing() Option {
	return func(s *settings) {
		s.trailing = true
		s.edges = true
	}
}

// MaxWait returns an option that places an upper bound on how long a
// debounced invocation can be deferred. Even if calls keep arriving within
// the wait duration, the function is invoked once maxWait has elapsed since
// the first call of the burst.
//
// Without a max wait, a debounced function might never be invoked if it is
// called repeatedly within the wait duration. MaxWait is ignored by
// throttlers, which already guarantee periodic invocation.
func MaxWait(maxWait time.Duration) Option {
	return func(s *settings) {
		s.maxWait = maxWait
	}
}

// WithClock returns an option that sets the clock used for timestamps and
// timers. The default is clockz.RealClock. A fake clock can be injected for
// deterministic testing.
func WithClock(c clockz.Clock) Option {
	return func(s *settings) {
		s.clock = c
	}
}
