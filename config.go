package delayed

import (
	"time"

	"github.com/zoobzio/clockz"
)

// Mode selects the invocation policy of an Invoker.
type Mode int

const (
	// ModeDebounce defers invocation until a quiet period of Wait has
	// elapsed since the last call.
	ModeDebounce Mode = iota

	// ModeThrottle caps invocation frequency to at most once per Wait.
	ModeThrottle
)

// String returns the name of the mode.
func (m Mode) String() string {
	switch m {
	case ModeThrottle:
		return "throttle"
	default:
		return "debounce"
	}
}

// Config describes a full invoker configuration. It is the explicit
// counterpart to the bare-delay constructors, for callers that build
// configuration dynamically rather than through options.
//
// If neither Leading nor Trailing is set, mode defaults apply: debounce
// enables trailing only, throttle enables both leading and trailing. A
// negative Wait is treated as zero, which makes every call invoke the
// function directly. MaxWait only applies to ModeDebounce and is disabled
// when zero or negative. A nil Clock means clockz.RealClock.
type Config struct {
	Mode     Mode
	Wait     time.Duration
	Leading  bool
	Trailing bool
	MaxWait  time.Duration
	Clock    clockz.Clock
}

// settings converts the config into the internal form consumed by the
// invoker constructors.
func (c Config) settings() settings {
	return settings{
		leading:  c.Leading,
		trailing: c.Trailing,
		edges:    c.Leading || c.Trailing,
		maxWait:  c.MaxWait,
		clock:    c.Clock,
	}
}
