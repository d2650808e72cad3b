package delayed

import (
	"time"

	"github.com/zoobzio/clockz"
)

const longDelay = 24 * time.Hour

// stoppedTimer returns a stopped clockz.Timer created with AfterFunc on the
// given clock. The given function is not called until the timer is armed with
// Reset.
func stoppedTimer(c clockz.Clock, f func()) clockz.Timer {
	t := c.AfterFunc(longDelay, f)
	t.Stop()

	return t
}
