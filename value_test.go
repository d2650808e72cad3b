package delayed

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNewDebouncedValue(t *testing.T) {
	t.Parallel()

	v := NewDebouncedValue("initial", 200*time.Millisecond)
	defer v.Stop()

	assert.Equal(t, "initial", v.Get())

	v.Set("a")
	v.Set("b")
	assert.Equal(t, "initial", v.Get(), "value holds until updates settle")

	time.Sleep(400 * time.Millisecond)
	assert.Equal(t, "b", v.Get(), "settles to the most recent Set")
}

func TestNewThrottledValue(t *testing.T) {
	t.Parallel()

	v := NewThrottledValue(0, 300*time.Millisecond)
	defer v.Stop()

	v.Set(1)
	assert.Equal(t, 1, v.Get(), "first Set accepted on the leading edge")

	v.Set(2)
	v.Set(3)
	assert.Equal(t, 1, v.Get(), "updates inside the window coalesce")

	time.Sleep(500 * time.Millisecond)
	assert.Equal(t, 3, v.Get(), "latest update accepted on the trailing edge")
}

func TestValue_flushAndCancel(t *testing.T) {
	t.Parallel()

	v := NewDebouncedValue("current", time.Hour)
	defer v.Stop()

	v.Set("next")
	assert.Equal(t, "current", v.Get())

	v.Flush()
	assert.Equal(t, "next", v.Get())

	v.Set("discarded")
	v.Cancel()
	assert.Equal(t, "next", v.Get())
}

func TestValue_stop(t *testing.T) {
	t.Parallel()

	v := NewThrottledValue("only", time.Hour, Trailing())
	v.Set("pending")
	v.Stop()

	// Pending update is discarded and further Sets are ignored.
	v.Set("ignored")
	assert.Equal(t, "only", v.Get())
}
