package delayed

import (
	"flag"
	"fmt"
	"os"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

var maxRetries = flag.Int("max-retries", 0, "Maximum number of retries")

// Due to the timing-based nature of the test suite, we want to support
// automatically retrying the tests a few times to avoid flakiness.
func TestMain(m *testing.M) {
	flag.Parse()

	code := m.Run()

	for i := 0; code != 0 && i < *maxRetries; i++ {
		fmt.Fprintf(os.Stderr,
			"===\n=== WARN  Tests failed, retrying (%d/%d)...\n===\n",
			i+1, *maxRetries,
		)
		code = m.Run()
	}

	os.Exit(code)
}

// recorder collects invocation arguments and times, in milliseconds relative
// to the start of the timeline.
type recorder struct {
	mu    sync.Mutex
	start time.Time
	args  []int
	times []int64
}

func (r *recorder) invoke(v int) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.args = append(r.args, v)
	r.times = append(r.times, time.Since(r.start).Milliseconds())
}

func (r *recorder) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	return len(r.args)
}

func (r *recorder) snapshot() (args []int, times []int64) {
	r.mu.Lock()
	defer r.mu.Unlock()

	return append([]int(nil), r.args...), append([]int64(nil), r.times...)
}

// timelineCase describes a sequence of operations against a single invoker
// at millisecond offsets, along with expected invocation counts at check
// points and the expected final arguments and times.
type timelineCase struct {
	name     string
	build    func(f func(int)) Invoker[int]
	calls    map[int64]int // offset ms -> argument
	cancels  []int64
	flushes  []int64
	checks   map[int64]int // offset ms -> want invocation count so far
	wantArgs []int
	wantAt   []int64 // approximate invocation times, in order
	margin   int64
	settle   time.Duration // extra wait after the last event
}

func runTimelines(t *testing.T, tests []timelineCase) {
	t.Helper()

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			rec := &recorder{}
			inv := tt.build(rec.invoke)
			defer inv.Stop()

			type event struct {
				at  int64
				run func()
			}

			var events []event
			for at, arg := range tt.calls {
				arg := arg
				events = append(events, event{at, func() {
					inv.Invoke(arg)
				}})
			}
			for _, at := range tt.cancels {
				events = append(events, event{at, inv.Cancel})
			}
			for _, at := range tt.flushes {
				events = append(events, event{at, inv.Flush})
			}
			for at, want := range tt.checks {
				at, want := at, want
				events = append(events, event{at, func() {
					assert.Equal(t, want, rec.count(),
						"invocations at %dms", at)
				}})
			}
			sort.Slice(events, func(i, j int) bool {
				return events[i].at < events[j].at
			})

			rec.start = time.Now()
			for _, ev := range events {
				sleepUntil(rec.start, ev.at)
				ev.run()
			}

			settle := tt.settle
			if settle == 0 {
				settle = 600 * time.Millisecond
			}
			time.Sleep(settle)

			args, times := rec.snapshot()
			if tt.wantArgs != nil {
				assert.Equal(t, tt.wantArgs, args, "invocation args")
			}
			if tt.wantAt != nil {
				margin := tt.margin
				if margin == 0 {
					margin = 50
				}
				if assert.Len(t, times, len(tt.wantAt), "invocation count") {
					for i, want := range tt.wantAt {
						assert.InDelta(t, want, times[i], float64(margin),
							"time of invocation %d", i)
					}
				}
			}
		})
	}
}

func sleepUntil(start time.Time, offsetMS int64) {
	if d := time.Duration(offsetMS)*time.Millisecond - time.Since(start); d > 0 {
		time.Sleep(d)
	}
}
