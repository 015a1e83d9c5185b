// Package metrics gates go-metrics collection behind a process-wide switch.
// Collectors are declared up front and register themselves in the default
// registry the first time they are used while collection is enabled.
package metrics

import (
	"io"
	"os"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/rcrowley/go-metrics"
)

// EnabledFlag is the command line flag that turns collection on at startup.
const EnabledFlag = "metrics"

var enabled atomic.Bool

func init() {
	if len(os.Args) > 1 && flagged(os.Args[1:]) {
		enabled.Store(true)
	}
}

// flagged reports whether args carry -metrics or --metrics. Positional
// arguments never match.
func flagged(args []string) bool {
	for _, arg := range args {
		if !strings.HasPrefix(arg, "-") {
			continue
		}
		if strings.TrimLeft(arg, "-") == EnabledFlag {
			return true
		}
	}
	return false
}

// Enable turns collection on for every collector, including existing ones.
func Enable() {
	enabled.Store(true)
}

// Enabled reports whether collection is on.
func Enabled() bool {
	return enabled.Load()
}

// Counter is a go-metrics counter that is a no-op while collection is off.
type Counter struct {
	name    string
	once    sync.Once
	counter metrics.Counter
}

// NewCounter declares a counter registered under name on first enabled use.
func NewCounter(name string) *Counter {
	return &Counter{name: name}
}

func (c *Counter) resolve() metrics.Counter {
	c.once.Do(func() {
		c.counter = metrics.GetOrRegisterCounter(c.name, metrics.DefaultRegistry)
	})
	return c.counter
}

// Inc adds n to the counter.
func (c *Counter) Inc(n int64) {
	if !Enabled() {
		return
	}
	c.resolve().Inc(n)
}

// Count returns the current count, zero while collection is off.
func (c *Counter) Count() int64 {
	if !Enabled() {
		return 0
	}
	return c.resolve().Count()
}

// Meter is a go-metrics meter that is a no-op while collection is off.
type Meter struct {
	name  string
	once  sync.Once
	meter metrics.Meter
}

// NewMeter declares a meter registered under name on first enabled use.
func NewMeter(name string) *Meter {
	return &Meter{name: name}
}

func (m *Meter) resolve() metrics.Meter {
	m.once.Do(func() {
		m.meter = metrics.GetOrRegisterMeter(m.name, metrics.DefaultRegistry)
	})
	return m.meter
}

// Mark records n events.
func (m *Meter) Mark(n int64) {
	if !Enabled() {
		return
	}
	m.resolve().Mark(n)
}

// Count returns the number of events marked, zero while collection is off.
func (m *Meter) Count() int64 {
	if !Enabled() {
		return 0
	}
	return m.resolve().Count()
}

// WriteOnce dumps every registered collector to w.
func WriteOnce(w io.Writer) {
	metrics.WriteOnce(metrics.DefaultRegistry, w)
}
