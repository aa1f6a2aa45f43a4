package table

import (
	"time"

	"scrolltable/internal/future"
)

// RenderPollInterval is how often the gate re-checks visibility.
const RenderPollInterval = 100 * time.Millisecond

// Gate infers render completion by polling the surface's visibility. The
// host gives no paint-complete callback, so this is a best-effort heuristic
// with no latency bound.
type Gate struct {
	surface  Surface
	sched    Scheduler
	interval time.Duration
}

// NewGate returns a gate polling surface every interval.
func NewGate(surface Surface, sched Scheduler, interval time.Duration) *Gate {
	if interval <= 0 {
		interval = RenderPollInterval
	}
	return &Gate{surface: surface, sched: sched, interval: interval}
}

// WaitForRender returns a new future that resolves once the table is visible.
// The first check is deferred to the scheduler; every call polls on its own.
func (g *Gate) WaitForRender() *future.Future {
	rendered := future.New()
	var check func()
	check = func() {
		if g.surface.TableVisible() {
			rendered.Resolve()
			return
		}
		g.sched.AfterFunc(g.interval, check)
	}
	g.sched.AfterFunc(0, check)
	return rendered
}
