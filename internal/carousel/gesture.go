package carousel

import "time"

// Action is what a drag release does to the window.
type Action int

const (
	SnapBack Action = iota
	GoNext
	GoPrev
)

func (a Action) String() string {
	switch a {
	case GoNext:
		return "next"
	case GoPrev:
		return "prev"
	default:
		return "snap-back"
	}
}

// Gate holds the release thresholds.
type Gate struct {
	Distance float64 `yaml:"distance"` // px
	Velocity float64 `yaml:"velocity"` // px/s
}

// DefaultGate is 100px or 400px/s.
var DefaultGate = Gate{Distance: 100, Velocity: 400}

// Decide maps a release to an action. Dragging left advances.
func (g Gate) Decide(offsetX, velocityX float64) Action {
	if g.Distance <= 0 {
		g.Distance = DefaultGate.Distance
	}
	if g.Velocity <= 0 {
		g.Velocity = DefaultGate.Velocity
	}
	switch {
	case offsetX < -g.Distance || velocityX < -g.Velocity:
		return GoNext
	case offsetX > g.Distance || velocityX > g.Velocity:
		return GoPrev
	default:
		return SnapBack
	}
}

// velocityWindow bounds how far back DragTracker looks when estimating
// release velocity.
const velocityWindow = 100 * time.Millisecond

type dragSample struct {
	x  float64
	at time.Time
}

// DragTracker accumulates horizontal pointer samples for one drag.
type DragTracker struct {
	active  bool
	originX float64
	samples []dragSample
}

// Begin starts a drag at x.
func (d *DragTracker) Begin(x float64, at time.Time) {
	d.active = true
	d.originX = x
	d.samples = append(d.samples[:0], dragSample{x: x, at: at})
}

// Move records a sample. It is ignored when no drag is active.
func (d *DragTracker) Move(x float64, at time.Time) {
	if !d.active {
		return
	}
	d.samples = append(d.samples, dragSample{x: x, at: at})
	// keep only what the velocity window can use, plus one older anchor
	cut := 0
	for i := range d.samples {
		if at.Sub(d.samples[i].at) > velocityWindow {
			cut = i
		}
	}
	if cut > 0 {
		d.samples = append(d.samples[:0], d.samples[cut:]...)
	}
}

// Active reports whether a drag is in progress.
func (d *DragTracker) Active() bool { return d.active }

// Offset is the displacement since Begin.
func (d *DragTracker) Offset() float64 {
	if len(d.samples) == 0 {
		return 0
	}
	return d.samples[len(d.samples)-1].x - d.originX
}

// Velocity is px/s over the recent window.
func (d *DragTracker) Velocity() float64 {
	n := len(d.samples)
	if n < 2 {
		return 0
	}
	last := d.samples[n-1]
	first := d.samples[0]
	for _, s := range d.samples {
		if last.at.Sub(s.at) <= velocityWindow {
			first = s
			break
		}
	}
	dt := last.at.Sub(first.at).Seconds()
	if dt <= 0 {
		return 0
	}
	return (last.x - first.x) / dt
}

// Cancel abandons the drag.
func (d *DragTracker) Cancel() {
	d.active = false
	d.samples = d.samples[:0]
}

// End finishes the drag at x and returns the offset and velocity.
func (d *DragTracker) End(x float64, at time.Time) (offset, velocity float64) {
	if !d.active {
		return 0, 0
	}
	d.Move(x, at)
	offset, velocity = d.Offset(), d.Velocity()
	d.Cancel()
	return offset, velocity
}
