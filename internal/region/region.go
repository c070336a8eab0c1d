// Package region wires the motion engine to a host surface. Each tracked
// area of the page is one controller that owns its listeners, timers and
// frame request, and releases all of them on Stop.
package region

import (
	"time"

	"github.com/olivier-w/folio/internal/surface"
)

// FPS is the frame rate fixed-step springs are built for. Hosts should
// deliver frames at this rate.
const FPS = 60

// FrameInterval is the nominal time between frames.
const FrameInterval = time.Second / FPS

// Region is a tracked area with an owned lifecycle. Start after Start
// and Stop after Stop are no-ops.
type Region interface {
	Start()
	Stop()
	Running() bool
}

// hooks collects cancel funcs for one running region.
type hooks struct {
	cancels []func()
	running bool
}

func (h *hooks) add(cancel func()) { h.cancels = append(h.cancels, cancel) }

func (h *hooks) release() {
	for i := len(h.cancels) - 1; i >= 0; i-- {
		h.cancels[i]()
	}
	h.cancels = nil
	h.running = false
}

// Running reports whether the region is started.
func (h *hooks) Running() bool { return h.running }

// frameLoop requests one frame at a time and re-requests after each
// callback until stopped.
type frameLoop struct {
	events surface.Events
	fn     func(now time.Time, dt time.Duration)
	cancel func()
	active bool
	last   time.Time
}

func newFrameLoop(ev surface.Events, fn func(time.Time, time.Duration)) frameLoop {
	return frameLoop{events: ev, fn: fn}
}

func (f *frameLoop) start() {
	if f.active {
		return
	}
	f.active = true
	f.last = time.Time{}
	f.request()
}

func (f *frameLoop) request() {
	f.cancel = f.events.RequestFrame(f.tick)
}

func (f *frameLoop) tick(now time.Time) {
	f.cancel = nil
	dt := FrameInterval
	if !f.last.IsZero() {
		dt = now.Sub(f.last)
	}
	f.last = now
	f.fn(now, dt)
	if f.active && f.cancel == nil {
		f.request()
	}
}

func (f *frameLoop) stop() {
	f.active = false
	if f.cancel != nil {
		f.cancel()
		f.cancel = nil
	}
}

func (f *frameLoop) running() bool { return f.active }

// timer is a restartable one-shot. A callback from an older schedule
// never runs, even when the host fires it late.
type timer struct {
	events surface.Events
	cancel func()
	gen    uint64
}

func (t *timer) reset(d time.Duration, fn func()) {
	t.stop()
	gen := t.gen
	t.cancel = t.events.AfterFunc(d, func() {
		if gen != t.gen {
			return
		}
		t.cancel = nil
		fn()
	})
}

func (t *timer) stop() {
	t.gen++
	if t.cancel != nil {
		t.cancel()
		t.cancel = nil
	}
}

func (t *timer) pending() bool { return t.cancel != nil }

// viewportRect converts a cached document rect into viewport coordinates.
func viewportRect(r surface.Rect, scrollY float64) surface.Rect {
	return r.Offset(0, -scrollY)
}
