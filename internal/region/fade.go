package region

import (
	"github.com/olivier-w/folio/internal/progress"
	"github.com/olivier-w/folio/internal/surface"
)

// Fade tracks one progress window and maps it through a curve. It reacts
// to scroll and resize only; it never needs a frame loop.
type Fade struct {
	hooks
	host  surface.Host
	src   *progress.Source
	curve func(float64) float64
	state progress.State
}

// NewFade creates a fade over rng. A nil curve reports raw progress.
func NewFade(host surface.Host, rng progress.Range, curve func(float64) float64) *Fade {
	if curve == nil {
		curve = progress.Linear
	}
	return &Fade{host: host, src: progress.New(rng), curve: curve}
}

func (f *Fade) Start() {
	if f.running {
		return
	}
	f.running = true
	f.add(f.host.OnScroll(func(y float64) { f.state = f.src.Update(y) }))
	f.add(f.host.OnResize(func(surface.Viewport) { f.Remeasure() }))
	f.Remeasure()
}

func (f *Fade) Stop() {
	if !f.running {
		return
	}
	f.release()
}

// Remeasure re-resolves the window, for example after content loads.
func (f *Fade) Remeasure() {
	f.state = f.src.Remeasure(f.host)
}

// Progress is the raw [0,1] progress.
func (f *Fade) Progress() float64 { return f.state.Value }

// Value is the progress mapped through the curve.
func (f *Fade) Value() float64 { return f.curve(f.state.Value) }
