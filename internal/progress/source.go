// Package progress turns a scroll position into a normalized [0,1]
// progress value over a configurable window.
package progress

import (
	"math"

	"github.com/olivier-w/folio/internal/surface"
	"github.com/olivier-w/folio/internal/util"
)

// State is the output of one update.
type State struct {
	Value    float64 // always in [0,1]
	RawDelta float64 // scroll movement since the previous update
}

// Source tracks progress through one Range. Geometry is measured only by
// Resolve; Update reads nothing but the scroll position it is given.
type Source struct {
	rng    Range
	offset float64
	bounds Bounds
	ok     bool
	state  State
	last   float64
	primed bool
}

// Option configures a Source.
type Option func(*Source)

// WithOffset shifts the scroll position by px before normalizing.
func WithOffset(px float64) Option {
	return func(s *Source) { s.offset = px }
}

// New creates a Source. Pixel ranges need no geometry and are resolved
// immediately; every other variant reports progress 0 until Resolve
// finds its element.
func New(r Range, opts ...Option) *Source {
	s := &Source{rng: r}
	for _, opt := range opts {
		opt(s)
	}
	if pr, ok := r.(PixelRange); ok {
		s.bounds, s.ok = pr.resolve(nil)
	}
	return s
}

// Resolve re-measures the range. Call it on resize and after layout
// shifts, never on scroll.
func (s *Source) Resolve(g surface.Geometry) (Bounds, bool) {
	if s.rng == nil {
		s.bounds, s.ok = Bounds{}, false
		return s.bounds, s.ok
	}
	s.bounds, s.ok = s.rng.resolve(g)
	return s.bounds, s.ok
}

// Remeasure resolves the range and recomputes progress from the current
// scroll position.
func (s *Source) Remeasure(g surface.Geometry) State {
	s.Resolve(g)
	return s.Update(g.ScrollY())
}

// Update recomputes progress for the given scroll position.
func (s *Source) Update(scrollY float64) State {
	delta := 0.0
	if math.IsNaN(scrollY) {
		s.state = State{}
		return s.state
	}
	if s.primed {
		delta = scrollY - s.last
	}
	s.last = scrollY
	s.primed = true

	value := 0.0
	if s.ok {
		value = s.bounds.At(scrollY + s.offset)
	}
	s.state = State{Value: value, RawDelta: delta}
	return s.state
}

// State returns the most recent update.
func (s *Source) State() State { return s.state }

// Bounds returns the last resolved window and whether it is available.
func (s *Source) Bounds() (Bounds, bool) { return s.bounds, s.ok }

// At normalizes pos into the window, clamped to [0,1]. NaN maps to 0.
func (b Bounds) At(pos float64) float64 {
	if math.IsNaN(pos) {
		return 0
	}
	w := b.End - b.Start
	if w < 1 {
		w = 1
	}
	return util.Clamp01((pos - b.Start) / w)
}
