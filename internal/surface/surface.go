// Package surface describes the host primitives the motion engine reads:
// viewport and element geometry, scroll and pointer streams, frame
// scheduling and timers. Nothing in the engine depends on a particular
// rendering framework, only on these interfaces.
//
// All units are document pixels. The terminal host maps cells to pixels
// before feeding the surface.
package surface

import "time"

// Point is a position in viewport pixels.
type Point struct {
	X float64
	Y float64
}

// Viewport is the visible window size.
type Viewport struct {
	Width  float64
	Height float64
}

// Rect is an element's geometry. Measure returns document-relative rects;
// section resolution works on viewport-relative ones.
type Rect struct {
	Left   float64
	Top    float64
	Width  float64
	Height float64
}

// Right is the rect's right edge.
func (r Rect) Right() float64 { return r.Left + r.Width }

// Bottom is the rect's bottom edge.
func (r Rect) Bottom() float64 { return r.Top + r.Height }

// CenterY is the rect's vertical center.
func (r Rect) CenterY() float64 { return r.Top + r.Height/2 }

// Contains reports whether p lies inside the half-open rect.
func (r Rect) Contains(p Point) bool {
	return p.X >= r.Left && p.X < r.Right() && p.Y >= r.Top && p.Y < r.Bottom()
}

// Offset returns the rect translated by (dx, dy).
func (r Rect) Offset(dx, dy float64) Rect {
	r.Left += dx
	r.Top += dy
	return r
}

// PointerKind identifies a pointer event.
type PointerKind uint8

const (
	PointerMove PointerKind = iota
	PointerDown
	PointerUp
	PointerLeave
)

func (k PointerKind) String() string {
	switch k {
	case PointerMove:
		return "move"
	case PointerDown:
		return "down"
	case PointerUp:
		return "up"
	case PointerLeave:
		return "leave"
	default:
		return "unknown"
	}
}

// PointerEvent is one pointer sample in viewport coordinates.
type PointerEvent struct {
	Kind PointerKind
	Pos  Point
	At   time.Time
}

// Geometry is the measurement half of the host.
type Geometry interface {
	Viewport() Viewport
	ScrollY() float64
	DocumentHeight() float64
	// Measure returns the document-relative rect for an element handle.
	// ok is false when the element is not mounted.
	Measure(handle string) (r Rect, ok bool)
}

// Events is the scheduling half of the host. Every registration returns
// a cancel func; cancel funcs are idempotent.
type Events interface {
	OnScroll(fn func(y float64)) (cancel func())
	OnResize(fn func(vp Viewport)) (cancel func())
	OnPointer(fn func(ev PointerEvent)) (cancel func())
	// RequestFrame schedules fn once, on the next animation frame.
	RequestFrame(fn func(now time.Time)) (cancel func())
	AfterFunc(d time.Duration, fn func()) (cancel func())
	Now() time.Time
}

// History updates the addressable fragment without navigating.
type History interface {
	ReplaceFragment(id string)
	Fragment() string
}

// Host bundles the three halves.
type Host interface {
	Geometry
	Events
	History
}
