package progress

import "github.com/olivier-w/folio/internal/surface"

// Range is where a progress window starts and ends. It is a closed set of
// variants: PixelRange, ElementRange, PageRange and TransitRange.
type Range interface {
	resolve(g surface.Geometry) (Bounds, bool)
}

// PixelRange is a fixed window in document pixels.
type PixelRange struct {
	Start float64
	End   float64
}

// ElementRange is a window expressed as fractions of an element's height,
// measured from its document top. Fractions may be negative or greater
// than one so a fade can begin or end outside the element itself.
type ElementRange struct {
	Handle    string
	StartFrac float64
	EndFrac   float64
}

// PageRange spans the whole scrollable document.
type PageRange struct{}

// TransitRange runs from the moment the element's top reaches the bottom
// of the viewport until its bottom leaves through the top.
type TransitRange struct {
	Handle string
}

// Bounds is a resolved window. End is always at least Start+1.
type Bounds struct {
	Start float64
	End   float64
}

func newBounds(start, end float64) Bounds {
	if end-start < 1 {
		end = start + 1
	}
	return Bounds{Start: start, End: end}
}

// Width is End-Start, never below 1.
func (b Bounds) Width() float64 { return b.End - b.Start }

func (r PixelRange) resolve(surface.Geometry) (Bounds, bool) {
	return newBounds(r.Start, r.End), true
}

func (r ElementRange) resolve(g surface.Geometry) (Bounds, bool) {
	if g == nil {
		return Bounds{}, false
	}
	rect, ok := g.Measure(r.Handle)
	if !ok {
		return Bounds{}, false
	}
	h := rect.Height
	if h <= 0 {
		h = 1
	}
	return newBounds(rect.Top+h*r.StartFrac, rect.Top+h*r.EndFrac), true
}

func (PageRange) resolve(g surface.Geometry) (Bounds, bool) {
	if g == nil {
		return Bounds{}, false
	}
	return newBounds(0, g.DocumentHeight()-g.Viewport().Height), true
}

func (r TransitRange) resolve(g surface.Geometry) (Bounds, bool) {
	if g == nil {
		return Bounds{}, false
	}
	rect, ok := g.Measure(r.Handle)
	if !ok {
		return Bounds{}, false
	}
	return newBounds(rect.Top-g.Viewport().Height, rect.Bottom()), true
}
