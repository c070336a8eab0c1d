// Package section decides which page section is active for navigation
// highlighting.
package section

import (
	"math"

	"github.com/olivier-w/folio/internal/surface"
)

// Entry is one section in viewport coordinates.
type Entry struct {
	ID     string
	Handle string
	Top    float64
	Bottom float64
}

// Center is the vertical midpoint.
func (e Entry) Center() float64 { return (e.Top + e.Bottom) / 2 }

// Contains reports whether y lies in [Top, Bottom).
func (e Entry) Contains(y float64) bool { return y >= e.Top && y < e.Bottom }

// Rule names the priority rule that produced a resolution.
type Rule uint8

const (
	RuleNone Rule = iota
	RuleEntryOverride
	RuleBottomPin
	RuleContainment
	RuleNearest
)

func (r Rule) String() string {
	switch r {
	case RuleEntryOverride:
		return "entry-override"
	case RuleBottomPin:
		return "bottom-pin"
	case RuleContainment:
		return "containment"
	case RuleNearest:
		return "nearest"
	default:
		return "none"
	}
}

// Input is everything one resolution pass looks at. Rules are tried in
// order: entry override, bottom pin, containment, nearest center.
type Input struct {
	Sections []Entry
	FocusY   float64

	// EntryID names the section that keeps the highlight while its own
	// fade is still running. Empty disables the override.
	EntryID       string
	EntryProgress float64

	// AtBottom pins the last section when the page cannot scroll further.
	AtBottom bool
}

// ResolveActive returns the section containing focusY, or the one whose
// center is nearest to it. Ties go to the first in list order. It
// returns "" only for an empty list.
func ResolveActive(sections []Entry, focusY float64) string {
	id, _ := Resolve(Input{Sections: sections, FocusY: focusY})
	return id
}

// Resolve applies every rule and reports which one decided.
func Resolve(in Input) (string, Rule) {
	if len(in.Sections) == 0 {
		return "", RuleNone
	}

	if in.EntryID != "" && in.EntryProgress < 1 {
		for _, s := range in.Sections {
			if s.ID == in.EntryID && s.Contains(in.FocusY) {
				return s.ID, RuleEntryOverride
			}
		}
	}

	if in.AtBottom {
		return in.Sections[len(in.Sections)-1].ID, RuleBottomPin
	}

	// when sections overlap, the one entered last wins
	hit := -1
	for i, s := range in.Sections {
		if s.Contains(in.FocusY) && (hit < 0 || s.Top > in.Sections[hit].Top) {
			hit = i
		}
	}
	if hit >= 0 {
		return in.Sections[hit].ID, RuleContainment
	}

	best, bestDist := 0, math.Inf(1)
	for i, s := range in.Sections {
		if d := math.Abs(s.Center() - in.FocusY); d < bestDist {
			best, bestDist = i, d
		}
	}
	return in.Sections[best].ID, RuleNearest
}

// Spec names a section and the element handle that measures it.
type Spec struct {
	ID     string
	Handle string
}

// Resolver tracks the active section across scroll updates. Geometry is
// cached on Remeasure; Update only shifts it by the scroll position.
type Resolver struct {
	history   surface.History
	specs     []Spec
	focusFrac float64
	entryID   string
	pinBottom bool
	tolerance float64

	doc       []Entry
	vpHeight  float64
	docHeight float64
	entryProg float64
	active    string
	rule      Rule
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithFocus places the focus line at frac of the viewport height.
func WithFocus(frac float64) Option {
	return func(r *Resolver) { r.focusFrac = frac }
}

// WithEntry enables the entry override for the section id.
func WithEntry(id string) Option {
	return func(r *Resolver) { r.entryID = id }
}

// WithBottomPin pins the last section once the page is within tolerance
// pixels of its end.
func WithBottomPin(tolerance float64) Option {
	return func(r *Resolver) {
		r.pinBottom = true
		r.tolerance = tolerance
	}
}

// NewResolver creates a resolver over the sections in page order.
func NewResolver(h surface.History, specs []Spec, opts ...Option) *Resolver {
	r := &Resolver{
		history:   h,
		specs:     append([]Spec(nil), specs...),
		focusFrac: 0.5,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Remeasure caches document geometry. Missing sections are skipped.
func (r *Resolver) Remeasure(g surface.Geometry) {
	r.doc = r.doc[:0]
	for _, s := range r.specs {
		rect, ok := g.Measure(s.Handle)
		if !ok {
			continue
		}
		r.doc = append(r.doc, Entry{ID: s.ID, Handle: s.Handle, Top: rect.Top, Bottom: rect.Bottom()})
	}
	r.vpHeight = g.Viewport().Height
	r.docHeight = g.DocumentHeight()
}

// SetEntryProgress records the entry section's fade progress.
func (r *Resolver) SetEntryProgress(p float64) { r.entryProg = p }

// Entries returns the cached sections shifted into viewport coordinates.
func (r *Resolver) Entries(scrollY float64) []Entry {
	out := make([]Entry, len(r.doc))
	for i, e := range r.doc {
		e.Top -= scrollY
		e.Bottom -= scrollY
		out[i] = e
	}
	return out
}

// Update resolves the active section for scrollY. On change it replaces
// the document fragment and reports true.
func (r *Resolver) Update(scrollY float64) (string, bool) {
	in := Input{
		Sections:      r.Entries(scrollY),
		FocusY:        r.vpHeight * r.focusFrac,
		EntryID:       r.entryID,
		EntryProgress: r.entryProg,
		AtBottom:      r.pinBottom && r.docHeight > 0 && scrollY+r.vpHeight >= r.docHeight-r.tolerance,
	}
	id, rule := Resolve(in)
	r.rule = rule
	if id == "" || id == r.active {
		return r.active, false
	}
	r.active = id
	if r.history != nil {
		r.history.ReplaceFragment(id)
	}
	return id, true
}

// Active is the current section id.
func (r *Resolver) Active() string { return r.active }

// Rule is the rule behind the last resolution.
func (r *Resolver) Rule() Rule { return r.rule }
