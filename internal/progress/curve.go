package progress

import (
	"math"
	"sort"

	"github.com/olivier-w/folio/internal/util"
)

// Smoothstep is the cubic Hermite ease 3t²-2t³ on a clamped t.
func Smoothstep(t float64) float64 {
	t = util.Clamp01(t)
	return t * t * (3 - 2*t)
}

// FadeOut is the hero's exit opacity: fully visible at 0, gone at 1.
func FadeOut(p float64) float64 {
	return 1 - Smoothstep(p)
}

// Symmetric fades in over the first half of the window and out over the
// second, peaking at p=0.5.
func Symmetric(p float64) float64 {
	return 1 - math.Abs(Smoothstep(p)-0.5)*2
}

// EaseInOut is a cubic ease-in-out.
func EaseInOut(t float64) float64 {
	t = util.Clamp01(t)
	if t < 0.5 {
		return 4 * t * t * t
	}
	u := -2*t + 2
	return 1 - u*u*u/2
}

// Linear is the identity ease.
func Linear(t float64) float64 { return util.Clamp01(t) }

// Stop is one keyframe.
type Stop struct {
	At    float64
	Value float64
}

// Keyframes maps progress to a value through eased piecewise segments.
// Outside the first and last stop the value holds.
type Keyframes struct {
	stops []Stop
	ease  func(float64) float64
}

// NewKeyframes sorts the stops by position. A nil ease means EaseInOut.
func NewKeyframes(ease func(float64) float64, stops ...Stop) Keyframes {
	sorted := append([]Stop(nil), stops...)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].At < sorted[j].At })
	if ease == nil {
		ease = EaseInOut
	}
	return Keyframes{stops: sorted, ease: ease}
}

// At evaluates the keyframes at progress t.
func (k Keyframes) At(t float64) float64 {
	n := len(k.stops)
	switch {
	case n == 0:
		return 0
	case t <= k.stops[0].At:
		return k.stops[0].Value
	case t >= k.stops[n-1].At:
		return k.stops[n-1].Value
	}
	i := sort.Search(n, func(i int) bool { return k.stops[i].At > t })
	a, b := k.stops[i-1], k.stops[i]
	span := b.At - a.At
	if span <= 0 {
		return b.Value
	}
	return util.Lerp(a.Value, b.Value, k.ease((t-a.At)/span))
}
