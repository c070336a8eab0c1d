// Package breath produces the slow scale pulse used on the portrait and
// the contact form.
package breath

import (
	"math"
	"time"

	"github.com/olivier-w/folio/internal/progress"
)

// Cycle is a continuous inhale, hold, exhale, hold loop.
type Cycle struct {
	Inhale time.Duration `yaml:"inhale"`
	Exhale time.Duration `yaml:"exhale"`
	Pause  time.Duration `yaml:"pause"`
	Min    float64       `yaml:"min"`
	Max    float64       `yaml:"max"`
	Offset time.Duration `yaml:"offset"`
}

// DefaultCycle breathes between 1 and 1.015.
func DefaultCycle() Cycle {
	return Cycle{
		Inhale: 2200 * time.Millisecond,
		Exhale: 2800 * time.Millisecond,
		Pause:  300 * time.Millisecond,
		Min:    1,
		Max:    1.015,
	}
}

// Normalized fills zero fields from DefaultCycle.
func (c Cycle) Normalized() Cycle {
	d := DefaultCycle()
	if c.Inhale <= 0 {
		c.Inhale = d.Inhale
	}
	if c.Exhale <= 0 {
		c.Exhale = d.Exhale
	}
	if c.Pause < 0 {
		c.Pause = 0
	}
	if c.Min <= 0 {
		c.Min = d.Min
	}
	if c.Max <= 0 {
		c.Max = d.Max
	}
	return c
}

// Period is one full breath.
func (c Cycle) Period() time.Duration {
	return c.Inhale + c.Exhale + 2*c.Pause
}

// HalfOffset returns c shifted by half a period, so two elements
// breathing side by side alternate.
func (c Cycle) HalfOffset() Cycle {
	c.Offset += c.Period() / 2
	return c
}

// Scale is the scale factor at elapsed time t.
func (c Cycle) Scale(t time.Duration) float64 {
	period := c.Period()
	if period <= 0 {
		return c.Min
	}
	at := (t + c.Offset) % period
	if at < 0 {
		at += period
	}
	switch {
	case at < c.Inhale:
		return c.Min + (c.Max-c.Min)*standard(ratio(at, c.Inhale))
	case at < c.Inhale+c.Pause:
		return c.Max
	case at < c.Inhale+c.Pause+c.Exhale:
		return c.Max - (c.Max-c.Min)*standard(ratio(at-c.Inhale-c.Pause, c.Exhale))
	default:
		return c.Min
	}
}

func ratio(a, b time.Duration) float64 { return float64(a) / float64(b) }

// standard is the cubic-bezier(0.4, 0, 0.2, 1) ease.
var standard = Bezier(0.4, 0, 0.2, 1)

// Bezier returns a CSS-style cubic-bezier easing function.
func Bezier(x1, y1, x2, y2 float64) func(float64) float64 {
	bez := func(a, b, t float64) float64 {
		u := 1 - t
		return 3*u*u*t*a + 3*u*t*t*b + t*t*t
	}
	slope := func(a, b, t float64) float64 {
		u := 1 - t
		return 3*u*u*a + 6*u*t*(b-a) + 3*t*t*(1-b)
	}
	return func(x float64) float64 {
		if x <= 0 {
			return 0
		}
		if x >= 1 {
			return 1
		}
		t := x
		for iter := 0; iter < 8; iter++ {
			d := slope(x1, x2, t)
			if math.Abs(d) < 1e-6 {
				break
			}
			t -= (bez(x1, x2, t) - x) / d
			t = math.Min(math.Max(t, 0), 1)
		}
		return bez(y1, y2, t)
	}
}

// OneShot is a single breath in and out, started on demand.
type OneShot struct {
	Duration time.Duration
	Peak     float64

	curve   progress.Keyframes
	started time.Time
	running bool
}

// NewOneShot creates an idle one-shot breath.
func NewOneShot(d time.Duration, peak float64) *OneShot {
	if d <= 0 {
		d = 800 * time.Millisecond
	}
	if peak <= 0 {
		peak = 1.015
	}
	return &OneShot{
		Duration: d,
		Peak:     peak,
		curve: progress.NewKeyframes(progress.EaseInOut,
			progress.Stop{At: 0, Value: 1},
			progress.Stop{At: 0.5, Value: peak},
			progress.Stop{At: 1, Value: 1},
		),
	}
}

// Trigger restarts the breath at now.
func (o *OneShot) Trigger(now time.Time) {
	o.started = now
	o.running = true
}

// Running reports whether a breath is in progress at now.
func (o *OneShot) Running(now time.Time) bool {
	return o.running && now.Sub(o.started) < o.Duration
}

// Scale is the scale factor at now; 1 when idle.
func (o *OneShot) Scale(now time.Time) float64 {
	if !o.Running(now) {
		o.running = false
		return 1
	}
	return o.curve.At(ratio(now.Sub(o.started), o.Duration))
}
