package breath

import (
	"math"
	"testing"
	"time"
)

func TestCycleShape(t *testing.T) {
	c := DefaultCycle()
	if got := c.Period(); got != 5600*time.Millisecond {
		t.Fatalf("expected 5.6s period, got %v", got)
	}
	if got := c.Scale(0); got != 1 {
		t.Fatalf("expected rest scale at start, got %v", got)
	}
	if got := c.Scale(2300 * time.Millisecond); got != 1.015 {
		t.Fatalf("expected peak during the top pause, got %v", got)
	}
	if got := c.Scale(5500 * time.Millisecond); got != 1 {
		t.Fatalf("expected rest during the bottom pause, got %v", got)
	}
	if got := c.Scale(c.Period() + 2300*time.Millisecond); got != 1.015 {
		t.Fatalf("expected the cycle to repeat, got %v", got)
	}
	for d := time.Duration(0); d < c.Period(); d += 50 * time.Millisecond {
		if s := c.Scale(d); s < 1 || s > 1.015+1e-12 {
			t.Fatalf("scale %v out of range at %v", s, d)
		}
	}
}

func TestHalfOffsetAlternates(t *testing.T) {
	a := DefaultCycle()
	b := a.HalfOffset()
	if got := b.Scale(0); got != a.Scale(a.Period()/2) {
		t.Fatalf("expected offset cycle to start mid-breath, got %v", got)
	}
}

func TestBezierEndpointsAndMonotonic(t *testing.T) {
	prev := -1.0
	for x := 0.0; x <= 1.0001; x += 0.01 {
		y := standard(x)
		if y < prev-1e-9 {
			t.Fatalf("ease not monotonic at %v", x)
		}
		prev = y
	}
	if standard(0) != 0 || standard(1) != 1 {
		t.Fatal("expected ease to pin its endpoints")
	}
	linear := Bezier(0, 0, 1, 1)
	if got := linear(0.3); math.Abs(got-0.3) > 1e-6 {
		t.Fatalf("expected linear bezier, got %v", got)
	}
}

func TestOneShot(t *testing.T) {
	o := NewOneShot(0, 0)
	now := time.Unix(0, 0)
	if o.Scale(now) != 1 || o.Running(now) {
		t.Fatal("expected idle one-shot at rest")
	}
	o.Trigger(now)
	if got := o.Scale(now.Add(400 * time.Millisecond)); got != 1.015 {
		t.Fatalf("expected peak midway, got %v", got)
	}
	if got := o.Scale(now.Add(800 * time.Millisecond)); got != 1 {
		t.Fatalf("expected rest after the breath, got %v", got)
	}
	if o.Running(now.Add(200 * time.Millisecond)) {
		t.Fatal("expected finished breath to stay finished")
	}
}
