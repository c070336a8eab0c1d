package spring

import (
	"math"
	"testing"
	"time"
)

const frame = time.Second / 60

func TestIntegratorConvergesWithBoundedOvershoot(t *testing.T) {
	for name, p := range map[string]Params{
		"text":         Text,
		"illustration": Illustration,
		"background":   Background,
		"icon":         Icon,
		"snappy":       Snappy,
		"tilt":         Tilt,
	} {
		s := New(p, 0)
		peak := 0.0
		for iter := 0; iter < 600; iter++ {
			peak = max(peak, s.Step(frame, 1))
		}
		if math.Abs(s.Position-1) > 1e-3 {
			t.Fatalf("%s: expected convergence to 1, got %v", name, s.Position)
		}
		if limit := 1 + p.Overshoot() + 0.01; peak > limit {
			t.Fatalf("%s: peak %v exceeds overshoot bound %v", name, peak, limit)
		}
	}
}

func TestIntegratorAtRestIsNoop(t *testing.T) {
	s := New(Icon, 5)
	s.Step(frame, 5)
	if s.Position != 5 || s.Velocity != 0 {
		t.Fatalf("expected spring at rest to stay put, got pos=%v vel=%v", s.Position, s.Velocity)
	}
}

func TestIntegratorSnapsWhenWithinEpsilon(t *testing.T) {
	s := New(Icon, 0)
	s.Position = 0.9999
	s.Step(frame, 1)
	if s.Position != 1 {
		t.Fatalf("expected snap to target, got %v", s.Position)
	}
}

func TestIntegratorSurvivesDroppedFrames(t *testing.T) {
	s := New(Icon, 0)
	for iter := 0; iter < 20; iter++ {
		s.Step(2*time.Second, 1)
		if math.IsNaN(s.Position) || math.Abs(s.Position) > 2 {
			t.Fatalf("spring diverged: %v", s.Position)
		}
	}
	if math.Abs(s.Position-1) > 1e-3 {
		t.Fatalf("expected convergence after long frames, got %v", s.Position)
	}
}

func TestMissingParamsUseDefaults(t *testing.T) {
	p := Params{Stiffness: 200}.Normalized()
	if p.Damping != defaultDamping || p.Mass != defaultMass {
		t.Fatalf("unexpected defaults %+v", p)
	}
	s := New(Params{}, 0)
	for iter := 0; iter < 1200; iter++ {
		s.Step(frame, 10)
	}
	if math.Abs(s.Position-10) > 1e-2 {
		t.Fatalf("expected default spring to converge, got %v", s.Position)
	}
}

func TestDampingRatio(t *testing.T) {
	if z := (Params{Stiffness: 100, Damping: 20, Mass: 1}).DampingRatio(); math.Abs(z-1) > 1e-12 {
		t.Fatalf("expected critical damping, got %v", z)
	}
	if o := (Params{Stiffness: 100, Damping: 20, Mass: 1}).Overshoot(); o != 0 {
		t.Fatalf("expected no overshoot when critically damped, got %v", o)
	}
}

func TestVectorSpringMovesBothAxes(t *testing.T) {
	s := New2(Tilt, Vec2{})
	for iter := 0; iter < 300; iter++ {
		s.Step(frame, Vec2{X: 6, Y: -6})
	}
	got := s.Position()
	if math.Abs(got.X-6) > 1e-2 || math.Abs(got.Y+6) > 1e-2 {
		t.Fatalf("unexpected vector position %+v", got)
	}
	if !s.AtRest() {
		t.Fatal("expected vector spring to come to rest")
	}
}

func TestHarmonicaBridgeConverges(t *testing.T) {
	h := Illustration.Harmonica(60)
	pos, vel := 0.0, 0.0
	for iter := 0; iter < 600; iter++ {
		pos, vel = h.Update(pos, vel, 1)
	}
	if math.Abs(pos-1) > 1e-3 {
		t.Fatalf("expected harmonica spring to converge, got %v", pos)
	}
}
