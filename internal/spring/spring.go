// Package spring advances values toward a target with a damped harmonic
// oscillator, one frame at a time.
package spring

import (
	"math"
	"time"

	"github.com/charmbracelet/harmonica"
)

// Params tunes a spring. Zero or negative fields fall back to defaults.
type Params struct {
	Stiffness float64 `yaml:"stiffness"`
	Damping   float64 `yaml:"damping"`
	Mass      float64 `yaml:"mass"`
}

const (
	defaultStiffness = 100
	defaultDamping   = 10
	defaultMass      = 1

	// DefaultEpsilon is the rest threshold for both distance and velocity.
	DefaultEpsilon = 1e-3

	maxSubstep = time.Second / 120
	maxStep    = 250 * time.Millisecond
)

// Presets, softer for large illustrations and snappier for small icons.
var (
	Text         = Params{Stiffness: 100, Damping: 22, Mass: 0.8}
	Illustration = Params{Stiffness: 120, Damping: 20, Mass: 0.7}
	Background   = Params{Stiffness: 60, Damping: 18, Mass: 0.9}
	Icon         = Params{Stiffness: 180, Damping: 15, Mass: 0.5}
	Snappy       = Params{Stiffness: 300, Damping: 20, Mass: 1}
	Tilt         = Params{Stiffness: 150, Damping: 20, Mass: 1}
)

// Normalized returns p with defaults substituted for missing fields.
func (p Params) Normalized() Params {
	if p.Stiffness <= 0 {
		p.Stiffness = defaultStiffness
	}
	if p.Damping <= 0 {
		p.Damping = defaultDamping
	}
	if p.Mass <= 0 {
		p.Mass = defaultMass
	}
	return p
}

// AngularFrequency is sqrt(stiffness/mass).
func (p Params) AngularFrequency() float64 {
	p = p.Normalized()
	return math.Sqrt(p.Stiffness / p.Mass)
}

// DampingRatio is damping / (2·ω₀). Below 1 the spring overshoots.
func (p Params) DampingRatio() float64 {
	p = p.Normalized()
	return p.Damping / (2 * p.AngularFrequency())
}

// Overshoot is the peak overshoot of a unit step from rest, as a fraction
// of the step. Zero for critically damped and overdamped springs.
func (p Params) Overshoot() float64 {
	z := p.DampingRatio()
	if z >= 1 {
		return 0
	}
	return math.Exp(-z * math.Pi / math.Sqrt(1-z*z))
}

// Harmonica builds the equivalent fixed-rate harmonica spring.
func (p Params) Harmonica(fps int) harmonica.Spring {
	return harmonica.NewSpring(harmonica.FPS(fps), p.AngularFrequency(), p.DampingRatio())
}

// Integrator owns one scalar spring. It never fails; it only converges.
type Integrator struct {
	Params   Params
	Position float64
	Velocity float64
	Target   float64
	Epsilon  float64
}

// New creates a spring at rest on position.
func New(p Params, position float64) *Integrator {
	return &Integrator{
		Params:   p.Normalized(),
		Position: position,
		Target:   position,
		Epsilon:  DefaultEpsilon,
	}
}

// AtRest reports whether the spring has settled on its target.
func (s *Integrator) AtRest() bool {
	eps := s.Epsilon
	if eps <= 0 {
		eps = DefaultEpsilon
	}
	return math.Abs(s.Target-s.Position) < eps && math.Abs(s.Velocity) < eps
}

// Step advances the spring by dt toward target and returns the new
// position. Long frames are split into sub-steps and capped so a stalled
// host cannot make the spring diverge.
func (s *Integrator) Step(dt time.Duration, target float64) float64 {
	s.Target = target
	if s.AtRest() {
		s.Position, s.Velocity = target, 0
		return s.Position
	}
	if dt > maxStep {
		dt = maxStep
	}
	p := s.Params.Normalized()
	for dt > 0 {
		h := min(dt, maxSubstep)
		secs := h.Seconds()
		accel := p.Stiffness*(s.Target-s.Position)/p.Mass - p.Damping*s.Velocity
		s.Velocity += accel * secs
		s.Position += s.Velocity * secs
		dt -= h
	}
	return s.Position
}

// Reset jumps to position and stops all motion.
func (s *Integrator) Reset(position float64) {
	s.Position, s.Target, s.Velocity = position, position, 0
}

// Vec2 is a two-dimensional value.
type Vec2 struct {
	X float64
	Y float64
}

// Integrator2 drives two independent axes with the same parameters.
type Integrator2 struct {
	x Integrator
	y Integrator
}

// New2 creates a vector spring at rest on position.
func New2(p Params, position Vec2) *Integrator2 {
	return &Integrator2{x: *New(p, position.X), y: *New(p, position.Y)}
}

// Step advances both axes.
func (s *Integrator2) Step(dt time.Duration, target Vec2) Vec2 {
	return Vec2{X: s.x.Step(dt, target.X), Y: s.y.Step(dt, target.Y)}
}

// Position returns the current value.
func (s *Integrator2) Position() Vec2 { return Vec2{X: s.x.Position, Y: s.y.Position} }

// AtRest reports whether both axes have settled.
func (s *Integrator2) AtRest() bool { return s.x.AtRest() && s.y.AtRest() }

// Reset jumps to position.
func (s *Integrator2) Reset(position Vec2) {
	s.x.Reset(position.X)
	s.y.Reset(position.Y)
}
