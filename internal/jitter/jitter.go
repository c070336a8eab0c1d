// Package jitter layers a small, velocity-reactive oscillation on top of a
// base parallax position.
//
// Each element owns one Oscillator with its own Channel so that several
// elements driven by the same scroll signal stay visibly out of step.
// Step is the pure transition; Oscillator and Group only hold state
// between frames.
package jitter

import (
	"math"
	"time"

	"github.com/olivier-w/folio/internal/util"
)

// Channel is the per-element personality.
type Channel struct {
	PeriodBase     time.Duration `yaml:"period_base"`
	PhaseSeed      float64       `yaml:"phase_seed"`
	AmplitudeScale float64       `yaml:"amplitude_scale"`
}

// Default channels for the three about-section icons.
var DefaultChannels = []Channel{
	{PeriodBase: 60 * time.Millisecond, PhaseSeed: 0, AmplitudeScale: 1.0},
	{PeriodBase: 75 * time.Millisecond, PhaseSeed: 1, AmplitudeScale: 0.8},
	{PeriodBase: 90 * time.Millisecond, PhaseSeed: 2, AmplitudeScale: 1.1},
}

// Config holds the shared constants. Speeds are in pixels per frame.
type Config struct {
	MinAmplitude   float64       `yaml:"min_amplitude"`
	MaxAmplitude   float64       `yaml:"max_amplitude"`
	AmplitudeGain  float64       `yaml:"amplitude_gain"`
	FrequencyGain  float64       `yaml:"frequency_gain"`
	MaxFreqBoost   float64       `yaml:"max_frequency_boost"`
	SettleSpeed    float64       `yaml:"settle_speed"`
	Dwell          time.Duration `yaml:"dwell"`
	Overshoot      float64       `yaml:"overshoot"`
	OvershootDecay time.Duration `yaml:"overshoot_decay"`
}

// bounce period is 1s/2.2; the dwell is a quarter of it.
const defaultDwell = time.Second * 10 / 22 / 4

// DefaultConfig returns the stock tuning.
func DefaultConfig() Config {
	return Config{
		MinAmplitude:   0.5,
		MaxAmplitude:   3.0,
		AmplitudeGain:  0.1,
		FrequencyGain:  0.05,
		MaxFreqBoost:   1.5,
		SettleSpeed:    0.2,
		Dwell:          defaultDwell,
		Overshoot:      1.5,
		OvershootDecay: 250 * time.Millisecond,
	}
}

// Normalized fills zero fields from DefaultConfig.
func (c Config) Normalized() Config {
	d := DefaultConfig()
	if c.MinAmplitude <= 0 {
		c.MinAmplitude = d.MinAmplitude
	}
	if c.MaxAmplitude <= 0 {
		c.MaxAmplitude = d.MaxAmplitude
	}
	if c.MaxAmplitude < c.MinAmplitude {
		c.MaxAmplitude = c.MinAmplitude
	}
	if c.AmplitudeGain <= 0 {
		c.AmplitudeGain = d.AmplitudeGain
	}
	if c.FrequencyGain <= 0 {
		c.FrequencyGain = d.FrequencyGain
	}
	if c.MaxFreqBoost <= 0 {
		c.MaxFreqBoost = d.MaxFreqBoost
	}
	if c.SettleSpeed <= 0 {
		c.SettleSpeed = d.SettleSpeed
	}
	if c.Dwell <= 0 {
		c.Dwell = d.Dwell
	}
	if c.Overshoot <= 0 {
		c.Overshoot = d.Overshoot
	}
	if c.OvershootDecay <= 0 {
		c.OvershootDecay = d.OvershootDecay
	}
	return c
}

// Amplitude is the oscillation amplitude for a per-frame speed.
func (c Config) Amplitude(speed float64) float64 {
	return util.Clamp(c.MinAmplitude+speed*c.AmplitudeGain, c.MinAmplitude, c.MaxAmplitude)
}

// Frequency is the frequency multiplier for a per-frame speed.
func (c Config) Frequency(speed float64) float64 {
	return 1 + util.Clamp(speed*c.FrequencyGain, 0, c.MaxFreqBoost)
}

// State is one element's oscillator state.
type State struct {
	Phase         float64
	LastDirection int
	LastAmplitude float64
	Frequency     float64

	epoch     time.Time
	lastPos   float64
	primed    bool
	slowSince time.Time
	kicked    bool
	impulse   float64
	impulseAt time.Time
}

// Sample is one scroll reading taken on an animation frame.
type Sample struct {
	Pos float64
	At  time.Time
}

// Step advances st by one frame and returns the new state and the offset
// to add to the element's base position.
func Step(cfg Config, ch Channel, st State, s Sample) (State, float64) {
	if !st.primed {
		st.epoch = s.At
		st.lastPos = s.Pos
		st.primed = true
	}
	delta := s.Pos - st.lastPos
	st.lastPos = s.Pos
	speed := math.Abs(delta)
	dir := util.Sign(delta)

	if dir != 0 {
		if st.LastDirection != 0 && dir != st.LastDirection {
			st.Phase = math.Mod(st.Phase+math.Pi, 2*math.Pi)
		}
		st.LastDirection = dir
	}

	st.LastAmplitude = cfg.Amplitude(speed)
	st.Frequency = cfg.Frequency(speed)

	scale := ch.AmplitudeScale
	if scale == 0 {
		scale = 1
	}
	period := ch.PeriodBase
	if period <= 0 {
		period = DefaultChannels[0].PeriodBase
	}
	elapsed := float64(s.At.Sub(st.epoch)) / float64(period)
	wave := math.Sin(elapsed*st.Frequency+ch.PhaseSeed+st.Phase) * st.LastAmplitude * scale

	if speed < cfg.SettleSpeed {
		if st.slowSince.IsZero() {
			st.slowSince = s.At
		}
		if !st.kicked && s.At.Sub(st.slowSince) >= cfg.Dwell {
			sign := 1.0
			if wave < 0 {
				sign = -1
			}
			st.impulse = cfg.Overshoot * scale * sign
			st.impulseAt = s.At
			st.kicked = true
		}
	} else {
		st.slowSince = time.Time{}
		st.kicked = false
	}

	return st, wave + st.decayedImpulse(cfg, s.At)
}

func (st *State) decayedImpulse(cfg Config, now time.Time) float64 {
	if st.impulse == 0 {
		return 0
	}
	age := now.Sub(st.impulseAt)
	if age >= 6*cfg.OvershootDecay {
		st.impulse = 0
		return 0
	}
	return st.impulse * math.Exp(-float64(age)/float64(cfg.OvershootDecay))
}

// Oscillator owns one element's jitter.
type Oscillator struct {
	cfg    Config
	ch     Channel
	st     State
	offset float64
}

// New creates an oscillator for one channel.
func New(cfg Config, ch Channel) *Oscillator {
	return &Oscillator{cfg: cfg.Normalized(), ch: ch}
}

// Update feeds one frame's scroll position and returns the offset.
func (o *Oscillator) Update(pos float64, now time.Time) float64 {
	o.st, o.offset = Step(o.cfg, o.ch, o.st, Sample{Pos: pos, At: now})
	return o.offset
}

// Offset is the most recent output.
func (o *Oscillator) Offset() float64 { return o.offset }

// State returns a copy of the current state.
func (o *Oscillator) State() State { return o.st }

// Group drives several channels from one scroll signal.
type Group struct {
	oscs    []*Oscillator
	offsets []float64
}

// NewGroup creates one oscillator per channel.
func NewGroup(cfg Config, channels ...Channel) *Group {
	g := &Group{offsets: make([]float64, len(channels))}
	for _, ch := range channels {
		g.oscs = append(g.oscs, New(cfg, ch))
	}
	return g
}

// Update advances every channel and returns their offsets. The returned
// slice is reused by the next call.
func (g *Group) Update(pos float64, now time.Time) []float64 {
	for i, o := range g.oscs {
		g.offsets[i] = o.Update(pos, now)
	}
	return g.offsets
}

// Len is the number of channels.
func (g *Group) Len() int { return len(g.oscs) }

// Offset returns channel i's most recent output, or 0 when out of range.
func (g *Group) Offset(i int) float64 {
	if i < 0 || i >= len(g.offsets) {
		return 0
	}
	return g.offsets[i]
}
