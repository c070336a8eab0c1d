// Package settle detects when scrolling has come to rest after a real
// gesture, and reports it at most once per debounce window.
package settle

import (
	"math"
	"time"
)

// Phase is where the detector sits in its cycle.
type Phase uint8

const (
	Moving Phase = iota
	Candidate
	Settled
)

func (p Phase) String() string {
	switch p {
	case Moving:
		return "moving"
	case Candidate:
		return "candidate"
	case Settled:
		return "settled"
	default:
		return "unknown"
	}
}

// Config holds the thresholds. Speeds are pixels per sample, one sample
// per animation frame.
type Config struct {
	Debounce     time.Duration `yaml:"debounce"`
	Distance     float64       `yaml:"distance"`
	SettleSpeed  float64       `yaml:"settle_speed"`
	GestureSpeed float64       `yaml:"gesture_speed"`
	Dwell        time.Duration `yaml:"dwell"`
}

// DefaultConfig returns the stock thresholds.
func DefaultConfig() Config {
	return Config{
		Debounce:     time.Second,
		Distance:     50,
		SettleSpeed:  0.2,
		GestureSpeed: 0.5,
		Dwell:        time.Second * 10 / 22 / 4,
	}
}

// Normalized fills zero fields from DefaultConfig.
func (c Config) Normalized() Config {
	d := DefaultConfig()
	if c.Debounce <= 0 {
		c.Debounce = d.Debounce
	}
	if c.Distance <= 0 {
		c.Distance = d.Distance
	}
	if c.SettleSpeed <= 0 {
		c.SettleSpeed = d.SettleSpeed
	}
	if c.GestureSpeed <= 0 {
		c.GestureSpeed = d.GestureSpeed
	}
	if c.Dwell <= 0 {
		c.Dwell = d.Dwell
	}
	return c
}

// Tracker is the detector state. LastTrigger is zero until the first
// emission.
type Tracker struct {
	Phase         Phase
	LastTrigger   time.Time
	GestureOrigin float64

	lastPos   float64
	primed    bool
	gesture   bool
	slowSince time.Time
}

// Sample is one position reading.
type Sample struct {
	Pos float64
	At  time.Time
}

// Event is one settle emission.
type Event struct {
	At       time.Time
	Pos      float64
	Distance float64 // travel since the gesture origin
}

// Step is the pure transition. It returns the next tracker and, when the
// sample completes a settle, the event to emit.
//
// The gesture origin is where a gesture started: it moves only on the
// first fast sample after the detector went quiet, and only when that
// sample is more than Distance from the old origin. It stays put for the
// rest of the gesture, so a settle reports the whole travel.
func Step(cfg Config, tr Tracker, s Sample) (Tracker, Event, bool) {
	if !tr.primed {
		tr.primed = true
		tr.lastPos = s.Pos
		tr.GestureOrigin = s.Pos
		tr.slowSince = s.At
	}
	prev := tr.lastPos
	speed := math.Abs(s.Pos - prev)
	tr.lastPos = s.Pos

	if speed > cfg.GestureSpeed {
		if !tr.gesture && math.Abs(s.Pos-tr.GestureOrigin) > cfg.Distance {
			tr.GestureOrigin = prev
		}
		tr.gesture = true
	}

	if speed >= cfg.SettleSpeed {
		tr.Phase = Moving
		tr.slowSince = time.Time{}
		return tr, Event{}, false
	}
	if tr.slowSince.IsZero() {
		tr.slowSince = s.At
	}

	switch tr.Phase {
	case Moving:
		if s.At.Sub(tr.slowSince) < cfg.Dwell {
			return tr, Event{}, false
		}
		tr.Phase = Candidate
		tr.gesture = false
		fallthrough
	case Candidate:
		dist := math.Abs(s.Pos - tr.GestureOrigin)
		debounced := tr.LastTrigger.IsZero() || s.At.Sub(tr.LastTrigger) >= cfg.Debounce
		if !debounced || dist <= cfg.Distance {
			return tr, Event{}, false
		}
		tr.Phase = Settled
		tr.LastTrigger = s.At
		return tr, Event{At: s.At, Pos: s.Pos, Distance: dist}, true
	}
	return tr, Event{}, false
}

// Detector wraps Step with listeners.
type Detector struct {
	cfg       Config
	tr        Tracker
	nextID    uint64
	listeners []listener
}

type listener struct {
	id uint64
	fn func(Event)
}

// New creates a detector.
func New(cfg Config) *Detector {
	return &Detector{cfg: cfg.Normalized()}
}

// OnVelocitySample feeds one frame's position. Listeners run before it
// returns when a settle is emitted.
func (d *Detector) OnVelocitySample(pos float64, now time.Time) (Event, bool) {
	var (
		ev Event
		ok bool
	)
	d.tr, ev, ok = Step(d.cfg, d.tr, Sample{Pos: pos, At: now})
	if ok {
		for _, l := range append([]listener(nil), d.listeners...) {
			l.fn(ev)
		}
	}
	return ev, ok
}

// Subscribe registers fn for settle events.
func (d *Detector) Subscribe(fn func(Event)) (cancel func()) {
	d.nextID++
	id := d.nextID
	d.listeners = append(d.listeners, listener{id: id, fn: fn})
	return func() {
		for i, l := range d.listeners {
			if l.id == id {
				d.listeners = append(d.listeners[:i], d.listeners[i+1:]...)
				return
			}
		}
	}
}

// Listeners is the number of live subscriptions.
func (d *Detector) Listeners() int { return len(d.listeners) }

// Tracker returns the current state.
func (d *Detector) Tracker() Tracker { return d.tr }

// Config returns the normalized thresholds.
func (d *Detector) Config() Config { return d.cfg }
