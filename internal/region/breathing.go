package region

import (
	"time"

	"github.com/olivier-w/folio/internal/breath"
	"github.com/olivier-w/folio/internal/surface"
)

// Breathing runs a continuous breath cycle from the moment it starts.
// The scale is a pure function of elapsed time, so it holds no frame
// request of its own.
type Breathing struct {
	events  surface.Events
	cycle   breath.Cycle
	started time.Time
	running bool
}

// NewBreathing creates a breathing region.
func NewBreathing(ev surface.Events, c breath.Cycle) *Breathing {
	return &Breathing{events: ev, cycle: c.Normalized()}
}

func (b *Breathing) Start() {
	if b.running {
		return
	}
	b.running = true
	b.started = b.events.Now()
}

func (b *Breathing) Stop() { b.running = false }

func (b *Breathing) Running() bool { return b.running }

// Scale is the current scale factor; 1 when stopped.
func (b *Breathing) Scale() float64 {
	if !b.running {
		return 1
	}
	return b.cycle.Scale(b.events.Now().Sub(b.started))
}
