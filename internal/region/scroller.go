package region

import (
	"math"
	"time"

	"github.com/charmbracelet/harmonica"

	"github.com/olivier-w/folio/internal/surface"
)

// Scroller animates the scroll position toward a target, for section
// jumps. It writes positions through apply, which the host turns into a
// scroll event.
type Scroller struct {
	loop   frameLoop
	spring harmonica.Spring
	apply  func(y float64)
	pos    float64
	vel    float64
	target float64
}

// NewScroller creates a scroller. apply receives every intermediate
// position and finally the exact target.
func NewScroller(ev surface.Events, apply func(y float64)) *Scroller {
	s := &Scroller{
		spring: harmonica.NewSpring(harmonica.FPS(FPS), 8, 1),
		apply:  apply,
	}
	s.loop = newFrameLoop(ev, s.tick)
	return s
}

// ScrollTo starts a smooth scroll from the current position. A scroll
// already in flight keeps its velocity.
func (s *Scroller) ScrollTo(from, to float64) {
	if !s.loop.running() {
		s.pos, s.vel = from, 0
	}
	s.target = to
	s.loop.start()
}

// Cancel stops an in-flight scroll where it is.
func (s *Scroller) Cancel() { s.loop.stop() }

// Scrolling reports whether a scroll is in flight.
func (s *Scroller) Scrolling() bool { return s.loop.running() }

// Target is where the current or last scroll is headed.
func (s *Scroller) Target() float64 { return s.target }

func (s *Scroller) tick(time.Time, time.Duration) {
	s.pos, s.vel = s.spring.Update(s.pos, s.vel, s.target)
	if math.Abs(s.target-s.pos) < 0.5 && math.Abs(s.vel) < 0.5 {
		s.pos, s.vel = s.target, 0
		s.loop.stop()
	}
	s.apply(s.pos)
}
