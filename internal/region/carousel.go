package region

import (
	"math"
	"time"

	"github.com/charmbracelet/harmonica"

	"github.com/olivier-w/folio/internal/carousel"
	"github.com/olivier-w/folio/internal/spring"
	"github.com/olivier-w/folio/internal/surface"
)

// CarouselFrame is the carousel's render state.
type CarouselFrame struct {
	Visible    [3]int
	Tilt       carousel.Tilt // smoothed
	DragOffset float64
	Mode       carousel.TiltMode
}

// Carousel connects a carousel.Controller to pointer input. The stage
// handle bounds where drags may start; the card handle is the center
// card that tilts under the pointer.
type Carousel struct {
	hooks
	host  surface.Host
	ctl   *carousel.Controller
	stage string
	card  string
	loop  frameLoop

	stageRect surface.Rect
	cardRect  surface.Rect
	haveStage bool
	haveCard  bool

	spring harmonica.Spring
	tiltX  [2]float64 // position, velocity
	tiltY  [2]float64
	frame  CarouselFrame
}

// NewCarousel creates the carousel region over ctl.
func NewCarousel(host surface.Host, ctl *carousel.Controller, stage, card string) *Carousel {
	c := &Carousel{
		host:   host,
		ctl:    ctl,
		stage:  stage,
		card:   card,
		spring: spring.Tilt.Harmonica(FPS),
	}
	c.loop = newFrameLoop(host, c.tick)
	c.frame = CarouselFrame{Visible: ctl.Visible(), Mode: ctl.Mode()}
	return c
}

func (c *Carousel) Start() {
	if c.running {
		return
	}
	c.running = true
	c.remeasure()
	c.add(c.host.OnResize(func(surface.Viewport) { c.remeasure() }))
	c.add(c.host.OnPointer(c.onPointer))
	c.add(c.loop.stop)
}

func (c *Carousel) Stop() {
	if !c.running {
		return
	}
	c.release()
	c.ctl.CancelDrag()
	c.ctl.Leave()
	c.tiltX, c.tiltY = [2]float64{}, [2]float64{}
	c.frame.Tilt = carousel.Tilt{}
	c.sync()
}

func (c *Carousel) remeasure() {
	c.stageRect, c.haveStage = c.host.Measure(c.stage)
	c.cardRect, c.haveCard = c.host.Measure(c.card)
}

func (c *Carousel) onPointer(ev surface.PointerEvent) {
	y := c.host.ScrollY()
	switch ev.Kind {
	case surface.PointerDown:
		if c.haveStage && viewportRect(c.stageRect, y).Contains(ev.Pos) {
			c.ctl.BeginDrag(ev.Pos.X, ev.At)
		}
	case surface.PointerMove:
		if c.ctl.Dragging() {
			c.ctl.DragTo(ev.Pos.X, ev.At)
		} else if c.haveCard {
			c.ctl.Hover(ev.Pos, viewportRect(c.cardRect, y))
		}
	case surface.PointerUp:
		c.ctl.Release(ev.Pos.X, ev.At)
	case surface.PointerLeave:
		if c.ctl.Dragging() {
			c.ctl.Release(ev.Pos.X, ev.At)
		}
		c.ctl.Leave()
	}
	c.wake()
}

// Next advances the carousel.
func (c *Carousel) Next() {
	c.ctl.Next()
	c.wake()
}

// Prev rewinds the carousel.
func (c *Carousel) Prev() {
	c.ctl.Prev()
	c.wake()
}

// SetTiltMode changes the tilt range. It touches no listeners, so
// changing modes any number of times costs nothing to teardown.
func (c *Carousel) SetTiltMode(m carousel.TiltMode) {
	c.ctl.SetTiltMode(m)
	c.wake()
}

// wake starts the smoothing loop; it stops itself once the tilt settles.
func (c *Carousel) wake() {
	c.sync()
	if c.running {
		c.loop.start()
	}
}

func (c *Carousel) sync() {
	c.frame.Visible = c.ctl.Visible()
	c.frame.DragOffset = c.ctl.DragOffset()
	c.frame.Mode = c.ctl.Mode()
}

func (c *Carousel) tick(time.Time, time.Duration) {
	target := c.ctl.Tilt()
	c.tiltX[0], c.tiltX[1] = c.spring.Update(c.tiltX[0], c.tiltX[1], target.RotateX)
	c.tiltY[0], c.tiltY[1] = c.spring.Update(c.tiltY[0], c.tiltY[1], target.RotateY)
	c.frame.Tilt = carousel.Tilt{RotateX: c.tiltX[0], RotateY: c.tiltY[0]}
	c.sync()
	if settled(c.tiltX, target.RotateX) && settled(c.tiltY, target.RotateY) && !c.ctl.Dragging() {
		c.tiltX = [2]float64{target.RotateX, 0}
		c.tiltY = [2]float64{target.RotateY, 0}
		c.frame.Tilt = target
		c.loop.stop()
	}
}

func settled(pv [2]float64, target float64) bool {
	return math.Abs(pv[0]-target) < 0.01 && math.Abs(pv[1]) < 0.01
}

// Frame is the most recent render state.
func (c *Carousel) Frame() CarouselFrame { return c.frame }

// Controller exposes the underlying controller.
func (c *Carousel) Controller() *carousel.Controller { return c.ctl }
