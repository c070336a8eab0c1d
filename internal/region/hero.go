package region

import (
	"time"

	"github.com/olivier-w/folio/internal/progress"
	"github.com/olivier-w/folio/internal/spring"
	"github.com/olivier-w/folio/internal/surface"
	"github.com/olivier-w/folio/internal/util"
)

// HeroFrame is the hero's render state for one frame.
type HeroFrame struct {
	Progress float64
	Opacity  float64
	Blob     surface.Point
	Image    surface.Point
}

// heroPointer smooths the normalized pointer position.
var heroPointer = spring.Params{Stiffness: 60, Damping: 18, Mass: 1}

// Hero fades the landing section out as it scrolls away and drifts its
// artwork with the pointer. Pointer drift shrinks with the fade and gives
// way to a downward exit drift.
type Hero struct {
	hooks
	host    surface.Host
	loop    frameLoop
	src     *progress.Source
	pointer *spring.Integrator2
	target  spring.Vec2
	frame   HeroFrame
}

// NewHero tracks the element handle over rng.
func NewHero(host surface.Host, rng progress.Range) *Hero {
	h := &Hero{
		host:    host,
		src:     progress.New(rng),
		pointer: spring.New2(heroPointer, spring.Vec2{}),
		frame:   HeroFrame{Opacity: 1},
	}
	h.loop = newFrameLoop(host, h.tick)
	return h
}

func (h *Hero) Start() {
	if h.running {
		return
	}
	h.running = true
	h.src.Remeasure(h.host)
	h.add(h.host.OnResize(func(surface.Viewport) { h.src.Resolve(h.host) }))
	h.add(h.host.OnPointer(h.onPointer))
	h.loop.start()
	h.add(h.loop.stop)
}

func (h *Hero) Stop() {
	if !h.running {
		return
	}
	h.release()
}

func (h *Hero) onPointer(ev surface.PointerEvent) {
	if ev.Kind != surface.PointerMove {
		return
	}
	vp := h.host.Viewport()
	if vp.Width <= 0 || vp.Height <= 0 {
		return
	}
	h.target = spring.Vec2{
		X: util.Clamp((ev.Pos.X/vp.Width-0.5)*2, -1, 1),
		Y: util.Clamp((ev.Pos.Y/vp.Height-0.5)*2, -1, 1),
	}
}

func (h *Hero) tick(_ time.Time, dt time.Duration) {
	p := h.src.Update(h.host.ScrollY()).Value
	op := progress.FadeOut(p)
	v := h.pointer.Step(dt, h.target)
	h.frame = HeroFrame{
		Progress: p,
		Opacity:  op,
		Blob:     surface.Point{X: v.X * 16 * op, Y: v.Y*10*op + (1-op)*40},
		Image:    surface.Point{X: v.X * 24 * op, Y: v.Y*14*op + (1-op)*70},
	}
}

// Frame is the most recent render state.
func (h *Hero) Frame() HeroFrame { return h.frame }
