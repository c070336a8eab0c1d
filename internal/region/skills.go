package region

import (
	"math"
	"time"

	"github.com/charmbracelet/harmonica"

	"github.com/olivier-w/folio/internal/surface"
	"github.com/olivier-w/folio/internal/util"
)

// springField advances a fixed set of channels with one shared
// fixed-rate spring.
type springField struct {
	spring harmonica.Spring
	pos    []float64
	vel    []float64
}

func newSpringField(fps int, frequency, damping float64) springField {
	return springField{spring: harmonica.NewSpring(harmonica.FPS(fps), frequency, damping)}
}

func (s *springField) resize(n int) {
	if len(s.pos) == n {
		return
	}
	s.pos = make([]float64, n)
	s.vel = make([]float64, n)
}

func (s *springField) set(i int, v float64) {
	s.pos[i] = v
	s.vel[i] = 0
}

func (s *springField) step(i int, target float64) float64 {
	p, v := s.spring.Update(s.pos[i], s.vel[i], target)
	s.pos[i] = p
	s.vel[i] = v
	return p
}

// skill float channels
const (
	chScroll = iota
	chMouseX
	chMouseY
	chTiltX
	chTiltY
	chLight
	numSkillChannels
)

// SkillsConfig tunes the floating skill icons.
type SkillsConfig struct {
	Section       string
	Icons         []string
	TiltThreshold float64
	GlintCooldown time.Duration
	GlintDuration time.Duration
	HoldDuration  time.Duration
	SpringFreq    float64
	SpringDamping float64
}

// DefaultSkillsConfig returns the stock tuning for the given handles.
func DefaultSkillsConfig(section string, icons ...string) SkillsConfig {
	return SkillsConfig{
		Section:       section,
		Icons:         icons,
		TiltThreshold: 4,
		GlintCooldown: 1500 * time.Millisecond,
		GlintDuration: time.Second,
		HoldDuration:  time.Second,
		SpringFreq:    5,
		SpringDamping: 1,
	}
}

// SkillsFrame is the skills section's render state.
type SkillsFrame struct {
	OffsetX float64 // px
	OffsetY float64 // px, scroll and pointer combined
	TiltX   float64 // degrees
	TiltY   float64
	Light   float64 // [0.2, 0.8]
	Hold    bool
	Glints  []bool
}

type glintState struct {
	above bool
	last  time.Time
	on    bool
	clear timer
}

// Skills floats the skill icons with scroll and pointer, lights them from
// the pointer side and glints an icon when the tilt crosses a threshold.
type Skills struct {
	hooks
	host  surface.Host
	cfg   SkillsConfig
	loop  frameLoop
	field springField

	target  [numSkillChannels]float64
	section surface.Rect
	have    bool
	icons   []surface.Rect
	iconOK  []bool
	hovered bool
	hold    bool
	holdEnd timer
	glints  []glintState
	frame   SkillsFrame
}

// NewSkills creates the skills region.
func NewSkills(host surface.Host, cfg SkillsConfig) *Skills {
	d := DefaultSkillsConfig(cfg.Section)
	if cfg.TiltThreshold <= 0 {
		cfg.TiltThreshold = d.TiltThreshold
	}
	if cfg.GlintCooldown <= 0 {
		cfg.GlintCooldown = d.GlintCooldown
	}
	if cfg.GlintDuration <= 0 {
		cfg.GlintDuration = d.GlintDuration
	}
	if cfg.HoldDuration <= 0 {
		cfg.HoldDuration = d.HoldDuration
	}
	if cfg.SpringFreq <= 0 {
		cfg.SpringFreq = d.SpringFreq
	}
	if cfg.SpringDamping <= 0 {
		cfg.SpringDamping = d.SpringDamping
	}
	s := &Skills{
		host:    host,
		cfg:     cfg,
		field:   newSpringField(FPS, cfg.SpringFreq, cfg.SpringDamping),
		holdEnd: timer{events: host},
		glints:  make([]glintState, len(cfg.Icons)),
		icons:   make([]surface.Rect, len(cfg.Icons)),
		iconOK:  make([]bool, len(cfg.Icons)),
	}
	for i := range s.glints {
		s.glints[i].clear = timer{events: host}
	}
	s.field.resize(numSkillChannels)
	s.target[chLight] = 0.5
	s.field.set(chLight, 0.5)
	s.frame = SkillsFrame{Light: 0.5, Glints: make([]bool, len(cfg.Icons))}
	s.loop = newFrameLoop(host, s.tick)
	return s
}

func (s *Skills) Start() {
	if s.running {
		return
	}
	s.running = true
	s.remeasure()
	s.add(s.host.OnScroll(func(float64) { s.updateScrollTarget() }))
	s.add(s.host.OnResize(func(surface.Viewport) { s.remeasure() }))
	s.add(s.host.OnPointer(s.onPointer))
	s.loop.start()
	s.add(s.loop.stop)
	s.add(s.holdEnd.stop)
	for i := range s.glints {
		s.add(s.glints[i].clear.stop)
	}
}

func (s *Skills) Stop() {
	if !s.running {
		return
	}
	s.release()
	s.hovered, s.hold = false, false
	for i := range s.glints {
		s.glints[i].on = false
	}
}

func (s *Skills) remeasure() {
	s.section, s.have = s.host.Measure(s.cfg.Section)
	for i, h := range s.cfg.Icons {
		s.icons[i], s.iconOK[i] = s.host.Measure(h)
	}
	s.updateScrollTarget()
}

func (s *Skills) updateScrollTarget() {
	if !s.have {
		s.target[chScroll] = 0
		return
	}
	r := viewportRect(s.section, s.host.ScrollY())
	dist := r.CenterY() - s.host.Viewport().Height/2
	s.target[chScroll] = util.Clamp(dist/50, -4, 4)
}

func (s *Skills) onPointer(ev surface.PointerEvent) {
	s.updateHover(ev)
	if ev.Kind != surface.PointerMove {
		return
	}
	vp := s.host.Viewport()
	if vp.Width <= 0 || vp.Height <= 0 {
		return
	}
	dx := ev.Pos.X - vp.Width/2
	dy := ev.Pos.Y - vp.Height/2
	s.target[chMouseX] = util.Clamp(dx/100, -3, 3)
	s.target[chMouseY] = util.Clamp(dy/100, -3, 3)
	s.target[chTiltY] = util.Clamp(dx/40, -6, 6)
	s.target[chTiltX] = util.Clamp(-dy/40, -6, 6)
	nx, ny := dx/(vp.Width/2), dy/(vp.Height/2)
	s.target[chLight] = util.Clamp(0.5+(-nx-ny)*0.15, 0.2, 0.8)
}

// updateHover holds the float while the pointer rests on an icon and
// releases it a moment after the pointer leaves.
func (s *Skills) updateHover(ev surface.PointerEvent) {
	over := false
	if ev.Kind != surface.PointerLeave {
		y := s.host.ScrollY()
		for i, r := range s.icons {
			if s.iconOK[i] && viewportRect(r, y).Contains(ev.Pos) {
				over = true
				break
			}
		}
	}
	switch {
	case over && !s.hovered:
		s.holdEnd.stop()
		s.hold = true
	case !over && s.hovered:
		s.holdEnd.reset(s.cfg.HoldDuration, func() { s.hold = false })
	}
	s.hovered = over
}

func (s *Skills) tick(now time.Time, _ time.Duration) {
	for ch := 0; ch < numSkillChannels; ch++ {
		s.field.step(ch, s.target[ch])
	}
	p := s.field.pos
	s.frame.OffsetX = p[chMouseX]
	s.frame.OffsetY = p[chScroll] + p[chMouseY]
	s.frame.TiltX = p[chTiltX]
	s.frame.TiltY = p[chTiltY]
	s.frame.Light = p[chLight]
	s.frame.Hold = s.hold

	mag := math.Max(math.Abs(p[chTiltX]), math.Abs(p[chTiltY]))
	for i := range s.glints {
		g := &s.glints[i]
		switch {
		case mag > s.cfg.TiltThreshold && !g.above && (g.last.IsZero() || now.Sub(g.last) > s.cfg.GlintCooldown):
			g.above = true
			g.last = now
			g.on = true
			g.clear.reset(s.cfg.GlintDuration, func() { g.on = false })
		case mag <= s.cfg.TiltThreshold:
			g.above = false
		}
		s.frame.Glints[i] = g.on
	}
}

// Frame is the most recent render state. The Glints slice is reused.
func (s *Skills) Frame() SkillsFrame { return s.frame }
