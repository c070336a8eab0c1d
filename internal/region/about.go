package region

import (
	"math"
	"time"

	"github.com/olivier-w/folio/internal/breath"
	"github.com/olivier-w/folio/internal/carousel"
	"github.com/olivier-w/folio/internal/jitter"
	"github.com/olivier-w/folio/internal/progress"
	"github.com/olivier-w/folio/internal/settle"
	"github.com/olivier-w/folio/internal/spring"
	"github.com/olivier-w/folio/internal/surface"
)

// AboutConfig tunes the about section.
type AboutConfig struct {
	Section      string // element handle of the section
	Illustration string // element handle of the portrait

	Text, Illo, Background, Icon, Tilt spring.Params

	Jitter   jitter.Config
	Channels []jitter.Channel
	Settle   settle.Config

	BreathDuration time.Duration
	BreathPeak     float64
	TiltAngle      float64 // degrees at the portrait's edge
}

// DefaultAboutConfig returns the stock tuning for the given handles.
func DefaultAboutConfig(section, illustration string) AboutConfig {
	return AboutConfig{
		Section:        section,
		Illustration:   illustration,
		Text:           spring.Text,
		Illo:           spring.Illustration,
		Background:     spring.Background,
		Icon:           spring.Icon,
		Tilt:           spring.Tilt,
		Jitter:         jitter.DefaultConfig(),
		Channels:       jitter.DefaultChannels,
		Settle:         settle.DefaultConfig(),
		BreathDuration: 800 * time.Millisecond,
		BreathPeak:     1.015,
		TiltAngle:      3,
	}
}

// IconFrame is one floating icon.
type IconFrame struct {
	Y       float64
	Opacity float64
}

// AboutFrame is the about section's render state. Offsets are pixels.
type AboutFrame struct {
	Progress    float64
	TextY       float64
	IlloY       float64
	BackgroundY float64
	IlloOpacity float64
	IlloScale   float64
	IlloTilt    carousel.Tilt
	Icons       []IconFrame
	Settles     int
}

type iconTrack struct {
	base    progress.Keyframes
	ease    func(float64) float64
	opacity progress.Keyframes
	spring  *spring.Integrator
}

// About runs the layered parallax of the about section: text, portrait
// and background arrive and hold, icons float with scroll-reactive jitter,
// and the portrait takes one breath each time scrolling settles.
type About struct {
	hooks
	host surface.Host
	cfg  AboutConfig
	loop frameLoop

	src        *progress.Source
	text       progress.Keyframes
	illo       progress.Keyframes
	bg         progress.Keyframes
	illoFade   progress.Keyframes
	textSpring *spring.Integrator
	illoSpring *spring.Integrator
	bgSpring   *spring.Integrator
	icons      []iconTrack

	jit    *jitter.Group
	det    *settle.Detector
	breath *breath.OneShot

	tilt       *spring.Integrator2
	tiltTarget spring.Vec2
	illoRect   surface.Rect
	haveIllo   bool

	frame AboutFrame
}

// icon float keyframes in vh, and their staggered fade-in starts
var (
	iconSpan  = []float64{8, 7, 9}
	iconEases = []func(float64) float64{
		func(t float64) float64 { return progress.EaseInOut(t * 0.95) },
		func(t float64) float64 { return progress.EaseInOut(math.Pow(t, 1.1)) },
		func(t float64) float64 { return progress.EaseInOut(math.Pow(t, 0.9)) },
	}
	iconFadeIn = []float64{0.10, 0.18, 0.26}
)

// NewAbout creates the about region.
func NewAbout(host surface.Host, cfg AboutConfig) *About {
	if len(cfg.Channels) == 0 {
		cfg.Channels = jitter.DefaultChannels
	}
	hold := func(from float64) progress.Keyframes {
		return progress.NewKeyframes(progress.EaseInOut,
			progress.Stop{At: 0, Value: from},
			progress.Stop{At: 0.5, Value: 0},
			progress.Stop{At: 1, Value: 0},
		)
	}
	fade := func(in float64) progress.Keyframes {
		return progress.NewKeyframes(progress.EaseInOut,
			progress.Stop{At: in, Value: 0},
			progress.Stop{At: in + 0.15, Value: 1},
			progress.Stop{At: 0.85, Value: 1},
			progress.Stop{At: 1, Value: 0},
		)
	}

	a := &About{
		host:       host,
		cfg:        cfg,
		src:        progress.New(progress.TransitRange{Handle: cfg.Section}),
		text:       hold(-20),
		illo:       hold(-6),
		bg:         hold(-10),
		illoFade:   fade(0),
		textSpring: spring.New(cfg.Text, 0),
		illoSpring: spring.New(cfg.Illo, 0),
		bgSpring:   spring.New(cfg.Background, 0),
		jit:        jitter.NewGroup(cfg.Jitter, cfg.Channels...),
		det:        settle.New(cfg.Settle),
		breath:     breath.NewOneShot(cfg.BreathDuration, cfg.BreathPeak),
		tilt:       spring.New2(cfg.Tilt, spring.Vec2{}),
	}
	for i, n := 0, a.jit.Len(); i < n; i++ {
		k := i % len(iconSpan)
		a.icons = append(a.icons, iconTrack{
			base: progress.NewKeyframes(progress.Linear,
				progress.Stop{At: 0, Value: -iconSpan[k]},
				progress.Stop{At: 1, Value: iconSpan[k]},
			),
			ease:    iconEases[k],
			opacity: fade(iconFadeIn[k]),
			spring:  spring.New(cfg.Icon, 0),
		})
	}
	a.frame.Icons = make([]IconFrame, len(a.icons))
	a.frame.IlloScale = 1
	a.loop = newFrameLoop(host, a.tick)
	return a
}

func (a *About) Start() {
	if a.running {
		return
	}
	a.running = true
	a.remeasure()
	a.add(a.host.OnResize(func(surface.Viewport) { a.remeasure() }))
	a.add(a.host.OnPointer(a.onPointer))
	a.add(a.det.Subscribe(func(ev settle.Event) {
		a.breath.Trigger(ev.At)
		a.frame.Settles++
	}))
	a.loop.start()
	a.add(a.loop.stop)
}

func (a *About) Stop() {
	if !a.running {
		return
	}
	a.release()
	a.tiltTarget = spring.Vec2{}
}

// remeasure recomputes geometry only; jitter phase and settle history
// carry over.
func (a *About) remeasure() {
	a.src.Resolve(a.host)
	a.illoRect, a.haveIllo = a.host.Measure(a.cfg.Illustration)
}

func (a *About) onPointer(ev surface.PointerEvent) {
	if !a.haveIllo || ev.Kind == surface.PointerLeave {
		a.tiltTarget = spring.Vec2{}
		return
	}
	r := viewportRect(a.illoRect, a.host.ScrollY())
	if !r.Contains(ev.Pos) || r.Width <= 0 || r.Height <= 0 {
		a.tiltTarget = spring.Vec2{}
		return
	}
	t := carousel.TiltAt((ev.Pos.X-r.Left)/r.Width, (ev.Pos.Y-r.Top)/r.Height, a.cfg.TiltAngle)
	a.tiltTarget = spring.Vec2{X: t.RotateX, Y: t.RotateY}
}

func (a *About) tick(now time.Time, dt time.Duration) {
	y := a.host.ScrollY()
	p := a.src.Update(y).Value
	vh := a.host.Viewport().Height / 100

	a.frame.Progress = p
	a.frame.TextY = a.textSpring.Step(dt, a.text.At(p)*vh)
	a.frame.IlloY = a.illoSpring.Step(dt, a.illo.At(p)*vh)
	a.frame.BackgroundY = a.bgSpring.Step(dt, a.bg.At(p)*vh)
	a.frame.IlloOpacity = a.illoFade.At(p)

	offsets := a.jit.Update(y, now)
	for i, ic := range a.icons {
		base := ic.base.At(ic.ease(p)) * vh
		a.frame.Icons[i] = IconFrame{
			Y:       ic.spring.Step(dt, base+offsets[i]),
			Opacity: ic.opacity.At(p),
		}
	}

	a.det.OnVelocitySample(y, now)
	a.frame.IlloScale = a.breath.Scale(now)

	t := a.tilt.Step(dt, a.tiltTarget)
	a.frame.IlloTilt = carousel.Tilt{RotateX: t.X, RotateY: t.Y}
}

// Frame is the most recent render state. The Icons slice is reused.
func (a *About) Frame() AboutFrame { return a.frame }

// Detector exposes the settle detector for additional listeners.
func (a *About) Detector() *settle.Detector { return a.det }
