package region

import (
	"math"
	"testing"
	"time"

	"github.com/olivier-w/folio/internal/carousel"
	"github.com/olivier-w/folio/internal/config"
	"github.com/olivier-w/folio/internal/content"
	"github.com/olivier-w/folio/internal/progress"
	"github.com/olivier-w/folio/internal/section"
	"github.com/olivier-w/folio/internal/surface"
)

type rig struct {
	b   *surface.Bus
	now time.Time
}

func newRig() *rig {
	start := time.Unix(1000, 0)
	b := surface.NewBus(start, surface.Viewport{Width: 1280, Height: 800})
	b.SetLayout(5000, map[string]surface.Rect{
		content.Hero:              {Top: 0, Width: 1280, Height: 800},
		content.About:             {Top: 800, Width: 1280, Height: 1000},
		content.AboutIllustration: {Left: 700, Top: 1000, Width: 400, Height: 400},
		content.Skills:            {Top: 1800, Width: 1280, Height: 1000},
		content.SkillIcon(0):      {Left: 100, Top: 2000, Width: 100, Height: 100},
		content.Projects:          {Top: 2800, Width: 1280, Height: 1200},
		content.ProjectsStage:     {Left: 0, Top: 3000, Width: 1280, Height: 600},
		content.ProjectsCard:      {Left: 440, Top: 3050, Width: 400, Height: 500},
		content.Contact:           {Top: 4000, Width: 1280, Height: 1000},
	})
	return &rig{b: b, now: start}
}

func (r *rig) frames(n int) {
	for iter := 0; iter < n; iter++ {
		r.now = r.now.Add(FrameInterval)
		r.b.Frame(r.now)
	}
}

func (r *rig) pointer(kind surface.PointerKind, x, y float64) {
	r.b.Pointer(surface.PointerEvent{Kind: kind, Pos: surface.Point{X: x, Y: y}, At: r.now})
}

func idle(s surface.Stats) bool {
	return s.Scroll == 0 && s.Resize == 0 && s.Pointer == 0 && s.Frames == 0 && s.Timers == 0
}

func TestFadeLifecycle(t *testing.T) {
	r := newRig()
	f := NewFade(r.b, progress.ElementRange{Handle: content.Hero, StartFrac: 0, EndFrac: 1}, progress.FadeOut)
	f.Start()
	f.Start()
	if s := r.b.Stats(); s.Scroll != 1 || s.Resize != 1 {
		t.Fatalf("expected one scroll and one resize listener, got %+v", s)
	}
	if f.Value() != 1 {
		t.Fatalf("expected hero fully visible at top, got %v", f.Value())
	}

	r.b.Scroll(400)
	if got := f.Value(); got != 0.5 {
		t.Fatalf("expected half faded at 400, got %v", got)
	}

	f.Stop()
	f.Stop()
	if s := r.b.Stats(); !idle(s) {
		t.Fatalf("expected no registrations after stop, got %+v", s)
	}
	r.b.Scroll(800)
	if f.Progress() != 0.5 {
		t.Fatal("expected stopped fade to ignore scrolling")
	}
}

func TestFadeRemeasuresOnResize(t *testing.T) {
	r := newRig()
	f := NewFade(r.b, progress.ElementRange{Handle: content.Hero, StartFrac: 0, EndFrac: 1}, nil)
	f.Start()
	defer f.Stop()
	r.b.Scroll(400)

	r.b.SetLayout(5000, map[string]surface.Rect{content.Hero: {Height: 1600}})
	r.b.Resize(surface.Viewport{Width: 640, Height: 800})
	if got := f.Progress(); got != 0.25 {
		t.Fatalf("expected progress recomputed to 0.25, got %v", got)
	}
}

type leakyEvents struct {
	surface.Events
	fns []func()
}

func (l *leakyEvents) AfterFunc(_ time.Duration, fn func()) func() {
	l.fns = append(l.fns, fn)
	return func() {}
}

func TestTimerIgnoresStaleCallbacks(t *testing.T) {
	ev := &leakyEvents{}
	tm := timer{events: ev}
	fired := []int{}
	tm.reset(time.Second, func() { fired = append(fired, 1) })
	tm.reset(time.Second, func() { fired = append(fired, 2) })
	for _, fn := range ev.fns {
		fn()
	}
	if len(fired) != 1 || fired[0] != 2 {
		t.Fatalf("expected only the latest schedule to fire, got %v", fired)
	}

	tm.reset(time.Second, func() { fired = append(fired, 3) })
	tm.stop()
	ev.fns[len(ev.fns)-1]()
	if len(fired) != 1 {
		t.Fatalf("expected stopped timer not to fire, got %v", fired)
	}
}

func TestTimerOnBus(t *testing.T) {
	r := newRig()
	tm := timer{events: r.b}
	fired := 0
	tm.reset(100*time.Millisecond, func() { fired = 1 })
	tm.reset(200*time.Millisecond, func() { fired = 2 })
	r.b.Advance(r.now.Add(150 * time.Millisecond))
	if fired != 0 || !tm.pending() {
		t.Fatalf("expected replaced timer not to fire, got %d", fired)
	}
	r.b.Advance(r.now.Add(250 * time.Millisecond))
	if fired != 2 || tm.pending() {
		t.Fatalf("expected latest timer to fire, got %d", fired)
	}
}

func TestFrameLoopStopsCleanly(t *testing.T) {
	r := newRig()
	ticks := 0
	var l frameLoop
	l = newFrameLoop(r.b, func(time.Time, time.Duration) {
		ticks++
		if ticks == 3 {
			l.stop()
		}
	})
	l.start()
	l.start()
	r.frames(10)
	if ticks != 3 {
		t.Fatalf("expected loop to stop itself after 3 ticks, got %d", ticks)
	}
	if r.b.Stats().Frames != 0 {
		t.Fatal("expected no pending frame")
	}
}

func TestHeroFadesAndDrifts(t *testing.T) {
	r := newRig()
	h := NewHero(r.b, progress.ElementRange{Handle: content.Hero, StartFrac: 0, EndFrac: 1})
	h.Start()
	r.b.Scroll(400)
	r.pointer(surface.PointerMove, 1280, 400)
	r.frames(300)

	f := h.Frame()
	if f.Opacity != 0.5 {
		t.Fatalf("expected opacity 0.5, got %v", f.Opacity)
	}
	if math.Abs(f.Blob.X-8) > 0.01 || math.Abs(f.Blob.Y-20) > 0.01 {
		t.Fatalf("unexpected blob offset %+v", f.Blob)
	}
	if math.Abs(f.Image.X-12) > 0.01 || math.Abs(f.Image.Y-35) > 0.01 {
		t.Fatalf("unexpected image offset %+v", f.Image)
	}

	h.Stop()
	if s := r.b.Stats(); !idle(s) {
		t.Fatalf("expected no registrations after stop, got %+v", s)
	}
}

func TestAboutBreathesOnSettle(t *testing.T) {
	r := newRig()
	a := NewAbout(r.b, DefaultAboutConfig(content.About, content.AboutIllustration))
	a.Start()

	for y := 0.0; y <= 1200; y += 5 {
		r.b.Scroll(y)
		r.frames(1)
	}
	if a.Frame().Settles != 0 {
		t.Fatal("expected no settle while scrolling")
	}

	peak := 1.0
	for iter := 0; iter < 40; iter++ {
		r.frames(1)
		peak = max(peak, a.Frame().IlloScale)
	}
	f := a.Frame()
	if f.Settles != 1 {
		t.Fatalf("expected one settle, got %d", f.Settles)
	}
	if peak <= 1 || peak > 1.015+1e-9 {
		t.Fatalf("expected a breath up to 1.015, peaked at %v", peak)
	}
	if len(f.Icons) != 3 {
		t.Fatalf("expected three icons, got %d", len(f.Icons))
	}
	// TransitRange over about: 0..1800, so 1200 is two thirds through
	if math.Abs(f.Progress-2.0/3) > 1e-9 {
		t.Fatalf("unexpected progress %v", f.Progress)
	}
	if math.Abs(f.TextY) > 0.5 {
		t.Fatalf("expected text to have arrived, got %v", f.TextY)
	}

	a.Stop()
	if s := r.b.Stats(); !idle(s) {
		t.Fatalf("expected no registrations after stop, got %+v", s)
	}
	if a.Detector().Listeners() != 0 {
		t.Fatal("expected settle subscription released")
	}
}

func TestAboutTiltsUnderPointer(t *testing.T) {
	r := newRig()
	a := NewAbout(r.b, DefaultAboutConfig(content.About, content.AboutIllustration))
	a.Start()
	defer a.Stop()
	r.b.Scroll(800)
	// portrait spans viewport x 700..1100, y 200..600; right-middle edge
	r.pointer(surface.PointerMove, 1100-1e-6, 400)
	r.frames(240)
	if got := a.Frame().IlloTilt.RotateY; math.Abs(got-3) > 0.01 {
		t.Fatalf("expected rotateY near 3, got %v", got)
	}
	r.pointer(surface.PointerLeave, 0, 0)
	r.frames(240)
	if got := a.Frame().IlloTilt.RotateY; math.Abs(got) > 0.01 {
		t.Fatalf("expected tilt to relax, got %v", got)
	}
}

func TestAboutMissingElementDegrades(t *testing.T) {
	r := newRig()
	a := NewAbout(r.b, DefaultAboutConfig("missing", "missing-too"))
	a.Start()
	defer a.Stop()
	r.b.Scroll(1000)
	r.frames(5)
	if a.Frame().Progress != 0 {
		t.Fatalf("expected progress 0 without the element, got %v", a.Frame().Progress)
	}
	r.pointer(surface.PointerMove, 500, 500)
	r.frames(5)
	if a.Frame().IlloTilt != (carousel.Tilt{}) {
		t.Fatal("expected no tilt without the portrait")
	}
}

func TestSkillsHoldAndGlint(t *testing.T) {
	r := newRig()
	s := NewSkills(r.b, DefaultSkillsConfig(content.Skills, content.SkillIcon(0)))
	s.Start()
	r.b.Scroll(1800)

	// icon 0 spans viewport 100..200, 200..300
	r.pointer(surface.PointerMove, 150, 250)
	if !s.hold {
		t.Fatal("expected hold while over an icon")
	}
	r.pointer(surface.PointerMove, 0, 0)
	if !s.hold || r.b.Stats().Timers != 1 {
		t.Fatal("expected hold to linger with a pending release")
	}
	r.pointer(surface.PointerMove, 150, 250)
	if r.b.Stats().Timers != 0 {
		t.Fatal("expected re-entering to clear the pending release")
	}
	r.pointer(surface.PointerMove, 0, 0)
	r.frames(70)
	if s.Frame().Hold {
		t.Fatal("expected hold released after the window")
	}

	// far top-left: tilt saturates past the threshold
	f := s.Frame()
	if f.TiltX < 4 || f.TiltY > -4 {
		t.Fatalf("expected strong tilt, got %+v", f)
	}
	if math.Abs(f.Light-0.8) > 0.01 {
		t.Fatalf("expected light near 0.8, got %v", f.Light)
	}

	glints := 0
	r2 := newRig()
	s2 := NewSkills(r2.b, DefaultSkillsConfig(content.Skills, content.SkillIcon(0)))
	s2.Start()
	r2.pointer(surface.PointerMove, 0, 0)
	prev := false
	for iter := 0; iter < 120; iter++ {
		r2.frames(1)
		on := s2.Frame().Glints[0]
		if on && !prev {
			glints++
		}
		prev = on
	}
	if glints != 1 {
		t.Fatalf("expected one glint on threshold crossing, got %d", glints)
	}

	s.Stop()
	s2.Stop()
	if st := r.b.Stats(); !idle(st) {
		t.Fatalf("expected no registrations after stop, got %+v", st)
	}
	if st := r2.b.Stats(); !idle(st) {
		t.Fatalf("expected no registrations after stop, got %+v", st)
	}
}

func TestNavTracksSectionsAndSlides(t *testing.T) {
	r := newRig()
	var specs []section.Spec
	for _, id := range []string{content.Hero, content.About, content.Skills, content.Projects, content.Contact} {
		specs = append(specs, section.Spec{ID: id, Handle: id})
	}
	n := NewNav(r.b, NavConfig{
		Sections:        specs,
		Entry:           content.Hero,
		EntryRange:      progress.ElementRange{Handle: content.Hero, StartFrac: 0, EndFrac: 1},
		BottomTolerance: 5,
	})
	changes := []string{}
	n.OnChange(func(id string) { changes = append(changes, id) })
	n.Start()

	if n.Active() != content.Hero || r.b.Fragment() != content.Hero || n.Animating() {
		t.Fatalf("expected home without animation, got %q animating=%v", n.Active(), n.Animating())
	}

	r.b.Scroll(1000)
	if n.Active() != content.About || r.b.Fragment() != content.About {
		t.Fatalf("expected about, got %q", n.Active())
	}
	if !n.Animating() {
		t.Fatal("expected the highlight to slide")
	}
	r.frames(180)
	if n.Indicator() != 1 || n.Animating() || r.b.Stats().Frames != 0 {
		t.Fatalf("expected highlight to rest on about, got %v", n.Indicator())
	}
	if len(changes) != 2 {
		t.Fatalf("expected two changes, got %v", changes)
	}

	n.Stop()
	if s := r.b.Stats(); !idle(s) {
		t.Fatalf("expected no registrations after stop, got %+v", s)
	}
}

func TestCarouselDragAndTilt(t *testing.T) {
	r := newRig()
	ctl, err := carousel.New(len(content.ProjectList), carousel.DefaultGate, carousel.TiltBalanced)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	c := NewCarousel(r.b, ctl, content.ProjectsStage, content.ProjectsCard)
	c.Start()
	r.b.Scroll(3000)

	r.pointer(surface.PointerDown, 800, 300)
	r.now = r.now.Add(50 * time.Millisecond)
	r.pointer(surface.PointerMove, 700, 300)
	r.now = r.now.Add(50 * time.Millisecond)
	r.pointer(surface.PointerUp, 600, 300)
	if got := c.Frame().Visible; got != [3]int{0, 1, 2} {
		t.Fatalf("expected drag to advance, got %v", got)
	}

	// card spans viewport x 440..840, y 50..550
	r.pointer(surface.PointerMove, 840-1e-6, 50)
	r.frames(240)
	tl := c.Frame().Tilt
	if math.Abs(tl.RotateX-8) > 0.02 || math.Abs(tl.RotateY-8) > 0.02 {
		t.Fatalf("expected tilt near (8, 8), got %+v", tl)
	}
	if r.b.Stats().Frames != 0 {
		t.Fatal("expected smoothing loop to stop once settled")
	}

	c.Stop()
	if s := r.b.Stats(); !idle(s) {
		t.Fatalf("expected no registrations after stop, got %+v", s)
	}
	if c.Frame().Tilt != (carousel.Tilt{}) {
		t.Fatal("expected tilt cleared on stop")
	}
}

func TestTiltModeChangesDoNotGrowListeners(t *testing.T) {
	r := newRig()
	ctl, _ := carousel.New(5, carousel.DefaultGate, carousel.TiltSubtle)
	c := NewCarousel(r.b, ctl, content.ProjectsStage, content.ProjectsCard)
	c.Start()
	before := r.b.Stats()
	m := carousel.TiltSubtle
	for iter := 0; iter < 50; iter++ {
		m = m.Next()
		c.SetTiltMode(m)
	}
	after := r.b.Stats()
	if after.Resize != before.Resize || after.Pointer != before.Pointer || after.Scroll != before.Scroll {
		t.Fatalf("listener counts grew: before %+v after %+v", before, after)
	}
	if after.Frames > 1 {
		t.Fatalf("expected at most one pending frame, got %d", after.Frames)
	}
	c.Stop()
	if s := r.b.Stats(); !idle(s) {
		t.Fatalf("expected no registrations after stop, got %+v", s)
	}
}

func TestScrollerReachesTarget(t *testing.T) {
	r := newRig()
	s := NewScroller(r.b, r.b.Scroll)
	seen := 0
	cancel := r.b.OnScroll(func(float64) { seen++ })
	defer cancel()
	s.ScrollTo(0, 1000)
	r.frames(300)
	if r.b.ScrollY() != 1000 || s.Scrolling() {
		t.Fatalf("expected scroll to land on 1000, got %v", r.b.ScrollY())
	}
	if seen < 5 {
		t.Fatalf("expected intermediate scroll events, got %d", seen)
	}
}

func TestBreathingScale(t *testing.T) {
	r := newRig()
	cfg := config.Default()
	b := NewBreathing(r.b, cfg.Breath.Cycle)
	if b.Scale() != 1 {
		t.Fatal("expected stopped breathing at rest")
	}
	b.Start()
	r.b.Advance(r.now.Add(2300 * time.Millisecond))
	if got := b.Scale(); got != 1.015 {
		t.Fatalf("expected peak, got %v", got)
	}
	b.Stop()
	if b.Scale() != 1 || b.Running() {
		t.Fatal("expected rest after stop")
	}
}

func TestPageLifecycle(t *testing.T) {
	r := newRig()
	p, err := NewPage(r.b, config.Default(), r.b.Scroll)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	p.Start()
	started := r.b.Stats()
	p.Start()
	if again := r.b.Stats(); again.Scroll != started.Scroll || again.Resize != started.Resize || again.Pointer != started.Pointer {
		t.Fatalf("second start added listeners: %+v vs %+v", again, started)
	}

	for y := 0.0; y <= 2000; y += 20 {
		r.b.Scroll(y)
		r.frames(1)
	}
	r.pointer(surface.PointerMove, 640, 400)
	p.Scroller.ScrollTo(r.b.ScrollY(), 3000)
	r.frames(30)

	if p.Opacity(content.Hero) != 0 {
		t.Fatalf("expected hero gone, got %v", p.Opacity(content.Hero))
	}
	if p.Opacity("unknown") != 1 {
		t.Fatal("expected unknown sections opaque")
	}
	if p.Reading.Value() <= 0 {
		t.Fatal("expected reading progress")
	}

	p.Stop()
	p.Stop()
	if s := r.b.Stats(); !idle(s) {
		t.Fatalf("expected no registrations after stop, got %+v", s)
	}

	// a second mount leaves the same footprint as the first
	p.Start()
	if s := r.b.Stats(); s.Scroll != started.Scroll || s.Resize != started.Resize || s.Pointer != started.Pointer {
		t.Fatalf("remount footprint differs: %+v vs %+v", s, started)
	}
	p.Stop()
}
