package region

import (
	"math"
	"time"

	"github.com/charmbracelet/harmonica"

	"github.com/olivier-w/folio/internal/progress"
	"github.com/olivier-w/folio/internal/section"
	"github.com/olivier-w/folio/internal/spring"
	"github.com/olivier-w/folio/internal/surface"
)

// NavConfig tunes active-section tracking.
type NavConfig struct {
	Sections        []section.Spec
	Entry           string         // section id with the fade override, "" for none
	EntryRange      progress.Range // the entry section's fade window
	Focus           float64        // focus line as a fraction of viewport height
	BottomTolerance float64        // px; negative disables the bottom pin
}

// Nav keeps the active section and a sliding highlight under it.
type Nav struct {
	hooks
	host     surface.Host
	resolver *section.Resolver
	entry    *progress.Source
	index    map[string]int
	loop     frameLoop
	spring   harmonica.Spring
	pos      float64
	vel      float64
	onChange func(id string)
}

// NewNav creates the nav region.
func NewNav(host surface.Host, cfg NavConfig) *Nav {
	opts := []section.Option{}
	if cfg.Focus > 0 {
		opts = append(opts, section.WithFocus(cfg.Focus))
	}
	if cfg.Entry != "" {
		opts = append(opts, section.WithEntry(cfg.Entry))
	}
	if cfg.BottomTolerance >= 0 {
		opts = append(opts, section.WithBottomPin(cfg.BottomTolerance))
	}
	n := &Nav{
		host:     host,
		resolver: section.NewResolver(host, cfg.Sections, opts...),
		index:    make(map[string]int, len(cfg.Sections)),
		spring:   spring.Snappy.Harmonica(FPS),
	}
	if cfg.EntryRange != nil {
		n.entry = progress.New(cfg.EntryRange)
	}
	for i, s := range cfg.Sections {
		n.index[s.ID] = i
	}
	n.loop = newFrameLoop(host, n.tick)
	return n
}

// OnChange registers fn to run whenever the active section changes.
func (n *Nav) OnChange(fn func(id string)) { n.onChange = fn }

func (n *Nav) Start() {
	if n.running {
		return
	}
	n.running = true
	n.add(n.host.OnScroll(n.update))
	n.add(n.host.OnResize(func(surface.Viewport) { n.remeasure() }))
	n.add(n.loop.stop)
	n.remeasure()
	// the first resolution places the highlight without sliding
	if i, ok := n.index[n.resolver.Active()]; ok {
		n.pos, n.vel = float64(i), 0
		n.loop.stop()
	}
}

func (n *Nav) Stop() {
	if !n.running {
		return
	}
	n.release()
}

func (n *Nav) remeasure() {
	n.resolver.Remeasure(n.host)
	if n.entry != nil {
		n.entry.Resolve(n.host)
	}
	n.update(n.host.ScrollY())
}

func (n *Nav) update(y float64) {
	if n.entry != nil {
		n.resolver.SetEntryProgress(n.entry.Update(y).Value)
	}
	id, changed := n.resolver.Update(y)
	if !changed {
		return
	}
	n.loop.start()
	if n.onChange != nil {
		n.onChange(id)
	}
}

func (n *Nav) tick(time.Time, time.Duration) {
	target := n.target()
	n.pos, n.vel = n.spring.Update(n.pos, n.vel, target)
	if math.Abs(target-n.pos) < 0.005 && math.Abs(n.vel) < 0.005 {
		n.pos, n.vel = target, 0
		n.loop.stop()
	}
}

func (n *Nav) target() float64 {
	return float64(n.index[n.resolver.Active()])
}

// Active is the active section id.
func (n *Nav) Active() string { return n.resolver.Active() }

// Rule is the priority rule behind the current section.
func (n *Nav) Rule() section.Rule { return n.resolver.Rule() }

// Indicator is the highlight position as a fractional section index.
func (n *Nav) Indicator() float64 { return n.pos }

// Animating reports whether the highlight is still sliding.
func (n *Nav) Animating() bool { return n.loop.running() }
