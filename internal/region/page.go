package region

import (
	"fmt"

	"github.com/olivier-w/folio/internal/carousel"
	"github.com/olivier-w/folio/internal/config"
	"github.com/olivier-w/folio/internal/content"
	"github.com/olivier-w/folio/internal/progress"
	"github.com/olivier-w/folio/internal/section"
	"github.com/olivier-w/folio/internal/surface"
)

// Page is every region of the portfolio, started and stopped together.
type Page struct {
	Hero      *Hero
	Reading   *Fade
	Fades     map[string]*Fade
	About     *About
	Skills    *Skills
	Nav       *Nav
	Carousel  *Carousel
	Form      *Breathing
	FormIcons *Breathing
	Scroller  *Scroller

	regions []Region
	running bool
}

// NewPage builds the regions from tuning. scrollTo is how smooth section
// jumps move the host's scroll position.
func NewPage(host surface.Host, t config.Tuning, scrollTo func(y float64)) (*Page, error) {
	ctl, err := carousel.New(len(content.ProjectList), t.Carousel.Gate, t.TiltMode())
	if err != nil {
		return nil, fmt.Errorf("projects carousel: %w", err)
	}

	about := DefaultAboutConfig(content.About, content.AboutIllustration)
	about.Text = t.Springs.Text
	about.Illo = t.Springs.Illustration
	about.Background = t.Springs.Background
	about.Icon = t.Springs.Icon
	about.Tilt = t.Springs.Tilt
	about.Jitter = t.Jitter.Config
	about.Channels = t.Jitter.Channels
	about.Settle = t.Settle
	about.BreathDuration = t.Breath.OneShot
	about.BreathPeak = t.Breath.Max

	icons := make([]string, len(content.SkillList))
	for i := range icons {
		icons[i] = content.SkillIcon(i)
	}

	specs := make([]section.Spec, len(content.Sections))
	for i, s := range content.Sections {
		specs[i] = section.Spec{ID: s.ID, Handle: s.ID}
	}

	glyphCycle := t.Breath.Cycle
	glyphCycle.Max = 1 + (t.Breath.Max-1)*2/3

	p := &Page{
		Hero:    NewHero(host, t.Fades.Hero.Range(content.Hero)),
		Reading: NewFade(host, progress.PageRange{}, progress.Linear),
		Fades: map[string]*Fade{
			content.About:    NewFade(host, t.Fades.About.Range(content.About), progress.Symmetric),
			content.Skills:   NewFade(host, t.Fades.Skills.Range(content.Skills), progress.Symmetric),
			content.Projects: NewFade(host, t.Fades.Projects.Range(content.Projects), progress.Symmetric),
			content.Contact:  NewFade(host, t.Fades.Contact.Range(content.Contact), progress.Symmetric),
		},
		About:  NewAbout(host, about),
		Skills: NewSkills(host, DefaultSkillsConfig(content.Skills, icons...)),
		Nav: NewNav(host, NavConfig{
			Sections:        specs,
			Entry:           content.Hero,
			EntryRange:      t.Fades.Hero.Range(content.Hero),
			Focus:           t.Nav.Focus,
			BottomTolerance: t.Nav.BottomTolerance,
		}),
		Carousel:  NewCarousel(host, ctl, content.ProjectsStage, content.ProjectsCard),
		Form:      NewBreathing(host, t.Breath.Cycle),
		FormIcons: NewBreathing(host, glyphCycle.HalfOffset()),
		Scroller:  NewScroller(host, scrollTo),
	}
	p.regions = []Region{p.Hero, p.Reading, p.About, p.Skills, p.Nav, p.Carousel, p.Form, p.FormIcons}
	for _, s := range content.Sections {
		if f, ok := p.Fades[s.ID]; ok {
			p.regions = append(p.regions, f)
		}
	}
	return p, nil
}

// Start starts every region.
func (p *Page) Start() {
	if p.running {
		return
	}
	p.running = true
	for _, r := range p.regions {
		r.Start()
	}
}

// Stop stops every region and any smooth scroll in flight.
func (p *Page) Stop() {
	if !p.running {
		return
	}
	p.running = false
	p.Scroller.Cancel()
	for i := len(p.regions) - 1; i >= 0; i-- {
		p.regions[i].Stop()
	}
}

// Running reports whether the page is started.
func (p *Page) Running() bool { return p.running }

// Opacity is a section's fade value; sections without a fade are opaque,
// and the hero follows its own exit fade.
func (p *Page) Opacity(id string) float64 {
	if id == content.Hero {
		return p.Hero.Frame().Opacity
	}
	if f, ok := p.Fades[id]; ok {
		return f.Value()
	}
	return 1
}
