package ui

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/olivier-w/folio/internal/carousel"
	"github.com/olivier-w/folio/internal/config"
	"github.com/olivier-w/folio/internal/contact"
	"github.com/olivier-w/folio/internal/content"
	"github.com/olivier-w/folio/internal/region"
	"github.com/olivier-w/folio/internal/surface"
	"github.com/olivier-w/folio/internal/util"
)

// Model is the Bubbletea model for the folio TUI. It hosts the motion
// regions on an in-memory bus: terminal input becomes scroll, resize and
// pointer events, and every frame tick advances the bus clock.
type Model struct {
	bus    *surface.Bus
	page   *region.Page
	client *contact.Client
	tuning config.Tuning
	now    func() time.Time

	lay     layout
	width   int
	height  int
	form    contactForm
	reading progress.Model
	inside  bool   // pointer is over the viewport
	target  string // section a glide is headed for
	frames  int

	status     string    // transient status message
	statusTime time.Time // when status was set
	quitting   bool
}

// New creates the model and starts every region.
func New(t config.Tuning, client *contact.Client) (Model, error) {
	now := time.Now
	bus := surface.NewBus(now(), surface.Viewport{})
	page, err := region.NewPage(bus, t, bus.Scroll)
	if err != nil {
		return Model{}, fmt.Errorf("build page: %w", err)
	}
	m := Model{
		bus:    bus,
		page:   page,
		client: client,
		tuning: t,
		now:    now,
		reading: progress.New(
			progress.WithSolidFill(sectionColor(content.Hero)),
			progress.WithoutPercentage(),
		),
	}
	page.Nav.OnChange(func(id string) {
		log.Printf("nav: %s active by %s", id, page.Nav.Rule())
	})
	m.form = newContactForm(60)
	m.resize(80, 24)
	page.Start()
	return m, nil
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(frameCmd(), tea.SetWindowTitle("folio"))
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.handleMsg(msg)
	return next, cmd
}

func (m Model) handleMsg(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		m.bus.Advance(m.now())
		if m.form.focused {
			return m.handleFormKey(msg)
		}
		return m.handleKey(msg)

	case tea.MouseMsg:
		m.bus.Advance(m.now())
		m.handleMouse(msg)
		return m, nil

	case frameMsg:
		m.bus.Frame(time.Time(msg))
		m.frames++
		if m.status != "" && time.Time(msg).Sub(m.statusTime) > 4*time.Second {
			m.status = ""
		}
		return m, frameCmd()

	case sentMsg:
		m.form.finish(msg)
		return m, nil

	case spinner.TickMsg:
		if !m.form.sending {
			return m, nil
		}
		var cmd tea.Cmd
		m.form.spinner, cmd = m.form.spinner.Update(msg)
		return m, cmd

	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		return m, nil
	}

	if m.form.focused {
		// cursor blink
		return m, m.form.passthrough(msg)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	if isQuit(msg) {
		m.quitting = true
		m.page.Stop()
		return m, tea.Sequence(tea.SetWindowTitle(""), tea.Quit)
	}
	switch key := msg.String(); key {
	case "down", "j":
		m.scrollBy(RowPx)
	case "up", "k":
		m.scrollBy(-RowPx)
	case " ", "pgdown", "f":
		m.glide(m.bus.ScrollY() + m.lay.viewport().Height*0.9)
	case "pgup", "b":
		m.glide(m.bus.ScrollY() - m.lay.viewport().Height*0.9)
	case "home", "g":
		m.glide(0)
	case "end", "G":
		m.glide(m.lay.maxScroll())
	case "1", "2", "3", "4", "5":
		for _, s := range content.Sections {
			if s.Key == key {
				m.jump(s.ID)
			}
		}
	case "left", "h":
		m.page.Carousel.Prev()
	case "right", "l":
		m.page.Carousel.Next()
	case "t":
		mode := m.page.Carousel.Frame().Mode.Next()
		m.page.Carousel.SetTiltMode(mode)
		m.setStatus("tilt " + mode.String())
	case "c", "enter":
		m.jump(content.Contact)
		return m, m.form.focus()
	}
	return m, nil
}

func (m Model) handleFormKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		m.quitting = true
		m.page.Stop()
		return m, tea.Sequence(tea.SetWindowTitle(""), tea.Quit)
	case "esc":
		m.form.blur()
		return m, nil
	}
	cmd, submit := m.form.update(msg)
	if submit {
		return m, m.form.submit(m.client)
	}
	return m, cmd
}

// handleMouse turns terminal mouse input into wheel scrolling and pointer
// events in viewport pixels.
func (m *Model) handleMouse(msg tea.MouseMsg) {
	switch msg.Button {
	case tea.MouseButtonWheelUp:
		m.scrollBy(-3 * RowPx)
		return
	case tea.MouseButtonWheelDown:
		m.scrollBy(3 * RowPx)
		return
	}

	pos, ok := m.lay.pointAt(msg.X, msg.Y)
	if !ok {
		if m.inside {
			m.inside = false
			m.bus.Pointer(surface.PointerEvent{Kind: surface.PointerLeave})
		}
		return
	}
	m.inside = true
	kind := surface.PointerMove
	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft {
			return
		}
		kind = surface.PointerDown
	case tea.MouseActionRelease:
		kind = surface.PointerUp
	}
	m.bus.Pointer(surface.PointerEvent{Kind: kind, Pos: pos})
}

// scrollBy moves the scroll position immediately, cancelling any glide.
func (m *Model) scrollBy(px float64) {
	m.page.Scroller.Cancel()
	m.target = ""
	m.bus.Scroll(util.Clamp(m.bus.ScrollY()+px, 0, m.lay.maxScroll()))
}

// glide scrolls smoothly to y.
func (m *Model) glide(y float64) {
	m.target = ""
	m.page.Scroller.ScrollTo(m.bus.ScrollY(), util.Clamp(y, 0, m.lay.maxScroll()))
}

// jump glides to a section and updates the fragment right away.
func (m *Model) jump(id string) {
	m.bus.ReplaceFragment(id)
	m.glide(m.lay.sectionTop(id))
	m.target = id
}

func (m *Model) setStatus(s string) {
	m.status = s
	m.statusTime = m.bus.Now()
}

func (m *Model) resize(w, h int) {
	m.width, m.height = w, h
	m.lay = newLayout(w, h-navRows-footRows)
	m.form.setWidth(m.lay.formW)
	m.bus.SetLayout(m.lay.docHeight(), m.lay.rects())
	m.bus.Resize(m.lay.viewport())
	if y := m.bus.ScrollY(); y > m.lay.maxScroll() {
		m.bus.Scroll(m.lay.maxScroll())
	}
	if m.target != "" && m.page.Scroller.Scrolling() {
		id := m.target
		m.glide(m.lay.sectionTop(id))
		m.target = id
	}
}

// OpenAt glides to a section once the program starts, the way a page
// loaded with a fragment scrolls to it.
func (m Model) OpenAt(id string) Model {
	if content.IndexOf(id) >= 0 {
		m.jump(id)
	}
	return m
}

// Fragment is the current location fragment, as a browser would show it.
func (m Model) Fragment() string { return m.bus.Fragment() }

// TiltMode is the carousel's current tilt mode.
func (m Model) TiltMode() carousel.TiltMode { return m.page.Carousel.Frame().Mode }

func (m Model) View() string {
	if m.quitting {
		return ""
	}
	scrollRow := toRows(m.bus.ScrollY())
	out := make([]string, m.lay.viewRows)
	for _, s := range content.Sections {
		top, h := m.lay.top[s.ID], m.lay.height[s.ID]
		if top+h <= scrollRow || top >= scrollRow+m.lay.viewRows {
			continue
		}
		for i, line := range m.renderSection(s.ID, h) {
			if r := top + i - scrollRow; r >= 0 && r < m.lay.viewRows {
				out[r] = line
			}
		}
	}
	body := lipgloss.NewStyle().MaxWidth(m.lay.cols).Render(strings.Join(out, "\n"))
	return m.renderNav() + "\n" + body + "\n" + m.renderFooter()
}
