package ui

import (
	"bytes"
	"log"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/olivier-w/folio/internal/carousel"
	"github.com/olivier-w/folio/internal/config"
	"github.com/olivier-w/folio/internal/contact"
	"github.com/olivier-w/folio/internal/content"
	"github.com/olivier-w/folio/internal/region"
	"github.com/olivier-w/folio/internal/surface"
)

func newTestModel(t *testing.T, relayURL string) Model {
	t.Helper()
	m, err := New(config.Default(), contact.NewClient(relayURL))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	m.now = m.bus.Now
	m, _ = m.handleMsg(tea.WindowSizeMsg{Width: 120, Height: 40})
	return m
}

func step(m Model, n int) Model {
	for iter := 0; iter < n; iter++ {
		m, _ = m.handleMsg(frameMsg(m.bus.Now().Add(region.FrameInterval)))
	}
	return m
}

func key(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func runCmd(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		var out []tea.Msg
		for _, c := range batch {
			out = append(out, runCmd(c)...)
		}
		return out
	}
	return []tea.Msg{msg}
}

func TestLayoutPublishesGeometry(t *testing.T) {
	l := newLayout(100, 30)
	row := 0
	for _, s := range content.Sections {
		if l.top[s.ID] != row {
			t.Fatalf("expected %s at row %d, got %d", s.ID, row, l.top[s.ID])
		}
		if l.height[s.ID] < 30 {
			t.Fatalf("expected %s at least one viewport tall", s.ID)
		}
		row += l.height[s.ID]
	}
	if l.docRows != row {
		t.Fatalf("expected %d document rows, got %d", row, l.docRows)
	}

	r := l.rects()
	if got := r[content.About].Top; got != float64(l.top[content.About])*RowPx {
		t.Fatalf("unexpected about top %v", got)
	}
	if _, ok := r[content.SkillIcon(len(content.SkillList)-1)]; !ok {
		t.Fatal("expected every skill icon measured")
	}
	card, stage := r[content.ProjectsCard], r[content.ProjectsStage]
	if !stage.Contains(surface.Point{X: card.Left, Y: card.Top}) || card.Bottom() > stage.Bottom() {
		t.Fatal("expected the card inside the stage")
	}

	if l.sectionTop(content.Contact) != l.maxScroll() {
		t.Fatal("expected the last section's jump target clamped to the bottom")
	}
	p, ok := l.pointAt(3, navRows)
	if !ok || p.X != 28 || p.Y != 8 {
		t.Fatalf("unexpected point %+v %v", p, ok)
	}
	if _, ok := l.pointAt(3, 0); ok {
		t.Fatal("expected the nav rows outside the viewport")
	}
}

func TestWheelScrollClamps(t *testing.T) {
	m := newTestModel(t, "http://localhost")
	m, _ = m.handleMsg(tea.MouseMsg{Button: tea.MouseButtonWheelUp, Action: tea.MouseActionPress})
	if m.bus.ScrollY() != 0 {
		t.Fatalf("expected scroll clamped at 0, got %v", m.bus.ScrollY())
	}
	m, _ = m.handleMsg(tea.MouseMsg{Button: tea.MouseButtonWheelDown, Action: tea.MouseActionPress})
	if m.bus.ScrollY() != 3*RowPx {
		t.Fatalf("expected three rows scrolled, got %v", m.bus.ScrollY())
	}
	m, _ = m.handleMsg(tea.KeyMsg{Type: tea.KeyEnd})
	m = step(m, 300)
	if m.bus.ScrollY() != m.lay.maxScroll() {
		t.Fatalf("expected glide to the bottom, got %v", m.bus.ScrollY())
	}
}

func TestSectionJumpUpdatesFragmentAndGlides(t *testing.T) {
	m := newTestModel(t, "http://localhost")
	if m.Fragment() != content.Hero {
		t.Fatalf("expected home fragment, got %q", m.Fragment())
	}
	m, _ = m.handleMsg(key("3"))
	if m.Fragment() != content.Skills {
		t.Fatalf("expected fragment updated immediately, got %q", m.Fragment())
	}
	m = step(m, 300)
	if got, want := m.bus.ScrollY(), m.lay.sectionTop(content.Skills); got != want {
		t.Fatalf("expected scroll %v, got %v", want, got)
	}
	if m.page.Nav.Active() != content.Skills || m.Fragment() != content.Skills {
		t.Fatalf("expected skills active, got %q", m.page.Nav.Active())
	}
	if m.page.Nav.Indicator() != 2 {
		t.Fatalf("expected highlight on skills, got %v", m.page.Nav.Indicator())
	}
}

func TestTiltKeyDoesNotGrowListeners(t *testing.T) {
	m := newTestModel(t, "http://localhost")
	before := m.bus.Stats()
	start := m.TiltMode()
	for iter := 0; iter < 9; iter++ {
		m, _ = m.handleMsg(key("t"))
	}
	after := m.bus.Stats()
	if after.Pointer != before.Pointer || after.Resize != before.Resize || after.Scroll != before.Scroll {
		t.Fatalf("listeners grew: %+v -> %+v", before, after)
	}
	if m.TiltMode() != start {
		t.Fatalf("expected nine presses to cycle back to %v, got %v", start, m.TiltMode())
	}
	if !strings.Contains(m.status, "tilt") {
		t.Fatalf("expected a status message, got %q", m.status)
	}
}

func TestCarouselKeysAndDrag(t *testing.T) {
	m := newTestModel(t, "http://localhost")
	m, _ = m.handleMsg(tea.KeyMsg{Type: tea.KeyRight})
	if got := m.page.Carousel.Frame().Visible; got != [3]int{0, 1, 2} {
		t.Fatalf("expected next, got %v", got)
	}
	m, _ = m.handleMsg(tea.KeyMsg{Type: tea.KeyLeft})
	if got := m.page.Carousel.Frame().Visible; got != [3]int{4, 0, 1} {
		t.Fatalf("expected prev, got %v", got)
	}

	m.bus.Scroll(float64(m.lay.top[content.Projects]) * RowPx)
	y := m.lay.stageRow - m.lay.top[content.Projects] + navRows + 1
	m, _ = m.handleMsg(tea.MouseMsg{X: 90, Y: y, Button: tea.MouseButtonLeft, Action: tea.MouseActionPress})
	m = step(m, 3)
	m, _ = m.handleMsg(tea.MouseMsg{X: 70, Y: y, Button: tea.MouseButtonLeft, Action: tea.MouseActionMotion})
	m = step(m, 3)
	m, _ = m.handleMsg(tea.MouseMsg{X: 60, Y: y, Button: tea.MouseButtonNone, Action: tea.MouseActionRelease})
	if got := m.page.Carousel.Frame().Visible; got != [3]int{0, 1, 2} {
		t.Fatalf("expected drag left to advance, got %v", got)
	}

	m, _ = m.handleMsg(tea.MouseMsg{X: 5, Y: 0, Action: tea.MouseActionMotion})
	if m.page.Carousel.Controller().Tilt() != (carousel.Tilt{}) {
		t.Fatal("expected leaving the viewport to clear the tilt")
	}
}

func TestFormValidatesAndShowsRelayError(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"error":"Failed to send message"}`))
	}))
	defer srv.Close()

	m := newTestModel(t, srv.URL)
	m, _ = m.handleMsg(key("c"))
	if !m.form.focused || m.Fragment() != content.Contact {
		t.Fatal("expected the form focused after jumping to contact")
	}

	m, cmd := m.handleMsg(tea.KeyMsg{Type: tea.KeyCtrlS})
	if cmd != nil || m.form.status != "All fields are required" || !m.form.failed {
		t.Fatalf("expected inline validation error, got %q", m.form.status)
	}

	m, _ = m.handleMsg(key("Ada"))
	m, _ = m.handleMsg(tea.KeyMsg{Type: tea.KeyTab})
	m, _ = m.handleMsg(key("ada@example.com"))
	m, _ = m.handleMsg(tea.KeyMsg{Type: tea.KeyTab})
	m, _ = m.handleMsg(key("hello"))
	if got := m.form.value(); got.Name != "Ada" || got.Email != "ada@example.com" || got.Message != "hello" {
		t.Fatalf("unexpected form value %+v", got)
	}

	m, cmd = m.handleMsg(tea.KeyMsg{Type: tea.KeyCtrlS})
	if !m.form.sending || cmd == nil {
		t.Fatal("expected the form to be sending")
	}
	var sent *sentMsg
	for _, msg := range runCmd(cmd) {
		if s, ok := msg.(sentMsg); ok {
			sent = &s
		}
	}
	if sent == nil {
		t.Fatal("expected a send result")
	}
	m, _ = m.handleMsg(*sent)
	if m.form.sending || !m.form.failed || m.form.status != "Failed to send message" {
		t.Fatalf("expected inline relay error, got %q", m.form.status)
	}
	if calls != 1 {
		t.Fatalf("expected exactly one attempt, got %d", calls)
	}
	if m.form.value().Name != "Ada" {
		t.Fatal("expected the form kept after a failure")
	}

	m, _ = m.handleMsg(tea.KeyMsg{Type: tea.KeyEsc})
	if m.form.focused || m.quitting {
		t.Fatal("expected esc to leave the form without quitting")
	}
}

func TestFormClearsAfterSuccess(t *testing.T) {
	f := newContactForm(40)
	f.name.SetValue("Ada")
	f.sending = true
	f.finish(sentMsg{reply: "Message sent successfully!"})
	if f.sending || f.failed || f.status != "Message sent successfully!" || f.name.Value() != "" {
		t.Fatalf("unexpected form state %+v", f.status)
	}
}

func TestViewFillsWindow(t *testing.T) {
	m := newTestModel(t, "http://localhost")
	m = step(m, 5)
	view := m.View()
	if h := lipgloss.Height(view); h != 40 {
		t.Fatalf("expected view height 40, got %d", h)
	}
	for _, s := range content.Sections {
		if !strings.Contains(view, s.Title) {
			t.Fatalf("expected nav to list %s", s.Title)
		}
	}
	if !strings.Contains(view, content.Sections[0].Lead) {
		t.Fatal("expected the hero on screen")
	}

	m.bus.Scroll(m.lay.maxScroll())
	m = step(m, 5)
	if !strings.Contains(m.View(), "Message") {
		t.Fatal("expected the contact form at the bottom")
	}
}

func TestQuitStopsRegions(t *testing.T) {
	m := newTestModel(t, "http://localhost")
	m, cmd := m.handleMsg(key("q"))
	if cmd == nil || !m.quitting {
		t.Fatal("expected quit")
	}
	s := m.bus.Stats()
	if s.Scroll != 0 || s.Resize != 0 || s.Pointer != 0 || s.Frames != 0 || s.Timers != 0 {
		t.Fatalf("expected every region released, got %+v", s)
	}
	if m.View() != "" {
		t.Fatal("expected empty view after quit")
	}
}

func TestOpenAtFollowsResize(t *testing.T) {
	m, err := New(config.Default(), contact.NewClient("http://localhost"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	m.now = m.bus.Now
	m = m.OpenAt(content.Projects)
	m, _ = m.handleMsg(tea.WindowSizeMsg{Width: 120, Height: 40})
	m = step(m, 300)
	if got, want := m.bus.ScrollY(), m.lay.sectionTop(content.Projects); got != want {
		t.Fatalf("expected scroll %v after resize, got %v", want, got)
	}
	if m.Fragment() != content.Projects {
		t.Fatalf("expected projects fragment, got %q", m.Fragment())
	}

	m, _ = m.handleMsg(tea.WindowSizeMsg{Width: 60, Height: 12})
	if m.bus.ScrollY() > m.lay.maxScroll() {
		t.Fatal("expected scroll clamped after shrinking")
	}
}

func TestNavChangesAreLogged(t *testing.T) {
	var buf bytes.Buffer
	prev := log.Writer()
	log.SetOutput(&buf)
	t.Cleanup(func() { log.SetOutput(prev) })

	m := newTestModel(t, "http://localhost")
	m, _ = m.handleMsg(key("3"))
	for i := 0; i < 300 && m.page.Nav.Active() == content.Hero; i++ {
		m = step(m, 1)
	}
	if !m.page.Nav.Animating() {
		t.Fatal("expected the indicator sliding after the section changed")
	}
	m = step(m, 300)
	if m.page.Nav.Animating() {
		t.Fatal("expected the indicator at rest")
	}
	if !strings.Contains(buf.String(), "nav: skills active by containment") {
		t.Fatalf("expected the change logged with its rule, got %q", buf.String())
	}
}
