package ui

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/olivier-w/folio/internal/carousel"
	"github.com/olivier-w/folio/internal/content"
	"github.com/olivier-w/folio/internal/util"
)

// canvas is one section's rows. Elements are placed by row and column and
// clipped to the section.
type canvas struct {
	rows []string
}

func newCanvas(h int) *canvas { return &canvas{rows: make([]string, h)} }

// put replaces a row.
func (c *canvas) put(row, col int, s string) {
	if row < 0 || row >= len(c.rows) {
		return
	}
	c.rows[row] = spaces(col) + s
}

// overlay appends s at col when the row's content ends before it; the
// existing content wins otherwise.
func (c *canvas) overlay(row, col int, s string) {
	if row < 0 || row >= len(c.rows) {
		return
	}
	w := lipgloss.Width(c.rows[row])
	if w > col {
		return
	}
	c.rows[row] += spaces(col-w) + s
}

// block places a multi-line string, one line per row.
func (c *canvas) block(row, col int, s string, place func(row, col int, s string)) {
	for i, line := range strings.Split(s, "\n") {
		place(row+i, col, line)
	}
}

func (m Model) renderSection(id string, h int) []string {
	switch id {
	case content.Hero:
		return m.renderHero(h)
	case content.About:
		return m.renderAbout(h)
	case content.Skills:
		return m.renderSkills(h)
	case content.Projects:
		return m.renderProjects(h)
	case content.Contact:
		return m.renderContact(h)
	}
	return make([]string, h)
}

func section(id string) content.Section {
	if i := content.IndexOf(id); i >= 0 {
		return content.Sections[i]
	}
	return content.Section{ID: id}
}

func (m Model) heading(c *canvas, id string, op float64) {
	s := section(id)
	st := lipgloss.NewStyle().Bold(true).Foreground(fade(sectionColor(id), op))
	c.put(1, 4, st.Render(s.Lead))
}

func (m Model) renderHero(h int) []string {
	f := m.page.Hero.Frame()
	c := newCanvas(h)
	s := section(content.Hero)
	mid := h/2 - 2

	row := mid + toRows(f.Image.Y)
	col := 4 + toCols(f.Image.X)
	lead := lipgloss.NewStyle().Bold(true).Foreground(fade("#FFFFFF", f.Opacity))
	body := lipgloss.NewStyle().Foreground(fade("#AAAAAA", f.Opacity))
	c.put(row, max(col, 0), lead.Render(s.Lead))
	for i, line := range s.Body {
		c.put(row+2+i, max(col, 0), body.Render(line))
	}

	blob := lipgloss.NewStyle().Foreground(fade(sectionColor(content.Hero), f.Opacity*0.8))
	c.overlay(mid-3+toRows(f.Blob.Y), m.lay.cols*2/3+toCols(f.Blob.X), blob.Render("◉"))
	c.put(h-2, 4, lipgloss.NewStyle().Foreground(fade("#666666", f.Opacity)).Render("scroll ↓"))
	return c.rows
}

// portrait is the about illustration.
var portrait = []string{
	"   .-\"\"\"-.   ",
	"  /  _ _  \\  ",
	"  |  o o  |  ",
	"  |   ^   |  ",
	"  |  \\_/  |  ",
	"   \\_____/   ",
	"   /     \\   ",
}

func (m Model) renderAbout(h int) []string {
	f := m.page.About.Frame()
	op := m.page.Opacity(content.About)
	accent := sectionColor(content.About)
	top := m.lay.top[content.About]
	c := newCanvas(h)

	bg := lipgloss.NewStyle().Foreground(fade("#444444", op*0.6))
	c.put(3+toRows(f.BackgroundY), 2, bg.Render(strings.Repeat("· ", max(m.lay.cols/2-2, 1))))

	m.heading(c, content.About, op)
	s := section(content.About)
	textW := max(m.lay.illoCol-12, 20)
	text := lipgloss.NewStyle().Width(textW).Foreground(fade("#AAAAAA", op)).Render(strings.Join(s.Body, " "))
	c.block(5+toRows(f.TextY), 4, text, c.put)

	// the portrait breathes through its border and leans with the tilt
	illoOp := f.IlloOpacity * op
	glow := util.Clamp01((f.IlloScale - 1) / 0.015)
	border := lerpColor(parseHex("#555555"), parseHex(accent), glow)
	frame := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lerpColor(backdrop, border, illoOp).color()).
		Foreground(fade("#DDDDDD", illoOp)).
		Width(m.lay.illoW - 2).
		Align(lipgloss.Center).
		Render(strings.Join(portrait, "\n"))
	frame = skew(frame, f.IlloTilt.RotateY/3)
	illoRow := m.lay.illoRow - top + toRows(f.IlloY)
	c.block(illoRow, m.lay.illoCol, frame, c.overlay)

	for i, ic := range f.Icons {
		g := content.Glyphs[i%len(content.Glyphs)]
		st := lipgloss.NewStyle().Foreground(fade(accent, ic.Opacity*op))
		c.overlay(illoRow+1+i*3+toRows(ic.Y), m.lay.illoCol-7, st.Render(g))
	}

	caption := fmt.Sprintf("tilt %+.1f° %+.1f°", f.IlloTilt.RotateX, f.IlloTilt.RotateY)
	c.overlay(illoRow+m.lay.illoH+1, m.lay.illoCol, lipgloss.NewStyle().Foreground(fade("#666666", op)).Render(caption))
	return c.rows
}

func (m Model) renderSkills(h int) []string {
	f := m.page.Skills.Frame()
	op := m.page.Opacity(content.Skills)
	top := m.lay.top[content.Skills]
	c := newCanvas(h)
	m.heading(c, content.Skills, op)

	dx, dy := toCols(f.OffsetX), toRows(f.OffsetY)
	cardW := max(m.lay.cols/2-6, 12)
	for i, sk := range content.SkillList {
		row, col := m.lay.skillIconCell(i)
		icon := lerpColor(backdrop, parseHex(sk.Color), 0.4+f.Light*0.75)
		if i < len(f.Glints) && f.Glints[i] {
			icon = rgbFromHSV(float64(m.frames%60)/60, 0.25, 1)
		}
		line := lipgloss.NewStyle().Foreground(lerpColor(backdrop, icon, op).color()).Render("◆") + " " +
			lipgloss.NewStyle().Bold(true).Foreground(fade("#FFFFFF", op)).Render(sk.Name) + " " +
			lipgloss.NewStyle().Foreground(fade("#888888", op)).Render(sk.Description)
		line = lipgloss.NewStyle().MaxWidth(cardW).Render(line)
		place := c.put
		if i%2 == 1 {
			place = c.overlay
		}
		place(row-top+dy, max(col+dx, 0), line)
	}

	status := fmt.Sprintf("tilt %+.1f° %+.1f°", f.TiltX, f.TiltY)
	if f.Hold {
		status += "  holding"
	}
	c.put(h-2, 4, lipgloss.NewStyle().Foreground(fade("#666666", op)).Render(status))
	return c.rows
}

func (m Model) renderProjects(h int) []string {
	fr := m.page.Carousel.Frame()
	op := m.page.Opacity(content.Projects)
	accent := sectionColor(content.Projects)
	c := newCanvas(h)
	m.heading(c, content.Projects, op)
	s := section(content.Projects)
	c.put(2, 4, lipgloss.NewStyle().Foreground(fade("#888888", op)).Render(strings.Join(s.Body, " ")))

	card := func(r carousel.Role, w int) string {
		slot := carousel.SlotFor(r)
		p := content.ProjectList[fr.Visible[r]]
		alpha := slot.Alpha * op
		border := lerpColor(parseHex("#444444"), parseHex(accent), math.Max(slot.Rim, 1-slot.Alpha))
		if r == carousel.Center {
			// the lit edge follows the pointer
			border = lerpColor(border, parseHex("#FFFFFF"), math.Abs(fr.Tilt.RotateX)/fr.Mode.MaxAngle()*0.5)
		}
		body := lipgloss.NewStyle().Bold(true).Render(p.Title) + "\n\n" + p.Summary
		return lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lerpColor(backdrop, border, alpha).color()).
			Foreground(fade("#DDDDDD", alpha)).
			Padding(1, 1).
			Width(w - 2).
			Height(int(float64(m.lay.cardH-2) * slot.Scale)).
			Render(body)
	}

	center := skew(card(carousel.Center, m.lay.cardW), fr.Tilt.RotateY/3)
	row := lipgloss.JoinHorizontal(lipgloss.Center,
		card(carousel.Left, m.lay.sideW), "  ", center, "  ", card(carousel.Right, m.lay.sideW))
	shift := util.Clamp(float64(toCols(fr.DragOffset)), -float64(m.lay.cols)/4, float64(m.lay.cols)/4)
	col := max(m.lay.cardCol-m.lay.sideW-2+int(shift), 0)
	c.block(m.lay.stageRow-m.lay.top[content.Projects], col, row, c.put)

	info := fmt.Sprintf("%s  %d/%d  sweep %.0f°", fr.Mode.Icon(), fr.Visible[carousel.Center]+1,
		len(content.ProjectList), fr.Tilt.SweepAngle())
	c.put(m.lay.stageRow-m.lay.top[content.Projects]+m.lay.stageH+1, 4,
		lipgloss.NewStyle().Foreground(fade("#666666", op)).Render(info))
	return c.rows
}

// contact glyphs pulse with their own breath
var contactGlyphs = []string{"✉", "☎", "⌂"}

func (m Model) renderContact(h int) []string {
	op := m.page.Opacity(content.Contact)
	accent := sectionColor(content.Contact)
	c := newCanvas(h)
	m.heading(c, content.Contact, op)
	s := section(content.Contact)
	for i, line := range s.Body {
		c.put(2+i, 4, lipgloss.NewStyle().Foreground(fade("#AAAAAA", op)).Render(line))
	}

	amp := m.tuning.Breath.Max - m.tuning.Breath.Min
	pulse := func(scale float64) float64 {
		if amp <= 0 {
			return 0
		}
		return util.Clamp01((scale - 1) / amp)
	}
	iconPulse := pulse(m.page.FormIcons.Scale()) * 1.5
	var glyphs []string
	for _, g := range contactGlyphs {
		glyphs = append(glyphs, lipgloss.NewStyle().Foreground(fade(accent, op*(0.5+0.5*util.Clamp01(iconPulse)))).Render(g))
	}
	c.put(m.lay.formRow-m.lay.top[content.Contact]-1, m.lay.formCol, strings.Join(glyphs, "  "))

	form := m.form.view(m.lay.formW, accent, pulse(m.page.Form.Scale())*op)
	c.block(m.lay.formRow-m.lay.top[content.Contact], m.lay.formCol, form, c.put)
	return c.rows
}

// skew leans a block by shifting its lines; lean is in columns at the
// top and bottom edges.
func skew(block string, lean float64) string {
	lines := strings.Split(block, "\n")
	n := len(lines)
	if n < 2 || math.Abs(lean) < 0.5 {
		return block
	}
	pad := int(math.Ceil(math.Abs(lean)))
	mid := float64(n-1) / 2
	for i, line := range lines {
		off := pad + int(math.Round(-lean*(float64(i)-mid)/mid))
		lines[i] = spaces(off) + line
	}
	return strings.Join(lines, "\n")
}

func (m Model) renderNav() string {
	active := m.page.Nav.Active()
	var labels []string
	centers := make([]float64, len(content.Sections))
	x := lipgloss.Width(headerStyle.Render("folio")) + 3
	for i, s := range content.Sections {
		label := " " + s.Key + " " + s.Title + " "
		st := navStyle
		if s.ID == active {
			st = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(sectionColor(s.ID)))
		}
		w := lipgloss.Width(label)
		centers[i] = float64(x) + float64(w)/2
		x += w + 1
		labels = append(labels, st.Render(label))
	}
	line := "  " + headerStyle.Render("folio") + " " + strings.Join(labels, " ")

	pos := util.Clamp(m.page.Nav.Indicator(), 0, float64(len(centers)-1))
	i0 := int(math.Floor(pos))
	i1 := min(i0+1, len(centers)-1)
	cx := util.Lerp(centers[i0], centers[i1], pos-float64(i0))
	barColor := lipgloss.Color(sectionColor(active))
	if m.page.Nav.Animating() {
		// dimmed while sliding between labels
		barColor = fade(sectionColor(active), 0.6)
	}
	bar := lipgloss.NewStyle().Foreground(barColor).Render("▔▔▔")
	return line + "\n" + spaces(int(math.Round(cx))-1) + bar
}

func (m Model) renderFooter() string {
	active := m.page.Nav.Active()
	value := m.page.Reading.Value()
	bar := m.reading
	bar.FullColor = sectionColor(active)
	bar.Width = max(m.lay.cols-12, 10)
	line := "  " + bar.ViewAs(value) + " " + statusStyle.Render(util.FormatPercent(value))

	help := helpText(m.form.focused)
	if m.status != "" {
		help = m.status
	}
	return line + "\n  " + helpStyle.Render(help)
}

func spaces(n int) string {
	if n <= 0 {
		return ""
	}
	return strings.Repeat(" ", n)
}
