package ui

import (
	"math"

	"github.com/olivier-w/folio/internal/content"
	"github.com/olivier-w/folio/internal/surface"
)

// One terminal cell in document pixels.
const (
	RowPx = 16.0
	ColPx = 8.0
)

// chrome rows around the scrolling viewport
const (
	navRows  = 2
	footRows = 2
)

// layout places every section and measured element in terminal cells and
// publishes the same geometry, in pixels, to the host bus.
type layout struct {
	cols     int
	viewRows int
	docRows  int
	top      map[string]int
	height   map[string]int

	illoCol, illoRow, illoW, illoH int
	stageRow, stageH               int
	cardCol, cardRow, cardW, cardH int
	sideW                          int
	formRow, formCol, formW        int
}

func newLayout(cols, viewRows int) layout {
	cols = max(cols, 40)
	viewRows = max(viewRows, 8)
	l := layout{
		cols:     cols,
		viewRows: viewRows,
		top:      make(map[string]int, len(content.Sections)),
		height:   make(map[string]int, len(content.Sections)),
	}
	skillRows := 5 + 2*((len(content.SkillList)+1)/2)
	heights := map[string]int{
		content.Hero:     viewRows,
		content.About:    max(viewRows, 18),
		content.Skills:   max(viewRows, skillRows),
		content.Projects: max(viewRows, 20),
		content.Contact:  max(viewRows, 20),
	}
	row := 0
	for _, s := range content.Sections {
		l.top[s.ID] = row
		l.height[s.ID] = heights[s.ID]
		row += heights[s.ID]
	}
	l.docRows = row

	l.illoW = max(16, min(28, cols/3))
	l.illoH = 9
	l.illoCol = cols - l.illoW - 4
	l.illoRow = l.top[content.About] + 4

	l.stageRow = l.top[content.Projects] + 4
	l.stageH = 14
	l.cardW = max(18, cols/3)
	l.sideW = max(10, int(float64(l.cardW)*0.85)-4)
	l.cardH = 12
	l.cardCol = (cols - l.cardW) / 2
	l.cardRow = l.stageRow + 1

	l.formRow = l.top[content.Contact] + 6
	l.formCol = 4
	l.formW = min(cols-8, 60)
	return l
}

// skillIconCell is where skill i's icon sits.
func (l layout) skillIconCell(i int) (row, col int) {
	return l.top[content.Skills] + 4 + (i/2)*2, 4 + (i%2)*(l.cols/2)
}

func cellRect(col, row, w, h int) surface.Rect {
	return surface.Rect{
		Left:   float64(col) * ColPx,
		Top:    float64(row) * RowPx,
		Width:  float64(w) * ColPx,
		Height: float64(h) * RowPx,
	}
}

// rects is the element table for the bus.
func (l layout) rects() map[string]surface.Rect {
	r := make(map[string]surface.Rect, len(content.Sections)+len(content.SkillList)+4)
	for _, s := range content.Sections {
		r[s.ID] = cellRect(0, l.top[s.ID], l.cols, l.height[s.ID])
	}
	r[content.AboutIllustration] = cellRect(l.illoCol, l.illoRow, l.illoW, l.illoH)
	for i := range content.SkillList {
		row, col := l.skillIconCell(i)
		r[content.SkillIcon(i)] = cellRect(col, row, 2, 1)
	}
	r[content.ProjectsStage] = cellRect(0, l.stageRow, l.cols, l.stageH)
	r[content.ProjectsCard] = cellRect(l.cardCol, l.cardRow, l.cardW, l.cardH)
	r[content.ContactForm] = cellRect(l.formCol, l.formRow, l.formW, 11)
	return r
}

func (l layout) viewport() surface.Viewport {
	return surface.Viewport{Width: float64(l.cols) * ColPx, Height: float64(l.viewRows) * RowPx}
}

func (l layout) docHeight() float64 { return float64(l.docRows) * RowPx }

// maxScroll is the largest scroll position in pixels.
func (l layout) maxScroll() float64 {
	return math.Max(0, l.docHeight()-l.viewport().Height)
}

// sectionTop is a section's scroll target in pixels.
func (l layout) sectionTop(id string) float64 {
	return math.Min(float64(l.top[id])*RowPx, l.maxScroll())
}

// pointAt maps a screen cell to viewport pixels, at the cell center. ok is
// false outside the scrolling viewport.
func (l layout) pointAt(x, y int) (surface.Point, bool) {
	row := y - navRows
	if row < 0 || row >= l.viewRows || x < 0 || x >= l.cols {
		return surface.Point{}, false
	}
	return surface.Point{
		X: float64(x)*ColPx + ColPx/2,
		Y: float64(row)*RowPx + RowPx/2,
	}, true
}

// toRows converts a pixel offset to whole rows.
func toRows(px float64) int { return int(math.Round(px / RowPx)) }

// toCols converts a pixel offset to whole columns.
func toCols(px float64) int { return int(math.Round(px / ColPx)) }
