package carousel

import (
	"time"

	"github.com/olivier-w/folio/internal/surface"
)

// Controller owns the carousel window, the drag in progress and the
// center card's tilt target.
type Controller struct {
	state State
	gate  Gate
	mode  TiltMode
	tilt  Tilt
	drag  DragTracker
}

// New creates a controller over n items.
func New(n int, gate Gate, mode TiltMode) (*Controller, error) {
	st, err := NewState(n)
	if err != nil {
		return nil, err
	}
	return &Controller{state: st, gate: gate, mode: mode}, nil
}

// State is the current window.
func (c *Controller) State() State { return c.state }

// Visible returns the item indices for left, center and right.
func (c *Controller) Visible() [3]int { return c.state.Order }

// Next advances the window and resets the tilt.
func (c *Controller) Next() {
	c.state = c.state.Next()
	c.tilt = Tilt{}
}

// Prev rewinds the window and resets the tilt.
func (c *Controller) Prev() {
	c.state = c.state.Prev()
	c.tilt = Tilt{}
}

// Apply performs a release action.
func (c *Controller) Apply(a Action) {
	switch a {
	case GoNext:
		c.Next()
	case GoPrev:
		c.Prev()
	}
}

// BeginDrag starts tracking a drag.
func (c *Controller) BeginDrag(x float64, at time.Time) { c.drag.Begin(x, at) }

// DragTo records a drag sample.
func (c *Controller) DragTo(x float64, at time.Time) { c.drag.Move(x, at) }

// Dragging reports whether a drag is in progress.
func (c *Controller) Dragging() bool { return c.drag.Active() }

// DragOffset is the live drag displacement, for rendering the stage.
func (c *Controller) DragOffset() float64 {
	if !c.drag.Active() {
		return 0
	}
	return c.drag.Offset()
}

// Release ends the drag, decides, and applies the result.
func (c *Controller) Release(x float64, at time.Time) Action {
	if !c.drag.Active() {
		return SnapBack
	}
	offset, velocity := c.drag.End(x, at)
	a := c.gate.Decide(offset, velocity)
	c.Apply(a)
	return a
}

// CancelDrag drops the drag in progress without moving.
func (c *Controller) CancelDrag() { c.drag.Cancel() }

// Hover updates the tilt target from a pointer position and the center
// card's viewport rect. Positions outside the card reset the tilt.
func (c *Controller) Hover(p surface.Point, card surface.Rect) {
	if card.Width <= 0 || card.Height <= 0 || !card.Contains(p) {
		c.tilt = Tilt{}
		return
	}
	fx := (p.X - card.Left) / card.Width
	fy := (p.Y - card.Top) / card.Height
	c.tilt = TiltAt(fx, fy, c.mode.MaxAngle())
}

// Leave resets the tilt.
func (c *Controller) Leave() { c.tilt = Tilt{} }

// Tilt is the current tilt target.
func (c *Controller) Tilt() Tilt { return c.tilt }

// Mode is the tilt mode.
func (c *Controller) Mode() TiltMode { return c.mode }

// SetTiltMode changes how far the card leans. The current tilt is scaled
// to the new range.
func (c *Controller) SetTiltMode(m TiltMode) {
	old := c.mode.MaxAngle()
	c.mode = m
	if old > 0 {
		k := m.MaxAngle() / old
		c.tilt = Tilt{RotateX: c.tilt.RotateX * k, RotateY: c.tilt.RotateY * k}
	}
}
