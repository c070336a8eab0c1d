package surface

import (
	"slices"
	"sort"
	"time"
)

var _ Host = (*Bus)(nil)

// Bus is an in-memory Host. The terminal UI drives it from its Update
// loop and tests drive it directly; it is not safe for concurrent use,
// matching the single-threaded event model it stands in for.
type Bus struct {
	now       time.Time
	viewport  Viewport
	scrollY   float64
	docHeight float64
	rects     map[string]Rect
	fragment  string

	nextID   uint64
	scroll   listenerSet[float64]
	resize   listenerSet[Viewport]
	pointer  listenerSet[PointerEvent]
	frames   listenerSet[time.Time]
	inflight listenerSet[time.Time]
	timers   map[uint64]*timer
	measures int
}

type timer struct {
	id  uint64
	due time.Time
	fn  func()
}

// Stats reports live registrations. A torn-down region must leave
// every count where it found it.
type Stats struct {
	Scroll   int
	Resize   int
	Pointer  int
	Frames   int
	Timers   int
	Measures int
}

// NewBus creates a bus whose clock starts at now.
func NewBus(now time.Time, vp Viewport) *Bus {
	return &Bus{
		now:      now,
		viewport: vp,
		rects:    make(map[string]Rect),
		timers:   make(map[uint64]*timer),
	}
}

// --- Geometry ---

func (b *Bus) Viewport() Viewport      { return b.viewport }
func (b *Bus) ScrollY() float64        { return b.scrollY }
func (b *Bus) DocumentHeight() float64 { return b.docHeight }

func (b *Bus) Measure(handle string) (Rect, bool) {
	b.measures++
	r, ok := b.rects[handle]
	return r, ok
}

// SetLayout replaces the element table. It does not notify listeners;
// hosts follow it with Resize when the change should trigger re-measurement.
func (b *Bus) SetLayout(docHeight float64, rects map[string]Rect) {
	b.docHeight = docHeight
	b.rects = make(map[string]Rect, len(rects))
	for k, v := range rects {
		b.rects[k] = v
	}
}

// --- History ---

func (b *Bus) ReplaceFragment(id string) { b.fragment = id }
func (b *Bus) Fragment() string          { return b.fragment }

// --- Events ---

func (b *Bus) Now() time.Time { return b.now }

func (b *Bus) OnScroll(fn func(float64)) func() {
	id := b.id()
	b.scroll.add(id, fn)
	return func() { b.scroll.remove(id) }
}

func (b *Bus) OnResize(fn func(Viewport)) func() {
	id := b.id()
	b.resize.add(id, fn)
	return func() { b.resize.remove(id) }
}

func (b *Bus) OnPointer(fn func(PointerEvent)) func() {
	id := b.id()
	b.pointer.add(id, fn)
	return func() { b.pointer.remove(id) }
}

func (b *Bus) RequestFrame(fn func(time.Time)) func() {
	id := b.id()
	b.frames.add(id, fn)
	return func() {
		b.frames.remove(id)
		b.inflight.remove(id)
	}
}

func (b *Bus) AfterFunc(d time.Duration, fn func()) func() {
	id := b.id()
	b.timers[id] = &timer{id: id, due: b.now.Add(d), fn: fn}
	return func() { delete(b.timers, id) }
}

func (b *Bus) id() uint64 {
	b.nextID++
	return b.nextID
}

// --- driving ---

// Scroll moves the scroll position and notifies scroll listeners.
func (b *Bus) Scroll(y float64) {
	b.scrollY = y
	b.scroll.emit(y)
}

// Resize changes the viewport and notifies resize listeners.
func (b *Bus) Resize(vp Viewport) {
	b.viewport = vp
	b.resize.emit(vp)
}

// Pointer dispatches a pointer event. A zero At is stamped with the bus clock.
func (b *Bus) Pointer(ev PointerEvent) {
	if ev.At.IsZero() {
		ev.At = b.now
	}
	b.pointer.emit(ev)
}

// Advance moves the clock to now and fires every timer that is due, in
// due order. Timers scheduled by callbacks fire in the same call when
// they are already due.
func (b *Bus) Advance(now time.Time) {
	if now.After(b.now) {
		b.now = now
	}
	for {
		due := b.dueTimers()
		if len(due) == 0 {
			return
		}
		for _, t := range due {
			// a callback earlier in this batch may have cancelled it
			if _, live := b.timers[t.id]; !live {
				continue
			}
			delete(b.timers, t.id)
			t.fn()
		}
	}
}

func (b *Bus) dueTimers() []*timer {
	var due []*timer
	for _, t := range b.timers {
		if !t.due.After(b.now) {
			due = append(due, t)
		}
	}
	sort.Slice(due, func(i, j int) bool {
		if due[i].due.Equal(due[j].due) {
			return due[i].id < due[j].id
		}
		return due[i].due.Before(due[j].due)
	})
	return due
}

// Frame advances the clock and runs the frame callbacks requested before
// this call. Callbacks that request another frame land on the next one.
func (b *Bus) Frame(now time.Time) {
	b.Advance(now)
	b.inflight = b.frames
	b.frames = listenerSet[time.Time]{}
	b.inflight.emit(b.now)
	b.inflight = listenerSet[time.Time]{}
}

// Stats returns the current registration counts.
func (b *Bus) Stats() Stats {
	return Stats{
		Scroll:   b.scroll.len(),
		Resize:   b.resize.len(),
		Pointer:  b.pointer.len(),
		Frames:   b.frames.len(),
		Timers:   len(b.timers),
		Measures: b.measures,
	}
}

// listenerSet keeps registration order so dispatch is deterministic.
type listenerSet[T any] struct {
	order []uint64
	fns   map[uint64]func(T)
}

func (s *listenerSet[T]) add(id uint64, fn func(T)) {
	if s.fns == nil {
		s.fns = make(map[uint64]func(T))
	}
	s.fns[id] = fn
	s.order = append(s.order, id)
}

func (s *listenerSet[T]) remove(id uint64) {
	if _, ok := s.fns[id]; !ok {
		return
	}
	delete(s.fns, id)
	s.order = slices.DeleteFunc(s.order, func(v uint64) bool { return v == id })
}

func (s *listenerSet[T]) emit(v T) {
	for _, id := range slices.Clone(s.order) {
		// removed by an earlier listener during this dispatch
		if fn, ok := s.fns[id]; ok {
			fn(v)
		}
	}
}

func (s *listenerSet[T]) len() int { return len(s.fns) }
