package table

import (
	"sort"
	"time"
)

// manualScheduler runs callbacks against a virtual clock.
type manualScheduler struct {
	now    time.Duration
	seq    int
	timers []manualTimer
}

type manualTimer struct {
	at  time.Duration
	seq int
	fn  func()
}

func (s *manualScheduler) AfterFunc(d time.Duration, fn func()) {
	s.seq++
	s.timers = append(s.timers, manualTimer{at: s.now + d, seq: s.seq, fn: fn})
}

// Advance moves the clock forward by d, firing every timer that falls due,
// including timers scheduled by fired callbacks.
func (s *manualScheduler) Advance(d time.Duration) {
	target := s.now + d
	for {
		sort.SliceStable(s.timers, func(i, j int) bool {
			if s.timers[i].at == s.timers[j].at {
				return s.timers[i].seq < s.timers[j].seq
			}
			return s.timers[i].at < s.timers[j].at
		})
		if len(s.timers) == 0 || s.timers[0].at > target {
			break
		}
		next := s.timers[0]
		s.timers = s.timers[1:]
		s.now = next.at
		next.fn()
	}
	s.now = target
}

func (s *manualScheduler) Pending() int {
	return len(s.timers)
}

type fakeCell struct {
	wrapped    bool
	wraps      int
	width      int
	padding    int
	hidden     bool
	align      Align
	innerWidth int
	title      string
	text       string
	tooltip    string
}

func (c *fakeCell) Wrapped() bool { return c.wrapped }
func (c *fakeCell) Wrap() { c.wrapped = true; c.wraps++ }
func (c *fakeCell) Width() int { return c.width }
func (c *fakeCell) InnerPadding() int { return c.padding }
func (c *fakeCell) Visible() bool { return !c.hidden }
func (c *fakeCell) TextAlign() Align { return c.align }
func (c *fakeCell) SetInnerWidth(w int) { c.innerWidth = w }
func (c *fakeCell) Title() string { return c.title }
func (c *fakeCell) Text() string { return c.text }
func (c *fakeCell) SetTooltip(s string) { c.tooltip = s }

type fakeRow struct {
	surface *fakeSurface
	top     int
}

// OffsetTop follows the scroll position like a rendered row would.
func (r fakeRow) OffsetTop() int {
	return r.top - r.surface.scrollTop
}

type fakeSurface struct {
	visible        bool
	cells          []*fakeCell
	viewportHeight int
	viewportWidth  int
	contentHeight  int
	bodyRowWidth   int
	intrinsicWidth int
	containerWidth int
	spacerHeight   int
	scrollTop      int
	scrollSets     int
	headerOffset   int
	layoutPasses   int
	rowTops        map[string][]int
}

func newFakeSurface() *fakeSurface {
	return &fakeSurface{
		cells: []*fakeCell{
			{width: 100, padding: 8, text: " Name "},
			{width: 60, padding: 8, text: "Amount", title: "Total amount"},
			{width: 80, padding: 8, text: "City"},
		},
		viewportHeight: 200,
		viewportWidth:  257,
		contentHeight:  100,
		bodyRowWidth:   240,
		intrinsicWidth: 240,
		spacerHeight:   20,
		rowTops:        map[string][]int{},
	}
}

func (s *fakeSurface) TableVisible() bool { return s.visible }

func (s *fakeSurface) HeaderCells() []HeaderCell {
	cells := make([]HeaderCell, len(s.cells))
	for i, c := range s.cells {
		cells[i] = c
	}
	return cells
}

func (s *fakeSurface) ViewportHeight() int { return s.viewportHeight }
func (s *fakeSurface) ViewportWidth() int { return s.viewportWidth }
func (s *fakeSurface) ContentHeight() int { return s.contentHeight }
func (s *fakeSurface) BodyRowWidth() int { return s.bodyRowWidth }
func (s *fakeSurface) IntrinsicWidth() int { return s.intrinsicWidth }
func (s *fakeSurface) HeaderSpacerHeight() int { return s.spacerHeight }
func (s *fakeSurface) ScrollTop() int { return s.scrollTop }
func (s *fakeSurface) SetHeaderOffset(o int) { s.headerOffset = o }

func (s *fakeSurface) SetContainerWidth(w int) {
	s.containerWidth = w
	s.layoutPasses++
}

func (s *fakeSurface) SetScrollTop(top int) {
	s.scrollTop = top
	s.scrollSets++
}

func (s *fakeSurface) FindRows(id string) []RowHandle {
	var rows []RowHandle
	for _, top := range s.rowTops[id] {
		rows = append(rows, fakeRow{surface: s, top: top})
	}
	return rows
}

func (s *fakeSurface) innerWidths() []int {
	widths := make([]int, len(s.cells))
	for i, c := range s.cells {
		widths[i] = c.innerWidth
	}
	return widths
}

type fakeResize struct {
	subscribers map[int]func()
	next        int
}

func (r *fakeResize) OnResize(fn func()) func() {
	if r.subscribers == nil {
		r.subscribers = map[int]func(){}
	}
	id := r.next
	r.next++
	r.subscribers[id] = fn
	return func() { delete(r.subscribers, id) }
}

func (r *fakeResize) fire() {
	for _, fn := range r.subscribers {
		fn()
	}
}

// scrollingSurface is a fakeSurface that reports horizontal scrolls.
type scrollingSurface struct {
	*fakeSurface
	subscribers map[int]func(int)
	next        int
}

func (s *scrollingSurface) OnScroll(fn func(int)) func() {
	if s.subscribers == nil {
		s.subscribers = map[int]func(int){}
	}
	id := s.next
	s.next++
	s.subscribers[id] = fn
	return func() { delete(s.subscribers, id) }
}

func (s *scrollingSurface) scroll(left int) {
	for _, fn := range s.subscribers {
		fn(left)
	}
}
