// Package term lays a table out in terminal cells and exposes it to the
// table engine as its element handles.
//
// Geometry mirrors a browser scrollable table: a fixed header line plus a
// rule sit above a body viewport, a one-cell scrollbar gutter appears on the
// right when the rows overflow the viewport, and the last column stretches
// to fill the frame.
package term

import (
	"github.com/charmbracelet/lipgloss"

	"scrolltable/internal/table"
)

const (
	cellPadding   = 1
	glyphRoom     = 2
	spacerHeight  = 2
	scrollbarSize = 1

	defaultMaxWidth = 40
)

// Column declares one table column.
type Column struct {
	Key   string
	Label string

	// Title is an explicit header tooltip; when empty the label is used.
	Title string

	Align    lipgloss.Position
	MinWidth int
	MaxWidth int
}

// TextFunc renders one cell of a row as plain text.
type TextFunc func(row table.Row, key string) string

// IDFunc returns a row's identity attribute.
type IDFunc func(row table.Row) string

// Surface is a terminal table. It implements table.Surface,
// table.ResizeSource and table.ScrollSource.
type Surface struct {
	columns []Column
	cells   []*headerCell
	hidden  map[string]bool
	rows    []table.Row
	text    TextFunc
	id      IDFunc

	width   int
	height  int
	painted bool

	scrollTop      int
	scrollLeft     int
	headerOffset   int
	containerWidth int

	resizeSubs map[int]func()
	scrollSubs map[int]func(int)
	nextSub    int
}

// NewSurface creates a surface for columns.
func NewSurface(columns []Column, text TextFunc, id IDFunc) *Surface {
	s := &Surface{
		columns:    columns,
		hidden:     map[string]bool{},
		text:       text,
		id:         id,
		resizeSubs: map[int]func(){},
		scrollSubs: map[int]func(int){},
	}
	for i := range columns {
		s.cells = append(s.cells, &headerCell{surface: s, index: i})
	}
	return s
}

// SetRows replaces the rows shown in the body.
func (s *Surface) SetRows(rows []table.Row) {
	s.rows = rows
	s.SetScrollTop(s.scrollTop)
}

// SetHidden replaces the set of hidden column keys.
func (s *Surface) SetHidden(hidden map[string]bool) {
	s.hidden = make(map[string]bool, len(hidden))
	for k, v := range hidden {
		if v {
			s.hidden[k] = true
		}
	}
}

// Resize sets the frame size and notifies resize subscribers.
func (s *Surface) Resize(width, height int) {
	s.width, s.height = width, height
	s.painted = false
	s.SetScrollTop(s.scrollTop)
	s.ScrollLeftBy(0)
	for _, fn := range s.resizeSubs {
		fn()
	}
}

// OnResize subscribes fn to frame resizes.
func (s *Surface) OnResize(fn func()) func() {
	id := s.nextSub
	s.nextSub++
	s.resizeSubs[id] = fn
	return func() { delete(s.resizeSubs, id) }
}

// OnScroll subscribes fn to changes of the horizontal scroll position.
func (s *Surface) OnScroll(fn func(scrollLeft int)) func() {
	id := s.nextSub
	s.nextSub++
	s.scrollSubs[id] = fn
	return func() { delete(s.scrollSubs, id) }
}

// TableVisible reports whether the table has a size and was drawn at it.
func (s *Surface) TableVisible() bool {
	return s.painted && s.width > 0 && s.height > 0
}

func (s *Surface) HeaderCells() []table.HeaderCell {
	cells := make([]table.HeaderCell, len(s.cells))
	for i, c := range s.cells {
		cells[i] = c
	}
	return cells
}

func (s *Surface) ViewportHeight() int {
	return max(0, s.height-spacerHeight)
}

func (s *Surface) ContentHeight() int {
	return len(s.rows)
}

func (s *Surface) scrollbar() int {
	if s.ContentHeight() > s.ViewportHeight() {
		return scrollbarSize
	}
	return 0
}

// ViewportWidth spans the body row plus the scrollbar gutter.
func (s *Surface) ViewportWidth() int {
	return s.BodyRowWidth() + s.scrollbar()
}

// BodyRowWidth is the natural row width, stretched to fill the frame.
func (s *Surface) BodyRowWidth() int {
	return max(s.naturalWidth(), s.width-s.scrollbar())
}

func (s *Surface) IntrinsicWidth() int {
	return s.ViewportWidth()
}

func (s *Surface) SetContainerWidth(width int) {
	s.containerWidth = width
	s.ScrollLeftBy(0)
}

func (s *Surface) HeaderSpacerHeight() int { return spacerHeight }

func (s *Surface) ScrollTop() int { return s.scrollTop }

// SetScrollTop scrolls the body, clamped to the scrollable range.
func (s *Surface) SetScrollTop(top int) {
	s.scrollTop = clamp(top, 0, max(0, s.ContentHeight()-s.ViewportHeight()))
}

// ScrollBy scrolls the body vertically by delta lines.
func (s *Surface) ScrollBy(delta int) {
	s.SetScrollTop(s.scrollTop + delta)
}

// ScrollLeft is the body's horizontal scroll position.
func (s *Surface) ScrollLeft() int { return s.scrollLeft }

// ScrollLeftBy scrolls the body horizontally and returns the new position.
// Scroll subscribers are notified when the position changes, whether by
// delta or by clamping to a new frame or container width.
func (s *Surface) ScrollLeftBy(delta int) int {
	prev := s.scrollLeft
	s.scrollLeft = clamp(s.scrollLeft+delta, 0, max(0, s.containerWidth-s.width))
	if s.scrollLeft != prev {
		for _, fn := range s.scrollSubs {
			fn(s.scrollLeft)
		}
	}
	return s.scrollLeft
}

func (s *Surface) SetHeaderOffset(offset int) { s.headerOffset = offset }

// FindRows returns handles for every row whose id equals id.
func (s *Surface) FindRows(id string) []table.RowHandle {
	var handles []table.RowHandle
	for i, r := range s.rows {
		if s.id(r) == id {
			handles = append(handles, rowHandle{surface: s, row: r, hint: i})
		}
	}
	return handles
}

// Tooltip returns the tooltip the layout pass set for a column.
func (s *Surface) Tooltip(key string) string {
	for i, c := range s.columns {
		if c.Key == key {
			return s.cells[i].tooltip
		}
	}
	return ""
}

// Columns returns the declared columns.
func (s *Surface) Columns() []Column {
	return s.columns
}

func (s *Surface) visible(i int) bool {
	return !s.hidden[s.columns[i].Key]
}

// contentWidth is the widest label or cell text of column i, within the
// column's bounds.
func (s *Surface) contentWidth(i int) int {
	col := s.columns[i]
	limit := col.MaxWidth
	if limit <= 0 {
		limit = defaultMaxWidth
	}
	w := lipgloss.Width(col.Label) + glyphRoom
	for _, r := range s.rows {
		if cw := min(lipgloss.Width(s.text(r, col.Key)), limit); cw > w {
			w = cw
		}
	}
	return max(w, col.MinWidth)
}

// columnWidths returns the body width of each column; hidden columns are 0
// and the last visible column absorbs the slack.
func (s *Surface) columnWidths() []int {
	widths := make([]int, len(s.columns))
	last, total := -1, 0
	for i := range s.columns {
		if !s.visible(i) {
			continue
		}
		widths[i] = s.contentWidth(i) + 2*cellPadding
		total += widths[i]
		last = i
	}
	if last >= 0 {
		if slack := s.width - s.scrollbar() - total; slack > 0 {
			widths[last] += slack
		}
	}
	return widths
}

func (s *Surface) naturalWidth() int {
	total := 0
	for i := range s.columns {
		if s.visible(i) {
			total += s.contentWidth(i) + 2*cellPadding
		}
	}
	return total
}

func (s *Surface) indexOf(row table.Row, hint int) int {
	if hint < len(s.rows) && s.id(s.rows[hint]) == s.id(row) {
		return hint
	}
	id := s.id(row)
	for i, r := range s.rows {
		if s.id(r) == id {
			return i
		}
	}
	return -1
}

type headerCell struct {
	surface    *Surface
	index      int
	wrapped    bool
	innerWidth int
	tooltip    string
}

func (c *headerCell) Wrapped() bool { return c.wrapped }
func (c *headerCell) Wrap() { c.wrapped = true }

func (c *headerCell) Width() int {
	return c.surface.columnWidths()[c.index]
}

func (c *headerCell) InnerPadding() int { return 2 * cellPadding }

func (c *headerCell) Visible() bool { return c.surface.visible(c.index) }

func (c *headerCell) TextAlign() table.Align {
	switch c.surface.columns[c.index].Align {
	case lipgloss.Center:
		return table.AlignCenter
	case lipgloss.Right:
		return table.AlignRight
	}
	return table.AlignLeft
}

func (c *headerCell) SetInnerWidth(width int) { c.innerWidth = width }

func (c *headerCell) Title() string { return c.surface.columns[c.index].Title }

func (c *headerCell) Text() string { return c.surface.columns[c.index].Label }

func (c *headerCell) SetTooltip(tooltip string) { c.tooltip = tooltip }

type rowHandle struct {
	surface *Surface
	row     table.Row
	hint    int
}

// OffsetTop is measured from the top of the frame, under the current
// scroll position.
func (r rowHandle) OffsetTop() int {
	idx := r.surface.indexOf(r.row, r.hint)
	return spacerHeight + idx - r.surface.scrollTop
}

func clamp(v, lo, hi int) int {
	return max(lo, min(v, hi))
}
