// Package table is the layout and sort engine of a scrollable table with a
// fixed header.
//
// A Table keeps header widths aligned with the body columns, sorts the rows
// it watches and scrolls to rows on request. It talks to the rendered table
// only through a Surface and schedules its polling through the host's
// Scheduler, so every method must be called from the host event loop.
package table

import (
	"io"
	"maps"
	"time"

	"github.com/sirupsen/logrus"

	"scrolltable/internal/future"
)

// Table is the controller shared by the headers of one table.
type Table struct {
	surface  Surface
	registry *Registry
	log      logrus.FieldLogger

	gate   *Gate
	layout *Layout
	sorter *Sorter
	nav    *Navigator

	headersFixed *future.Future

	rows        []Row
	hidden      map[string]bool
	unsubscribe func()
	unscroll    func()
}

type options struct {
	log          logrus.FieldLogger
	pollInterval time.Duration
	descending   bool
	defaultSort  string
}

// Option configures a Table.
type Option func(*options)

// WithLogger sets the logger used for debug output.
func WithLogger(log logrus.FieldLogger) Option {
	return func(o *options) { o.log = log }
}

// WithPollInterval overrides RenderPollInterval.
func WithPollInterval(d time.Duration) Option {
	return func(o *options) { o.pollInterval = d }
}

// WithDescending makes the initial direction descending.
func WithDescending() Option {
	return func(o *options) { o.descending = true }
}

// WithDefaultSort starts the table sorted on expr.
func WithDefaultSort(expr string) Option {
	return func(o *options) { o.defaultSort = expr }
}

// New creates a table over surface. registry is the grid's shared column
// registry and may be nil when no header is hidable.
func New(surface Surface, sched Scheduler, registry *Registry, opts ...Option) *Table {
	o := options{pollInterval: RenderPollInterval}
	for _, opt := range opts {
		opt(&o)
	}
	if o.log == nil {
		discard := logrus.New()
		discard.SetOutput(io.Discard)
		o.log = discard
	}
	if registry == nil {
		registry = &Registry{}
	}

	t := &Table{
		surface:      surface,
		registry:     registry,
		log:          o.log,
		headersFixed: future.New(),
		sorter: NewSorter(SortState{
			Expression: o.defaultSort,
			Ascending:  !o.descending,
		}),
	}
	t.gate = NewGate(surface, sched, o.pollInterval)
	t.layout = &Layout{surface: surface, headersFixed: t.headersFixed, log: o.log}
	t.nav = &Navigator{surface: surface, gate: t.gate, headersFixed: t.headersFixed, log: o.log}
	return t
}

// Mount subscribes to resizes and schedules the first layout pass. When the
// surface is a ScrollSource the header follows its horizontal scroll.
func (t *Table) Mount(resize ResizeSource) {
	if resize != nil && t.unsubscribe == nil {
		t.unsubscribe = resize.OnResize(func() { t.Relayout() })
	}
	if src, ok := t.surface.(ScrollSource); ok && t.unscroll == nil {
		t.unscroll = src.OnScroll(t.SyncHorizontalScroll)
	}
	t.Relayout()
}

// Unmount drops the resize and scroll subscriptions.
func (t *Table) Unmount() {
	if t.unsubscribe != nil {
		t.unsubscribe()
		t.unsubscribe = nil
	}
	if t.unscroll != nil {
		t.unscroll()
		t.unscroll = nil
	}
}

// Relayout waits for the table to render and then fixes the header widths.
// The returned future resolves after the pass ran.
func (t *Table) Relayout() *future.Future {
	done := future.New()
	t.gate.WaitForRender().Then(func() {
		t.layout.FixHeaderWidths()
		done.Resolve()
	})
	return done
}

// WaitForRender exposes the render gate.
func (t *Table) WaitForRender() *future.Future {
	return t.gate.WaitForRender()
}

// FixHeaderWidths runs a layout pass right away. Callers must already know
// the table is visible.
func (t *Table) FixHeaderWidths() {
	t.layout.FixHeaderWidths()
}

// HeadersFixed resolves after the first layout pass.
func (t *Table) HeadersFixed() *future.Future {
	return t.headersFixed
}

// SetRows replaces the watched row sequence. A new non-nil sequence triggers
// a layout pass; passing the sequence already watched does not.
func (t *Table) SetRows(rows []Row) {
	same := t.rows != nil && sameRows(t.rows, rows)
	t.rows = rows
	if rows != nil && !same {
		t.Relayout()
	}
}

// sameRows reports whether a and b are the same sequence. Two empty
// sequences count as the same.
func sameRows(a, b []Row) bool {
	if len(a) != len(b) || cap(a) != cap(b) {
		return false
	}
	return len(a) == 0 || &a[0] == &b[0]
}

// Rows returns the watched row sequence.
func (t *Table) Rows() []Row {
	return t.rows
}

// SetHiddenColumns reports the grid's hidden column set. The table keeps a
// copy and re-lays out only when the contents changed.
func (t *Table) SetHiddenColumns(hidden map[string]bool) {
	if t.hidden != nil && maps.Equal(t.hidden, hidden) {
		return
	}
	t.hidden = maps.Clone(hidden)
	if t.hidden == nil {
		t.hidden = map[string]bool{}
	}
	t.Relayout()
}

// RowSelected handles a row-selected event.
func (t *Table) RowSelected(id string) {
	t.nav.ScrollToRow(id)
}

// SyncHorizontalScroll keeps the header in step with the body's horizontal
// scroll position.
func (t *Table) SyncHorizontalScroll(scrollLeft int) {
	t.surface.SetHeaderOffset(-scrollLeft)
}

// SortState returns the active sort.
func (t *Table) SortState() SortState {
	return t.sorter.State()
}

// SetSortExpression selects a new sort expression in ascending order.
func (t *Table) SetSortExpression(expr string) {
	t.sorter.SetExpression(expr)
}

// ToggleSort flips the sort direction.
func (t *Table) ToggleSort() {
	t.sorter.Toggle()
}

// DoSort reorders the watched rows in place.
func (t *Table) DoSort(cmp Comparator) error {
	return t.sorter.DoSort(t.rows, cmp)
}

// AddHidableColumn registers a column in the shared registry.
func (t *Table) AddHidableColumn(key, title string) {
	t.registry.RegisterHidable(key, title)
}

// Registry returns the shared column registry.
func (t *Table) Registry() *Registry {
	return t.registry
}
