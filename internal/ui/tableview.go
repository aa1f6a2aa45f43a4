package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/sirupsen/logrus"

	"scrolltable/internal/config"
	"scrolltable/internal/model"
	"scrolltable/internal/table"
	"scrolltable/internal/term"
	"scrolltable/internal/util"
)

// TableView binds a dataset to a terminal surface and the table engine.
type TableView struct {
	name    string
	columns []config.Column
	grid    *Grid

	surface     *term.Surface
	table       *table.Table
	headers     []*table.Header
	comparators []table.Comparator

	rows   []table.Row
	active int

	width  int
	height int
}

// NewTableView builds the headers for columns and mounts the table.
func NewTableView(name string, layout *config.Layout, columns []config.Column, grid *Grid, sched table.Scheduler, log logrus.FieldLogger) (*TableView, error) {
	if len(columns) == 0 {
		return nil, fmt.Errorf("table %q has no columns", name)
	}

	formats := make(map[string]util.Formatter, len(columns))
	termColumns := make([]term.Column, 0, len(columns))
	for _, c := range columns {
		f, err := util.LookupFormatter(c.Format)
		if err != nil {
			return nil, fmt.Errorf("column %q: %w", c.Key, err)
		}
		formats[c.Key] = f
		termColumns = append(termColumns, term.Column{
			Key:      c.Key,
			Label:    c.Label,
			Title:    c.Title,
			Align:    alignment(c.Align),
			MinWidth: c.MinWidth,
			MaxWidth: c.MaxWidth,
		})
	}

	text := func(r table.Row, key string) string {
		return formats[key](r.(*model.Record).Values[key])
	}
	id := func(r table.Row) string {
		return r.(*model.Record).ID
	}
	surface := term.NewSurface(termColumns, text, id)

	opts := []table.Option{table.WithLogger(log.WithField("table", name))}
	if layout.PollInterval > 0 {
		opts = append(opts, table.WithPollInterval(layout.PollInterval))
	}
	if layout.Descending {
		opts = append(opts, table.WithDescending())
	}
	if expr := defaultSortExpression(layout.DefaultSort, columns); expr != "" {
		opts = append(opts, table.WithDefaultSort(expr))
	}
	tbl := table.New(surface, sched, grid.Registry, opts...)

	v := &TableView{
		name:    name,
		columns: columns,
		grid:    grid,
		surface: surface,
		table:   tbl,
	}
	for _, c := range columns {
		cmp, err := lookupComparator(c.Comparator)
		if err != nil {
			return nil, fmt.Errorf("column %q: %w", c.Key, err)
		}
		v.headers = append(v.headers, table.NewHeader(tbl, table.HeaderConfig{
			Key:        c.Key,
			On:         c.On,
			Comparator: cmp,
			Hidable:    c.Hidable,
			Translate:  c.Translate,
			Label:      c.Label,
			Text:       c.Key,
		}))
		v.comparators = append(v.comparators, cmp)
		if c.Hidden {
			grid.Hide(c.Key)
		}
	}

	tbl.Mount(surface)
	v.ApplyHidden()
	v.active = -1
	v.NextColumn()
	return v, nil
}

// defaultSortExpression accepts a column key as shorthand for the column's
// sort expression.
func defaultSortExpression(s string, columns []config.Column) string {
	s = strings.TrimSpace(s)
	for _, c := range columns {
		if c.Key != s {
			continue
		}
		if c.On != "" {
			return c.On
		}
		return table.ColumnExpression(c.Key)
	}
	return s
}

func alignment(a string) lipgloss.Position {
	switch a {
	case config.AlignCenter:
		return lipgloss.Center
	case config.AlignRight:
		return lipgloss.Right
	}
	return lipgloss.Left
}

// Name is the dataset name.
func (v *TableView) Name() string { return v.name }

// Len is the number of rows.
func (v *TableView) Len() int { return len(v.rows) }

// SetRecords replaces the rows and reapplies the active sort.
func (v *TableView) SetRecords(records []*model.Record) error {
	rows := make([]table.Row, len(records))
	for i, r := range records {
		rows[i] = r
	}
	v.rows = rows
	v.surface.SetRows(rows)
	v.table.SetRows(rows)
	return v.table.DoSort(v.activeComparator())
}

// Resize sets the size of the table area.
func (v *TableView) Resize(width, height int) {
	if width == v.width && height == v.height {
		return
	}
	v.width, v.height = width, height
	v.surface.Resize(width, height)
}

// View draws the table.
func (v *TableView) View() string {
	return v.surface.Render(term.RenderOptions{
		Styles:  tableStyles(),
		Glyph:   v.glyph,
		Focused: v.ActiveKey(),
	})
}

// Close releases the resize subscription.
func (v *TableView) Close() {
	v.table.Unmount()
}

func (v *TableView) glyph(key string) string {
	if h := v.header(key); h != nil {
		return h.Glyph()
	}
	return ""
}

func (v *TableView) header(key string) *table.Header {
	for _, h := range v.headers {
		if h.Key() == key {
			return h
		}
	}
	return nil
}

func (v *TableView) activeComparator() table.Comparator {
	for i, h := range v.headers {
		if h.IsActive() {
			return v.comparators[i]
		}
	}
	return nil
}

// ActiveKey is the key of the focused column, or "".
func (v *TableView) ActiveKey() string {
	if v.active < 0 || v.active >= len(v.headers) {
		return ""
	}
	return v.headers[v.active].Key()
}

// ActiveTooltip is the tooltip of the focused column.
func (v *TableView) ActiveTooltip() string {
	return v.surface.Tooltip(v.ActiveKey())
}

// NextColumn moves the focus to the next visible column.
func (v *TableView) NextColumn() {
	v.moveFocus(1)
}

// PrevColumn moves the focus to the previous visible column.
func (v *TableView) PrevColumn() {
	v.moveFocus(-1)
}

func (v *TableView) moveFocus(step int) {
	n := len(v.headers)
	start := v.active
	if start < 0 {
		start = -step
		if step < 0 {
			start = 0
		}
	}
	for i := 1; i <= n; i++ {
		idx := ((start+step*i)%n + n) % n
		if !v.grid.IsHidden(v.headers[idx].Key()) {
			v.focus(idx)
			return
		}
	}
	v.focus(-1)
}

func (v *TableView) focus(idx int) {
	if v.active >= 0 && v.active < len(v.headers) {
		v.headers[v.active].Leave()
	}
	v.active = idx
	if idx >= 0 {
		v.headers[idx].Enter()
	}
}

// JumpToColumn focuses the nth visible column, counting from 1.
func (v *TableView) JumpToColumn(number int) bool {
	seen := 0
	for i, h := range v.headers {
		if v.grid.IsHidden(h.Key()) {
			continue
		}
		seen++
		if seen == number {
			v.focus(i)
			return true
		}
	}
	return false
}

// SortActiveColumn clicks the focused header, once more if needed to reach
// the requested direction.
func (v *TableView) SortActiveColumn(desc bool) error {
	if v.active < 0 {
		return nil
	}
	h := v.headers[v.active]
	if err := h.Click(); err != nil {
		return err
	}
	if v.table.SortState().Ascending == desc {
		return h.Click()
	}
	return nil
}

// ClickActiveColumn clicks the focused header.
func (v *TableView) ClickActiveColumn() error {
	if v.active < 0 {
		return nil
	}
	return v.headers[v.active].Click()
}

// HideActiveColumn hides the focused column when it is hidable.
func (v *TableView) HideActiveColumn() bool {
	if !v.grid.Hide(v.ActiveKey()) {
		return false
	}
	v.ApplyHidden()
	v.NextColumn()
	return true
}

// ShowAllColumns makes every column visible.
func (v *TableView) ShowAllColumns() {
	v.grid.ShowAll()
	v.ApplyHidden()
}

// ToggleColumn flips the visibility of a hidable column.
func (v *TableView) ToggleColumn(key string) bool {
	hidden := v.grid.Toggle(key)
	v.ApplyHidden()
	if hidden && key == v.ActiveKey() {
		v.NextColumn()
	}
	return hidden
}

// ApplyHidden pushes the grid's hidden columns to the surface and table.
func (v *TableView) ApplyHidden() {
	hidden := v.grid.Hidden()
	v.surface.SetHidden(hidden)
	v.table.SetHiddenColumns(hidden)
}

// ScrollBy scrolls the body by delta rows.
func (v *TableView) ScrollBy(delta int) {
	v.surface.ScrollBy(delta)
}

// HalfPage is half the body height, at least one row.
func (v *TableView) HalfPage() int {
	return max(1, v.surface.ViewportHeight()/2)
}

// ScrollToTop scrolls to the first row.
func (v *TableView) ScrollToTop() {
	v.surface.SetScrollTop(0)
}

// ScrollToBottom scrolls to the last page.
func (v *TableView) ScrollToBottom() {
	v.surface.SetScrollTop(v.surface.ContentHeight())
}

// ScrollHorizontal scrolls the body sideways. The mounted table keeps the
// header in step through its scroll subscription.
func (v *TableView) ScrollHorizontal(delta int) {
	v.surface.ScrollLeftBy(delta)
}

// RowSelected scrolls to the row with id. It reports whether exactly one
// row matched.
func (v *TableView) RowSelected(id string) bool {
	found := len(v.surface.FindRows(id)) == 1
	v.table.RowSelected(id)
	return found
}

// TableMeta summarizes the rows, hidden columns and sort.
func (v *TableView) TableMeta() string {
	parts := []string{fmt.Sprintf("%d rows", len(v.rows))}
	if n := v.grid.HiddenCount(); n > 0 {
		parts = append(parts, fmt.Sprintf("%d hidden", n))
	}
	state := v.table.SortState()
	if state.Sorted() {
		label := state.Expression
		for i, h := range v.headers {
			if h.IsActive() {
				label = v.columns[i].Label
			}
		}
		dir := "↑"
		if !state.Ascending {
			dir = "↓"
		}
		parts = append(parts, "sorted by "+label+" "+dir)
	}
	return strings.Join(parts, " · ")
}
