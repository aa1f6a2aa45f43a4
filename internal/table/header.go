package table

// HoverState is the per-header pointer state. It only changes which sort
// glyph is previewed.
type HoverState struct {
	Focused bool
}

// HeaderConfig declares a sortable header cell.
type HeaderConfig struct {
	// Key is the column key; it also builds the default expression.
	Key string

	// On overrides the sort expression, e.g. "r as r.total.amount".
	On string

	// Comparator replaces the default key comparison when set.
	Comparator Comparator

	Hidable bool

	// Translate, Label and Text feed ResolveTitle.
	Translate string
	Label     string
	Text      string
}

// Header is one sortable header bound to its table.
type Header struct {
	table *Table
	cfg   HeaderConfig
	expr  string
	hover HoverState
}

// NewHeader mounts a header on t. Hidable headers register themselves in
// the table's registry.
func NewHeader(t *Table, cfg HeaderConfig) *Header {
	expr := cfg.On
	if expr == "" {
		expr = ColumnExpression(cfg.Key)
	}
	h := &Header{table: t, cfg: cfg, expr: expr}
	if cfg.Hidable {
		t.AddHidableColumn(cfg.Key, ResolveTitle(cfg.Translate, cfg.Label, cfg.Text))
	}
	return h
}

func (h *Header) Key() string { return h.cfg.Key }
func (h *Header) Expression() string { return h.expr }

// IsActive reports whether the table is sorted on this header.
func (h *Header) IsActive() bool {
	return h.table.SortState().Expression == h.expr
}

// Click toggles the direction of an active header, otherwise makes it the
// ascending sort, then sorts the rows.
func (h *Header) Click() error {
	if h.IsActive() {
		h.table.ToggleSort()
	} else {
		h.table.SetSortExpression(h.expr)
	}
	return h.table.DoSort(h.cfg.Comparator)
}

func (h *Header) Enter() { h.hover.Focused = true }
func (h *Header) Leave() { h.hover.Focused = false }
func (h *Header) Focused() bool { return h.hover.Focused }

// Ascending is the direction the glyph shows. Hovering an inactive header
// previews the ascending order a click would produce.
func (h *Header) Ascending() bool {
	if h.hover.Focused && !h.IsActive() {
		return true
	}
	return h.table.SortState().Ascending
}

// Glyph returns the sort arrow to draw, or "" when none is shown.
func (h *Header) Glyph() string {
	if !h.hover.Focused && !h.IsActive() {
		return ""
	}
	if h.Ascending() {
		return "↑"
	}
	return "↓"
}
