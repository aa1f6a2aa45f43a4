package ui

import (
	"strings"

	"scrolltable/internal/table"
)

// ColumnPicker lists the hidable columns and toggles their visibility.
type ColumnPicker struct {
	columns   []table.Column
	cursor    int
	translate func(string) string
}

// NewColumnPicker lists the columns registered in registry. Titles pass
// through translate before display.
func NewColumnPicker(registry *table.Registry, translate func(string) string) *ColumnPicker {
	if translate == nil {
		translate = func(s string) string { return s }
	}
	return &ColumnPicker{columns: registry.HidableColumns, translate: translate}
}

// Selected returns the key under the cursor.
func (p *ColumnPicker) Selected() (string, bool) {
	if len(p.columns) == 0 {
		return "", false
	}
	return p.columns[p.cursor].Key, true
}

// Move shifts the cursor, clamped to the list.
func (p *ColumnPicker) Move(delta int) {
	p.cursor = max(0, min(p.cursor+delta, len(p.columns)-1))
}

// View renders the picker.
func (p *ColumnPicker) View(grid *Grid, width, height int) string {
	if len(p.columns) == 0 {
		return EmptyStateStyle.Render("No column can be hidden.")
	}

	lines := []string{LabelStyle.Render("Visible columns"), ""}
	for i, c := range p.columns {
		mark := "[x]"
		if grid.IsHidden(c.Key) {
			mark = "[ ]"
		}
		line := mark + " " + p.translate(c.Title)
		if i == p.cursor {
			line = SelectedItemStyle.Render(line)
		}
		lines = append(lines, line)
	}
	return PanelStyle.
		Width(min(width-2, 48)).
		MaxHeight(height).
		Render(strings.Join(lines, "\n"))
}
