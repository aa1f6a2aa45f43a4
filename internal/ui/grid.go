package ui

import (
	"maps"

	"scrolltable/internal/table"
)

// Grid is the state shared by the headers of a table: which columns can be
// hidden and which currently are.
type Grid struct {
	Registry *table.Registry
	hidden   map[string]bool
}

// NewGrid returns a grid with nothing registered or hidden.
func NewGrid() *Grid {
	return &Grid{Registry: &table.Registry{}, hidden: map[string]bool{}}
}

// Hidable reports whether key was registered as hidable.
func (g *Grid) Hidable(key string) bool {
	for _, c := range g.Registry.HidableColumns {
		if c.Key == key {
			return true
		}
	}
	return false
}

// IsHidden reports whether key is hidden.
func (g *Grid) IsHidden(key string) bool {
	return g.hidden[key]
}

// Hide hides a hidable column. It returns false for other columns.
func (g *Grid) Hide(key string) bool {
	if !g.Hidable(key) {
		return false
	}
	g.hidden[key] = true
	return true
}

// Show makes key visible again.
func (g *Grid) Show(key string) {
	delete(g.hidden, key)
}

// Toggle flips a hidable column and returns whether it is now hidden.
func (g *Grid) Toggle(key string) bool {
	if g.hidden[key] {
		g.Show(key)
		return false
	}
	return g.Hide(key)
}

// ShowAll clears every hidden column.
func (g *Grid) ShowAll() {
	clear(g.hidden)
}

// Hidden returns a copy of the hidden column set.
func (g *Grid) Hidden() map[string]bool {
	return maps.Clone(g.hidden)
}

// HiddenCount is the number of hidden columns.
func (g *Grid) HiddenCount() int {
	return len(g.hidden)
}
