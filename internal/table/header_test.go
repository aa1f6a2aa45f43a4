package table

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestHeaderClick(t *testing.T) {
	tbl, _, _ := newTestTable()
	rows := []Row{
		map[string]any{"a": 2, "b": "x"},
		map[string]any{"a": 1, "b": "z"},
		map[string]any{"a": 3, "b": "y"},
	}
	tbl.SetRows(rows)
	a := NewHeader(tbl, HeaderConfig{Key: "a"})
	b := NewHeader(tbl, HeaderConfig{Key: "b"})

	keys := func(field string) []any {
		var out []any
		for _, r := range rows {
			out = append(out, r.(map[string]any)[field])
		}
		return out
	}

	if err := a.Click(); err != nil {
		t.Fatalf("Click() error = %v", err)
	}
	if diff := cmp.Diff([]any{1, 2, 3}, keys("a")); diff != "" {
		t.Errorf("first click (-want +got):\n%s", diff)
	}

	if err := a.Click(); err != nil {
		t.Fatalf("Click() error = %v", err)
	}
	if diff := cmp.Diff([]any{3, 2, 1}, keys("a")); diff != "" {
		t.Errorf("second click (-want +got):\n%s", diff)
	}

	if err := b.Click(); err != nil {
		t.Fatalf("Click() error = %v", err)
	}
	if !tbl.SortState().Ascending || !b.IsActive() || a.IsActive() {
		t.Errorf("clicking another header: state = %+v", tbl.SortState())
	}
	if diff := cmp.Diff([]any{"x", "y", "z"}, keys("b")); diff != "" {
		t.Errorf("other header (-want +got):\n%s", diff)
	}
}

func TestHeaderUsesComparator(t *testing.T) {
	tbl, _, _ := newTestTable()
	rows := []Row{"b", "A", "c"}
	tbl.SetRows(rows)
	h := NewHeader(tbl, HeaderConfig{
		Key: "name",
		On:  "name",
		Comparator: func(a, b Row, _ string, desc bool) int {
			c := strings.Compare(strings.ToLower(a.(string)), strings.ToLower(b.(string)))
			if desc {
				return -c
			}
			return c
		},
	})
	if err := h.Click(); err != nil {
		t.Fatalf("Click() error = %v", err)
	}
	if diff := cmp.Diff([]Row{"A", "b", "c"}, rows); diff != "" {
		t.Errorf("rows (-want +got):\n%s", diff)
	}
}

func TestHeaderGlyph(t *testing.T) {
	tbl, _, _ := newTestTable()
	tbl.SetRows(aRows(2, 1))
	a := NewHeader(tbl, HeaderConfig{Key: "a"})
	b := NewHeader(tbl, HeaderConfig{Key: "b"})

	if g := a.Glyph(); g != "" {
		t.Errorf("idle glyph = %q, want none", g)
	}
	_ = a.Click()
	_ = a.Click()
	if g := a.Glyph(); g != "↓" {
		t.Errorf("active descending glyph = %q", g)
	}

	b.Enter()
	if g := b.Glyph(); g != "↑" {
		t.Errorf("hover preview glyph = %q, want ↑", g)
	}
	b.Leave()
	if g := b.Glyph(); g != "" {
		t.Errorf("glyph after leave = %q, want none", g)
	}

	a.Enter()
	if g := a.Glyph(); g != "↓" {
		t.Errorf("hovering the active header = %q, want ↓", g)
	}
}

func TestHidableHeaderRegistersTitle(t *testing.T) {
	tbl, _, _ := newTestTable()
	NewHeader(tbl, HeaderConfig{Key: "amount", Hidable: true, Translate: "COL_AMOUNT", Label: "Amount", Text: "Amount ↑"})
	NewHeader(tbl, HeaderConfig{Key: "city", Hidable: true, Label: " City "})
	NewHeader(tbl, HeaderConfig{Key: "note", Hidable: true, Text: "Note"})
	NewHeader(tbl, HeaderConfig{Key: "id"})

	want := []Column{
		{Key: "amount", Title: "COL_AMOUNT", Hidable: true},
		{Key: "city", Title: "City", Hidable: true},
		{Key: "note", Title: "Note", Hidable: true},
	}
	if diff := cmp.Diff(want, tbl.Registry().HidableColumns); diff != "" {
		t.Errorf("registry (-want +got):\n%s", diff)
	}
}
