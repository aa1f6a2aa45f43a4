package ui

import (
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"scrolltable/internal/config"
	"scrolltable/internal/db"
	"scrolltable/internal/model"
	"scrolltable/internal/table"
)

// harness feeds messages through Update the way the program loop does,
// rendering after each one and following up on every command without a
// delay.
type harness struct {
	t *testing.T
	m Model
}

func (h *harness) send(msgs ...tea.Msg) {
	h.t.Helper()
	queue := msgs
	for i := 0; len(queue) > 0; i++ {
		if i > 200 {
			h.t.Fatal("message loop did not settle")
		}
		msg := queue[0]
		queue = queue[1:]
		if _, ok := msg.(tea.QuitMsg); ok {
			continue
		}
		next, cmd := h.m.Update(msg)
		h.m = next.(Model)
		h.m.View()
		queue = append(queue, collect(cmd)...)
	}
}

func (h *harness) key(keys ...string) {
	h.t.Helper()
	for _, k := range keys {
		var msg tea.KeyMsg
		switch k {
		case "tab":
			msg = tea.KeyMsg{Type: tea.KeyTab}
		case "shift+tab":
			msg = tea.KeyMsg{Type: tea.KeyShiftTab}
		case "esc":
			msg = tea.KeyMsg{Type: tea.KeyEsc}
		default:
			msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
		}
		h.send(msg)
	}
}

func testLayout() *config.Layout {
	return &config.Layout{
		IDColumn:    "id",
		DefaultSort: "visited_on",
		Descending:  true,
		Columns: []config.Column{
			{Key: "id", Label: "#", Align: config.AlignRight},
			{Key: "visited_on", Label: "Visited", Hidable: true},
			{Key: "name", Label: "Restaurant", Comparator: "casefold", Hidable: true},
			{Key: "rating", Label: "Rating", Format: "rating", Align: config.AlignRight, Hidable: true},
			{Key: "notes", Label: "Notes", Hidable: true, Hidden: true},
		},
	}
}

func newHarness(t *testing.T, visits int) *harness {
	t.Helper()
	database, err := db.Open(filepath.Join(t.TempDir(), "ui.db"))
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	t.Cleanup(func() { database.Close() })
	if err := db.SeedDemo(database, visits); err != nil {
		t.Fatalf("SeedDemo() error = %v", err)
	}

	m := New(database, Options{Table: db.DemoTable, IDColumn: "id", Layout: testLayout()})
	h := &harness{t: t, m: m}
	h.send(tea.WindowSizeMsg{Width: 80, Height: 20})
	h.send(m.Init()())
	if h.m.view == nil {
		t.Fatalf("dataset not loaded: error %q", h.m.error)
	}
	return h
}

func (h *harness) records() []*model.Record {
	var out []*model.Record
	for _, r := range h.m.view.rows {
		out = append(out, r.(*model.Record))
	}
	return out
}

func TestLoadFixesHeadersAndAppliesDefaultSort(t *testing.T) {
	h := newHarness(t, 40)

	if !h.m.view.table.HeadersFixed().IsResolved() {
		t.Fatal("headers not fixed after the first render")
	}
	if h.m.sched.Pending() != 0 {
		t.Errorf("%d timers left pending", h.m.sched.Pending())
	}
	if h.m.view.Len() != 40 {
		t.Errorf("Len() = %d, want 40", h.m.view.Len())
	}

	recs := h.records()
	for i := 1; i < len(recs); i++ {
		if recs[i-1].Values["visited_on"].(string) < recs[i].Values["visited_on"].(string) {
			t.Fatalf("rows %d and %d not in descending visit order", i-1, i)
		}
	}

	out := h.m.View()
	if !strings.Contains(out, "Restaurant") || !strings.Contains(out, "Visited ↓") {
		t.Errorf("view misses the sorted header:\n%s", out)
	}
	if strings.Contains(out, "Notes") {
		t.Errorf("hidden column rendered:\n%s", out)
	}
	if lines := strings.Split(out, "\n"); len(lines) != 20 {
		t.Errorf("view has %d lines, want 20", len(lines))
	}
}

func TestSortKeys(t *testing.T) {
	h := newHarness(t, 30)

	h.key("tab", "tab")
	if got := h.m.view.ActiveKey(); got != "name" {
		t.Fatalf("ActiveKey() = %q, want name", got)
	}
	h.key("s")
	state := h.m.view.table.SortState()
	if state.Expression != table.ColumnExpression("name") || !state.Ascending {
		t.Fatalf("state after s = %+v", state)
	}
	recs := h.records()
	for i := 1; i < len(recs); i++ {
		if strings.ToLower(recs[i-1].Values["name"].(string)) > strings.ToLower(recs[i].Values["name"].(string)) {
			t.Fatalf("rows %d and %d out of order", i-1, i)
		}
	}

	h.key("s")
	if h.m.view.table.SortState().Ascending {
		t.Error("second s did not flip the direction")
	}
	h.key("S")
	if h.m.view.table.SortState().Ascending {
		t.Error("S should keep a descending sort")
	}
	if !strings.Contains(h.m.view.TableMeta(), "sorted by Restaurant ↓") {
		t.Errorf("TableMeta() = %q", h.m.view.TableMeta())
	}
}

func TestHideColumnAndPicker(t *testing.T) {
	h := newHarness(t, 10)

	// id is not hidable
	h.key("c")
	if h.m.grid.IsHidden("id") {
		t.Fatal("id was hidden")
	}

	h.key("tab", "c")
	if !h.m.grid.IsHidden("visited_on") {
		t.Fatal("visited_on not hidden")
	}
	if got := h.m.view.ActiveKey(); got != "name" {
		t.Errorf("focus after hiding = %q, want name", got)
	}

	h.key("C")
	if h.m.screen != model.ScreenColumnPicker {
		t.Fatalf("screen = %v, want column picker", h.m.screen)
	}
	// The cursor starts on visited_on, the first hidable column.
	h.key(" ")
	if h.m.grid.IsHidden("visited_on") {
		t.Error("toggle did not show visited_on")
	}
	h.key("a")
	if h.m.grid.HiddenCount() != 0 {
		t.Errorf("HiddenCount() after show all = %d", h.m.grid.HiddenCount())
	}
	h.key("esc")
	if h.m.screen != model.ScreenTable {
		t.Errorf("screen = %v, want table", h.m.screen)
	}
	if !strings.Contains(h.m.View(), "Notes") {
		t.Error("notes column still hidden after show all")
	}
}

func TestRowSelectedScrollsToRow(t *testing.T) {
	h := newHarness(t, 60)

	recs := h.records()
	target := recs[20]
	h.send(model.RowSelectedMsg{ID: target.ID})

	if got := h.m.view.surface.ScrollTop(); got != 20 {
		t.Errorf("ScrollTop() = %d, want 20", got)
	}
	if !strings.HasPrefix(h.m.info, "Row ") {
		t.Errorf("info = %q", h.m.info)
	}

	h.send(model.RowSelectedMsg{ID: "missing"})
	if got := h.m.view.surface.ScrollTop(); got != 20 {
		t.Errorf("ScrollTop() after a missing row = %d, want 20", got)
	}
	if !strings.Contains(h.m.info, "No single row") {
		t.Errorf("info = %q", h.m.info)
	}
}

func TestScrollKeys(t *testing.T) {
	h := newHarness(t, 60)
	s := h.m.view.surface

	h.key("j", "j", "j")
	if s.ScrollTop() != 3 {
		t.Errorf("ScrollTop() after jjj = %d", s.ScrollTop())
	}
	h.key("G")
	if want := 60 - s.ViewportHeight(); s.ScrollTop() != want {
		t.Errorf("ScrollTop() after G = %d, want %d", s.ScrollTop(), want)
	}
	h.key("g", "g")
	if s.ScrollTop() != 0 {
		t.Errorf("ScrollTop() after gg = %d", s.ScrollTop())
	}
}

func TestHelpScreen(t *testing.T) {
	h := newHarness(t, 5)
	h.key("?")
	if h.m.screen != model.ScreenHelp || !strings.Contains(h.m.View(), "Cycle active column") {
		t.Fatal("help not shown")
	}
	h.key("esc")
	if h.m.screen != model.ScreenTable {
		t.Error("esc did not close help")
	}
}

func TestLayoutErrorShowsBanner(t *testing.T) {
	database, err := db.Open(filepath.Join(t.TempDir(), "bad.db"))
	if err != nil {
		t.Fatal(err)
	}
	defer database.Close()
	if err := db.SeedDemo(database, 1); err != nil {
		t.Fatal(err)
	}

	layout := &config.Layout{Columns: []config.Column{{Key: "nope"}}}
	h := &harness{t: t, m: New(database, Options{Table: db.DemoTable, Layout: layout})}
	h.send(tea.WindowSizeMsg{Width: 60, Height: 10})
	h.send(h.m.Init()())

	if h.m.view != nil {
		t.Fatal("view built from an invalid layout")
	}
	if !strings.Contains(h.m.View(), `column "nope" not found`) {
		t.Errorf("error banner missing:\n%s", h.m.View())
	}
}
