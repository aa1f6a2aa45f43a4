package table

import (
	"errors"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

func aRows(values ...int) []Row {
	rows := make([]Row, len(values))
	for i, v := range values {
		rows[i] = map[string]any{"a": v}
	}
	return rows
}

func TestSortRoundTrip(t *testing.T) {
	rows := aRows(3, 1, 2)
	s := NewSorter(SortState{Ascending: true})

	s.SetExpression("r as r.a")
	if err := s.DoSort(rows, nil); err != nil {
		t.Fatalf("DoSort() error = %v", err)
	}
	if diff := cmp.Diff(aRows(1, 2, 3), rows); diff != "" {
		t.Errorf("ascending (-want +got):\n%s", diff)
	}

	s.Toggle()
	if err := s.DoSort(rows, nil); err != nil {
		t.Fatalf("DoSort() error = %v", err)
	}
	if diff := cmp.Diff(aRows(3, 2, 1), rows); diff != "" {
		t.Errorf("descending (-want +got):\n%s", diff)
	}
}

func TestToggleKeepsExpression(t *testing.T) {
	s := NewSorter(SortState{Ascending: true})
	s.SetExpression("r as r.a")
	s.Toggle()

	want := SortState{Expression: "r as r.a", Ascending: false}
	if diff := cmp.Diff(want, s.State()); diff != "" {
		t.Errorf("state (-want +got):\n%s", diff)
	}
}

func TestSetExpressionResetsDirection(t *testing.T) {
	s := NewSorter(SortState{Ascending: true})
	s.SetExpression("r as r.a")
	s.Toggle()
	s.SetExpression("r as r.b")

	want := SortState{Expression: "r as r.b", Ascending: true}
	if diff := cmp.Diff(want, s.State()); diff != "" {
		t.Errorf("state (-want +got):\n%s", diff)
	}
}

func TestSetSameExpressionKeepsDirection(t *testing.T) {
	s := NewSorter(SortState{Ascending: true})
	s.SetExpression("r as r.a")
	s.Toggle()
	s.SetExpression("r as r.a")

	if s.State().Ascending {
		t.Error("re-selecting the active expression reset the direction")
	}
}

func TestToggleWhileUnsorted(t *testing.T) {
	s := NewSorter(SortState{Ascending: true})
	s.Toggle()
	if diff := cmp.Diff(SortState{Ascending: true}, s.State()); diff != "" {
		t.Errorf("state (-want +got):\n%s", diff)
	}
}

func TestDoSortUnsortedLeavesRows(t *testing.T) {
	rows := aRows(3, 1, 2)
	s := NewSorter(SortState{Ascending: true})
	called := false
	cmpFn := func(a, b Row, expr string, desc bool) int {
		called = true
		return 0
	}
	if err := s.DoSort(rows, cmpFn); err != nil {
		t.Fatalf("DoSort() error = %v", err)
	}
	if called {
		t.Error("comparator ran while unsorted")
	}
	if diff := cmp.Diff(aRows(3, 1, 2), rows); diff != "" {
		t.Errorf("rows changed (-want +got):\n%s", diff)
	}
}

func TestCustomComparator(t *testing.T) {
	type call struct {
		Expression string
		Descending bool
	}
	// The expression is not in "name as path" form, so any fallback to the
	// default comparison would fail.
	rows := []Row{"bb", "a", "ccc"}
	s := NewSorter(SortState{Ascending: true})
	s.SetExpression("length")
	s.Toggle()

	var calls []call
	byLength := func(a, b Row, expr string, desc bool) int {
		calls = append(calls, call{expr, desc})
		d := len(a.(string)) - len(b.(string))
		if desc {
			return -d
		}
		return d
	}
	if err := s.DoSort(rows, byLength); err != nil {
		t.Fatalf("DoSort() error = %v", err)
	}
	if diff := cmp.Diff([]Row{"ccc", "bb", "a"}, rows); diff != "" {
		t.Errorf("rows (-want +got):\n%s", diff)
	}
	if len(calls) == 0 {
		t.Fatal("comparator never called")
	}
	for _, c := range calls {
		if diff := cmp.Diff(call{"length", true}, c); diff != "" {
			t.Errorf("comparator args (-want +got):\n%s", diff)
		}
	}
}

func TestDefaultSortRejectsMalformedExpression(t *testing.T) {
	rows := aRows(3, 1, 2)
	s := NewSorter(SortState{Ascending: true})
	s.SetExpression("a")

	err := s.DoSort(rows, nil)
	if !errors.Is(err, ErrMalformedExpression) {
		t.Fatalf("DoSort() error = %v, want ErrMalformedExpression", err)
	}
	if diff := cmp.Diff(aRows(3, 1, 2), rows); diff != "" {
		t.Errorf("rows changed (-want +got):\n%s", diff)
	}
}

func TestDefaultSortIsStableWithTies(t *testing.T) {
	type rec struct {
		ID  string
		Qty int
	}
	rows := []Row{rec{"x", 2}, rec{"y", 1}, rec{"z", 2}, rec{"w", 1}}
	s := NewSorter(SortState{})
	s.SetExpression("it as it.Qty")
	if err := s.DoSort(rows, nil); err != nil {
		t.Fatalf("DoSort() error = %v", err)
	}
	want := []Row{rec{"y", 1}, rec{"w", 1}, rec{"x", 2}, rec{"z", 2}}
	if diff := cmp.Diff(want, rows); diff != "" {
		t.Errorf("rows (-want +got):\n%s", diff)
	}
}

func TestCompareValues(t *testing.T) {
	early := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	late := early.Add(time.Hour)
	n := 4

	tests := []struct {
		name string
		x, y any
		want int
	}{
		{"ints", 1, 2, -1},
		{"equal", 7, 7, 0},
		{"int and float", 2, 1.5, 1},
		{"large ints", int64(1<<62 + 1), int64(1 << 62), 1},
		{"strings", "b", "a", 1},
		{"bools", false, true, -1},
		{"times", late, early, 1},
		{"nil first", nil, 0, -1},
		{"nil pointers", (*int)(nil), nil, 0},
		{"pointer deref", &n, 3, 1},
		{"numbers before strings", "10", 9, 1},
		{"string digits after number", 9, "10", -1},
		{"no tie across kinds", "9", 9, 1},
		{"strings before bools", true, "a", 1},
		{"other kinds last", []int{1}, late, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CompareValues(tt.x, tt.y); got != tt.want {
				t.Errorf("CompareValues(%v, %v) = %d, want %d", tt.x, tt.y, got, tt.want)
			}
		})
	}
}

func TestCompareValuesMixedKindsIsTransitive(t *testing.T) {
	values := []any{"9", 10, "10", 9, true, nil, 2.5, "a"}
	for _, a := range values {
		for _, b := range values {
			for _, c := range values {
				if CompareValues(a, b) <= 0 && CompareValues(b, c) <= 0 && CompareValues(a, c) > 0 {
					t.Errorf("%v <= %v <= %v but %v > %v", a, b, c, a, c)
				}
			}
		}
	}
}
