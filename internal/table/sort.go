package table

import "sort"

// Row is an opaque data record. The engine only looks inside it through
// the key path of the active sort expression.
type Row = any

// Comparator orders two rows for the given expression. It returns a
// negative, zero or positive value and must be pure.
type Comparator func(a, b Row, expression string, descending bool) int

// SortState is the active sort of one table. An empty Expression means the
// table is unsorted and Ascending carries no meaning.
type SortState struct {
	Expression string
	Ascending  bool
}

// Sorted reports whether an expression is active.
func (s SortState) Sorted() bool {
	return s.Expression != ""
}

// Sorter holds the sort state and reorders rows in place.
type Sorter struct {
	state SortState
}

// NewSorter starts from the given state.
func NewSorter(initial SortState) *Sorter {
	return &Sorter{state: initial}
}

// State returns the current sort state.
func (s *Sorter) State() SortState {
	return s.state
}

// SetExpression activates expr in ascending order. Re-selecting the active
// expression changes nothing.
func (s *Sorter) SetExpression(expr string) {
	if expr == s.state.Expression {
		return
	}
	s.state = SortState{Expression: expr, Ascending: true}
}

// Toggle flips the direction of the active sort. It does nothing while
// unsorted.
func (s *Sorter) Toggle() {
	if !s.state.Sorted() {
		return
	}
	s.state.Ascending = !s.state.Ascending
}

// DoSort permutes rows according to the current state. With cmp set only
// cmp decides the order; otherwise the expression's key path is compared.
// Rows are left untouched when unsorted or when the expression cannot be
// parsed.
func (s *Sorter) DoSort(rows []Row, cmp Comparator) error {
	if !s.state.Sorted() {
		return nil
	}
	expr, asc := s.state.Expression, s.state.Ascending

	if cmp != nil {
		sort.SliceStable(rows, func(i, j int) bool {
			return cmp(rows[i], rows[j], expr, !asc) < 0
		})
		return nil
	}

	parsed, err := ParseExpression(expr)
	if err != nil {
		return err
	}
	sort.SliceStable(rows, func(i, j int) bool {
		c := CompareValues(parsed.Eval(rows[i]), parsed.Eval(rows[j]))
		if !asc {
			c = -c
		}
		return c < 0
	})
	return nil
}
