package ui

import (
	"fmt"
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/cases"

	"scrolltable/internal/model"
	"scrolltable/internal/table"
)

// comparators are the named comparators a layout column can select.
var comparators = map[string]func(x, y any) int{
	"natural":  naturalCompare,
	"casefold": casefoldCompare,
	"length":   lengthCompare,
}

// lookupComparator returns the named comparator, or nil for the empty name.
func lookupComparator(name string) (table.Comparator, error) {
	if name == "" {
		return nil, nil
	}
	cmp, ok := comparators[name]
	if !ok {
		names := make([]string, 0, len(comparators))
		for n := range comparators {
			names = append(names, n)
		}
		sort.Strings(names)
		return nil, fmt.Errorf("unknown comparator %q (known: %s)", name, strings.Join(names, ", "))
	}
	return keyComparator(cmp), nil
}

// keyComparator compares the values a sort expression extracts from each
// row. Missing values sort first.
func keyComparator(compare func(x, y any) int) table.Comparator {
	var (
		cached   bool
		lastExpr string
		parsed   table.Expression
		parseErr error
	)
	return func(a, b table.Row, expression string, descending bool) int {
		if !cached || expression != lastExpr {
			cached = true
			lastExpr = expression
			parsed, parseErr = table.ParseExpression(expression)
		}
		if parseErr != nil {
			return 0
		}
		x, y := parsed.Eval(a), parsed.Eval(b)
		var c int
		switch {
		case x == nil && y == nil:
			c = 0
		case x == nil:
			c = -1
		case y == nil:
			c = 1
		default:
			c = compare(x, y)
		}
		if descending {
			return -c
		}
		return c
	}
}

func plainText(v any) string {
	if s, ok := v.(string); ok {
		return s
	}
	return model.FormatValue(v)
}

var folder = cases.Fold()

func casefoldCompare(x, y any) int {
	return strings.Compare(folder.String(plainText(x)), folder.String(plainText(y)))
}

func lengthCompare(x, y any) int {
	lx, ly := utf8.RuneCountInString(plainText(x)), utf8.RuneCountInString(plainText(y))
	switch {
	case lx < ly:
		return -1
	case lx > ly:
		return 1
	}
	return 0
}

// naturalCompare orders runs of digits by value, so "item2" sorts before
// "item10". Other runes compare case-insensitively.
func naturalCompare(x, y any) int {
	a, b := []rune(plainText(x)), []rune(plainText(y))
	i, j := 0, 0
	for i < len(a) && j < len(b) {
		if unicode.IsDigit(a[i]) && unicode.IsDigit(b[j]) {
			si, sj := i, j
			for i < len(a) && unicode.IsDigit(a[i]) {
				i++
			}
			for j < len(b) && unicode.IsDigit(b[j]) {
				j++
			}
			if c := compareDigits(a[si:i], b[sj:j]); c != 0 {
				return c
			}
			continue
		}
		ra, rb := unicode.ToLower(a[i]), unicode.ToLower(b[j])
		if ra != rb {
			if ra < rb {
				return -1
			}
			return 1
		}
		i++
		j++
	}
	switch {
	case len(a)-i < len(b)-j:
		return -1
	case len(a)-i > len(b)-j:
		return 1
	}
	return 0
}

// compareDigits compares two digit runs by numeric value.
func compareDigits(a, b []rune) int {
	a, b = trimZeros(a), trimZeros(b)
	if len(a) != len(b) {
		if len(a) < len(b) {
			return -1
		}
		return 1
	}
	return strings.Compare(string(a), string(b))
}

func trimZeros(r []rune) []rune {
	for len(r) > 1 && r[0] == '0' {
		r = r[1:]
	}
	return r
}
