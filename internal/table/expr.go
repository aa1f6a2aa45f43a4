package table

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// ErrMalformedExpression is returned when a sort expression is not of the
// form "<name> as <path>".
var ErrMalformedExpression = errors.New("malformed sort expression")

var expressionPattern = regexp.MustCompile(`^(.+)\s+as\s+(.+)$`)

// Expression binds a row under Name and reads the key path Path from it,
// e.g. "row as row.amount".
type Expression struct {
	Name string
	Path []string
}

// ParseExpression splits s into its binding name and key path.
func ParseExpression(s string) (Expression, error) {
	parts := expressionPattern.FindStringSubmatch(strings.TrimSpace(s))
	if parts == nil {
		return Expression{}, fmt.Errorf("%w: %q", ErrMalformedExpression, s)
	}
	name := strings.TrimSpace(parts[1])
	path := strings.Split(strings.TrimSpace(parts[2]), ".")
	for _, seg := range path {
		if strings.TrimSpace(seg) == "" {
			return Expression{}, fmt.Errorf("%w: empty path segment in %q", ErrMalformedExpression, s)
		}
	}
	return Expression{Name: name, Path: path}, nil
}

// ColumnExpression is the default expression for sorting on a column key.
func ColumnExpression(key string) string {
	return "a as a." + key
}

// Eval binds row under the expression's name and extracts the key path. A
// path that does not start at the bound name yields nil.
func (e Expression) Eval(row Row) any {
	if len(e.Path) == 0 || e.Path[0] != e.Name {
		return nil
	}
	return ExtractPath(row, e.Path[1:])
}

// FieldGetter lets a row expose its fields without reflection.
type FieldGetter interface {
	Field(name string) (any, bool)
}

// ExtractPath walks path through maps, structs, slices and FieldGetters.
// Any step that cannot be resolved yields nil.
func ExtractPath(v any, path []string) any {
	for _, seg := range path {
		if v == nil {
			return nil
		}
		if g, ok := v.(FieldGetter); ok {
			next, found := g.Field(seg)
			if !found {
				return nil
			}
			v = next
			continue
		}
		v = step(reflect.ValueOf(v), seg)
	}
	return v
}

func step(rv reflect.Value, seg string) any {
	for rv.Kind() == reflect.Pointer || rv.Kind() == reflect.Interface {
		if rv.IsNil() {
			return nil
		}
		rv = rv.Elem()
	}

	switch rv.Kind() {
	case reflect.Map:
		if rv.Type().Key().Kind() != reflect.String {
			return nil
		}
		val := rv.MapIndex(reflect.ValueOf(seg).Convert(rv.Type().Key()))
		if !val.IsValid() {
			return nil
		}
		return val.Interface()
	case reflect.Struct:
		field := structField(rv, seg)
		if !field.IsValid() || !field.CanInterface() {
			return nil
		}
		return field.Interface()
	case reflect.Slice, reflect.Array:
		idx, err := strconv.Atoi(seg)
		if err != nil || idx < 0 || idx >= rv.Len() {
			return nil
		}
		return rv.Index(idx).Interface()
	}
	return nil
}

// structField matches by field name, then json tag, then case-insensitively.
func structField(rv reflect.Value, name string) reflect.Value {
	if f := rv.FieldByName(name); f.IsValid() {
		return f
	}
	t := rv.Type()
	for i := 0; i < t.NumField(); i++ {
		tag, _, _ := strings.Cut(t.Field(i).Tag.Get("json"), ",")
		if tag == name {
			return rv.Field(i)
		}
	}
	for i := 0; i < t.NumField(); i++ {
		if strings.EqualFold(t.Field(i).Name, name) {
			return rv.Field(i)
		}
	}
	return reflect.Value{}
}

// CompareValues orders two extracted scalars. Values are ranked by kind
// first: nil, numbers, strings, bools, times, then anything else. Within a
// kind they compare by their natural order; other values compare by their
// printed form.
func CompareValues(x, y any) int {
	x, y = deref(x), deref(y)
	switch {
	case x == nil && y == nil:
		return 0
	case x == nil:
		return -1
	case y == nil:
		return 1
	}

	rx, ry := rankOf(x), rankOf(y)
	if rx != ry {
		return cmpOrdered(int64(rx), int64(ry))
	}

	switch rx {
	case rankNumber:
		if xi, ok := asInt(x); ok {
			if yi, ok := asInt(y); ok {
				return cmpOrdered(xi, yi)
			}
		}
		xf, _ := asFloat(x)
		yf, _ := asFloat(y)
		return cmpOrdered(xf, yf)
	case rankString:
		return strings.Compare(x.(string), y.(string))
	case rankBool:
		xb, yb := x.(bool), y.(bool)
		switch {
		case xb == yb:
			return 0
		case !xb:
			return -1
		}
		return 1
	case rankTime:
		return x.(time.Time).Compare(y.(time.Time))
	}
	return strings.Compare(fmt.Sprint(x), fmt.Sprint(y))
}

type valueRank int

const (
	rankNumber valueRank = iota
	rankString
	rankBool
	rankTime
	rankOther
)

func rankOf(v any) valueRank {
	if _, ok := asFloat(v); ok {
		return rankNumber
	}
	switch v.(type) {
	case string:
		return rankString
	case bool:
		return rankBool
	case time.Time:
		return rankTime
	}
	return rankOther
}

func cmpOrdered[T int64 | float64](x, y T) int {
	switch {
	case x < y:
		return -1
	case x > y:
		return 1
	}
	return 0
}

func deref(v any) any {
	rv := reflect.ValueOf(v)
	for rv.IsValid() && rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return nil
		}
		rv = rv.Elem()
	}
	if !rv.IsValid() {
		return nil
	}
	return rv.Interface()
}

func asInt(v any) (int64, bool) {
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return rv.Int(), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32:
		return int64(rv.Uint()), true
	}
	return 0, false
}

func asFloat(v any) (float64, bool) {
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(rv.Int()), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return float64(rv.Uint()), true
	case reflect.Float32, reflect.Float64:
		return rv.Float(), true
	}
	return 0, false
}
