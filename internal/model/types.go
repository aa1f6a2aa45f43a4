package model

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ColumnInfo describes a column of the source table.
type ColumnInfo struct {
	Name string
	Type string // declared SQLite type, may be empty
	PK   bool
}

// Numeric reports whether the declared type has numeric affinity.
func (c ColumnInfo) Numeric() bool {
	t := strings.ToUpper(c.Type)
	return strings.Contains(t, "INT") || strings.Contains(t, "REAL") ||
		strings.Contains(t, "FLOA") || strings.Contains(t, "DOUB") ||
		strings.Contains(t, "NUM") || strings.Contains(t, "DEC")
}

// Record is one row of the source table, keyed by column name.
type Record struct {
	ID     string
	Values map[string]any
}

// Field returns the value stored under name.
func (r *Record) Field(name string) (any, bool) {
	v, ok := r.Values[name]
	return v, ok
}

// FormatValue renders a scanned SQLite value as cell text.
func FormatValue(v any) string {
	switch val := v.(type) {
	case nil:
		return "—"
	case string:
		return strings.ReplaceAll(val, "\n", " ")
	case []byte:
		return fmt.Sprintf("<%d bytes>", len(val))
	case int64:
		return strconv.FormatInt(val, 10)
	case float64:
		// Two decimals at most, without trailing zeros.
		s := strconv.FormatFloat(val, 'f', 2, 64)
		s = strings.TrimRight(s, "0")
		return strings.TrimSuffix(s, ".")
	case bool:
		if val {
			return "yes"
		}
		return "no"
	case time.Time:
		return val.Format("Jan 02, 2006")
	default:
		return fmt.Sprint(val)
	}
}
