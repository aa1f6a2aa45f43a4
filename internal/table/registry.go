package table

import "strings"

// Column is a column a header declared at mount time.
type Column struct {
	Key     string
	Title   string
	Hidable bool
}

// Registry collects the hidable columns of one grid for a column picker. It
// is shared by pointer between every header of the table.
type Registry struct {
	HidableColumns []Column
}

// RegisterHidable appends a hidable column. Each header registers once, so
// duplicates are not filtered.
func (r *Registry) RegisterHidable(key, title string) {
	r.HidableColumns = append(r.HidableColumns, Column{Key: key, Title: title, Hidable: true})
}

// ResolveTitle picks the display title of a column: the translation marker,
// then the rendered label, then the raw cell text.
func ResolveTitle(translate, label, raw string) string {
	if translate != "" {
		return translate
	}
	if label := strings.TrimSpace(label); label != "" {
		return label
	}
	return strings.TrimSpace(raw)
}
