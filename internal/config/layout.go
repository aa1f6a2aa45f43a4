// Package config reads the optional YAML table layout.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"gopkg.in/yaml.v3"

	"scrolltable/internal/model"
)

// Column alignments accepted in a layout.
const (
	AlignLeft   = "left"
	AlignCenter = "center"
	AlignRight  = "right"
)

// Column describes how one dataset column is shown.
type Column struct {
	Key   string `yaml:"key"`
	Label string `yaml:"label"`

	// Title is the header tooltip; Translate is a key into Translations that
	// names the column in the column picker.
	Title     string `yaml:"title"`
	Translate string `yaml:"translate"`

	// On is a sort expression such as "r as r.rating". Empty sorts on Key.
	On         string `yaml:"on"`
	Comparator string `yaml:"comparator"`

	Align    string `yaml:"align"`
	Format   string `yaml:"format"`
	Hidable  bool   `yaml:"hidable"`
	Hidden   bool   `yaml:"hidden"`
	MinWidth int    `yaml:"min_width"`
	MaxWidth int    `yaml:"max_width"`
}

// Layout is the table-level configuration.
type Layout struct {
	Table        string            `yaml:"table"`
	IDColumn     string            `yaml:"id_column"`
	DefaultSort  string            `yaml:"default_sort"`
	Descending   bool              `yaml:"descending"`
	PollInterval time.Duration     `yaml:"poll_interval"`
	Translations map[string]string `yaml:"translations"`
	Columns      []Column          `yaml:"columns"`
}

// LoadLayout reads a layout file.
func LoadLayout(path string) (*Layout, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read layout: %w", err)
	}
	layout, err := ParseLayout(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return layout, nil
}

// ParseLayout decodes and validates a YAML layout.
func ParseLayout(data []byte) (*Layout, error) {
	var layout Layout
	if err := yaml.Unmarshal(data, &layout); err != nil {
		return nil, fmt.Errorf("failed to parse layout: %w", err)
	}
	if err := layout.Validate(); err != nil {
		return nil, err
	}
	return &layout, nil
}

// Validate checks column keys, alignments and the poll interval.
func (l *Layout) Validate() error {
	var errs []error
	seen := map[string]bool{}
	for i, c := range l.Columns {
		switch {
		case strings.TrimSpace(c.Key) == "":
			errs = append(errs, fmt.Errorf("column %d: missing key", i+1))
		case seen[c.Key]:
			errs = append(errs, fmt.Errorf("column %q: duplicate key", c.Key))
		}
		seen[c.Key] = true

		switch c.Align {
		case "", AlignLeft, AlignCenter, AlignRight:
		default:
			errs = append(errs, fmt.Errorf("column %q: invalid align %q", c.Key, c.Align))
		}
		if c.MaxWidth > 0 && c.MinWidth > c.MaxWidth {
			errs = append(errs, fmt.Errorf("column %q: min_width exceeds max_width", c.Key))
		}
	}
	if l.PollInterval < 0 {
		errs = append(errs, errors.New("poll_interval must not be negative"))
	}
	return errors.Join(errs...)
}

// Resolve fills in a column per dataset column when the layout lists none,
// and rejects layout columns the dataset does not have. Columns without a
// label are labelled after their key.
func (l *Layout) Resolve(columns []model.ColumnInfo) ([]Column, error) {
	if len(l.Columns) == 0 {
		out := make([]Column, 0, len(columns))
		for _, c := range columns {
			out = append(out, DefaultColumn(c, c.Name == l.IDColumn))
		}
		return out, nil
	}

	known := make(map[string]bool, len(columns))
	for _, c := range columns {
		known[c.Name] = true
	}
	var errs []error
	out := make([]Column, 0, len(l.Columns))
	for _, c := range l.Columns {
		if !known[c.Key] {
			errs = append(errs, fmt.Errorf("column %q not found in table", c.Key))
		}
		if c.Label == "" {
			c.Label = headerLabel(c.Key)
		}
		out = append(out, c)
	}
	if err := errors.Join(errs...); err != nil {
		return nil, err
	}
	return out, nil
}

// DefaultColumn describes a dataset column with no layout entry. Every
// column but the id column can be hidden; numbers align right.
func DefaultColumn(info model.ColumnInfo, id bool) Column {
	c := Column{
		Key:     info.Name,
		Label:   headerLabel(info.Name),
		Hidable: !id,
	}
	if info.Numeric() {
		c.Align = AlignRight
	}
	return c
}

// headerLabel turns a snake_case column name into "Snake Case".
func headerLabel(name string) string {
	words := strings.FieldsFunc(name, func(r rune) bool { return r == '_' || r == '-' })
	for i, w := range words {
		r, size := utf8.DecodeRuneInString(w)
		words[i] = string(unicode.ToUpper(r)) + w[size:]
	}
	return strings.Join(words, " ")
}

// Translate returns the translation for key, or key itself.
func (l *Layout) Translate(key string) string {
	if t, ok := l.Translations[key]; ok {
		return t
	}
	return key
}
