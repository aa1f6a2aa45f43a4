package util

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
	"time"

	"scrolltable/internal/model"
)

// Formatter renders a cell value as text.
type Formatter func(v any) string

var formatters = map[string]Formatter{
	"":           model.FormatValue,
	"date":       FormatDate,
	"date-human": FormatDateHuman,
	"rating":     FormatRating,
	"stars":      FormatRatingStars,
	"check":      FormatCheck,
	"yes-no":     FormatYesNo,
}

// LookupFormatter returns the named cell formatter. The empty name is the
// plain value formatter.
func LookupFormatter(name string) (Formatter, error) {
	f, ok := formatters[name]
	if !ok {
		return nil, fmt.Errorf("unknown format %q (known: %s)", name, strings.Join(FormatterNames(), ", "))
	}
	return f, nil
}

// FormatterNames lists the named formatters.
func FormatterNames() []string {
	var names []string
	for name := range formatters {
		if name != "" {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}

// FormatDate formats a date string (YYYY-MM-DD) for display.
func FormatDate(v any) string {
	t, ok := asDate(v)
	if !ok {
		return model.FormatValue(v)
	}
	return t.Format("Jan 02, 2006")
}

// FormatDateHuman formats a date with humanized relative display.
// "Today", "Yesterday", "3d ago", "Jan 15", "Jan 15 '24"
func FormatDateHuman(v any) string {
	t, ok := asDate(v)
	if !ok {
		return model.FormatValue(v)
	}
	return humanDate(t, time.Now())
}

func humanDate(t, now time.Time) string {
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	dateDay := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, now.Location())

	days := int(today.Sub(dateDay).Hours() / 24)

	switch {
	case days == 0:
		return "Today"
	case days == 1:
		return "Yesterday"
	case days > 1 && days < 7:
		return fmt.Sprintf("%dd ago", days)
	case t.Year() == now.Year():
		return t.Format("Jan 02")
	default:
		return t.Format("Jan 02 '06")
	}
}

// FormatRating formats a rating as "8.5/10" or "—" if missing.
func FormatRating(v any) string {
	r, ok := asFloat(v)
	if !ok {
		return model.FormatValue(v)
	}
	return formatRatingNumber(r) + "/10"
}

// FormatRatingStars formats a 1-10 rating as five stars (e.g., "★★★★☆").
func FormatRatingStars(v any) string {
	r, ok := asFloat(v)
	if !ok {
		return model.FormatValue(v)
	}
	stars := int(math.Round(r / 2.0))
	stars = max(0, min(stars, 5))
	return strings.Repeat("★", stars) + strings.Repeat("☆", 5-stars)
}

// FormatCheck formats a boolean-ish value as ✓, ✗, or –.
func FormatCheck(v any) string {
	b, ok := asBool(v)
	if !ok {
		return "–"
	}
	if b {
		return "✓"
	}
	return "✗"
}

// FormatYesNo formats a boolean-ish value as Yes, No, or —.
func FormatYesNo(v any) string {
	b, ok := asBool(v)
	if !ok {
		return "—"
	}
	if b {
		return "Yes"
	}
	return "No"
}

func formatRatingNumber(v float64) string {
	// Keep one decimal at most, but avoid trailing .0 for whole values.
	s := strconv.FormatFloat(v, 'f', 1, 64)
	return strings.TrimSuffix(s, ".0")
}

func asDate(v any) (time.Time, bool) {
	switch val := v.(type) {
	case time.Time:
		return val, true
	case string:
		s := strings.TrimSpace(val)
		for _, layout := range []string{"2006-01-02", time.RFC3339, "2006-01-02 15:04:05"} {
			if t, err := time.Parse(layout, s); err == nil {
				return t, true
			}
		}
	}
	return time.Time{}, false
}

func asFloat(v any) (float64, bool) {
	switch val := v.(type) {
	case int64:
		return float64(val), true
	case float64:
		return val, true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(val), 64)
		return f, err == nil
	}
	return 0, false
}

func asBool(v any) (bool, bool) {
	switch val := v.(type) {
	case bool:
		return val, true
	case int64:
		return val != 0, true
	case string:
		b, err := strconv.ParseBool(strings.TrimSpace(val))
		return b, err == nil
	}
	return false, false
}
