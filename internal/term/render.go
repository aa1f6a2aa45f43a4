package term

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
)

// Styles colors the parts of a rendered table.
type Styles struct {
	Header        lipgloss.Style
	FocusedHeader lipgloss.Style
	Rule          lipgloss.Style
	Row           lipgloss.Style
	AltRow        lipgloss.Style
	Track         lipgloss.Style
	Thumb         lipgloss.Style
}

// RenderOptions carries per-frame header decoration.
type RenderOptions struct {
	Styles Styles

	// Glyph returns the sort arrow for a column key, or "".
	Glyph func(key string) string

	// Focused is the key of the hovered header.
	Focused string
}

type segment struct {
	text  string
	style lipgloss.Style
}

// Render draws the frame and marks the table as painted.
func (s *Surface) Render(opts RenderOptions) string {
	if s.width <= 0 || s.height <= 0 {
		return ""
	}
	s.painted = true

	bar := s.scrollbar()
	bodyWidth := s.width - bar
	widths := s.columnWidths()

	lines := make([]string, 0, s.height)
	lines = append(lines, renderSegments(cutSegments(s.headerSegments(opts), -s.headerOffset, s.width)))
	lines = append(lines, opts.Styles.Rule.Render(strings.Repeat("─", s.width)))

	vh := s.ViewportHeight()
	for i := 0; i < vh; i++ {
		idx := s.scrollTop + i
		var line string
		if idx < len(s.rows) {
			style := opts.Styles.Row
			if idx%2 == 1 {
				style = opts.Styles.AltRow
			}
			line = renderSegments(cutSegments(s.rowSegments(idx, widths, style), s.scrollLeft, bodyWidth))
		} else {
			line = strings.Repeat(" ", max(0, bodyWidth))
		}
		if bar > 0 {
			line += s.scrollbarCell(i, opts.Styles)
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}

func (s *Surface) headerSegments(opts RenderOptions) []segment {
	var segs []segment
	for i, col := range s.columns {
		if !s.visible(i) {
			continue
		}
		label := col.Label
		if opts.Glyph != nil {
			if g := opts.Glyph(col.Key); g != "" {
				label += " " + g
			}
		}
		cell := s.cells[i]
		content := label
		if cell.wrapped {
			content = fit(label, max(0, cell.innerWidth), col.Align)
		}
		style := opts.Styles.Header
		if col.Key == opts.Focused {
			style = opts.Styles.FocusedHeader
		}
		pad := strings.Repeat(" ", cellPadding)
		segs = append(segs, segment{text: pad + content + pad, style: style})
	}
	return segs
}

func (s *Surface) rowSegments(idx int, widths []int, style lipgloss.Style) []segment {
	var b strings.Builder
	pad := strings.Repeat(" ", cellPadding)
	for i, col := range s.columns {
		if !s.visible(i) {
			continue
		}
		b.WriteString(pad)
		b.WriteString(fit(s.text(s.rows[idx], col.Key), widths[i]-2*cellPadding, col.Align))
		b.WriteString(pad)
	}
	return []segment{{text: b.String(), style: style}}
}

func (s *Surface) scrollbarCell(line int, styles Styles) string {
	vh, content := s.ViewportHeight(), s.ContentHeight()
	thumbLen := max(1, vh*vh/content)
	start := 0
	if overflow := content - vh; overflow > 0 {
		start = s.scrollTop * (vh - thumbLen) / overflow
	}
	if line >= start && line < start+thumbLen {
		return styles.Thumb.Render("┃")
	}
	return styles.Track.Render("│")
}

// fit truncates or pads text to exactly width cells.
func fit(text string, width int, align lipgloss.Position) string {
	if width <= 0 {
		return ""
	}
	text = runewidth.Truncate(text, width, "…")
	switch align {
	case lipgloss.Right:
		return runewidth.FillLeft(text, width)
	case lipgloss.Center:
		left := (width - runewidth.StringWidth(text)) / 2
		return runewidth.FillRight(strings.Repeat(" ", left)+text, width)
	}
	return runewidth.FillRight(text, width)
}

// cutSegments keeps the window [start, start+width) of the concatenated
// segments, padding with blanks where the window runs past either end.
func cutSegments(segs []segment, start, width int) []segment {
	var out []segment
	if start < 0 {
		out = append(out, segment{text: strings.Repeat(" ", min(-start, width))})
		width += start
		start = 0
	}
	pos := 0
	for _, seg := range segs {
		if width <= 0 {
			break
		}
		var b strings.Builder
		for _, r := range seg.text {
			rw := runewidth.RuneWidth(r)
			if pos >= start && width-rw >= 0 {
				b.WriteRune(r)
				width -= rw
			} else if pos < start && pos+rw > start {
				// wide rune split by the window edge
				b.WriteString(strings.Repeat(" ", pos+rw-start))
				width -= pos + rw - start
			}
			pos += rw
			if width <= 0 {
				break
			}
		}
		if b.Len() > 0 {
			out = append(out, segment{text: b.String(), style: seg.style})
		}
	}
	if width > 0 {
		out = append(out, segment{text: strings.Repeat(" ", width)})
	}
	return out
}

func renderSegments(segs []segment) string {
	var b strings.Builder
	for _, seg := range segs {
		b.WriteString(seg.style.Render(seg.text))
	}
	return b.String()
}
