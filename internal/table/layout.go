package table

import (
	"strings"

	"github.com/sirupsen/logrus"

	"scrolltable/internal/future"
)

// Layout keeps header cell widths matched to the body columns.
type Layout struct {
	surface      Surface
	headersFixed *future.Future
	log          logrus.FieldLogger
}

// scrollMetrics is the body geometry needed for scrollbar compensation.
type scrollMetrics struct {
	viewportHeight int
	contentHeight  int
	viewportWidth  int
	bodyRowWidth   int
}

func (m scrollMetrics) hasScrollbar() bool {
	return m.contentHeight > m.viewportHeight
}

// footprint is the width taken by the vertical scrollbar.
func (m scrollMetrics) footprint() int {
	return m.viewportWidth - m.bodyRowWidth
}

// headerWidth returns the inner width for one header cell. The last visible
// cell reserves the scrollbar footprint unless it is centered.
func headerWidth(cellWidth, innerPadding int, last bool, align Align, m scrollMetrics) int {
	width := cellWidth - innerPadding
	if last && align != AlignCenter && m.hasScrollbar() {
		width += m.footprint()
	}
	return width
}

// FixHeaderWidths applies widths to every header cell, resizes the container
// and resolves the headers-fixed future. It never suspends, so a pass is
// never observed half applied. Only call it after the render gate resolved.
func (l *Layout) FixHeaderWidths() {
	cells := l.surface.HeaderCells()
	lastVisible := -1
	for i, cell := range cells {
		if cell.Visible() {
			lastVisible = i
		}
	}

	metrics := scrollMetrics{
		viewportHeight: l.surface.ViewportHeight(),
		contentHeight:  l.surface.ContentHeight(),
		viewportWidth:  l.surface.ViewportWidth(),
		bodyRowWidth:   l.surface.BodyRowWidth(),
	}

	for i, cell := range cells {
		if !cell.Wrapped() {
			cell.Wrap()
		}
		cell.SetInnerWidth(headerWidth(cell.Width(), cell.InnerPadding(), i == lastVisible, cell.TextAlign(), metrics))

		tooltip := cell.Title()
		if tooltip == "" {
			tooltip = cell.Text()
		}
		cell.SetTooltip(strings.TrimSpace(tooltip))
	}

	l.surface.SetContainerWidth(l.surface.IntrinsicWidth())
	l.log.WithFields(logrus.Fields{
		"cells":     len(cells),
		"scrollbar": metrics.hasScrollbar(),
	}).Debug("header widths fixed")
	l.headersFixed.Resolve()
}
