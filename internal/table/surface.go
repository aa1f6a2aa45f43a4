package table

import "time"

// Align is the horizontal text alignment of a header cell.
type Align int

const (
	AlignLeft Align = iota
	AlignCenter
	AlignRight
)

// Surface is the element handle capability the engine drives. All sizes are
// in the host's layout units (pixels, terminal cells, ...).
type Surface interface {
	// TableVisible reports whether the table has been mounted and painted.
	TableVisible() bool

	// HeaderCells returns the header cells in document order, hidden ones
	// included.
	HeaderCells() []HeaderCell

	// ViewportHeight and ViewportWidth describe the scrollable body area,
	// scrollbar included.
	ViewportHeight() int
	ViewportWidth() int

	// ContentHeight is the full height of the body table.
	ContentHeight() int

	// BodyRowWidth is the rendered width of a body row.
	BodyRowWidth() int

	// IntrinsicWidth is the un-clipped width of the table.
	IntrinsicWidth() int
	SetContainerWidth(width int)

	// HeaderSpacerHeight is the height reserved above the body for the
	// fixed header.
	HeaderSpacerHeight() int

	ScrollTop() int
	SetScrollTop(top int)

	// SetHeaderOffset shifts the header inner nodes horizontally.
	SetHeaderOffset(offset int)

	// FindRows returns every body row whose identity attribute equals id.
	FindRows(id string) []RowHandle
}

// HeaderCell is a single header cell and its inner measurement node.
type HeaderCell interface {
	Wrapped() bool
	Wrap()

	// Width is the content width of the cell itself.
	Width() int

	// InnerPadding is the horizontal padding of the inner measurement node.
	InnerPadding() int

	Visible() bool
	TextAlign() Align
	SetInnerWidth(width int)

	// Title is the explicit title set by the caller, empty when unset.
	Title() string
	Text() string
	SetTooltip(tooltip string)
}

// RowHandle is a rendered body row.
type RowHandle interface {
	// OffsetTop is the row's top edge relative to the table container, at
	// the current scroll position.
	OffsetTop() int
}

// Scheduler is the host's cooperative timer facility. Callbacks must run on
// the same event loop that drives the table.
type Scheduler interface {
	AfterFunc(d time.Duration, fn func())
}

// ScrollSource is implemented by surfaces that report changes to the body's
// horizontal scroll position, including clamps caused by a resize.
type ScrollSource interface {
	OnScroll(fn func(scrollLeft int)) (unsubscribe func())
}

// ResizeSource notifies subscribers when the viewport is resized.
type ResizeSource interface {
	OnResize(fn func()) (unsubscribe func())
}
