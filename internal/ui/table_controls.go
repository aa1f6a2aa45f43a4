package ui

type tableController interface {
	NextColumn()
	PrevColumn()
	JumpToColumn(number int) bool
	ClickActiveColumn() error
	SortActiveColumn(desc bool) error
	HideActiveColumn() bool
	ShowAllColumns()
	ToggleColumn(key string) bool
	ScrollBy(delta int)
	HalfPage() int
	ScrollToTop()
	ScrollToBottom()
	ScrollHorizontal(delta int)
	RowSelected(id string) bool
	ActiveTooltip() string
	TableMeta() string
}

var _ tableController = (*TableView)(nil)
