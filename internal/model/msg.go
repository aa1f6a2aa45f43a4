package model

// Bubble Tea message types

// ErrorMsg represents an error message.
type ErrorMsg struct {
	Err error
}

// DatasetLoadedMsg is sent when the source table has been read.
type DatasetLoadedMsg struct {
	Table   string
	Columns []ColumnInfo
	Records []*Record
}

// RowSelectedMsg asks the table to scroll to the row with the given id.
type RowSelectedMsg struct {
	ID string
}

// Screen represents different app screens.
type Screen int

const (
	ScreenTable Screen = iota
	ScreenColumnPicker
	ScreenHelp
)

// Mode represents the current interaction mode.
type Mode int

const (
	ModeNav Mode = iota
	ModeJump
)
