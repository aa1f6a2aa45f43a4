package ui

import (
	"database/sql"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/sirupsen/logrus"

	"scrolltable/internal/config"
	"scrolltable/internal/db"
	"scrolltable/internal/model"
)

const (
	headerHeight = 2
	statusHeight = 1
	footerHeight = 2

	panStep = 4
)

// Options configures the root model.
type Options struct {
	Table    string
	IDColumn string
	Layout   *config.Layout
	Logger   logrus.FieldLogger
}

// Model is the root Bubble Tea model.
type Model struct {
	db     *sql.DB
	opts   Options
	log    logrus.FieldLogger
	sched  *scheduler
	screen model.Screen
	mode   model.Mode
	gState GState

	width  int
	height int

	error      string
	info       string
	columnJump bool

	grid   *Grid
	view   *TableView
	picker *ColumnPicker
	prompt textinput.Model

	keys       KeyMap
	promptKeys PromptKeyMap
}

// New creates a new root model.
func New(database *sql.DB, opts Options) Model {
	if opts.Layout == nil {
		opts.Layout = &config.Layout{}
	}
	if opts.Logger == nil {
		discard := logrus.New()
		discard.SetOutput(io.Discard)
		opts.Logger = discard
	}

	prompt := textinput.New()
	prompt.Prompt = "Row id: "
	prompt.Placeholder = "value of " + idColumnLabel(opts.IDColumn)
	prompt.CharLimit = 128

	return Model{
		db:         database,
		opts:       opts,
		log:        opts.Logger,
		sched:      newScheduler(),
		screen:     model.ScreenTable,
		mode:       model.ModeNav,
		gState:     GStateIdle,
		prompt:     prompt,
		keys:       DefaultKeyMap(),
		promptKeys: DefaultPromptKeyMap(),
	}
}

func idColumnLabel(col string) string {
	if col == "" {
		return "the row number"
	}
	return col
}

// Init initializes the model.
func (m Model) Init() tea.Cmd {
	return loadDatasetCmd(m.db, m.opts.Table, m.opts.IDColumn)
}

// Update handles messages. Timers the table engine scheduled while handling
// msg are started before returning.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.update(msg)
	return next, tea.Batch(cmd, next.sched.Flush())
}

func (m Model) update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if m.view != nil {
			m.view.Resize(m.width, m.tableHeight())
		}
		return m, nil

	case timerFiredMsg:
		msg.fn()
		return m, nil

	case model.ErrorMsg:
		m.error = msg.Err.Error()
		m.log.WithError(msg.Err).Error("operation failed")
		return m, nil

	case model.DatasetLoadedMsg:
		return m.handleDatasetLoaded(msg)

	case model.RowSelectedMsg:
		if m.view == nil {
			return m, nil
		}
		if m.view.RowSelected(msg.ID) {
			m.info = fmt.Sprintf("Row %s", msg.ID)
		} else {
			m.info = fmt.Sprintf("No single row with id %q", msg.ID)
		}
		return m, nil

	case tea.KeyMsg:
		// Handle ctrl+c globally
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}

		if m.mode == model.ModeJump {
			return m.handleJumpMode(msg)
		}

		if m.screen == model.ScreenHelp {
			if msg.String() == "esc" || key.Matches(msg, m.keys.Help) {
				m.screen = model.ScreenTable
			}
			return m, nil
		}

		if m.screen == model.ScreenColumnPicker {
			return m.handlePickerMode(msg)
		}

		return m.handleNavMode(msg)
	}

	if m.mode == model.ModeJump {
		var cmd tea.Cmd
		m.prompt, cmd = m.prompt.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m Model) handleDatasetLoaded(msg model.DatasetLoadedMsg) (Model, tea.Cmd) {
	log := m.log.WithFields(logrus.Fields{"table": msg.Table, "rows": len(msg.Records)})

	if m.view == nil {
		columns, err := m.opts.Layout.Resolve(msg.Columns)
		if err != nil {
			m.error = err.Error()
			return m, nil
		}
		grid := NewGrid()
		view, err := NewTableView(msg.Table, m.opts.Layout, columns, grid, m.sched, m.log)
		if err != nil {
			m.error = err.Error()
			return m, nil
		}
		m.grid, m.view = grid, view
		if m.width > 0 {
			m.view.Resize(m.width, m.tableHeight())
		}
	}

	if err := m.view.SetRecords(msg.Records); err != nil {
		m.error = err.Error()
		log.WithError(err).Warn("rows loaded unsorted")
		return m, nil
	}
	m.error = ""
	m.info = fmt.Sprintf("Loaded %d rows", len(msg.Records))
	log.Info("dataset loaded")
	return m, nil
}

func (m Model) tableHeight() int {
	return max(0, m.height-headerHeight-statusHeight-footerHeight)
}

// handleNavMode handles navigation mode input.
func (m Model) handleNavMode(msg tea.KeyMsg) (Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Quit) {
		return m, tea.Quit
	}
	if key.Matches(msg, m.keys.Help) {
		m.screen = model.ScreenHelp
		return m, nil
	}

	t := m.currentTable()
	if t == nil {
		return m, nil
	}

	if m.columnJump {
		m.columnJump = false
		if n, err := strconv.Atoi(msg.String()); err == nil {
			if t.JumpToColumn(n) {
				m.info = fmt.Sprintf("Jumped to column %d", n)
			} else {
				m.info = fmt.Sprintf("Column %d unavailable", n)
			}
			return m, nil
		}
		m.info = ""
		if msg.String() == "esc" {
			return m, nil
		}
	}

	if key.Matches(msg, m.keys.Top) {
		if m.gState == GStateFirstG {
			m.gState = GStateIdle
			t.ScrollToTop()
			return m, nil
		}
		m.gState = GStateFirstG
		return m, nil
	}
	m.gState = GStateIdle

	switch {
	case key.Matches(msg, m.keys.Down):
		t.ScrollBy(1)
	case key.Matches(msg, m.keys.Up):
		t.ScrollBy(-1)
	case key.Matches(msg, m.keys.HalfPageDown):
		t.ScrollBy(t.HalfPage())
	case key.Matches(msg, m.keys.HalfPageUp):
		t.ScrollBy(-t.HalfPage())
	case key.Matches(msg, m.keys.Bottom):
		t.ScrollToBottom()
	case key.Matches(msg, m.keys.Left):
		t.ScrollHorizontal(-panStep)
	case key.Matches(msg, m.keys.Right):
		t.ScrollHorizontal(panStep)
	case key.Matches(msg, m.keys.NextColumn):
		t.NextColumn()
	case key.Matches(msg, m.keys.PrevColumn):
		t.PrevColumn()
	case key.Matches(msg, m.keys.Sort):
		if err := t.ClickActiveColumn(); err != nil {
			m.error = err.Error()
		}
	case key.Matches(msg, m.keys.SortDesc):
		if err := t.SortActiveColumn(true); err != nil {
			m.error = err.Error()
		}
	case key.Matches(msg, m.keys.HideColumn):
		if t.HideActiveColumn() {
			m.info = "Column hidden (C to choose columns)"
		} else {
			m.info = "This column cannot be hidden"
		}
	case key.Matches(msg, m.keys.ShowColumns):
		m.picker = NewColumnPicker(m.grid.Registry, m.opts.Layout.Translate)
		m.screen = model.ScreenColumnPicker
	case key.Matches(msg, m.keys.ColumnJump):
		m.columnJump = true
		m.info = "Column number?"
	case key.Matches(msg, m.keys.JumpToRow):
		m.mode = model.ModeJump
		m.prompt.Reset()
		return m, m.prompt.Focus()
	case key.Matches(msg, m.keys.Reload):
		m.info = "Reloading…"
		return m, loadDatasetCmd(m.db, m.view.Name(), m.opts.IDColumn)
	}
	return m, nil
}

// handleJumpMode edits the row-id prompt.
func (m Model) handleJumpMode(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.promptKeys.Cancel):
		m.mode = model.ModeNav
		m.prompt.Blur()
		return m, nil
	case key.Matches(msg, m.promptKeys.Confirm):
		m.mode = model.ModeNav
		m.prompt.Blur()
		id := strings.TrimSpace(m.prompt.Value())
		if id == "" {
			return m, nil
		}
		return m, rowSelectedCmd(id)
	}
	var cmd tea.Cmd
	m.prompt, cmd = m.prompt.Update(msg)
	return m, cmd
}

// handlePickerMode handles the column picker.
func (m Model) handlePickerMode(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.promptKeys.Cancel), key.Matches(msg, m.keys.ShowColumns), key.Matches(msg, m.keys.Quit):
		m.screen = model.ScreenTable
		m.picker = nil
	case key.Matches(msg, m.keys.Down):
		m.picker.Move(1)
	case key.Matches(msg, m.keys.Up):
		m.picker.Move(-1)
	case key.Matches(msg, m.promptKeys.Toggle), key.Matches(msg, m.promptKeys.Confirm):
		if k, ok := m.picker.Selected(); ok {
			m.view.ToggleColumn(k)
		}
	case key.Matches(msg, m.promptKeys.ShowAll):
		m.view.ShowAllColumns()
	}
	return m, nil
}

// currentTable returns the table controller, or nil before the dataset
// has loaded.
func (m *Model) currentTable() tableController {
	if m.view == nil {
		return nil
	}
	return m.view
}

// View renders the UI.
func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}

	if m.screen == model.ScreenHelp {
		return RenderFullHelp(m.width, m.height)
	}

	contentHeight := m.tableHeight()
	breadcrumbParts := []string{m.opts.Table}

	var content string
	switch {
	case m.view == nil:
		content = EmptyStateStyle.Render("Loading " + m.opts.Table + "…")
	case m.screen == model.ScreenColumnPicker && m.picker != nil:
		breadcrumbParts = append(breadcrumbParts, "Columns")
		content = m.picker.View(m.grid, m.width, contentHeight)
	default:
		content = m.view.View()
	}

	// Ensure content fills the available height to anchor footer at bottom
	content = lipgloss.NewStyle().
		Width(m.width).
		Height(contentHeight).
		MaxHeight(contentHeight).
		Render(content)

	return lipgloss.JoinVertical(lipgloss.Left,
		renderHeader(breadcrumbParts, m.width),
		content,
		m.renderStatus(),
		RenderHelp(m.screen, m.mode, m.width),
	)
}

// renderStatus shows, by priority, the row-id prompt, the last error, the
// last info message, or the focused column's tooltip next to the table meta.
func (m Model) renderStatus() string {
	line := lipgloss.NewStyle().Width(m.width).MaxWidth(m.width).MaxHeight(statusHeight)
	switch {
	case m.mode == model.ModeJump:
		return line.Render(InputStyle.Render(m.prompt.View()))
	case m.error != "":
		return line.Render(ErrorStyle.Render("Error: " + m.error))
	}

	var left, right string
	if m.info != "" {
		left = SuccessStyle.Render(m.info)
	} else if m.view != nil {
		if tip := m.view.ActiveTooltip(); tip != "" {
			left = StatusBarStyle.Render(TooltipStyle.Render(tip))
		}
	}
	if m.view != nil {
		right = StatusBarStyle.Render(m.view.TableMeta())
	}
	gap := max(0, m.width-lipgloss.Width(left)-lipgloss.Width(right))
	return line.Render(left + strings.Repeat(" ", gap) + right)
}

func renderHeader(breadcrumbParts []string, width int) string {
	// Left side: app name + breadcrumb
	title := HeaderStyle.Render("scrolltable")

	var breadcrumb string
	if len(breadcrumbParts) > 0 {
		separator := BreadcrumbStyle.Render(" › ")
		parts := make([]string, len(breadcrumbParts))
		for i, part := range breadcrumbParts {
			if i == len(breadcrumbParts)-1 {
				parts[i] = BreadcrumbActiveStyle.Render(part)
			} else {
				parts[i] = BreadcrumbStyle.Render(part)
			}
		}
		breadcrumb = separator + strings.Join(parts, separator)
	}

	left := "  " + title + breadcrumb

	// Right side: current date
	right := BreadcrumbStyle.Render(time.Now().Format("Mon 02 Jan")) + "  "

	padding := max(0, width-TitleStyle.GetHorizontalPadding()-lipgloss.Width(left)-lipgloss.Width(right))

	headerContent := left + strings.Repeat(" ", padding) + right
	return TitleStyle.Width(width).MaxHeight(headerHeight).Render(headerContent)
}

func loadDatasetCmd(database *sql.DB, tableName, idColumn string) tea.Cmd {
	return func() tea.Msg {
		columns, err := db.ListColumns(database, tableName)
		if err != nil {
			return model.ErrorMsg{Err: err}
		}
		if idColumn == "" {
			for _, c := range columns {
				if c.PK {
					idColumn = c.Name
					break
				}
			}
		}
		records, err := db.LoadRecords(database, tableName, idColumn)
		if err != nil {
			return model.ErrorMsg{Err: err}
		}
		return model.DatasetLoadedMsg{Table: tableName, Columns: columns, Records: records}
	}
}

func rowSelectedCmd(id string) tea.Cmd {
	return func() tea.Msg {
		return model.RowSelectedMsg{ID: id}
	}
}
