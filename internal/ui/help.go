package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"scrolltable/internal/model"
)

// RenderHelp renders context-sensitive help footer.
func RenderHelp(screen model.Screen, mode model.Mode, width int) string {
	if mode == model.ModeJump {
		return renderPromptHelp(width)
	}

	switch screen {
	case model.ScreenColumnPicker:
		return renderPickerHelp(width)
	default:
		return renderTableHelp(width)
	}
}

func renderTableHelp(width int) string {
	keys := []string{
		helpKey("j/k", "scroll"),
		helpKey("h/l", "pan"),
		helpKey("tab", "next col"),
		helpKey("s/S", "sort"),
		helpKey("c/C", "hide col/columns"),
		helpKey("/", "jump to row"),
		helpKey("r", "reload"),
		helpKey("?", "help"),
		helpKey("q", "quit"),
	}
	return renderHelpLine(keys, width)
}

func renderPickerHelp(width int) string {
	keys := []string{
		helpKey("j/k", "move"),
		helpKey("space", "show/hide"),
		helpKey("a", "show all"),
		helpKey("esc", "close"),
	}
	return renderHelpLine(keys, width)
}

func renderPromptHelp(width int) string {
	keys := []string{
		helpKey("enter", "jump"),
		helpKey("esc", "cancel"),
	}
	return renderHelpLine(keys, width)
}

func helpKey(key, desc string) string {
	return HelpKeyStyle.Render(key) + " " + HelpDescStyle.Render(desc)
}

func renderHelpLine(keys []string, width int) string {
	line := strings.Join(keys, "  ")
	return FooterStyle.Width(width).MaxHeight(footerHeight).Render(line)
}

// RenderFullHelp renders the full help screen.
func RenderFullHelp(width, height int) string {
	content := lipgloss.NewStyle().
		Width(width-4).
		Height(height-6).
		Padding(1, 2)

	sections := []string{
		titleSection("Scrolling"),
		helpSection([]helpItem{
			{"j / ↓", "Scroll down"},
			{"k / ↑", "Scroll up"},
			{"h / ←", "Scroll left"},
			{"l / →", "Scroll right"},
			{"gg", "Jump to top"},
			{"G", "Jump to bottom"},
			{"ctrl+d", "Half page down"},
			{"ctrl+u", "Half page up"},
			{"/", "Scroll a row to the top by id"},
		}),
		titleSection("Columns"),
		helpSection([]helpItem{
			{"tab / shift+tab", "Cycle active column"},
			{"# then 1-9", "Jump to column"},
			{"s / enter", "Sort active column, again to flip"},
			{"S", "Sort active column descending"},
			{"c", "Hide active column"},
			{"C", "Choose visible columns"},
		}),
		titleSection("General"),
		helpSection([]helpItem{
			{"r", "Reload rows"},
			{"esc", "Cancel / close"},
			{"q", "Quit"},
			{"?", "Toggle help"},
		}),
	}

	helpText := content.Render(strings.Join(sections, "\n\n"))

	return lipgloss.JoinVertical(
		lipgloss.Left,
		TitleStyle.Width(width).Render("Help"),
		helpText,
		FooterStyle.Width(width).Render(HelpKeyStyle.Render("esc")+" "+HelpDescStyle.Render("close help")),
	)
}

type helpItem struct {
	key  string
	desc string
}

func titleSection(title string) string {
	return LabelStyle.Render(title)
}

func helpSection(items []helpItem) string {
	var lines []string
	for _, item := range items {
		lines = append(lines, "  "+HelpKeyStyle.Render(item.key)+" - "+HelpDescStyle.Render(item.desc))
	}
	return strings.Join(lines, "\n")
}
