package tui

import (
	engine "github.com/cmlabs-hris/leave-calendar/internal/pkg/calendar"
	"github.com/charmbracelet/lipgloss"
)

type Theme struct {
	Name       string
	Base       lipgloss.Style
	Border     lipgloss.Color
	Header     lipgloss.Style
	Weekday    lipgloss.Style
	Day        lipgloss.Style
	Weekend    lipgloss.Style
	Holiday    lipgloss.Style
	Today      lipgloss.Style
	Selected   lipgloss.Style
	PanelTitle lipgloss.Style
	Dim        lipgloss.Style
	Warning    lipgloss.Style
	Error      lipgloss.Style
	// BookedText is drawn on top of a category background.
	BookedText lipgloss.Color
}

var Themes = map[string]Theme{
	"default": {
		Name:       "Default",
		Base:       lipgloss.NewStyle().Margin(1, 2),
		Border:     lipgloss.Color("63"),
		Header:     lipgloss.NewStyle().Foreground(lipgloss.Color("141")).Bold(true),
		Weekday:    lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Bold(true),
		Day:        lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		Weekend:    lipgloss.NewStyle().Foreground(lipgloss.Color("244")),
		Holiday:    lipgloss.NewStyle().Foreground(lipgloss.Color("203")).Underline(true),
		Today:      lipgloss.NewStyle().Foreground(lipgloss.Color("81")).Bold(true),
		Selected:   lipgloss.NewStyle().Reverse(true).Bold(true),
		PanelTitle: lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Bold(true),
		Dim:        lipgloss.NewStyle().Foreground(lipgloss.Color("240")),
		Warning:    lipgloss.NewStyle().Foreground(lipgloss.Color("214")),
		Error:      lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true),
		BookedText: lipgloss.Color("#0f172a"),
	},
	"mono": {
		Name:       "Monochrome",
		Base:       lipgloss.NewStyle().Margin(1, 2),
		Border:     lipgloss.Color("250"),
		Header:     lipgloss.NewStyle().Bold(true),
		Weekday:    lipgloss.NewStyle().Faint(true),
		Day:        lipgloss.NewStyle(),
		Weekend:    lipgloss.NewStyle().Faint(true),
		Holiday:    lipgloss.NewStyle().Underline(true),
		Today:      lipgloss.NewStyle().Bold(true),
		Selected:   lipgloss.NewStyle().Reverse(true),
		PanelTitle: lipgloss.NewStyle().Bold(true),
		Dim:        lipgloss.NewStyle().Faint(true),
		Warning:    lipgloss.NewStyle().Italic(true),
		Error:      lipgloss.NewStyle().Bold(true),
		BookedText: lipgloss.Color("0"),
	},
}

// ThemeByName falls back to the default theme for unknown names.
func ThemeByName(name string) Theme {
	if t, ok := Themes[name]; ok {
		return t
	}
	return Themes["default"]
}

// Category paints a booked cell with the category colour.
func (t Theme) Category(c engine.Category) lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(t.BookedText).
		Background(lipgloss.Color(c.Color)).
		Bold(true)
}

// Swatch is the legend marker for a category.
func (t Theme) Swatch(c engine.Category) string {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(c.Color)).Render("■") + " " + c.Label
}

func (t Theme) Panel() lipgloss.Style {
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.Border).
		Padding(0, 1)
}
