package tui

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/cmlabs-hris/leave-calendar/internal/domain/calendar"
	"github.com/cmlabs-hris/leave-calendar/internal/domain/leave"
	"github.com/charmbracelet/lipgloss"
)

const cellWidth = 4

var weekdayLabels = []string{"Su", "Mo", "Tu", "We", "Th", "Fr", "Sa"}

func (m Model) View() string {
	title := m.theme.Header.Render("Leave Calendar · " + m.selected.Month.String() + " " + strconv.Itoa(m.selected.Year))
	if m.departmentID != "" {
		title += m.theme.Dim.Render("  department " + m.departmentID)
	}

	sections := []string{title, ""}

	switch {
	case m.err != nil:
		sections = append(sections, m.theme.Error.Render("Could not load calendar: "+m.err.Error()))
	case m.view == nil:
		sections = append(sections, m.theme.Dim.Render("Loading…"))
	default:
		top := lipgloss.JoinHorizontal(lipgloss.Top,
			m.theme.Panel().Render(m.renderGrid()),
			" ",
			m.theme.Panel().Width(36).Render(m.renderDayPanel()),
		)
		sections = append(sections,
			top,
			m.theme.Panel().Render(m.renderScheduled()),
			m.renderLegend(),
		)
		if n := len(m.view.Warnings); n > 0 {
			sections = append(sections, m.theme.Warning.Render(
				fmt.Sprintf("%d record(s) skipped or flagged, see the API warnings", n)))
		}
		if m.loading {
			sections = append(sections, m.theme.Dim.Render("Refreshing…"))
		}
	}

	sections = append(sections, "", m.help.View(m.keys))
	return m.theme.Base.Render(lipgloss.JoinVertical(lipgloss.Left, sections...))
}

func (m Model) renderGrid() string {
	var b strings.Builder
	for _, label := range weekdayLabels {
		b.WriteString(m.theme.Weekday.Render(pad(label)))
	}
	b.WriteString("\n")

	lead := int(leave.NewDate(m.selected.Year, m.selected.Month, 1).Weekday())
	b.WriteString(strings.Repeat(" ", lead*cellWidth))

	col := lead
	for _, day := range m.view.Days {
		b.WriteString(m.renderCell(day))
		col++
		if col == 7 {
			b.WriteString("\n")
			col = 0
		}
	}
	return strings.TrimRight(b.String(), "\n")
}

func (m Model) renderCell(day calendar.DayView) string {
	text := pad(strconv.Itoa(day.Date.Day))

	style := m.theme.Day
	switch {
	case day.Category != nil:
		style = m.theme.Category(*day.Category)
	case len(day.Holidays) > 0:
		style = m.theme.Holiday
	case day.IsWeekend:
		style = m.theme.Weekend
	}
	if day.Date == m.today {
		style = style.Inherit(m.theme.Today)
	}
	if day.Date == m.selected {
		style = style.Inherit(m.theme.Selected).Reverse(true)
	}
	return style.Render(text)
}

func (m Model) renderDayPanel() string {
	lines := []string{m.theme.PanelTitle.Render(m.selected.Time().Format("Monday, 2 January 2006"))}

	day, ok := m.selectedDay()
	if !ok {
		return strings.Join(append(lines, m.theme.Dim.Render("No data for this day.")), "\n")
	}

	for _, h := range day.Holidays {
		lines = append(lines, m.theme.Holiday.Render("Holiday: "+h.Name))
	}
	if !day.IsBooked {
		return strings.Join(append(lines, m.theme.Dim.Render("Nobody is on leave.")), "\n")
	}

	lines = append(lines, fmt.Sprintf("%d on leave:", len(day.EmployeeNames)))
	for _, name := range day.EmployeeNames {
		lines = append(lines, "  • "+name)
	}
	if day.Category != nil {
		lines = append(lines, m.theme.Swatch(*day.Category))
	}
	return strings.Join(lines, "\n")
}

func (m Model) renderScheduled() string {
	lines := []string{m.theme.PanelTitle.Render("Scheduled leave")}
	if len(m.view.ScheduledLeaves) == 0 {
		return strings.Join(append(lines, m.theme.Dim.Render("No approved leave this month.")), "\n")
	}
	for _, s := range m.view.ScheduledLeaves {
		name := s.EmployeeName
		if name == "" {
			name = "Unknown employee"
		}
		lines = append(lines, fmt.Sprintf("%s %-20s %s to %s  %s  %s",
			lipgloss.NewStyle().Foreground(lipgloss.Color(s.Category.Color)).Render("■"),
			truncate(name, 20),
			shortDate(s.StartDate),
			shortDate(s.EndDate),
			s.Category.Label,
			formatDays(s.Days),
		))
	}
	return strings.Join(lines, "\n")
}

func (m Model) renderLegend() string {
	parts := make([]string, 0, len(m.view.Legend))
	for _, c := range m.view.Legend {
		parts = append(parts, m.theme.Swatch(c))
	}
	return strings.Join(parts, "   ")
}

func pad(s string) string {
	return fmt.Sprintf("%*s ", cellWidth-1, s)
}

func shortDate(d leave.Date) string {
	return d.Time().Format("Jan 2")
}

func formatDays(days float64) string {
	s := strconv.FormatFloat(days, 'f', -1, 64)
	if days == 1 {
		return s + " day"
	}
	return s + " days"
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}

// monthTitle is the terminal window title.
func monthTitle(year int, month time.Month) string {
	return "Leave Calendar - " + month.String() + " " + strconv.Itoa(year)
}
