// Package tui is the terminal month calendar. It renders the same MonthView
// the HTTP API serves.
package tui

import (
	"context"
	"time"

	"github.com/cmlabs-hris/leave-calendar/internal/domain/calendar"
	"github.com/cmlabs-hris/leave-calendar/internal/domain/leave"
	"github.com/cmlabs-hris/leave-calendar/internal/pkg/session"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

const defaultLoadTimeout = 20 * time.Second

// MonthLoader is the part of calendar.CalendarService the client needs.
type MonthLoader interface {
	MonthView(ctx context.Context, sess *session.Session, req calendar.MonthViewRequest) (calendar.MonthView, error)
}

type Options struct {
	DepartmentID string
	// Start is the initially selected day; zero means today.
	Start leave.Date
	Theme Theme
	// Refresh runs before a manual reload, typically to drop cached data.
	Refresh     func()
	LoadTimeout time.Duration
	Now         func() time.Time
}

type Model struct {
	loader       MonthLoader
	sess         *session.Session
	departmentID string
	refresh      func()
	timeout      time.Duration

	today    leave.Date
	selected leave.Date
	view     *calendar.MonthView
	loading  bool
	err      error

	keys  keyMap
	help  help.Model
	theme Theme

	width  int
	height int
}

type monthLoadedMsg struct {
	year  int
	month time.Month
	view  calendar.MonthView
	err   error
}

func NewModel(loader MonthLoader, sess *session.Session, opts Options) Model {
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	today := leave.DateOf(now())

	selected := opts.Start
	if selected.IsZero() {
		selected = today
	}
	theme := opts.Theme
	if theme.Name == "" {
		theme = Themes["default"]
	}
	timeout := opts.LoadTimeout
	if timeout <= 0 {
		timeout = defaultLoadTimeout
	}

	return Model{
		loader:       loader,
		sess:         sess,
		departmentID: opts.DepartmentID,
		refresh:      opts.Refresh,
		timeout:      timeout,
		today:        today,
		selected:     selected,
		loading:      true,
		keys:         defaultKeyMap(),
		help:         help.New(),
		theme:        theme,
	}
}

func (m Model) Selected() leave.Date { return m.selected }

func (m Model) Init() tea.Cmd {
	return tea.Batch(
		tea.SetWindowTitle(monthTitle(m.selected.Year, m.selected.Month)),
		m.load(),
	)
}

// load fetches the month of the selected day.
func (m Model) load() tea.Cmd {
	loader, sess, timeout := m.loader, m.sess, m.timeout
	req := calendar.MonthViewRequest{
		Year:         m.selected.Year,
		Month:        int(m.selected.Month),
		DepartmentID: m.departmentID,
	}
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		view, err := loader.MonthView(ctx, sess, req)
		return monthLoadedMsg{year: req.Year, month: req.TimeMonth(), view: view, err: err}
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case monthLoadedMsg:
		// A slow response for a month the user already left.
		if msg.year != m.selected.Year || msg.month != m.selected.Month {
			return m, nil
		}
		m.loading = false
		if msg.err != nil {
			m.err = msg.err
			m.view = nil
			return m, nil
		}
		view := msg.view
		m.view = &view
		m.err = nil
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	case key.Matches(msg, m.keys.Left):
		return m.moveTo(m.selected.AddDays(-1))
	case key.Matches(msg, m.keys.Right):
		return m.moveTo(m.selected.AddDays(1))
	case key.Matches(msg, m.keys.Up):
		return m.moveTo(m.selected.AddDays(-7))
	case key.Matches(msg, m.keys.Down):
		return m.moveTo(m.selected.AddDays(7))
	case key.Matches(msg, m.keys.PrevMonth):
		return m.moveTo(addMonths(m.selected, -1))
	case key.Matches(msg, m.keys.NextMonth):
		return m.moveTo(addMonths(m.selected, 1))
	case key.Matches(msg, m.keys.Today):
		return m.moveTo(m.today)
	case key.Matches(msg, m.keys.Refresh):
		if m.refresh != nil {
			m.refresh()
		}
		m.loading = true
		return m, m.load()
	}
	return m, nil
}

// moveTo selects date and reloads when it lies in another month.
func (m Model) moveTo(date leave.Date) (tea.Model, tea.Cmd) {
	sameMonth := date.Year == m.selected.Year && date.Month == m.selected.Month
	m.selected = date
	if sameMonth {
		return m, nil
	}
	m.view = nil
	m.err = nil
	m.loading = true
	return m, m.load()
}

// addMonths keeps the day of month, clamped to the target month's length.
func addMonths(d leave.Date, n int) leave.Date {
	first := leave.NewDate(d.Year, d.Month+time.Month(n), 1)
	_, last := leave.MonthBounds(first.Year, first.Month)
	day := min(d.Day, last.Day)
	return leave.NewDate(first.Year, first.Month, day)
}

// selectedDay returns the grid cell of the selected date, if loaded.
func (m Model) selectedDay() (calendar.DayView, bool) {
	if m.view == nil {
		return calendar.DayView{}, false
	}
	i := m.selected.Day - 1
	if i < 0 || i >= len(m.view.Days) || m.view.Days[i].Date != m.selected {
		return calendar.DayView{}, false
	}
	return m.view.Days[i], true
}
