package main

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/cmlabs-hris/leave-calendar/internal/config"
	"github.com/cmlabs-hris/leave-calendar/internal/domain/leave"
	"github.com/cmlabs-hris/leave-calendar/internal/pkg/backend"
	"github.com/cmlabs-hris/leave-calendar/internal/pkg/cache"
	"github.com/cmlabs-hris/leave-calendar/internal/pkg/session"
	calendarService "github.com/cmlabs-hris/leave-calendar/internal/service/calendar"
	holidayService "github.com/cmlabs-hris/leave-calendar/internal/service/holiday"
	"github.com/cmlabs-hris/leave-calendar/internal/tui"
	tea "github.com/charmbracelet/bubbletea"
)

func main() {
	var (
		token      = flag.String("token", os.Getenv("LEAVECAL_TOKEN"), "bearer token for the leave API (or LEAVECAL_TOKEN)")
		department = flag.String("department", "", "only show leave of this department id")
		month      = flag.String("month", "", "month to open, YYYY-MM (default: current month)")
		themeName  = flag.String("theme", "default", "colour theme: default or mono")
		logPath    = flag.String("log", "", "write logs to this file")
	)
	flag.Parse()

	if err := run(*token, *department, *month, *themeName, *logPath); err != nil {
		fmt.Fprintln(os.Stderr, "leavecal:", err)
		os.Exit(1)
	}
}

func run(token, department, month, themeName, logPath string) error {
	// The terminal belongs to the UI; logs go to a file or nowhere.
	var logOut io.Writer = io.Discard
	if logPath != "" {
		f, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
		if err != nil {
			return fmt.Errorf("open log file: %w", err)
		}
		defer f.Close()
		logOut = f
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(logOut, nil)))

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	sess, err := session.New(token)
	if err != nil {
		return fmt.Errorf("token: %w", err)
	}

	start, err := parseMonth(month)
	if err != nil {
		return err
	}

	requestCache := cache.New(cfg.Cache.TTL)
	gateways := backend.Factory(backend.Config{
		BaseURL:  cfg.Backend.BaseURL,
		Timeout:  cfg.Backend.Timeout,
		MaxPages: cfg.Backend.MaxPages,
	})
	calendarSvc := calendarService.NewCalendarService(
		gateways,
		requestCache,
		holidayService.NewHolidayService(nil, cfg.Holiday.Country),
	)

	model := tui.NewModel(calendarSvc, sess, tui.Options{
		DepartmentID: department,
		Start:        start,
		Theme:        tui.ThemeByName(themeName),
		Refresh: func() {
			requestCache.Invalidate(leave.ResourceApproved, leave.ResourceDepartments)
		},
		LoadTimeout: cfg.Backend.Timeout + 5*time.Second,
	})

	p := tea.NewProgram(model, tea.WithAltScreen())
	_, err = p.Run()
	return err
}

func parseMonth(s string) (leave.Date, error) {
	if s == "" {
		return leave.Date{}, nil
	}
	t, err := time.Parse("2006-01", s)
	if err != nil {
		return leave.Date{}, fmt.Errorf("invalid -month %q, expected YYYY-MM", s)
	}
	return leave.NewDate(t.Year(), t.Month(), 1), nil
}
