package calendar

import (
	"bytes"
	"context"
	"log/slog"
	"time"

	"github.com/cmlabs-hris/leave-calendar/internal/domain/calendar"
	"github.com/cmlabs-hris/leave-calendar/internal/domain/holiday"
	"github.com/cmlabs-hris/leave-calendar/internal/domain/leave"
	"github.com/cmlabs-hris/leave-calendar/internal/pkg/cache"
	engine "github.com/cmlabs-hris/leave-calendar/internal/pkg/calendar"
	"github.com/cmlabs-hris/leave-calendar/internal/pkg/export"
	"github.com/cmlabs-hris/leave-calendar/internal/pkg/session"
)

const exportPrefix = "leave-calendar"

type CalendarServiceImpl struct {
	gateways leave.GatewayFactory
	cache    *cache.Cache
	holidays holiday.HolidayService
	now      func() time.Time
}

// NewCalendarService wires the service. holidays may be nil, in which case
// views carry no holidays.
func NewCalendarService(gateways leave.GatewayFactory, c *cache.Cache, holidays holiday.HolidayService) calendar.CalendarService {
	return &CalendarServiceImpl{
		gateways: gateways,
		cache:    c,
		holidays: holidays,
		now:      time.Now,
	}
}

// approved returns every approved record visible to the session, cached per
// session until a leave mutation invalidates it.
func (s *CalendarServiceImpl) approved(ctx context.Context, sess *session.Session, departmentID string) ([]leave.Record, error) {
	if sess == nil || !sess.Valid() {
		return nil, leave.ErrUnauthorized
	}
	gw := s.gateways(sess)
	records, err := cache.GetOrLoad(ctx, s.cache, leave.ResourceApproved, nil, sess.Fingerprint(), gw.ListApproved)
	if err != nil {
		return nil, err
	}
	return engine.FilterByDepartment(records, departmentID), nil
}

func (s *CalendarServiceImpl) holidaysBetween(ctx context.Context, from, to leave.Date) ([]holiday.Holiday, error) {
	if s.holidays == nil {
		return []holiday.Holiday{}, nil
	}
	return s.holidays.List(ctx, holiday.ListHolidaysRequest{From: from, To: to})
}

func groupByDate(holidays []holiday.Holiday) map[leave.Date][]holiday.Holiday {
	out := make(map[leave.Date][]holiday.Holiday, len(holidays))
	for _, h := range holidays {
		out[h.Date] = append(out[h.Date], h)
	}
	return out
}

func dayView(idx *engine.DayIndex, date leave.Date, holidays map[leave.Date][]holiday.Holiday) calendar.DayView {
	wd := date.Weekday()
	hs := holidays[date]
	if hs == nil {
		hs = []holiday.Holiday{}
	}
	return calendar.DayView{
		DayInfo:   idx.Day(date),
		IsWeekend: wd == time.Saturday || wd == time.Sunday,
		Holidays:  hs,
	}
}

// MonthView implements calendar.CalendarService.
func (s *CalendarServiceImpl) MonthView(ctx context.Context, sess *session.Session, req calendar.MonthViewRequest) (calendar.MonthView, error) {
	if err := req.Validate(); err != nil {
		return calendar.MonthView{}, err
	}
	records, err := s.approved(ctx, sess, req.DepartmentID)
	if err != nil {
		return calendar.MonthView{}, err
	}

	first, last := req.Bounds()
	holidays, err := s.holidaysBetween(ctx, first, last)
	if err != nil {
		return calendar.MonthView{}, err
	}
	byDate := groupByDate(holidays)

	// Warnings cover every fetched record; the index only the month.
	warnings := engine.Validate(records)
	monthRecords := engine.MonthRecords(records, req.Year, req.TimeMonth())
	idx, _ := engine.BuildDayIndex(monthRecords)
	if engine.HasInvalidRange(warnings) {
		slog.Warn("Calendar data has malformed records",
			"count", len(warnings),
			"year", req.Year,
			"month", req.Month)
	} else if len(warnings) > 0 {
		slog.Debug("Calendar data has unrecognized leave types", "count", len(warnings))
	}
	if warnings == nil {
		warnings = []engine.Warning{}
	}

	view := calendar.MonthView{
		Year:         req.Year,
		Month:        req.Month,
		MonthName:    req.TimeMonth().String(),
		DepartmentID: req.DepartmentID,
		Days:         make([]calendar.DayView, 0, first.DaysUntil(last)+1),
		Holidays:     holidays,
		Legend:       engine.Legend(),
		Warnings:     warnings,
	}
	for d := range engine.Days(first, last) {
		view.Days = append(view.Days, dayView(idx, d, byDate))
	}
	view.ScheduledLeaves = scheduled(monthRecords)

	return view, nil
}

func scheduled(records []leave.Record) []calendar.ScheduledLeave {
	out := make([]calendar.ScheduledLeave, 0, len(records))
	for _, r := range records {
		// MonthRecords already dropped reversed ranges.
		days, _ := engine.RecordDuration(r)
		out = append(out, calendar.ScheduledLeave{
			Record:   r,
			Days:     days,
			Category: engine.ClassifyDay(r.Type),
		})
	}
	return out
}

// DayView implements calendar.CalendarService.
func (s *CalendarServiceImpl) DayView(ctx context.Context, sess *session.Session, req calendar.DayViewRequest) (calendar.DayView, error) {
	if err := req.Validate(); err != nil {
		return calendar.DayView{}, err
	}
	date, _ := leave.ParseDate(req.Date)

	records, err := s.approved(ctx, sess, req.DepartmentID)
	if err != nil {
		return calendar.DayView{}, err
	}
	holidays, err := s.holidaysBetween(ctx, date, date)
	if err != nil {
		return calendar.DayView{}, err
	}

	idx, _ := engine.BuildDayIndex(engine.RecordsBetween(records, date, date))
	return dayView(idx, date, groupByDate(holidays)), nil
}

// Export implements calendar.CalendarService.
func (s *CalendarServiceImpl) Export(ctx context.Context, sess *session.Session, req calendar.ExportRequest) (calendar.ExportFile, error) {
	if err := req.Validate(); err != nil {
		return calendar.ExportFile{}, err
	}
	format, _ := export.ParseFormat(req.Format)

	records, err := s.approved(ctx, sess, req.DepartmentID)
	if err != nil {
		return calendar.ExportFile{}, err
	}
	records = engine.MonthRecords(records, req.Year, req.TimeMonth())
	departments := s.departmentNames(ctx, sess)

	rows := make([]export.Row, 0, len(records))
	for _, r := range records {
		days, _ := engine.RecordDuration(r)
		dept, ok := departments[r.DepartmentID]
		if !ok {
			dept = "N/A"
		}
		rows = append(rows, export.Row{
			EmployeeName: r.EmployeeName,
			Department:   dept,
			LeaveType:    string(r.Type),
			StartDate:    r.StartDate.String(),
			EndDate:      r.EndDate.String(),
			Status:       string(r.Status),
			Days:         days,
			Reason:       r.Reason,
		})
	}

	doc := export.Document{
		Title:       "Leave Calendar - " + req.String(),
		GeneratedAt: s.now(),
		Rows:        rows,
	}
	if name, ok := departments[req.DepartmentID]; ok {
		doc.Subtitle = "Department: " + name
	}

	var buf bytes.Buffer
	if err := export.Write(&buf, format, doc); err != nil {
		return calendar.ExportFile{}, err
	}

	slog.Info("Calendar exported",
		"format", string(format),
		"year", req.Year,
		"month", req.Month,
		"rows", len(rows))

	return calendar.ExportFile{
		Filename:    export.Filename(exportPrefix, req.Year, req.TimeMonth(), format),
		ContentType: format.ContentType(),
		Body:        buf.Bytes(),
	}, nil
}

// departmentNames resolves department IDs for the export. A failure only
// degrades the Department column.
func (s *CalendarServiceImpl) departmentNames(ctx context.Context, sess *session.Session) map[string]string {
	gw := s.gateways(sess)
	depts, err := cache.GetOrLoad(ctx, s.cache, leave.ResourceDepartments, nil, sess.Fingerprint(), gw.Departments)
	if err != nil {
		slog.Warn("Failed to resolve departments for export", "error", err)
		return map[string]string{}
	}
	names := make(map[string]string, len(depts))
	for _, d := range depts {
		names[d.ID] = d.Name
	}
	return names
}
