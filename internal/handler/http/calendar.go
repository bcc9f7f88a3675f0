package http

import (
	"net/http"
	"strconv"
	"time"

	"github.com/cmlabs-hris/leave-calendar/internal/domain/calendar"
	"github.com/cmlabs-hris/leave-calendar/internal/handler/http/response"
	"github.com/cmlabs-hris/leave-calendar/internal/pkg/validator"
)

type CalendarHandler interface {
	Month(w http.ResponseWriter, r *http.Request)
	Day(w http.ResponseWriter, r *http.Request)
	Export(w http.ResponseWriter, r *http.Request)
}

type CalendarHandlerImpl struct {
	calendarService calendar.CalendarService
	now             func() time.Time
}

func NewCalendarHandler(calendarService calendar.CalendarService) CalendarHandler {
	return &CalendarHandlerImpl{
		calendarService: calendarService,
		now:             time.Now,
	}
}

// monthRequest reads year, month and departmentId, defaulting to the
// current month.
func (c *CalendarHandlerImpl) monthRequest(r *http.Request) (calendar.MonthViewRequest, error) {
	now := c.now()
	var errs validator.ValidationErrors

	year, err := getIntQueryParam(r, "year", now.Year())
	if err != nil {
		errs = append(errs, err.(validator.ValidationErrors)...)
	}
	month, err := getIntQueryParam(r, "month", int(now.Month()))
	if err != nil {
		errs = append(errs, err.(validator.ValidationErrors)...)
	}

	return calendar.MonthViewRequest{
		Year:         year,
		Month:        month,
		DepartmentID: r.URL.Query().Get("departmentId"),
	}, errs.OrNil()
}

// Month implements CalendarHandler.
func (c *CalendarHandlerImpl) Month(w http.ResponseWriter, r *http.Request) {
	sess, ok := sessionFromRequest(w, r)
	if !ok {
		return
	}
	req, err := c.monthRequest(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	view, err := c.calendarService.MonthView(r.Context(), sess, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, view)
}

// Day implements CalendarHandler.
func (c *CalendarHandlerImpl) Day(w http.ResponseWriter, r *http.Request) {
	sess, ok := sessionFromRequest(w, r)
	if !ok {
		return
	}

	req := calendar.DayViewRequest{
		Date:         r.URL.Query().Get("date"),
		DepartmentID: r.URL.Query().Get("departmentId"),
	}
	if req.Date == "" {
		req.Date = c.now().Format("2006-01-02")
	}

	day, err := c.calendarService.DayView(r.Context(), sess, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, day)
}

// Export implements CalendarHandler.
func (c *CalendarHandlerImpl) Export(w http.ResponseWriter, r *http.Request) {
	sess, ok := sessionFromRequest(w, r)
	if !ok {
		return
	}
	monthReq, err := c.monthRequest(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	file, err := c.calendarService.Export(r.Context(), sess, calendar.ExportRequest{
		MonthViewRequest: monthReq,
		Format:           r.URL.Query().Get("format"),
	})
	if err != nil {
		response.HandleError(w, err)
		return
	}

	w.Header().Set("Content-Type", file.ContentType)
	w.Header().Set("Content-Disposition", `attachment; filename="`+file.Filename+`"`)
	w.Header().Set("Content-Length", strconv.Itoa(len(file.Body)))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(file.Body)
}
