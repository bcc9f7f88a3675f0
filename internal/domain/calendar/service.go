package calendar

import (
	"context"

	"github.com/cmlabs-hris/leave-calendar/internal/pkg/session"
)

type CalendarService interface {
	MonthView(ctx context.Context, sess *session.Session, req MonthViewRequest) (MonthView, error)
	DayView(ctx context.Context, sess *session.Session, req DayViewRequest) (DayView, error)
	Export(ctx context.Context, sess *session.Session, req ExportRequest) (ExportFile, error)
}
