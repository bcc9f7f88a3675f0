package calendar

import (
	"github.com/cmlabs-hris/leave-calendar/internal/domain/holiday"
	"github.com/cmlabs-hris/leave-calendar/internal/domain/leave"
	engine "github.com/cmlabs-hris/leave-calendar/internal/pkg/calendar"
)

// DayView is one cell of the month grid.
type DayView struct {
	engine.DayInfo
	IsWeekend bool              `json:"isWeekend"`
	Holidays  []holiday.Holiday `json:"holidays"`
}

// ScheduledLeave is one entry of the side panel listing the month's
// approved leave.
type ScheduledLeave struct {
	leave.Record
	Days     float64         `json:"days"`
	Category engine.Category `json:"category"`
}

type MonthView struct {
	Year         int    `json:"year"`
	Month        int    `json:"month"`
	MonthName    string `json:"monthName"`
	DepartmentID string `json:"departmentId,omitempty"`

	Days            []DayView         `json:"days"`
	ScheduledLeaves []ScheduledLeave  `json:"scheduledLeaves"`
	Holidays        []holiday.Holiday `json:"holidays"`
	Legend          []engine.Category `json:"legend"`
	Warnings        []engine.Warning  `json:"warnings"`
}

// ExportFile is a rendered export ready to be streamed to the client.
type ExportFile struct {
	Filename    string
	ContentType string
	Body        []byte
}
