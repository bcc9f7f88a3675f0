package calendar

import (
	"cmp"
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/cmlabs-hris/leave-calendar/internal/domain/leave"
)

// Entry is one approved record's presence on one day.
type Entry struct {
	RecordID     string       `json:"recordId"`
	Type         leave.Type   `json:"type"`
	Status       leave.Status `json:"status"`
	EmployeeName string       `json:"employeeName,omitempty"`
}

type WarningKind string

const (
	WarningInvalidDateRange      WarningKind = "invalid_date_range"
	WarningUnrecognizedLeaveType WarningKind = "unrecognized_leave_type"
)

// Warning is a data-quality problem found while indexing. Warnings never
// abort the computation.
type Warning struct {
	Kind     WarningKind `json:"kind"`
	RecordID string      `json:"recordId"`
	Message  string      `json:"message"`
	Err      error       `json:"-"`
}

func (w Warning) Unwrap() error { return w.Err }

func (w Warning) Error() string { return w.Message }

// DayIndex maps a calendar day to the approved records covering it. Entries
// for a day are ordered by record ID, so the first entry (the one that wins
// the day's colour) does not depend on the order the backend returned.
type DayIndex struct {
	days map[leave.Date][]Entry
}

// BuildDayIndex indexes the APPROVED records. Records missing a date or whose
// end precedes their start are skipped and reported; records of unknown type are indexed
// and reported.
func BuildDayIndex(records []leave.Record) (*DayIndex, []Warning) {
	idx := &DayIndex{days: make(map[leave.Date][]Entry)}
	var warnings []Warning

	for _, r := range approvedByID(records) {
		ws, ok := check(r)
		warnings = append(warnings, ws...)
		if !ok {
			continue
		}
		dates, _ := ExpandRange(r.StartDate, r.EndDate)

		entry := Entry{
			RecordID:     r.ID,
			Type:         r.Type,
			Status:       r.Status,
			EmployeeName: strings.TrimSpace(r.EmployeeName),
		}
		for _, d := range dates {
			idx.days[d] = append(idx.days[d], entry)
		}
	}

	return idx, warnings
}

// Validate returns the warnings BuildDayIndex would report for records
// without expanding any range.
func Validate(records []leave.Record) []Warning {
	var warnings []Warning
	for _, r := range approvedByID(records) {
		ws, _ := check(r)
		warnings = append(warnings, ws...)
	}
	return warnings
}

// approvedByID returns the APPROVED records stably sorted by ID.
func approvedByID(records []leave.Record) []leave.Record {
	approved := make([]leave.Record, 0, len(records))
	for _, r := range records {
		if r.IsApproved() {
			approved = append(approved, r)
		}
	}
	slices.SortStableFunc(approved, func(a, b leave.Record) int {
		return cmp.Compare(a.ID, b.ID)
	})
	return approved
}

// check reports the data-quality problems of r and whether its range can be
// expanded.
func check(r leave.Record) ([]Warning, bool) {
	if !r.ValidRange() {
		rangeErr := &leave.InvalidRangeError{RecordID: r.ID, Start: r.StartDate, End: r.EndDate}
		return []Warning{{
			Kind:     WarningInvalidDateRange,
			RecordID: r.ID,
			Message:  rangeErr.Error(),
			Err:      rangeErr,
		}}, false
	}
	if !r.Type.Known() {
		return []Warning{{
			Kind:     WarningUnrecognizedLeaveType,
			RecordID: r.ID,
			Message:  fmt.Sprintf("record %s has unrecognized leave type %q", r.ID, r.Type),
			Err:      leave.ErrUnrecognizedLeaveType,
		}}, true
	}
	return nil, true
}

// Entries returns the entries for date, nil when none.
func (idx *DayIndex) Entries(date leave.Date) []Entry {
	if idx == nil {
		return nil
	}
	return idx.days[date]
}

// LeaveInfo returns the representative entry for date.
func (idx *DayIndex) LeaveInfo(date leave.Date) (Entry, bool) {
	entries := idx.Entries(date)
	if len(entries) == 0 {
		return Entry{}, false
	}
	return entries[0], true
}

func (idx *DayIndex) IsBooked(date leave.Date) bool {
	return len(idx.Entries(date)) > 0
}

// EmployeesOnLeave returns the distinct non-empty employee names on leave on
// date, sorted. Entries without a name are skipped.
func (idx *DayIndex) EmployeesOnLeave(date leave.Date) []string {
	entries := idx.Entries(date)
	seen := make(map[string]struct{}, len(entries))
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.EmployeeName == "" {
			continue
		}
		if _, ok := seen[e.EmployeeName]; ok {
			continue
		}
		seen[e.EmployeeName] = struct{}{}
		names = append(names, e.EmployeeName)
	}
	slices.Sort(names)
	return names
}

// DayInfo is everything the presentation layer needs for one cell.
type DayInfo struct {
	Date          leave.Date `json:"date"`
	IsBooked      bool       `json:"isBooked"`
	EmployeeNames []string   `json:"employeeNames"`
	Category      *Category  `json:"category,omitempty"`
	Entries       []Entry    `json:"entries"`
}

func (idx *DayIndex) Day(date leave.Date) DayInfo {
	info := DayInfo{
		Date:          date,
		EmployeeNames: idx.EmployeesOnLeave(date),
		Entries:       idx.Entries(date),
	}
	if info.Entries == nil {
		info.Entries = []Entry{}
	}
	if first, ok := idx.LeaveInfo(date); ok {
		info.IsBooked = true
		c := ClassifyDay(first.Type)
		info.Category = &c
	}
	return info
}

// BookedDays returns every booked date in ascending order.
func (idx *DayIndex) BookedDays() []leave.Date {
	if idx == nil {
		return nil
	}
	out := make([]leave.Date, 0, len(idx.days))
	for d := range idx.days {
		out = append(out, d)
	}
	slices.SortFunc(out, leave.Date.Compare)
	return out
}

// HasInvalidRange reports whether any warning is an invalid date range.
func HasInvalidRange(warnings []Warning) bool {
	for _, w := range warnings {
		if errors.Is(w, leave.ErrInvalidDateRange) {
			return true
		}
	}
	return false
}
