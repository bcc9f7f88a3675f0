// Package calendar turns leave records into calendar display facts: which
// days are booked, by whom, and how they should be classified. It is pure
// and never mutates its inputs.
package calendar

import (
	"iter"
	"time"

	"github.com/cmlabs-hris/leave-calendar/internal/domain/leave"
)

// Days yields every date from start to end inclusive, one calendar day at a
// time. A reversed range, or one missing a date, yields nothing.
func Days(start, end leave.Date) iter.Seq[leave.Date] {
	return func(yield func(leave.Date) bool) {
		if !leave.ValidRange(start, end) {
			return
		}
		for d := start; !d.After(end); d = d.AddDays(1) {
			if !yield(d) {
				return
			}
		}
	}
}

// ExpandRange materializes Days. When end precedes start, or either date is
// missing, it returns an empty slice and an error wrapping
// leave.ErrInvalidDateRange; the dates are never swapped.
func ExpandRange(start, end leave.Date) ([]leave.Date, error) {
	if !leave.ValidRange(start, end) {
		return []leave.Date{}, &leave.InvalidRangeError{Start: start, End: end}
	}
	out := make([]leave.Date, 0, start.DaysUntil(end)+1)
	for d := range Days(start, end) {
		out = append(out, d)
	}
	return out, nil
}

// CalculateDuration returns the inclusive day count. A single-day range with
// HALF_DAY counts as 0.5; durationType is ignored for multi-day ranges.
func CalculateDuration(start, end leave.Date, durationType leave.DurationType) (float64, error) {
	if !leave.ValidRange(start, end) {
		return 0, &leave.InvalidRangeError{Start: start, End: end}
	}
	days := start.DaysUntil(end) + 1
	if days == 1 && durationType == leave.DurationHalfDay {
		return 0.5, nil
	}
	return float64(days), nil
}

// RecordDuration is CalculateDuration applied to a record.
func RecordDuration(r leave.Record) (float64, error) {
	d, err := CalculateDuration(r.StartDate, r.EndDate, r.DurationType)
	if err != nil {
		return 0, &leave.InvalidRangeError{RecordID: r.ID, Start: r.StartDate, End: r.EndDate}
	}
	return d, nil
}

// MonthRecords returns the approved records whose range overlaps the month,
// including ranges that start before it, end after it, or span it entirely.
// Malformed records are dropped. Input order is preserved.
func MonthRecords(records []leave.Record, year int, month time.Month) []leave.Record {
	first, last := leave.MonthBounds(year, month)
	return RecordsBetween(records, first, last)
}

// RecordsBetween is MonthRecords for an arbitrary inclusive window.
func RecordsBetween(records []leave.Record, from, to leave.Date) []leave.Record {
	out := make([]leave.Record, 0)
	for _, r := range records {
		if !r.IsApproved() || !r.ValidRange() {
			continue
		}
		if !r.StartDate.After(to) && !r.EndDate.Before(from) {
			out = append(out, r)
		}
	}
	return out
}

// AllDepartments is the department filter value that disables filtering.
const AllDepartments = "all"

// FilterByDepartment keeps records of the given department. An empty id or
// AllDepartments keeps everything; records without a department are dropped
// by any concrete filter.
func FilterByDepartment(records []leave.Record, departmentID string) []leave.Record {
	if departmentID == "" || departmentID == AllDepartments {
		return records
	}
	out := make([]leave.Record, 0, len(records))
	for _, r := range records {
		if r.DepartmentID == departmentID {
			out = append(out, r)
		}
	}
	return out
}
