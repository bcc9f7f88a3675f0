// Package export renders leave rows as downloadable CSV or PDF documents.
package export

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"
)

type Format string

const (
	FormatCSV Format = "csv"
	FormatPDF Format = "pdf"
)

var ErrUnsupportedFormat = errors.New("Unsupported export format")

// ParseFormat accepts "csv" or "pdf" in any case. Empty defaults to CSV.
func ParseFormat(s string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimSpace(s))) {
	case "", FormatCSV:
		return FormatCSV, nil
	case FormatPDF:
		return FormatPDF, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, s)
}

func (f Format) ContentType() string {
	if f == FormatPDF {
		return "application/pdf"
	}
	return "text/csv; charset=utf-8"
}

// Headers are the column titles shared by both formats.
var Headers = []string{
	"Employee Name",
	"Department",
	"Leave Type",
	"Start Date",
	"End Date",
	"Status",
	"Duration (Days)",
	"Reason",
}

// Row is one leave request, already flattened to display strings.
type Row struct {
	EmployeeName string
	Department   string
	LeaveType    string
	StartDate    string
	EndDate      string
	Status       string
	Days         float64
	Reason       string
}

func (r Row) cells() []string {
	return []string{
		r.EmployeeName,
		r.Department,
		r.LeaveType,
		r.StartDate,
		r.EndDate,
		r.Status,
		FormatDays(r.Days),
		r.Reason,
	}
}

// FormatDays prints whole days without a decimal point and half days as 0.5.
func FormatDays(days float64) string {
	return strconv.FormatFloat(days, 'f', -1, 64)
}

// Document is the unit rendered by Write.
type Document struct {
	Title       string
	Subtitle    string
	GeneratedAt time.Time
	Rows        []Row
}

// Filename builds "<prefix>-YYYY-MM.<ext>".
func Filename(prefix string, year int, month time.Month, format Format) string {
	return fmt.Sprintf("%s-%04d-%02d.%s", prefix, year, int(month), format)
}

// Write renders doc in the requested format.
func Write(w io.Writer, format Format, doc Document) error {
	switch format {
	case FormatCSV:
		return WriteCSV(w, doc.Rows)
	case FormatPDF:
		return WritePDF(w, doc)
	}
	return fmt.Errorf("%w: %q", ErrUnsupportedFormat, string(format))
}
