package calendar

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/cmlabs-hris/leave-calendar/internal/domain/leave"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func d(s string) leave.Date { return leave.MustParseDate(s) }

func record(id, name string, typ leave.Type, start, end string, status leave.Status) leave.Record {
	return leave.Record{
		ID:           id,
		EmployeeName: name,
		Type:         typ,
		StartDate:    d(start),
		EndDate:      d(end),
		Status:       status,
	}
}

func TestExpandRange_SingleDay(t *testing.T) {
	got, err := ExpandRange(d("2024-06-12"), d("2024-06-12"))
	require.NoError(t, err)
	assert.Equal(t, []leave.Date{d("2024-06-12")}, got)
}

func TestExpandRange_Inclusive(t *testing.T) {
	got, err := ExpandRange(d("2024-06-10"), d("2024-06-13"))
	require.NoError(t, err)
	require.Len(t, got, 4)
	assert.Equal(t, d("2024-06-10"), got[0])
	assert.Equal(t, d("2024-06-13"), got[3])
}

func TestExpandRange_CrossesMonthAndYear(t *testing.T) {
	got, err := ExpandRange(d("2023-12-30"), d("2024-01-02"))
	require.NoError(t, err)
	assert.Equal(t, []leave.Date{
		d("2023-12-30"), d("2023-12-31"), d("2024-01-01"), d("2024-01-02"),
	}, got)

	got, err = ExpandRange(d("2024-02-28"), d("2024-03-01"))
	require.NoError(t, err)
	assert.Equal(t, []leave.Date{d("2024-02-28"), d("2024-02-29"), d("2024-03-01")}, got)
}

func TestExpandRange_DSTTransitionsDoNotSkipOrRepeat(t *testing.T) {
	// Europe and US spring-forward / fall-back weekends.
	for _, r := range [][2]string{
		{"2024-03-09", "2024-03-12"},
		{"2024-03-30", "2024-04-02"},
		{"2024-10-26", "2024-10-29"},
		{"2024-11-02", "2024-11-05"},
	} {
		got, err := ExpandRange(d(r[0]), d(r[1]))
		require.NoError(t, err)
		assert.Len(t, got, 4, r)
		for i := 1; i < len(got); i++ {
			assert.Equal(t, 1, got[i-1].DaysUntil(got[i]))
		}
	}
}

func TestExpandRange_Reversed(t *testing.T) {
	got, err := ExpandRange(d("2024-06-14"), d("2024-06-10"))
	assert.Empty(t, got)
	assert.NotNil(t, got)
	assert.ErrorIs(t, err, leave.ErrInvalidDateRange)

	var rangeErr *leave.InvalidRangeError
	require.True(t, errors.As(err, &rangeErr))
	assert.Equal(t, d("2024-06-14"), rangeErr.Start)
	assert.Equal(t, d("2024-06-10"), rangeErr.End)
}

func TestDays_StopsEarly(t *testing.T) {
	var seen []leave.Date
	for day := range Days(d("2024-01-01"), d("2024-12-31")) {
		seen = append(seen, day)
		if len(seen) == 3 {
			break
		}
	}
	assert.Equal(t, []leave.Date{d("2024-01-01"), d("2024-01-02"), d("2024-01-03")}, seen)

	count := 0
	for range Days(d("2024-01-02"), d("2024-01-01")) {
		count++
	}
	assert.Zero(t, count)
}

func TestCalculateDuration(t *testing.T) {
	cases := []struct {
		name         string
		start, end   string
		durationType leave.DurationType
		want         float64
	}{
		{"single day", "2024-01-01", "2024-01-01", "", 1},
		{"single day full", "2024-01-01", "2024-01-01", leave.DurationFullDay, 1},
		{"single day half", "2024-01-01", "2024-01-01", leave.DurationHalfDay, 0.5},
		{"five days", "2024-01-01", "2024-01-05", "", 5},
		{"five days half ignored", "2024-01-01", "2024-01-05", leave.DurationHalfDay, 5},
		{"leap february", "2024-02-01", "2024-02-29", "", 29},
		{"across year", "2023-12-31", "2024-01-01", "", 2},
		{"centuries", "1700-01-01", "2024-01-01", "", 118339},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got, err := CalculateDuration(d(c.start), d(c.end), c.durationType)
			require.NoError(t, err)
			assert.Equal(t, c.want, got)
		})
	}
}

func TestCalculateDuration_Reversed(t *testing.T) {
	got, err := CalculateDuration(d("2024-01-05"), d("2024-01-01"), leave.DurationHalfDay)
	assert.Zero(t, got)
	assert.ErrorIs(t, err, leave.ErrInvalidDateRange)
}

func TestExpandRange_MissingDate(t *testing.T) {
	for _, r := range [][2]leave.Date{
		{{}, d("2024-06-12")},
		{d("2024-06-12"), {}},
		{{}, {}},
	} {
		got, err := ExpandRange(r[0], r[1])
		assert.Empty(t, got)
		assert.ErrorIs(t, err, leave.ErrInvalidDateRange)

		days, err := CalculateDuration(r[0], r[1], "")
		assert.Zero(t, days)
		assert.ErrorIs(t, err, leave.ErrInvalidDateRange)

		count := 0
		for range Days(r[0], r[1]) {
			count++
		}
		assert.Zero(t, count)
	}
}

func TestRecordDuration_IdentifiesRecord(t *testing.T) {
	_, err := RecordDuration(record("r-7", "Alice", leave.TypeAnnual, "2024-01-05", "2024-01-01", leave.StatusApproved))
	var rangeErr *leave.InvalidRangeError
	require.True(t, errors.As(err, &rangeErr))
	assert.Equal(t, "r-7", rangeErr.RecordID)
}

func TestMonthRecords_Overlap(t *testing.T) {
	spanning := record("1", "Alice", leave.TypeAnnual, "2024-01-30", "2024-02-02", leave.StatusApproved)
	inside := record("2", "Bob", leave.TypeSick, "2024-02-10", "2024-02-12", leave.StatusApproved)
	endsAfter := record("3", "Carol", leave.TypeMaternity, "2024-02-20", "2024-05-20", leave.StatusApproved)
	covers := record("4", "Dan", leave.TypeUnpaid, "2023-12-01", "2024-04-01", leave.StatusApproved)
	before := record("5", "Eve", leave.TypeAnnual, "2024-01-02", "2024-01-05", leave.StatusApproved)
	pending := record("6", "Fay", leave.TypeAnnual, "2024-02-05", "2024-02-06", leave.StatusPending)
	malformed := record("7", "Gus", leave.TypeAnnual, "2024-02-09", "2024-02-01", leave.StatusApproved)
	all := []leave.Record{spanning, inside, endsAfter, covers, before, pending, malformed}

	jan := MonthRecords(all, 2024, time.January)
	assert.Equal(t, []string{"1", "4", "5"}, ids(jan))

	feb := MonthRecords(all, 2024, time.February)
	assert.Equal(t, []string{"1", "2", "3", "4"}, ids(feb))

	mar := MonthRecords(all, 2024, time.March)
	assert.Equal(t, []string{"3", "4"}, ids(mar))

	dec := MonthRecords(all, 2023, time.December)
	assert.Equal(t, []string{"4"}, ids(dec))

	assert.Empty(t, MonthRecords(all, 2024, time.June))
}

func TestMonthRecords_BoundaryDays(t *testing.T) {
	endsOnFirst := record("a", "A", leave.TypeAnnual, "2024-02-25", "2024-03-01", leave.StatusApproved)
	startsOnLast := record("b", "B", leave.TypeAnnual, "2024-03-31", "2024-04-03", leave.StatusApproved)

	got := MonthRecords([]leave.Record{endsOnFirst, startsOnLast}, 2024, time.March)
	assert.Equal(t, []string{"a", "b"}, ids(got))
}

func TestBuildDayIndex_EndToEnd(t *testing.T) {
	records := []leave.Record{
		record("1", "Alice", leave.TypeAnnual, "2024-06-10", "2024-06-14", leave.StatusApproved),
		record("2", "Bob", leave.TypeSick, "2024-06-12", "2024-06-12", leave.StatusApproved),
	}

	idx, warnings := BuildDayIndex(records)
	assert.Empty(t, warnings)

	day := idx.Day(d("2024-06-12"))
	assert.True(t, day.IsBooked)
	assert.ElementsMatch(t, []string{"Alice", "Bob"}, day.EmployeeNames)

	info, ok := idx.LeaveInfo(d("2024-06-12"))
	require.True(t, ok)
	assert.Contains(t, []leave.Type{leave.TypeAnnual, leave.TypeSick}, info.Type)
	require.NotNil(t, day.Category)
	assert.Equal(t, ClassifyDay(info.Type), *day.Category)

	assert.True(t, idx.IsBooked(d("2024-06-10")))
	assert.True(t, idx.IsBooked(d("2024-06-14")))
	assert.False(t, idx.IsBooked(d("2024-06-15")))
	assert.False(t, idx.IsBooked(d("2024-06-09")))
}

func TestBuildDayIndex_TieBreakIsByRecordID(t *testing.T) {
	forward := []leave.Record{
		record("b-2", "Bob", leave.TypeSick, "2024-06-12", "2024-06-12", leave.StatusApproved),
		record("a-1", "Alice", leave.TypeAnnual, "2024-06-10", "2024-06-14", leave.StatusApproved),
	}
	reversed := []leave.Record{forward[1], forward[0]}

	idxA, _ := BuildDayIndex(forward)
	idxB, _ := BuildDayIndex(reversed)

	a, _ := idxA.LeaveInfo(d("2024-06-12"))
	b, _ := idxB.LeaveInfo(d("2024-06-12"))
	assert.Equal(t, "a-1", a.RecordID)
	assert.Equal(t, a, b)
}

func TestBuildDayIndex_OnlyApproved(t *testing.T) {
	today := leave.DateOf(time.Now())
	records := []leave.Record{
		{ID: "p", EmployeeName: "Pat", Type: leave.TypeAnnual, StartDate: today, EndDate: today, Status: leave.StatusPending},
		{ID: "r", EmployeeName: "Rae", Type: leave.TypeSick, StartDate: today, EndDate: today, Status: leave.StatusRejected},
	}

	idx, warnings := BuildDayIndex(records)
	assert.Empty(t, warnings)

	_, ok := idx.LeaveInfo(today)
	assert.False(t, ok)
	assert.Empty(t, idx.EmployeesOnLeave(today))
	assert.False(t, idx.Day(today).IsBooked)
	assert.Nil(t, idx.Day(today).Category)
}

func TestBuildDayIndex_Idempotent(t *testing.T) {
	records := []leave.Record{
		record("1", "Alice", leave.TypeAnnual, "2024-06-10", "2024-06-14", leave.StatusApproved),
		record("2", "Bob", leave.TypeSick, "2024-06-12", "2024-06-20", leave.StatusApproved),
		record("3", "", leave.TypePaternity, "2024-06-01", "2024-06-11", leave.StatusApproved),
		record("4", "Dee", leave.TypeAnnual, "2024-06-03", "2024-06-04", leave.StatusPending),
	}
	snapshot := append([]leave.Record(nil), records...)

	first, _ := BuildDayIndex(records)
	second, _ := BuildDayIndex(records)

	for day := range Days(d("2024-05-25"), d("2024-06-30")) {
		a, aok := first.LeaveInfo(day)
		b, bok := second.LeaveInfo(day)
		assert.Equal(t, aok, bok, day.String())
		assert.Equal(t, a, b, day.String())
		assert.Equal(t, first.EmployeesOnLeave(day), second.EmployeesOnLeave(day), day.String())
	}
	assert.Equal(t, snapshot, records, "inputs must not be mutated")
}

func TestEmployeesOnLeave_Distinct(t *testing.T) {
	records := []leave.Record{
		record("1", "Alice", leave.TypeAnnual, "2024-06-10", "2024-06-14", leave.StatusApproved),
		record("2", "Alice", leave.TypeSick, "2024-06-12", "2024-06-13", leave.StatusApproved),
		record("3", "  ", leave.TypeSick, "2024-06-12", "2024-06-12", leave.StatusApproved),
		record("4", "", leave.TypeSick, "2024-06-12", "2024-06-12", leave.StatusApproved),
	}
	idx, _ := BuildDayIndex(records)

	assert.Equal(t, []string{"Alice"}, idx.EmployeesOnLeave(d("2024-06-12")))
	assert.Len(t, idx.Entries(d("2024-06-12")), 4)
	assert.Empty(t, idx.EmployeesOnLeave(d("2024-07-01")))
}

func TestEmployeesOnLeave_AllNamesMissing(t *testing.T) {
	idx, _ := BuildDayIndex([]leave.Record{
		record("1", "", leave.TypeAnnual, "2024-06-10", "2024-06-10", leave.StatusApproved),
	})
	day := idx.Day(d("2024-06-10"))
	assert.True(t, day.IsBooked)
	assert.Empty(t, day.EmployeeNames)
}

func TestBuildDayIndex_MalformedRecordSkipped(t *testing.T) {
	records := []leave.Record{
		record("bad", "Mal", leave.TypeAnnual, "2024-06-14", "2024-06-10", leave.StatusApproved),
		record("ok", "Ok", leave.TypeAnnual, "2024-06-11", "2024-06-11", leave.StatusApproved),
	}

	idx, warnings := BuildDayIndex(records)
	require.Len(t, warnings, 1)
	assert.Equal(t, WarningInvalidDateRange, warnings[0].Kind)
	assert.Equal(t, "bad", warnings[0].RecordID)
	assert.ErrorIs(t, warnings[0], leave.ErrInvalidDateRange)
	assert.True(t, HasInvalidRange(warnings))

	assert.Equal(t, []leave.Date{d("2024-06-11")}, idx.BookedDays())
	assert.Equal(t, []string{"Ok"}, idx.EmployeesOnLeave(d("2024-06-11")))
}

func TestBuildDayIndex_MissingDatesFromJSON(t *testing.T) {
	payload := `[
		{"id":"1","employeeName":"Nil","type":"ANNUAL","status":"APPROVED","startDate":null,"endDate":"2024-06-12"},
		{"id":"2","employeeName":"Blank","type":"SICK","status":"APPROVED","startDate":"2024-06-10","endDate":""},
		{"id":"3","employeeName":"Ok","type":"ANNUAL","status":"APPROVED","startDate":"2024-06-11","endDate":"2024-06-11"}
	]`
	var records []leave.Record
	require.NoError(t, json.Unmarshal([]byte(payload), &records))
	require.True(t, records[0].StartDate.IsZero())
	require.True(t, records[1].EndDate.IsZero())
	assert.False(t, records[0].ValidRange())
	assert.False(t, records[1].ValidRange())

	idx, warnings := BuildDayIndex(records)
	require.Len(t, warnings, 2)
	assert.Equal(t, WarningInvalidDateRange, warnings[0].Kind)
	assert.Equal(t, "1", warnings[0].RecordID)
	assert.Contains(t, warnings[0].Message, "missing start date")
	assert.Equal(t, "2", warnings[1].RecordID)
	assert.Contains(t, warnings[1].Message, "missing end date")

	assert.Equal(t, []leave.Date{d("2024-06-11")}, idx.BookedDays())
	assert.Empty(t, MonthRecords(records[:2], 2024, time.June))

	_, err := RecordDuration(records[0])
	assert.ErrorIs(t, err, leave.ErrInvalidDateRange)
}

func TestValidate_MatchesIndexWarnings(t *testing.T) {
	records := []leave.Record{
		record("b", "Mal", leave.TypeAnnual, "2024-06-14", "2024-06-10", leave.StatusApproved),
		record("a", "Ana", leave.Type("STUDY"), "2024-06-11", "2024-06-12", leave.StatusApproved),
		record("c", "Pen", leave.TypeAnnual, "2024-06-14", "2024-06-10", leave.StatusPending),
		{ID: "d", EmployeeName: "Nil", Type: leave.TypeSick, Status: leave.StatusApproved},
	}

	_, fromIndex := BuildDayIndex(records)
	fromValidate := Validate(records)
	assert.Equal(t, fromIndex, fromValidate)
	require.Len(t, fromValidate, 3)
	assert.Equal(t, WarningUnrecognizedLeaveType, fromValidate[0].Kind)
	assert.Equal(t, WarningInvalidDateRange, fromValidate[1].Kind)
	assert.Equal(t, "d", fromValidate[2].RecordID)
}

func TestBuildDayIndex_UnknownTypeDegrades(t *testing.T) {
	records := []leave.Record{
		record("1", "Ana", leave.Type("STUDY"), "2024-06-11", "2024-06-12", leave.StatusApproved),
	}

	idx, warnings := BuildDayIndex(records)
	require.Len(t, warnings, 1)
	assert.Equal(t, WarningUnrecognizedLeaveType, warnings[0].Kind)
	assert.ErrorIs(t, warnings[0], leave.ErrUnrecognizedLeaveType)
	assert.False(t, HasInvalidRange(warnings))

	day := idx.Day(d("2024-06-12"))
	require.NotNil(t, day.Category)
	assert.Equal(t, CategoryDefault, *day.Category)
}

func TestNilIndex(t *testing.T) {
	var idx *DayIndex
	_, ok := idx.LeaveInfo(d("2024-01-01"))
	assert.False(t, ok)
	assert.Empty(t, idx.EmployeesOnLeave(d("2024-01-01")))
	assert.Empty(t, idx.BookedDays())
}

func TestClassifyDay(t *testing.T) {
	seen := map[string]bool{}
	for _, typ := range leave.KnownTypes() {
		c := ClassifyDay(typ)
		assert.NotEqual(t, CategoryDefault, c, typ)
		assert.False(t, seen[c.Token], "duplicate token %s", c.Token)
		seen[c.Token] = true
	}
	assert.Equal(t, CategoryDefault, ClassifyDay(""))
	assert.Equal(t, CategoryDefault, ClassifyDay("annual"))
	assert.Equal(t, CategoryDefault, ClassifyDay("SABBATICAL"))

	legend := Legend()
	assert.Len(t, legend, len(leave.KnownTypes())+1)
	assert.Equal(t, CategoryDefault, legend[len(legend)-1])
}

func TestFilterByDepartment(t *testing.T) {
	a := leave.Record{ID: "1", DepartmentID: "eng"}
	b := leave.Record{ID: "2", DepartmentID: "ops"}
	c := leave.Record{ID: "3"}
	all := []leave.Record{a, b, c}

	assert.Equal(t, all, FilterByDepartment(all, ""))
	assert.Equal(t, all, FilterByDepartment(all, AllDepartments))
	assert.Equal(t, []leave.Record{a}, FilterByDepartment(all, "eng"))
	assert.Empty(t, FilterByDepartment(all, "hr"))
}

func ids(records []leave.Record) []string {
	out := make([]string, 0, len(records))
	for _, r := range records {
		out = append(out, r.ID)
	}
	return out
}
