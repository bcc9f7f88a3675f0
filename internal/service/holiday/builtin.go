package holiday

import (
	"time"

	"github.com/cmlabs-hris/leave-calendar/internal/domain/holiday"
	"github.com/cmlabs-hris/leave-calendar/internal/domain/leave"
)

type fixedHoliday struct {
	month       time.Month
	day         int
	name        string
	description string
}

var rwandaFixed = []fixedHoliday{
	{time.January, 1, "New Year's Day", "New Year's Day celebration"},
	{time.February, 1, "Heroes' Day", "National Heroes Day"},
	{time.May, 1, "Labour Day", "International Workers' Day"},
	{time.July, 4, "Liberation Day", "Rwanda Liberation Day"},
	{time.August, 1, "Umuganura Day", "National Harvest Day"},
	{time.December, 25, "Christmas Day", "Christmas Day celebration"},
	{time.December, 26, "Boxing Day", "Boxing Day"},
}

// BuiltinHolidays returns the public holidays known without a database for
// the given country and year, ordered by date.
func BuiltinHolidays(country string, year int) []holiday.Holiday {
	if country != holiday.DefaultCountry {
		return nil
	}

	out := make([]holiday.Holiday, 0, len(rwandaFixed)+1)
	for _, f := range rwandaFixed {
		out = append(out, builtin(f.name, f.description, leave.NewDate(year, f.month, f.day)))
		if f.month == time.February {
			out = append(out, builtin("Easter Monday", "Easter Monday celebration", EasterSunday(year).AddDays(1)))
		}
	}
	return out
}

func builtin(name, description string, date leave.Date) holiday.Holiday {
	return holiday.Holiday{
		Name:        name,
		Date:        date,
		Description: description,
		Country:     holiday.DefaultCountry,
		Source:      holiday.SourceBuiltin,
	}
}

// EasterSunday computes Western Easter with the anonymous Gregorian algorithm.
func EasterSunday(year int) leave.Date {
	a := year % 19
	b := year / 100
	c := year % 100
	d := b / 4
	e := b % 4
	f := (b + 8) / 25
	g := (b - f + 1) / 3
	h := (19*a + b - d - g + 15) % 30
	i := c / 4
	k := c % 4
	l := (32 + 2*e + 2*i - h - k) % 7
	m := (a + 11*h + 22*l) / 451
	month := (h + l - 7*m + 114) / 31
	day := (h+l-7*m+114)%31 + 1
	return leave.NewDate(year, time.Month(month), day)
}
