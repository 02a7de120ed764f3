package valuation

import (
	"time"

	"github.com/etnz/valuation/date"
)

// Calendar decides whether a date is a trading day and shifts dates forward
// onto trading days. It is a value over a fixed holiday set: same input, same
// output, always.
type Calendar struct {
	holidays map[date.Date]struct{}
}

// NewCalendar builds a calendar from an explicit holiday set.
func NewCalendar(holidays []date.Date) *Calendar {
	c := &Calendar{holidays: make(map[date.Date]struct{}, len(holidays))}
	for _, d := range holidays {
		c.holidays[d] = struct{}{}
	}
	return c
}

// NSE returns the calendar of the National Stock Exchange of India, with the
// compiled-in holiday table covering 2024 through 2035.
func NSE() *Calendar { return NewCalendar(nseHolidays) }

// IsTradingDay reports whether d is a weekday that is not a holiday.
func (c *Calendar) IsTradingDay(d date.Date) bool {
	if wd := d.Weekday(); wd == time.Saturday || wd == time.Sunday {
		return false
	}
	_, holiday := c.holidays[d]
	return !holiday
}

// ShiftForward advances d by lagDays trading days, counting only days that
// are themselves trading days, and then rolls forward to the next trading day
// if the landing date is not one.
//
// With lagDays 0 it returns d unchanged when d is a trading day, and the next
// trading day otherwise.
func (c *Calendar) ShiftForward(d date.Date, lagDays int) date.Date {
	for counted := 0; counted < lagDays; {
		d = d.Add(1)
		if c.IsTradingDay(d) {
			counted++
		}
	}
	for !c.IsTradingDay(d) {
		d = d.Add(1)
	}
	return d
}
