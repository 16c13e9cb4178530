// Package calendar models wall-clock dates that are interpreted in a venue's
// own time zone.
package calendar

import (
	"time"

	"arena-booking/internal/pkg/errs"
)

const layout = "2006-01-02"

var ErrInvalidDate = errs.New("invalid date")

// Date is a calendar day with no zone attached.
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

func Parse(s string) (Date, error) {
	t, err := time.Parse(layout, s)
	if err != nil {
		return Date{}, errs.Mark(err, ErrInvalidDate)
	}
	return Of(t), nil
}

// Of takes the calendar day of t in t's own location.
func Of(t time.Time) Date {
	y, m, d := t.Date()
	return Date{Year: y, Month: m, Day: d}
}

// StartIn is midnight of the day in loc.
func (d Date) StartIn(loc *time.Location) time.Time {
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, loc)
}

// HourIn is the start of the given hour of the day in loc.
func (d Date) HourIn(hour int, loc *time.Location) time.Time {
	return time.Date(d.Year, d.Month, d.Day, hour, 0, 0, 0, loc)
}

func (d Date) Before(o Date) bool {
	return d.StartIn(time.UTC).Before(o.StartIn(time.UTC))
}

func (d Date) IsZero() bool {
	return d == Date{}
}

func (d Date) String() string {
	return d.StartIn(time.UTC).Format(layout)
}
