// Package core implements the recurring-transaction projection engine:
// timezone-aware calendar dates, recurrence expansion, running balances
// and the derived chart/calendar views. Everything here is pure; callers
// own storage, transport and logging.
package core

import (
	"fmt"
	"time"
)

// DateLayout is the wire format for calendar dates. It is zero-padded, so
// lexicographic order on formatted dates matches chronological order.
const DateLayout = "2006-01-02"

// Date is a calendar day with no time-of-day component. The zero value is
// "no date" and reports IsZero.
type Date struct {
	t time.Time
}

// NewDate builds a Date from year, month and day. Out-of-range components
// normalize the way time.Date does.
func NewDate(year, month, day int) Date {
	return Date{t: time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)}
}

// ParseDate parses a YYYY-MM-DD string.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return Date{}, fmt.Errorf("%w: parse date %q", ErrInvalidWindow, s)
	}
	return Date{t: t}, nil
}

// TodayIn resolves the current calendar date in an IANA timezone. Only the
// day boundary depends on the zone; all date arithmetic is zone-free.
func TodayIn(timezone string) (Date, error) {
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		return Date{}, fmt.Errorf("%w: unknown timezone %q", ErrInvalidConfig, timezone)
	}
	now := time.Now().In(loc)
	return NewDate(now.Year(), int(now.Month()), now.Day()), nil
}

func (d Date) String() string { return d.t.Format(DateLayout) }

func (d Date) IsZero() bool { return d.t.IsZero() }

func (d Date) Year() int  { return d.t.Year() }
func (d Date) Month() int { return int(d.t.Month()) }
func (d Date) Day() int   { return d.t.Day() }

// Weekday returns the day of week with Sunday = 0.
func (d Date) Weekday() int { return int(d.t.Weekday()) }

// Compare returns -1, 0 or +1 ordering d against other.
func (d Date) Compare(other Date) int { return d.t.Compare(other.t) }

func (d Date) Before(other Date) bool { return d.t.Before(other.t) }
func (d Date) After(other Date) bool  { return d.t.After(other.t) }
func (d Date) Equal(other Date) bool  { return d.t.Equal(other.t) }

// AddDays steps the date by n calendar days (n may be negative).
func (d Date) AddDays(n int) Date {
	return Date{t: d.t.AddDate(0, 0, n)}
}

// AddInterval steps the date by n units of freq. Month and year steps clamp
// the day-of-month to the last valid day of the target month, so stepping
// Jan 31 by one month yields Feb 29 in a leap year and Feb 28 otherwise.
// The clamp never rolls over into the following month.
func (d Date) AddInterval(freq Frequency, n int) (Date, error) {
	switch freq {
	case Daily:
		return d.AddDays(n), nil
	case Weekly:
		return d.AddDays(7 * n), nil
	case Monthly:
		return d.addMonthsClamped(n), nil
	case Yearly:
		return d.addMonthsClamped(12 * n), nil
	default:
		return Date{}, fmt.Errorf("%w: unknown frequency %q", ErrInvalidRecurrencePattern, freq)
	}
}

func (d Date) addMonthsClamped(months int) Date {
	year, month := d.Year(), d.Month()+months
	// Normalize month into 1..12 carrying into the year.
	year += (month - 1) / 12
	month = (month-1)%12 + 1
	if month < 1 {
		month += 12
		year--
	}
	day := d.Day()
	if last := DaysInMonth(year, month); day > last {
		day = last
	}
	return NewDate(year, month, day)
}

// DaysInMonth returns the number of days in the given month.
func DaysInMonth(year, month int) int {
	// Day zero of the next month is the last day of this one.
	return time.Date(year, time.Month(month)+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
