// Package calendar provides a date without a time of day, used to key day
// lists and due dates.
package calendar

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"tableflip.dev/taskrace/pkg/weekdays"
)

const (
	layoutISO     = "2006-01-02"
	layoutLoose   = "2006-1-2"
	layoutShort   = "1/2"
	layoutDisplay = "Monday, January 2, 2006"
)

// Date is a calendar day in the local time zone.
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

// FromTime truncates t to its calendar day.
func FromTime(t time.Time) Date {
	y, m, d := t.Date()
	return Date{Year: y, Month: m, Day: d}
}

// New normalises the given components, so New(2024, 2, 30) is March 1.
func New(year int, month time.Month, day int) Date {
	return FromTime(time.Date(year, month, day, 0, 0, 0, 0, time.Local))
}

// Parse accepts "2006-01-02", "2006-1-2" or the short "1/2" form. The short
// form resolves to the next occurrence on or after now.
func Parse(raw string, now time.Time) (Date, error) {
	v := strings.TrimSpace(raw)
	for _, layout := range []string{layoutISO, layoutLoose} {
		if t, err := time.ParseInLocation(layout, v, time.Local); err == nil {
			return FromTime(t), nil
		}
	}
	t, err := time.ParseInLocation(layoutShort, v, time.Local)
	if err != nil {
		return Date{}, fmt.Errorf("calendar: invalid date %q", raw)
	}
	d := New(now.Year(), t.Month(), t.Day())
	// Assume 1/3 said on 12/5 means next year, not eleven months ago.
	if d.Before(FromTime(now)) {
		d = New(now.Year()+1, t.Month(), t.Day())
	}
	return d, nil
}

// Time returns local midnight of d.
func (d Date) Time() time.Time {
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, time.Local)
}

// Weekday returns the day of the week of d.
func (d Date) Weekday() time.Weekday { return d.Time().Weekday() }

// Weekdays returns the single-day set for d.
func (d Date) Weekdays() weekdays.Set { return weekdays.Of(d.Weekday()) }

// AddDays returns d shifted by n days.
func (d Date) AddDays(n int) Date { return FromTime(d.Time().AddDate(0, 0, n)) }

// IsZero reports whether d is the zero Date.
func (d Date) IsZero() bool { return d == Date{} }

// Before reports whether d is strictly earlier than o.
func (d Date) Before(o Date) bool { return d.Compare(o) < 0 }

// After reports whether d is strictly later than o.
func (d Date) After(o Date) bool { return d.Compare(o) > 0 }

// Compare returns -1, 0 or +1.
func (d Date) Compare(o Date) int {
	switch {
	case d.Year != o.Year:
		return sign(d.Year - o.Year)
	case d.Month != o.Month:
		return sign(int(d.Month) - int(o.Month))
	default:
		return sign(d.Day - o.Day)
	}
}

func sign(v int) int {
	switch {
	case v < 0:
		return -1
	case v > 0:
		return 1
	}
	return 0
}

// Key is the ISO form used as a storage key.
func (d Date) Key() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, int(d.Month), d.Day)
}

func (d Date) String() string { return d.Key() }

// Display renders d for humans.
func (d Date) Display() string { return d.Time().Format(layoutDisplay) }

// MarshalJSON encodes d as an ISO date string.
func (d Date) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte(`""`), nil
	}
	return json.Marshal(d.Key())
}

// UnmarshalJSON decodes an ISO date string.
func (d *Date) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	if s == "" {
		*d = Date{}
		return nil
	}
	t, err := time.ParseInLocation(layoutISO, s, time.Local)
	if err != nil {
		return fmt.Errorf("calendar: decode %q: %w", s, err)
	}
	*d = FromTime(t)
	return nil
}

// Clock supplies the current time.
type Clock interface {
	Now() time.Time
}

// SystemClock reads the wall clock.
type SystemClock struct{}

// Now implements Clock.
func (SystemClock) Now() time.Time { return time.Now() }

// Fixed is a Clock that always returns the same instant.
type Fixed time.Time

// Now implements Clock.
func (f Fixed) Now() time.Time { return time.Time(f) }

// Today returns the current date according to c. A nil clock reads the wall
// clock.
func Today(c Clock) Date {
	if c == nil {
		c = SystemClock{}
	}
	return FromTime(c.Now())
}
