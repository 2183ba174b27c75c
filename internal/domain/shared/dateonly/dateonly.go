package dateonly

import (
	"errors"
	"fmt"
	"time"
)

var ErrInvalidDate = errors.New("dateonly: value must be formatted as YYYY-MM-DD")

// Date is a calendar day with no time-of-day or zone component. Availability
// calendars key on exact days; carrying a time.Time around for that invites
// off-by-one-day bugs whenever the zone shifts, so everything day-granular in
// the domain uses this type instead.
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

// New normalizes out-of-range components the same way time.Date does, so
// New(2026, time.January, 32) is February 1st.
func New(year int, month time.Month, day int) Date {
	t := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	return Date{Year: t.Year(), Month: t.Month(), Day: t.Day()}
}

// FromTime takes the calendar day of t in t's own location.
func FromTime(t time.Time) Date {
	return Date{Year: t.Year(), Month: t.Month(), Day: t.Day()}
}

// Parse reads the YYYY-MM-DD form produced by String.
func Parse(value string) (Date, error) {
	t, err := time.Parse("2006-01-02", value)
	if err != nil {
		return Date{}, fmt.Errorf("%w: %q", ErrInvalidDate, value)
	}
	return FromTime(t), nil
}

func (d Date) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, int(d.Month), d.Day)
}

func (d Date) IsZero() bool {
	return d.Year == 0 && d.Month == 0 && d.Day == 0
}

// Midnight returns the instant the day starts in UTC. Only used at the
// storage and arithmetic boundaries; comparisons stay on Date itself.
func (d Date) Midnight() time.Time {
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, time.UTC)
}

func (d Date) Equal(other Date) bool {
	return d.Year == other.Year && d.Month == other.Month && d.Day == other.Day
}

func (d Date) Before(other Date) bool {
	if d.Year != other.Year {
		return d.Year < other.Year
	}
	if d.Month != other.Month {
		return d.Month < other.Month
	}
	return d.Day < other.Day
}

func (d Date) After(other Date) bool {
	return other.Before(d)
}

// Next returns the following calendar day.
func (d Date) Next() Date {
	return d.AddDays(1)
}

func (d Date) AddDays(days int) Date {
	return FromTime(d.Midnight().AddDate(0, 0, days))
}

// DaysUntil counts whole days from d to other; negative when other is earlier.
func (d Date) DaysUntil(other Date) int {
	return int(other.Midnight().Sub(d.Midnight()) / (24 * time.Hour))
}

func (d Date) Weekday() time.Weekday {
	return d.Midnight().Weekday()
}

func (d Date) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

func (d *Date) UnmarshalText(data []byte) error {
	parsed, err := Parse(string(data))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}
