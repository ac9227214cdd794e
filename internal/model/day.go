package model

import (
	"fmt"
	"strings"
	"time"
)

const DayLayout = "2006-01-02"

// Day is a calendar day without a time component. The zero value is unset.
type Day struct {
	t time.Time
}

// DayOf returns the calendar day of t in t's own location.
func DayOf(t time.Time) Day {
	y, m, d := t.Date()
	return Day{t: time.Date(y, m, d, 0, 0, 0, 0, time.UTC)}
}

func NewDay(year int, month time.Month, day int) Day {
	return DayOf(time.Date(year, month, day, 0, 0, 0, 0, time.UTC))
}

func ParseDay(value string) (Day, error) {
	t, err := time.Parse(DayLayout, strings.TrimSpace(value))
	if err != nil {
		return Day{}, fmt.Errorf("invalid date %q, expected YYYY-MM-DD", value)
	}
	return Day{t: t}, nil
}

func (d Day) IsZero() bool {
	return d.t.IsZero()
}

func (d Day) AddDays(n int) Day {
	return Day{t: d.t.AddDate(0, 0, n)}
}

func (d Day) Before(other Day) bool {
	return d.t.Before(other.t)
}

func (d Day) Equal(other Day) bool {
	return d.t.Equal(other.t)
}

// DaysSince returns the whole number of days from other to d.
func (d Day) DaysSince(other Day) int {
	return int(d.t.Sub(other.t).Hours() / 24)
}

func (d Day) String() string {
	if d.IsZero() {
		return ""
	}
	return d.t.Format(DayLayout)
}

func (d Day) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

func (d *Day) UnmarshalText(text []byte) error {
	if len(strings.TrimSpace(string(text))) == 0 {
		*d = Day{}
		return nil
	}
	parsed, err := ParseDay(string(text))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}
