package models

import (
	"fmt"
	"schedule-ledger-service/internal/pkg/constvars"
	"strconv"
	"time"

	"github.com/goccy/go-json"
)

// Date is a calendar day without a time-of-day or zone. The zero value is
// the unset date.
type Date struct {
	t time.Time
}

func NewDate(year int, month time.Month, day int) Date {
	return Date{t: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// DateOf takes the calendar day of t in its own location.
func DateOf(t time.Time) Date {
	return NewDate(t.Date())
}

func ParseDate(value string) (Date, error) {
	parsed, err := time.Parse(constvars.DateLayout, value)
	if err != nil {
		return Date{}, fmt.Errorf("invalid date %q: expected YYYY-MM-DD", value)
	}
	return Date{t: parsed}, nil
}

func (d Date) IsZero() bool {
	return d.t.IsZero()
}

func (d Date) String() string {
	if d.IsZero() {
		return ""
	}
	return d.t.Format(constvars.DateLayout)
}

func (d Date) AddDays(days int) Date {
	return Date{t: d.t.AddDate(0, 0, days)}
}

func (d Date) Weekday() time.Weekday {
	return d.t.Weekday()
}

// StartOfWeek returns the latest date not after d that falls on firstDay.
func (d Date) StartOfWeek(firstDay time.Weekday) Date {
	offset := (int(d.Weekday()) - int(firstDay) + 7) % 7
	return d.AddDays(-offset)
}

func (d Date) Compare(other Date) int {
	return d.t.Compare(other.t)
}

func (d Date) Before(other Date) bool {
	return d.Compare(other) < 0
}

func (d Date) After(other Date) bool {
	return d.Compare(other) > 0
}

func (d Date) Equal(other Date) bool {
	return d.Compare(other) == 0
}

// Time returns midnight UTC of the day.
func (d Date) Time() time.Time {
	return d.t
}

func (d Date) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(d.String())
}

func (d *Date) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*d = Date{}
		return nil
	}
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if raw == "" {
		*d = Date{}
		return nil
	}
	parsed, err := ParseDate(raw)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// Clock is a time-of-day slot with minute precision, stored as minutes
// after midnight.
type Clock int

func NewClock(hour, minute int) (Clock, error) {
	if hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		return 0, fmt.Errorf("invalid clock %02d:%02d", hour, minute)
	}
	return Clock(hour*60 + minute), nil
}

// ParseClock accepts "HH:mm" and the lenient "H:mm".
func ParseClock(value string) (Clock, error) {
	if len(value) < 4 || len(value) > 5 || value[len(value)-3] != ':' {
		return 0, fmt.Errorf("invalid time %q: expected HH:mm", value)
	}
	hour, err := strconv.Atoi(value[:len(value)-3])
	if err != nil {
		return 0, fmt.Errorf("invalid time %q: expected HH:mm", value)
	}
	minute, err := strconv.Atoi(value[len(value)-2:])
	if err != nil {
		return 0, fmt.Errorf("invalid time %q: expected HH:mm", value)
	}
	return NewClock(hour, minute)
}

func (c Clock) Hour() int {
	return int(c) / 60
}

func (c Clock) Minute() int {
	return int(c) % 60
}

func (c Clock) String() string {
	return fmt.Sprintf("%02d:%02d", c.Hour(), c.Minute())
}

func (c Clock) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.String())
}

func (c *Clock) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	parsed, err := ParseClock(raw)
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// SortKey orders entries chronologically: by date, then by time slot.
type SortKey struct {
	Date Date
	Time Clock
}

func (k SortKey) Compare(other SortKey) int {
	if cmp := k.Date.Compare(other.Date); cmp != 0 {
		return cmp
	}
	switch {
	case k.Time < other.Time:
		return -1
	case k.Time > other.Time:
		return 1
	default:
		return 0
	}
}

func (k SortKey) Before(other SortKey) bool {
	return k.Compare(other) < 0
}

func (k SortKey) String() string {
	return k.Date.String() + " " + k.Time.String()
}
