package models

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Weekday is an ISO day of week, 1 = Monday through 7 = Sunday.
type Weekday int

const (
	Monday Weekday = iota + 1
	Tuesday
	Wednesday
	Thursday
	Friday
	Saturday
	Sunday
)

var weekdayNames = [...]string{"", "Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday"}

// AllWeekdays lists the days in timetable order
var AllWeekdays = []Weekday{Monday, Tuesday, Wednesday, Thursday, Friday, Saturday, Sunday}

// Valid reports whether d is in 1..7
func (d Weekday) Valid() bool {
	return d >= Monday && d <= Sunday
}

func (d Weekday) String() string {
	if !d.Valid() {
		return fmt.Sprintf("Weekday(%d)", int(d))
	}
	return weekdayNames[d]
}

// ParseWeekday accepts a full or three-letter English name, or an ISO number.
func ParseWeekday(s string) (Weekday, error) {
	s = strings.TrimSpace(s)
	if n, err := strconv.Atoi(s); err == nil {
		d := Weekday(n)
		if !d.Valid() {
			return 0, fmt.Errorf("day of week out of range: %d", n)
		}
		return d, nil
	}
	lower := strings.ToLower(s)
	for i := Monday; i <= Sunday; i++ {
		name := strings.ToLower(weekdayNames[i])
		if lower == name || (len(lower) == 3 && strings.HasPrefix(name, lower)) {
			return i, nil
		}
	}
	return 0, fmt.Errorf("unknown day of week %q", s)
}

// MarshalJSON encodes the day by name
func (d Weekday) MarshalJSON() ([]byte, error) {
	if !d.Valid() {
		return nil, fmt.Errorf("invalid weekday %d", int(d))
	}
	return json.Marshal(d.String())
}

// UnmarshalJSON accepts a name or an ISO number
func (d *Weekday) UnmarshalJSON(data []byte) error {
	var raw interface{}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	var parsed Weekday
	var err error
	switch v := raw.(type) {
	case string:
		parsed, err = ParseWeekday(v)
	case float64:
		parsed, err = ParseWeekday(strconv.Itoa(int(v)))
	default:
		err = fmt.Errorf("invalid weekday value %s", string(data))
	}
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// MarshalText lets Weekday be used as a JSON map key
func (d Weekday) MarshalText() ([]byte, error) {
	if !d.Valid() {
		return nil, fmt.Errorf("invalid weekday %d", int(d))
	}
	return []byte(d.String()), nil
}

// UnmarshalText is the inverse of MarshalText
func (d *Weekday) UnmarshalText(text []byte) error {
	parsed, err := ParseWeekday(string(text))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// ClockTime is a time of day in minutes after midnight.
type ClockTime int

// MinutesPerDay bounds ClockTime; 24:00 is allowed as an end time.
const MinutesPerDay = 24 * 60

// Clock builds a ClockTime from hours and minutes
func Clock(hour, minute int) ClockTime {
	return ClockTime(hour*60 + minute)
}

// ParseClock parses "HH:MM" (a trailing ":SS" is accepted and ignored).
func ParseClock(s string) (ClockTime, error) {
	parts := strings.Split(strings.TrimSpace(s), ":")
	if len(parts) < 2 || len(parts) > 3 {
		return 0, fmt.Errorf("invalid time %q, expected HH:MM", s)
	}
	hour, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, fmt.Errorf("invalid hour in %q", s)
	}
	minute, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, fmt.Errorf("invalid minute in %q", s)
	}
	if hour < 0 || minute < 0 || minute > 59 || hour > 24 || (hour == 24 && minute != 0) {
		return 0, fmt.Errorf("time out of range: %q", s)
	}
	return Clock(hour, minute), nil
}

// Valid reports whether c falls within a day
func (c ClockTime) Valid() bool {
	return c >= 0 && c <= MinutesPerDay
}

func (c ClockTime) String() string {
	return fmt.Sprintf("%02d:%02d", int(c)/60, int(c)%60)
}

// MarshalJSON encodes as "HH:MM"
func (c ClockTime) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.String())
}

// UnmarshalJSON decodes "HH:MM"
func (c *ClockTime) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := ParseClock(s)
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}
