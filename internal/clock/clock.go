package clock

import "time"

type Clock interface {
	Now() time.Time
}

// RealClock reads the wall clock in Location (UTC when nil).
type RealClock struct {
	Location *time.Location
}

func (c RealClock) Now() time.Time {
	if c.Location == nil {
		return time.Now().UTC()
	}
	return time.Now().In(c.Location)
}

type FixedClock struct {
	At time.Time
}

func (c FixedClock) Now() time.Time {
	return c.At
}

// ParseMoment accepts RFC3339 or a bare YYYY-MM-DD date in loc.
func ParseMoment(s string, loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.UTC
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t.In(loc), nil
	}
	return time.ParseInLocation(time.DateOnly, s, loc)
}
