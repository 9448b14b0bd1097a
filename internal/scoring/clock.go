package scoring

import "time"

// Clock supplies "now" to every calculation so the time zone policy lives in
// one place and tests can pin the date.
type Clock interface {
	Now() time.Time
	Today() string
}

type zoneClock struct {
	loc *time.Location
}

// NewClock returns a wall clock that reports dates in loc. A nil loc means UTC.
func NewClock(loc *time.Location) Clock {
	if loc == nil {
		loc = time.UTC
	}
	return zoneClock{loc: loc}
}

func (c zoneClock) Now() time.Time {
	return time.Now().In(c.loc)
}

func (c zoneClock) Today() string {
	return FormatDate(c.Now())
}

// FixedClock always reports At.
type FixedClock struct {
	At time.Time
}

func (c FixedClock) Now() time.Time {
	return c.At
}

func (c FixedClock) Today() string {
	return FormatDate(c.At)
}
