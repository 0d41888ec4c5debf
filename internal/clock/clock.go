package clock

import "time"

// Precision is the resolution purchase dates are stored at (postgres
// timestamptz). Every Clock rounds down to it so an issued ticket equals
// the row read back later.
const Precision = time.Microsecond

// Clock stamps ticket purchase dates.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func NewSystem() Clock {
	return systemClock{}
}

func (systemClock) Now() time.Time {
	return normalize(time.Now())
}

type fixedClock struct {
	now time.Time
}

// NewFixed pins every purchase date to t. Used by tests and data backfills.
func NewFixed(t time.Time) Clock {
	return fixedClock{now: normalize(t)}
}

func (f fixedClock) Now() time.Time {
	return f.now
}

func normalize(t time.Time) time.Time {
	return t.Truncate(Precision).UTC()
}
