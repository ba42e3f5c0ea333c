package types

import (
	"errors"
	"time"
)

// foreverText is the JSON and string representation of an unbounded Interval.
const foreverText = "forever"

// ErrInvalidInterval is returned when unmarshalling JSON that cannot represent an Interval.
var ErrInvalidInterval = errors.New("an interval must be the string \"forever\", a duration string, or a nanosecond count")

// Interval represents a bounded or unbounded span of time, used to limit
// blocking operations.  An Interval is either Forever, meaning no deadline
// is ever produced, or a duration relative to "now".
//
// The zero value of this type is Forever.  Interval is an immutable value
// type, created at call sites and never modified.
type Interval struct {
	d       Duration
	bounded bool
}

// Forever is the unbounded Interval.  It never produces a deadline.
var Forever = Interval{}

// In creates a bounded Interval representing "now plus d" at the point of use.
// The duration is expected to be non-negative.  A negative duration behaves as
// an already-elapsed deadline.
func In(d time.Duration) Interval {
	return Interval{d: Duration(d), bounded: true}
}

// InSeconds is a convenience for In() with a fractional number of seconds,
// e.g. InSeconds(1.5) is equivalent to In(1500 * time.Millisecond).
func InSeconds(s float64) Interval {
	return In(time.Duration(s * float64(time.Second)))
}

// Bounded tests whether this Interval carries a duration.  It returns false for Forever.
func (i Interval) Bounded() bool {
	return i.bounded
}

// Duration returns the duration of a bounded Interval.  The second return
// value is false for Forever, in which case the duration is meaningless.
func (i Interval) Duration() (time.Duration, bool) {
	return time.Duration(i.d), i.bounded
}

// Until computes the absolute deadline for this Interval relative to the
// supplied time.  For Forever, there is no deadline and the second return
// value is false.
func (i Interval) Until(now time.Time) (time.Time, bool) {
	if !i.bounded {
		return time.Time{}, false
	}

	return now.Add(time.Duration(i.d)), true
}

// UntilFromNow is equivalent to Until(time.Now())
func (i Interval) UntilFromNow() (time.Time, bool) {
	return i.Until(time.Now())
}

// String returns "forever" for an unbounded Interval, and the
// time.Duration.String() form otherwise.
func (i Interval) String() string {
	if !i.bounded {
		return foreverText
	}

	return i.d.String()
}

// MarshalJSON produces either the string "forever" or a duration string of
// the form produced by time.Duration.String()
func (i Interval) MarshalJSON() ([]byte, error) {
	return []byte(`"` + i.String() + `"`), nil
}

// UnmarshalJSON permits the string "forever", any string accepted by
// time.ParseDuration(), or a numeric nanosecond count.
func (i *Interval) UnmarshalJSON(data []byte) error {
	if len(data) == 0 {
		return ErrInvalidInterval
	}

	if string(data) == `"`+foreverText+`"` {
		*i = Forever
		return nil
	}

	var d Duration
	if err := d.UnmarshalJSON(data); err != nil {
		return err
	}

	*i = Interval{d: d, bounded: true}
	return nil
}
