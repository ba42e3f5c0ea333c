package clock

import "time"

// Interface represents the time source used by blocking operations in this
// module.  Only the capabilities actually needed for deadline computation
// are exposed, so that timed code can be tested without sleeping.
type Interface interface {
	// Now returns the current time, as in time.Now()
	Now() time.Time

	// NewTimer creates a single-shot timer for the given duration, as in time.NewTimer()
	NewTimer(time.Duration) Timer
}

type systemClock struct{}

func (sc systemClock) Now() time.Time {
	return time.Now()
}

func (sc systemClock) NewTimer(d time.Duration) Timer {
	return systemTimer{time.NewTimer(d)}
}

// System returns a clock backed by the time package
func System() Interface {
	return systemClock{}
}
