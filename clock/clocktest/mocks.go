package clocktest

import (
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/xmidt-org/dispatchcore/clock"
)

// Mock is a stretchr mock for a clock.  In addition to implementing clock.Interface and supplying
// mock behavior, other methods that make mocking a bit easier are supplied.
type Mock struct {
	mock.Mock
}

var _ clock.Interface = (*Mock)(nil)

func (m *Mock) Now() time.Time {
	return m.Called().Get(0).(time.Time)
}

func (m *Mock) OnNow(v time.Time) *mock.Call {
	return m.On("Now").Return(v)
}

func (m *Mock) NewTimer(d time.Duration) clock.Timer {
	return m.Called(d).Get(0).(clock.Timer)
}

func (m *Mock) OnNewTimer(d time.Duration, t clock.Timer) *mock.Call {
	return m.On("NewTimer", d).Return(t)
}

// MockTimer is a stretchr mock for the clock.Timer interface
type MockTimer struct {
	mock.Mock
}

var _ clock.Timer = (*MockTimer)(nil)

func (m *MockTimer) C() <-chan time.Time {
	return m.Called().Get(0).(<-chan time.Time)
}

func (m *MockTimer) OnC(c <-chan time.Time) *mock.Call {
	return m.On("C").Return(c)
}

func (m *MockTimer) Stop() bool {
	return m.Called().Bool(0)
}

func (m *MockTimer) OnStop(r bool) *mock.Call {
	return m.On("Stop").Return(r)
}

// Trigger is a manually-fired clock.Timer for use in tests.  Fire() releases
// anyone selecting on C() exactly once.
type Trigger struct {
	c chan time.Time
}

var _ clock.Timer = (*Trigger)(nil)

// NewTrigger creates an unfired Trigger
func NewTrigger() *Trigger {
	return &Trigger{
		c: make(chan time.Time, 1),
	}
}

func (t *Trigger) C() <-chan time.Time {
	return t.c
}

// Fire emits the zero time on the timer channel.  Calling Fire more than
// once without an intervening receive will drop the extra events rather
// than block, matching the behavior of time.Timer.
func (t *Trigger) Fire() {
	select {
	case t.c <- time.Time{}:
	default:
	}
}

func (t *Trigger) Stop() bool {
	return true
}
