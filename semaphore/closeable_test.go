package semaphore

import (
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xmidt-org/dispatchcore/clock/clocktest"
	"github.com/xmidt-org/dispatchcore/types"
)

func testCloseableClose(t *testing.T) {
	var (
		assert = assert.New(t)
		cs     = NewCloseable(1)
	)

	select {
	case <-cs.Closed():
		assert.FailNow("The semaphore should not be closed yet")
	default:
		// passing
	}

	assert.NoError(cs.Close())

	select {
	case <-cs.Closed():
		// passing
	default:
		assert.FailNow("The Closed channel was not closed")
	}

	// idempotent
	assert.Equal(ErrClosed, cs.Close())
}

func testCloseableWaitAfterClose(t *testing.T) {
	var (
		assert  = assert.New(t)
		require = require.New(t)
		cs      = NewCloseable(1)
	)

	require.NoError(cs.Close())

	assert.Equal(ErrClosed, cs.Wait())
	assert.Equal(ErrClosed, cs.WaitInterval(types.In(time.Second)))
	assert.Equal(ErrClosed, cs.Execute(func() {
		assert.FailNow("The task must not run on a closed semaphore")
	}))

	assert.False(cs.TryWait())
}

func testCloseableReleasesWaiters(t *testing.T) {
	const waiterCount = 3

	var (
		require = require.New(t)

		cs    = NewCloseable(0)
		ready = make(chan struct{}, waiterCount)
		waits = make(chan error, waiterCount)
	)

	for i := 0; i < waiterCount; i++ {
		go func() {
			ready <- struct{}{}
			waits <- cs.Wait()
		}()
	}

	for i := 0; i < waiterCount; i++ {
		<-ready
	}

	require.NoError(cs.Close())

	for i := 0; i < waiterCount; i++ {
		select {
		case err := <-waits:
			require.Equal(ErrClosed, err)
		case <-time.After(time.Second):
			require.FailNow("A blocked waiter was not released by Close")
		}
	}

	// closed waiters do not consume permits
	require.Equal(0, cs.Signal())
}

func testCloseableTimedWait(t *testing.T) {
	var (
		assert  = assert.New(t)
		require = require.New(t)

		c       = new(clocktest.Mock)
		trigger = clocktest.NewTrigger()
		cs      = NewCloseable(0, WithClock(c))

		ready  = make(chan struct{})
		result = make(chan error)
	)

	c.OnNewTimer(time.Second, trigger)

	go func() {
		close(ready)
		result <- cs.WaitInterval(types.In(time.Second))
	}()

	<-ready
	trigger.Fire()

	select {
	case err := <-result:
		assert.Equal(ErrTimeout, err)
	case <-time.After(time.Second):
		require.FailNow("WaitInterval did not honor its deadline")
	}

	// a timed-out waiter still consumed a permit
	assert.Equal(0, cs.Signal())
}

func testCloseableWaitSignal(t *testing.T) {
	var (
		assert = assert.New(t)
		cs     = NewCloseable(2)
	)

	assert.NoError(cs.Wait())
	assert.True(cs.TryWait())
	assert.False(cs.TryWait())
	assert.Equal(1, cs.Signal())
	assert.Equal(2, cs.Signal())
}

func testCloseableSignalAfterClose(t *testing.T) {
	var (
		assert  = assert.New(t)
		require = require.New(t)
		cs      = NewCloseable(1)
	)

	require.NoError(cs.Close())

	// Signal on a closed semaphore leaves the count untouched
	assert.Equal(1, cs.Signal())
	assert.Equal(1, cs.Signal())
}

func testCloseableExecute(t *testing.T) {
	var (
		assert   = assert.New(t)
		cs       = CloseableMutex()
		executed bool
	)

	assert.NoError(cs.Execute(func() {
		executed = true
	}))

	assert.True(executed)
	assert.True(cs.TryWait())
	cs.Signal()
}

func TestCloseable(t *testing.T) {
	t.Run("Close", testCloseableClose)
	t.Run("WaitAfterClose", testCloseableWaitAfterClose)
	t.Run("ReleasesWaiters", testCloseableReleasesWaiters)
	t.Run("TimedWait", testCloseableTimedWait)
	t.Run("WaitSignal", testCloseableWaitSignal)
	t.Run("SignalAfterClose", testCloseableSignalAfterClose)
	t.Run("Execute", testCloseableExecute)
}

func TestNewCloseable(t *testing.T) {
	for _, c := range []int{0, 1, 5} {
		t.Run(strconv.Itoa(c), func(t *testing.T) {
			assert.NotNil(t, NewCloseable(c))
		})
	}
}
