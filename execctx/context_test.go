package execctx

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// captureTarget records dispatched tasks without running them
type captureTarget struct {
	lock  sync.Mutex
	tasks []Task
}

func (ct *captureTarget) Dispatch(task Task) {
	ct.lock.Lock()
	defer ct.lock.Unlock()
	ct.tasks = append(ct.tasks, task)
}

func (ct *captureTarget) count() int {
	ct.lock.Lock()
	defer ct.lock.Unlock()
	return len(ct.tasks)
}

func TestImmediate(t *testing.T) {
	var (
		assert   = assert.New(t)
		executed bool
	)

	Immediate().Run(func() {
		executed = true
	})

	// the task has completed by the time Run returns
	assert.True(executed)
}

func TestContextFunc(t *testing.T) {
	var (
		assert   = assert.New(t)
		received Task
		c        = ContextFunc(func(task Task) { received = task })
	)

	expected := func() {}
	c.Run(expected)
	assert.NotNil(received)
}

func TestTargetFunc(t *testing.T) {
	var (
		assert   = assert.New(t)
		executed bool
		target   = TargetFunc(func(task Task) { task() })
	)

	target.Dispatch(func() { executed = true })
	assert.True(executed)
}

func testBoundSchedulesAsync(t *testing.T) {
	var (
		assert = assert.New(t)
		target = new(captureTarget)
		c      = Bound(target)
	)

	c.Run(func() {
		assert.FailNow("The task must not run inline")
	})

	// the task was scheduled, not executed
	assert.Equal(1, target.count())
}

func testBoundRunsOnTarget(t *testing.T) {
	var (
		assert  = assert.New(t)
		require = require.New(t)

		loop = NewLoop()
		done = make(chan bool)
	)

	require.NoError(loop.Start())
	defer loop.Stop(time.Second)

	Bound(loop).Run(func() {
		done <- loop.IsCurrent()
	})

	select {
	case onLoop := <-done:
		// the task executed on the bound target's goroutine, not the caller's
		assert.True(onLoop)
	case <-time.After(time.Second):
		require.FailNow("The task never executed")
	}
}

func TestBound(t *testing.T) {
	t.Run("SchedulesAsync", testBoundSchedulesAsync)
	t.Run("RunsOnTarget", testBoundRunsOnTarget)
}

func testWhenCurrent(t *testing.T) {
	var (
		assert   = assert.New(t)
		target   = new(captureTarget)
		executed bool

		c = When(func() bool { return true }, target)
	)

	c.Run(func() { executed = true })
	assert.True(executed)
	assert.Zero(target.count())
}

func testWhenNotCurrent(t *testing.T) {
	var (
		assert = assert.New(t)
		target = new(captureTarget)

		c = When(func() bool { return false }, target)
	)

	c.Run(func() {
		assert.FailNow("The task must not run inline")
	})

	assert.Equal(1, target.count())
}

func testWhenPredicateConsultedPerRun(t *testing.T) {
	var (
		assert  = assert.New(t)
		target  = new(captureTarget)
		current bool
		inline  int

		c = When(func() bool { return current }, target)
	)

	c.Run(func() { inline++ })
	assert.Zero(inline)
	assert.Equal(1, target.count())

	current = true
	c.Run(func() { inline++ })
	assert.Equal(1, inline)
	assert.Equal(1, target.count())
}

func TestWhen(t *testing.T) {
	t.Run("Current", testWhenCurrent)
	t.Run("NotCurrent", testWhenNotCurrent)
	t.Run("PredicateConsultedPerRun", testWhenPredicateConsultedPerRun)
}

func TestGlobal(t *testing.T) {
	var (
		require = require.New(t)
		done    = make(chan struct{})
	)

	Global().Dispatch(func() {
		close(done)
	})

	select {
	case <-done:
		// passing
	case <-time.After(time.Second):
		require.FailNow("The task never executed")
	}
}
