// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package execctx

import (
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/go-kit/kit/log"
	"github.com/go-kit/kit/log/level"
	"github.com/go-kit/kit/metrics/discard"
	"github.com/petermattis/goid"
	"github.com/xmidt-org/dispatchcore/logging"
	"github.com/xmidt-org/dispatchcore/xmetrics"
)

// DefaultQueueCapacity is used when no WithQueueCapacity option is supplied
const DefaultQueueCapacity = 128

const (
	stateIdle int32 = iota
	stateRunning
	stateDone
)

var (
	// ErrLoopStarted is returned when a Loop is run more than once
	ErrLoopStarted = errors.New("the loop has already been started")
)

// LoopOption represents a configurable option for a Loop
type LoopOption func(*Loop)

// WithLogger establishes the logger used to report recovered task panics.
// A nil logger leaves the default NOP logger in place.
func WithLogger(logger log.Logger) LoopOption {
	return func(l *Loop) {
		if logger != nil {
			l.logger = logger
		}
	}
}

// WithQueueCapacity sets the capacity of the task queue.  Nonpositive
// capacities are ignored.  Dispatch blocks while the queue is full.
func WithQueueCapacity(capacity int) LoopOption {
	return func(l *Loop) {
		if capacity > 0 {
			l.capacity = capacity
		}
	}
}

// WithQueueDepth establishes a gauge that tracks the number of tasks waiting
// in the queue.  If nil, queue depths are discarded.
func WithQueueDepth(gauge xmetrics.AddSetter) LoopOption {
	return func(l *Loop) {
		if gauge != nil {
			l.depth = gauge
		} else {
			l.depth = discard.NewGauge()
		}
	}
}

// WithTasks establishes a metric that counts the tasks the loop has executed,
// including tasks that panicked.  If nil, task counts are discarded.
func WithTasks(counter xmetrics.Adder) LoopOption {
	return func(l *Loop) {
		if counter != nil {
			l.executed = counter
		} else {
			l.executed = discard.NewCounter()
		}
	}
}

// NewLoop constructs a serial dispatch target with zero or more options.
// The loop executes nothing until it is started with Run or Start.
func NewLoop(o ...LoopOption) *Loop {
	l := &Loop{
		logger:   logging.DefaultLogger(),
		capacity: DefaultQueueCapacity,
		depth:    discard.NewGauge(),
		executed: discard.NewCounter(),
	}

	for _, f := range o {
		f(l)
	}

	l.tasks = make(chan Task, l.capacity)
	l.done = make(chan struct{})
	return l
}

// Loop is a serial dispatch target backed by a single goroutine.  Tasks are
// executed one at a time, in FIFO dispatch order.  A Loop designated via
// SetMain serves as the process's "main thread" for OnMain and Default.
type Loop struct {
	logger   log.Logger
	capacity int
	tasks    chan Task
	depth    xmetrics.AddSetter
	executed xmetrics.Adder

	state int32
	id    int64

	// done is closed when the loop goroutine exits
	done chan struct{}

	shutdown  chan struct{}
	waitGroup *sync.WaitGroup
	closeOnce sync.Once
}

// Run starts the loop's goroutine.  The supplied shutdown channel signals the
// goroutine to exit; callers then use the wait group to await cleanup.  Run
// returns ErrLoopStarted if the loop has already been started.
func (l *Loop) Run(waitGroup *sync.WaitGroup, shutdown <-chan struct{}) error {
	if !atomic.CompareAndSwapInt32(&l.state, stateIdle, stateRunning) {
		return ErrLoopStarted
	}

	waitGroup.Add(1)
	go l.serve(waitGroup, shutdown)
	return nil
}

// Start runs the loop with an internally managed lifecycle.  Use Stop to
// shut the loop down again.
func (l *Loop) Start() error {
	var (
		waitGroup = new(sync.WaitGroup)
		shutdown  = make(chan struct{})
	)

	if err := l.Run(waitGroup, shutdown); err != nil {
		return err
	}

	l.waitGroup = waitGroup
	l.shutdown = shutdown
	return nil
}

// Stop signals a loop begun with Start to exit, then waits until either the
// loop goroutine has finished or the timeout elapses.  It returns true if
// the loop shut down within the timeout.  Stop is idempotent.
func (l *Loop) Stop(timeout time.Duration) bool {
	if l.shutdown == nil {
		return true
	}

	l.closeOnce.Do(func() {
		close(l.shutdown)
	})

	success := make(chan struct{})
	go func() {
		defer close(success)
		l.waitGroup.Wait()
	}()

	timer := time.NewTimer(timeout)
	defer timer.Stop()

	select {
	case <-success:
		return true
	case <-timer.C:
		return false
	}
}

// Dispatch enqueues the task for execution on the loop goroutine, in FIFO
// order.  Dispatch returns once the task is queued, blocking only while the
// queue is full.  Tasks queued when shutdown begins are still executed
// before the loop goroutine exits; tasks dispatched after the loop has
// exited are dropped.
func (l *Loop) Dispatch(task Task) {
	select {
	case <-l.done:
		return
	default:
	}

	select {
	case l.tasks <- task:
		l.depth.Add(1.0)
	case <-l.done:
		// the loop exited while the queue was full
	}
}

// IsCurrent tests whether the calling goroutine is this loop's goroutine.
// It reports false whenever the loop is not running.
func (l *Loop) IsCurrent() bool {
	return atomic.LoadInt64(&l.id) == goid.Get()
}

func (l *Loop) serve(waitGroup *sync.WaitGroup, shutdown <-chan struct{}) {
	defer waitGroup.Done()
	defer atomic.StoreInt32(&l.state, stateDone)
	defer close(l.done)

	atomic.StoreInt64(&l.id, goid.Get())
	defer atomic.StoreInt64(&l.id, 0)

	for {
		select {
		case task := <-l.tasks:
			l.depth.Add(-1.0)
			l.invoke(task)

		case <-shutdown:
			l.drain()
			return
		}
	}
}

// drain executes any tasks still queued at shutdown
func (l *Loop) drain() {
	for {
		select {
		case task := <-l.tasks:
			l.depth.Add(-1.0)
			l.invoke(task)

		default:
			return
		}
	}
}

func (l *Loop) invoke(task Task) {
	defer l.executed.Add(1.0)
	defer func() {
		if r := recover(); r != nil {
			level.Error(l.logger).Log(
				logging.MessageKey(), "dispatched task panicked",
				logging.ErrorKey(), fmt.Sprintf("%v", r),
			)
		}
	}()

	task()
}
