// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package semaphore

import (
	"errors"
	"sync"
	"time"

	"github.com/xmidt-org/dispatchcore/clock"
	"github.com/xmidt-org/dispatchcore/types"
)

var (
	// ErrTimeout is returned when the interval elapsed before the semaphore became available.
	ErrTimeout = errors.New("the semaphore could not be acquired within the interval")
)

// Interface represents a counting semaphore.  When any wait method succeeds,
// Signal *must* eventually be called to return the permit, including on error
// paths.  Use Execute for that scoped discipline.
type Interface interface {
	// Wait blocks the calling goroutine until the count is positive, then
	// consumes one permit.  It is equivalent to WaitInterval(types.Forever).
	// This method returns a nil error except for closeable semaphores, which
	// can return ErrClosed.
	Wait() error

	// WaitInterval attempts to consume a permit before the given interval
	// elapses.  A types.Forever interval never times out.
	//
	// Whether the wait ends through availability or through the deadline,
	// the count is decremented exactly once before returning: a timed-out
	// waiter still consumes a permit.  Callers treating ErrTimeout as "no
	// resource held" must issue a matching Signal themselves.
	WaitInterval(types.Interval) error

	// TryWait consumes a permit only if one is immediately available,
	// returning true if so.  TryWait never blocks.
	TryWait() bool

	// Signal releases one permit, waking a blocked waiter if any, and
	// returns the new count.  No fairness is guaranteed among waiters.
	// Signal never blocks.
	Signal() int

	// Execute waits, invokes the task synchronously on the calling
	// goroutine, then signals.  The signal is issued even if the task
	// panics, so a misbehaving task cannot leak the permit.  The task is
	// not invoked when the wait fails, and that error is returned.
	Execute(task func()) error
}

// Option is a configuration option for semaphores built by this package
type Option func(*options)

type options struct {
	clock clock.Interface
}

// WithClock injects an alternate time source, primarily so that timed waits
// can be tested without sleeping.  A nil clock leaves the system clock in place.
func WithClock(c clock.Interface) Option {
	return func(o *options) {
		if c != nil {
			o.clock = c
		}
	}
}

func newOptions(o []Option) options {
	opts := options{
		clock: clock.System(),
	}

	for _, f := range o {
		f(&opts)
	}

	return opts
}

// New constructs a counting semaphore with the given initial count.  Any
// initial value is legal: a zero or negative count starts the semaphore
// "owed", blocking all waiters until enough Signal calls cover the deficit.
func New(count int, o ...Option) Interface {
	s := &semaphore{
		clock: newOptions(o).clock,
		count: count,
	}

	s.available = sync.NewCond(&s.lock)
	return s
}

// Mutex is just syntactic sugar for New(1).  The returned object is a binary
// semaphore suitable for mutual exclusion.
func Mutex(o ...Option) Interface {
	return New(1, o...)
}

// semaphore is the internal Interface implementation.  The count is guarded
// by a monitor: it is only ever read or written while lock is held.
type semaphore struct {
	clock     clock.Interface
	lock      sync.Mutex
	available *sync.Cond
	count     int
}

// watchdog arms a deadline for a bounded wait.  The returned flag is guarded
// by lock and becomes true once the timer fires, after which cond is
// broadcast so that blocked waiters observe the expiry.  The returned cancel
// function releases the timer and must always be called.
func watchdog(c clock.Interface, d time.Duration, lock sync.Locker, cond *sync.Cond) (*bool, func()) {
	var (
		expired = new(bool)
		timer   = c.NewTimer(d)
		done    = make(chan struct{})
	)

	go func() {
		select {
		case <-timer.C():
			lock.Lock()
			*expired = true
			lock.Unlock()
			cond.Broadcast()

		case <-done:
		}
	}()

	return expired, func() {
		timer.Stop()
		close(done)
	}
}

func (s *semaphore) Wait() error {
	return s.WaitInterval(types.Forever)
}

func (s *semaphore) WaitInterval(i types.Interval) error {
	s.lock.Lock()
	defer s.lock.Unlock()

	// the deadline is only armed when the caller must block
	var expired *bool
	if d, bounded := i.Duration(); bounded && s.count <= 0 {
		var cancel func()
		expired, cancel = watchdog(s.clock, d, &s.lock, s.available)
		defer cancel()
	}

	for s.count <= 0 {
		if expired != nil && *expired {
			// the deadline won, but the permit is still consumed
			s.count--
			return ErrTimeout
		}

		s.available.Wait()
	}

	s.count--
	return nil
}

func (s *semaphore) TryWait() bool {
	s.lock.Lock()
	defer s.lock.Unlock()

	if s.count > 0 {
		s.count--
		return true
	}

	return false
}

func (s *semaphore) Signal() int {
	s.lock.Lock()
	defer s.lock.Unlock()

	s.count++
	s.available.Signal()
	return s.count
}

func (s *semaphore) Execute(task func()) error {
	if err := s.Wait(); err != nil {
		return err
	}

	defer s.Signal()
	task()
	return nil
}
