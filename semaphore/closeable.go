// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package semaphore

import (
	"errors"
	"io"
	"sync"

	"github.com/xmidt-org/dispatchcore/clock"
	"github.com/xmidt-org/dispatchcore/types"
)

var (
	// ErrClosed is returned when a closeable semaphore has been closed
	ErrClosed = errors.New("the semaphore has been closed")
)

// Closeable represents a semaphore that can be closed.  Once closed, a
// semaphore cannot be reopened.
//
// Any goroutines blocked in a wait method when a Closeable is closed receive
// ErrClosed, without consuming a permit.  Subsequent waits also fail with
// ErrClosed.  Close is idempotent: the second and subsequent calls return
// ErrClosed without modifying the instance.
type Closeable interface {
	io.Closer
	Interface

	// Closed returns a channel that is closed when this semaphore has been
	// closed.  This channel has similar use cases to context.Done().
	Closed() <-chan struct{}
}

// NewCloseable returns a semaphore which honors close-once semantics.
//
// A Closeable semaphore has a narrow set of use cases.  Closing the semaphore
// signals any goroutines waiting for permits that those permits will never
// arrive, which is useful when a transient resource such as an external
// connection is being shut down.  For general use, prefer New or Mutex.
func NewCloseable(count int, o ...Option) Closeable {
	cs := &closeable{
		clock: newOptions(o).clock,
		count: count,
		done:  make(chan struct{}),
	}

	cs.available = sync.NewCond(&cs.lock)
	return cs
}

// CloseableMutex is syntactic sugar for NewCloseable(1)
func CloseableMutex(o ...Option) Closeable {
	return NewCloseable(1, o...)
}

type closeable struct {
	clock     clock.Interface
	lock      sync.Mutex
	available *sync.Cond
	count     int
	closed    bool
	done      chan struct{}
}

func (cs *closeable) Close() error {
	cs.lock.Lock()
	defer cs.lock.Unlock()

	if cs.closed {
		return ErrClosed
	}

	cs.closed = true
	close(cs.done)
	cs.available.Broadcast()
	return nil
}

func (cs *closeable) Closed() <-chan struct{} {
	return cs.done
}

func (cs *closeable) Wait() error {
	return cs.WaitInterval(types.Forever)
}

func (cs *closeable) WaitInterval(i types.Interval) error {
	cs.lock.Lock()
	defer cs.lock.Unlock()

	if cs.closed {
		return ErrClosed
	}

	// the deadline is only armed when the caller must block
	var expired *bool
	if d, bounded := i.Duration(); bounded && cs.count <= 0 {
		var cancel func()
		expired, cancel = watchdog(cs.clock, d, &cs.lock, cs.available)
		defer cancel()
	}

	for cs.count <= 0 {
		if cs.closed {
			// closed waiters never consume a permit
			return ErrClosed
		}

		if expired != nil && *expired {
			// the deadline won, but the permit is still consumed
			cs.count--
			return ErrTimeout
		}

		cs.available.Wait()
	}

	if cs.closed {
		return ErrClosed
	}

	cs.count--
	return nil
}

func (cs *closeable) TryWait() bool {
	cs.lock.Lock()
	defer cs.lock.Unlock()

	if cs.closed || cs.count <= 0 {
		return false
	}

	cs.count--
	return true
}

// Signal releases one permit and returns the new count.  Once closed, Signal
// is a no-op that returns the count unchanged: every waiter has already been
// released, so there is no permit accounting left to do.
func (cs *closeable) Signal() int {
	cs.lock.Lock()
	defer cs.lock.Unlock()

	if cs.closed {
		return cs.count
	}

	cs.count++
	cs.available.Signal()
	return cs.count
}

func (cs *closeable) Execute(task func()) error {
	if err := cs.Wait(); err != nil {
		return err
	}

	defer cs.Signal()
	task()
	return nil
}
