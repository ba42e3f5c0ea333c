// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package semaphore

import (
	"errors"

	"github.com/go-kit/kit/metrics/discard"
	"github.com/xmidt-org/dispatchcore/types"
	"github.com/xmidt-org/dispatchcore/xmetrics"
)

// InstrumentOption represents a configurable option for instrumenting a semaphore
type InstrumentOption func(*instrumentedSemaphore)

// WithResources establishes a metric that tracks how many permits are currently
// held.  If a nil adder is supplied, resource counts are discarded.
func WithResources(a xmetrics.Adder) InstrumentOption {
	return func(i *instrumentedSemaphore) {
		if a != nil {
			i.resources = a
		} else {
			i.resources = discard.NewCounter()
		}
	}
}

// WithFailures establishes a metric that tracks how many waits ended in
// failure, e.g. timeouts.  If a nil adder is supplied, failure counts are
// discarded.
func WithFailures(a xmetrics.Adder) InstrumentOption {
	return func(i *instrumentedSemaphore) {
		if a != nil {
			i.failures = a
		} else {
			i.failures = discard.NewCounter()
		}
	}
}

// Instrument decorates an existing semaphore with a set of options.
// The semaphore cannot be nil.
func Instrument(s Interface, o ...InstrumentOption) Interface {
	if s == nil {
		panic("a semaphore is required")
	}

	is := &instrumentedSemaphore{
		Interface: s,
		resources: discard.NewCounter(),
		failures:  discard.NewCounter(),
	}

	for _, f := range o {
		f(is)
	}

	return is
}

type instrumentedSemaphore struct {
	Interface
	resources xmetrics.Adder
	failures  xmetrics.Adder
}

func (is *instrumentedSemaphore) Wait() (err error) {
	err = is.Interface.Wait()
	if err != nil {
		is.failures.Add(1.0)
	} else {
		is.resources.Add(1.0)
	}

	return
}

func (is *instrumentedSemaphore) WaitInterval(i types.Interval) (err error) {
	err = is.Interface.WaitInterval(i)
	switch {
	case err == nil:
		is.resources.Add(1.0)

	case errors.Is(err, ErrTimeout):
		// a timed-out waiter still consumes a permit
		is.failures.Add(1.0)
		is.resources.Add(1.0)

	default:
		is.failures.Add(1.0)
	}

	return
}

func (is *instrumentedSemaphore) TryWait() bool {
	acquired := is.Interface.TryWait()
	if acquired {
		is.resources.Add(1.0)
	}

	return acquired
}

func (is *instrumentedSemaphore) Signal() int {
	n := is.Interface.Signal()
	is.resources.Add(-1.0)
	return n
}

func (is *instrumentedSemaphore) Execute(task func()) error {
	if err := is.Wait(); err != nil {
		return err
	}

	defer is.Signal()
	task()
	return nil
}
