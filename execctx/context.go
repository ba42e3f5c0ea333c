// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package execctx

// Task is a zero-argument unit of work
type Task func()

// Context arranges for tasks to execute, now or later, on some goroutine.
// Run returns as soon as the task has been scheduled; only the immediate
// variant guarantees that the task has completed by then.  Callers must not
// assume ordering relative to other tasks unless the specific variant
// documents it.
type Context interface {
	Run(Task)
}

// ContextFunc is a function type that implements Context
type ContextFunc func(Task)

func (f ContextFunc) Run(task Task) {
	f(task)
}

// Target represents an external queue-like entity, serial or concurrent,
// onto which tasks can be scheduled asynchronously.  Dispatch returns as
// soon as the task has been enqueued.
type Target interface {
	Dispatch(Task)
}

// TargetFunc is a function type that implements Target
type TargetFunc func(Task)

func (f TargetFunc) Dispatch(task Task) {
	f(task)
}

var immediateContext Context = ContextFunc(func(task Task) {
	task()
})

// Immediate returns the Context that invokes each task synchronously on the
// calling goroutine, before Run returns.  No scheduling, no goroutine hop.
// The returned instance is stateless and shared by all callers.
func Immediate() Context {
	return immediateContext
}

// Bound returns a Context that always schedules tasks asynchronously on the
// given target and returns immediately, never executing inline, even when
// invoked from the target's own goroutine.
func Bound(target Target) Context {
	return ContextFunc(target.Dispatch)
}

// When returns a Context that invokes tasks inline when current() reports
// true, and otherwise schedules them asynchronously on the target.  The
// predicate is consulted on every Run call, so scheduling logic built on
// this Context is testable with any injected predicate.
func When(current func() bool, target Target) Context {
	return ContextFunc(func(task Task) {
		if current() {
			task()
		} else {
			target.Dispatch(task)
		}
	})
}

// globalTarget is the shared concurrent target: one goroutine per task
type globalTarget struct{}

func (gt globalTarget) Dispatch(task Task) {
	go task()
}

// Global returns the shared, process-wide concurrent target.  Each dispatched
// task runs on its own goroutine; no ordering or serialization is provided.
func Global() Target {
	return globalTarget{}
}
