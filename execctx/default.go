// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package execctx

import "sync/atomic"

// Factory selects a Context for callers that do not care where their work
// runs.
type Factory func() Context

// defaultFactory is process-wide configuration.  It is expected to be
// replaced at most once, at process start, and treated as immutable
// thereafter.
var defaultFactory atomic.Pointer[Factory]

func init() {
	f := Factory(selectDefault)
	defaultFactory.Store(&f)
}

// selectDefault is the built-in selection strategy: the main-bound context
// when called from the main loop's goroutine, otherwise a context bound to
// the shared global concurrent target.
func selectDefault() Context {
	if main := Main(); main != nil && main.IsCurrent() {
		return When(main.IsCurrent, main)
	}

	return Bound(Global())
}

// Default returns a Context chosen by the process-wide factory.  With the
// built-in factory, callers on the main loop's goroutine receive the
// main-bound context, and all other callers receive a context bound to the
// shared global concurrent target.
func Default() Context {
	return (*defaultFactory.Load())()
}

// SetDefaultFactory replaces the process-wide context selection strategy.
// This exists for injection at process start, before any use of Default;
// it is not intended for use at arbitrary points.  A nil factory panics.
func SetDefaultFactory(f Factory) {
	if f == nil {
		panic("a factory is required")
	}

	defaultFactory.Store(&f)
}

// resetDefaultFactory restores the built-in factory.  Tests only.
func resetDefaultFactory() {
	f := Factory(selectDefault)
	defaultFactory.Store(&f)
}
