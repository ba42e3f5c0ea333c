// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package execctx

import "sync/atomic"

// mainLoop holds the process's designated main loop.  It is written exactly
// once, at process start.
var mainLoop atomic.Pointer[Loop]

// SetMain designates the process's main loop.  It must be called at most
// once, before any use of OnMain or Default; a second call panics.  The
// supplied loop is normally run on (or pumped by) the program's main
// goroutine.
func SetMain(l *Loop) {
	if l == nil {
		panic("a main loop is required")
	}

	if !mainLoop.CompareAndSwap(nil, l) {
		panic("the main loop has already been set")
	}
}

// Main returns the designated main loop, or nil if SetMain has not been called.
func Main() *Loop {
	return mainLoop.Load()
}

// OnMain returns the Context that invokes tasks inline when the calling
// goroutine is already the main loop's goroutine, and otherwise schedules
// them asynchronously on the main loop without waiting for completion.
// OnMain panics if SetMain has not been called.
func OnMain() Context {
	main := Main()
	if main == nil {
		panic("the main loop has not been set")
	}

	return When(main.IsCurrent, main)
}

// resetMain clears the main loop designation.  Tests only.
func resetMain() {
	mainLoop.Store(nil)
}
