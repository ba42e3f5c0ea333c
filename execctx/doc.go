// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

/*
Package execctx decouples what work runs from where and when it runs.

A Context accepts a zero-argument task and arranges for it to execute:
inline on the calling goroutine, on the process's designated main loop, or
asynchronously on an arbitrary dispatch target.  The package also supplies
Loop, a serial dispatch target backed by a single goroutine, which serves
as the runtime implementation of a target for processes that do not bring
their own.
*/
package execctx
