// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

/*
Package semaphore provides a monitor-based counting semaphore with blocking
and timed wait semantics, along with closeable and metrics-instrumented
variants.

Unlike channel-backed semaphores, the count here is an explicit integer
guarded by a mutex and condition variable, which permits semaphores that
start at zero or negative ("owed") counts.
*/
package semaphore
