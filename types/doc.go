/*
Package types contains the small value types shared across this module.
In particular, it provides the timeout representation used by blocking
operations, along with better JSON support for durations.
*/
package types
