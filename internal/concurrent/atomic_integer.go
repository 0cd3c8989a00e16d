// Package concurrent provides small concurrency primitives used by the pool
// core that the standard library does not package as a type on its own.
package concurrent

import "sync/atomic"

// AtomicInteger is a 32-bit counter safe for concurrent use without an
// explicit mutex. The pool's admission-control path relies on
// IncrementAndGet/DecrementAndGet forming a pre-increment/fail-rollback
// pair: a creator reserves a slot before it is known whether creation will
// succeed, and undoes the reservation on any failure.
type AtomicInteger struct {
	value int32
}

// NewAtomicInteger returns a counter initialised to v.
func NewAtomicInteger(v int32) *AtomicInteger {
	return &AtomicInteger{value: v}
}

// Get returns the current value.
func (a *AtomicInteger) Get() int32 {
	return atomic.LoadInt32(&a.value)
}

// Set overwrites the current value.
func (a *AtomicInteger) Set(v int32) {
	atomic.StoreInt32(&a.value, v)
}

// IncrementAndGet adds one and returns the new value.
func (a *AtomicInteger) IncrementAndGet() int32 {
	return atomic.AddInt32(&a.value, 1)
}

// DecrementAndGet subtracts one and returns the new value.
func (a *AtomicInteger) DecrementAndGet() int32 {
	return atomic.AddInt32(&a.value, -1)
}
