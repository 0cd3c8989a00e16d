package collections

import (
	"container/list"
	"errors"
	"sync"
	"sync/atomic"
	"time"
)

// ErrInterrupted is returned by a blocking pop when InterruptTakeWaiters is
// called while the caller is waiting.
var ErrInterrupted = errors.New("collections: deque interrupted")

// ErrTimeout is returned by a timed pop that expires before an element
// becomes available.
var ErrTimeout = errors.New("collections: timed out waiting for deque element")

// Iterator walks a Deque snapshot. It is weakly consistent: it tolerates
// concurrent mutation of the deque and never panics because of it, but does
// not guarantee visibility of concurrent insertions. Next returns nil if the
// element it was about to return has since been removed from the deque by
// another goroutine.
type Iterator interface {
	HasNext() bool
	Next() interface{}
}

// Deque is a thread-safe double-ended queue with blocking and timed pops,
// used by the pool core as the idle-object queue. Blocking pops wait on a
// sync.Cond over the same mutex that guards the list, the same pattern
// haasonsaas-nexus's own generic resource pool uses for its idle waiters:
// Signal on a single insertion so exactly one waiter wakes, Broadcast only
// when every waiter must be released at once (interrupt, close).
type Deque struct {
	mu          sync.Mutex
	cond        *sync.Cond
	items       *list.List
	waiters     int32
	interrupted bool
}

// NewDeque returns an empty deque.
func NewDeque() *Deque {
	d := &Deque{items: list.New()}
	d.cond = sync.NewCond(&d.mu)
	return d
}

// AddFirst inserts v at the head.
func (d *Deque) AddFirst(v interface{}) {
	d.mu.Lock()
	d.items.PushFront(v)
	d.mu.Unlock()
	d.cond.Signal()
}

// AddLast inserts v at the tail.
func (d *Deque) AddLast(v interface{}) {
	d.mu.Lock()
	d.items.PushBack(v)
	d.mu.Unlock()
	d.cond.Signal()
}

// PollFirst removes and returns the head element, or nil if the deque is
// empty. It never blocks.
func (d *Deque) PollFirst() interface{} {
	d.mu.Lock()
	defer d.mu.Unlock()
	e := d.items.Front()
	if e == nil {
		return nil
	}
	d.items.Remove(e)
	return e.Value
}

// TakeFirst removes and returns the head element, blocking indefinitely
// until one is available or the deque is interrupted.
func (d *Deque) TakeFirst() (interface{}, error) {
	return d.pollFirst(nil)
}

// PollFirstWithTimeout removes and returns the head element, blocking up to
// timeout. A zero timeout behaves like PollFirst wrapped in the blocking
// protocol (an immediate, non-blocking check). A negative timeout blocks
// indefinitely, same as TakeFirst.
func (d *Deque) PollFirstWithTimeout(timeout time.Duration) (interface{}, error) {
	if timeout < 0 {
		return d.pollFirst(nil)
	}
	deadline := time.Now().Add(timeout)
	return d.pollFirst(&deadline)
}

// pollFirst waits on cond until an element is available, the deque is
// interrupted, or deadline (if non-nil) passes. sync.Cond has no built-in
// timeout, so a timed call arms a one-shot timer that broadcasts once to
// force a recheck of the deadline; it is stopped promptly if the wait ends
// for any other reason first.
func (d *Deque) pollFirst(deadline *time.Time) (interface{}, error) {
	atomic.AddInt32(&d.waiters, 1)
	defer atomic.AddInt32(&d.waiters, -1)

	var timer *time.Timer
	if deadline != nil {
		remaining := time.Until(*deadline)
		if remaining < 0 {
			remaining = 0
		}
		timer = time.AfterFunc(remaining, func() {
			d.mu.Lock()
			d.cond.Broadcast()
			d.mu.Unlock()
		})
		defer timer.Stop()
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	for {
		if d.interrupted {
			return nil, ErrInterrupted
		}
		if e := d.items.Front(); e != nil {
			d.items.Remove(e)
			return e.Value, nil
		}
		if deadline != nil && !time.Now().Before(*deadline) {
			return nil, ErrTimeout
		}
		d.cond.Wait()
	}
}

// RemoveFirstOccurrence removes the first element equal to v (by ==),
// scanning head to tail. Reports whether an element was removed.
func (d *Deque) RemoveFirstOccurrence(v interface{}) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	for e := d.items.Front(); e != nil; e = e.Next() {
		if e.Value == v {
			d.items.Remove(e)
			return true
		}
	}
	return false
}

func (d *Deque) contains(v interface{}) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	for e := d.items.Front(); e != nil; e = e.Next() {
		if e.Value == v {
			return true
		}
	}
	return false
}

// Size returns the number of elements currently in the deque.
func (d *Deque) Size() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.items.Len()
}

// HasTakeWaiters reports whether any goroutine is currently blocked in
// TakeFirst or a timed PollFirstWithTimeout.
func (d *Deque) HasTakeWaiters() bool {
	return atomic.LoadInt32(&d.waiters) > 0
}

// InterruptTakeWaiters wakes every goroutine currently blocked in a take and
// causes them, and all future takes, to fail with ErrInterrupted until the
// deque is replaced. Used by Pool.Close to release borrowers waiting on an
// empty pool.
func (d *Deque) InterruptTakeWaiters() {
	d.mu.Lock()
	d.interrupted = true
	d.mu.Unlock()
	d.cond.Broadcast()
}

// Iterator returns a weakly-consistent head-to-tail iterator over a
// snapshot of the deque taken at call time.
func (d *Deque) Iterator() Iterator {
	return d.newIterator(false)
}

// DescendingIterator returns a weakly-consistent tail-to-head iterator over
// a snapshot of the deque taken at call time.
func (d *Deque) DescendingIterator() Iterator {
	return d.newIterator(true)
}

func (d *Deque) newIterator(descending bool) Iterator {
	d.mu.Lock()
	snapshot := make([]interface{}, 0, d.items.Len())
	if descending {
		for e := d.items.Back(); e != nil; e = e.Prev() {
			snapshot = append(snapshot, e.Value)
		}
	} else {
		for e := d.items.Front(); e != nil; e = e.Next() {
			snapshot = append(snapshot, e.Value)
		}
	}
	d.mu.Unlock()
	return &dequeIterator{deque: d, snapshot: snapshot}
}

type dequeIterator struct {
	deque    *Deque
	snapshot []interface{}
	pos      int
}

func (it *dequeIterator) HasNext() bool {
	return it.pos < len(it.snapshot)
}

func (it *dequeIterator) Next() interface{} {
	if !it.HasNext() {
		return nil
	}
	v := it.snapshot[it.pos]
	it.pos++
	if !it.deque.contains(v) {
		return nil
	}
	return v
}
