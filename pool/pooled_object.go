package pool

import (
	"fmt"
	"sync"
	"time"
)

// State is one node in the Slot lifecycle described in SPEC_FULL.md §4.1.
type State int

const (
	// StateIdle marks a Slot as resident in the idle deque and available
	// for borrowing.
	StateIdle State = iota
	// StateAllocated marks a Slot as lent to a client.
	StateAllocated
	// StateEvictTesting marks a Slot the evictor is currently examining;
	// it remains in the deque while under test.
	StateEvictTesting
	// StateEvictOut marks a Slot a borrower removed from the deque while
	// the evictor was examining it; the evictor must re-enqueue it at
	// the head once the eviction test completes.
	StateEvictOut
	// StateValidationTesting is the while-idle-validation analogue of
	// StateEvictTesting. No method of Slot moves a Slot into this state
	// (see DESIGN.md); Allocate still handles it, moving it to
	// StateValidationPrealloc, matching the upstream pool this package is
	// modeled on.
	StateValidationTesting
	// StateValidationPrealloc marks a Slot a borrower drew directly out
	// of the deque while it was mid-validation; the borrower intends to
	// claim it once validation succeeds.
	StateValidationPrealloc
	// StateValidationOut is the validation analogue of StateEvictOut.
	StateValidationOut
	// StateInvalid is terminal: the Slot is being or has been destroyed.
	StateInvalid
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "IDLE"
	case StateAllocated:
		return "ALLOCATED"
	case StateEvictTesting:
		return "EVICT_TESTING"
	case StateEvictOut:
		return "EVICT_OUT"
	case StateValidationTesting:
		return "VALIDATION_TESTING"
	case StateValidationPrealloc:
		return "VALIDATION_PREALLOC"
	case StateValidationOut:
		return "VALIDATION_OUT"
	case StateInvalid:
		return "INVALID"
	default:
		return fmt.Sprintf("UNKNOWN(%d)", int(s))
	}
}

// Slot wraps one pooled resource with its lifecycle state and timestamps.
// Exactly one goroutine may mutate a Slot's state at a time; all mutating
// methods take the per-Slot lock internally.
type Slot struct {
	// Object is the underlying pooled resource. Treated as an opaque
	// identity: the Registry keys on it directly, so it must be a
	// pointer or other reference type (see SPEC_FULL.md §3).
	Object interface{}

	mu sync.Mutex

	state            State
	creationTime     time.Time
	lastBorrowedTime time.Time
	lastReturnedTime time.Time
}

// NewSlot wraps obj in a fresh Slot in state StateIdle. lastReturnedTime is
// initialised to the creation time so a freshly created Slot is immediately
// eligible to be considered "idle since now", per SPEC_FULL.md §3.
func NewSlot(obj interface{}) *Slot {
	now := time.Now()
	return &Slot{
		Object:           obj,
		state:            StateIdle,
		creationTime:     now,
		lastBorrowedTime: now,
		lastReturnedTime: now,
	}
}

// State returns the Slot's current state.
func (s *Slot) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// IdleTime returns how long the Slot has been idle: now minus the last
// return time.
func (s *Slot) IdleTime() time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	return time.Since(s.lastReturnedTime)
}

// ActiveTime returns how long the current (or most recent) borrow has been
// active: if the Slot has since been returned, the span between borrow and
// return; otherwise the span between borrow and now.
func (s *Slot) ActiveTime() time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.lastReturnedTime.After(s.lastBorrowedTime) {
		return s.lastReturnedTime.Sub(s.lastBorrowedTime)
	}
	return time.Since(s.lastBorrowedTime)
}

// Allocate attempts to lend the Slot to a borrower. Returns true only if
// the Slot transitioned from StateIdle to StateAllocated; a false return
// tells the caller this Slot is not theirs and they must try another.
func (s *Slot) Allocate() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	switch s.state {
	case StateIdle:
		s.state = StateAllocated
		s.lastBorrowedTime = time.Now()
		return true
	case StateEvictTesting:
		s.state = StateEvictOut
		return false
	case StateValidationTesting:
		s.state = StateValidationPrealloc
		return false
	default:
		return false
	}
}

// Deallocate returns an allocated Slot to StateIdle. Returns false if the
// Slot was not in StateAllocated (a double return).
func (s *Slot) Deallocate() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != StateAllocated {
		return false
	}
	s.state = StateIdle
	s.lastReturnedTime = time.Now()
	return true
}

// Invalidate forces the Slot into the terminal StateInvalid, from any
// state.
func (s *Slot) Invalidate() {
	s.mu.Lock()
	s.state = StateInvalid
	s.mu.Unlock()
}

// StartEvictionTest attempts to mark an idle Slot under examination by the
// evictor. Returns true only if the Slot was StateIdle.
func (s *Slot) StartEvictionTest() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != StateIdle {
		return false
	}
	s.state = StateEvictTesting
	return true
}

// EndEvictionTest concludes an eviction test. ok reports whether the Slot
// returned to StateIdle; requeueHead reports whether the caller must
// re-insert the Slot at the head of the idle deque because a borrower
// raced the test and already removed it (StateEvictOut). The Slot never
// reaches into the deque itself, per SPEC_FULL.md §9's note on avoiding a
// cyclic back-pointer from Slot to pool.
func (s *Slot) EndEvictionTest() (ok bool, requeueHead bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	switch s.state {
	case StateEvictTesting:
		s.state = StateIdle
		return true, false
	case StateEvictOut:
		s.state = StateIdle
		return true, true
	default:
		return false, false
	}
}
