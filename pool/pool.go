// Package pool implements a generic, concurrent object pool: it lends
// reusable, expensive-to-create resources to borrowers, bounds the number
// of live resources, and evicts idle resources that have outlived their
// usefulness. See SPEC_FULL.md for the full contract.
package pool

import (
	"math"
	"sync"
	"time"

	"github.com/achen-dev/gopool/internal/collections"
	"github.com/achen-dev/gopool/internal/concurrent"
)

// Pool lends resources constructed by a Factory to concurrent borrowers and
// recycles them on return. See SPEC_FULL.md §4.3 for the operation
// contract and §5 for the concurrency model.
type Pool struct {
	// Config carries the tunable options described in SPEC_FULL.md §4.3.
	// It may be read freely; mutate TimeBetweenEvictionRunsMillis only
	// through SetTimeBetweenEvictionRunsMillis so the maintenance
	// scheduler picks up the change.
	Config *Config

	factory Factory

	closed    bool
	closeLock sync.Mutex

	idleObjects *collections.Deque
	allObjects  *collections.IdentityMap

	createCount                      *concurrent.AtomicInteger
	createdCount                     *concurrent.AtomicInteger
	destroyedCount                   *concurrent.AtomicInteger
	destroyedByEvictorCount          *concurrent.AtomicInteger
	destroyedByBorrowValidationCount *concurrent.AtomicInteger

	schedulerMu sync.Mutex
	evictorStop chan struct{}
	evictorWG   sync.WaitGroup

	evictionLock     sync.Mutex
	evictionIterator collections.Iterator
	evictionPolicy   EvictionPolicy

	log Logger
}

// NewPool constructs a pool bound to factory and configured by cfg. A nil
// cfg uses DefaultConfig. The maintenance scheduler is started immediately
// if cfg.TimeBetweenEvictionRunsMillis > 0.
func NewPool(factory Factory, cfg *Config) *Pool {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	p := &Pool{
		Config:                           cfg,
		factory:                          factory,
		idleObjects:                      collections.NewDeque(),
		allObjects:                       collections.NewIdentityMap(),
		createCount:                      concurrent.NewAtomicInteger(0),
		createdCount:                     concurrent.NewAtomicInteger(0),
		destroyedCount:                   concurrent.NewAtomicInteger(0),
		destroyedByEvictorCount:          concurrent.NewAtomicInteger(0),
		destroyedByBorrowValidationCount: concurrent.NewAtomicInteger(0),
		evictionPolicy:                   DefaultEvictionPolicy{},
		log:                              loggerOrNoop(cfg.Logger),
	}
	p.StartEvictor()
	return p
}

// AddObject creates a resource, passivates it, and enqueues it idle. Useful
// for pre-loading a pool (see Prefill).
func (p *Pool) AddObject() error {
	if p.IsClosed() {
		return newClosedError("pool not open")
	}
	if p.factory == nil {
		return newIllegalStateError("cannot add objects without a factory")
	}
	p.addIdleSlot(p.create())
	return nil
}

func (p *Pool) addIdleSlot(s *Slot) {
	if s == nil {
		return
	}
	if err := p.factory.PassivateObject(s.Object); err != nil {
		p.log.Warnf("pool: passivate failed for pre-loaded object: %v", err)
		p.destroy(s)
		return
	}
	if p.Config.Lifo {
		p.idleObjects.AddFirst(s)
	} else {
		p.idleObjects.AddLast(s)
	}
}

// Borrow obtains a resource from the pool, using Config.MaxWaitMillis as
// the wait budget when the pool is exhausted and Config.BlockWhenExhausted
// is true.
func (p *Pool) Borrow() (interface{}, error) {
	return p.borrow(p.Config.MaxWaitMillis)
}

// BorrowTimeout obtains a resource from the pool, waiting up to
// timeoutMillis instead of Config.MaxWaitMillis when the pool is
// exhausted. Negative means wait forever.
func (p *Pool) BorrowTimeout(timeoutMillis int64) (interface{}, error) {
	return p.borrow(timeoutMillis)
}

// GetNumIdle returns the number of resources currently idle.
func (p *Pool) GetNumIdle() int {
	return p.idleObjects.Size()
}

// GetNumActive returns the number of resources currently borrowed.
func (p *Pool) GetNumActive() int {
	return p.allObjects.Size() - p.idleObjects.Size()
}

// GetDestroyedCount returns the number of resources destroyed for any
// reason over the pool's lifetime.
func (p *Pool) GetDestroyedCount() int { return int(p.destroyedCount.Get()) }

// GetDestroyedByBorrowValidationCount returns the number of resources
// destroyed because TestOnBorrow validation failed.
func (p *Pool) GetDestroyedByBorrowValidationCount() int {
	return int(p.destroyedByBorrowValidationCount.Get())
}

// GetDestroyedByEvictorCount returns the number of resources destroyed by
// the maintenance scheduler.
func (p *Pool) GetDestroyedByEvictorCount() int {
	return int(p.destroyedByEvictorCount.Get())
}

// GetCreatedCount returns the number of resources successfully created
// over the pool's lifetime.
func (p *Pool) GetCreatedCount() int { return int(p.createdCount.Get()) }

// create attempts to admit one new Slot under the MaxTotal cap using a
// pre-increment/fail-rollback protocol: the counter is reserved before the
// factory runs and unconditionally undone on any failure, so concurrent
// creators cannot collectively exceed MaxTotal.
func (p *Pool) create() *Slot {
	maxTotal := p.Config.MaxTotal
	newCount := p.createCount.IncrementAndGet()
	if (maxTotal > -1 && int(newCount) > maxTotal) || newCount >= math.MaxInt32 {
		p.createCount.DecrementAndGet()
		return nil
	}

	obj, err := p.factory.MakeObject()
	if err != nil {
		p.createCount.DecrementAndGet()
		return nil
	}

	s := NewSlot(obj)
	p.allObjects.Put(obj, s)
	p.createdCount.IncrementAndGet()
	return s
}

func (p *Pool) destroy(s *Slot) {
	s.Invalidate()
	p.idleObjects.RemoveFirstOccurrence(s)
	p.allObjects.Remove(s.Object)
	if err := p.factory.DestroyObject(s.Object); err != nil {
		p.log.Warnf("pool: destroy failed: %v", err)
	}
	p.destroyedCount.IncrementAndGet()
	p.createCount.DecrementAndGet()
}

func (p *Pool) borrow(maxWaitMillis int64) (interface{}, error) {
	if p.IsClosed() {
		return nil, newClosedError("pool not open")
	}

	blockWhenExhausted := p.Config.BlockWhenExhausted

	for {
		var s *Slot
		created := false

		if v := p.idleObjects.PollFirst(); v != nil {
			s = v.(*Slot)
		} else if c := p.create(); c != nil {
			s = c
			created = true
		}

		if s == nil {
			if !blockWhenExhausted {
				return nil, newNoSuchElementError("pool exhausted", nil)
			}
			var v interface{}
			var err error
			if maxWaitMillis < 0 {
				v, err = p.idleObjects.TakeFirst()
			} else {
				v, err = p.idleObjects.PollFirstWithTimeout(millisDuration(maxWaitMillis))
			}
			if err != nil {
				return nil, newNoSuchElementError("timeout waiting for idle object", nil)
			}
			s = v.(*Slot)
		}

		if !s.Allocate() {
			// Raced the evictor: this Slot isn't ours, try again.
			continue
		}

		if err := p.factory.ActivateObject(s.Object); err != nil {
			p.destroy(s)
			if created {
				return nil, newNoSuchElementError("unable to activate object", err)
			}
			continue
		}

		if p.Config.TestOnBorrow {
			ok, err := p.factory.ValidateObject(s.Object)
			if err != nil || !ok {
				p.destroy(s)
				p.destroyedByBorrowValidationCount.IncrementAndGet()
				if created {
					return nil, newNoSuchElementError("unable to validate object", err)
				}
				continue
			}
		}

		return s.Object, nil
	}
}

// Return returns a previously borrowed resource to the pool. The resource
// must have come from Borrow/BorrowTimeout on this pool.
func (p *Pool) Return(obj interface{}) error {
	if obj == nil {
		return newInvalidArgumentError("object is nil")
	}
	v := p.allObjects.Get(obj)
	s, ok := v.(*Slot)
	if !ok {
		return newIllegalStateError("returned object not currently part of this pool")
	}

	// Check Deallocate (double-return) before running factory hooks: the
	// upstream this package is modeled on passivates first and only then
	// checks for double-return, which lets a double return run
	// passivate twice. SPEC_FULL.md §9 flags this and recommends
	// checking the allocation state first; this implementation does so.
	if s.State() != StateAllocated {
		return newIllegalStateError("object has already been returned to this pool or is invalid")
	}

	if p.Config.TestOnReturn {
		ok, err := p.factory.ValidateObject(obj)
		if err != nil || !ok {
			p.destroy(s)
			p.ensureIdle(1, false)
			return nil
		}
	}

	if err := p.factory.PassivateObject(obj); err != nil {
		p.log.Warnf("pool: passivate failed on return: %v", err)
		p.destroy(s)
		p.ensureIdle(1, false)
		return nil
	}

	if !s.Deallocate() {
		return newIllegalStateError("object has already been returned to this pool or is invalid")
	}

	maxIdle := p.Config.MaxIdle
	if p.IsClosed() || (maxIdle > -1 && maxIdle <= p.idleObjects.Size()) {
		p.destroy(s)
		return nil
	}

	if p.Config.Lifo {
		p.idleObjects.AddFirst(s)
	} else {
		p.idleObjects.AddLast(s)
	}
	if p.IsClosed() {
		// Pool closed while this Slot was being enqueued: don't leak it.
		p.Clear()
	}
	return nil
}

// InvalidateObject destroys a borrowed resource unconditionally. Use this
// instead of Return when a client determines, due to an error, that a
// resource is no longer usable.
func (p *Pool) InvalidateObject(obj interface{}) error {
	v := p.allObjects.Get(obj)
	s, ok := v.(*Slot)
	if !ok {
		return newIllegalStateError("invalidated object not currently part of this pool")
	}
	if s.State() != StateInvalid {
		p.destroy(s)
	}
	p.ensureIdle(1, false)
	return nil
}

// Clear destroys every idle resource, releasing their associated
// resources. Allocated resources are unaffected.
func (p *Pool) Clear() {
	for {
		v := p.idleObjects.PollFirst()
		if v == nil {
			return
		}
		p.destroy(v.(*Slot))
	}
}

// IsClosed reports whether Close has been called.
func (p *Pool) IsClosed() bool {
	p.closeLock.Lock()
	defer p.closeLock.Unlock()
	return p.closed
}

// Close closes the pool: it is idempotent, stops the maintenance
// scheduler synchronously, destroys all idle resources, and wakes any
// borrower blocked waiting for one. Subsequent Borrow calls fail with a
// ClosedError; Return still accepts and destroys the resource.
func (p *Pool) Close() {
	p.closeLock.Lock()
	if p.closed {
		p.closeLock.Unlock()
		return
	}
	p.closed = true
	p.closeLock.Unlock()

	// Stop the scheduler before tearing down state: a tick racing Clear
	// would otherwise be able to re-populate the idle deque.
	p.stopMaintenance()

	p.Clear()
	p.idleObjects.InterruptTakeWaiters()
}

// StartEvictor (re)starts the maintenance scheduler using
// Config.TimeBetweenEvictionRunsMillis. Call this after changing that
// field for the change to take effect.
func (p *Pool) StartEvictor() {
	p.startMaintenance(millisDuration(p.Config.TimeBetweenEvictionRunsMillis))
}

// SetTimeBetweenEvictionRunsMillis updates the maintenance period and
// restarts the scheduler. A value <= 0 stops it.
func (p *Pool) SetTimeBetweenEvictionRunsMillis(ms int64) {
	p.Config.TimeBetweenEvictionRunsMillis = ms
	p.StartEvictor()
}

func (p *Pool) startMaintenance(period time.Duration) {
	p.schedulerMu.Lock()
	defer p.schedulerMu.Unlock()
	if p.evictorStop != nil {
		close(p.evictorStop)
		p.evictorWG.Wait()
		p.evictorStop = nil
	}
	if period <= 0 {
		return
	}
	stop := make(chan struct{})
	p.evictorStop = stop
	p.evictorWG.Add(1)
	go func() {
		defer p.evictorWG.Done()
		ticker := time.NewTicker(period)
		defer ticker.Stop()
		for {
			select {
			case <-stop:
				return
			case <-ticker.C:
				p.evict()
				p.ensureMinIdle()
			}
		}
	}()
}

func (p *Pool) stopMaintenance() {
	p.startMaintenance(0)
}

func (p *Pool) getNumTests() int {
	n := p.Config.NumTestsPerEvictionRun
	idle := p.idleObjects.Size()
	if n >= 0 {
		if n < idle {
			return n
		}
		return idle
	}
	return int(math.Ceil(float64(idle) / math.Abs(float64(n))))
}

// evictionIteratorFor returns a fresh iterator over the idle deque in
// drain order: reverse (tail-first) under LIFO, forward under FIFO,
// matching the order borrowers will actually consume it in.
func (p *Pool) evictionIteratorFor() collections.Iterator {
	if p.Config.Lifo {
		return p.idleObjects.DescendingIterator()
	}
	return p.idleObjects.Iterator()
}

func (p *Pool) getMinIdle() int {
	if p.Config.MaxIdle >= 0 && p.Config.MinIdle > p.Config.MaxIdle {
		return p.Config.MaxIdle
	}
	return p.Config.MinIdle
}

// evict runs one maintenance sweep: it examines up to getNumTests() idle
// Slots and destroys those whose idle time exceeds the configured
// thresholds, or validates them in place when TestWhileIdle is set. It is
// serialized by evictionLock, which also protects the persistent iterator
// cursor across ticks (SPEC_FULL.md §4.4/§5).
func (p *Pool) evict() {
	if p.idleObjects.Size() == 0 {
		return
	}

	p.evictionLock.Lock()
	defer p.evictionLock.Unlock()

	evictionConfig := &EvictionConfig{
		IdleEvictTime:     millisOrInf(p.Config.MinEvictableIdleTimeMillis),
		IdleSoftEvictTime: millisOrInf(p.Config.SoftMinEvictableIdleTimeMillis),
		MinIdle:           p.Config.MinIdle,
	}
	testWhileIdle := p.Config.TestWhileIdle

	for i, m := 0, p.getNumTests(); i < m; i++ {
		if p.evictionIterator == nil || !p.evictionIterator.HasNext() {
			p.evictionIterator = p.evictionIteratorFor()
		}
		if !p.evictionIterator.HasNext() {
			return
		}

		v := p.evictionIterator.Next()
		if v == nil {
			// Concurrently borrowed out from under the iterator; don't
			// count it against the budget.
			i--
			p.evictionIterator = nil
			continue
		}
		underTest := v.(*Slot)

		if !underTest.StartEvictionTest() {
			i--
			continue
		}

		if p.evictionPolicy.Evict(evictionConfig, underTest, p.idleObjects.Size()) {
			p.destroy(underTest)
			p.destroyedByEvictorCount.IncrementAndGet()
			continue
		}

		destroyed := false
		if testWhileIdle {
			if err := p.factory.ActivateObject(underTest.Object); err != nil {
				p.destroy(underTest)
				p.destroyedByEvictorCount.IncrementAndGet()
				destroyed = true
			} else {
				ok, verr := p.factory.ValidateObject(underTest.Object)
				if verr != nil || !ok {
					p.destroy(underTest)
					p.destroyedByEvictorCount.IncrementAndGet()
					destroyed = true
				} else if err := p.factory.PassivateObject(underTest.Object); err != nil {
					p.destroy(underTest)
					p.destroyedByEvictorCount.IncrementAndGet()
					destroyed = true
				}
			}
		}

		if destroyed {
			continue
		}

		// No additional states are currently driven into
		// StateValidationTesting (see pooled_object.go), so requeueHead
		// can only come from the eviction-test branch here.
		if ok, requeueHead := underTest.EndEvictionTest(); ok && requeueHead {
			p.idleObjects.AddFirst(underTest)
		}
	}
}

// ensureIdle tops the idle deque up to count resources, creating new ones
// subject to MaxTotal. It gives up as soon as create() fails to produce a
// Slot rather than retrying indefinitely.
func (p *Pool) ensureIdle(count int, always bool) {
	if count < 1 || p.IsClosed() || (!always && !p.idleObjects.HasTakeWaiters()) {
		return
	}
	for p.idleObjects.Size() < count {
		s := p.create()
		if s == nil {
			break
		}
		if p.Config.Lifo {
			p.idleObjects.AddFirst(s)
		} else {
			p.idleObjects.AddLast(s)
		}
	}
	if p.IsClosed() {
		p.Clear()
	}
}

func (p *Pool) ensureMinIdle() {
	p.ensureIdle(p.getMinIdle(), true)
}

// Prefill creates count resources and places them idle in pool. It is
// useful for pre-loading a pool at startup so the first borrowers do not
// pay creation cost.
func Prefill(pool *Pool, count int) {
	for i := 0; i < count; i++ {
		pool.AddObject()
	}
}
