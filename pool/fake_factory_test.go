package pool

import (
	"errors"
	"sync"
)

// fakeResource is a heap-allocated handle so map/deque identity semantics
// hold, per SPEC_FULL.md §3.
type fakeResource struct {
	id int
}

// fakeFactory is a configurable Factory double used across the
// pool package's tests.
type fakeFactory struct {
	mu sync.Mutex

	nextID int

	failMake      bool
	failActivate  bool
	failPassivate bool
	failDestroy   bool
	validateFunc  func(*fakeResource) bool

	destroyed []int
	made      []int
}

func newFakeFactory() *fakeFactory {
	return &fakeFactory{validateFunc: func(*fakeResource) bool { return true }}
}

func (f *fakeFactory) MakeObject() (interface{}, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failMake {
		return nil, errors.New("fakeFactory: make failed")
	}
	f.nextID++
	r := &fakeResource{id: f.nextID}
	f.made = append(f.made, r.id)
	return r, nil
}

func (f *fakeFactory) DestroyObject(obj interface{}) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.destroyed = append(f.destroyed, obj.(*fakeResource).id)
	if f.failDestroy {
		return errors.New("fakeFactory: destroy failed")
	}
	return nil
}

func (f *fakeFactory) ValidateObject(obj interface{}) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.validateFunc(obj.(*fakeResource)), nil
}

func (f *fakeFactory) ActivateObject(obj interface{}) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failActivate {
		return errors.New("fakeFactory: activate failed")
	}
	return nil
}

func (f *fakeFactory) PassivateObject(obj interface{}) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failPassivate {
		return errors.New("fakeFactory: passivate failed")
	}
	return nil
}

func (f *fakeFactory) destroyCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.destroyed)
}
