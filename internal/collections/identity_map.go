package collections

import "sync"

// IdentityMap is a concurrent-safe map from a pooled resource to the Slot
// that owns it. Keys are compared with Go's native map equality, which for
// the pointer-shaped resources this pool requires (see SPEC_FULL.md §3,
// "Resource identity across wrappers") coincides with reference identity:
// two distinct *sql.Conn wrappers are never ==, even if they wrap
// byte-identical state. Callers must not register value-typed resources.
type IdentityMap struct {
	mu sync.RWMutex
	m  map[interface{}]interface{}
}

// NewIdentityMap returns an empty map.
func NewIdentityMap() *IdentityMap {
	return &IdentityMap{m: make(map[interface{}]interface{})}
}

// Put registers value under key, replacing any prior entry.
func (i *IdentityMap) Put(key, value interface{}) {
	i.mu.Lock()
	defer i.mu.Unlock()
	i.m[key] = value
}

// Get returns the value registered for key, or nil if absent.
func (i *IdentityMap) Get(key interface{}) interface{} {
	i.mu.RLock()
	defer i.mu.RUnlock()
	return i.m[key]
}

// Remove deletes the entry for key, if any.
func (i *IdentityMap) Remove(key interface{}) {
	i.mu.Lock()
	defer i.mu.Unlock()
	delete(i.m, key)
}

// Size returns the number of registered entries.
func (i *IdentityMap) Size() int {
	i.mu.RLock()
	defer i.mu.RUnlock()
	return len(i.m)
}

// Values returns a snapshot of all registered values in unspecified order.
func (i *IdentityMap) Values() []interface{} {
	i.mu.RLock()
	defer i.mu.RUnlock()
	values := make([]interface{}, 0, len(i.m))
	for _, v := range i.m {
		values = append(values, v)
	}
	return values
}
