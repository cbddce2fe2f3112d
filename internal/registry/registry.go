// Package registry provides lazy single-flight construction of shared
// components. Handlers hold a reference to one Registry instead of a
// process-global cache, so construction happens at most once per key
// even under concurrent first requests.
package registry

import (
	"sort"
	"sync"
)

type entry struct {
	once  sync.Once
	value interface{}
	built bool
}

// Registry maps names to lazily constructed singletons.
type Registry struct {
	mu      sync.Mutex
	entries map[string]*entry
}

// New creates an empty registry.
func New() *Registry {
	return &Registry{entries: make(map[string]*entry)}
}

// Get returns the value registered under name, constructing it with
// build on first access. Concurrent callers for the same key block until
// the single construction completes.
func (r *Registry) Get(name string, build func() interface{}) interface{} {
	r.mu.Lock()
	e, ok := r.entries[name]
	if !ok {
		e = &entry{}
		r.entries[name] = e
	}
	r.mu.Unlock()

	e.once.Do(func() {
		e.value = build()
		r.mu.Lock()
		e.built = true
		r.mu.Unlock()
	})
	return e.value
}

// Built lists the names whose values have been constructed, sorted.
func (r *Registry) Built() []string {
	r.mu.Lock()
	defer r.mu.Unlock()

	var names []string
	for name, e := range r.entries {
		if e.built {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}
