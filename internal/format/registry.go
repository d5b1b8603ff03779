package format

import (
	"fmt"
	"sort"
	"sync"

	"github.com/agentsync/agsync/internal/canonical"
)

// Registry holds one adapter per named format and resolves names or file
// paths to adapters. It performs no sync logic; it is a pure lookup and
// validation layer.
//
// A Registry is constructed at the start of a run and passed down
// explicitly. There is no package-level singleton.
type Registry struct {
	mu       sync.RWMutex
	adapters map[string]Adapter
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{adapters: make(map[string]Adapter)}
}

// Register adds an adapter under its Name().
// Panics on a nil adapter or a duplicate name; both indicate a wiring bug.
func (r *Registry) Register(a Adapter) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if a == nil {
		panic("format: Register called with nil adapter")
	}
	name := a.Name()
	if _, exists := r.adapters[name]; exists {
		panic(fmt.Sprintf("format: Register called twice for format %q", name))
	}
	r.adapters[name] = a
}

// Resolve returns the adapter registered under name.
func (r *Registry) Resolve(name string) (Adapter, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	a, ok := r.adapters[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q (registered: %v)", ErrUnknownFormat, name, r.namesLocked())
	}
	return a, nil
}

// Detect finds the adapter whose path predicate claims the given path.
// Exactly one adapter must match; zero matches yields ErrNoFormatDetected
// and multiple matches yields ErrAmbiguousFormat.
func (r *Registry) Detect(path string) (Adapter, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var matches []Adapter
	for _, name := range r.namesLocked() {
		a := r.adapters[name]
		if a.CanHandle(path) {
			matches = append(matches, a)
		}
	}

	switch len(matches) {
	case 0:
		return nil, fmt.Errorf("%w: %s", ErrNoFormatDetected, path)
	case 1:
		return matches[0], nil
	default:
		names := make([]string, len(matches))
		for i, a := range matches {
			names[i] = a.Name()
		}
		return nil, fmt.Errorf("%w: %s matches %v", ErrAmbiguousFormat, path, names)
	}
}

// Supports reports whether the named format can represent the record kind.
// Returns false for unregistered names.
func (r *Registry) Supports(name string, kind canonical.Kind) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	a, ok := r.adapters[name]
	return ok && a.Supports(kind)
}

// Names returns the registered format names in sorted order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.namesLocked()
}

// namesLocked returns sorted names; callers must hold at least a read lock.
func (r *Registry) namesLocked() []string {
	names := make([]string, 0, len(r.adapters))
	for name := range r.adapters {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
