package modules

import (
	"sort"
	"sync"

	"emperror.dev/errors"
	"github.com/apex/log"
)

// ErrNotFound is returned when a module key or ID does not resolve to a
// registered module.
var ErrNotFound = errors.New("module not found")

// IsNotFound reports whether err stems from a failed module lookup.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// Registry holds the static module descriptors of the host application. It is
// populated once during boot and read-only afterwards.
type Registry struct {
	mu      sync.RWMutex
	modules map[string]*Descriptor
	ids     map[string]string // human-facing ID -> module key
}

// NewRegistry creates an empty module registry.
func NewRegistry() *Registry {
	return &Registry{
		modules: make(map[string]*Descriptor),
		ids:     make(map[string]string),
	}
}

// Register registers a module descriptor with the registry.
func (r *Registry) Register(d *Descriptor) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.modules[d.Key]; exists {
		return errors.Errorf("module %s is already registered", d.Key)
	}
	id := d.ID()
	if other, exists := r.ids[id]; exists {
		return errors.Errorf("module %s derives the same ID %q as %s", d.Key, id, other)
	}

	r.modules[d.Key] = d
	r.ids[id] = d.Key
	log.WithField("module", d.Key).Debug("module registered")
	return nil
}

// Get retrieves a module descriptor by its internal key.
func (r *Registry) Get(key string) (*Descriptor, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	d, exists := r.modules[key]
	return d, exists
}

// ResolveID resolves a human-facing module ID to its descriptor.
func (r *Registry) ResolveID(id string) (*Descriptor, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	key, exists := r.ids[id]
	if !exists {
		return nil, errors.WithMessagef(ErrNotFound, "no module with ID %q", id)
	}
	return r.modules[key], nil
}

// List returns all registered module descriptors ordered by key.
func (r *Registry) List() []*Descriptor {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]*Descriptor, 0, len(r.modules))
	for _, d := range r.modules {
		result = append(result, d)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].Key < result[j].Key
	})
	return result
}

// Len returns the number of registered modules.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.modules)
}
