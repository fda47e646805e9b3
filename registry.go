package rx

import (
	"errors"
	"fmt"
	"sort"
	"sync"
)

// Factory creates a RenderContext bound to win.
// Implementations return ErrUnsupportedWindow for handle kinds they cannot
// bind to, so that New can fall through to the next backend.
type Factory func(win Window, cfg Config) (RenderContext, error)

// Backend is a registered rendering engine.
type Backend struct {
	// Name is the unique identifier for this backend.
	Name string

	// Priority determines selection order (higher = preferred).
	// Standard priorities:
	//   - 100: platform-native engines (Direct2D)
	//   - 50: system 2D libraries (Cairo)
	//   - 10: pure Go rendering
	Priority int

	// Factory creates contexts.
	Factory Factory

	// Available reports if the backend can run on this system.
	Available func() bool
}

var defaultRegistry = &Registry{}

// Registry manages registered backends.
//
// Backends register themselves from init functions:
//
//	func init() {
//	    rx.Register("cairo", 50, newContext, available)
//	}
//
// Registry is safe for concurrent use.
type Registry struct {
	mu      sync.RWMutex
	entries map[string]*Backend
}

// NewRegistry creates a new empty registry.
// Most code should use the default registry via Register and New.
func NewRegistry() *Registry {
	return &Registry{
		entries: make(map[string]*Backend),
	}
}

// Register adds a backend to the default registry.
// If available is nil, the backend is assumed always available.
// Registering a name that already exists replaces the previous entry.
func Register(name string, priority int, factory Factory, available func() bool) {
	defaultRegistry.Register(name, priority, factory, available)
}

// Unregister removes a backend from the default registry.
func Unregister(name string) {
	defaultRegistry.Unregister(name)
}

// Backends returns all registered backend names sorted by priority
// (highest first).
func Backends() []string {
	return defaultRegistry.List()
}

// AvailableBackends returns names of all available backends sorted by
// priority.
func AvailableBackends() []string {
	return defaultRegistry.Available()
}

// New creates a RenderContext for win using the default registry.
//
// When a backend is named (WithBackend or RX_BACKEND) only that backend is
// tried. Otherwise every available backend is tried in priority order and
// the first one that binds to the window wins. If none does, the returned
// error joins ErrNoBackend with each backend's failure.
func New(win Window, opts ...Option) (RenderContext, error) {
	return defaultRegistry.New(win, opts...)
}

// Register adds a backend to this registry.
func (r *Registry) Register(name string, priority int, factory Factory, available func() bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.entries == nil {
		r.entries = make(map[string]*Backend)
	}
	if available == nil {
		available = func() bool { return true }
	}

	r.entries[name] = &Backend{
		Name:      name,
		Priority:  priority,
		Factory:   factory,
		Available: available,
	}
}

// Unregister removes a backend from this registry.
func (r *Registry) Unregister(name string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.entries, name)
}

// List returns all registered backend names sorted by priority.
func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.sortedNames(false)
}

// Available returns names of all available backends sorted by priority.
func (r *Registry) Available() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.sortedNames(true)
}

// Get returns a copy of the named backend's registration.
func (r *Registry) Get(name string) (*Backend, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	entry, ok := r.entries[name]
	if !ok {
		return nil, false
	}
	entryCopy := *entry
	return &entryCopy, true
}

// New creates a RenderContext for win using this registry.
func (r *Registry) New(win Window, opts ...Option) (RenderContext, error) {
	if win == nil {
		return nil, fmt.Errorf("rx: nil window: %w", ErrUnsupportedWindow)
	}
	cfg := NewConfig(opts...)
	log := Logger()

	if cfg.Backend != "" {
		rc, err := r.NewByName(cfg.Backend, win, cfg)
		if err != nil {
			return nil, err
		}
		log.Info("rx: backend selected", "backend", cfg.Backend, "window", win.Handle().Kind)
		return rc, nil
	}

	r.mu.RLock()
	names := r.sortedNames(true)
	r.mu.RUnlock()

	if len(names) == 0 {
		return nil, ErrNoBackend
	}

	errs := []error{ErrNoBackend}
	for _, name := range names {
		rc, err := r.NewByName(name, win, cfg)
		if err == nil {
			log.Info("rx: backend selected", "backend", name, "window", win.Handle().Kind)
			return rc, nil
		}
		log.Warn("rx: backend failed, falling back", "backend", name, "err", err)
		errs = append(errs, fmt.Errorf("%s: %w", name, err))
	}
	return nil, errors.Join(errs...)
}

// NewByName creates a RenderContext using a specific backend.
func (r *Registry) NewByName(name string, win Window, cfg Config) (RenderContext, error) {
	r.mu.RLock()
	entry, ok := r.entries[name]
	r.mu.RUnlock()

	if !ok {
		return nil, &BackendNotFoundError{Name: name}
	}
	if !entry.Available() {
		return nil, &BackendUnavailableError{Name: name}
	}
	return entry.Factory(win, cfg)
}

// sortedNames returns backend names sorted by priority (highest first), ties
// broken by name. Must be called with lock held.
func (r *Registry) sortedNames(onlyAvailable bool) []string {
	if len(r.entries) == 0 {
		return nil
	}

	entries := make([]*Backend, 0, len(r.entries))
	for _, e := range r.entries {
		if onlyAvailable && !e.Available() {
			continue
		}
		entries = append(entries, e)
	}

	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Priority != entries[j].Priority {
			return entries[i].Priority > entries[j].Priority
		}
		return entries[i].Name < entries[j].Name
	})

	names := make([]string, len(entries))
	for i, e := range entries {
		names[i] = e.Name
	}
	return names
}
