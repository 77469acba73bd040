package storcli

import "sync"

// Registry hands out StorCLI instances. In singleton mode every New after
// the first returns the same instance, so all holders share its cache and
// its run lock. Outside singleton mode every New builds an independent
// instance.
//
// Disabling singleton mode keeps the retained instance; enabling it again
// reuses that instance. Reset drops it.
type Registry struct {
	mu       sync.Mutex
	enabled  bool
	instance *StorCLI
}

// NewRegistry creates an empty registry with singleton mode disabled.
func NewRegistry() *Registry {
	return &Registry{}
}

// EnableSingleton turns singleton mode on.
func (r *Registry) EnableSingleton() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.enabled = true
}

// DisableSingleton turns singleton mode off.
func (r *Registry) DisableSingleton() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.enabled = false
}

// IsSingleton reports whether singleton mode is on.
func (r *Registry) IsSingleton() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.enabled
}

// Reset forgets the retained singleton instance.
func (r *Registry) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.instance = nil
}

// New returns a StorCLI. In singleton mode the options only take effect
// when the shared instance is first created; later options are ignored.
func (r *Registry) New(opts ...Option) (*StorCLI, error) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if !r.enabled {
		return newStorCLI(o)
	}
	if r.instance != nil {
		return r.instance, nil
	}

	s, err := newStorCLI(o)
	if err != nil {
		return nil, err
	}
	r.instance = s
	return s, nil
}

var defaultRegistry = NewRegistry()

// DefaultRegistry returns the process-wide registry used by the package
// level functions.
func DefaultRegistry() *Registry { return defaultRegistry }

// New returns a StorCLI from the default registry.
func New(opts ...Option) (*StorCLI, error) {
	return defaultRegistry.New(opts...)
}

// EnableSingleton turns singleton mode on for the default registry.
func EnableSingleton() { defaultRegistry.EnableSingleton() }

// DisableSingleton turns singleton mode off for the default registry.
func DisableSingleton() { defaultRegistry.DisableSingleton() }

// IsSingleton reports whether the default registry is in singleton mode.
func IsSingleton() bool { return defaultRegistry.IsSingleton() }
