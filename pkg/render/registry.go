package render

import (
	"errors"
	"fmt"
	"sync"
)

// ErrRendererNotFound reports a lookup for a name nothing registered.
var ErrRendererNotFound = errors.New("render: renderer not found")

// Registry holds page renderers in registration order. The first one
// registered is the default.
type Registry struct {
	mu        sync.RWMutex
	renderers []Renderer
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{}
}

// Register adds renderer under its Name. Names must be unique.
func (r *Registry) Register(renderer Renderer) error {
	if renderer == nil || renderer.Name() == "" {
		return errors.New("render: renderer with a name is required")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.renderers {
		if existing.Name() == renderer.Name() {
			return fmt.Errorf("render: renderer %q already registered", renderer.Name())
		}
	}
	r.renderers = append(r.renderers, renderer)
	return nil
}

// MustRegister is Register for init-time wiring.
func (r *Registry) MustRegister(renderer Renderer) {
	if err := r.Register(renderer); err != nil {
		panic(err)
	}
}

// Get returns the renderer registered as name.
func (r *Registry) Get(name string) (Renderer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, renderer := range r.renderers {
		if renderer.Name() == name {
			return renderer, nil
		}
	}
	return nil, fmt.Errorf("%w: %q", ErrRendererNotFound, name)
}

// Default returns the first registered renderer.
func (r *Registry) Default() (Renderer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if len(r.renderers) == 0 {
		return nil, fmt.Errorf("%w: none registered", ErrRendererNotFound)
	}
	return r.renderers[0], nil
}
