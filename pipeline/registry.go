package pipeline

import (
	"fmt"
	"sync"

	"github.com/mensylisir/xmupgrade/step"
)

// Registry holds step factories in registration order.
type Registry struct {
	mu        sync.RWMutex
	order     []step.Step
	factories map[step.Step]Factory
}

func NewRegistry() *Registry {
	return &Registry{factories: make(map[step.Step]Factory)}
}

// Register adds a factory for s. It returns an error if s is already
// registered.
func (r *Registry) Register(s step.Step, factory Factory) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.factories[s]; exists {
		return fmt.Errorf("step '%s' already registered", s)
	}
	r.factories[s] = factory
	r.order = append(r.order, s)
	return nil
}

// Keys returns the registered step identities in registration order.
func (r *Registry) Keys() []step.Step {
	r.mu.RLock()
	defer r.mu.RUnlock()
	keys := make([]step.Step, len(r.order))
	copy(keys, r.order)
	return keys
}

// Build calls every factory in registration order.
func (r *Registry) Build(env Env) []Definition {
	r.mu.RLock()
	defer r.mu.RUnlock()
	defs := make([]Definition, 0, len(r.order))
	for _, s := range r.order {
		defs = append(defs, r.factories[s](env)...)
	}
	return defs
}
