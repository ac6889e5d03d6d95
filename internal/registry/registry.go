// Package registry is a type-keyed container binding each capability
// interface to one implementation instance.
package registry

import (
	"fmt"
	"log/slog"
	"reflect"
	"sort"
	"sync"

	"github.com/mcoot/protocasual/internal/model"
)

// Registry maps capability types to instances. It is owned by the composition
// root and passed explicitly; there is no package-level instance.
type Registry struct {
	mu       sync.RWMutex
	services map[reflect.Type]any
	logger   *slog.Logger
}

// New creates an empty Registry
func New(logger *slog.Logger) *Registry {
	return &Registry{
		services: make(map[reflect.Type]any),
		logger:   logger.With(slog.String("component", "registry")),
	}
}

// Initialize clears all registrations
func (r *Registry) Initialize() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.services = make(map[reflect.Type]any)
}

// Len returns the number of bound capabilities
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.services)
}

// Names lists bound capability type names, sorted
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.services))
	for t := range r.services {
		names = append(names, t.String())
	}
	sort.Strings(names)
	return names
}

// Register binds instance to capability T. An existing binding is replaced with a warning.
func Register[T any](r *Registry, instance T) {
	t := reflect.TypeFor[T]()
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.services[t]; exists {
		r.logger.Warn("overwriting registered service", slog.String("capability", t.String()))
	}
	r.services[t] = instance
}

// Get returns the instance bound to T, or an error wrapping model.ErrServiceNotRegistered
func Get[T any](r *Registry) (T, error) {
	t := reflect.TypeFor[T]()
	r.mu.RLock()
	v, ok := r.services[t]
	r.mu.RUnlock()
	if !ok {
		var zero T
		r.logger.Error("service not registered", slog.String("capability", t.String()))
		return zero, fmt.Errorf("%w: %s", model.ErrServiceNotRegistered, t)
	}
	return v.(T), nil
}

// MustGet is Get for bootstrap code that treats absence as a programming error
func MustGet[T any](r *Registry) T {
	v, err := Get[T](r)
	if err != nil {
		panic(err)
	}
	return v
}

// IsRegistered reports whether T is bound
func IsRegistered[T any](r *Registry) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.services[reflect.TypeFor[T]()]
	return ok
}

// Unregister removes the binding for T, if any
func Unregister[T any](r *Registry) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.services, reflect.TypeFor[T]())
}
