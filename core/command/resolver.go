package command

import (
	"fmt"
	"reflect"
	"sync"
)

// Resolver is the dependency environment the dispatcher consumes. The core
// never assumes a specific container implementation, only these resolution
// capabilities. Env is the default implementation.
type Resolver interface {
	// Resolve returns the most recently registered value for the type, or
	// an error wrapping ErrUnresolved when none is registered.
	Resolve(t reflect.Type) (any, error)

	// TryResolve returns the most recently registered value for the type
	// and whether one was registered.
	TryResolve(t reflect.Type) (any, bool)

	// ResolveAll returns every value registered for the type in
	// registration order.
	ResolveAll(t reflect.Type) []any
}

// Registrar is implemented by environments that accept registrations.
// Middleware registration requires the dispatcher's environment to
// implement it; Env does.
type Registrar interface {
	// Add appends a registration for the type, preserving order.
	Add(t reflect.Type, v any)
}

// Env is a concurrent type-keyed value registry implementing Resolver.
// The zero value is not usable; create with NewEnv.
type Env struct {
	mu     sync.RWMutex
	values map[reflect.Type][]any
}

// NewEnv creates an empty environment.
func NewEnv() *Env {
	return &Env{values: make(map[reflect.Type][]any)}
}

// Set replaces all registrations for the type with a single value.
func (e *Env) Set(t reflect.Type, v any) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.values[t] = []any{v}
}

// Add appends a registration for the type, preserving registration order.
func (e *Env) Add(t reflect.Type, v any) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.values[t] = append(e.values[t], v)
}

// Remove drops all registrations for the type.
func (e *Env) Remove(t reflect.Type) {
	e.mu.Lock()
	defer e.mu.Unlock()
	delete(e.values, t)
}

// Resolve returns the most recently registered value for the type.
func (e *Env) Resolve(t reflect.Type) (any, error) {
	if v, ok := e.TryResolve(t); ok {
		return v, nil
	}
	return nil, fmt.Errorf("%w: %s", ErrUnresolved, t)
}

// TryResolve returns the most recently registered value for the type.
func (e *Env) TryResolve(t reflect.Type) (any, bool) {
	e.mu.RLock()
	defer e.mu.RUnlock()

	vs := e.values[t]
	if len(vs) == 0 {
		return nil, false
	}
	return vs[len(vs)-1], true
}

// ResolveAll returns a copy of every value registered for the type.
func (e *Env) ResolveAll(t reflect.Type) []any {
	e.mu.RLock()
	defer e.mu.RUnlock()

	vs := e.values[t]
	if len(vs) == 0 {
		return nil
	}
	out := make([]any, len(vs))
	copy(out, vs)
	return out
}

// HandlerResolver resolves a handler for a command type at dispatch time,
// ahead of the cached executor. The dispatcher consults it on every call,
// never caching the result, so swapping fakes between calls is observable
// immediately. Production dispatchers have no resolver installed.
type HandlerResolver interface {
	Resolve(commandType reflect.Type) (Handler, bool)
}

// HandlerResolverFunc adapts a function into a HandlerResolver.
type HandlerResolverFunc func(commandType reflect.Type) (Handler, bool)

// Resolve calls f(commandType).
func (f HandlerResolverFunc) Resolve(commandType reflect.Type) (Handler, bool) {
	return f(commandType)
}

// EnvHandlerResolver resolves handlers from an environment keyed by command
// type. Register a fake with env.Set(commandType, handler) and install the
// resolver with WithHandlerResolver to override statically-registered
// handlers per call.
func EnvHandlerResolver(env Resolver) HandlerResolver {
	return HandlerResolverFunc(func(commandType reflect.Type) (Handler, bool) {
		v, ok := env.TryResolve(commandType)
		if !ok {
			return nil, false
		}
		h, ok := v.(Handler)
		return h, ok
	})
}
