package command

import (
	"fmt"
	"reflect"
)

// GenericFactory produces the handler for one instantiation of a generic
// command family. The factory receives the closed command type and must
// return a handler declaring exactly that command type; the dispatcher
// validates the result before caching it.
//
// Go has no runtime instantiation of generic types, so open-generic handler
// registration is expressed as a factory per family rather than a type
// template: the factory is invoked once per distinct instantiation, on
// first dispatch, and the closed definition is memoized in the registry.
type GenericFactory func(commandType reflect.Type) (Handler, error)

// RegisterGeneric registers a handler factory for the generic command
// family the prototype belongs to. The prototype may be any instantiation
// of the family; only its family identity (package path and base type name)
// is used. Registration is one-time configuration made before dispatch
// begins; the last registration for a family wins.
//
// Example:
//
//	type Batch[T any] struct {
//	    Items []T
//	}
//
//	err := dispatcher.RegisterGeneric(Batch[int]{}, func(t reflect.Type) (command.Handler, error) {
//	    switch t {
//	    case reflect.TypeOf(Batch[int]{}):
//	        return command.NewHandlerFunc(handleIntBatch), nil
//	    case reflect.TypeOf(Batch[string]{}):
//	        return command.NewHandlerFunc(handleStringBatch), nil
//	    }
//	    return nil, fmt.Errorf("unsupported batch type %s", t)
//	})
func (d *Dispatcher) RegisterGeneric(prototype any, factory GenericFactory) error {
	t := reflect.TypeOf(prototype)
	if t == nil {
		return fmt.Errorf("%w: <nil>", ErrInvalidGenericCommand)
	}

	key, ok := genericFamilyKey(t)
	if !ok {
		return fmt.Errorf("%w: %s", ErrInvalidGenericCommand, t)
	}
	if factory == nil {
		return fmt.Errorf("%w: nil factory for %s", ErrInvalidGenericCommand, t)
	}

	d.reg.setFamily(key, factory)
	return nil
}

// closeGeneric resolves a definition for a previously-unseen instantiation
// of a generic command family: it looks up the family's factory, produces
// the closed handler, validates it against the contract for the requested
// result type, and caches the definition under the closed command type so
// subsequent dispatches skip this path entirely.
//
// Two concurrent first-time dispatches of the same instantiation may both
// perform the closing work; both produce equivalent definitions and the
// last write wins.
func (d *Dispatcher) closeGeneric(cmdType reflect.Type, want reflect.Type) (*definition, error) {
	key, ok := genericFamilyKey(cmdType)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNoHandler, cmdType)
	}

	factory, ok := d.reg.family(key)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNoGenericHandler, cmdType)
	}

	handler, err := factory(cmdType)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrIncompatibleGenericHandler, cmdType, err)
	}
	if handler == nil || handler.CommandType() != cmdType {
		return nil, fmt.Errorf("%w: %s", ErrIncompatibleGenericHandler, cmdType)
	}
	if handler.ResultType() != want {
		return nil, fmt.Errorf("%w: %s: handler declares result %s, requested %s",
			ErrIncompatibleGenericHandler, cmdType, handler.ResultType(), want)
	}

	def := newDefinition(handler)
	d.reg.set(cmdType, def)
	return def, nil
}
