package command

import "errors"

var (
	// ErrNoHandler is returned when no handler could be resolved for a
	// command type by any means. It indicates a wiring bug, not a runtime
	// condition, and is never retried internally.
	ErrNoHandler = errors.New("no handler registered for command")

	// ErrNoGenericHandler is returned when a command is an instantiation of
	// a generic family whose open form was never registered.
	ErrNoGenericHandler = errors.New("no generic handler registered for command family")

	// ErrIncompatibleGenericHandler is returned when a registered generic
	// factory produces a handler that does not satisfy the handler contract
	// for the dispatched command and result types.
	ErrIncompatibleGenericHandler = errors.New("registered generic handler is not the correct type")

	// ErrInvalidMiddleware is returned when a middleware registration
	// argument does not satisfy the middleware contract.
	ErrInvalidMiddleware = errors.New("invalid middleware")

	// ErrInvalidGenericCommand is returned when a generic registration is
	// given a prototype that is not an instantiation of a generic type.
	ErrInvalidGenericCommand = errors.New("command type is not a generic instantiation")

	// ErrResultTypeMismatch is returned when the result type requested by
	// the caller differs from the one the resolved handler declares.
	ErrResultTypeMismatch = errors.New("handler result type does not match requested result type")

	// ErrDuplicateHandler is returned when attempting to register a second
	// handler for a command type that already has one.
	ErrDuplicateHandler = errors.New("handler already registered for command")

	// ErrUnresolved is returned by an environment when no value is
	// registered for the requested type.
	ErrUnresolved = errors.New("no value registered for type")

	// ErrBufferFull is returned by the channel transport when the command
	// buffer is full and the command cannot be enqueued.
	ErrBufferFull = errors.New("command buffer is full")

	// ErrTransportClosed is returned when dispatching through a transport
	// that has been stopped.
	ErrTransportClosed = errors.New("transport is closed")
)
