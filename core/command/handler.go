package command

import (
	"context"
	"fmt"
	"reflect"
)

// Handler is the contract every command handler satisfies. Each handler is
// bound to exactly one command type and declares the result type it
// produces (Void for fire-and-forget commands).
//
// Typed handlers are built with NewHandlerFunc and NewResultHandlerFunc;
// the interface exists so the dispatcher can route untyped payloads without
// knowing the concrete command or result types.
type Handler interface {
	// CommandName returns the human-readable name of the command this
	// handler processes, used for logging and async transport routing.
	CommandName() string

	// CommandType returns the command type this handler is bound to.
	// It is the registry key for the handler's definition.
	CommandType() reflect.Type

	// ResultType returns the declared result type, or the Void type for
	// handlers that produce no value.
	ResultType() reflect.Type

	// Handle executes the handler's business logic. The payload must be of
	// the command type this handler declares.
	Handle(ctx context.Context, payload any) (any, error)
}

var voidType = reflect.TypeOf(Void{})

// HandlerFunc adapts a typed function into a Handler for commands that
// produce no result.
type HandlerFunc[C any] struct {
	name    string
	cmdType reflect.Type
	fn      func(context.Context, C) error
}

// NewHandlerFunc creates a type-safe handler for a fire-and-forget command.
// The command name is derived from the type C.
//
// Example:
//
//	type CreateUser struct {
//	    Email string
//	    Name  string
//	}
//
//	handler := command.NewHandlerFunc(func(ctx context.Context, cmd CreateUser) error {
//	    return db.Insert(ctx, cmd.Email, cmd.Name)
//	})
func NewHandlerFunc[C any](fn func(context.Context, C) error) Handler {
	cmdType := reflect.TypeOf((*C)(nil)).Elem()
	return &HandlerFunc[C]{
		name:    getCommandName(cmdType),
		cmdType: cmdType,
		fn:      fn,
	}
}

// CommandName returns the command name this handler processes.
func (h *HandlerFunc[C]) CommandName() string { return h.name }

// CommandType returns the command type this handler is bound to.
func (h *HandlerFunc[C]) CommandType() reflect.Type { return h.cmdType }

// ResultType returns the Void sentinel type.
func (h *HandlerFunc[C]) ResultType() reflect.Type { return voidType }

// Handle executes the handler. The payload must be of type C.
func (h *HandlerFunc[C]) Handle(ctx context.Context, payload any) (any, error) {
	cmd, ok := payload.(C)
	if !ok {
		return nil, fmt.Errorf("invalid payload type: expected %s, got %T", h.name, payload)
	}
	return Void{}, h.fn(ctx, cmd)
}

// ResultHandlerFunc adapts a typed function into a Handler for commands
// that produce a result of type R.
type ResultHandlerFunc[C any, R any] struct {
	name       string
	cmdType    reflect.Type
	resultType reflect.Type
	fn         func(context.Context, C) (R, error)
}

// NewResultHandlerFunc creates a type-safe handler for a result-bearing
// command. The result is retrieved with Execute.
//
// Example:
//
//	type Greet struct {
//	    Name string
//	}
//
//	handler := command.NewResultHandlerFunc(func(ctx context.Context, cmd Greet) (string, error) {
//	    return "Hello, " + cmd.Name, nil
//	})
func NewResultHandlerFunc[C any, R any](fn func(context.Context, C) (R, error)) Handler {
	cmdType := reflect.TypeOf((*C)(nil)).Elem()
	return &ResultHandlerFunc[C, R]{
		name:       getCommandName(cmdType),
		cmdType:    cmdType,
		resultType: reflect.TypeOf((*R)(nil)).Elem(),
		fn:         fn,
	}
}

// CommandName returns the command name this handler processes.
func (h *ResultHandlerFunc[C, R]) CommandName() string { return h.name }

// CommandType returns the command type this handler is bound to.
func (h *ResultHandlerFunc[C, R]) CommandType() reflect.Type { return h.cmdType }

// ResultType returns the declared result type R.
func (h *ResultHandlerFunc[C, R]) ResultType() reflect.Type { return h.resultType }

// Handle executes the handler. The payload must be of type C.
func (h *ResultHandlerFunc[C, R]) Handle(ctx context.Context, payload any) (any, error) {
	cmd, ok := payload.(C)
	if !ok {
		return nil, fmt.Errorf("invalid payload type: expected %s, got %T", h.name, payload)
	}
	return h.fn(ctx, cmd)
}
