// Package command provides an in-process command dispatcher that routes a
// typed command value to exactly one handler, resolved and cached by
// command type, with an ordered middleware pipeline, lazy per-type executor
// construction, generic command families closed at first use, and direct
// test-time handler substitution.
//
// Commands represent intent: CreateUser, GenerateThumbnail, SendEmail.
// Each command type maps to exactly one handler, and a missing handler is
// an error, not a silent drop.
//
// # Core Concepts
//
//   - A command is identified solely by its runtime type. Different
//     concrete types are distinct registry entries even when they share an
//     interface.
//   - Fire-and-forget commands and result-bearing commands share one
//     resolution path; the former declare the Void sentinel result type.
//   - Each command type's definition lazily builds an executor: the handler
//     wrapped in the middleware chain, composed once and cached.
//   - Generic command families (e.g. Batch[T]) are registered once as a
//     factory; each instantiation is closed and cached on first dispatch.
//   - Fakes can replace real handlers either permanently
//     (RegisterForTesting) or per call (WithHandlerResolver).
//
// # Quick Start
//
// Basic synchronous command execution:
//
//	import "github.com/kylelaverty/FastEndpoints/core/command"
//
//	type CreateUser struct {
//	    Email string
//	    Name  string
//	}
//
//	func createUserHandler(ctx context.Context, cmd CreateUser) error {
//	    return db.Insert(ctx, cmd.Email, cmd.Name)
//	}
//
//	dispatcher := command.NewDispatcher()
//	dispatcher.Register(command.NewHandlerFunc(createUserHandler))
//
//	err := dispatcher.Dispatch(ctx, CreateUser{
//	    Email: "user@example.com",
//	    Name:  "John Doe",
//	})
//
// Result-bearing commands use Execute:
//
//	type Greet struct {
//	    Name string
//	}
//
//	dispatcher.Register(command.NewResultHandlerFunc(
//	    func(ctx context.Context, cmd Greet) (string, error) {
//	        return "Hello, " + cmd.Name, nil
//	    },
//	))
//
//	greeting, err := command.Execute[string](ctx, dispatcher, Greet{Name: "Ada"})
//
// # Middleware
//
// Middleware wraps handler invocation in registration order: the first
// registered middleware executes first on the way in and last on the way
// out, and the handler's business logic is always innermost.
//
//	dispatcher := command.NewDispatcher(
//	    command.WithMiddleware(
//	        command.LoggingMiddleware(log), // outermost
//	        metricsMiddleware,              // wraps the handler
//	    ),
//	)
//
// Middleware composition happens when a command type's executor is built,
// on its first dispatch. Register all middleware before dispatching.
//
// # Generic Command Families
//
// An open generic command family is registered once with a factory that
// produces the handler for each instantiation. The factory runs on the
// first dispatch of each distinct instantiation; the closed definition is
// cached so later dispatches skip it.
//
//	type Import[T any] struct {
//	    Rows []T
//	}
//
//	dispatcher.RegisterGeneric(Import[any]{}, func(t reflect.Type) (command.Handler, error) {
//	    switch t {
//	    case reflect.TypeOf(Import[User]{}):
//	        return command.NewHandlerFunc(importUsers), nil
//	    case reflect.TypeOf(Import[Order]{}):
//	        return command.NewHandlerFunc(importOrders), nil
//	    }
//	    return nil, fmt.Errorf("no importer for %s", t)
//	})
//
// Dispatching an instantiation whose family was never registered fails
// with ErrNoGenericHandler; a factory result that does not satisfy the
// contract for the dispatched command fails with
// ErrIncompatibleGenericHandler. Both surface synchronously, before any
// middleware runs.
//
// # Test Substitution
//
// RegisterForTesting overwrites a command type's registry entry with a
// fake, pre-wrapped in the current middleware:
//
//	dispatcher.RegisterForTesting(command.NewResultHandlerFunc(
//	    func(ctx context.Context, cmd Greet) (string, error) {
//	        return "stubbed", nil
//	    },
//	))
//
// For per-call overrides that can be swapped between dispatches, install a
// HandlerResolver; it is consulted on every call and never cached:
//
//	env := command.NewEnv()
//	dispatcher := command.NewDispatcher(
//	    command.WithEnvironment(env),
//	    command.WithHandlerResolver(command.EnvHandlerResolver(env)),
//	)
//	env.Set(reflect.TypeOf(Greet{}), fakeHandler)
//
// # Transports
//
// The sync transport (default) runs the handler in the caller's goroutine
// and returns its error directly. The channel transport enqueues
// fire-and-forget commands to a buffered channel processed by worker
// goroutines; handler errors go to the WithErrorHandler callback.
// Configuration errors surface synchronously on both. Call Stop for
// graceful shutdown of the channel transport.
//
//	dispatcher := command.NewDispatcher(
//	    command.WithChannelTransport(command.ChannelConfig{BufferSize: 100, Workers: 5}),
//	    command.WithErrorHandler(logFailure),
//	)
//	defer dispatcher.Stop()
//
// # Error Handling
//
// Resolution failures are configuration errors and are returned to the
// caller before any middleware runs: ErrNoHandler, ErrNoGenericHandler,
// ErrIncompatibleGenericHandler, ErrResultTypeMismatch, and
// ErrInvalidMiddleware at registration time. Errors returned by handlers
// or middleware, including context cancellation, propagate to the caller
// completely unmodified; the dispatcher performs no translation, wrapping,
// retries, or fallback.
//
// # Concurrency
//
// Any number of dispatches may be in flight concurrently. The registry is
// the only shared mutable state; it supports concurrent read, insert, and
// overwrite without external locking, and a reader never observes a
// partially-constructed definition. Two callers racing on a cold command
// type may both build an executor (or close a generic definition); the
// redundant work is tolerated and the overwrite is idempotent, which is
// sound because construction only composes function values.
package command
