package command

import (
	"context"
	"fmt"
	"log/slog"
	"reflect"
)

// Dispatcher is the central component that routes commands to their
// handlers. Each distinct command type resolves to exactly one handler,
// cached as a definition in the dispatcher's registry; definitions lazily
// build a middleware-composed executor on first dispatch.
//
// A Dispatcher is an explicit context object rather than process-global
// state: construct one at startup and thread it through, which also gives
// tests isolated registries.
//
// Example:
//
//	dispatcher := command.NewDispatcher(
//	    command.WithLogger(log),
//	    command.WithMiddleware(command.LoggingMiddleware(log)),
//	)
//	dispatcher.Register(command.NewHandlerFunc(createUserHandler))
//	err := dispatcher.Dispatch(ctx, CreateUser{Email: "user@example.com"})
type Dispatcher struct {
	reg          registry
	env          Resolver
	override     HandlerResolver
	transport    Transport
	errorHandler func(context.Context, string, error)
	logger       *slog.Logger
}

// NewDispatcher creates a new command dispatcher with the given options.
// If no transport is specified, WithSyncTransport() is used by default.
// Handlers, middleware, and generic families are one-time configuration:
// register them before dispatch begins.
func NewDispatcher(opts ...Option) *Dispatcher {
	d := &Dispatcher{
		logger: slog.Default(),
	}

	// Apply options
	for _, opt := range opts {
		opt(d)
	}

	if d.env == nil {
		d.env = NewEnv()
	}
	if d.transport == nil {
		d.transport = newSyncTransport(d)
	}

	return d
}

// Register registers handlers by their command types.
// Panics if a handler is already registered for a command type, since a
// duplicate registration is a startup wiring bug.
//
// Example:
//
//	dispatcher.Register(
//	    command.NewHandlerFunc(createUserHandler),
//	    command.NewResultHandlerFunc(greetHandler),
//	)
func (d *Dispatcher) Register(handlers ...Handler) {
	for _, h := range handlers {
		if h == nil {
			panic("command: register called with nil handler")
		}
		if _, exists := d.reg.getOrAdd(h.CommandType(), newDefinition(h)); exists {
			panic(fmt.Sprintf("%s: %s", ErrDuplicateHandler, h.CommandName()))
		}
	}
}

// Use registers middleware into the dependency environment, preserving
// call-order = registration-order: middleware registered first wraps
// (executes before and after) middleware registered later, and the
// handler's business logic is always innermost.
//
// Returns an error wrapping ErrInvalidMiddleware naming the offending
// position if any argument is nil. Middleware must be registered before the
// first dispatch of a command for it to apply to that command's executor.
func (d *Dispatcher) Use(middleware ...Middleware) error {
	for i, mw := range middleware {
		if mw == nil {
			return fmt.Errorf("%w: middleware at position %d is nil", ErrInvalidMiddleware, i)
		}
	}

	reg, ok := d.env.(Registrar)
	if !ok {
		return fmt.Errorf("%w: environment %T does not accept registrations", ErrInvalidMiddleware, d.env)
	}
	for _, mw := range middleware {
		reg.Add(middlewareType, mw)
	}
	return nil
}

// Dispatch sends a fire-and-forget command for execution via the configured
// transport.
//
// For the sync transport it blocks until the handler completes and returns
// the handler's error unmodified. For the channel transport it returns
// after enqueueing; handler errors go to the error handler callback.
// Resolution failures (ErrNoHandler, ErrNoGenericHandler,
// ErrIncompatibleGenericHandler) surface synchronously on both transports.
func (d *Dispatcher) Dispatch(ctx context.Context, cmd any) error {
	return d.transport.Dispatch(ctx, cmd)
}

// Execute dispatches a result-bearing command synchronously and returns the
// handler's result. The requested result type R must match the type the
// resolved handler declares, otherwise ErrResultTypeMismatch is returned
// before any handler code runs.
//
// Execute is a package-level function because Go methods cannot introduce
// type parameters.
//
// Example:
//
//	greeting, err := command.Execute[string](ctx, dispatcher, Greet{Name: "Ada"})
func Execute[R any](ctx context.Context, d *Dispatcher, cmd any) (R, error) {
	var zero R

	result, err := d.execute(ctx, cmd, reflect.TypeOf((*R)(nil)).Elem())
	if err != nil {
		return zero, err
	}

	out, ok := result.(R)
	if !ok {
		if result == nil {
			return zero, nil
		}
		return zero, fmt.Errorf("%w: handler returned %T", ErrResultTypeMismatch, result)
	}
	return out, nil
}

// Stop gracefully shuts down the dispatcher's transport.
// For the channel transport this drains in-flight commands and waits for
// workers to finish. For the sync transport it is a no-op.
func (d *Dispatcher) Stop() {
	type stopper interface {
		Stop()
	}

	if s, ok := d.transport.(stopper); ok {
		s.Stop()
	}
}

// execute is the single resolution and invocation path shared by the
// no-result and result-bearing entry points; want is the Void type for the
// former. All core-level failures are detected here, before any middleware
// runs, and returned directly. Handler and middleware errors, including
// context cancellation, propagate unmodified.
func (d *Dispatcher) execute(ctx context.Context, cmd any, want reflect.Type) (any, error) {
	if cmd == nil {
		return nil, fmt.Errorf("%w: <nil>", ErrNoHandler)
	}
	cmdType := reflect.TypeOf(cmd)

	def, err := d.resolveDefinition(cmdType, want)
	if err != nil {
		return nil, err
	}

	ex := d.executorFor(def)

	// Per-call handler override for test doubles: resolved fresh on every
	// dispatch and composed with the current middleware, never cached.
	if d.override != nil {
		if fake, ok := d.override.Resolve(cmdType); ok && fake != nil {
			if fake.ResultType() != want {
				return nil, fmt.Errorf("%w: %s: fake declares result %s, requested %s",
					ErrResultTypeMismatch, cmdType, fake.ResultType(), want)
			}
			return chainMiddleware(fake, d.middleware()).Handle(ctx, cmd)
		}
	}

	if ex.resultType != want {
		return nil, fmt.Errorf("%w: %s declares result %s, requested %s",
			ErrResultTypeMismatch, cmdType, ex.resultType, want)
	}

	return ex.invoke.Handle(ctx, cmd)
}

// resolveDefinition looks up the command type in the registry, falling back
// to generic closing for previously-unseen instantiations of registered
// families. All outcomes other than success are configuration errors.
func (d *Dispatcher) resolveDefinition(cmdType reflect.Type, want reflect.Type) (*definition, error) {
	if def, ok := d.reg.get(cmdType); ok {
		return def, nil
	}
	return d.closeGeneric(cmdType, want)
}

// executorFor returns the definition's executor, building and caching it on
// first use. Racing builds are tolerated: construction only composes
// function values, so redundant work is wasteful but not a correctness bug,
// and the overwrite is idempotent.
func (d *Dispatcher) executorFor(def *definition) *executor {
	if ex := def.executor.Load(); ex != nil {
		return ex
	}

	ex := d.buildExecutor(def.handler)
	def.executor.Store(ex)
	return ex
}

// buildExecutor composes the ordered middleware chain for the handler's
// (command type, result type) pair. This is the only place chain order is
// fixed; it equals middleware registration order.
func (d *Dispatcher) buildExecutor(handler Handler) *executor {
	return &executor{
		invoke:     chainMiddleware(handler, d.middleware()),
		resultType: handler.ResultType(),
	}
}

// middleware gathers all registered middleware from the environment in
// registration order.
func (d *Dispatcher) middleware() []Middleware {
	vs := d.env.ResolveAll(middlewareType)
	if len(vs) == 0 {
		return nil
	}

	mws := make([]Middleware, 0, len(vs))
	for _, v := range vs {
		if mw, ok := v.(Middleware); ok {
			mws = append(mws, mw)
		}
	}
	return mws
}
