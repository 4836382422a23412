package command

import (
	"context"
	"fmt"
	"log/slog"
)

// Option configures a Dispatcher.
type Option func(*Dispatcher)

// WithLogger sets the logger for the dispatcher.
// If not set, slog.Default() is used.
func WithLogger(logger *slog.Logger) Option {
	return func(d *Dispatcher) {
		if logger != nil {
			d.logger = logger
		}
	}
}

// WithEnvironment sets the dependency environment the dispatcher resolves
// middleware and per-call handler overrides from. Defaults to a fresh Env.
//
// Example:
//
//	env := command.NewEnv()
//	dispatcher := command.NewDispatcher(command.WithEnvironment(env))
func WithEnvironment(env Resolver) Option {
	return func(d *Dispatcher) {
		if env != nil {
			d.env = env
		}
	}
}

// WithMiddleware registers middleware at construction time in the order
// provided. Panics on a nil middleware, since construction happens during
// application wiring. When combined with WithEnvironment, pass the
// environment option first so middleware lands in it.
//
// Example:
//
//	dispatcher := command.NewDispatcher(
//	    command.WithMiddleware(
//	        command.LoggingMiddleware(log),
//	        metricsMiddleware,
//	    ),
//	)
func WithMiddleware(middleware ...Middleware) Option {
	return func(d *Dispatcher) {
		if d.env == nil {
			d.env = NewEnv()
		}
		if err := d.Use(middleware...); err != nil {
			panic(fmt.Sprintf("command: %s", err))
		}
	}
}

// WithHandler registers handlers at construction time.
// Panics on duplicate registration, same as Register.
func WithHandler(handlers ...Handler) Option {
	return func(d *Dispatcher) {
		d.Register(handlers...)
	}
}

// WithHandlerResolver installs a per-call handler override strategy,
// consulted on every dispatch ahead of the cached executor. Intended for
// test harnesses substituting fakes; production dispatchers should leave it
// unset.
//
// Example:
//
//	env := command.NewEnv()
//	dispatcher := command.NewDispatcher(
//	    command.WithEnvironment(env),
//	    command.WithHandlerResolver(command.EnvHandlerResolver(env)),
//	)
func WithHandlerResolver(resolver HandlerResolver) Option {
	return func(d *Dispatcher) {
		d.override = resolver
	}
}

// WithErrorHandler sets a callback for handler errors from async
// transports, where errors cannot be returned to the caller.
//
// Example:
//
//	dispatcher := command.NewDispatcher(
//	    command.WithChannelTransport(command.DefaultChannelConfig()),
//	    command.WithErrorHandler(func(ctx context.Context, cmdName string, err error) {
//	        log.Error("command failed", "command", cmdName, "error", err)
//	    }),
//	)
func WithErrorHandler(handler func(context.Context, string, error)) Option {
	return func(d *Dispatcher) {
		d.errorHandler = handler
	}
}

// WithSyncTransport configures the dispatcher to execute commands
// immediately in the caller's goroutine. This is the default transport.
func WithSyncTransport() Option {
	return func(d *Dispatcher) {
		d.transport = newSyncTransport(d)
	}
}

// WithChannelTransport configures the dispatcher to execute fire-and-forget
// commands asynchronously via a buffered channel and worker goroutines.
// Result-bearing Execute calls remain synchronous regardless of transport.
//
// Important: call dispatcher.Stop() for graceful shutdown.
//
// Example:
//
//	dispatcher := command.NewDispatcher(
//	    command.WithChannelTransport(command.ChannelConfig{BufferSize: 100, Workers: 5}),
//	)
//	defer dispatcher.Stop()
func WithChannelTransport(cfg ChannelConfig) Option {
	return func(d *Dispatcher) {
		d.transport = newChannelTransport(d, cfg)
	}
}
