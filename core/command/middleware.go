package command

import (
	"context"
	"log/slog"
	"reflect"
	"time"

	"github.com/kylelaverty/FastEndpoints/core/logger"
)

// Middleware wraps a Handler to add cross-cutting functionality such as
// logging, metrics, tracing, or validation. Middleware is composed at
// executor construction time: the first registered middleware is the
// outermost wrapper, and the handler's business logic is always innermost.
type Middleware func(next Handler) Handler

// middlewareType keys middleware registrations in the environment.
var middlewareType = reflect.TypeOf((*Middleware)(nil)).Elem()

// middlewareHandler wraps a Handler with middleware functionality.
type middlewareHandler struct {
	next Handler
	fn   func(ctx context.Context, payload any) (any, error)
}

func (h *middlewareHandler) CommandName() string { return h.next.CommandName() }

func (h *middlewareHandler) CommandType() reflect.Type { return h.next.CommandType() }

func (h *middlewareHandler) ResultType() reflect.Type { return h.next.ResultType() }

func (h *middlewareHandler) Handle(ctx context.Context, payload any) (any, error) {
	return h.fn(ctx, payload)
}

// WrapHandler builds a Handler that keeps next's command and result types
// but routes invocation through fn. It is the building block for custom
// middleware:
//
//	timing := command.Middleware(func(next command.Handler) command.Handler {
//	    return command.WrapHandler(next, func(ctx context.Context, payload any) (any, error) {
//	        start := time.Now()
//	        defer func() { metrics.Observe(next.CommandName(), time.Since(start)) }()
//	        return next.Handle(ctx, payload)
//	    })
//	})
func WrapHandler(next Handler, fn func(ctx context.Context, payload any) (any, error)) Handler {
	return &middlewareHandler{next: next, fn: fn}
}

// LoggingMiddleware returns a middleware that logs command execution.
// It logs the command name, execution duration, and any errors.
//
// Example:
//
//	dispatcher := command.NewDispatcher(
//	    command.WithMiddleware(command.LoggingMiddleware(log)),
//	)
func LoggingMiddleware(log *slog.Logger) Middleware {
	return func(next Handler) Handler {
		return &middlewareHandler{
			next: next,
			fn: func(ctx context.Context, payload any) (any, error) {
				start := time.Now()
				cmdName := next.CommandName()

				log.InfoContext(ctx, "command started",
					logger.Component("command"),
					slog.String("command", cmdName))

				result, err := next.Handle(ctx, payload)
				if err != nil {
					log.ErrorContext(ctx, "command failed",
						logger.Component("command"),
						slog.String("command", cmdName),
						logger.Elapsed(start),
						logger.Error(err))
					return result, err
				}

				log.InfoContext(ctx, "command completed",
					logger.Component("command"),
					slog.String("command", cmdName),
					logger.Elapsed(start))

				return result, nil
			},
		}
	}
}
