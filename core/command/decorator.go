package command

import (
	"context"
	"fmt"
	"reflect"
	"time"
)

// decoratorHandler wraps a Handler with additional functionality.
type decoratorHandler struct {
	next Handler
	fn   func(ctx context.Context, payload any) (any, error)
}

func (h *decoratorHandler) CommandName() string { return h.next.CommandName() }

func (h *decoratorHandler) CommandType() reflect.Type { return h.next.CommandType() }

func (h *decoratorHandler) ResultType() reflect.Type { return h.next.ResultType() }

func (h *decoratorHandler) Handle(ctx context.Context, payload any) (any, error) {
	return h.fn(ctx, payload)
}

// WithTimeout wraps a handler to enforce a maximum execution time.
// Cancels the handler's context if it exceeds the timeout.
//
// Example:
//
//	handler := command.WithTimeout(
//	    command.NewHandlerFunc(processImageHandler),
//	    30*time.Second,
//	)
//	dispatcher.Register(handler)
func WithTimeout(handler Handler, timeout time.Duration) Handler {
	return &decoratorHandler{
		next: handler,
		fn: func(ctx context.Context, payload any) (any, error) {
			ctx, cancel := context.WithTimeout(ctx, timeout)
			defer cancel()

			type outcome struct {
				result any
				err    error
			}

			ch := make(chan outcome, 1)
			go func() {
				result, err := handler.Handle(ctx, payload)
				ch <- outcome{result: result, err: err}
			}()

			select {
			case out := <-ch:
				return out.result, out.err
			case <-ctx.Done():
				return nil, fmt.Errorf("handler timeout after %s: %w", timeout, ctx.Err())
			}
		},
	}
}
