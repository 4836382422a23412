package command

import "context"

// Transport defines how fire-and-forget commands are dispatched.
// Different implementations provide different execution strategies:
// sync (direct call in the caller's goroutine) and channel (buffered
// in-process async execution). Result-bearing Execute calls never go
// through a transport.
type Transport interface {
	// Dispatch sends a command for execution.
	// Returns an error if dispatch fails (e.g. no handler, buffer full).
	Dispatch(ctx context.Context, cmd any) error
}
