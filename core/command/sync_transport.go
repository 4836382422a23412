package command

import "context"

// syncTransport executes commands synchronously in the caller's goroutine.
// This is the simplest and most efficient transport with zero overhead.
//
// Characteristics:
// - Direct function call (no goroutines, no channels)
// - Synchronous error handling
// - Runs in caller's context
// - No lifecycle management needed
//
// Use cases:
// - HTTP request-response handlers
// - Database transactions
// - Testing (deterministic execution)
type syncTransport struct {
	d *Dispatcher
}

func newSyncTransport(d *Dispatcher) *syncTransport {
	return &syncTransport{d: d}
}

// Dispatch executes the command immediately in the caller's goroutine.
// Resolution failures and handler errors both return to the caller
// directly; nothing is caught or wrapped.
func (t *syncTransport) Dispatch(ctx context.Context, cmd any) error {
	_, err := t.d.execute(ctx, cmd, voidType)
	return err
}
