package command

// RegisterForTesting binds a handler instance directly into the registry,
// unconditionally overwriting any prior entry for its command type. The
// executor is pre-built from the instance and the middleware registered at
// the time of the call, bypassing lazy resolution entirely.
//
// This covers both arities: build the fake with NewHandlerFunc for
// no-result commands or NewResultHandlerFunc for result-bearing ones.
// Intended for deterministic substitution in test harnesses, not for
// production use. It does not require a handler resolver to be installed;
// WithHandlerResolver is only needed for per-call overrides.
//
// Example:
//
//	fake := command.NewResultHandlerFunc(func(ctx context.Context, cmd Greet) (string, error) {
//	    return "stubbed", nil
//	})
//	dispatcher.RegisterForTesting(fake)
func (d *Dispatcher) RegisterForTesting(handler Handler) {
	if handler == nil {
		panic("command: register for testing called with nil handler")
	}

	def := newDefinition(handler)
	def.executor.Store(d.buildExecutor(handler))
	d.reg.set(handler.CommandType(), def)
}
