package command

import (
	"reflect"
	"sync"
	"sync/atomic"
)

// definition is the registry entry for one command type. It binds the
// resolved handler to a lazily-built executor. The executor is built at
// most once per definition under normal operation; test registration
// pre-builds it eagerly. Concurrent callers racing on the lazy build may
// each construct a redundant executor; the field is overwritten
// idempotently, which is safe because executor construction has no side
// effects beyond composing function values.
type definition struct {
	handler  Handler
	executor atomic.Pointer[executor]
}

func newDefinition(handler Handler) *definition {
	return &definition{handler: handler}
}

// executor is the built invocation path for one (command type, result type)
// pair: the handler wrapped in the ordered middleware chain. Middleware
// order is fixed here and equals registration order.
type executor struct {
	invoke     Handler
	resultType reflect.Type
}

// registry is the concurrent mapping from command type to definition, plus
// the generic family table used to close open registrations at first use.
// At most one definition is visible per command type at any time; per-key
// writes are last-write-wins.
type registry struct {
	defs     sync.Map // reflect.Type -> *definition
	families sync.Map // string -> GenericFactory
	names    sync.Map // string -> reflect.Type, for async transport routing
}

func (r *registry) get(t reflect.Type) (*definition, bool) {
	v, ok := r.defs.Load(t)
	if !ok {
		return nil, false
	}
	return v.(*definition), true
}

// set overwrites the definition for a command type.
func (r *registry) set(t reflect.Type, def *definition) {
	r.defs.Store(t, def)
	r.names.Store(def.handler.CommandName(), t)
}

// getOrAdd stores def for a previously-unseen command type and reports
// whether an entry already existed. The existing entry wins.
func (r *registry) getOrAdd(t reflect.Type, def *definition) (*definition, bool) {
	v, loaded := r.defs.LoadOrStore(t, def)
	if !loaded {
		r.names.Store(def.handler.CommandName(), t)
	}
	return v.(*definition), loaded
}

func (r *registry) family(key string) (GenericFactory, bool) {
	v, ok := r.families.Load(key)
	if !ok {
		return nil, false
	}
	return v.(GenericFactory), true
}

func (r *registry) setFamily(key string, factory GenericFactory) {
	r.families.Store(key, factory)
}

// typeByName resolves a command type from its name. Used by async
// transports to deserialize envelopes.
func (r *registry) typeByName(name string) (reflect.Type, bool) {
	v, ok := r.names.Load(name)
	if !ok {
		return nil, false
	}
	return v.(reflect.Type), true
}
