package command

import (
	"reflect"
	"strings"
	"sync"
)

// commandNameCache caches reflection results for command name lookups.
// Key is reflect.Type, value is the command name string.
var commandNameCache sync.Map

// getCommandName derives the command name from a reflect.Type.
// For structs, it returns the struct name; pointers are dereferenced.
// Instantiations of generic types keep their type arguments, e.g. "Batch[int]".
// Results are cached to avoid repeated reflection overhead.
func getCommandName(t reflect.Type) string {
	if name, ok := commandNameCache.Load(t); ok {
		return name.(string)
	}

	original := t
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}

	var name string
	if t.Name() != "" {
		name = t.Name()
	} else {
		name = t.String()
	}

	commandNameCache.Store(original, name)
	return name
}

// CommandNameOf returns the command name for a given command instance.
// This is useful for logging and debugging.
func CommandNameOf(cmd any) string {
	return getCommandName(reflect.TypeOf(cmd))
}

// genericFamilyKey derives the registry key for the generic family a closed
// command type belongs to: package path plus the type name up to the
// instantiation bracket. Returns false for non-generic types.
func genericFamilyKey(t reflect.Type) (string, bool) {
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}

	name := t.Name()
	i := strings.IndexByte(name, '[')
	if i < 0 {
		return "", false
	}

	return t.PkgPath() + "." + name[:i], true
}

// chainMiddleware applies multiple middleware in order.
// The first middleware in the slice is the outermost (executed first).
func chainMiddleware(handler Handler, middleware []Middleware) Handler {
	// Reverse order required: wrapping innermost first makes it execute last
	for i := len(middleware) - 1; i >= 0; i-- {
		handler = middleware[i](handler)
	}
	return handler
}
