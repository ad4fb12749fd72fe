// Package kernelbind implements the kernel globals binder: a type-indexed,
// bind-once set of process-wide singletons (the current scheduler, the
// current task controller, the shared stack pointer) that stateless
// service routines can reach without threading them through every call
// site.
//
// Each binding is immutable once made: bound before the first dispatch,
// never mutated after.
package kernelbind

import (
	"fmt"
	"reflect"
	"sync"
)

var (
	mu     sync.RWMutex
	values = map[reflect.Type]any{}
)

// Bind installs the process-wide value for type T. It may be called
// exactly once per type, before the first dispatch; a second call panics,
// since a rebindable global would break the immutability every stateless
// routine relies on.
func Bind[T any](v T) {
	mu.Lock()
	defer mu.Unlock()
	t := reflect.TypeFor[T]()
	if _, ok := values[t]; ok {
		panic(fmt.Sprintf("kernelbind: %s already bound", t))
	}
	values[t] = v
}

// Get returns the process-wide value for type T, bound earlier via Bind.
// It panics if T was never bound: every caller is a service routine with
// no fallback behavior to offer a missing kernel singleton.
func Get[T any]() T {
	mu.RLock()
	defer mu.RUnlock()
	t := reflect.TypeFor[T]()
	v, ok := values[t]
	if !ok {
		panic(fmt.Sprintf("kernelbind: %s not bound", t))
	}
	return v.(T)
}

// Lookup is the non-panicking form of Get, for callers that can tolerate
// an unbound singleton (tests, optional integrations).
func Lookup[T any]() (T, bool) {
	mu.RLock()
	defer mu.RUnlock()
	t := reflect.TypeFor[T]()
	v, ok := values[t]
	if !ok {
		var zero T
		return zero, false
	}
	return v.(T), true
}

// Reset clears every binding. Test-only: production code binds once at
// startup and never calls this; it exists so independent test cases don't
// leak bindings into one another.
func Reset() {
	mu.Lock()
	defer mu.Unlock()
	values = map[reflect.Type]any{}
}
