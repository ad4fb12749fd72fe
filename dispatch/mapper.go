package dispatch

import "corekernel/ksvc"

// Handler is a pure, stateless function mapping the task that just trapped
// into the kernel to the task that should run next. A handler must never
// be nil, and must never return a nil/zero Task.
type Handler[Task comparable] func(current Task) Task

// UnknownHandler is the shape of the well-known unknown-identifier
// fallback: unlike a registered Handler, it also receives the
// unrecognized identifier, since logging it is the whole point.
type UnknownHandler[Task comparable] func(id ksvc.ID, current Task) Task

// Mapper resolves a service identifier to a handler. Implementations must
// be stateless (default-constructible) and deterministic: the same
// identifier always maps to the same handler.
type Mapper[Task comparable] interface {
	Resolve(id ksvc.ID) Handler[Task]
}

// Table is the default Mapper: a deterministic switch/jump table plus a
// mandatory fallback for unrecognized identifiers, so Resolve never
// returns nil. Integrators are expected to route every identifier they
// don't explicitly register to the fallback, typically the unknown-service
// routine.
type Table[Task comparable] struct {
	routes  map[ksvc.ID]Handler[Task]
	unknown UnknownHandler[Task]
}

// NewTable creates a Table. unknown is invoked, with the offending
// identifier, for any identifier never registered via Register; it must
// not be nil.
func NewTable[Task comparable](unknown UnknownHandler[Task]) *Table[Task] {
	if unknown == nil {
		panic("dispatch: NewTable: unknown handler must not be nil")
	}
	return &Table[Task]{routes: make(map[ksvc.ID]Handler[Task]), unknown: unknown}
}

// Register maps id to handler. handler must not be nil.
func (t *Table[Task]) Register(id ksvc.ID, handler Handler[Task]) {
	if handler == nil {
		panic("dispatch: Register: handler must not be nil")
	}
	t.routes[id] = handler
}

// Resolve implements Mapper. It never returns nil: an id with no
// registered route resolves to a closure over the unknown handler that
// still carries the offending id.
func (t *Table[Task]) Resolve(id ksvc.ID) Handler[Task] {
	if h, ok := t.routes[id]; ok {
		return h
	}
	unknown := t.unknown
	return func(current Task) Task {
		return unknown(id, current)
	}
}
