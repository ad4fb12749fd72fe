// Package ksvc defines the service identifier type shared by every piece
// of the dispatch pipeline.
//
// An ID is opaque outside this module: the context switcher produces
// one when control returns to the kernel, and the mapper routes on it.
// Equal values name the same handler; nothing about the numeric value is
// otherwise significant to the core.
package ksvc

// ID is the value a context switcher returns describing why control
// re-entered the kernel (trap, fault, or syscall number).
type ID uint32

// String renders an ID for logging. Concrete models are expected to
// register their own human-readable names via WithName.
func (id ID) String() string {
	if name, ok := names[id]; ok {
		return name
	}
	return "id(" + itoa(uint32(id)) + ")"
}

var names = map[ID]string{}

// WithName registers a human-readable name for a service identifier, for
// use in logs and fatal reports. It is meant to be called from package
// init functions in concrete models (event-driven, thread-based); it is
// not safe to call after dispatch has started.
func WithName(id ID, name string) ID {
	names[id] = name
	return id
}

func itoa(v uint32) string {
	if v == 0 {
		return "0"
	}
	var buf [10]byte
	i := len(buf)
	for v > 0 {
		i--
		buf[i] = byte('0' + v%10)
		v /= 10
	}
	return string(buf[i:])
}
