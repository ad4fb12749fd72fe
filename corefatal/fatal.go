// Package corefatal implements the core's one fatal error path: a contract
// violation or an unknown service identifier is logged and halts the
// dispatcher.
//
// A process-wide, call-once handler is installed before the first
// dispatch, invoked with a small value-type payload, and never itself
// panics; its activation can be queried afterward. The core has no
// display surface, so Halt only ever reaches a corelog.Sink.
package corefatal

import (
	"runtime/debug"
	"sync"
	"sync/atomic"

	"corekernel/corelog"
	"corekernel/ksvc"
)

// Info describes one fatal condition.
type Info struct {
	// ServiceID is the identifier the switcher returned, when the fatal
	// condition is an unknown service identifier. Zero otherwise.
	ServiceID ksvc.ID
	// Reason is a short, human-readable description of what went wrong.
	Reason string
	// Stack is a best-effort capture of the goroutine stack at the point
	// of the fatal condition.
	Stack []byte
}

var (
	haltOnce    sync.Once
	haltedFlag  atomic.Bool
	haltHandler atomic.Value // func(Info)
	sink        atomic.Value // sinkBox
)

// sinkBox gives every value stored in sink the same concrete type, as
// atomic.Value requires, whatever Sink implementation (or nil) it carries.
type sinkBox struct{ s corelog.Sink }

// SetSink installs the sink Halt writes its report to, whether or not a
// handler has been installed. Each call replaces the previously installed
// sink; dispatch.UnknownService calls it with its own sink just before
// halting.
func SetSink(s corelog.Sink) {
	sink.Store(sinkBox{s})
}

// SetHandler installs a process-wide fatal handler. The handler runs at
// most once (on the first call to Halt) and must not itself panic.
func SetHandler(fn func(Info)) {
	haltHandler.Store(fn)
}

// InHaltMode reports whether the kernel has already halted.
func InHaltMode() bool {
	return haltedFlag.Load()
}

// ResetForTest clears halt state and installed handler/sink. Test-only:
// production code halts once and never calls this.
func ResetForTest() {
	haltOnce = sync.Once{}
	haltedFlag.Store(false)
	haltHandler.Store((func(Info))(nil))
	sink.Store(sinkBox{corelog.Discard{}})
}

// Halt records a fatal condition and runs the installed handler exactly
// once. It does not itself block or exit the process; the dispatcher loop
// stops making progress once InHaltMode reports true.
func Halt(info Info) {
	haltOnce.Do(func() {
		haltedFlag.Store(true)
		info.Stack = debug.Stack()

		if v := haltHandler.Load(); v != nil {
			if fn, ok := v.(func(Info)); ok && fn != nil {
				fn(info)
			}
		}

		if v := sink.Load(); v != nil {
			if b, ok := v.(sinkBox); ok && b.s != nil {
				b.s.WriteLineString("kernel halt: " + info.Reason)
			}
		}
	})
}
