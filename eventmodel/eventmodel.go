// Package eventmodel implements the event-driven execution model:
// one-shot handlers, registered against dense event numbers, running on a
// single stack shared by every handler in the system.
//
// The event table is a fixed-capacity array, allocated once and never
// grown, and the TCB follows the same small-guarded-accessor-method
// composition style as the thread model's.
package eventmodel

import (
	"sync/atomic"

	"corekernel/execctx"
	"corekernel/tcb"
)

// SharedStack is the single process-wide word holding the current top of
// the one stack every event handler shares. Every shared-stack TCB
// forwards its StackPointer getter/setter to the same SharedStack
// instance, so all such TCBs alias the same storage.
type SharedStack struct {
	sp atomic.Uintptr
}

// Get returns the current shared stack pointer value.
func (s *SharedStack) Get() uintptr { return s.sp.Load() }

// Set stores a new shared stack pointer value.
func (s *SharedStack) Set(v uintptr) { s.sp.Store(v) }

// EventTCB is the event-driven model's task control block. It advertises
// stack-pointer (shared), identifier, priority, state, and event-handler
// capabilities, plus sequential syscall argument reads and a kernel return
// value write, forwarded to whichever execctx.Context the switcher bound
// for the task currently trapped into the kernel.
type EventTCB struct {
	id       uint32
	priority uint8
	state    tcb.TaskState
	handler  func()
	shared   *SharedStack
	ctx      *execctx.Context
}

var (
	_ tcb.StackPointer = (*EventTCB)(nil)
	_ tcb.Identifier   = (*EventTCB)(nil)
	_ tcb.Priority     = (*EventTCB)(nil)
	_ tcb.State        = (*EventTCB)(nil)
	_ tcb.EventHandler = (*EventTCB)(nil)
	_ tcb.SyscallArgs  = (*EventTCB)(nil)
	_ tcb.KernelReturn = (*EventTCB)(nil)
)

// StackPointer implements tcb.StackPointer by forwarding to the shared
// stack.
func (t *EventTCB) StackPointer() uintptr { return t.shared.Get() }

// SetStackPointer implements tcb.StackPointer by forwarding to the shared
// stack.
func (t *EventTCB) SetStackPointer(sp uintptr) { t.shared.Set(sp) }

// ID implements tcb.Identifier.
func (t *EventTCB) ID() uint32 { return t.id }

// SetID implements tcb.Identifier.
func (t *EventTCB) SetID(id uint32) { t.id = id }

// Priority implements tcb.Priority.
func (t *EventTCB) Priority() uint8 { return t.priority }

// SetPriority implements tcb.Priority.
func (t *EventTCB) SetPriority(p uint8) { t.priority = p }

// State implements tcb.State.
func (t *EventTCB) State() tcb.TaskState { return t.state }

// SetState implements tcb.State.
func (t *EventTCB) SetState(s tcb.TaskState) { t.state = s }

// Handler implements tcb.EventHandler.
func (t *EventTCB) Handler() func() { return t.handler }

// SetHandler implements tcb.EventHandler.
func (t *EventTCB) SetHandler(fn func()) { t.handler = fn }

// BindContext attaches the execution context of the task currently
// trapped into the kernel, so NextArg and SetKernelReturn have a concrete
// Context to forward to. The reference switcher calls this as part of
// SwitchTask; a real architecture's switcher does the analogous thing by
// pointing the TCB at the saved register frame.
func (t *EventTCB) BindContext(c *execctx.Context) { t.ctx = c }

// NextArg implements tcb.SyscallArgs.
func (t *EventTCB) NextArg() uintptr { return t.ctx.NextArg() }

// SetKernelReturn implements tcb.KernelReturn.
func (t *EventTCB) SetKernelReturn(v int32) { t.ctx.SetKernelReturn(v) }

// Controller is the event controller: a fixed-capacity table from a
// dense event number in [0, N) to the event-style TCB
// carrying its handler. The table is allocated once, at construction, and
// never grows.
type Controller struct {
	tasks []EventTCB
}

// NewController creates a Controller with room for n events, all sharing
// stack. Each slot's TCB is pre-populated with its own event number as ID
// and tcb.StateReady, ready for RegisterEvent to attach a handler.
func NewController(n int, shared *SharedStack) *Controller {
	tasks := make([]EventTCB, n)
	for i := range tasks {
		tasks[i].shared = shared
		tasks[i].state = tcb.StateReady
		tasks[i].id = uint32(i)
	}
	return &Controller{tasks: tasks}
}

// RegisterEvent stores handler into tasks[e]. e is raw, unchecked index
// arithmetic: an out-of-range e panics via the underlying
// slice index, the same way any other setup-time contract violation does.
// This is a setup-time call (from trusted kernel/integrator code, not from
// a syscall argument), so there is no analogue of the send-event bounds
// question here.
func (c *Controller) RegisterEvent(e uint32, handler func()) {
	c.tasks[e].SetHandler(handler)
}

// GetRegisteredEvent returns a stable reference to event e's control
// block. Like RegisterEvent, e is raw and unchecked.
func (c *Controller) GetRegisteredEvent(e uint32) *EventTCB {
	return &c.tasks[e]
}

// CheckedLookup is a bounds-checked accessor for event numbers that
// arrived through an untrusted path (e.g. a syscall argument). See
// SendEventChecked.
func (c *Controller) CheckedLookup(e uint32) (*EventTCB, bool) {
	if e >= uint32(len(c.tasks)) {
		return nil, false
	}
	return &c.tasks[e], true
}

// Len returns the event table's capacity.
func (c *Controller) Len() int { return len(c.tasks) }
