package eventmodel

import (
	"sync"
	"sync/atomic"

	"corekernel/dispatch"
	"corekernel/kernelapi"
	"corekernel/kernelbind"
	"corekernel/tcb"
)

// HandlerTokens lets a handler function pointer travel through a
// uintptr-sized syscall argument. A real architecture would pass the
// handler's raw code address and let the trap call through it, but Go
// gives no portable way to call through an arbitrary address, so the
// reference/simulated architecture instead hands back an opaque token
// that decodes to the original func() on this side of the trap.
type HandlerTokens struct {
	seq  atomic.Uint32
	mu   sync.RWMutex
	byID map[uintptr]func()
}

// NewHandlerTokens creates an empty token table.
func NewHandlerTokens() *HandlerTokens {
	return &HandlerTokens{byID: make(map[uintptr]func())}
}

// Issue registers fn and returns a token that Resolve will later turn
// back into fn.
func (h *HandlerTokens) Issue(fn func()) uintptr {
	id := uintptr(h.seq.Add(1))
	h.mu.Lock()
	h.byID[id] = fn
	h.mu.Unlock()
	return id
}

// Resolve turns a token back into the func() it was issued for. It panics
// on an unknown token: a syscall-invoked set-event-handler call is only
// ever supposed to carry a token this table issued.
func (h *HandlerTokens) Resolve(token uintptr) func() {
	h.mu.RLock()
	fn, ok := h.byID[token]
	h.mu.RUnlock()
	if !ok {
		panic("eventmodel: unknown handler token")
	}
	return fn
}

// SendEvent builds the send-event service routine: reads one sequential
// syscall argument, the event number, and asks the scheduler to make that
// event's control block runnable.
//
// The event number is not bounds-checked here; an out-of-range event
// number panics via the table's raw index. Use SendEventChecked to push
// the check to the boundary instead.
func SendEvent(ctrl *Controller) dispatch.Handler[*EventTCB] {
	return func(current *EventTCB) *EventTCB {
		e := current.NextArg()
		target := ctrl.GetRegisteredEvent(uint32(e))
		sched := kernelbind.Get[kernelapi.Scheduler[*EventTCB]]()
		return sched.OnTaskCreated(current, target)
	}
}

// SendEventChecked is a wrapping mapper variant of SendEvent: the same
// routine, but an out-of-range event number is reported through the
// kernel return value instead of panicking.
func SendEventChecked(ctrl *Controller) dispatch.Handler[*EventTCB] {
	return func(current *EventTCB) *EventTCB {
		e := current.NextArg()
		target, ok := ctrl.CheckedLookup(uint32(e))
		if !ok {
			current.SetKernelReturn(tcb.KernelReturnFailure)
			return current
		}
		sched := kernelbind.Get[kernelapi.Scheduler[*EventTCB]]()
		return sched.OnTaskCreated(current, target)
	}
}

// EventHandlerReturn builds the event-handler-return service routine:
// reads the prior stack pointer, restores it, and asks the scheduler to
// retire the finished handler.
func EventHandlerReturn() dispatch.Handler[*EventTCB] {
	return func(current *EventTCB) *EventTCB {
		sp := current.NextArg()
		current.SetStackPointer(sp)
		sched := kernelbind.Get[kernelapi.Scheduler[*EventTCB]]()
		return sched.OnTaskFinished(current)
	}
}

// SetEventHandler builds the set-event-handler service routine for the
// syscall-invoked entry shape: a thin wrapper over the event table's
// RegisterEvent. It reads two sequential syscall arguments, the event
// number and a handler token (see HandlerTokens), and stores the decoded handler into
// the event table. It always returns the caller as next: installing a
// handler never itself reschedules anything.
func SetEventHandler(ctrl *Controller, tokens *HandlerTokens) dispatch.Handler[*EventTCB] {
	return func(current *EventTCB) *EventTCB {
		e := current.NextArg()
		token := current.NextArg()
		ctrl.RegisterEvent(uint32(e), tokens.Resolve(token))
		return current
	}
}

// SetEventHandlerDirect is the kernel-invoked entry shape for
// set-event-handler: the handler function is supplied directly rather than
// decoded from a syscall argument, for kernel-startup registration.
func SetEventHandlerDirect(ctrl *Controller, e uint32, handler func()) {
	ctrl.RegisterEvent(e, handler)
}
