package simswitch

import (
	"corekernel/eventmodel"
	"corekernel/threadmodel"
)

// ThreadSwitcher is the thread model's reference context switcher: one
// persistent goroutine per dedicated-stack task.
type ThreadSwitcher = ContextSwitcher[*threadmodel.ThreadTCB]

// NewThreadSwitcher creates a ThreadSwitcher.
func NewThreadSwitcher() *ThreadSwitcher { return New[*threadmodel.ThreadTCB]() }

// ThreadContextBuilder implements threadmodel.ArchContextBuilder by
// registering a new resumable task body with a ThreadSwitcher, decoding
// the entry point from an EntryPoints table.
type ThreadContextBuilder struct {
	Switcher *ThreadSwitcher
	Entries  *EntryPoints
}

// BuildThreadContext resolves entry and registers t as a resumable task
// whose body runs entry to completion, then traps finish-thread. It
// reports false if entry does not decode to a registered function.
func (b *ThreadContextBuilder) BuildThreadContext(t *threadmodel.ThreadTCB, entry uintptr) bool {
	fn := b.Entries.Resolve(entry)
	if fn == nil {
		return false
	}
	b.Switcher.RegisterResumable(t, func(h *TaskHandle[*threadmodel.ThreadTCB]) {
		fn()
		h.Trap(threadmodel.FinishThreadID)
	})
	return true
}

// EventSwitcher is the event model's reference context switcher: a fresh
// goroutine per handler activation, since event handlers are one-shot.
type EventSwitcher = ContextSwitcher[*eventmodel.EventTCB]

// NewEventSwitcher creates an EventSwitcher.
func NewEventSwitcher() *EventSwitcher { return New[*eventmodel.EventTCB]() }

// EventTrampolineBuilder implements eventmodel.TrampolineBuilder by
// registering a fresh one-shot task body that runs eventmodel.Trampoline
// around next's handler.
type EventTrampolineBuilder struct {
	Switcher *EventSwitcher
}

// BuildTrampolineFrame arranges for next's handler to run, via
// eventmodel.Trampoline, the next time the dispatcher switches to next.
func (b *EventTrampolineBuilder) BuildTrampolineFrame(next *eventmodel.EventTCB, oldSP uintptr) {
	b.Switcher.RegisterOneShot(next, func(h *TaskHandle[*eventmodel.EventTCB]) {
		eventmodel.Trampoline(next.Handler(), oldSP, func(oldSP uintptr) {
			h.Trap(eventmodel.EventHandlerReturnID, oldSP)
		})
	})
}
