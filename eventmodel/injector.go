package eventmodel

import "corekernel/dispatch"

// TrampolineBuilder is the architecture context builder collaborator both
// trampoline injectors call to prepare next's context for running the
// Trampoline. How it does so is architecture-specific; the injector only
// decides whether to call it.
type TrampolineBuilder interface {
	BuildTrampolineFrame(next *EventTCB, oldSP uintptr)
}

// PreemptiveInjector preempts the running event handler whenever the
// incoming one has strictly higher priority; equal or lower priorities do
// not preempt.
func PreemptiveInjector(arch TrampolineBuilder) dispatch.Injector[*EventTCB] {
	return func(prev, next *EventTCB) {
		if next.Priority() > prev.Priority() {
			arch.BuildTrampolineFrame(next, prev.StackPointer())
		}
	}
}

// CooperativeInjector lets the running handler run to completion before
// any other handler may start. The gate is identity (next != prev), not a
// comparison of priorities.
func CooperativeInjector(arch TrampolineBuilder) dispatch.Injector[*EventTCB] {
	return func(prev, next *EventTCB) {
		if next != prev {
			arch.BuildTrampolineFrame(next, prev.StackPointer())
		}
	}
}
