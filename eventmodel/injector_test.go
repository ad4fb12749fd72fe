package eventmodel

import "testing"

type fakeTrampolineBuilder struct {
	built []*EventTCB
}

func (f *fakeTrampolineBuilder) BuildTrampolineFrame(next *EventTCB, oldSP uintptr) {
	f.built = append(f.built, next)
}

func TestPreemptiveInjectorGate(t *testing.T) {
	shared := &SharedStack{}
	low := &EventTCB{priority: 1, shared: shared}
	high := &EventTCB{priority: 5, shared: shared}
	arch := &fakeTrampolineBuilder{}
	inject := PreemptiveInjector(arch)

	inject(low, high)
	if len(arch.built) != 1 {
		t.Fatal("expected a higher-priority next to preempt")
	}

	arch.built = nil
	inject(high, low)
	if len(arch.built) != 0 {
		t.Fatal("expected a lower-priority next not to preempt")
	}

	arch.built = nil
	inject(high, high)
	if len(arch.built) != 0 {
		t.Fatal("expected equal priority not to preempt")
	}
}

func TestCooperativeInjectorGate(t *testing.T) {
	shared := &SharedStack{}
	a := &EventTCB{priority: 1, shared: shared}
	b := &EventTCB{priority: 9, shared: shared}
	arch := &fakeTrampolineBuilder{}
	inject := CooperativeInjector(arch)

	inject(a, a)
	if len(arch.built) != 0 {
		t.Fatal("expected the running handler to run to completion before switching to itself")
	}

	inject(a, b)
	if len(arch.built) != 1 {
		t.Fatal("expected a switch to a different handler to build a trampoline frame regardless of priority")
	}
}
