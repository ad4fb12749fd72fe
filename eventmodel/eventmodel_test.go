package eventmodel

import (
	"testing"

	"corekernel/execctx"
	"corekernel/kernelapi"
	"corekernel/kernelbind"
	"corekernel/tcb"
)

type fakeScheduler struct {
	created  []*EventTCB
	finished []*EventTCB
}

func (f *fakeScheduler) OnTaskCreated(current, newTask *EventTCB) *EventTCB {
	f.created = append(f.created, newTask)
	return newTask
}

func (f *fakeScheduler) OnTaskFinished(current *EventTCB) *EventTCB {
	f.finished = append(f.finished, current)
	return current
}

func TestSharedStackAliasing(t *testing.T) {
	shared := &SharedStack{}
	ctrl := NewController(2, shared)
	a := ctrl.GetRegisteredEvent(0)
	b := ctrl.GetRegisteredEvent(1)
	a.SetStackPointer(0x1000)
	if b.StackPointer() != 0x1000 {
		t.Fatal("expected all shared-stack TCBs to alias the same storage")
	}
}

func TestCheckedLookupBounds(t *testing.T) {
	ctrl := NewController(4, &SharedStack{})
	if _, ok := ctrl.CheckedLookup(3); !ok {
		t.Fatal("expected in-range lookup to succeed")
	}
	if _, ok := ctrl.CheckedLookup(4); ok {
		t.Fatal("expected out-of-range lookup to fail")
	}
}

func TestSendEventSwitchesToTarget(t *testing.T) {
	defer kernelbind.Reset()
	shared := &SharedStack{}
	ctrl := NewController(4, shared)
	sched := &fakeScheduler{}
	kernelbind.Bind[kernelapi.Scheduler[*EventTCB]](sched)

	current := ctrl.GetRegisteredEvent(0)
	current.BindContext(execctx.New(2))

	next := SendEvent(ctrl)(current)
	if next != ctrl.GetRegisteredEvent(2) {
		t.Fatal("expected SendEvent to switch to event 2's control block")
	}
}

func TestSendEventCheckedReportsFailure(t *testing.T) {
	defer kernelbind.Reset()
	shared := &SharedStack{}
	ctrl := NewController(4, shared)
	sched := &fakeScheduler{}
	kernelbind.Bind[kernelapi.Scheduler[*EventTCB]](sched)

	current := ctrl.GetRegisteredEvent(0)
	current.BindContext(execctx.New(99))

	next := SendEventChecked(ctrl)(current)
	if next != current {
		t.Fatal("expected SendEventChecked to hand control back to the caller on failure")
	}
	if current.KernelReturn() != tcb.KernelReturnFailure {
		t.Fatalf("kernel return = %d, want %d", current.KernelReturn(), tcb.KernelReturnFailure)
	}
}

func (t *EventTCB) KernelReturn() int32 { return t.ctx.KernelReturn() }

func TestEventHandlerReturnRestoresSP(t *testing.T) {
	defer kernelbind.Reset()
	shared := &SharedStack{}
	shared.Set(0xABCD)
	ctrl := NewController(2, shared)
	sched := &fakeScheduler{}
	kernelbind.Bind[kernelapi.Scheduler[*EventTCB]](sched)

	current := ctrl.GetRegisteredEvent(1)
	current.BindContext(execctx.New(0x1234))

	EventHandlerReturn()(current)
	if shared.Get() != 0x1234 {
		t.Fatalf("shared stack pointer = %#x, want %#x", shared.Get(), 0x1234)
	}
}

func TestHandlerTokensRoundTrip(t *testing.T) {
	tokens := NewHandlerTokens()
	ran := false
	token := tokens.Issue(func() { ran = true })
	tokens.Resolve(token)()
	if !ran {
		t.Fatal("expected resolved handler to run")
	}
}

func TestHandlerTokensUnknownPanics(t *testing.T) {
	tokens := NewHandlerTokens()
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic for unknown token")
		}
	}()
	tokens.Resolve(999)
}

func TestSetEventHandlerInstallsHandler(t *testing.T) {
	shared := &SharedStack{}
	ctrl := NewController(4, shared)
	tokens := NewHandlerTokens()
	ran := false
	token := tokens.Issue(func() { ran = true })

	current := ctrl.GetRegisteredEvent(0)
	current.BindContext(execctx.New(3, token))

	next := SetEventHandler(ctrl, tokens)(current)
	if next != current {
		t.Fatal("expected SetEventHandler to return the caller")
	}
	ctrl.GetRegisteredEvent(3).Handler()()
	if !ran {
		t.Fatal("expected installed handler to be reachable from event 3")
	}
}
