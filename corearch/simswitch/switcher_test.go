package simswitch

import (
	"testing"

	"corekernel/execctx"
	"corekernel/ksvc"
)

type fakeTask struct {
	name string
	ctx  *execctx.Context
}

func (f *fakeTask) BindContext(c *execctx.Context) { f.ctx = c }

var exitID = ksvc.WithName(100, "exit")

func TestResumableRoundTrip(t *testing.T) {
	cs := New[*fakeTask]()
	a := &fakeTask{name: "a"}

	var ran bool
	cs.RegisterResumable(a, func(h *TaskHandle[*fakeTask]) {
		ran = true
		h.Suspend(exitID, 7)
	})

	id := cs.SwitchTask(nil, a)
	if id != exitID {
		t.Fatalf("id = %s, want %s", id, exitID)
	}
	if !ran {
		t.Fatal("expected the resumable body to have run")
	}
	if a.ctx.NextArg() != 7 {
		t.Fatal("expected the trap's argument to be bound to the task's context")
	}
}

func TestOneShotRunsFreshEachTime(t *testing.T) {
	cs := New[*fakeTask]()
	a := &fakeTask{name: "a"}

	var runs int
	cs.RegisterOneShot(a, func(h *TaskHandle[*fakeTask]) {
		runs++
		h.Trap(exitID)
	})

	cs.SwitchTask(nil, a)
	cs.SwitchTask(nil, a)

	if runs != 2 {
		t.Fatalf("body ran %d times, want 2", runs)
	}
}

func TestSwitchTaskPanicsOnUnregisteredTask(t *testing.T) {
	cs := New[*fakeTask]()
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic for an unregistered task")
		}
	}()
	cs.SwitchTask(nil, &fakeTask{name: "ghost"})
}
