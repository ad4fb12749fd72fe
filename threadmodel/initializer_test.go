package threadmodel

import (
	"testing"

	"corekernel/execctx"
)

type fakeAllocator struct {
	next  uintptr
	fail  bool
	freed []uintptr
}

func (a *fakeAllocator) AllocateStack(size uint32) (uintptr, bool) {
	if a.fail {
		return 0, false
	}
	a.next += uintptr(size)
	return a.next, true
}

func (a *fakeAllocator) FreeStack(base uintptr) {
	a.freed = append(a.freed, base)
}

type fakeArchBuilder struct {
	ok bool
}

func (b *fakeArchBuilder) BuildThreadContext(t *ThreadTCB, entry uintptr) bool {
	return b.ok
}

func TestAllocateDedicatedStackReadsSizeAndAllocates(t *testing.T) {
	alloc := &fakeAllocator{}
	init := AllocateDedicatedStack{Alloc: alloc}
	var tcb ThreadTCB

	arg := init.ReadArg(fakeArgs(t, 256))
	if !init.Apply(&tcb, arg) {
		t.Fatal("expected Apply to succeed")
	}
	if tcb.StackSize() != 256 {
		t.Fatalf("stack size = %d, want 256", tcb.StackSize())
	}
	if !tcb.KernelOwnsStack() {
		t.Fatal("expected kernel to own a dedicated stack")
	}
	if tcb.Recyclable() {
		t.Fatal("expected non-recyclable allocation not to be marked recyclable")
	}
}

func TestAllocateDedicatedRecyclableStackMarksRecyclable(t *testing.T) {
	alloc := &fakeAllocator{}
	init := AllocateDedicatedRecyclableStack{Alloc: alloc}
	var tcb ThreadTCB

	arg := init.ReadArg(fakeArgs(t, 128))
	if !init.Apply(&tcb, arg) {
		t.Fatal("expected Apply to succeed")
	}
	if !tcb.Recyclable() {
		t.Fatal("expected a recyclable allocation to be marked recyclable")
	}
}

func TestAllocateDedicatedStackExhaustionFails(t *testing.T) {
	alloc := &fakeAllocator{fail: true}
	init := AllocateDedicatedStack{Alloc: alloc}
	var tcb ThreadTCB

	arg := init.ReadArg(fakeArgs(t, 64))
	if init.Apply(&tcb, arg) {
		t.Fatal("expected Apply to fail when the allocator is exhausted")
	}
}

func TestAssignPreallocatedStackReadsPointerThenSize(t *testing.T) {
	ctx := execctx.New(0x2000, 512)
	var tcb ThreadTCB
	init := AssignPreallocatedStack{}

	arg := init.ReadArg(ctx)
	init.Apply(&tcb, arg)
	if tcb.StackBase() != 0x2000 {
		t.Fatalf("stack base = %#x, want 0x2000", tcb.StackBase())
	}
	if tcb.KernelOwnsStack() {
		t.Fatal("expected a caller-supplied stack not to be kernel-owned")
	}
}

func TestSetupExecutionContextDelegatesToBuilder(t *testing.T) {
	builder := &fakeArchBuilder{ok: true}
	init := SetupExecutionContext{Builder: builder}
	var tcb ThreadTCB

	arg := init.ReadArg(fakeArgs(t, 0x4000))
	if !init.Apply(&tcb, arg) {
		t.Fatal("expected Apply to delegate success from the builder")
	}
}

func TestAssignUniqueIdentifierAndPriority(t *testing.T) {
	var tcb ThreadTCB
	id := AssignUniqueIdentifier{}
	idArg := id.ReadArg(fakeArgs(t, 7))
	id.Apply(&tcb, idArg)
	if tcb.ID() != 7 {
		t.Fatalf("ID = %d, want 7", tcb.ID())
	}

	pr := AssignPriority{}
	prArg := pr.ReadArg(fakeArgs(t, 3))
	pr.Apply(&tcb, prArg)
	if tcb.Priority() != 3 {
		t.Fatalf("Priority = %d, want 3", tcb.Priority())
	}
}

func fakeArgs(t *testing.T, args ...uintptr) *execctx.Context {
	t.Helper()
	return execctx.New(args...)
}
