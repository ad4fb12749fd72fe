// Package threadmodel implements the thread-based execution model: tasks
// with dedicated per-task stacks, created through a variadic, ordered
// initializer pipeline.
//
// The TCB follows a small-capability-composition style: narrow guarded
// accessor methods rather than one monolithic struct, and initializers
// report failure by returning false rather than panicking.
package threadmodel

import (
	"corekernel/execctx"
	"corekernel/tcb"
)

// ThreadTCB is the thread-based model's task control block: a dedicated
// stack plus identifier, priority, and explicit state.
type ThreadTCB struct {
	stackPointer uintptr
	stackBase    uintptr
	stackSize    uint32
	kernelOwned  bool // true iff the kernel allocated this stack and may free it
	recyclable   bool // true iff the stack should be returned to the allocator on finish

	id       uint32
	priority uint8
	state    tcb.TaskState

	ctx *execctx.Context
}

var (
	_ tcb.PrivateStack = (*ThreadTCB)(nil)
	_ tcb.Identifier   = (*ThreadTCB)(nil)
	_ tcb.Priority     = (*ThreadTCB)(nil)
	_ tcb.State        = (*ThreadTCB)(nil)
	_ tcb.SyscallArgs  = (*ThreadTCB)(nil)
	_ tcb.KernelReturn = (*ThreadTCB)(nil)
)

// StackPointer implements tcb.StackPointer.
func (t *ThreadTCB) StackPointer() uintptr { return t.stackPointer }

// SetStackPointer implements tcb.StackPointer.
func (t *ThreadTCB) SetStackPointer(sp uintptr) { t.stackPointer = sp }

// StackBase implements tcb.PrivateStack. Only the base is valid for
// deallocation; StackPointer moves as the stack grows and shrinks,
// StackBase never does.
func (t *ThreadTCB) StackBase() uintptr { return t.stackBase }

// SetStackBase implements tcb.PrivateStack.
func (t *ThreadTCB) SetStackBase(base uintptr) { t.stackBase = base }

// StackSize reports the size, in bytes, of the dedicated stack allocation.
func (t *ThreadTCB) StackSize() uint32 { return t.stackSize }

// KernelOwnsStack reports whether the kernel allocated this TCB's stack
// (via AllocateDedicatedStack / AllocateDedicatedRecyclableStack), as
// opposed to a caller-supplied stack assigned via AssignPreallocatedStack.
// Only a recyclable stack (see Recyclable) is freed on finish-thread.
func (t *ThreadTCB) KernelOwnsStack() bool { return t.kernelOwned }

// Recyclable reports whether this TCB's stack should be returned to the
// allocator on finish-thread, as opposed to a non-recyclable dedicated
// stack, which is retired along with the TCB, or a caller-supplied stack,
// which the kernel never touches.
func (t *ThreadTCB) Recyclable() bool { return t.recyclable }

// ID implements tcb.Identifier.
func (t *ThreadTCB) ID() uint32 { return t.id }

// SetID implements tcb.Identifier.
func (t *ThreadTCB) SetID(id uint32) { t.id = id }

// Priority implements tcb.Priority.
func (t *ThreadTCB) Priority() uint8 { return t.priority }

// SetPriority implements tcb.Priority.
func (t *ThreadTCB) SetPriority(p uint8) { t.priority = p }

// State implements tcb.State.
func (t *ThreadTCB) State() tcb.TaskState { return t.state }

// SetState implements tcb.State.
func (t *ThreadTCB) SetState(s tcb.TaskState) { t.state = s }

// BindContext attaches the execution context of the task currently
// trapped into the kernel, mirroring eventmodel.EventTCB.BindContext.
func (t *ThreadTCB) BindContext(c *execctx.Context) { t.ctx = c }

// NextArg implements tcb.SyscallArgs.
func (t *ThreadTCB) NextArg() uintptr { return t.ctx.NextArg() }

// SetKernelReturn implements tcb.KernelReturn.
func (t *ThreadTCB) SetKernelReturn(v int32) { t.ctx.SetKernelReturn(v) }

// Reset restores a ThreadTCB to its just-allocated state, for reuse by a
// task controller's free list. It deliberately does not touch the stack
// fields: a recyclable stack's release/reuse is the task controller's
// decision (see StackAllocator), not this TCB's.
func (t *ThreadTCB) Reset() {
	t.id = 0
	t.priority = 0
	t.state = tcb.StateReady
	t.ctx = nil
	t.recyclable = false
}
