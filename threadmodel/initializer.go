package threadmodel

import "corekernel/tcb"

// StackAllocator is the external collaborator dedicated-stack initializers
// call for backing memory. The core does not implement an allocator; this
// is its contract.
type StackAllocator interface {
	AllocateStack(size uint32) (base uintptr, ok bool)
	FreeStack(base uintptr)
}

// ArchContextBuilder is the external collaborator that writes a valid
// execution-context frame to a new thread's stack, given an entry point.
type ArchContextBuilder interface {
	BuildThreadContext(t *ThreadTCB, entry uintptr) bool
}

// Initializer is one step of the create-thread pipeline. ReadArg is the
// one place the stateful sequential syscall-argument cursor is touched on
// the syscall-invoked path, called once per initializer, strictly in
// pipeline order.
type Initializer interface {
	// ReadArg pulls this initializer's argument(s) from args, in
	// declaration order, and returns an opaque value later passed to
	// Apply. Implementations needing more than one word call NextArg more
	// than once, in the order they need the words.
	ReadArg(args tcb.SyscallArgs) any
	// Apply attempts to configure t using arg, obtained either from
	// ReadArg (syscall-invoked) or supplied directly (kernel-invoked). It
	// returns false on failure (e.g. resource exhaustion); initializers
	// that cannot fail always return true.
	Apply(t *ThreadTCB, arg any) bool
}

// AllocateDedicatedStack allocates a dedicated, non-recyclable stack of
// the given size. The kernel owns the allocation: KernelOwnsStack reports
// true, but the task controller releasing the TCB is not expected to free
// it back to alloc (a non-recyclable allocation's memory is retired with
// the TCB, as distinct from the recyclable variant below).
type AllocateDedicatedStack struct {
	Alloc StackAllocator
}

// ReadArg reads the stack size, in bytes.
func (AllocateDedicatedStack) ReadArg(args tcb.SyscallArgs) any {
	return uint32(args.NextArg())
}

// Apply allocates the stack and points t at its top.
func (i AllocateDedicatedStack) Apply(t *ThreadTCB, arg any) bool {
	size := arg.(uint32)
	base, ok := i.Alloc.AllocateStack(size)
	if !ok {
		return false
	}
	t.stackBase = base
	t.stackPointer = base + uintptr(size)
	t.stackSize = size
	t.kernelOwned = true
	return true
}

// AllocateDedicatedRecyclableStack is AllocateDedicatedStack's recyclable
// counterpart: the same allocation, but FinishThread calls
// Alloc.FreeStack(t.StackBase()) before releasing the TCB, so the memory
// can be handed to a future create-thread call.
type AllocateDedicatedRecyclableStack struct {
	Alloc StackAllocator
}

// ReadArg reads the stack size, in bytes.
func (AllocateDedicatedRecyclableStack) ReadArg(args tcb.SyscallArgs) any {
	return uint32(args.NextArg())
}

// Apply allocates the stack and points t at its top.
func (i AllocateDedicatedRecyclableStack) Apply(t *ThreadTCB, arg any) bool {
	size := arg.(uint32)
	base, ok := i.Alloc.AllocateStack(size)
	if !ok {
		return false
	}
	t.stackBase = base
	t.stackPointer = base + uintptr(size)
	t.stackSize = size
	t.kernelOwned = true
	t.recyclable = true
	return true
}

// PreallocatedStack is the argument AssignPreallocatedStack.ReadArg
// assembles from two sequential words, in declaration order: pointer,
// then size.
type PreallocatedStack struct {
	Base uintptr
	Size uint32
}

// AssignPreallocatedStack points a TCB at caller-owned stack memory. The
// kernel neither allocates nor frees it.
type AssignPreallocatedStack struct{}

// ReadArg reads the pointer, then the size, in that order.
func (AssignPreallocatedStack) ReadArg(args tcb.SyscallArgs) any {
	base := args.NextArg()
	size := uint32(args.NextArg())
	return PreallocatedStack{Base: base, Size: size}
}

// Apply points t at the caller-supplied stack. It cannot fail.
func (AssignPreallocatedStack) Apply(t *ThreadTCB, arg any) bool {
	s := arg.(PreallocatedStack)
	t.stackBase = s.Base
	t.stackPointer = s.Base + uintptr(s.Size)
	t.stackSize = s.Size
	t.kernelOwned = false
	return true
}

// SetupExecutionContext invokes an architecture context builder to write a
// valid execution-context frame, at the entry point given, to the TCB's
// (already-assigned) stack.
type SetupExecutionContext struct {
	Builder ArchContextBuilder
}

// ReadArg reads the entry point.
func (SetupExecutionContext) ReadArg(args tcb.SyscallArgs) any {
	return args.NextArg()
}

// Apply delegates to the architecture context builder. It can fail (e.g.
// the assigned stack is too small to hold the initial frame).
func (i SetupExecutionContext) Apply(t *ThreadTCB, arg any) bool {
	entry := arg.(uintptr)
	return i.Builder.BuildThreadContext(t, entry)
}

// AssignUniqueIdentifier assigns a caller-chosen task identifier. Uniqueness
// is the caller's responsibility; this initializer only stores the value.
type AssignUniqueIdentifier struct{}

// ReadArg reads the identifier.
func (AssignUniqueIdentifier) ReadArg(args tcb.SyscallArgs) any {
	return uint32(args.NextArg())
}

// Apply sets t's identifier. It cannot fail.
func (AssignUniqueIdentifier) Apply(t *ThreadTCB, arg any) bool {
	t.SetID(arg.(uint32))
	return true
}

// AssignPriority assigns a task's scheduling priority.
type AssignPriority struct{}

// ReadArg reads the priority.
func (AssignPriority) ReadArg(args tcb.SyscallArgs) any {
	return uint8(args.NextArg())
}

// Apply sets t's priority. It cannot fail.
func (AssignPriority) Apply(t *ThreadTCB, arg any) bool {
	t.SetPriority(arg.(uint8))
	return true
}
