package simswitch

import (
	"sync"
	"unsafe"
)

// HeapAllocator is a reference threadmodel.StackAllocator backed by the Go
// heap: each AllocateStack call is a byte slice, and the "base address" is
// that slice's first element's address reinterpreted as a uintptr. It
// exists so the thread model can be exercised without a real memory
// manager; it never reclaims freed slices back to an arena, it just drops
// the reference and lets the garbage collector do it.
type HeapAllocator struct {
	mu   sync.Mutex
	bufs map[uintptr][]byte
}

// NewHeapAllocator creates an empty allocator.
func NewHeapAllocator() *HeapAllocator {
	return &HeapAllocator{bufs: make(map[uintptr][]byte)}
}

// AllocateStack implements threadmodel.StackAllocator.
func (a *HeapAllocator) AllocateStack(size uint32) (uintptr, bool) {
	if size == 0 {
		return 0, false
	}
	buf := make([]byte, size)
	base := uintptr(unsafe.Pointer(&buf[0]))
	a.mu.Lock()
	a.bufs[base] = buf
	a.mu.Unlock()
	return base, true
}

// FreeStack implements threadmodel.StackAllocator.
func (a *HeapAllocator) FreeStack(base uintptr) {
	a.mu.Lock()
	delete(a.bufs, base)
	a.mu.Unlock()
}
