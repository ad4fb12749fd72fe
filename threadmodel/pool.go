package threadmodel

import "corekernel/tcb"

// Pool is a fixed-capacity free list of ThreadTCBs, the thread-based
// model's task controller. Capacity is fixed at construction; Allocate
// returns ok=false once exhausted rather than growing.
type Pool struct {
	all  []ThreadTCB
	free []int
}

// NewPool creates a Pool with room for n threads.
func NewPool(n int) *Pool {
	p := &Pool{all: make([]ThreadTCB, n), free: make([]int, n)}
	for i := range p.free {
		p.free[i] = n - 1 - i
		p.all[i].state = tcb.StateFinished
	}
	return p
}

// Allocate implements kernelapi.TaskController. The returned TCB is
// zeroed except for its stack fields, which AssignPreallocatedStack may
// have left populated from a prior tenant when the caller chooses not to
// clear them; CreateThread's pipeline always assigns a fresh stack first.
func (p *Pool) Allocate() (*ThreadTCB, bool) {
	if len(p.free) == 0 {
		return nil, false
	}
	idx := p.free[len(p.free)-1]
	p.free = p.free[:len(p.free)-1]
	t := &p.all[idx]
	t.Reset()
	return t, true
}

// Release implements kernelapi.TaskController. It marks t finished and
// returns its slot to the free list. It does not free t's stack; a
// recyclable stack's release is the caller's responsibility via
// StackAllocator.FreeStack, done before Release in FinishThread.
func (p *Pool) Release(t *ThreadTCB) {
	t.SetState(tcb.StateFinished)
	for i := range p.all {
		if &p.all[i] == t {
			p.free = append(p.free, i)
			return
		}
	}
	panic("threadmodel: Release: tcb not owned by this pool")
}
