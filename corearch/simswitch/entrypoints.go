package simswitch

import (
	"sync"
	"sync/atomic"
)

// EntryPoints lets a thread's entry point travel through a uintptr-sized
// argument the same way eventmodel.HandlerTokens lets an event handler's
// function pointer travel through one: a real architecture writes the raw
// code address into the new stack frame; this reference architecture
// issues an opaque token that decodes back to the original func() on this
// side of the trap.
type EntryPoints struct {
	seq  atomic.Uint32
	mu   sync.RWMutex
	byID map[uintptr]func()
}

// NewEntryPoints creates an empty entry-point table.
func NewEntryPoints() *EntryPoints {
	return &EntryPoints{byID: make(map[uintptr]func())}
}

// Issue registers fn and returns a token that Resolve will later turn back
// into fn.
func (e *EntryPoints) Issue(fn func()) uintptr {
	id := uintptr(e.seq.Add(1))
	e.mu.Lock()
	e.byID[id] = fn
	e.mu.Unlock()
	return id
}

// Resolve turns a token back into the func() it was issued for, or nil if
// token is unknown.
func (e *EntryPoints) Resolve(token uintptr) func() {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.byID[token]
}
