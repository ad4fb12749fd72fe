// Package simswitch is a reference context switcher and architecture
// context builder pair, backed by goroutines instead of real stacks and
// register frames. It lets the rest of the module run, and be tested, off
// real hardware, standing in for whatever host-specific switching code a
// real target architecture would supply.
//
// A task is represented by a goroutine; "switching to" a task means
// resuming a goroutine blocked waiting for exactly that signal, and
// "trapping into the kernel" means sending on a shared channel the
// dispatcher's SwitchTask call is blocked reading. This mirrors the
// suspend/paired-resume shape of a real architecture's context switch
// without attempting to fake a stack layout.
package simswitch

import (
	"fmt"
	"sync"

	"corekernel/execctx"
	"corekernel/ksvc"
)

// Body is the function a task's goroutine runs. h is the only way the body
// can trap back into the kernel.
type Body[Task interface {
	comparable
	Binder
}] func(h *TaskHandle[Task])

type trapEvent[Task comparable] struct {
	task Task
	id   ksvc.ID
	ctx  *execctx.Context
}

// Binder is the narrow capability a Task must expose for the switcher to
// attach the arguments of its latest trap.
type Binder interface {
	BindContext(*execctx.Context)
}

// ContextSwitcher implements dispatch.Switcher[Task] for any comparable,
// Binder-implementing Task, using one goroutine per task.
type ContextSwitcher[Task interface {
	comparable
	Binder
}] struct {
	mu     sync.Mutex
	resume map[Task]chan struct{}
	bodies map[Task]Body[Task]
	trapCh chan trapEvent[Task]
}

// New creates an empty ContextSwitcher.
func New[Task interface {
	comparable
	Binder
}]() *ContextSwitcher[Task] {
	return &ContextSwitcher[Task]{
		resume: make(map[Task]chan struct{}),
		bodies: make(map[Task]Body[Task]),
		trapCh: make(chan trapEvent[Task]),
	}
}

// RegisterResumable registers task as a persistent task: its goroutine is
// started immediately, but blocks until the first SwitchTask call targets
// it, and every later SwitchTask call resumes the same goroutine from
// wherever it last called Suspend. This is the thread model's shape: a
// dedicated stack that outlives any one trap into the kernel.
func (cs *ContextSwitcher[Task]) RegisterResumable(task Task, body Body[Task]) {
	ch := make(chan struct{})
	cs.mu.Lock()
	cs.resume[task] = ch
	cs.mu.Unlock()
	go func() {
		<-ch
		body(&TaskHandle[Task]{cs: cs, task: task})
	}()
}

// RegisterOneShot registers task's body to be started fresh, as a new
// goroutine, every time a SwitchTask call targets it. This is the
// event-driven model's shape: a handler that runs once to completion and
// has no continuation to resume.
func (cs *ContextSwitcher[Task]) RegisterOneShot(task Task, body Body[Task]) {
	cs.mu.Lock()
	cs.bodies[task] = body
	cs.mu.Unlock()
}

// SwitchTask implements dispatch.Switcher[Task]. from is unused: this
// switcher has nothing further to save for a task beyond what Suspend
// already captured by blocking.
func (cs *ContextSwitcher[Task]) SwitchTask(from, to Task) ksvc.ID {
	cs.mu.Lock()
	ch, resumable := cs.resume[to]
	body, oneShot := cs.bodies[to]
	cs.mu.Unlock()

	switch {
	case resumable:
		ch <- struct{}{}
	case oneShot:
		go body(&TaskHandle[Task]{cs: cs, task: to})
	default:
		panic(fmt.Sprintf("simswitch: SwitchTask: task %v never registered", to))
	}

	ev := <-cs.trapCh
	to.BindContext(ev.ctx)
	return ev.id
}

// TaskHandle is a running task's only way to re-enter the kernel.
type TaskHandle[Task interface {
	comparable
	Binder
}] struct {
	cs   *ContextSwitcher[Task]
	task Task
}

// Suspend traps into the kernel carrying id and args, then blocks until a
// later SwitchTask call resumes this same task. Used by resumable (thread
// model) bodies at every trap except their last.
func (h *TaskHandle[Task]) Suspend(id ksvc.ID, args ...uintptr) {
	h.cs.trapCh <- trapEvent[Task]{task: h.task, id: id, ctx: execctx.New(args...)}
	ch := h.cs.resumeChanFor(h.task)
	<-ch
}

// Trap traps into the kernel carrying id and args and returns without
// blocking. Used by one-shot (event model) bodies, and by a resumable
// body's very last trap before its goroutine exits for good.
func (h *TaskHandle[Task]) Trap(id ksvc.ID, args ...uintptr) {
	h.cs.trapCh <- trapEvent[Task]{task: h.task, id: id, ctx: execctx.New(args...)}
}

func (cs *ContextSwitcher[Task]) resumeChanFor(task Task) chan struct{} {
	cs.mu.Lock()
	defer cs.mu.Unlock()
	ch, ok := cs.resume[task]
	if !ok {
		panic("simswitch: Suspend called by a task with no registered resume channel")
	}
	return ch
}
