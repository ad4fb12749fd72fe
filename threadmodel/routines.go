package threadmodel

import (
	"corekernel/dispatch"
	"corekernel/kernelapi"
	"corekernel/kernelbind"
	"corekernel/tcb"
)

// runPipeline applies each initializer to t in order, stopping at the
// first failure. getArg supplies the already-read-or-supplied argument
// for initializer i; the two entry shapes below differ only in how
// getArg is implemented.
func runPipeline(t *ThreadTCB, pipeline []Initializer, getArg func(i int, init Initializer) any) bool {
	for i, init := range pipeline {
		if !init.Apply(t, getArg(i, init)) {
			return false
		}
	}
	return true
}

// CreateThread builds the create-thread service routine for the
// syscall-invoked entry shape. pipeline is fixed at construction time, in
// the order its initializers are meant to run; each initializer's
// argument is read from current's own sequential syscall arguments, in
// pipeline order.
func CreateThread(pool *Pool, pipeline []Initializer) dispatch.Handler[*ThreadTCB] {
	return func(current *ThreadTCB) *ThreadTCB {
		t, ok := pool.Allocate()
		if !ok {
			current.SetKernelReturn(tcb.KernelReturnFailure)
			return current
		}

		ok = runPipeline(t, pipeline, func(_ int, init Initializer) any {
			return init.ReadArg(current)
		})
		if !ok {
			pool.Release(t)
			current.SetKernelReturn(tcb.KernelReturnFailure)
			return current
		}

		t.SetState(tcb.StateReady)
		current.SetKernelReturn(tcb.KernelReturnOK)
		sched := kernelbind.Get[kernelapi.Scheduler[*ThreadTCB]]()
		return sched.OnTaskCreated(current, t)
	}
}

// CreateThreadDirect is the kernel-invoked entry shape for create-thread:
// args supplies one value per pipeline initializer, already decoded,
// rather than reading them from a trapped task's syscall arguments.
func CreateThreadDirect(pool *Pool, pipeline []Initializer, args []any) (*ThreadTCB, bool) {
	if len(args) != len(pipeline) {
		return nil, false
	}
	t, ok := pool.Allocate()
	if !ok {
		return nil, false
	}
	ok = runPipeline(t, pipeline, func(i int, _ Initializer) any {
		return args[i]
	})
	if !ok {
		pool.Release(t)
		return nil, false
	}
	t.SetState(tcb.StateReady)
	return t, true
}

// FinishThread builds the finish-thread service routine: releases the
// caller's dedicated stack back to alloc if it is recyclable, returns
// the TCB to pool, and asks the scheduler for the task to run next.
func FinishThread(pool *Pool, alloc StackAllocator) dispatch.Handler[*ThreadTCB] {
	return func(current *ThreadTCB) *ThreadTCB {
		if current.Recyclable() {
			alloc.FreeStack(current.StackBase())
		}
		pool.Release(current)
		sched := kernelbind.Get[kernelapi.Scheduler[*ThreadTCB]]()
		return sched.OnTaskFinished(current)
	}
}
