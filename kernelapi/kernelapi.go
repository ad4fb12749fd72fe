// Package kernelapi declares the contracts the core consumes from the
// kernel integrator: the scheduler and the task controller. The core
// never implements these, only calls them from service routines.
package kernelapi

// Scheduler owns the ready/blocked sets for one dispatcher instance. It is
// authoritative over what runs next, including whether a newly created or
// newly signaled task preempts the caller immediately.
type Scheduler[Task any] interface {
	// OnTaskCreated is called after a new task has been fully initialized
	// (thread creation) or signaled (event dispatch), and returns the task
	// that should run next.
	OnTaskCreated(current, newTask Task) Task
	// OnTaskFinished is called after a task has released its resources
	// (thread exit) or returned control to the kernel (event handler
	// return), and returns the task that should run next.
	OnTaskFinished(current Task) Task
}

// TaskController owns TCB storage for one dispatcher instance.
type TaskController[Task any] interface {
	// Allocate returns a free TCB, or the zero value and false if none
	// remain.
	Allocate() (Task, bool)
	// Release returns a TCB to the pool of free TCBs.
	Release(t Task)
}
