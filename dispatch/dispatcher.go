package dispatch

import (
	"corekernel/corefatal"
)

// Dispatcher is the infinite fetch/switch/handle loop. It is
// constructed with (prev, next): if the system has an idle task, the
// caller passes it as prev (pretending it was running) and the first task
// to actually run as next.
type Dispatcher[Task comparable] struct {
	sw        Switcher[Task]
	mp        Mapper[Task]
	injectors []Injector[Task]

	prev, next Task
}

// New constructs a Dispatcher.
func New[Task comparable](sw Switcher[Task], mp Mapper[Task], prev, next Task, injectors ...Injector[Task]) *Dispatcher[Task] {
	return &Dispatcher[Task]{sw: sw, mp: mp, injectors: injectors, prev: prev, next: next}
}

// Prev returns the task that was interrupted on the last completed cycle.
func (d *Dispatcher[Task]) Prev() Task { return d.prev }

// Next returns the task selected to run on the next cycle.
func (d *Dispatcher[Task]) Next() Task { return d.next }

// Step runs exactly one dispatch cycle:
//
//  1. Run every configured injector, in declared order, with (prev, next).
//  2. Invoke the switcher; receive a service identifier.
//  3. Set prev to the task that just trapped into the kernel.
//  4. Resolve a handler from the mapper and call it with prev to get next.
//
// Step reports false, and calls corefatal.Halt, if the mapper or the
// handler violated their contract: a handler must not be nil, and must
// return a non-nil next task. Once halted, a Dispatcher must not
// be stepped again; Step returns false immediately on every subsequent
// call without re-running the cycle.
func (d *Dispatcher[Task]) Step() bool {
	if corefatal.InHaltMode() {
		return false
	}

	for _, inject := range d.injectors {
		inject(d.prev, d.next)
	}

	id := d.sw.SwitchTask(d.prev, d.next)

	d.prev = d.next

	handler := d.mp.Resolve(id)
	if handler == nil {
		corefatal.Halt(corefatal.Info{ServiceID: id, Reason: "mapper returned a nil handler"})
		return false
	}

	next := handler(d.prev)
	if isZero(next) {
		corefatal.Halt(corefatal.Info{ServiceID: id, Reason: "handler returned a nil/zero next task"})
		return false
	}
	d.next = next
	return true
}

// Run steps forever. It returns only once Step reports a contract
// violation; on real hardware there is nothing further to return to, so
// callers outside tests should treat a Run that returns as a fatal event
// already reported through corefatal.
func (d *Dispatcher[Task]) Run() {
	for d.Step() {
	}
}

func isZero[Task comparable](v Task) bool {
	var zero Task
	return v == zero
}
