// Package dispatch implements the core's dispatcher loop, its abstract
// context switcher contract, its service routine mapper, and its code
// injector pipeline. These are the pieces that are identical whether the
// concrete execution model is event-driven (package eventmodel) or
// thread-based (package threadmodel): only the TCB type and the
// registered handlers differ.
//
// Task is constrained to comparable so the dispatcher can detect a
// contract-violating nil/zero "next" task without requiring every TCB
// type to implement an explicit validity check; concrete TCBs are always
// pointers in this module, so the zero value is simply nil.
package dispatch

import "corekernel/ksvc"

// Switcher is the abstract context switcher: the single operation that
// saves the interrupted task's context and restores the next task's,
// returning only when control re-enters the kernel. It is the only
// suspension point in the dispatcher loop; every other step in Step is
// non-blocking and bounded.
type Switcher[Task comparable] interface {
	SwitchTask(from, to Task) ksvc.ID
}
