package threadmodel

import "corekernel/ksvc"

// Well-known service identifiers for the thread-based model's syscalls.
// Integrators assign the real trap/syscall numbers; these are the
// reference numbering used by corearch/simswitch and the tests.
var (
	CreateThreadID = ksvc.WithName(10, "create-thread")
	FinishThreadID = ksvc.WithName(11, "finish-thread")
)
