package eventmodel

import "corekernel/ksvc"

// Well-known service identifiers for the event-driven model's syscalls.
// Integrators assign the real trap/syscall numbers; these are the
// reference numbering used by corearch/simswitch and the tests.
var (
	SendEventID          = ksvc.WithName(1, "send-event")
	EventHandlerReturnID = ksvc.WithName(2, "event-handler-return")
	SetEventHandlerID    = ksvc.WithName(3, "set-event-handler")
	IdleID               = ksvc.WithName(4, "idle")
)
