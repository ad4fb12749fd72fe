package dispatch

import (
	"corekernel/corefatal"
	"corekernel/corelog"
	"corekernel/ksvc"
)

// UnknownService builds the well-known "unknown identifier" fallback:
// logs the unrecognized identifier and halts the dispatcher. Once invoked,
// corefatal is in halt mode and the dispatcher's next Step call reports
// false regardless of the Task value returned here.
func UnknownService[Task comparable](sink corelog.Sink) UnknownHandler[Task] {
	return func(id ksvc.ID, current Task) Task {
		corefatal.SetSink(sink)
		corefatal.Halt(corefatal.Info{ServiceID: id, Reason: "unknown service identifier: " + id.String()})
		return current
	}
}
