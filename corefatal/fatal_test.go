package corefatal

import (
	"testing"

	"corekernel/corelog"
)

type recordingSink struct {
	lines []string
}

func (r *recordingSink) WriteLineString(s string) {
	r.lines = append(r.lines, s)
}

var _ corelog.Sink = (*recordingSink)(nil)

func TestHaltRunsHandlerOnce(t *testing.T) {
	ResetForTest()
	defer ResetForTest()

	var calls int
	SetHandler(func(Info) { calls++ })

	Halt(Info{Reason: "first"})
	Halt(Info{Reason: "second"})

	if calls != 1 {
		t.Fatalf("handler ran %d times, want 1", calls)
	}
	if !InHaltMode() {
		t.Fatal("expected InHaltMode to report true after Halt")
	}
}

func TestHaltWritesToSinkWhenNoHandler(t *testing.T) {
	ResetForTest()
	defer ResetForTest()

	rec := &recordingSink{}
	SetSink(rec)
	Halt(Info{Reason: "boom"})

	if len(rec.lines) != 1 {
		t.Fatalf("sink got %d lines, want 1", len(rec.lines))
	}
}
