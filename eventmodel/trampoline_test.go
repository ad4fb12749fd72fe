package eventmodel

import "testing"

func TestTrampolineRunsHandlerThenReturns(t *testing.T) {
	var order []string
	handler := func() { order = append(order, "handler") }
	raiseReturn := func(oldSP uintptr) {
		order = append(order, "return")
		if oldSP != 0x10 {
			t.Fatalf("raiseReturn got oldSP %#x, want 0x10", oldSP)
		}
	}

	Trampoline(handler, 0x10, raiseReturn)

	if len(order) != 2 || order[0] != "handler" || order[1] != "return" {
		t.Fatalf("ran in order %v, want [handler return]", order)
	}
}
