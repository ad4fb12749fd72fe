package kernelbind

import "testing"

type fakeScheduler struct{ name string }

func TestBindAndGet(t *testing.T) {
	defer Reset()
	Bind[*fakeScheduler](&fakeScheduler{name: "a"})
	got := Get[*fakeScheduler]()
	if got.name != "a" {
		t.Fatalf("Get returned %+v, want name=a", got)
	}
}

func TestDoubleBindPanics(t *testing.T) {
	defer Reset()
	Bind[*fakeScheduler](&fakeScheduler{name: "a"})
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic on second Bind")
		}
	}()
	Bind[*fakeScheduler](&fakeScheduler{name: "b"})
}

func TestGetUnboundPanics(t *testing.T) {
	defer Reset()
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic on Get of unbound type")
		}
	}()
	Get[*fakeScheduler]()
}

func TestLookupUnboundOK(t *testing.T) {
	defer Reset()
	if _, ok := Lookup[*fakeScheduler](); ok {
		t.Fatal("expected Lookup to report false for unbound type")
	}
}

func TestResetClearsBindings(t *testing.T) {
	Bind[*fakeScheduler](&fakeScheduler{name: "a"})
	Reset()
	if _, ok := Lookup[*fakeScheduler](); ok {
		t.Fatal("expected Lookup to report false after Reset")
	}
}
