//go:build linux

package main

import (
	"runtime"

	"golang.org/x/sys/unix"
)

// pinToCPU locks the calling goroutine to its own OS thread and pins that
// thread to cpu, giving the SMP demo an actual one-dispatcher-per-core
// placement instead of leaving it to the Go scheduler.
func pinToCPU(cpu int) {
	runtime.LockOSThread()
	var set unix.CPUSet
	set.Zero()
	set.Set(cpu)
	_ = unix.SchedSetaffinity(0, &set)
}
