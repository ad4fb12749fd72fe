//go:build !linux

package main

// pinToCPU is a no-op outside Linux: there is no portable affinity API, so
// the SMP demo falls back to letting the Go scheduler place the goroutine.
func pinToCPU(cpu int) {}
