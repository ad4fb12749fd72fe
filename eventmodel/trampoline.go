package eventmodel

// Trampoline is the fixed, shared entry point every synthesized event
// handler frame calls into. It runs handler to completion, then re-enters
// the kernel via raiseReturn, carrying oldSP so the kernel can restore the
// shared stack pointer.
//
// How raiseReturn actually re-enters the kernel is architecture-specific;
// corearch/simswitch supplies it as a closure that performs the simulated
// trap.
func Trampoline(handler func(), oldSP uintptr, raiseReturn func(oldSP uintptr)) {
	handler()
	raiseReturn(oldSP)
}
