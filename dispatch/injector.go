package dispatch

// Injector is a stateless pre-switch hook invoked with exactly the (prev,
// next) pair that will be handed to the switcher on this iteration.
// Injectors run in their declared order, and all complete
// before the switcher is invoked; they exist to bridge policy-free
// dispatching with model-specific context preparation (e.g. synthesizing a
// trampoline frame) without polluting service routines.
type Injector[Task comparable] func(prev, next Task)
