// Command coresim runs a small interactive demonstration of the dispatcher
// core: one or more simulated CPUs, each running its own event-driven
// dispatcher against the reference architecture in corearch/simswitch, plus
// a thread model sharing the same reference architecture, and a console
// that turns typed commands into simulated syscalls against either model.
package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strconv"

	"github.com/google/shlex"
	"golang.org/x/sync/errgroup"

	"corekernel/corearch/simswitch"
	"corekernel/corefatal"
	"corekernel/corelog"
	"corekernel/dispatch"
	"corekernel/eventmodel"
	"corekernel/internal/buildinfo"
	"corekernel/kernelapi"
	"corekernel/kernelbind"
	"corekernel/threadmodel"
)

// threadPoolSize bounds the number of live threads the demo's thread model
// can hold at once; create-thread fails once this many are outstanding.
const threadPoolSize = 8

// demoEventNum is the one event the demo installs a handler for at
// startup, so "send-event" has something real to dispatch to.
const demoEventNum = 1

func main() {
	var cpus int
	var events int
	var showVersion bool
	flag.IntVar(&cpus, "cpus", 1, "Number of simulated CPUs (dispatcher goroutines) to run.")
	flag.IntVar(&events, "events", 16, "Capacity of the shared event table.")
	flag.BoolVar(&showVersion, "version", false, "Print the build version and exit.")
	flag.Parse()

	if showVersion {
		fmt.Println(buildinfo.Short())
		return
	}

	sink := corelog.Stderr{}
	corefatal.SetSink(sink)

	shared := &eventmodel.SharedStack{}
	ctrl := eventmodel.NewController(events, shared)

	idle := ctrl.GetRegisteredEvent(0)
	sched := &roundRobinScheduler{idle: idle}
	kernelbind.Bind[kernelapi.Scheduler[*eventmodel.EventTCB]](sched)

	// The demo's one installed handler needs a higher priority than idle's
	// zero, or the preemptive injector never builds it a trampoline frame.
	eventmodel.SetEventHandlerDirect(ctrl, demoEventNum, func() {
		sink.WriteLineString("event: running demo handler")
	})
	ctrl.GetRegisteredEvent(demoEventNum).SetPriority(1)

	sw := simswitch.NewEventSwitcher()
	arch := &simswitch.EventTrampolineBuilder{Switcher: sw}

	pendingEvents := make(chan uint32, 16)

	table := dispatch.NewTable[*eventmodel.EventTCB](dispatch.UnknownService[*eventmodel.EventTCB](sink))
	table.Register(eventmodel.SendEventID, eventmodel.SendEventChecked(ctrl))
	table.Register(eventmodel.EventHandlerReturnID, eventmodel.EventHandlerReturn())
	table.Register(eventmodel.IdleID, idleHandler(ctrl, pendingEvents))

	// idle never runs a real handler; it just traps straight back into the
	// kernel every time it's switched to, so the dispatcher always has a
	// registered body for next.
	sw.RegisterOneShot(idle, func(h *simswitch.TaskHandle[*eventmodel.EventTCB]) {
		h.Trap(eventmodel.IdleID)
	})

	disp := dispatch.New[*eventmodel.EventTCB](sw, table, idle, idle,
		eventmodel.PreemptiveInjector(arch))

	threadAlloc := simswitch.NewHeapAllocator()
	threadSwitcher := simswitch.NewThreadSwitcher()
	threadEntries := simswitch.NewEntryPoints()
	threadArch := &simswitch.ThreadContextBuilder{Switcher: threadSwitcher, Entries: threadEntries}
	threadPool := threadmodel.NewPool(threadPoolSize)
	threadPipeline := []threadmodel.Initializer{
		threadmodel.AllocateDedicatedRecyclableStack{Alloc: threadAlloc},
		threadmodel.SetupExecutionContext{Builder: threadArch},
		threadmodel.AssignUniqueIdentifier{},
		threadmodel.AssignPriority{},
	}
	kernelbind.Bind[kernelapi.Scheduler[*threadmodel.ThreadTCB]](threadScheduler{})
	demoEntry := threadEntries.Issue(func() {
		sink.WriteLineString("thread: running demo body")
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)
	for cpu := 0; cpu < cpus; cpu++ {
		cpu := cpu
		g.Go(func() error {
			return runCPU(gctx, cpu, disp)
		})
	}

	threadDemo := &threadDemoState{
		pool:     threadPool,
		pipeline: threadPipeline,
		alloc:    threadAlloc,
		switcher: threadSwitcher,
		entry:    demoEntry,
		idle:     &threadmodel.ThreadTCB{},
	}
	g.Go(func() error {
		return runConsole(gctx, ctrl, pendingEvents, threadDemo)
	})

	if err := g.Wait(); err != nil && err != context.Canceled {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// idleHandler builds the idle service routine: it drains one pending
// event number, if any, and hands the target event off to the scheduler,
// otherwise it just stays idle.
func idleHandler(ctrl *eventmodel.Controller, pending <-chan uint32) dispatch.Handler[*eventmodel.EventTCB] {
	return func(current *eventmodel.EventTCB) *eventmodel.EventTCB {
		select {
		case n := <-pending:
			if target, ok := ctrl.CheckedLookup(n); ok {
				sched := kernelbind.Get[kernelapi.Scheduler[*eventmodel.EventTCB]]()
				return sched.OnTaskCreated(current, target)
			}
		default:
		}
		return current
	}
}

func runCPU(ctx context.Context, cpu int, disp *dispatch.Dispatcher[*eventmodel.EventTCB]) error {
	pinToCPU(cpu)
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
		if !disp.Step() {
			return fmt.Errorf("cpu %d: dispatcher halted", cpu)
		}
	}
}

// threadDemoState holds everything runConsole needs to raise a simulated
// create-thread syscall from a typed command and drive the resulting
// thread to completion.
type threadDemoState struct {
	pool     *threadmodel.Pool
	pipeline []threadmodel.Initializer
	alloc    threadmodel.StackAllocator
	switcher *simswitch.ThreadSwitcher
	entry    uintptr
	idle     *threadmodel.ThreadTCB
}

// createThread creates a thread through the kernel-invoked create-thread
// entry shape (CreateThreadDirect) with the given stack size, identifier,
// and priority (the entry point is always the demo's own canned body),
// then switches to the new thread and runs it to
// completion, exactly the way a dispatcher's Step would, but without a
// second persistent per-CPU loop for the demo to manage.
func (d *threadDemoState) createThread(size uint32, id uint32, priority uint8) (uint32, bool) {
	t, ok := threadmodel.CreateThreadDirect(d.pool, d.pipeline, []any{size, d.entry, id, priority})
	if !ok {
		return 0, false
	}
	if d.switcher.SwitchTask(d.idle, t) != threadmodel.FinishThreadID {
		return 0, false
	}
	threadmodel.FinishThread(d.pool, d.alloc)(t)
	return id, true
}

// threadScheduler is the reference kernelapi.Scheduler used by the
// thread-model half of the demo: a created thread runs next, and a
// finished thread is simply returned as current, since the demo drives
// each thread directly and discards FinishThread's result.
type threadScheduler struct{}

func (threadScheduler) OnTaskCreated(current, newTask *threadmodel.ThreadTCB) *threadmodel.ThreadTCB {
	return newTask
}

func (threadScheduler) OnTaskFinished(current *threadmodel.ThreadTCB) *threadmodel.ThreadTCB {
	return current
}

// runConsole reads lines of the form "send-event N", "create-thread SIZE
// ID PRIO", or "quit", using shlex to split quoted arguments the way a
// real shell would. "send-event" queues the event number for the idle
// routine to hand to the scheduler; "create-thread" runs createThread.
func runConsole(ctx context.Context, ctrl *eventmodel.Controller, pendingEvents chan<- uint32, threads *threadDemoState) error {
	scanner := bufio.NewScanner(os.Stdin)
	for scanner.Scan() {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
		fields, err := shlex.Split(scanner.Text())
		if err != nil || len(fields) == 0 {
			continue
		}
		switch fields[0] {
		case "send-event":
			if len(fields) < 2 {
				continue
			}
			n, err := strconv.Atoi(fields[1])
			if err != nil {
				continue
			}
			target, ok := ctrl.CheckedLookup(uint32(n))
			if !ok {
				fmt.Printf("event %d out of range\n", n)
				continue
			}
			if target.Handler() == nil {
				fmt.Printf("event %d has no handler installed\n", n)
				continue
			}
			select {
			case pendingEvents <- uint32(n):
				fmt.Printf("event %d queued\n", n)
			default:
				fmt.Printf("event %d dropped: queue full\n", n)
			}
		case "create-thread":
			if len(fields) < 4 {
				continue
			}
			size, err1 := strconv.ParseUint(fields[1], 10, 32)
			id, err2 := strconv.ParseUint(fields[2], 10, 32)
			prio, err3 := strconv.ParseUint(fields[3], 10, 8)
			if err1 != nil || err2 != nil || err3 != nil {
				continue
			}
			if _, ok := threads.createThread(uint32(size), uint32(id), uint8(prio)); ok {
				fmt.Printf("thread %d finished\n", id)
			} else {
				fmt.Printf("thread %d failed to start\n", id)
			}
		case "quit":
			return context.Canceled
		}
	}
	return scanner.Err()
}

// roundRobinScheduler is the reference kernelapi.Scheduler used by the
// demo: a newly signaled task runs next; a finished task hands the CPU
// back to idle.
type roundRobinScheduler struct {
	idle *eventmodel.EventTCB
}

func (s *roundRobinScheduler) OnTaskCreated(current, newTask *eventmodel.EventTCB) *eventmodel.EventTCB {
	return newTask
}

func (s *roundRobinScheduler) OnTaskFinished(current *eventmodel.EventTCB) *eventmodel.EventTCB {
	return s.idle
}
