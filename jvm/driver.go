/*
 * bootjvm - A Java virtual machine core
 * Licensed under Mozilla Public License 2.0 (MPL 2.0)
 */

package jvm

import (
	"fmt"

	"bootjvm/classloader"
	"bootjvm/thread"
	"bootjvm/types"
)

// maxTicks bounds DriveThread against a thread stuck oscillating between
// states (a BadLogic loop, a monitor that never acquires): a bootstrap
// VM with no preemptive scheduler has nothing else to break the loop.
const maxTicks = 1_000_000

// DriveThread runs th's three-phase state machine to completion (Dead),
// externally forcing the states Process deliberately leaves for a caller
// to drive: Runnable -> Running, Lock -> Acquire (retried every tick
// through TryAcquire), and BadLogic -> Complete, since a forced or
// illegal transition still needs an external nudge onward rather than
// stalling forever in BadLogic. runningAction executes one timeslice of
// bytecode and reports the thread's next requested state.
func (j *JVM) DriveThread(th *thread.ExecThread, runningAction func(*thread.ExecThread) thread.State) error {
	for i := 0; i < maxTicks; i++ {
		switch th.ThisState {
		case thread.Dead:
			return nil
		case thread.Runnable:
			th.Request(thread.Running)
		case thread.Lock:
			if j.TryAcquire(th.LockTarget, th.Index) {
				th.Request(thread.Acquire)
			}
		case thread.BadLogic:
			th.Request(thread.Complete)
		}
		th.Tick(runningAction)
	}
	return fmt.Errorf("thread %s: exceeded %d ticks without reaching Dead", th.Name, maxTicks)
}

// RunProgram is the outer driver's production entry point: resolve
// mainClassName, locate its main([Ljava/lang/String;)V method, and run
// the conventional main thread through new -> start -> runnable ->
// running -> complete -> dead, reporting any uncaught throwable.
func (j *JVM) RunProgram(mainClassName string) error {
	if classloader.MethAreaFetch(mainClassName) == types.BadBinding {
		if _, err := classloader.LoadClassFromNameOnly(classloader.AppCL, mainClassName); err != nil {
			return fmt.Errorf("NoClassDefFoundError: %s", mainClassName)
		}
	}
	entry, err := classloader.FetchMethodAndCP(mainClassName, "main", "([Ljava/lang/String;)V")
	if err != nil {
		return fmt.Errorf("NoSuchMethodError: %s.main([Ljava/lang/String;)V", mainClassName)
	}

	th := thread.CreateThread(j.Threads, "main", 5)
	th.Request(thread.Start)

	var runErr error
	runningAction := func(t *thread.ExecThread) thread.State {
		if err := j.invokeMethod(entry.ClassIdx, entry.Meth, t.Index, nil); err != nil {
			runErr = err
			j.UncaughtHandler(t.Index)
		}
		return thread.Complete
	}

	if err := j.DriveThread(th, runningAction); err != nil {
		return err
	}
	return runErr
}
