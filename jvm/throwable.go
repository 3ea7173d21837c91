/*
 * bootjvm - A Java virtual machine core
 * Licensed under Mozilla Public License 2.0 (MPL 2.0)
 */

package jvm

import (
	"fmt"
	"strings"

	"bootjvm/classloader"
	"bootjvm/excNames"
	"bootjvm/shutdown"
	"bootjvm/thread"
	"bootjvm/trace"
)

// LoadRunThrowable raises the named throwable on threadIdx. The isRetry
// argument of loadRunThrowable keeps it from recursing more than once,
// per spec.md §4.8's "global calling-linkage-error latch": the first
// fault while raising a throwable retries with LinkageError, the second
// gives up and terminates the JVM. The flag travels with the call, so
// no package-global fault state is kept.
func (j *JVM) LoadRunThrowable(name string, threadIdx int) error {
	return j.loadRunThrowable(name, threadIdx, false)
}

func (j *JVM) loadRunThrowable(name string, threadIdx int, isRetry bool) error {
	hash, err := j.InstantiateClass(name, threadIdx, true)
	if err != nil {
		if isRetry {
			trace.Error(fmt.Sprintf("double fault raising %s: %v", name, err))
			shutdown.Exit(shutdown.JVM_EXCEPTION)
			return fmt.Errorf("double fault: %s", name)
		}
		trace.Warning(fmt.Sprintf("fault while raising %s (%v); retrying with LinkageError", name, err))
		return j.loadRunThrowable(excNames.LinkageError, threadIdx, true)
	}

	// Mark-ref then immediately unmark-ref: the instance must be
	// GC-visible while classification runs, but nothing in the core
	// keeps a durable reference to a thrown instance once dispatch
	// completes, per spec.md §4.8 step 3.
	j.GC.ObjectMkrefFromObject(0, hash)
	j.GC.ObjectRmrefFromObject(0, hash)

	th := j.Threads.Get(threadIdx)
	if th == nil {
		return fmt.Errorf("loadRunThrowable: unknown thread %d", threadIdx)
	}
	th.PendingThrowable = name
	classify(th, name)
	return nil
}

// classify sets the thread's threw-* status bits per §4.8's taxonomy,
// driving the outer loop's decision of whether the thread can recover
// (Exception) or must complete (Error/uncaught).
func classify(th *thread.ExecThread, name string) {
	switch excNames.ClassifyThrowable(name) {
	case excNames.KindException:
		th.Status.ThrewException = true
	case excNames.KindLinkageError, excNames.KindVirtualMachineError:
		th.Status.ThrewError = true
	default:
		th.Status.ThrewThrowable = true
	}
}

// throwEvent is athrow's error value: the thrown throwable's class name
// plus, since athrow always pops an already-instantiated object, the
// hash of that exact instance. runFrame's catch-table match pushes hash
// back onto the handler's operand stack so a caught exception is the
// same object the program threw, not a freshly-minted one. Errors
// raised directly by an opcode handler (ArithmeticException, a null
// dereference, ...) have no backing instance yet, so they carry hash 0
// and matchHandler's caller instantiates one on the way into the
// handler — see runFrame.
type throwEvent struct {
	name string
	hash int
}

func (e *throwEvent) Error() string { return e.name }

// dispatchThrow is athrow's handler: classify and record the pending
// throwable, then return a throwEvent carrying both its class name and
// its object hash so runFrame's catch-table match can recover the exact
// thrown instance. A throw with no matching handler propagates to the
// thread boundary exactly as before.
func (j *JVM) dispatchThrow(objHash, threadIdx int) error {
	obj := j.Objects.Get(objHash)
	name := "java/lang/Throwable"
	if obj != nil {
		if k := classNameOf(obj.ClassIdx); k != "" {
			name = k
		}
	}
	th := j.Threads.Get(threadIdx)
	if th != nil {
		th.PendingThrowable = name
		classify(th, name)
	}
	return &throwEvent{name: name, hash: objHash}
}

// throwableInfo recovers a thrown throwable's class name and, if one
// already exists (an explicit athrow), its object hash, from whatever
// error value an opcode handler returned.
func throwableInfo(err error) (name string, hash int) {
	if te, ok := err.(*throwEvent); ok {
		return te.name, te.hash
	}
	msg := err.Error()
	if i := strings.Index(msg, ": "); i >= 0 {
		return msg[:i], 0
	}
	return msg, 0
}

// matchHandler finds the first exception-table entry covering pc whose
// catch type matches name, or is the universal handler (CatchType 0,
// the classfile format's "catch anything" marker). Matching is by exact
// class name rather than a supertype walk — the same narrowing
// checkcast/instanceof already apply, since there is no full class
// hierarchy loaded to search (see DESIGN.md's Open Question decisions).
func matchHandler(exc []classloader.CodeException, pc int, name string) (int, bool) {
	for _, e := range exc {
		if pc < e.StartPc || pc >= e.EndPc {
			continue
		}
		if e.CatchType == 0 || classNameOf(e.CatchType) == name {
			return e.HandlerPc, true
		}
	}
	return 0, false
}

// clearPendingThrowable resets the thread-level bookkeeping a throw set,
// once a matching catch handler has taken over the throwable.
func clearPendingThrowable(th *thread.ExecThread) {
	if th == nil {
		return
	}
	th.PendingThrowable = ""
	th.Status.ThrewException = false
	th.Status.ThrewError = false
	th.Status.ThrewThrowable = false
}

// UncaughtHandler runs when an exception or error reaches the thread
// boundary unhandled: spec.md §4.8's ThreadGroup.uncaughtException path.
// A bootstrap VM has no real ThreadGroup class loaded yet, so this
// reports the event the same way and moves the thread to Complete.
func (j *JVM) UncaughtHandler(threadIdx int) {
	th := j.Threads.Get(threadIdx)
	if th == nil {
		return
	}
	th.Status.ThrewUncaught = true
	trace.Error(fmt.Sprintf("uncaught %s in thread %s", th.PendingThrowable, th.Name))
	th.Request(thread.Complete)
}

func classNameOf(classIdx int) string {
	k := classloader.MethAreaFetchByIndex(classIdx)
	if k == nil || k.Data == nil {
		return ""
	}
	return k.Data.Name
}
