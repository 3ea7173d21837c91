/*
 * bootjvm - A Java virtual machine core
 * Licensed under Mozilla Public License 2.0 (MPL 2.0)
 */

package jvm

import (
	"fmt"
	"os"
	"runtime/debug"

	"bootjvm/globals"
	"bootjvm/thread"
)

// ShowFrameStack prints th's current JVM frame stack to stderr when
// globals.JvmFrameStackShown is set, for diagnosing an uncaught
// throwable. Reconstructed from jvm/errors_test.go's observed contract
// (os.Pipe()-captured stderr containing one line per frame, innermost
// first).
func ShowFrameStack(th *thread.ExecThread) {
	g := globals.GetGlobalRef()
	if !g.JvmFrameStackShown || th == nil || th.Stack == nil {
		return
	}
	fmt.Fprintf(os.Stderr, "JVM frame stack for thread %s:\n", th.Name)
	for e := th.Stack.Front(); e != nil; e = e.Next() {
		fmt.Fprintf(os.Stderr, "\t%v\n", e.Value)
	}
}

// ShowGoStackTrace prints the host Go runtime's stack trace to stderr
// when globals.GoStackShown is set, storing it in globals.ErrorGoStack
// too so tests can assert on its content without re-parsing stderr.
func ShowGoStackTrace() {
	g := globals.GetGlobalRef()
	trace := string(debug.Stack())
	g.ErrorGoStack = trace
	if !g.GoStackShown {
		return
	}
	fmt.Fprintln(os.Stderr, trace)
}

// ShowPanicCause prints the recovered panic value to stderr when
// globals.PanicCauseShown is set, the last line of defense for a fault
// inside the interpreter loop itself (distinct from an ordinary Java
// throwable, which never reaches a Go panic).
func ShowPanicCause(cause interface{}) {
	g := globals.GetGlobalRef()
	if !g.PanicCauseShown || cause == nil {
		return
	}
	fmt.Fprintf(os.Stderr, "panic: %v\n", cause)
}
