/*
 * bootjvm - A Java virtual machine core
 * Licensed under Mozilla Public License 2.0 (MPL 2.0)
 */

// Package globals holds the one process-wide JVM state record described
// in spec.md §3 ("Global JVM state"). Per Design Note "Global mutable
// state", every field lives in a single struct reachable only through
// GetGlobalRef, rather than as scattered package-level variables.
package globals

import "sync"

// Globals is the process-wide JVM context.
type Globals struct {
	JacobinName string // argv[0], kept under artipop-jacobin's historical field name
	StartingClass string
	StartingJar   string
	Classpath     string
	JavaHome      string

	StrictJDK         bool
	MaxJavaVersion    int   // human-readable (e.g. 17)
	MaxJavaVersionRaw int   // class-file major version (e.g. 61)

	// Trace flags, each gating one subsystem's verbose trace.Trace calls.
	TraceClass  bool
	TraceCloadi bool
	TraceInst   bool

	// Diagnostic switches: jvm/errors.go prints each kind of diagnostic
	// only while its flag is set, and never changes the flags itself
	// (mirrors artipop-jacobin's errors_test.go contract).
	JvmFrameStackShown bool
	GoStackShown       bool
	PanicCauseShown    bool
	ErrorGoStack       string

	ArgsCount int

	exitNow bool

	// FuncThrowException lets the classloader raise a JVM exception
	// without importing package jvm (which itself imports classloader),
	// breaking what would otherwise be a dependency cycle. jvm.Init
	// wires this at boot to a function that logs the exception.
	FuncThrowException func(excName string, msg string)
}

var (
	mu  sync.Mutex
	ref *Globals
)

// InitGlobals creates a fresh Globals, stores it as the singleton, and
// returns it. jacobinName is conventionally os.Args[0].
func InitGlobals(jacobinName string) *Globals {
	mu.Lock()
	defer mu.Unlock()
	ref = &Globals{
		JacobinName:       jacobinName,
		MaxJavaVersion:    17,
		MaxJavaVersionRaw: 61,
		FuncThrowException: func(string, string) {},
	}
	return ref
}

// GetGlobalRef returns the process-wide Globals, creating a default one
// on first use so packages that only read config (rather than drive
// startup) never see a nil pointer.
func GetGlobalRef() *Globals {
	mu.Lock()
	defer mu.Unlock()
	if ref == nil {
		ref = &Globals{
			MaxJavaVersion:     17,
			MaxJavaVersionRaw:  61,
			FuncThrowException: func(string, string) {},
		}
	}
	return ref
}

// SetExitNow and ExitNow back the CLI's -help/-showversion "handled,
// don't run a program" signal.
func (g *Globals) SetExitNow(v bool) { g.exitNow = v }
func (g *Globals) ExitNow() bool     { return g.exitNow }
