/*
 * bootjvm - A Java virtual machine core
 * Licensed under Mozilla Public License 2.0 (MPL 2.0)
 */

// Package shutdown enumerates the VM's exit categories and provides the
// single ordered-teardown entry point used whenever the VM must stop.
package shutdown

import "os"

// Exit codes, ordered from spec.md §6: okay, thread, class, method,
// attribute, object, heap allocation, internal, signal.
const (
	OK = iota
	THREAD_EXCEPTION
	CLASS_EXCEPTION
	METHOD_EXCEPTION
	ATTRIBUTE_EXCEPTION
	OBJECT_EXCEPTION
	HEAP_EXCEPTION
	JVM_EXCEPTION
	APP_EXCEPTION
	TEST_EXCEPTION
	UNIT_TEST_EXCEPTION
	SIGNAL_EXCEPTION
)

// teardownHooks run in LIFO order (reverse of init) before the process
// exits. Subsystems register their cleanup via AddTeardownHook.
var teardownHooks []func()

// osExit is overridden by tests so Exit's side effects can be observed
// without killing the test binary.
var osExit = os.Exit

// AddTeardownHook registers fn to run during Exit, before the process
// terminates. Hooks run most-recently-added first.
func AddTeardownHook(fn func()) {
	teardownHooks = append(teardownHooks, fn)
}

// Exit runs every registered teardown hook in reverse order, then
// terminates the process with code.
func Exit(code int) {
	for i := len(teardownHooks) - 1; i >= 0; i-- {
		teardownHooks[i]()
	}
	teardownHooks = nil
	osExit(code)
}
