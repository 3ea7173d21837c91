/*
 * bootjvm - A Java virtual machine core
 * Licensed under Mozilla Public License 2.0 (MPL 2.0)
 */

// Package trace provides the VM's unconditional operational logging:
// load/link milestones, warnings, and hard errors. It is deliberately
// simpler than package log: it has no levels and no filtering, and is
// meant for messages an operator always wants to see.
package trace

import (
	"fmt"
	"os"
	"time"
)

// Trace writes an informational, always-on trace line to stderr.
func Trace(msg string) {
	emit("TRACE", msg)
}

// Warning writes a recoverable-condition line to stderr.
func Warning(msg string) {
	emit("WARNING", msg)
}

// Error writes a hard-error line to stderr.
func Error(msg string) {
	emit("ERROR", msg)
}

func emit(tag, msg string) {
	ts := time.Now().Format("15:04:05.000")
	_, _ = fmt.Fprintf(os.Stderr, "[%s] %s: %s\n", ts, tag, msg)
}
