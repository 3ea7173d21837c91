/*
 * bootjvm - A Java virtual machine core
 * Licensed under Mozilla Public License 2.0 (MPL 2.0)
 */

// Package log provides leveled diagnostic logging for the interpreter,
// classloader, and gfunction layer. Unlike package trace, which always
// prints, Log only emits a message when the configured level admits it.
package log

import (
	"errors"
	"fmt"
	"os"
)

// Level identifies a logging granularity. Lower values are coarser.
type Level int

const (
	SEVERE Level = iota
	WARNING
	INFO
	CLASS
	FINE
	FINEST
	TRACE_INST
)

var levelNames = map[Level]string{
	SEVERE:     "SEVERE",
	WARNING:    "WARNING",
	INFO:       "INFO",
	CLASS:      "CLASS",
	FINE:       "FINE",
	FINEST:     "FINEST",
	TRACE_INST: "TRACE_INST",
}

// LogLevel is the currently active threshold. Messages logged at a level
// finer than LogLevel are discarded.
var LogLevel = WARNING

var initialized = false

// Init prepares the logging subsystem. It is idempotent.
func Init() {
	if initialized {
		return
	}
	LogLevel = WARNING
	initialized = true
}

// SetLogLevel changes the active threshold. It returns an error if level
// is not one of the defined constants.
func SetLogLevel(level Level) error {
	if _, ok := levelNames[level]; !ok {
		return errors.New("log.SetLogLevel: invalid level")
	}
	LogLevel = level
	return nil
}

// Log emits msg to stderr if level is at or coarser than the current
// LogLevel. It always returns nil; the error return exists so call sites
// can discard it uniformly with `_ = log.Log(...)`, matching
// artipop-jacobin's calling convention.
func Log(msg string, level Level) error {
	if level > LogLevel {
		return nil
	}
	_, _ = fmt.Fprintf(os.Stderr, "[%s] %s\n", levelNames[level], msg)
	return nil
}
