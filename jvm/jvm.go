/*
 * bootjvm - A Java virtual machine core
 * Licensed under Mozilla Public License 2.0 (MPL 2.0)
 */

// Package jvm wires together the class table (classloader), object table
// (object), thread table (thread), and heap/gc into the outer execution
// engine: the three-phase per-tick driver (C7's Process hook for the
// Running state) and the C8 bytecode interpreter it calls into.
// Grounded on artipop-jacobin/src/jvm/*.go, adapted from its
// package-level-globals style to an explicit *JVM receiver so that
// cmd/jstat and the tests can run multiple independent instances.
package jvm

import (
	"fmt"

	"bootjvm/gc"
	"bootjvm/globals"
	"bootjvm/heap"
	"bootjvm/log"
	"bootjvm/object"
	"bootjvm/thread"
	"bootjvm/trace"
)

// JVM bundles the tables the interpreter needs. The class table
// (classloader) stays package-level exactly as artipop-jacobin keeps it,
// since classes are process-global; objects and threads are
// instance-scoped so a diagnostic tool can stand up a throwaway JVM.
type JVM struct {
	Heap     *heap.Heap
	GC       gc.Collector
	Objects  *object.Table
	Threads  *thread.Table
	Statics  map[string]StaticValue
}

type StaticValue struct {
	Type string // descriptor character
	I    int64
	F    float64
	Ref  int
}

// New builds a JVM instance with a stub collector. Base classes are not
// loaded here or by Init; callers run classloader.Init first.
func New() *JVM {
	g := gc.StubCollector{}
	h := heap.New(func(bool) {})
	return &JVM{
		Heap:    h,
		GC:      g,
		Objects: object.NewTable(h, g),
		Threads: thread.NewTable(),
		Statics: make(map[string]StaticValue),
	}
}

// Init performs one-time VM bring-up: it wires globals.FuncThrowException
// so classloader can report exceptions without importing package jvm
// (see globals.Globals' doc comment on that field for the cycle it
// avoids). The wired function logs the exception; it does not raise it.
func (j *JVM) Init() error {
	g := globals.GetGlobalRef()
	g.FuncThrowException = func(excName, msg string) {
		trace.Error(fmt.Sprintf("%s: %s", excName, msg))
		_ = log.Log(fmt.Sprintf("exception during class loading: %s: %s", excName, msg), log.SEVERE)
	}
	return nil
}
