/*
 * bootjvm - A Java virtual machine core
 * Licensed under Mozilla Public License 2.0 (MPL 2.0)
 */

package jvm

import (
	"bootjvm/classloader"
	"bootjvm/heap"
)

// Snapshot is a plain data struct the core publishes for cmd/jstat to
// render; it carries no behavior and the core has no dependency back
// onto the rendering layer.
type Snapshot struct {
	LoadedClasses int
	HeapStats     heap.Stats
	ThreadCount   int
	ThreadStates  []ThreadSnapshot
}

type ThreadSnapshot struct {
	Index int
	Name  string
	State string
}

// TakeSnapshot gathers a point-in-time Snapshot of j's tables.
func (j *JVM) TakeSnapshot() Snapshot {
	s := Snapshot{
		LoadedClasses: classloader.GetCountOfLoadedClasses(),
		HeapStats:     j.Heap.Stats(),
	}
	for _, th := range j.Threads.All() {
		s.ThreadCount++
		s.ThreadStates = append(s.ThreadStates, ThreadSnapshot{Index: th.Index, Name: th.Name, State: th.ThisState.String()})
	}
	return s
}
