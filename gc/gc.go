/*
 * bootjvm - A Java virtual machine core
 * Licensed under Mozilla Public License 2.0 (MPL 2.0)
 */

// Package gc defines the abstract reference-tracking hooks of
// spec.md §4.2, invoked by the class table (C3) and object table (C4) on
// every reference-creating or reference-destroying event. The core
// never assumes which Collector implementation is installed; it is only
// required to call the hooks at the prescribed points.
package gc

// Collector is the GC interface every create/link/unlink event in C3/C4
// must call through. Index parameters are opaque integers (class index,
// object hash, field-lookup index, thread index) — gc does not interpret
// them, it only counts references.
type Collector interface {
	Init()
	Run(removeRefs bool)

	ClassNew(classIdx int)
	ClassReload(oldIdx, newIdx int)
	ClassDelete(classIdx int, deleteClass bool)
	ClassMkrefFromClass(from, to int)
	ClassMkrefFromObject(fromObj, toClass int)
	ClassRmrefFromClass(from, to int)
	ClassRmrefFromObject(fromObj, toClass int)
	ClassFieldMkref(classIdx, fieldLookupIdx int)
	ClassFieldRmref(classIdx, fieldLookupIdx int)

	ObjectNew(objHash int)
	ObjectDelete(objHash int)
	ObjectMkrefFromClass(fromClass, toObj int)
	ObjectMkrefFromObject(fromObj, toObj int)
	ObjectRmrefFromClass(fromClass, toObj int)
	ObjectRmrefFromObject(fromObj, toObj int)
	ObjectFieldMkref(objHash int, fieldLookupIdx int)
	ObjectFieldRmref(objHash int, fieldLookupIdx int)

	StackNew(threadIdx, numLocals int)
	StackMkrefFromJVM(threadIdx, frameIdx int)
	StackRmrefFromJVM(threadIdx, frameIdx int)
	StackDelete(threadIdx int, outFrameCount int)
}

// StubCollector implements Collector as a no-op. It is the default:
// a minimal bootstrap JVM with no collection policy yet, exactly as
// spec.md §1 allows ("a stub collector is acceptable").
type StubCollector struct{}

func (StubCollector) Init()                                {}
func (StubCollector) Run(bool)                              {}
func (StubCollector) ClassNew(int)                          {}
func (StubCollector) ClassReload(int, int)                  {}
func (StubCollector) ClassDelete(int, bool)                 {}
func (StubCollector) ClassMkrefFromClass(int, int)           {}
func (StubCollector) ClassMkrefFromObject(int, int)          {}
func (StubCollector) ClassRmrefFromClass(int, int)           {}
func (StubCollector) ClassRmrefFromObject(int, int)          {}
func (StubCollector) ClassFieldMkref(int, int)               {}
func (StubCollector) ClassFieldRmref(int, int)               {}
func (StubCollector) ObjectNew(int)                          {}
func (StubCollector) ObjectDelete(int)                       {}
func (StubCollector) ObjectMkrefFromClass(int, int)           {}
func (StubCollector) ObjectMkrefFromObject(int, int)          {}
func (StubCollector) ObjectRmrefFromClass(int, int)           {}
func (StubCollector) ObjectRmrefFromObject(int, int)          {}
func (StubCollector) ObjectFieldMkref(int, int)               {}
func (StubCollector) ObjectFieldRmref(int, int)               {}
func (StubCollector) StackNew(int, int)                       {}
func (StubCollector) StackMkrefFromJVM(int, int)              {}
func (StubCollector) StackRmrefFromJVM(int, int)              {}
func (StubCollector) StackDelete(int, int)                    {}

// RefCountCollector is a reference-counting Collector: every class and
// object slot carries a live count of incoming references, incremented
// by Mkref hooks and decremented by Rmref hooks. Run reclaims any class
// or object whose count has reached zero, when removeRefs is true.
type RefCountCollector struct {
	classRefs  map[int]int
	objectRefs map[int]int

	// OnClassUnreachable/OnObjectUnreachable are invoked synchronously
	// from Run when a slot's count reaches zero; the class/object table
	// wires these to its own deletion routine. Left nil, Run just
	// tracks counts without reclaiming anything.
	OnClassUnreachable  func(classIdx int)
	OnObjectUnreachable func(objHash int)
}

// NewRefCountCollector returns a ready-to-use reference-counting
// collector.
func NewRefCountCollector() *RefCountCollector {
	return &RefCountCollector{
		classRefs:  make(map[int]int),
		objectRefs: make(map[int]int),
	}
}

func (c *RefCountCollector) Init() {
	c.classRefs = make(map[int]int)
	c.objectRefs = make(map[int]int)
}

func (c *RefCountCollector) Run(removeRefs bool) {
	if !removeRefs {
		return
	}
	for idx, n := range c.classRefs {
		if n <= 0 && c.OnClassUnreachable != nil {
			c.OnClassUnreachable(idx)
			delete(c.classRefs, idx)
		}
	}
	for idx, n := range c.objectRefs {
		if n <= 0 && c.OnObjectUnreachable != nil {
			c.OnObjectUnreachable(idx)
			delete(c.objectRefs, idx)
		}
	}
}

func (c *RefCountCollector) ClassNew(classIdx int)         { c.classRefs[classIdx] = 0 }
func (c *RefCountCollector) ClassReload(oldIdx, newIdx int) { c.classRefs[newIdx] = c.classRefs[oldIdx] }
func (c *RefCountCollector) ClassDelete(classIdx int, _ bool) { delete(c.classRefs, classIdx) }

func (c *RefCountCollector) ClassMkrefFromClass(_, to int)  { c.classRefs[to]++ }
func (c *RefCountCollector) ClassMkrefFromObject(_, to int) { c.classRefs[to]++ }
func (c *RefCountCollector) ClassRmrefFromClass(_, to int) {
	if c.classRefs[to] > 0 {
		c.classRefs[to]--
	}
}
func (c *RefCountCollector) ClassRmrefFromObject(_, to int) {
	if c.classRefs[to] > 0 {
		c.classRefs[to]--
	}
}
func (c *RefCountCollector) ClassFieldMkref(int, int) {}
func (c *RefCountCollector) ClassFieldRmref(int, int) {}

func (c *RefCountCollector) ObjectNew(objHash int)    { c.objectRefs[objHash] = 0 }
func (c *RefCountCollector) ObjectDelete(objHash int) { delete(c.objectRefs, objHash) }

func (c *RefCountCollector) ObjectMkrefFromClass(_, to int)  { c.objectRefs[to]++ }
func (c *RefCountCollector) ObjectMkrefFromObject(_, to int) { c.objectRefs[to]++ }
func (c *RefCountCollector) ObjectRmrefFromClass(_, to int) {
	if c.objectRefs[to] > 0 {
		c.objectRefs[to]--
	}
}
func (c *RefCountCollector) ObjectRmrefFromObject(_, to int) {
	if c.objectRefs[to] > 0 {
		c.objectRefs[to]--
	}
}
func (c *RefCountCollector) ObjectFieldMkref(int, int) {}
func (c *RefCountCollector) ObjectFieldRmref(int, int) {}

func (c *RefCountCollector) StackNew(int, int)          {}
func (c *RefCountCollector) StackMkrefFromJVM(int, int) {}
func (c *RefCountCollector) StackRmrefFromJVM(int, int) {}
func (c *RefCountCollector) StackDelete(int, int)       {}
