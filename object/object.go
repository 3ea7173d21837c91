/*
 * bootjvm - A Java virtual machine core
 * Licensed under Mozilla Public License 2.0 (MPL 2.0)
 */

// Package object implements the C4 object table: a hash-indexed slot
// array holding every live object and array instance, their superclass
// chains, instance-field storage, and monitor-lock state. Grounded on
// artipop-jacobin's object package (javaByteArray.go, object_test.go) and,
// for the instance_new/instance_delete algorithm, original_source's
// object.c.
package object

import (
	"sync"

	"bootjvm/gc"
	"bootjvm/heap"
)

// Status bits, one per bool field below rather than a packed bitmap:
// Go's struct field access is as cheap as a mask test and far more
// readable at every call site that needs to check one bit.
type Status struct {
	InUse         bool
	Null          bool
	Array         bool
	SubArray      bool
	Thread        bool
	Class         bool
	MonitorLocked bool
}

// JValue is the tagged instance-field slot: exactly one of its typed
// fields is meaningful, selected by the field's descriptor character
// (types.Byte, types.Int, types.Ref, ...).
type JValue struct {
	I    int64
	F    float64
	Ref  int // object hash, 0 means null reference
}

// Object is one C4 table entry: an object or array instance, addressed
// by its own object hash (its index in the table). Hash 0 is the
// permanently reserved null object.
type Object struct {
	Hash   int
	Status Status

	ClassIdx   int // class-table index this instance was created from
	ThreadIdx  int // meaningful only when Status.Thread
	Superclass int // object hash of the superclass sub-object, 0 if none

	// Array-specific fields, meaningful only when Status.Array or Status.SubArray.
	BaseType string // descriptor character of the element type
	Dims     int
	Lengths  []int
	Elements []JValue // 1-D primitive/ref storage
	SubArrays []int   // >1-D: object hashes of this dimension's sub-arrays
	ownsAlloc bool    // true only for the outermost array allocation

	Fields []JValue // instance fields, indexed by field lookup index

	lockHolder int // thread index holding the monitor, -1 if unlocked
	lockCount  int // reentrance count

	block heap.Block // backing heap allocation for this instance's field storage
}

// Table is the C4 object table: a dense slot array plus a free-slot
// search cursor, mirroring the class table's forward-scan-with-wraparound
// allocation strategy from heap.Heap.
type Table struct {
	mu       sync.Mutex
	slots    []*Object // slot 0 is the permanently reserved null object
	lastScan int
	heap     *heap.Heap
	gc       gc.Collector
}

// NewTable returns a ready-to-use object table backed by h for
// instance-field storage and reporting reference events to g.
func NewTable(h *heap.Heap, g gc.Collector) *Table {
	if g == nil {
		g = gc.StubCollector{}
	}
	return &Table{
		slots: []*Object{{Hash: 0, Status: Status{InUse: true, Null: true}, lockHolder: -1}},
		heap:  h,
		gc:    g,
	}
}

// acquireBacking reserves a heap.DataArea block sized for n storage
// slots: the C1 accounting layer instance_new's field/element storage
// goes through. The slots themselves still live in ordinary Go slices
// (obj.Fields / obj.Elements) — Acquire/Release here gives the heap
// allocator's slab/system/stats bookkeeping an accurate view of live
// instance storage without requiring the object model to address its
// fields through unsafe.Pointer-backed slices. A zero heap (tests built
// via NewTable(nil, ...)) or a zero-slot request is a no-op, matching
// heap.Acquire's own "zero-size request returns the zero Block" contract.
func (t *Table) acquireBacking(n int) heap.Block {
	if t.heap == nil || n <= 0 {
		return heap.Block{}
	}
	b, _ := t.heap.Acquire(heap.DataArea, n*8, true)
	return b
}

// acquireSlot finds a free slot by forward scan with wraparound,
// growing the table when none is free. Mirrors heap.Heap.acquireSlab's
// search discipline at the object-table granularity.
func (t *Table) acquireSlot() int {
	n := len(t.slots)
	for i := 0; i < n; i++ {
		idx := (t.lastScan + i) % n
		if idx == 0 {
			continue // null object is permanently reserved
		}
		if t.slots[idx] == nil {
			t.lastScan = idx + 1
			return idx
		}
	}
	t.slots = append(t.slots, nil)
	t.lastScan = n + 1
	return n
}

// InstanceNewParams bundles instance_new's inputs, spec.md §4.4.
type InstanceNewParams struct {
	IsThread  bool
	IsArray   bool
	ClassIdx  int
	BaseType  string // array element descriptor, meaningless unless IsArray
	Lengths   []int  // per-dimension lengths, meaningless unless IsArray
	FieldSlots int   // count of inherited+own instance fields (non-array only)
	ThreadIdx int
}

// InstanceNew implements spec.md §4.4's instance_new algorithm, steps
// 1-8 (run_init, step 9, is the caller's responsibility: it requires
// invoking <init> through the interpreter, which object intentionally
// does not depend on).
func (t *Table) InstanceNew(p InstanceNewParams, superHash int) (int, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	idx := t.acquireSlot()
	obj := &Object{
		Hash:       idx,
		Status:     Status{InUse: true, Null: true},
		ClassIdx:   p.ClassIdx,
		ThreadIdx:  p.ThreadIdx,
		Superclass: superHash,
		lockHolder: -1,
	}

	if p.IsThread {
		obj.Status.Thread = true
	}

	if p.IsArray {
		obj.Status.Array = true
		obj.BaseType = p.BaseType
		obj.Dims = len(p.Lengths)
		obj.Lengths = append([]int(nil), p.Lengths...)
		obj.ownsAlloc = true
		if obj.Dims <= 1 {
			n := 0
			if len(p.Lengths) > 0 {
				n = p.Lengths[0]
			}
			obj.Elements = make([]JValue, n)
			obj.block = t.acquireBacking(n)
		} else {
			n := p.Lengths[0]
			obj.SubArrays = make([]int, n)
			t.slots[idx] = obj // hold idx so the sub-array slot scan skips it
			for i := 0; i < n; i++ {
				subHash, ok := t.instanceNewSubArray(p, i)
				if !ok {
					return 0, false
				}
				obj.SubArrays[i] = subHash
				t.gc.ClassMkrefFromClass(p.ClassIdx, p.ClassIdx)
			}
		}
	} else {
		obj.Fields = make([]JValue, p.FieldSlots)
		obj.block = t.acquireBacking(p.FieldSlots)
	}

	if superHash != 0 {
		t.gc.ObjectMkrefFromObject(idx, superHash)
	}
	t.gc.ClassMkrefFromObject(idx, p.ClassIdx)
	t.gc.ObjectNew(idx)

	obj.Status.Null = false
	t.slots[idx] = obj
	return idx, true
}

// instanceNewSubArray recursively allocates one dimension-reduced
// sub-array, marked SubArray (not Array) so instance_delete knows not
// to free its own Elements storage independently of the outer owner.
func (t *Table) instanceNewSubArray(p InstanceNewParams, _ int) (int, bool) {
	idx := t.acquireSlot()
	sub := &Object{
		Hash:      idx,
		Status:    Status{InUse: true, SubArray: true},
		ClassIdx:  p.ClassIdx,
		BaseType:  p.BaseType,
		Dims:      len(p.Lengths) - 1,
		Lengths:   append([]int(nil), p.Lengths[1:]...),
		lockHolder: -1,
	}
	if sub.Dims <= 1 {
		n := 0
		if len(sub.Lengths) > 0 {
			n = sub.Lengths[0]
		}
		sub.Elements = make([]JValue, n)
		sub.block = t.acquireBacking(n)
	} else {
		n := sub.Lengths[0]
		sub.SubArrays = make([]int, n)
		innerParams := InstanceNewParams{ClassIdx: p.ClassIdx, BaseType: p.BaseType, Lengths: sub.Lengths}
		t.slots[idx] = sub // hold idx so the nested slot scan skips it
		for i := 0; i < n; i++ {
			h, ok := t.instanceNewSubArray(innerParams, i)
			if !ok {
				return 0, false
			}
			sub.SubArrays[i] = h
		}
	}
	t.gc.ObjectNew(idx)
	t.slots[idx] = sub
	return idx, true
}

// InstanceDelete implements spec.md §4.4's instance_delete: the reverse
// of InstanceNew, freeing the slot and, for an outermost array, its
// owned sub-array tree.
func (t *Table) InstanceDelete(hash int) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.instanceDeleteLocked(hash)
}

func (t *Table) instanceDeleteLocked(hash int) bool {
	if hash <= 0 || hash >= len(t.slots) || t.slots[hash] == nil {
		return false
	}
	obj := t.slots[hash]

	for _, f := range obj.Fields {
		if f.Ref != 0 {
			t.gc.ObjectRmrefFromObject(hash, f.Ref)
		}
	}
	if obj.Superclass != 0 {
		t.gc.ObjectRmrefFromObject(hash, obj.Superclass)
		t.instanceDeleteLocked(obj.Superclass)
	}
	if obj.ownsAlloc {
		for _, sub := range obj.SubArrays {
			t.instanceDeleteLocked(sub)
		}
	}

	t.gc.ClassRmrefFromObject(hash, obj.ClassIdx)
	t.gc.ObjectDelete(hash)
	if obj.block.Data != nil && t.heap != nil {
		t.heap.Release(heap.DataArea, obj.block)
	}

	t.slots[hash] = nil
	if hash < t.lastScan {
		t.lastScan = hash
	}
	return true
}

// Get returns the object at hash, or nil if the slot is free or the
// hash is the reserved null object.
func (t *Table) Get(hash int) *Object {
	t.mu.Lock()
	defer t.mu.Unlock()
	if hash <= 0 || hash >= len(t.slots) {
		return nil
	}
	return t.slots[hash]
}

// Lock acquires obj's monitor for threadIdx, reentrantly if threadIdx
// already holds it. Returns false if another thread holds the lock.
func (o *Object) Lock(threadIdx int) bool {
	if o.lockHolder == -1 || o.lockHolder == threadIdx {
		o.lockHolder = threadIdx
		o.lockCount++
		o.Status.MonitorLocked = true
		return true
	}
	return false
}

// Unlock releases one level of threadIdx's hold on obj's monitor.
// Per spec.md §4.4's invariant, only the holder may release, and the
// reentrance count is zero iff unlocked.
func (o *Object) Unlock(threadIdx int) bool {
	if o.lockHolder != threadIdx || o.lockCount == 0 {
		return false
	}
	o.lockCount--
	if o.lockCount == 0 {
		o.lockHolder = -1
		o.Status.MonitorLocked = false
	}
	return true
}

// IsLocked reports whether any thread currently holds obj's monitor.
func (o *Object) IsLocked() bool { return o.lockCount > 0 }

// LockHolder returns the thread index currently holding obj's monitor,
// or -1 if unlocked.
func (o *Object) LockHolder() int { return o.lockHolder }
