/*
 * bootjvm - A Java virtual machine core
 * Licensed under Mozilla Public License 2.0 (MPL 2.0)
 */

package object

import (
	"testing"

	"bootjvm/gc"
	"bootjvm/heap"
)

func newTestTable() *Table {
	return NewTable(heap.New(nil), gc.StubCollector{})
}

func TestNewTableReservesNullObjectAtHashZero(t *testing.T) {
	tbl := newTestTable()
	null := tbl.slots[0] // Get(0) reports the null object as nil
	if null == nil || !null.Status.Null {
		t.Fatalf("expected hash 0 to be the reserved null object")
	}
}

func TestInstanceNewScalarObjectAllocatesFieldsAndClearsNull(t *testing.T) {
	tbl := newTestTable()
	hash, ok := tbl.InstanceNew(InstanceNewParams{ClassIdx: 7, FieldSlots: 3}, 0)
	if !ok {
		t.Fatalf("InstanceNew failed")
	}
	obj := tbl.Get(hash)
	if obj == nil {
		t.Fatalf("expected object at hash %d", hash)
	}
	if obj.Status.Null {
		t.Errorf("expected null status cleared after construction")
	}
	if len(obj.Fields) != 3 {
		t.Errorf("expected 3 field slots, got %d", len(obj.Fields))
	}
}

func TestInstanceNewRecordsSuperclassLinkAndMkref(t *testing.T) {
	tbl := newTestTable()
	superHash, _ := tbl.InstanceNew(InstanceNewParams{ClassIdx: 1, FieldSlots: 0}, 0)
	childHash, _ := tbl.InstanceNew(InstanceNewParams{ClassIdx: 2, FieldSlots: 1}, superHash)

	child := tbl.Get(childHash)
	if child.Superclass != superHash {
		t.Errorf("expected child's superclass field to be %d, got %d", superHash, child.Superclass)
	}
}

func TestInstanceNewOneDimensionalArrayAllocatesElements(t *testing.T) {
	tbl := newTestTable()
	hash, ok := tbl.InstanceNew(InstanceNewParams{
		ClassIdx: 5, IsArray: true, BaseType: "I", Lengths: []int{10},
	}, 0)
	if !ok {
		t.Fatalf("InstanceNew failed")
	}
	obj := tbl.Get(hash)
	if !obj.Status.Array {
		t.Errorf("expected Array status bit set")
	}
	if len(obj.Elements) != 10 {
		t.Errorf("expected 10 elements, got %d", len(obj.Elements))
	}
}

func TestInstanceNewTwoDimensionalArrayAllocatesSubArrays(t *testing.T) {
	tbl := newTestTable()
	hash, ok := tbl.InstanceNew(InstanceNewParams{
		ClassIdx: 5, IsArray: true, BaseType: "I", Lengths: []int{3, 4},
	}, 0)
	if !ok {
		t.Fatalf("InstanceNew failed")
	}
	obj := tbl.Get(hash)
	if len(obj.SubArrays) != 3 {
		t.Fatalf("expected 3 sub-arrays, got %d", len(obj.SubArrays))
	}
	for _, sub := range obj.SubArrays {
		subObj := tbl.Get(sub)
		if !subObj.Status.SubArray {
			t.Errorf("expected sub-array status bit set on inner array")
		}
		if len(subObj.Elements) != 4 {
			t.Errorf("expected 4 elements per sub-array, got %d", len(subObj.Elements))
		}
	}
}

func TestInstanceNewDeleteRoundTripFreesSlot(t *testing.T) {
	tbl := newTestTable()
	hash, _ := tbl.InstanceNew(InstanceNewParams{ClassIdx: 1, FieldSlots: 2}, 0)
	if !tbl.InstanceDelete(hash) {
		t.Fatalf("InstanceDelete failed")
	}
	if tbl.Get(hash) != nil {
		t.Errorf("expected slot to be freed after delete")
	}
}

func TestInstanceDeleteOfArrayFreesOwnedSubArrays(t *testing.T) {
	tbl := newTestTable()
	hash, _ := tbl.InstanceNew(InstanceNewParams{
		ClassIdx: 5, IsArray: true, BaseType: "I", Lengths: []int{2, 2},
	}, 0)
	obj := tbl.Get(hash)
	subHashes := append([]int(nil), obj.SubArrays...)

	tbl.InstanceDelete(hash)

	for _, sub := range subHashes {
		if tbl.Get(sub) != nil {
			t.Errorf("expected owned sub-array %d to be freed with its parent", sub)
		}
	}
}

func TestMonitorLockReentranceAndRelease(t *testing.T) {
	tbl := newTestTable()
	hash, _ := tbl.InstanceNew(InstanceNewParams{ClassIdx: 1}, 0)
	obj := tbl.Get(hash)

	if !obj.Lock(42) {
		t.Fatalf("expected thread 42 to acquire the monitor")
	}
	if obj.Lock(99) {
		t.Errorf("expected thread 99 to be denied the monitor")
	}
	if !obj.Lock(42) {
		t.Errorf("expected thread 42 to reentrantly relock")
	}
	if !obj.IsLocked() {
		t.Errorf("expected monitor to be locked")
	}
	obj.Unlock(42)
	if !obj.IsLocked() {
		t.Errorf("expected monitor to still be held after one of two unlocks")
	}
	obj.Unlock(42)
	if obj.IsLocked() {
		t.Errorf("expected monitor to be fully released")
	}
}

func TestUnlockByNonHolderFails(t *testing.T) {
	tbl := newTestTable()
	hash, _ := tbl.InstanceNew(InstanceNewParams{ClassIdx: 1}, 0)
	obj := tbl.Get(hash)
	obj.Lock(1)
	if obj.Unlock(2) {
		t.Errorf("expected unlock by a non-holder thread to fail")
	}
}
