/*
 * bootjvm - A Java virtual machine core
 * Licensed under Mozilla Public License 2.0 (MPL 2.0)
 */

package gc

import "testing"

func TestStubCollectorAcceptsEveryHook(t *testing.T) {
	var c Collector = StubCollector{}
	c.Init()
	c.Run(true)
	c.ClassNew(1)
	c.ClassMkrefFromClass(1, 2)
	c.ClassRmrefFromClass(1, 2)
	c.ObjectNew(1)
	c.ObjectMkrefFromObject(1, 2)
	c.ObjectRmrefFromObject(1, 2)
	c.StackNew(1, 4)
	// no panics, no observable state: a stub is a no-op by definition
}

func TestRefCountMkrefRmrefRoundTripLeavesCountUnchanged(t *testing.T) {
	c := NewRefCountCollector()
	c.ObjectNew(5)
	c.ObjectMkrefFromObject(1, 5)
	if c.objectRefs[5] != 1 {
		t.Fatalf("expected ref count 1 after mkref, got %d", c.objectRefs[5])
	}
	c.ObjectRmrefFromObject(1, 5)
	if c.objectRefs[5] != 0 {
		t.Errorf("expected ref count 0 after matching rmref, got %d", c.objectRefs[5])
	}
}

func TestRunReclaimsZeroRefObjectsWhenRequested(t *testing.T) {
	c := NewRefCountCollector()
	var reclaimed []int
	c.OnObjectUnreachable = func(objHash int) { reclaimed = append(reclaimed, objHash) }

	c.ObjectNew(7)
	c.Run(true)

	if len(reclaimed) != 1 || reclaimed[0] != 7 {
		t.Errorf("expected object 7 to be reclaimed, got %v", reclaimed)
	}
}

func TestRunDoesNothingWhenRemoveRefsFalse(t *testing.T) {
	c := NewRefCountCollector()
	called := false
	c.OnObjectUnreachable = func(int) { called = true }
	c.ObjectNew(3)
	c.Run(false)
	if called {
		t.Errorf("Run(false) must not reclaim anything")
	}
}
