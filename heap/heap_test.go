/*
 * bootjvm - A Java virtual machine core
 * Licensed under Mozilla Public License 2.0 (MPL 2.0)
 */

package heap

import "testing"

func TestAcquireZeroSizeReturnsNullBlock(t *testing.T) {
	h := New(nil)
	b, ok := h.Acquire(DataArea, 0, false)
	if !ok {
		t.Fatalf("zero-size acquire should succeed")
	}
	if b.Data != nil {
		t.Errorf("expected null block for zero-size request, got %v", b.Data)
	}
}

func TestSmallRequestServedFromSlab(t *testing.T) {
	h := New(nil)
	b, ok := h.Acquire(StackArea, 32, false)
	if !ok || b.Data == nil {
		t.Fatalf("expected a valid block")
	}
	if !b.fromSlab {
		t.Errorf("32-byte request should be served from the slab")
	}
	if len(b.Data) != SlotSize {
		t.Errorf("slab block should be SlotSize bytes, got %d", len(b.Data))
	}
	if got := h.Stats().SlabAllocs; got != 1 {
		t.Errorf("expected 1 slab alloc, got %d", got)
	}
}

func TestLargeRequestServedFromSystem(t *testing.T) {
	h := New(nil)
	b, ok := h.Acquire(DataArea, SlotSize+1, false)
	if !ok || b.Data == nil {
		t.Fatalf("expected a valid block")
	}
	if b.fromSlab {
		t.Errorf("oversized request should not be served from the slab")
	}
	if got := h.Stats().SystemAllocs; got != 1 {
		t.Errorf("expected 1 system alloc, got %d", got)
	}
}

func TestAcquireReleaseRoundTripLeavesNoLeak(t *testing.T) {
	h := New(nil)
	b, _ := h.Acquire(MethodArea, 16, false)
	before := h.Stats()
	h.Release(MethodArea, b)
	after := h.Stats()
	if after.SlabFrees != before.SlabFrees+1 {
		t.Errorf("expected slab free count to increase by 1")
	}

	// the freed slot is marked free at once; the next scan starts after
	// the last-allocated slot, so it is not the slot handed out next
	if h.inUse[b.slotIdx] {
		t.Errorf("expected the freed slot (%d) to be marked free", b.slotIdx)
	}
	if _, ok := h.Acquire(MethodArea, 16, false); !ok {
		t.Fatalf("expected slab allocation to succeed after release")
	}
}

func TestSlabExhaustionInvokesGCThenFails(t *testing.T) {
	gcCalls := 0
	h := New(func(bool) { gcCalls++ })

	for i := 0; i < SlabSlots; i++ {
		if _, ok := h.Acquire(DataArea, 8, false); !ok {
			t.Fatalf("unexpected early exhaustion at slot %d", i)
		}
	}

	_, ok := h.Acquire(DataArea, 8, false)
	if ok {
		t.Errorf("expected allocation failure once the slab and retry are both exhausted")
	}
	if gcCalls != 1 {
		t.Errorf("expected exactly one GC invocation on failure, got %d", gcCalls)
	}
}

func TestReleaseOfNullBlockIsNoop(t *testing.T) {
	h := New(nil)
	before := h.Stats()
	h.Release(DataArea, Block{})
	after := h.Stats()
	if before != after {
		t.Errorf("releasing the null block should not change stats")
	}
}
