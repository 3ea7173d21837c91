/*
 * bootjvm - A Java virtual machine core
 * Licensed under Mozilla Public License 2.0 (MPL 2.0)
 */

package frames

import "testing"

func TestCreateFrameAllocatesLocalsAndEmptyStack(t *testing.T) {
	f := CreateFrame(4, 3)
	if len(f.Locals) != 3 {
		t.Errorf("expected 3 local slots, got %d", len(f.Locals))
	}
	if f.TOS != -1 {
		t.Errorf("expected an empty operand stack (TOS -1), got %d", f.TOS)
	}
}

func TestPushPopRoundTrip(t *testing.T) {
	f := CreateFrame(4, 0)
	f.Push(int64(42))
	f.Push(int64(7))
	if got := f.Pop(); got != int64(7) {
		t.Errorf("expected 7, got %v", got)
	}
	if got := f.Pop(); got != int64(42) {
		t.Errorf("expected 42, got %v", got)
	}
	if f.Pop() != nil {
		t.Errorf("expected nil from popping an empty stack")
	}
}

func TestPeekDoesNotRemove(t *testing.T) {
	f := CreateFrame(4, 0)
	f.Push(int64(5))
	if f.Peek() != int64(5) {
		t.Errorf("expected peek to return 5")
	}
	if f.TOS != 0 {
		t.Errorf("expected peek to leave TOS unchanged, got %d", f.TOS)
	}
}

func TestFrameStackPushPopOrderingIsLIFO(t *testing.T) {
	fs := CreateFrameStack()
	f1 := CreateFrame(1, 1)
	f1.MethName = "first"
	f2 := CreateFrame(1, 1)
	f2.MethName = "second"

	PushFrame(fs, f1)
	PushFrame(fs, f2)

	if got := PeekFrame(fs); got.MethName != "second" {
		t.Errorf("expected the most recently pushed frame on top, got %s", got.MethName)
	}
	if got := PopFrame(fs); got.MethName != "second" {
		t.Errorf("expected PopFrame to return 'second', got %s", got.MethName)
	}
	if got := PopFrame(fs); got.MethName != "first" {
		t.Errorf("expected PopFrame to return 'first', got %s", got.MethName)
	}
	if PopFrame(fs) != nil {
		t.Errorf("expected nil from popping an empty frame stack")
	}
}
