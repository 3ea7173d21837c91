/*
 * bootjvm - A Java virtual machine core
 * Licensed under Mozilla Public License 2.0 (MPL 2.0)
 */

package thread

import "testing"

func TestCreateThreadStartsInNewState(t *testing.T) {
	tbl := NewTable()
	th := CreateThread(tbl, "main", 5)
	if th.ThisState != New {
		t.Errorf("expected a freshly created thread to be in state New, got %s", th.ThisState)
	}
	if !th.Status.InUse {
		t.Errorf("expected InUse to be set")
	}
}

func TestLegalTransitionNewToStartToRunnable(t *testing.T) {
	tbl := NewTable()
	th := CreateThread(tbl, "t", 5)

	th.Request(Start)
	th.Tick(nil)
	if th.ThisState != Start {
		t.Fatalf("expected state Start after activation, got %s", th.ThisState)
	}
	// Start's own Process action requests Runnable; tick again to commit it.
	th.Tick(nil)
	if th.ThisState != Runnable {
		t.Errorf("expected state Runnable, got %s", th.ThisState)
	}
}

func TestIllegalTransitionIsForcedToBadLogic(t *testing.T) {
	tbl := NewTable()
	th := CreateThread(tbl, "t", 5)
	th.Request(Wait) // New -> Wait is not a legal transition
	if th.NextState != BadLogic {
		t.Errorf("expected an illegal request to be forced to BadLogic, got %s", th.NextState)
	}
}

func TestRunningActionDrivesNextState(t *testing.T) {
	tbl := NewTable()
	th := CreateThread(tbl, "t", 5)
	th.ThisState = Running
	th.NextState = Running

	called := false
	action := func(*ExecThread) State {
		called = true
		return Complete
	}
	th.Tick(action)
	if !called {
		t.Fatalf("expected the running action to be invoked")
	}
	if th.NextState != Complete {
		t.Errorf("expected NextState Complete after the running action requests it, got %s", th.NextState)
	}
}

func TestReclaimFreesDeadThreadSlot(t *testing.T) {
	tbl := NewTable()
	th := CreateThread(tbl, "t", 5)
	tbl.Reclaim(th.Index)
	if tbl.Get(th.Index) != nil {
		t.Errorf("expected slot to be freed after Reclaim")
	}
}

func TestCanTransitionMatchesRepresentativeTable(t *testing.T) {
	cases := []struct {
		from, to State
		want     bool
	}{
		{NotInUse, New, true},
		{Running, BlockingEvent, true},
		{BlockingEvent, Blocked, true},
		{Release, Wait, true},
		{Wait, Notify, true},
		{Notify, Lock, true},
		{New, Runnable, false},
		{Wait, Running, false},
	}
	for _, c := range cases {
		if got := CanTransition(c.from, c.to); got != c.want {
			t.Errorf("CanTransition(%s, %s) = %v, want %v", c.from, c.to, got, c.want)
		}
	}
}
