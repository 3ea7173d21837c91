/*
 * bootjvm - A Java virtual machine core
 * Licensed under Mozilla Public License 2.0 (MPL 2.0)
 */

package thread

import (
	"fmt"
	"sync"
	"time"

	"bootjvm/frames"
	"bootjvm/trace"
)

// StatusBits mirrors spec.md §4.6's thread status bitmap as named bools
// rather than a packed integer, for the same readability reason object.Status
// uses named bools.
type StatusBits struct {
	InUse             bool
	Null              bool
	Daemon            bool
	Sleeping          bool
	JoiningForever    bool
	JoiningTimed      bool
	WaitingForever    bool
	WaitingTimed      bool
	InterruptibleIO   bool
	Notified          bool
	Interrupted       bool
	ThrewException    bool
	ThrewError        bool
	ThrewThrowable    bool
	ThrewUncaught     bool
}

// ExecThread is one C6 thread-table entry.
type ExecThread struct {
	Index    int
	Name     string
	Priority int
	Status   StatusBits

	PrevState State
	ThisState State
	NextState State

	SleepUntil  time.Time
	JoinTarget  int // thread index being joined, 0 if none
	LockTarget  int // object hash whose monitor is being sought, 0 if none

	// WaitRelockDepth is the reentrance depth Object.wait() released the
	// monitor from, consumed by TryAcquire once the Lock state regains
	// it so the thread resumes holding the monitor exactly as deeply as
	// it did before waiting.
	WaitRelockDepth int

	Stack *frames.FrameStack
	// EndOfProgramFP marks the frame depth at which this thread's
	// top-level method began; reaching it on return signals thread
	// completion even while nested manual invocations (e.g. running a
	// <clinit> mid-interpretation) are in flight.
	EndOfProgramFP int

	PC struct {
		ClassIdx    int
		MethodIdx   int
		CodeAttrIdx int
		ExcTableIdx int
		Offset      int
	}

	InstructionCount int64

	// PendingThrowable is the non-local-return buffer: the class name of
	// an in-flight thrown event, consumed by the outer loop's dispatch
	// once the thread's running timeslice yields control.
	PendingThrowable string
}

// Table is the C6 thread table: a slot array, index 0 permanently
// reserved exactly as object.Table reserves hash 0.
type Table struct {
	mu    sync.Mutex
	slots []*ExecThread
}

func NewTable() *Table {
	return &Table{slots: []*ExecThread{nil}}
}

// CreateThread allocates a new thread table entry in state New.
func CreateThread(t *Table, name string, priority int) *ExecThread {
	t.mu.Lock()
	defer t.mu.Unlock()

	idx := -1
	for i := 1; i < len(t.slots); i++ {
		if t.slots[i] == nil {
			idx = i
			break
		}
	}
	if idx == -1 {
		idx = len(t.slots)
		t.slots = append(t.slots, nil)
	}

	th := &ExecThread{
		Index:     idx,
		Name:      name,
		Priority:  priority,
		Status:    StatusBits{InUse: true},
		ThisState: New,
		NextState: New,
		Stack:     frames.CreateFrameStack(),
	}
	t.slots[idx] = th
	return th
}

// Get returns the thread at idx, or nil.
func (t *Table) Get(idx int) *ExecThread {
	t.mu.Lock()
	defer t.mu.Unlock()
	if idx <= 0 || idx >= len(t.slots) {
		return nil
	}
	return t.slots[idx]
}

// All returns every currently allocated thread, for diagnostics.
func (t *Table) All() []*ExecThread {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make([]*ExecThread, 0, len(t.slots))
	for _, th := range t.slots {
		if th != nil {
			out = append(out, th)
		}
	}
	return out
}

// Reclaim frees a Dead thread's slot, the "dead -> not-in-use" transition.
func (t *Table) Reclaim(idx int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if idx > 0 && idx < len(t.slots) {
		t.slots[idx] = nil
	}
}

// Request implements §4.6 phase 1: validate th's requested next state.
// An illegal transition is forced to BadLogic rather than rejected
// outright, so that an illegal request still forces progress instead of
// stalling the tick.
func (th *ExecThread) Request(next State) {
	if next == th.ThisState {
		th.NextState = next
		return
	}
	if CanTransition(th.ThisState, next) {
		th.NextState = next
	} else {
		trace.Warning(fmt.Sprintf("thread %s: illegal transition %s -> %s, forcing badlogic", th.Name, th.ThisState, next))
		th.NextState = BadLogic
	}
}

// Activate implements §4.6 phase 2: commit the pending transition.
func (th *ExecThread) Activate() {
	th.PrevState = th.ThisState
	th.ThisState = th.NextState
}

// Process is the action for every state per §4.6 phase 3.
// runningAction executes one timeslice of bytecode when called back for
// the running state (wired by the jvm package, which owns the
// interpreter loop and so cannot be imported here without a cycle).
// For every transient state the action is simply to request its
// successor, advancing the tick without doing any work of its own.
func (th *ExecThread) Process(runningAction func(*ExecThread) State) {
	switch th.ThisState {
	case Running:
		if runningAction != nil {
			th.Request(runningAction(th))
		}
	case Start:
		th.Request(Runnable)
	case BlockingEvent:
		th.Request(Blocked)
	case Unblocked:
		th.Request(Runnable)
	case Synchronized:
		th.Request(Lock)
	case Acquire:
		th.Request(Runnable)
	case Notify:
		th.Request(Lock)
	case Complete:
		th.Request(Dead)
	case Lock:
		// "attempt monitor acquisition once" — handled by the jvm
		// package's TryAcquire (jvm/monitor.go), called by that package's
		// thread driver; a bare thread package has no monitor state to
		// poll, so a Lock tick with no caller-supplied progress simply
		// holds.
	case Blocked, Wait, Release, Dead, NotInUse, New, BadLogic, Runnable:
		// stable or externally-driven states: nothing to auto-advance
	}
}

// Tick runs one full request/activate/process cycle.
func (th *ExecThread) Tick(runningAction func(*ExecThread) State) {
	th.Activate()
	th.Process(runningAction)
}
