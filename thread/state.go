/*
 * bootjvm - A Java virtual machine core
 * Licensed under Mozilla Public License 2.0 (MPL 2.0)
 */

// Package thread implements the C6 thread table and the C7 three-phase
// (request/activate/process) cooperative state machine, grounded on
// jvm/errors_test.go's thread.ExecThread/thread.CreateThread usage and
// cross-checked for exact state names and legal transitions against
// original_source's threadstate.c.
package thread

// State is one node of the C7 state machine.
type State int

const (
	NotInUse State = iota
	New
	Start
	Runnable
	Running
	BlockingEvent
	Blocked
	Unblocked
	Synchronized
	Release
	Wait
	Notify
	Lock
	Acquire
	Complete
	Dead
	BadLogic
)

var stateNames = map[State]string{
	NotInUse: "not-in-use", New: "new", Start: "start", Runnable: "runnable",
	Running: "running", BlockingEvent: "blockingevent", Blocked: "blocked",
	Unblocked: "unblocked", Synchronized: "synchronized", Release: "release",
	Wait: "wait", Notify: "notify", Lock: "lock", Acquire: "acquire",
	Complete: "complete", Dead: "dead", BadLogic: "badlogic",
}

func (s State) String() string {
	if n, ok := stateNames[s]; ok {
		return n
	}
	return "unknown"
}

// legalTransitions enumerates spec.md §4.6's representative valid
// transition table. "any" transitions (-> BadLogic) and "running or new
// or badlogic -> complete" are handled as special cases in CanTransition
// rather than expanded here entry-by-entry.
var legalTransitions = map[State]map[State]bool{
	NotInUse:      {New: true},
	New:           {Start: true},
	Start:         {Runnable: true},
	Runnable:      {Running: true},
	Running:       {Runnable: true, BlockingEvent: true, Synchronized: true, Release: true, Complete: true, BadLogic: true},
	BlockingEvent: {Blocked: true},
	Blocked:       {Unblocked: true},
	Unblocked:     {Runnable: true},
	Synchronized:  {Lock: true},
	Lock:          {Acquire: true},
	Acquire:       {Runnable: true},
	Release:       {Wait: true},
	Wait:          {Notify: true},
	Notify:        {Lock: true},
	Complete:      {Dead: true},
	Dead:          {NotInUse: true},
	BadLogic:      {Complete: true, BlockingEvent: true},
}

// CanTransition implements §4.6's request-validation predicate: is
// `to` a legal next state from `from`? Every state may always
// transition to BadLogic (the diagnostic catch-all), and New/BadLogic
// may always transition to Complete (thread killed before or during
// a malformed run).
func CanTransition(from, to State) bool {
	if to == BadLogic {
		return true
	}
	if to == Complete && (from == New || from == BadLogic) {
		return true
	}
	return legalTransitions[from][to]
}
