/*
 * bootjvm - A Java virtual machine core
 * Licensed under Mozilla Public License 2.0 (MPL 2.0)
 */

package jvm

import "bootjvm/thread"

// MonitorEnter/MonitorExit implement spec.md §4.9's synchronized-block
// opcodes in terms of object.Object's reentrant lock and the C7 state
// machine's Synchronized/Lock/Acquire states: a contended enter parks
// the thread in Lock (the state machine's "attempt monitor acquisition
// once" action retries it on every tick) rather than spinning inline.
func (j *JVM) MonitorEnter(objHash, threadIdx int) {
	obj := j.Objects.Get(objHash)
	if obj == nil {
		return
	}
	th := j.Threads.Get(threadIdx)
	if th != nil {
		th.LockTarget = objHash
		th.Request(thread.Synchronized)
	}
	if obj.Lock(threadIdx) {
		if th != nil {
			th.LockTarget = 0
		}
	}
}

// TryAcquire is the Lock-state action: attempt the monitor once more,
// returning true once the thread holds it. A thread resuming from
// Object.wait() carries a WaitRelockDepth recorded by Wait; once the
// first Lock succeeds, TryAcquire relocks the remaining depth so the
// thread leaves Lock holding the monitor exactly as reentrantly as it
// did before waiting, per spec.md §4.9 scenario 5.
func (j *JVM) TryAcquire(objHash, threadIdx int) bool {
	obj := j.Objects.Get(objHash)
	if obj == nil {
		return true
	}
	if !obj.Lock(threadIdx) {
		return false
	}
	if th := j.Threads.Get(threadIdx); th != nil && th.WaitRelockDepth > 0 {
		for i := 1; i < th.WaitRelockDepth; i++ {
			obj.Lock(threadIdx)
		}
		th.WaitRelockDepth = 0
	}
	return true
}

// MonitorExit releases one level of threadIdx's hold on objHash's
// monitor, per spec.md §4.4's invariant that only the holder may
// release.
func (j *JVM) MonitorExit(objHash, threadIdx int) bool {
	obj := j.Objects.Get(objHash)
	if obj == nil {
		return false
	}
	ok := obj.Unlock(threadIdx)
	if ok {
		if th := j.Threads.Get(threadIdx); th != nil && th.LockTarget == objHash && !obj.IsLocked() {
			th.LockTarget = 0
		}
	}
	return ok
}

// Wait implements Object.wait(): release the monitor and park the
// thread in Release -> Wait, per the state table's
// "running | release | Object.wait() while holding lock" /
// "release | wait | lock released" transitions.
func (j *JVM) Wait(objHash, threadIdx int) error {
	obj := j.Objects.Get(objHash)
	if obj == nil || obj.LockHolder() != threadIdx {
		return errIllegalMonitorState()
	}
	th := j.Threads.Get(threadIdx)
	if th == nil {
		return errIllegalMonitorState()
	}
	heldCount := 0
	for obj.IsLocked() && obj.LockHolder() == threadIdx {
		obj.Unlock(threadIdx)
		heldCount++
	}
	th.WaitRelockDepth = heldCount
	th.LockTarget = objHash
	th.Request(thread.Release)
	th.Activate() // commit running -> release: the monitor is already released
	th.Request(thread.Wait)
	// Reacquiring the lock to its original reentrance depth on notify is
	// TryAcquire's job once thread.Notify transitions the thread back
	// through Lock: th.WaitRelockDepth tells it how many times to relock.
	th.PendingThrowable = ""
	return nil
}

// Notify implements Object.notify()/notifyAll(): move a parked waiter
// from Wait to Notify, which the state machine auto-advances to Lock to
// force it back through monitor reacquisition.
func (j *JVM) Notify(objHash int, waiterThreadIdx int) error {
	th := j.Threads.Get(waiterThreadIdx)
	if th == nil || th.ThisState != thread.Wait {
		return errIllegalMonitorState()
	}
	th.Request(thread.Notify)
	return nil
}

func errIllegalMonitorState() error {
	return &monitorError{}
}

type monitorError struct{}

func (*monitorError) Error() string { return "IllegalMonitorStateException" }
