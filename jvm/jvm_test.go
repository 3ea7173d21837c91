/*
 * bootjvm - A Java virtual machine core
 * Licensed under Mozilla Public License 2.0 (MPL 2.0)
 */

package jvm

import (
	"testing"

	"bootjvm/classloader"
	"bootjvm/opcodes"
	"bootjvm/thread"
)

func newTestJVM(t *testing.T) (*JVM, int) {
	t.Helper()
	if err := classloader.Init(); err != nil {
		t.Fatalf("classloader.Init: %v", err)
	}
	j := New()
	if err := j.Init(); err != nil {
		t.Fatalf("jvm.Init: %v", err)
	}
	th := thread.CreateThread(j.Threads, "test", 5)
	th.Request(thread.Start)
	th.Tick(nil) // New -> Start
	th.Tick(nil) // Start -> Runnable
	th.Request(thread.Running)
	th.Tick(nil)
	return j, th.Index
}

func registerTestClass(name string, fields []classloader.Field, methods map[string]*classloader.Method) int {
	k := &classloader.Klass{
		Status: 0,
		Loader: "test",
		Data: &classloader.ClData{
			Name:        name,
			Fields:      fields,
			MethodTable: methods,
		},
	}
	return classloader.MethAreaInsert(k)
}

func TestInstantiateClassAllocatesObjectWithInheritedFields(t *testing.T) {
	j, threadIdx := newTestJVM(t)

	registerTestClass("test/Base", []classloader.Field{{Name: "x", Description: "I", LookupIdx: 0}}, map[string]*classloader.Method{})
	registerTestClass("test/Derived", []classloader.Field{{Name: "y", Description: "I", LookupIdx: 1}}, map[string]*classloader.Method{})

	classloader.MethAreaFetchByIndex(classloader.MethAreaFetch("test/Derived")).Data.Superclass = "test/Base"

	hash, err := j.InstantiateClass("test/Derived", threadIdx, false)
	if err != nil {
		t.Fatalf("InstantiateClass: %v", err)
	}
	obj := j.Objects.Get(hash)
	if obj == nil {
		t.Fatalf("expected an object at hash %d", hash)
	}
	if len(obj.Fields) != 1 {
		t.Errorf("expected 1 own field slot, got %d", len(obj.Fields))
	}
	if obj.Superclass == 0 {
		t.Errorf("expected a superclass sub-object to be linked")
	}
}

func TestRunFrameSimpleArithmetic(t *testing.T) {
	j, threadIdx := newTestJVM(t)

	// iconst_2; iconst_3; iadd; ireturn
	code := []byte{opcodes.Iconst2, opcodes.Iconst3, opcodes.Iadd, opcodes.Ireturn}
	classIdx := registerTestClass("test/Calc", nil, map[string]*classloader.Method{})

	m := &classloader.Method{
		Name: "add", Description: "()I",
		CodeAttrib: classloader.CodeAttrib{MaxStack: 4, MaxLocals: 0, Code: code},
	}

	err := j.invokeMethod(classIdx, m, threadIdx, nil)
	if err != nil {
		t.Fatalf("invokeMethod: %v", err)
	}
}

func TestRunFrameDivisionByZeroRaisesArithmeticException(t *testing.T) {
	j, threadIdx := newTestJVM(t)

	code := []byte{opcodes.Iconst1, opcodes.Iconst0, opcodes.Idiv, opcodes.Ireturn}
	classIdx := registerTestClass("test/Calc2", nil, map[string]*classloader.Method{})
	m := &classloader.Method{
		Name: "divByZero", Description: "()I",
		CodeAttrib: classloader.CodeAttrib{MaxStack: 4, MaxLocals: 0, Code: code},
	}

	err := j.invokeMethod(classIdx, m, threadIdx, nil)
	if err == nil {
		t.Fatalf("expected an ArithmeticException error")
	}
}

func TestMonitorEnterExitRoundTrip(t *testing.T) {
	j, threadIdx := newTestJVM(t)
	classIdx := registerTestClass("test/Lockable", nil, map[string]*classloader.Method{})
	hash, err := j.InstantiateClass("test/Lockable", threadIdx, false)
	if err != nil {
		t.Fatalf("InstantiateClass: %v", err)
	}
	_ = classIdx

	j.MonitorEnter(hash, threadIdx)
	if !j.Objects.Get(hash).IsLocked() {
		t.Errorf("expected monitor to be held after MonitorEnter")
	}
	if !j.MonitorExit(hash, threadIdx) {
		t.Errorf("expected MonitorExit to succeed for the holding thread")
	}
	if j.Objects.Get(hash).IsLocked() {
		t.Errorf("expected monitor to be released")
	}
}
