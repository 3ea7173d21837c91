/*
 * bootjvm - A Java virtual machine core
 * Licensed under Mozilla Public License 2.0 (MPL 2.0)
 */

package jvm

import (
	"testing"

	"bootjvm/classloader"
	"bootjvm/opcodes"
)

func TestNewPrimitiveArrayAllocatesElementSlots(t *testing.T) {
	j, _ := newTestJVM(t)
	hash, err := j.newPrimitiveArray(10, 5) // T_INT
	if err != nil {
		t.Fatalf("newPrimitiveArray: %v", err)
	}
	obj := j.Objects.Get(hash)
	if obj == nil {
		t.Fatalf("expected an array object at hash %d", hash)
	}
	if len(obj.Elements) != 5 {
		t.Errorf("expected 5 element slots, got %d", len(obj.Elements))
	}
	if obj.BaseType != "I" {
		t.Errorf("BaseType = %q, want %q", obj.BaseType, "I")
	}
}

func TestNewMultiArrayAllocatesNestedSubArrays(t *testing.T) {
	j, _ := newTestJVM(t)
	hash, err := j.newMultiArray("[[I", []int{2, 3})
	if err != nil {
		t.Fatalf("newMultiArray: %v", err)
	}
	obj := j.Objects.Get(hash)
	if obj == nil {
		t.Fatalf("expected an array object at hash %d", hash)
	}
	if len(obj.SubArrays) != 2 {
		t.Fatalf("expected 2 sub-arrays, got %d", len(obj.SubArrays))
	}
	sub := j.Objects.Get(obj.SubArrays[0])
	if sub == nil || len(sub.Elements) != 3 {
		t.Errorf("expected the first sub-array to have 3 element slots")
	}
}

func TestRunFrameArrayStoreLoadRoundTrip(t *testing.T) {
	j, threadIdx := newTestJVM(t)
	hash, err := j.newPrimitiveArray(10, 3) // T_INT
	if err != nil {
		t.Fatalf("newPrimitiveArray: %v", err)
	}

	code := []byte{
		opcodes.Sipush, byte(hash >> 8), byte(hash),
		opcodes.Iconst1,
		opcodes.Bipush, 42,
		opcodes.Iastore,
		opcodes.Sipush, byte(hash >> 8), byte(hash),
		opcodes.Iconst1,
		opcodes.Iaload,
		opcodes.Ireturn,
	}
	classIdx := registerTestClass("test/Arr", nil, map[string]*classloader.Method{})
	m := &classloader.Method{
		Name: "roundTrip", Description: "()I",
		CodeAttrib: classloader.CodeAttrib{MaxStack: 4, MaxLocals: 0, Code: code},
	}

	ret, err := j.invokeMethodForValue(classIdx, m, threadIdx, nil)
	if err != nil {
		t.Fatalf("invokeMethodForValue: %v", err)
	}
	if ret.(int64) != 42 {
		t.Errorf("expected the stored element to round-trip as 42, got %v", ret)
	}
}

func TestRunFrameArrayLoadOutOfBoundsRaisesException(t *testing.T) {
	j, threadIdx := newTestJVM(t)
	hash, err := j.newPrimitiveArray(10, 1)
	if err != nil {
		t.Fatalf("newPrimitiveArray: %v", err)
	}

	code := []byte{
		opcodes.Sipush, byte(hash >> 8), byte(hash),
		opcodes.Iconst5,
		opcodes.Iaload,
		opcodes.Ireturn,
	}
	classIdx := registerTestClass("test/ArrOOB", nil, map[string]*classloader.Method{})
	m := &classloader.Method{
		Name: "oob", Description: "()I",
		CodeAttrib: classloader.CodeAttrib{MaxStack: 4, MaxLocals: 0, Code: code},
	}

	_, err = j.invokeMethodForValue(classIdx, m, threadIdx, nil)
	if err == nil {
		t.Fatalf("expected an ArrayIndexOutOfBoundsException")
	}
}

func TestRunFrameArraylengthReportsElementCount(t *testing.T) {
	j, threadIdx := newTestJVM(t)
	hash, err := j.newPrimitiveArray(10, 7)
	if err != nil {
		t.Fatalf("newPrimitiveArray: %v", err)
	}

	code := []byte{
		opcodes.Sipush, byte(hash >> 8), byte(hash),
		opcodes.Arraylength,
		opcodes.Ireturn,
	}
	classIdx := registerTestClass("test/ArrLen", nil, map[string]*classloader.Method{})
	m := &classloader.Method{
		Name: "length", Description: "()I",
		CodeAttrib: classloader.CodeAttrib{MaxStack: 4, MaxLocals: 0, Code: code},
	}

	ret, err := j.invokeMethodForValue(classIdx, m, threadIdx, nil)
	if err != nil {
		t.Fatalf("invokeMethodForValue: %v", err)
	}
	if ret.(int64) != 7 {
		t.Errorf("expected arraylength 7, got %v", ret)
	}
}
