/*
 * bootjvm - A Java virtual machine core
 * Licensed under Mozilla Public License 2.0 (MPL 2.0)
 */

package gfunction

import (
	"testing"

	"bootjvm/excNames"
	"bootjvm/stringPool"
)

func TestMethodSignaturesRegistersBootstrapNatives(t *testing.T) {
	for _, key := range []string{
		"java/lang/Object.hashCode()I",
		"java/lang/String.length()I",
		"java/lang/Thread.sleep(J)V",
		"java/lang/System.currentTimeMillis()J",
		"java/lang/Throwable.<init>(Ljava/lang/String;)V",
	} {
		if _, ok := MethodSignatures[key]; !ok {
			t.Errorf("expected %s to be registered", key)
		}
	}
}

func TestStringLengthAndIsEmpty(t *testing.T) {
	idx := stringPool.GetStringIndex("hello")
	if got := stringLength([]interface{}{idx}); got != int32(5) {
		t.Errorf("stringLength = %v, want 5", got)
	}
	if got := stringIsEmpty([]interface{}{idx}); got != int32(0) {
		t.Errorf("stringIsEmpty(\"hello\") = %v, want 0", got)
	}
	emptyIdx := stringPool.GetStringIndex("")
	if got := stringIsEmpty([]interface{}{emptyIdx}); got != int32(1) {
		t.Errorf("stringIsEmpty(\"\") = %v, want 1", got)
	}
}

func TestStringConcatAndEquals(t *testing.T) {
	a := stringPool.GetStringIndex("foo")
	b := stringPool.GetStringIndex("bar")
	concatIdx := stringConcat([]interface{}{a, b}).(uint32)
	got := stringPool.GetStringPointer(concatIdx)
	if got == nil || *got != "foobar" {
		t.Errorf("stringConcat(foo, bar) = %v, want foobar", got)
	}
	if eq := stringEquals([]interface{}{a, a}); eq != int32(1) {
		t.Errorf("stringEquals(foo, foo) = %v, want 1", eq)
	}
	if eq := stringEquals([]interface{}{a, b}); eq != int32(0) {
		t.Errorf("stringEquals(foo, bar) = %v, want 0", eq)
	}
}

func TestStringHashCodeMatchesJavaRollingHash(t *testing.T) {
	idx := stringPool.GetStringIndex("ab")
	want := int32('a')*31 + int32('b')
	if got := stringHashCode([]interface{}{idx}); got != want {
		t.Errorf("stringHashCode(\"ab\") = %v, want %v", got, want)
	}
}

func TestThreadSleepRejectsNegativeMillis(t *testing.T) {
	ret := threadSleep([]interface{}{int64(-1)})
	errBlk, ok := ret.(*GErrBlk)
	if !ok {
		t.Fatalf("expected a *GErrBlk for a negative sleep duration, got %T", ret)
	}
	if errBlk.ExceptionType != excNames.IOException {
		t.Errorf("ExceptionType = %s, want %s", errBlk.ExceptionType, excNames.IOException)
	}
}

func TestSystemCurrentTimeMillisIsPositive(t *testing.T) {
	ret := systemCurrentTimeMillis(nil)
	ms, ok := ret.(int64)
	if !ok || ms <= 0 {
		t.Errorf("systemCurrentTimeMillis() = %v, want a positive int64", ret)
	}
}
