/*
 * bootjvm - A Java virtual machine core
 * Licensed under Mozilla Public License 2.0 (MPL 2.0)
 */

// Package gfunction holds the Go-native implementations of bootstrap
// methods that have no Java bytecode body — java/lang/Object.hashCode,
// java/lang/Thread.sleep, java/lang/System.arraycopy, and the like.
// Grounded file-for-file on artipop-jacobin's gfunction package: the
// MethodSignatures/GMeth registry pattern comes from
// javaLangThread.go/javaUtilHashMap.go, and GErrBlk/getGErrBlk from the
// same files' error-return convention.
package gfunction

import "bootjvm/excNames"

// GMeth is one registered native method: how many argument slots the
// interpreter must pop before calling GFunction, and the function
// itself. Grounded on artipop-jacobin/src/gfunction/javaLangThread.go's
// GMeth{ParamSlots, GFunction} struct.
type GMeth struct {
	ParamSlots int
	GFunction  func(params []interface{}) interface{}
}

// GErrBlk is the uniform error return a GFunction uses instead of a Go
// error, so that both a Java exception name and a message travel back
// to the interpreter's throwable dispatch together.
type GErrBlk struct {
	ExceptionType string
	ErrMsg        string
}

func getGErrBlk(excType, msg string) *GErrBlk {
	return &GErrBlk{ExceptionType: excType, ErrMsg: msg}
}

// MethodSignatures is the global native-method registry, keyed by
// "className.methodNamemethodDescriptor" (no separator before the
// descriptor, e.g. "java/lang/Object.hashCode()I") exactly as artipop-jacobin's own
// MethodSignatures map is keyed.
var MethodSignatures = make(map[string]GMeth)

// justReturn is a GFunction stub for methods whose native body has no
// observable effect on a bootstrap-level VM (initialization markers,
// registerNatives, deprecated setters): matches artipop-jacobin's own
// justReturn/trapFunction convention.
func justReturn(params []interface{}) interface{} { return nil }

// trapDeprecated flags a call to a deprecated native as a reminder it
// is intentionally unimplemented, matching artipop-jacobin's own
// trapDeprecated stub convention in javaUtilHashMap.go et al.
func trapDeprecated(params []interface{}) interface{} {
	return getGErrBlk(excNames.UnsupportedOperationException, "deprecated native method")
}

func init() {
	loadLangObject()
	loadLangString()
	loadLangThread()
	loadLangSystem()
	loadLangThrowable()
}
