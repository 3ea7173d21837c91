/*
 * bootjvm - A Java virtual machine core
 * Licensed under Mozilla Public License 2.0 (MPL 2.0)
 */

package jvm

import (
	"fmt"
	"strings"

	"bootjvm/classloader"
	"bootjvm/object"
	"bootjvm/types"
)

// InstantiateClass implements the `new` opcode's class-checking rules
// (spec.md §4.7/§4.4): resolve className, refuse interface/abstract/array
// classes with InstantiationError, then run object.Table.InstanceNew
// with no array dimensions and, if runInit, invoke <init> on the
// given thread. Adapted from artipop-jacobin/src/jvm/instantiate.go's
// instantiateClass, generalized from artipop-jacobin's Klass/object.Object
// pointer fields to this module's dense class/object-table indices.
func (j *JVM) InstantiateClass(className string, threadIdx int, runInit bool) (int, error) {
	classIdx := classloader.MethAreaFetch(className)
	if classIdx == types.BadBinding {
		var err error
		classIdx, err = classloader.LoadClassFromNameOnly(classloader.AppCL, className)
		if err != nil {
			return 0, j.throwableError(excNameNoClassDefFoundError(className))
		}
	}
	k := classloader.MethAreaFetchByIndex(classIdx)
	if k == nil || k.Data == nil {
		return 0, j.throwableError(excNameNoClassDefFoundError(className))
	}
	if k.Data.Access.Interface || k.Data.Access.Abstract || strings.HasPrefix(k.Data.Name, "[") {
		return 0, fmt.Errorf("InstantiationError: cannot instantiate %s", className)
	}

	superHash := 0
	if k.Data.Superclass != "" {
		h, err := j.instantiateSuperChain(k.Data.Superclass, threadIdx)
		if err != nil {
			return 0, err
		}
		superHash = h
	}

	hash, ok := j.Objects.InstanceNew(object.InstanceNewParams{
		ClassIdx:   classIdx,
		FieldSlots: len(k.Data.Fields),
		ThreadIdx:  threadIdx,
	}, superHash)
	if !ok {
		return 0, fmt.Errorf("OutOfMemoryError: object table exhausted creating %s", className)
	}

	for _, f := range k.Data.Fields {
		j.initializeField(hash, f)
	}

	if runInit {
		if err := j.runInit(classIdx, hash, threadIdx); err != nil {
			return hash, err
		}
	}
	return hash, nil
}

// instantiateSuperChain recursively instantiates a class's superclass
// sub-object, per spec.md §4.4 step 6.
func (j *JVM) instantiateSuperChain(superName string, threadIdx int) (int, error) {
	superIdx := classloader.MethAreaFetch(superName)
	if superIdx == types.BadBinding {
		return 0, fmt.Errorf("NoClassDefFoundError: %s", superName)
	}
	sk := classloader.MethAreaFetchByIndex(superIdx)
	if sk == nil || sk.Data == nil {
		return 0, fmt.Errorf("NoClassDefFoundError: %s", superName)
	}

	grandHash := 0
	if sk.Data.Superclass != "" {
		h, err := j.instantiateSuperChain(sk.Data.Superclass, threadIdx)
		if err != nil {
			return 0, err
		}
		grandHash = h
	}

	hash, ok := j.Objects.InstanceNew(object.InstanceNewParams{
		ClassIdx:   superIdx,
		FieldSlots: len(sk.Data.Fields),
		ThreadIdx:  threadIdx,
	}, grandHash)
	if !ok {
		return 0, fmt.Errorf("OutOfMemoryError: object table exhausted")
	}
	for _, f := range sk.Data.Fields {
		j.initializeField(hash, f)
	}
	return hash, nil
}

// initializeField zeroes obj's field at f.LookupIdx; field default
// values are always the type's zero value at this stage (explicit
// ConstantValue attribute application is not modeled — the interpreter
// only observes it through <clinit>, which assigns it normally).
func (j *JVM) initializeField(objHash int, f classloader.Field) {
	obj := j.Objects.Get(objHash)
	if obj == nil || f.LookupIdx < 0 || f.LookupIdx >= len(obj.Fields) {
		return
	}
	switch f.Description[0] {
	case types.Ref[0], types.Array[0]:
		obj.Fields[f.LookupIdx] = object.JValue{Ref: 0}
	default:
		obj.Fields[f.LookupIdx] = object.JValue{I: 0, F: 0}
	}
}

func excNameNoClassDefFoundError(className string) string {
	return fmt.Sprintf("NoClassDefFoundError: %s", className)
}

func (j *JVM) throwableError(msg string) error {
	return fmt.Errorf("%s", msg)
}
