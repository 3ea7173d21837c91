/*
 * bootjvm - A Java virtual machine core
 * Licensed under Mozilla Public License 2.0 (MPL 2.0)
 */

package jvm

import (
	"fmt"

	"bootjvm/classloader"
	"bootjvm/object"
)

// atypeDescriptors maps newarray's atype operand (JVM spec table 6.5,
// 4..11) to the one-character descriptor object.InstanceNewParams.BaseType
// expects.
var atypeDescriptors = map[byte]string{
	4:  "Z",
	5:  "C",
	6:  "F",
	7:  "D",
	8:  "B",
	9:  "S",
	10: "I",
	11: "J",
}

func (j *JVM) newPrimitiveArray(atype byte, count int) (int, error) {
	desc, ok := atypeDescriptors[atype]
	if !ok {
		return 0, fmt.Errorf("invalid newarray atype %d", atype)
	}
	classIdx := classloader.EnsureArrayClass(1, desc)
	hash, ok := j.Objects.InstanceNew(object.InstanceNewParams{
		ClassIdx: classIdx,
		IsArray:  true,
		BaseType: desc,
		Lengths:  []int{count},
	}, 0)
	if !ok {
		return 0, fmt.Errorf("OutOfMemoryError: newarray")
	}
	return hash, nil
}

func (j *JVM) newReferenceArray(elementClassName string, count int) (int, error) {
	desc := "L" + elementClassName + ";"
	classIdx := classloader.EnsureArrayClass(1, desc)
	hash, ok := j.Objects.InstanceNew(object.InstanceNewParams{
		ClassIdx: classIdx,
		IsArray:  true,
		BaseType: desc,
		Lengths:  []int{count},
	}, 0)
	if !ok {
		return 0, fmt.Errorf("OutOfMemoryError: anewarray")
	}
	return hash, nil
}

// newMultiArray builds a Dims>1 array. arrayTypeName is the raw name
// carried by multianewarray's CONSTANT_Class entry, which for array
// types is the full descriptor (e.g. "[[Ljava/lang/String;") rather
// than a bare internal class name.
func (j *JVM) newMultiArray(arrayTypeName string, lengths []int) (int, error) {
	baseType := arrayTypeName
	for len(baseType) > 0 && baseType[0] == '[' {
		baseType = baseType[1:]
	}
	classIdx := classloader.EnsureArrayClass(len(lengths), baseType)
	hash, ok := j.Objects.InstanceNew(object.InstanceNewParams{
		ClassIdx: classIdx,
		IsArray:  true,
		BaseType: baseType,
		Lengths:  lengths,
	}, 0)
	if !ok {
		return 0, fmt.Errorf("OutOfMemoryError: multianewarray")
	}
	return hash, nil
}

// arrayElementToOperand and operandToArrayElement convert between an
// array's internal object.JValue storage and the operand stack's
// untyped interface{} slots, keyed off the array's BaseType descriptor
// character exactly as getField/putField key off a field's descriptor.
func arrayElementToOperand(baseType string, v object.JValue) interface{} {
	if len(baseType) == 0 {
		return v.I
	}
	switch baseType[0] {
	case 'F', 'D':
		return v.F
	case 'L', '[':
		return int64(v.Ref)
	default:
		return v.I
	}
}

func operandToArrayElement(baseType string, val interface{}) object.JValue {
	if len(baseType) == 0 {
		return object.JValue{}
	}
	switch baseType[0] {
	case 'F', 'D':
		f, _ := val.(float64)
		return object.JValue{F: f}
	case 'L', '[':
		r, _ := val.(int64)
		return object.JValue{Ref: int(r)}
	default:
		i, _ := val.(int64)
		return object.JValue{I: i}
	}
}
