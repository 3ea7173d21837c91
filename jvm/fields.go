/*
 * bootjvm - A Java virtual machine core
 * Licensed under Mozilla Public License 2.0 (MPL 2.0)
 */

package jvm

import "bootjvm/object"

// gfieldFloat/gfieldRef/gfieldInt convert an operand-stack value (always
// int64, float64, or a raw object hash smuggled through as int64 — see
// frames.Frame's use of interface{} slots) into the tagged object.JValue
// an instance's Fields array stores.
func gfieldFloat(v interface{}) object.JValue {
	if f, ok := v.(float64); ok {
		return object.JValue{F: f}
	}
	return object.JValue{}
}

func gfieldRef(v interface{}) object.JValue {
	if i, ok := v.(int64); ok {
		return object.JValue{Ref: int(i)}
	}
	return object.JValue{}
}

func gfieldInt(v interface{}) object.JValue {
	if i, ok := v.(int64); ok {
		return object.JValue{I: i}
	}
	return object.JValue{}
}
