/*
 * bootjvm - A Java virtual machine core
 * Licensed under Mozilla Public License 2.0 (MPL 2.0)
 */

package gfunction

import (
	"bootjvm/stringPool"
)

// loadLangString registers the small slice of java/lang/String natives
// a bootstrap VM needs to run simple programs: construction from a
// stringPool index, length, concatenation, and equality. Grounded on
// the registration-density and naming style of
// artipop-jacobin/src/gfunction/javaLangString.go (sampled: many
// <init> overloads, each a dedicated GFunction).
func loadLangString() {
	MethodSignatures["java/lang/String.<init>()V"] = GMeth{ParamSlots: 0, GFunction: justReturn}
	MethodSignatures["java/lang/String.length()I"] = GMeth{ParamSlots: 0, GFunction: stringLength}
	MethodSignatures["java/lang/String.concat(Ljava/lang/String;)Ljava/lang/String;"] = GMeth{ParamSlots: 1, GFunction: stringConcat}
	MethodSignatures["java/lang/String.equals(Ljava/lang/Object;)Z"] = GMeth{ParamSlots: 1, GFunction: stringEquals}
	MethodSignatures["java/lang/String.hashCode()I"] = GMeth{ParamSlots: 0, GFunction: stringHashCode}
	MethodSignatures["java/lang/String.isEmpty()Z"] = GMeth{ParamSlots: 0, GFunction: stringIsEmpty}
	MethodSignatures["java/lang/String.toString()Ljava/lang/String;"] = GMeth{ParamSlots: 0, GFunction: stringToString}
}

func stringLength(params []interface{}) interface{} {
	idx, ok := params[0].(uint32)
	if !ok {
		return int32(0)
	}
	s := stringPool.GetStringPointer(idx)
	if s == nil {
		return int32(0)
	}
	return int32(len(*s))
}

func stringConcat(params []interface{}) interface{} {
	if len(params) < 2 {
		return uint32(0)
	}
	a := stringPool.GetStringPointer(params[0].(uint32))
	b := stringPool.GetStringPointer(params[1].(uint32))
	if a == nil || b == nil {
		return uint32(0)
	}
	return stringPool.GetStringIndex(*a + *b)
}

func stringEquals(params []interface{}) interface{} {
	if len(params) < 2 {
		return int32(0)
	}
	a, aok := params[0].(uint32)
	b, bok := params[1].(uint32)
	if !aok || !bok {
		return int32(0)
	}
	if a == b {
		return int32(1)
	}
	sa, sb := stringPool.GetStringPointer(a), stringPool.GetStringPointer(b)
	if sa != nil && sb != nil && *sa == *sb {
		return int32(1)
	}
	return int32(0)
}

func stringHashCode(params []interface{}) interface{} {
	idx, ok := params[0].(uint32)
	if !ok {
		return int32(0)
	}
	s := stringPool.GetStringPointer(idx)
	if s == nil {
		return int32(0)
	}
	var h int32
	for _, r := range *s {
		h = 31*h + int32(r)
	}
	return h
}

func stringIsEmpty(params []interface{}) interface{} {
	idx, ok := params[0].(uint32)
	if !ok {
		return int32(1)
	}
	s := stringPool.GetStringPointer(idx)
	if s == nil || *s == "" {
		return int32(1)
	}
	return int32(0)
}

func stringToString(params []interface{}) interface{} {
	if len(params) == 0 {
		return uint32(0)
	}
	return params[0]
}
