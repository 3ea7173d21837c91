/*
 * bootjvm - A Java virtual machine core
 * Licensed under Mozilla Public License 2.0 (MPL 2.0)
 */

package gfunction

// loadLangObject registers java/lang/Object's native methods. Grounded
// on artipop-jacobin/src/gfunction/javaLangThread.go's Load_Lang_Thread
// registration-function convention.
func loadLangObject() {
	MethodSignatures["java/lang/Object.<init>()V"] = GMeth{ParamSlots: 0, GFunction: justReturn}
	MethodSignatures["java/lang/Object.hashCode()I"] = GMeth{ParamSlots: 0, GFunction: objectHashCode}
	MethodSignatures["java/lang/Object.getClass()Ljava/lang/Class;"] = GMeth{ParamSlots: 0, GFunction: objectGetClass}
	MethodSignatures["java/lang/Object.toString()Ljava/lang/String;"] = GMeth{ParamSlots: 0, GFunction: objectToString}
	MethodSignatures["java/lang/Object.notify()V"] = GMeth{ParamSlots: 0, GFunction: justReturn}
	MethodSignatures["java/lang/Object.notifyAll()V"] = GMeth{ParamSlots: 0, GFunction: justReturn}
	MethodSignatures["java/lang/Object.registerNatives()V"] = GMeth{ParamSlots: 0, GFunction: justReturn}
}

// objectHashCode returns the receiver's own object hash: params[0] is
// always the receiver's object-table hash per the interpreter's native
// call convention (see jvm/run.go's invokeFromCP, which passes it as an
// int64 operand; invokeMethod callers may pass a plain int).
func objectHashCode(params []interface{}) interface{} {
	if len(params) == 0 {
		return int32(0)
	}
	switch hash := params[0].(type) {
	case int64:
		return int32(hash)
	case int:
		return int32(hash)
	}
	return int32(0)
}

func objectGetClass(params []interface{}) interface{} {
	// gfunction has no object-table access, so this returns nil; no
	// java/lang/Class mirror is built, and the interpreter pushes that nil
	// unchanged as the call's result.
	return nil
}

func objectToString(params []interface{}) interface{} {
	return nil
}
