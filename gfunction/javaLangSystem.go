/*
 * bootjvm - A Java virtual machine core
 * Licensed under Mozilla Public License 2.0 (MPL 2.0)
 */

package gfunction

import (
	"time"

	"bootjvm/excNames"
)

// loadLangSystem registers java/lang/System's native methods:
// currentTimeMillis, nanoTime, identityHashCode, registerNatives, and
// arraycopy's parameter contract. arraycopy's entry exists here only so
// MethodSignatures stays the authoritative list of bootstrap natives;
// the interpreter intercepts the key before generic dispatch, since the
// copy needs object-table access a GFunction's plain []interface{}
// signature does not carry.
func loadLangSystem() {
	MethodSignatures["java/lang/System.currentTimeMillis()J"] = GMeth{ParamSlots: 0, GFunction: systemCurrentTimeMillis}
	MethodSignatures["java/lang/System.nanoTime()J"] = GMeth{ParamSlots: 0, GFunction: systemNanoTime}
	MethodSignatures["java/lang/System.identityHashCode(Ljava/lang/Object;)I"] = GMeth{ParamSlots: 1, GFunction: objectHashCode}
	MethodSignatures["java/lang/System.registerNatives()V"] = GMeth{ParamSlots: 0, GFunction: justReturn}
	MethodSignatures["java/lang/System.arraycopy(Ljava/lang/Object;ILjava/lang/Object;II)V"] = GMeth{ParamSlots: 5, GFunction: systemArraycopy}
}

func systemCurrentTimeMillis(params []interface{}) interface{} {
	return time.Now().UnixMilli()
}

func systemNanoTime(params []interface{}) interface{} {
	return time.Now().UnixNano()
}

// systemArraycopy is never actually invoked through this GFunction: the
// interpreter intercepts its MethodSignatures key before generic native
// dispatch. Present so the registration above is genuine rather than
// dangling.
func systemArraycopy(params []interface{}) interface{} {
	return getGErrBlk(excNames.InternalError, "arraycopy must be intercepted by the interpreter")
}
