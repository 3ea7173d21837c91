/*
 * bootjvm - A Java virtual machine core
 * Licensed under Mozilla Public License 2.0 (MPL 2.0)
 */

package gfunction

import "bootjvm/stringPool"

// loadLangThrowable registers the native surface of java/lang/Throwable
// and its constructors (the message is not stored on the instance; see
// throwableInitWithMessage) and the no-op fillInStackTrace a bootstrap
// VM does not otherwise model.
func loadLangThrowable() {
	MethodSignatures["java/lang/Throwable.<init>()V"] = GMeth{ParamSlots: 0, GFunction: justReturn}
	MethodSignatures["java/lang/Throwable.<init>(Ljava/lang/String;)V"] = GMeth{ParamSlots: 1, GFunction: throwableInitWithMessage}
	MethodSignatures["java/lang/Throwable.getMessage()Ljava/lang/String;"] = GMeth{ParamSlots: 0, GFunction: justReturn}
	MethodSignatures["java/lang/Throwable.fillInStackTrace()Ljava/lang/Throwable;"] = GMeth{ParamSlots: 0, GFunction: justReturn}
	MethodSignatures["java/lang/Throwable.printStackTrace()V"] = GMeth{ParamSlots: 0, GFunction: justReturn}
}

// throwableInitWithMessage returns a pointer to the pooled message string
// named by the stringPool index in params[1]. The constructor returns
// void, so the interpreter discards that result; no "detailMessage" field
// is written on the instance.
func throwableInitWithMessage(params []interface{}) interface{} {
	if len(params) < 2 {
		return nil
	}
	idx, ok := params[1].(uint32)
	if !ok {
		return nil
	}
	return stringPool.GetStringPointer(idx)
}
