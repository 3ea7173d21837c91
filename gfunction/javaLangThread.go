/*
 * bootjvm - A Java virtual machine core
 * Licensed under Mozilla Public License 2.0 (MPL 2.0)
 */

package gfunction

import (
	"time"

	"bootjvm/excNames"
)

// loadLangThread registers java/lang/Thread's native methods. Grounded
// directly on artipop-jacobin/src/gfunction/javaLangThread.go's
// Load_Lang_Thread: the sleep GFunction's getGErrBlk(excNames.IOException, ...)
// convention on a negative argument is reproduced verbatim in spirit.
func loadLangThread() {
	MethodSignatures["java/lang/Thread.<init>()V"] = GMeth{ParamSlots: 0, GFunction: justReturn}
	MethodSignatures["java/lang/Thread.start()V"] = GMeth{ParamSlots: 0, GFunction: justReturn}
	MethodSignatures["java/lang/Thread.sleep(J)V"] = GMeth{ParamSlots: 1, GFunction: threadSleep}
	MethodSignatures["java/lang/Thread.currentThread()Ljava/lang/Thread;"] = GMeth{ParamSlots: 0, GFunction: justReturn}
	MethodSignatures["java/lang/Thread.getName()Ljava/lang/String;"] = GMeth{ParamSlots: 0, GFunction: justReturn}
	MethodSignatures["java/lang/Thread.stop()V"] = GMeth{ParamSlots: 0, GFunction: trapDeprecated}
	MethodSignatures["java/lang/Thread.suspend()V"] = GMeth{ParamSlots: 0, GFunction: trapDeprecated}
	MethodSignatures["java/lang/Thread.registerNatives()V"] = GMeth{ParamSlots: 0, GFunction: justReturn}
}

// threadSleep validates its millis argument the way artipop-jacobin's own
// threadSleep does before ever touching real time: a negative duration
// is always an error, never a platform-dependent no-op.
func threadSleep(params []interface{}) interface{} {
	if len(params) == 0 {
		return getGErrBlk(excNames.IllegalArgumentException, "Thread.sleep: missing argument")
	}
	millis, ok := params[0].(int64)
	if !ok {
		return getGErrBlk(excNames.IllegalArgumentException, "Thread.sleep: argument is not a long")
	}
	if millis < 0 {
		return getGErrBlk(excNames.IOException, "timer value is negative")
	}
	time.Sleep(time.Duration(millis) * time.Millisecond)
	return nil
}
