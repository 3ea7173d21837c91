/*
 * bootjvm - A Java virtual machine core
 * Licensed under Mozilla Public License 2.0 (MPL 2.0)
 */

package jvm

import (
	"fmt"

	"bootjvm/classloader"
	"bootjvm/log"
	"bootjvm/types"
)

// runInit invokes <init>()V on a freshly constructed instance, and
// RunClinit invokes a class's <clinit>()V exactly once, tracked by its
// Klass.Status byte. Adapted from artipop-jacobin/src/jvm/initializerBlock.go's
// runInitializationBlock/runJavaInitializer/runNativeInitializer, folded
// into two focused entry points since this module's Method carries an
// IsNative bool directly rather than a separate 'J'/'G' MTentry tag at
// this call site.
func (j *JVM) runInit(classIdx, objHash, threadIdx int) error {
	k := classloader.MethAreaFetchByIndex(classIdx)
	if k == nil {
		return fmt.Errorf("runInit: unknown class index %d", classIdx)
	}
	m, ok := k.Data.MethodTable["<init>()V"]
	if !ok {
		return nil // no explicit constructor: the implicit default one does nothing observable
	}
	return j.invokeMethod(classIdx, m, threadIdx, []interface{}{objHash})
}

// RunClinit runs className's <clinit>()V if present and not already run
// or in progress, per spec.md §4.5's "run exactly once, recursively for
// superclasses first" rule.
func (j *JVM) RunClinit(className string, threadIdx int) error {
	classIdx := classloader.MethAreaFetch(className)
	if classIdx == types.BadBinding {
		return fmt.Errorf("RunClinit: class %s not loaded", className)
	}
	k := classloader.MethAreaFetchByIndex(classIdx)
	if k == nil {
		return fmt.Errorf("RunClinit: class-table entry for %s vanished", className)
	}

	if k.Data.ClInit == types.ClInitRun || k.Data.ClInit == types.ClInitInProgress {
		return nil
	}

	if k.Data.Superclass != "" {
		if err := j.RunClinit(k.Data.Superclass, threadIdx); err != nil {
			return err
		}
	}

	k.Data.ClInit = types.ClInitInProgress
	m, ok := k.Data.MethodTable["<clinit>()V"]
	if ok {
		_ = log.Log(fmt.Sprintf("running <clinit> for %s", className), log.CLASS)
		if err := j.invokeMethod(classIdx, m, threadIdx, nil); err != nil {
			return err
		}
	}
	k.Data.ClInit = types.ClInitRun
	return nil
}
