/*
 * bootjvm - A Java virtual machine core
 * Licensed under Mozilla Public License 2.0 (MPL 2.0)
 */

package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"bootjvm/classloader"
	"bootjvm/jvm"
	"bootjvm/thread"
)

// bootSession stands up a throwaway classloader+JVM pair rooted at a
// classpath directory and loads every .class file it finds there, so
// jstat can report real C1/C3/C4/C6 counters without attaching to a
// running process. This is the CLI's entire "diagnostic source": a
// point-in-time load-and-snapshot rather than a live attach, matching
// the flat-report scope SPEC_FULL.md gives cmd/jstat.
func bootSession(classpath string) (*jvm.JVM, error) {
	if err := classloader.Init(); err != nil {
		return nil, fmt.Errorf("initializing class table: %w", err)
	}
	classloader.AppCL.Classpath = []string{classpath}

	j := jvm.New()
	if err := j.Init(); err != nil {
		return nil, fmt.Errorf("initializing jvm: %w", err)
	}

	err := filepath.Walk(classpath, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() || !strings.HasSuffix(path, ".class") {
			return nil
		}
		if _, loadErr := classloader.LoadClassFromFile(path); loadErr != nil {
			fmt.Fprintf(os.Stderr, "jstat: skipping %s: %v\n", path, loadErr)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walking classpath %s: %w", classpath, err)
	}

	// A bare class table has no thread activity to report; start the
	// conventional "main" thread the way the real VM would on entry, so
	// `jstat threads` has something non-empty to show.
	th := thread.CreateThread(j.Threads, "main", 5)
	th.Request(thread.Start)
	th.Tick(nil)

	return j, nil
}
