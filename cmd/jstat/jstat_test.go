/*
 * bootjvm - A Java virtual machine core
 * Licensed under Mozilla Public License 2.0 (MPL 2.0)
 */

package main

import (
	"testing"
)

func TestBootSessionOnEmptyClasspathLoadsOnlyBaseClasses(t *testing.T) {
	dir := t.TempDir()

	j, err := bootSession(dir)
	if err != nil {
		t.Fatalf("bootSession: %v", err)
	}

	snap := j.TakeSnapshot()
	if snap.LoadedClasses == 0 {
		t.Errorf("expected at least the primitive + java/lang/Object base classes to be loaded")
	}
	if snap.ThreadCount != 1 {
		t.Errorf("expected exactly the synthetic main thread, got %d", snap.ThreadCount)
	}
	if snap.ThreadStates[0].Name != "main" {
		t.Errorf("expected the main thread to be named %q, got %q", "main", snap.ThreadStates[0].Name)
	}
}

func TestBootSessionRejectsUnreadableClasspath(t *testing.T) {
	_, err := bootSession("/no/such/directory/bootjvm-jstat-test")
	if err == nil {
		t.Fatalf("expected an error for a nonexistent classpath directory")
	}
}
