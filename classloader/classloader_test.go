/*
 * bootjvm - A Java virtual machine core
 * Licensed under Mozilla Public License 2.0 (MPL 2.0)
 */

package classloader

import (
	"testing"

	"bootjvm/types"
)

func TestLoadBaseClassesRegistersPrimitivesAndObject(t *testing.T) {
	mtMu.Lock()
	mtable = []*Klass{nil}
	Classes = map[string]int{}
	mtMu.Unlock()

	if err := LoadBaseClasses(); err != nil {
		t.Fatalf("LoadBaseClasses: %v", err)
	}
	for _, name := range []string{"int", "boolean", "java/lang/Object"} {
		if MethAreaFetch(name) == types.BadBinding {
			t.Errorf("expected %s to be registered", name)
		}
	}
}

func TestMethAreaInsertAndFetchRoundTrip(t *testing.T) {
	mtMu.Lock()
	mtable = []*Klass{nil}
	Classes = map[string]int{}
	mtMu.Unlock()

	k := &Klass{Data: &ClData{Name: "test/Foo", MethodTable: map[string]*Method{}}}
	idx := MethAreaInsert(k)
	if idx == 0 {
		t.Fatalf("expected a non-zero class-table index")
	}
	if got := MethAreaFetch("test/Foo"); got != idx {
		t.Errorf("expected fetch to return %d, got %d", idx, got)
	}
	if k2 := MethAreaFetchByIndex(idx); k2 != k {
		t.Errorf("expected fetch-by-index to return the same Klass pointer")
	}
}

func TestFetchMethodAndCPWalksSuperclassChain(t *testing.T) {
	mtMu.Lock()
	mtable = []*Klass{nil}
	Classes = map[string]int{}
	mtMu.Unlock()

	base := &Method{Name: "greet", Description: "()V"}
	baseClass := &Klass{Data: &ClData{
		Name:        "test/Base",
		MethodTable: map[string]*Method{"greet()V": base},
	}}
	MethAreaInsert(baseClass)

	derived := &Klass{Data: &ClData{
		Name:        "test/Derived",
		Superclass:  "test/Base",
		MethodTable: map[string]*Method{},
	}}
	MethAreaInsert(derived)

	entry, err := FetchMethodAndCP("test/Derived", "greet", "()V")
	if err != nil {
		t.Fatalf("FetchMethodAndCP: %v", err)
	}
	if entry.Meth != base {
		t.Errorf("expected to resolve the inherited method from test/Base")
	}
}

func TestFetchMethodAndCPReturnsErrorWhenNotFound(t *testing.T) {
	mtMu.Lock()
	mtable = []*Klass{nil}
	Classes = map[string]int{}
	mtMu.Unlock()

	MethAreaInsert(&Klass{Data: &ClData{Name: "test/Empty", MethodTable: map[string]*Method{}}})

	if _, err := FetchMethodAndCP("test/Empty", "nope", "()V"); err == nil {
		t.Errorf("expected an error for an undeclared method")
	}
}

func TestComputeFieldLookupIndicesOrdersInheritedFirst(t *testing.T) {
	super := []Field{{Name: "x", LookupIdx: 0}}
	own := []Field{{Name: "y"}, {Name: "z"}}
	out := computeFieldLookupIndices(own, super)
	if len(out) != 3 {
		t.Fatalf("expected 3 fields, got %d", len(out))
	}
	if out[0].Name != "x" || out[0].LookupIdx != 0 {
		t.Errorf("expected inherited field x at lookup index 0, got %+v", out[0])
	}
	if out[1].Name != "y" || out[1].LookupIdx != 1 {
		t.Errorf("expected own field y at lookup index 1, got %+v", out[1])
	}
	if out[2].Name != "z" || out[2].LookupIdx != 2 {
		t.Errorf("expected own field z at lookup index 2, got %+v", out[2])
	}
}

func TestEnsureArrayClassSynthesizesAndCaches(t *testing.T) {
	mtMu.Lock()
	mtable = []*Klass{nil}
	Classes = map[string]int{}
	mtMu.Unlock()
	LoadBaseClasses()

	idx1 := EnsureArrayClass(1, types.Int)
	idx2 := EnsureArrayClass(1, types.Int)
	if idx1 != idx2 {
		t.Errorf("expected repeated EnsureArrayClass calls to return the same index")
	}
	k := MethAreaFetchByIndex(idx1)
	if k.Data.Name != "[I" {
		t.Errorf("expected array class name [I, got %s", k.Data.Name)
	}
}
