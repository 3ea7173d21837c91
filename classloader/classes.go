/*
 * bootjvm - A Java virtual machine core
 * Licensed under Mozilla Public License 2.0 (MPL 2.0)
 */

package classloader

import (
	"fmt"
	"sync"

	"bootjvm/heap"
	"bootjvm/types"
)

// Klass/ClData are the runtime (postable) class representation, directly
// grounded on artipop-jacobin's classes.go. Klass is the thin envelope held
// in the class table; ClData carries everything convertToPostableClass
// produces from a ParsedClass.
type Klass struct {
	Status byte // one of the ClInit* constants in types
	Loader string
	Data   *ClData

	// block is the heap.MethodArea accounting allocation backing this
	// class's method/field/constant-pool footprint, acquired by
	// MethAreaInsert and released on redefinition.
	block heap.Block
}

type ClData struct {
	Name         string
	NameIndex    uint32 // stringPool index
	Superclass   string
	SuperIndex   int // class-table index of the superclass, once resolved; types.BadBinding until then
	Module       string
	Pkg          string
	Interfaces   []int // class-table indices, once resolved
	Fields       []Field
	MethodTable  map[string]*Method // key: "name+descriptor"
	Methods      []Method
	Attributes   []Attr
	SourceFile   string
	Access       AccessFlags
	ClInit       byte
	CP           CPool
}

type AccessFlags struct {
	Public, Final, Super, Interface, Abstract, Synthetic, Annotation, Enum, Module bool
}

type Field struct {
	Name        string
	Description string
	IsStatic    bool
	IsFinal     bool
	// LookupIdx is this field's position in the object's flattened field
	// table, distinct from its declaration-order index within this
	// class: inherited fields from superclasses occupy lower indices.
	// Set by linkage.go's computeFieldLookupIndices.
	LookupIdx int
}

type Method struct {
	Name        string
	Description string
	AccessFlags int
	IsStatic    bool
	IsNative    bool
	CodeAttrib  CodeAttrib
	Exceptions  []int // class-table indices of declared checked exceptions
}

type CodeAttrib struct {
	MaxStack   int
	MaxLocals  int
	Code       []byte
	Exceptions []CodeException
}

type CodeException struct {
	StartPc, EndPc, HandlerPc, CatchType int
}

type Attr struct {
	Name    string
	Content []byte
}

// MTentry is what FetchMethodAndCP returns: the method plus the class
// whose constant pool the method's bytecode must be resolved against
// (which, for an inherited method, is the defining superclass, not the
// receiver's own class).
type MTentry struct {
	Meth     *Method
	CP       *CPool
	ClassIdx int
	MType    byte // 'J' bytecode-backed, 'G' Go-native (gfunction), 'N' not found
}

// MTable is the global class table: class-table index -> *Klass. Index 0
// is never assigned (reserved, mirroring the object table's reserved
// null slot); Classes maps a class name to its table index.
var (
	mtMu    sync.RWMutex
	mtable  = []*Klass{nil} // slot 0 unused
	Classes = map[string]int{}

	// methodHeap backs the class table's C1 MethodArea accounting.
	// Reset alongside mtable/Classes by Init, since a fresh VM run must
	// not carry over a previous run's slab occupancy.
	methodHeap = heap.New(nil)
)

// methodAreaFootprint estimates a class's method-area storage in bytes,
// proportional to its field/method/constant-pool entry counts, so
// MethAreaInsert's heap.Acquire call reserves a size that actually
// tracks what the class carries rather than a fixed placeholder.
func methodAreaFootprint(k *Klass) int {
	if k.Data == nil {
		return 0
	}
	return (len(k.Data.Fields) + len(k.Data.Methods) + len(k.Data.CP.CpIndex)) * 8
}

// MethAreaInsert adds (or replaces, on a redefinition) a class and
// returns its class-table index. Each insert acquires a heap.MethodArea
// block sized to the class's footprint; a redefinition releases the
// block the class it replaces held, giving the method area a genuine
// acquire/release lifecycle rather than acquire-only growth.
func MethAreaInsert(k *Klass) int {
	mtMu.Lock()
	defer mtMu.Unlock()
	k.block, _ = methodHeap.Acquire(heap.MethodArea, methodAreaFootprint(k), true)
	if idx, ok := Classes[k.Data.Name]; ok {
		if prev := mtable[idx]; prev != nil {
			methodHeap.Release(heap.MethodArea, prev.block)
		}
		mtable[idx] = k
		return idx
	}
	idx := len(mtable)
	mtable = append(mtable, k)
	Classes[k.Data.Name] = idx
	return idx
}

// MethAreaFetch returns the class-table index for a loaded class name,
// or types.BadBinding if it is not yet loaded.
func MethAreaFetch(name string) int {
	mtMu.RLock()
	defer mtMu.RUnlock()
	idx, ok := Classes[name]
	if !ok {
		return types.BadBinding
	}
	return idx
}

// MethAreaFetchByIndex returns the *Klass at a class-table index, or nil
// if the index is out of range or was never assigned.
func MethAreaFetchByIndex(idx int) *Klass {
	mtMu.RLock()
	defer mtMu.RUnlock()
	if idx <= 0 || idx >= len(mtable) {
		return nil
	}
	return mtable[idx]
}

// GetCountOfLoadedClasses reports how many classes occupy the class
// table, for diagnostics (cmd/jstat's classes subcommand).
func GetCountOfLoadedClasses() int {
	mtMu.RLock()
	defer mtMu.RUnlock()
	return len(Classes)
}

// FetchMethodAndCP resolves a (className, methodName, methodType) triple
// to its defining method, walking the superclass chain when the method
// is not declared directly on className — mirroring artipop-jacobin's own
// FetchMethodAndCP superclass walk.
func FetchMethodAndCP(className, methName, methType string) (MTentry, error) {
	key := methName + methType
	idx := MethAreaFetch(className)
	for idx != types.BadBinding {
		k := MethAreaFetchByIndex(idx)
		if k == nil || k.Data == nil {
			break
		}
		if m, ok := k.Data.MethodTable[key]; ok {
			mtype := byte('J')
			if m.IsNative {
				mtype = 'G'
			}
			return MTentry{Meth: m, CP: &k.Data.CP, ClassIdx: idx, MType: mtype}, nil
		}
		if k.Data.Superclass == "" {
			break
		}
		idx = MethAreaFetch(k.Data.Superclass)
	}
	return MTentry{MType: 'N'}, fmt.Errorf("method not found: %s.%s%s", className, methName, methType)
}

// FetchUTF8stringFromCPEntryNumber returns the UTF8 string a postable CP
// entry holds. Only UTF8 entries are accepted; any other entry type,
// ClassRef included, is an error.
func FetchUTF8stringFromCPEntryNumber(cp *CPool, idx uint16) (string, error) {
	if int(idx) >= len(cp.CpIndex) {
		return "", fmt.Errorf("constant pool index %d out of range", idx)
	}
	entry := cp.CpIndex[idx]
	switch entry.Type {
	case UTF8:
		return cp.Utf8Refs[entry.Slot], nil
	default:
		return "", fmt.Errorf("constant pool entry %d is not a UTF8 entry", idx)
	}
}
