/*
 * bootjvm - A Java virtual machine core
 * Licensed under Mozilla Public License 2.0 (MPL 2.0)
 */

package classloader

import "bootjvm/types"

// Constant-pool entry tags, restricted to the set spec.md §3 enumerates.
// Numeric values match the JVM class-file format so the parser can
// switch directly on the wire byte.
const (
	Dummy       = 0 // placeholder slot following a Long/Double entry
	UTF8        = 1
	IntConst    = 3
	FloatConst  = 4
	LongConst   = 5
	DoubleConst = 6
	ClassRef    = 7
	StringConst = 8
	FieldRef    = 9
	MethodRef   = 10
	Interface   = 11 // InterfaceMethodref
	NameAndType = 12
)

// CpEntry is one constant-pool slot in its postable (post-parse) form:
// a tagged index into one of CPool's per-type arrays, plus the local
// binding C5 fills in. Per spec.md §3, a local binding is monotonic: it
// starts at types.BadBinding and, once set to a valid index, is never
// rewritten.
type CpEntry struct {
	Type uint16
	Slot uint16

	// Local binding fields, set once by the linkage resolver (classloader/linkage.go).
	ResolvedClassIdx     int    // index into the class table
	ResolvedMethodIdx    int    // key into MTable, once known to exist
	ResolvedFieldLookup  int    // field lookup index (see linkage.go)
	ResolvedValueType    string // descriptor character(s) of a resolved field
	ResolvedCodeAttrIdx  int    // reserved for a future per-entry code-attribute cache
	ResolvedNativeOrdinal int   // ordinal into the gfunction native-method table, or -1
}

func newCpEntry(entryType uint16, slot uint16) CpEntry {
	return CpEntry{
		Type:                  entryType,
		Slot:                  slot,
		ResolvedClassIdx:      types.BadBinding,
		ResolvedMethodIdx:     types.BadBinding,
		ResolvedFieldLookup:   types.BadBinding,
		ResolvedCodeAttrIdx:   types.BadBinding,
		ResolvedNativeOrdinal: types.BadBinding,
	}
}

// IsResolved reports whether this entry's class binding has been set.
func (e CpEntry) IsResolved() bool { return e.ResolvedClassIdx != types.BadBinding }

type FieldRefEntry struct {
	ClassIndex  uint16
	NameAndType uint16
}

type MethodRefEntry struct {
	ClassIndex  uint16
	NameAndType uint16
}

type InterfaceRefEntry struct {
	ClassIndex  uint16
	NameAndType uint16
}

type NameAndTypeEntry struct {
	NameIndex uint16
	DescIndex uint16
}

// CPool is the postable, runtime form of a class's constant pool: every
// index has been narrowed to uint16 and StringConst entries have been
// rewritten to point directly at their backing UTF8 entry (see
// convertToPostableClass).
type CPool struct {
	CpIndex       []CpEntry
	ClassRefs     []uint32 // each points to a stringPool index holding a class name
	Doubles       []float64
	FieldRefs     []FieldRefEntry
	Floats        []float32
	IntConsts     []int32
	InterfaceRefs []InterfaceRefEntry
	LongConsts    []int64
	MethodRefs    []MethodRefEntry
	NameAndTypes  []NameAndTypeEntry
	Utf8Refs      []string
}
