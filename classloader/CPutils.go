/*
 * bootjvm - A Java virtual machine core
 * Licensed under Mozilla Public License 2.0 (MPL 2.0)
 */

package classloader

import (
	"fmt"

	"bootjvm/stringPool"
)

// CpType discriminates the shape of value FetchCPentry returns, mirroring
// artipop-jacobin's own CPutils.go discriminated-union-via-struct pattern
// rather than a Go interface{} switch at every call site.
type CpType int

const (
	IsError CpType = iota
	IsStructAddr
	IsFloat64
	IsInt64
	IsStringAddr
)

// CpEntryResult is what FetchCPentry returns: exactly one of its
// RetInt/RetFloat/RetString fields is meaningful, selected by
// Type.
type CpEntryResult struct {
	Type     CpType
	RetInt   int64
	RetFloat float64
	RetString string
}

// FetchCPentry reads a constant pool entry of a loaded class by raw CP
// index and returns its resolved Go value, for gfunction native methods
// that need to pull a literal out of a caller's constant pool (notably
// the ldc family of opcodes).
func FetchCPentry(cp *CPool, idx uint16) CpEntryResult {
	if int(idx) >= len(cp.CpIndex) {
		return CpEntryResult{Type: IsError}
	}
	entry := cp.CpIndex[idx]
	switch entry.Type {
	case IntConst:
		return CpEntryResult{Type: IsInt64, RetInt: int64(cp.IntConsts[entry.Slot])}
	case LongConst:
		return CpEntryResult{Type: IsInt64, RetInt: cp.LongConsts[entry.Slot]}
	case FloatConst:
		return CpEntryResult{Type: IsFloat64, RetFloat: float64(cp.Floats[entry.Slot])}
	case DoubleConst:
		return CpEntryResult{Type: IsFloat64, RetFloat: cp.Doubles[entry.Slot]}
	case UTF8:
		return CpEntryResult{Type: IsStringAddr, RetString: cp.Utf8Refs[entry.Slot]}
	case StringConst:
		return CpEntryResult{Type: IsStringAddr, RetString: cp.Utf8Refs[entry.Slot]}
	case ClassRef:
		return CpEntryResult{Type: IsStringAddr, RetString: fmt.Sprintf("class#%d", cp.ClassRefs[entry.Slot])}
	default:
		return CpEntryResult{Type: IsError}
	}
}

// GetMethInfoFromCPmethref resolves a MethodRef CP entry into the
// (className, methodName, methodType) triple FetchMethodAndCP expects,
// without performing the resolution itself.
func GetMethInfoFromCPmethref(cp *CPool, mref MethodRefEntry) (className, methodName, methodType string, err error) {
	classEntry := cp.CpIndex[mref.ClassIndex]
	if classEntry.Type != ClassRef {
		return "", "", "", fmt.Errorf("method ref class index does not point at a ClassRef")
	}
	className = *stringPool.GetStringPointer(cp.ClassRefs[classEntry.Slot])
	natEntry := cp.CpIndex[mref.NameAndType]
	if natEntry.Type != NameAndType {
		return "", "", "", fmt.Errorf("method ref name-and-type index does not point at a NameAndType")
	}
	nat := cp.NameAndTypes[natEntry.Slot]
	methodName, err = FetchUTF8stringFromCPEntryNumber(cp, nat.NameIndex)
	if err != nil {
		return "", "", "", err
	}
	methodType, err = FetchUTF8stringFromCPEntryNumber(cp, nat.DescIndex)
	if err != nil {
		return "", "", "", err
	}
	return className, methodName, methodType, nil
}

// GetClassNameFromCPclassref resolves a ClassRef CP entry directly to
// its class name string, following the ClassRef -> UTF8 indirection.
func GetClassNameFromCPclassref(cp *CPool, cpIdx uint16) (string, error) {
	entry := cp.CpIndex[cpIdx]
	if entry.Type != ClassRef {
		return "", fmt.Errorf("CP entry %d is not a ClassRef", cpIdx)
	}
	return *stringPool.GetStringPointer(cp.ClassRefs[entry.Slot]), nil
}
