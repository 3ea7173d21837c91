/*
 * bootjvm - A Java virtual machine core
 * Licensed under Mozilla Public License 2.0 (MPL 2.0)
 */

package classloader

import (
	"fmt"

	"bootjvm/stringPool"
	"bootjvm/types"
)

// Linkage resolves the late bindings spec.md §3/§5 describe: a
// ClassRef/FieldRef/MethodRef constant pool entry starts out as a bare
// name+descriptor pair and is only resolved to a concrete class-table
// index (or field-lookup index) the first time it is actually used. Once
// resolved, a binding is never rewritten (types.BadBinding -> a valid
// index, one-way).

// ResolveClassRef resolves CP entry cpIdx of class at classIdx to a
// concrete class-table index, loading the referenced class if it is not
// already loaded. It is idempotent: a second call is a cheap no-op.
func ResolveClassRef(classIdx int, cpIdx uint16) (int, error) {
	k := MethAreaFetchByIndex(classIdx)
	if k == nil {
		return types.BadBinding, fmt.Errorf("resolve: unknown class index %d", classIdx)
	}
	entry := &k.Data.CP.CpIndex[cpIdx]
	if entry.Type != ClassRef {
		return types.BadBinding, fmt.Errorf("resolve: CP entry %d is not a ClassRef", cpIdx)
	}
	if entry.ResolvedClassIdx != types.BadBinding {
		return entry.ResolvedClassIdx, nil
	}

	name := *stringPool.GetStringPointer(k.Data.CP.ClassRefs[entry.Slot])
	target := MethAreaFetch(name)
	if target == types.BadBinding {
		return types.BadBinding, fmt.Errorf("resolve: class %s is not loaded", name)
	}
	entry.ResolvedClassIdx = target
	return target, nil
}

// ResolveFieldRef resolves a FieldRef CP entry to a field-lookup index,
// the position a field occupies in an object's flattened field table —
// distinct from its declaration-order index within the class that
// declares it, since inherited fields from superclasses occupy lower
// lookup indices than fields the subclass itself declares.
func ResolveFieldRef(classIdx int, cpIdx uint16) (int, string, error) {
	k := MethAreaFetchByIndex(classIdx)
	if k == nil {
		return types.BadBinding, "", fmt.Errorf("resolve: unknown class index %d", classIdx)
	}
	entry := &k.Data.CP.CpIndex[cpIdx]
	if entry.Type != FieldRef {
		return types.BadBinding, "", fmt.Errorf("resolve: CP entry %d is not a FieldRef", cpIdx)
	}
	if entry.ResolvedFieldLookup != types.BadBinding {
		return entry.ResolvedFieldLookup, entry.ResolvedValueType, nil
	}

	fref := k.Data.CP.FieldRefs[entry.Slot]
	ownerIdx, err := ResolveClassRef(classIdx, fref.ClassIndex)
	if err != nil {
		return types.BadBinding, "", err
	}
	nat := k.Data.CP.NameAndTypes[k.Data.CP.CpIndex[k.Data.CP.CpIndex[fref.NameAndType].Slot].Slot]
	_ = nat // name/desc already folded into Field.Name/Description by computeFieldLookupIndices

	owner := MethAreaFetchByIndex(ownerIdx)
	if owner == nil {
		return types.BadBinding, "", fmt.Errorf("resolve: owner class %d vanished", ownerIdx)
	}
	fieldName, err := fieldNameFromFieldRef(k, fref)
	if err != nil {
		return types.BadBinding, "", err
	}
	for i := range owner.Data.Fields {
		if owner.Data.Fields[i].Name == fieldName {
			entry.ResolvedFieldLookup = owner.Data.Fields[i].LookupIdx
			entry.ResolvedValueType = owner.Data.Fields[i].Description
			return entry.ResolvedFieldLookup, entry.ResolvedValueType, nil
		}
	}
	return types.BadBinding, "", fmt.Errorf("resolve: field %s not found on %s", fieldName, owner.Data.Name)
}

func fieldNameFromFieldRef(k *Klass, fref FieldRefEntry) (string, error) {
	natEntry := k.Data.CP.CpIndex[fref.NameAndType]
	if natEntry.Type != NameAndType {
		return "", fmt.Errorf("FieldRef does not point at a NameAndType entry")
	}
	nat := k.Data.CP.NameAndTypes[natEntry.Slot]
	return FetchUTF8stringFromCPEntryNumber(&k.Data.CP, nat.NameIndex)
}

// computeFieldLookupIndices assigns each field of a freshly converted
// class its flattened lookup index: inherited fields first (lowest
// indices, walking the superclass chain root-down), then this class's
// own declared fields in declaration order. superFields is the already
// resolved, ordered field list of the immediate superclass (empty for
// java/lang/Object).
func computeFieldLookupIndices(ownFields []Field, superFields []Field) []Field {
	out := make([]Field, 0, len(superFields)+len(ownFields))
	out = append(out, superFields...)
	next := len(out)
	for _, f := range ownFields {
		f.LookupIdx = next
		next++
		out = append(out, f)
	}
	return out
}
