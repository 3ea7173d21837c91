/*
 * bootjvm - A Java virtual machine core
 * Licensed under Mozilla Public License 2.0 (MPL 2.0)
 */

// Package types holds the small value types and descriptor-character
// constants shared across the classloader, object, and interpreter
// packages, so none of them needs to import another for a single typedef.
package types

// JavaByte is a Java byte: always sign-extended to 8 bits but kept as
// its own type so array-of-byte and string-backing-array code cannot be
// silently mixed up with a Go byte (uint8) slice built for other uses.
type JavaByte int8

// Field-descriptor single-character type tags (JVM spec §4.3.2).
const (
	Byte    = "B"
	Char    = "C"
	Double  = "D"
	Float   = "F"
	Int     = "I"
	Long    = "J"
	Short   = "S"
	Bool    = "Z"
	Ref     = "L"
	Array   = "["
	RefArray = "[L"
	Void    = "V"

	ByteArray = "[B"
)

// Sentinel string-pool indices used before a class/name has been
// resolved. InvalidStringIndex marks "not yet set"; ObjectPoolStringIndex
// and StringPoolStringIndex are the well-known indices for
// "java/lang/Object" and "java/lang/String", pre-interned at VM boot so
// every class's superclass check can compare cheaply by index.
const (
	InvalidStringIndex       uint32 = 0xFFFFFFFF
	ObjectPoolStringIndex    uint32 = 0
	StringPoolStringIndex    uint32 = 1
)

// Local-binding sentinel: a constant-pool entry's resolved index before
// linkage has run. Per spec.md §3, local bindings are monotonic — once
// set away from this value they are never rewritten.
const BadBinding = -1

// ClInit status values for ClData.ClInit (classloader package), kept
// here so both classloader and jvm packages can share one vocabulary.
const (
	NoClinit       byte = 0
	ClInitNotRun   byte = 1
	ClInitInProgress byte = 2
	ClInitRun      byte = 3
)
