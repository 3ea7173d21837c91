/*
 * bootjvm - A Java virtual machine core
 * Licensed under Mozilla Public License 2.0 (MPL 2.0)
 */

package classloader

import (
	"bootjvm/stringPool"
	"bootjvm/types"
)

// primitiveNames lists the eight primitive pseudo-classes per spec.md
// §4.3: each gets a Klass entry so that Class objects and array element
// typing have something concrete to point at, even though none of them
// carries real bytecode.
var primitiveNames = []string{"byte", "char", "double", "float", "int", "long", "short", "boolean"}

func primitiveClasses() []*Klass {
	out := make([]*Klass, 0, len(primitiveNames))
	for _, name := range primitiveNames {
		out = append(out, &Klass{
			Status: types.ClInitRun, // primitives need no initializer
			Loader: "bootstrap",
			Data: &ClData{
				Name:        name,
				NameIndex:   stringPool.GetStringIndex(name),
				MethodTable: map[string]*Method{},
				ClInit:      types.ClInitRun,
				Access:      AccessFlags{Public: true, Final: true},
			},
		})
	}
	return out
}

// syntheticObjectClass builds a minimal java/lang/Object Klass good
// enough to terminate every superclass walk, for use until a real
// java/lang/Object.class is loaded off the classpath.
func syntheticObjectClass() *Klass {
	return &Klass{
		Status: types.ClInitRun,
		Loader: "bootstrap",
		Data: &ClData{
			Name:        "java/lang/Object",
			NameIndex:   stringPool.GetStringIndex("java/lang/Object"),
			MethodTable: map[string]*Method{},
			ClInit:      types.ClInitRun,
			Access:      AccessFlags{Public: true},
		},
	}
}

// ArrayClassName synthesizes the internal class name for an array type
// per spec.md §4.3's array class synthesis rule: one leading '[' per
// dimension, followed by the element descriptor.
func ArrayClassName(dims int, elementDescriptor string) string {
	prefix := ""
	for i := 0; i < dims; i++ {
		prefix += "["
	}
	return prefix + elementDescriptor
}

// EnsureArrayClass returns the class-table index of the array pseudo-class
// for dims/elementDescriptor, synthesizing and inserting one on first
// use. Array classes share java/lang/Object as their superclass and
// carry no declared fields or methods.
func EnsureArrayClass(dims int, elementDescriptor string) int {
	name := ArrayClassName(dims, elementDescriptor)
	if idx := MethAreaFetch(name); idx != types.BadBinding {
		return idx
	}
	k := &Klass{
		Status: types.ClInitRun,
		Loader: "bootstrap",
		Data: &ClData{
			Name:        name,
			NameIndex:   stringPool.GetStringIndex(name),
			Superclass:  "java/lang/Object",
			MethodTable: map[string]*Method{},
			ClInit:      types.ClInitRun,
			Access:      AccessFlags{Public: true, Final: true},
		},
	}
	return MethAreaInsert(k)
}
