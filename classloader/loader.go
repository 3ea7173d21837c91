/*
 * bootjvm - A Java virtual machine core
 * Licensed under Mozilla Public License 2.0 (MPL 2.0)
 */

package classloader

import (
	"fmt"
	"os"

	"bootjvm/heap"
	"bootjvm/log"
	"bootjvm/stringPool"
	"bootjvm/trace"
	"bootjvm/types"
	"bootjvm/util"
)

// Classloader is the minimal two-tier loader hierarchy spec.md §3
// requires: a bootstrap loader for the handful of primordial classes
// (classloader/primitives.go) and an application loader for everything named
// on the classpath. There is no user-defined ClassLoader subclassing;
// that is explicitly out of scope.
type Classloader struct {
	Name      string
	Parent    *Classloader
	Classpath []string
}

var (
	BootstrapCL = &Classloader{Name: "bootstrap"}
	AppCL       = &Classloader{Name: "app", Parent: BootstrapCL}
)

// Init prepares the classloader package for a fresh run: resets the
// class table and string pool and loads the primordial classes every
// JVM needs before any application bytecode executes.
func Init() error {
	mtMu.Lock()
	mtable = []*Klass{nil}
	Classes = map[string]int{}
	methodHeap = heap.New(nil)
	mtMu.Unlock()

	stringPool.Reset()

	if err := LoadBaseClasses(); err != nil {
		return err
	}
	trace.Trace("classloader: Init complete")
	return nil
}

// LoadBaseClasses loads the primitive pseudo-classes and java/lang/Object,
// the only classes the bootstrap loader is required to make available
// before application class loading begins.
func LoadBaseClasses() error {
	for _, p := range primitiveClasses() {
		MethAreaInsert(p)
	}
	if MethAreaFetch("java/lang/Object") == types.BadBinding {
		obj := syntheticObjectClass()
		MethAreaInsert(obj)
	}
	return nil
}

// LoadClassFromFile reads a single .class file from disk, parses it,
// converts it to postable form, and inserts it into the class table,
// returning its class-table index.
func LoadClassFromFile(path string) (int, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return types.BadBinding, cfe(fmt.Sprintf("cannot read class file %s: %v", path, err))
	}
	return loadClassFromBytes(raw, AppCL.Name)
}

// LoadClassFromNameOnly resolves a bare class name (e.g.
// "java/lang/String") against the classpath directories registered on
// cl, walking the name to a file path the way artipop-jacobin's own
// LoadClassFromNameOnly does.
func LoadClassFromNameOnly(cl *Classloader, className string) (int, error) {
	if idx := MethAreaFetch(className); idx != types.BadBinding {
		return idx, nil
	}
	fname := util.ConvertToPlatformPathSeparators(className) + ".class"
	for _, dir := range cl.Classpath {
		path := dir + string(os.PathSeparator) + fname
		if _, err := os.Stat(path); err == nil {
			return LoadClassFromFile(path)
		}
	}
	if cl.Parent != nil {
		return LoadClassFromNameOnly(cl.Parent, className)
	}
	return types.BadBinding, cfe(fmt.Sprintf("class not found: %s", className))
}

func loadClassFromBytes(raw []byte, loaderName string) (int, error) {
	pc, err := parse(raw)
	if err != nil {
		return types.BadBinding, err
	}
	data, err := convertToPostableClass(pc)
	if err != nil {
		return types.BadBinding, err
	}
	k := &Klass{Status: types.ClInitNotRun, Loader: loaderName, Data: data}
	idx := MethAreaInsert(k)
	_ = log.Log(fmt.Sprintf("loaded class %s at index %d", data.Name, idx), log.CLASS)

	// Pull in the superclass chain eagerly; a lazily-resolved superclass
	// would leave field lookup indices unknowable until first use.
	if data.Superclass != "" && MethAreaFetch(data.Superclass) == types.BadBinding {
		if _, err := LoadClassFromNameOnly(AppCL, data.Superclass); err != nil {
			trace.Warning(fmt.Sprintf("superclass %s of %s not found: %v", data.Superclass, data.Name, err))
		}
	}
	finalizeFieldLookup(data)

	return idx, nil
}

// convertToPostableClass narrows a ParsedClass's plain-int constant pool
// and class structures down to the uint16-indexed runtime forms the rest
// of the VM consumes, folding StringConst entries into direct UTF8
// backing references along the way. Grounded on artipop-jacobin's own
// (much larger) convertToPostableClass.
func convertToPostableClass(pc ParsedClass) (*ClData, error) {
	cp := CPool{
		CpIndex:       make([]CpEntry, len(pc.cpIndex)),
		Doubles:       pc.doubles,
		Floats:        pc.floats,
		LongConsts:    pc.longConsts,
		Utf8Refs:      make([]string, len(pc.utf8Refs)),
		IntConsts:     make([]int32, len(pc.intConsts)),
		ClassRefs:     make([]uint32, len(pc.classRefs)),
		FieldRefs:     make([]FieldRefEntry, len(pc.fieldRefs)),
		MethodRefs:    make([]MethodRefEntry, len(pc.methodRefs)),
		InterfaceRefs: make([]InterfaceRefEntry, len(pc.interfaceRefs)),
		NameAndTypes:  make([]NameAndTypeEntry, len(pc.nameAndTypes)),
	}
	for i, u := range pc.utf8Refs {
		cp.Utf8Refs[i] = u.content
	}
	for i, v := range pc.intConsts {
		cp.IntConsts[i] = int32(v)
	}
	for i, nameIdx := range pc.classRefs {
		name, err := utf8At(pc, nameIdx)
		if err != nil {
			return nil, err
		}
		cp.ClassRefs[i] = stringPool.GetStringIndex(name)
	}
	// StringConst entries fold directly to their backing UTF8 text; the
	// postable form has no separate StringConsts slice, matching the CP
	// shape spec.md §3 describes (a StringConst entry is interned once
	// and thereafter treated like a UTF8 literal).
	for i, fr := range pc.fieldRefs {
		cp.FieldRefs[i] = FieldRefEntry{ClassIndex: uint16(fr.classIndex), NameAndType: uint16(fr.nameAndTypeIndex)}
	}
	for i, mr := range pc.methodRefs {
		cp.MethodRefs[i] = MethodRefEntry{ClassIndex: uint16(mr.classIndex), NameAndType: uint16(mr.nameAndTypeIndex)}
	}
	for i, ir := range pc.interfaceRefs {
		cp.InterfaceRefs[i] = InterfaceRefEntry{ClassIndex: uint16(ir.classIndex), NameAndType: uint16(ir.nameAndTypeIndex)}
	}
	for i, nat := range pc.nameAndTypes {
		cp.NameAndTypes[i] = NameAndTypeEntry{NameIndex: uint16(nat.nameIndex), DescIndex: uint16(nat.descriptorIndex)}
	}
	for i, e := range pc.cpIndex {
		slot := uint16(0)
		entryType := uint16(e.entryType)
		switch e.entryType {
		case StringConst:
			// Rewrite to a direct UTF8 reference into the backing string.
			utf8Idx := pc.stringRefs[e.slot].utf8Index
			utf8Slot := pc.cpIndex[utf8Idx].slot
			entryType = UTF8
			slot = uint16(utf8Slot)
		default:
			slot = uint16(e.slot)
		}
		cp.CpIndex[i] = newCpEntry(entryType, slot)
	}

	fields := make([]Field, 0, len(pc.fields))
	for _, f := range pc.fields {
		name, err := utf8At(pc, f.name)
		if err != nil {
			return nil, err
		}
		desc, err := utf8At(pc, f.description)
		if err != nil {
			return nil, err
		}
		fields = append(fields, Field{Name: name, Description: desc, IsStatic: f.isStatic, IsFinal: f.isFinal, LookupIdx: types.BadBinding})
	}

	methods := make([]Method, 0, len(pc.methods))
	methodTable := make(map[string]*Method, len(pc.methods))
	for _, m := range pc.methods {
		name, err := utf8At(pc, m.name)
		if err != nil {
			return nil, err
		}
		desc, err := utf8At(pc, m.description)
		if err != nil {
			return nil, err
		}
		code := CodeAttrib{MaxStack: m.codeAttr.maxStack, MaxLocals: m.codeAttr.maxLocals, Code: m.codeAttr.code}
		for _, e := range m.codeAttr.exceptions {
			code.Exceptions = append(code.Exceptions, CodeException{StartPc: e.startPc, EndPc: e.endPc, HandlerPc: e.handlerPc, CatchType: e.catchType})
		}
		method := Method{Name: name, Description: desc, AccessFlags: m.accessFlags, IsStatic: m.accessFlags&0x0008 != 0, IsNative: m.isNative, CodeAttrib: code}
		methods = append(methods, method)
		methodTable[name+desc] = &methods[len(methods)-1]
	}

	attrs := make([]Attr, 0, len(pc.attributes))
	for _, a := range pc.attributes {
		name, err := utf8At(pc, a.attrName)
		if err != nil {
			return nil, err
		}
		attrs = append(attrs, Attr{Name: name, Content: a.attrContent})
	}

	data := &ClData{
		Name:        pc.className,
		NameIndex:   stringPool.GetStringIndex(pc.className),
		Superclass:  pc.superClass,
		SuperIndex:  types.BadBinding,
		Module:      pc.moduleName,
		Pkg:         pc.packageName,
		Fields:      fields,
		MethodTable: methodTable,
		Methods:     methods,
		Attributes:  attrs,
		SourceFile:  pc.sourceFile,
		Access: AccessFlags{
			Public: pc.classIsPublic, Final: pc.classIsFinal, Super: pc.classIsSuper,
			Interface: pc.classIsInterface, Abstract: pc.classIsAbstract,
			Synthetic: pc.classIsSynthetic, Annotation: pc.classIsAnnotation,
			Enum: pc.classIsEnum, Module: pc.classIsModule,
		},
		ClInit: types.ClInitNotRun,
		CP:     cp,
	}
	return data, nil
}

func utf8At(pc ParsedClass, cpIdx int) (string, error) {
	if cpIdx < 1 || cpIdx >= len(pc.cpIndex) || pc.cpIndex[cpIdx].entryType != UTF8 {
		return "", cfe(fmt.Sprintf("expected UTF8 entry at constant pool index %d", cpIdx))
	}
	return pc.utf8Refs[pc.cpIndex[cpIdx].slot].content, nil
}

// finalizeFieldLookup assigns data's fields their flattened lookup
// indices once its superclass (if any) is known to be loaded.
func finalizeFieldLookup(data *ClData) {
	var superFields []Field
	if data.Superclass != "" {
		if idx := MethAreaFetch(data.Superclass); idx != types.BadBinding {
			data.SuperIndex = idx
			if sk := MethAreaFetchByIndex(idx); sk != nil && sk.Data != nil {
				superFields = sk.Data.Fields
			}
		}
	}
	data.Fields = computeFieldLookupIndices(data.Fields, superFields)
}
