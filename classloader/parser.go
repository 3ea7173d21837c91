/*
 * bootjvm - A Java virtual machine core
 * Licensed under Mozilla Public License 2.0 (MPL 2.0)
 */

package classloader

import (
	"encoding/binary"
	"fmt"

	"bootjvm/globals"
	"bootjvm/log"
)

// parse reads a raw .class byte image and produces a ParsedClass.
// Class-file parsing is named an external collaborator in spec.md §1;
// this parser covers exactly the constant-pool tag set spec.md §3
// enumerates (UTF8, Integer, Float, Long, Double, Class, String,
// Fieldref, Methodref, InterfaceMethodref, NameAndType) and the minimal
// field/method/attribute structure §3/§4.3 need. Newer tags
// (MethodHandle, Dynamic, InvokeDynamic, Module, Package) are out of
// scope and rejected with a ClassFormatError.
func parse(raw []byte) (ParsedClass, error) {
	var pc ParsedClass

	if err := parseMagicNumber(raw); err != nil {
		return pc, err
	}
	if err := parseVersion(raw, &pc); err != nil {
		return pc, err
	}

	pos := 8
	pos, err := parseConstantPool(raw, pos, &pc)
	if err != nil {
		return pc, err
	}

	pos, err = parseAccessFlags(raw, pos, &pc)
	if err != nil {
		return pc, err
	}
	pos, err = parseThisAndSuper(raw, pos, &pc)
	if err != nil {
		return pc, err
	}
	pos, err = parseInterfaces(raw, pos, &pc)
	if err != nil {
		return pc, err
	}
	pos, err = parseFields(raw, pos, &pc)
	if err != nil {
		return pc, err
	}
	pos, err = parseMethods(raw, pos, &pc)
	if err != nil {
		return pc, err
	}
	_, err = parseClassAttributes(raw, pos, &pc)
	if err != nil {
		return pc, err
	}

	return pc, nil
}

func parseMagicNumber(b []byte) error {
	if len(b) < 10 {
		return cfe("truncated class file")
	}
	if b[0] != 0xCA || b[1] != 0xFE || b[2] != 0xBA || b[3] != 0xBE {
		return cfe("invalid magic number")
	}
	return nil
}

func parseVersion(b []byte, pc *ParsedClass) error {
	minor := int(binary.BigEndian.Uint16(b[4:6]))
	major := int(binary.BigEndian.Uint16(b[6:8]))
	pc.javaVersion = major
	if major > globals.GetGlobalRef().MaxJavaVersionRaw {
		return cfe(fmt.Sprintf("unsupported class file version %d.%d", major, minor))
	}
	_ = log.Log(fmt.Sprintf("class file version: %d.%d", major, minor), log.FINEST)
	return nil
}

// parseConstantPool reads the CP entries at pos (pointing at the
// constant_pool_count u2) and populates every per-type slice in pc. It
// returns the position immediately after the CP.
func parseConstantPool(b []byte, pos int, pc *ParsedClass) (int, error) {
	count := int(binary.BigEndian.Uint16(b[pos : pos+2]))
	pos += 2
	if count < 1 {
		return pos, cfe("invalid constant pool count")
	}
	pc.cpCount = count

	// Slot 0 is an unused placeholder: CP indices are 1-based.
	pc.cpIndex = make([]parsedCpEntry, count)

	for i := 1; i < count; i++ {
		if pos >= len(b) {
			return pos, cfe("truncated constant pool")
		}
		tag := int(b[pos])
		pos++

		switch tag {
		case UTF8:
			length := int(binary.BigEndian.Uint16(b[pos : pos+2]))
			pos += 2
			content := string(b[pos : pos+length])
			pos += length
			slot := len(pc.utf8Refs)
			pc.utf8Refs = append(pc.utf8Refs, parsedUtf8Entry{content: content})
			pc.cpIndex[i] = parsedCpEntry{entryType: UTF8, slot: slot}

		case IntConst:
			v := int32(binary.BigEndian.Uint32(b[pos : pos+4]))
			pos += 4
			slot := len(pc.intConsts)
			pc.intConsts = append(pc.intConsts, int(v))
			pc.cpIndex[i] = parsedCpEntry{entryType: IntConst, slot: slot}

		case FloatConst:
			bits := binary.BigEndian.Uint32(b[pos : pos+4])
			pos += 4
			slot := len(pc.floats)
			pc.floats = append(pc.floats, float32FromBits(bits))
			pc.cpIndex[i] = parsedCpEntry{entryType: FloatConst, slot: slot}

		case LongConst:
			v := int64(binary.BigEndian.Uint64(b[pos : pos+8]))
			pos += 8
			slot := len(pc.longConsts)
			pc.longConsts = append(pc.longConsts, v)
			pc.cpIndex[i] = parsedCpEntry{entryType: LongConst, slot: slot}
			i++ // longs/doubles consume two CP slots; the second is a dummy
			if i < count {
				pc.cpIndex[i] = parsedCpEntry{entryType: Dummy}
			}

		case DoubleConst:
			bits := binary.BigEndian.Uint64(b[pos : pos+8])
			pos += 8
			slot := len(pc.doubles)
			pc.doubles = append(pc.doubles, float64FromBits(bits))
			pc.cpIndex[i] = parsedCpEntry{entryType: DoubleConst, slot: slot}
			i++
			if i < count {
				pc.cpIndex[i] = parsedCpEntry{entryType: Dummy}
			}

		case ClassRef:
			nameIdx := int(binary.BigEndian.Uint16(b[pos : pos+2]))
			pos += 2
			slot := len(pc.classRefs)
			pc.classRefs = append(pc.classRefs, nameIdx)
			pc.cpIndex[i] = parsedCpEntry{entryType: ClassRef, slot: slot}

		case StringConst:
			utf8Idx := int(binary.BigEndian.Uint16(b[pos : pos+2]))
			pos += 2
			slot := len(pc.stringRefs)
			pc.stringRefs = append(pc.stringRefs, parsedStringConstEntry{utf8Index: utf8Idx})
			pc.cpIndex[i] = parsedCpEntry{entryType: StringConst, slot: slot}

		case FieldRef:
			classIdx := int(binary.BigEndian.Uint16(b[pos : pos+2]))
			natIdx := int(binary.BigEndian.Uint16(b[pos+2 : pos+4]))
			pos += 4
			slot := len(pc.fieldRefs)
			pc.fieldRefs = append(pc.fieldRefs, parsedFieldRefEntry{classIndex: classIdx, nameAndTypeIndex: natIdx})
			pc.cpIndex[i] = parsedCpEntry{entryType: FieldRef, slot: slot}

		case MethodRef:
			classIdx := int(binary.BigEndian.Uint16(b[pos : pos+2]))
			natIdx := int(binary.BigEndian.Uint16(b[pos+2 : pos+4]))
			pos += 4
			slot := len(pc.methodRefs)
			pc.methodRefs = append(pc.methodRefs, parsedMethodRefEntry{classIndex: classIdx, nameAndTypeIndex: natIdx})
			pc.cpIndex[i] = parsedCpEntry{entryType: MethodRef, slot: slot}

		case Interface:
			classIdx := int(binary.BigEndian.Uint16(b[pos : pos+2]))
			natIdx := int(binary.BigEndian.Uint16(b[pos+2 : pos+4]))
			pos += 4
			slot := len(pc.interfaceRefs)
			pc.interfaceRefs = append(pc.interfaceRefs, parsedInterfaceRefEntry{classIndex: classIdx, nameAndTypeIndex: natIdx})
			pc.cpIndex[i] = parsedCpEntry{entryType: Interface, slot: slot}

		case NameAndType:
			nameIdx := int(binary.BigEndian.Uint16(b[pos : pos+2]))
			descIdx := int(binary.BigEndian.Uint16(b[pos+2 : pos+4]))
			pos += 4
			slot := len(pc.nameAndTypes)
			pc.nameAndTypes = append(pc.nameAndTypes, parsedNameAndTypeEntry{nameIndex: nameIdx, descriptorIndex: descIdx})
			pc.cpIndex[i] = parsedCpEntry{entryType: NameAndType, slot: slot}

		default:
			return pos, cfe(fmt.Sprintf("unsupported constant pool tag %d at entry %d", tag, i))
		}
	}

	return pos, nil
}

func parseAccessFlags(b []byte, pos int, pc *ParsedClass) (int, error) {
	flags := int(binary.BigEndian.Uint16(b[pos : pos+2]))
	pos += 2
	pc.accessFlags = flags
	pc.classIsPublic = flags&0x0001 != 0
	pc.classIsFinal = flags&0x0010 != 0
	pc.classIsSuper = flags&0x0020 != 0
	pc.classIsInterface = flags&0x0200 != 0
	pc.classIsAbstract = flags&0x0400 != 0
	pc.classIsSynthetic = flags&0x1000 != 0
	pc.classIsAnnotation = flags&0x2000 != 0
	pc.classIsEnum = flags&0x4000 != 0
	pc.classIsModule = flags&0x8000 != 0
	return pos, nil
}

func (pc *ParsedClass) classNameAt(classRefCpIndex int) (string, error) {
	if classRefCpIndex == 0 {
		return "", nil // this_class == 0 never happens; super_class == 0 means "no superclass" (java/lang/Object)
	}
	if classRefCpIndex < 1 || classRefCpIndex >= len(pc.cpIndex) {
		return "", cfe("class reference index out of range")
	}
	entry := pc.cpIndex[classRefCpIndex]
	if entry.entryType != ClassRef {
		return "", cfe("expected a ClassRef constant pool entry")
	}
	nameUtf8Idx := pc.classRefs[entry.slot]
	if nameUtf8Idx < 1 || nameUtf8Idx >= len(pc.cpIndex) || pc.cpIndex[nameUtf8Idx].entryType != UTF8 {
		return "", cfe("class name does not resolve to a UTF8 entry")
	}
	return pc.utf8Refs[pc.cpIndex[nameUtf8Idx].slot].content, nil
}

func parseThisAndSuper(b []byte, pos int, pc *ParsedClass) (int, error) {
	thisIdx := int(binary.BigEndian.Uint16(b[pos : pos+2]))
	pos += 2
	superIdx := int(binary.BigEndian.Uint16(b[pos : pos+2]))
	pos += 2

	name, err := pc.classNameAt(thisIdx)
	if err != nil {
		return pos, err
	}
	pc.className = name

	if superIdx == 0 {
		pc.superClass = ""
	} else {
		superName, err := pc.classNameAt(superIdx)
		if err != nil {
			return pos, err
		}
		pc.superClass = superName
	}
	return pos, nil
}

func parseInterfaces(b []byte, pos int, pc *ParsedClass) (int, error) {
	count := int(binary.BigEndian.Uint16(b[pos : pos+2]))
	pos += 2
	pc.interfaceCount = count
	for i := 0; i < count; i++ {
		idx := int(binary.BigEndian.Uint16(b[pos : pos+2]))
		pos += 2
		pc.interfaces = append(pc.interfaces, idx)
	}
	return pos, nil
}

func parseFields(b []byte, pos int, pc *ParsedClass) (int, error) {
	count := int(binary.BigEndian.Uint16(b[pos : pos+2]))
	pos += 2
	pc.fieldCount = count
	for i := 0; i < count; i++ {
		flags := int(binary.BigEndian.Uint16(b[pos : pos+2]))
		pos += 2
		nameIdx := int(binary.BigEndian.Uint16(b[pos : pos+2]))
		pos += 2
		descIdx := int(binary.BigEndian.Uint16(b[pos : pos+2]))
		pos += 2

		f := parsedField{
			accessFlags: flags,
			isStatic:    flags&0x0008 != 0,
			isFinal:     flags&0x0010 != 0,
			name:        nameIdx,
			description: descIdx,
		}

		var attrs []parsedAttr
		var err error
		attrs, pos, err = parseAttributes(b, pos, pc)
		if err != nil {
			return pos, err
		}
		f.attributes = attrs
		pc.fields = append(pc.fields, f)
	}
	return pos, nil
}

func parseMethods(b []byte, pos int, pc *ParsedClass) (int, error) {
	count := int(binary.BigEndian.Uint16(b[pos : pos+2]))
	pos += 2
	pc.methodCount = count
	for i := 0; i < count; i++ {
		flags := int(binary.BigEndian.Uint16(b[pos : pos+2]))
		pos += 2
		nameIdx := int(binary.BigEndian.Uint16(b[pos : pos+2]))
		pos += 2
		descIdx := int(binary.BigEndian.Uint16(b[pos : pos+2]))
		pos += 2

		m := parsedMethod{
			accessFlags: flags,
			name:        nameIdx,
			description: descIdx,
			isNative:    flags&0x0100 != 0,
		}

		var attrs []parsedAttr
		var err error
		attrs, pos, err = parseAttributes(b, pos, pc)
		if err != nil {
			return pos, err
		}
		m.attributes = attrs

		for _, a := range attrs {
			name := pc.utf8Refs[pc.cpIndex[a.attrName].slot].content
			if name == "Code" {
				code, err := parseCodeAttribute(a.attrContent, pc)
				if err != nil {
					return pos, err
				}
				m.codeAttr = code
			}
		}

		pc.methods = append(pc.methods, m)
	}
	return pos, nil
}

// parseCodeAttribute decodes the Code attribute's own sub-structure from
// its already-extracted raw bytes.
func parseCodeAttribute(content []byte, pc *ParsedClass) (parsedCodeAttr, error) {
	var ca parsedCodeAttr
	if len(content) < 8 {
		return ca, cfe("truncated Code attribute")
	}
	pos := 0
	ca.maxStack = int(binary.BigEndian.Uint16(content[pos : pos+2]))
	pos += 2
	ca.maxLocals = int(binary.BigEndian.Uint16(content[pos : pos+2]))
	pos += 2
	codeLen := int(binary.BigEndian.Uint32(content[pos : pos+4]))
	pos += 4
	if pos+codeLen > len(content) {
		return ca, cfe("truncated Code attribute bytecode")
	}
	ca.code = append([]byte(nil), content[pos:pos+codeLen]...)
	pos += codeLen

	excCount := int(binary.BigEndian.Uint16(content[pos : pos+2]))
	pos += 2
	for i := 0; i < excCount; i++ {
		startPc := int(binary.BigEndian.Uint16(content[pos : pos+2]))
		pos += 2
		endPc := int(binary.BigEndian.Uint16(content[pos : pos+2]))
		pos += 2
		handlerPc := int(binary.BigEndian.Uint16(content[pos : pos+2]))
		pos += 2
		catchType := int(binary.BigEndian.Uint16(content[pos : pos+2]))
		pos += 2
		ca.exceptions = append(ca.exceptions, parsedException{
			startPc: startPc, endPc: endPc, handlerPc: handlerPc, catchType: catchType,
		})
	}

	attrs, _, err := parseAttributes(content, pos, pc)
	if err != nil {
		return ca, err
	}
	ca.attributes = attrs
	return ca, nil
}

func parseAttributes(b []byte, pos int, pc *ParsedClass) ([]parsedAttr, int, error) {
	count := int(binary.BigEndian.Uint16(b[pos : pos+2]))
	pos += 2
	var attrs []parsedAttr
	for i := 0; i < count; i++ {
		nameIdx := int(binary.BigEndian.Uint16(b[pos : pos+2]))
		pos += 2
		size := int(binary.BigEndian.Uint32(b[pos : pos+4]))
		pos += 4
		if pos+size > len(b) {
			return attrs, pos, cfe("truncated attribute")
		}
		content := append([]byte(nil), b[pos:pos+size]...)
		pos += size
		attrs = append(attrs, parsedAttr{attrName: nameIdx, attrSize: size, attrContent: content})
	}
	return attrs, pos, nil
}

func parseClassAttributes(b []byte, pos int, pc *ParsedClass) (int, error) {
	attrs, pos, err := parseAttributes(b, pos, pc)
	if err != nil {
		return pos, err
	}
	pc.attributes = attrs
	for _, a := range attrs {
		name := pc.utf8Refs[pc.cpIndex[a.attrName].slot].content
		if name == "SourceFile" && len(a.attrContent) >= 2 {
			idx := int(binary.BigEndian.Uint16(a.attrContent[0:2]))
			if idx >= 1 && idx < len(pc.cpIndex) && pc.cpIndex[idx].entryType == UTF8 {
				pc.sourceFile = pc.utf8Refs[pc.cpIndex[idx].slot].content
			}
		}
	}
	return pos, nil
}
