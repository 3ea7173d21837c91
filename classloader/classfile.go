/*
 * bootjvm - A Java virtual machine core
 * Licensed under Mozilla Public License 2.0 (MPL 2.0)
 */

package classloader

// ParsedClass is the in-memory form a raw .class parse produces, before
// it is converted (convertToPostableClass) into the runtime ClData
// form consumed by the rest of the VM. Keeping the two separate lets the
// parser use plain ints throughout (simpler arithmetic, fewer casts)
// while the runtime form narrows to uint16 to save memory across
// thousands of loaded classes.
type ParsedClass struct {
	javaVersion int
	className   string
	superClass  string
	moduleName  string
	packageName string

	interfaceCount int
	interfaces     []int // indices into the CP, each a ClassRef entry

	fieldCount int
	fields     []parsedField

	methodCount int
	methods     []parsedMethod

	attribCount int
	attributes  []parsedAttr

	sourceFile string
	deprecated bool

	cpCount int
	cpIndex []parsedCpEntry

	classRefs    []int // each points to a UTF8 entry number
	doubles      []float64
	fieldRefs    []parsedFieldRefEntry
	floats       []float32
	intConsts    []int
	interfaceRefs []parsedInterfaceRefEntry
	longConsts   []int64
	methodRefs   []parsedMethodRefEntry
	nameAndTypes []parsedNameAndTypeEntry
	stringRefs   []parsedStringConstEntry // each holds the CP index of its backing UTF8
	utf8Refs     []parsedUtf8Entry

	accessFlags       int
	classIsPublic     bool
	classIsFinal      bool
	classIsSuper      bool
	classIsInterface  bool
	classIsAbstract   bool
	classIsSynthetic  bool
	classIsAnnotation bool
	classIsEnum       bool
	classIsModule     bool
}

type parsedCpEntry struct {
	entryType int
	slot      int // index into the per-type slice identified by entryType
}

type parsedField struct {
	accessFlags int
	isStatic    bool
	isFinal     bool
	name        int // CP index of a UTF8 entry
	description int // CP index of a UTF8 entry
	attributes  []parsedAttr
}

type parsedMethod struct {
	accessFlags  int
	name         int
	description  int
	codeAttr     parsedCodeAttr
	attributes   []parsedAttr
	exceptions   []int
	isNative     bool
	deprecated   bool
}

type parsedCodeAttr struct {
	maxStack   int
	maxLocals  int
	code       []byte
	exceptions []parsedException
	attributes []parsedAttr
}

type parsedException struct {
	startPc   int
	endPc     int
	handlerPc int
	catchType int // CP index, must point to a ClassRef entry (0 means "any")
}

type parsedAttr struct {
	attrName    int
	attrSize    int
	attrContent []byte
}

type parsedFieldRefEntry struct{ classIndex, nameAndTypeIndex int }
type parsedMethodRefEntry struct{ classIndex, nameAndTypeIndex int }
type parsedInterfaceRefEntry struct{ classIndex, nameAndTypeIndex int }
type parsedNameAndTypeEntry struct{ nameIndex, descriptorIndex int }
type parsedStringConstEntry struct{ utf8Index int }
type parsedUtf8Entry struct{ content string }
