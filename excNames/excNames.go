/*
 * bootjvm - A Java virtual machine core
 * Licensed under Mozilla Public License 2.0 (MPL 2.0)
 */

// Package excNames names every throwable class the core can raise and
// classifies each by recoverability, per spec.md §7.
package excNames

// Exception subclasses: catchable, program-recoverable.
const (
	ArithmeticException              = "java/lang/ArithmeticException"
	NullPointerException             = "java/lang/NullPointerException"
	ArrayIndexOutOfBoundsException   = "java/lang/ArrayIndexOutOfBoundsException"
	IndexOutOfBoundsException        = "java/lang/IndexOutOfBoundsException"
	ArrayStoreException              = "java/lang/ArrayStoreException"
	ClassCastException               = "java/lang/ClassCastException"
	IllegalMonitorStateException     = "java/lang/IllegalMonitorStateException"
	IllegalThreadStateException      = "java/lang/IllegalThreadStateException"
	InterruptedException             = "java/lang/InterruptedException"
	NegativeArraySizeException       = "java/lang/NegativeArraySizeException"
	IllegalArgumentException         = "java/lang/IllegalArgumentException"
	IllegalAccessException           = "java/lang/IllegalAccessException"
	IllegalStateException            = "java/lang/IllegalStateException"
	CloneNotSupportedException       = "java/lang/CloneNotSupportedException"
	NumberFormatException            = "java/lang/NumberFormatException"
	ClassNotFoundException           = "java/lang/ClassNotFoundException"
	UnsupportedOperationException    = "java/lang/UnsupportedOperationException"
	IOException                      = "java/io/IOException"
)

// LinkageError subclasses: program faults, never caught productively.
const (
	ClassFormatError              = "java/lang/ClassFormatError"
	ClassCircularityError         = "java/lang/ClassCircularityError"
	UnsupportedClassVersionError  = "java/lang/UnsupportedClassVersionError"
	NoClassDefFoundError          = "java/lang/NoClassDefFoundError"
	NoSuchFieldError              = "java/lang/NoSuchFieldError"
	NoSuchMethodError             = "java/lang/NoSuchMethodError"
	IncompatibleClassChangeError  = "java/lang/IncompatibleClassChangeError"
	IllegalAccessError            = "java/lang/IllegalAccessError"
	VerifyError                   = "java/lang/VerifyError"
	AbstractMethodError           = "java/lang/AbstractMethodError"
	UnsatisfiedLinkError          = "java/lang/UnsatisfiedLinkError"
	ExceptionInInitializerError   = "java/lang/ExceptionInInitializerError"
	InstantiationError            = "java/lang/InstantiationError"
	LinkageError                  = "java/lang/LinkageError"
)

// VirtualMachineError subclasses: resource faults.
const (
	InternalError      = "java/lang/InternalError"
	OutOfMemoryError   = "java/lang/OutOfMemoryError"
	StackOverflowError = "java/lang/StackOverflowError"
	UnknownError       = "java/lang/UnknownError"
)

// Kind classifies a throwable's recoverability.
type Kind int

const (
	KindException Kind = iota
	KindLinkageError
	KindVirtualMachineError
	KindUncaught
)

// kindOf maps every name declared above to its Kind. Names absent from
// this table (e.g. an application-defined exception) default to
// KindException when queried via ClassifyThrowable.
var kindOf = map[string]Kind{
	ArithmeticException:            KindException,
	NullPointerException:           KindException,
	ArrayIndexOutOfBoundsException: KindException,
	IndexOutOfBoundsException:      KindException,
	ArrayStoreException:            KindException,
	ClassCastException:             KindException,
	IllegalMonitorStateException:   KindException,
	IllegalThreadStateException:    KindException,
	InterruptedException:           KindException,
	NegativeArraySizeException:     KindException,
	IllegalArgumentException:       KindException,
	IllegalAccessException:         KindException,
	IllegalStateException:          KindException,
	CloneNotSupportedException:     KindException,
	NumberFormatException:          KindException,
	ClassNotFoundException:         KindException,
	UnsupportedOperationException:  KindException,
	IOException:                    KindException,

	ClassFormatError:             KindLinkageError,
	ClassCircularityError:        KindLinkageError,
	UnsupportedClassVersionError: KindLinkageError,
	NoClassDefFoundError:         KindLinkageError,
	NoSuchFieldError:             KindLinkageError,
	NoSuchMethodError:            KindLinkageError,
	IncompatibleClassChangeError: KindLinkageError,
	IllegalAccessError:           KindLinkageError,
	VerifyError:                  KindLinkageError,
	AbstractMethodError:          KindLinkageError,
	UnsatisfiedLinkError:         KindLinkageError,
	ExceptionInInitializerError:  KindLinkageError,
	InstantiationError:           KindLinkageError,
	LinkageError:                 KindLinkageError,

	InternalError:      KindVirtualMachineError,
	OutOfMemoryError:   KindVirtualMachineError,
	StackOverflowError: KindVirtualMachineError,
	UnknownError:       KindVirtualMachineError,
}

// ClassifyThrowable reports the recoverability kind of a throwable class
// name. Unknown names (application exceptions) classify as KindException,
// since every user-defined throwable ultimately derives from either
// Exception or Error and, absent a loaded hierarchy, Exception is the
// safer default for catch-site matching.
func ClassifyThrowable(name string) Kind {
	if k, ok := kindOf[name]; ok {
		return k
	}
	return KindException
}

// IsRecoverable reports whether a throwable of the given kind can be
// caught and handled by the running program.
func IsRecoverable(k Kind) bool {
	return k == KindException
}
