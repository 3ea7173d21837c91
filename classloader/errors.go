/*
 * bootjvm - A Java virtual machine core
 * Licensed under Mozilla Public License 2.0 (MPL 2.0)
 */

package classloader

import (
	"fmt"
	"math"

	"bootjvm/excNames"
)

// cfe builds a classFormatError, the package's uniform way of reporting
// a malformed or unsupported class file. Grounded on artipop-jacobin's own
// cfe()/CFE() helper pair in classloader.go.
func cfe(msg string) error {
	return &classFormatError{msg: msg}
}

type classFormatError struct {
	msg string
}

func (e *classFormatError) Error() string {
	return fmt.Sprintf("%s: %s", excNames.ClassFormatError, e.msg)
}

func float32FromBits(bits uint32) float32 {
	return math.Float32frombits(bits)
}

func float64FromBits(bits uint64) float64 {
	return math.Float64frombits(bits)
}
