/*
 * bootjvm - A Java virtual machine core
 * Licensed under Mozilla Public License 2.0 (MPL 2.0)
 */

// Package frames implements the JVM stack frame and the per-thread
// frame stack the interpreter pushes and pops as it calls and returns
// from methods. Grounded on artipop-jacobin's frames.CreateFrame /
// frames.PushFrame / frames.PopFrame / frames.CreateFrameStack call
// sites (jvm/initializerBlock.go, jvm/errors_test.go).
package frames

import (
	"container/list"

	"bootjvm/heap"
)

// Frame is one JVM stack frame: a saved PC, a local-variable array, and
// an operand stack, plus enough bookkeeping to return control to the
// caller.
type Frame struct {
	MethName   string
	MethType   string
	ClName     string
	CP         interface{} // *classloader.CPool; kept as interface{} here to avoid a frames->classloader import cycle
	Locals     []interface{}
	OpStack    []interface{}
	TOS        int // top of operand stack, -1 when empty
	PC         int
	Ftype      byte // 'J' bytecode-backed, 'G' Go-native
	MaxStack   int
	Thread     int // thread index that owns this frame

	// Overflowed is set by Push when a frame's operand stack would grow
	// past MaxStack, the C8 interpreter's StackOverflowError trigger.
	Overflowed bool

	// StackBlock is the heap.StackArea accounting allocation backing this
	// frame's locals+operand-stack storage, acquired and released by
	// whichever jvm package call invoked the method that owns this frame.
	StackBlock heap.Block
}

// CreateFrame allocates a new Frame with maxLocals local slots and an
// operand stack sized to maxStack, both zero-valued.
func CreateFrame(maxStack, maxLocals int) *Frame {
	return &Frame{
		Locals:  make([]interface{}, maxLocals),
		OpStack: make([]interface{}, maxStack),
		TOS:     -1,
		MaxStack: maxStack,
	}
}

// Push pushes v onto the frame's operand stack. Pushing past MaxStack
// does not grow the stack: it sets Overflowed and leaves TOS at its
// prior value, so the interpreter can raise StackOverflowError instead
// of silently running with an unbounded operand stack.
func (f *Frame) Push(v interface{}) {
	f.TOS++
	if f.TOS >= len(f.OpStack) {
		f.TOS--
		f.Overflowed = true
		return
	}
	f.OpStack[f.TOS] = v
}

// Pop removes and returns the top of the operand stack.
func (f *Frame) Pop() interface{} {
	if f.TOS < 0 {
		return nil
	}
	v := f.OpStack[f.TOS]
	f.TOS--
	return v
}

// Peek returns the top of the operand stack without removing it.
func (f *Frame) Peek() interface{} {
	if f.TOS < 0 {
		return nil
	}
	return f.OpStack[f.TOS]
}

// FrameStack is a thread's call stack, newest frame first — a
// container/list.List exactly as artipop-jacobin's own frame stack is,
// since frames are pushed/popped from one end only and a slice would
// need to shift on every operation at the wrong end.
type FrameStack struct {
	*list.List
}

// CreateFrameStack returns a new, empty frame stack.
func CreateFrameStack() *FrameStack {
	return &FrameStack{list.New()}
}

// PushFrame pushes f onto the front of fs (the newest/current frame).
func PushFrame(fs *FrameStack, f *Frame) {
	fs.PushFront(f)
}

// PopFrame removes and returns the current frame, or nil if fs is empty.
func PopFrame(fs *FrameStack) *Frame {
	e := fs.Front()
	if e == nil {
		return nil
	}
	fs.Remove(e)
	return e.Value.(*Frame)
}

// PeekFrame returns the current frame without removing it, or nil if
// fs is empty.
func PeekFrame(fs *FrameStack) *Frame {
	e := fs.Front()
	if e == nil {
		return nil
	}
	return e.Value.(*Frame)
}
