/*
 * bootjvm - A Java virtual machine core
 * Licensed under Mozilla Public License 2.0 (MPL 2.0)
 */

package jvm

import (
	"encoding/binary"
	"fmt"

	"bootjvm/classloader"
	"bootjvm/excNames"
	"bootjvm/frames"
	"bootjvm/gfunction"
	"bootjvm/heap"
	"bootjvm/opcodes"
	"bootjvm/util"
)

// maxCallDepth bounds the thread's frame stack: spec.md §8's
// StackOverflowError boundary behavior is a call-depth limit, not an
// operand-stack-within-one-frame limit (Frame.Push's Overflowed flag
// covers that narrower case instead).
const maxCallDepth = 1024

// arraycopyKey is java/lang/System.arraycopy's MethodSignatures key,
// mirrored from gfunction.loadLangSystem's registration. The interpreter
// intercepts this exact key before generic native dispatch because the
// copy needs j.Objects, which a GFunction's plain []interface{} args
// slice does not carry.
const arraycopyKey = "java/lang/System.arraycopy(Ljava/lang/Object;ILjava/lang/Object;II)V"

// frameBackingSize estimates the bytes a frame's locals+operand stack
// occupy, for the heap.StackArea accounting invokeMethod/invokeMethodForValue
// acquire and release around every call. The real storage lives in the
// Go slices frames.CreateFrame allocates; as with object.Table's
// DataArea wiring, this Acquire/Release pair is the allocator-visible
// accounting, not the backing memory itself.
func frameBackingSize(c classloader.CodeAttrib) int {
	return (c.MaxStack + c.MaxLocals) * 8
}

// invokeMethod runs one method to completion: a native method is
// dispatched through gfunction.MethodSignatures, a bytecode method gets
// a fresh frame pushed and run by runFrame. This collapses the bytecode-vs-native
// branch artipop-jacobin's FetchMethodAndCP MTentry.MType tag drives, at
// the one call site that needs it.
func (j *JVM) invokeMethod(classIdx int, m *classloader.Method, threadIdx int, args []interface{}) error {
	k := classloader.MethAreaFetchByIndex(classIdx)
	if k == nil {
		return fmt.Errorf("invokeMethod: unknown class index %d", classIdx)
	}

	if m.IsNative {
		key := k.Data.Name + "." + m.Name + m.Description
		if key == arraycopyKey {
			return j.systemArraycopy(args)
		}
		gm, ok := gfunction.MethodSignatures[key]
		if !ok {
			return fmt.Errorf("UnsatisfiedLinkError: %s", key)
		}
		if errBlk, ok := gm.GFunction(args).(*gfunction.GErrBlk); ok {
			return fmt.Errorf("%s: %s", errBlk.ExceptionType, errBlk.ErrMsg)
		}
		return nil
	}

	th := j.Threads.Get(threadIdx)
	if th == nil {
		return fmt.Errorf("invokeMethod: unknown thread index %d", threadIdx)
	}
	if th.Stack.Len() >= maxCallDepth {
		return fmt.Errorf(excNames.StackOverflowError)
	}

	f := frames.CreateFrame(m.CodeAttrib.MaxStack, m.CodeAttrib.MaxLocals)
	f.MethName = m.Name
	f.MethType = m.Description
	f.ClName = k.Data.Name
	f.Ftype = 'J'
	f.Thread = threadIdx
	for i, a := range args {
		if i < len(f.Locals) {
			f.Locals[i] = a
		}
	}

	block, ok := j.Heap.Acquire(heap.StackArea, frameBackingSize(m.CodeAttrib), true)
	if !ok {
		return fmt.Errorf(excNames.OutOfMemoryError)
	}
	f.StackBlock = block

	frames.PushFrame(th.Stack, f)
	defer frames.PopFrame(th.Stack)
	defer j.Heap.Release(heap.StackArea, block)

	_, err := j.runFrame(f, m.CodeAttrib.Code, classIdx, threadIdx, m.CodeAttrib.Exceptions)
	return err
}

// invokeMethodForValue is invokeMethod's counterpart for call sites that
// need the callee's return value (invokeFromCP, for a bytecode-to-bytecode
// call where the caller's operand stack expects a pushed result).
func (j *JVM) invokeMethodForValue(classIdx int, m *classloader.Method, threadIdx int, args []interface{}) (interface{}, error) {
	k := classloader.MethAreaFetchByIndex(classIdx)
	if k == nil {
		return nil, fmt.Errorf("invokeMethod: unknown class index %d", classIdx)
	}

	th := j.Threads.Get(threadIdx)
	if th == nil {
		return nil, fmt.Errorf("invokeMethod: unknown thread index %d", threadIdx)
	}
	if th.Stack.Len() >= maxCallDepth {
		return nil, fmt.Errorf(excNames.StackOverflowError)
	}

	f := frames.CreateFrame(m.CodeAttrib.MaxStack, m.CodeAttrib.MaxLocals)
	f.MethName = m.Name
	f.MethType = m.Description
	f.ClName = k.Data.Name
	f.Ftype = 'J'
	f.Thread = threadIdx
	for i, a := range args {
		if i < len(f.Locals) {
			f.Locals[i] = a
		}
	}

	block, ok := j.Heap.Acquire(heap.StackArea, frameBackingSize(m.CodeAttrib), true)
	if !ok {
		return nil, fmt.Errorf(excNames.OutOfMemoryError)
	}
	f.StackBlock = block

	frames.PushFrame(th.Stack, f)
	defer frames.PopFrame(th.Stack)
	defer j.Heap.Release(heap.StackArea, block)

	return j.runFrame(f, m.CodeAttrib.Code, classIdx, threadIdx, m.CodeAttrib.Exceptions)
}

// step is one opcode handler's outcome: either the frame keeps running
// (Done false) or it completes, carrying the value (if any) the caller's
// operand stack should receive.
type step struct {
	ret  interface{}
	done bool
}

// opHandler executes one decoded opcode against the running frame. op is
// passed through so one handler can serve an entire opcode family (the
// iconst_<n> range, the if_icmp<cond> range, ...) without the dispatch
// table growing an entry per byte value.
type opHandler func(j *JVM, f *frames.Frame, code []byte, classIdx, threadIdx int, op byte) (step, error)

// dispatchTable maps every opcode this core implements to its handler.
// Built once at package init from the handler group table below rather
// than as a 256-entry literal, so a family of related opcodes (iload_0..3,
// if_icmp<cond>, ...) is declared once next to its handler.
var dispatchTable map[byte]opHandler

func init() { dispatchTable = buildDispatchTable() }

func buildDispatchTable() map[byte]opHandler {
	t := make(map[byte]opHandler, 96)
	reg := func(h opHandler, ops ...byte) {
		for _, op := range ops {
			t[op] = h
		}
	}

	reg(opNop, opcodes.Nop)
	reg(opAconstNull, opcodes.AconstNull)
	reg(opIconst, opcodes.IconstM1, opcodes.Iconst0, opcodes.Iconst1, opcodes.Iconst2,
		opcodes.Iconst3, opcodes.Iconst4, opcodes.Iconst5)
	reg(opPushConst(int64(0)), opcodes.Lconst0)
	reg(opPushConst(int64(1)), opcodes.Lconst1)
	reg(opPushConst(float64(0)), opcodes.Fconst0)
	reg(opPushConst(float64(1)), opcodes.Fconst1)
	reg(opPushConst(float64(2)), opcodes.Fconst2)
	reg(opPushConst(float64(0)), opcodes.Dconst0)
	reg(opPushConst(float64(1)), opcodes.Dconst1)

	reg(opBipush, opcodes.Bipush)
	reg(opSipush, opcodes.Sipush)
	reg(opLdc, opcodes.Ldc)
	reg(opLdcWide, opcodes.LdcW, opcodes.Ldc2W)

	reg(opLoad, opcodes.Iload, opcodes.Lload, opcodes.Fload, opcodes.Dload, opcodes.Aload)
	reg(opLoadSlot(0), opcodes.Iload0, opcodes.Lload0, opcodes.Fload0, opcodes.Dload0, opcodes.Aload0)
	reg(opLoadSlot(1), opcodes.Iload1, opcodes.Lload1, opcodes.Fload1, opcodes.Dload1, opcodes.Aload1)
	reg(opLoadSlot(2), opcodes.Iload2, opcodes.Lload2, opcodes.Fload2, opcodes.Dload2, opcodes.Aload2)
	reg(opLoadSlot(3), opcodes.Iload3, opcodes.Lload3, opcodes.Fload3, opcodes.Dload3, opcodes.Aload3)

	reg(opStore, opcodes.Istore, opcodes.Lstore, opcodes.Fstore, opcodes.Dstore, opcodes.Astore)
	reg(opStoreSlot(0), opcodes.Istore0, opcodes.Lstore0, opcodes.Fstore0, opcodes.Dstore0, opcodes.Astore0)
	reg(opStoreSlot(1), opcodes.Istore1, opcodes.Lstore1, opcodes.Fstore1, opcodes.Dstore1, opcodes.Astore1)
	reg(opStoreSlot(2), opcodes.Istore2, opcodes.Lstore2, opcodes.Fstore2, opcodes.Dstore2, opcodes.Astore2)
	reg(opStoreSlot(3), opcodes.Istore3, opcodes.Lstore3, opcodes.Fstore3, opcodes.Dstore3, opcodes.Astore3)

	reg(opPop, opcodes.Pop)
	reg(opPop2, opcodes.Pop2)
	reg(opDup, opcodes.Dup)
	reg(opSwap, opcodes.Swap)

	reg(opIntBinary(func(a, b int64) int64 { return a + b }), opcodes.Iadd, opcodes.Ladd)
	reg(opIntBinary(func(a, b int64) int64 { return a - b }), opcodes.Isub, opcodes.Lsub)
	reg(opIntBinary(func(a, b int64) int64 { return a * b }), opcodes.Imul, opcodes.Lmul)
	reg(opIntDiv, opcodes.Idiv, opcodes.Ldiv)
	reg(opIntRem, opcodes.Irem, opcodes.Lrem)
	reg(opIntNeg, opcodes.Ineg, opcodes.Lneg)

	reg(opFloatBinary(func(a, b float64) float64 { return a + b }), opcodes.Fadd, opcodes.Dadd)
	reg(opFloatBinary(func(a, b float64) float64 { return a - b }), opcodes.Fsub, opcodes.Dsub)
	reg(opFloatBinary(func(a, b float64) float64 { return a * b }), opcodes.Fmul, opcodes.Dmul)
	reg(opFloatBinary(func(a, b float64) float64 { return a / b }), opcodes.Fdiv, opcodes.Ddiv)

	reg(opIinc, opcodes.Iinc)

	reg(opIfCond, opcodes.Ifeq, opcodes.Ifne, opcodes.Iflt, opcodes.Ifge, opcodes.Ifgt, opcodes.Ifle)
	reg(opIfIcmp, opcodes.IfIcmpeq, opcodes.IfIcmpne, opcodes.IfIcmplt, opcodes.IfIcmpge,
		opcodes.IfIcmpgt, opcodes.IfIcmple)
	reg(opGoto, opcodes.Goto)

	reg(opGetstatic, opcodes.Getstatic)
	reg(opPutstatic, opcodes.Putstatic)
	reg(opGetfield, opcodes.Getfield)
	reg(opPutfield, opcodes.Putfield)

	reg(opNew, opcodes.New)
	reg(opNewarray, opcodes.Newarray)
	reg(opAnewarray, opcodes.Anewarray)
	reg(opMultianewarray, opcodes.Multianewarray)
	reg(opArraylength, opcodes.Arraylength)
	reg(opArrayLoad, opcodes.Iaload, opcodes.Laload, opcodes.Faload, opcodes.Daload, opcodes.Aaload,
		opcodes.Baload, opcodes.Caload, opcodes.Saload)
	reg(opArrayStore, opcodes.Iastore, opcodes.Lastore, opcodes.Fastore, opcodes.Dastore, opcodes.Aastore,
		opcodes.Bastore, opcodes.Castore, opcodes.Sastore)

	reg(opCheckcast, opcodes.Checkcast)
	reg(opInstanceof, opcodes.Instanceof)

	reg(opInvoke, opcodes.Invokestatic, opcodes.Invokespecial, opcodes.Invokevirtual, opcodes.Invokeinterface)

	reg(opMonitorenter, opcodes.Monitorenter)
	reg(opMonitorexit, opcodes.Monitorexit)
	reg(opAthrow, opcodes.Athrow)

	reg(opReturnValue, opcodes.Ireturn, opcodes.Lreturn, opcodes.Freturn, opcodes.Dreturn, opcodes.Areturn)
	reg(opReturnVoid, opcodes.Return)

	return t
}

// runFrame is the C8 interpreter loop: fetch one opcode byte, advance PC,
// dispatch through the opcode-handler table, repeat until a return
// opcode completes the frame or an uncaught throwable escapes it.
// Suspension points (spec.md §4.7) occur only between opcodes; this
// minimal scheduler runs a frame to completion rather than time-slicing,
// since cooperative preemption mid-method is not needed for the programs
// this bootstrap VM targets.
func (j *JVM) runFrame(f *frames.Frame, code []byte, classIdx, threadIdx int, excTable []classloader.CodeException) (interface{}, error) {
	for f.PC < len(code) {
		opStart := f.PC
		op := code[f.PC]
		f.PC++

		h, ok := dispatchTable[op]
		if !ok {
			return nil, fmt.Errorf("UnsupportedOperationException: opcode %s (0x%02x) not implemented", opcodes.Mnemonic(op), op)
		}
		res, err := h(j, f, code, classIdx, threadIdx, op)
		if err == nil && f.Overflowed {
			err = fmt.Errorf(excNames.StackOverflowError)
		}
		if err != nil {
			name, hash := throwableInfo(err)
			if handlerPC, matched := matchHandler(excTable, opStart, name); matched {
				if hash == 0 {
					var instErr error
					hash, instErr = j.InstantiateClass(name, threadIdx, true)
					if instErr != nil {
						return nil, err
					}
				}
				f.TOS = -1
				f.Overflowed = false
				f.Push(int64(hash))
				f.PC = handlerPC
				clearPendingThrowable(j.Threads.Get(threadIdx))
				continue
			}
			return nil, err
		}
		if res.done {
			return res.ret, nil
		}
	}
	return nil, nil
}

func opNop(j *JVM, f *frames.Frame, code []byte, classIdx, threadIdx int, op byte) (step, error) {
	return step{}, nil
}

func opAconstNull(j *JVM, f *frames.Frame, code []byte, classIdx, threadIdx int, op byte) (step, error) {
	f.Push(int64(0)) // object hash 0 is the reserved null object
	return step{}, nil
}

func opIconst(j *JVM, f *frames.Frame, code []byte, classIdx, threadIdx int, op byte) (step, error) {
	f.Push(int64(int(op) - int(opcodes.Iconst0)))
	return step{}, nil
}

// opPushConst returns a handler that always pushes the same constant,
// for the opcodes (lconst_<n>, fconst_<n>, dconst_<n>) whose value needs
// no decoding from the instruction stream.
func opPushConst(v interface{}) opHandler {
	return func(j *JVM, f *frames.Frame, code []byte, classIdx, threadIdx int, op byte) (step, error) {
		f.Push(v)
		return step{}, nil
	}
}

func opBipush(j *JVM, f *frames.Frame, code []byte, classIdx, threadIdx int, op byte) (step, error) {
	v := int8(code[f.PC])
	f.PC++
	f.Push(int64(v))
	return step{}, nil
}

func opSipush(j *JVM, f *frames.Frame, code []byte, classIdx, threadIdx int, op byte) (step, error) {
	v := int16(binary.BigEndian.Uint16(code[f.PC : f.PC+2]))
	f.PC += 2
	f.Push(int64(v))
	return step{}, nil
}

func opLdc(j *JVM, f *frames.Frame, code []byte, classIdx, threadIdx int, op byte) (step, error) {
	idx := code[f.PC]
	f.PC++
	v, err := j.loadConstant(classIdx, uint16(idx))
	if err != nil {
		return step{}, err
	}
	f.Push(v)
	return step{}, nil
}

func opLdcWide(j *JVM, f *frames.Frame, code []byte, classIdx, threadIdx int, op byte) (step, error) {
	idx := binary.BigEndian.Uint16(code[f.PC : f.PC+2])
	f.PC += 2
	v, err := j.loadConstant(classIdx, idx)
	if err != nil {
		return step{}, err
	}
	f.Push(v)
	return step{}, nil
}

func opLoad(j *JVM, f *frames.Frame, code []byte, classIdx, threadIdx int, op byte) (step, error) {
	idx := code[f.PC]
	f.PC++
	f.Push(f.Locals[idx])
	return step{}, nil
}

// opLoadSlot returns a handler for the fixed-slot <type>load_<n> family.
func opLoadSlot(slot int) opHandler {
	return func(j *JVM, f *frames.Frame, code []byte, classIdx, threadIdx int, op byte) (step, error) {
		f.Push(f.Locals[slot])
		return step{}, nil
	}
}

func opStore(j *JVM, f *frames.Frame, code []byte, classIdx, threadIdx int, op byte) (step, error) {
	idx := code[f.PC]
	f.PC++
	f.Locals[idx] = f.Pop()
	return step{}, nil
}

// opStoreSlot returns a handler for the fixed-slot <type>store_<n> family.
func opStoreSlot(slot int) opHandler {
	return func(j *JVM, f *frames.Frame, code []byte, classIdx, threadIdx int, op byte) (step, error) {
		f.Locals[slot] = f.Pop()
		return step{}, nil
	}
}

func opPop(j *JVM, f *frames.Frame, code []byte, classIdx, threadIdx int, op byte) (step, error) {
	f.Pop()
	return step{}, nil
}

func opPop2(j *JVM, f *frames.Frame, code []byte, classIdx, threadIdx int, op byte) (step, error) {
	f.Pop()
	f.Pop()
	return step{}, nil
}

func opDup(j *JVM, f *frames.Frame, code []byte, classIdx, threadIdx int, op byte) (step, error) {
	f.Push(f.Peek())
	return step{}, nil
}

func opSwap(j *JVM, f *frames.Frame, code []byte, classIdx, threadIdx int, op byte) (step, error) {
	a := f.Pop()
	b := f.Pop()
	f.Push(a)
	f.Push(b)
	return step{}, nil
}

// opIntBinary returns a handler for a two-operand int64 arithmetic op
// that cannot fail (add/sub/mul — div and rem need a zero-divisor check
// and get their own handlers).
func opIntBinary(apply func(a, b int64) int64) opHandler {
	return func(j *JVM, f *frames.Frame, code []byte, classIdx, threadIdx int, op byte) (step, error) {
		b, a := f.Pop().(int64), f.Pop().(int64)
		f.Push(apply(a, b))
		return step{}, nil
	}
}

func opIntDiv(j *JVM, f *frames.Frame, code []byte, classIdx, threadIdx int, op byte) (step, error) {
	b, a := f.Pop().(int64), f.Pop().(int64)
	if b == 0 {
		return step{}, fmt.Errorf("%s: / by zero", excNames.ArithmeticException)
	}
	f.Push(a / b)
	return step{}, nil
}

func opIntRem(j *JVM, f *frames.Frame, code []byte, classIdx, threadIdx int, op byte) (step, error) {
	b, a := f.Pop().(int64), f.Pop().(int64)
	if b == 0 {
		return step{}, fmt.Errorf("%s: / by zero", excNames.ArithmeticException)
	}
	f.Push(a % b)
	return step{}, nil
}

func opIntNeg(j *JVM, f *frames.Frame, code []byte, classIdx, threadIdx int, op byte) (step, error) {
	f.Push(-f.Pop().(int64))
	return step{}, nil
}

// opFloatBinary returns a handler for a two-operand float64 arithmetic
// op shared by the single- and double-precision opcodes, which this
// core represents identically.
func opFloatBinary(apply func(a, b float64) float64) opHandler {
	return func(j *JVM, f *frames.Frame, code []byte, classIdx, threadIdx int, op byte) (step, error) {
		b, a := f.Pop().(float64), f.Pop().(float64)
		f.Push(apply(a, b))
		return step{}, nil
	}
}

func opIinc(j *JVM, f *frames.Frame, code []byte, classIdx, threadIdx int, op byte) (step, error) {
	idx := code[f.PC]
	f.PC++
	delta := int8(code[f.PC])
	f.PC++
	f.Locals[idx] = f.Locals[idx].(int64) + int64(delta)
	return step{}, nil
}

func opIfCond(j *JVM, f *frames.Frame, code []byte, classIdx, threadIdx int, op byte) (step, error) {
	v := f.Pop().(int64)
	target := int16(binary.BigEndian.Uint16(code[f.PC : f.PC+2]))
	taken := false
	switch op {
	case opcodes.Ifeq:
		taken = v == 0
	case opcodes.Ifne:
		taken = v != 0
	case opcodes.Iflt:
		taken = v < 0
	case opcodes.Ifge:
		taken = v >= 0
	case opcodes.Ifgt:
		taken = v > 0
	case opcodes.Ifle:
		taken = v <= 0
	}
	if taken {
		pc, err := verifyBranchTarget(f.PC-1+int(target), code)
		if err != nil {
			return step{}, err
		}
		f.PC = pc
	} else {
		f.PC += 2
	}
	return step{}, nil
}

func opIfIcmp(j *JVM, f *frames.Frame, code []byte, classIdx, threadIdx int, op byte) (step, error) {
	b, a := f.Pop().(int64), f.Pop().(int64)
	target := int16(binary.BigEndian.Uint16(code[f.PC : f.PC+2]))
	taken := false
	switch op {
	case opcodes.IfIcmpeq:
		taken = a == b
	case opcodes.IfIcmpne:
		taken = a != b
	case opcodes.IfIcmplt:
		taken = a < b
	case opcodes.IfIcmpge:
		taken = a >= b
	case opcodes.IfIcmpgt:
		taken = a > b
	case opcodes.IfIcmple:
		taken = a <= b
	}
	if taken {
		pc, err := verifyBranchTarget(f.PC-1+int(target), code)
		if err != nil {
			return step{}, err
		}
		f.PC = pc
	} else {
		f.PC += 2
	}
	return step{}, nil
}

func opGoto(j *JVM, f *frames.Frame, code []byte, classIdx, threadIdx int, op byte) (step, error) {
	target := int16(binary.BigEndian.Uint16(code[f.PC : f.PC+2]))
	pc, err := verifyBranchTarget(f.PC-1+int(target), code)
	if err != nil {
		return step{}, err
	}
	f.PC = pc
	return step{}, nil
}

// verifyBranchTarget bounds-checks a computed branch target against
// code's extent, per spec.md §8's VerifyError boundary behavior: a
// classfile whose branch target escapes its own method body is
// malformed, not merely a runtime fault.
func verifyBranchTarget(pc int, code []byte) (int, error) {
	if pc < 0 || pc >= len(code) {
		return 0, fmt.Errorf(excNames.VerifyError)
	}
	return pc, nil
}

func opGetstatic(j *JVM, f *frames.Frame, code []byte, classIdx, threadIdx int, op byte) (step, error) {
	idx := binary.BigEndian.Uint16(code[f.PC : f.PC+2])
	f.PC += 2
	v, err := j.getStatic(classIdx, idx)
	if err != nil {
		return step{}, err
	}
	f.Push(v)
	return step{}, nil
}

func opPutstatic(j *JVM, f *frames.Frame, code []byte, classIdx, threadIdx int, op byte) (step, error) {
	idx := binary.BigEndian.Uint16(code[f.PC : f.PC+2])
	f.PC += 2
	if err := j.putStatic(classIdx, idx, f.Pop()); err != nil {
		return step{}, err
	}
	return step{}, nil
}

func opGetfield(j *JVM, f *frames.Frame, code []byte, classIdx, threadIdx int, op byte) (step, error) {
	idx := binary.BigEndian.Uint16(code[f.PC : f.PC+2])
	f.PC += 2
	objHash := int(f.Pop().(int64))
	v, err := j.getField(classIdx, idx, objHash)
	if err != nil {
		return step{}, err
	}
	f.Push(v)
	return step{}, nil
}

func opPutfield(j *JVM, f *frames.Frame, code []byte, classIdx, threadIdx int, op byte) (step, error) {
	idx := binary.BigEndian.Uint16(code[f.PC : f.PC+2])
	f.PC += 2
	val := f.Pop()
	objHash := int(f.Pop().(int64))
	if err := j.putField(classIdx, idx, objHash, val); err != nil {
		return step{}, err
	}
	return step{}, nil
}

func opNew(j *JVM, f *frames.Frame, code []byte, classIdx, threadIdx int, op byte) (step, error) {
	idx := binary.BigEndian.Uint16(code[f.PC : f.PC+2])
	f.PC += 2
	name, err := classloader.GetClassNameFromCPclassref(classLoaderCP(classIdx), idx)
	if err != nil {
		return step{}, err
	}
	hash, err := j.InstantiateClass(name, threadIdx, false)
	if err != nil {
		return step{}, err
	}
	f.Push(int64(hash))
	return step{}, nil
}

func opNewarray(j *JVM, f *frames.Frame, code []byte, classIdx, threadIdx int, op byte) (step, error) {
	atype := code[f.PC]
	f.PC++
	count := int(f.Pop().(int64))
	if count < 0 {
		return step{}, fmt.Errorf(excNames.NegativeArraySizeException)
	}
	hash, err := j.newPrimitiveArray(atype, count)
	if err != nil {
		return step{}, err
	}
	f.Push(int64(hash))
	return step{}, nil
}

func opAnewarray(j *JVM, f *frames.Frame, code []byte, classIdx, threadIdx int, op byte) (step, error) {
	idx := binary.BigEndian.Uint16(code[f.PC : f.PC+2])
	f.PC += 2
	count := int(f.Pop().(int64))
	if count < 0 {
		return step{}, fmt.Errorf(excNames.NegativeArraySizeException)
	}
	elemName, err := classloader.GetClassNameFromCPclassref(classLoaderCP(classIdx), idx)
	if err != nil {
		return step{}, err
	}
	hash, err := j.newReferenceArray(elemName, count)
	if err != nil {
		return step{}, err
	}
	f.Push(int64(hash))
	return step{}, nil
}

func opMultianewarray(j *JVM, f *frames.Frame, code []byte, classIdx, threadIdx int, op byte) (step, error) {
	idx := binary.BigEndian.Uint16(code[f.PC : f.PC+2])
	f.PC += 2
	dims := int(code[f.PC])
	f.PC++
	lengths := make([]int, dims)
	for i := dims - 1; i >= 0; i-- {
		n := int(f.Pop().(int64))
		if n < 0 {
			return step{}, fmt.Errorf(excNames.NegativeArraySizeException)
		}
		lengths[i] = n
	}
	elemName, err := classloader.GetClassNameFromCPclassref(classLoaderCP(classIdx), idx)
	if err != nil {
		return step{}, err
	}
	hash, err := j.newMultiArray(elemName, lengths)
	if err != nil {
		return step{}, err
	}
	f.Push(int64(hash))
	return step{}, nil
}

func opArraylength(j *JVM, f *frames.Frame, code []byte, classIdx, threadIdx int, op byte) (step, error) {
	arr := j.Objects.Get(int(f.Pop().(int64)))
	if arr == nil {
		return step{}, fmt.Errorf(excNames.NullPointerException)
	}
	if arr.Dims > 1 {
		f.Push(int64(len(arr.SubArrays)))
	} else {
		f.Push(int64(len(arr.Elements)))
	}
	return step{}, nil
}

func opArrayLoad(j *JVM, f *frames.Frame, code []byte, classIdx, threadIdx int, op byte) (step, error) {
	idx := int(f.Pop().(int64))
	arr := j.Objects.Get(int(f.Pop().(int64)))
	if arr == nil {
		return step{}, fmt.Errorf(excNames.NullPointerException)
	}
	if idx < 0 || idx >= len(arr.Elements) {
		return step{}, fmt.Errorf(excNames.ArrayIndexOutOfBoundsException)
	}
	f.Push(arrayElementToOperand(arr.BaseType, arr.Elements[idx]))
	return step{}, nil
}

func opArrayStore(j *JVM, f *frames.Frame, code []byte, classIdx, threadIdx int, op byte) (step, error) {
	val := f.Pop()
	idx := int(f.Pop().(int64))
	arr := j.Objects.Get(int(f.Pop().(int64)))
	if arr == nil {
		return step{}, fmt.Errorf(excNames.NullPointerException)
	}
	if idx < 0 || idx >= len(arr.Elements) {
		return step{}, fmt.Errorf(excNames.ArrayIndexOutOfBoundsException)
	}
	arr.Elements[idx] = operandToArrayElement(arr.BaseType, val)
	return step{}, nil
}

func opCheckcast(j *JVM, f *frames.Frame, code []byte, classIdx, threadIdx int, op byte) (step, error) {
	f.PC += 2 // class reference index; no class hierarchy check yet, see Open Questions
	return step{}, nil
}

func opInstanceof(j *JVM, f *frames.Frame, code []byte, classIdx, threadIdx int, op byte) (step, error) {
	f.PC += 2 // class reference index; no class hierarchy check yet, see Open Questions
	objHash := int(f.Pop().(int64))
	if objHash == 0 {
		f.Push(int64(0))
	} else {
		f.Push(int64(1))
	}
	return step{}, nil
}

func opInvoke(j *JVM, f *frames.Frame, code []byte, classIdx, threadIdx int, op byte) (step, error) {
	idx := binary.BigEndian.Uint16(code[f.PC : f.PC+2])
	f.PC += 2
	if op == opcodes.Invokeinterface {
		f.PC += 2 // count + zero byte operands
	}
	if err := j.invokeFromCP(f, classIdx, idx, threadIdx, op); err != nil {
		return step{}, err
	}
	return step{}, nil
}

func opMonitorenter(j *JVM, f *frames.Frame, code []byte, classIdx, threadIdx int, op byte) (step, error) {
	objHash := int(f.Pop().(int64))
	j.MonitorEnter(objHash, threadIdx)
	return step{}, nil
}

func opMonitorexit(j *JVM, f *frames.Frame, code []byte, classIdx, threadIdx int, op byte) (step, error) {
	objHash := int(f.Pop().(int64))
	j.MonitorExit(objHash, threadIdx)
	return step{}, nil
}

func opAthrow(j *JVM, f *frames.Frame, code []byte, classIdx, threadIdx int, op byte) (step, error) {
	objHash := int(f.Pop().(int64))
	return step{}, j.dispatchThrow(objHash, threadIdx)
}

func opReturnValue(j *JVM, f *frames.Frame, code []byte, classIdx, threadIdx int, op byte) (step, error) {
	ret := f.Pop()
	releaseFrameMonitor(j, threadIdx)
	return step{ret: ret, done: true}, nil
}

func opReturnVoid(j *JVM, f *frames.Frame, code []byte, classIdx, threadIdx int, op byte) (step, error) {
	releaseFrameMonitor(j, threadIdx)
	return step{done: true}, nil
}

// releaseFrameMonitor exits any monitor the running thread still holds
// from a synchronized method body, on every path out of the frame.
func releaseFrameMonitor(j *JVM, threadIdx int) {
	th := j.Threads.Get(threadIdx)
	if th != nil && th.LockTarget != 0 {
		j.MonitorExit(th.LockTarget, threadIdx)
	}
}

// classLoaderCP fetches a class's constant pool by class-table index,
// a convenience wrapper since several interpreter cases need only the
// CPool, not the full Klass.
func classLoaderCP(classIdx int) *classloader.CPool {
	k := classloader.MethAreaFetchByIndex(classIdx)
	if k == nil {
		return &classloader.CPool{}
	}
	return &k.Data.CP
}

// loadConstant implements ldc/ldc_w/ldc2_w: push an Integer, Float,
// Long, Double, or String constant from the current class's constant
// pool.
func (j *JVM) loadConstant(classIdx int, cpIdx uint16) (interface{}, error) {
	cp := classLoaderCP(classIdx)
	r := classloader.FetchCPentry(cp, cpIdx)
	switch r.Type {
	case classloader.IsInt64:
		return r.RetInt, nil
	case classloader.IsFloat64:
		return r.RetFloat, nil
	case classloader.IsStringAddr:
		return r.RetString, nil
	default:
		return nil, fmt.Errorf("ldc: unresolvable constant pool entry %d", cpIdx)
	}
}

func (j *JVM) invokeFromCP(f *frames.Frame, classIdx int, cpIdx uint16, threadIdx int, op byte) error {
	cp := classLoaderCP(classIdx)
	mref := cp.MethodRefs[cp.CpIndex[cpIdx].Slot]
	className, methodName, methodType, err := classloader.GetMethInfoFromCPmethref(cp, mref)
	if err != nil {
		return err
	}

	entry, err := classloader.FetchMethodAndCP(className, methodName, methodType)
	if err != nil {
		return fmt.Errorf("NoSuchMethodError: %s.%s%s", className, methodName, methodType)
	}

	nargs := len(splitParamSlots(methodType))
	if op != opcodes.Invokestatic {
		nargs++ // receiver
	}
	args := make([]interface{}, nargs)
	for i := nargs - 1; i >= 0; i-- {
		args[i] = f.Pop()
	}

	if entry.Meth.IsNative {
		key := className + "." + methodName + methodType
		if key == arraycopyKey {
			return j.systemArraycopy(args)
		}
		gm, ok := gfunction.MethodSignatures[key]
		if !ok {
			return fmt.Errorf("UnsatisfiedLinkError: %s", key)
		}
		ret := gm.GFunction(args)
		if errBlk, ok := ret.(*gfunction.GErrBlk); ok {
			return fmt.Errorf("%s: %s", errBlk.ExceptionType, errBlk.ErrMsg)
		}
		if hasReturnValue(methodType) {
			f.Push(ret)
		}
		return nil
	}

	ret, err := j.invokeMethodForValue(entry.ClassIdx, entry.Meth, threadIdx, args)
	if err != nil {
		return err
	}
	if hasReturnValue(methodType) && ret != nil {
		f.Push(ret)
	}
	return nil
}

// systemArraycopy implements java/lang/System.arraycopy: the interpreter
// intercepts arraycopyKey before generic native dispatch (both here and
// in invokeMethod) since the copy needs j.Objects, not just the raw args
// a GFunction receives.
func (j *JVM) systemArraycopy(args []interface{}) error {
	src := j.Objects.Get(int(args[0].(int64)))
	srcPos := int(args[1].(int64))
	dst := j.Objects.Get(int(args[2].(int64)))
	dstPos := int(args[3].(int64))
	length := int(args[4].(int64))
	if src == nil || dst == nil {
		return fmt.Errorf(excNames.NullPointerException)
	}
	if !src.Status.Array || !dst.Status.Array {
		return fmt.Errorf(excNames.ArrayStoreException)
	}
	if srcPos < 0 || dstPos < 0 || length < 0 ||
		srcPos+length > len(src.Elements) || dstPos+length > len(dst.Elements) {
		return fmt.Errorf(excNames.IndexOutOfBoundsException)
	}
	copy(dst.Elements[dstPos:dstPos+length], src.Elements[srcPos:srcPos+length])
	return nil
}

func hasReturnValue(methodType string) bool {
	i := len(methodType) - 1
	return i >= 0 && methodType[i] != 'V'
}

func splitParamSlots(methodType string) []string {
	return util.ParseIncomingParamsFromMethTypeString(methodType)
}

func (j *JVM) getStatic(classIdx int, cpIdx uint16) (interface{}, error) {
	name, err := staticKey(classIdx, cpIdx)
	if err != nil {
		return nil, err
	}
	v, ok := j.Statics[name]
	if !ok {
		return int64(0), nil
	}
	switch v.Type[0] {
	case 'F', 'D':
		return v.F, nil
	case 'L', '[':
		return int64(v.Ref), nil
	default:
		return v.I, nil
	}
}

func (j *JVM) putStatic(classIdx int, cpIdx uint16, val interface{}) error {
	name, err := staticKey(classIdx, cpIdx)
	if err != nil {
		return err
	}
	switch v := val.(type) {
	case float64:
		j.Statics[name] = StaticValue{Type: "D", F: v}
	case int64:
		j.Statics[name] = StaticValue{Type: "J", I: v}
	default:
		j.Statics[name] = StaticValue{Type: "L"}
	}
	return nil
}

func staticKey(classIdx int, cpIdx uint16) (string, error) {
	cp := classLoaderCP(classIdx)
	entry := cp.CpIndex[cpIdx]
	fref := cp.FieldRefs[entry.Slot]
	name, err := classloader.FetchUTF8stringFromCPEntryNumber(cp, cp.NameAndTypes[cp.CpIndex[fref.NameAndType].Slot].NameIndex)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%d.%s", classIdx, name), nil
}

func (j *JVM) getField(classIdx int, cpIdx uint16, objHash int) (interface{}, error) {
	lookupIdx, desc, err := classloader.ResolveFieldRef(classIdx, cpIdx)
	if err != nil {
		return nil, err
	}
	obj := j.Objects.Get(objHash)
	if obj == nil || lookupIdx >= len(obj.Fields) {
		return nil, fmt.Errorf(excNames.NullPointerException)
	}
	fv := obj.Fields[lookupIdx]
	switch desc[0] {
	case 'F', 'D':
		return fv.F, nil
	case 'L', '[':
		return int64(fv.Ref), nil
	default:
		return fv.I, nil
	}
}

func (j *JVM) putField(classIdx int, cpIdx uint16, objHash int, val interface{}) error {
	lookupIdx, desc, err := classloader.ResolveFieldRef(classIdx, cpIdx)
	if err != nil {
		return err
	}
	obj := j.Objects.Get(objHash)
	if obj == nil || lookupIdx >= len(obj.Fields) {
		return fmt.Errorf(excNames.NullPointerException)
	}
	switch desc[0] {
	case 'F', 'D':
		obj.Fields[lookupIdx] = gfieldFloat(val)
	case 'L', '[':
		obj.Fields[lookupIdx] = gfieldRef(val)
	default:
		obj.Fields[lookupIdx] = gfieldInt(val)
	}
	return nil
}
