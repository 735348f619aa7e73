/*
 * p16sim - ISA constants and bit-field helpers for the 16-bit pipelined core.
 *
 * Copyright 2024, Richard Cornwell
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy
 * of this software and associated documentation files (the "Software"), to deal
 * in the Software without restriction, including without limitation the rights
 * to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 * copies of the Software, and to permit persons to whom the Software is
 * furnished to do so, subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in
 * all copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 * FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 * AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 * LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 * OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 * SOFTWARE.
 *
 */

// Package isa holds the instruction encoding, opcode/func tables, and the
// bit-level helpers the rest of the simulator shares: sign extension,
// control-word lookup, and field extraction on a raw instruction word.
package isa

// Word is a raw 16-bit instruction or data value.
type Word = uint16

// Opcode values, bits [15:12] of the instruction word.
const (
	OpRType = 0x0
	OpAddi  = 0x1
	OpLw    = 0x2
	OpSw    = 0x3
	OpBeq   = 0x4
	OpJ     = 0x5
	OpJal   = 0x6
	OpJr    = 0x7
	OpBne   = 0x8
	OpHalt  = 0x9
)

// R-type func values, bits [2:0] of the instruction word.
const (
	FuncAdd = 0
	FuncSub = 1
	FuncAnd = 2
	FuncOr  = 3
	FuncXor = 4
	FuncSlt = 5
	FuncDiv = 6
	// 7 is reserved and decodes as unknown_func_7.
)

// Control is the 8-bit control word produced by decode, one bit per signal.
type Control uint8

const (
	CtrlRegDst = iota
	CtrlALUSrc
	CtrlMemToReg
	CtrlRegWrite
	CtrlMemRead
	CtrlMemWrite
	CtrlBranch
	CtrlJump
)

// Bit reports whether the control signal at position pos is set.
func (c Control) Bit(pos uint) bool {
	return (c>>pos)&1 == 1
}

// RegDst, ALUSrc, ... are the named accessors used throughout decode/execute.
func (c Control) RegDst() bool   { return c.Bit(CtrlRegDst) }
func (c Control) ALUSrc() bool   { return c.Bit(CtrlALUSrc) }
func (c Control) MemToReg() bool { return c.Bit(CtrlMemToReg) }
func (c Control) RegWrite() bool { return c.Bit(CtrlRegWrite) }
func (c Control) MemRead() bool  { return c.Bit(CtrlMemRead) }
func (c Control) MemWrite() bool { return c.Bit(CtrlMemWrite) }
func (c Control) Branch() bool   { return c.Bit(CtrlBranch) }
func (c Control) Jump() bool     { return c.Bit(CtrlJump) }

func bit(set bool, pos uint) Control {
	if set {
		return 1 << pos
	}
	return 0
}

func ctrl(regDst, aluSrc, memToReg, regWrite, memRead, memWrite, branch, jump bool) Control {
	return bit(regDst, CtrlRegDst) | bit(aluSrc, CtrlALUSrc) | bit(memToReg, CtrlMemToReg) |
		bit(regWrite, CtrlRegWrite) | bit(memRead, CtrlMemRead) | bit(memWrite, CtrlMemWrite) |
		bit(branch, CtrlBranch) | bit(jump, CtrlJump)
}

// ControlFor returns the control word for opcode. An opcode outside the
// known set returns the zero Control, which behaves exactly like a bubble.
func ControlFor(opcode uint16) Control {
	switch opcode {
	case OpRType:
		return ctrl(true, false, false, true, false, false, false, false)
	case OpAddi:
		return ctrl(false, true, false, true, false, false, false, false)
	case OpLw:
		return ctrl(false, true, true, true, true, false, false, false)
	case OpSw:
		return ctrl(false, true, false, false, false, true, false, false)
	case OpBeq:
		return ctrl(false, false, false, false, false, false, true, false)
	case OpBne:
		return ctrl(false, false, false, false, false, false, true, false)
	case OpJ:
		return ctrl(false, false, false, false, false, false, false, true)
	case OpJal:
		return ctrl(false, false, false, true, false, false, false, true)
	case OpJr:
		return ctrl(false, true, false, false, false, false, false, true)
	default:
		return 0
	}
}

// Opcode extracts bits [15:12].
func Opcode(w Word) uint16 { return uint16(w>>12) & 0xF }

// Rs extracts bits [11:9].
func Rs(w Word) int { return int(w>>9) & 0x7 }

// Rt extracts bits [8:6].
func Rt(w Word) int { return int(w>>6) & 0x7 }

// Rd extracts bits [5:3].
func Rd(w Word) int { return int(w>>3) & 0x7 }

// Func extracts bits [2:0].
func Func(w Word) uint16 { return uint16(w) & 0x7 }

// Imm6 extracts the low 6 bits, used by ADDI/LW/SW/BEQ/BNE.
func Imm6(w Word) uint16 { return w & 0x3F }

// Imm12 extracts the low 12 bits, used by J/JAL.
func Imm12(w Word) uint16 { return w & 0xFFF }

// SignExtend6 sign-extends a 6-bit field (bit 5 is the sign) to 16 bits.
func SignExtend6(v uint16) uint16 {
	v &= 0x3F
	if v&0x20 != 0 {
		return v | 0xFFC0
	}
	return v
}

// SignExtend12 sign-extends a 12-bit field (bit 11 is the sign) to 16 bits.
func SignExtend12(v uint16) uint16 {
	v &= 0xFFF
	if v&0x800 != 0 {
		return v | 0xF000
	}
	return v
}

// Truncate16 masks an arbitrary-width intermediate value down to 16 bits.
func Truncate16(v int32) uint16 {
	return uint16(uint32(v) & 0xFFFF)
}

// AsSigned16 reinterprets a raw 16-bit pattern as a signed two's-complement value.
func AsSigned16(v uint16) int16 {
	return int16(v)
}
