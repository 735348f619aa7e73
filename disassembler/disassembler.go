/*
 * p16sim - disassembler for the 16-bit pipelined core's instruction set.
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

// Package disassembler turns raw instruction words back into assembly text.
// Disassembly never errors: unrecognized bit patterns render as a fallback
// token instead of panicking.
package disassembler

import (
	"fmt"

	"p16sim/isa"
	"p16sim/util/hexfmt"
)

var rMnemonic = map[uint16]string{
	isa.FuncAdd: "add",
	isa.FuncSub: "sub",
	isa.FuncAnd: "and",
	isa.FuncOr:  "or",
	isa.FuncXor: "xor",
	isa.FuncSlt: "slt",
	isa.FuncDiv: "div",
}

// Disassemble renders a single instruction word as assembly text.
func Disassemble(word isa.Word) string {
	if word == 0 {
		return "nop"
	}

	opcode := isa.Opcode(word)
	rs, rt, rd := isa.Rs(word), isa.Rt(word), isa.Rd(word)

	switch opcode {
	case isa.OpRType:
		mnemonic, ok := rMnemonic[isa.Func(word)]
		if !ok {
			return fmt.Sprintf("unknown_func_%d", isa.Func(word))
		}
		return fmt.Sprintf("%s r%d, r%d, r%d", mnemonic, rd, rs, rt)
	case isa.OpAddi:
		return fmt.Sprintf("addi r%d, r%d, %d", rt, rs, int16(isa.SignExtend6(isa.Imm6(word))))
	case isa.OpLw:
		return fmt.Sprintf("ld r%d, %d(r%d)", rt, int16(isa.SignExtend6(isa.Imm6(word))), rs)
	case isa.OpSw:
		return fmt.Sprintf("st r%d, %d(r%d)", rt, int16(isa.SignExtend6(isa.Imm6(word))), rs)
	case isa.OpBeq:
		return fmt.Sprintf("beq r%d, r%d, %d", rs, rt, int16(isa.SignExtend6(isa.Imm6(word))))
	case isa.OpBne:
		return fmt.Sprintf("bne r%d, r%d, %d", rs, rt, int16(isa.SignExtend6(isa.Imm6(word))))
	case isa.OpJ:
		return fmt.Sprintf("j %d", isa.Imm12(word))
	case isa.OpJal:
		return fmt.Sprintf("jal %d", isa.Imm12(word))
	case isa.OpJr:
		return fmt.Sprintf("jr r%d", rs)
	case isa.OpHalt:
		return "halt"
	default:
		return fmt.Sprintf("unknown_opcode_%d", opcode)
	}
}

// ProgramLine is one row of a machine-code presentation table.
type ProgramLine struct {
	PC  int
	Hex string
	Asm string
}

// DisassembleProgram renders every word of an instruction stream, numbering
// addresses from 0, for external visualizers.
func DisassembleProgram(words []isa.Word) []ProgramLine {
	lines := make([]ProgramLine, len(words))
	for i, w := range words {
		lines[i] = ProgramLine{
			PC:  i,
			Hex: hexfmt.Word(uint16(w)),
			Asm: Disassemble(w),
		}
	}
	return lines
}
