/*
 * p16sim - per-stage display snapshot.
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

package pipeline

import (
	"p16sim/disassembler"
	"p16sim/isa"
)

// StageInfo is a per-cycle rendering of what each of the five stages just
// did, held alongside the latches so an external visualizer can show values
// (like the EX stage's ALU operands or the MEM stage's effective address)
// that the latches themselves don't carry forward.
type StageInfo struct {
	IF  IFStageInfo
	ID  IDStageInfo
	EX  EXStageInfo
	MEM MEMStageInfo
	WB  WBStageInfo
}

// IFStageInfo describes the instruction fetch just performed.
type IFStageInfo struct {
	PC      uint16
	Instr   isa.Word
	PCPlus1 uint16
	Asm     string
}

// IDStageInfo describes the instruction decode just performed.
type IDStageInfo struct {
	Instr     isa.Word
	Opcode    uint16
	Rs        int
	Rt        int
	Rd        int
	ReadData1 uint16
	ReadData2 uint16
	Asm       string
}

// EXStageInfo describes the ALU operation just performed - the operands and
// result are otherwise unrecoverable once the cycle advances.
type EXStageInfo struct {
	PC           uint16
	Instr        isa.Word
	ALUA         uint16
	ALUB         uint16
	ALUResult    uint16
	Zero         bool
	BranchTarget uint16
	PCSrc        bool
	Asm          string
}

// MEMStageInfo describes the memory access just performed.
type MEMStageInfo struct {
	Instr     isa.Word
	Addr      uint16
	MemRead   bool
	MemWrite  bool
	MemData   uint16
	WriteData uint16
	Asm       string
}

// WBStageInfo describes the register write-back just performed.
type WBStageInfo struct {
	Instr     isa.Word
	DestReg   int
	WriteData uint16
	RegWrite  bool
	Asm       string
}

func asmOf(instr isa.Word) string {
	return disassembler.Disassemble(instr)
}
