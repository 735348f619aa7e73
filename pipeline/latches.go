/*
 * p16sim - pipeline register latches.
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

import "p16sim/isa"

// IFID holds what instruction fetch hands to decode.
type IFID struct {
	PCPlus1 uint16
	Instr   isa.Word
}

func (l *IFID) Reset() { *l = IFID{} }

func (l *IFID) Write(pcPlus1 uint16, instr isa.Word) {
	l.PCPlus1 = pcPlus1
	l.Instr = instr
}

// IDEX holds what decode hands to execute. Ctrl == 0 marks a bubble.
type IDEX struct {
	PC        uint16
	Instr     isa.Word
	ReadData1 uint16
	ReadData2 uint16
	Imm       uint16
	Rs        int
	Rt        int
	DestReg   int
	Ctrl      isa.Control
	ALUCtrl   uint16
}

func (l *IDEX) Reset() { *l = IDEX{} }

func (l *IDEX) Write(pc uint16, instr isa.Word, rd1, rd2, imm uint16, rs, rt, destReg int, ctrl isa.Control, aluCtrl uint16) {
	l.PC = pc
	l.Instr = instr
	l.ReadData1 = rd1
	l.ReadData2 = rd2
	l.Imm = imm
	l.Rs = rs
	l.Rt = rt
	l.DestReg = destReg
	l.Ctrl = ctrl
	l.ALUCtrl = aluCtrl
}

// EXMEM holds what execute hands to memory. Ctrl == 0 marks a bubble.
type EXMEM struct {
	Instr        isa.Word
	BranchTarget uint16
	Zero         bool
	ALUResult    uint16
	StoreData    uint16
	DestReg      int
	Ctrl         isa.Control
}

func (l *EXMEM) Reset() { *l = EXMEM{} }

func (l *EXMEM) Write(instr isa.Word, branchTarget uint16, zero bool, aluResult, storeData uint16, destReg int, ctrl isa.Control) {
	l.Instr = instr
	l.BranchTarget = branchTarget
	l.Zero = zero
	l.ALUResult = aluResult
	l.StoreData = storeData
	l.DestReg = destReg
	l.Ctrl = ctrl
}

// MEMWB holds what memory hands to write-back. Ctrl == 0 marks a bubble.
type MEMWB struct {
	Instr     isa.Word
	MemData   uint16
	ALUResult uint16
	DestReg   int
	Ctrl      isa.Control
}

func (l *MEMWB) Reset() { *l = MEMWB{} }

func (l *MEMWB) Write(instr isa.Word, memData, aluResult uint16, destReg int, ctrl isa.Control) {
	l.Instr = instr
	l.MemData = memData
	l.ALUResult = aluResult
	l.DestReg = destReg
	l.Ctrl = ctrl
}
