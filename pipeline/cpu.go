/*
 * p16sim - the 5-stage pipelined CPU driver.
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

// Package pipeline implements the 5-stage in-order pipelined CPU: its
// fetch/decode/execute/memory/write-back stages, the hazard and forwarding
// units that keep it correct across dependent instructions, and the four
// latches that carry state between stages. Every CPU is an independent
// struct value - nothing here is package-global - so a caller can run any
// number of simulated cores side by side with no shared mutable state.
package pipeline

import (
	"log/slog"

	"p16sim/alu"
	"p16sim/isa"
)

// CPU is one independent pipelined core: registers, memories, latches, and
// the bookkeeping needed to single-step it and inspect it between cycles.
type CPU struct {
	pc       uint16
	regs     [8]uint16
	instrMem [256]isa.Word
	dataMem  [256]uint16

	ifid  IFID
	idex  IDEX
	exmem EXMEM
	memwb MEMWB

	cycle   uint64
	running bool

	breakpoints map[uint16]struct{}
	stats       Stats
	traceLevel  int
	logger      *slog.Logger

	stageInfo StageInfo

	// Cross-stage hazard signals, held for one cycle the way a real
	// hazard/forwarding unit's outputs feed stages evaluated earlier in
	// program order but later in this reverse-evaluation pass.
	stall     bool
	flushIfID bool
	flushIDEX bool
	pcSrc     bool
	fwdA      ForwardCode
	fwdB      ForwardCode
}

// New returns a freshly reset CPU, logging to slog's default handler.
func New() *CPU {
	c := &CPU{
		breakpoints: make(map[uint16]struct{}),
		logger:      slog.Default(),
	}
	c.Reset()
	return c
}

// SetLogger overrides the logger used for trace/debug output.
func (c *CPU) SetLogger(logger *slog.Logger) { c.logger = logger }

// SetTraceLevel controls how much per-cycle detail Step logs at
// slog.LevelDebug. 0 disables tracing; 1 logs the fetched instruction;
// any positive level logs one record per completed cycle with the cycle
// count, PC and stall flag. Levels above 1 add no further detail.
func (c *CPU) SetTraceLevel(level int) { c.traceLevel = level }

// Reset clears all architectural and pipeline state, including memory.
func (c *CPU) Reset() {
	c.pc = 0
	c.regs = [8]uint16{}
	c.dataMem = [256]uint16{}
	c.instrMem = [256]isa.Word{}
	c.ifid.Reset()
	c.idex.Reset()
	c.exmem.Reset()
	c.memwb.Reset()
	c.cycle = 0
	c.running = true
	c.stall = false
	c.flushIfID = false
	c.flushIDEX = false
	c.pcSrc = false
	c.fwdA = FwdNone
	c.fwdB = FwdNone
	c.stats = Stats{}
	c.stageInfo = StageInfo{}
}

// LoadProgram copies a compacted instruction stream (no sentinel gaps)
// into instruction memory starting at address 0. Programs longer than 256
// words are truncated; the simulator has no paging or overlay mechanism.
func (c *CPU) LoadProgram(words []isa.Word) {
	n := len(words)
	if n > len(c.instrMem) {
		n = len(c.instrMem)
	}
	copy(c.instrMem[:n], words[:n])
}

// Running reports whether the core has not yet hit HALT.
func (c *CPU) Running() bool { return c.running }

// Cycle returns the number of completed clock cycles.
func (c *CPU) Cycle() uint64 { return c.cycle }

// PC returns the current program counter.
func (c *CPU) PC() uint16 { return c.pc }

// Regs returns a copy of the register file.
func (c *CPU) Regs() [8]uint16 { return c.regs }

// DataMem returns a copy of data memory.
func (c *CPU) DataMem() [256]uint16 { return c.dataMem }

// InstrMem returns a copy of instruction memory.
func (c *CPU) InstrMem() [256]isa.Word { return c.instrMem }

// Breakpoints returns the live breakpoint set (not a copy - callers must
// not mutate it concurrently with Step).
func (c *CPU) Breakpoints() map[uint16]struct{} { return c.breakpoints }

// SetReg seeds register r (1-7; writes to r0 are ignored) before the first
// Step - used by session config loading, never by the pipeline itself.
func (c *CPU) SetReg(r int, value uint16) {
	if r > 0 && r < len(c.regs) {
		c.regs[r] = value
	}
}

// SetDataMem seeds one data memory cell before the first Step.
// Only the low 8 bits of addr are used, as for MEM-stage accesses.
func (c *CPU) SetDataMem(addr uint16, value uint16) {
	c.dataMem[addr&0xFF] = value
}

// SetBreakpoint arms a breakpoint at addr.
func (c *CPU) SetBreakpoint(addr uint16) { c.breakpoints[addr] = struct{}{} }

// ClearBreakpoint disarms a breakpoint at addr.
func (c *CPU) ClearBreakpoint(addr uint16) { delete(c.breakpoints, addr) }

// Hit reports whether addr carries an armed breakpoint.
func (c *CPU) Hit(addr uint16) bool {
	_, ok := c.breakpoints[addr]
	return ok
}

// Stats returns a copy of the running cycle/instruction counters.
func (c *CPU) Stats() Stats { return c.stats }

// StageInfo returns a copy of what each of the five stages did on the last
// completed cycle, for an external visualizer.
func (c *CPU) StageInfo() StageInfo { return c.stageInfo }

// Step advances the core by exactly one clock cycle. HALT is checked
// against the instruction about to enter IF, before any stage runs: a
// HALT sitting in instruction memory at the current PC stops the core
// before its own fetch would otherwise begin, so HALT never enters the
// pipeline. Instructions already in flight at that point do not advance
// any further and never retire.
func (c *CPU) Step() {
	if int(c.pc) < len(c.instrMem) {
		if isa.Opcode(c.instrMem[c.pc]) == isa.OpHalt {
			c.running = false
			return
		}
	}
	c.running = true

	c.wbStage()
	c.memStage()
	c.exStage()
	c.idStage()
	c.ifStage()

	c.cycle++
	c.regs[0] = 0
	c.stats.Cycles = c.cycle

	if c.traceLevel > 0 {
		c.logger.Debug("cycle complete", "cycle", c.cycle, "pc", c.pc, "stall", c.stall)
	}
}

func (c *CPU) wbWriteData() uint16 {
	if c.memwb.Ctrl.MemToReg() {
		return c.memwb.MemData
	}
	return c.memwb.ALUResult
}

func (c *CPU) wbStage() {
	ctrl := c.memwb.Ctrl
	if ctrl != 0 {
		c.stats.Instructions++
	}
	writeData := c.wbWriteData()
	if ctrl.RegWrite() && c.memwb.DestReg != 0 {
		c.regs[c.memwb.DestReg] = writeData
	}

	c.stageInfo.WB = WBStageInfo{
		Instr:     c.memwb.Instr,
		DestReg:   c.memwb.DestReg,
		WriteData: writeData,
		RegWrite:  ctrl.RegWrite(),
		Asm:       asmOf(c.memwb.Instr),
	}
}

func (c *CPU) memStage() {
	ctrl := c.exmem.Ctrl
	addr := c.exmem.ALUResult & 0xFF

	var memData uint16
	if ctrl.MemRead() {
		memData = c.dataMem[addr]
	}
	if ctrl.MemWrite() {
		c.dataMem[addr] = c.exmem.StoreData
	}

	c.memwb.Write(c.exmem.Instr, memData, c.exmem.ALUResult, c.exmem.DestReg, ctrl)

	c.stageInfo.MEM = MEMStageInfo{
		Instr:     c.exmem.Instr,
		Addr:      addr,
		MemRead:   ctrl.MemRead(),
		MemWrite:  ctrl.MemWrite(),
		MemData:   memData,
		WriteData: c.exmem.StoreData,
		Asm:       asmOf(c.exmem.Instr),
	}
}

func (c *CPU) selectForwardValue(code ForwardCode, fallback uint16) uint16 {
	switch code {
	case FwdEX:
		return c.exmem.ALUResult
	case FwdMEM:
		return c.wbWriteData()
	default:
		return fallback
	}
}

func (c *CPU) exStage() {
	ctrl := c.idex.Ctrl

	fwdA, fwdB := SelectForward(c.idex.Rs, c.idex.Rt,
		c.exmem.Ctrl.RegWrite(), c.exmem.DestReg,
		c.memwb.Ctrl.RegWrite(), c.memwb.DestReg)
	c.fwdA, c.fwdB = fwdA, fwdB

	aluA := c.selectForwardValue(fwdA, c.idex.ReadData1)
	regB := c.selectForwardValue(fwdB, c.idex.ReadData2)

	aluB := regB
	if ctrl.ALUSrc() {
		aluB = c.idex.Imm
	}

	aluResult, zero := alu.Compute(aluA, aluB, c.idex.ALUCtrl)

	branchTarget := c.idex.PC + c.idex.Imm

	isJal := ctrl.Jump() && ctrl.RegWrite()
	if isJal {
		aluResult = c.idex.PC + 1
	}

	isBne := isa.Opcode(c.idex.Instr) == isa.OpBne
	var branchTaken bool
	if isBne {
		branchTaken = ctrl.Branch() && !zero
	} else {
		branchTaken = ctrl.Branch() && zero
	}
	pcSrc := branchTaken || ctrl.Jump()
	c.pcSrc = pcSrc

	if pcSrc {
		isJr := ctrl.Jump() && ctrl.ALUSrc()
		if isJr {
			c.pc = aluA
		} else {
			c.pc = branchTarget
		}
		if ctrl.Branch() {
			c.stats.Branches++
		}
	}

	c.exmem.Write(c.idex.Instr, branchTarget, zero, aluResult, regB, c.idex.DestReg, ctrl)

	c.stageInfo.EX = EXStageInfo{
		PC:           c.idex.PC,
		Instr:        c.idex.Instr,
		ALUA:         aluA,
		ALUB:         aluB,
		ALUResult:    aluResult,
		Zero:         zero,
		BranchTarget: branchTarget,
		PCSrc:        pcSrc,
		Asm:          asmOf(c.idex.Instr),
	}
}

func (c *CPU) readRegisterWithBypass(reg int) uint16 {
	if c.memwb.Ctrl.RegWrite() && c.memwb.DestReg == reg && reg != 0 {
		return c.wbWriteData()
	}
	return c.regs[reg]
}

func (c *CPU) idStage() {
	instr := c.ifid.Instr
	opcode := isa.Opcode(instr)
	rs, rt, rd := isa.Rs(instr), isa.Rt(instr), isa.Rd(instr)

	ctrl := isa.ControlFor(opcode)

	var aluCtrl uint16
	switch opcode {
	case isa.OpRType:
		aluCtrl = isa.Func(instr)
	case isa.OpBeq, isa.OpBne:
		aluCtrl = isa.FuncSub
	default:
		aluCtrl = isa.FuncAdd
	}

	readData1 := c.readRegisterWithBypass(rs)
	readData2 := c.readRegisterWithBypass(rt)

	var immExtended uint16
	if opcode == isa.OpJ || opcode == isa.OpJal {
		immExtended = isa.SignExtend12(isa.Imm12(instr))
	} else {
		immExtended = isa.SignExtend6(isa.Imm6(instr))
	}

	isJal := ctrl.Jump() && ctrl.RegWrite()
	var destReg int
	switch {
	case isJal:
		destReg = 7
	case ctrl.RegDst():
		destReg = rd
	default:
		destReg = rt
	}

	if c.flushIDEX || c.pcSrc {
		ctrl = 0
	}

	pcOfInstr := c.ifid.PCPlus1 - 1
	c.idex.Write(pcOfInstr, instr, readData1, readData2, immExtended, rs, rt, destReg, ctrl, aluCtrl)

	c.stageInfo.ID = IDStageInfo{
		Instr:     instr,
		Opcode:    opcode,
		Rs:        rs,
		Rt:        rt,
		Rd:        rd,
		ReadData1: readData1,
		ReadData2: readData2,
		Asm:       asmOf(instr),
	}
}

func (c *CPU) ifStage() {
	ifIDRs := isa.Rs(c.ifid.Instr)
	ifIDRt := isa.Rt(c.ifid.Instr)

	pcWrite, ifIDWrite, idExFlush := DetectHazard(c.idex.Ctrl.MemRead(), c.idex.Rt, ifIDRs, ifIDRt)

	var instr isa.Word
	if int(c.pc) < len(c.instrMem) {
		instr = c.instrMem[c.pc]
	}
	pcPlus1 := c.pc + 1

	if ifIDWrite {
		if c.pcSrc {
			c.ifid.Write(pcPlus1, 0)
			c.flushIfID = true
			c.stats.Flushes++
		} else {
			c.ifid.Write(pcPlus1, instr)
			c.flushIfID = false
		}
	}

	if pcWrite && !c.pcSrc {
		c.pc = pcPlus1
	}

	c.stall = !pcWrite
	if c.stall {
		c.stats.Stalls++
	}
	c.flushIDEX = idExFlush

	c.stageInfo.IF = IFStageInfo{
		PC:      c.pc,
		Instr:   instr,
		PCPlus1: pcPlus1,
		Asm:     asmOf(instr),
	}
}
