/*
 * p16sim - point-in-time CPU state snapshot.
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

// StateSnapshot is an immutable, point-in-time copy of everything a
// visualizer or REPL needs to show one cycle: architectural state, the
// four latches, the per-stage display info, and the hazard/forwarding
// signals that produced them.
type StateSnapshot struct {
	Cycle   uint64
	PC      uint16
	Running bool

	Regs     [8]uint16
	DataMem  [256]uint16
	InstrMem [256]isa.Word

	IFID  IFID
	IDEX  IDEX
	EXMEM EXMEM
	MEMWB MEMWB

	StageInfo StageInfo

	Stall     bool
	FlushIFID bool
	FlushIDEX bool
	PCSrc     bool
	ForwardA  ForwardCode
	ForwardB  ForwardCode

	Stats Stats
}

// State captures a StateSnapshot of the core as it stands right now -
// typically called between Step calls, never mid-stage.
func (c *CPU) State() StateSnapshot {
	return StateSnapshot{
		Cycle:    c.cycle,
		PC:       c.pc,
		Running:  c.running,
		Regs:     c.regs,
		DataMem:  c.dataMem,
		InstrMem: c.instrMem,

		IFID:  c.ifid,
		IDEX:  c.idex,
		EXMEM: c.exmem,
		MEMWB: c.memwb,

		StageInfo: c.stageInfo,

		Stall:     c.stall,
		FlushIFID: c.flushIfID,
		FlushIDEX: c.flushIDEX,
		PCSrc:     c.pcSrc,
		ForwardA:  c.fwdA,
		ForwardB:  c.fwdB,

		Stats: c.stats,
	}
}
