package disassembler

import (
	"testing"

	"p16sim/isa"
)

func TestDisassembleNop(t *testing.T) {
	if got := Disassemble(0); got != "nop" {
		t.Errorf("Disassemble(0) = %q, want nop", got)
	}
}

func TestDisassembleRType(t *testing.T) {
	w := isa.Word(isa.OpRType<<12 | 1<<9 | 2<<6 | 3<<3 | isa.FuncAdd)
	if got := Disassemble(w); got != "add r3, r1, r2" {
		t.Errorf("Disassemble(add) = %q", got)
	}
}

func TestDisassembleUnknownFunc(t *testing.T) {
	w := isa.Word(isa.OpRType<<12 | 7)
	if got := Disassemble(w); got != "unknown_func_7" {
		t.Errorf("Disassemble(unknown func) = %q", got)
	}
}

func TestDisassembleUnknownOpcode(t *testing.T) {
	w := isa.Word(0xA << 12)
	if got := Disassemble(w); got != "unknown_opcode_10" {
		t.Errorf("Disassemble(unknown opcode) = %q", got)
	}
}

func TestDisassembleLoadStoreUseAliasMnemonics(t *testing.T) {
	lw := isa.Word(isa.OpLw<<12 | 1<<9 | 2<<6 | 4)
	if got := Disassemble(lw); got != "ld r2, 4(r1)" {
		t.Errorf("Disassemble(lw) = %q", got)
	}
	sw := isa.Word(isa.OpSw<<12 | 1<<9 | 2<<6 | 0x3E) // imm6 = -2
	if got := Disassemble(sw); got != "st r2, -2(r1)" {
		t.Errorf("Disassemble(sw) = %q", got)
	}
}

func TestDisassembleJumpShowsRawImmediate(t *testing.T) {
	j := isa.Word(isa.OpJ<<12 | 0x010)
	if got := Disassemble(j); got != "j 16" {
		t.Errorf("Disassemble(j) = %q", got)
	}
}

func TestDisassembleProgram(t *testing.T) {
	words := []isa.Word{0, isa.Word(isa.OpHalt << 12)}
	lines := DisassembleProgram(words)
	if len(lines) != 2 || lines[0].Hex != "0000" || lines[1].Asm != "halt" {
		t.Errorf("DisassembleProgram mismatch: %+v", lines)
	}
}
