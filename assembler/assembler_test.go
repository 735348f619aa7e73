package assembler

import (
	"testing"

	"p16sim/isa"
)

func mustAssemble(t *testing.T, src string) ([]isa.Word, []bool) {
	t.Helper()
	words, sentinel, errs := Assemble(src)
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	return words, sentinel
}

func TestAssembleRType(t *testing.T) {
	words, sentinel := mustAssemble(t, "add r3, r1, r2")
	if !sentinel[0] {
		t.Fatal("expected sentinel true")
	}
	want := isa.Word(isa.OpRType<<12 | 1<<9 | 2<<6 | 3<<3 | isa.FuncAdd)
	if words[0] != want {
		t.Errorf("add r3, r1, r2 = %#04x, want %#04x", words[0], want)
	}
}

func TestAssembleLoadStoreAliases(t *testing.T) {
	words, _ := mustAssemble(t, "ld r1, 4(r2)\nst r1, -2(r2)")
	wantLd := isa.Word(isa.OpLw<<12 | 2<<9 | 1<<6 | 4)
	if words[0] != wantLd {
		t.Errorf("ld = %#04x, want %#04x", words[0], wantLd)
	}
	wantSt := isa.Word(isa.OpSw<<12 | 2<<9 | 1<<6 | 0x3E)
	if words[1] != wantSt {
		t.Errorf("st = %#04x, want %#04x", words[1], wantSt)
	}
}

func TestAssembleLabelsAndBranches(t *testing.T) {
	src := "loop:\n" +
		"addi r1, r1, 1\n" +
		"beq r1, r2, loop\n"
	words, sentinel, errs := Assemble(src)
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	if sentinel[0] {
		t.Errorf("label-only line should not be sentinel")
	}
	// beq is at address 1, targets address 0: offset = 0 - (1+1) = -2
	gotOff := int16(isa.SignExtend6(isa.Imm6(words[2])))
	if gotOff != -2 {
		t.Errorf("branch offset = %d, want -2", gotOff)
	}
}

func TestAssembleJumpLabelPCRelative(t *testing.T) {
	src := "j end\n" +
		"nop\n" +
		"end:\n" +
		"halt\n"
	words, _, errs := Assemble(src)
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	// j is at pc 0, end resolves to pc 2: offset = 2 - 0 = 2
	if isa.Imm12(words[0]) != 2 {
		t.Errorf("jump imm12 = %d, want 2", isa.Imm12(words[0]))
	}
}

func TestAssembleUndefinedLabelCollectsError(t *testing.T) {
	_, sentinel, errs := Assemble("beq r1, r2, nowhere\n")
	if len(errs) != 1 {
		t.Fatalf("expected 1 error, got %d: %v", len(errs), errs)
	}
	if sentinel[0] {
		t.Errorf("errored line should not be sentinel")
	}
}

func TestAssembleContinuesAfterError(t *testing.T) {
	src := "bogus\n" +
		"add r1, r2, r3\n"
	words, sentinel, errs := Assemble(src)
	if len(errs) != 1 {
		t.Fatalf("expected 1 error, got %d", len(errs))
	}
	if sentinel[0] {
		t.Errorf("bad line should not be sentinel")
	}
	if !sentinel[1] {
		t.Errorf("good line after a bad one should still assemble")
	}
	want := isa.Word(isa.OpRType<<12 | 2<<9 | 3<<6 | 1<<3 | isa.FuncAdd)
	if words[1] != want {
		t.Errorf("add after error = %#04x, want %#04x", words[1], want)
	}
}

func TestAssembleBlankAndCommentLines(t *testing.T) {
	src := "\n# just a comment\nhalt ; trailing comment\n"
	words, sentinel, errs := Assemble(src)
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	if sentinel[0] || sentinel[1] {
		t.Errorf("blank/comment lines should not be sentinel")
	}
	if !sentinel[2] || words[2] != isa.Word(isa.OpHalt<<12) {
		t.Errorf("halt line mismatch: sentinel=%v word=%#04x", sentinel[2], words[2])
	}
}

func TestAssembleRegisterOutOfRange(t *testing.T) {
	_, _, errs := Assemble("add r9, r1, r2\n")
	if len(errs) != 1 {
		t.Fatalf("expected 1 error, got %d", len(errs))
	}
}

func TestAssembleHexAndBinaryImmediates(t *testing.T) {
	words, _ := mustAssemble(t, "addi r1, r1, 0x0F\naddi r2, r2, 0b101")
	if got := int16(isa.SignExtend6(isa.Imm6(words[0]))); got != 0x0F {
		t.Errorf("hex immediate = %d, want 15", got)
	}
	if got := int16(isa.SignExtend6(isa.Imm6(words[1]))); got != 5 {
		t.Errorf("binary immediate = %d, want 5", got)
	}
}

func TestListingProducesOneRowPerLine(t *testing.T) {
	rows, errs := Listing("halt\n\nnop\n")
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	// The trailing newline ends an empty fourth line.
	if len(rows) != 4 {
		t.Fatalf("expected 4 rows, got %d", len(rows))
	}
	if rows[0].PC != 0 || rows[0].Asm != "halt" {
		t.Errorf("row 0 mismatch: %+v", rows[0])
	}
	if rows[1].HasWord {
		t.Errorf("blank line should have no word")
	}
	if rows[2].PC != 1 {
		t.Errorf("nop should land at pc 1, got %d", rows[2].PC)
	}
}
