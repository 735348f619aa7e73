package isa

import "testing"

func TestSignExtend6(t *testing.T) {
	cases := []struct {
		in   uint16
		want uint16
	}{
		{0x00, 0x0000},
		{0x1F, 0x001F},
		{0x20, 0xFFE0}, // -32
		{0x3F, 0xFFFF}, // -1
	}
	for _, c := range cases {
		if got := SignExtend6(c.in); got != c.want {
			t.Errorf("SignExtend6(%#x) = %#x, want %#x", c.in, got, c.want)
		}
	}
}

func TestSignExtend12(t *testing.T) {
	cases := []struct {
		in   uint16
		want uint16
	}{
		{0x000, 0x0000},
		{0x7FF, 0x07FF},
		{0x800, 0xF800}, // -2048
		{0xFFF, 0xFFFF}, // -1
	}
	for _, c := range cases {
		if got := SignExtend12(c.in); got != c.want {
			t.Errorf("SignExtend12(%#x) = %#x, want %#x", c.in, got, c.want)
		}
	}
}

func TestControlForUnknownOpcodeIsBubble(t *testing.T) {
	if got := ControlFor(0xA); got != 0 {
		t.Errorf("ControlFor(unknown) = %#x, want 0", got)
	}
	if got := ControlFor(0xF); got != 0 {
		t.Errorf("ControlFor(unknown) = %#x, want 0", got)
	}
}

func TestControlForKnownOpcodes(t *testing.T) {
	rtype := ControlFor(OpRType)
	if !rtype.RegDst() || !rtype.RegWrite() {
		t.Errorf("R-type control %#b missing RegDst/RegWrite", rtype)
	}
	if rtype.ALUSrc() || rtype.MemRead() || rtype.MemWrite() || rtype.Branch() || rtype.Jump() {
		t.Errorf("R-type control %#b has unexpected bits set", rtype)
	}

	lw := ControlFor(OpLw)
	if !lw.ALUSrc() || !lw.MemToReg() || !lw.RegWrite() || !lw.MemRead() {
		t.Errorf("lw control %#b missing expected bits", lw)
	}

	sw := ControlFor(OpSw)
	if !sw.ALUSrc() || !sw.MemWrite() || sw.RegWrite() {
		t.Errorf("sw control %#b wrong", sw)
	}

	jal := ControlFor(OpJal)
	if !jal.Jump() || !jal.RegWrite() {
		t.Errorf("jal control %#b missing Jump/RegWrite", jal)
	}

	jr := ControlFor(OpJr)
	if !jr.Jump() || !jr.ALUSrc() || jr.RegWrite() {
		t.Errorf("jr control %#b wrong", jr)
	}
}

func TestFieldExtraction(t *testing.T) {
	// add r3, r1, r2 -> opcode=0 rs=1 rt=2 rd=3 func=ADD(0)
	w := Word(OpRType<<12 | 1<<9 | 2<<6 | 3<<3 | FuncAdd)
	if Opcode(w) != OpRType || Rs(w) != 1 || Rt(w) != 2 || Rd(w) != 3 || Func(w) != FuncAdd {
		t.Errorf("field extraction mismatch on %#04x", w)
	}
}

func TestAsSigned16(t *testing.T) {
	if AsSigned16(0xFFFF) != -1 {
		t.Errorf("AsSigned16(0xFFFF) = %d, want -1", AsSigned16(0xFFFF))
	}
	if AsSigned16(0x8000) != -32768 {
		t.Errorf("AsSigned16(0x8000) = %d, want -32768", AsSigned16(0x8000))
	}
}
