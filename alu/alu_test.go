package alu

import (
	"testing"

	"p16sim/isa"
)

func u16(v int32) uint16 { return isa.Truncate16(v) }

func TestComputeArithmetic(t *testing.T) {
	cases := []struct {
		name     string
		a, b     uint16
		ctrl     uint16
		want     uint16
		wantZero bool
	}{
		{"add", 3, 4, isa.FuncAdd, 7, false},
		{"add to zero", 5, u16(-5), isa.FuncAdd, 0, true},
		{"sub", 10, 4, isa.FuncSub, 6, false},
		{"and", 0xF0, 0x0F, isa.FuncAnd, 0, true},
		{"or", 0xF0, 0x0F, isa.FuncOr, 0xFF, false},
		{"xor", 0xFF, 0xFF, isa.FuncXor, 0, true},
		{"slt true", u16(-1), 1, isa.FuncSlt, 1, false},
		{"slt false", 1, u16(-1), isa.FuncSlt, 0, true},
		{"div", 10, 3, isa.FuncDiv, 3, false},
		{"div truncates toward zero", u16(-7), 2, isa.FuncDiv, u16(-3), false},
		{"div by zero", 42, 0, isa.FuncDiv, 0, true},
		{"unknown ctrl", 1, 2, 7, 0, true},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got, zero := Compute(c.a, c.b, c.ctrl)
			if got != c.want || zero != c.wantZero {
				t.Errorf("Compute(%#x, %#x, %d) = (%#x, %v), want (%#x, %v)",
					c.a, c.b, c.ctrl, got, zero, c.want, c.wantZero)
			}
		})
	}
}

func TestComputeDivMinIntByNegOne(t *testing.T) {
	got, _ := Compute(0x8000, u16(-1), isa.FuncDiv)
	if got != 0x8000 {
		t.Errorf("INT16_MIN / -1 = %#x, want 0x8000 (wraparound)", got)
	}
}
