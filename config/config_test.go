package config

import (
	"strings"
	"testing"
)

type fakeCore struct {
	regs  map[int]uint16
	mem   map[uint16]uint16
	bps   []uint16
}

func newFakeCore() *fakeCore {
	return &fakeCore{regs: map[int]uint16{}, mem: map[uint16]uint16{}}
}

func (f *fakeCore) SetReg(r int, value uint16)       { f.regs[r] = value }
func (f *fakeCore) SetDataMem(addr uint16, value uint16) { f.mem[addr] = value }
func (f *fakeCore) SetBreakpoint(addr uint16)        { f.bps = append(f.bps, addr) }

func TestParseValidDirectives(t *testing.T) {
	src := "# seed registers\n" +
		"reg r1 5\n" +
		"mem 0x10 0b101\n" +
		"break 20\n" +
		"log out.log\n"
	directives, errs := Parse(strings.NewReader(src))
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	if len(directives) != 4 {
		t.Fatalf("got %d directives, want 4", len(directives))
	}

	core := newFakeCore()
	logPath := Apply(core, directives)
	if core.regs[1] != 5 {
		t.Errorf("r1 = %d, want 5", core.regs[1])
	}
	if core.mem[0x10] != 5 {
		t.Errorf("mem[0x10] = %d, want 5", core.mem[0x10])
	}
	if len(core.bps) != 1 || core.bps[0] != 20 {
		t.Errorf("breakpoints = %v, want [20]", core.bps)
	}
	if logPath != "out.log" {
		t.Errorf("logPath = %q, want out.log", logPath)
	}
}

func TestParseCollectsErrorsAndContinues(t *testing.T) {
	src := "reg r9 5\n" +
		"reg r2 3\n" +
		"bogus directive\n"
	directives, errs := Parse(strings.NewReader(src))
	if len(errs) != 2 {
		t.Fatalf("got %d errors, want 2: %v", len(errs), errs)
	}
	if len(directives) != 1 || directives[0].Reg != 2 {
		t.Fatalf("expected the valid reg r2 directive to survive, got %v", directives)
	}
}

func TestParseBlankAndCommentOnlyLines(t *testing.T) {
	src := "\n   \n# just a comment\n"
	directives, errs := Parse(strings.NewReader(src))
	if len(directives) != 0 || len(errs) != 0 {
		t.Errorf("expected no directives or errors, got %v %v", directives, errs)
	}
}
