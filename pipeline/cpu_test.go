package pipeline

import (
	"testing"

	"p16sim/assembler"
	"p16sim/isa"
)

func loadSource(t *testing.T, src string) *CPU {
	t.Helper()
	words, sentinel, errs := assembler.Assemble(src)
	if len(errs) != 0 {
		t.Fatalf("unexpected assembly errors: %v", errs)
	}
	c := New()
	c.LoadProgram(assembler.Compact(words, sentinel))
	return c
}

func runN(c *CPU, n int) {
	for i := 0; i < n; i++ {
		c.Step()
	}
}

func TestScenario1BasicAdd(t *testing.T) {
	c := loadSource(t, "addi r1, r0, 5\naddi r2, r0, 3\nadd r3, r1, r2\nhalt\n")
	runN(c, 15)
	regs := c.Regs()
	if regs[1] != 5 || regs[2] != 3 || regs[3] != 8 {
		t.Errorf("regs = %v, want r1=5 r2=3 r3=8", regs)
	}
}

func TestScenario2LoadStore(t *testing.T) {
	c := loadSource(t, "addi r1, r0, 10\nsw r1, 0(r0)\nlw r2, 0(r0)\n")
	runN(c, 10)
	mem := c.DataMem()
	regs := c.Regs()
	if mem[0] != 10 || regs[2] != 10 {
		t.Errorf("mem[0]=%d r2=%d, want 10, 10", mem[0], regs[2])
	}
}

func TestScenario3ForwardingChain(t *testing.T) {
	c := loadSource(t, "addi r1, r0, 5\nadd r2, r1, r1\nadd r3, r2, r2\n")
	sawStall := false
	for i := 0; i < 15; i++ {
		c.Step()
		if c.State().Stall {
			sawStall = true
		}
	}
	regs := c.Regs()
	if regs[1] != 5 || regs[2] != 10 || regs[3] != 20 {
		t.Errorf("regs = %v, want r1=5 r2=10 r3=20", regs)
	}
	if sawStall {
		t.Errorf("forwarding chain should never stall")
	}
}

func TestScenario4LoadUseStall(t *testing.T) {
	c := loadSource(t, "lw r1, 0(r0)\nadd r2, r1, r1\n")
	c.dataMem[0] = 7
	sawStall := false
	for i := 0; i < 15; i++ {
		c.Step()
		if c.State().Stall {
			sawStall = true
		}
	}
	if !sawStall {
		t.Errorf("expected at least one stall cycle")
	}
	if got := c.Regs()[2]; got != 14 {
		t.Errorf("r2 = %d, want 14", got)
	}
}

func TestScenario5TakenBranchSkipsTwo(t *testing.T) {
	src := "addi r1, r0, 5\n" +
		"addi r2, r0, 5\n" +
		"beq r1, r2, 3\n" +
		"addi r3, r0, 1\n" +
		"addi r4, r0, 2\n" +
		"addi r5, r0, 3\n"
	c := loadSource(t, src)
	runN(c, 20)
	regs := c.Regs()
	if regs[3] != 0 || regs[4] != 0 || regs[5] != 3 {
		t.Errorf("regs = %v, want r3=0 r4=0 r5=3", regs)
	}
}

func TestScenario6JumpWithLabel(t *testing.T) {
	src := "addi r1, r0, 1\n" +
		"j skip\n" +
		"addi r2, r0, 2\n" +
		"addi r3, r0, 3\n" +
		"skip:\n" +
		"addi r4, r0, 4\n"
	c := loadSource(t, src)
	runN(c, 20)
	regs := c.Regs()
	if regs[1] != 1 || regs[2] != 0 || regs[3] != 0 || regs[4] != 4 {
		t.Errorf("regs = %v, want r1=1 r2=0 r3=0 r4=4", regs)
	}
}

func TestScenario7DivByZero(t *testing.T) {
	c := loadSource(t, "addi r1, r0, 10\naddi r2, r0, 0\ndiv r3, r1, r2\n")
	runN(c, 15)
	if got := c.Regs()[3]; got != 0 {
		t.Errorf("r3 = %d, want 0", got)
	}
}

func TestRegisterZeroAlwaysZero(t *testing.T) {
	c := loadSource(t, "addi r0, r0, 5\nadd r0, r0, r0\nhalt\n")
	runN(c, 10)
	if got := c.Regs()[0]; got != 0 {
		t.Errorf("r0 = %d, want 0", got)
	}
}

func TestDeterminismAcrossIndependentInstances(t *testing.T) {
	src := "addi r1, r0, 5\naddi r2, r0, 3\nadd r3, r1, r2\nsw r3, 0(r0)\nlw r4, 0(r0)\nhalt\n"
	a := loadSource(t, src)
	b := loadSource(t, src)
	runN(a, 12)
	runN(b, 12)
	if a.State() != b.State() {
		// StateSnapshot contains only comparable fields, so a plain
		// equality check is valid here.
		t.Errorf("two independently stepped instances diverged")
	}
}

func TestHaltChecksBeforeStepping(t *testing.T) {
	c := loadSource(t, "halt\naddi r1, r0, 9\n")
	c.Step()
	if c.Running() {
		t.Errorf("core should not be running after fetching HALT")
	}
	if got := c.Regs()[1]; got != 0 {
		t.Errorf("no instruction should have retired, r1 = %d", got)
	}
}

func TestJALWritesLinkRegister(t *testing.T) {
	src := "jal target\n" +
		"addi r1, r0, 9\n" +
		"target:\n" +
		"halt\n"
	c := loadSource(t, src)
	runN(c, 10)
	if got := c.Regs()[7]; got != 1 {
		t.Errorf("r7 (link) = %d, want 1 (PC of jal + 1)", got)
	}
}

func TestLoadStoreNegativeOffsetWraps(t *testing.T) {
	// imm6 = -1 -> effective address (0 + -1) & 0xFF = 0xFF
	c := New()
	words := []isa.Word{
		isa.Word(isa.OpAddi<<12 | 0<<9 | 1<<6 | 7), // addi r1, r0, 7
		isa.Word(isa.OpSw<<12 | 0<<9 | 1<<6 | 0x3F), // sw r1, -1(r0)
	}
	c.LoadProgram(words)
	runN(c, 10)
	mem := c.DataMem()
	if mem[0xFF] != 7 {
		t.Errorf("data_mem[0xFF] = %d, want 7 (negative offset wraparound)", mem[0xFF])
	}
}
