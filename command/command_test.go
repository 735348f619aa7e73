package command

import (
	"bytes"
	"os"
	"strings"
	"testing"

	"p16sim/assembler"
	"p16sim/isa"
	"p16sim/pipeline"
)

func newTestConsole(t *testing.T) (*Console, *os.File, func() string) {
	t.Helper()
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("pipe: %v", err)
	}
	console := &Console{Out: w}
	return console, w, func() string {
		w.Close()
		var buf bytes.Buffer
		buf.ReadFrom(r)
		return buf.String()
	}
}

func TestLoadStepRun(t *testing.T) {
	dir := t.TempDir()
	path := dir + "/prog.asm"
	if err := os.WriteFile(path, []byte("addi r1, r0, 4\naddi r2, r0, 6\nadd r3, r1, r2\nnop\nnop\nnop\nnop\nhalt\n"), 0o644); err != nil {
		t.Fatalf("write program: %v", err)
	}

	core := pipeline.New()
	console, _, drain := newTestConsole(t)

	if err := ProcessCommand("load "+path, core, console); err != nil {
		t.Fatalf("load: %v", err)
	}
	if err := ProcessCommand("run", core, console); err != nil {
		t.Fatalf("run: %v", err)
	}
	out := drain()
	if !strings.Contains(out, "halted") {
		t.Errorf("expected halted in output, got %q", out)
	}
	if got := core.Regs()[3]; got != 10 {
		t.Errorf("r3 = %d, want 10", got)
	}
}

func TestAmbiguousCommandNameIsRejected(t *testing.T) {
	core := pipeline.New()
	console, _, drain := newTestConsole(t)
	err := ProcessCommand("r", core, console)
	drain()
	if err == nil {
		t.Fatal("expected ambiguous-command error for \"r\" (regs vs run)")
	}
}

func TestQuitSetsFlag(t *testing.T) {
	core := pipeline.New()
	console, _, drain := newTestConsole(t)
	if err := ProcessCommand("quit", core, console); err != nil {
		t.Fatalf("quit: %v", err)
	}
	drain()
	if !console.Quit {
		t.Error("expected Quit to be set")
	}
}

func TestBreakpointHaltsRun(t *testing.T) {
	core := pipeline.New()
	core.LoadProgram(mustAssemble(t, "addi r1, r0, 1\naddi r2, r0, 2\naddi r3, r0, 3\nhalt\n"))
	console, _, drain := newTestConsole(t)

	if err := ProcessCommand("break 1", core, console); err != nil {
		t.Fatalf("break: %v", err)
	}
	if err := ProcessCommand("run", core, console); err != nil {
		t.Fatalf("run: %v", err)
	}
	out := drain()
	if !strings.Contains(out, "breakpoint hit") {
		t.Errorf("expected breakpoint hit in output, got %q", out)
	}
}

func mustAssemble(t *testing.T, src string) []isa.Word {
	t.Helper()
	words, sentinel, errs := assembler.Assemble(src)
	if len(errs) != 0 {
		t.Fatalf("assembly errors: %v", errs)
	}
	return assembler.Compact(words, sentinel)
}
