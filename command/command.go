/*
 * p16sim - Command interface
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

// Package command dispatches REPL verbs against a pipeline core: step,
// run, reset, load, break, regs, mem, dis, quit.
package command

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"unicode"

	"p16sim/assembler"
	"p16sim/disassembler"
	"p16sim/pipeline"
	"p16sim/util/hexfmt"
)

type cmdLine struct {
	line string
	pos  int
}

func (l *cmdLine) skipSpace() {
	for l.pos < len(l.line) && unicode.IsSpace(rune(l.line[l.pos])) {
		l.pos++
	}
}

func (l *cmdLine) isEOL() bool { return l.pos >= len(l.line) }

func (l *cmdLine) getWord() string {
	l.skipSpace()
	start := l.pos
	for l.pos < len(l.line) && !unicode.IsSpace(rune(l.line[l.pos])) {
		l.pos++
	}
	return l.line[start:l.pos]
}

func (l *cmdLine) rest() string {
	l.skipSpace()
	return l.line[l.pos:]
}

type cmd struct {
	name    string
	min     int
	process func(*cmdLine, *pipeline.CPU, *Console) error
}

var cmdList = []cmd{
	{name: "step", min: 1, process: step},
	{name: "run", min: 1, process: run},
	{name: "reset", min: 2, process: doReset},
	{name: "load", min: 1, process: load},
	{name: "break", min: 2, process: setBreak},
	{name: "regs", min: 1, process: regs},
	{name: "mem", min: 2, process: mem},
	{name: "dis", min: 2, process: dis},
	{name: "quit", min: 1, process: quit},
}

// Console holds the REPL's output stream and quit flag, grouped so
// ProcessCommand's verbs can share them without a global.
type Console struct {
	Out  *os.File
	Quit bool
}

// ProcessCommand parses and runs one command line against core.
func ProcessCommand(commandLine string, core *pipeline.CPU, console *Console) error {
	line := &cmdLine{line: commandLine}
	name := strings.ToLower(line.getWord())
	if name == "" {
		return nil
	}

	match := matchCommand(name)
	if len(match) == 0 {
		return errors.New("command not found: " + name)
	}
	if len(match) > 1 {
		return errors.New("ambiguous command: " + name)
	}
	return match[0].process(line, core, console)
}

func matchCommand(name string) []cmd {
	var match []cmd
	for _, c := range cmdList {
		if len(name) >= c.min && len(name) <= len(c.name) && c.name[:len(name)] == name {
			match = append(match, c)
		}
	}
	return match
}

func step(l *cmdLine, core *pipeline.CPU, console *Console) error {
	n := 1
	if word := l.getWord(); word != "" {
		v, err := strconv.Atoi(word)
		if err != nil {
			return errors.New("invalid step count: " + word)
		}
		n = v
	}
	for i := 0; i < n && core.Running(); i++ {
		core.Step()
	}
	fmt.Fprintf(console.Out, "cycle %d pc %s\n", core.Cycle(), hexfmt.Word(core.PC()))
	return nil
}

func run(_ *cmdLine, core *pipeline.CPU, console *Console) error {
	for core.Running() {
		core.Step()
		if core.Hit(core.PC()) {
			fmt.Fprintf(console.Out, "breakpoint hit at %s\n", hexfmt.Word(core.PC()))
			return nil
		}
	}
	fmt.Fprintln(console.Out, "halted")
	return nil
}

func doReset(_ *cmdLine, core *pipeline.CPU, console *Console) error {
	core.Reset()
	fmt.Fprintln(console.Out, "reset")
	return nil
}

func load(l *cmdLine, core *pipeline.CPU, console *Console) error {
	path := l.rest()
	if path == "" {
		return errors.New("load requires a file path")
	}
	src, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	words, sentinel, errs := assembler.Assemble(string(src))
	if len(errs) != 0 {
		for _, e := range errs {
			fmt.Fprintln(console.Out, e.Error())
		}
		return errors.New("assembly failed")
	}
	core.Reset()
	core.LoadProgram(assembler.Compact(words, sentinel))
	fmt.Fprintf(console.Out, "loaded %s\n", path)
	return nil
}

func setBreak(l *cmdLine, core *pipeline.CPU, console *Console) error {
	addr, err := parseAddr(l.getWord())
	if err != nil {
		return err
	}
	core.SetBreakpoint(addr)
	fmt.Fprintf(console.Out, "breakpoint set at %s\n", hexfmt.Word(addr))
	return nil
}

func regs(_ *cmdLine, core *pipeline.CPU, console *Console) error {
	r := core.Regs()
	for i, v := range r {
		fmt.Fprintf(console.Out, "r%d = %s (%s)\n", i, hexfmt.Word(v), hexfmt.Binary16(v))
	}
	return nil
}

func mem(l *cmdLine, core *pipeline.CPU, console *Console) error {
	addr, err := parseAddr(l.getWord())
	if err != nil {
		return err
	}
	addr &= 0xFF
	v := core.DataMem()[addr]
	fmt.Fprintf(console.Out, "mem[%s] = %s (%s)\n", hexfmt.Word(addr), hexfmt.Word(v), hexfmt.Binary16(v))
	return nil
}

func dis(l *cmdLine, core *pipeline.CPU, console *Console) error {
	addr := core.PC()
	if word := l.getWord(); word != "" {
		a, err := parseAddr(word)
		if err != nil {
			return err
		}
		addr = a
	}
	addr &= 0xFF
	w := core.InstrMem()[addr]
	fmt.Fprintf(console.Out, "%s: %s  %s\n", hexfmt.Word(addr), hexfmt.Word(uint16(w)), disassembler.Disassemble(w))
	return nil
}

func quit(_ *cmdLine, _ *pipeline.CPU, console *Console) error {
	console.Quit = true
	return nil
}

func parseAddr(word string) (uint16, error) {
	base := 10
	switch {
	case strings.HasPrefix(word, "0x"), strings.HasPrefix(word, "0X"):
		word, base = word[2:], 16
	case strings.HasPrefix(word, "0b"), strings.HasPrefix(word, "0B"):
		word, base = word[2:], 2
	}
	v, err := strconv.ParseUint(word, base, 16)
	if err != nil {
		return 0, errors.New("invalid address: " + word)
	}
	return uint16(v), nil
}
