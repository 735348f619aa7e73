/*
 * p16sim - Session configuration file parser
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

// Package config loads a session file that seeds a core's registers, data
// memory, breakpoints and log path before the first step.
package config

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Error is one malformed directive. A bad line is reported, never fatal -
// the rest of the file still loads.
type Error struct {
	Line       int
	Message    string
	SourceText string
}

func (e Error) Error() string {
	return fmt.Sprintf("line %d: %s: %q", e.Line, e.Message, e.SourceText)
}

// Directive is one parsed, not-yet-applied config line.
type Directive struct {
	Line int
	Kind string // "reg", "mem", "break", or "log"
	Reg  int
	Addr uint16
	Value uint16
	Path string
}

// Parse reads a config file's text and returns every directive it could
// parse, plus one Error per malformed line. Parsing never stops early.
func Parse(source io.Reader) ([]Directive, []Error) {
	var directives []Directive
	var errs []Error

	scanner := bufio.NewScanner(source)
	lineNumber := 0
	for scanner.Scan() {
		lineNumber++
		raw := scanner.Text()
		text := stripComment(raw)
		fields := strings.Fields(text)
		if len(fields) == 0 {
			continue
		}

		d, err := parseDirective(fields)
		if err != "" {
			errs = append(errs, Error{Line: lineNumber, Message: err, SourceText: strings.TrimSpace(raw)})
			continue
		}
		d.Line = lineNumber
		directives = append(directives, d)
	}
	return directives, errs
}

func stripComment(line string) string {
	if i := strings.IndexByte(line, '#'); i >= 0 {
		return line[:i]
	}
	return line
}

func parseDirective(fields []string) (Directive, string) {
	switch strings.ToLower(fields[0]) {
	case "reg":
		if len(fields) != 3 {
			return Directive{}, "reg requires <r0-r7> <value>"
		}
		reg, ok := parseRegName(fields[1])
		if !ok {
			return Directive{}, "invalid register name: " + fields[1]
		}
		value, ok := parseUint16(fields[2])
		if !ok {
			return Directive{}, "invalid register value: " + fields[2]
		}
		return Directive{Kind: "reg", Reg: reg, Value: value}, ""

	case "mem":
		if len(fields) != 3 {
			return Directive{}, "mem requires <addr> <value>"
		}
		addr, ok := parseUint16(fields[1])
		if !ok {
			return Directive{}, "invalid memory address: " + fields[1]
		}
		value, ok := parseUint16(fields[2])
		if !ok {
			return Directive{}, "invalid memory value: " + fields[2]
		}
		return Directive{Kind: "mem", Addr: addr, Value: value}, ""

	case "break":
		if len(fields) != 2 {
			return Directive{}, "break requires <addr>"
		}
		addr, ok := parseUint16(fields[1])
		if !ok {
			return Directive{}, "invalid breakpoint address: " + fields[1]
		}
		return Directive{Kind: "break", Addr: addr}, ""

	case "log":
		if len(fields) != 2 {
			return Directive{}, "log requires <path>"
		}
		return Directive{Kind: "log", Path: fields[1]}, ""
	}
	return Directive{}, "unknown directive: " + fields[0]
}

// Core is the subset of pipeline.CPU's surface a config file can seed.
type Core interface {
	SetReg(r int, value uint16)
	SetDataMem(addr uint16, value uint16)
	SetBreakpoint(addr uint16)
}

// Apply seeds a core from parsed directives, returning the log path from
// the last "log" directive, if any.
func Apply(core Core, directives []Directive) string {
	logPath := ""
	for _, d := range directives {
		switch d.Kind {
		case "reg":
			core.SetReg(d.Reg, d.Value)
		case "mem":
			core.SetDataMem(d.Addr, d.Value)
		case "break":
			core.SetBreakpoint(d.Addr)
		case "log":
			logPath = d.Path
		}
	}
	return logPath
}

func parseRegName(s string) (int, bool) {
	s = strings.ToLower(s)
	if len(s) != 2 || s[0] != 'r' {
		return 0, false
	}
	n := int(s[1] - '0')
	if n < 0 || n > 7 {
		return 0, false
	}
	return n, true
}

func parseUint16(s string) (uint16, bool) {
	base := 10
	switch {
	case strings.HasPrefix(s, "0x") || strings.HasPrefix(s, "0X"):
		s, base = s[2:], 16
	case strings.HasPrefix(s, "0b") || strings.HasPrefix(s, "0B"):
		s, base = s[2:], 2
	}
	v, err := strconv.ParseUint(s, base, 16)
	if err != nil {
		return 0, false
	}
	return uint16(v), true
}
