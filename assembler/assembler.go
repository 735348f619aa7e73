/*
 * p16sim - two-pass assembler for the 16-bit pipelined core.
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

// Package assembler turns assembly text into machine words with a classic
// two-pass design: the first pass records label addresses, the second
// encodes instructions and resolves label references against them. Output
// preserves a 1:1 mapping to input lines so a caller can report errors
// against the exact source line that produced them.
package assembler

import (
	"fmt"
	"strconv"
	"strings"

	"p16sim/isa"
)

// Error describes one line that failed to assemble.
type Error struct {
	Line       int
	Message    string
	SourceText string
}

func (e Error) Error() string {
	return fmt.Sprintf("line %d: %s", e.Line, e.Message)
}

var rTypeFuncs = map[string]uint16{
	"add": isa.FuncAdd,
	"sub": isa.FuncSub,
	"and": isa.FuncAnd,
	"or":  isa.FuncOr,
	"xor": isa.FuncXor,
	"slt": isa.FuncSlt,
	"div": isa.FuncDiv,
}

var validMnemonics = map[string]bool{
	"add": true, "sub": true, "and": true, "or": true, "xor": true, "slt": true, "div": true,
	"addi": true, "lw": true, "ld": true, "sw": true, "st": true,
	"beq": true, "bne": true, "j": true, "jal": true, "jr": true, "nop": true, "halt": true,
}

// Assemble assembles source into one slot per newline-separated input
// line, with sentinel[i] true wherever words[i] holds a real instruction
// (blank lines, label-only lines, and error lines are false with a zero
// word). Assembly never aborts early: every line is attempted and every
// error is collected against its source line.
func Assemble(source string) ([]isa.Word, []bool, []Error) {
	lines := strings.Split(source, "\n")

	labels := collectLabels(lines)

	words := make([]isa.Word, len(lines))
	sentinel := make([]bool, len(lines))
	var errs []Error

	pc := 0
	for i, original := range lines {
		line := stripComment(original)
		if line == "" {
			continue
		}

		if label, rest, hasLabel := splitLabel(line); hasLabel {
			_ = label
			if rest == "" {
				continue
			}
			line = rest
		}

		word, err := assembleLine(line, labels, pc)
		if err != nil {
			errs = append(errs, Error{Line: i + 1, Message: err.Error(), SourceText: strings.TrimRight(original, "\r")})
			continue
		}
		words[i] = word
		sentinel[i] = true
		pc++
	}

	return words, sentinel, errs
}

// Compact drops every sentinel (non-instruction) slot, returning the bare
// instruction stream a CPU's LoadProgram expects.
func Compact(words []isa.Word, sentinel []bool) []isa.Word {
	out := make([]isa.Word, 0, len(words))
	for i, ok := range sentinel {
		if ok {
			out = append(out, words[i])
		}
	}
	return out
}

// collectLabels runs the first pass: records each label's instruction
// address without emitting any machine code.
func collectLabels(lines []string) map[string]int {
	labels := make(map[string]int)
	pc := 0
	for _, original := range lines {
		line := stripComment(original)
		if line == "" {
			continue
		}
		if label, rest, hasLabel := splitLabel(line); hasLabel {
			if label != "" {
				labels[strings.ToLower(label)] = pc
			}
			if rest == "" {
				continue
			}
			line = rest
		}
		if isInstructionLine(line) {
			pc++
		}
	}
	return labels
}

func stripComment(line string) string {
	if i := strings.IndexAny(line, "#;"); i >= 0 {
		line = line[:i]
	}
	return strings.TrimSpace(line)
}

// splitLabel splits "label: rest" into (label, rest, true), or returns
// ("", line, false) when the line carries no label.
func splitLabel(line string) (label, rest string, hasLabel bool) {
	i := strings.Index(line, ":")
	if i < 0 {
		return "", line, false
	}
	return strings.TrimSpace(line[:i]), strings.TrimSpace(line[i+1:]), true
}

func isInstructionLine(line string) bool {
	if line == "" {
		return false
	}
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return false
	}
	return validMnemonics[strings.ToLower(fields[0])]
}

func assembleLine(line string, labels map[string]int, pc int) (isa.Word, error) {
	line = strings.Join(strings.Fields(line), " ")
	parts := strings.SplitN(line, " ", 2)
	mnemonic := strings.ToLower(parts[0])
	operandStr := ""
	if len(parts) > 1 {
		operandStr = parts[1]
	}

	switch mnemonic {
	case "ld":
		mnemonic = "lw"
	case "st":
		mnemonic = "sw"
	}

	_, isRType := rTypeFuncs[mnemonic]
	switch {
	case isRType:
		return assembleRType(mnemonic, operandStr)
	case mnemonic == "addi":
		return assembleAddi(operandStr)
	case mnemonic == "lw":
		return assembleLoadStore(isa.OpLw, operandStr)
	case mnemonic == "sw":
		return assembleLoadStore(isa.OpSw, operandStr)
	case mnemonic == "beq":
		return assembleBranch(isa.OpBeq, operandStr, labels, pc)
	case mnemonic == "bne":
		return assembleBranch(isa.OpBne, operandStr, labels, pc)
	case mnemonic == "halt":
		if operandStr != "" {
			return 0, fmt.Errorf("halt takes no operands, got: %s", operandStr)
		}
		return isa.Word(isa.OpHalt << 12), nil
	case mnemonic == "j":
		return assembleJump(isa.OpJ, operandStr, labels, pc)
	case mnemonic == "jal":
		return assembleJump(isa.OpJal, operandStr, labels, pc)
	case mnemonic == "jr":
		ops, err := parseOperands(operandStr, 1, "jr rs", false)
		if err != nil {
			return 0, err
		}
		rs, err := parseReg(ops[0])
		if err != nil {
			return 0, err
		}
		return isa.Word(isa.OpJr<<12 | rs<<9), nil
	case mnemonic == "nop":
		if operandStr != "" {
			return 0, fmt.Errorf("nop takes no operands, got: %s", operandStr)
		}
		return 0, nil
	default:
		return 0, fmt.Errorf("unknown instruction: %q. Valid instructions: add, sub, and, or, xor, slt, div, addi, lw, ld, sw, st, beq, bne, j, jal, jr, nop, halt", mnemonic)
	}
}

func assembleRType(mnemonic, operandStr string) (isa.Word, error) {
	funcCode, ok := rTypeFuncs[mnemonic]
	if !ok {
		return 0, fmt.Errorf("unknown instruction: %q", mnemonic)
	}
	ops, err := parseOperands(operandStr, 3, fmt.Sprintf("%s rd, rs, rt", mnemonic), false)
	if err != nil {
		return 0, err
	}
	rd, err := parseReg(ops[0])
	if err != nil {
		return 0, err
	}
	rs, err := parseReg(ops[1])
	if err != nil {
		return 0, err
	}
	rt, err := parseReg(ops[2])
	if err != nil {
		return 0, err
	}
	return isa.Word(isa.OpRType<<12 | rs<<9 | rt<<6 | rd<<3 | int(funcCode)), nil
}

func assembleAddi(operandStr string) (isa.Word, error) {
	ops, err := parseOperands(operandStr, 3, "addi rt, rs, imm6", false)
	if err != nil {
		return 0, err
	}
	rt, err := parseReg(ops[0])
	if err != nil {
		return 0, err
	}
	rs, err := parseReg(ops[1])
	if err != nil {
		return 0, err
	}
	imm, err := parseImmSigned(ops[2], 6)
	if err != nil {
		return 0, err
	}
	return isa.Word(isa.OpAddi<<12 | rs<<9 | rt<<6 | int(imm&0x3F)), nil
}

func assembleLoadStore(opcode uint16, operandStr string) (isa.Word, error) {
	format := "lw rt, imm6(rs)"
	if opcode == isa.OpSw {
		format = "sw rt, imm6(rs)"
	}
	ops, err := parseOperands(operandStr, 2, format, true)
	if err != nil {
		return 0, err
	}
	rt, err := parseReg(ops[0])
	if err != nil {
		return 0, err
	}
	imm, rs, err := parseMemOperand(ops[1])
	if err != nil {
		return 0, err
	}
	return isa.Word(opcode<<12 | uint16(rs)<<9 | uint16(rt)<<6 | uint16(imm&0x3F)), nil
}

func assembleBranch(opcode uint16, operandStr string, labels map[string]int, pc int) (isa.Word, error) {
	ops, err := parseOperands(operandStr, 3, "rs, rt, off6", false)
	if err != nil {
		return 0, err
	}
	rs, err := parseReg(ops[0])
	if err != nil {
		return 0, err
	}
	rt, err := parseReg(ops[1])
	if err != nil {
		return 0, err
	}
	off, err := parseBranchOperand(ops[2], labels, pc)
	if err != nil {
		return 0, err
	}
	return isa.Word(opcode<<12 | uint16(rs)<<9 | uint16(rt)<<6 | uint16(off&0x3F)), nil
}

func assembleJump(opcode uint16, operandStr string, labels map[string]int, pc int) (isa.Word, error) {
	ops, err := parseOperands(operandStr, 1, "target", false)
	if err != nil {
		return 0, err
	}
	imm, err := parseJumpOperand(ops[0], labels, pc)
	if err != nil {
		return 0, err
	}
	return isa.Word(opcode<<12 | uint16(imm&0xFFF)), nil
}

// parseOperands splits a comma-separated operand list, treating the
// contents of (...) as opaque so "4(r1)" stays a single operand.
func parseOperands(s string, want int, format string, allowParens bool) ([]string, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		if want > 0 {
			return nil, fmt.Errorf("expected %d operand(s), got none. Format: %s", want, format)
		}
		return nil, nil
	}

	var parts []string
	if allowParens {
		var cur strings.Builder
		depth := 0
		for _, r := range s {
			switch r {
			case '(':
				depth++
				cur.WriteRune(r)
			case ')':
				depth--
				cur.WriteRune(r)
			case ',':
				if depth == 0 {
					parts = append(parts, strings.TrimSpace(cur.String()))
					cur.Reset()
					continue
				}
				cur.WriteRune(r)
			default:
				cur.WriteRune(r)
			}
		}
		if strings.TrimSpace(cur.String()) != "" {
			parts = append(parts, strings.TrimSpace(cur.String()))
		}
	} else {
		for _, p := range strings.Split(s, ",") {
			if t := strings.TrimSpace(p); t != "" {
				parts = append(parts, t)
			}
		}
	}

	if len(parts) != want {
		return nil, fmt.Errorf("expected %d operand(s), got %d. Format: %s", want, len(parts), format)
	}
	return parts, nil
}

func parseMemOperand(s string) (imm int64, rs int, err error) {
	s = strings.TrimSpace(s)
	open := strings.Index(s, "(")
	shut := strings.Index(s, ")")
	if open < 0 || shut < 0 {
		return 0, 0, fmt.Errorf("memory operand must be in format imm(rs), got: %q", s)
	}
	immStr := strings.TrimSpace(s[:open])
	regStr := strings.TrimSpace(s[open+1 : shut])
	if immStr == "" {
		return 0, 0, fmt.Errorf("missing immediate value in memory operand: %q", s)
	}
	if regStr == "" {
		return 0, 0, fmt.Errorf("missing register in memory operand: %q", s)
	}
	imm, err = parseImmSigned(immStr, 6)
	if err != nil {
		return 0, 0, err
	}
	rs, err = parseReg(regStr)
	if err != nil {
		return 0, 0, err
	}
	return imm, rs, nil
}

func parseReg(s string) (int, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if !strings.HasPrefix(s, "r") {
		return 0, fmt.Errorf("invalid register format: %q. Expected r0-r7", s)
	}
	n, err := strconv.Atoi(s[1:])
	if err != nil {
		return 0, fmt.Errorf("invalid register number: %q. Expected r0-r7", s)
	}
	if n < 0 || n > 7 {
		return 0, fmt.Errorf("register out of range: %q. Valid registers: r0-r7", s)
	}
	return n, nil
}

func parseInt(s string) (int64, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	switch {
	case strings.HasPrefix(s, "-0x"):
		v, err := strconv.ParseInt(s[3:], 16, 64)
		return -v, err
	case strings.HasPrefix(s, "0x"):
		return strconv.ParseInt(s[2:], 16, 64)
	case strings.HasPrefix(s, "-0b"):
		v, err := strconv.ParseInt(s[3:], 2, 64)
		return -v, err
	case strings.HasPrefix(s, "0b"):
		return strconv.ParseInt(s[2:], 2, 64)
	default:
		return strconv.ParseInt(s, 10, 64)
	}
}

func parseImmSigned(s string, bits uint) (int64, error) {
	v, err := parseInt(s)
	if err != nil {
		return 0, fmt.Errorf("invalid immediate: %q", s)
	}
	lo := -(int64(1) << (bits - 1))
	hi := (int64(1) << (bits - 1)) - 1
	if v < lo || v > hi {
		return 0, fmt.Errorf("immediate out of range [%d, %d]: %d (from %q)", lo, hi, v, s)
	}
	return v & ((int64(1) << bits) - 1), nil
}

func looksLikeLabel(s string) bool {
	if s == "" {
		return false
	}
	c := s[0]
	if !((c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')) {
		return false
	}
	lower := strings.ToLower(s)
	return !strings.HasPrefix(lower, "0x") && !strings.HasPrefix(lower, "0b") &&
		!strings.HasPrefix(lower, "-0x") && !strings.HasPrefix(lower, "-0b")
}

func parseBranchOperand(s string, labels map[string]int, pc int) (int64, error) {
	s = strings.TrimSpace(s)
	if looksLikeLabel(s) {
		target, ok := labels[strings.ToLower(s)]
		if !ok {
			return 0, fmt.Errorf("undefined label: %q", s)
		}
		offset := int64(target) - int64(pc+1)
		if offset < -32 || offset > 31 {
			return 0, fmt.Errorf("branch offset out of range [-32, 31]: %d (from label %q)", offset, s)
		}
		return offset & 0x3F, nil
	}
	return parseImmSigned(s, 6)
}

func parseJumpOperand(s string, labels map[string]int, pc int) (int64, error) {
	s = strings.TrimSpace(s)
	if looksLikeLabel(s) {
		target, ok := labels[strings.ToLower(s)]
		if !ok {
			return 0, fmt.Errorf("undefined label: %q", s)
		}
		offset := int64(target) - int64(pc)
		if offset < -2048 || offset > 2047 {
			return 0, fmt.Errorf("jump offset out of range [-2048, 2047]: %d (from label %q)", offset, s)
		}
		return offset & 0xFFF, nil
	}
	return parseImmSigned(s, 12)
}
