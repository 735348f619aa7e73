/*
 * p16sim - assembler listing output.
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

package assembler

import (
	"fmt"
	"strings"

	"p16sim/disassembler"
	"p16sim/isa"
	"p16sim/util/hexfmt"
)

// ListingRow is one row of the assembler's machine-code presentation table:
// the source line, the address it landed at (if any), and its encoding
// shown in hex, binary, and disassembled form.
type ListingRow struct {
	Line    int
	PC      int
	Hex     string
	Binary  string
	Value   isa.Word
	Asm     string
	HasWord bool
}

// Listing assembles source and renders one row per input line, sentinel
// rows included, so a caller can show exactly why a line produced no word.
func Listing(source string) ([]ListingRow, []Error) {
	words, sentinel, errs := Assemble(source)
	lines := strings.Split(source, "\n")

	rows := make([]ListingRow, len(lines))
	pc := 0
	for i := range lines {
		row := ListingRow{Line: i + 1}
		if sentinel[i] {
			row.HasWord = true
			row.PC = pc
			row.Value = words[i]
			row.Hex = hexfmt.Word(uint16(words[i]))
			row.Binary = fmt.Sprintf("%016b", words[i])
			row.Asm = disassembler.Disassemble(words[i])
			pc++
		}
		rows[i] = row
	}
	return rows, errs
}
