/*
 * p16sim - Convert 16-bit words to hex/binary strings.
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

// Package hexfmt renders 16-bit words as hex and binary text, the shape the
// REPL's regs/mem commands and the assembler's listing both need.
package hexfmt

import "strings"

var hexMap = "0123456789ABCDEF"

// Word formats v as 4 upper-case hex digits.
func Word(v uint16) string {
	var b strings.Builder
	shift := 12
	for range 4 {
		b.WriteByte(hexMap[(v>>shift)&0xf])
		shift -= 4
	}
	return b.String()
}

// Binary16 formats v as 16 '0'/'1' characters, MSB first.
func Binary16(v uint16) string {
	var b strings.Builder
	for shift := 15; shift >= 0; shift-- {
		if (v>>shift)&1 == 1 {
			b.WriteByte('1')
		} else {
			b.WriteByte('0')
		}
	}
	return b.String()
}
