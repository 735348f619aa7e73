/*
 * p16sim - combinational ALU for the 16-bit pipelined core.
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

// Package alu implements the single combinational ALU shared by the EX
// stage: arithmetic, bitwise, and compare operations over 16-bit operands.
package alu

import "p16sim/isa"

// Compute performs the operation named by ctrl (an R-type func code) on a
// and b, returning the 16-bit result and whether that result is zero.
// Unknown ctrl values produce (0, true), matching a disabled ALU output.
func Compute(a, b uint16, ctrl uint16) (result uint16, zero bool) {
	switch ctrl {
	case isa.FuncAdd:
		result = isa.Truncate16(int32(isa.AsSigned16(a)) + int32(isa.AsSigned16(b)))
	case isa.FuncSub:
		result = isa.Truncate16(int32(isa.AsSigned16(a)) - int32(isa.AsSigned16(b)))
	case isa.FuncAnd:
		result = a & b
	case isa.FuncOr:
		result = a | b
	case isa.FuncXor:
		result = a ^ b
	case isa.FuncSlt:
		if isa.AsSigned16(a) < isa.AsSigned16(b) {
			result = 1
		} else {
			result = 0
		}
	case isa.FuncDiv:
		result = divide(a, b)
	default:
		return 0, true
	}
	return result, result == 0
}

// divide implements signed truncating-toward-zero division. Division by
// zero returns 0 rather than faulting; INT16_MIN / -1 wraps back to
// INT16_MIN, the same two's-complement wraparound a real ALU exhibits.
func divide(a, b uint16) uint16 {
	sa, sb := isa.AsSigned16(a), isa.AsSigned16(b)
	if sb == 0 {
		return 0
	}
	return uint16(sa / sb)
}
