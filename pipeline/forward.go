/*
 * p16sim - EX-stage operand forwarding.
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

package pipeline

// ForwardCode names where an ALU operand should come from.
type ForwardCode int

const (
	FwdNone ForwardCode = iota
	FwdEX
	FwdMEM
)

// SelectForward computes the EX-stage bypass muxes for both ALU operands.
// EX/MEM (the more recently produced value) is checked before MEM/WB, so a
// back-to-back dependency chain always forwards the freshest result;
// register 0 never forwards since it is hardwired to zero.
func SelectForward(idExRs, idExRt int, exMemRegWrite bool, exMemDest int, memWbRegWrite bool, memWbDest int) (fwdA, fwdB ForwardCode) {
	fwdA = selectOne(idExRs, exMemRegWrite, exMemDest, memWbRegWrite, memWbDest)
	fwdB = selectOne(idExRt, exMemRegWrite, exMemDest, memWbRegWrite, memWbDest)
	return fwdA, fwdB
}

func selectOne(src int, exMemRegWrite bool, exMemDest int, memWbRegWrite bool, memWbDest int) ForwardCode {
	switch {
	case exMemRegWrite && exMemDest != 0 && exMemDest == src:
		return FwdEX
	case memWbRegWrite && memWbDest != 0 && memWbDest == src:
		return FwdMEM
	default:
		return FwdNone
	}
}
