/*
 * p16sim - load-use hazard detection.
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

// DetectHazard implements load-use stall detection: if the instruction
// sitting in ID/EX is a load and its destination register is one of the
// two the instruction now in IF/ID wants to read, the pipeline stalls for
// one cycle. pcWrite and ifIdWrite false freeze the PC and IF/ID latch;
// idExFlush true asks the caller to bubble the ID/EX latch on its next
// write, which the CPU performs in the following cycle's decode.
func DetectHazard(idExMemRead bool, idExRt int, ifIdRs, ifIdRt int) (pcWrite, ifIdWrite, idExFlush bool) {
	stall := idExMemRead && idExRt != 0 && (idExRt == ifIdRs || idExRt == ifIdRt)
	return !stall, !stall, stall
}
