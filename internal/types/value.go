/*
 * Talon - UCI chess engine in Go
 *
 * MIT License
 *
 * Copyright (c) 2025 The Talon Authors
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy
 * of this software and associated documentation files (the "Software"), to deal
 * in the Software without restriction, including without limitation the rights
 * to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 * copies of the Software, and to permit persons to whom the Software is
 * furnished to do so, subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in all
 * copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 * FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 * AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 * LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 * OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 * SOFTWARE.
 */

package types

import "strconv"

// Value represents the positional value of a chess position in centipawns
type Value int32

// Constants for values
const (
	ValueZero Value = 0
	ValueDraw Value = 0
	// ValueMate is a sentinel larger than any static evaluation can reach
	ValueMate Value = 100_000
	ValueInf  Value = ValueMate + 1
	ValueNA   Value = -ValueInf - 1
)

// IsValid checks if value is within the valid range
func (v Value) IsValid() bool {
	return v >= -ValueInf && v <= ValueInf
}

// IsCheckMateValue returns true if the value indicates a mate
func (v Value) IsCheckMateValue() bool {
	return v == ValueMate || v == -ValueMate
}

// String returns a UCI compatible string representation of the value,
// either "cp <centipawns>" or "mate <sign>"
func (v Value) String() string {
	if v.IsCheckMateValue() {
		if v > 0 {
			return "mate 1"
		}
		return "mate -1"
	}
	return "cp " + strconv.Itoa(int(v))
}
