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

// Package util provides some additional useful functions not available
// in GO or the GO standard library
package util

import (
	"os"
	"path/filepath"
	"time"
)

// Abs returns the absolute value of the given int
func Abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

// Min returns the smaller of the two given ints
func Min(x, y int) int {
	if x < y {
		return x
	}
	return y
}

// Max returns the bigger of the two given ints
func Max(x, y int) int {
	if x > y {
		return x
	}
	return y
}

// Nps calculates nodes per second from the given number of nodes
// and the given duration
func Nps(nodes uint64, duration time.Duration) uint64 {
	if duration.Nanoseconds() == 0 {
		return 0
	}
	return nodes * uint64(time.Second.Nanoseconds()) / uint64(duration.Nanoseconds())
}

// ResolveFile finds a file relative to the current working directory
// or the executable's directory. Returns the unchanged path and an
// error if the file could not be found in either.
func ResolveFile(file string) (string, error) {
	if _, err := os.Stat(file); err == nil {
		return file, nil
	}
	programName, _ := os.Executable()
	exePath := filepath.Dir(programName)
	candidate := filepath.Join(exePath, filepath.Base(file))
	if _, err := os.Stat(candidate); err == nil {
		return candidate, nil
	}
	_, err := os.Stat(file)
	return file, err
}
