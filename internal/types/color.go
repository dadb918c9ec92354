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

import "fmt"

// Color represents constants for each chess color White and Black
type Color uint8

// Constants for each color
const (
	White       Color = 0
	Black       Color = 1
	ColorLength int   = 2
)

// Flip returns the opposite color
func (c Color) Flip() Color {
	return c ^ 1
}

// IsValid checks if c represents a valid color
func (c Color) IsValid() bool {
	return c < 2
}

// Color direction factor
var dir = [2]int{1, -1}

// MoveDirection returns positive 1 for White and negative 1 (-1) for Black
func (c Color) MoveDirection() int {
	return dir[c]
}

// PawnDir returns the direction of a pawn push of the given color
func (c Color) PawnDir() Direction {
	if c == White {
		return North
	}
	return South
}

// PromotionRankBb returns the rank a pawn of this color promotes on
// as a Bitboard
func (c Color) PromotionRankBb() Bitboard {
	if c == White {
		return Rank8_Bb
	}
	return Rank1_Bb
}

// PawnDoubleRank returns the rank from which a pawn double push of
// this color can complete its second step as a Bitboard.
// This is the rank a pawn reaches after a single push from its
// starting rank.
func (c Color) PawnDoubleRank() Bitboard {
	if c == White {
		return Rank3_Bb
	}
	return Rank6_Bb
}

// String returns a string representation of color as "w" or "b"
func (c Color) String() string {
	switch c {
	case White:
		return "w"
	case Black:
		return "b"
	default:
		panic(fmt.Sprintf("Invalid color %d", c))
	}
}
