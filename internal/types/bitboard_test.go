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

import (
	"math/bits"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBitboardType(t *testing.T) {
	tests := []struct {
		value    Bitboard
		expected int
	}{
		{BbZero, 0},
		{BbAll, 64},
		{BbOne, 1},
		{Bitboard(128), 1},
		{Bitboard(7), 3},
	}
	for _, test := range tests {
		got := bits.OnesCount64(uint64(test.value))
		if got != test.expected {
			t.Errorf("Bit count of %d should be %d. Got %d", test.value, test.expected, got)
		}
	}
}

func TestSquareBitboards(t *testing.T) {
	assert := assert.New(t)
	assert.Equal(BbOne, SqA1.Bb())
	assert.Equal(Bitboard(1)<<63, SqH8.Bb())
	assert.Equal(Bitboard(1)<<28, SqE4.Bb())
	assert.True(FileA_Bb.Has(SqA5))
	assert.True(Rank4_Bb.Has(SqE4))
	assert.False(Rank4_Bb.Has(SqE5))
}

func TestPushPopSquare(t *testing.T) {
	assert := assert.New(t)
	b := BbZero
	b.PushSquare(SqE4)
	b.PushSquare(SqA1)
	assert.Equal(2, b.PopCount())
	assert.True(b.Has(SqE4))
	b.PopSquare(SqE4)
	assert.False(b.Has(SqE4))
	assert.Equal(1, b.PopCount())
}

func TestShiftBitboard(t *testing.T) {
	assert := assert.New(t)

	assert.Equal(SqE5.Bb(), ShiftBitboard(SqE4.Bb(), North))
	assert.Equal(SqE3.Bb(), ShiftBitboard(SqE4.Bb(), South))
	assert.Equal(SqF4.Bb(), ShiftBitboard(SqE4.Bb(), East))
	assert.Equal(SqD4.Bb(), ShiftBitboard(SqE4.Bb(), West))
	assert.Equal(SqF5.Bb(), ShiftBitboard(SqE4.Bb(), Northeast))
	assert.Equal(SqD5.Bb(), ShiftBitboard(SqE4.Bb(), Northwest))
	assert.Equal(SqF3.Bb(), ShiftBitboard(SqE4.Bb(), Southeast))
	assert.Equal(SqD3.Bb(), ShiftBitboard(SqE4.Bb(), Southwest))

	// bits on the edge must be discarded and never wrap
	assert.Equal(BbZero, ShiftBitboard(SqH4.Bb(), East))
	assert.Equal(BbZero, ShiftBitboard(SqA4.Bb(), West))
	assert.Equal(BbZero, ShiftBitboard(SqH4.Bb(), Northeast))
	assert.Equal(BbZero, ShiftBitboard(SqA4.Bb(), Southwest))
	assert.Equal(BbZero, ShiftBitboard(Rank8_Bb, North))
	assert.Equal(BbZero, ShiftBitboard(Rank1_Bb, South))

	// whole rank shifts
	assert.Equal(Rank3_Bb, ShiftBitboard(Rank2_Bb, North))
}

func TestLsbMsbPopLsb(t *testing.T) {
	assert := assert.New(t)
	b := SqC3.Bb() | SqF7.Bb()
	assert.Equal(SqC3, b.Lsb())
	assert.Equal(SqF7, b.Msb())
	sq := b.PopLsb()
	assert.Equal(SqC3, sq)
	assert.Equal(SqF7, b.Lsb())
	sq = b.PopLsb()
	assert.Equal(SqF7, sq)
	assert.Equal(BbZero, b)
	assert.Equal(SqNone, b.PopLsb())
}

func TestPseudoAttacks(t *testing.T) {
	assert := assert.New(t)

	// knight on corner and center
	assert.Equal(SqB3.Bb()|SqC2.Bb(), GetPseudoAttacks(Knight, SqA1))
	assert.Equal(8, GetPseudoAttacks(Knight, SqE4).PopCount())

	// king
	assert.Equal(3, GetPseudoAttacks(King, SqA1).PopCount())
	assert.Equal(8, GetPseudoAttacks(King, SqE4).PopCount())

	// sliders on an empty board
	assert.Equal(14, GetPseudoAttacks(Rook, SqE4).PopCount())
	assert.Equal(13, GetPseudoAttacks(Bishop, SqE4).PopCount())
	assert.Equal(27, GetPseudoAttacks(Queen, SqE4).PopCount())

	// pawn attacks
	assert.Equal(SqD5.Bb()|SqF5.Bb(), GetPawnAttacks(White, SqE4))
	assert.Equal(SqD3.Bb()|SqF3.Bb(), GetPawnAttacks(Black, SqE4))
	assert.Equal(SqB5.Bb(), GetPawnAttacks(White, SqA4))
	assert.Equal(SqG1.Bb(), GetPawnAttacks(Black, SqH2))
}

func TestMagicAttacks(t *testing.T) {
	assert := assert.New(t)

	// a rook on e4 blocked on e6 and c4
	occ := SqE6.Bb() | SqC4.Bb()
	attacks := GetAttacksBb(Rook, SqE4, occ)
	assert.True(attacks.Has(SqE5))
	assert.True(attacks.Has(SqE6))
	assert.False(attacks.Has(SqE7))
	assert.True(attacks.Has(SqC4))
	assert.False(attacks.Has(SqB4))
	assert.True(attacks.Has(SqH4))
	assert.True(attacks.Has(SqE1))

	// queen is the union of rook and bishop
	occ = SqD5.Bb() | SqG2.Bb() | SqE2.Bb()
	assert.Equal(GetAttacksBb(Rook, SqE4, occ)|GetAttacksBb(Bishop, SqE4, occ),
		GetAttacksBb(Queen, SqE4, occ))
}

// Cross check the magic lookups against the slow ray walking attack
// generation for pseudo random occupancies.
func TestMagicAttacksExhaustive(t *testing.T) {
	// xorshift64star to create reproducible occupancies
	seed := uint64(1070372)
	rnd := func() uint64 {
		seed ^= seed >> 12
		seed ^= seed << 25
		seed ^= seed >> 27
		return seed * 2685821657736338717
	}
	for i := 0; i < 1_000; i++ {
		occ := Bitboard(rnd() & rnd())
		for sq := SqA1; sq <= SqH8; sq++ {
			expectedR := slidingAttack(&rookDirections, sq, occ)
			expectedB := slidingAttack(&bishopDirections, sq, occ)
			if GetAttacksBb(Rook, sq, occ) != expectedR {
				t.Fatalf("rook attack mismatch on %s with occupancy %d", sq.String(), occ)
			}
			if GetAttacksBb(Bishop, sq, occ) != expectedB {
				t.Fatalf("bishop attack mismatch on %s with occupancy %d", sq.String(), occ)
			}
		}
	}
}

func TestIntermediate(t *testing.T) {
	assert := assert.New(t)
	assert.Equal(SqE2.Bb()|SqE3.Bb(), Intermediate(SqE1, SqE4))
	assert.Equal(SqB2.Bb()|SqC3.Bb(), Intermediate(SqA1, SqD4))
	assert.Equal(Intermediate(SqE1, SqE4), Intermediate(SqE4, SqE1))
	// adjacent and not aligned squares have no intermediate squares
	assert.Equal(BbZero, Intermediate(SqE1, SqE2))
	assert.Equal(BbZero, Intermediate(SqA1, SqB3))
}

func TestRayBetweenAndLine(t *testing.T) {
	assert := assert.New(t)
	assert.Equal(SqE1.Bb()|SqE2.Bb()|SqE3.Bb()|SqE4.Bb(), RayBetween(SqE1, SqE4))
	assert.Equal(BbZero, RayBetween(SqA1, SqB3))

	// full lines extend to the board edges
	assert.Equal(Rank2_Bb, Line(SqB2, SqF2))
	assert.Equal(FileD_Bb, Line(SqD1, SqD5))
	assert.True(Line(SqA1, SqD4).Has(SqH8))
	assert.Equal(BbZero, Line(SqA1, SqB3))
}

func TestCastleMasks(t *testing.T) {
	assert := assert.New(t)
	assert.Equal(SqF1.Bb()|SqG1.Bb(), KingSideCastleMask(White))
	assert.Equal(SqB1.Bb()|SqC1.Bb()|SqD1.Bb(), QueenSideCastleMask(White))
	assert.Equal(SqF8.Bb()|SqG8.Bb(), KingSideCastleMask(Black))
	assert.Equal(SqB8.Bb()|SqC8.Bb()|SqD8.Bb(), QueenSideCastleMask(Black))
	assert.Equal(SqD1.Bb()|SqC1.Bb(), QueenSideCastlePath(White))

	assert.Equal(CastlingWhite, GetCastlingRights(SqE1))
	assert.Equal(CastlingWhiteOO, GetCastlingRights(SqH1))
	assert.Equal(CastlingBlackOOO, GetCastlingRights(SqA8))
	assert.Equal(CastlingNone, GetCastlingRights(SqD4))
}
