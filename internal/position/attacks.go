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

package position

import (
	. "github.com/talon-engine/talon/internal/types"
)

// AttacksTo returns a bitboard of all pieces of the given color which
// attack the given square with the given board occupation.
//
// The attack test is done in reverse: for each piece type we place a
// piece of that type on the target square and intersect its attacks
// with the attacker's pieces of the same type.
func (p *Position) AttacksTo(sq Square, by Color, occupied Bitboard) Bitboard {
	// non sliding
	attacks := (GetPawnAttacks(by.Flip(), sq) & p.PiecesBb(by, Pawn)) |
		(GetAttacksBb(Knight, sq, occupied) & p.PiecesBb(by, Knight)) |
		(GetAttacksBb(King, sq, occupied) & p.PiecesBb(by, King))
	// sliding
	attacks |= GetAttacksBb(Rook, sq, occupied) &
		(p.PiecesBb(by, Rook) | p.PiecesBb(by, Queen))
	attacks |= GetAttacksBb(Bishop, sq, occupied) &
		(p.PiecesBb(by, Bishop) | p.PiecesBb(by, Queen))
	return attacks
}

// IsAttacked checks if the given square is attacked by a piece of the
// given color.
//
// The occupancy used for sliding attacks excludes the king of the
// attacked side so that x-ray attacks through the king are visible.
// Without this the king could step backwards along the ray of a
// sliding attacker.
func (p *Position) IsAttacked(sq Square, by Color) bool {
	occ := p.OccupiedAll() &^ p.PiecesBb(by.Flip(), King)
	return p.AttacksTo(sq, by, occ) != BbZero
}

// Checkers returns a bitboard of all enemy pieces currently attacking
// the king of the given color.
// The occupancy used for the sliding attacks excludes the king itself
// (x-ray rule).
func (p *Position) Checkers(c Color) Bitboard {
	kingSq := p.KingSquare(c)
	occ := p.OccupiedAll() &^ p.PiecesBb(c, King)
	return p.AttacksTo(kingSq, c.Flip(), occ)
}

// HasCheck returns true if the king of the side to move is attacked
func (p *Position) HasCheck() bool {
	return p.Checkers(p.nextPlayer) != BbZero
}

// Blockers returns a bitboard of the pieces of the given color which
// are the sole occupant of a ray between the king of that color and an
// enemy slider (absolute pins).
//
// Snipers are enemy sliders which would attack the king on an
// otherwise empty board. For each sniper the occupied squares strictly
// between sniper and king are counted - a single own piece on the ray
// is a blocker.
func (p *Position) Blockers(c Color) Bitboard {
	kingSq := p.KingSquare(c)
	them := c.Flip()
	occ := p.OccupiedAll()

	snipers := (GetPseudoAttacks(Rook, kingSq) &
		(p.PiecesBb(them, Rook) | p.PiecesBb(them, Queen))) |
		(GetPseudoAttacks(Bishop, kingSq) &
			(p.PiecesBb(them, Bishop) | p.PiecesBb(them, Queen)))

	blockers := BbZero
	for snipers != BbZero {
		sniperSq := snipers.PopLsb()
		between := Intermediate(kingSq, sniperSq) & occ
		if between.PopCount() == 1 && between&p.colours[c] != BbZero {
			blockers |= between
		}
	}
	return blockers
}
