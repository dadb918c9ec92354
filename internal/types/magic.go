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

// MagicEntry holds the magic bitboard data relevant for a single square.
// The magic multipliers are pre-computed offline; the attack tables are
// filled at startup by enumerating every subset of the relevant
// occupancy mask.
// As a reference see https://www.chessprogramming.org/Magic_Bitboards
type MagicEntry struct {
	Mask   Bitboard // relevant occupancy mask (excludes non-blocking edges)
	Magic  uint64   // magic multiplier
	Shift  uint     // 64 - popcount(Mask)
	Offset uint32   // index of this square's slice in the shared attack table
}

// index calculates the index into the shared attack table for the
// given board occupation
//  occ  &= entry.Mask
//  occ  *= entry.Magic
//  occ >>= entry.Shift
func (m *MagicEntry) index(occupied Bitboard) uint32 {
	occ := uint64(occupied&m.Mask) * m.Magic >> m.Shift
	return m.Offset + uint32(occ)
}

var (
	rookMagics   [SqLength]MagicEntry
	bishopMagics [SqLength]MagicEntry

	// shared flat attack tables indexed via the magic entries
	rookTable   []Bitboard
	bishopTable []Bitboard

	rookDirections   = [4]Direction{North, East, South, West}
	bishopDirections = [4]Direction{Northeast, Southeast, Southwest, Northwest}
)

// Pre-computed magic multipliers. Each maps every subset of the
// square's relevant occupancy mask to a unique index of
// 64 - shift bits ("fancy" magic bitboards).
var rookMagicNumbers = [SqLength]uint64{
	0x0080001020400080, 0x0040001000200040, 0x0080081000200080, 0x0080040800100080,
	0x0080020400080080, 0x0080010200040080, 0x0080008001000200, 0x0080002040800100,
	0x0000800020400080, 0x0000400020005000, 0x0000801000200080, 0x0000800800100080,
	0x0000800400080080, 0x0000800200040080, 0x0000800100020080, 0x0000800040800100,
	0x0000208000400080, 0x0000404000201000, 0x0000808010002000, 0x0000808008001000,
	0x0000808004000800, 0x0000808002000400, 0x0000010100020004, 0x0000020000408104,
	0x0000208080004000, 0x0000200040005000, 0x0000100080200080, 0x0000080080100080,
	0x0000040080080080, 0x0000020080040080, 0x0000010080800200, 0x0000800080004100,
	0x0000204000800080, 0x0000200040401000, 0x0000100080802000, 0x0000080080801000,
	0x0000040080800800, 0x0000020080800400, 0x0000020001010004, 0x0000800040800100,
	0x0000204000808000, 0x0000200040008080, 0x0000100020008080, 0x0000080010008080,
	0x0000040008008080, 0x0000020004008080, 0x0000010002008080, 0x0000004081020004,
	0x0000204000800080, 0x0000200040008080, 0x0000100020008080, 0x0000080010008080,
	0x0000040008008080, 0x0000020004008080, 0x0000800100020080, 0x0000800041000080,
	0x00FFFCDDFCED714A, 0x007FFCDDFCED714A, 0x003FFFCDFFD88096, 0x0000040810002101,
	0x0001000204080011, 0x0001000204000801, 0x0001000082000401, 0x0001FFFAABFAD1A2,
}

var bishopMagicNumbers = [SqLength]uint64{
	0x0002020202020200, 0x0002020202020000, 0x0004010202000000, 0x0004040080000000,
	0x0001104000000000, 0x0000821040000000, 0x0000410410400000, 0x0000104104104000,
	0x0000040404040400, 0x0000020202020200, 0x0000040102020000, 0x0000040400800000,
	0x0000011040000000, 0x0000008210400000, 0x0000004104104000, 0x0000002082082000,
	0x0004000808080800, 0x0002000404040400, 0x0001000202020200, 0x0000800802004000,
	0x0000800400A00000, 0x0000200100884000, 0x0000400082082000, 0x0000200041041000,
	0x0002080010101000, 0x0001040008080800, 0x0000208004010400, 0x0000404004010200,
	0x0000840000802000, 0x0000404002011000, 0x0000808001041000, 0x0000404000820800,
	0x0001041000202000, 0x0000820800101000, 0x0000104400080800, 0x0000020080080080,
	0x0000404040040100, 0x0000808100020100, 0x0001010100020800, 0x0000808080010400,
	0x0000820820004000, 0x0000410410002000, 0x0000082088001000, 0x0000002011000800,
	0x0000080100400400, 0x0001010101000200, 0x0002020202000400, 0x0001010101000200,
	0x0000410410400000, 0x0000208208200000, 0x0000002084100000, 0x0000000020880000,
	0x0000001002020000, 0x0000040408020000, 0x0004040404040000, 0x0002020202020000,
	0x0000104104104000, 0x0000002082082000, 0x0000000020841000, 0x0000000000208800,
	0x0000000010020200, 0x0000000404080200, 0x0000040404040400, 0x0002020202020200,
}

// rookAttacks returns the rook attacks for the given square and
// board occupation using the magic attack table
func rookAttacks(sq Square, occupied Bitboard) Bitboard {
	return rookTable[rookMagics[sq].index(occupied)]
}

// bishopAttacks returns the bishop attacks for the given square and
// board occupation using the magic attack table
func bishopAttacks(sq Square, occupied Bitboard) Bitboard {
	return bishopTable[bishopMagics[sq].index(occupied)]
}

// initMagics fills the magic entries and the shared attack tables for
// rooks and bishops. Must be called after initBb().
func initMagics() {
	rookTable = make([]Bitboard, 102400)
	bishopTable = make([]Bitboard, 5248)
	initMagicTable(rookTable, &rookMagics, &rookMagicNumbers, &rookDirections)
	initMagicTable(bishopTable, &bishopMagics, &bishopMagicNumbers, &bishopDirections)
}

// initMagicTable computes the relevant occupancy mask for each square,
// stores the magic entry and fills the square's slice of the shared
// attack table. All subsets of the mask are enumerated with the
// Carry-Rippler trick.
// https://www.chessprogramming.org/Traversing_Subsets_of_a_Set
func initMagicTable(table []Bitboard, magics *[SqLength]MagicEntry, numbers *[SqLength]uint64, directions *[4]Direction) {
	var offset uint32
	for sq := SqA1; sq <= SqH8; sq++ {
		// board edges are not considered in the relevant occupancies
		// unless the square itself is on the edge
		edges := ((Rank1_Bb | Rank8_Bb) &^ sq.RankOf().Bb()) |
			((FileA_Bb | FileH_Bb) &^ sq.FileOf().Bb())

		m := &magics[sq]
		m.Mask = slidingAttack(directions, sq, BbZero) &^ edges
		m.Magic = numbers[sq]
		m.Shift = uint(64 - m.Mask.PopCount())
		m.Offset = offset

		// Carry-Rippler enumeration of all subsets of the mask
		blockers := BbZero
		for {
			table[m.index(blockers)] = slidingAttack(directions, sq, blockers)
			blockers = (blockers - m.Mask) & m.Mask
			if blockers == BbZero {
				break
			}
		}
		offset += uint32(1) << uint32(m.Mask.PopCount())
	}
}

// slidingAttack calculates sliding attacks along the given directions
// for the given square and the given board occupation by walking each
// ray until a blocker or the board edge. Only used for pre-computing -
// the hot path uses the magic attack tables.
func slidingAttack(directions *[4]Direction, sq Square, occupied Bitboard) Bitboard {
	attack := BbZero
	for i := 0; i < 4; i++ {
		s := sq
		for {
			s = s.To(directions[i])
			if s == SqNone {
				break
			}
			attack.PushSquare(s)
			if occupied.Has(s) {
				break
			}
		}
	}
	return attack
}
