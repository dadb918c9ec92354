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
	"fmt"
	"math/bits"
	"strings"
)

// Bitboard is a 64 bit unsigned int with 1 bit for each square on the board.
// Bit 0 is SqA1, bit 63 is SqH8 (bit index = 8*rank + file).
type Bitboard uint64

// Various constant bitboards
const (
	BbZero Bitboard = Bitboard(0)
	BbAll  Bitboard = ^BbZero
	BbOne  Bitboard = Bitboard(1)

	FileA_Bb Bitboard = 0x0101010101010101
	FileB_Bb Bitboard = FileA_Bb << 1
	FileC_Bb Bitboard = FileA_Bb << 2
	FileD_Bb Bitboard = FileA_Bb << 3
	FileE_Bb Bitboard = FileA_Bb << 4
	FileF_Bb Bitboard = FileA_Bb << 5
	FileG_Bb Bitboard = FileA_Bb << 6
	FileH_Bb Bitboard = FileA_Bb << 7

	Rank1_Bb Bitboard = 0xFF
	Rank2_Bb Bitboard = Rank1_Bb << (8 * 1)
	Rank3_Bb Bitboard = Rank1_Bb << (8 * 2)
	Rank4_Bb Bitboard = Rank1_Bb << (8 * 3)
	Rank5_Bb Bitboard = Rank1_Bb << (8 * 4)
	Rank6_Bb Bitboard = Rank1_Bb << (8 * 5)
	Rank7_Bb Bitboard = Rank1_Bb << (8 * 6)
	Rank8_Bb Bitboard = Rank1_Bb << (8 * 7)
)

// Bb returns a Bitboard of the square by accessing the pre calculated
// square to bitboard array.
func (sq Square) Bb() Bitboard {
	return sqBb[sq]
}

// PushSquare sets the corresponding bit of the bitboard for the square
func (b *Bitboard) PushSquare(s Square) Bitboard {
	*b |= s.Bb()
	return *b
}

// PopSquare removes the corresponding bit of the bitboard for the square
func (b *Bitboard) PopSquare(s Square) Bitboard {
	*b = *b &^ s.Bb()
	return *b
}

// Has tests if a square (bit) is set
func (b Bitboard) Has(s Square) bool {
	return b&sqBb[s] != 0
}

// ShiftBitboard shifts all bits of a bitboard in the given direction
// by 1 square. Bits which would jump over the board edge are masked
// out before the shift.
func ShiftBitboard(b Bitboard, d Direction) Bitboard {
	switch d {
	case North:
		return b << 8
	case South:
		return b >> 8
	case East:
		return (b &^ FileH_Bb) << 1
	case West:
		return (b &^ FileA_Bb) >> 1
	case Northeast:
		return (b &^ FileH_Bb) << 9
	case Northwest:
		return (b &^ FileA_Bb) << 7
	case Southeast:
		return (b &^ FileH_Bb) >> 7
	case Southwest:
		return (b &^ FileA_Bb) >> 9
	}
	return b
}

// Lsb returns the least significant bit of the 64-bit Bb.
// This translates directly to the Square which is returned.
// If the bitboard is empty SqNone will be returned.
func (b Bitboard) Lsb() Square {
	return Square(bits.TrailingZeros64(uint64(b)))
}

// Msb returns the most significant bit of the 64-bit Bb.
// This translates directly to the Square which is returned.
// If the bitboard is empty SqNone will be returned.
func (b Bitboard) Msb() Square {
	if b == BbZero {
		return SqNone
	}
	return Square(63 - bits.LeadingZeros64(uint64(b)))
}

// PopLsb returns the Lsb square and removes it from the bitboard.
// The given bitboard is changed directly.
func (b *Bitboard) PopLsb() Square {
	if *b == BbZero {
		return SqNone
	}
	lsb := b.Lsb()
	*b = *b & (*b - 1)
	return lsb
}

// PopCount returns the number of one bits ("population count") in b.
// This equals the number of squares set in a Bitboard
func (b Bitboard) PopCount() int {
	return bits.OnesCount64(uint64(b))
}

// String returns a string representation of the 64 bits
func (b Bitboard) String() string {
	return fmt.Sprintf("%-0.64b", b)
}

// StringBoard returns a string representation of the Bb
// as a board of 8x8 squares
func (b Bitboard) StringBoard() string {
	var os strings.Builder
	os.WriteString("+---+---+---+---+---+---+---+---+\n")
	for r := Rank1; r <= Rank8; r++ {
		for f := FileA; f <= FileH; f++ {
			if (b & SquareOf(f, Rank8-r).Bb()) > 0 {
				os.WriteString("| X ")
			} else {
				os.WriteString("|   ")
			}
		}
		os.WriteString("|\n+---+---+---+---+---+---+---+---+\n")
	}
	return os.String()
}

// StringGrouped returns a string representation of the 64 bits grouped in 8.
// Order is LSB to MSB ==> A1 B1 ... G8 H8
func (b Bitboard) StringGrouped() string {
	var os strings.Builder
	for i := 0; i < 64; i++ {
		if i > 0 && i%8 == 0 {
			os.WriteString(".")
		}
		if (b & (BbOne << i)) != 0 {
			os.WriteString("1")
		} else {
			os.WriteString("0")
		}
	}
	os.WriteString(fmt.Sprintf(" (%d)", b))
	return os.String()
}

// GetAttacksBb returns a bitboard representing all the squares attacked by a
// piece of the given type pt (not pawn) placed on 'sq'.
// For sliding pieces this uses the pre-computed magic bitboard attack arrays.
// For Knight and King the occupied Bitboard is ignored (can be BbZero)
// as for these non sliders the pre-computed pseudo attacks are used.
func GetAttacksBb(pt PieceType, sq Square, occupied Bitboard) Bitboard {
	switch pt {
	case Bishop:
		return bishopAttacks(sq, occupied)
	case Rook:
		return rookAttacks(sq, occupied)
	case Queen:
		return bishopAttacks(sq, occupied) | rookAttacks(sq, occupied)
	case Knight, King:
		return pseudoAttacks[pt][sq]
	default:
		panic(fmt.Sprintf("GetAttacksBb called with invalid piece type %s", pt.String()))
	}
}

// GetPseudoAttacks returns a Bb of possible attacks of a piece
// as if on an empty board
func GetPseudoAttacks(pt PieceType, sq Square) Bitboard {
	return pseudoAttacks[pt][sq]
}

// GetPawnAttacks returns a Bb of possible attacks of a pawn
// of the given color from the given square
func GetPawnAttacks(c Color, sq Square) Bitboard {
	return pawnAttacks[c][sq]
}

// Intermediate returns a Bb of the squares strictly between
// the given two squares when they share a rank, file or diagonal.
// Otherwise the empty bitboard.
func Intermediate(sq1 Square, sq2 Square) Bitboard {
	return intermediate[sq1][sq2]
}

// RayBetween returns the squares between the two given squares
// including both end points when they share a rank, file or diagonal.
// Otherwise the empty bitboard.
func RayBetween(sq1 Square, sq2 Square) Bitboard {
	if sq1 == sq2 || lines[sq1][sq2] == BbZero {
		return BbZero
	}
	return intermediate[sq1][sq2] | sq1.Bb() | sq2.Bb()
}

// Line returns the full line (rank, file or diagonal extended to the
// board edges) through the two given squares or the empty bitboard
// when the squares are not aligned.
func Line(sq1 Square, sq2 Square) Bitboard {
	return lines[sq1][sq2]
}

// KingSideCastleMask returns a Bb with the king side squares which
// must be empty for castling (between king and rook)
func KingSideCastleMask(c Color) Bitboard {
	return kingSideCastleMask[c]
}

// QueenSideCastleMask returns a Bb with the queen side squares which
// must be empty for castling (between king and rook)
func QueenSideCastleMask(c Color) Bitboard {
	return queenSideCastleMask[c]
}

// KingSideCastlePath returns a Bb with the squares the king traverses
// when castling king side (excluding the starting square)
func KingSideCastlePath(c Color) Bitboard {
	return kingSideCastlePath[c]
}

// QueenSideCastlePath returns a Bb with the squares the king traverses
// when castling queen side (excluding the starting square)
func QueenSideCastlePath(c Color) Bitboard {
	return queenSideCastlePath[c]
}

// GetCastlingRights returns the CastlingRights which are lost when the
// given square is moved from or captured on.
func GetCastlingRights(sq Square) CastlingRights {
	return castlingRights[sq]
}

// ////////////////////
// Private
// ////////////////////

// Returns a Bb of the square by shifting the square onto
// an empty bitboard. Usually one would use Bb() after
// initialization of the package.
func (sq Square) bitboard() Bitboard {
	return Bitboard(uint64(1) << sq)
}

var (
	// Internal pre computed square to square bitboard array.
	sqBb [SqLength]Bitboard

	// Internal pre computed rank bitboard array.
	rankBb [8]Bitboard

	// Internal pre computed file bitboard array.
	fileBb [8]Bitboard

	// Internal pre computed index for quick square distance lookup
	squareDistance [SqLength][SqLength]int

	// Internal Bb for pawn attacks for each color for each square
	pawnAttacks [2][SqLength]Bitboard

	// Internal Bb for attacks for each piece for each square
	// as if on an empty board
	pseudoAttacks [PtLength][SqLength]Bitboard

	// intermediate holds bitboards for the squares strictly between
	// two squares sharing a rank, file or diagonal
	intermediate [SqLength][SqLength]Bitboard

	// lines holds the full rank, file or diagonal through two
	// aligned squares
	lines [SqLength][SqLength]Bitboard

	// helper masks for castling moves
	kingSideCastleMask  [2]Bitboard
	queenSideCastleMask [2]Bitboard
	kingSideCastlePath  [2]Bitboard
	queenSideCastlePath [2]Bitboard

	// array to store all possible CastlingRights for squares which impact castlings
	castlingRights [SqLength]CastlingRights
)

// ///////////////////////////////////////
// Initialization
// ///////////////////////////////////////

// Pre computes various bitboards to avoid runtime calculation
func initBb() {
	squareBitboardsPreCompute()
	rankFileBbPreCompute()
	squareDistancePreCompute()
	castleMasksPreCompute()
	pseudoAttacksPreCompute()
	intermediatePreCompute()
}

func squareBitboardsPreCompute() {
	for sq := SqA1; sq < SqNone; sq++ {
		sqBb[sq] = sq.bitboard()
	}
}

func rankFileBbPreCompute() {
	for i := Rank1; i <= Rank8; i++ {
		rankBb[i] = Rank1_Bb << (8 * i)
	}
	for i := FileA; i <= FileH; i++ {
		fileBb[i] = FileA_Bb << i
	}
}

// Distance between squares index
func squareDistancePreCompute() {
	for sq1 := SqA1; sq1 <= SqH8; sq1++ {
		for sq2 := SqA1; sq2 <= SqH8; sq2++ {
			if sq1 != sq2 {
				fd := FileDistance(sq1.FileOf(), sq2.FileOf())
				rd := RankDistance(sq1.RankOf(), sq2.RankOf())
				if fd > rd {
					squareDistance[sq1][sq2] = fd
				} else {
					squareDistance[sq1][sq2] = rd
				}
			}
		}
	}
}

func castleMasksPreCompute() {
	kingSideCastleMask[White] = sqBb[SqF1] | sqBb[SqG1]
	kingSideCastleMask[Black] = sqBb[SqF8] | sqBb[SqG8]
	queenSideCastleMask[White] = sqBb[SqB1] | sqBb[SqC1] | sqBb[SqD1]
	queenSideCastleMask[Black] = sqBb[SqB8] | sqBb[SqC8] | sqBb[SqD8]
	kingSideCastlePath[White] = sqBb[SqF1] | sqBb[SqG1]
	kingSideCastlePath[Black] = sqBb[SqF8] | sqBb[SqG8]
	queenSideCastlePath[White] = sqBb[SqD1] | sqBb[SqC1]
	queenSideCastlePath[Black] = sqBb[SqD8] | sqBb[SqC8]
	castlingRights[SqE1] = CastlingWhite
	castlingRights[SqA1] = CastlingWhiteOOO
	castlingRights[SqH1] = CastlingWhiteOO
	castlingRights[SqE8] = CastlingBlack
	castlingRights[SqA8] = CastlingBlackOOO
	castlingRights[SqH8] = CastlingBlackOO
}

// pre compute all possible attacked squares per color, piece and square
func pseudoAttacksPreCompute() {
	// pawns
	pawnSteps := [2][2]Direction{
		{Northwest, Northeast}, // White
		{Southwest, Southeast}, // Black
	}
	for c := White; c <= Black; c++ {
		for sq := SqA1; sq <= SqH8; sq++ {
			for _, d := range pawnSteps[c] {
				to := sq.To(d)
				if to != SqNone {
					pawnAttacks[c][sq] |= sqBb[to]
				}
			}
		}
	}

	// king and knight
	kingSteps := []Direction{Northwest, North, Northeast, West, East, Southwest, South, Southeast}
	knightSteps := []Direction{
		North + Northwest, North + Northeast,
		East + Northeast, East + Southeast,
		South + Southeast, South + Southwest,
		West + Southwest, West + Northwest}
	for sq := SqA1; sq <= SqH8; sq++ {
		for _, d := range kingSteps {
			to := sq.To(d)
			if to != SqNone {
				pseudoAttacks[King][sq] |= sqBb[to]
			}
		}
		for _, d := range knightSteps {
			to := Square(int(sq) + int(d))
			// no wrap around board edges
			if to.IsValid() && squareDistance[sq][to] == 2 {
				pseudoAttacks[Knight][sq] |= sqBb[to]
			}
		}
	}

	// sliding pieces on an empty board
	for sq := SqA1; sq <= SqH8; sq++ {
		pseudoAttacks[Rook][sq] = slidingAttack(&rookDirections, sq, BbZero)
		pseudoAttacks[Bishop][sq] = slidingAttack(&bishopDirections, sq, BbZero)
		pseudoAttacks[Queen][sq] = pseudoAttacks[Rook][sq] | pseudoAttacks[Bishop][sq]
	}
}

// masks for intermediate squares between two squares and for the
// full line through two aligned squares
func intermediatePreCompute() {
	for from := SqA1; from <= SqH8; from++ {
		for to := SqA1; to <= SqH8; to++ {
			if from == to {
				continue
			}
			if pseudoAttacks[Rook][from].Has(to) {
				intermediate[from][to] =
					slidingAttack(&rookDirections, from, sqBb[to]) &
						slidingAttack(&rookDirections, to, sqBb[from])
				lines[from][to] =
					(pseudoAttacks[Rook][from] & pseudoAttacks[Rook][to]) | sqBb[from] | sqBb[to]
			} else if pseudoAttacks[Bishop][from].Has(to) {
				intermediate[from][to] =
					slidingAttack(&bishopDirections, from, sqBb[to]) &
						slidingAttack(&bishopDirections, to, sqBb[from])
				lines[from][to] =
					(pseudoAttacks[Bishop][from] & pseudoAttacks[Bishop][to]) | sqBb[from] | sqBb[to]
			}
		}
	}
}
