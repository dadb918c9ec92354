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

// Package position represents the data structures and functions for a
// chess board and its position.
// The piece placement is stored in six piece type bitboards and two
// color bitboards. A square holds a piece of a type and color iff the
// corresponding bit is set in both the piece type and the color
// bitboard.
// The position follows a copy-make discipline: search clones the
// position before recursing via CloneWithMove. There is no undo stack.
//
// Create a new instance with NewPosition(...) with no parameters to get
// the chess start position.
package position

import (
	"fmt"
	"strings"

	"github.com/op/go-logging"

	"github.com/talon-engine/talon/internal/assert"
	myLogging "github.com/talon-engine/talon/internal/logging"
	. "github.com/talon-engine/talon/internal/types"
)

var log *logging.Logger

const (
	// StartFen is a string with the fen position for a standard chess game
	StartFen string = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"
)

// Position represents the chess board, its position and the board
// state (side to move, castling rights, en passant square and the
// move counters).
//
// The struct contains no pointers or slices so a simple value copy
// creates a fully independent position (copy-make).
//
// Needs to be created with NewPosition() or NewPositionFen(fen)
type Position struct {

	// piece placement - a square holds a piece of type pt and color c
	// iff both pieces[pt] and colours[c] have its bit set
	pieces  [PtLength]Bitboard
	colours [ColorLength]Bitboard

	// board state
	nextPlayer      Color
	castlingRights  CastlingRights
	enPassantSquare Square
	halfMoveClock   int
	fullMoveNumber  int
}

// //////////////////////////////////////////////////////
// // Public
// //////////////////////////////////////////////////////

// NewPosition creates a new position.
// When called without an argument the position will have the start position.
// When a fen string is given it will create a position based on this fen.
// Additional fens/strings are ignored.
func NewPosition(fen ...string) *Position {
	if len(fen) == 0 {
		p, _ := NewPositionFen(StartFen)
		return p
	}
	p, _ := NewPositionFen(fen[0])
	return p
}

// NewPositionFen creates a new position with the given fen string
// as board position.
// It returns nil and an error if the fen was invalid.
func NewPositionFen(fen string) (*Position, error) {
	if log == nil {
		log = myLogging.GetLog()
	}
	p := &Position{}
	if e := p.setupBoard(fen); e != nil {
		log.Errorf("fen for position setup not valid and position can't be created: %s", e)
		return nil, e
	}
	return p, nil
}

// AddPiece sets the bit for the given square in both the piece type
// and the color bitboard.
// Precondition: the square is empty. Enforced via XOR so incorrect
// calls corrupt the position - callers must be correct.
func (p *Position) AddPiece(c Color, pt PieceType, sq Square) {
	if assert.DEBUG {
		assert.Assert(p.GetPiece(sq) == PieceNone, "AddPiece: square %s is not empty", sq.String())
	}
	p.pieces[pt] ^= sq.Bb()
	p.colours[c] ^= sq.Bb()
}

// RemovePiece clears the bit for the given square in both the piece
// type and the color bitboard.
// Precondition: a piece of this type and color occupies the square.
// Enforced via XOR so incorrect calls corrupt the position - callers
// must be correct.
func (p *Position) RemovePiece(c Color, pt PieceType, sq Square) {
	if assert.DEBUG {
		assert.Assert(p.pieces[pt].Has(sq) && p.colours[c].Has(sq),
			"RemovePiece: no %s of color %s on square %s", pt.String(), c.String(), sq.String())
	}
	p.pieces[pt] ^= sq.Bb()
	p.colours[c] ^= sq.Bb()
}

// PiecesBb returns the Bitboard for the given piece type of the given color
func (p *Position) PiecesBb(c Color, pt PieceType) Bitboard {
	return p.pieces[pt] & p.colours[c]
}

// PiecesByType returns the Bitboard of all pieces of the given type
// regardless of color
func (p *Position) PiecesByType(pt PieceType) Bitboard {
	return p.pieces[pt]
}

// OccupiedBb returns a Bitboard of all pieces of Color c
func (p *Position) OccupiedBb(c Color) Bitboard {
	return p.colours[c]
}

// OccupiedAll returns a Bitboard of all pieces currently on the board
func (p *Position) OccupiedAll() Bitboard {
	return p.colours[White] | p.colours[Black]
}

// TypeAt returns the piece type on the given square or PtNone if the
// square is empty
func (p *Position) TypeAt(sq Square) PieceType {
	for pt := King; pt <= Queen; pt++ {
		if p.pieces[pt].Has(sq) {
			return pt
		}
	}
	return PtNone
}

// ColourAt returns the color of the piece on the given square. Only
// valid if the square is occupied.
func (p *Position) ColourAt(sq Square) Color {
	if p.colours[Black].Has(sq) {
		return Black
	}
	return White
}

// GetPiece returns the piece on the given square or PieceNone for an
// empty square.
// Detects a desync between the piece type and the color bitboards and
// treats it as a fatal invariant violation.
func (p *Position) GetPiece(sq Square) Piece {
	pt := p.TypeAt(sq)
	if pt == PtNone {
		return PieceNone
	}
	if !p.colours[White].Has(sq) && !p.colours[Black].Has(sq) {
		panic(fmt.Sprintf("position: piece bitboard set but no color bitboard for square %s on %s",
			sq.String(), p.StringFen()))
	}
	return MakePiece(p.ColourAt(sq), pt)
}

// KingSquare returns the current square of the king of color c.
// A missing king is an invariant violation and panics with the
// position's FEN.
func (p *Position) KingSquare(c Color) Square {
	kings := p.pieces[King] & p.colours[c]
	if kings == BbZero {
		panic(fmt.Sprintf("position: no king for color %s on %s", c.String(), p.StringFen()))
	}
	return kings.Lsb()
}

// MakeMove commits a move to the position. Due to performance there is
// no check if this move is legal on the current position. Legal check
// needs to be done beforehand or afterwards in case of pseudo legal
// moves. Usually the move will be generated by a MoveGenerator and
// therefore the move will be assumed legal anyway.
//
// Castling rights, the en passant square, the half move clock, the
// full move number and the side to move are updated.
//
// A missing piece on the from square is an invariant violation (a bug,
// not a user error) and panics with the move and the position's FEN.
func (p *Position) MakeMove(m Move) {
	if m.MoveType() == NullMove {
		return
	}

	fromSq := m.From()
	toSq := m.To()
	us := p.nextPlayer
	them := us.Flip()

	movingPt := p.TypeAt(fromSq)
	if movingPt == PtNone {
		panic(fmt.Sprintf("position MakeMove: no piece on %s for move %s on %s",
			fromSq.String(), m.StringUci(), p.StringFen()))
	}

	// If we still have castling rights and the move touches castling
	// squares then invalidate the corresponding castling right.
	// This covers king moves, rook moves and captures on a rook
	// starting square.
	if p.castlingRights != CastlingNone {
		cr := GetCastlingRights(fromSq) | GetCastlingRights(toSq)
		if cr != CastlingNone {
			p.castlingRights.Remove(cr)
		}
	}

	// capture or pawn move resets the half move clock
	if movingPt == Pawn || m.MoveType().IsCapture() {
		p.halfMoveClock = 0
	} else {
		p.halfMoveClock++
	}

	// the en passant target is only valid for exactly one ply
	p.enPassantSquare = SqNone

	switch m.MoveType() {
	case Quiet:
		p.RemovePiece(us, movingPt, fromSq)
		p.AddPiece(us, movingPt, toSq)
		// pawn double push - set the new en passant target to the
		// square passed over
		if movingPt == Pawn && SquareDistance(fromSq, toSq) == 2 {
			p.enPassantSquare = toSq.To(them.PawnDir())
		}
	case Capture:
		p.doCapture(m, us, movingPt)
	case EnPassantCapture:
		capSq := toSq.To(them.PawnDir())
		if assert.DEBUG {
			assert.Assert(p.PiecesBb(them, Pawn).Has(capSq),
				"MakeMove: en passant capture but no enemy pawn on %s", capSq.String())
		}
		p.RemovePiece(them, Pawn, capSq)
		p.RemovePiece(us, Pawn, fromSq)
		p.AddPiece(us, Pawn, toSq)
	case CastleKing, CastleQueen:
		p.doCastle(m.MoveType(), us)
	default: // promotions
		if m.MoveType().IsCapture() {
			capturedPt := p.TypeAt(toSq)
			if capturedPt == PtNone {
				panic(fmt.Sprintf("position MakeMove: promotion capture without piece on %s for move %s on %s",
					toSq.String(), m.StringUci(), p.StringFen()))
			}
			p.RemovePiece(them, capturedPt, toSq)
		}
		p.RemovePiece(us, Pawn, fromSq)
		p.AddPiece(us, m.PromotionType(), toSq)
	}

	// full move number increments after Black has moved
	if us == Black {
		p.fullMoveNumber++
	}
	p.nextPlayer = them
}

// CloneWithMove returns an independent successor position with the
// given move committed (copy-make).
func (p *Position) CloneWithMove(m Move) Position {
	next := *p
	next.MakeMove(m)
	return next
}

// String returns a string representing the position instance. This
// includes the fen and a board matrix.
func (p *Position) String() string {
	return p.StringFen() + "\n" + p.StringBoard()
}

// StringBoard returns a visual matrix of the board and pieces
func (p *Position) StringBoard() string {
	var os strings.Builder
	os.WriteString("+---+---+---+---+---+---+---+---+\n")
	for r := Rank1; r <= Rank8; r++ {
		for f := FileA; f <= FileH; f++ {
			os.WriteString("| ")
			os.WriteString(p.GetPiece(SquareOf(f, Rank8-r)).String())
			os.WriteString(" ")
		}
		os.WriteString("|\n+---+---+---+---+---+---+---+---+\n")
	}
	return os.String()
}

// //////////////////////////////////////////////////////
// // Getter and Setter functions
// //////////////////////////////////////////////////////

// NextPlayer returns the next player as Color for the position
func (p *Position) NextPlayer() Color {
	return p.nextPlayer
}

// CastlingRights returns the castling rights instance of the position
func (p *Position) CastlingRights() CastlingRights {
	return p.castlingRights
}

// GetEnPassantSquare returns the en passant square or SqNone if not set
func (p *Position) GetEnPassantSquare() Square {
	return p.enPassantSquare
}

// HalfMoveClock returns the positions half move clock
func (p *Position) HalfMoveClock() int {
	return p.halfMoveClock
}

// FullMoveNumber returns the positions full move number
func (p *Position) FullMoveNumber() int {
	return p.fullMoveNumber
}

// //////////////////////////////////////////////////////////
// Private
// //////////////////////////////////////////////////////////

// doCapture removes the captured piece at the to square, removes the
// mover at the from square and places the mover at the to square.
func (p *Position) doCapture(m Move, us Color, movingPt PieceType) {
	them := us.Flip()
	capturedPt := p.TypeAt(m.To())
	if capturedPt == PtNone {
		panic(fmt.Sprintf("position MakeMove: capture without piece on %s for move %s on %s",
			m.To().String(), m.StringUci(), p.StringFen()))
	}
	if assert.DEBUG {
		assert.Assert(capturedPt != King, "doCapture: king cannot be captured: %s on %s",
			m.StringUci(), p.StringFen())
	}
	p.RemovePiece(them, capturedPt, m.To())
	p.RemovePiece(us, movingPt, m.From())
	p.AddPiece(us, movingPt, m.To())
}

// doCastle performs the four atomic square updates for the king and
// the matching rook. King e1<->g1/c1 with rook h1->f1 / a1->d1,
// mirrored to rank 8 for Black.
func (p *Position) doCastle(mt MoveType, c Color) {
	switch {
	case mt == CastleKing && c == White:
		p.RemovePiece(White, King, SqE1)
		p.AddPiece(White, King, SqG1)
		p.RemovePiece(White, Rook, SqH1)
		p.AddPiece(White, Rook, SqF1)
	case mt == CastleQueen && c == White:
		p.RemovePiece(White, King, SqE1)
		p.AddPiece(White, King, SqC1)
		p.RemovePiece(White, Rook, SqA1)
		p.AddPiece(White, Rook, SqD1)
	case mt == CastleKing && c == Black:
		p.RemovePiece(Black, King, SqE8)
		p.AddPiece(Black, King, SqG8)
		p.RemovePiece(Black, Rook, SqH8)
		p.AddPiece(Black, Rook, SqF8)
	case mt == CastleQueen && c == Black:
		p.RemovePiece(Black, King, SqE8)
		p.AddPiece(Black, King, SqC8)
		p.RemovePiece(Black, Rook, SqA8)
		p.AddPiece(Black, Rook, SqD8)
	default:
		panic("Invalid castle move!")
	}
}
