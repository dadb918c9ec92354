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
	"strings"
)

// MoveType classifies a move. The type determines how make-move
// updates the board geometry.
type MoveType uint8

// Constants for move types
const (
	Quiet                  MoveType = iota
	Capture                MoveType = iota
	EnPassantCapture       MoveType = iota
	CastleKing             MoveType = iota
	CastleQueen            MoveType = iota
	KnightPromotion        MoveType = iota
	BishopPromotion        MoveType = iota
	RookPromotion          MoveType = iota
	QueenPromotion         MoveType = iota
	KnightPromotionCapture MoveType = iota
	BishopPromotionCapture MoveType = iota
	RookPromotionCapture   MoveType = iota
	QueenPromotionCapture  MoveType = iota
	NullMove               MoveType = iota
	MtLength               MoveType = iota
)

// IsValid checks if the move type is a valid type
func (mt MoveType) IsValid() bool {
	return mt < MtLength
}

// IsPromotion returns true for the eight promotion move types
func (mt MoveType) IsPromotion() bool {
	return mt >= KnightPromotion && mt <= QueenPromotionCapture
}

// IsCapture returns true if the move type captures a piece
// (incl. en passant and promotion captures)
func (mt MoveType) IsCapture() bool {
	return mt == Capture || mt == EnPassantCapture ||
		(mt >= KnightPromotionCapture && mt <= QueenPromotionCapture)
}

// IsCastling returns true for the two castling move types
func (mt MoveType) IsCastling() bool {
	return mt == CastleKing || mt == CastleQueen
}

// PromotionType returns the piece type a promotion move promotes to.
// Must be ignored when the move type is not a promotion.
func (mt MoveType) PromotionType() PieceType {
	switch mt {
	case KnightPromotion, KnightPromotionCapture:
		return Knight
	case BishopPromotion, BishopPromotionCapture:
		return Bishop
	case RookPromotion, RookPromotionCapture:
		return Rook
	case QueenPromotion, QueenPromotionCapture:
		return Queen
	}
	return PtNone
}

var moveTypeToString = [MtLength]string{
	"Quiet", "Capture", "EnPassantCapture", "CastleKing", "CastleQueen",
	"KnightPromotion", "BishopPromotion", "RookPromotion", "QueenPromotion",
	"KnightPromotionCapture", "BishopPromotionCapture", "RookPromotionCapture",
	"QueenPromotionCapture", "NullMove"}

// String returns a string representation of a move type
func (mt MoveType) String() string {
	return moveTypeToString[mt]
}

// Move is a 16bit unsigned int type for encoding chess moves
// as a primitive data type.
//  BITMAP 16-bit
//  1 1 1 1 1 1 0 0 0 0 0 0 0 0 0 0
//  5 4 3 2 1 0 9 8 7 6 5 4 3 2 1 0
//  --------------------------------
//                      1 1 1 1 1 1  to
//          1 1 1 1 1 1              from
//  1 1 1 1                          move type
type Move uint16

const (
	// MoveNone empty non valid move
	MoveNone Move = 0
)

const (
	fromShift uint = 6
	typeShift uint = 12

	squareMask   Move = 0x3F
	toMask            = squareMask
	fromMask          = squareMask << fromShift
	moveTypeMask Move = 0xF << typeShift
)

// CreateMove returns an encoded Move instance
func CreateMove(from Square, to Square, t MoveType) Move {
	return Move(to) |
		Move(from)<<fromShift |
		Move(t)<<typeShift
}

// From returns the from-Square of the move
func (m Move) From() Square {
	return Square((m & fromMask) >> fromShift)
}

// To returns the to-Square of the move
func (m Move) To() Square {
	return Square(m & toMask)
}

// MoveType returns the type of the move
func (m Move) MoveType() MoveType {
	return MoveType((m & moveTypeMask) >> typeShift)
}

// PromotionType returns the PieceType considered for promotion when
// the move type is a promotion.
// Must be ignored when move type is not a promotion.
func (m Move) PromotionType() PieceType {
	return m.MoveType().PromotionType()
}

// IsValid check if the move has valid squares and a move type.
// MoveNone is not a valid move in this sense.
func (m Move) IsValid() bool {
	return m != MoveNone &&
		m.From().IsValid() &&
		m.To().IsValid() &&
		m.From() != m.To() &&
		m.MoveType().IsValid() &&
		m.MoveType() != NullMove
}

// String returns a string representation of a move with all details
func (m Move) String() string {
	if m == MoveNone {
		return "Move: { MoveNone }"
	}
	return fmt.Sprintf("Move: { %-6s type:%s (%d) }", m.StringUci(), m.MoveType().String(), m)
}

// StringUci returns a move string in UCI long algebraic notation,
// e.g. e2e4 or e7e8q
func (m Move) StringUci() string {
	if m == MoveNone {
		return "NoMove"
	}
	var os strings.Builder
	os.WriteString(m.From().String())
	os.WriteString(m.To().String())
	if m.MoveType().IsPromotion() {
		os.WriteString(strings.ToLower(m.PromotionType().Char()))
	}
	return os.String()
}
