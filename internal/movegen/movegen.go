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

// Package movegen contains functionality to create moves on a
// chess position. It generates pseudo legal moves by piece geometry
// and filters them through a pin/check aware legality test.
//
// Generation order is fixed and deterministic: pawns, castles,
// knights, king, rooks, bishops, queens - within each piece type by
// square index ascending, within each source square by destination in
// set-bit order. Pawn moves are the exception: they are grouped by kind
// (single pushes, double pushes, captures, en passant, promotions,
// promotion captures), each group in destination order.
package movegen

import (
	"regexp"
	"strings"

	"github.com/op/go-logging"

	myLogging "github.com/talon-engine/talon/internal/logging"
	"github.com/talon-engine/talon/internal/moveslice"
	"github.com/talon-engine/talon/internal/position"
	. "github.com/talon-engine/talon/internal/types"
)

var log *logging.Logger

// Movegen data structure. Create a new move generator via
//  movegen.NewMoveGen()
// Creating this directly will not work.
type Movegen struct {
	pseudoLegalMoves *moveslice.MoveSlice
	legalMoves       *moveslice.MoveSlice
}

// //////////////////////////////////////////////////////
// // Public
// //////////////////////////////////////////////////////

// NewMoveGen creates a new instance of a move generator
func NewMoveGen() *Movegen {
	if log == nil {
		log = myLogging.GetLog()
	}
	return &Movegen{
		pseudoLegalMoves: moveslice.NewMoveSlice(MaxMoves),
		legalMoves:       moveslice.NewMoveSlice(MaxMoves),
	}
}

// GeneratePseudoLegalMoves generates pseudo legal moves for the next
// player. Does not check if the king is left in check or if the king
// passes an attacked square when castling.
// The returned move slice is owned by the move generator and is only
// valid until the next generation call.
func (mg *Movegen) GeneratePseudoLegalMoves(p *position.Position) *moveslice.MoveSlice {
	mg.pseudoLegalMoves.Clear()
	mg.generatePawnMoves(p, mg.pseudoLegalMoves)
	mg.generateCastling(p, mg.pseudoLegalMoves)
	mg.generatePieceMoves(p, Knight, mg.pseudoLegalMoves)
	mg.generateKingMoves(p, mg.pseudoLegalMoves)
	mg.generatePieceMoves(p, Rook, mg.pseudoLegalMoves)
	mg.generatePieceMoves(p, Bishop, mg.pseudoLegalMoves)
	mg.generatePieceMoves(p, Queen, mg.pseudoLegalMoves)
	return mg.pseudoLegalMoves
}

// GenerateLegalMoves generates legal moves for the next player.
// Uses GeneratePseudoLegalMoves and filters out illegal moves.
// The returned move slice is owned by the move generator and is only
// valid until the next generation call.
func (mg *Movegen) GenerateLegalMoves(p *position.Position) *moveslice.MoveSlice {
	mg.legalMoves.Clear()
	mg.GeneratePseudoLegalMoves(p)
	us := p.NextPlayer()
	kingSq := p.KingSquare(us)
	checkers := p.Checkers(us)
	blockers := p.Blockers(us)
	mg.pseudoLegalMoves.FilterCopy(mg.legalMoves, func(i int) bool {
		return isLegalMove(p, mg.pseudoLegalMoves.At(i), kingSq, checkers, blockers)
	})
	return mg.legalMoves
}

// HasLegalMove determines if the next player has at least one legal
// move. Returns on the first legal move found without building the
// full legal move list.
func (mg *Movegen) HasLegalMove(p *position.Position) bool {
	mg.GeneratePseudoLegalMoves(p)
	us := p.NextPlayer()
	kingSq := p.KingSquare(us)
	checkers := p.Checkers(us)
	blockers := p.Blockers(us)
	for _, m := range *mg.pseudoLegalMoves {
		if isLegalMove(p, m, kingSq, checkers, blockers) {
			return true
		}
	}
	return false
}

// IsLegalMove tests if a single pseudo legal move is legal on the
// given position
func (mg *Movegen) IsLegalMove(p *position.Position, m Move) bool {
	us := p.NextPlayer()
	return isLegalMove(p, m, p.KingSquare(us), p.Checkers(us), p.Blockers(us))
}

// Regex for UCI notation. The promotion letter is accepted with or
// without a leading "=" and in both cases
var regexUciMove = regexp.MustCompile("^([a-h][1-8])([a-h][1-8])(=?([NBRQnbrq]))?$")

// GetMoveFromUci generates all legal moves and matches the given UCI
// move string against them. If there is a match the actual move is
// returned. Otherwise MoveNone is returned.
//
// As this uses string creation and comparison this is not very
// efficient. Use only when performance is not critical.
func (mg *Movegen) GetMoveFromUci(p *position.Position, uciMove string) Move {
	matches := regexUciMove.FindStringSubmatch(strings.TrimSpace(uciMove))
	if matches == nil {
		return MoveNone
	}
	moveString := matches[1] + matches[2] + strings.ToLower(matches[4])

	// check against all legal moves on the position
	mg.GenerateLegalMoves(p)
	for _, m := range *mg.legalMoves {
		if m.StringUci() == moveString {
			return m
		}
	}
	return MoveNone
}

// ValidateMove validates if a move is a legal move on the given position
func (mg *Movegen) ValidateMove(p *position.Position, move Move) bool {
	if move == MoveNone {
		return false
	}
	return mg.GenerateLegalMoves(p).Contains(move)
}

// //////////////////////////////////////////////////////
// // Private
// //////////////////////////////////////////////////////

// isLegalMove implements the legality filter. Checkers and blockers
// (absolutely pinned pieces) have been computed once for the position
// by the caller.
func isLegalMove(p *position.Position, m Move, kingSq Square, checkers Bitboard, blockers Bitboard) bool {
	us := p.NextPlayer()
	them := us.Flip()
	mt := m.MoveType()

	// Castling: not allowed when in check and the king must not
	// traverse an attacked square.
	if mt.IsCastling() {
		if checkers != BbZero {
			return false
		}
		var path Bitboard
		if mt == CastleKing {
			path = KingSideCastlePath(us)
		} else {
			path = QueenSideCastlePath(us)
		}
		for path != BbZero {
			if p.IsAttacked(path.PopLsb(), them) {
				return false
			}
		}
		return true
	}

	// King move: the target must not be attacked. IsAttacked removes
	// our king from the occupancy so x-ray attacks through the king
	// are seen (the king cannot step backwards along a slider ray).
	if m.From() == kingSq {
		return !p.IsAttacked(m.To(), them)
	}

	// En passant: two pawns leave their squares at once so the pin
	// test is not sufficient. Rebuild the position with both pawns
	// removed and recompute the checkers against it.
	if mt == EnPassantCapture {
		capSq := m.To().To(them.PawnDir())
		scratch := *p
		scratch.RemovePiece(us, Pawn, m.From())
		scratch.RemovePiece(them, Pawn, capSq)
		occ := scratch.OccupiedAll() &^ scratch.PiecesBb(us, King)
		newCheckers := scratch.AttacksTo(kingSq, them, occ)
		switch newCheckers.PopCount() {
		case 0:
			return true
		case 1:
			// the capturing pawn arrives on the to square and can
			// still block a slider on the king ray
			return Intermediate(kingSq, newCheckers.Lsb()).Has(m.To())
		default:
			return false
		}
	}

	// Double check: only the king can respond.
	if checkers.PopCount() >= 2 {
		return false
	}

	pinned := blockers.Has(m.From())

	// Single check: a pinned piece cannot help; otherwise the move
	// must capture the checker or block its ray.
	if checkers != BbZero {
		if pinned {
			return false
		}
		checkerSq := checkers.Lsb()
		return m.To() == checkerSq || Intermediate(kingSq, checkerSq).Has(m.To())
	}

	// No check: a pinned piece may only move along the pin line
	// through the king.
	return !pinned || Line(m.From(), m.To()).Has(kingSq)
}

// generatePawnMoves generates all pawn moves: single and double
// pushes, captures, promotions and en passant.
// Pawn captures never target the enemy king.
func (mg *Movegen) generatePawnMoves(p *position.Position, ml *moveslice.MoveSlice) {
	us := p.NextPlayer()
	them := us.Flip()
	myPawns := p.PiecesBb(us, Pawn)
	occ := p.OccupiedAll()
	oppPieces := p.OccupiedBb(them) &^ p.PiecesBb(them, King)
	promoRank := us.PromotionRankBb()

	// This algorithm shifts the own pawn bitboard in the direction of
	// pawn moves and captures and ANDs it with the target squares.
	// The from square is recovered with the backward shift.

	// single pushes - promotions are generated below
	singles := ShiftBitboard(myPawns, us.PawnDir()) &^ occ
	tmpMoves := singles &^ promoRank
	for tmpMoves != BbZero {
		toSq := tmpMoves.PopLsb()
		fromSq := toSq.To(them.PawnDir())
		ml.PushBack(CreateMove(fromSq, toSq, Quiet))
	}

	// double pushes - pawns which reached the double push rank with a
	// single step may do another one
	tmpMoves = ShiftBitboard(singles&us.PawnDoubleRank(), us.PawnDir()) &^ occ
	for tmpMoves != BbZero {
		toSq := tmpMoves.PopLsb()
		fromSq := toSq.To(them.PawnDir()).To(them.PawnDir())
		ml.PushBack(CreateMove(fromSq, toSq, Quiet))
	}

	// captures - excluding promotion captures
	for _, dir := range []Direction{West, East} {
		tmpMoves = ShiftBitboard(myPawns, Direction(us.MoveDirection())*North+dir) & oppPieces &^ promoRank
		for tmpMoves != BbZero {
			toSq := tmpMoves.PopLsb()
			fromSq := toSq.To(Direction(them.MoveDirection())*North - dir)
			ml.PushBack(CreateMove(fromSq, toSq, Capture))
		}
	}

	// en passant
	epSq := p.GetEnPassantSquare()
	if epSq != SqNone {
		for _, dir := range []Direction{West, East} {
			tmpMoves = ShiftBitboard(epSq.Bb(), Direction(them.MoveDirection())*North+dir) & myPawns
			if tmpMoves != BbZero {
				fromSq := tmpMoves.PopLsb()
				ml.PushBack(CreateMove(fromSq, epSq, EnPassantCapture))
			}
		}
	}

	// promotion pushes - each one is emitted four times
	tmpMoves = singles & promoRank
	for tmpMoves != BbZero {
		toSq := tmpMoves.PopLsb()
		fromSq := toSq.To(them.PawnDir())
		ml.PushBack(CreateMove(fromSq, toSq, KnightPromotion))
		ml.PushBack(CreateMove(fromSq, toSq, BishopPromotion))
		ml.PushBack(CreateMove(fromSq, toSq, RookPromotion))
		ml.PushBack(CreateMove(fromSq, toSq, QueenPromotion))
	}

	// promotion captures
	for _, dir := range []Direction{West, East} {
		tmpMoves = ShiftBitboard(myPawns, Direction(us.MoveDirection())*North+dir) & oppPieces & promoRank
		for tmpMoves != BbZero {
			toSq := tmpMoves.PopLsb()
			fromSq := toSq.To(Direction(them.MoveDirection())*North - dir)
			ml.PushBack(CreateMove(fromSq, toSq, KnightPromotionCapture))
			ml.PushBack(CreateMove(fromSq, toSq, BishopPromotionCapture))
			ml.PushBack(CreateMove(fromSq, toSq, RookPromotionCapture))
			ml.PushBack(CreateMove(fromSq, toSq, QueenPromotionCapture))
		}
	}
}

// generateCastling generates the castling moves the side to move still
// has rights for. The pseudo legal gate only checks that the squares
// between king and rook are empty - check related rules are part of
// the legality filter.
func (mg *Movegen) generateCastling(p *position.Position, ml *moveslice.MoveSlice) {
	us := p.NextPlayer()
	occ := p.OccupiedAll()
	cr := p.CastlingRights()
	if cr == CastlingNone {
		return
	}
	if us == White {
		if cr.Has(CastlingWhiteOO) && KingSideCastleMask(White)&occ == BbZero {
			ml.PushBack(CreateMove(SqE1, SqG1, CastleKing))
		}
		if cr.Has(CastlingWhiteOOO) && QueenSideCastleMask(White)&occ == BbZero {
			ml.PushBack(CreateMove(SqE1, SqC1, CastleQueen))
		}
	} else {
		if cr.Has(CastlingBlackOO) && KingSideCastleMask(Black)&occ == BbZero {
			ml.PushBack(CreateMove(SqE8, SqG8, CastleKing))
		}
		if cr.Has(CastlingBlackOOO) && QueenSideCastleMask(Black)&occ == BbZero {
			ml.PushBack(CreateMove(SqE8, SqC8, CastleQueen))
		}
	}
}

// generateKingMoves generates the moves of the king of the side to
// move from the pre-computed king attack table
func (mg *Movegen) generateKingMoves(p *position.Position, ml *moveslice.MoveSlice) {
	us := p.NextPlayer()
	them := us.Flip()
	fromSq := p.KingSquare(us)
	destinations := GetPseudoAttacks(King, fromSq) &^ p.OccupiedBb(us)
	oppPieces := p.OccupiedBb(them)
	for destinations != BbZero {
		toSq := destinations.PopLsb()
		if oppPieces.Has(toSq) {
			ml.PushBack(CreateMove(fromSq, toSq, Capture))
		} else {
			ml.PushBack(CreateMove(fromSq, toSq, Quiet))
		}
	}
}

// generatePieceMoves generates moves for knights, rooks, bishops and
// queens. Sliding piece destinations come from the magic attack
// tables keyed with the full board occupancy.
func (mg *Movegen) generatePieceMoves(p *position.Position, pt PieceType, ml *moveslice.MoveSlice) {
	us := p.NextPlayer()
	them := us.Flip()
	occ := p.OccupiedAll()
	oppPieces := p.OccupiedBb(them)

	pieces := p.PiecesBb(us, pt)
	for pieces != BbZero {
		fromSq := pieces.PopLsb()
		destinations := GetAttacksBb(pt, fromSq, occ) &^ p.OccupiedBb(us)
		for destinations != BbZero {
			toSq := destinations.PopLsb()
			if oppPieces.Has(toSq) {
				ml.PushBack(CreateMove(fromSq, toSq, Capture))
			} else {
				ml.PushBack(CreateMove(fromSq, toSq, Quiet))
			}
		}
	}
}
