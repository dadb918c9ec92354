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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	. "github.com/talon-engine/talon/internal/types"
)

const kiwipeteFen = "r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1"

// checkInvariants verifies the structural invariants of a position:
// piece bitboards pairwise disjoint, union of piece bitboards equals
// union of color bitboards and exactly one king per side.
func checkInvariants(t *testing.T, p *Position) {
	t.Helper()
	var unionPieces Bitboard
	for pt := King; pt <= Queen; pt++ {
		bb := p.PiecesByType(pt)
		require.Equal(t, BbZero, unionPieces&bb, "piece bitboards are not disjoint for %s", pt.String())
		unionPieces |= bb
	}
	require.Equal(t, BbZero, p.OccupiedBb(White)&p.OccupiedBb(Black), "color bitboards are not disjoint")
	require.Equal(t, p.OccupiedAll(), unionPieces, "piece bitboards do not match color bitboards")
	require.Equal(t, 1, p.PiecesBb(White, King).PopCount(), "white must have exactly one king")
	require.Equal(t, 1, p.PiecesBb(Black, King).PopCount(), "black must have exactly one king")
}

func TestNewPositionStart(t *testing.T) {
	assert := assert.New(t)
	p := NewPosition()
	assert.Equal(StartFen, p.StringFen())
	assert.Equal(White, p.NextPlayer())
	assert.Equal(CastlingAny, p.CastlingRights())
	assert.Equal(SqNone, p.GetEnPassantSquare())
	assert.Equal(32, p.OccupiedAll().PopCount())
	assert.Equal(SqE1, p.KingSquare(White))
	assert.Equal(SqE8, p.KingSquare(Black))
	checkInvariants(t, p)
}

func TestFenRoundTrip(t *testing.T) {
	fens := []string{
		StartFen,
		kiwipeteFen,
		"8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - - 0 1",
		"4k3/8/8/3Pp3/8/8/8/4K3 w - e6 0 1",
		"r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R b KQkq - 3 10",
		"8/P6k/8/8/8/8/8/K7 w - - 42 99",
	}
	for _, fen := range fens {
		p, err := NewPositionFen(fen)
		require.NoError(t, err)
		assert.Equal(t, fen, p.StringFen())
		checkInvariants(t, p)
	}
}

func TestInvalidFen(t *testing.T) {
	fens := []string{
		"",
		"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR", // missing fields
		"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP w KQkq - 0 1",
		"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNX w KQkq - 0 1",
		"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR x KQkq - 0 1",
		"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KXkq - 0 1",
		"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq e9 0 1",
		"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - x 1",
		"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 0",
	}
	for _, fen := range fens {
		_, err := NewPositionFen(fen)
		assert.Error(t, err, "fen should be invalid: %s", fen)
	}
}

func TestMakeMoveQuietAndCounters(t *testing.T) {
	assert := assert.New(t)
	p := NewPosition()

	// double pawn push sets the en passant square
	p.MakeMove(CreateMove(SqE2, SqE4, Quiet))
	assert.Equal("rnbqkbnr/pppppppp/8/8/4P3/8/PPPP1PPP/RNBQKBNR b KQkq e3 0 1", p.StringFen())
	assert.Equal(SqE3, p.GetEnPassantSquare())
	checkInvariants(t, p)

	p.MakeMove(CreateMove(SqC7, SqC5, Quiet))
	assert.Equal("rnbqkbnr/pp1ppppp/8/2p5/4P3/8/PPPP1PPP/RNBQKBNR w KQkq c6 0 2", p.StringFen())

	// knight move clears the en passant square and counts a half move
	p.MakeMove(CreateMove(SqG1, SqF3, Quiet))
	assert.Equal("rnbqkbnr/pp1ppppp/8/2p5/4P3/5N2/PPPP1PPP/RNBQKB1R b KQkq - 1 2", p.StringFen())
	assert.Equal(SqNone, p.GetEnPassantSquare())
	assert.Equal(1, p.HalfMoveClock())
	assert.Equal(2, p.FullMoveNumber())
	checkInvariants(t, p)
}

func TestMakeMoveCapture(t *testing.T) {
	assert := assert.New(t)
	p := NewPosition("rnbqkbnr/ppp1pppp/8/3p4/4P3/8/PPPP1PPP/RNBQKBNR w KQkq d6 0 2")
	p.MakeMove(CreateMove(SqE4, SqD5, Capture))
	assert.Equal("rnbqkbnr/ppp1pppp/8/3P4/8/8/PPPP1PPP/RNBQKBNR b KQkq - 0 2", p.StringFen())
	assert.Equal(0, p.HalfMoveClock())
	checkInvariants(t, p)
}

func TestMakeMoveEnPassant(t *testing.T) {
	assert := assert.New(t)
	p := NewPosition("4k3/8/8/3Pp3/8/8/8/4K3 w - e6 0 1")
	p.MakeMove(CreateMove(SqD5, SqE6, EnPassantCapture))
	assert.Equal("4k3/8/4P3/8/8/8/8/4K3 b - - 0 1", p.StringFen())
	checkInvariants(t, p)
}

func TestMakeMoveCastling(t *testing.T) {
	assert := assert.New(t)

	p := NewPosition(kiwipeteFen)
	p.MakeMove(CreateMove(SqE1, SqG1, CastleKing))
	assert.Equal("r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R4RK1 b kq - 1 1", p.StringFen())
	checkInvariants(t, p)

	p = NewPosition(kiwipeteFen)
	p.MakeMove(CreateMove(SqE1, SqC1, CastleQueen))
	assert.Equal("r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/2KR3R b kq - 1 1", p.StringFen())

	// black king side
	p = NewPosition("r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R b KQkq - 0 1")
	p.MakeMove(CreateMove(SqE8, SqG8, CastleKing))
	assert.Equal("r4rk1/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQ - 1 2", p.StringFen())
	checkInvariants(t, p)
}

func TestCastlingRightsUpdates(t *testing.T) {
	assert := assert.New(t)

	// moving the king loses both rights
	p := NewPosition(kiwipeteFen)
	p.MakeMove(CreateMove(SqE1, SqD1, Quiet))
	assert.Equal(CastlingBlack, p.CastlingRights())

	// moving a rook from its starting square loses the matching right
	p = NewPosition(kiwipeteFen)
	p.MakeMove(CreateMove(SqA1, SqB1, Quiet))
	assert.Equal(CastlingWhiteOO|CastlingBlack, p.CastlingRights())

	p = NewPosition(kiwipeteFen)
	p.MakeMove(CreateMove(SqH1, SqG1, Quiet))
	assert.Equal(CastlingWhiteOOO|CastlingBlack, p.CastlingRights())

	// capturing on a rook starting square loses the enemy right
	p = NewPosition("r3k2r/8/8/8/8/8/8/R3K2R w KQkq - 0 1")
	p.MakeMove(CreateMove(SqA1, SqA8, Capture))
	assert.Equal(CastlingWhiteOO|CastlingBlackOO, p.CastlingRights())
	checkInvariants(t, p)
}

func TestMakeMovePromotion(t *testing.T) {
	assert := assert.New(t)
	p := NewPosition("8/P6k/8/8/8/8/8/K7 w - - 0 1")
	p.MakeMove(CreateMove(SqA7, SqA8, QueenPromotion))
	assert.Equal("Q7/7k/8/8/8/8/8/K7 b - - 0 1", p.StringFen())
	checkInvariants(t, p)

	// promotion capture
	p = NewPosition("1r2k3/P7/8/8/8/8/8/4K3 w - - 0 1")
	p.MakeMove(CreateMove(SqA7, SqB8, KnightPromotionCapture))
	assert.Equal("1N2k3/8/8/8/8/8/8/4K3 b - - 0 1", p.StringFen())
	checkInvariants(t, p)
}

func TestCloneWithMove(t *testing.T) {
	assert := assert.New(t)
	p := NewPosition()
	next := p.CloneWithMove(CreateMove(SqE2, SqE4, Quiet))

	// the original position is unchanged
	assert.Equal(StartFen, p.StringFen())
	assert.Equal("rnbqkbnr/pppppppp/8/8/4P3/8/PPPP1PPP/RNBQKBNR b KQkq e3 0 1", next.StringFen())

	// and both are fully independent
	next.MakeMove(CreateMove(SqE7, SqE5, Quiet))
	assert.Equal(StartFen, p.StringFen())
}

func TestNullMoveIsNoop(t *testing.T) {
	assert := assert.New(t)
	p := NewPosition(kiwipeteFen)
	p.MakeMove(CreateMove(SqA1, SqA2, NullMove))
	assert.Equal(kiwipeteFen, p.StringFen())
}

func TestMakeMoveInvariantViolation(t *testing.T) {
	p := NewPosition()
	// no piece on e4 - this is a bug in the caller and must panic
	assert.Panics(t, func() {
		p.MakeMove(CreateMove(SqE4, SqE5, Quiet))
	})
}

func TestIsAttacked(t *testing.T) {
	assert := assert.New(t)

	p := NewPosition("4k3/8/8/8/4r3/8/4K3/8 w - - 0 1")
	// direct attacks
	assert.True(p.IsAttacked(SqE2, Black))
	assert.True(p.IsAttacked(SqA4, Black))
	// x-ray: the attacked side's king is removed from the occupancy so
	// the square behind the king is attacked as well
	assert.True(p.IsAttacked(SqE1, Black))
	// not attacked
	assert.False(p.IsAttacked(SqD1, Black))

	p = NewPosition()
	assert.True(p.IsAttacked(SqF3, White))  // pawn and knight
	assert.True(p.IsAttacked(SqF6, Black))  // pawn and knight
	assert.False(p.IsAttacked(SqE4, White)) // out of reach
}

func TestCheckers(t *testing.T) {
	assert := assert.New(t)

	p := NewPosition("4k3/8/8/8/8/8/8/K3R3 b - - 0 1")
	assert.Equal(SqE1.Bb(), p.Checkers(Black))
	assert.True(p.HasCheck())

	// double check by rook and knight
	p = NewPosition("4k3/8/3N4/8/8/8/8/K3R3 b - - 0 1")
	assert.Equal(SqE1.Bb()|SqD6.Bb(), p.Checkers(Black))

	p = NewPosition()
	assert.Equal(BbZero, p.Checkers(White))
	assert.False(p.HasCheck())
}

func TestBlockers(t *testing.T) {
	assert := assert.New(t)

	// bishop c5 is pinned by the rook on c8
	p := NewPosition("2r5/8/8/2B5/8/8/8/2K3r1 w - - 0 1")
	assert.Equal(SqC5.Bb(), p.Blockers(White))

	// knight d4 is pinned by the rook on h4
	p = NewPosition("8/8/8/8/1K1N3r/8/8/8 w - - 0 1")
	assert.Equal(SqD4.Bb(), p.Blockers(White))

	// rook f2 is pinned by the rook on h2
	p = NewPosition("8/8/8/8/8/8/1K3R1r/8 w - - 0 1")
	assert.Equal(SqF2.Bb(), p.Blockers(White))

	// two pieces on the ray - no pin
	p = NewPosition("8/8/8/8/1K1NN2r/8/8/8 w - - 0 1")
	assert.Equal(BbZero, p.Blockers(White))

	p = NewPosition()
	assert.Equal(BbZero, p.Blockers(White))
}

func TestSideNotToMoveNotInCheckAfterLegalSequence(t *testing.T) {
	// after any make-move of a legal game sequence the side which just
	// moved must not be in check
	p := NewPosition()
	moves := []Move{
		CreateMove(SqE2, SqE4, Quiet),
		CreateMove(SqE7, SqE5, Quiet),
		CreateMove(SqG1, SqF3, Quiet),
		CreateMove(SqB8, SqC6, Quiet),
		CreateMove(SqF1, SqB5, Quiet),
		CreateMove(SqG8, SqF6, Quiet),
		CreateMove(SqE1, SqG1, CastleKing),
	}
	for _, m := range moves {
		p.MakeMove(m)
		require.Equal(t, BbZero, p.Checkers(p.NextPlayer().Flip()),
			"side not to move is in check after %s", m.StringUci())
		checkInvariants(t, p)
	}
}
