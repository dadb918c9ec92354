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

package movegen

import (
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/talon-engine/talon/internal/position"
	. "github.com/talon-engine/talon/internal/types"
	"github.com/talon-engine/talon/internal/util"
)

var out = message.NewPrinter(language.English)

// Perft is a class to test the move generation of the chess engine.
// It counts the leaf nodes of the full legal move expansion to a
// fixed depth - the canonical oracle for generator correctness.
type Perft struct {
	Nodes            uint64
	CaptureCounter   uint64
	EnpassantCounter uint64
	CastleCounter    uint64
	PromotionCounter uint64
	CheckCounter     uint64
	CheckMateCounter uint64
}

// NewPerft creates a new empty Perft instance
func NewPerft() *Perft {
	return &Perft{}
}

// Perft runs a perft node count on the given position to the given
// depth and returns the number of leaf nodes.
func (perft *Perft) Perft(p *position.Position, depth int) uint64 {
	if depth <= 0 {
		return 1
	}
	perft.resetCounter()
	mgList := make([]*Movegen, depth+1)
	for i := 0; i <= depth; i++ {
		mgList[i] = NewMoveGen()
	}
	perft.Nodes = perft.miniMax(depth, p, mgList)
	return perft.Nodes
}

// StartPerft runs perft on the given fen for the given depth and
// prints the results incl. counters for captures, en passant,
// castling, promotions, checks and mates.
func (perft *Perft) StartPerft(fen string, depth int, divide bool) {
	if depth <= 0 {
		depth = 1
	}
	perft.resetCounter()

	p, err := position.NewPositionFen(fen)
	if err != nil {
		out.Printf("Perft error: %s\n", err)
		return
	}
	mgList := make([]*Movegen, depth+1)
	for i := 0; i <= depth; i++ {
		mgList[i] = NewMoveGen()
	}

	out.Printf("Performing PERFT Test for Depth %d\n", depth)
	out.Printf("FEN: %s\n", fen)
	out.Printf("-----------------------------------------\n")

	start := time.Now()
	var result uint64
	if divide {
		result = perft.divide(depth, p, mgList)
	} else {
		result = perft.miniMax(depth, p, mgList)
	}
	elapsed := time.Since(start)

	perft.Nodes = result

	out.Printf("Time         : %d ms\n", elapsed.Milliseconds())
	out.Printf("NPS          : %d nps\n", util.Nps(perft.Nodes, elapsed))
	out.Printf("Results:\n")
	out.Printf("   Nodes     : %d\n", perft.Nodes)
	out.Printf("   Captures  : %d\n", perft.CaptureCounter)
	out.Printf("   EnPassant : %d\n", perft.EnpassantCounter)
	out.Printf("   Castles   : %d\n", perft.CastleCounter)
	out.Printf("   Promotions: %d\n", perft.PromotionCounter)
	out.Printf("   Checks    : %d\n", perft.CheckCounter)
	out.Printf("   CheckMates: %d\n", perft.CheckMateCounter)
	out.Printf("-----------------------------------------\n")
	out.Printf("Finished PERFT Test for Depth %d\n\n", depth)
}

// //////////////////////////////////////////////////////
// // Private
// //////////////////////////////////////////////////////

func (perft *Perft) resetCounter() {
	perft.Nodes = 0
	perft.CaptureCounter = 0
	perft.EnpassantCounter = 0
	perft.CastleCounter = 0
	perft.PromotionCounter = 0
	perft.CheckCounter = 0
	perft.CheckMateCounter = 0
}

// miniMax counts the leaf nodes of the legal move tree using
// copy-make. At the last ply the statistics counters are updated.
func (perft *Perft) miniMax(depth int, p *position.Position, mgList []*Movegen) uint64 {
	totalNodes := uint64(0)
	moves := mgList[depth].GenerateLegalMoves(p)
	if depth > 1 {
		for _, move := range *moves {
			next := p.CloneWithMove(move)
			totalNodes += perft.miniMax(depth-1, &next, mgList)
		}
		return totalNodes
	}
	// last ply - count the moves and their properties
	for _, move := range *moves {
		totalNodes++
		mt := move.MoveType()
		if mt.IsCapture() {
			perft.CaptureCounter++
		}
		if mt == EnPassantCapture {
			perft.EnpassantCounter++
		}
		if mt.IsCastling() {
			perft.CastleCounter++
		}
		if mt.IsPromotion() {
			perft.PromotionCounter++
		}
		next := p.CloneWithMove(move)
		if next.HasCheck() {
			perft.CheckCounter++
			if !mgList[0].HasLegalMove(&next) {
				perft.CheckMateCounter++
			}
		}
	}
	return totalNodes
}

// divide prints the subtree node count for each root move. The root
// move order is the documented deterministic generation order.
func (perft *Perft) divide(depth int, p *position.Position, mgList []*Movegen) uint64 {
	totalNodes := uint64(0)
	moves := mgList[depth].GenerateLegalMoves(p).Clone()
	if depth == 1 {
		// the root moves are the leaves - update the statistics counters
		perft.miniMax(1, p, mgList)
	}
	for _, move := range *moves {
		next := p.CloneWithMove(move)
		var nodes uint64
		if depth > 1 {
			nodes = perft.miniMax(depth-1, &next, mgList)
		} else {
			nodes = 1
		}
		out.Printf("%s: %d\n", move.StringUci(), nodes)
		totalNodes += nodes
	}
	return totalNodes
}
