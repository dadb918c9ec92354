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

// Package search implements the negamax alpha-beta search of the
// engine. The search consumes the legal moves of the move generator,
// applies them with copy-make and scores the leaves with the static
// evaluator.
package search

import (
	"time"

	"github.com/op/go-logging"

	"github.com/talon-engine/talon/internal/evaluator"
	myLogging "github.com/talon-engine/talon/internal/logging"
	"github.com/talon-engine/talon/internal/movegen"
	"github.com/talon-engine/talon/internal/position"
	. "github.com/talon-engine/talon/internal/types"
)

// Search represents the data structure for the negamax alpha-beta
// search of the engine.
//  Create a new instance with NewSearch()
type Search struct {
	log  *logging.Logger
	slog *logging.Logger

	// one move generator for each ply to avoid reusing the move lists
	// during recursion
	mgList []*movegen.Movegen
	eval   *evaluator.Evaluator

	nodesVisited uint64
}

// Result holds the result of a search
type Result struct {
	BestMove   Move
	Value      Value
	Depth      int
	Nodes      uint64
	SearchTime time.Duration
}

// NewSearch creates a new Search instance
func NewSearch() *Search {
	s := &Search{
		log:    myLogging.GetLog(),
		slog:   myLogging.GetSearchLog(),
		mgList: make([]*movegen.Movegen, MaxDepth+1),
		eval:   evaluator.NewEvaluator(),
	}
	for i := 0; i <= MaxDepth; i++ {
		s.mgList[i] = movegen.NewMoveGen()
	}
	return s
}

// StartSearch searches the given position to the given depth and
// returns the best move and its value. The given position is not
// changed (copy-make).
func (s *Search) StartSearch(p position.Position, depth int) Result {
	if depth < 1 {
		depth = 1
	}
	if depth > MaxDepth {
		depth = MaxDepth
	}
	s.nodesVisited = 0
	start := time.Now()
	bestMove, value := s.rootSearch(&p, depth)
	elapsed := time.Since(start)

	result := Result{
		BestMove:   bestMove,
		Value:      value,
		Depth:      depth,
		Nodes:      s.nodesVisited,
		SearchTime: elapsed,
	}
	s.slog.Debugf("Search finished: depth %d value %s best %s nodes %d time %d ms",
		depth, value.String(), bestMove.StringUci(), s.nodesVisited, elapsed.Milliseconds())
	return result
}

// NodesVisited returns the number of nodes visited in the last search
func (s *Search) NodesVisited() uint64 {
	return s.nodesVisited
}

// //////////////////////////////////////////////////////
// // Private
// //////////////////////////////////////////////////////

// rootSearch iterates over all legal root moves with a full negamax
// search below each of them.
// Returns MoveNone and the mate or draw value when the position has
// no legal moves.
func (s *Search) rootSearch(p *position.Position, depth int) (Move, Value) {
	moves := s.mgList[0].GenerateLegalMoves(p).Clone()
	if moves.Len() == 0 {
		if p.HasCheck() {
			return MoveNone, -ValueMate
		}
		return MoveNone, ValueDraw
	}

	bestMove := MoveNone
	bestValue := ValueNA
	alpha := -ValueInf
	beta := ValueInf

	for _, m := range *moves {
		next := p.CloneWithMove(m)
		s.nodesVisited++
		value := -s.negamax(&next, depth-1, 1, -beta, -alpha)
		if value > bestValue {
			bestValue = value
			bestMove = m
			if value > alpha {
				alpha = value
			}
		}
	}
	return bestMove, bestValue
}

// negamax is the recursive part of the search with alpha-beta cut
// offs. Leafs are scored with the static evaluation. A position
// without legal moves is either mate (-ValueMate) or stalemate (draw).
func (s *Search) negamax(p *position.Position, depth int, ply int, alpha Value, beta Value) Value {
	if depth <= 0 {
		return s.eval.Evaluate(p)
	}

	moves := s.mgList[ply].GenerateLegalMoves(p)
	if moves.Len() == 0 {
		if p.HasCheck() {
			return -ValueMate
		}
		return ValueDraw
	}

	bestValue := ValueNA
	for _, m := range *moves {
		next := p.CloneWithMove(m)
		s.nodesVisited++
		value := -s.negamax(&next, depth-1, ply+1, -beta, -alpha)
		if value > bestValue {
			bestValue = value
			if value > alpha {
				alpha = value
			}
		}
		if alpha >= beta {
			break
		}
	}
	return bestValue
}
