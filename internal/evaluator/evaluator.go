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

// Package evaluator contains structures and functions to calculate
// the value of a chess position to be used in a chess engine search.
// The evaluation is a pure function over a position and returns the
// value from the point of view of the side to move.
package evaluator

import (
	"github.com/op/go-logging"

	"github.com/talon-engine/talon/internal/config"
	myLogging "github.com/talon-engine/talon/internal/logging"
	"github.com/talon-engine/talon/internal/position"
	. "github.com/talon-engine/talon/internal/types"
)

// Evaluator represents a data structure and functionality for
// evaluating chess positions by using material and mobility
// heuristics.
//  Create a new instance with NewEvaluator()
type Evaluator struct {
	log *logging.Logger
}

// NewEvaluator creates a new instance of an Evaluator
func NewEvaluator() *Evaluator {
	return &Evaluator{
		log: myLogging.GetLog(),
	}
}

// Evaluate calculates a static evaluation of the position from the
// point of view of the side to move. Values are centipawns.
// No side effects on the position.
func (e *Evaluator) Evaluate(p *position.Position) Value {
	us := p.NextPlayer()
	them := us.Flip()

	value := e.material(p, us) - e.material(p, them)

	if config.Settings.Eval.UseMobility {
		mobilityBonus := Value(config.Settings.Eval.MobilityBonus)
		value += mobilityBonus * Value(e.mobility(p, us)-e.mobility(p, them))
	}

	// small bonus for having the move
	value += Value(config.Settings.Eval.Tempo)

	return value
}

// material returns the summed up centipawn piece values for the given
// color (the king is not counted)
func (e *Evaluator) material(p *position.Position, c Color) Value {
	value := ValueZero
	for pt := Pawn; pt <= Queen; pt++ {
		value += Value(p.PiecesBb(c, pt).PopCount()) * pt.ValueOf()
	}
	return value
}

// mobility returns the number of squares reachable by the knights and
// sliders of the given color. Squares occupied by own pieces do not
// count.
func (e *Evaluator) mobility(p *position.Position, c Color) int {
	occ := p.OccupiedAll()
	own := p.OccupiedBb(c)
	mobility := 0
	for pt := Knight; pt <= Queen; pt++ {
		pieces := p.PiecesBb(c, pt)
		for pieces != BbZero {
			sq := pieces.PopLsb()
			mobility += (GetAttacksBb(pt, sq, occ) &^ own).PopCount()
		}
	}
	return mobility
}
