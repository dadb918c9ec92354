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
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCreateMove(t *testing.T) {
	assert := assert.New(t)

	m := CreateMove(SqE2, SqE4, Quiet)
	assert.Equal(SqE2, m.From())
	assert.Equal(SqE4, m.To())
	assert.Equal(Quiet, m.MoveType())
	assert.True(m.IsValid())

	m = CreateMove(SqE7, SqE8, QueenPromotion)
	assert.Equal(Queen, m.PromotionType())
	assert.True(m.MoveType().IsPromotion())
	assert.False(m.MoveType().IsCapture())

	m = CreateMove(SqE7, SqD8, KnightPromotionCapture)
	assert.Equal(Knight, m.PromotionType())
	assert.True(m.MoveType().IsPromotion())
	assert.True(m.MoveType().IsCapture())

	m = CreateMove(SqE1, SqG1, CastleKing)
	assert.True(m.MoveType().IsCastling())
	assert.False(m.MoveType().IsCapture())

	m = CreateMove(SqD5, SqE6, EnPassantCapture)
	assert.True(m.MoveType().IsCapture())
	assert.False(m.MoveType().IsPromotion())
}

func TestMoveStringUci(t *testing.T) {
	assert := assert.New(t)
	assert.Equal("e2e4", CreateMove(SqE2, SqE4, Quiet).StringUci())
	assert.Equal("e1g1", CreateMove(SqE1, SqG1, CastleKing).StringUci())
	assert.Equal("e7e8q", CreateMove(SqE7, SqE8, QueenPromotion).StringUci())
	assert.Equal("a7b8n", CreateMove(SqA7, SqB8, KnightPromotionCapture).StringUci())
	assert.Equal("NoMove", MoveNone.StringUci())
}

func TestMoveNone(t *testing.T) {
	assert := assert.New(t)
	assert.False(MoveNone.IsValid())
	// every move type keeps its 4 bits
	for mt := Quiet; mt < MtLength; mt++ {
		m := CreateMove(SqA2, SqB3, mt)
		assert.Equal(mt, m.MoveType())
		assert.Equal(SqA2, m.From())
		assert.Equal(SqB3, m.To())
	}
}
