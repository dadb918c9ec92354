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

package uci

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/talon-engine/talon/internal/position"
)

func TestUciCommand(t *testing.T) {
	assert := assert.New(t)
	u := NewUciHandler()
	response := u.Command("uci")
	assert.Contains(response, "id name Talon")
	assert.Contains(response, "id author")
	assert.Contains(response, "uciok")
}

func TestIsReadyCommand(t *testing.T) {
	assert := assert.New(t)
	u := NewUciHandler()
	assert.Contains(u.Command("isready"), "readyok")
}

func TestPositionCommand(t *testing.T) {
	assert := assert.New(t)
	u := NewUciHandler()

	u.Command("position startpos moves e2e4 e7e5 g1f3")
	assert.Equal("rnbqkbnr/pppp1ppp/8/4p3/4P3/5N2/PPPP1PPP/RNBQKB1R b KQkq - 1 2",
		u.myPosition.StringFen())

	u.Command("position fen r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1 moves e1g1")
	assert.Equal("r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R4RK1 b kq - 1 1",
		u.myPosition.StringFen())

	// malformed fen leaves the position unchanged
	before := u.myPosition.StringFen()
	response := u.Command("position fen not-a-fen")
	assert.Contains(response, "info string")
	assert.Equal(before, u.myPosition.StringFen())

	// malformed move leaves the position unchanged
	response = u.Command("position startpos moves e2e5")
	assert.Contains(response, "info string")
	assert.Equal(before, u.myPosition.StringFen())

	// ucinewgame resets to the start position
	u.Command("ucinewgame")
	assert.Equal(position.StartFen, u.myPosition.StringFen())
}

func TestGoCommand(t *testing.T) {
	assert := assert.New(t)
	u := NewUciHandler()
	u.Command("position startpos")
	response := u.Command("go depth 2")
	assert.Contains(response, "bestmove ")
	assert.Contains(response, "info depth 2")

	// a mate in one is found and reported
	u.Command("position fen 6k1/R7/1R6/8/8/8/8/K7 w - - 0 1")
	response = u.Command("go depth 2")
	assert.Contains(response, "bestmove b6b8")
}

func TestPrintBoardCommand(t *testing.T) {
	assert := assert.New(t)
	u := NewUciHandler()
	u.Command("position startpos moves e2e4")
	response := u.Command("d")
	assert.Contains(response, "Fen: rnbqkbnr/pppppppp/8/8/4P3/8/PPPP1PPP/RNBQKBNR b KQkq e3 0 1")
	assert.Contains(response, "| P |")
}

func TestUnknownCommand(t *testing.T) {
	assert := assert.New(t)
	u := NewUciHandler()
	// unknown commands are logged and ignored - the loop continues
	assert.Equal("", u.Command("gibberish"))
	assert.Contains(u.Command("isready"), "readyok")
}

func TestQuitCommand(t *testing.T) {
	assert := assert.New(t)
	u := NewUciHandler()
	u.InIo = nil // not needed for direct command handling
	assert.False(u.handleReceivedCommand("quit"))
	assert.True(u.handleReceivedCommand("isready"))
}
