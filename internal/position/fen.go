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
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	. "github.com/talon-engine/talon/internal/types"
)

// regex for first part of fen (position of pieces)
var regexFenPos = regexp.MustCompile("^[0-8pPnNbBrRqQkK/]+$")

// regex for next player color in fen
var regexWorB = regexp.MustCompile("^[w|b]$")

// regex for castling rights in fen
var regexCastlingRights = regexp.MustCompile("^(K?Q?k?q?|-)$")

// regex for en passant square in fen
var regexEnPassant = regexp.MustCompile("^([a-h][36]|-)$")

// StringFen returns a string with the FEN of the current position
func (p *Position) StringFen() string {
	var fen strings.Builder
	// pieces - ranks 8 to 1 with empty file runs coalesced into digits
	for r := Rank1; r <= Rank8; r++ {
		emptySquares := 0
		for f := FileA; f <= FileH; f++ {
			pc := p.GetPiece(SquareOf(f, Rank8-r))
			if pc == PieceNone {
				emptySquares++
			} else {
				if emptySquares > 0 {
					fen.WriteString(strconv.Itoa(emptySquares))
					emptySquares = 0
				}
				fen.WriteString(pc.String())
			}
		}
		if emptySquares > 0 {
			fen.WriteString(strconv.Itoa(emptySquares))
		}
		if r < Rank8 {
			fen.WriteString("/")
		}
	}
	// next player
	fen.WriteString(" ")
	fen.WriteString(p.nextPlayer.String())
	// castling
	fen.WriteString(" ")
	fen.WriteString(p.castlingRights.String())
	// en passant
	fen.WriteString(" ")
	fen.WriteString(p.enPassantSquare.String())
	// half move clock
	fen.WriteString(" ")
	fen.WriteString(strconv.Itoa(p.halfMoveClock))
	// full move number
	fen.WriteString(" ")
	fen.WriteString(strconv.Itoa(p.fullMoveNumber))
	return fen.String()
}

// setupBoard sets up a board based on a fen. This is basically
// the only way to get a valid Position instance.
// The fen requires all six fields. The board is left unchanged if
// an error is returned.
func (p *Position) setupBoard(fen string) error {

	fen = strings.TrimSpace(fen)
	fenParts := strings.Fields(fen)

	if len(fenParts) < 6 {
		return errors.New("fen must have 6 fields: placement, color, castling, en passant, half move clock, move number")
	}

	// make sure only valid chars are used
	if !regexFenPos.MatchString(fenParts[0]) {
		return errors.New("fen position contains invalid characters")
	}

	// work on a scratch position so the receiver stays untouched
	// when the fen turns out to be invalid
	var tmp Position
	tmp.enPassantSquare = SqNone

	// fen string starts at a8 and runs to h8
	// with / jumping to file A of next lower rank
	currentSquare := SqA8

	for _, c := range fenParts[0] {
		if number, e := strconv.Atoi(string(c)); e == nil { // is number
			currentSquare = Square(int(currentSquare) + (number * int(East)))
		} else if string(c) == "/" { // rank separator
			currentSquare = currentSquare.To(South).To(South)
		} else { // piece
			piece := PieceFromChar(string(c))
			if piece == PieceNone {
				return errors.New(fmt.Sprintf("invalid piece character: %s", string(c)))
			}
			if !currentSquare.IsValid() {
				return errors.New("fen placement leaves the board")
			}
			tmp.AddPiece(piece.ColorOf(), piece.TypeOf(), currentSquare)
			currentSquare++
		}
	}
	if currentSquare != SqA2 { // after h1++ we reach a2 - a2 needs to be last current square
		return errors.New("not reached last square (h1) after reading fen")
	}

	// next player
	if !regexWorB.MatchString(fenParts[1]) {
		return errors.New("fen next player contains invalid characters")
	}
	if fenParts[1] == "b" {
		tmp.nextPlayer = Black
	}

	// castling rights
	if !regexCastlingRights.MatchString(fenParts[2]) {
		return errors.New("fen castling rights contains invalid characters")
	}
	if fenParts[2] != "-" {
		for _, c := range fenParts[2] {
			switch string(c) {
			case "K":
				tmp.castlingRights.Add(CastlingWhiteOO)
			case "Q":
				tmp.castlingRights.Add(CastlingWhiteOOO)
			case "k":
				tmp.castlingRights.Add(CastlingBlackOO)
			case "q":
				tmp.castlingRights.Add(CastlingBlackOOO)
			}
		}
	}

	// en passant
	if !regexEnPassant.MatchString(fenParts[3]) {
		return errors.New("fen en passant square contains invalid characters")
	}
	if fenParts[3] != "-" {
		tmp.enPassantSquare = MakeSquare(fenParts[3])
	}

	// half move clock (50 moves rule)
	number, e := strconv.Atoi(fenParts[4])
	if e != nil || number < 0 {
		return errors.New("fen half move clock is not a non-negative number")
	}
	tmp.halfMoveClock = number

	// full move number
	number, e = strconv.Atoi(fenParts[5])
	if e != nil || number < 1 {
		return errors.New("fen move number is not a positive number")
	}
	tmp.fullMoveNumber = number

	*p = tmp
	return nil
}
