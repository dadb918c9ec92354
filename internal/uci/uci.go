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

// Package uci contains the UciHandler data structure and functionality to
// handle the UCI protocol communication between a chess user interface
// and the chess engine.
//
// The UCI loop reads one line at a time, dispatches synchronously and
// returns before reading the next line. Input errors leave the board
// unchanged and the loop continues.
package uci

import (
	"bufio"
	"bytes"
	"fmt"
	"os"
	"regexp"
	"strconv"
	"strings"

	"github.com/op/go-logging"

	"github.com/talon-engine/talon/internal/config"
	myLogging "github.com/talon-engine/talon/internal/logging"
	"github.com/talon-engine/talon/internal/movegen"
	"github.com/talon-engine/talon/internal/position"
	"github.com/talon-engine/talon/internal/search"
	. "github.com/talon-engine/talon/internal/types"
	"github.com/talon-engine/talon/internal/version"
)

var log *logging.Logger

// UciHandler handles all communication with the chess ui via UCI
// and controls the search.
// Create an instance with NewUciHandler()
type UciHandler struct {
	InIo       *bufio.Scanner
	OutIo      *bufio.Writer
	myMoveGen  *movegen.Movegen
	mySearch   *search.Search
	myPerft    *movegen.Perft
	myPosition position.Position
	uciLog     *logging.Logger
}

// ///////////////////////////////////////////////////////////
// Public
// ///////////////////////////////////////////////////////////

// NewUciHandler creates a new UciHandler instance.
// Input / Output io can be replaced by changing the instance's
// InIo and OutIo members.
//  Example:
// 		u.InIo = bufio.NewScanner(os.Stdin)
//		u.OutIo = bufio.NewWriter(os.Stdout)
func NewUciHandler() *UciHandler {
	if log == nil {
		log = myLogging.GetLog()
	}
	return &UciHandler{
		InIo:       bufio.NewScanner(os.Stdin),
		OutIo:      bufio.NewWriter(os.Stdout),
		myMoveGen:  movegen.NewMoveGen(),
		mySearch:   search.NewSearch(),
		myPerft:    movegen.NewPerft(),
		myPosition: *position.NewPosition(),
		uciLog:     myLogging.GetUciLog(),
	}
}

// Loop starts the main loop to receive commands through the
// input stream (pipe or user)
func (u *UciHandler) Loop() {
	u.loop()
}

// Command handles a single line of UCI protocol aka command.
// Returns the uci response as string output.
// Mostly useful for debugging and unit testing.
func (u *UciHandler) Command(cmd string) string {
	tmp := u.OutIo
	buffer := new(bytes.Buffer)
	u.OutIo = bufio.NewWriter(buffer)
	u.handleReceivedCommand(cmd)
	_ = u.OutIo.Flush()
	u.OutIo = tmp
	return buffer.String()
}

// ///////////////////////////////////////////////////////////
// Private
// ///////////////////////////////////////////////////////////

func (u *UciHandler) loop() {
	for u.InIo.Scan() {
		cmd := u.InIo.Text()
		if !u.handleReceivedCommand(cmd) {
			break
		}
	}
	log.Debug("Left UCI handler loop")
}

var regexWhiteSpace = regexp.MustCompile("\\s+")

// handleReceivedCommand dispatches a single UCI command line.
// Returns false when the loop should terminate (quit command).
func (u *UciHandler) handleReceivedCommand(cmd string) bool {
	if len(strings.TrimSpace(cmd)) == 0 {
		return true
	}
	u.uciLog.Debugf("<< %s", cmd)
	tokens := regexWhiteSpace.Split(strings.TrimSpace(cmd), -1)
	switch tokens[0] {
	case "uci":
		u.uciCommand()
	case "isready":
		u.isReadyCommand()
	case "setoption":
		u.setOptionCommand(tokens)
	case "ucinewgame":
		u.uciNewGameCommand()
	case "position":
		u.positionCommand(tokens)
	case "go":
		u.goCommand(tokens)
	case "perft":
		u.perftCommand(tokens)
	case "d":
		u.printBoardCommand()
	case "quit":
		return false
	default:
		log.Warningf("Error: Unknown command: %s", cmd)
	}
	return true
}

func (u *UciHandler) uciCommand() {
	u.send("id name Talon v" + version.Version)
	u.send("id author The Talon Authors")
	u.send("uciok")
}

func (u *UciHandler) isReadyCommand() {
	u.send("readyok")
}

func (u *UciHandler) setOptionCommand(tokens []string) {
	// no options are exposed yet - log and continue
	log.Warningf("Ignoring unknown option: %s", strings.Join(tokens[1:], " "))
}

func (u *UciHandler) uciNewGameCommand() {
	u.myPosition = *position.NewPosition()
}

// positionCommand sets up the position from startpos or a fen and
// applies the given moves. An invalid fen or move leaves the current
// position unchanged.
func (u *UciHandler) positionCommand(tokens []string) {

	// build initial position
	fen := position.StartFen
	i := 1
	if len(tokens) > 1 {
		switch tokens[1] {
		case "startpos":
			i++
		case "fen":
			var fenTokens []string
			i++
			for i < len(tokens) && tokens[i] != "moves" {
				fenTokens = append(fenTokens, tokens[i])
				i++
			}
			fen = strings.Join(fenTokens, " ")
		default:
			msg := fmt.Sprintf("Command 'position' malformed: %s", strings.Join(tokens, " "))
			u.sendInfoString(msg)
			log.Warning(msg)
			return
		}
	}
	p, err := position.NewPositionFen(fen)
	if err != nil {
		msg := fmt.Sprintf("Command 'position' malformed fen: %s (%s)", fen, err)
		u.sendInfoString(msg)
		log.Warning(msg)
		return
	}

	// apply moves if given
	if i < len(tokens) && tokens[i] == "moves" {
		i++
		for ; i < len(tokens); i++ {
			move := u.myMoveGen.GetMoveFromUci(p, tokens[i])
			if move == MoveNone {
				msg := fmt.Sprintf("Command 'position' malformed move: %s", tokens[i])
				u.sendInfoString(msg)
				log.Warning(msg)
				return
			}
			p.MakeMove(move)
		}
	}

	u.myPosition = *p
	log.Debugf("New position: %s", p.StringFen())
}

// goCommand starts a synchronous search. Only depth control is
// supported - "go" without arguments searches with the configured
// default depth.
func (u *UciHandler) goCommand(tokens []string) {
	depth := config.Settings.Search.DefaultDepth
	for i := 1; i < len(tokens); i++ {
		if tokens[i] == "depth" && i+1 < len(tokens) {
			d, err := strconv.Atoi(tokens[i+1])
			if err != nil || d < 1 {
				msg := fmt.Sprintf("Command 'go depth' malformed: %s", tokens[i+1])
				u.sendInfoString(msg)
				log.Warning(msg)
				return
			}
			depth = d
			i++
		} else {
			log.Warningf("Ignoring unsupported 'go' token: %s", tokens[i])
		}
	}
	if depth > config.Settings.Search.MaxDepth {
		depth = config.Settings.Search.MaxDepth
	}

	result := u.mySearch.StartSearch(u.myPosition, depth)
	u.send(fmt.Sprintf("info depth %d score %s nodes %d time %d",
		result.Depth, result.Value.String(), result.Nodes, result.SearchTime.Milliseconds()))
	u.send("bestmove " + result.BestMove.StringUci())
}

// perftCommand runs a perft with divide output on the current position
func (u *UciHandler) perftCommand(tokens []string) {
	depth := 4 // default
	if len(tokens) > 1 {
		d, err := strconv.Atoi(tokens[1])
		if err != nil || d < 1 {
			msg := fmt.Sprintf("Command 'perft' malformed depth: %s", tokens[1])
			u.sendInfoString(msg)
			log.Warning(msg)
			return
		}
		depth = d
	}
	u.myPerft.StartPerft(u.myPosition.StringFen(), depth, true)
}

// printBoardCommand prints a human readable board diagram with the
// fen and the checkers of the side to move
func (u *UciHandler) printBoardCommand() {
	var sb strings.Builder
	sb.WriteString(u.myPosition.StringBoard())
	sb.WriteString("Fen: " + u.myPosition.StringFen() + "\n")
	checkers := u.myPosition.Checkers(u.myPosition.NextPlayer())
	if checkers != BbZero {
		sb.WriteString("Checkers:")
		for checkers != BbZero {
			sb.WriteString(" " + checkers.PopLsb().String())
		}
		sb.WriteString("\n")
	}
	u.send(sb.String())
}

func (u *UciHandler) sendInfoString(info string) {
	u.send(fmt.Sprintf("info string %s", info))
}

func (u *UciHandler) send(s string) {
	u.uciLog.Debugf(">> %s", s)
	_, _ = u.OutIo.WriteString(s + "\n")
	_ = u.OutIo.Flush()
}
