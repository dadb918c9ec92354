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

// Talon is a UCI compatible chess engine. Started without arguments it
// enters the UCI command loop on stdin/stdout. Command line flags allow
// running perft node counts and fixed depth searches directly.
package main

import (
	"flag"
	"runtime"

	"github.com/pkg/profile"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/talon-engine/talon/internal/config"
	"github.com/talon-engine/talon/internal/logging"
	"github.com/talon-engine/talon/internal/movegen"
	"github.com/talon-engine/talon/internal/position"
	"github.com/talon-engine/talon/internal/search"
	"github.com/talon-engine/talon/internal/uci"
	"github.com/talon-engine/talon/internal/util"
	"github.com/talon-engine/talon/internal/version"
)

var out = message.NewPrinter(language.English)

func main() {
	// command line args
	versionInfo := flag.Bool("version", false, "prints version and exits")
	configFile := flag.String("config", "./config.toml", "path to configuration settings file")
	logLvl := flag.String("loglvl", "", "standard log level\n(critical|error|warning|notice|info|debug)")
	searchLogLvl := flag.String("searchloglvl", "", "search log level\n(critical|error|warning|notice|info|debug)")
	fen := flag.String("fen", position.StartFen, "fen for perft and depth test")
	perftDepth := flag.Int("perft", 0, "starts perft with the given depth on the start position\nuse -fen to provide a different position")
	searchDepth := flag.Int("depth", 0, "searches the given position to the given depth and exits")
	cpuProfile := flag.Bool("cpuprofile", false, "write cpu profile to the working directory")
	memProfile := flag.Bool("memprofile", false, "write mem profile to the working directory")
	flag.Parse()

	if *versionInfo {
		printVersionInfo()
		return
	}

	// profiling
	if *cpuProfile {
		defer profile.Start(profile.CPUProfile, profile.ProfilePath(".")).Stop()
	} else if *memProfile {
		defer profile.Start(profile.MemProfile, profile.ProfilePath(".")).Stop()
	}

	// set config file before config.Setup() is called - otherwise the
	// default will be used
	config.ConfFile = *configFile
	config.Setup()

	// After reading the configuration file and the defaults we can now
	// overwrite settings with command line options.
	if lvl, found := config.LogLevels[*logLvl]; found {
		config.LogLevel = lvl
	}
	if lvl, found := config.LogLevels[*searchLogLvl]; found {
		config.SearchLogLevel = lvl
	}

	// resetting log level of the standard log - required as most
	// packages include the standard logger as a global var even before
	// main() is called. These loggers start with the default log level
	// and must be reset to the actual level required.
	logging.GetLog()

	// perft
	if *perftDepth != 0 {
		perft := movegen.NewPerft()
		for i := 1; i <= *perftDepth; i++ {
			perft.StartPerft(*fen, i, false)
		}
		return
	}

	// fixed depth search
	if *searchDepth != 0 {
		s := search.NewSearch()
		p := position.NewPosition(*fen)
		depth := *searchDepth
		if depth > config.Settings.Search.MaxDepth {
			depth = config.Settings.Search.MaxDepth
		}
		result := s.StartSearch(*p, depth)
		out.Printf("Best move: %s value: %s\n", result.BestMove.StringUci(), result.Value.String())
		out.Printf("Nodes: %d Time: %d ms NPS: %d\n",
			result.Nodes, result.SearchTime.Milliseconds(), util.Nps(result.Nodes, result.SearchTime))
		return
	}

	// start UCI handler
	printVersionInfo()
	u := uci.NewUciHandler()
	u.Loop()
}

func printVersionInfo() {
	out.Printf("Talon %s\n", version.Version)
	out.Printf("Environment:\n")
	out.Printf("  Using GO version %s\n", runtime.Version())
	out.Printf("  Running %s using %s as a compiler\n", runtime.GOARCH, runtime.Compiler)
	out.Printf("  Number of CPU: %d\n", runtime.NumCPU())
}
