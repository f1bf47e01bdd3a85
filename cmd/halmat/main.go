/*
 * HALMAT - Main process.
 *
 * Copyright 2024, Richard Cornwell
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy
 * of this software and associated documentation files (the "Software"), to deal
 * in the Software without restriction, including without limitation the rights
 * to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 * copies of the Software, and to permit persons to whom the Software is
 * furnished to do so, subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in
 * all copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 * FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 * AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 * LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 * OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 * SOFTWARE.
 *
 */

package main

import (
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	getopt "github.com/pborman/getopt/v2"

	"github.com/zaneham/halmat/internal/config"
	"github.com/zaneham/halmat/internal/debugger"
	"github.com/zaneham/halmat/internal/disasm"
	"github.com/zaneham/halmat/internal/engine"
	"github.com/zaneham/halmat/internal/iounit"
	"github.com/zaneham/halmat/internal/loader"
	"github.com/zaneham/halmat/internal/logger"
)

var Logger *slog.Logger

func main() {
	optLitFile := getopt.StringLong("litfile", 'L', "", "Literal table file")
	optSrcFile := getopt.StringLong("srcfile", 's', "", "Original HAL/S source, for CHAR literal recovery")
	optUnits := getopt.StringLong("unit", 'u', "", "Comma-separated channel mappings, N=PATH,N=PATH,...")
	optEBCDIC := getopt.BoolLong("ebcdic", 'E', "Translate CHAR output on mapped units from EBCDIC (CP037) to ASCII")
	optDisasm := getopt.BoolLong("disasm", 'D', "Disassemble the binary and exit")
	optDebug := getopt.BoolLong("debug", 'd', "Enter the interactive debugger instead of running")
	optTrace := getopt.BoolLong("trace", 't', "Mirror every log record to stderr")
	optLogFile := getopt.StringLong("log", 'l', "", "Log file")
	optHelp := getopt.BoolLong("help", 'h', "Help")
	getopt.SetParameters("binary")
	getopt.Parse()

	if *optHelp {
		getopt.Usage()
		os.Exit(0)
	}

	args := getopt.Args()
	if len(args) < 1 {
		fmt.Fprintln(os.Stderr, "halmat: missing binary path")
		getopt.Usage()
		os.Exit(1)
	}
	binPath := args[0]

	var logFile *os.File
	if optLogFile != nil && *optLogFile != "" {
		var err error
		logFile, err = os.Create(*optLogFile)
		if err != nil {
			fmt.Fprintln(os.Stderr, "halmat: "+err.Error())
			os.Exit(1)
		}
	}
	programLevel := new(slog.LevelVar)
	programLevel.Set(slog.LevelInfo)
	Logger = slog.New(logger.NewHandler(logFile, &slog.HandlerOptions{Level: programLevel}, *optTrace))
	slog.SetDefault(Logger)

	e := engine.New(Logger)

	if err := loader.LoadBinaryFile(e, binPath); err != nil {
		Logger.Error(err.Error())
		os.Exit(1)
	}

	if optLitFile != nil && *optLitFile != "" {
		if err := loader.LoadLiteralsFile(e, *optLitFile); err != nil {
			Logger.Error(err.Error())
			os.Exit(1)
		}
	}

	if optSrcFile != nil && *optSrcFile != "" {
		if err := loader.LoadSourceStringsFile(e, *optSrcFile); err != nil {
			Logger.Error(err.Error())
			os.Exit(1)
		}
	}

	e.PrescanFlow()

	if *optDisasm {
		fmt.Print(disasm.All(e.Code))
		os.Exit(0)
	}

	backend := iounit.New()
	if optUnits != nil && *optUnits != "" {
		mappings, err := config.ParseUnitFlags(strings.Split(*optUnits, ","))
		if err != nil {
			Logger.Error(err.Error())
			os.Exit(1)
		}
		for _, m := range mappings {
			if err := backend.MapFile(m.Channel, m.Path, *optEBCDIC); err != nil {
				Logger.Error(err.Error())
				os.Exit(1)
			}
		}
	}
	defer backend.Close()
	e.SetIO(backend)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		Logger.Info("interrupt received, halting")
		e.Halt()
	}()

	if *optDebug {
		dbg := debugger.New(e, Logger)
		if err := dbg.Run(); err != nil {
			Logger.Error(err.Error())
			os.Exit(1)
		}
		os.Exit(0)
	}

	status, err := e.Run()
	if err != nil {
		Logger.Error(err.Error())
		os.Exit(1)
	}
	if status != engine.StatusHalt {
		Logger.Error("program terminated abnormally", "status", int(status))
		os.Exit(1)
	}

	Logger.Info("program halted normally", "cycles", e.CycleCount, "statements", e.StmtCount)
	os.Exit(0)
}
