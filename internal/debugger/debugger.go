/*
 * HALMAT - Interactive debugger.
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

// Package debugger implements the interactive HALMAT console: a liner-based
// command reader over a small verb table, in the shape of the teacher's
// command/reader + command/parser pair but scoped to one engine instead of
// a channel/device hierarchy.
package debugger

import (
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/peterh/liner"

	"github.com/zaneham/halmat/internal/disasm"
	"github.com/zaneham/halmat/internal/engine"
)

// maxBreakpoints matches the reference engine's fixed breakpoint table
// size.
const maxBreakpoints = 64

type cmd struct {
	name    string
	minLen  int
	process func(d *Debugger, args []string) (bool, error)
}

var cmdList = []cmd{
	{"step", 1, (*Debugger).cmdStep},
	{"continue", 1, (*Debugger).cmdContinue},
	{"break", 2, (*Debugger).cmdBreak},
	{"delete", 3, (*Debugger).cmdDelete},
	{"print", 2, (*Debugger).cmdPrint},
	{"disasm", 3, (*Debugger).cmdDisasm},
	{"quit", 1, (*Debugger).cmdQuit},
}

// Debugger wraps an Engine with a breakpoint set and the interactive loop.
type Debugger struct {
	E           *engine.Engine
	breakpoints map[uint32]bool
	log         *slog.Logger
}

// New wraps e for interactive debugging.
func New(e *engine.Engine, logger *slog.Logger) *Debugger {
	if logger == nil {
		logger = slog.Default()
	}
	return &Debugger{E: e, breakpoints: make(map[uint32]bool), log: logger}
}

// Run starts the console command loop. It returns when the user quits or
// the input stream ends.
func (d *Debugger) Run() error {
	line := liner.NewLiner()
	defer line.Close()
	line.SetCtrlCAborts(true)

	for {
		input, err := line.Prompt("halmat> ")
		if err != nil {
			if errors.Is(err, liner.ErrPromptAborted) {
				return nil
			}
			return nil
		}
		line.AppendHistory(input)

		quit, err := d.dispatch(input)
		if err != nil {
			fmt.Println("Error: " + err.Error())
		}
		if quit {
			return nil
		}
	}
}

func (d *Debugger) dispatch(input string) (bool, error) {
	fields := strings.Fields(input)
	if len(fields) == 0 {
		return false, nil
	}
	verb := strings.ToLower(fields[0])
	for _, c := range cmdList {
		if len(verb) >= c.minLen && strings.HasPrefix(c.name, verb) {
			return c.process(d, fields[1:])
		}
	}
	return false, fmt.Errorf("unknown command %q", fields[0])
}

func (d *Debugger) cmdStep(args []string) (bool, error) {
	n := 1
	if len(args) > 0 {
		v, err := strconv.Atoi(args[0])
		if err == nil {
			n = v
		}
	}
	for i := 0; i < n; i++ {
		status, err := d.E.Step()
		if err != nil {
			return false, err
		}
		if status != engine.StatusOK {
			fmt.Printf("halted: status=%d pc=%d\n", status, d.E.PC)
			return false, nil
		}
	}
	fmt.Printf("pc=%d\n", d.E.PC)
	return false, nil
}

func (d *Debugger) cmdContinue(args []string) (bool, error) {
	for {
		if d.breakpoints[d.E.PC] {
			fmt.Printf("breakpoint hit at pc=%d\n", d.E.PC)
			return false, nil
		}
		status, err := d.E.Step()
		if err != nil {
			return false, err
		}
		if status != engine.StatusOK {
			fmt.Printf("halted: status=%d pc=%d\n", status, d.E.PC)
			return false, nil
		}
	}
}

func (d *Debugger) cmdBreak(args []string) (bool, error) {
	if len(args) < 1 {
		return false, errors.New("break requires an address")
	}
	addr, err := strconv.Atoi(args[0])
	if err != nil {
		return false, fmt.Errorf("bad address %q: %w", args[0], err)
	}
	if len(d.breakpoints) >= maxBreakpoints {
		return false, fmt.Errorf("breakpoint table full (max %d)", maxBreakpoints)
	}
	d.breakpoints[uint32(addr)] = true
	return false, nil
}

func (d *Debugger) cmdDelete(args []string) (bool, error) {
	if len(args) < 1 {
		return false, errors.New("delete requires an address")
	}
	addr, err := strconv.Atoi(args[0])
	if err != nil {
		return false, fmt.Errorf("bad address %q: %w", args[0], err)
	}
	delete(d.breakpoints, uint32(addr))
	return false, nil
}

func (d *Debugger) cmdPrint(args []string) (bool, error) {
	if len(args) < 2 {
		return false, errors.New("print requires a table and index, e.g. print vac 10")
	}
	idx, err := strconv.Atoi(args[1])
	if err != nil {
		return false, fmt.Errorf("bad index %q: %w", args[1], err)
	}
	switch strings.ToLower(args[0]) {
	case "vac":
		if idx < 0 || idx >= engine.MaxVAC {
			return false, fmt.Errorf("vac index out of range")
		}
		fmt.Printf("VAC[%d] = %+v\n", idx, d.E.VAC[idx])
	case "syt":
		if idx < 0 || idx >= engine.MaxSYT {
			return false, fmt.Errorf("syt index out of range")
		}
		fmt.Printf("SYT[%d] = %+v\n", idx, d.E.SYT[idx].Val)
	default:
		return false, fmt.Errorf("unknown table %q", args[0])
	}
	return false, nil
}

func (d *Debugger) cmdDisasm(args []string) (bool, error) {
	pc := d.E.PC
	n := 10
	if len(args) > 0 {
		v, err := strconv.Atoi(args[0])
		if err == nil {
			pc = uint32(v)
		}
	}
	if len(args) > 1 {
		v, err := strconv.Atoi(args[1])
		if err == nil {
			n = v
		}
	}
	for i := 0; i < n && pc < d.E.CodeLen; i++ {
		line, width := disasm.One(d.E.Code, pc)
		fmt.Println(line)
		pc += width
	}
	return false, nil
}

func (d *Debugger) cmdQuit(args []string) (bool, error) {
	return true, nil
}
