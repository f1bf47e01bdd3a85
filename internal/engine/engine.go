/*
 * HALMAT - Execution engine.
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

// Package engine implements the HALMAT execution engine: instruction decode,
// operand resolution, the virtual-accumulator cache, the typed arithmetic
// classes, and the class-0 control-flow state machine.
package engine

import (
	"log/slog"

	"github.com/zaneham/halmat/internal/value"
)

// Resource limits, fixed at construction time; exceeding loop or call depth
// is a stack-overflow error, never a silent truncation.
const (
	BlockWords  = 1800
	MaxBlocks   = 256
	MaxCode     = BlockWords * MaxBlocks
	MaxSYT      = 4096
	MaxLIT      = 4096
	MaxVAC      = 4096
	MaxFlow     = 2048
	MaxFrames   = 256
	MaxLoops    = 64
	MaxIOArgs   = 64
	MaxUnits    = 16
	LitStrPool  = 16384
	vacMask     = MaxVAC - 1
)

// SytEntry is one symbol-table slot: a value plus whether it has ever been
// assigned. Reading an unallocated slot yields a zero value, never a panic.
type SytEntry struct {
	Val       value.Value
	Allocated bool
}

// LitEntry is one literal-table triple, as loaded from the literal file.
type LitEntry struct {
	Type int32 // lit1 low byte
	Lit1 int32
	Lit2 int32
	Lit3 int32
}

// CallFrame is one procedure/function activation.
type CallFrame struct {
	ReturnPC uint32
	CallAddr uint32 // address of the invoking PCAL/FCAL, for RTRN's VAC write
}

// LoopInfo is one WHILE/UNTIL or FOR loop frame.
type LoopInfo struct {
	FlowNum     uint32
	CmpAddr     uint32 // address just past DTST, or the DFOR address; loop-back / re-derive target
	Tag         uint32 // 0=WHILE, 1=UNTIL (DTST only)
	IsDiscrete  bool
	DiscreteIdx uint32
}

// ioList is the per-active-I/O-statement argument staging buffer.
type ioList struct {
	Args    [MaxIOArgs]value.Value
	Types   [MaxIOArgs]uint8
	NArgs   int
	Active  bool
	IsCall  bool
}

// IOBackend is the pure interface the engine writes staged I/O lists
// through and reads input values from. Any implementation honoring the
// formatting rules in SPEC_FULL.md §6 is conformant.
type IOBackend interface {
	Write(channel int, args []value.Value, formats []uint8) error
	Read(channel int) (value.Value, error)
}

type nullIO struct{}

func (nullIO) Write(int, []value.Value, []uint8) error { return nil }
func (nullIO) Read(int) (value.Value, error)           { return value.Zero(value.Integer), nil }

// Engine owns every table a running HALMAT program touches: code, SYT, LIT,
// the literal string pool, the VAC, the loop/call stacks, and the I/O
// staging list. All storage is allocated at construction and lives for the
// engine's lifetime; values are copied on read and on write, never shared.
type Engine struct {
	Code      []uint32
	NumBlocks uint32
	CodeLen   uint32

	PC      uint32
	Halted  int // 0 = running, 1 = normal halt, -1 = error halt
	CondTrue bool

	SYT [MaxSYT]SytEntry
	LIT [MaxLIT]LitEntry

	LitStrPool    []byte
	LitStrPoolLen int
	LitStrOff     [MaxLIT]uint16
	LitStrLen     [MaxLIT]uint16

	VAC [MaxVAC]value.Value

	Frames     [MaxFrames]CallFrame
	FrameDepth int

	Loops     [MaxLoops]LoopInfo
	LoopDepth int

	Flow [MaxFlow]uint32

	litCount int

	io ioList

	CycleCount  uint64
	StmtCount   uint64
	CurrentStmt uint32

	scanCache map[uint64]uint32

	backend IOBackend
	log     *slog.Logger
}

// New constructs an Engine with all tables allocated and a no-op I/O
// backend; callers typically replace it with SetIO before running.
func New(logger *slog.Logger) *Engine {
	if logger == nil {
		logger = slog.Default()
	}
	return &Engine{
		LitStrPool: make([]byte, LitStrPool),
		scanCache:  make(map[uint64]uint32),
		backend:    nullIO{},
		log:        logger,
	}
}

// SetIO installs the I/O backend used by WRIT/READ.
func (e *Engine) SetIO(b IOBackend) {
	if b == nil {
		b = nullIO{}
	}
	e.backend = b
}

// SetLitCount records how many LIT entries the loader populated, bounding
// decodeCharLit's packed-fallback walk. Called by package loader once the
// literal table has been read.
func (e *Engine) SetLitCount(n int) {
	e.litCount = n
}

// LitCount reports how many LIT entries the loader populated.
func (e *Engine) LitCount() int {
	return e.litCount
}

// vacSlot returns the direct-mapped VAC index for an instruction address.
func vacSlot(addr uint32) uint32 {
	return addr & vacMask
}

func (e *Engine) storeVAC(addr uint32, v value.Value) {
	e.VAC[vacSlot(addr)] = v
}

// storeSYT writes an assignment/initialization result to a symbol-table
// slot, bounds-checked against MaxSYT. Out-of-range destinations are
// dropped rather than panicking, matching the resolver's bounds checks.
func (e *Engine) storeSYT(dest uint32, v value.Value) {
	if dest >= MaxSYT {
		return
	}
	e.SYT[dest].Val = v
	e.SYT[dest].Allocated = true
}

// Step executes exactly one operator (plus its operand words) and returns
// the resulting status. A stray operand word at PC advances PC by one and
// returns StatusOK without dispatching anywhere.
func (e *Engine) Step() (Status, error) {
	if e.Halted != 0 {
		if e.Halted > 0 {
			return StatusHalt, nil
		}
		return StatusErrUnknown, nil
	}

	if e.PC >= e.CodeLen {
		e.Halted = 1
		return StatusHalt, nil
	}

	w := e.Code[e.PC]

	if !isOperator(w) {
		e.PC++
		return StatusOK, nil
	}

	popcode := getPopcode(w)
	class := getClass(w)
	numop := getNumop(w)
	tag := getTag(w)

	var status Status
	switch class {
	case 0:
		status = e.execClass0(popcode, numop, tag)
	case 1:
		status = e.execClass1(popcode, numop, tag)
	case 2:
		status = e.execClass2(popcode, numop, tag)
	case 3:
		status = e.execClass3(popcode, numop, tag)
	case 4:
		status = e.execClass4(popcode, numop, tag)
	case 5:
		status = e.execClass5(popcode, numop, tag)
	case 6:
		status = e.execClass6(popcode, numop, tag)
	case 7:
		status = e.execClass7(popcode, numop, tag)
	case 8:
		status = e.execClass8(popcode, numop, tag)
	default:
		e.log.Error("unknown class", "class", class, "pc", e.PC)
		status = StatusErrUnknown
	}

	e.CycleCount++

	if status.fatal() {
		e.Halted = -1
		err := newError(status, e.PC, popcode, "step failed")
		e.log.Error("step error", "status", int(status), "pc", e.PC, "popcode", popcode)
		return status, err
	}

	return status, nil
}

// Run steps until halt or a fatal error, returning the terminal status.
func (e *Engine) Run() (Status, error) {
	for {
		status, err := e.Step()
		if status != StatusOK {
			return status, err
		}
	}
}

// Halt requests a graceful stop at the next step boundary, as used by the
// CLI driver's signal handler.
func (e *Engine) Halt() {
	if e.Halted == 0 {
		e.Halted = 1
	}
}
