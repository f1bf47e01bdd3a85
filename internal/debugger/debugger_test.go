package debugger

import (
	"strconv"
	"testing"

	"github.com/zaneham/halmat/internal/engine"
	"github.com/zaneham/halmat/internal/value"
)

func newTestDebugger() *Debugger {
	e := engine.New(nil)
	e.Code = []uint32{0}
	e.CodeLen = 1
	e.NumBlocks = 1
	return New(e, nil)
}

func TestCmdBreakAndDelete(t *testing.T) {
	d := newTestDebugger()
	if _, err := d.dispatch("break 10"); err != nil {
		t.Fatalf("break: %v", err)
	}
	if !d.breakpoints[10] {
		t.Fatal("breakpoint at 10 should be set")
	}
	if _, err := d.dispatch("delete 10"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if d.breakpoints[10] {
		t.Error("breakpoint at 10 should be cleared")
	}
}

func TestCmdBreakTableFull(t *testing.T) {
	d := newTestDebugger()
	for i := 0; i < maxBreakpoints; i++ {
		if _, err := d.dispatch2("break", []string{strconv.Itoa(i)}); err != nil {
			t.Fatalf("break %d: %v", i, err)
		}
	}
	if _, err := d.cmdBreak([]string{strconv.Itoa(maxBreakpoints)}); err == nil {
		t.Error("expected an error once the breakpoint table is full")
	}
}

func TestCmdPrintVAC(t *testing.T) {
	d := newTestDebugger()
	d.E.VAC[0] = value.Value{Tag: value.Integer, Int: 7}
	if _, err := d.dispatch("print vac 0"); err != nil {
		t.Fatalf("print vac 0: %v", err)
	}
}

func TestCmdPrintUnknownTable(t *testing.T) {
	d := newTestDebugger()
	if _, err := d.dispatch("print bogus 0"); err == nil {
		t.Error("expected an error for an unknown table name")
	}
}

func TestDispatchPrefixMatch(t *testing.T) {
	d := newTestDebugger()
	quit, err := d.dispatch("q")
	if err != nil {
		t.Fatalf("dispatch(\"q\"): %v", err)
	}
	if !quit {
		t.Error("\"q\" should prefix-match quit and request exit")
	}
}

func TestDispatchUnknownCommand(t *testing.T) {
	d := newTestDebugger()
	if _, err := d.dispatch("frobnicate"); err == nil {
		t.Error("expected an error for an unrecognized command")
	}
}

func TestCmdStepAdvancesPC(t *testing.T) {
	d := newTestDebugger()
	d.E.Code = []uint32{0, 0} // two NOPs (popcode 0, numop 0)
	d.E.CodeLen = 2
	if _, err := d.dispatch("step"); err != nil {
		t.Fatalf("step: %v", err)
	}
	if d.E.PC != 1 {
		t.Errorf("PC after one step = %d, want 1", d.E.PC)
	}
}

// dispatch2 is a tiny test-local helper, since the fixed cmdList table only
// exposes (*Debugger).dispatch(string), not a pre-split verb+args pair.
func (d *Debugger) dispatch2(verb string, args []string) (bool, error) {
	line := verb
	for _, a := range args {
		line += " " + a
	}
	return d.dispatch(line)
}
