package engine

import (
	"strings"
	"testing"

	"github.com/zaneham/halmat/internal/value"
)

func mkOp(tagv, numop, popcode uint32) uint32 {
	return (tagv << 24) | (numop << 16) | (popcode << 4)
}

func mkOperand(data, tag1, qual, tag2 uint32) uint32 {
	return (data << 16) | (tag1 << 8) | (qual << 4) | (tag2 << 1) | 1
}

func mkImd(data uint32) uint32 {
	return mkOperand(data, 0, qualIMD, 0)
}

func newTestEngine(code []uint32) *Engine {
	e := New(nil)
	e.Code = code
	e.CodeLen = uint32(len(code))
	e.NumBlocks = 1
	return e
}

func TestIntegerAdd(t *testing.T) {
	code := []uint32{
		mkOp(0, 2, popIADD),
		mkImd(5),
		mkImd(7),
	}
	e := newTestEngine(code)
	status, err := e.Step()
	if err != nil || status != StatusOK {
		t.Fatalf("step failed: status=%d err=%v", status, err)
	}
	got := e.VAC[vacSlot(0)]
	if got.Tag != value.Integer || got.Int != 12 {
		t.Errorf("IADD result = %+v, want Integer 12", got)
	}
	if e.PC != 3 {
		t.Errorf("PC = %d, want 3", e.PC)
	}
}

func TestSSDVDivideByZero(t *testing.T) {
	code := []uint32{
		mkOp(0, 2, popSSDV),
		mkImd(10),
		mkImd(0),
	}
	e := newTestEngine(code)
	status, err := e.Step()
	if status != StatusErrDivZero {
		t.Fatalf("status = %d, want StatusErrDivZero", status)
	}
	if err == nil {
		t.Errorf("expected a fatal error from divide by zero")
	}
	if e.VAC[vacSlot(0)].Tag != value.None {
		t.Errorf("VAC should be untouched on divide-by-zero, got %+v", e.VAC[vacSlot(0)])
	}
}

func TestIPEXSaturatesAt31(t *testing.T) {
	code31 := []uint32{mkOp(0, 2, popIPEX), mkImd(2), mkImd(31)}
	code100 := []uint32{mkOp(0, 2, popIPEX), mkImd(2), mkImd(100)}

	e31 := newTestEngine(code31)
	if _, err := e31.Step(); err != nil {
		t.Fatalf("step failed: %v", err)
	}
	e100 := newTestEngine(code100)
	if _, err := e100.Step(); err != nil {
		t.Fatalf("step failed: %v", err)
	}

	r31 := e31.VAC[vacSlot(0)].Int
	r100 := e100.VAC[vacSlot(0)].Int
	if r31 != r100 {
		t.Errorf("IPEX should saturate at 31 iterations: exp=31 gave %d, exp=100 gave %d", r31, r100)
	}
}

func TestCCATClipsAt255(t *testing.T) {
	code := []uint32{
		mkOp(0, 2, popCCAT),
		mkOperand(0, 0, qualSYT, 0),
		mkOperand(1, 0, qualSYT, 0),
	}
	e := newTestEngine(code)
	e.SYT[0].Val = value.Value{Tag: value.Char, Str: strings.Repeat("a", 200)}
	e.SYT[1].Val = value.Value{Tag: value.Char, Str: strings.Repeat("b", 200)}

	if _, err := e.Step(); err != nil {
		t.Fatalf("step failed: %v", err)
	}
	got := e.VAC[vacSlot(0)]
	if len(got.Str) != maxCharLen {
		t.Errorf("CCAT result length = %d, want %d", len(got.Str), maxCharLen)
	}
}

func TestWhileFalseOnEntrySkipsBody(t *testing.T) {
	code := []uint32{
		mkOp(0, 1, popDTST), // 0: tag=0 (WHILE)
		mkImd(0),            // 1: flow number
		mkOp(0, 1, popCTST), // 2
		mkImd(0),            // 3: condition, false
		mkOp(0, 0, popNOP),  // 4: loop body
		mkOp(0, 0, popETST), // 5
	}
	e := newTestEngine(code)

	if _, err := e.Step(); err != nil { // DTST
		t.Fatalf("step failed: %v", err)
	}
	if e.PC != 2 {
		t.Fatalf("after DTST, PC = %d, want 2", e.PC)
	}
	if _, err := e.Step(); err != nil { // CTST
		t.Fatalf("step failed: %v", err)
	}
	if e.PC != 6 {
		t.Errorf("WHILE false on entry: PC = %d, want 6 (past ETST)", e.PC)
	}
	if e.LoopDepth != 0 {
		t.Errorf("LoopDepth = %d, want 0 after loop exit", e.LoopDepth)
	}
}

func TestCaseDispatchesToMatchingArm(t *testing.T) {
	code := []uint32{
		mkOp(0, 2, popDCAS), // 0
		mkImd(0),             // 1: flow
		mkImd(1),             // 2: selector = 1
		mkOp(0, 1, popCLBL),  // 3: arm 0
		mkImd(0),             // 4
		mkOp(0, 0, popNOP),   // 5: arm 0 body
		mkOp(0, 1, popCLBL),  // 6: arm 1
		mkImd(0),             // 7
		mkOp(0, 0, popNOP),   // 8: arm 1 body
		mkOp(0, 0, popECAS),  // 9
	}
	e := newTestEngine(code)
	if _, err := e.Step(); err != nil {
		t.Fatalf("step failed: %v", err)
	}
	if e.PC != 8 {
		t.Errorf("DCAS with selector=1: PC = %d, want 8 (arm 1 body)", e.PC)
	}
}

func TestProcedureCallAndReturn(t *testing.T) {
	const atomFault = 10
	code := []uint32{
		0,                    // 0: block header (unused)
		atomFault << 16,      // 1: atom-fault marker
		mkOp(0, 1, popPCAL),  // 2
		mkImd(42),            // 3: target SYT
		mkOp(0, 1, popPDEF),  // 4
		mkImd(42),            // 5: defining SYT
		mkOp(0, 1, popRTRN),  // 6
		mkImd(99),            // 7: return value
	}
	e := newTestEngine(code)
	e.PC = 2

	if _, err := e.Step(); err != nil { // PCAL
		t.Fatalf("step failed: %v", err)
	}
	if e.PC != 6 {
		t.Fatalf("after PCAL, PC = %d, want 6 (PDEF body)", e.PC)
	}
	if e.FrameDepth != 1 {
		t.Fatalf("FrameDepth = %d, want 1", e.FrameDepth)
	}

	if _, err := e.Step(); err != nil { // RTRN
		t.Fatalf("step failed: %v", err)
	}
	if e.PC != 4 {
		t.Errorf("after RTRN, PC = %d, want 4 (call's return address)", e.PC)
	}
	if e.FrameDepth != 0 {
		t.Errorf("FrameDepth = %d, want 0 after return", e.FrameDepth)
	}
	if got := e.VAC[vacSlot(2)]; got.Int != 99 {
		t.Errorf("VAC at call site = %+v, want Integer 99", got)
	}
}

func TestXRECTagOneHalts(t *testing.T) {
	code := []uint32{mkOp(1, 0, popXREC)}
	e := newTestEngine(code)
	status, err := e.Step()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if status != StatusHalt {
		t.Errorf("status = %d, want StatusHalt", status)
	}
	if e.Halted != 1 {
		t.Errorf("Halted = %d, want 1", e.Halted)
	}
}

func TestZeroIncrementDFORTerminates(t *testing.T) {
	code := []uint32{
		mkOp(0, 5, popDFOR), // 0
		mkImd(1),            // 1: flow
		mkOperand(2, 0, qualSYT, 0), // 2: loop variable SYT address
		mkImd(0),            // 3: initial
		mkImd(10),           // 4: final
		mkImd(0),            // 5: increment (zero)
		mkOp(0, 0, popEFOR), // 6
	}
	e := newTestEngine(code)

	if _, err := e.Step(); err != nil { // DFOR
		t.Fatalf("step failed: %v", err)
	}
	if e.PC != 6 {
		t.Fatalf("after DFOR, PC = %d, want 6 (loop body)", e.PC)
	}

	if _, err := e.Step(); err != nil { // EFOR
		t.Fatalf("step failed: %v", err)
	}
	if e.LoopDepth != 0 {
		t.Errorf("zero-increment FOR should terminate after one pass, LoopDepth = %d", e.LoopDepth)
	}
	if e.PC != 7 {
		t.Errorf("after EFOR terminates, PC = %d, want 7", e.PC)
	}
}

func TestIASNWritesSYTNotVAC(t *testing.T) {
	code := []uint32{
		mkOp(0, 2, popIASN),
		mkImd(42),
		mkOperand(9, 0, qualSYT, 0), // destination SYT slot 9
	}
	e := newTestEngine(code)
	status, err := e.Step()
	if err != nil || status != StatusOK {
		t.Fatalf("step failed: status=%d err=%v", status, err)
	}
	got := e.SYT[9]
	if !got.Allocated || got.Val.Tag != value.Integer || got.Val.Int != 42 {
		t.Errorf("SYT[9] = %+v, want Allocated Integer 42", got)
	}
	if e.VAC[vacSlot(0)].Tag != value.None {
		t.Errorf("IASN should not touch VAC, got %+v", e.VAC[vacSlot(0)])
	}
}

func TestBASNWritesSYT(t *testing.T) {
	code := []uint32{
		mkOp(0, 2, popBASN),
		mkOperand(1, 0, qualSYT, 0), // source SYT slot 1
		mkOperand(3, 0, qualSYT, 0), // destination SYT slot 3
	}
	e := newTestEngine(code)
	e.SYT[1] = SytEntry{Val: value.Value{Tag: value.Bit, Bits: 0b1011}, Allocated: true}
	if _, err := e.Step(); err != nil {
		t.Fatalf("step failed: %v", err)
	}
	got := e.SYT[3]
	if !got.Allocated || got.Val.Tag != value.Bit || got.Val.Bits != 0b1011 {
		t.Errorf("SYT[3] = %+v, want Allocated Bit 0b1011", got)
	}
}
