package engine

import "github.com/zaneham/halmat/internal/value"

// execClass0 is the control-flow state machine: branches, WHILE/UNTIL,
// numeric and discrete FOR, CASE, procedure/function call and return, I/O
// staging, statement marking, and end-of-block/end-of-program handling.
// Unlike classes 1-8, each case is responsible for leaving PC correctly
// positioned before returning — this is the dispatch contract described in
// SPEC_FULL.md §4.1.
func (e *Engine) execClass0(popcode, numop, tag uint32) Status {
	pc := e.PC

	advance := func() { e.PC = pc + numop + 1 }

	switch popcode {

	case popNOP, popPXRC, popEXTN, popIMRK:
		advance()
		return StatusOK

	case popXREC:
		if tag == 1 {
			e.Halted = 1
			advance()
			return StatusHalt
		}
		curBlock := pc / BlockWords
		nextBase := (curBlock + 1) * BlockWords
		if nextBase+2 < e.CodeLen {
			e.PC = nextBase + 2
		} else {
			e.Halted = 1
			return StatusHalt
		}
		return StatusOK

	case popSMRK:
		if numop >= 1 {
			e.CurrentStmt = getData(e.Code[pc+1])
		}
		e.StmtCount++
		advance()
		return StatusOK

	case popMDEF, popTDEF, popUDEF, popCDEF, popEDCL:
		advance()
		return StatusOK

	case popCLOS:
		if e.FrameDepth > 0 {
			e.FrameDepth--
			e.PC = e.Frames[e.FrameDepth].ReturnPC
			return StatusOK
		}
		e.Halted = 1
		advance()
		return StatusHalt

	case popIFHD:
		advance()
		return StatusOK

	case popFBRA:
		if numop < 2 {
			advance()
			return StatusOK
		}
		targetFlow := getData(e.Code[pc+1])
		cond := e.resolve(e.Code[pc+2])
		advance()
		if cond.Int == 0 {
			if targetFlow < MaxFlow && e.Flow[targetFlow] != 0 {
				e.PC = e.Flow[targetFlow]
			}
		}
		return StatusOK

	case popBRA:
		if numop < 1 {
			advance()
			return StatusOK
		}
		targetFlow := getData(e.Code[pc+1])
		if targetFlow < MaxFlow && e.Flow[targetFlow] != 0 {
			e.PC = e.Flow[targetFlow]
		} else {
			advance()
		}
		return StatusOK

	case popLBL:
		advance()
		return StatusOK

	case popDSMP:
		if numop >= 1 {
			flowNum := getData(e.Code[pc+1])
			if flowNum < MaxFlow {
				e.Flow[flowNum] = pc
			}
		}
		advance()
		return StatusOK

	case popESMP:
		advance()
		return StatusOK

	case popDTST:
		return e.execDTST(pc, numop, tag)

	case popCTST:
		return e.execCTST(pc, numop)

	case popETST:
		if e.LoopDepth > 0 {
			e.PC = e.Loops[e.LoopDepth-1].CmpAddr
		} else {
			advance()
		}
		return StatusOK

	case popDFOR:
		return e.execDFOR(pc, numop, tag)

	case popEFOR:
		return e.execEFOR(pc)

	case popCFOR, popAFOR:
		advance()
		return StatusOK

	case popDCAS:
		return e.execDCAS(pc, numop)

	case popCLBL:
		return e.execCLBL(pc, numop)

	case popECAS:
		advance()
		return StatusOK

	case popXXST:
		e.io.NArgs = 0
		e.io.Active = true
		e.io.IsCall = tag != 0
		advance()
		return StatusOK

	case popXXAR:
		if numop >= 1 && e.io.Active && e.io.NArgs < MaxIOArgs {
			ow := e.Code[pc+1]
			v := e.resolve(ow)
			argType := uint8(getTag1(ow))
			if argType == 6 && v.Tag == value.Scalar {
				v = value.Value{Tag: value.Integer, Int: int32(v.Real)}
			}
			e.io.Args[e.io.NArgs] = v
			e.io.Types[e.io.NArgs] = argType
			e.io.NArgs++
		}
		advance()
		return StatusOK

	case popWRIT:
		channel := 6
		if numop >= 1 {
			channel = int(getData(e.Code[pc+1]))
		}
		if err := e.backend.Write(channel, e.io.Args[:e.io.NArgs], e.io.Types[:e.io.NArgs]); err != nil {
			e.log.Error("write failed", "channel", channel, "err", err)
			advance()
			return StatusErrIO
		}
		advance()
		return StatusOK

	case popREAD:
		advance()
		return StatusOK

	case popRDAL, popFILE:
		advance()
		return StatusOK

	case popXXND:
		e.io.Active = false
		advance()
		return StatusOK

	case popPDEF, popFDEF:
		exit := e.scanForward(pc+numop+1, popPDEF, popCLOS)
		if exit >= e.CodeLen {
			exit = e.scanForward(pc+numop+1, popFDEF, popCLOS)
		}
		if exit < e.CodeLen {
			n := getNumop(e.Code[exit])
			e.PC = exit + n + 1
		} else {
			advance()
		}
		return StatusOK

	case popFCAL, popPCAL:
		return e.execCall(pc, numop)

	case popRTRN:
		if numop >= 1 && e.FrameDepth > 0 {
			ret := e.resolve(e.Code[pc+1])
			e.storeVAC(e.Frames[e.FrameDepth-1].CallAddr, ret)
		}
		if e.FrameDepth > 0 {
			e.FrameDepth--
			e.PC = e.Frames[e.FrameDepth].ReturnPC
		} else {
			advance()
		}
		return StatusOK

	case popIDEF, popICLS, popTDCL:
		advance()
		return StatusOK

	case popDSUB, popTSUB, popADLP, popDLPE, popIDLP:
		advance()
		return StatusOK

	case popSFST, popSFND, popSFAR, popBFNC, popLFNC, popTNEQ, popTEQU, popTASN, popNASN:
		advance()
		return StatusOK

	// Tasking and exception opcodes: no-ops. Operands, if any, are not
	// individually resolved here since none of these carry data the
	// engine needs; NUMOP still accounts for them via advance().
	case popWAIT, popSGNL, popCANC, popTERM, popPRIO, popSCHD,
		popERON, popERSE, popMSHP, popVSHP, popSSHP, popISHP,
		popPMHD, popPMAR, popPMIN, popNNEQ, popNEQU:
		e.log.Debug("tasking opcode ignored", "popcode", popcode, "pc", pc)
		advance()
		return StatusOK

	default:
		e.log.Error("unknown class-0 popcode", "popcode", popcode, "pc", pc)
		advance()
		return StatusOK
	}
}

func (e *Engine) execDTST(pc, numop, tag uint32) Status {
	if numop < 1 {
		e.PC = pc + numop + 1
		return StatusOK
	}
	flowNum := getData(e.Code[pc+1])
	cmpAddr := pc + numop + 1

	if e.LoopDepth >= MaxLoops {
		e.log.Error("loop stack overflow", "pc", pc)
		return StatusErrStack
	}
	e.Loops[e.LoopDepth] = LoopInfo{FlowNum: flowNum, CmpAddr: cmpAddr, Tag: tag}
	e.LoopDepth++

	if flowNum < MaxFlow {
		e.Flow[flowNum] = cmpAddr
	}

	if tag == 1 {
		// UNTIL: evaluate the body before the first test.
		scan := cmpAddr
		for scan < e.CodeLen {
			w := e.Code[scan]
			if isOperator(w) {
				pop := getPopcode(w)
				n := getNumop(w)
				if pop == popCTST {
					e.PC = scan + n + 1
					return StatusOK
				}
				scan += n + 1
			} else {
				scan++
			}
		}
	}

	e.PC = cmpAddr
	return StatusOK
}

func (e *Engine) execCTST(pc, numop uint32) Status {
	if numop < 1 {
		e.PC = pc + numop + 1
		return StatusOK
	}

	cond := e.resolve(e.Code[pc+1])

	var shouldExit bool
	if e.LoopDepth > 0 && e.Loops[e.LoopDepth-1].Tag == 1 {
		shouldExit = cond.Int != 0 // UNTIL: exit on true
	} else {
		shouldExit = cond.Int == 0 // WHILE: exit on false
	}

	if shouldExit {
		exitAddr := e.scanForward(pc+numop+1, popDTST, popETST)
		if exitAddr < e.CodeLen {
			n := getNumop(e.Code[exitAddr])
			e.PC = exitAddr + n + 1
		} else {
			e.PC = pc + numop + 1
		}
		if e.LoopDepth > 0 {
			e.LoopDepth--
		}
		return StatusOK
	}

	e.PC = pc + numop + 1
	return StatusOK
}

func (e *Engine) execDFOR(pc, numop, tag uint32) Status {
	flowNum := getData(e.Code[pc+1])
	var loopVar uint32
	if numop >= 2 {
		loopVar = getData(e.Code[pc+2])
	}

	if e.LoopDepth >= MaxLoops {
		e.log.Error("loop stack overflow", "pc", pc)
		return StatusErrStack
	}

	if flowNum < MaxFlow {
		e.Flow[flowNum] = pc
	}

	if numop == 2 {
		return e.execDiscreteFOR(pc, numop, tag, flowNum, loopVar)
	}

	if numop < 3 {
		e.PC = pc + numop + 1
		return StatusOK
	}

	initVal := e.resolve(e.Code[pc+3])
	finalVal := initVal
	if numop >= 4 {
		finalVal = e.resolve(e.Code[pc+4])
	}
	incrVal := value.Value{Tag: value.Scalar, Real: 1.0}
	if numop >= 5 {
		incrVal = e.resolve(e.Code[pc+5])
	}

	if loopVar < MaxSYT {
		e.SYT[loopVar].Val = value.Value{Tag: value.Scalar, Real: initVal.ToScalar()}
		e.SYT[loopVar].Allocated = true
	}

	e.Loops[e.LoopDepth] = LoopInfo{FlowNum: flowNum, CmpAddr: pc, Tag: tag}
	e.LoopDepth++

	cur := initVal.ToScalar()
	fin := finalVal.ToScalar()
	inc := incrVal.ToScalar()
	if (inc > 0 && cur > fin) || (inc < 0 && cur < fin) {
		exitAddr := e.scanForward(pc+numop+1, popDFOR, popEFOR)
		if exitAddr < e.CodeLen {
			n := getNumop(e.Code[exitAddr])
			e.PC = exitAddr + n + 1
		} else {
			e.PC = pc + numop + 1
		}
		e.LoopDepth--
		return StatusOK
	}

	e.PC = pc + numop + 1
	return StatusOK
}

func (e *Engine) execDiscreteFOR(pc, numop, tag, flowNum, loopVar uint32) Status {
	scan := pc + numop + 1
	var firstVal value.Value
	found := false

	for scan < e.CodeLen {
		w := e.Code[scan]
		if isOperator(w) && getPopcode(w) == popAFOR {
			n := getNumop(w)
			if n >= 1 {
				firstVal = e.resolve(e.Code[scan+1])
			}
			found = true
			break
		}
		if isOperator(w) {
			break
		}
		scan++
	}

	if !found {
		e.PC = pc + numop + 1
		return StatusOK
	}

	if loopVar < MaxSYT {
		e.SYT[loopVar].Val = firstVal
		e.SYT[loopVar].Allocated = true
	}

	e.Loops[e.LoopDepth] = LoopInfo{FlowNum: flowNum, CmpAddr: pc, Tag: tag, IsDiscrete: true}
	e.LoopDepth++

	scan = pc + numop + 1
	for scan < e.CodeLen {
		w := e.Code[scan]
		if isOperator(w) && getPopcode(w) == popAFOR {
			scan += getNumop(w) + 1
		} else {
			break
		}
	}
	e.PC = scan
	return StatusOK
}

func (e *Engine) execEFOR(pc uint32) Status {
	if e.LoopDepth == 0 {
		e.PC = pc + 1
		return StatusOK
	}
	loop := e.Loops[e.LoopDepth-1]
	dforAddr := loop.CmpAddr
	dforNumop := getNumop(e.Code[dforAddr])
	loopVar := getData(e.Code[dforAddr+2])

	if loop.IsDiscrete {
		loop.DiscreteIdx++
		scan := dforAddr + dforNumop + 1
		aforIdx := uint32(0)
		bodyStart := scan
		found := false

		for scan < e.CodeLen {
			w := e.Code[scan]
			if isOperator(w) && getPopcode(w) == popAFOR {
				n := getNumop(w)
				if aforIdx == loop.DiscreteIdx {
					if n >= 1 && loopVar < MaxSYT {
						e.SYT[loopVar].Val = e.resolve(e.Code[scan+1])
					}
					found = true
				}
				aforIdx++
				scan += n + 1
				bodyStart = scan
			} else {
				break
			}
		}

		e.Loops[e.LoopDepth-1] = loop

		if !found {
			e.LoopDepth--
			e.PC = pc + 1
			return StatusOK
		}

		e.PC = bodyStart
		return StatusOK
	}

	var finalVal value.Value
	if dforNumop >= 4 {
		finalVal = e.resolve(e.Code[dforAddr+4])
	} else {
		finalVal = e.resolve(e.Code[dforAddr+3])
	}
	incrVal := value.Value{Tag: value.Scalar, Real: 1.0}
	if dforNumop >= 5 {
		incrVal = e.resolve(e.Code[dforAddr+5])
	}

	if loopVar < MaxSYT {
		e.SYT[loopVar].Val.Real += incrVal.ToScalar()
		cur := e.SYT[loopVar].Val.Real
		fin := finalVal.ToScalar()
		inc := incrVal.ToScalar()

		var done bool
		switch {
		case inc > 0:
			done = cur > fin
		case inc < 0:
			done = cur < fin
		default:
			done = true // zero increment: terminate rather than loop forever
		}

		if done {
			e.LoopDepth--
			e.PC = pc + 1
			return StatusOK
		}
	}

	e.PC = dforAddr + dforNumop + 1
	return StatusOK
}

func (e *Engine) execDCAS(pc, numop uint32) Status {
	if numop < 2 {
		e.PC = pc + numop + 1
		return StatusOK
	}
	sel := e.resolve(e.Code[pc+2])
	var caseVal int32
	if sel.Tag == value.Scalar {
		caseVal = int32(sel.Real)
	} else {
		caseVal = sel.Int
	}

	scan := pc + numop + 1
	caseIdx := int32(0)
	found := false
	var target uint32

	for scan < e.CodeLen {
		w := e.Code[scan]
		if isOperator(w) {
			pop := getPopcode(w)
			n := getNumop(w)
			if pop == popECAS {
				if !found {
					e.PC = scan + n + 1
					return StatusOK
				}
				break
			}
			if pop == popCLBL {
				if caseIdx == caseVal && !found {
					found = true
					target = scan + n + 1
				}
				caseIdx++
			}
			scan += n + 1
		} else {
			scan++
		}
	}

	if found {
		e.PC = target
	} else {
		e.PC = pc + numop + 1
	}
	return StatusOK
}

func (e *Engine) execCLBL(pc, numop uint32) Status {
	if numop < 1 {
		e.PC = pc + numop + 1
		return StatusOK
	}
	// The exit-flow operand is not read; NUMOP steps over it, and arm exit
	// is entirely driven by the forward scan to ECAS below.
	next := pc + numop + 1
	scan := next
	for scan < e.CodeLen {
		w := e.Code[scan]
		if isOperator(w) {
			pop := getPopcode(w)
			n := getNumop(w)
			if pop == popECAS {
				e.PC = scan + n + 1
				return StatusOK
			}
			scan += n + 1
		} else {
			scan++
		}
	}
	e.PC = next
	return StatusOK
}

func (e *Engine) execCall(pc, numop uint32) Status {
	if numop < 1 {
		e.PC = pc + numop + 1
		return StatusOK
	}
	targetSyt := getData(e.Code[pc+1])

	if e.FrameDepth >= MaxFrames {
		return StatusErrStack
	}
	e.Frames[e.FrameDepth] = CallFrame{ReturnPC: pc + numop + 1, CallAddr: pc}
	e.FrameDepth++

	for i := 0; i < e.io.NArgs && i < 16; i++ {
		paramSyt := targetSyt + 1 + uint32(i)
		if paramSyt < MaxSYT {
			e.SYT[paramSyt].Val = e.io.Args[i]
			e.SYT[paramSyt].Allocated = true
		}
	}

	for blk := uint32(0); blk < e.NumBlocks; blk++ {
		base := blk * BlockWords
		atomFault := (e.Code[base+1] >> 16) & 0xFFFF
		scan := base + 2
		for scan <= base+atomFault {
			w := e.Code[scan]
			if isOperator(w) {
				pop2 := getPopcode(w)
				n := getNumop(w)
				if (pop2 == popPDEF || pop2 == popFDEF) && n >= 1 {
					defSyt := getData(e.Code[scan+1])
					if defSyt == targetSyt {
						e.PC = scan + n + 1
						return StatusOK
					}
				}
				scan += n + 1
			} else {
				scan++
			}
		}
	}

	e.FrameDepth--
	e.PC = pc + numop + 1
	return StatusOK
}
