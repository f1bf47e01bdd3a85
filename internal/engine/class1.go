package engine

import "github.com/zaneham/halmat/internal/value"

// execClass1 implements the BIT arithmetic class. Per SPEC_FULL.md §4.1,
// PC always advances by numop+1 at the end regardless of which case ran.
func (e *Engine) execClass1(popcode, numop, tag uint32) Status {
	pc := e.PC
	var result value.Value

	switch popcode {
	case popBASN:
		if numop >= 2 {
			v := e.resolve(e.Code[pc+1])
			dest := getData(e.Code[pc+2])
			e.storeSYT(dest, value.Value{Tag: value.Bit, Bits: v.Bits})
		}
		e.PC = pc + numop + 1
		return StatusOK

	case popBAND:
		if numop >= 2 {
			a := e.resolve(e.Code[pc+1])
			b := e.resolve(e.Code[pc+2])
			result = value.Value{Tag: value.Bit, Bits: a.Bits & b.Bits}
		}

	case popBOR:
		if numop >= 2 {
			a := e.resolve(e.Code[pc+1])
			b := e.resolve(e.Code[pc+2])
			result = value.Value{Tag: value.Bit, Bits: a.Bits | b.Bits}
		}

	case popBNOT:
		if numop >= 1 {
			a := e.resolve(e.Code[pc+1])
			result = value.Value{Tag: value.Bit, Bits: ^a.Bits}
		}

	case popBCAT:
		if numop >= 2 {
			a := e.resolve(e.Code[pc+1])
			b := e.resolve(e.Code[pc+2])
			result = value.Value{Tag: value.Bit, Bits: (a.Bits << 16) | (b.Bits & 0xFFFF)}
		}

	case popBTOB:
		if numop >= 1 {
			a := e.resolve(e.Code[pc+1])
			result = value.Value{Tag: value.Bit, Bits: a.Bits}
		}

	case popITOB:
		if numop >= 1 {
			a := e.resolve(e.Code[pc+1])
			result = value.Value{Tag: value.Bit, Bits: uint32(a.ToInt())}
		}

	default:
		e.log.Error("unknown class-1 popcode", "popcode", popcode, "pc", pc)
	}

	e.storeVAC(pc, result)
	e.PC = pc + numop + 1
	return StatusOK
}

func boolToInt(b bool) int32 {
	if b {
		return 1
	}
	return 0
}
