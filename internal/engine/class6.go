package engine

import "github.com/zaneham/halmat/internal/value"

// execClass6 implements the INTEGER arithmetic class. IPEX saturates its
// multiply loop at 31 iterations, matching the reference's fixed bound.
func (e *Engine) execClass6(popcode, numop, tag uint32) Status {
	pc := e.PC
	var result value.Value

	switch popcode {
	case popIASN:
		if numop >= 2 {
			a := e.resolve(e.Code[pc+1])
			dest := getData(e.Code[pc+2])
			e.storeSYT(dest, value.Value{Tag: value.Integer, Int: a.ToInt()})
		}
		e.PC = pc + numop + 1
		return StatusOK

	case popBTOI:
		if numop >= 1 {
			a := e.resolve(e.Code[pc+1])
			result = value.Value{Tag: value.Integer, Int: int32(a.Bits)}
		}

	case popCTOI:
		if numop >= 1 {
			a := e.resolve(e.Code[pc+1])
			result = value.Value{Tag: value.Integer, Int: int32(parseScalar(a.Str))}
		}

	case popSTOI:
		if numop >= 1 {
			a := e.resolve(e.Code[pc+1])
			result = value.Value{Tag: value.Integer, Int: int32(a.ToScalar())}
		}

	case popITOI:
		if numop >= 1 {
			a := e.resolve(e.Code[pc+1])
			result = value.Value{Tag: value.Integer, Int: a.ToInt()}
		}

	case popIADD:
		if numop >= 2 {
			a := e.resolve(e.Code[pc+1])
			b := e.resolve(e.Code[pc+2])
			result = value.Value{Tag: value.Integer, Int: a.ToInt() + b.ToInt()}
		}

	case popISUB:
		if numop >= 2 {
			a := e.resolve(e.Code[pc+1])
			b := e.resolve(e.Code[pc+2])
			result = value.Value{Tag: value.Integer, Int: a.ToInt() - b.ToInt()}
		}

	case popIIPR:
		if numop >= 2 {
			a := e.resolve(e.Code[pc+1])
			b := e.resolve(e.Code[pc+2])
			result = value.Value{Tag: value.Integer, Int: a.ToInt() * b.ToInt()}
		}

	case popINEG:
		if numop >= 1 {
			a := e.resolve(e.Code[pc+1])
			result = value.Value{Tag: value.Integer, Int: -a.ToInt()}
		}

	case popIPEX:
		if numop >= 2 {
			base := e.resolve(e.Code[pc+1])
			exp := e.resolve(e.Code[pc+2])
			result = value.Value{Tag: value.Integer, Int: intPowI(base.ToInt(), exp.ToInt())}
		}

	default:
		e.log.Error("unknown class-6 popcode", "popcode", popcode, "pc", pc)
	}

	e.storeVAC(pc, result)
	e.PC = pc + numop + 1
	return StatusOK
}

func intPowI(base, exp int32) int32 {
	result := int32(1)
	n := exp
	if n < 0 {
		n = -n
	}
	for i := int32(0); i < n && i < 31; i++ {
		result *= base
	}
	if exp < 0 {
		if result == 0 {
			return 0
		}
		return 1 / result
	}
	return result
}
