package engine

import (
	"math"

	"github.com/zaneham/halmat/internal/value"
)

// execClass5 implements the SCALAR arithmetic class. SSDV returns
// StatusErrDivZero immediately without storing to VAC, matching the
// reference's divide-by-zero short circuit; every other case falls through
// to the common store-and-advance tail.
func (e *Engine) execClass5(popcode, numop, tag uint32) Status {
	pc := e.PC
	var result value.Value

	switch popcode {
	case popSASN:
		if numop >= 2 {
			a := e.resolve(e.Code[pc+1])
			dest := getData(e.Code[pc+2])
			e.storeSYT(dest, value.Value{Tag: value.Scalar, Real: a.ToScalar()})
		}
		e.PC = pc + numop + 1
		return StatusOK

	case popBTOS:
		if numop >= 1 {
			a := e.resolve(e.Code[pc+1])
			result = value.Value{Tag: value.Scalar, Real: float64(a.Bits)}
		}

	case popCTOS:
		if numop >= 1 {
			a := e.resolve(e.Code[pc+1])
			result = value.Value{Tag: value.Scalar, Real: parseScalar(a.Str)}
		}

	case popSIEX:
		if numop >= 2 {
			base := e.resolve(e.Code[pc+1])
			exp := e.resolve(e.Code[pc+2])
			result = value.Value{Tag: value.Scalar, Real: intPow(base.ToScalar(), int(exp.ToInt()))}
		}

	case popSPEX:
		if numop >= 2 {
			base := e.resolve(e.Code[pc+1])
			exp := e.resolve(e.Code[pc+2])
			result = value.Value{Tag: value.Scalar, Real: math.Pow(base.ToScalar(), exp.ToScalar())}
		}

	case popSTOS:
		if numop >= 1 {
			a := e.resolve(e.Code[pc+1])
			result = value.Value{Tag: value.Scalar, Real: a.ToScalar()}
		}

	case popSADD:
		if numop >= 2 {
			a := e.resolve(e.Code[pc+1])
			b := e.resolve(e.Code[pc+2])
			result = value.Value{Tag: value.Scalar, Real: a.ToScalar() + b.ToScalar()}
		}

	case popSSUB:
		if numop >= 2 {
			a := e.resolve(e.Code[pc+1])
			b := e.resolve(e.Code[pc+2])
			result = value.Value{Tag: value.Scalar, Real: a.ToScalar() - b.ToScalar()}
		}

	case popSSPR:
		if numop >= 2 {
			a := e.resolve(e.Code[pc+1])
			b := e.resolve(e.Code[pc+2])
			result = value.Value{Tag: value.Scalar, Real: a.ToScalar() * b.ToScalar()}
		}

	case popSSDV:
		if numop >= 2 {
			a := e.resolve(e.Code[pc+1])
			b := e.resolve(e.Code[pc+2])
			if b.ToScalar() == 0.0 {
				e.PC = pc + numop + 1
				return StatusErrDivZero
			}
			result = value.Value{Tag: value.Scalar, Real: a.ToScalar() / b.ToScalar()}
		}

	case popSEXP:
		if numop >= 2 {
			base := e.resolve(e.Code[pc+1])
			exp := e.resolve(e.Code[pc+2])
			result = value.Value{Tag: value.Scalar, Real: math.Pow(base.ToScalar(), exp.ToScalar())}
		}

	case popSNEG:
		if numop >= 1 {
			a := e.resolve(e.Code[pc+1])
			result = value.Value{Tag: value.Scalar, Real: -a.ToScalar()}
		}

	case popITOS:
		if numop >= 1 {
			a := e.resolve(e.Code[pc+1])
			result = value.Value{Tag: value.Scalar, Real: float64(a.ToInt())}
		}

	default:
		e.log.Error("unknown class-5 popcode", "popcode", popcode, "pc", pc)
	}

	e.storeVAC(pc, result)
	e.PC = pc + numop + 1
	return StatusOK
}

func intPow(base float64, exp int) float64 {
	result := 1.0
	neg := exp < 0
	if neg {
		exp = -exp
	}
	for i := 0; i < exp && i < 31; i++ {
		result *= base
	}
	if neg && result != 0 {
		result = 1.0 / result
	}
	return result
}

func parseScalar(s string) float64 {
	v, _ := parseFloatLoose(s)
	return v
}
