package engine

import "github.com/zaneham/halmat/internal/value"

// fixedCmpLen is the byte count CGT/CLT/CNGT/CNLT compare over: the
// reference truncates ordering comparisons to a fixed 256-byte window,
// unlike CEQU/CNEQ which require equal lengths and equal bytes.
const fixedCmpLen = 256

// execClass7 implements the conditional/comparison class. Every case stores
// its boolean result to VAC and sets CondTrue after the switch, matching
// the reference's common tail — even an unrecognized popcode falls through
// to it rather than leaving CondTrue stale.
func (e *Engine) execClass7(popcode, numop, tag uint32) Status {
	pc := e.PC
	var cond bool

	switch popcode {
	case popBTRU:
		if numop >= 1 {
			a := e.resolve(e.Code[pc+1])
			cond = a.Truth()
		}

	case popBNEQ:
		if numop >= 2 {
			a, b := e.resolve(e.Code[pc+1]), e.resolve(e.Code[pc+2])
			cond = a.Bits != b.Bits
		}
	case popBEQU:
		if numop >= 2 {
			a, b := e.resolve(e.Code[pc+1]), e.resolve(e.Code[pc+2])
			cond = a.Bits == b.Bits
		}

	case popCNEQ:
		if numop >= 2 {
			a, b := e.resolve(e.Code[pc+1]), e.resolve(e.Code[pc+2])
			cond = !charEqual(a.Str, b.Str)
		}
	case popCEQU:
		if numop >= 2 {
			a, b := e.resolve(e.Code[pc+1]), e.resolve(e.Code[pc+2])
			cond = charEqual(a.Str, b.Str)
		}
	case popCNGT:
		if numop >= 2 {
			a, b := e.resolve(e.Code[pc+1]), e.resolve(e.Code[pc+2])
			cond = cmpFixed(a.Str, b.Str) <= 0
		}
	case popCGT:
		if numop >= 2 {
			a, b := e.resolve(e.Code[pc+1]), e.resolve(e.Code[pc+2])
			cond = cmpFixed(a.Str, b.Str) > 0
		}
	case popCNLT:
		if numop >= 2 {
			a, b := e.resolve(e.Code[pc+1]), e.resolve(e.Code[pc+2])
			cond = cmpFixed(a.Str, b.Str) >= 0
		}
	case popCLT:
		if numop >= 2 {
			a, b := e.resolve(e.Code[pc+1]), e.resolve(e.Code[pc+2])
			cond = cmpFixed(a.Str, b.Str) < 0
		}

	case popMNEQ:
		if numop >= 2 {
			a, b := e.resolve(e.Code[pc+1]), e.resolve(e.Code[pc+2])
			cond = !matrixEqual(a, b)
		}
	case popMEQU:
		if numop >= 2 {
			a, b := e.resolve(e.Code[pc+1]), e.resolve(e.Code[pc+2])
			cond = matrixEqual(a, b)
		}

	case popVNEQ:
		if numop >= 2 {
			a, b := e.resolve(e.Code[pc+1]), e.resolve(e.Code[pc+2])
			cond = !matrixEqual(a, b)
		}
	case popVEQU:
		if numop >= 2 {
			a, b := e.resolve(e.Code[pc+1]), e.resolve(e.Code[pc+2])
			cond = matrixEqual(a, b)
		}

	case popSNEQ:
		if numop >= 2 {
			a, b := e.resolve(e.Code[pc+1]), e.resolve(e.Code[pc+2])
			cond = a.ToScalar() != b.ToScalar()
		}
	case popSEQU:
		if numop >= 2 {
			a, b := e.resolve(e.Code[pc+1]), e.resolve(e.Code[pc+2])
			cond = a.ToScalar() == b.ToScalar()
		}
	case popSNGT:
		if numop >= 2 {
			a, b := e.resolve(e.Code[pc+1]), e.resolve(e.Code[pc+2])
			cond = a.ToScalar() <= b.ToScalar()
		}
	case popSGT:
		if numop >= 2 {
			a, b := e.resolve(e.Code[pc+1]), e.resolve(e.Code[pc+2])
			cond = a.ToScalar() > b.ToScalar()
		}
	case popSNLT:
		if numop >= 2 {
			a, b := e.resolve(e.Code[pc+1]), e.resolve(e.Code[pc+2])
			cond = a.ToScalar() >= b.ToScalar()
		}
	case popSLT:
		if numop >= 2 {
			a, b := e.resolve(e.Code[pc+1]), e.resolve(e.Code[pc+2])
			cond = a.ToScalar() < b.ToScalar()
		}

	case popINEQ:
		if numop >= 2 {
			a, b := e.resolve(e.Code[pc+1]), e.resolve(e.Code[pc+2])
			cond = a.ToInt() != b.ToInt()
		}
	case popIEQU:
		if numop >= 2 {
			a, b := e.resolve(e.Code[pc+1]), e.resolve(e.Code[pc+2])
			cond = a.ToInt() == b.ToInt()
		}
	case popINGT:
		if numop >= 2 {
			a, b := e.resolve(e.Code[pc+1]), e.resolve(e.Code[pc+2])
			cond = a.ToInt() <= b.ToInt()
		}
	case popIGT:
		if numop >= 2 {
			a, b := e.resolve(e.Code[pc+1]), e.resolve(e.Code[pc+2])
			cond = a.ToInt() > b.ToInt()
		}
	case popINLT:
		if numop >= 2 {
			a, b := e.resolve(e.Code[pc+1]), e.resolve(e.Code[pc+2])
			cond = a.ToInt() >= b.ToInt()
		}
	case popILT:
		if numop >= 2 {
			a, b := e.resolve(e.Code[pc+1]), e.resolve(e.Code[pc+2])
			cond = a.ToInt() < b.ToInt()
		}

	case popCAND:
		if numop >= 2 {
			a, b := e.resolve(e.Code[pc+1]), e.resolve(e.Code[pc+2])
			cond = a.Truth() && b.Truth()
		}
	case popCOR:
		if numop >= 2 {
			a, b := e.resolve(e.Code[pc+1]), e.resolve(e.Code[pc+2])
			cond = a.Truth() || b.Truth()
		}
	case popCNOT:
		if numop >= 1 {
			a := e.resolve(e.Code[pc+1])
			cond = !a.Truth()
		}

	default:
		e.log.Error("unknown class-7 popcode", "popcode", popcode, "pc", pc)
	}

	e.storeVAC(pc, value.Value{Tag: value.Integer, Int: boolToInt(cond)})
	e.CondTrue = cond
	e.PC = pc + numop + 1
	return StatusOK
}

// charEqual mirrors the reference's CEQU: equal length plus a matching
// prefix over that length — which for Go's length-aware string equality is
// simply ==, but is named separately to keep the two truncation rules
// (CEQU/CNEQ vs CGT/CLT family) visibly distinct at the call sites.
func charEqual(a, b string) bool {
	return a == b
}

// cmpFixed compares a and b the way CGT/CLT/CNGT/CNLT do: over a fixed
// 256-byte window, short strings zero-padded to that width, rather than
// over their natural shorter length.
func cmpFixed(a, b string) int {
	pa := padTo(a, fixedCmpLen)
	pb := padTo(b, fixedCmpLen)
	for i := 0; i < fixedCmpLen; i++ {
		if pa[i] != pb[i] {
			if pa[i] < pb[i] {
				return -1
			}
			return 1
		}
	}
	return 0
}

func padTo(s string, n int) []byte {
	buf := make([]byte, n)
	copy(buf, s)
	return buf
}

// matrixEqual is a genuine element-wise comparison. The original compiler
// runtime's MEQU/VEQU/VNEQ/MNEQ instead returned hardcoded constants
// regardless of operands; this implementation does real comparison instead.
func matrixEqual(a, b value.Value) bool {
	if a.Rows != b.Rows || a.Cols != b.Cols {
		return false
	}
	ae, be := a.Elements(), b.Elements()
	if len(ae) != len(be) {
		return false
	}
	for i := range ae {
		if ae[i] != be[i] {
			return false
		}
	}
	return true
}
