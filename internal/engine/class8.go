package engine

import "github.com/zaneham/halmat/internal/value"

// execClass8 implements declared-variable initialization: each XINT opcode
// writes a type's default or literal initial value into the SYT slot named
// by operand1, and STRI/SLRI/ELRI/ETRI mark the static-initializer region
// boundaries the loader has already consumed by the time the engine runs.
func (e *Engine) execClass8(popcode, numop, tag uint32) Status {
	pc := e.PC

	switch popcode {
	case popSTRI, popSLRI, popELRI, popETRI:
		e.PC = pc + numop + 1
		return StatusOK

	case popBINT:
		e.initSYT(pc, numop, value.Value{Tag: value.Bit})
	case popCINT:
		e.initSYT(pc, numop, value.Value{Tag: value.Char})
	case popMINT:
		e.initSYT(pc, numop, value.Value{Tag: value.Matrix})
	case popVINT:
		e.initSYT(pc, numop, value.Value{Tag: value.Vector})
	case popSINT:
		e.initSYT(pc, numop, value.Value{Tag: value.Scalar})
	case popIINT:
		e.initSYT(pc, numop, value.Value{Tag: value.Integer})
	case popNINT:
		e.initSYT(pc, numop, value.Value{Tag: value.None})
	case popTINT:
		e.initSYT(pc, numop, value.Value{Tag: value.Struct})
	case popEINT:
		e.initSYT(pc, numop, value.Value{Tag: value.Event})

	default:
		e.log.Error("unknown class-8 popcode", "popcode", popcode, "pc", pc)
	}

	e.PC = pc + numop + 1
	return StatusOK
}

// initSYT resolves operand1 as the target SYT address and, when a second
// operand carries an initial literal, overwrites zero with its value.
func (e *Engine) initSYT(pc, numop uint32, zero value.Value) {
	if numop < 1 {
		return
	}
	target := getData(e.Code[pc+1])
	if target >= MaxSYT {
		return
	}

	v := zero
	if numop >= 2 {
		lit := e.resolve(e.Code[pc+2])
		if lit.Tag != value.None {
			switch zero.Tag {
			case value.Integer:
				v = value.Value{Tag: value.Integer, Int: lit.ToInt()}
			case value.Scalar:
				v = value.Value{Tag: value.Scalar, Real: lit.ToScalar()}
			default:
				v = lit
				v.Tag = zero.Tag
			}
		}
	}

	e.SYT[target].Val = v
	e.SYT[target].Allocated = true
}
