package engine

import (
	"fmt"

	"github.com/zaneham/halmat/internal/value"
)

// maxCharLen is the longest CHAR value the engine represents, matching the
// reference implementation's 255-byte (1-byte length prefix) string cap.
const maxCharLen = 255

// execClass2 implements the CHAR arithmetic class.
func (e *Engine) execClass2(popcode, numop, tag uint32) Status {
	pc := e.PC
	var result value.Value

	switch popcode {
	case popCASN:
		if numop >= 2 {
			v := e.resolve(e.Code[pc+1])
			v.Tag = value.Char
			dest := getData(e.Code[pc+2])
			e.storeSYT(dest, v)
		}
		e.PC = pc + numop + 1
		return StatusOK

	case popCCAT:
		if numop >= 2 {
			a := e.resolve(e.Code[pc+1])
			b := e.resolve(e.Code[pc+2])
			s := a.Str + b.Str
			if len(s) > maxCharLen {
				s = s[:maxCharLen]
			}
			result = value.Value{Tag: value.Char, Str: s}
		}

	case popBTOC:
		if numop >= 1 {
			a := e.resolve(e.Code[pc+1])
			result = value.Value{Tag: value.Char, Str: fmt.Sprintf("%d", a.Bits)}
		}

	case popCTOC:
		if numop >= 1 {
			a := e.resolve(e.Code[pc+1])
			s := a.Str
			if len(s) > maxCharLen {
				s = s[:maxCharLen]
			}
			result = value.Value{Tag: value.Char, Str: s}
		}

	case popSTOC:
		if numop >= 1 {
			a := e.resolve(e.Code[pc+1])
			result = value.Value{Tag: value.Char, Str: formatScalar(a.ToScalar())}
		}

	case popITOC:
		if numop >= 1 {
			a := e.resolve(e.Code[pc+1])
			result = value.Value{Tag: value.Char, Str: formatInt(a.ToInt())}
		}

	default:
		e.log.Error("unknown class-2 popcode", "popcode", popcode, "pc", pc)
	}

	e.storeVAC(pc, result)
	e.PC = pc + numop + 1
	return StatusOK
}
