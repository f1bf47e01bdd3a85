package engine

import "github.com/zaneham/halmat/internal/value"

// resolve reads one operand word and returns the value it names. Pure:
// no table is mutated. Out-of-range SYT/LIT/VAC indices read as a zero
// value rather than panicking, matching the reference resolver's bounds
// checks.
func (e *Engine) resolve(word uint32) value.Value {
	data := getData(word)
	qual := getQual(word)

	switch qual {
	case qualSYT:
		if data < MaxSYT {
			return e.SYT[data].Val
		}

	case qualLIT:
		if data < uint32(len(e.LIT)) && data < MaxLIT {
			return e.resolveLiteral(data)
		}

	case qualVAC:
		return e.VAC[vacSlot(data)]

	case qualIMD, qualINL:
		return value.Value{Tag: value.Integer, Int: int32(data)}
	}

	return value.Value{}
}

func (e *Engine) resolveLiteral(idx uint32) value.Value {
	lit := e.LIT[idx]
	switch lit.Type {
	case litChar:
		s := e.decodeCharLit(idx)
		return value.Value{Tag: value.Char, Str: s}
	case litArith:
		return value.Value{Tag: value.Scalar, Real: value.DecodeSingle(uint32(lit.Lit2))}
	case litBit:
		return value.Value{Tag: value.Bit, Bits: uint32(lit.Lit2)}
	case litDouble:
		return value.Value{Tag: value.Scalar, Real: value.DecodeDouble(uint32(lit.Lit2), uint32(lit.Lit3))}
	default:
		return value.Value{}
	}
}

// decodeCharLit recovers the bytes of a CHAR literal: from the recovered
// string pool if present, else packed out of lit2/successive lit2 words.
func (e *Engine) decodeCharLit(idx uint32) string {
	if idx >= uint32(e.lastLitCount()) {
		return ""
	}

	if e.LitStrOff[idx] > 0 && e.LitStrLen[idx] > 0 {
		off := int(e.LitStrOff[idx])
		n := int(e.LitStrLen[idx])
		if off+n <= len(e.LitStrPool) {
			return string(e.LitStrPool[off : off+n])
		}
	}

	lit2 := uint32(e.LIT[idx].Lit2)
	slen := int(((lit2>>24)&0xFF) + 1)
	buf := make([]byte, 0, slen)

	push := func(w uint32) {
		shifts := []uint{16, 8, 0}
		for _, sh := range shifts {
			if len(buf) >= slen {
				return
			}
			buf = append(buf, byte((w>>sh)&0xFF))
		}
	}
	push(lit2)

	ext := uint32(1)
	for len(buf) < slen {
		next := idx + ext
		if next >= MaxLIT || next >= uint32(e.lastLitCount()) {
			break
		}
		w := uint32(e.LIT[next].Lit2)
		for _, sh := range []uint{24, 16, 8, 0} {
			if len(buf) >= slen {
				break
			}
			buf = append(buf, byte((w>>sh)&0xFF))
		}
		ext++
	}

	return string(buf)
}

// lastLitCount tracks how many LIT entries the loader actually populated,
// so decodeCharLit's fallback chain doesn't wander past loaded data. The
// loader sets this via SetLitCount.
func (e *Engine) lastLitCount() int {
	return e.litCount
}
