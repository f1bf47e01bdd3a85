/*
 * HALMAT - Disassembler.
 *
 * Copyright 2024, Richard Cornwell
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy
 * of this software and associated documentation files (the "Software"), to deal
 * in the Software without restriction, including without limitation the rights
 * to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 * copies of the Software, and to permit persons to whom the Software is
 * furnished to do so, subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in
 * all copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 * FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 * AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 * LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 * OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 * SOFTWARE.
 *
 */

// Package disasm renders HALMAT code words as readable mnemonic text, one
// operator plus its operand words per line, in the style of the teacher's
// IBM 370 disassembler: a static opcode metadata table keyed by the decoded
// instruction, not a hand-written if/else chain per opcode.
package disasm

import (
	"fmt"
	"strings"

	"github.com/zaneham/halmat/internal/engine"
)

type opcode struct {
	name string
}

var opMap = map[uint32]opcode{
	0x000: {"NOP"}, 0x001: {"EXTN"}, 0x002: {"XREC"}, 0x003: {"IMRK"},
	0x004: {"SMRK"}, 0x005: {"PXRC"}, 0x007: {"IFHD"}, 0x008: {"LBL"},
	0x009: {"BRA"}, 0x00A: {"FBRA"}, 0x00B: {"DCAS"}, 0x00C: {"ECAS"},
	0x00D: {"CLBL"}, 0x00E: {"DTST"}, 0x00F: {"ETST"}, 0x010: {"DFOR"},
	0x011: {"EFOR"}, 0x012: {"CFOR"}, 0x013: {"DSMP"}, 0x014: {"ESMP"},
	0x015: {"AFOR"}, 0x016: {"CTST"}, 0x017: {"ADLP"}, 0x018: {"DLPE"},
	0x019: {"DSUB"}, 0x01A: {"IDLP"}, 0x01B: {"TSUB"}, 0x01D: {"PCAL"},
	0x01E: {"FCAL"}, 0x01F: {"READ"}, 0x020: {"RDAL"}, 0x021: {"WRIT"},
	0x022: {"FILE"}, 0x025: {"XXST"}, 0x026: {"XXND"}, 0x027: {"XXAR"},
	0x02A: {"TDEF"}, 0x02B: {"MDEF"}, 0x02C: {"FDEF"}, 0x02D: {"PDEF"},
	0x02E: {"UDEF"}, 0x02F: {"CDEF"}, 0x030: {"CLOS"}, 0x031: {"EDCL"},
	0x032: {"RTRN"}, 0x033: {"TDCL"}, 0x034: {"WAIT"}, 0x035: {"SGNL"},
	0x036: {"CANC"}, 0x037: {"TERM"}, 0x038: {"PRIO"}, 0x039: {"SCHD"},
	0x03C: {"ERON"}, 0x03D: {"ERSE"}, 0x040: {"MSHP"}, 0x041: {"VSHP"},
	0x042: {"SSHP"}, 0x043: {"ISHP"}, 0x045: {"SFST"}, 0x046: {"SFND"},
	0x047: {"SFAR"}, 0x04A: {"BFNC"}, 0x04B: {"LFNC"}, 0x04D: {"TNEQ"},
	0x04E: {"TEQU"}, 0x04F: {"TASN"}, 0x051: {"IDEF"}, 0x052: {"ICLS"},
	0x055: {"NNEQ"}, 0x056: {"NEQU"}, 0x057: {"NASN"}, 0x059: {"PMHD"},
	0x05A: {"PMAR"}, 0x05B: {"PMIN"},

	0x101: {"BASN"}, 0x102: {"BAND"}, 0x103: {"BOR"}, 0x104: {"BNOT"},
	0x105: {"BCAT"}, 0x121: {"BTOB"}, 0x1C1: {"ITOB"},

	0x201: {"CASN"}, 0x202: {"CCAT"}, 0x221: {"BTOC"}, 0x241: {"CTOC"},
	0x2A1: {"STOC"}, 0x2C1: {"ITOC"},

	0x301: {"MASN"}, 0x362: {"MADD"}, 0x363: {"MSUB"}, 0x344: {"MNEG"},
	0x368: {"MMPR"}, 0x3A5: {"MSPR"}, 0x3A6: {"MSDV"}, 0x329: {"MTRA"},
	0x371: {"MDET"}, 0x373: {"MIDN"}, 0x341: {"MTOM"}, 0x3CA: {"MINV"},
	0x387: {"VVPR"},

	0x401: {"VASN"}, 0x482: {"VADD"}, 0x483: {"VSUB"}, 0x444: {"VNEG"},
	0x46D: {"VMPR"}, 0x4A5: {"VSPR"}, 0x48B: {"VCRS"}, 0x441: {"VTOV"},
	0x46C: {"MVPR"}, 0x58E: {"VDOT"},

	0x501: {"SASN"}, 0x521: {"BTOS"}, 0x541: {"CTOS"}, 0x571: {"SIEX"},
	0x572: {"SPEX"}, 0x5A1: {"STOS"}, 0x5AB: {"SADD"}, 0x5AC: {"SSUB"},
	0x5AD: {"SSPR"}, 0x5AE: {"SSDV"}, 0x5AF: {"SEXP"}, 0x5B0: {"SNEG"},
	0x5C1: {"ITOS"},

	0x601: {"IASN"}, 0x621: {"BTOI"}, 0x641: {"CTOI"}, 0x6A1: {"STOI"},
	0x6C1: {"ITOI"}, 0x6CB: {"IADD"}, 0x6CC: {"ISUB"}, 0x6CD: {"IIPR"},
	0x6D0: {"INEG"}, 0x6D2: {"IPEX"},

	0x720: {"BTRU"}, 0x725: {"BNEQ"}, 0x726: {"BEQU"}, 0x745: {"CNEQ"},
	0x746: {"CEQU"}, 0x747: {"CNGT"}, 0x748: {"CGT"}, 0x749: {"CNLT"},
	0x74A: {"CLT"}, 0x765: {"MNEQ"}, 0x766: {"MEQU"}, 0x785: {"VNEQ"},
	0x786: {"VEQU"}, 0x7A5: {"SNEQ"}, 0x7A6: {"SEQU"}, 0x7A7: {"SNGT"},
	0x7A8: {"SGT"}, 0x7A9: {"SNLT"}, 0x7AA: {"SLT"}, 0x7C5: {"INEQ"},
	0x7C6: {"IEQU"}, 0x7C7: {"INGT"}, 0x7C8: {"IGT"}, 0x7C9: {"INLT"},
	0x7CA: {"ILT"}, 0x7E2: {"CAND"}, 0x7E3: {"COR"}, 0x7E4: {"CNOT"},

	0x801: {"STRI"}, 0x802: {"SLRI"}, 0x803: {"ELRI"}, 0x804: {"ETRI"},
	0x821: {"BINT"}, 0x841: {"CINT"}, 0x861: {"MINT"}, 0x881: {"VINT"},
	0x8A1: {"SINT"}, 0x8C1: {"IINT"}, 0x8E1: {"NINT"}, 0x8E2: {"TINT"},
	0x8E3: {"EINT"},
}

var qualName = map[uint32]string{
	0: "", 1: "SYT", 2: "INL", 3: "VAC", 4: "XPT", 5: "LIT",
	6: "IMD", 7: "AST", 8: "CSZ", 9: "ASZ", 10: "OFF",
}

// One renders a single instruction at pc as text and returns the word count
// it occupies (numop+1), so a caller can step pc forward across a listing.
func One(code []uint32, pc uint32) (string, uint32) {
	if pc >= uint32(len(code)) {
		return "", 1
	}
	w := code[pc]
	if !engine.IsOperator(w) {
		return fmt.Sprintf("%05d  (stray operand word 0x%08X)", pc, w), 1
	}

	pop := engine.GetPopcode(w)
	numop := engine.GetNumop(w)
	tag := engine.GetTag(w)

	name := opMap[pop].name
	if name == "" {
		name = fmt.Sprintf("UNK(0x%03X)", pop)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%05d  %-6s", pc, name)
	if tag != 0 {
		fmt.Fprintf(&b, " T%d", tag)
	}

	for i := uint32(1); i <= numop && pc+i < uint32(len(code)); i++ {
		ow := code[pc+i]
		if engine.IsOperator(ow) {
			fmt.Fprintf(&b, " <op!%08X>", ow)
			continue
		}
		data := engine.GetData(ow)
		qual := engine.GetQual(ow)
		qn := qualName[qual]
		if qn == "" {
			fmt.Fprintf(&b, " %d", data)
		} else {
			fmt.Fprintf(&b, " %s:%d", qn, data)
		}
	}

	return b.String(), numop + 1
}

// All renders every instruction in code as a multi-line listing.
func All(code []uint32) string {
	var b strings.Builder
	pc := uint32(0)
	for pc < uint32(len(code)) {
		line, n := One(code, pc)
		b.WriteString(line)
		b.WriteByte('\n')
		pc += n
	}
	return b.String()
}
