package engine

// Instruction word bit layout. Operator: TAG(8)|NUMOP(8)|POPCODE(12)|COPT(3)|0.
// Operand:  DATA(16)|TAG1(8)|QUAL(4)|TAG2(3)|1. Discriminated by bit 0.

func isOperator(w uint32) bool {
	return w&1 == 0
}

func isOperand(w uint32) bool {
	return w&1 == 1
}

func getTag(w uint32) uint32 {
	return (w >> 24) & 0xFF
}

func getNumop(w uint32) uint32 {
	return (w >> 16) & 0xFF
}

func getPopcode(w uint32) uint32 {
	return (w >> 4) & 0xFFF
}

func getClass(w uint32) uint32 {
	return (w >> 12) & 0xF
}

func getCopt(w uint32) uint32 {
	return (w >> 1) & 0x7
}

func getData(w uint32) uint32 {
	return (w >> 16) & 0xFFFF
}

func getTag1(w uint32) uint32 {
	return (w >> 8) & 0xFF
}

func getQual(w uint32) uint32 {
	return (w >> 4) & 0xF
}

func getTag2(w uint32) uint32 {
	return (w >> 1) & 0x7
}

// Exported wrappers for package loader and package disasm, which walk raw
// code words without an Engine to dispatch through.

func IsOperator(w uint32) bool  { return isOperator(w) }
func GetTag(w uint32) uint32    { return getTag(w) }
func GetNumop(w uint32) uint32  { return getNumop(w) }
func GetPopcode(w uint32) uint32 { return getPopcode(w) }
func GetClass(w uint32) uint32  { return getClass(w) }
func GetData(w uint32) uint32   { return getData(w) }
func GetTag1(w uint32) uint32   { return getTag1(w) }
func GetQual(w uint32) uint32   { return getQual(w) }
