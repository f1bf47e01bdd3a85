package engine

// PrescanFlow walks the full code segment once after loading and records
// every LBL and DSMP flow-number declaration into the Flow table, so BRA/
// FBRA targets resolve correctly even on a branch taken before the engine
// has executed the declaring instruction itself.
func (e *Engine) PrescanFlow() {
	pc := uint32(0)
	for pc < e.CodeLen {
		w := e.Code[pc]
		if !isOperator(w) {
			pc++
			continue
		}
		pop := getPopcode(w)
		n := getNumop(w)
		if (pop == popLBL || pop == popDSMP) && n >= 1 && pc+1 < e.CodeLen {
			flowNum := getData(e.Code[pc+1])
			if flowNum < MaxFlow {
				e.Flow[flowNum] = pc
			}
		}
		pc += n + 1
	}
}
