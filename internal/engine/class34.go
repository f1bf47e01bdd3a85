package engine

import "github.com/zaneham/halmat/internal/value"

// execClass3 implements the MATRIX arithmetic class.
func (e *Engine) execClass3(popcode, numop, tag uint32) Status {
	pc := e.PC
	var result value.Value

	switch popcode {
	case popMASN:
		if numop >= 2 {
			v := e.resolve(e.Code[pc+1])
			v.Tag = value.Matrix
			dest := getData(e.Code[pc+2])
			e.storeSYT(dest, v)
		}
		e.PC = pc + numop + 1
		return StatusOK

	case popMADD:
		if numop >= 2 {
			a := e.resolve(e.Code[pc+1])
			b := e.resolve(e.Code[pc+2])
			result = matrixElementwise(a, b, func(x, y float64) float64 { return x + y })
		}

	case popMSUB:
		if numop >= 2 {
			a := e.resolve(e.Code[pc+1])
			b := e.resolve(e.Code[pc+2])
			result = matrixElementwise(a, b, func(x, y float64) float64 { return x - y })
		}

	case popMNEG:
		if numop >= 1 {
			a := e.resolve(e.Code[pc+1])
			result = matrixUnary(a, func(x float64) float64 { return -x })
		}

	case popMMPR:
		if numop >= 2 {
			a := e.resolve(e.Code[pc+1])
			b := e.resolve(e.Code[pc+2])
			result = matrixMultiply(a, b)
		}

	case popMSPR:
		if numop >= 2 {
			s := e.resolve(e.Code[pc+1])
			m := e.resolve(e.Code[pc+2])
			k := s.ToScalar()
			result = matrixUnary(m, func(x float64) float64 { return x * k })
		}

	case popMSDV:
		if numop >= 2 {
			m := e.resolve(e.Code[pc+1])
			s := e.resolve(e.Code[pc+2])
			k := s.ToScalar()
			if k == 0 {
				return StatusErrDivZero
			}
			result = matrixUnary(m, func(x float64) float64 { return x / k })
		}

	case popMTRA:
		if numop >= 1 {
			m := e.resolve(e.Code[pc+1])
			result = matrixTranspose(m)
		}

	case popMDET:
		if numop >= 1 {
			m := e.resolve(e.Code[pc+1])
			result = value.Value{Tag: value.Scalar, Real: matrixDeterminant(m)}
		}

	case popMIDN:
		size := 2
		if numop >= 1 {
			sz := e.resolve(e.Code[pc+1])
			if n := int(sz.ToInt()); n > 0 {
				size = n
			}
		}
		result = matrixIdentity(size)

	case popMTOM:
		if numop >= 1 {
			a := e.resolve(e.Code[pc+1])
			result = a
			result.Tag = value.Matrix
		}

	case popMINV:
		if numop >= 1 {
			m := e.resolve(e.Code[pc+1])
			inv, ok := matrixInvert(m)
			if !ok {
				return StatusErrOverflow
			}
			result = inv
		}

	case popVVPR:
		if numop >= 2 {
			a := e.resolve(e.Code[pc+1])
			b := e.resolve(e.Code[pc+2])
			result = vectorOuter(a, b)
		}

	default:
		e.log.Error("unknown class-3 popcode", "popcode", popcode, "pc", pc)
	}

	e.storeVAC(pc, result)
	e.PC = pc + numop + 1
	return StatusOK
}

// execClass4 implements the VECTOR arithmetic class.
func (e *Engine) execClass4(popcode, numop, tag uint32) Status {
	pc := e.PC
	var result value.Value

	switch popcode {
	case popVASN:
		if numop >= 2 {
			v := e.resolve(e.Code[pc+1])
			v.Tag = value.Vector
			dest := getData(e.Code[pc+2])
			e.storeSYT(dest, v)
		}
		e.PC = pc + numop + 1
		return StatusOK

	case popVADD:
		if numop >= 2 {
			a := e.resolve(e.Code[pc+1])
			b := e.resolve(e.Code[pc+2])
			result = matrixElementwise(a, b, func(x, y float64) float64 { return x + y })
			result.Tag = value.Vector
		}

	case popVSUB:
		if numop >= 2 {
			a := e.resolve(e.Code[pc+1])
			b := e.resolve(e.Code[pc+2])
			result = matrixElementwise(a, b, func(x, y float64) float64 { return x - y })
			result.Tag = value.Vector
		}

	case popVNEG:
		if numop >= 1 {
			a := e.resolve(e.Code[pc+1])
			result = matrixUnary(a, func(x float64) float64 { return -x })
			result.Tag = value.Vector
		}

	case popVMPR:
		if numop >= 2 {
			v := e.resolve(e.Code[pc+1])
			m := e.resolve(e.Code[pc+2])
			result = vectorTimesMatrix(v, m)
		}

	case popVSPR:
		if numop >= 2 {
			s := e.resolve(e.Code[pc+1])
			v := e.resolve(e.Code[pc+2])
			k := s.ToScalar()
			result = matrixUnary(v, func(x float64) float64 { return x * k })
			result.Tag = value.Vector
		}

	case popVCRS:
		if numop >= 2 {
			a := e.resolve(e.Code[pc+1])
			b := e.resolve(e.Code[pc+2])
			result = vectorCross(a, b)
		}

	case popVTOV:
		if numop >= 1 {
			a := e.resolve(e.Code[pc+1])
			result = a
			result.Tag = value.Vector
		}

	case popMVPR:
		if numop >= 2 {
			m := e.resolve(e.Code[pc+1])
			v := e.resolve(e.Code[pc+2])
			result = matrixTimesVector(m, v)
		}

	case popVDOT:
		if numop >= 2 {
			a := e.resolve(e.Code[pc+1])
			b := e.resolve(e.Code[pc+2])
			result = value.Value{Tag: value.Scalar, Real: vectorDot(a, b)}
		}

	default:
		e.log.Error("unknown class-4 popcode", "popcode", popcode, "pc", pc)
	}

	e.storeVAC(pc, result)
	e.PC = pc + numop + 1
	return StatusOK
}

func matrixElementwise(a, b value.Value, op func(x, y float64) float64) value.Value {
	rows, cols := a.Rows, a.Cols
	if rows == 0 && cols == 0 {
		rows, cols = b.Rows, b.Cols
	}
	out := value.Value{Tag: value.Matrix, Rows: rows, Cols: cols}
	ae := a.Elements()
	be := b.Elements()
	n := rows * cols
	if n > value.MaxMatrixElements {
		n = value.MaxMatrixElements
	}
	for i := 0; i < n; i++ {
		var x, y float64
		if i < len(ae) {
			x = ae[i]
		}
		if i < len(be) {
			y = be[i]
		}
		out.Nums[i] = op(x, y)
	}
	return out
}

func matrixUnary(a value.Value, op func(x float64) float64) value.Value {
	out := value.Value{Tag: a.Tag, Rows: a.Rows, Cols: a.Cols}
	for i, x := range a.Elements() {
		out.Nums[i] = op(x)
	}
	return out
}

func matrixMultiply(a, b value.Value) value.Value {
	if a.Cols != b.Rows || a.Cols == 0 {
		return value.Value{Tag: value.Matrix}
	}
	out := value.Value{Tag: value.Matrix, Rows: a.Rows, Cols: b.Cols}
	for i := 0; i < a.Rows; i++ {
		for j := 0; j < b.Cols; j++ {
			var sum float64
			for k := 0; k < a.Cols; k++ {
				sum += a.Nums[i*a.Cols+k] * b.Nums[k*b.Cols+j]
			}
			idx := i*b.Cols + j
			if idx < value.MaxMatrixElements {
				out.Nums[idx] = sum
			}
		}
	}
	return out
}

func matrixTranspose(m value.Value) value.Value {
	out := value.Value{Tag: value.Matrix, Rows: m.Cols, Cols: m.Rows}
	for i := 0; i < m.Rows; i++ {
		for j := 0; j < m.Cols; j++ {
			src := i*m.Cols + j
			dst := j*m.Rows + i
			if src < len(m.Nums) && dst < value.MaxMatrixElements {
				out.Nums[dst] = m.Nums[src]
			}
		}
	}
	return out
}

func matrixDeterminant(m value.Value) float64 {
	n := m.Rows
	if n != m.Cols || n == 0 {
		return 0
	}
	a := make([][]float64, n)
	for i := range a {
		a[i] = make([]float64, n)
		for j := 0; j < n; j++ {
			a[i][j] = m.Nums[i*n+j]
		}
	}
	det := 1.0
	for i := 0; i < n; i++ {
		piv := i
		for r := i + 1; r < n; r++ {
			if abs(a[r][i]) > abs(a[piv][i]) {
				piv = r
			}
		}
		if a[piv][i] == 0 {
			return 0
		}
		if piv != i {
			a[i], a[piv] = a[piv], a[i]
			det = -det
		}
		det *= a[i][i]
		for r := i + 1; r < n; r++ {
			f := a[r][i] / a[i][i]
			for c := i; c < n; c++ {
				a[r][c] -= f * a[i][c]
			}
		}
	}
	return det
}

func matrixIdentity(size int) value.Value {
	if size <= 0 {
		size = 1
	}
	if size > 8 {
		size = 8
	}
	out := value.Value{Tag: value.Matrix, Rows: size, Cols: size}
	for i := 0; i < size; i++ {
		out.Nums[i*size+i] = 1.0
	}
	return out
}

func matrixInvert(m value.Value) (value.Value, bool) {
	n := m.Rows
	if n != m.Cols || n == 0 {
		return value.Value{}, false
	}
	a := make([][]float64, n)
	inv := make([][]float64, n)
	for i := range a {
		a[i] = make([]float64, n)
		inv[i] = make([]float64, n)
		for j := 0; j < n; j++ {
			a[i][j] = m.Nums[i*n+j]
		}
		inv[i][i] = 1.0
	}
	for i := 0; i < n; i++ {
		piv := i
		for r := i + 1; r < n; r++ {
			if abs(a[r][i]) > abs(a[piv][i]) {
				piv = r
			}
		}
		if a[piv][i] == 0 {
			return value.Value{}, false
		}
		a[i], a[piv] = a[piv], a[i]
		inv[i], inv[piv] = inv[piv], inv[i]
		pivVal := a[i][i]
		for c := 0; c < n; c++ {
			a[i][c] /= pivVal
			inv[i][c] /= pivVal
		}
		for r := 0; r < n; r++ {
			if r == i {
				continue
			}
			f := a[r][i]
			for c := 0; c < n; c++ {
				a[r][c] -= f * a[i][c]
				inv[r][c] -= f * inv[i][c]
			}
		}
	}
	out := value.Value{Tag: value.Matrix, Rows: n, Cols: n}
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			out.Nums[i*n+j] = inv[i][j]
		}
	}
	return out, true
}

func vectorOuter(a, b value.Value) value.Value {
	ae := a.Elements()
	be := b.Elements()
	out := value.Value{Tag: value.Matrix, Rows: len(ae), Cols: len(be)}
	for i, x := range ae {
		for j, y := range be {
			idx := i*len(be) + j
			if idx < value.MaxMatrixElements {
				out.Nums[idx] = x * y
			}
		}
	}
	return out
}

func vectorTimesMatrix(v, m value.Value) value.Value {
	ve := v.Elements()
	if len(ve) != m.Rows || m.Rows == 0 {
		return value.Value{Tag: value.Vector}
	}
	out := value.Value{Tag: value.Vector, Rows: 1, Cols: m.Cols}
	for j := 0; j < m.Cols; j++ {
		var sum float64
		for k := 0; k < m.Rows; k++ {
			sum += ve[k] * m.Nums[k*m.Cols+j]
		}
		if j < value.MaxMatrixElements {
			out.Nums[j] = sum
		}
	}
	return out
}

func matrixTimesVector(m, v value.Value) value.Value {
	ve := v.Elements()
	if len(ve) != m.Cols || m.Cols == 0 {
		return value.Value{Tag: value.Vector}
	}
	out := value.Value{Tag: value.Vector, Rows: m.Rows, Cols: 1}
	for i := 0; i < m.Rows; i++ {
		var sum float64
		for k := 0; k < m.Cols; k++ {
			sum += m.Nums[i*m.Cols+k] * ve[k]
		}
		if i < value.MaxMatrixElements {
			out.Nums[i] = sum
		}
	}
	return out
}

func vectorCross(a, b value.Value) value.Value {
	ae := a.Elements()
	be := b.Elements()
	if len(ae) < 3 || len(be) < 3 {
		return value.Value{Tag: value.Vector, Rows: 1, Cols: 3}
	}
	out := value.Value{Tag: value.Vector, Rows: 1, Cols: 3}
	out.Nums[0] = ae[1]*be[2] - ae[2]*be[1]
	out.Nums[1] = ae[2]*be[0] - ae[0]*be[2]
	out.Nums[2] = ae[0]*be[1] - ae[1]*be[0]
	return out
}

func vectorDot(a, b value.Value) float64 {
	ae := a.Elements()
	be := b.Elements()
	n := len(ae)
	if len(be) < n {
		n = len(be)
	}
	var sum float64
	for i := 0; i < n; i++ {
		sum += ae[i] * be[i]
	}
	return sum
}

func abs(x float64) float64 {
	if x < 0 {
		return -x
	}
	return x
}
