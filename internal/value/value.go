/*
 * HALMAT - Tagged value type.
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

// Package value implements the HALMAT tagged value type: the single sum type
// that flows through the operand resolver, the VAC, and every class handler.
package value

// Tag names the type carried by a Value. Numbering matches the reference
// HTYPE_* enumeration so loader and literal-table decoding need no remap.
type Tag uint8

const (
	None Tag = iota
	Bit
	Char
	Matrix
	Vector
	Scalar
	Integer
	Boolean
	_ // 8 is unassigned in the reference enumeration
	Event
	Struct
)

func (t Tag) String() string {
	switch t {
	case None:
		return "NONE"
	case Bit:
		return "BIT"
	case Char:
		return "CHAR"
	case Matrix:
		return "MATRIX"
	case Vector:
		return "VECTOR"
	case Scalar:
		return "SCALAR"
	case Integer:
		return "INTEGER"
	case Boolean:
		return "BOOLEAN"
	case Event:
		return "EVENT"
	case Struct:
		return "STRUCT"
	default:
		return "UNKNOWN"
	}
}

// MaxMatrixElements bounds the backing array for MATRIX and VECTOR values:
// an 8x8 matrix, or a vector stored as a single row or single column with
// the remaining capacity unused. 64 doubles total, per the resource model.
const MaxMatrixElements = 64

// Value is the tagged union carried on the SYT, in the VAC, and through
// every arithmetic handler. Only the fields relevant to Tag are meaningful.
// ToInt/ToScalar/Truth read by tag; some handlers read Bits, Str or Int
// directly, and then see the zero value of that field for other tags.
type Value struct {
	Tag Tag

	Int   int32  // INTEGER
	Bits  uint32 // BIT (packed, low bits significant)
	Real  float64 // SCALAR
	Str   string // CHAR, length implied by len(Str) (<= 255)
	Rows  int    // MATRIX/VECTOR active row count
	Cols  int    // MATRIX/VECTOR active column count
	Nums  [MaxMatrixElements]float64 // MATRIX/VECTOR backing store, row-major
}

// Zero returns the zero Value for a tag: the value an unallocated SYT slot,
// or a declared-but-unassigned EVENT/STRUCT/BOOLEAN, reads as.
func Zero(tag Tag) Value {
	return Value{Tag: tag}
}

// ToInt coerces v to an int32, reading whichever field its tag names.
// Values with no sensible integer reading return 0.
func (v Value) ToInt() int32 {
	switch v.Tag {
	case Integer:
		return v.Int
	case Scalar:
		return int32(v.Real)
	case Bit:
		return int32(v.Bits)
	case Boolean:
		if v.Int != 0 {
			return 1
		}
		return 0
	default:
		return 0
	}
}

// ToScalar coerces v to a float64, reading whichever field its tag names.
func (v Value) ToScalar() float64 {
	switch v.Tag {
	case Scalar:
		return v.Real
	case Integer:
		return float64(v.Int)
	case Bit:
		return float64(v.Bits)
	default:
		return 0
	}
}

// Truth reads v as a boolean condition: nonzero INTEGER/BOOLEAN, nonzero
// BIT, nonzero SCALAR. Any other tag is false.
func (v Value) Truth() bool {
	switch v.Tag {
	case Integer, Boolean:
		return v.Int != 0
	case Bit:
		return v.Bits != 0
	case Scalar:
		return v.Real != 0
	default:
		return false
	}
}

// Elements returns the active Rows*Cols slice of Nums for a MATRIX or
// VECTOR value, bounded to MaxMatrixElements regardless of a malformed
// Rows/Cols pair.
func (v Value) Elements() []float64 {
	n := v.Rows * v.Cols
	if n <= 0 {
		return nil
	}
	if n > MaxMatrixElements {
		n = MaxMatrixElements
	}
	return v.Nums[:n]
}
