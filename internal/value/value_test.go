package value

import "testing"

func TestZero(t *testing.T) {
	z := Zero(Scalar)
	if z.Tag != Scalar {
		t.Errorf("Zero(Scalar).Tag = %v, want Scalar", z.Tag)
	}
	if z.Real != 0 {
		t.Errorf("Zero(Scalar).Real = %v, want 0", z.Real)
	}
}

func TestToInt(t *testing.T) {
	tests := []struct {
		name string
		v    Value
		want int32
	}{
		{"integer", Value{Tag: Integer, Int: 7}, 7},
		{"scalar truncates", Value{Tag: Scalar, Real: 3.9}, 3},
		{"bit", Value{Tag: Bit, Bits: 0xFF}, 0xFF},
		{"boolean true", Value{Tag: Boolean, Int: 1}, 1},
		{"boolean false", Value{Tag: Boolean, Int: 0}, 0},
		{"char has no integer reading", Value{Tag: Char, Str: "x"}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.v.ToInt(); got != tt.want {
				t.Errorf("ToInt() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestToScalar(t *testing.T) {
	tests := []struct {
		name string
		v    Value
		want float64
	}{
		{"scalar", Value{Tag: Scalar, Real: 2.5}, 2.5},
		{"integer", Value{Tag: Integer, Int: 4}, 4.0},
		{"bit", Value{Tag: Bit, Bits: 3}, 3.0},
		{"char has no scalar reading", Value{Tag: Char, Str: "x"}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.v.ToScalar(); got != tt.want {
				t.Errorf("ToScalar() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestTruth(t *testing.T) {
	tests := []struct {
		name string
		v    Value
		want bool
	}{
		{"nonzero integer", Value{Tag: Integer, Int: 1}, true},
		{"zero integer", Value{Tag: Integer, Int: 0}, false},
		{"nonzero bit", Value{Tag: Bit, Bits: 1}, true},
		{"nonzero scalar", Value{Tag: Scalar, Real: 0.1}, true},
		{"zero scalar", Value{Tag: Scalar, Real: 0}, false},
		{"char is never true", Value{Tag: Char, Str: "yes"}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.v.Truth(); got != tt.want {
				t.Errorf("Truth() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestElements(t *testing.T) {
	v := Value{Tag: Matrix, Rows: 2, Cols: 3}
	for i := 0; i < 6; i++ {
		v.Nums[i] = float64(i + 1)
	}
	got := v.Elements()
	if len(got) != 6 {
		t.Fatalf("len(Elements()) = %d, want 6", len(got))
	}
	if got[0] != 1 || got[5] != 6 {
		t.Errorf("Elements() = %v, want [1..6]", got)
	}
}

func TestElementsEmptyWhenUnallocated(t *testing.T) {
	v := Value{Tag: Matrix}
	if got := v.Elements(); got != nil {
		t.Errorf("Elements() of zero-sized matrix = %v, want nil", got)
	}
}

func TestElementsBoundedAtMax(t *testing.T) {
	v := Value{Tag: Matrix, Rows: 100, Cols: 100}
	got := v.Elements()
	if len(got) != MaxMatrixElements {
		t.Errorf("len(Elements()) = %d, want %d (clamped)", len(got), MaxMatrixElements)
	}
}

func TestTagString(t *testing.T) {
	tests := []struct {
		tag  Tag
		want string
	}{
		{None, "NONE"},
		{Integer, "INTEGER"},
		{Boolean, "BOOLEAN"},
		{Tag(200), "UNKNOWN"},
	}
	for _, tt := range tests {
		if got := tt.tag.String(); got != tt.want {
			t.Errorf("Tag(%d).String() = %q, want %q", tt.tag, got, tt.want)
		}
	}
}
