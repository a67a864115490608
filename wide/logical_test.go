package wide

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestLogicalOf(t *testing.T) {
	m := LogicalOf[int16](true, false, false, true)
	if m.Cardinal() != 4 {
		t.Fatalf("Cardinal = %d, want 4", m.Cardinal())
	}
	if diff := cmp.Diff([]bool{true, false, false, true}, m.Bools()); diff != "" {
		t.Errorf("Bools (-want +got):\n%s", diff)
	}
	if got := m.String(); got != "(true, false, false, true)" {
		t.Errorf("String = %q", got)
	}
	if got := m.Mask().Lanes(); got[0] != -1 || got[1] != 0 {
		t.Errorf("Mask lanes = %v, want all-ones and zero", got)
	}
}

func TestLogicalCounts(t *testing.T) {
	for _, tg := range testTargets {
		m := LogicalGenerate[float64](func(i, _ int) bool { return i%3 == 0 }, WithTarget(tg), WithCardinal(16))
		if got := m.CountTrue(); got != 6 {
			t.Errorf("%s (%s): CountTrue = %d, want 6", tg, m.ABI(), got)
		}
		if !m.AnyTrue() || m.AllTrue() {
			t.Errorf("%s: AnyTrue = %t, AllTrue = %t", tg, m.AnyTrue(), m.AllTrue())
		}
		all := True[float64](WithTarget(tg), WithCardinal(16))
		if !all.AllTrue() {
			t.Errorf("%s: True is not AllTrue", tg)
		}
		none := False[float64](WithTarget(tg), WithCardinal(16))
		if none.AnyTrue() {
			t.Errorf("%s: False has a set lane", tg)
		}
	}
}

func TestLogicalAlgebra(t *testing.T) {
	for _, tg := range testTargets {
		opts := []Option{WithTarget(tg), WithCardinal(8)}
		a := LogicalGenerate[uint32](func(i, _ int) bool { return i < 4 }, opts...)
		b := LogicalGenerate[uint32](func(i, _ int) bool { return i%2 == 0 }, opts...)

		tests := []struct {
			name string
			got  Logical[uint32]
			want []bool
		}{
			{"and", a.And(b), []bool{true, false, true, false, false, false, false, false}},
			{"or", a.Or(b), []bool{true, true, true, true, true, false, true, false}},
			{"xor", a.Xor(b), []bool{false, true, false, true, true, false, true, false}},
			{"and_not", a.AndNot(b), []bool{false, false, false, false, true, false, true, false}},
			{"not", a.Not(), []bool{false, false, false, false, true, true, true, true}},
		}
		for _, tt := range tests {
			if diff := cmp.Diff(tt.want, tt.got.Bools()); diff != "" {
				t.Errorf("%s on %s: (-want +got):\n%s", tt.name, tg, diff)
			}
			if tt.got.ABI() != a.ABI() {
				t.Errorf("%s on %s: ABI %s, want %s", tt.name, tg, tt.got.ABI(), a.ABI())
			}
		}
	}
}

func TestFloatMasksFromComparisons(t *testing.T) {
	a := Load([]float32{1, 2, 3, 4}, WithTarget(TargetSSE2), WithCardinal(4))
	b := Load([]float32{4, 2, 1, 4}, WithTarget(TargetSSE2), WithCardinal(4))

	lt := Less(a, b)
	eq := Equal(a, b)
	if diff := cmp.Diff([]bool{true, false, false, false}, lt.Bools()); diff != "" {
		t.Errorf("Less (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]bool{true, true, false, true}, lt.Or(eq).Bools()); diff != "" {
		t.Errorf("Less or Equal (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(LessEqual(a, b).Bools(), lt.Or(eq).Bools()); diff != "" {
		t.Errorf("LessEqual differs from Less or Equal:\n%s", diff)
	}
	if diff := cmp.Diff(GreaterEqual(a, b).Bools(), lt.Not().Bools()); diff != "" {
		t.Errorf("GreaterEqual differs from not Less:\n%s", diff)
	}
}
