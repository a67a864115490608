package wide

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testTargets covers every ABI: emulated (scalar, and 64-bit lanes on vmx),
// native and aggregated.
var testTargets = []*Target{TargetScalar, TargetSSE2, TargetAVX2, TargetAVX512, TargetNEON, TargetVMX}

func TestLoad(t *testing.T) {
	data := []int32{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15, 16}
	for _, tg := range testTargets {
		v := Load(data, WithTarget(tg), WithCardinal(16))
		if v.NumLanes() != 16 {
			t.Fatalf("%s: NumLanes = %d, want 16", tg, v.NumLanes())
		}
		if diff := cmp.Diff(data, v.Lanes()); diff != "" {
			t.Errorf("%s (%s): lanes mismatch (-want +got):\n%s", tg, v.Layout(), diff)
		}
		for i, want := range data {
			if got := v.Get(i); got != want {
				t.Errorf("%s: Get(%d) = %d, want %d", tg, i, got, want)
			}
		}
	}
}

func TestLoadShortSource(t *testing.T) {
	v := Load([]float64{1.5, 2.5}, WithTarget(TargetAVX2), WithCardinal(8))
	want := []float64{1.5, 2.5, 0, 0, 0, 0, 0, 0}
	if diff := cmp.Diff(want, v.Lanes()); diff != "" {
		t.Errorf("Load short source (-want +got):\n%s", diff)
	}
}

func TestDefaultCardinal(t *testing.T) {
	v := Zero[float32](WithTarget(TargetAVX2))
	if v.Cardinal() != 8 || v.ABI() != ABINative {
		t.Errorf("Zero[float32] on avx2: cardinal %d, abi %s", v.Cardinal(), v.ABI())
	}
	if got := Zero[float32]().Cardinal(); got != MaxLanes[float32]() {
		t.Errorf("Zero[float32]: cardinal %d, want %d", got, MaxLanes[float32]())
	}
}

func TestConstructors(t *testing.T) {
	opts := []Option{WithTarget(TargetSSE2), WithCardinal(8)}

	assert.Equal(t, []int16{7, 7, 7, 7, 7, 7, 7, 7}, Broadcast[int16](7, opts...).Lanes())
	assert.Equal(t, []int16{0, 0, 0, 0, 0, 0, 0, 0}, Zero[int16](opts...).Lanes())
	assert.Equal(t, []int16{-2, -1, 0, 1, 2, 3, 4, 5}, Iota[int16](-2, opts...).Lanes())
	assert.Equal(t, []int16{8, 7, 6, 5, 4, 3, 2, 1},
		Generate(func(i, n int) int16 { return int16(n - i) }, opts...).Lanes())

	v := Of[uint8](1, 2, 3, 4)
	assert.Equal(t, 4, v.Cardinal())
	assert.Same(t, CurrentTarget(), v.Target())

	s := Broadcast[int16](3, WithTarget(TargetSSE2), WithCardinal(4)).Splat(9)
	assert.Equal(t, []int16{9, 9, 9, 9}, s.Lanes())
	assert.Same(t, TargetSSE2, s.Target())
}

func TestInvalidCardinalPanics(t *testing.T) {
	defer func() {
		r := recover()
		require.NotNil(t, r)
		err, ok := r.(error)
		require.True(t, ok, "panic value %T is not an error", r)
		assert.ErrorIs(t, err, ErrInvalidCardinal)
		assert.Contains(t, err.Error(), "[wide.load]")
	}()
	Load([]int32{1, 2, 3}, WithCardinal(3))
}

func TestWithIsImmutable(t *testing.T) {
	for _, tg := range testTargets {
		v := Iota[int64](0, WithTarget(tg), WithCardinal(8))
		w := v.With(5, 99)
		if got := v.Get(5); got != 5 {
			t.Errorf("%s (%s): lane 5 of the source changed to %d", tg, v.ABI(), got)
		}
		if got := w.Get(5); got != 99 {
			t.Errorf("%s (%s): With lane 5 = %d, want 99", tg, v.ABI(), got)
		}
		want := []int64{0, 1, 2, 3, 4, 99, 6, 7}
		if diff := cmp.Diff(want, w.Lanes()); diff != "" {
			t.Errorf("%s: With (-want +got):\n%s", tg, diff)
		}
	}
}

func TestLanesAreCopies(t *testing.T) {
	v := Iota[float32](0, WithTarget(TargetScalar), WithCardinal(4))
	lanes := v.Lanes()
	lanes[0] = 42
	assert.Equal(t, float32(0), v.Get(0))
}

func TestGetOutOfRange(t *testing.T) {
	v := Iota[int32](0, WithTarget(TargetSSE2), WithCardinal(4))
	assert.Panics(t, func() { v.Get(4) })
	assert.Panics(t, func() { v.Get(-1) })
	assert.Panics(t, func() { v.With(4, 0) })
}

func TestStore(t *testing.T) {
	v := Iota[uint32](10, WithTarget(TargetSSE2), WithCardinal(8))

	short := make([]uint32, 3)
	Store(v, short)
	assert.Equal(t, []uint32{10, 11, 12}, short)

	long := make([]uint32, 10)
	v.Store(long)
	assert.Equal(t, []uint32{10, 11, 12, 13, 14, 15, 16, 17, 0, 0}, long)
}

func TestBits(t *testing.T) {
	v := Load([]uint8{1, 2, 3, 4}, WithTarget(TargetSSE2), WithCardinal(4))
	assert.Equal(t, []uint64{0x04030201}, v.Bits())

	w := FromBits[uint16]([]uint64{0x0004_0003_0002_0001, 0x0008_0007_0006_0005},
		WithTarget(TargetSSE2), WithCardinal(8))
	assert.Equal(t, []uint16{1, 2, 3, 4, 5, 6, 7, 8}, w.Lanes())
	assert.Equal(t, []uint64{0x0004_0003_0002_0001, 0x0008_0007_0006_0005}, w.Bits())

	// The bit pattern does not depend on the ABI.
	for _, tg := range testTargets {
		x := FromBits[uint16](w.Bits(), WithTarget(tg), WithCardinal(8))
		assert.Equal(t, w.Bits(), x.Bits(), tg.Name)
	}

	f := Load([]float32{1, -2}, WithTarget(TargetNEON), WithCardinal(2))
	assert.Equal(t, []uint64{0xc0000000_3f800000}, f.Bits())
}

func TestString(t *testing.T) {
	assert.Equal(t, "(1, 2, 3, 4)", Of[int8](1, 2, 3, 4).String())
	assert.Equal(t, "(0.5, -1)", Load([]float64{0.5, -1}, WithTarget(TargetVMX), WithCardinal(2)).String())
}

func TestHalves(t *testing.T) {
	v := Iota[int32](0, WithTarget(TargetSSE2), WithCardinal(8))
	lo, hi, ok := v.Halves()
	require.True(t, ok)
	assert.Equal(t, []int32{0, 1, 2, 3}, lo.Lanes())
	assert.Equal(t, []int32{4, 5, 6, 7}, hi.Lanes())
	assert.Equal(t, ABINative, lo.ABI())

	_, _, ok = lo.Halves()
	assert.False(t, ok)
}

func TestClassify(t *testing.T) {
	v := Iota[int32](0, WithTarget(TargetSSE2), WithCardinal(16))
	c, ok := Classify(v)
	require.True(t, ok)
	assert.True(t, c.Vector)
	assert.False(t, c.Logical)
	assert.Equal(t, 16, c.Cardinal)
	assert.Equal(t, ElementType{KindSigned, 4}, c.Element)
	assert.Equal(t, ABIAggregated, c.ABI)

	c, ok = Classify(Less(v, v))
	require.True(t, ok)
	assert.True(t, c.Logical)
	assert.True(t, c.Vector)

	c, ok = Classify(int8(3))
	require.True(t, ok)
	assert.True(t, c.Scalar())
	assert.Equal(t, "int8", c.Element.String())

	c, ok = Classify(true)
	require.True(t, ok)
	assert.True(t, c.Logical)
	assert.True(t, c.Scalar())

	_, ok = Classify("lanes")
	assert.False(t, ok)
}

func TestElementTypes(t *testing.T) {
	for _, e := range allElementTypes {
		got, err := ParseElementType(e.String())
		require.NoError(t, err)
		assert.Equal(t, e, got)
	}
	_, err := ParseElementType("complex64")
	assert.Error(t, err)

	assert.True(t, IsFloating[float32]())
	assert.True(t, IsSigned[int16]())
	assert.True(t, IsUnsigned[uint64]())
	assert.True(t, IsIntegral[uint8]())
	assert.False(t, IsIntegral[float64]())
	assert.Equal(t, 64, ElementTypeOf[float64]().Bits())
}
