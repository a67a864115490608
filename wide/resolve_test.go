package wide

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func shape(t *testing.T, e string, n int, tg *Target) Shape {
	t.Helper()
	et, err := ParseElementType(e)
	require.NoError(t, err)
	s, err := NewShape(et, n, tg)
	require.NoError(t, err)
	return s
}

func TestPlan(t *testing.T) {
	tests := []struct {
		name   string
		op     string
		policy PolicyKind
		a, b   Shape
		want   Strategy
	}{
		{"native", "add", PolicyNone, shape(t, "int32", 4, TargetSSE2), shape(t, "int32", 4, TargetSSE2), StrategyNative},
		{"no native kernel", "abs_diff", PolicyNone, shape(t, "int32", 4, TargetSSE2), shape(t, "int32", 4, TargetSSE2), StrategyMap},
		{"emulated", "add", PolicyNone, shape(t, "float64", 4, TargetVMX), shape(t, "float64", 4, TargetVMX), StrategyMap},
		{"aggregated", "add", PolicyNone, shape(t, "int32", 16, TargetSSE2), shape(t, "int32", 16, TargetSSE2), StrategyAggregate},
		{"emulated beats aggregated", "mul", PolicyNone, shape(t, "float64", 8, TargetVMX), shape(t, "float64", 8, TargetSSE2), StrategyMap},
		{"aggregated with scalar", "add", PolicyNone, shape(t, "int32", 16, TargetSSE2), shape(t, "int32", 1, TargetSSE2), StrategyAggregate},
		{"scalar broadcast", "add", PolicyNone, shape(t, "int32", 4, TargetSSE2), shape(t, "int32", 1, TargetSSE2), StrategyCoerce},
		{"cross target", "add", PolicyNone, shape(t, "int32", 4, TargetSSE2), shape(t, "int32", 4, TargetNEON), StrategyCoerce},
		{"scalar operands", "add", PolicyNone, shape(t, "int32", 1, TargetSSE2), shape(t, "int32", 1, TargetSSE2), StrategyNative},
		{"unary", "neg", PolicyNone, shape(t, "int8", 16, TargetSSE2), Shape{}, StrategyNative},
		{"saturated narrow signed", "add", PolicySaturated, shape(t, "int8", 16, TargetSSE2), shape(t, "int8", 16, TargetSSE2), StrategyMap},
		{"saturated wide signed", "add", PolicySaturated, shape(t, "int32", 4, TargetSSE2), shape(t, "int32", 4, TargetSSE2), StrategyNative},
		{"saturated unsigned", "sub", PolicySaturated, shape(t, "uint8", 16, TargetSSE2), shape(t, "uint8", 16, TargetSSE2), StrategyNative},
		{"derivative", "abs", PolicyDerivative, shape(t, "float32", 4, TargetSSE2), Shape{}, StrategyMap},
		{"masked", "add", PolicyMasked, shape(t, "float32", 4, TargetNEON), shape(t, "float32", 4, TargetNEON), StrategyNative},
		{"integer mul", "mul", PolicyNone, shape(t, "int16", 8, TargetSSE2), shape(t, "int16", 8, TargetSSE2), StrategyMap},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Plan(tt.op, tt.policy, tt.a, tt.b)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got, "%s %s %s", tt.op, tt.a, tt.b)
		})
	}
}

func TestPlanErrors(t *testing.T) {
	i32x4 := shape(t, "int32", 4, TargetSSE2)

	_, err := Plan("add", PolicyNone, i32x4, shape(t, "int32", 8, TargetSSE2))
	assert.ErrorIs(t, err, ErrShapeMismatch)

	_, err = Plan("fma", PolicyNone, i32x4, i32x4)
	assert.ErrorIs(t, err, ErrUnknownOperation)

	_, err = Plan("equal", PolicySaturated, i32x4, i32x4)
	assert.ErrorIs(t, err, ErrNoPolicyVariant)
	var re *ResolutionError
	require.ErrorAs(t, err, &re)
	assert.Equal(t, "saturated(equal)", re.Op)

	_, err = Plan("sqrt", PolicyNone, i32x4, i32x4)
	assert.ErrorIs(t, err, ErrNoABI)

	_, err = Plan("add", PolicyNone, i32x4, shape(t, "uint32", 4, TargetSSE2))
	assert.ErrorIs(t, err, ErrShapeMismatch)
}

func TestShapeString(t *testing.T) {
	assert.Equal(t, "int32x4@sse2(native)", shape(t, "int32", 4, TargetSSE2).String())
	assert.Equal(t, "float64x4@vmx(emulated)", Zero[float64](WithTarget(TargetVMX), WithCardinal(4)).Shape().String())
}

func TestCoerceScalar(t *testing.T) {
	v := Iota[int32](0, WithTarget(TargetAVX2), WithCardinal(8))
	one := Broadcast[int32](1, WithTarget(TargetSSE2), WithCardinal(1))

	r := Add(one, v)
	assert.Equal(t, []int32{1, 2, 3, 4, 5, 6, 7, 8}, r.Lanes())
	assert.Same(t, TargetAVX2, r.Target())
	assert.Equal(t, ABINative, r.ABI())

	r = Sub(v, one)
	assert.Equal(t, []int32{-1, 0, 1, 2, 3, 4, 5, 6}, r.Lanes())
	assert.Same(t, TargetAVX2, r.Target())
}

func TestCoerceAcrossTargets(t *testing.T) {
	a := Iota[float32](0, WithTarget(TargetSSE2), WithCardinal(4))
	b := Broadcast[float32](0.5, WithTarget(TargetNEON), WithCardinal(4))

	r := Mul(a, b)
	assert.Equal(t, []float32{0, 0.5, 1, 1.5}, r.Lanes())
	assert.Same(t, TargetSSE2, r.Target())
}

func TestAggregateWithEmulated(t *testing.T) {
	// Emulation wins: the lanes are mapped onto the first operand's shape.
	a := Iota[float64](1, WithTarget(TargetSSE2), WithCardinal(8))
	b := Broadcast[float64](2, WithTarget(TargetVMX), WithCardinal(8))
	require.Equal(t, ABIAggregated, a.ABI())
	require.Equal(t, ABIEmulated, b.ABI())

	r := Mul(a, b)
	assert.Equal(t, []float64{2, 4, 6, 8, 10, 12, 14, 16}, r.Lanes())
	assert.Same(t, TargetSSE2, r.Target())
}

func TestApplyShapeMismatchPanics(t *testing.T) {
	a := Iota[int32](0, WithTarget(TargetSSE2), WithCardinal(4))
	b := Iota[int32](0, WithTarget(TargetSSE2), WithCardinal(8))
	defer func() {
		err, ok := recover().(error)
		require.True(t, ok)
		assert.ErrorIs(t, err, ErrShapeMismatch)
		assert.Contains(t, err.Error(), "[wide.add]")
	}()
	Add(a, b)
}

func TestStrategyString(t *testing.T) {
	assert.Equal(t, "native", StrategyNative.String())
	assert.Equal(t, "map", StrategyMap.String())
	assert.Equal(t, "aggregate", StrategyAggregate.String())
	assert.Equal(t, "coerce", StrategyCoerce.String())
}
