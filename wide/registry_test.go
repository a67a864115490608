package wide

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistry(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, r.Register(Descriptor{Name: "scale", Arity: 2, Kinds: floatKinds, Doc: "a * k"}))
	require.NoError(t, r.Register(Descriptor{Name: "clamp", Arity: 2, Kinds: allKinds}))

	err := r.Register(Descriptor{Name: "scale", Arity: 1})
	assert.ErrorIs(t, err, ErrDuplicateOperation)
	assert.Panics(t, func() { r.MustRegister(Descriptor{Name: "clamp"}) })

	assert.Equal(t, []string{"clamp", "scale"}, r.Names())
	ds := r.Descriptors()
	require.Len(t, ds, 2)
	assert.Equal(t, "clamp", ds[0].Name)

	d, ok := r.Lookup("scale")
	require.True(t, ok)
	assert.Equal(t, "a * k", d.Doc)
	_, ok = r.Lookup("add")
	assert.False(t, ok)

	// Operations without a Native predicate never run native.
	s := shape(t, "float32", 4, TargetSSE2)
	st, err := r.Plan("scale", PolicyNone, s, s)
	require.NoError(t, err)
	assert.Equal(t, StrategyMap, st)
}

func TestRegistryConcurrent(t *testing.T) {
	r := NewRegistry()
	var wg sync.WaitGroup
	for i := range 16 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = r.Register(Descriptor{Name: string(rune('a' + i)), Arity: 1, Kinds: allKinds})
			_ = r.Names()
		}()
	}
	wg.Wait()
	assert.Len(t, r.Names(), 16)
}

func TestGlobalOperations(t *testing.T) {
	for _, name := range []string{"add", "sub", "mul", "div", "min", "max", "abs_diff", "avg", "mul_high",
		"and", "or", "xor", "and_not", "not", "neg", "abs", "sqrt",
		"equal", "not_equal", "less", "less_equal", "greater", "greater_equal", "is_nan", "is_inf", "if_then_else"} {
		d, ok := Lookup(name)
		if assert.True(t, ok, name) {
			assert.Equal(t, name, d.Name)
			assert.NotEmpty(t, d.Doc, name)
		}
	}
	assert.ErrorIs(t, Register(Descriptor{Name: "add"}), ErrDuplicateOperation)
}

// The plan for native operands agrees with whether the operation value
// carries a native kernel.
func TestPlanMatchesOperations(t *testing.T) {
	checkPlan := func(name string, p PolicyKind, e string, n int, hasNative bool) {
		t.Helper()
		s := shape(t, e, n, TargetAVX2)
		require.Equal(t, ABINative, s.ABI)
		got, err := Plan(name, p, s, s)
		require.NoError(t, err)
		want := StrategyMap
		if hasNative {
			want = StrategyNative
		}
		assert.Equal(t, want, got, "%s(%s) %s", p, name, s)
	}

	checkPlan("add", PolicyNone, "int8", 32, AddOp[int8]().HasNative())
	checkPlan("add", PolicySaturated, "int8", 32, Saturated(AddOp[int8]()).HasNative())
	checkPlan("add", PolicySaturated, "int16", 16, Saturated(AddOp[int16]()).HasNative())
	checkPlan("add", PolicySaturated, "int32", 8, Saturated(AddOp[int32]()).HasNative())
	checkPlan("sub", PolicySaturated, "int64", 4, Saturated(SubOp[int64]()).HasNative())
	checkPlan("sub", PolicySaturated, "uint8", 32, Saturated(SubOp[uint8]()).HasNative())
	checkPlan("add", PolicyUpward, "float32", 8, Upward(AddOp[float32]()).HasNative())
	checkPlan("mul", PolicyNone, "float64", 4, MulOp[float64]().HasNative())
	checkPlan("mul", PolicyNone, "int32", 8, MulOp[int32]().HasNative())
	checkPlan("div", PolicyDownward, "float32", 8, Downward(DivOp[float32]()).HasNative())
	checkPlan("abs_diff", PolicyNone, "uint16", 16, AbsDiffOp[uint16]().HasNative())
	checkPlan("avg", PolicyNone, "uint8", 32, AvgOp[uint8]().HasNative())
	checkPlan("neg", PolicySaturated, "int8", 32, Saturated(NegOp[int8]()).HasNative())
	checkPlan("abs", PolicyDerivative, "float32", 8, Derivative(AbsOp[float32]()).HasNative())
	checkPlan("sqrt", PolicyDerivative, "float64", 4, Derivative(SqrtOp[float64]()).HasNative())
	checkPlan("sqrt", PolicyUpward, "float64", 4, Upward(SqrtOp[float64]()).HasNative())
	checkPlan("not", PolicyNone, "uint64", 4, NotOp[uint64]().HasNative())
}

func TestDescriptorSupports(t *testing.T) {
	d, ok := Lookup("sqrt")
	require.True(t, ok)
	assert.True(t, d.Supports(PolicyNone))
	assert.True(t, d.Supports(PolicyUpward))
	assert.False(t, d.Supports(PolicySaturated))
	assert.True(t, d.Accepts(ElementTypeOf[float32]()))
	assert.False(t, d.Accepts(ElementTypeOf[int32]()))
}
