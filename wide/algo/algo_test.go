package algo

import (
	"context"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ajroetker/go-wide/wide"
	"github.com/ajroetker/go-wide/wide/contrib/special"
)

var testTargets = []*wide.Target{wide.TargetScalar, wide.TargetSSE2, wide.TargetAVX2, wide.TargetAVX512, wide.TargetVMX}

func TestProcessWithTail(t *testing.T) {
	type call struct{ off, count int }
	tests := []struct {
		size, n int
		full    []int
		tail    []call
	}{
		{size: 10, n: 4, full: []int{0, 4}, tail: []call{{8, 2}}},
		{size: 8, n: 4, full: []int{0, 4}},
		{size: 3, n: 4, tail: []call{{0, 3}}},
		{size: 0, n: 4},
	}
	for _, tt := range tests {
		var full []int
		var tail []call
		ProcessWithTail(tt.size, tt.n,
			func(off int) { full = append(full, off) },
			func(off, count int) { tail = append(tail, call{off, count}) })
		assert.Equal(t, tt.full, full, "size %d", tt.size)
		assert.Equal(t, tt.tail, tail, "size %d", tt.size)
	}
}

func TestCardinal(t *testing.T) {
	assert.Equal(t, 8, Cardinal[float32](wide.WithTarget(wide.TargetAVX2)))
	assert.Equal(t, 2, Cardinal[float64](wide.WithTarget(wide.TargetSSE2)))
	assert.Equal(t, 64, Cardinal[int8](wide.WithTarget(wide.TargetVMX), wide.WithCardinal(64)))
}

func sequence(n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = float64(i) * 1.25
	}
	return out
}

func TestTransform(t *testing.T) {
	op := wide.SqrtOp[float64]()
	for _, tg := range testTargets {
		for size := range 18 {
			src := sequence(size)
			want := make([]float64, size)
			for i, x := range src {
				want[i] = math.Sqrt(x)
			}
			got := make([]float64, size)
			Transform(got, src, op, wide.WithTarget(tg))
			if diff := cmp.Diff(want, got); diff != "" {
				t.Errorf("sqrt on %s, size %d (-want +got):\n%s", tg, size, diff)
			}
		}
	}
}

func TestTransformInPlace(t *testing.T) {
	data := []int16{1, -2, 3, -4, 5, -6, 7, -8, 9, -10, 11}
	Transform(data, data, wide.AbsOp[int16](), wide.WithTarget(wide.TargetSSE2), wide.WithCardinal(4))
	assert.Equal(t, []int16{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11}, data)
}

func TestTransformShortDestination(t *testing.T) {
	dst := make([]int32, 3)
	Transform(dst, []int32{1, 2, 3, 4, 5}, wide.NegOp[int32]())
	assert.Equal(t, []int32{-1, -2, -3}, dst)
}

func TestTransformBinary(t *testing.T) {
	t.Run("DivisionTailHasNoZeroLanes", func(t *testing.T) {
		a := []int32{10, 20, 30, 40, 50, 60, 70}
		b := []int32{1, 2, 3, 4, 5, 6, 7}
		for _, tg := range testTargets {
			got := make([]int32, len(a))
			require.NotPanics(t, func() {
				TransformBinary(got, a, b, wide.DivOp[int32](), wide.WithTarget(tg))
			})
			assert.Equal(t, []int32{10, 10, 10, 10, 10, 10, 10}, got, "target %s", tg)
		}
	})

	t.Run("Saturated", func(t *testing.T) {
		a := make([]uint8, 37)
		b := make([]uint8, 37)
		want := make([]uint8, 37)
		for i := range a {
			a[i] = uint8(i * 7)
			b[i] = 250
			want[i] = uint8(min(int(a[i])+250, 255))
		}
		op := wide.Saturated(wide.AddOp[uint8]())
		for _, tg := range testTargets {
			got := make([]uint8, len(a))
			TransformBinary(got, a, b, op, wide.WithTarget(tg))
			if diff := cmp.Diff(want, got); diff != "" {
				t.Errorf("saturated add on %s (-want +got):\n%s", tg, diff)
			}
		}
	})
}

func TestSum(t *testing.T) {
	ints := make([]int32, 100)
	for i := range ints {
		ints[i] = int32(i + 1)
	}
	halves := make([]float64, 33)
	for i := range halves {
		halves[i] = 0.5
	}
	for _, tg := range testTargets {
		assert.Equal(t, int32(5050), Sum(ints, wide.WithTarget(tg)), "target %s", tg)
		assert.Equal(t, 16.5, Sum(halves, wide.WithTarget(tg)), "target %s", tg)
	}
	assert.Equal(t, int64(0), Sum[int64](nil))
}

func TestCountIfAndFindIf(t *testing.T) {
	data := []float32{1, 12, 3, 4, 15, 6, 7, 8, 9, 10, 11}
	greater := func(v wide.Wide[float32]) wide.Logical[float32] {
		return wide.Greater(v, v.Splat(10))
	}
	for _, tg := range testTargets {
		opt := wide.WithTarget(tg)
		assert.Equal(t, 3, CountIf(data, greater, opt), "target %s", tg)
		assert.Equal(t, 1, FindIf(data, greater, opt), "target %s", tg)
		assert.Equal(t, 2, FindIf(data[2:], greater, opt), "target %s", tg)
		assert.Equal(t, -1, FindIf(data[5:10], greater, opt), "target %s", tg)
	}

	// The tail is padded with its last element, which must not be counted
	// twice.
	assert.Equal(t, 1, CountIf([]float32{11}, greater, wide.WithTarget(wide.TargetAVX2)))
	assert.Equal(t, -1, FindIf[float32](nil, greater))
}

func TestParallelTransform(t *testing.T) {
	src := sequence(1001)
	want := make([]float64, len(src))
	Transform(want, src, wide.SqrtOp[float64]())

	for _, workers := range []int{0, 1, 3, 8, 2000} {
		got := make([]float64, len(src))
		err := ParallelTransform(context.Background(), got, src, wide.SqrtOp[float64](), workers)
		require.NoError(t, err)
		if diff := cmp.Diff(want, got); diff != "" {
			t.Errorf("%d workers (-want +got):\n%s", workers, diff)
		}
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := ParallelTransform(ctx, make([]float64, 10), src[:10], wide.SqrtOp[float64](), 2)
	require.ErrorIs(t, err, context.Canceled)

	require.NoError(t, ParallelTransform[float64](context.Background(), nil, nil, wide.SqrtOp[float64](), 4))
}

func TestTransformSpecialFunction(t *testing.T) {
	src := []float64{-30, -3, -1, -0.25, 0, 0.3, 0.9, 2.5, 5, 12, 27, 0.1, -0.2}
	for _, tg := range testTargets {
		op := special.ErfcOp[float64](tg)
		got := make([]float64, len(src))
		Transform(got, src, op, wide.WithTarget(tg))
		for i, x := range src {
			assert.Equal(t, op.Scalar(x), got[i], "erfc(%g) on %s", x, tg)
		}
	}
}
