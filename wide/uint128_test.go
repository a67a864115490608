package wide

import (
	"math"
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// assertBig compares through decimal strings, since big.Int values with
// equal magnitude may differ in their internal slices.
func assertBig(t *testing.T, want *big.Int, got Uint128, msg string, args ...any) {
	t.Helper()
	assert.Equal(t, want.String(), toBig(got).String(), append([]any{msg}, args...)...)
}

func toBig(u Uint128) *big.Int {
	b := new(big.Int).SetUint64(u.High())
	b.Lsh(b, 64)
	return b.Or(b, new(big.Int).SetUint64(u.Low()))
}

var uint128Samples = []Uint128{
	{},
	Uint128From64(1),
	Uint128From64(10),
	Uint128From64(math.MaxUint64),
	NewUint128(1, 0),
	NewUint128(0x0123_4567_89ab_cdef, 0xfedc_ba98_7654_3210),
	NewUint128(math.MaxUint64, 1),
	NewUint128(3, math.MaxUint64),
	MaxUint128,
}

func TestUint128Arithmetic(t *testing.T) {
	mod := new(big.Int).Lsh(big.NewInt(1), 128)
	wrap := func(b *big.Int) *big.Int { return b.Mod(b, mod) }

	for _, x := range uint128Samples {
		for _, y := range uint128Samples {
			bx, by := toBig(x), toBig(y)
			assertBig(t, wrap(new(big.Int).Add(bx, by)), x.Add(y), "%s + %s", x, y)
			assertBig(t, wrap(new(big.Int).Sub(bx, by)), x.Sub(y), "%s - %s", x, y)
			assertBig(t, wrap(new(big.Int).Mul(bx, by)), x.Mul(y), "%s * %s", x, y)
			assert.Equal(t, bx.Cmp(by), x.Cmp(y), "cmp(%s, %s)", x, y)
			if y.IsZero() {
				continue
			}
			q, r := x.QuoRem(y)
			bq, br := new(big.Int).QuoRem(bx, by, new(big.Int))
			assertBig(t, bq, q, "%s / %s", x, y)
			assertBig(t, br, r, "%s %% %s", x, y)
		}
	}
}

func TestUint128Shifts(t *testing.T) {
	x := NewUint128(0x0123_4567_89ab_cdef, 0xfedc_ba98_7654_3210)
	mask := new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 128), big.NewInt(1))
	for _, n := range []uint{0, 1, 4, 63, 64, 65, 100, 127, 128, 200} {
		want := new(big.Int).Lsh(toBig(x), n)
		assertBig(t, want.And(want, mask), x.Lsh(n), "lsh %d", n)
		assertBig(t, new(big.Int).Rsh(toBig(x), n), x.Rsh(n), "rsh %d", n)
	}
	assert.Equal(t, 7, x.LeadingZeros())
	assert.Equal(t, 128, Uint128{}.LeadingZeros())
	assert.Equal(t, 127, Uint128From64(1).LeadingZeros())
}

func TestUint128Bitwise(t *testing.T) {
	a := NewUint128(0xff00, 0x0ff0)
	b := NewUint128(0x0f0f, 0xffff)
	assert.Equal(t, NewUint128(0x0f00, 0x0ff0), a.And(b))
	assert.Equal(t, NewUint128(0xff0f, 0xffff), a.Or(b))
	assert.Equal(t, NewUint128(0xf00f, 0xf00f), a.Xor(b))
	assert.Equal(t, MaxUint128, Uint128{}.Not())
	assert.Equal(t, MaxUint128, Uint128From64(1).Neg())
	assert.True(t, a.Equal(a))
	assert.False(t, a.Equal(b))
}

func TestUint128Text(t *testing.T) {
	assert.Equal(t, "0", Uint128{}.String())
	assert.Equal(t, "340282366920938463463374607431768211455", MaxUint128.String())
	assert.Equal(t, "18446744073709551616", NewUint128(1, 0).String())
	assert.Equal(t, "ff", Uint128From64(255).Text(16))
	assert.Equal(t, "101", Uint128From64(5).Text(2))
	assert.Panics(t, func() { MaxUint128.Text(1) })
	assert.Panics(t, func() { MaxUint128.Quo(Uint128{}) })
}

func TestParseUint128(t *testing.T) {
	tests := []struct {
		in   string
		want Uint128
	}{
		{"0", Uint128{}},
		{"42", Uint128From64(42)},
		{"0x2A", Uint128From64(42)},
		{"0b101010", Uint128From64(42)},
		{"0o52", Uint128From64(42)},
		{"052", Uint128From64(42)},
		{"1_000_000", Uint128From64(1000000)},
		{"18446744073709551616", NewUint128(1, 0)},
		{"340282366920938463463374607431768211455", MaxUint128},
		{"0xffffffffffffffffffffffffffffffff", MaxUint128},
	}
	for _, tt := range tests {
		got, err := ParseUint128(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}

	for _, in := range []string{"", "0x", "12a", "0b102", "-1"} {
		_, err := ParseUint128(in)
		assert.ErrorIs(t, err, errSyntax, in)
	}
	for _, in := range []string{"340282366920938463463374607431768211456", "0x1_0000_0000_0000_0000_0000_0000_0000_0000"} {
		_, err := ParseUint128(in)
		assert.ErrorIs(t, err, errRange, in)
	}

	for _, x := range uint128Samples {
		got, err := ParseUint128(x.String())
		require.NoError(t, err)
		assert.Equal(t, x, got)
	}
}
