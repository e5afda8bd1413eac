package value

import (
	"math/big"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObjectOrderingAndLookup(t *testing.T) {
	obj := NewObject()
	obj.Set("b", String("2"), false)
	obj.Set("a", String("1"), false)
	obj.Set("c", String("3"), false)

	require.Equal(t, 3, obj.Len())
	assert.Equal(t, []string{"b", "a", "c"}, obj.Keys())

	k, v := obj.At(1)
	assert.Equal(t, "a", k)
	assert.Equal(t, String("1"), v)

	got, ok := obj.Get("c")
	require.True(t, ok)
	assert.Equal(t, String("3"), got)

	_, ok = obj.Get("missing")
	assert.False(t, ok)
}

func TestObjectSetOverwritesWithoutDuplicate(t *testing.T) {
	obj := NewObject()
	obj.Set("k", String("first"), false)
	obj.Set("k", String("second"), false)

	require.Equal(t, 1, obj.Len())
	got, _ := obj.Get("k")
	assert.Equal(t, String("second"), got)
}

func TestObjectSetAppendsWhenDuplicateAllowed(t *testing.T) {
	obj := NewObject()
	obj.Set("k", String("first"), false)
	obj.Set("k", String("second"), true)

	require.Equal(t, 2, obj.Len())
	k0, v0 := obj.At(0)
	k1, v1 := obj.At(1)
	assert.Equal(t, "k", k0)
	assert.Equal(t, String("first"), v0)
	assert.Equal(t, "k", k1)
	assert.Equal(t, String("second"), v1)

	// Get still resolves to the first occurrence.
	got, ok := obj.Get("k")
	require.True(t, ok)
	assert.Equal(t, String("first"), got)

	// The first occurrence's key is a plain String; the repeat is wrapped
	// as a *DuplicateKey so the two are distinguishable by identity even
	// though they render the same text.
	assert.Equal(t, String("k"), obj.KeyAt(0))
	dup, ok := obj.KeyAt(1).(*DuplicateKey)
	require.True(t, ok)
	assert.Equal(t, "k", dup.String())
}

func TestDuplicateKeyIdentityNotEquality(t *testing.T) {
	a := NewDuplicateKey("a")
	b := NewDuplicateKey("a")

	assert.NotSame(t, a, b)
	assert.False(t, a == b, "two DuplicateKey allocations of equal text are distinct by identity")
	assert.Equal(t, "a", a.String())
	assert.Equal(t, "a", b.String())
}

func TestNewInteger(t *testing.T) {
	i := NewInteger(-42)
	assert.Equal(t, big.NewInt(-42), i.V)
}

func TestDecimalStringRendering(t *testing.T) {
	cases := []struct {
		d    Decimal
		want string
	}{
		{NewFiniteDecimal(decimal.NewFromFloat(1.5)), "1.5"},
		{Decimal{Kind: KindQNaN}, "NaN"},
		{Decimal{Kind: KindSNaN}, "NaN"},
		{Decimal{Kind: KindInf}, "Infinity"},
		{Decimal{Kind: KindNegInf}, "-Infinity"},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, c.d.String())
	}
}

func TestDecimalIsNaNIsInf(t *testing.T) {
	assert.True(t, Decimal{Kind: KindQNaN}.IsNaN())
	assert.True(t, Decimal{Kind: KindSNaN}.IsNaN())
	assert.False(t, Decimal{Kind: KindFinite}.IsNaN())

	assert.True(t, Decimal{Kind: KindInf}.IsInf())
	assert.True(t, Decimal{Kind: KindNegInf}.IsInf())
	assert.False(t, Decimal{Kind: KindFinite}.IsInf())
}
