package jsonyx

import (
	"math"
	"math/big"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nineteendo/pvz2codec/charset"
	"github.com/nineteendo/pvz2codec/value"
)

func TestDumpsScalars(t *testing.T) {
	cases := []struct {
		v    value.Value
		want string
	}{
		{value.Null{}, "null"},
		{value.Bool(true), "true"},
		{value.Bool(false), "false"},
		{value.Integer{V: big.NewInt(42)}, "42"},
		{value.Real(1.5), "1.5"},
		{value.String("hi"), `"hi"`},
	}
	for _, c := range cases {
		got, err := Dumps(c.v)
		require.NoError(t, err)
		assert.Equal(t, c.want, got)
	}
}

func TestDumpsArrayAndObject(t *testing.T) {
	obj := value.NewObject()
	obj.Set("a", value.Integer{V: big.NewInt(1)}, false)
	obj.Set("b", value.Array{value.Bool(true), value.Null{}}, false)

	got, err := Dumps(obj)
	require.NoError(t, err)
	assert.Equal(t, `{"a": 1, "b": [true, null]}`, got)
}

func TestDumpsEmptyContainers(t *testing.T) {
	got, err := Dumps(value.Array(nil))
	require.NoError(t, err)
	assert.Equal(t, "[]", got)

	got, err = Dumps(value.NewObject())
	require.NoError(t, err)
	assert.Equal(t, "{}", got)
}

func TestDumpsWithIndent(t *testing.T) {
	obj := value.NewObject()
	obj.Set("a", value.Integer{V: big.NewInt(1)}, false)

	e := NewEncoder()
	e.Indent = "  "
	got, err := e.Dumps(obj)
	require.NoError(t, err)
	assert.Equal(t, "{\n  \"a\": 1\n}", got)
}

func TestDumpsSortKeys(t *testing.T) {
	obj := value.NewObject()
	obj.Set("b", value.Bool(true), false)
	obj.Set("a", value.Bool(false), false)

	e := NewEncoder()
	e.SortKeys = true
	got, err := e.Dumps(obj)
	require.NoError(t, err)
	assert.Equal(t, `{"a": false, "b": true}`, got)
}

func TestDumpsNaNRejectedByDefault(t *testing.T) {
	_, err := Dumps(value.Real(math.NaN()))
	require.Error(t, err)
	var verr *ValueError
	require.ErrorAs(t, err, &verr)
}

func TestDumpsNaNAllowed(t *testing.T) {
	e := NewEncoder()
	e.Allow = AllowNaNAndInfinity
	got, err := e.Dumps(value.Real(math.NaN()))
	require.NoError(t, err)
	assert.Equal(t, "NaN", got)

	got, err = e.Dumps(value.Real(math.Inf(1)))
	require.NoError(t, err)
	assert.Equal(t, "Infinity", got)

	got, err = e.Dumps(value.Real(math.Inf(-1)))
	require.NoError(t, err)
	assert.Equal(t, "-Infinity", got)
}

func TestDumpsSignalingNaNAlwaysRejected(t *testing.T) {
	e := NewEncoder()
	e.Allow = AllowNaNAndInfinity
	_, err := e.Dumps(value.Decimal{Kind: value.KindSNaN})
	require.Error(t, err)
}

func TestDumpsDecimalFinite(t *testing.T) {
	d := value.NewFiniteDecimal(decimal.NewFromFloat(2.25))
	got, err := Dumps(d)
	require.NoError(t, err)
	assert.Equal(t, "2.25", got)
}

func TestDumpsStringEscaping(t *testing.T) {
	got, err := Dumps(value.String("a\"b\\c\nd"))
	require.NoError(t, err)
	assert.Equal(t, `"a\"b\\c\nd"`, got)
}

func TestDumpsEnsureASCIIEscapesNonASCII(t *testing.T) {
	e := NewEncoder()
	e.EnsureASCII = true
	got, err := e.Dumps(value.String("é"))
	require.NoError(t, err)
	// the six-character escape for U+00E9, spelled byte by byte
	assert.Equal(t, string([]byte{'"', '\\', 'u', '0', '0', 'e', '9', '"'}), got)
}

func TestDumpsSurrogateRejectedWithoutAllowSurrogates(t *testing.T) {
	var b []byte
	b = charset.AppendRune(b, 0xD800)
	_, err := Dumps(value.String(string(b)))
	require.Error(t, err)
	var verr *ValueError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "jsonyx: Surrogates are not allowed", verr.Error())
}

func TestDumpsSurrogatePreservedWithAllowSurrogates(t *testing.T) {
	var b []byte
	b = charset.AppendRune(b, 0xD800)
	e := NewEncoder()
	e.Allow = AllowSurrogates
	got, err := e.Dumps(value.String(string(b)))
	require.NoError(t, err)

	// got is `"` + the raw 3-byte surrogate sequence + `"`
	inner := got[1 : len(got)-1]
	r, size := charset.DecodeRune(inner)
	assert.Equal(t, rune(0xD800), r)
	assert.Equal(t, 3, size)
}

func TestDumpsNilIsNull(t *testing.T) {
	_, err := Dumps(nil)
	require.NoError(t, err, "nil is serialized as null, not rejected")
}
