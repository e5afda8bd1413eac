// Package value implements the tagged value model shared by the rton
// decoder and the jsonyx reader/writer: Null, Bool, Integer, Real, Decimal,
// String, DuplicateKey, Array, and Object.
//
// Object is grounded on oy3o-codec's list.go, which holds order explicitly
// in an Items slice rather than leaning on map iteration order; here that
// idea is extended to pair an ordered key slice with an index map so
// lookups stay O(1) while insertion order survives, replacing the
// dict-subclassing trick (original_source/RTONS_PARSER/rtons.py's FakeDict)
// that Go has no equivalent escape hatch for. A repeated key accepted under
// AllowDuplicateKeys is represented by a *DuplicateKey rather than a plain
// String, carrying over the original's identity-hashed key wrapper.
package value

import (
	"math/big"

	"github.com/shopspring/decimal"
)

// Value is any member of the tagged value model. It is a closed sum type:
// only the concrete types in this package implement it.
type Value interface {
	valueMarker()
}

// Null is the JSON/RTON null value.
type Null struct{}

func (Null) valueMarker() {}

// Bool wraps a boolean.
type Bool bool

func (Bool) valueMarker() {}

// Integer wraps an arbitrary-precision signed integer. A magnitude that
// fits an IEEE-754 double losslessly is still represented as Integer, never
// silently widened to Real.
type Integer struct {
	V *big.Int
}

func (Integer) valueMarker() {}

// NewInteger wraps n as an Integer.
func NewInteger(n int64) Integer { return Integer{V: big.NewInt(n)} }

// Real wraps a float64. It is only ever produced by a literal carrying a
// fraction or exponent; plain integer literals decode to Integer instead.
type Real float64

func (Real) valueMarker() {}

// DecimalKind distinguishes the finite and non-finite states a Decimal may
// hold, since shopspring/decimal.Decimal has no native NaN/Infinity concept.
type DecimalKind int

const (
	KindFinite DecimalKind = iota
	KindQNaN
	KindSNaN
	KindInf
	KindNegInf
)

// Decimal wraps an arbitrary-precision decimal with distinct quiet-NaN,
// signaling-NaN, +Infinity, and -Infinity states alongside the finite case.
// D is only meaningful when Kind == KindFinite.
type Decimal struct {
	Kind DecimalKind
	D    decimal.Decimal
}

func (Decimal) valueMarker() {}

// NewFiniteDecimal wraps a finite decimal.Decimal value.
func NewFiniteDecimal(d decimal.Decimal) Decimal {
	return Decimal{Kind: KindFinite, D: d}
}

// IsNaN reports whether d holds either NaN state.
func (d Decimal) IsNaN() bool { return d.Kind == KindQNaN || d.Kind == KindSNaN }

// IsInf reports whether d holds either infinite state.
func (d Decimal) IsInf() bool { return d.Kind == KindInf || d.Kind == KindNegInf }

// String renders d the way the finite case's decimal.Decimal.String would,
// plus the canonical spellings for the non-finite states.
func (d Decimal) String() string {
	switch d.Kind {
	case KindQNaN, KindSNaN:
		return "NaN"
	case KindInf:
		return "Infinity"
	case KindNegInf:
		return "-Infinity"
	default:
		return d.D.String()
	}
}

// String wraps a UTF-8 string value.
type String string

func (String) valueMarker() {}

// DuplicateKey wraps an object key that repeats an earlier key's text under
// AllowDuplicateKeys. Two DuplicateKey values built from equal text are
// distinct under == since each is its own allocation (pointer identity,
// mirroring Python's id()-based hash on the FakeDict key wrapper), while
// String still renders the plain payload.
type DuplicateKey struct {
	s string
}

func (*DuplicateKey) valueMarker() {}

// NewDuplicateKey allocates a new DuplicateKey wrapping s.
func NewDuplicateKey(s string) *DuplicateKey { return &DuplicateKey{s: s} }

// String returns the wrapped key text.
func (d *DuplicateKey) String() string { return d.s }

// Array wraps an ordered sequence of Values.
type Array []Value

func (Array) valueMarker() {}

// Object is an insertion-ordered mapping from key string to Value. Keys are
// unique under byte equality unless AllowDuplicateKeys permitted Set to
// append a repeat instead of overwriting; At and Keys then expose every
// occurrence positionally, text collision and all, the way a repeated
// object key round-trips through JSON unchanged. KeyAt exposes a repeat as
// a *DuplicateKey rather than a plain String, so callers can tell a
// permitted duplicate apart from its first occurrence by identity.
type Object struct {
	keys      []string
	keyValues []Value
	index     map[string]int
	values    []Value
}

func (*Object) valueMarker() {}

// NewObject returns an empty Object.
func NewObject() *Object {
	return &Object{index: make(map[string]int)}
}

// Len returns the number of key/value pairs, counting every duplicate.
func (o *Object) Len() int { return len(o.keys) }

// Keys returns the insertion-ordered key strings, including duplicates.
func (o *Object) Keys() []string { return o.keys }

// At returns the i-th key/value pair in insertion order.
func (o *Object) At(i int) (string, Value) { return o.keys[i], o.values[i] }

// KeyAt returns the i-th key as a Value: String for a unique key or a
// first occurrence, *DuplicateKey for a repeat permitted by
// AllowDuplicateKeys.
func (o *Object) KeyAt(i int) Value { return o.keyValues[i] }

// Get looks up the first occurrence of key under byte equality.
func (o *Object) Get(key string) (Value, bool) {
	i, ok := o.index[key]
	if !ok {
		return nil, false
	}
	return o.values[i], true
}

// Set appends key/v in insertion order. If key already exists and
// allowDuplicate is false, the existing entry is overwritten in place
// instead of appended, matching JSON's last-value-wins rule for unique
// keys. If allowDuplicate is true, key is always appended as a new pair
// whose KeyAt is a freshly allocated *DuplicateKey, distinct by identity
// from the first occurrence even though both render the same text; Get
// continues to resolve to the first occurrence.
func (o *Object) Set(key string, v Value, allowDuplicate bool) {
	if i, ok := o.index[key]; ok {
		if !allowDuplicate {
			o.values[i] = v
			return
		}
		o.keys = append(o.keys, key)
		o.keyValues = append(o.keyValues, NewDuplicateKey(key))
		o.values = append(o.values, v)
		return
	}
	o.index[key] = len(o.keys)
	o.keys = append(o.keys, key)
	o.keyValues = append(o.keyValues, String(key))
	o.values = append(o.values, v)
}
