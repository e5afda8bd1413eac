package jsonyx

import (
	"fmt"
	"io"
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/nineteendo/pvz2codec/charset"
	"github.com/nineteendo/pvz2codec/internal/bstream"
	"github.com/nineteendo/pvz2codec/value"
)

// Encoder serializes a value.Value tree to strict JSON text, grounded on
// original_source/src/jsonyx/__init__.py's Encoder/dump/dumps and adapted
// to write through an internal/bstream.Sink the way oy3o-codec's Writer
// buffers binary output.
type Encoder struct {
	Allow         Allow
	EnsureASCII   bool
	Indent        string
	ItemSeparator string
	KeySeparator  string
	SortKeys      bool
}

// NewEncoder returns an Encoder with jsonyx's defaults: no indentation,
// ", " and ": " separators, insertion order preserved.
func NewEncoder() *Encoder {
	return &Encoder{ItemSeparator: ", ", KeySeparator: ": "}
}

// Dumps serializes v to a JSON string.
func (e *Encoder) Dumps(v value.Value) (string, error) {
	var b strings.Builder
	if err := e.write(&b, v, 0); err != nil {
		return "", err
	}
	return b.String(), nil
}

// Dump serializes v to w.
func (e *Encoder) Dump(w io.Writer, v value.Value) error {
	sink := bstream.NewSink(w)
	var b strings.Builder
	if err := e.write(&b, v, 0); err != nil {
		return err
	}
	sink.WriteString(b.String())
	return sink.Flush()
}

// Dumps serializes v to a JSON string using jsonyx's default separators.
func Dumps(v value.Value) (string, error) {
	return NewEncoder().Dumps(v)
}

// Dump serializes v to w using jsonyx's default separators.
func Dump(w io.Writer, v value.Value) error {
	return NewEncoder().Dump(w, v)
}

func (e *Encoder) write(b *strings.Builder, v value.Value, depth int) error {
	switch x := v.(type) {
	case nil:
		b.WriteString("null")
	case value.Null:
		b.WriteString("null")
	case value.Bool:
		if x {
			b.WriteString("true")
		} else {
			b.WriteString("false")
		}
	case value.Integer:
		b.WriteString(x.V.String())
	case value.Real:
		return e.writeReal(b, float64(x))
	case value.Decimal:
		return e.writeDecimal(b, x)
	case value.String:
		return e.writeString(b, string(x))
	case *value.DuplicateKey:
		return e.writeString(b, x.String())
	case value.Array:
		return e.writeArray(b, x, depth)
	case *value.Object:
		return e.writeObject(b, x, depth)
	default:
		return &ValueError{Msg: fmt.Sprintf("jsonyx: unsupported value type %T", v)}
	}
	return nil
}

func (e *Encoder) writeReal(b *strings.Builder, f float64) error {
	switch {
	case math.IsNaN(f):
		if !e.Allow.Has(AllowNaNAndInfinity) {
			return &ValueError{Msg: "jsonyx: NaN is not allowed"}
		}
		b.WriteString("NaN")
	case math.IsInf(f, 1):
		if !e.Allow.Has(AllowNaNAndInfinity) {
			return &ValueError{Msg: "jsonyx: Infinity is not allowed"}
		}
		b.WriteString("Infinity")
	case math.IsInf(f, -1):
		if !e.Allow.Has(AllowNaNAndInfinity) {
			return &ValueError{Msg: "jsonyx: -Infinity is not allowed"}
		}
		b.WriteString("-Infinity")
	default:
		s := strconv.FormatFloat(f, 'g', -1, 64)
		if !strings.ContainsAny(s, ".e") {
			s += ".0" // keep an integral Real distinct from an Integer
		}
		b.WriteString(s)
	}
	return nil
}

// writeDecimal serializes a value.Decimal. A signaling-NaN can only have
// originated from a user-supplied value (the decoder never produces one)
// and is always rejected here, per spec invariant 2 on the value model.
func (e *Encoder) writeDecimal(b *strings.Builder, d value.Decimal) error {
	switch d.Kind {
	case value.KindSNaN:
		return &ValueError{Msg: "jsonyx: signaling NaN is not allowed"}
	case value.KindQNaN:
		if !e.Allow.Has(AllowNaNAndInfinity) {
			return &ValueError{Msg: "jsonyx: NaN is not allowed"}
		}
		b.WriteString("NaN")
	case value.KindInf:
		if !e.Allow.Has(AllowNaNAndInfinity) {
			return &ValueError{Msg: "jsonyx: Infinity is not allowed"}
		}
		b.WriteString("Infinity")
	case value.KindNegInf:
		if !e.Allow.Has(AllowNaNAndInfinity) {
			return &ValueError{Msg: "jsonyx: -Infinity is not allowed"}
		}
		b.WriteString("-Infinity")
	default:
		b.WriteString(d.D.String())
	}
	return nil
}

func (e *Encoder) writeArray(b *strings.Builder, arr value.Array, depth int) error {
	if len(arr) == 0 {
		b.WriteString("[]")
		return nil
	}
	b.WriteByte('[')
	nl, ind, closeInd := e.newlineAndIndent(depth)
	for i, elem := range arr {
		if i > 0 {
			b.WriteString(e.ItemSeparator)
		}
		b.WriteString(nl)
		b.WriteString(ind)
		if err := e.write(b, elem, depth+1); err != nil {
			return err
		}
	}
	b.WriteString(nl)
	b.WriteString(closeInd)
	b.WriteByte(']')
	return nil
}

func (e *Encoder) writeObject(b *strings.Builder, obj *value.Object, depth int) error {
	if obj.Len() == 0 {
		b.WriteString("{}")
		return nil
	}
	b.WriteByte('{')
	nl, ind, closeInd := e.newlineAndIndent(depth)

	type pair struct {
		key string
		val value.Value
	}
	pairs := make([]pair, obj.Len())
	for i := 0; i < obj.Len(); i++ {
		k, v := obj.At(i)
		pairs[i] = pair{k, v}
	}
	if e.SortKeys {
		sort.SliceStable(pairs, func(i, j int) bool { return pairs[i].key < pairs[j].key })
	}

	for i, p := range pairs {
		if i > 0 {
			b.WriteString(e.ItemSeparator)
		}
		b.WriteString(nl)
		b.WriteString(ind)
		if err := e.writeString(b, p.key); err != nil {
			return err
		}
		b.WriteString(e.KeySeparator)
		if err := e.write(b, p.val, depth+1); err != nil {
			return err
		}
	}
	b.WriteString(nl)
	b.WriteString(closeInd)
	b.WriteByte('}')
	return nil
}

func (e *Encoder) newlineAndIndent(depth int) (newline, indent, closeIndent string) {
	if e.Indent == "" {
		return "", "", ""
	}
	return "\n", strings.Repeat(e.Indent, depth+1), strings.Repeat(e.Indent, depth)
}

func (e *Encoder) writeString(b *strings.Builder, s string) error {
	b.WriteByte('"')
	for len(s) > 0 {
		r, size := charset.DecodeRune(s)
		s = s[size:]
		switch r {
		case '"':
			b.WriteString(`\"`)
		case '\\':
			b.WriteString(`\\`)
		case '\n':
			b.WriteString(`\n`)
		case '\r':
			b.WriteString(`\r`)
		case '\t':
			b.WriteString(`\t`)
		case '\b':
			b.WriteString(`\b`)
		case '\f':
			b.WriteString(`\f`)
		default:
			switch {
			case r < 0x20:
				fmt.Fprintf(b, `\u%04x`, r)
			case r >= 0xd800 && r <= 0xdfff && !e.Allow.Has(AllowSurrogates):
				return &ValueError{Msg: "jsonyx: Surrogates are not allowed"}
			case r > 0xffff && e.EnsureASCII:
				r1, r2 := utf16Encode(r)
				fmt.Fprintf(b, `\u%04x\u%04x`, r1, r2)
			case r > 0x7e && e.EnsureASCII:
				fmt.Fprintf(b, `\u%04x`, r)
			case r >= 0xd800 && r <= 0xdfff:
				b.Write(charset.AppendRune(nil, r))
			default:
				b.WriteRune(r)
			}
		}
	}
	b.WriteByte('"')
	return nil
}

// utf16Encode splits a rune above the BMP into its UTF-16 surrogate pair.
func utf16Encode(r rune) (rune, rune) {
	r -= 0x10000
	return 0xd800 + (r >> 10), 0xdc00 + (r & 0x3ff)
}
