// Package jsonyx implements a permissive "Extended JSON" reader and a
// strict JSON writer: comments, trailing commas, missing commas, duplicate
// keys, NaN/Infinity, and arbitrary-precision Decimal values on top of the
// value.Value tree shared with the rton package.
//
// The decoder's recursive-descent structure is grounded on
// original_source/pyvz2/jsonc/decoder.py and scanner.py; the permission
// model, syntax-error shape, and auto-encoding detection are grounded on
// the newer original_source/src/jsonyx/__init__.py.
package jsonyx

import (
	"io"

	"github.com/nineteendo/pvz2codec/charset"
)

// Decoder deserializes JSONYX documents according to a fixed Allow
// permission set, mirroring original_source/src/jsonyx/__init__.py's
// Decoder class.
type Decoder struct {
	Allow      Allow
	UseDecimal bool
}

// NewDecoder returns a Decoder with the given permissions.
func NewDecoder(allow Allow) *Decoder {
	return &Decoder{Allow: allow}
}

// Loads deserializes a JSONYX document already decoded to a Go string.
func (d *Decoder) Loads(doc, filename string) (any, error) {
	sc := newScanner(doc, filename, d.Allow, d.UseDecimal)
	return sc.parseDocument()
}

// LoadBytes auto-detects b's text encoding via charset.AutoDecode and
// deserializes the result.
func (d *Decoder) LoadBytes(b []byte, filename string) (any, error) {
	doc, err := charset.AutoDecode(b)
	if err != nil {
		return nil, err
	}
	return d.Loads(doc, filename)
}

// Load reads r fully, then behaves like LoadBytes.
func (d *Decoder) Load(r io.Reader, filename string) (any, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return d.LoadBytes(b, filename)
}

// Loads deserializes doc with strict-JSON permissions (NOTHING).
func Loads(doc string) (any, error) {
	return NewDecoder(NOTHING).Loads(doc, "<string>")
}

// Load reads r fully and deserializes it with strict-JSON permissions.
func Load(r io.Reader) (any, error) {
	return NewDecoder(NOTHING).Load(r, "<string>")
}
