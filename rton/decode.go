// Package rton decodes PvZ2's RTON binary container format into the
// value.Value tree shared with the jsonyx writer.
//
// The tag table and traversal are grounded on
// original_source/RTONConverter/rtons_to_jsons.py (the newer, more complete
// of the two reference parsers); the per-invocation string-interning pools
// fix that parser's use of module-level globals
// (original_source/RTONS_PARSER/rtons.py's repeated_latin_string /
// repeated_utf8_string lists), which leak cached strings across files when
// a process decodes more than one container. Fixed-width scalar reads and
// the sticky-error cursor come from internal/bstream, itself adapted from
// oy3o-codec's Reader.
package rton

import (
	"fmt"
	"math/big"
	"unicode/utf8"

	"github.com/nineteendo/pvz2codec/internal/bstream"
	"github.com/nineteendo/pvz2codec/internal/diag"
	"github.com/nineteendo/pvz2codec/value"
	"github.com/rs/zerolog"
)

// Option configures a Decode call.
type Option func(*decoder)

// Repair enables repair mode: a container that ends before a map or list
// terminator is accepted with a warning instead of rejected with an error,
// matching the original parser's options["repairFiles"].
func Repair(enabled bool) Option {
	return func(d *decoder) { d.repair = enabled }
}

// WithLogger mirrors warnings to log as they are recorded.
func WithLogger(log zerolog.Logger) Option {
	return func(d *decoder) { d.collector = diag.NewCollector(log) }
}

type decoder struct {
	src    *bstream.Source
	repair bool

	latinPool []string
	utf8Pool  []string

	collector *diag.Collector
}

// Decode parses a complete RTON container and returns its root value
// (always an Object), any non-fatal warnings recorded along the way, and an
// error if the container is malformed beyond what repair mode tolerates.
func Decode(data []byte, name string, opts ...Option) (value.Value, []diag.Warning, error) {
	d := &decoder{src: bstream.NewSource(data, name)}
	for _, opt := range opts {
		opt(d)
	}
	if d.collector == nil {
		d.collector = diag.NewCollector(zerolog.Nop())
	}

	header := d.src.ReadN(8)
	if d.src.Err() != nil || header == nil || [8]byte(header) != magic {
		return nil, d.collector.Warnings(), fmt.Errorf("%w: %s", ErrBadMagic, name)
	}

	root, err := d.parseMap()
	if err != nil {
		return nil, d.collector.Warnings(), err
	}
	return root, d.collector.Warnings(), nil
}

// parseMap reads key/value pairs (tag 0x85's body) until a terminator tag
// or, in repair mode, until the input runs out.
func (d *decoder) parseMap() (*value.Object, error) {
	obj := value.NewObject()
	for {
		offset := d.src.Tell()
		t, ok, err := d.readTag()
		if err != nil {
			return nil, err
		}
		if !ok {
			if d.repair {
				d.collector.Warn(diag.CodeTruncated, offset, "map ended without a terminator")
				return obj, nil
			}
			return nil, fmt.Errorf("%w: unterminated map at offset %d", bstream.ErrUnexpectedEOF, offset)
		}
		if t == tagEnd0 || t == tagEnd1 {
			return obj, nil
		}
		key, err := d.parseValue(t)
		if err != nil {
			return nil, err
		}
		keyTag, ok2, err := d.readTag()
		if err != nil {
			return nil, err
		}
		if !ok2 {
			if d.repair {
				d.collector.Warn(diag.CodeTruncated, d.src.Tell(), "map ended mid key/value pair")
				return obj, nil
			}
			return nil, fmt.Errorf("%w: unterminated map at offset %d", bstream.ErrUnexpectedEOF, d.src.Tell())
		}
		val, err := d.parseValue(keyTag)
		if err != nil {
			return nil, err
		}
		keyStr, ok3 := key.(value.String)
		if !ok3 {
			return nil, fmt.Errorf("%w: map key was not a string at offset %d", ErrUnknownTag, offset)
		}
		obj.Set(string(keyStr), val, false)
	}
}

// parseList reads tag 0x86's 0xFD frame byte, its declared element count,
// and then elements until a terminator. A count mismatch against the
// elements actually read is a warning, not an error, matching the
// original's "Array of length %s found, expected %s" message.
func (d *decoder) parseList() (value.Array, error) {
	frame := d.src.ReadUint8()
	if d.src.Err() != nil {
		return nil, d.src.Err()
	}
	if tag(frame) != tagListFrame {
		return nil, fmt.Errorf("%w: found 0x%02x", ErrBadListFraming, frame)
	}
	want := d.src.ReadVarint()
	if d.src.Err() != nil {
		return nil, d.src.Err()
	}

	var result value.Array
	offset := d.src.Tell()
	for {
		t, ok, err := d.readTag()
		if err != nil {
			return nil, err
		}
		if !ok {
			if d.repair {
				d.collector.Warn(diag.CodeTruncated, offset, "list ended without a terminator")
				return result, nil
			}
			return nil, fmt.Errorf("%w: unterminated list at offset %d", bstream.ErrUnexpectedEOF, offset)
		}
		if t == tagEnd0 || t == tagEnd1 {
			if uint64(len(result)) != want {
				d.collector.Warn(diag.CodeTrailingData, offset,
					"array of length %d found, expected %d", len(result), want)
			}
			return result, nil
		}
		v, err := d.parseValue(t)
		if err != nil {
			return nil, err
		}
		result = append(result, v)
	}
}

// readTag reads the next tag byte. ok is false only when the input is
// exhausted; any other failure is returned as err.
func (d *decoder) readTag() (tag, bool, error) {
	if d.src.AtEnd() {
		return 0, false, nil
	}
	b := d.src.ReadUint8()
	if err := d.src.Err(); err != nil {
		return 0, false, err
	}
	return tag(b), true, nil
}

func (d *decoder) parseValue(t tag) (value.Value, error) {
	switch t {
	case tagFalse:
		return value.Bool(false), nil
	case tagTrue:
		return value.Bool(true), nil

	case tagInt8:
		return value.NewInteger(int64(d.src.ReadInt8())), d.src.Err()
	case tagInt8Zero:
		return value.NewInteger(0), nil
	case tagUint8:
		return value.NewInteger(int64(d.src.ReadUint8())), d.src.Err()
	case tagUint8Zero:
		return value.NewInteger(0), nil

	case tagInt16:
		return value.NewInteger(int64(d.src.ReadInt16())), d.src.Err()
	case tagInt16Zero:
		return value.NewInteger(0), nil
	case tagUint16:
		return value.NewInteger(int64(d.src.ReadUint16())), d.src.Err()
	case tagUint16Zero:
		return value.NewInteger(0), nil

	case tagInt32:
		return value.NewInteger(int64(d.src.ReadInt32())), d.src.Err()
	case tagInt32Zero:
		return value.NewInteger(0), nil
	case tagFloat32:
		return value.Real(d.src.ReadFloat32()), d.src.Err()
	case tagFloat32Zero:
		return value.Real(0), nil
	case tagInt32VarintPos:
		return value.Integer{V: new(big.Int).SetUint64(d.src.ReadVarint())}, d.src.Err()
	case tagInt32VarintNeg:
		return value.Integer{V: new(big.Int).Neg(new(big.Int).SetUint64(d.src.ReadVarint()))}, d.src.Err()
	case tagUint32:
		return value.NewInteger(int64(d.src.ReadUint32())), d.src.Err()
	case tagUint32Zero:
		return value.NewInteger(0), nil
	case tagUint32VarintPos:
		return value.Integer{V: new(big.Int).SetUint64(d.src.ReadVarint())}, d.src.Err()
	case tagUint32VarintNeg:
		return value.Integer{V: new(big.Int).Neg(new(big.Int).SetUint64(d.src.ReadVarint()))}, d.src.Err()

	case tagInt64:
		return value.NewInteger(d.src.ReadInt64()), d.src.Err()
	case tagInt64Zero:
		return value.NewInteger(0), nil
	case tagFloat64:
		return value.Real(d.src.ReadFloat64()), d.src.Err()
	case tagFloat64Zero:
		return value.Real(0), nil
	case tagInt64VarintPos:
		return value.Integer{V: new(big.Int).SetUint64(d.src.ReadVarint())}, d.src.Err()
	case tagInt64VarintNeg:
		return value.Integer{V: new(big.Int).Neg(new(big.Int).SetUint64(d.src.ReadVarint()))}, d.src.Err()
	case tagUint64:
		return value.Integer{V: new(big.Int).SetUint64(d.src.ReadUint64())}, d.src.Err()
	case tagUint64Zero:
		return value.NewInteger(0), nil
	case tagUint64VarintPos:
		return value.Integer{V: new(big.Int).SetUint64(d.src.ReadVarint())}, d.src.Err()
	case tagUint64VarintNeg:
		return value.Integer{V: new(big.Int).Neg(new(big.Int).SetUint64(d.src.ReadVarint()))}, d.src.Err()

	case tagLatinUncached:
		s, err := d.parseLatinString()
		return value.String(s), err
	case tagUTF8Uncached:
		s, err := d.parseUTF8String()
		return value.String(s), err
	case tagRTID:
		return d.parseRTID()
	case tagRTIDEmpty:
		return value.String("RTID()"), nil

	case tagLatinCacheStore:
		s, err := d.parseLatinString()
		if err != nil {
			return nil, err
		}
		d.latinPool = append(d.latinPool, s)
		return value.String(s), nil
	case tagLatinCacheRef:
		i := d.src.ReadVarint()
		if err := d.src.Err(); err != nil {
			return nil, err
		}
		if i >= uint64(len(d.latinPool)) {
			return nil, fmt.Errorf("%w: latin cache index %d at offset %d", ErrIndexOutOfRange, i, d.src.Tell())
		}
		return value.String(d.latinPool[i]), nil
	case tagUTF8CacheStore:
		s, err := d.parseUTF8String()
		if err != nil {
			return nil, err
		}
		d.utf8Pool = append(d.utf8Pool, s)
		return value.String(s), nil
	case tagUTF8CacheRef:
		i := d.src.ReadVarint()
		if err := d.src.Err(); err != nil {
			return nil, err
		}
		if i >= uint64(len(d.utf8Pool)) {
			return nil, fmt.Errorf("%w: utf8 cache index %d at offset %d", ErrIndexOutOfRange, i, d.src.Tell())
		}
		return value.String(d.utf8Pool[i]), nil

	case tagMap:
		return d.parseMap()
	case tagList:
		return d.parseList()

	default:
		return nil, fmt.Errorf("%w: 0x%02x at offset %d", ErrUnknownTag, byte(t), d.src.Tell()-1)
	}
}

// parseLatinString reads tag 0x81's uncached string: a varint byte length
// followed by that many bytes. The bytes decode as UTF-8 when valid; a tag
// named "Latin" still carries UTF-8-encoded text in some captures, so only
// a byte sequence that fails UTF-8 validation falls back to Latin-1 (each
// byte read as its own code point). Kept as its own fallback path rather
// than folded into parseUTF8String, since a 0x81 payload carries no
// separate character count to cross-check against.
func (d *decoder) parseLatinString() (string, error) {
	n := d.src.ReadVarint()
	raw := d.src.ReadN(int(n))
	if err := d.src.Err(); err != nil {
		return "", err
	}
	if utf8.Valid(raw) {
		return string(raw), nil
	}
	runes := make([]rune, len(raw))
	for i, b := range raw {
		runes[i] = rune(b)
	}
	return string(runes), nil
}

// parseUTF8String reads a UTF-8 uncached string: a varint character count,
// a varint byte length, and that many UTF-8 bytes. A character-count
// mismatch is only ever logged (see ADR in DESIGN.md on printable_str
// leniency), never rejected.
func (d *decoder) parseUTF8String() (string, error) {
	wantChars := d.src.ReadVarint()
	n := d.src.ReadVarint()
	raw := d.src.ReadN(int(n))
	if err := d.src.Err(); err != nil {
		return "", err
	}
	s := string(raw)
	gotChars := uint64(len([]rune(s)))
	if gotChars != wantChars {
		d.collector.Warn(diag.CodeLossyNumber, d.src.Tell(),
			"unicode string of character length %d found, expected %d", gotChars, wantChars)
	}
	return s, nil
}

// parseRTID decodes an 0x83 reference by its sub-tag byte: 0x00 is the
// empty reference, 0x03 pairs two UTF-8 strings, and 0x02 pairs a UTF-8
// string with a numeric instance id built from two varints and four
// byte-reversed hex digits.
func (d *decoder) parseRTID() (value.Value, error) {
	sub := d.src.ReadUint8()
	if err := d.src.Err(); err != nil {
		return nil, err
	}
	switch sub {
	case 0x00:
		return value.String("RTID()"), nil
	case 0x03:
		p1, err := d.parseUTF8String()
		if err != nil {
			return nil, err
		}
		p2, err := d.parseUTF8String()
		if err != nil {
			return nil, err
		}
		return value.String(fmt.Sprintf("RTID(%s@%s)", p2, p1)), nil
	case 0x02:
		p1, err := d.parseUTF8String()
		if err != nil {
			return nil, err
		}
		i2 := d.src.ReadVarint()
		i1 := d.src.ReadVarint()
		idBytes := d.src.ReadN(4)
		if err := d.src.Err(); err != nil {
			return nil, err
		}
		rev := make([]byte, 4)
		for i, b := range idBytes {
			rev[3-i] = b
		}
		p2 := fmt.Sprintf("%d.%d.%x", i1, i2, rev)
		return value.String(fmt.Sprintf("RTID(%s@%s)", p2, p1)), nil
	default:
		return nil, fmt.Errorf("%w: 0x%02x", ErrBadRTIDSubtag, sub)
	}
}
