// Package charset detects the text encoding of a JSONYX document and
// decodes it to a Go string, preserving unpaired UTF-16 surrogates instead
// of replacing them the way a strict UTF-8 decode would.
//
// The BOM and zero-byte-pattern heuristics are adapted from
// auto_decode in original_source/src/jsonyx/__init__.py; the manual
// UTF-16/UTF-32 decode loops follow the shape of fixUTF8's decodeUTF16 and
// decodeUTF32 helpers in the bodrovis glossary-guard encoding check, but
// keep rather than replace unpaired surrogates, since JSONYX documents must
// round-trip them losslessly.
package charset

import (
	"encoding/binary"
	"fmt"
	"unicode/utf16"
	"unicode/utf8"
)

// Encoding names the detected text encoding of a byte slice.
type Encoding string

const (
	UTF8      Encoding = "utf-8"
	UTF8Sig   Encoding = "utf-8-sig"
	UTF16     Encoding = "utf-16"
	UTF16BE   Encoding = "utf-16-be"
	UTF16LE   Encoding = "utf-16-le"
	UTF32     Encoding = "utf-32"
	UTF32BE   Encoding = "utf-32-be"
	UTF32LE   Encoding = "utf-32-le"
)

var (
	bomUTF8    = []byte{0xEF, 0xBB, 0xBF}
	bomUTF16BE = []byte{0xFE, 0xFF}
	bomUTF16LE = []byte{0xFF, 0xFE}
	bomUTF32BE = []byte{0x00, 0x00, 0xFE, 0xFF}
	bomUTF32LE = []byte{0xFF, 0xFE, 0x00, 0x00}
)

func startsWith(b, prefix []byte) bool {
	return len(b) >= len(prefix) && string(b[:len(prefix)]) == string(prefix)
}

// Detect classifies b's encoding using a leading BOM if present, falling
// back to a zero-byte-position heuristic over the first four (or two)
// bytes, and finally to plain UTF-8. It never reads past byte 4.
func Detect(b []byte) Encoding {
	switch {
	case startsWith(b, bomUTF32BE), startsWith(b, bomUTF32LE):
		return UTF32
	case startsWith(b, bomUTF16BE), startsWith(b, bomUTF16LE):
		return UTF16
	case startsWith(b, bomUTF8):
		return UTF8Sig
	}
	switch {
	case len(b) >= 4:
		if b[0] == 0 {
			// 00 00 -- -- - utf-32-be
			// 00 XX -- -- - utf-16-be
			if b[1] != 0 {
				return UTF16BE
			}
			return UTF32BE
		}
		if b[1] == 0 {
			// XX 00 00 00 - utf-32-le
			// XX 00 00 XX - utf-16-le
			// XX 00 XX -- - utf-16-le
			if b[2] != 0 || b[3] != 0 {
				return UTF16LE
			}
			return UTF32LE
		}
	case len(b) == 2:
		if b[0] == 0 {
			return UTF16BE
		}
		if b[1] == 0 {
			return UTF16LE
		}
	}
	return UTF8
}

// AutoDecode detects b's encoding and decodes it to a Go string. Unlike a
// strict UTF-8 decode, unpaired UTF-16/UTF-32 surrogates are preserved by
// encoding each lone surrogate as its own 3-byte CESU-8-style sequence
// instead of substituting utf8.RuneError, mirroring Python's
// str.decode(encoding, "surrogatepass").
func AutoDecode(b []byte) (string, error) {
	switch Detect(b) {
	case UTF32:
		if startsWith(b, bomUTF32BE) {
			return decodeUTF32(b[4:], binary.BigEndian)
		}
		return decodeUTF32(b[4:], binary.LittleEndian)
	case UTF32BE:
		return decodeUTF32(b, binary.BigEndian)
	case UTF32LE:
		return decodeUTF32(b, binary.LittleEndian)
	case UTF16:
		if startsWith(b, bomUTF16BE) {
			return decodeUTF16(b[2:], binary.BigEndian)
		}
		return decodeUTF16(b[2:], binary.LittleEndian)
	case UTF16BE:
		return decodeUTF16(b, binary.BigEndian)
	case UTF16LE:
		return decodeUTF16(b, binary.LittleEndian)
	case UTF8Sig:
		return string(b[len(bomUTF8):]), nil
	default:
		return string(b), nil
	}
}

// decodeUTF16 decodes big- or little-endian UTF-16 code units, preserving
// unpaired surrogates instead of collapsing them to utf8.RuneError.
func decodeUTF16(b []byte, order binary.ByteOrder) (string, error) {
	if len(b)%2 != 0 {
		return "", fmt.Errorf("charset: truncated utf-16 code unit (%d trailing byte)", len(b)%2)
	}
	units := make([]uint16, len(b)/2)
	for i := range units {
		units[i] = order.Uint16(b[2*i:])
	}
	var out []byte
	for i := 0; i < len(units); i++ {
		r1 := units[i]
		if utf16.IsSurrogate(rune(r1)) {
			if i+1 < len(units) {
				r := utf16.DecodeRune(rune(r1), rune(units[i+1]))
				if r != utf8.RuneError {
					out = appendRune(out, r)
					i++
					continue
				}
			}
			out = appendSurrogate(out, rune(r1))
			continue
		}
		out = appendRune(out, rune(r1))
	}
	return string(out), nil
}

// decodeUTF32 decodes big- or little-endian UTF-32 code points, preserving
// lone surrogate code points (invalid in strict UTF-32 but present in
// malformed real-world input) the same way decodeUTF16 does.
func decodeUTF32(b []byte, order binary.ByteOrder) (string, error) {
	if len(b)%4 != 0 {
		return "", fmt.Errorf("charset: truncated utf-32 code point (%d trailing byte(s))", len(b)%4)
	}
	var out []byte
	for i := 0; i < len(b); i += 4 {
		r := rune(order.Uint32(b[i:]))
		switch {
		case utf16.IsSurrogate(r):
			out = appendSurrogate(out, r)
		case r > utf8.MaxRune || r < 0:
			return "", fmt.Errorf("charset: code point U+%X out of range at byte %d", r, i)
		default:
			out = appendRune(out, r)
		}
	}
	return string(out), nil
}

// AppendRune appends r's UTF-8 encoding to b, preserving a lone surrogate
// half (0xD800-0xDFFF) as its own 3-byte sequence instead of substituting
// utf8.RuneError the way utf8.AppendRune would.
func AppendRune(b []byte, r rune) []byte {
	if utf16.IsSurrogate(r) {
		return appendSurrogate(b, r)
	}
	return appendRune(b, r)
}

// DecodeRune decodes the first rune in s, the way utf8.DecodeRuneInString
// does, except a 3-byte sequence that encodes a lone surrogate
// (0xD800-0xDFFF) is returned as that surrogate rune instead of
// utf8.RuneError, since Go's standard decoder rejects surrogate code
// points as invalid UTF-8 by construction. size is always 3 for a
// surrogate, matching the encoding appendSurrogate produces.
func DecodeRune(s string) (r rune, size int) {
	if len(s) >= 3 && s[0] == 0xED && s[1] >= 0xA0 && s[1] <= 0xBF {
		v := (rune(s[0]&0x0F) << 12) | (rune(s[1]&0x3F) << 6) | rune(s[2]&0x3F)
		if utf16.IsSurrogate(v) {
			return v, 3
		}
	}
	return utf8.DecodeRuneInString(s)
}

func appendRune(b []byte, r rune) []byte {
	var tmp [utf8.UTFMax]byte
	n := utf8.EncodeRune(tmp[:], r)
	return append(b, tmp[:n]...)
}

// appendSurrogate encodes a lone surrogate half (0xD800-0xDFFF) as its own
// 3-byte sequence, the same bit layout UTF-8 would use for any other
// codepoint in that range. This is invalid strict UTF-8 but round-trips
// losslessly, matching Python's "surrogatepass" error handler.
func appendSurrogate(b []byte, r rune) []byte {
	return append(b,
		0xE0|byte(r>>12),
		0x80|byte(r>>6)&0x3F,
		0x80|byte(r)&0x3F,
	)
}
