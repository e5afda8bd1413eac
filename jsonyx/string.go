package jsonyx

import (
	"strconv"

	"github.com/nineteendo/pvz2codec/charset"
)

// parseString reads a JSON string body starting right after the opening
// quote at idx, mirroring original_source/pyvz2/jsonc/decoder.py's
// parse_string: scan runs of unescaped characters up to the next quote,
// backslash, or control character, translate backslash escapes via a fixed
// table, and decode \uXXXX (with surrogate-pair combination) via
// strconv.ParseUint instead of STRINGCHUNK's regex-driven chunking, since
// Go's string scanning is byte-indexed rather than regex-chunked.
func (sc *scanner) parseString(idx int) (string, int, error) {
	begin := idx - 1
	s := sc.doc
	var b []byte
	for {
		chunkStart := idx
		for idx < len(s) && s[idx] != '"' && s[idx] != '\\' && s[idx] >= 0x20 {
			idx++
		}
		b = append(b, s[chunkStart:idx]...)

		if idx >= len(s) {
			return "", idx, sc.errf("Unterminated string starting at", begin, begin+1)
		}

		switch s[idx] {
		case '"':
			return string(b), idx + 1, nil
		case '\\':
			idx++
			if idx >= len(s) {
				return "", idx, sc.errf("Unterminated string starting at", begin, begin+1)
			}
			esc := s[idx]
			if esc != 'u' {
				ch, ok := backslashTable[esc]
				if !ok {
					return "", idx, sc.errf("Invalid \\escape: "+strconv.QuoteRune(rune(esc)), idx, idx+1)
				}
				b = append(b, ch)
				idx++
				continue
			}
			r, next, err := sc.decodeUnicodeEscape(idx)
			if err != nil {
				return "", idx, err
			}
			idx = next
			b = charset.AppendRune(b, r)
		default:
			return "", idx, sc.errf("Invalid control character", idx, idx+1)
		}
	}
}

var backslashTable = map[byte]byte{
	'"': '"', '\\': '\\', '/': '/',
	'b': '\b', 'f': '\f', 'n': '\n', 'r': '\r', 't': '\t',
}

// decodeUnicodeEscape parses a \uXXXX escape starting at the 'u' byte, and
// combines it with a following \uXXXX low surrogate if the first escape was
// a high surrogate, matching decoder.py's _decode_unicode_escape plus the
// inline surrogate-pair combination in parse_string. Lone surrogates are
// preserved as their own rune instead of being rejected.
func (sc *scanner) decodeUnicodeEscape(uIdx int) (rune, int, error) {
	s := sc.doc
	hi, hiEnd, err := sc.hex4(uIdx)
	if err != nil {
		return 0, 0, err
	}
	if hi >= 0xd800 && hi <= 0xdbff && hiEnd+1 < len(s) && s[hiEnd] == '\\' && s[hiEnd+1] == 'u' {
		lo, loEnd, err2 := sc.hex4(hiEnd + 1)
		if err2 == nil && lo >= 0xdc00 && lo <= 0xdfff {
			r := (((hi - 0xd800) << 10) | (lo - 0xdc00)) + 0x10000
			return rune(r), loEnd, nil
		}
	}
	return rune(hi), hiEnd, nil
}

// hex4 parses the four hex digits immediately after a '\u' escape's 'u'
// byte at idx, returning the code point and the index just past it.
func (sc *scanner) hex4(uIdx int) (int, int, error) {
	s := sc.doc
	start := uIdx + 1
	if start+4 > len(s) {
		return 0, 0, sc.errf(`Invalid \uXXXX escape`, uIdx-1, uIdx+1)
	}
	esc := s[start : start+4]
	if esc[1] == 'x' || esc[1] == 'X' {
		return 0, 0, sc.errf(`Invalid \uXXXX escape`, uIdx-1, uIdx+1)
	}
	n, err := strconv.ParseUint(esc, 16, 32)
	if err != nil {
		return 0, 0, sc.errf(`Invalid \uXXXX escape`, uIdx-1, uIdx+1)
	}
	return int(n), start + 4, nil
}
