package jsonyx

import (
	"math"
	"math/big"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/nineteendo/pvz2codec/value"
)

// scanner is a recursive-descent JSON/JSONYX reader over a single decoded
// document string. Its structure mirrors
// original_source/pyvz2/jsonc/decoder.py's parse_object/parse_array plus
// scanner.py's _scan_once dispatch, extended with the jsonyx permissions
// (comments, missing commas, trailing comma, duplicate keys,
// NaN/Infinity, Decimal) described in
// original_source/src/jsonyx/__init__.py. Unlike the Python original's
// module-level memo dict, the key-interning memo is a field on scanner so
// two concurrent Decode calls never share state, mirroring the
// per-invocation string pools RTON needed for the same reason.
type scanner struct {
	doc        string
	filename   string
	cfg        *scannerConfig
	useDecimal bool
	memo       map[string]string
}

func newScanner(doc, filename string, allow Allow, useDecimal bool) *scanner {
	return &scanner{doc: doc, filename: filename, cfg: configFor(allow), useDecimal: useDecimal, memo: make(map[string]string)}
}

func (sc *scanner) errf(msg string, start, end int) error {
	return NewSyntaxError(msg, sc.filename, sc.doc, start, end)
}

// parseDocument parses a whole top-level value and rejects trailing data.
func (sc *scanner) parseDocument() (value.Value, error) {
	idx := sc.skipSpace(0)
	v, end, err := sc.scanOnce(idx)
	if err != nil {
		return nil, err
	}
	end = sc.skipSpace(end)
	if end < len(sc.doc) {
		return nil, sc.errf("Extra data", end, end+1)
	}
	return v, nil
}

func (sc *scanner) skipSpace(idx int) int {
	for idx < len(sc.doc) {
		switch sc.doc[idx] {
		case ' ', '\t', '\n', '\r':
			idx++
			continue
		}
		if sc.cfg.comments {
			if strings.HasPrefix(sc.doc[idx:], "//") {
				if nl := strings.IndexByte(sc.doc[idx:], '\n'); nl >= 0 {
					idx += nl
				} else {
					idx = len(sc.doc)
				}
				continue
			}
			if strings.HasPrefix(sc.doc[idx:], "/*") {
				if end := strings.Index(sc.doc[idx+2:], "*/"); end >= 0 {
					idx = idx + 2 + end + 2
					continue
				}
				return len(sc.doc)
			}
		}
		break
	}
	return idx
}

// scanOnce dispatches on the next non-space character, mirroring
// scanner.py's _scan_once.
func (sc *scanner) scanOnce(idx int) (value.Value, int, error) {
	if idx >= len(sc.doc) {
		return nil, idx, sc.errf("Expecting value", idx, idx+1)
	}
	switch c := sc.doc[idx]; {
	case c == '"':
		s, end, err := sc.parseString(idx + 1)
		return value.String(s), end, err
	case c == '{':
		return sc.parseObject(idx + 1)
	case c == '[':
		return sc.parseArray(idx + 1)
	case strings.HasPrefix(sc.doc[idx:], "null"):
		return value.Null{}, idx + 4, nil
	case strings.HasPrefix(sc.doc[idx:], "true"):
		return value.Bool(true), idx + 4, nil
	case strings.HasPrefix(sc.doc[idx:], "false"):
		return value.Bool(false), idx + 5, nil
	case c == 'N' && strings.HasPrefix(sc.doc[idx:], "NaN"):
		if !sc.cfg.nanAndInfinity {
			return nil, idx, sc.errf("NaN is not allowed", idx, idx+3)
		}
		return sc.nonFiniteValue(value.KindQNaN), idx + 3, nil
	case c == 'I' && strings.HasPrefix(sc.doc[idx:], "Infinity"):
		if !sc.cfg.nanAndInfinity {
			return nil, idx, sc.errf("Infinity is not allowed", idx, idx+8)
		}
		return sc.nonFiniteValue(value.KindInf), idx + 8, nil
	case c == '-' && strings.HasPrefix(sc.doc[idx:], "-Infinity"):
		if !sc.cfg.nanAndInfinity {
			return nil, idx, sc.errf("-Infinity is not allowed", idx, idx+9)
		}
		return sc.nonFiniteValue(value.KindNegInf), idx + 9, nil
	case c == '-' || (c >= '0' && c <= '9'):
		return sc.parseNumber(idx)
	default:
		return nil, idx, sc.errf("Expecting value", idx, idx+1)
	}
}

func (sc *scanner) nonFiniteValue(kind value.DecimalKind) value.Value {
	if sc.useDecimal {
		return value.Decimal{Kind: kind}
	}
	switch kind {
	case value.KindInf:
		return value.Real(math.Inf(1))
	case value.KindNegInf:
		return value.Real(math.Inf(-1))
	default:
		return value.Real(math.NaN())
	}
}

// parseNumber matches NUMBER's shape from
// original_source/pyvz2/jsonc/scanner.py: (-?(?:0|[1-9]\d*))(\.\d+)?([eE][-+]?\d+)?
func (sc *scanner) parseNumber(idx int) (value.Value, int, error) {
	start := idx
	s := sc.doc
	if idx < len(s) && s[idx] == '-' {
		idx++
	}
	intStart := idx
	switch {
	case idx < len(s) && s[idx] == '0':
		idx++
	case idx < len(s) && s[idx] >= '1' && s[idx] <= '9':
		for idx < len(s) && s[idx] >= '0' && s[idx] <= '9' {
			idx++
		}
	default:
		return nil, idx, sc.errf("Expecting value", start, start+1)
	}
	if idx == intStart {
		return nil, idx, sc.errf("Expecting value", start, start+1)
	}

	hasFrac := false
	if idx < len(s) && s[idx] == '.' {
		j := idx + 1
		k := j
		for k < len(s) && s[k] >= '0' && s[k] <= '9' {
			k++
		}
		if k > j {
			hasFrac = true
			idx = k
		}
	}

	hasExp := false
	if idx < len(s) && (s[idx] == 'e' || s[idx] == 'E') {
		j := idx + 1
		if j < len(s) && (s[j] == '+' || s[j] == '-') {
			j++
		}
		k := j
		for k < len(s) && s[k] >= '0' && s[k] <= '9' {
			k++
		}
		if k > j {
			hasExp = true
			idx = k
		}
	}

	lit := s[start:idx]
	if !hasFrac && !hasExp {
		n := new(big.Int)
		n.SetString(lit, 10)
		return value.Integer{V: n}, idx, nil
	}
	if sc.useDecimal {
		d, err := decimal.NewFromString(lit)
		if err != nil {
			return nil, idx, sc.errf("Invalid number", start, idx)
		}
		return value.NewFiniteDecimal(d), idx, nil
	}
	f, _, err := big.ParseFloat(lit, 10, 53, big.ToNearestEven)
	if err != nil {
		return nil, idx, sc.errf("Invalid number", start, idx)
	}
	fv, acc := f.Float64()
	if math.IsInf(fv, 0) && acc != big.Exact {
		return nil, idx, sc.errf("Big numbers require decimal", start, idx)
	}
	return value.Real(fv), idx, nil
}

// parseObject mirrors parse_object, extended with comment-skipping,
// missing-comma tolerance, trailing-comma tolerance, and duplicate-key
// handling gated by Allow.
func (sc *scanner) parseObject(idx int) (value.Value, int, error) {
	obj := value.NewObject()
	keyStarts := make(map[string]int)
	idx = sc.skipSpace(idx)
	if idx < len(sc.doc) && sc.doc[idx] == '}' {
		return obj, idx + 1, nil
	}
	for {
		keyStart := idx
		if idx >= len(sc.doc) || sc.doc[idx] != '"' {
			return nil, idx, sc.errf("Expecting property name enclosed in double quotes", idx, idx+1)
		}
		key, end, err := sc.parseString(idx + 1)
		if err != nil {
			return nil, end, err
		}
		if interned, ok := sc.memo[key]; ok {
			key = interned
		} else {
			sc.memo[key] = key
		}
		_, alreadyPresent := obj.Get(key)
		if alreadyPresent && !sc.cfg.duplicateKeys {
			return nil, end, sc.errf("Duplicate keys are not allowed", keyStarts[key], end)
		}
		if !alreadyPresent {
			keyStarts[key] = keyStart
		}
		idx = sc.skipSpace(end)
		if idx >= len(sc.doc) || sc.doc[idx] != ':' {
			return nil, idx, sc.errf("Expecting ':' delimiter", idx, idx+1)
		}
		idx = sc.skipSpace(idx + 1)

		v, vend, err := sc.scanOnce(idx)
		if err != nil {
			return nil, vend, err
		}
		obj.Set(key, v, alreadyPresent && sc.cfg.duplicateKeys)
		idx = sc.skipSpace(vend)

		if idx >= len(sc.doc) {
			return nil, idx, sc.errf("Expecting ',' delimiter", idx, idx+1)
		}
		switch sc.doc[idx] {
		case '}':
			return obj, idx + 1, nil
		case ',':
			commaIdx := idx
			idx = sc.skipSpace(idx + 1)
			if idx < len(sc.doc) && sc.doc[idx] == '}' {
				if !sc.cfg.trailingComma {
					return nil, commaIdx, sc.errf("Illegal trailing comma before end of object", commaIdx, commaIdx+1)
				}
				return obj, idx + 1, nil
			}
		default:
			if sc.cfg.missingCommas && sc.doc[idx] == '"' {
				// adjacent pair with no comma; keep idx where it is
				break
			}
			return nil, idx, sc.errf("Expecting ',' delimiter", idx, idx+1)
		}
	}
}

// parseArray mirrors parse_array with the same comment/missing-comma/
// trailing-comma extensions as parseObject.
func (sc *scanner) parseArray(idx int) (value.Value, int, error) {
	var arr value.Array
	idx = sc.skipSpace(idx)
	if idx < len(sc.doc) && sc.doc[idx] == ']' {
		return arr, idx + 1, nil
	}
	for {
		v, vend, err := sc.scanOnce(idx)
		if err != nil {
			return nil, vend, err
		}
		arr = append(arr, v)
		idx = sc.skipSpace(vend)

		if idx >= len(sc.doc) {
			return nil, idx, sc.errf("Expecting ',' delimiter", idx, idx+1)
		}
		switch sc.doc[idx] {
		case ']':
			return arr, idx + 1, nil
		case ',':
			commaIdx := idx
			idx = sc.skipSpace(idx + 1)
			if idx < len(sc.doc) && sc.doc[idx] == ']' {
				if !sc.cfg.trailingComma {
					return nil, commaIdx, sc.errf("Illegal trailing comma before end of array", commaIdx, commaIdx+1)
				}
				return arr, idx + 1, nil
			}
		default:
			if sc.cfg.missingCommas {
				break
			}
			return nil, idx, sc.errf("Expecting ',' delimiter", idx, idx+1)
		}
	}
}
