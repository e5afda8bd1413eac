package jsonyx

// Allow is a bitmask of permissive-parsing extensions a Decoder accepts
// beyond strict JSON. It is the Go spelling of jsonyx's string-set
// "allow" container (original_source/src/jsonyx/__init__.py's _AllowList):
// a fixed permission enumeration is idiomatically a bitmask of typed
// constants in Go, not a container of string literals, so unrecognized
// permissions are impossible by construction.
type Allow uint8

const (
	// AllowComments permits // and /* */ comments.
	AllowComments Allow = 1 << iota
	// AllowDuplicateKeys permits an object to repeat a key; every
	// occurrence is appended instead of overwriting the first.
	AllowDuplicateKeys
	// AllowMissingCommas permits adjacent array/object elements separated
	// only by whitespace.
	AllowMissingCommas
	// AllowNaNAndInfinity permits the NaN, Infinity, and -Infinity
	// literals.
	AllowNaNAndInfinity
	// AllowTrailingComma permits a trailing comma before a closing
	// bracket or brace.
	AllowTrailingComma
	// AllowSurrogates permits lone UTF-16 surrogates in string literals
	// (writer side only; the scanner always accepts them since Go
	// strings may already contain an invalid surrogate triple from
	// charset.AutoDecode).
	AllowSurrogates

	// NOTHING is strict JSON: no permissions granted.
	NOTHING Allow = 0
)

// Has reports whether a grants every permission set in want.
func (a Allow) Has(want Allow) bool { return a&want == want }
