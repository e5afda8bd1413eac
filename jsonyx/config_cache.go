package jsonyx

import "github.com/puzpuzpuz/xsync/v4"

// scannerConfig is the derived, immutable configuration a scanner needs for
// a given Allow bitmask. Deriving it is cheap, but every Decoder.Load(s)
// call would otherwise redo the same bit tests; caching it keyed by the
// 256 possible Allow values follows the shape of oy3o-codec's fixed.go,
// which memoizes a derived-from-a-key artifact (there, a reflect.Type's
// encoded size) in an xsync.Map rather than recomputing it per call.
type scannerConfig struct {
	comments       bool
	duplicateKeys  bool
	missingCommas  bool
	nanAndInfinity bool
	trailingComma  bool
}

var configCache = xsync.NewMap[Allow, *scannerConfig]()

func configFor(allow Allow) *scannerConfig {
	if cfg, ok := configCache.Load(allow); ok {
		return cfg
	}
	cfg := &scannerConfig{
		comments:       allow.Has(AllowComments),
		duplicateKeys:  allow.Has(AllowDuplicateKeys),
		missingCommas:  allow.Has(AllowMissingCommas),
		nanAndInfinity: allow.Has(AllowNaNAndInfinity),
		trailingComma:  allow.Has(AllowTrailingComma),
	}
	cfg, _ = configCache.LoadOrStore(allow, cfg)
	return cfg
}
