// Package diag collects non-fatal warnings produced while decoding RTON or
// JSONYX documents and mirrors them to structured logs.
package diag

import (
	"fmt"

	"github.com/rs/zerolog"
)

// Code identifies the kind of condition a Warning reports.
type Code string

const (
	// CodeTruncated marks data that ended early but was repaired rather
	// than rejected (repair mode only).
	CodeTruncated Code = "truncated"
	// CodeTrailingData marks an RTON list whose declared element count
	// differs from the number of elements actually read.
	CodeTrailingData Code = "trailing_data"
	// CodeLossyNumber marks an RTON UTF-8 string whose declared character
	// count differs from the character count of its decoded bytes.
	CodeLossyNumber Code = "lossy_number"
)

// Warning is a single non-fatal condition encountered during decoding.
type Warning struct {
	Code    Code
	Message string
	Offset  int
}

func (w Warning) String() string {
	return fmt.Sprintf("%s at offset %d: %s", w.Code, w.Offset, w.Message)
}

// Collector accumulates Warnings for a single decode call and mirrors each
// one to an optional zerolog.Logger as it is recorded.
type Collector struct {
	log      zerolog.Logger
	warnings []Warning
}

// NewCollector returns a Collector that mirrors warnings to log. A zero
// zerolog.Logger (zerolog.Nop()) silently discards them.
func NewCollector(log zerolog.Logger) *Collector {
	return &Collector{log: log}
}

// Warn records w and logs it at warn level.
func (c *Collector) Warn(code Code, offset int, format string, args ...any) {
	w := Warning{Code: code, Offset: offset, Message: fmt.Sprintf(format, args...)}
	c.warnings = append(c.warnings, w)
	c.log.Warn().Str("code", string(code)).Int("offset", offset).Msg(w.Message)
}

// Warnings returns every Warning recorded so far, in recording order.
func (c *Collector) Warnings() []Warning {
	return c.warnings
}

// Len reports how many warnings have been recorded.
func (c *Collector) Len() int { return len(c.warnings) }
