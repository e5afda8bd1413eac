// Package bstream provides sticky-error, cursor-based byte readers and
// buffered text writers, used by the rton decoder (Source) and the jsonyx
// encoder (Sink).
package bstream

import "errors"

var (
	// ErrUnexpectedEOF indicates a read was short of the requested length.
	// The accompanying position is the cursor value before the failed read.
	ErrUnexpectedEOF = errors.New("bstream: unexpected end of input")

	// ErrInvalidSeek indicates a seek was attempted to a position outside the buffer.
	ErrInvalidSeek = errors.New("bstream: seek to an invalid position")
)
