package rton

import "errors"

var (
	// ErrBadMagic indicates the input did not start with the RTON magic
	// header "RTON\x01\x00\x00\x00".
	ErrBadMagic = errors.New("rton: missing or invalid magic header")

	// ErrUnknownTag indicates a type byte with no known decoding, the Go
	// equivalent of the original parser's KeyError on an unmapped tag.
	ErrUnknownTag = errors.New("rton: unknown value tag")

	// ErrIndexOutOfRange indicates a cached-string back-reference (tag
	// 0x91/0x93) pointed past the end of its per-invocation pool.
	ErrIndexOutOfRange = errors.New("rton: cached string index out of range")

	// ErrBadListFraming indicates a list (tag 0x86) was not immediately
	// followed by the 0xFD frame byte.
	ErrBadListFraming = errors.New("rton: list missing 0xfd frame byte")

	// ErrBadRTIDSubtag indicates an RTID reference (tag 0x83) carried a
	// sub-tag byte other than 0x00, 0x02, or 0x03.
	ErrBadRTIDSubtag = errors.New("rton: unrecognized RTID sub-tag")
)
