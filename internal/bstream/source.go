package bstream

import (
	"encoding/binary"
	"fmt"
	"math"
)

// Source is a random-access, sticky-error cursor over an immutable byte
// buffer. It is the RTON decoder's byte source (component A): the container
// is read whole before parsing (see rton.Decode), so there is no need for
// the teacher's general bufio-backed streaming Reader — only a buffer and a
// cursor, adapted from oy3o-codec's Reader/BytesReader pair in reader.go and
// reader_bytes.go but specialized to in-memory, forward-and-seekable access.
type Source struct {
	buf   []byte
	pos   int
	name  string
	err   error
	order binary.ByteOrder
}

// NewSource wraps buf for reading. Multi-byte scalars always decode
// little-endian, matching RTON's wire format.
func NewSource(buf []byte, name string) *Source {
	return &Source{buf: buf, name: name, order: binary.LittleEndian}
}

// Name returns the diagnostic name supplied to NewSource (e.g. a filename).
func (s *Source) Name() string { return s.name }

// Err returns the first error encountered by this Source, if any.
func (s *Source) Err() error { return s.err }

// Tell returns the current cursor position.
func (s *Source) Tell() int { return s.pos }

// Len returns the total buffer length.
func (s *Source) Len() int { return len(s.buf) }

// setError latches the first non-nil error; later reads are no-ops once set.
func (s *Source) setError(err error) {
	if s.err == nil && err != nil {
		s.err = err
	}
}

// unexpectedEOF builds a position-bearing wrap of ErrUnexpectedEOF.
func (s *Source) unexpectedEOF(want int) error {
	return fmt.Errorf("%w: wanted %d byte(s) at offset %d in %s, have %d",
		ErrUnexpectedEOF, want, s.pos, s.name, len(s.buf)-s.pos)
}

// ReadN reads exactly n bytes and advances the cursor. A short read latches
// ErrUnexpectedEOF and returns nil.
func (s *Source) ReadN(n int) []byte {
	if s.err != nil {
		return nil
	}
	if n < 0 || s.pos+n > len(s.buf) {
		s.setError(s.unexpectedEOF(n))
		return nil
	}
	b := s.buf[s.pos : s.pos+n]
	s.pos += n
	return b
}

// ReadByte reads a single byte. It satisfies io.ByteReader.
func (s *Source) ReadByte() (byte, error) {
	if s.err != nil {
		return 0, s.err
	}
	if s.pos >= len(s.buf) {
		err := s.unexpectedEOF(1)
		s.setError(err)
		return 0, err
	}
	b := s.buf[s.pos]
	s.pos++
	return b, nil
}

// Peek returns the next n bytes without advancing the cursor. It does not
// latch an error on a short peek; callers decide whether that is fatal.
func (s *Source) Peek(n int) ([]byte, bool) {
	if s.err != nil || s.pos+n > len(s.buf) || n < 0 {
		return nil, false
	}
	return s.buf[s.pos : s.pos+n], true
}

// SeekRelative moves the cursor by delta bytes, which may be negative.
func (s *Source) SeekRelative(delta int) error {
	if s.err != nil {
		return s.err
	}
	target := s.pos + delta
	if target < 0 || target > len(s.buf) {
		s.setError(ErrInvalidSeek)
		return s.err
	}
	s.pos = target
	return nil
}

// AtEnd reports whether the cursor has reached the end of the buffer.
func (s *Source) AtEnd() bool { return s.err == nil && s.pos >= len(s.buf) }

// --- Fixed-width primitive reads, little-endian per the RTON wire format ---

func (s *Source) ReadUint8() uint8 {
	b := s.ReadN(1)
	if b == nil {
		return 0
	}
	return b[0]
}

func (s *Source) ReadInt8() int8 { return int8(s.ReadUint8()) }

func (s *Source) ReadUint16() uint16 {
	b := s.ReadN(2)
	if b == nil {
		return 0
	}
	return s.order.Uint16(b)
}

func (s *Source) ReadInt16() int16 { return int16(s.ReadUint16()) }

func (s *Source) ReadUint32() uint32 {
	b := s.ReadN(4)
	if b == nil {
		return 0
	}
	return s.order.Uint32(b)
}

func (s *Source) ReadInt32() int32 { return int32(s.ReadUint32()) }

func (s *Source) ReadUint64() uint64 {
	b := s.ReadN(8)
	if b == nil {
		return 0
	}
	return s.order.Uint64(b)
}

func (s *Source) ReadInt64() int64 { return int64(s.ReadUint64()) }

func (s *Source) ReadFloat32() float32 {
	bits := s.ReadUint32()
	if s.err != nil {
		return 0
	}
	return math.Float32frombits(bits)
}

func (s *Source) ReadFloat64() float64 {
	bits := s.ReadUint64()
	if s.err != nil {
		return 0
	}
	return math.Float64frombits(bits)
}

// ReadVarint reads RTON's little-endian base-128 variable-length unsigned
// integer: accumulate byte&0x7F at shift 7*i, stopping at the first byte
// whose top bit is clear. Readers accept the full 64-bit range.
func (s *Source) ReadVarint() uint64 {
	var result uint64
	for shift := uint(0); shift < 70; shift += 7 {
		b, err := s.ReadByte()
		if err != nil {
			return 0
		}
		result |= uint64(b&0x7F) << shift
		if b&0x80 == 0 {
			return result
		}
	}
	s.setError(fmt.Errorf("%w: varint exceeds 64 bits at offset %d", ErrUnexpectedEOF, s.pos))
	return 0
}
