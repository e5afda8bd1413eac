package bstream

import (
	"bufio"
	"io"
)

// Sink is a sticky-error buffered text writer wrapping an arbitrary
// io.Writer. It is the jsonyx Encoder's output side, adapted from
// oy3o-codec's Writer (writer.go): same sticky-first-error discipline, but
// specialized to UTF-8 text emission (WriteString/WriteByte/WriteRune)
// rather than binary scalar encoding, since JSON output never needs
// fixed-width integer writes.
type Sink struct {
	w   *bufio.Writer
	err error
	n   int64
}

// NewSink wraps w for buffered writing.
func NewSink(w io.Writer) *Sink {
	return &Sink{w: bufio.NewWriter(w)}
}

// Err returns the first error encountered by this Sink, if any.
func (s *Sink) Err() error { return s.err }

// Written returns the number of bytes successfully queued so far.
func (s *Sink) Written() int64 { return s.n }

func (s *Sink) setError(err error) {
	if s.err == nil && err != nil {
		s.err = err
	}
}

// WriteString appends str. Subsequent writes are no-ops once an error is latched.
func (s *Sink) WriteString(str string) {
	if s.err != nil {
		return
	}
	n, err := s.w.WriteString(str)
	s.n += int64(n)
	s.setError(err)
}

// WriteByte appends a single byte.
func (s *Sink) WriteByte(b byte) {
	if s.err != nil {
		return
	}
	if err := s.w.WriteByte(b); err != nil {
		s.setError(err)
		return
	}
	s.n++
}

// WriteRune appends r encoded as UTF-8.
func (s *Sink) WriteRune(r rune) {
	if s.err != nil {
		return
	}
	n, err := s.w.WriteRune(r)
	s.n += int64(n)
	s.setError(err)
}

// Flush flushes any buffered data to the underlying io.Writer.
func (s *Sink) Flush() error {
	if s.err != nil {
		return s.err
	}
	if err := s.w.Flush(); err != nil {
		s.setError(err)
		return err
	}
	return nil
}
