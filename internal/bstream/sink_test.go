package bstream

import (
	"bytes"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSinkWriteString(t *testing.T) {
	var buf bytes.Buffer
	sink := NewSink(&buf)
	sink.WriteString("hello ")
	sink.WriteString("world")
	require.NoError(t, sink.Flush())
	assert.Equal(t, "hello world", buf.String())
	assert.EqualValues(t, 11, sink.Written())
}

func TestSinkWriteByteAndRune(t *testing.T) {
	var buf bytes.Buffer
	sink := NewSink(&buf)
	sink.WriteByte('[')
	sink.WriteRune('世')
	sink.WriteByte(']')
	require.NoError(t, sink.Flush())
	assert.Equal(t, "[世]", buf.String())
}

type errWriter struct{}

func (errWriter) Write([]byte) (int, error) { return 0, io.ErrClosedPipe }

func TestSinkWriteAfterErrorIsNoOp(t *testing.T) {
	sink := NewSink(errWriter{})
	sink.WriteString("x")
	err := sink.Flush()
	require.Error(t, err)
	assert.ErrorIs(t, err, io.ErrClosedPipe)

	sink.WriteString("more")
	assert.Equal(t, err, sink.Err())
}
