package bstream

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

type SourceTestSuite struct {
	suite.Suite
}

func (s *SourceTestSuite) TestFixedWidthReads() {
	data := []byte{
		0xAA,       // uint8
		0xCC, 0xBB, // uint16 LE
		0x00, 0xFF, 0xEE, 0xDD, // uint32 LE
		0x08, 0x07, 0x06, 0x05, 0x04, 0x03, 0x02, 0x01, // uint64 LE
	}
	src := NewSource(data, "test")

	s.Assert().EqualValues(0xAA, src.ReadUint8())
	s.Assert().EqualValues(0xBBCC, src.ReadUint16())
	s.Assert().EqualValues(0xDDEEFF00, src.ReadUint32())
	s.Assert().EqualValues(0x0102030405060708, src.ReadUint64())
	s.Require().NoError(src.Err())
	s.Assert().True(src.AtEnd())
}

func (s *SourceTestSuite) TestReadPastEndLatchesError() {
	src := NewSource([]byte{0x01, 0x02, 0x03}, "short")
	_ = src.ReadUint32()
	require.Error(s.T(), src.Err())
	assert.ErrorIs(s.T(), src.Err(), ErrUnexpectedEOF)
}

func (s *SourceTestSuite) TestReadAfterErrorIsNoOp() {
	src := NewSource([]byte{0x01, 0x02, 0x03}, "short")
	_ = src.ReadUint32()
	firstErr := src.Err()
	require.Error(s.T(), firstErr)

	v := src.ReadUint8()
	s.Assert().Equal(firstErr, src.Err())
	s.Assert().EqualValues(0, v)
}

func (s *SourceTestSuite) TestVarintSingleByte() {
	src := NewSource([]byte{0x05}, "varint")
	s.Assert().EqualValues(5, src.ReadVarint())
	s.Require().NoError(src.Err())
}

func (s *SourceTestSuite) TestVarintMultiByte() {
	// 300 = 0b1_0010_1100 -> low 7 bits 0101100 with continuation, then 0b10
	src := NewSource([]byte{0xAC, 0x02}, "varint")
	s.Assert().EqualValues(300, src.ReadVarint())
	s.Require().NoError(src.Err())
}

func (s *SourceTestSuite) TestPeekDoesNotAdvance() {
	src := NewSource([]byte{0x01, 0x02, 0x03}, "peek")
	b, ok := src.Peek(2)
	s.Require().True(ok)
	s.Assert().Equal([]byte{0x01, 0x02}, b)
	s.Assert().Equal(0, src.Tell())
}

func (s *SourceTestSuite) TestSeekRelative() {
	src := NewSource([]byte{0x01, 0x02, 0x03, 0x04}, "seek")
	s.Require().NoError(src.SeekRelative(2))
	s.Assert().EqualValues(0x03, src.ReadUint8())

	s.Require().NoError(src.SeekRelative(-2))
	s.Assert().EqualValues(0x02, src.ReadUint8())

	err := src.SeekRelative(100)
	s.Assert().ErrorIs(err, ErrInvalidSeek)
}

func TestSource(t *testing.T) {
	suite.Run(t, new(SourceTestSuite))
}
