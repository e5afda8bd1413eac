package rton

// tag identifies the wire representation of a single RTON value. The
// numbering follows original_source/RTONConverter/rtons_to_jsons.py's
// mappings table, which is the newer and more complete of the two Python
// parsers in the reference material.
type tag byte

const (
	tagFalse tag = 0x00
	tagTrue  tag = 0x01

	tagInt8     tag = 0x08
	tagInt8Zero tag = 0x09
	tagUint8    tag = 0x0a
	tagUint8Zero tag = 0x0b

	tagInt16     tag = 0x10
	tagInt16Zero tag = 0x11
	tagUint16    tag = 0x12
	tagUint16Zero tag = 0x13

	tagInt32             tag = 0x20
	tagInt32Zero         tag = 0x21
	tagFloat32           tag = 0x22
	tagFloat32Zero       tag = 0x23
	tagInt32VarintPos    tag = 0x24
	tagInt32VarintNeg    tag = 0x25
	tagUint32            tag = 0x26
	tagUint32Zero        tag = 0x27
	tagUint32VarintPos   tag = 0x28
	tagUint32VarintNeg   tag = 0x29

	tagInt64           tag = 0x40
	tagInt64Zero       tag = 0x41
	tagFloat64         tag = 0x42
	tagFloat64Zero     tag = 0x43
	tagInt64VarintPos  tag = 0x44
	tagInt64VarintNeg  tag = 0x45
	tagUint64          tag = 0x46
	tagUint64Zero      tag = 0x47
	tagUint64VarintPos tag = 0x48
	tagUint64VarintNeg tag = 0x49

	tagLatinUncached tag = 0x81
	tagUTF8Uncached  tag = 0x82
	tagRTID          tag = 0x83
	tagRTIDEmpty     tag = 0x84

	tagLatinCacheStore tag = 0x90
	tagLatinCacheRef   tag = 0x91
	tagUTF8CacheStore  tag = 0x92
	tagUTF8CacheRef    tag = 0x93

	tagMap  tag = 0x85
	tagList tag = 0x86

	tagListFrame tag = 0xfd

	tagEnd0 tag = 0xfe
	tagEnd1 tag = 0xff
)

// magic is the 8-byte header every RTON container begins with.
var magic = [8]byte{'R', 'T', 'O', 'N', 0x01, 0x00, 0x00, 0x00}
