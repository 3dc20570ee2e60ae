// Package sfnttest builds synthetic sfnt table directories for tests.
package sfnttest

import "encoding/binary"

// Magic numbers of the sfnt flavours.
var (
	MagicTrueType = []byte{0x00, 0x01, 0x00, 0x00}
	MagicApple    = []byte("true")
	MagicOTTO     = []byte("OTTO")
)

// Entry is a table record to be written by Build.
type Entry struct {
	Tag      string
	Checksum uint32
	Offset   uint32
	Length   uint32
}

// MinimalEntries is the smallest directory that passes validation:
// 'head' at 20 (10 bytes), 'hhea' at 30 (10 bytes), 'maxp' at 40 (4 bytes),
// giving a font size of 44.
func MinimalEntries() []Entry {
	return []Entry{
		{Tag: "head", Offset: 20, Length: 10},
		{Tag: "hhea", Offset: 30, Length: 10},
		{Tag: "maxp", Offset: 40, Length: 4},
	}
}

// Build writes a 12-byte directory header with the given magic and one
// 16-byte record per entry. The table count is len(entries).
func Build(magic []byte, entries ...Entry) []byte {
	return BuildCount(magic, uint16(len(entries)), entries...)
}

// BuildCount is like Build but writes an arbitrary table count.
func BuildCount(magic []byte, count uint16, entries ...Entry) []byte {
	b := make([]byte, 12+16*len(entries))
	copy(b[0:4], magic)
	PutU16(b, 4, count)
	PutU16(b, 6, 16)
	PutU16(b, 8, 0)
	PutU16(b, 10, 0)
	for i, e := range entries {
		pos := 12 + 16*i
		copy(b[pos:pos+4], (e.Tag + "    ")[:4])
		PutU32(b, pos+4, e.Checksum)
		PutU32(b, pos+8, e.Offset)
		PutU32(b, pos+12, e.Length)
	}
	return b
}

// Pad extends b with zero bytes up to length n.
func Pad(b []byte, n int) []byte {
	if len(b) >= n {
		return b
	}
	return append(b, make([]byte, n-len(b))...)
}

// PutU16 writes a big-endian uint16 at position i.
func PutU16(b []byte, i int, v uint16) {
	binary.BigEndian.PutUint16(b[i:], v)
}

// PutU32 writes a big-endian uint32 at position i.
func PutU32(b []byte, i int, v uint32) {
	binary.BigEndian.PutUint32(b[i:], v)
}
