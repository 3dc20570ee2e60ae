package sfntdir

import (
	"encoding/binary"
	"fmt"
)

// Tag is the 4-byte name of an sfnt table, e.g. 'head' or 'OS/2'.
// It is a four-character code, not an arithmetic quantity; we keep the
// raw bytes in file order.
type Tag [4]byte

// T returns a Tag from a (4-letter) string.
// If t is shorter or longer, it will be silently padded with spaces or cut.
func T(t string) Tag {
	var tag Tag
	copy(tag[:], (t + "    ")[:4])
	return tag
}

// TagFromUint32 renders a 32-bit value into its 4 big-endian bytes.
func TagFromUint32(n uint32) Tag {
	var tag Tag
	binary.BigEndian.PutUint32(tag[:], n)
	return tag
}

// Uint32 returns the tag as a big-endian 32-bit number.
func (t Tag) Uint32() uint32 {
	return binary.BigEndian.Uint32(t[:])
}

// String returns the tag as a 4-letter string if all bytes are printable
// ASCII, and as a hex literal otherwise (e.g. the TrueType magic 0x00010000).
func (t Tag) String() string {
	for _, b := range t {
		if b < 0x20 || b > 0x7e {
			return fmt.Sprintf("0x%08x", t.Uint32())
		}
	}
	return string(t[:])
}
