/*
Package sfntdir validates sfnt table directories, the index at the start of
every TrueType and OpenType font.

A table directory starts with a 12-byte header,

	+----------------+-----------+-------------+---------------+------------+
	| sfntVersion 32 | numTables | searchRange | entrySelector | rangeShift |
	+----------------+-----------+-------------+---------------+------------+

followed by numTables records of 16 bytes each,

	+--------+-------------+-----------+-----------+
	| tag 32 | checksum 32 | offset 32 | length 32 |
	+--------+-------------+-----------+-----------+

all integers big-endian. ParseDirectory decodes both with package binfield
and rejects anything that does not look like a genuine font: too many tables,
records running past the end of the data, or missing one of the tables every
font needs ('head', 'hhea', 'maxp'). EstimateSize derives the byte length of
the font from the table records.

Functions of this package do not perform I/O and are safe for concurrent use.

# License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © Norbert Pillmayer <norbert@pillmayer.com>
*/
package sfntdir

import (
	"encoding/binary"

	"github.com/npillmayer/fontsig/binfield"
	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'fontsig.sfnt'
func tracer() tracing.Trace {
	return tracing.Select("fontsig.sfnt")
}

// MaxTables is the maximum number of table records we accept. Real fonts
// rarely carry more than 25 tables; larger counts are treated as corrupt.
const MaxTables = 32

// RequiredTags lists the tables every candidate must contain.
var RequiredTags = []Tag{T("head"), T("hhea"), T("maxp")}

var headerLayout = binfield.MustLayout(
	binfield.Field{Name: "magic", Width: binfield.U32},
	binfield.Field{Name: "num_tables", Width: binfield.U16},
	binfield.Field{Name: "search_range", Width: binfield.U16},
	binfield.Field{Name: "entry_selector", Width: binfield.U16},
	binfield.Field{Name: "range_shift", Width: binfield.U16},
)

var tableLayout = binfield.MustLayout(
	binfield.Field{Name: "tag", Width: binfield.U32},
	binfield.Field{Name: "checksum", Width: binfield.U32},
	binfield.Field{Name: "offset", Width: binfield.U32},
	binfield.Field{Name: "length", Width: binfield.U32},
)

// HeaderSize is the byte size of the directory header.
var HeaderSize = binfield.Size(headerLayout)

// EntrySize is the byte size of one table record.
var EntrySize = binfield.Size(tableLayout)

// HeaderLayout returns the field layout of the directory header.
// The returned layout must not be modified.
func HeaderLayout() binfield.Layout {
	return headerLayout
}

// TableEntry is a table record of a table directory.
type TableEntry struct {
	Tag      Tag
	Checksum uint32
	Offset   uint32 // relative to the start of the font
	Length   uint32
}

// End returns the offset of the first byte after the table. The sum is
// computed in 64 bits and cannot overflow.
func (e TableEntry) End() uint64 {
	return uint64(e.Offset) + uint64(e.Length)
}

// Directory is a validated table directory. Tables are kept in the order
// they appear in the data.
type Directory struct {
	Magic         Tag
	NumTables     uint16
	SearchRange   uint16
	EntrySelector uint16
	RangeShift    uint16
	Tables        []TableEntry
}

// Lookup returns the table record for a tag.
func (d *Directory) Lookup(tag Tag) (TableEntry, bool) {
	for _, e := range d.Tables {
		if e.Tag == tag {
			return e, true
		}
	}
	return TableEntry{}, false
}

// Tags returns the tags of all tables, in directory order.
func (d *Directory) Tags() []Tag {
	tags := make([]Tag, len(d.Tables))
	for i, e := range d.Tables {
		tags[i] = e.Tag
	}
	return tags
}

// Size returns the byte size of the font described by d; see EstimateSize.
func (d *Directory) Size() (uint64, bool) {
	return EstimateSize(d.Tables)
}

// ParseDirectory decodes and validates the table directory at the start of
// data. data is expected to start at the font's first byte; bytes after the
// directory are not inspected.
//
// All errors returned match ErrStructure.
func ParseDirectory(data []byte) (*Directory, error) {
	h, err := binfield.Decode(data, headerLayout, binary.BigEndian)
	if err != nil {
		return nil, reject("Header", 0, err, "table directory header truncated")
	}
	count := int(h["num_tables"])
	if count > MaxTables {
		return nil, reject("Header", 4, nil, "table count %d exceeds maximum of %d", count, MaxTables)
	}
	dir := &Directory{
		Magic:         TagFromUint32(uint32(h["magic"])),
		NumTables:     uint16(h["num_tables"]),
		SearchRange:   uint16(h["search_range"]),
		EntrySelector: uint16(h["entry_selector"]),
		RangeShift:    uint16(h["range_shift"]),
		Tables:        make([]TableEntry, 0, count),
	}
	for i := 0; i < count; i++ {
		pos := HeaderSize + i*EntrySize
		if pos+EntrySize > len(data) {
			return nil, reject("TableRecords", pos, nil, "table record %d of %d truncated", i, count)
		}
		rec, err := binfield.Decode(data[pos:pos+EntrySize], tableLayout, binary.BigEndian)
		if err != nil {
			return nil, reject("TableRecords", pos, err, "table record %d undecodable", i)
		}
		dir.Tables = append(dir.Tables, TableEntry{
			Tag:      TagFromUint32(uint32(rec["tag"])),
			Checksum: uint32(rec["checksum"]),
			Offset:   uint32(rec["offset"]),
			Length:   uint32(rec["length"]),
		})
	}
	for _, req := range RequiredTags {
		if _, ok := dir.Lookup(req); !ok {
			return nil, reject("TableRecords", HeaderSize, nil, "required table '%s' missing", req)
		}
	}
	tracer().Debugf("directory %s with %d tables", dir.Magic, len(dir.Tables))
	return dir, nil
}

// EstimateSize returns the byte size of a font from its table records: the
// largest end offset of any table. Tables are not required to be ordered or
// contiguous, so neither the last record nor the sum of lengths will do.
// If tables is empty, the size is unknown and EstimateSize returns false.
func EstimateSize(tables []TableEntry) (uint64, bool) {
	if len(tables) == 0 {
		return 0, false
	}
	var size uint64
	for _, e := range tables {
		if end := e.End(); end > size {
			size = end
		}
	}
	return size, true
}
