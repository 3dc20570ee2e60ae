/*
Package sfntinfo decodes a few core tables of a validated sfnt candidate.

Signature validation only looks at the table directory. For diagnostics it is
often useful to peek into the tables every font must have: 'head' (units per
em, the head magic number, bounding box), 'hhea' (vertical metrics) and
'maxp' (number of glyphs). Tables are decoded with the declarative layouts of
package binfield.

# License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © Norbert Pillmayer <norbert@pillmayer.com>
*/
package sfntinfo

import (
	"encoding/binary"

	"github.com/npillmayer/fontsig/binfield"
	"github.com/npillmayer/fontsig/sfntdir"
	"github.com/npillmayer/schuko/tracing"
	"golang.org/x/image/font/sfnt"
)

// tracer writes to trace with key 'fontsig.info'
func tracer() tracing.Trace {
	return tracing.Select("fontsig.info")
}

// HeadMagic is the value of field magicNumber of every valid 'head' table.
const HeadMagic = 0x5F0F3CF5

// Info collects the decoded core tables of a font.
type Info struct {
	Head HeadTableInfo
	HHea HHeaTableInfo
	MaxP MaxPTableInfo
}

// Inspect decodes tables 'head', 'hhea' and 'maxp' of the font starting at
// buf[offset:], using the table records of dir. It returns an error matching
// sfntdir.ErrStructure if a table is missing, runs past the end of buf, or is
// too short.
func Inspect(buf []byte, offset int, dir *sfntdir.Directory) (Info, error) {
	var info Info
	if dir == nil {
		return info, &sfntdir.StructureError{Section: "Inspect", Issue: "no table directory", Offset: -1}
	}
	b, err := TableData(buf, offset, dir, sfntdir.T("head"))
	if err != nil {
		return info, err
	}
	if info.Head, err = DecodeHead(b); err != nil {
		return info, err
	}
	if b, err = TableData(buf, offset, dir, sfntdir.T("hhea")); err != nil {
		return info, err
	}
	if info.HHea, err = DecodeHHea(b); err != nil {
		return info, err
	}
	if b, err = TableData(buf, offset, dir, sfntdir.T("maxp")); err != nil {
		return info, err
	}
	if info.MaxP, err = DecodeMaxP(b); err != nil {
		return info, err
	}
	tracer().Debugf("font at %d: %d units/em, %d glyphs", offset, info.Head.UnitsPerEm, info.MaxP.NumGlyphs)
	return info, nil
}

// TableData returns the bytes of a table of the font starting at
// buf[offset:]. Table offsets are relative to the font start.
func TableData(buf []byte, offset int, dir *sfntdir.Directory, tag sfntdir.Tag) ([]byte, error) {
	e, ok := dir.Lookup(tag)
	if !ok {
		return nil, &sfntdir.StructureError{Section: tag.String(), Issue: "table not present", Offset: -1}
	}
	if offset < 0 {
		return nil, &sfntdir.StructureError{Section: tag.String(), Issue: "negative font offset", Offset: offset}
	}
	start := uint64(offset) + uint64(e.Offset)
	end := start + uint64(e.Length)
	if end > uint64(len(buf)) {
		return nil, &sfntdir.StructureError{
			Section: tag.String(),
			Issue:   "table extends past end of data",
			Offset:  int(e.Offset),
		}
	}
	return buf[start:end], nil
}

func decode(tag string, b []byte, layout binfield.Layout) (binfield.Values, error) {
	v, err := binfield.Decode(b, layout, binary.BigEndian)
	if err != nil {
		return nil, &sfntdir.StructureError{Section: tag, Issue: "table too short", Offset: -1, Err: err}
	}
	return v, nil
}

// --- head ------------------------------------------------------------------

// HeadTableInfo is a typed view over table 'head'.
type HeadTableInfo struct {
	MajorVersion       uint16
	MinorVersion       uint16
	FontRevision       uint32
	CheckSumAdjustment uint32
	MagicNumber        uint32
	Flags              uint16
	UnitsPerEm         uint16
	Created            int64 // seconds since 1904-01-01
	Modified           int64
	XMin, YMin         sfnt.Units
	XMax, YMax         sfnt.Units
	MacStyle           uint16
	LowestRecPPEM      uint16
	FontDirectionHint  int16
	IndexToLocFormat   int16
	GlyphDataFormat    int16
}

var headLayout = binfield.MustLayout(
	binfield.Field{Name: "majorVersion", Width: binfield.U16},
	binfield.Field{Name: "minorVersion", Width: binfield.U16},
	binfield.Field{Name: "fontRevision", Width: binfield.U32},
	binfield.Field{Name: "checkSumAdjustment", Width: binfield.U32},
	binfield.Field{Name: "magicNumber", Width: binfield.U32},
	binfield.Field{Name: "flags", Width: binfield.U16},
	binfield.Field{Name: "unitsPerEm", Width: binfield.U16},
	binfield.Field{Name: "created", Width: binfield.U64},
	binfield.Field{Name: "modified", Width: binfield.U64},
	binfield.Field{Name: "xMin", Width: binfield.U16},
	binfield.Field{Name: "yMin", Width: binfield.U16},
	binfield.Field{Name: "xMax", Width: binfield.U16},
	binfield.Field{Name: "yMax", Width: binfield.U16},
	binfield.Field{Name: "macStyle", Width: binfield.U16},
	binfield.Field{Name: "lowestRecPPEM", Width: binfield.U16},
	binfield.Field{Name: "fontDirectionHint", Width: binfield.U16},
	binfield.Field{Name: "indexToLocFormat", Width: binfield.U16},
	binfield.Field{Name: "glyphDataFormat", Width: binfield.U16},
)

// DecodeHead decodes the bytes of table 'head'.
func DecodeHead(b []byte) (HeadTableInfo, error) {
	var info HeadTableInfo
	v, err := decode("head", b, headLayout)
	if err != nil {
		return info, err
	}
	info.MajorVersion = uint16(v["majorVersion"])
	info.MinorVersion = uint16(v["minorVersion"])
	info.FontRevision = uint32(v["fontRevision"])
	info.CheckSumAdjustment = uint32(v["checkSumAdjustment"])
	info.MagicNumber = uint32(v["magicNumber"])
	info.Flags = uint16(v["flags"])
	info.UnitsPerEm = uint16(v["unitsPerEm"])
	info.Created = int64(v["created"])
	info.Modified = int64(v["modified"])
	info.XMin = units(v["xMin"])
	info.YMin = units(v["yMin"])
	info.XMax = units(v["xMax"])
	info.YMax = units(v["yMax"])
	info.MacStyle = uint16(v["macStyle"])
	info.LowestRecPPEM = uint16(v["lowestRecPPEM"])
	info.FontDirectionHint = int16(uint16(v["fontDirectionHint"]))
	info.IndexToLocFormat = int16(uint16(v["indexToLocFormat"]))
	info.GlyphDataFormat = int16(uint16(v["glyphDataFormat"]))
	return info, nil
}

// MagicOK reports whether the 'head' magic number is present.
func (h HeadTableInfo) MagicOK() bool {
	return h.MagicNumber == HeadMagic
}

// --- hhea ------------------------------------------------------------------

// HHeaTableInfo is a typed view over table 'hhea'.
type HHeaTableInfo struct {
	MajorVersion     uint16
	MinorVersion     uint16
	Ascender         sfnt.Units
	Descender        sfnt.Units
	LineGap          sfnt.Units
	AdvanceWidthMax  sfnt.Units
	MinLeftBearing   sfnt.Units
	MinRightBearing  sfnt.Units
	XMaxExtent       sfnt.Units
	NumberOfHMetrics uint16
}

var hheaLayout = binfield.MustLayout(
	binfield.Field{Name: "majorVersion", Width: binfield.U16},
	binfield.Field{Name: "minorVersion", Width: binfield.U16},
	binfield.Field{Name: "ascender", Width: binfield.U16},
	binfield.Field{Name: "descender", Width: binfield.U16},
	binfield.Field{Name: "lineGap", Width: binfield.U16},
	binfield.Field{Name: "advanceWidthMax", Width: binfield.U16},
	binfield.Field{Name: "minLeftSideBearing", Width: binfield.U16},
	binfield.Field{Name: "minRightSideBearing", Width: binfield.U16},
	binfield.Field{Name: "xMaxExtent", Width: binfield.U16},
	binfield.Field{Name: "caretSlopeRise", Width: binfield.U16},
	binfield.Field{Name: "caretSlopeRun", Width: binfield.U16},
	binfield.Field{Name: "caretOffset", Width: binfield.U16},
	binfield.Field{Name: "reserved", Width: binfield.U64},
	binfield.Field{Name: "metricDataFormat", Width: binfield.U16},
	binfield.Field{Name: "numberOfHMetrics", Width: binfield.U16},
)

// DecodeHHea decodes the bytes of table 'hhea'.
func DecodeHHea(b []byte) (HHeaTableInfo, error) {
	var info HHeaTableInfo
	v, err := decode("hhea", b, hheaLayout)
	if err != nil {
		return info, err
	}
	info.MajorVersion = uint16(v["majorVersion"])
	info.MinorVersion = uint16(v["minorVersion"])
	info.Ascender = units(v["ascender"])
	info.Descender = units(v["descender"])
	info.LineGap = units(v["lineGap"])
	info.AdvanceWidthMax = sfnt.Units(uint16(v["advanceWidthMax"]))
	info.MinLeftBearing = units(v["minLeftSideBearing"])
	info.MinRightBearing = units(v["minRightSideBearing"])
	info.XMaxExtent = units(v["xMaxExtent"])
	info.NumberOfHMetrics = uint16(v["numberOfHMetrics"])
	return info, nil
}

// --- maxp ------------------------------------------------------------------

// MaxPTableInfo is a typed view over table 'maxp'.
// Fonts with CFF outlines carry version 0.5 tables holding the glyph count
// only; the TrueType profile of version 1.0 is decoded if present.
type MaxPTableInfo struct {
	VersionFixed       uint32
	NumGlyphs          uint16
	HasExtendedProfile bool
	MaxPoints          uint16
	MaxContours        uint16
	MaxComponentDepth  uint16
}

var maxpLayout = binfield.MustLayout(
	binfield.Field{Name: "version", Width: binfield.U32},
	binfield.Field{Name: "numGlyphs", Width: binfield.U16},
)

var maxpProfileLayout = binfield.MustLayout(
	binfield.Field{Name: "maxPoints", Width: binfield.U16},
	binfield.Field{Name: "maxContours", Width: binfield.U16},
	binfield.Field{Name: "maxCompositePoints", Width: binfield.U16},
	binfield.Field{Name: "maxCompositeContours", Width: binfield.U16},
	binfield.Field{Name: "maxZones", Width: binfield.U16},
	binfield.Field{Name: "maxTwilightPoints", Width: binfield.U16},
	binfield.Field{Name: "maxStorage", Width: binfield.U16},
	binfield.Field{Name: "maxFunctionDefs", Width: binfield.U16},
	binfield.Field{Name: "maxInstructionDefs", Width: binfield.U16},
	binfield.Field{Name: "maxStackElements", Width: binfield.U16},
	binfield.Field{Name: "maxSizeOfInstructions", Width: binfield.U16},
	binfield.Field{Name: "maxComponentElements", Width: binfield.U16},
	binfield.Field{Name: "maxComponentDepth", Width: binfield.U16},
)

// DecodeMaxP decodes the bytes of table 'maxp'.
func DecodeMaxP(b []byte) (MaxPTableInfo, error) {
	var info MaxPTableInfo
	v, err := decode("maxp", b, maxpLayout)
	if err != nil {
		return info, err
	}
	info.VersionFixed = uint32(v["version"])
	info.NumGlyphs = uint16(v["numGlyphs"])
	if info.VersionFixed != 0x00010000 {
		return info, nil
	}
	p, err := binfield.Decode(b[binfield.Size(maxpLayout):], maxpProfileLayout, binary.BigEndian)
	if err != nil {
		return info, nil // truncated profile; glyph count is still valid
	}
	info.HasExtendedProfile = true
	info.MaxPoints = uint16(p["maxPoints"])
	info.MaxContours = uint16(p["maxContours"])
	info.MaxComponentDepth = uint16(p["maxComponentDepth"])
	return info, nil
}

// units converts a raw 16-bit FWORD to signed font units.
func units(n uint64) sfnt.Units {
	return sfnt.Units(int16(uint16(n)))
}
