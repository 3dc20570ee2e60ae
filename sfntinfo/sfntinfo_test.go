package sfntinfo

import (
	"errors"
	"testing"

	"github.com/npillmayer/fontsig/binfield"
	"github.com/npillmayer/fontsig/internal/sfnttest"
	"github.com/npillmayer/fontsig/sfntdir"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/font/sfnt"
)

// Directory at 0 (12 + 3*16 = 60 bytes), then head at 60 (54 bytes),
// hhea at 116 (36 bytes), maxp at 152 (32 bytes): 184 bytes in total.
func syntheticFont() []byte {
	b := sfnttest.Build(sfnttest.MagicTrueType,
		sfnttest.Entry{Tag: "head", Offset: 60, Length: 54},
		sfnttest.Entry{Tag: "hhea", Offset: 116, Length: 36},
		sfnttest.Entry{Tag: "maxp", Offset: 152, Length: 32},
	)
	b = sfnttest.Pad(b, 184)
	// head
	sfnttest.PutU16(b, 60, 1)
	sfnttest.PutU32(b, 60+12, HeadMagic)
	sfnttest.PutU16(b, 60+18, 2048)
	sfnttest.PutU16(b, 60+36, 0xff38) // xMin = -200
	sfnttest.PutU16(b, 60+40, 1800)   // xMax
	sfnttest.PutU16(b, 60+50, 1)      // indexToLocFormat
	// hhea
	sfnttest.PutU16(b, 116, 1)
	sfnttest.PutU16(b, 116+4, 1900)
	sfnttest.PutU16(b, 116+6, 0xfe0c) // descender = -500
	sfnttest.PutU16(b, 116+34, 42)
	// maxp
	sfnttest.PutU32(b, 152, 0x00010000)
	sfnttest.PutU16(b, 152+4, 300)
	sfnttest.PutU16(b, 152+6, 120)
	sfnttest.PutU16(b, 152+30, 2)
	return b
}

func TestInspect(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "fontsig.info")
	defer teardown()
	//
	font := syntheticFont()
	buf := append(make([]byte, 16), font...)
	dir, err := sfntdir.ParseDirectory(buf[16:])
	require.NoError(t, err)
	info, err := Inspect(buf, 16, dir)
	require.NoError(t, err)

	assert.True(t, info.Head.MagicOK())
	assert.Equal(t, uint16(2048), info.Head.UnitsPerEm)
	assert.Equal(t, sfnt.Units(-200), info.Head.XMin)
	assert.Equal(t, sfnt.Units(1800), info.Head.XMax)
	assert.Equal(t, int16(1), info.Head.IndexToLocFormat)

	assert.Equal(t, sfnt.Units(1900), info.HHea.Ascender)
	assert.Equal(t, sfnt.Units(-500), info.HHea.Descender)
	assert.Equal(t, uint16(42), info.HHea.NumberOfHMetrics)

	assert.Equal(t, uint16(300), info.MaxP.NumGlyphs)
	assert.True(t, info.MaxP.HasExtendedProfile)
	assert.Equal(t, uint16(120), info.MaxP.MaxPoints)
	assert.Equal(t, uint16(2), info.MaxP.MaxComponentDepth)
}

func TestMaxPVersion05(t *testing.T) {
	b := []byte{0x00, 0x00, 0x50, 0x00, 0x01, 0x00}
	info, err := DecodeMaxP(b)
	require.NoError(t, err)
	assert.Equal(t, uint16(256), info.NumGlyphs)
	assert.False(t, info.HasExtendedProfile)
}

func TestTableTooShort(t *testing.T) {
	_, err := DecodeHead(make([]byte, 53))
	assert.True(t, errors.Is(err, sfntdir.ErrStructure))
	assert.True(t, errors.Is(err, binfield.ErrShortData))
	_, err = DecodeHHea(make([]byte, 35))
	assert.True(t, errors.Is(err, sfntdir.ErrStructure))
}

func TestTableOutOfBounds(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "fontsig.info")
	defer teardown()
	//
	font := syntheticFont()
	dir, err := sfntdir.ParseDirectory(font)
	require.NoError(t, err)
	_, err = Inspect(font[:170], 0, dir) // maxp cut off
	assert.True(t, errors.Is(err, sfntdir.ErrStructure))
	_, err = TableData(font, -1, dir, sfntdir.T("head"))
	assert.True(t, errors.Is(err, sfntdir.ErrStructure))
	_, err = TableData(font, 0, dir, sfntdir.T("glyf"))
	assert.True(t, errors.Is(err, sfntdir.ErrStructure))
	_, err = Inspect(font, 0, nil)
	assert.Error(t, err)
}
