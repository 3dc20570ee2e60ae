package signature

import (
	"bytes"
	"errors"
	"io/fs"
	"path"
	"strings"
	"testing"

	td "github.com/go-text/typesetting-utils/opentype"
	"github.com/npillmayer/fontsig/internal/sfnttest"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/suite"
)

// --- Test Suite Preparation ------------------------------------------------

type SignatureTestEnviron struct {
	suite.Suite
	body []byte // minimal valid directory without magic
}

// listen for 'go test' command --> run test methods
func TestSignatureFunctions(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "fontsig.signature")
	defer teardown()
	suite.Run(t, new(SignatureTestEnviron))
}

// run once, before test suite methods
func (env *SignatureTestEnviron) SetupSuite() {
	env.T().Log("Setting up test suite")
	tracing.Select("fontsig.signature").SetTraceLevel(tracing.LevelDebug)
	env.body = sfnttest.Build(nil, sfnttest.MinimalEntries()...)[4:]
}

// font assembles magic + directory body, padded to the font's size.
func (env *SignatureTestEnviron) font(magic []byte) []byte {
	b := append(append([]byte{}, magic...), env.body...)
	return sfnttest.Pad(b, 44)
}

// --- Tests -----------------------------------------------------------------

func (env *SignatureTestEnviron) TestConfidenceOrder() {
	env.True(Low < Medium && Medium < High, "expected LOW < MEDIUM < HIGH")
	env.Equal("LOW", Low.String())
	env.Equal("MEDIUM", Medium.String())
	env.Equal("HIGH", High.String())
	env.Equal("UNKNOWN", Confidence(7).String())
	env.Equal(High, raise(Medium, High))
	env.Equal(High, raise(High, Low), "expected confidence never to be downgraded")
}

func (env *SignatureTestEnviron) TestMagics() {
	env.Equal([][]byte{{0, 1, 0, 0}, []byte("true")}, TrueType{}.Magics())
	env.Equal([][]byte{[]byte("OTTO")}, OpenType{}.Magics())
	env.Equal(Low, TrueType{}.Initial())
	env.Equal(Medium, OpenType{}.Initial())
	env.Len(Providers(), 2)
}

func (env *SignatureTestEnviron) TestOpenTypeValid() {
	r, err := OpenType{}.Validate(env.font(sfnttest.MagicOTTO), 0)
	env.Require().NoError(err)
	env.Equal(High, r.Confidence)
	env.Equal(uint64(44), r.Size)
	env.Equal(0, r.Offset)
	env.Equal("OpenType font", r.Description)
}

func (env *SignatureTestEnviron) TestTrueTypeValid() {
	for _, magic := range [][]byte{sfnttest.MagicTrueType, sfnttest.MagicApple} {
		r, err := TrueType{}.Validate(env.font(magic), 0)
		env.Require().NoError(err)
		env.Equal(High, r.Confidence)
		env.Equal(uint64(44), r.Size)
		env.Equal("TrueType font", r.Description)
	}
}

func (env *SignatureTestEnviron) TestEmbeddedAtOffset() {
	prefix := bytes.Repeat([]byte{0xaa}, 100)
	buf := append(prefix, env.font(sfnttest.MagicOTTO)...)
	buf = append(buf, bytes.Repeat([]byte{0x55}, 20)...)
	r, err := OpenType{}.Validate(buf, 100)
	env.Require().NoError(err)
	env.Equal(100, r.Offset)
	env.Equal(uint64(44), r.Size, "size is relative to the font start")
}

func (env *SignatureTestEnviron) TestTruncatedRejected() {
	buf := append([]byte("OTTO"), 0x00, 0x03, 0x00)
	for _, p := range Providers() {
		_, err := p.Validate(buf, 0)
		env.True(errors.Is(err, ErrRejected), "expected %s to reject truncated buffer, have %v", p.Name(), err)
	}
}

func (env *SignatureTestEnviron) TestHeadOnlyRejected() {
	buf := sfnttest.Build(sfnttest.MagicOTTO, sfnttest.MinimalEntries()[0])
	for _, p := range Providers() {
		_, err := p.Validate(buf, 0)
		env.True(errors.Is(err, ErrRejected), "expected %s to reject 'head'-only directory, have %v", p.Name(), err)
	}
}

func (env *SignatureTestEnviron) TestTooManyTablesRejected() {
	buf := sfnttest.BuildCount(sfnttest.MagicTrueType, 33, sfnttest.MinimalEntries()...)
	buf = sfnttest.Pad(buf, 12+33*16)
	_, err := TrueType{}.Validate(buf, 0)
	env.True(errors.Is(err, ErrRejected), "expected rejection of 33 tables, have %v", err)
}

func (env *SignatureTestEnviron) TestOffsetOutOfRange() {
	buf := env.font(sfnttest.MagicOTTO)
	for _, off := range []int{-1, len(buf) + 1, 1 << 30} {
		r, err := OpenType{}.Validate(buf, off)
		env.True(errors.Is(err, ErrRejected), "expected rejection of offset %d, have %v", off, err)
		env.Equal(Result{}, r, "expected no result on rejection")
	}
	_, err := OpenType{}.Validate(buf, len(buf))
	env.True(errors.Is(err, ErrRejected), "expected rejection of offset at buffer end")
}

func (env *SignatureTestEnviron) TestRealFonts() {
	checked := 0
	err := fs.WalkDir(td.Files, ".", func(p string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() || checked >= 5 {
			return err
		}
		ext := strings.ToLower(path.Ext(p))
		if ext != ".ttf" && ext != ".otf" {
			return nil
		}
		data, err := td.Files.ReadFile(p)
		if err != nil || len(data) < 4 {
			return err
		}
		var prov Provider
		switch {
		case bytes.Equal(data[:4], sfnttest.MagicOTTO):
			prov = OpenType{}
		case bytes.Equal(data[:4], sfnttest.MagicTrueType), bytes.Equal(data[:4], sfnttest.MagicApple):
			prov = TrueType{}
		default:
			return nil
		}
		r, verr := prov.Validate(data, 0)
		if verr != nil { // fonts without hhea (e.g. bitmap-only test fonts) are rejected
			env.T().Logf("%s: %v", p, verr)
			return nil
		}
		env.Equal(High, r.Confidence, p)
		env.Equal(uint64(len(data)), r.Size, "%s: size must match the font file", p)
		env.T().Logf("%s: %s (file has %d bytes)", p, r, len(data))
		checked++
		return nil
	})
	env.Require().NoError(err)
	if checked == 0 {
		env.T().Skip("no suitable test fonts found")
	}
}
