// Package fontload loads scan targets and cross-checks validated font
// candidates with independent sfnt parsers.
package fontload

import (
	"bytes"
	"fmt"
	"os"

	"github.com/go-text/typesetting/font/opentype"
	"github.com/npillmayer/fontsig/signature"
	"github.com/npillmayer/schuko/tracing"
	"golang.org/x/image/font/sfnt"
)

// tracer writes to trace with key 'fontsig.load'
func tracer() tracing.Trace {
	return tracing.Select("fontsig.load")
}

// ReadTarget reads a file to be scanned into memory.
func ReadTarget(path string) ([]byte, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	tracer().Debugf("loaded %s (%d bytes)", path, len(b))
	return b, nil
}

// Carve returns the bytes of buf described by a signature result. If the
// result claims more bytes than buf holds, the returned slice is cut at the
// end of buf and complete is false.
func Carve(buf []byte, r signature.Result) (data []byte, complete bool) {
	if r.Offset < 0 || r.Offset > len(buf) {
		return nil, false
	}
	end := uint64(r.Offset) + r.Size
	if end > uint64(len(buf)) {
		return buf[r.Offset:], false
	}
	return buf[r.Offset:end], true
}

// Report is the outcome of cross-checking a carved font.
type Report struct {
	Fontname  string   // full font name from table 'name', if x/image could parse the font
	NumGlyphs int      // glyph count as seen by x/image
	Tables    []string // table tags as seen by go-text/typesetting
	SFNTErr   error    // x/image parse error, if any
	LoaderErr error    // go-text parse error, if any
}

// OK reports whether both parsers accepted the font.
func (r Report) OK() bool {
	return r.SFNTErr == nil && r.LoaderErr == nil
}

// CrossCheck parses a carved font with golang.org/x/image/font/sfnt and
// with the go-text/typesetting font loader. It fails only if neither parser
// accepts the data.
func CrossCheck(data []byte) (Report, error) {
	var rep Report
	if f, err := sfnt.Parse(data); err != nil {
		rep.SFNTErr = err
	} else {
		rep.NumGlyphs = f.NumGlyphs()
		if name, err := f.Name(nil, sfnt.NameIDFull); err == nil {
			rep.Fontname = name
		}
	}
	if ld, err := opentype.NewLoader(bytes.NewReader(data)); err != nil {
		rep.LoaderErr = err
	} else {
		for _, tag := range ld.Tables() {
			rep.Tables = append(rep.Tables, tag.String())
		}
	}
	if rep.SFNTErr != nil && rep.LoaderErr != nil {
		return rep, fmt.Errorf("font rejected by cross-check: %v; %v", rep.SFNTErr, rep.LoaderErr)
	}
	tracer().Debugf("cross-check: name=%q glyphs=%d tables=%v", rep.Fontname, rep.NumGlyphs, rep.Tables)
	return rep, nil
}
