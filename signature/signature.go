/*
Package signature grades font signature matches found in a scan buffer.

An external scanner locates one of a provider's magic byte sequences in a
buffer and hands the buffer and the match offset to the provider's Validate
method. Validate either confirms the match structurally, returning a Result
with confidence High and the byte size of the embedded font, or rejects it.
There is no partial success: a magic sequence without a valid table
directory behind it is not reported.

Providers hold no state and may be used concurrently.

# License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © Norbert Pillmayer <norbert@pillmayer.com>
*/
package signature

import (
	"fmt"

	"github.com/npillmayer/fontsig/sfntdir"
	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'fontsig.signature'
func tracer() tracing.Trace {
	return tracing.Select("fontsig.signature")
}

// ErrRejected is matched (with errors.Is) by every error returned from
// Validate. Callers should treat it as "try the next candidate".
var ErrRejected = sfntdir.ErrStructure

// Confidence is a coarse ranking of how certain a match is.
type Confidence int

// Confidence grades, in ascending order.
const (
	Low Confidence = iota
	Medium
	High
)

func (c Confidence) String() string {
	switch c {
	case Low:
		return "LOW"
	case Medium:
		return "MEDIUM"
	case High:
		return "HIGH"
	}
	return "UNKNOWN"
}

// Result describes a validated signature match.
type Result struct {
	Offset      int        // start of the embedded font within the scan buffer
	Description string     // human-readable format name
	Confidence  Confidence // how certain the match is
	Size        uint64     // byte size of the embedded font
}

func (r Result) String() string {
	return fmt.Sprintf("%s at %d, size %d, confidence %s", r.Description, r.Offset, r.Size, r.Confidence)
}

// Provider is implemented by every format recognizer.
type Provider interface {
	Name() string                                   // short identifier, e.g. "ttf"
	Description() string                            // human-readable format name
	Magics() [][]byte                               // magic byte sequences claimed by this format
	Initial() Confidence                            // grade of a bare magic match
	Validate(buf []byte, offset int) (Result, error) // structural validation at offset
}

// Providers returns all font signature providers of this package.
func Providers() []Provider {
	return []Provider{TrueType{}, OpenType{}}
}

// validateSFNT validates an sfnt table directory at buf[offset:] and creates
// a result for it. A result is created only after every check has passed.
func validateSFNT(p Provider, buf []byte, offset int) (Result, error) {
	if offset < 0 || offset > len(buf) {
		return Result{}, &sfntdir.StructureError{
			Section: "Candidate",
			Issue:   fmt.Sprintf("offset %d outside buffer of size %d", offset, len(buf)),
			Offset:  offset,
		}
	}
	dir, err := sfntdir.ParseDirectory(buf[offset:])
	if err != nil {
		tracer().Debugf("%s candidate at %d rejected: %v", p.Name(), offset, err)
		return Result{}, fmt.Errorf("%s at %d: %w", p.Name(), offset, err)
	}
	size, ok := dir.Size()
	if !ok {
		return Result{}, &sfntdir.StructureError{
			Section: "TableRecords",
			Issue:   "cannot derive font size",
			Offset:  offset,
		}
	}
	r := Result{
		Offset:      offset,
		Description: p.Description(),
		Confidence:  raise(p.Initial(), High),
		Size:        size,
	}
	tracer().Debugf("%s candidate at %d accepted: %s", p.Name(), offset, r)
	return r, nil
}

// raise upgrades a confidence grade; it never downgrades.
func raise(c, to Confidence) Confidence {
	if to > c {
		return to
	}
	return c
}
