// Package magic finds the magic byte sequences of signature providers in a
// buffer. It is a plain search used by the diagnostic tools; every candidate
// found is reported, and choosing between overlapping candidates is up to
// the caller.
package magic

import (
	"bytes"
	"sort"

	"github.com/npillmayer/fontsig/signature"
	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'fontsig.magic'
func tracer() tracing.Trace {
	return tracing.Select("fontsig.magic")
}

// Candidate is a magic match in a buffer.
type Candidate struct {
	Offset   int
	Magic    []byte
	Provider signature.Provider
}

// Find returns every position in buf where a magic of one of the providers
// starts, ordered by offset. Overlapping occurrences are included.
func Find(buf []byte, providers []signature.Provider) []Candidate {
	var cands []Candidate
	for _, p := range providers {
		for _, m := range p.Magics() {
			if len(m) == 0 {
				continue
			}
			for pos := 0; pos <= len(buf)-len(m); {
				i := bytes.Index(buf[pos:], m)
				if i < 0 {
					break
				}
				cands = append(cands, Candidate{Offset: pos + i, Magic: m, Provider: p})
				pos += i + 1
			}
		}
	}
	sort.SliceStable(cands, func(i, j int) bool { return cands[i].Offset < cands[j].Offset })
	tracer().Debugf("found %d magic candidates in %d bytes", len(cands), len(buf))
	return cands
}

// Match is a validated candidate.
type Match struct {
	Candidate
	Result signature.Result
}

// Validate runs the provider of every candidate and returns the matches
// which passed, in candidate order. Rejected candidates are dropped.
func Validate(buf []byte, cands []Candidate) []Match {
	var matches []Match
	for _, c := range cands {
		r, err := c.Provider.Validate(buf, c.Offset)
		if err != nil {
			tracer().Debugf("candidate %s at %d: %v", c.Provider.Name(), c.Offset, err)
			continue
		}
		matches = append(matches, Match{Candidate: c, Result: r})
	}
	return matches
}
