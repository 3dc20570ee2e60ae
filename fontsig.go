package fontsig

import (
	"github.com/npillmayer/fontsig/signature"
	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'fontsig'
func tracer() tracing.Trace {
	return tracing.Select("fontsig")
}

// Providers returns the font signature providers, for registration with a
// scanner's signature table.
func Providers() []signature.Provider {
	p := signature.Providers()
	tracer().Debugf("%d font signature providers", len(p))
	return p
}

// Validate runs every provider claiming magic at buf[offset:] and returns
// the first result accepted. It returns an error matching
// signature.ErrRejected if no provider accepts the candidate.
func Validate(buf []byte, offset int) (signature.Result, error) {
	var lastErr error = signature.ErrRejected
	for _, p := range Providers() {
		if !hasMagic(p, buf, offset) {
			continue
		}
		r, err := p.Validate(buf, offset)
		if err == nil {
			return r, nil
		}
		lastErr = err
	}
	return signature.Result{}, lastErr
}

func hasMagic(p signature.Provider, buf []byte, offset int) bool {
	if offset < 0 || offset > len(buf) {
		return false
	}
	for _, m := range p.Magics() {
		if len(buf)-offset >= len(m) && string(buf[offset:offset+len(m)]) == string(m) {
			return true
		}
	}
	return false
}
