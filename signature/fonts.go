package signature

// TrueType recognizes TrueType fonts, both in their OpenType form (version
// 0x00010000) and in the legacy Apple form ('true'). A bare TrueType magic
// is weak evidence: 00 01 00 00 occurs all over binary data.
type TrueType struct{}

var _ Provider = TrueType{}

// Name returns "ttf".
func (TrueType) Name() string { return "ttf" }

// Description returns "TrueType font".
func (TrueType) Description() string { return "TrueType font" }

// Initial returns Low.
func (TrueType) Initial() Confidence { return Low }

// Magics returns the TrueType version tags.
func (TrueType) Magics() [][]byte {
	return [][]byte{{0x00, 0x01, 0x00, 0x00}, []byte("true")}
}

// Validate checks for a TrueType table directory at buf[offset:].
func (t TrueType) Validate(buf []byte, offset int) (Result, error) {
	return validateSFNT(t, buf, offset)
}

// OpenType recognizes OpenType fonts with CFF outlines ('OTTO').
type OpenType struct{}

var _ Provider = OpenType{}

// Name returns "otf".
func (OpenType) Name() string { return "otf" }

// Description returns "OpenType font".
func (OpenType) Description() string { return "OpenType font" }

// Initial returns Medium; 'OTTO' is distinctive enough on its own.
func (OpenType) Initial() Confidence { return Medium }

// Magics returns the 'OTTO' tag.
func (OpenType) Magics() [][]byte {
	return [][]byte{[]byte("OTTO")}
}

// Validate checks for a CFF-flavoured OpenType table directory at buf[offset:].
func (o OpenType) Validate(buf []byte, offset int) (Result, error) {
	return validateSFNT(o, buf, offset)
}
