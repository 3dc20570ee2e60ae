/*
Package binfield reads fixed-width unsigned integer fields from byte slices.

A Layout is a short, ordered list of named fields. Decoding a byte slice
against a layout yields a map from field name to value. Clients describe the
shape of a binary header as data and let Decode do the byte slicing:

	var header = binfield.MustLayout(
	    binfield.Field{Name: "magic", Width: binfield.U32},
	    binfield.Field{Name: "count", Width: binfield.U16},
	)
	values, err := binfield.Decode(data, header, binary.BigEndian)

Decode checks the length of the input once, before reading any field. It does
not interpret the values in any way; semantic validation is left to the
caller.

# License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © Norbert Pillmayer <norbert@pillmayer.com>
*/
package binfield

import (
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'fontsig.binfield'
func tracer() tracing.Trace {
	return tracing.Select("fontsig.binfield")
}

// ErrShortData is returned by Decode if the input holds fewer bytes than
// the layout requires.
var ErrShortData = errors.New("binfield: insufficient data for layout")

// ErrLayout is matched by errors for layouts with an unsupported width or a
// duplicate field name.
var ErrLayout = errors.New("binfield: invalid layout")

// Width is the byte width of an unsigned integer field.
type Width int

// Supported field widths.
const (
	U8  Width = 1
	U16 Width = 2
	U32 Width = 4
	U64 Width = 8
)

func (w Width) String() string {
	switch w {
	case U8:
		return "u8"
	case U16:
		return "u16"
	case U32:
		return "u32"
	case U64:
		return "u64"
	}
	return fmt.Sprintf("width(%d)", int(w))
}

func (w Width) valid() bool {
	return w == U8 || w == U16 || w == U32 || w == U64
}

// Field is a named unsigned integer of a given width.
type Field struct {
	Name  string
	Width Width
}

// Layout is an ordered sequence of fields, read back to back.
type Layout []Field

// Validate reports an error if a field name occurs twice or a field has an
// unsupported width.
func (l Layout) Validate() error {
	seen := make(map[string]struct{}, len(l))
	for i, f := range l {
		if !f.Width.valid() {
			return fmt.Errorf("%w: field %d (%q) has unsupported width %d", ErrLayout, i, f.Name, int(f.Width))
		}
		if _, dup := seen[f.Name]; dup {
			return fmt.Errorf("%w: duplicate field name %q", ErrLayout, f.Name)
		}
		seen[f.Name] = struct{}{}
	}
	return nil
}

// MustLayout creates a layout from fields and panics if it is not valid.
// It is intended for package-level layout declarations.
func MustLayout(fields ...Field) Layout {
	l := Layout(fields)
	if err := l.Validate(); err != nil {
		panic(err)
	}
	return l
}

// Size returns the number of bytes occupied by a layout.
func Size(layout Layout) int {
	n := 0
	for _, f := range layout {
		n += int(f.Width)
	}
	return n
}

// Values maps field names to decoded values.
type Values map[string]uint64

// Get returns the value of a field and whether it is present.
func (v Values) Get(name string) (uint64, bool) {
	n, ok := v[name]
	return n, ok
}

// Decode reads the fields of layout from data, interpreting multi-byte
// fields in the given byte order. Bytes beyond the layout's size are
// ignored. An invalid layout yields an error wrapping ErrLayout; if data is
// too short, Decode returns an error wrapping ErrShortData. In both cases no
// values are returned.
func Decode(data []byte, layout Layout, order binary.ByteOrder) (Values, error) {
	if err := layout.Validate(); err != nil {
		return nil, err
	}
	need := Size(layout)
	if len(data) < need {
		tracer().Debugf("decode needs %d bytes, have %d", need, len(data))
		return nil, fmt.Errorf("%w: need %d bytes, have %d", ErrShortData, need, len(data))
	}
	values := make(Values, len(layout))
	pos := 0
	for _, f := range layout {
		b := data[pos : pos+int(f.Width)]
		switch f.Width {
		case U8:
			values[f.Name] = uint64(b[0])
		case U16:
			values[f.Name] = uint64(order.Uint16(b))
		case U32:
			values[f.Name] = uint64(order.Uint32(b))
		case U64:
			values[f.Name] = order.Uint64(b)
		}
		pos += int(f.Width)
	}
	return values, nil
}
