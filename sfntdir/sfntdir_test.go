package sfntdir

import (
	"errors"
	"math"
	"testing"

	"github.com/npillmayer/fontsig/binfield"
	"github.com/npillmayer/fontsig/internal/sfnttest"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

func TestLayoutSizes(t *testing.T) {
	if HeaderSize != 12 {
		t.Errorf("expected header size 12, is %d", HeaderSize)
	}
	if EntrySize != 16 {
		t.Errorf("expected table record size 16, is %d", EntrySize)
	}
	if binfield.Size(HeaderLayout()) != HeaderSize {
		t.Errorf("expected HeaderLayout to match HeaderSize")
	}
}

func TestTags(t *testing.T) {
	tag := T("cmap")
	if tag.String() != "cmap" {
		t.Errorf("expected tag T(cmap) to be 'cmap', is %s", tag.String())
	}
	if tag.Uint32() != 0x636d6170 {
		t.Errorf("expected tag cmap to be 0x636d6170, is %x", tag.Uint32())
	}
	if TagFromUint32(0x636d6170) != tag {
		t.Errorf("expected tag 0x636d6170 to be 'cmap', is %s", TagFromUint32(0x636d6170))
	}
	if T("cvt").String() != "cvt " {
		t.Errorf("expected short tag to be padded, is %q", T("cvt").String())
	}
	if s := TagFromUint32(0x00010000).String(); s != "0x00010000" {
		t.Errorf("expected non-printable tag to print as hex, is %s", s)
	}
}

func TestParseDirectory(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "fontsig.sfnt")
	defer teardown()
	//
	data := sfnttest.Build(sfnttest.MagicOTTO, sfnttest.MinimalEntries()...)
	dir, err := ParseDirectory(data)
	if err != nil {
		t.Fatal(err)
	}
	if dir.Magic != T("OTTO") {
		t.Errorf("expected magic OTTO, is %s", dir.Magic)
	}
	if dir.NumTables != 3 || len(dir.Tables) != 3 {
		t.Fatalf("expected 3 tables, have %d/%d", dir.NumTables, len(dir.Tables))
	}
	if dir.SearchRange != 16 {
		t.Errorf("expected search range 16, is %d", dir.SearchRange)
	}
	for i, tag := range []string{"head", "hhea", "maxp"} {
		if dir.Tables[i].Tag != T(tag) {
			t.Errorf("expected table %d to be %s, is %s", i, tag, dir.Tables[i].Tag)
		}
	}
	maxp, ok := dir.Lookup(T("maxp"))
	if !ok || maxp.Offset != 40 || maxp.Length != 4 {
		t.Errorf("expected maxp at 40 with length 4, have %+v", maxp)
	}
	if _, ok := dir.Lookup(T("glyf")); ok {
		t.Errorf("did not expect to find table glyf")
	}
	size, ok := dir.Size()
	if !ok || size != 44 {
		t.Errorf("expected font size 44, have %d (%v)", size, ok)
	}
}

func TestParseDirectoryKeepsOrderAndExtraTables(t *testing.T) {
	entries := []sfnttest.Entry{
		{Tag: "maxp", Checksum: 0xdeadbeef, Offset: 200, Length: 6},
		{Tag: "OS/2", Offset: 100, Length: 96},
		{Tag: "head", Offset: 60, Length: 54},
		{Tag: "hhea", Offset: 120, Length: 36},
	}
	dir, err := ParseDirectory(sfnttest.Build(sfnttest.MagicTrueType, entries...))
	if err != nil {
		t.Fatal(err)
	}
	tags := dir.Tags()
	for i, e := range entries {
		if tags[i] != T(e.Tag) {
			t.Errorf("expected tag %d to be %s, is %s", i, e.Tag, tags[i])
		}
	}
	if dir.Tables[0].Checksum != 0xdeadbeef {
		t.Errorf("expected checksum 0xdeadbeef, is %x", dir.Tables[0].Checksum)
	}
	if size, _ := dir.Size(); size != 206 {
		t.Errorf("expected font size 206, is %d", size)
	}
}

func TestParseDirectoryTruncatedHeader(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "fontsig.sfnt")
	defer teardown()
	//
	data := sfnttest.Build(sfnttest.MagicOTTO, sfnttest.MinimalEntries()...)
	for n := 0; n < HeaderSize; n++ {
		_, err := ParseDirectory(data[:n])
		if !errors.Is(err, ErrStructure) {
			t.Errorf("expected structural rejection for %d bytes, have %v", n, err)
		}
		if !errors.Is(err, binfield.ErrShortData) {
			t.Errorf("expected short data cause for %d bytes, have %v", n, err)
		}
	}
}

func TestParseDirectoryTableCountCeiling(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "fontsig.sfnt")
	defer teardown()
	//
	entries := sfnttest.MinimalEntries()
	for len(entries) < 40 {
		entries = append(entries, sfnttest.Entry{Tag: "xxxx", Offset: 1000, Length: 4})
	}
	for _, count := range []uint16{33, 40, 0xffff} {
		n := int(count)
		if n > len(entries) {
			n = len(entries)
		}
		data := sfnttest.BuildCount(sfnttest.MagicTrueType, count, entries[:n]...)
		_, err := ParseDirectory(data)
		if !errors.Is(err, ErrStructure) {
			t.Errorf("expected rejection of table count %d, have %v", count, err)
		}
	}
	data := sfnttest.BuildCount(sfnttest.MagicTrueType, 32, entries[:32]...)
	if _, err := ParseDirectory(data); err != nil {
		t.Errorf("expected table count 32 to be accepted, have %v", err)
	}
}

func TestParseDirectoryTruncatedRecords(t *testing.T) {
	data := sfnttest.Build(sfnttest.MagicTrueType, sfnttest.MinimalEntries()...)
	for n := HeaderSize; n < len(data); n++ {
		_, err := ParseDirectory(data[:n])
		var serr *StructureError
		if !errors.As(err, &serr) {
			t.Fatalf("expected StructureError for %d bytes, have %v", n, err)
		}
		if serr.Section != "TableRecords" {
			t.Errorf("expected rejection in TableRecords, is %s", serr.Section)
		}
	}
	// count claims 5 tables but only 3 are present
	data = sfnttest.BuildCount(sfnttest.MagicTrueType, 5, sfnttest.MinimalEntries()...)
	if _, err := ParseDirectory(data); !errors.Is(err, ErrStructure) {
		t.Errorf("expected rejection of records running past the end, have %v", err)
	}
}

func TestParseDirectoryMissingRequiredTables(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "fontsig.sfnt")
	defer teardown()
	//
	all := sfnttest.MinimalEntries()
	for skip := range all {
		var entries []sfnttest.Entry
		for i, e := range all {
			if i != skip {
				entries = append(entries, e)
			}
		}
		entries = append(entries, sfnttest.Entry{Tag: "cmap", Offset: 50, Length: 8})
		_, err := ParseDirectory(sfnttest.Build(sfnttest.MagicOTTO, entries...))
		if !errors.Is(err, ErrStructure) {
			t.Errorf("expected rejection without table %s, have %v", all[skip].Tag, err)
		}
	}
	// a single 'head' table
	_, err := ParseDirectory(sfnttest.Build(sfnttest.MagicOTTO, all[0]))
	if !errors.Is(err, ErrStructure) {
		t.Errorf("expected rejection of directory with 'head' only, have %v", err)
	}
	// no tables at all
	_, err = ParseDirectory(sfnttest.Build(sfnttest.MagicOTTO))
	if !errors.Is(err, ErrStructure) {
		t.Errorf("expected rejection of empty directory, have %v", err)
	}
}

func TestEstimateSize(t *testing.T) {
	if _, ok := EstimateSize(nil); ok {
		t.Errorf("expected size of empty directory to be unknown")
	}
	tables := []TableEntry{
		{Tag: T("glyf"), Offset: 500, Length: 1000},
		{Tag: T("head"), Offset: 100, Length: 54},
		{Tag: T("loca"), Offset: 1600, Length: 2},
	}
	if size, ok := EstimateSize(tables); !ok || size != 1602 {
		t.Errorf("expected size 1602, have %d", size)
	}
	huge := []TableEntry{{Offset: math.MaxUint32, Length: math.MaxUint32}}
	if size, _ := EstimateSize(huge); size != 2*uint64(math.MaxUint32) {
		t.Errorf("expected 64-bit sum without overflow, have %d", size)
	}
}

func TestStructureErrorMessage(t *testing.T) {
	err := &StructureError{Section: "Header", Issue: "bad", Offset: -1}
	if err.Error() != "[Header] bad" {
		t.Errorf("unexpected error message %q", err.Error())
	}
	err = &StructureError{Section: "Header", Issue: "bad", Offset: 4, Err: binfield.ErrShortData}
	if !errors.Is(err, binfield.ErrShortData) || !errors.Is(err, ErrStructure) {
		t.Errorf("expected error to match both ErrStructure and its cause")
	}
}
