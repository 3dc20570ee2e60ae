// Package report renders scan results and table directories for the
// diagnostic front ends.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
	"github.com/npillmayer/fontsig/binfield"
	"github.com/npillmayer/fontsig/internal/magic"
	"github.com/npillmayer/fontsig/sfntdir"
	"github.com/npillmayer/fontsig/sfntinfo"
	"github.com/pterm/pterm"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer = message.NewPrinter(language.English)

// Bytes formats a byte count with thousands separators, e.g. "12,345".
func Bytes(n uint64) string {
	return printer.Sprintf("%d", n)
}

// MatchTable returns table rows (including a header row) for validated matches.
func MatchTable(matches []magic.Match) [][]string {
	data := [][]string{
		{"Offset", "Hex", "Format", "Confidence", "Size"},
	}
	for _, m := range matches {
		data = append(data, []string{
			fmt.Sprintf("%d", m.Result.Offset),
			fmt.Sprintf("0x%X", m.Result.Offset),
			m.Result.Description,
			m.Result.Confidence.String(),
			Bytes(m.Result.Size),
		})
	}
	return data
}

// DirectoryTable returns table rows (including a header row) for the
// records of a table directory.
func DirectoryTable(dir *sfntdir.Directory) [][]string {
	data := [][]string{
		{"Tag", "Checksum", "Offset", "Length", "End"},
	}
	for _, e := range dir.Tables {
		data = append(data, []string{
			e.Tag.String(),
			fmt.Sprintf("%08x", e.Checksum),
			fmt.Sprintf("%d", e.Offset),
			fmt.Sprintf("%d", e.Length),
			fmt.Sprintf("%d", e.End()),
		})
	}
	return data
}

// FieldTable returns table rows for decoded fields, in layout order.
func FieldTable(layout binfield.Layout, values binfield.Values) [][]string {
	data := [][]string{
		{"Field", "Width", "Value", "Hex"},
	}
	for _, f := range layout {
		v := values[f.Name]
		data = append(data, []string{f.Name, f.Width.String(), fmt.Sprintf("%d", v), fmt.Sprintf("0x%X", v)})
	}
	return data
}

// InfoTable returns table rows for the decoded core tables of a font.
func InfoTable(info sfntinfo.Info) [][]string {
	return [][]string{
		{"Property", "Value"},
		{"head magic", fmt.Sprintf("%08x (ok=%v)", info.Head.MagicNumber, info.Head.MagicOK())},
		{"units per em", fmt.Sprintf("%d", info.Head.UnitsPerEm)},
		{"bbox", fmt.Sprintf("%d %d %d %d", info.Head.XMin, info.Head.YMin, info.Head.XMax, info.Head.YMax)},
		{"ascender", fmt.Sprintf("%d", info.HHea.Ascender)},
		{"descender", fmt.Sprintf("%d", info.HHea.Descender)},
		{"line gap", fmt.Sprintf("%d", info.HHea.LineGap)},
		{"h-metrics", fmt.Sprintf("%d", info.HHea.NumberOfHMetrics)},
		{"glyphs", fmt.Sprintf("%d", info.MaxP.NumGlyphs)},
		{"maxp version", fmt.Sprintf("%08x", info.MaxP.VersionFixed)},
	}
}

// Render prints table rows with pterm, the first row being the header.
func Render(data [][]string) error {
	return pterm.DefaultTable.WithHasHeader().WithData(data).Render()
}

// --- JSON ------------------------------------------------------------------

// ScanReport is the machine-readable outcome of a scan.
type ScanReport struct {
	RunID      string       `json:"run_id"`
	Target     string       `json:"target"`
	TargetSize int          `json:"target_size"`
	Scanned    time.Time    `json:"scanned"`
	Candidates int          `json:"candidates"`
	Matches    []MatchEntry `json:"matches"`
}

// MatchEntry is one validated match of a ScanReport.
type MatchEntry struct {
	Offset      int    `json:"offset"`
	Format      string `json:"format"`
	Description string `json:"description"`
	Confidence  string `json:"confidence"`
	Size        uint64 `json:"size"`
}

// NewScanReport creates a report with a fresh run id.
func NewScanReport(target string, size int, candidates int, matches []magic.Match) ScanReport {
	rep := ScanReport{
		RunID:      uuid.New().String(),
		Target:     target,
		TargetSize: size,
		Scanned:    time.Now().UTC(),
		Candidates: candidates,
		Matches:    make([]MatchEntry, 0, len(matches)),
	}
	for _, m := range matches {
		rep.Matches = append(rep.Matches, MatchEntry{
			Offset:      m.Result.Offset,
			Format:      m.Provider.Name(),
			Description: m.Result.Description,
			Confidence:  m.Result.Confidence.String(),
			Size:        m.Result.Size,
		})
	}
	return rep
}

// WriteJSON writes the report as indented JSON.
func (rep ScanReport) WriteJSON(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(rep)
}
