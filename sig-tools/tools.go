package main

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/npillmayer/fontsig/internal/fontload"
	"github.com/npillmayer/fontsig/internal/magic"
	"github.com/npillmayer/fontsig/internal/report"
	"github.com/npillmayer/fontsig/sfntdir"
	"github.com/npillmayer/fontsig/sfntinfo"
	"github.com/npillmayer/fontsig/signature"
	"github.com/npillmayer/schuko/schukonf/testconfig"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gologadapter"
	"github.com/npillmayer/schuko/tracing/trace2go"
	"github.com/pterm/pterm"
	"github.com/thatisuday/commando"
)

// tracer traces with key 'fontsig.tools'
func tracer() tracing.Trace {
	return tracing.Select("fontsig.tools")
}

func main() {
	commando.
		SetExecutableName("sig-tools").
		SetVersion("v0.1.0").
		SetDescription("CLI for finding and validating fonts embedded in binary data.")

	commando.
		Register("scan").
		SetDescription("Search a file for TrueType/OpenType signatures and validate every candidate.").
		SetShortDescription("scan for fonts").
		AddArgument("file", "file to scan", "").
		AddFlag("json,j", "print a JSON report instead of a table", commando.Bool, nil).
		AddFlag("verbose,V", "cross-check every validated font", commando.Bool, nil).
		AddFlag("trace,t", "trace level [Debug|Info|Error]", commando.String, "Error").
		SetAction(runScanCommand)

	commando.
		Register("dir").
		SetDescription("Print the sfnt table directory of a font candidate and cross-check it.").
		SetShortDescription("table directory").
		AddArgument("file", "file to inspect", "").
		AddArgument("offset", "offset of the font within the file (decimal or 0x-hex)", "0").
		AddFlag("trace,t", "trace level [Debug|Info|Error]", commando.String, "Error").
		SetAction(runDirCommand)

	commando.
		Register("info").
		SetDescription("Decode tables head, hhea and maxp of a font candidate.").
		SetShortDescription("core table info").
		AddArgument("file", "file to inspect", "").
		AddArgument("offset", "offset of the font within the file (decimal or 0x-hex)", "0").
		AddFlag("trace,t", "trace level [Debug|Info|Error]", commando.String, "Error").
		SetAction(runInfoCommand)

	commando.Parse(nil)
}

func runScanCommand(args map[string]commando.ArgValue, flags map[string]commando.FlagValue) {
	setupTracing(mustFlagString(flags["trace"], "trace"))
	path := strings.TrimSpace(args["file"].Value)
	buf := mustReadTarget(path)
	cands, matches := scanTarget(buf)

	if mustFlagBool(flags["json"], "json") {
		if err := writeScanJSON(os.Stdout, path, buf, cands, matches); err != nil {
			fatalf("cannot write report: %v", err)
		}
		return
	}
	pterm.Info.Printf("%s: %s bytes, %d candidates\n", path, report.Bytes(uint64(len(buf))), len(cands))
	if len(matches) == 0 {
		pterm.Println("no fonts found")
		return
	}
	if err := report.Render(report.MatchTable(matches)); err != nil {
		fatalf("%v", err)
	}
	if mustFlagBool(flags["verbose"], "verbose") {
		for _, m := range matches {
			data, complete := fontload.Carve(buf, m.Result)
			if !complete {
				pterm.Warning.Printf("font at %d is truncated (%d of %d bytes)\n", m.Result.Offset, len(data), m.Result.Size)
			}
			printCrossCheck(data)
		}
	}
}

func runDirCommand(args map[string]commando.ArgValue, flags map[string]commando.FlagValue) {
	setupTracing(mustFlagString(flags["trace"], "trace"))
	buf, offset := mustTargetAt(args)
	dir, size, err := directoryAt(buf, offset)
	if err != nil {
		fatalf("%v", err)
	}
	pterm.Info.Printf("sfnt version %s, %d tables, font size %s bytes\n", dir.Magic, dir.NumTables, report.Bytes(size))
	if err := report.Render(report.DirectoryTable(dir)); err != nil {
		fatalf("%v", err)
	}
	data, _ := fontload.Carve(buf, signature.Result{Offset: offset, Size: size})
	printCrossCheck(data)
}

func runInfoCommand(args map[string]commando.ArgValue, flags map[string]commando.FlagValue) {
	setupTracing(mustFlagString(flags["trace"], "trace"))
	buf, offset := mustTargetAt(args)
	info, err := infoAt(buf, offset)
	if err != nil {
		fatalf("%v", err)
	}
	if err := report.Render(report.InfoTable(info)); err != nil {
		fatalf("%v", err)
	}
}

// scanTarget finds all font magics in buf and validates them.
func scanTarget(buf []byte) ([]magic.Candidate, []magic.Match) {
	cands := magic.Find(buf, signature.Providers())
	matches := magic.Validate(buf, cands)
	tracer().Infof("%d candidates, %d validated", len(cands), len(matches))
	return cands, matches
}

func writeScanJSON(w io.Writer, path string, buf []byte, cands []magic.Candidate, matches []magic.Match) error {
	rep := report.NewScanReport(path, len(buf), len(cands), matches)
	return rep.WriteJSON(w)
}

// directoryAt parses the table directory of a font candidate at offset and
// returns it together with the font size it describes.
func directoryAt(buf []byte, offset int) (*sfntdir.Directory, uint64, error) {
	if offset < 0 || offset > len(buf) {
		return nil, 0, fmt.Errorf("offset %d is outside of file (%d bytes)", offset, len(buf))
	}
	dir, err := sfntdir.ParseDirectory(buf[offset:])
	if err != nil {
		return nil, 0, fmt.Errorf("no valid table directory at %d: %w", offset, err)
	}
	size, _ := dir.Size()
	return dir, size, nil
}

// infoAt decodes the core tables of a font candidate at offset.
func infoAt(buf []byte, offset int) (sfntinfo.Info, error) {
	dir, _, err := directoryAt(buf, offset)
	if err != nil {
		return sfntinfo.Info{}, err
	}
	info, err := sfntinfo.Inspect(buf, offset, dir)
	if err != nil {
		return sfntinfo.Info{}, fmt.Errorf("cannot decode core tables: %w", err)
	}
	return info, nil
}

func printCrossCheck(data []byte) {
	rep, err := fontload.CrossCheck(data)
	if err != nil {
		pterm.Warning.Println(err.Error())
		return
	}
	if rep.SFNTErr != nil {
		pterm.Warning.Printf("x/image/sfnt: %v\n", rep.SFNTErr)
	} else {
		pterm.Printf("Name: %s (%d glyphs)\n", rep.Fontname, rep.NumGlyphs)
	}
	if rep.LoaderErr != nil {
		pterm.Warning.Printf("go-text loader: %v\n", rep.LoaderErr)
	} else {
		pterm.Printf("Tables: %s\n", strings.Join(rep.Tables, " "))
	}
}

// --- Helpers ---------------------------------------------------------------

func setupTracing(level string) {
	tracing.RegisterTraceAdapter("go", gologadapter.GetAdapter(), false)
	conf := testconfig.Conf{
		"tracing.adapter":     "go",
		"trace.fontsig.tools": level,
	}
	if err := trace2go.ConfigureRoot(conf, "trace", trace2go.ReplaceTracers(true)); err != nil {
		fatalf("cannot configure tracing: %v", err)
	}
	tracing.SetTraceSelector(trace2go.Selector())
	switch level {
	case "Debug":
		tracer().SetTraceLevel(tracing.LevelDebug)
	case "Info":
		tracer().SetTraceLevel(tracing.LevelInfo)
	case "Error":
		tracer().SetTraceLevel(tracing.LevelError)
	default:
		fatalf("invalid trace level: %s", level)
	}
}

func mustReadTarget(path string) []byte {
	if path == "" {
		fatalf("file path is required")
	}
	buf, err := fontload.ReadTarget(path)
	if err != nil {
		fatalf("cannot read %s: %v", path, err)
	}
	return buf
}

func mustTargetAt(args map[string]commando.ArgValue) ([]byte, int) {
	buf := mustReadTarget(strings.TrimSpace(args["file"].Value))
	offset, err := parseOffset(args["offset"].Value)
	if err != nil {
		fatalf("%v", err)
	}
	if offset > len(buf) {
		fatalf("offset %d is beyond end of file (%d bytes)", offset, len(buf))
	}
	return buf, offset
}

// parseOffset accepts decimal and 0x-prefixed hexadecimal offsets.
func parseOffset(s string) (int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, nil
	}
	n, err := strconv.ParseInt(s, 0, 64)
	if err != nil || n < 0 {
		return 0, fmt.Errorf("invalid offset %q", s)
	}
	return int(n), nil
}

func mustFlagBool(flag commando.FlagValue, name string) bool {
	b, err := flag.GetBool()
	if err != nil {
		fatalf("invalid --%s flag: %v", name, err)
	}
	return b
}

func mustFlagString(flag commando.FlagValue, name string) string {
	s, err := flag.GetString()
	if err != nil {
		fatalf("invalid --%s flag: %v", name, err)
	}
	return s
}

func fatalf(format string, args ...interface{}) {
	_, _ = fmt.Fprintf(os.Stderr, "sig-tools: "+format+"\n", args...)
	os.Exit(1)
}
