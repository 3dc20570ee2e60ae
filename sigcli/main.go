package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/chzyer/readline"
	"github.com/npillmayer/fontsig/internal/fontload"
	"github.com/npillmayer/schuko/schukonf/testconfig"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gologadapter"
	"github.com/npillmayer/schuko/tracing/trace2go"
	"github.com/pterm/pterm"
)

// tracer traces with key 'fontsig.cli'
func tracer() tracing.Trace {
	return tracing.Select("fontsig.cli")
}

func main() {
	tlevel := flag.String("trace", "Info", "Trace level [Debug|Info|Error]")
	target := flag.String("file", "", "File to inspect")
	flag.Parse()

	initDisplay()
	if err := setupTracing(*tlevel); err != nil {
		pterm.Error.Println(err)
		os.Exit(1)
	}
	intp := &Intp{}
	if err := intp.loadTarget(*target); err != nil {
		pterm.Error.Println(err)
		os.Exit(2)
	}
	repl, err := readline.New("sig > ")
	if err != nil {
		pterm.Error.Println(err)
		os.Exit(3)
	}
	intp.repl = repl
	pterm.Info.Println("Font signature CLI, quit with <ctrl>D")
	intp.REPL()
}

// setupTracing routes key 'fontsig.cli' to the Go logger at the given level.
func setupTracing(level string) error {
	switch level {
	case "Debug", "Info", "Error":
	default:
		return fmt.Errorf("invalid trace level: %s", level)
	}
	tracing.RegisterTraceAdapter("go", gologadapter.GetAdapter(), false)
	conf := testconfig.Conf{
		"tracing.adapter":   "go",
		"trace.fontsig.cli": level,
	}
	if err := trace2go.ConfigureRoot(conf, "trace", trace2go.ReplaceTracers(true)); err != nil {
		return fmt.Errorf("cannot configure tracing: %w", err)
	}
	tracing.SetTraceSelector(trace2go.Selector())
	tracer().SetTraceLevel(tracing.TraceLevelFromString(level))
	tracer().Debugf("trace level is %s", level)
	return nil
}

// We use pterm for moderately fancy output.
func initDisplay() {
	pterm.EnableDebugMessages()
	pterm.Info.Prefix = pterm.Prefix{
		Text:  " !  ",
		Style: pterm.NewStyle(pterm.BgCyan, pterm.FgBlack),
	}
	pterm.Error.Prefix = pterm.Prefix{
		Text:  " Error",
		Style: pterm.NewStyle(pterm.BgRed, pterm.FgBlack),
	}
}

// Intp is our interpreter object
type Intp struct {
	path   string
	buf    []byte
	offset int // current candidate offset
	repl   *readline.Instance
}

func (intp *Intp) String() string {
	if intp == nil || intp.buf == nil {
		return "()"
	}
	return fmt.Sprintf("( %s @ %d/%d )", intp.path, intp.offset, len(intp.buf))
}

// REPL starts interactive mode.
func (intp *Intp) REPL() {
	for {
		pterm.Println(intp.String())
		line, err := intp.repl.Readline()
		if err != nil { // io.EOF
			break
		}
		if line = strings.TrimSpace(line); line == "" {
			continue
		}
		cmd, err := intp.parseCommand(line)
		if err != nil {
			tracer().Errorf("%v", err)
			continue
		}
		err, quit := intp.execute(cmd)
		if err != nil {
			tracer().Errorf("%v", err)
			continue
		}
		if quit {
			break
		}
	}
	pterm.Info.Println("Good bye!")
}

type Op struct {
	code int
	arg  string
}

type Command struct {
	count int
	op    [16]Op
}

const NOOP = -1
const (
	// op-code QUIT will not have arguments
	QUIT int = iota
	// op-codes below may have arguments
	HELP
	SCAN
	DIR
	FIELDS
	VALIDATE
	INFO
)

var opMap = map[string]int{
	"quit":     QUIT,
	"help":     HELP,
	"scan":     SCAN,
	"dir":      DIR,
	"fields":   FIELDS,
	"validate": VALIDATE,
	"info":     INFO,
}

var opNames = []string{
	"quit",
	"help",
	"scan",
	"dir",
	"fields",
	"validate",
	"info",
}

// parseCommand splits a line into operations, e.g. "dir:0x100 info".
// Every operation may carry one argument after a colon.
func (intp *Intp) parseCommand(line string) (*Command, error) {
	cmd := &Command{}
	for i := range cmd.op {
		cmd.op[i].code = NOOP
	}
	steps := strings.Fields(line)
	if len(steps) > len(cmd.op) {
		return nil, fmt.Errorf("too many operations: %d", len(steps))
	}
	cmd.count = len(steps)
	for i, step := range steps {
		c := strings.SplitN(step, ":", 2)
		code, ok := opMap[strings.ToLower(c[0])]
		if !ok {
			code = HELP
		}
		cmd.op[i].code = code
		if code == QUIT {
			return cmd, nil
		}
		cmd.op[i].arg = getOptArg(c, 1)
		if cmd.op[i].arg == "" {
			tracer().Debugf("%s", opNames[code])
		} else {
			tracer().Debugf("%s: '%s'", opNames[code], cmd.op[i].arg)
		}
	}
	return cmd, nil
}

var commandFn = map[int]func(*Intp, *Op) (error, bool){
	QUIT:     quitOp,
	HELP:     helpOp,
	SCAN:     scanOp,
	DIR:      dirOp,
	FIELDS:   fieldsOp,
	VALIDATE: validateOp,
	INFO:     infoOp,
}

func (intp *Intp) execute(cmd *Command) (err error, stop bool) {
	tracer().Debugf("cmd = %v", cmd.op[:cmd.count])
	for _, c := range cmd.op {
		if c.code == NOOP {
			break
		}
		f, ok := commandFn[c.code]
		if !ok {
			pterm.Error.Printf("unknown command code: %d\n", c.code)
			return nil, false
		}
		err, stop = f(intp, &c)
		if err != nil {
			pterm.Error.Println(err)
			return
		}
		if stop {
			return
		}
	}
	return
}

func quitOp(intp *Intp, op *Op) (error, bool) {
	pterm.Println("Goodbye!")
	return nil, true
}

// --- Target Loading --------------------------------------------------------

func (intp *Intp) loadTarget(path string) (err error) {
	if path == "" {
		return errors.New("no file given; use -file <path>")
	}
	if intp.buf, err = fontload.ReadTarget(path); err != nil {
		return err
	}
	intp.path = path
	pterm.Printf("loaded %s: %d bytes\n", path, len(intp.buf))
	return nil
}

// ---------------------------------------------------------------------------

var ErrNoTarget = errors.New("no file loaded")

// setOffset moves the current candidate offset if op carries an argument.
func (intp *Intp) setOffset(op *Op) error {
	if intp.buf == nil {
		return ErrNoTarget
	}
	arg, ok := op.hasArg()
	if !ok {
		return nil
	}
	n, err := strconv.ParseInt(arg, 0, 64)
	if err != nil || n < 0 || n > int64(len(intp.buf)) {
		return fmt.Errorf("invalid offset: %v", arg)
	}
	intp.offset = int(n)
	return nil
}

func getOptArg(s []string, inx int) string {
	if len(s) > inx {
		return s[inx]
	}
	return ""
}

func (op *Op) hasArg() (string, bool) {
	if op.arg == "" {
		return "", false
	}
	return op.arg, true
}
