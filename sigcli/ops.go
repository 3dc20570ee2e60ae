package main

import (
	"encoding/binary"
	"fmt"

	"github.com/npillmayer/fontsig/binfield"
	"github.com/npillmayer/fontsig/internal/magic"
	"github.com/npillmayer/fontsig/internal/report"
	"github.com/npillmayer/fontsig/sfntdir"
	"github.com/npillmayer/fontsig/sfntinfo"
	"github.com/npillmayer/fontsig/signature"
	"github.com/pterm/pterm"
)

func scanOp(intp *Intp, op *Op) (error, bool) {
	if intp.buf == nil {
		return ErrNoTarget, false
	}
	cands := magic.Find(intp.buf, signature.Providers())
	matches := magic.Validate(intp.buf, cands)
	pterm.Printf("%d candidates, %d fonts\n", len(cands), len(matches))
	if len(matches) == 0 {
		return nil, false
	}
	intp.offset = matches[0].Result.Offset
	return report.Render(report.MatchTable(matches)), false
}

func fieldsOp(intp *Intp, op *Op) (error, bool) {
	if err := intp.setOffset(op); err != nil {
		return err, false
	}
	layout := sfntdir.HeaderLayout()
	values, err := binfield.Decode(intp.buf[intp.offset:], layout, binary.BigEndian)
	if err != nil {
		return err, false
	}
	return report.Render(report.FieldTable(layout, values)), false
}

func dirOp(intp *Intp, op *Op) (error, bool) {
	if err := intp.setOffset(op); err != nil {
		return err, false
	}
	dir, err := sfntdir.ParseDirectory(intp.buf[intp.offset:])
	if err != nil {
		return err, false
	}
	size, _ := dir.Size()
	pterm.Printf("sfnt version %s, %d tables, font size %s bytes\n", dir.Magic, dir.NumTables, report.Bytes(size))
	return report.Render(report.DirectoryTable(dir)), false
}

func validateOp(intp *Intp, op *Op) (error, bool) {
	if err := intp.setOffset(op); err != nil {
		return err, false
	}
	accepted := 0
	for _, p := range signature.Providers() {
		r, err := p.Validate(intp.buf, intp.offset)
		if err != nil {
			tracer().Infof("%s: %v", p.Name(), err)
			continue
		}
		accepted++
		pterm.Printf("%s: %s\n", p.Name(), r)
	}
	if accepted == 0 {
		return fmt.Errorf("no provider accepts offset %d", intp.offset), false
	}
	return nil, false
}

func infoOp(intp *Intp, op *Op) (error, bool) {
	if err := intp.setOffset(op); err != nil {
		return err, false
	}
	dir, err := sfntdir.ParseDirectory(intp.buf[intp.offset:])
	if err != nil {
		return err, false
	}
	info, err := sfntinfo.Inspect(intp.buf, intp.offset, dir)
	if err != nil {
		return err, false
	}
	return report.Render(report.InfoTable(info)), false
}
