package main

import (
	"strings"

	"github.com/pterm/pterm"
)

func helpOp(intp *Intp, op *Op) (error, bool) {
	help(op.arg)
	return nil, false
}

func help(topic string) {
	tracer().Infof("help %v", topic)
	t := strings.ToLower(topic)
	switch t {
	case "dir", "directory", "fields":
		pterm.Info.Println("Table Directory")
		pterm.Println(`
	An sfnt font starts with a table directory header of 12 bytes:
	+-------------+-----------+-------------+---------------+------------+
	| sfntVersion | numTables | searchRange | entrySelector | rangeShift |
	+-------------+-----------+-------------+---------------+------------+
	followed by numTables table records of 16 bytes:
	+-----+----------+--------+--------+
	| tag | checksum | offset | length |
	+-----+----------+--------+--------+
	'fields[:offset]' prints the header fields, 'dir[:offset]' the records.
	`)
	case "validate", "scan":
		pterm.Info.Println("Validation")
		pterm.Println(`
	'scan' searches the file for the magic numbers 00 01 00 00, 'true'
	and 'OTTO', and validates every candidate.
	'validate[:offset]' runs all signature providers at an offset.
	A candidate is accepted if it has at most 32 tables, all table records
	are present, and tables 'head', 'hhea' and 'maxp' exist.
	`)
	default:
		pterm.Info.Println("Commands")
		pterm.Println(`
	scan               find and validate fonts
	fields[:offset]    decode the table directory header
	dir[:offset]       print the table directory
	validate[:offset]  grade the candidate at offset
	info[:offset]      decode tables head, hhea and maxp
	help[:topic]       topics: dir, validate
	quit
	Offsets are decimal or 0x-hex; without an offset the current one is used.
	`)
	}
}
