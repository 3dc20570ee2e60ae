package sfntdir

import (
	"errors"
	"fmt"
)

// ErrStructure is the single error kind of this package. Every rejection of
// a candidate table directory matches it with errors.Is, whether the bytes
// were malformed or simply not an sfnt container.
var ErrStructure = errors.New("sfnt structural rejection")

// StructureError describes why a candidate table directory was rejected.
type StructureError struct {
	Section string // part of the directory, e.g. "Header" or "TableRecords"
	Issue   string // human-readable description of the issue
	Offset  int    // byte offset relative to the candidate start (-1 if unknown)
	Err     error  // underlying cause, if any
}

func (e *StructureError) Error() string {
	s := fmt.Sprintf("[%s] %s", e.Section, e.Issue)
	if e.Offset >= 0 {
		s = fmt.Sprintf("[%s] at offset %d: %s", e.Section, e.Offset, e.Issue)
	}
	if e.Err != nil {
		s += ": " + e.Err.Error()
	}
	return s
}

// Is makes every StructureError match ErrStructure.
func (e *StructureError) Is(target error) bool {
	return target == ErrStructure
}

func (e *StructureError) Unwrap() error {
	return e.Err
}

// reject creates a StructureError and traces it.
func reject(section string, offset int, cause error, format string, args ...interface{}) error {
	err := &StructureError{
		Section: section,
		Issue:   fmt.Sprintf(format, args...),
		Offset:  offset,
		Err:     cause,
	}
	tracer().Debugf("reject: %v", err)
	return err
}
