package engine

import (
	"errors"
	"fmt"
	"strings"
)

// ErrFormat indicates the upload is not a readable spreadsheet.
var ErrFormat = errors.New("unreadable spreadsheet")

// ErrSchema indicates required columns are missing.
var ErrSchema = errors.New("missing required columns")

// FormatError is returned when the uploaded bytes cannot be parsed as tabular data.
type FormatError struct {
	Format string // "xlsx" or "csv"
	Err    error
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("cannot read %s file: %v", e.Format, e.Err)
}

func (e *FormatError) Unwrap() error { return e.Err }

func (e *FormatError) Is(target error) bool { return target == ErrFormat }

// SchemaError is returned when the header row lacks required columns.
type SchemaError struct {
	Missing []string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("missing required column(s): %s", strings.Join(e.Missing, ", "))
}

func (e *SchemaError) Is(target error) bool { return target == ErrSchema }
