// Package ledgererror defines the error taxonomy of the sales pipeline.
//
// Every type except RowError is fatal to a run: it propagates to the command
// entry point, which reports it and exits non-zero without writing a report.
// RowError is row-level and only ever becomes a rejected row.
package ledgererror

import (
	"errors"
	"fmt"
)

// Rejection reasons attached to RowError. They are stable strings because they
// appear in the rendered report.
const (
	ReasonFieldCount      = "wrong field count"
	ReasonMalformed       = "malformed row"
	ReasonMissingID       = "missing transaction id"
	ReasonInvalidID       = "invalid transaction id"
	ReasonInvalidDate     = "invalid date"
	ReasonMissingProduct  = "missing product name"
	ReasonInvalidPrice    = "invalid unit price"
	ReasonNegativePrice   = "negative unit price"
	ReasonInvalidQuantity = "invalid quantity"
	ReasonNegativeQty     = "negative quantity"
	ReasonMissingCustomer = "missing customer id"
	ReasonMissingRegion   = "missing region"
)

// FileNotFoundError is returned when the input ledger does not exist.
type FileNotFoundError struct {
	FilePath string
	Err      error
}

func (e *FileNotFoundError) Error() string {
	return fmt.Sprintf("input file not found: %s", e.FilePath)
}

func (e *FileNotFoundError) Unwrap() error {
	return e.Err
}

// ReadError represents any other failure to read the input ledger.
type ReadError struct {
	FilePath string
	Err      error
}

func (e *ReadError) Error() string {
	return fmt.Sprintf("failed to read %s: %v", e.FilePath, e.Err)
}

func (e *ReadError) Unwrap() error {
	return e.Err
}

// EmptyInputError is returned when the ledger has no data lines.
type EmptyInputError struct {
	FilePath string
}

func (e *EmptyInputError) Error() string {
	if e.FilePath == "" {
		return "input contains no data lines"
	}
	return fmt.Sprintf("input file %s contains no data lines", e.FilePath)
}

// EmptyDatasetError is returned when every data line was rejected.
type EmptyDatasetError struct {
	Total    int
	Rejected int
}

func (e *EmptyDatasetError) Error() string {
	return fmt.Sprintf("no valid records after cleaning: %d of %d rows rejected", e.Rejected, e.Total)
}

// InvalidFormatError represents a ledger whose header does not carry the
// columns the processor needs.
type InvalidFormatError struct {
	FilePath       string
	ExpectedFormat string
	Msg            string
}

func (e *InvalidFormatError) Error() string {
	if e.FilePath == "" {
		return fmt.Sprintf("invalid ledger format: %s. Expected: %s", e.Msg, e.ExpectedFormat)
	}
	return fmt.Sprintf("invalid format in file '%s': %s. Expected: %s",
		e.FilePath, e.Msg, e.ExpectedFormat)
}

// WriteError represents a failure to create, write, flush or close an output file.
type WriteError struct {
	FilePath string
	Op       string
	Err      error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("failed to %s %s: %v", e.Op, e.FilePath, e.Err)
}

func (e *WriteError) Unwrap() error {
	return e.Err
}

// ConfigError represents an invalid configuration value.
type ConfigError struct {
	Key    string
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("invalid configuration %s: %s", e.Key, e.Reason)
}

// RowError describes why a single ledger row was rejected.
type RowError struct {
	Line   int
	Field  string
	Value  string
	Reason string
	Err    error
}

func (e *RowError) Error() string {
	msg := fmt.Sprintf("line %d: %s", e.Line, e.Reason)
	if e.Field != "" {
		msg = fmt.Sprintf("%s (%s='%s')", msg, e.Field, e.Value)
	}
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

func (e *RowError) Unwrap() error {
	return e.Err
}

// IsFatal reports whether err aborts a run. Anything that is not a RowError is fatal.
func IsFatal(err error) bool {
	if err == nil {
		return false
	}
	var rowErr *RowError
	return !errors.As(err, &rowErr)
}
