// Package fileutils is the pipeline's file boundary: it reads the raw ledger
// into lines and writes the enriched ledger and the report. No transformation
// logic lives here.
package fileutils

import (
	"bufio"
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"fjacquet/sales-analytics/internal/ledgererror"
	"fjacquet/sales-analytics/internal/models"

	"github.com/gocarina/gocsv"
)

const maxLineSize = 1024 * 1024

const byteOrderMark = "\uFEFF"

// FileExists checks if a file exists and is not a directory
func FileExists(filePath string) bool {
	info, err := os.Stat(filePath)
	if err != nil {
		return false
	}
	return !info.IsDir()
}

// DirectoryExists checks if a directory exists
func DirectoryExists(dirPath string) bool {
	info, err := os.Stat(dirPath)
	if err != nil {
		return false
	}
	return info.IsDir()
}

// EnsureDirectoryExists creates a directory if it doesn't exist
func EnsureDirectoryExists(dirPath string) error {
	if dirPath == "" || dirPath == "." {
		return nil
	}
	if !DirectoryExists(dirPath) {
		if err := os.MkdirAll(dirPath, 0750); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
	}
	return nil
}

// ReadLines reads the ledger at filePath and returns its non-blank lines with
// surrounding whitespace removed.
//
// Errors:
//   - *ledgererror.FileNotFoundError when the path does not exist
//   - *ledgererror.ReadError when it cannot be opened or read
//   - *ledgererror.EmptyInputError when there is not a single non-blank line
func ReadLines(filePath string) ([]string, error) {
	info, err := os.Stat(filePath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, &ledgererror.FileNotFoundError{FilePath: filePath, Err: err}
		}
		return nil, &ledgererror.ReadError{FilePath: filePath, Err: err}
	}
	if info.IsDir() {
		return nil, &ledgererror.ReadError{FilePath: filePath, Err: fmt.Errorf("is a directory")}
	}

	file, err := os.Open(filePath) // #nosec G304 -- ledger path is operator supplied
	if err != nil {
		return nil, &ledgererror.ReadError{FilePath: filePath, Err: err}
	}
	defer func() {
		_ = file.Close()
	}()

	var lines []string
	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)
	first := true
	for scanner.Scan() {
		line := scanner.Text()
		if first {
			line = strings.TrimPrefix(line, byteOrderMark)
			first = false
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		lines = append(lines, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, &ledgererror.ReadError{FilePath: filePath, Err: err}
	}

	if len(lines) == 0 {
		return nil, &ledgererror.EmptyInputError{FilePath: filePath}
	}
	return lines, nil
}

// WriteFile writes content to filePath, creating parent directories as needed.
// The file is flushed and closed on every path; a close failure is reported
// even when the write itself succeeded.
func WriteFile(filePath, content string) (err error) {
	if err := EnsureDirectoryExists(filepath.Dir(filePath)); err != nil {
		return &ledgererror.WriteError{FilePath: filePath, Op: "create directory for", Err: err}
	}

	file, err := os.Create(filePath) // #nosec G304 -- output path is operator supplied
	if err != nil {
		return &ledgererror.WriteError{FilePath: filePath, Op: "create", Err: err}
	}
	defer func() {
		if cerr := file.Close(); cerr != nil && err == nil {
			err = &ledgererror.WriteError{FilePath: filePath, Op: "close", Err: cerr}
		}
	}()

	w := bufio.NewWriter(file)
	if _, err := w.WriteString(content); err != nil {
		return &ledgererror.WriteError{FilePath: filePath, Op: "write", Err: err}
	}
	if err := w.Flush(); err != nil {
		return &ledgererror.WriteError{FilePath: filePath, Op: "flush", Err: err}
	}
	return nil
}

// MarshalEnriched renders records as a delimited ledger with a header row.
func MarshalEnriched(records []models.EnrichedRecord, delimiter rune) (string, error) {
	rows := make([]models.EnrichedRow, 0, len(records))
	for _, rec := range records {
		rows = append(rows, rec.ToRow())
	}

	var buf bytes.Buffer
	csvWriter := csv.NewWriter(&buf)
	csvWriter.Comma = delimiter

	if err := gocsv.MarshalCSV(&rows, gocsv.NewSafeCSVWriter(csvWriter)); err != nil {
		return "", fmt.Errorf("error writing enriched data: %w", err)
	}
	csvWriter.Flush()
	if err := csvWriter.Error(); err != nil {
		return "", fmt.Errorf("error flushing enriched data: %w", err)
	}
	return buf.String(), nil
}

// WriteEnriched writes the enriched ledger artifact to filePath.
func WriteEnriched(filePath string, records []models.EnrichedRecord, delimiter rune) error {
	content, err := MarshalEnriched(records, delimiter)
	if err != nil {
		return &ledgererror.WriteError{FilePath: filePath, Op: "encode", Err: err}
	}
	return WriteFile(filePath, content)
}

// ReadEnriched reads an enriched ledger artifact back into records.
func ReadEnriched(filePath string, delimiter rune) ([]models.EnrichedRecord, error) {
	file, err := os.Open(filePath) // #nosec G304 -- artifact path is operator supplied
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, &ledgererror.FileNotFoundError{FilePath: filePath, Err: err}
		}
		return nil, &ledgererror.ReadError{FilePath: filePath, Err: err}
	}
	defer func() {
		_ = file.Close()
	}()

	reader := csv.NewReader(file)
	reader.Comma = delimiter

	var rows []models.EnrichedRow
	if err := gocsv.UnmarshalCSV(reader, &rows); err != nil {
		return nil, &ledgererror.ReadError{FilePath: filePath, Err: err}
	}

	records := make([]models.EnrichedRecord, 0, len(rows))
	for _, row := range rows {
		rec, err := row.ToRecord()
		if err != nil {
			return nil, &ledgererror.ReadError{FilePath: filePath, Err: err}
		}
		records = append(records, rec)
	}
	return records, nil
}
