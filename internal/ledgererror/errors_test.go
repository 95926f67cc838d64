package ledgererror

import (
	"errors"
	"fmt"
	"io/fs"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorMessages(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected string
	}{
		{
			name:     "file not found",
			err:      &FileNotFoundError{FilePath: "data/sales_data.txt", Err: fs.ErrNotExist},
			expected: "input file not found: data/sales_data.txt",
		},
		{
			name:     "empty input with path",
			err:      &EmptyInputError{FilePath: "empty.txt"},
			expected: "input file empty.txt contains no data lines",
		},
		{
			name:     "empty input without path",
			err:      &EmptyInputError{},
			expected: "input contains no data lines",
		},
		{
			name:     "empty dataset",
			err:      &EmptyDatasetError{Total: 3, Rejected: 3},
			expected: "no valid records after cleaning: 3 of 3 rows rejected",
		},
		{
			name:     "write error",
			err:      &WriteError{FilePath: "out/report.txt", Op: "create", Err: errors.New("permission denied")},
			expected: "failed to create out/report.txt: permission denied",
		},
		{
			name:     "row error with field",
			err:      &RowError{Line: 7, Field: "UnitPrice", Value: "abc", Reason: ReasonInvalidPrice},
			expected: "line 7: invalid unit price (UnitPrice='abc')",
		},
		{
			name:     "row error without field",
			err:      &RowError{Line: 2, Reason: ReasonFieldCount},
			expected: "line 2: wrong field count",
		},
		{
			name:     "config error",
			err:      &ConfigError{Key: "report.top_n", Reason: "must be at least 1"},
			expected: "invalid configuration report.top_n: must be at least 1",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.err.Error())
		})
	}
}

func TestUnwrap(t *testing.T) {
	notFound := &FileNotFoundError{FilePath: "x", Err: fs.ErrNotExist}
	assert.True(t, errors.Is(notFound, fs.ErrNotExist))

	cause := errors.New("disk full")
	wrapped := fmt.Errorf("writing report: %w", &WriteError{FilePath: "r", Op: "write", Err: cause})
	assert.True(t, errors.Is(wrapped, cause))

	var we *WriteError
	assert.True(t, errors.As(wrapped, &we))
	assert.Equal(t, "write", we.Op)
}

func TestIsFatal(t *testing.T) {
	assert.False(t, IsFatal(nil))
	assert.False(t, IsFatal(&RowError{Line: 1, Reason: ReasonInvalidDate}))
	assert.True(t, IsFatal(&EmptyDatasetError{Total: 1, Rejected: 1}))
	assert.True(t, IsFatal(fmt.Errorf("wrapped: %w", &EmptyInputError{})))
}
