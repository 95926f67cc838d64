package dateutils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDate(t *testing.T) {
	tests := []struct {
		name       string
		dateStr    string
		layouts    []string
		expectedOk bool
		expectedY  int
		expectedM  time.Month
		expectedD  int
	}{
		{"ISO format", "2024-12-15", nil, true, 2024, time.December, 15},
		{"surrounding whitespace", "  2024-01-01 ", nil, true, 2024, time.January, 1},
		{"European rejected by default", "15.12.2024", nil, false, 0, 0, 0},
		{"European when configured", "15.12.2024", []string{DateLayoutISO, DateLayoutEuropean}, true, 2024, time.December, 15},
		{"impossible calendar date", "2024-02-30", nil, false, 0, 0, 0},
		{"not a date", "not-a-date", nil, false, 0, 0, 0},
		{"empty string", "", nil, false, 0, 0, 0},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			date, err := ParseDate(tc.dateStr, tc.layouts)

			if !tc.expectedOk {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.expectedY, date.Year())
			assert.Equal(t, tc.expectedM, date.Month())
			assert.Equal(t, tc.expectedD, date.Day())
		})
	}
}

func TestToISODate(t *testing.T) {
	assert.Equal(t, "2024-03-05", ToISODate(time.Date(2024, 3, 5, 13, 0, 0, 0, time.UTC)))
}

func TestCleanDateString(t *testing.T) {
	assert.Equal(t, "2024-01-01", CleanDateString("\t2024-01-01  "))
	assert.Equal(t, "Jan 2, 2006", CleanDateString("Jan   2,  2006"))
}

func TestDateRange(t *testing.T) {
	var dr DateRange
	assert.True(t, dr.IsZero())
	assert.Equal(t, "N/A", dr.String())

	d1 := time.Date(2024, 12, 10, 0, 0, 0, 0, time.UTC)
	d2 := time.Date(2024, 12, 1, 0, 0, 0, 0, time.UTC)
	d3 := time.Date(2024, 12, 31, 0, 0, 0, 0, time.UTC)

	dr = dr.Extend(d1).Extend(d2).Extend(d3).Extend(time.Time{})
	assert.Equal(t, d2, dr.Start)
	assert.Equal(t, d3, dr.End)
	assert.Equal(t, "2024-12-01 to 2024-12-31", dr.String())
}
