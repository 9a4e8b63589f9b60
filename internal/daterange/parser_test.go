package daterange

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Wednesday, 2025-03-12 15:30 UTC.
var now = time.Date(2025, 3, 12, 15, 30, 0, 0, time.UTC)

func TestParseRelativeRanges(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		wantStart time.Time
	}{
		{"last 7 days", "last 7 days", now.AddDate(0, 0, -7)},
		{"last week", "last week", now.AddDate(0, 0, -7)},
		{"the past month", "the past month", now.AddDate(0, 0, -30)},
		{"past 2 weeks", "past 2 weeks", now.AddDate(0, 0, -14)},
		{"last year", "last year", now.AddDate(0, 0, -365)},
		{"case insensitive", "LAST 7 DAYS", now.AddDate(0, 0, -7)},
		{"extra whitespace", "  last 7 days  ", now.AddDate(0, 0, -7)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			start, end, err := Parse(tt.input, now)
			require.NoError(t, err)
			assert.Equal(t, tt.wantStart, start)
			assert.Equal(t, now, end)
		})
	}
}

func TestParseFromTo(t *testing.T) {
	t.Run("weekdays", func(t *testing.T) {
		start, end, err := Parse("from monday to tuesday", now)
		require.NoError(t, err)

		// Most recent Monday before Wednesday 2025-03-12 is the 10th.
		assert.Equal(t, time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC), start)
		// End day is inclusive.
		assert.Equal(t, time.Date(2025, 3, 11, 23, 59, 59, 0, time.UTC), end)
	})

	t.Run("month and day", func(t *testing.T) {
		start, end, err := Parse("from december 1 to december 15", now)
		require.NoError(t, err)

		// Without a year, the most recent past occurrence wins.
		assert.Equal(t, time.Date(2024, 12, 1, 0, 0, 0, 0, time.UTC), start)
		assert.Equal(t, time.Date(2024, 12, 15, 23, 59, 59, 0, time.UTC), end)
		assert.True(t, end.After(start))
	})

	t.Run("explicit dates", func(t *testing.T) {
		start, end, err := Parse("from 2025-01-01 to 2025-01-31", now)
		require.NoError(t, err)
		assert.Equal(t, time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC), start)
		assert.Equal(t, time.Date(2025, 1, 31, 23, 59, 59, 0, time.UTC), end)
	})

	t.Run("yesterday to today", func(t *testing.T) {
		start, end, err := Parse("from yesterday to today", now)
		require.NoError(t, err)
		assert.Equal(t, time.Date(2025, 3, 11, 0, 0, 0, 0, time.UTC), start)
		assert.Equal(t, time.Date(2025, 3, 12, 23, 59, 59, 0, time.UTC), end)
	})

	t.Run("unparseable start", func(t *testing.T) {
		_, _, err := Parse("from blorp to friday", now)
		assert.Error(t, err)
	})
}

func TestParseSingleExpressions(t *testing.T) {
	t.Run("yesterday", func(t *testing.T) {
		start, end, err := Parse("yesterday", now)
		require.NoError(t, err)
		assert.Equal(t, time.Date(2025, 3, 11, 0, 0, 0, 0, time.UTC), start)
		assert.Equal(t, now, end)
	})

	t.Run("last tuesday", func(t *testing.T) {
		start, _, err := Parse("last tuesday", now)
		require.NoError(t, err)
		assert.Equal(t, time.Date(2025, 3, 11, 0, 0, 0, 0, time.UTC), start)
	})

	t.Run("weekday on its own day looks a week back", func(t *testing.T) {
		start, _, err := Parse("wednesday", now)
		require.NoError(t, err)
		assert.Equal(t, time.Date(2025, 3, 5, 0, 0, 0, 0, time.UTC), start)
	})
}

func TestParseInvalid(t *testing.T) {
	for _, input := range []string{
		"not a valid date range xyz123",
		"",
		"   ",
		"from to",
	} {
		_, _, err := Parse(input, now)
		assert.Error(t, err, "input %q", input)
	}
}
