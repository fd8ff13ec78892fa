package eldlog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseClock(t *testing.T) {
	t.Run("should round-trip zero-padded inputs through FormatClock", func(t *testing.T) {
		for _, input := range []string{"00:00", "06:30", "12:00", "23:59"} {
			minutes, err := ParseClock(input)
			require.NoError(t, err)
			assert.Equal(t, input, FormatClock(minutes))
		}
	})

	t.Run("should accept 24:00 as end of day", func(t *testing.T) {
		minutes, err := ParseClock("24:00")
		require.NoError(t, err)
		assert.Equal(t, MinutesPerDay, minutes)
	})

	t.Run("should reject malformed inputs", func(t *testing.T) {
		for _, input := range []string{"", "1200", "ab:cd", "12:xx", "-1:30"} {
			_, err := ParseClock(input)
			assert.ErrorIs(t, err, ErrInvalidTimeFormat, "input %q", input)
		}
	})
}

func TestNormalizeEndOfDay(t *testing.T) {
	t.Run("should map the 23:59 sentinel to a full day", func(t *testing.T) {
		minutes, err := NormalizeEndOfDay("23:59")
		require.NoError(t, err)
		assert.Equal(t, MinutesPerDay, minutes)
	})

	t.Run("should parse every other time literally", func(t *testing.T) {
		minutes, err := NormalizeEndOfDay("23:58")
		require.NoError(t, err)
		assert.Equal(t, 23*60+58, minutes)
	})
}

func TestDuration(t *testing.T) {
	t.Run("should compute plain interval length", func(t *testing.T) {
		minutes, err := Duration("08:00", "10:30")
		require.NoError(t, err)
		assert.Equal(t, 150, minutes)
	})

	t.Run("should take the end-of-day sentinel literally", func(t *testing.T) {
		// The last minute of the day is deliberately lost here, matching the
		// recap totals the data source produces.
		minutes, err := Duration("23:00", "23:59")
		require.NoError(t, err)
		assert.Equal(t, 59, minutes)
	})

	t.Run("should clamp to zero when end precedes start", func(t *testing.T) {
		minutes, err := Duration("10:30", "09:00")
		require.NoError(t, err)
		assert.Equal(t, 0, minutes)
	})

	t.Run("should fail on unparsable input", func(t *testing.T) {
		_, err := Duration("oops", "10:00")
		assert.ErrorIs(t, err, ErrInvalidTimeFormat)
	})
}

func TestFormatDuration(t *testing.T) {
	assert.Equal(t, "2h 30m", FormatDuration(150))
	assert.Equal(t, "0h 0m", FormatDuration(0))
	assert.Equal(t, "0h 0m", FormatDuration(-10))
}

func TestDisplayClock(t *testing.T) {
	assert.Equal(t, "08:05", DisplayClock("8:5"))
	assert.Equal(t, "--:--", DisplayClock("not a time"))
	assert.Equal(t, "--:--", DisplayClock(""))
}
