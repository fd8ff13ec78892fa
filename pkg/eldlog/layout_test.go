package eldlog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLayout(t *testing.T) {
	t.Run("should place bars proportionally on the 24h axis", func(t *testing.T) {
		points := Layout([]StatusInterval{
			{Status: StatusDriving, StartTime: "06:00", EndTime: "12:00"},
		})

		require.Len(t, points, 1)
		assert.InDelta(t, 25, points[0].StartPercent, 1e-9)
		assert.InDelta(t, 25, points[0].WidthPercent, 1e-9)
		assert.Equal(t, 360, points[0].DurationMinutes)
	})

	t.Run("should never overflow the right edge", func(t *testing.T) {
		points := Layout([]StatusInterval{
			{Status: StatusDriving, StartTime: "20:00", EndTime: "30:00"},
		})

		require.Len(t, points, 1)
		assert.LessOrEqual(t, points[0].StartPercent+points[0].WidthPercent, 100.0)
	})

	t.Run("should floor reversed intervals to zero width", func(t *testing.T) {
		points := Layout([]StatusInterval{
			{Status: StatusOnDuty, StartTime: "10:30", EndTime: "09:00"},
		})

		require.Len(t, points, 1)
		assert.Equal(t, 0.0, points[0].WidthPercent)
	})

	t.Run("should keep malformed intervals as zero-width markers", func(t *testing.T) {
		points := Layout([]StatusInterval{
			{Status: StatusDriving, StartTime: "bad", EndTime: "10:00"},
			{Status: StatusOnDuty, StartTime: "10:00", EndTime: "worse"},
		})

		require.Len(t, points, 2)
		assert.Equal(t, 0.0, points[0].WidthPercent)
		assert.Equal(t, 0.0, points[1].WidthPercent)
	})

	t.Run("should assign stable ordinal indexes", func(t *testing.T) {
		timeline := []StatusInterval{
			{Status: StatusOffDuty, StartTime: "00:00", EndTime: "06:00"},
			{Status: StatusDriving, StartTime: "06:00", EndTime: "14:00"},
			{Status: StatusOnDuty, StartTime: "14:00", EndTime: "15:00"},
		}

		first := Layout(timeline)
		second := Layout(timeline)

		for i := range first {
			assert.Equal(t, i, first[i].Index)
		}
		assert.Equal(t, first, second)
	})

	t.Run("should handle an empty timeline", func(t *testing.T) {
		assert.Empty(t, Layout(nil))
	})
}
