package eldlog

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func fullDayTimeline() []StatusInterval {
	return []StatusInterval{
		{Status: StatusOffDuty, StartTime: "00:00", EndTime: "06:00"},
		{Status: StatusDriving, StartTime: "06:00", EndTime: "14:00"},
		{Status: StatusOnDuty, StartTime: "14:00", EndTime: "15:00"},
		{Status: StatusOffDuty, StartTime: "15:00", EndTime: "23:59"},
	}
}

func TestSummarize(t *testing.T) {
	t.Run("should total hours per status", func(t *testing.T) {
		summary := Summarize(fullDayTimeline())

		assert.InDelta(t, 14.983333, summary.Hours(StatusOffDuty), 1e-6)
		assert.InDelta(t, 8, summary.Hours(StatusDriving), 1e-6)
		assert.InDelta(t, 1, summary.Hours(StatusOnDuty), 1e-6)
		assert.InDelta(t, 0, summary.Hours(StatusSleeperBerth), 1e-6)

		// 23:59 sentinel truncates the final minute, so a full day sums to
		// 23h59m rather than 24h. Preserved on purpose.
		assert.InDelta(t, 23.983333, summary.TotalHours(), 1e-6)
	})

	t.Run("should keep bucket hours summing to the total", func(t *testing.T) {
		summary := Summarize(fullDayTimeline())

		sum := 0.0
		for _, status := range RowOrder {
			sum += summary.Hours(status)
		}
		assert.InDelta(t, summary.TotalHours(), sum, 1e-6)
	})

	t.Run("should be idempotent", func(t *testing.T) {
		timeline := fullDayTimeline()

		first := Summarize(timeline)
		second := Summarize(timeline)

		assert.Equal(t, first, second)
	})

	t.Run("should skip malformed intervals without failing", func(t *testing.T) {
		timeline := []StatusInterval{
			{Status: StatusDriving, StartTime: "06:00", EndTime: "08:00"},
			{Status: StatusDriving, StartTime: "garbage", EndTime: "10:00"},
		}

		summary := Summarize(timeline)

		assert.InDelta(t, 2, summary.Hours(StatusDriving), 1e-6)
		assert.Equal(t, 1, summary.Skipped)
	})

	t.Run("should clamp reversed intervals to zero", func(t *testing.T) {
		timeline := []StatusInterval{
			{Status: StatusDriving, StartTime: "10:30", EndTime: "09:00"},
		}

		summary := Summarize(timeline)

		assert.Equal(t, 0, summary.Minutes(StatusDriving))
	})

	t.Run("should handle an empty timeline", func(t *testing.T) {
		summary := Summarize(nil)

		assert.Equal(t, 0.0, summary.TotalHours())
		assert.Equal(t, 0, summary.Skipped)
	})
}

func TestHoursByStatus(t *testing.T) {
	summary := Summarize(fullDayTimeline())

	byStatus := summary.HoursByStatus()

	assert.Equal(t, 14.98, byStatus[StatusOffDuty])
	assert.Equal(t, 8.0, byStatus[StatusDriving])
	assert.Equal(t, 1.0, byStatus[StatusOnDuty])
	assert.Equal(t, 0.0, byStatus[StatusSleeperBerth])
}

func TestPercentageOf(t *testing.T) {
	t.Run("should report the share of the day per status", func(t *testing.T) {
		summary := Summarize([]StatusInterval{
			{Status: StatusDriving, StartTime: "00:00", EndTime: "06:00"},
			{Status: StatusOffDuty, StartTime: "06:00", EndTime: "12:00"},
		})

		assert.InDelta(t, 50, PercentageOf(StatusDriving, summary), 1e-6)
	})

	t.Run("should be zero when the total is zero", func(t *testing.T) {
		assert.Equal(t, 0.0, PercentageOf(StatusDriving, Summarize(nil)))
	})
}
