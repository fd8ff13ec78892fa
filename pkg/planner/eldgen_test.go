package planner

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roadlog/roadlog/pkg/eldlog"
	"github.com/roadlog/roadlog/pkg/trip"
)

func segmentAt(segmentType trip.SegmentType, start, end time.Time, location string) trip.RouteSegment {
	return trip.RouteSegment{
		Type:          segmentType,
		StartLocation: location,
		EndLocation:   location,
		StartTime:     start,
		EndTime:       end,
	}
}

func TestGenerateLogs(t *testing.T) {
	planner := NewService(NewStubGeoClient())
	day1 := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

	t.Run("should split a segment crossing midnight across two days", func(t *testing.T) {
		// given
		segments := []trip.RouteSegment{
			segmentAt(trip.SegmentDrive, day1.Add(20*time.Hour), day1.Add(26*time.Hour), "Chicago"),
		}

		// when
		logs := planner.GenerateLogs(segments)

		// then
		require.Len(t, logs, 2)
		assert.Equal(t, "2025-06-01", logs[0].Date)
		assert.Equal(t, "2025-06-02", logs[1].Date)

		firstDay := logs[0].StatusTimeline
		require.Len(t, firstDay, 2)
		assert.Equal(t, eldlog.StatusOffDuty, firstDay[0].Status)
		assert.Equal(t, "00:00", firstDay[0].StartTime)
		assert.Equal(t, "20:00", firstDay[0].EndTime)
		assert.Equal(t, eldlog.StatusDriving, firstDay[1].Status)
		assert.Equal(t, "20:00", firstDay[1].StartTime)
		assert.Equal(t, eldlog.EndOfDaySentinel, firstDay[1].EndTime)

		secondDay := logs[1].StatusTimeline
		require.Len(t, secondDay, 2)
		assert.Equal(t, eldlog.StatusDriving, secondDay[0].Status)
		assert.Equal(t, "00:00", secondDay[0].StartTime)
		assert.Equal(t, "02:00", secondDay[0].EndTime)
		assert.Equal(t, eldlog.StatusOffDuty, secondDay[1].Status)
		assert.Equal(t, "02:00", secondDay[1].StartTime)
		assert.Equal(t, eldlog.EndOfDaySentinel, secondDay[1].EndTime)
	})

	t.Run("should map segment types onto duty status rows", func(t *testing.T) {
		// given
		segments := []trip.RouteSegment{
			segmentAt(trip.SegmentDrive, day1.Add(6*time.Hour), day1.Add(8*time.Hour), "Chicago"),
			segmentAt(trip.SegmentFuel, day1.Add(8*time.Hour), day1.Add(9*time.Hour), "Gary"),
			segmentAt(trip.SegmentRest, day1.Add(9*time.Hour), day1.Add(19*time.Hour), "Gary"),
		}

		// when
		logs := planner.GenerateLogs(segments)

		// then
		require.Len(t, logs, 1)
		statuses := map[eldlog.DutyStatus]bool{}
		for _, interval := range logs[0].StatusTimeline {
			statuses[interval.Status] = true
		}
		assert.True(t, statuses[eldlog.StatusDriving])
		assert.True(t, statuses[eldlog.StatusOnDuty])
		assert.True(t, statuses[eldlog.StatusSleeperBerth])
		assert.True(t, statuses[eldlog.StatusOffDuty])
	})

	t.Run("should fill uncovered time with off duty and summarize the full day", func(t *testing.T) {
		// given
		segments := []trip.RouteSegment{
			segmentAt(trip.SegmentDrive, day1.Add(8*time.Hour), day1.Add(10*time.Hour), "Chicago"),
		}

		// when
		logs := planner.GenerateLogs(segments)

		// then
		require.Len(t, logs, 1)
		timeline := logs[0].StatusTimeline
		require.Len(t, timeline, 3)
		assert.Equal(t, "Gap Fill", timeline[0].Notes)
		assert.Equal(t, "Gap Fill End of Day", timeline[2].Notes)

		assert.InDelta(t, 2, logs[0].HoursSummary[eldlog.StatusDriving], 1e-9)
		// trailing off-duty runs to the 23:59 marker, one minute short
		assert.InDelta(t, 21.98, logs[0].HoursSummary[eldlog.StatusOffDuty], 1e-9)
	})

	t.Run("should carry the last known location into gap fills", func(t *testing.T) {
		// given
		segments := []trip.RouteSegment{
			segmentAt(trip.SegmentDrive, day1.Add(8*time.Hour), day1.Add(10*time.Hour), "Chicago"),
		}

		// when
		logs := planner.GenerateLogs(segments)

		// then
		timeline := logs[0].StatusTimeline
		assert.Equal(t, "Start of Day", timeline[0].Location)
		assert.Equal(t, "Chicago", timeline[2].Location)
	})

	t.Run("should skip zero-length segments", func(t *testing.T) {
		// given
		segments := []trip.RouteSegment{
			segmentAt(trip.SegmentPickup, day1.Add(8*time.Hour), day1.Add(8*time.Hour), "Chicago"),
		}

		// when
		logs := planner.GenerateLogs(segments)

		// then
		assert.Empty(t, logs)
	})

	t.Run("should order logs by date", func(t *testing.T) {
		// given
		segments := []trip.RouteSegment{
			segmentAt(trip.SegmentDrive, day1.AddDate(0, 0, 2).Add(6*time.Hour), day1.AddDate(0, 0, 2).Add(8*time.Hour), "Chicago"),
			segmentAt(trip.SegmentDrive, day1.Add(6*time.Hour), day1.Add(8*time.Hour), "Chicago"),
		}

		// when
		logs := planner.GenerateLogs(segments)

		// then
		require.Len(t, logs, 2)
		assert.Equal(t, "2025-06-01", logs[0].Date)
		assert.Equal(t, "2025-06-03", logs[1].Date)
	})
}
