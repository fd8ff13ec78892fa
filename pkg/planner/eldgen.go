package planner

import (
	"sort"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/roadlog/roadlog/pkg/eldlog"
	"github.com/roadlog/roadlog/pkg/trip"
)

// statusForSegment maps a route segment type onto the duty row it occupies
// on the daily grid. Unknown types fall back to off duty.
func statusForSegment(segmentType trip.SegmentType) eldlog.DutyStatus {
	switch segmentType {
	case trip.SegmentDrive:
		return eldlog.StatusDriving
	case trip.SegmentRest:
		return eldlog.StatusSleeperBerth
	case trip.SegmentFuel, trip.SegmentPickup, trip.SegmentDropoff:
		return eldlog.StatusOnDuty
	default:
		return eldlog.StatusOffDuty
	}
}

// GenerateLogs splits the segment schedule into per-day duty timelines and
// summarizes each day. Segments that span midnight are cut at the day
// boundary, with the trailing piece ending at the 23:59 end-of-day marker.
// Uncovered time is filled with off-duty intervals so every day covers a
// full 24 hours.
func (s *ServiceImpl) GenerateLogs(segments []trip.RouteSegment) []eldlog.DailyLog {
	timelines := map[string][]eldlog.StatusInterval{}

	for _, segment := range segments {
		status := statusForSegment(segment.Type)
		start := segment.StartTime.UTC()
		end := segment.EndTime.UTC()
		if !end.After(start) {
			continue
		}

		dayStart := time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, time.UTC)
		for dayStart.Before(end) {
			nextDay := dayStart.AddDate(0, 0, 1)

			intervalStart := start
			if intervalStart.Before(dayStart) {
				intervalStart = dayStart
			}
			startClock := intervalStart.Format("15:04")

			endClock := eldlog.EndOfDaySentinel
			if end.Before(nextDay) {
				endClock = end.Format("15:04")
			}

			date := dayStart.Format("2006-01-02")
			timelines[date] = append(timelines[date], eldlog.StatusInterval{
				Status:    status,
				StartTime: startClock,
				EndTime:   endClock,
				Location:  segment.StartLocation,
				Notes:     "Segment Type: " + string(segment.Type),
			})
			dayStart = nextDay
		}
	}

	logs := make([]eldlog.DailyLog, 0, len(timelines))
	for date, timeline := range timelines {
		filled := fillOffDutyGaps(timeline)
		logs = append(logs, eldlog.DailyLog{
			Date:           date,
			StatusTimeline: filled,
			HoursSummary:   eldlog.Summarize(filled).HoursByStatus(),
		})
	}
	sort.Slice(logs, func(i, j int) bool {
		return logs[i].Date < logs[j].Date
	})

	log.Debugf("Generated %d daily logs from %d segments", len(logs), len(segments))
	return logs
}

// fillOffDutyGaps sorts a day's timeline and pads any uncovered span with
// an off-duty interval, so the day runs from 00:00 to the end-of-day
// marker without holes.
func fillOffDutyGaps(timeline []eldlog.StatusInterval) []eldlog.StatusInterval {
	sorted := make([]eldlog.StatusInterval, len(timeline))
	copy(sorted, timeline)
	sort.SliceStable(sorted, func(i, j int) bool {
		return strings.Compare(sorted[i].StartTime, sorted[j].StartTime) < 0
	})

	filled := make([]eldlog.StatusInterval, 0, len(sorted)+2)
	lastEnd := "00:00"
	lastLocation := "Start of Day"
	for _, interval := range sorted {
		if strings.Compare(interval.StartTime, lastEnd) > 0 {
			filled = append(filled, eldlog.StatusInterval{
				Status:    eldlog.StatusOffDuty,
				StartTime: lastEnd,
				EndTime:   interval.StartTime,
				Location:  lastLocation,
				Notes:     "Gap Fill",
			})
		}
		filled = append(filled, interval)
		if strings.Compare(interval.EndTime, lastEnd) > 0 {
			lastEnd = interval.EndTime
		}
		if interval.Location != "" {
			lastLocation = interval.Location
		}
	}
	if lastEnd != eldlog.EndOfDaySentinel {
		filled = append(filled, eldlog.StatusInterval{
			Status:    eldlog.StatusOffDuty,
			StartTime: lastEnd,
			EndTime:   eldlog.EndOfDaySentinel,
			Location:  lastLocation,
			Notes:     "Gap Fill End of Day",
		})
	}
	return filled
}
