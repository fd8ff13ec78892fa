package eldlog

import (
	log "github.com/sirupsen/logrus"
)

// LayoutPoint is the screen-space position of one interval on a normalized
// 0-100% horizontal 24-hour axis. Index is the interval's ordinal position in
// the timeline and is stable across calls, so UI hover and selection state can
// address a specific bar without re-deriving the layout.
type LayoutPoint struct {
	Index           int        `json:"index"`
	Status          DutyStatus `json:"status"`
	StartPercent    float64    `json:"start_percent"`
	WidthPercent    float64    `json:"width_percent"`
	DurationMinutes int        `json:"duration_minutes"`
}

// Layout maps a status timeline onto the normalized axis. A bar never
// overflows the right edge: width is clamped to the remaining axis and floored
// at zero. Intervals with unparsable times become zero-width markers rather
// than disappearing, so malformed records stay visible to the operator.
func Layout(intervals []StatusInterval) []LayoutPoint {
	points := make([]LayoutPoint, 0, len(intervals))
	for i, interval := range intervals {
		point := LayoutPoint{Index: i, Status: interval.Status}

		startMin, err := ParseClock(interval.StartTime)
		if err != nil {
			log.Debugf("interval %d has unparsable start time %q, placing zero-width marker", i, interval.StartTime)
			points = append(points, point)
			continue
		}
		if startMin > MinutesPerDay {
			startMin = MinutesPerDay
		}
		point.StartPercent = float64(startMin) / MinutesPerDay * 100

		duration, err := Duration(interval.StartTime, interval.EndTime)
		if err != nil {
			log.Debugf("interval %d has unparsable end time %q, placing zero-width marker", i, interval.EndTime)
			points = append(points, point)
			continue
		}
		point.DurationMinutes = duration

		width := float64(duration) / MinutesPerDay * 100
		if max := 100 - point.StartPercent; width > max {
			width = max
		}
		if width < 0 {
			width = 0
		}
		point.WidthPercent = width

		points = append(points, point)
	}
	return points
}
