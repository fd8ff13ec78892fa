package eldlog

import (
	"math"

	log "github.com/sirupsen/logrus"
)

// Summary holds the per-status time buckets for one day. Minutes are
// accumulated as integers and only converted to hours on the way out, so
// repeated summing cannot compound floating point error.
type Summary struct {
	minutes map[DutyStatus]int
	// Skipped counts intervals dropped because their times failed to parse.
	Skipped int
}

// Summarize totals the duration of each interval into its status bucket.
// Malformed intervals are skipped and counted, never propagated: one bad
// record must not blank a whole day's recap.
func Summarize(intervals []StatusInterval) Summary {
	summary := Summary{minutes: map[DutyStatus]int{}}
	for _, interval := range intervals {
		minutes, err := Duration(interval.StartTime, interval.EndTime)
		if err != nil {
			log.Debugf("skipping interval with unparsable time (%s - %s): %v",
				interval.StartTime, interval.EndTime, err)
			summary.Skipped++
			continue
		}
		summary.minutes[interval.Status] += minutes
	}
	return summary
}

// Minutes returns the accumulated minutes for a status.
func (s Summary) Minutes(status DutyStatus) int {
	return s.minutes[status]
}

// Hours returns the accumulated hours for a status.
func (s Summary) Hours(status DutyStatus) float64 {
	return float64(s.minutes[status]) / 60
}

// TotalHours returns the sum over all buckets. The four row hours always add
// up to this value within 1e-6.
func (s Summary) TotalHours() float64 {
	total := 0
	for _, minutes := range s.minutes {
		total += minutes
	}
	return float64(total) / 60
}

// HoursByStatus converts the summary to the map shape carried by DailyLog,
// rounded to two decimals the way the upstream generator reports it.
func (s Summary) HoursByStatus() map[DutyStatus]float64 {
	byStatus := make(map[DutyStatus]float64, len(RowOrder))
	for _, status := range RowOrder {
		byStatus[status] = math.Round(s.Hours(status)*100) / 100
	}
	return byStatus
}

// PercentageOf returns the share of the day's total spent in a status,
// defined as 0 when the total is 0.
func PercentageOf(status DutyStatus, s Summary) float64 {
	total := s.TotalHours()
	if total == 0 {
		return 0
	}
	return s.Hours(status) / total * 100
}
