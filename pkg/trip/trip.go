package trip

import (
	"context"
	"errors"
	"time"

	"github.com/roadlog/roadlog/pkg/eldlog"
)

var ErrTripNotFound = errors.New("trip not found")

// SegmentType classifies one leg of a planned route.
type SegmentType string

const (
	SegmentDrive    SegmentType = "DRIVE"
	SegmentRest     SegmentType = "REST"
	SegmentFuel     SegmentType = "FUEL"
	SegmentPickup   SegmentType = "PICKUP"
	SegmentDropoff  SegmentType = "DROPOFF"
	SegmentStart    SegmentType = "START"
	SegmentWaypoint SegmentType = "WAYPOINT"
)

// Coordinates is a [longitude, latitude] pair, in the order the routing
// provider returns and clients consume.
type Coordinates [2]float64

type RouteSegment struct {
	ID               int          `json:"id"`
	Type             SegmentType  `json:"segment_type"`
	StartLocation    string       `json:"start_location"`
	EndLocation      string       `json:"end_location"`
	StartCoordinates *Coordinates `json:"start_coordinates"`
	EndCoordinates   *Coordinates `json:"end_coordinates"`
	DistanceMiles    float64      `json:"distance_miles"`
	DurationHours    float64      `json:"estimated_duration_hours"`
	StartTime        time.Time    `json:"start_time"`
	EndTime          time.Time    `json:"end_time"`
}

// Trip is a planned haul with its segment schedule and the generated daily
// logs. Once stored it is read-only: renderers and serializers never mutate
// it, so a Trip can be shared across concurrent readers.
type Trip struct {
	ID                    int               `json:"id"`
	UID                   string            `json:"uid"`
	CurrentLocation       string            `json:"current_location"`
	PickupLocation        string            `json:"pickup_location"`
	DropoffLocation       string            `json:"dropoff_location"`
	CurrentCycleUsedHours float64           `json:"current_cycle_used"`
	CreatedAt             time.Time         `json:"created_at"`
	Segments              []RouteSegment    `json:"segments"`
	Logs                  []eldlog.DailyLog `json:"eld_logs"`
}

// LogForDate returns the daily log for a YYYY-MM-DD date, or nil.
func (t Trip) LogForDate(date string) *eldlog.DailyLog {
	for i := range t.Logs {
		if t.Logs[i].Date == date {
			return &t.Logs[i]
		}
	}
	return nil
}

// RoutePlan is the output of trip planning: the ordered segment schedule
// plus the route totals before any hours-of-service stops are added.
type RoutePlan struct {
	Segments           []RouteSegment `json:"segments"`
	TotalDistanceMiles float64        `json:"total_distance_miles"`
	TotalDurationHours float64        `json:"total_duration_hours"`
}

// Planner produces the segment schedule and the per-day logs for a trip.
type Planner interface {
	PlanRoute(ctx context.Context, currentLocation, pickupLocation, dropoffLocation string, cycleUsedHours float64, startTime time.Time) (RoutePlan, error)
	GenerateLogs(segments []RouteSegment) []eldlog.DailyLog
}
